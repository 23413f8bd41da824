package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/sse"
	"github.com/smazurov/nucled/internal/events"
)

// registerSSERoutes registers the native Huma SSE endpoint.
func (s *Server) registerSSERoutes() {
	sse.Register(s.api, huma.Operation{
		OperationID: "events-stream",
		Method:      http.MethodGet,
		Path:        "/api/events",
		Summary:     "Server-Sent Events Stream",
		Description: "Real-time stream of control file writes, applied settings and lights batches",
		Tags:        []string{"events"},
		Security:    withAuth(),
		Errors:      []int{401},
	}, map[string]any{
		"connected":       events.ConnectedEvent{},
		"command-written": events.CommandWrittenEvent{},
		"setting-applied": events.SettingAppliedEvent{},
		"run-started":     events.RunStartedEvent{},
		"run-completed":   events.RunCompletedEvent{},
	}, func(ctx context.Context, _ *struct{}, send sse.Sender) {
		eventCh := make(chan any, 32)
		unsubscribers := []func(){
			events.SubscribeToChannel[events.CommandWrittenEvent](s.eventBus, eventCh),
			events.SubscribeToChannel[events.SettingAppliedEvent](s.eventBus, eventCh),
			events.SubscribeToChannel[events.RunStartedEvent](s.eventBus, eventCh),
			events.SubscribeToChannel[events.RunCompletedEvent](s.eventBus, eventCh),
		}
		defer func() {
			for _, unsub := range unsubscribers {
				unsub()
			}
		}()

		hello := events.ConnectedEvent{
			Message:   "SSE connection established",
			Timestamp: time.Now().Format(time.RFC3339),
		}
		if s.emitter != nil {
			hello.Device = s.emitter.Device().Name()
		}
		if s.driver != nil {
			hello.State = string(s.driver.State())
		}
		if err := send.Data(hello); err != nil {
			return
		}

		for {
			select {
			case <-ctx.Done():
				return
			case event := <-eventCh:
				if err := send.Data(event); err != nil {
					return
				}
			}
		}
	})
}

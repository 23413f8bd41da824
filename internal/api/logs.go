package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/smazurov/nucled/internal/api/models"
	"github.com/smazurov/nucled/internal/logging"
)

// registerLogRoutes registers the recent log endpoint.
func (s *Server) registerLogRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "get-logs",
		Method:      http.MethodGet,
		Path:        "/api/logs",
		Summary:     "Recent Logs",
		Description: "Return the most recent log entries held in memory, optionally for one module",
		Tags:        []string{"logs"},
		Errors:      []int{401, 422},
		Security:    withAuth(),
	}, func(_ context.Context, input *models.LogsRequest) (*models.LogsResponse, error) {
		entries := []logging.LogEntry{}
		if buffer := logging.GetBuffer(); buffer != nil {
			entries = append(entries, buffer.Tail(input.Limit, input.Module)...)
		}
		return &models.LogsResponse{
			Body: models.LogsData{
				Entries: entries,
				Count:   len(entries),
			},
		}, nil
	})
}

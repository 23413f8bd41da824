package events

import (
	"github.com/kelindar/event"
)

// Bus wraps kelindar/event dispatcher for event broadcasting.
// Delivery is asynchronous: each subscriber runs on its own goroutine.
type Bus struct {
	dispatcher *event.Dispatcher
}

// New creates a new event bus
func New() *Bus {
	return &Bus{
		dispatcher: event.NewDispatcher(),
	}
}

// Publish publishes an event to all subscribers.
// Publishing on a nil bus is a no-op so components can run without one.
func (b *Bus) Publish(ev Event) {
	if b == nil {
		return
	}

	switch e := ev.(type) {
	case CommandWrittenEvent:
		event.Publish(b.dispatcher, e)
	case SettingAppliedEvent:
		event.Publish(b.dispatcher, e)
	case RunStartedEvent:
		event.Publish(b.dispatcher, e)
	case RunCompletedEvent:
		event.Publish(b.dispatcher, e)
	}
}

// Subscribe subscribes to events with a handler function.
// The handler type determines which events it receives.
// Returns an unsubscribe function.
// Usage: unsub := bus.Subscribe(func(e RunCompletedEvent) { ... })
func (b *Bus) Subscribe(handler any) func() {
	if b == nil {
		return func() {}
	}
	switch h := handler.(type) {
	case func(CommandWrittenEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(SettingAppliedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(RunStartedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(RunCompletedEvent):
		return event.Subscribe(b.dispatcher, h)
	default:
		// Return a no-op function if handler type is not recognized
		return func() {}
	}
}

// Package events is the in-process event bus for logging diagnostics.
// The file sinks and registry hooks publish here; subscribers (rotation
// reporting, drop alarms) react without coupling to the logging package.
package events

import (
	"github.com/kelindar/event"
)

// Bus wraps a kelindar/event dispatcher for event broadcasting.
type Bus struct {
	dispatcher *event.Dispatcher
}

// New creates a new event bus.
func New() *Bus {
	return &Bus{
		dispatcher: event.NewDispatcher(),
	}
}

// Publish publishes an event to all subscribers.
// Usage: bus.Publish(FileRotatedEvent{...})
func (b *Bus) Publish(ev Event) {
	switch e := ev.(type) {
	case EntryLoggedEvent:
		event.Publish(b.dispatcher, e)
	case FileRotatedEvent:
		event.Publish(b.dispatcher, e)
	case WriteDroppedEvent:
		event.Publish(b.dispatcher, e)
	}
}

// Subscribe subscribes to events with a handler function. The handler's
// parameter type determines which events it receives. Returns an
// unsubscribe function.
// Usage: unsub := bus.Subscribe(func(e FileRotatedEvent) { ... })
func (b *Bus) Subscribe(handler any) func() {
	switch h := handler.(type) {
	case func(EntryLoggedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(FileRotatedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(WriteDroppedEvent):
		return event.Subscribe(b.dispatcher, h)
	default:
		return func() {}
	}
}

package events

import "time"

// Event type constants for kelindar/event.
const (
	TypeEntryLogged uint32 = iota + 1
	TypeFileRotated
	TypeWriteDropped
)

// Event interface required by kelindar/event.
type Event interface {
	Type() uint32
}

// EntryLoggedEvent is published for every entry that passes a handle's
// severity gate.
type EntryLoggedEvent struct {
	Logger    string    `json:"logger"`
	Level     string    `json:"level"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Type returns the event type identifier for EntryLoggedEvent.
func (e EntryLoggedEvent) Type() uint32 { return TypeEntryLogged }

// FileRotatedEvent is published after a file sink finishes a rotation.
type FileRotatedEvent struct {
	Logger  string `json:"logger"`
	Path    string `json:"path"`
	Backups int    `json:"backups"`
}

// Type returns the event type identifier for FileRotatedEvent.
func (e FileRotatedEvent) Type() uint32 { return TypeFileRotated }

// WriteDroppedEvent is published when a sink write fails and the entry is
// discarded for that sink.
type WriteDroppedEvent struct {
	Logger string `json:"logger"`
	Sink   string `json:"sink"`
	Error  string `json:"error"`
}

// Type returns the event type identifier for WriteDroppedEvent.
func (e WriteDroppedEvent) Type() uint32 { return TypeWriteDropped }

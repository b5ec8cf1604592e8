package events

import (
	"testing"
	"time"
)

func TestBus_PublishSubscribe(t *testing.T) {
	bus := New()
	received := make(chan FileRotatedEvent, 1)

	unsub := bus.Subscribe(func(e FileRotatedEvent) {
		received <- e
	})
	defer unsub()

	bus.Publish(FileRotatedEvent{Logger: "cam", Path: "logs/cam.log", Backups: 2})

	select {
	case e := <-received:
		if e.Logger != "cam" || e.Backups != 2 {
			t.Errorf("unexpected event: %+v", e)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestBus_TypedDelivery(t *testing.T) {
	bus := New()
	drops := make(chan WriteDroppedEvent, 1)

	unsub := bus.Subscribe(func(e WriteDroppedEvent) {
		drops <- e
	})
	defer unsub()

	// A different event type must not reach the drop subscriber.
	bus.Publish(EntryLoggedEvent{Logger: "cam", Level: "info", Message: "m"})
	bus.Publish(WriteDroppedEvent{Logger: "cam", Sink: "file", Error: "disk full"})

	select {
	case e := <-drops:
		if e.Sink != "file" {
			t.Errorf("unexpected event: %+v", e)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}

	select {
	case e := <-drops:
		t.Errorf("unexpected second delivery: %+v", e)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := New()
	received := make(chan EntryLoggedEvent, 2)

	unsub := bus.Subscribe(func(e EntryLoggedEvent) {
		received <- e
	})

	bus.Publish(EntryLoggedEvent{Logger: "cam", Message: "first"})
	select {
	case <-received:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for first event")
	}

	unsub()
	bus.Publish(EntryLoggedEvent{Logger: "cam", Message: "second"})

	select {
	case e := <-received:
		t.Errorf("received event after unsubscribe: %+v", e)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBus_UnknownHandlerIsNoop(t *testing.T) {
	bus := New()
	unsub := bus.Subscribe(func(s string) {})
	unsub()
}

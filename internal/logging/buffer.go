package logging

import "sync"

// RingBuffer is a thread-safe circular buffer of recent log entries.
// Handles with EnableBuffer share the registry's buffer, giving the
// daemon a cheap "last N lines" view without touching the file sinks.
type RingBuffer struct {
	entries []Entry
	size    int
	head    int
	count   int
	mu      sync.RWMutex
}

// NewRingBuffer creates a ring buffer holding up to size entries.
func NewRingBuffer(size int) *RingBuffer {
	return &RingBuffer{
		entries: make([]Entry, size),
		size:    size,
	}
}

// Write adds an entry, overwriting the oldest when full.
func (rb *RingBuffer) Write(e Entry) {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	rb.entries[rb.head] = e
	rb.head = (rb.head + 1) % rb.size

	if rb.count < rb.size {
		rb.count++
	}
}

// ReadAll returns the buffered entries in chronological order.
func (rb *RingBuffer) ReadAll() []Entry {
	rb.mu.RLock()
	defer rb.mu.RUnlock()

	if rb.count == 0 {
		return nil
	}

	result := make([]Entry, rb.count)
	if rb.count < rb.size {
		copy(result, rb.entries[:rb.count])
	} else {
		firstPart := rb.entries[rb.head:]
		copy(result, firstPart)
		copy(result[len(firstPart):], rb.entries[:rb.head])
	}
	return result
}

// Count returns the number of buffered entries.
func (rb *RingBuffer) Count() int {
	rb.mu.RLock()
	defer rb.mu.RUnlock()
	return rb.count
}

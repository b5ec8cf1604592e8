package logging

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordSink captures entries for assertions and can be told to fail.
type recordSink struct {
	mu      sync.Mutex
	entries []Entry
	fail    error
}

func (s *recordSink) kind() string { return "record" }

func (s *recordSink) write(e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return s.fail
	}
	s.entries = append(s.entries, e)
	return nil
}

func (s *recordSink) flush() error { return nil }
func (s *recordSink) close() error { return nil }

func (s *recordSink) recorded() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Entry(nil), s.entries...)
}

func testHandle(level Severity, sinks ...sink) *Handle {
	h := &Handle{name: "test", sinks: sinks}
	h.level.Set(level.Level())
	return h
}

func TestHandleMonotonicFiltering(t *testing.T) {
	all := []Severity{
		SeverityTrace, SeverityDebug, SeverityInfo,
		SeverityWarning, SeverityError, SeverityCritical,
	}
	emit := map[Severity]func(*Handle, string, ...any){
		SeverityTrace:    (*Handle).Trace,
		SeverityDebug:    (*Handle).Debug,
		SeverityInfo:     (*Handle).Info,
		SeverityWarning:  (*Handle).Warning,
		SeverityError:    (*Handle).Error,
		SeverityCritical: (*Handle).Critical,
	}

	for threshold := SeverityTrace; threshold <= SeverityOff; threshold++ {
		rec := &recordSink{}
		h := testHandle(threshold, rec)

		for _, s := range all {
			emit[s](h, "msg at %s", s)
		}

		var want int
		for _, s := range all {
			if threshold != SeverityOff && s >= threshold {
				want++
			}
		}
		got := rec.recorded()
		assert.Len(t, got, want, "threshold %s", threshold)
		for _, e := range got {
			assert.GreaterOrEqual(t, e.Level, threshold, "threshold %s", threshold)
		}
	}
}

func TestHandleOffSuppressesCritical(t *testing.T) {
	rec := &recordSink{}
	h := testHandle(SeverityOff, rec)
	h.Critical("the disk is on fire")
	assert.Empty(t, rec.recorded())
}

// evalTracker notices whether Sprintf ever touched the argument.
type evalTracker struct {
	mu        sync.Mutex
	evaluated bool
}

func (e *evalTracker) String() string {
	e.mu.Lock()
	e.evaluated = true
	e.mu.Unlock()
	return "evaluated"
}

func (e *evalTracker) wasEvaluated() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.evaluated
}

func TestHandleSuppressedCallNeverFormats(t *testing.T) {
	rec := &recordSink{}
	h := testHandle(SeverityWarning, rec)

	arg := &evalTracker{}
	h.Debug("expensive: %s", arg)
	assert.False(t, arg.wasEvaluated(), "suppressed call must not format its arguments")

	h.Error("expensive: %s", arg)
	assert.True(t, arg.wasEvaluated())

	entries := rec.recorded()
	require.Len(t, entries, 1)
	assert.Equal(t, "expensive: evaluated", entries[0].Message)
}

func TestHandlePlainMessageWithoutArgs(t *testing.T) {
	rec := &recordSink{}
	h := testHandle(SeverityInfo, rec)

	// A literal percent must survive when no args are supplied.
	msg := "battery at 80%"
	h.Info(msg)

	entries := rec.recorded()
	require.Len(t, entries, 1)
	assert.Equal(t, "battery at 80%", entries[0].Message)
}

func TestHandleSetLevel(t *testing.T) {
	rec := &recordSink{}
	h := testHandle(SeverityInfo, rec)
	assert.Equal(t, SeverityInfo, h.Level())

	h.Debug("hidden")
	h.SetLevel(SeverityTrace)
	assert.Equal(t, SeverityTrace, h.Level())
	h.Debug("visible")

	entries := rec.recorded()
	require.Len(t, entries, 1)
	assert.Equal(t, "visible", entries[0].Message)
}

func TestHandleSinkFaultIsSwallowed(t *testing.T) {
	broken := &recordSink{fail: errors.New("disk full")}
	healthy := &recordSink{}

	var drops []string
	h := testHandle(SeverityInfo, broken, healthy)
	h.hooks = Hooks{
		OnDrop: func(logger, sinkKind string, err error) {
			drops = append(drops, sinkKind)
		},
	}

	assert.NotPanics(t, func() { h.Info("still standing") })
	assert.Equal(t, []string{"record"}, drops)
	assert.Len(t, healthy.recorded(), 1, "other sinks still receive the entry")
}

package logging

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
)

// sink is one concrete output destination for formatted entries. Writes to
// a single sink are serialized by the sink's own mutex so concurrent
// emitters never interleave mid-line.
type sink interface {
	kind() string
	write(e Entry) error
	flush() error
	close() error
}

// Hooks observe the subsystem from outside the hot path. Callbacks are
// invoked synchronously while an emission or rotation is in progress, so
// they must be cheap; nil fields are skipped. Used to feed the event bus
// and telemetry counters without import cycles.
type Hooks struct {
	OnEmit   func(e Entry)
	OnRotate func(logger, path string, backups int)
	OnDrop   func(logger, sinkKind string, err error)
}

// sinkDeps carries registry-owned collaborators into sink assembly.
type sinkDeps struct {
	hooks  Hooks
	buffer *RingBuffer
}

// buildSinks assembles the sinks for a validated config. Any enabled sink
// that cannot be constructed fails the whole assembly; partially built
// sinks are closed before returning.
func buildSinks(cfg SinkConfig, deps sinkDeps) ([]sink, error) {
	pat := compilePattern(cfg.Pattern)
	var sinks []sink

	if cfg.EnableConsole {
		sinks = append(sinks, newConsoleSink(os.Stdout, pat))
	}
	if cfg.EnableFile {
		fs, err := newFileSink(cfg, pat, deps.hooks.OnRotate)
		if err != nil {
			for _, s := range sinks {
				s.close()
			}
			return nil, fmt.Errorf("assembling file sink for %q: %w", cfg.Name, err)
		}
		sinks = append(sinks, fs)
	}
	if cfg.EnableJournal && journalAvailable() {
		sinks = append(sinks, newJournalSink())
	}
	if cfg.EnableBuffer && deps.buffer != nil {
		sinks = append(sinks, &bufferSink{buffer: deps.buffer})
	}

	if len(sinks) == 0 {
		return nil, &ConfigError{Name: cfg.Name, Err: ErrNoSinks}
	}
	return sinks, nil
}

// Severity colors follow the usual console convention. fatih/color
// disables itself when stdout is not a terminal, so files and pipes get
// plain text.
var levelColors = map[Severity]*color.Color{
	SeverityTrace:    color.New(color.FgHiBlack),
	SeverityDebug:    color.New(color.FgCyan),
	SeverityInfo:     color.New(color.FgGreen),
	SeverityWarning:  color.New(color.FgYellow),
	SeverityError:    color.New(color.FgRed),
	SeverityCritical: color.New(color.FgHiWhite, color.BgRed, color.Bold),
}

// consoleSink writes formatted lines to the process's stdout.
type consoleSink struct {
	mu  sync.Mutex
	out io.Writer
	pat *pattern
}

func newConsoleSink(out io.Writer, pat *pattern) *consoleSink {
	return &consoleSink{out: out, pat: pat}
}

func (s *consoleSink) kind() string { return "console" }

func (s *consoleSink) write(e Entry) error {
	levelText := e.Level.String()
	if c, ok := levelColors[e.Level]; ok {
		levelText = c.Sprint(levelText)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	line := s.pat.render(make([]byte, 0, 128), e, levelText)
	line = append(line, '\n')
	_, err := s.out.Write(line)
	return err
}

// stdout is unbuffered on our side; nothing to force out.
func (s *consoleSink) flush() error { return nil }
func (s *consoleSink) close() error { return nil }

// bufferSink records entries in the registry's shared ring buffer.
type bufferSink struct {
	buffer *RingBuffer
}

func (s *bufferSink) kind() string { return "buffer" }

func (s *bufferSink) write(e Entry) error {
	s.buffer.Write(e)
	return nil
}

func (s *bufferSink) flush() error { return nil }
func (s *bufferSink) close() error { return nil }

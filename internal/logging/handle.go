package logging

import (
	"fmt"
	"log/slog"
	"time"
)

// Handle is the named, level-gated emission surface returned by the
// registry. Many call sites may hold the same Handle; the registry keeps
// one per name. The threshold lives in a slog.LevelVar, so level reads on
// the hot path are a single atomic load.
type Handle struct {
	name  string
	level slog.LevelVar
	sinks []sink
	hooks Hooks
}

func newHandle(cfg SinkConfig, deps sinkDeps) (*Handle, error) {
	sinks, err := buildSinks(cfg, deps)
	if err != nil {
		return nil, err
	}
	h := &Handle{
		name:  cfg.Name,
		sinks: sinks,
		hooks: deps.hooks,
	}
	h.level.Set(cfg.Level.Level())
	return h, nil
}

// Name returns the immutable registry key of this handle.
func (h *Handle) Name() string { return h.name }

// SetLevel changes the severity threshold for subsequent calls.
func (h *Handle) SetLevel(s Severity) { h.level.Set(s.Level()) }

// Level returns the current severity threshold.
func (h *Handle) Level() Severity { return SeverityFromLevel(h.level.Level()) }

// Enabled reports whether a call at severity s would currently emit.
// An Off threshold suppresses everything, including Critical.
func (h *Handle) Enabled(s Severity) bool {
	return s.Level() >= h.level.Level()
}

// Trace logs at Trace severity with fmt.Sprintf formatting.
func (h *Handle) Trace(format string, args ...any) { h.log(SeverityTrace, format, args...) }

// Debug logs at Debug severity.
func (h *Handle) Debug(format string, args ...any) { h.log(SeverityDebug, format, args...) }

// Info logs at Info severity.
func (h *Handle) Info(format string, args ...any) { h.log(SeverityInfo, format, args...) }

// Warning logs at Warning severity.
func (h *Handle) Warning(format string, args ...any) { h.log(SeverityWarning, format, args...) }

// Error logs at Error severity.
func (h *Handle) Error(format string, args ...any) { h.log(SeverityError, format, args...) }

// Critical logs at Critical severity.
func (h *Handle) Critical(format string, args ...any) { h.log(SeverityCritical, format, args...) }

// log gates on the threshold before touching the arguments; a suppressed
// call never formats its message. Sink write failures are swallowed here:
// they are reported through the drop hook and must not reach the caller.
func (h *Handle) log(s Severity, format string, args ...any) {
	if s.Level() < h.level.Level() {
		return
	}

	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	e := Entry{
		Time:    time.Now(),
		Logger:  h.name,
		Level:   s,
		Message: msg,
	}

	for _, sk := range h.sinks {
		if err := sk.write(e); err != nil {
			if h.hooks.OnDrop != nil {
				h.hooks.OnDrop(h.name, sk.kind(), err)
			}
		}
	}
	if h.hooks.OnEmit != nil {
		h.hooks.OnEmit(e)
	}
}

// Flush forces buffered sink output to be durably written before
// returning.
func (h *Handle) Flush() {
	for _, sk := range h.sinks {
		if err := sk.flush(); err != nil {
			if h.hooks.OnDrop != nil {
				h.hooks.OnDrop(h.name, sk.kind(), err)
			}
		}
	}
}

// closeSinks is called by the registry on shutdown. Writes on a handle
// held across shutdown hit closed sinks and are swallowed like any other
// sink fault.
func (h *Handle) closeSinks() {
	for _, sk := range h.sinks {
		sk.close()
	}
}

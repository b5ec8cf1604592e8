package logging

import (
	"fmt"
	"sync"
)

// DefaultName is the registry key of the handle created by Initialize.
const DefaultName = "default"

const defaultBufferSize = 1024

// Registry is the process-wide map of named handles with an explicit
// initialize/use/shutdown lifecycle: Uninitialized -> Active ->
// Uninitialized. Shutdown returns it to the start state, so a registry
// can be re-initialized. The package-level functions operate on one
// default instance; tests construct their own.
type Registry struct {
	mu      sync.RWMutex
	active  bool
	handles map[string]*Handle
	hooks   Hooks
	buffer  *RingBuffer
}

// Option configures a Registry at construction.
type Option func(*Registry)

// WithHooks attaches emission/rotation/drop observers.
func WithHooks(h Hooks) Option {
	return func(r *Registry) { r.hooks = h }
}

// WithBufferSize sets the capacity of the shared recent-entry buffer.
func WithBufferSize(n int) Option {
	return func(r *Registry) { r.buffer = NewRingBuffer(n) }
}

// NewRegistry returns an Uninitialized registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		buffer: NewRingBuffer(defaultBufferSize),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Initialize creates the default handle (console plus rotating file at
// DefaultFilePath) and marks the registry Active. Calling it while
// already Active is a no-op returning nil; the default handle is
// unchanged. On assembly failure the registry stays Uninitialized.
func (r *Registry) Initialize(defaultLevel Severity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.active {
		return nil
	}

	cfg := NewSinkConfig(DefaultName)
	cfg.Level = defaultLevel
	cfg.EnableFile = true
	cfg.FilePath = DefaultFilePath

	h, err := newHandle(cfg, r.deps())
	if err != nil {
		return fmt.Errorf("initializing default logger: %w", err)
	}

	r.handles = map[string]*Handle{DefaultName: h}
	r.active = true
	return nil
}

// CreateOrGet registers a handle for cfg.Name, or returns the existing
// one unchanged when the name is already taken; the supplied config is
// not reapplied on a name hit. Validation or assembly failure returns a
// nil handle and leaves the registry untouched.
//
// Calling CreateOrGet on an Uninitialized registry is a programmer error
// and panics.
func (r *Registry) CreateOrGet(cfg SinkConfig) (*Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.active {
		panic("logging: CreateOrGet called before Initialize")
	}

	if h, ok := r.handles[cfg.Name]; ok {
		return h, nil
	}

	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	h, err := newHandle(cfg, r.deps())
	if err != nil {
		return nil, err
	}
	r.handles[cfg.Name] = h
	return h, nil
}

// Get returns the handle registered under name, or nil. It never fails
// and may run concurrently with other lookups.
func (r *Registry) Get(name string) *Handle {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.handles[name]
}

// Default returns the default handle, or nil while Uninitialized.
func (r *Registry) Default() *Handle {
	return r.Get(DefaultName)
}

// Recent returns the entries currently held in the shared ring buffer.
func (r *Registry) Recent() []Entry {
	return r.buffer.ReadAll()
}

// Shutdown flushes every registered handle, closes their sinks, discards
// all handles and returns the registry to Uninitialized. A no-op while
// Uninitialized. Handles held by callers stay usable for in-flight calls;
// their writes after shutdown are dropped at the sink.
func (r *Registry) Shutdown() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.active {
		return
	}
	for _, h := range r.handles {
		h.Flush()
		h.closeSinks()
	}
	r.handles = nil
	r.active = false
}

func (r *Registry) deps() sinkDeps {
	return sinkDeps{hooks: r.hooks, buffer: r.buffer}
}

// std is the process-wide registry behind the package-level API.
var (
	stdMu sync.RWMutex
	std   = NewRegistry()
)

// DefaultRegistry returns the process-wide registry instance.
func DefaultRegistry() *Registry {
	stdMu.RLock()
	defer stdMu.RUnlock()
	return std
}

// SetDefaultRegistry replaces the process-wide registry. Meant for wiring
// hooks at startup (before Initialize) and for resetting state in tests.
func SetDefaultRegistry(r *Registry) {
	stdMu.Lock()
	defer stdMu.Unlock()
	std = r
}

// Initialize initializes the process-wide registry.
func Initialize(defaultLevel Severity) error {
	return DefaultRegistry().Initialize(defaultLevel)
}

// CreateOrGet registers or returns a named handle on the process-wide
// registry.
func CreateOrGet(cfg SinkConfig) (*Handle, error) {
	return DefaultRegistry().CreateOrGet(cfg)
}

// Get looks up a named handle on the process-wide registry.
func Get(name string) *Handle {
	return DefaultRegistry().Get(name)
}

// GetDefault returns the process-wide default handle, or nil before
// Initialize.
func GetDefault() *Handle {
	return DefaultRegistry().Default()
}

// Shutdown shuts down the process-wide registry.
func Shutdown() {
	DefaultRegistry().Shutdown()
}

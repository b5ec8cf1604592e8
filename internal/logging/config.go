package logging

import (
	"errors"
	"fmt"
)

// Defaults for SinkConfig, matching the file sink's conventional bounds.
const (
	DefaultMaxFileSize = 10 * 1024 * 1024
	DefaultMaxFiles    = 5
	DefaultPattern     = "[%Y-%m-%d %H:%M:%S.%e] [%n] [%l] %v"
)

// DefaultFilePath is where the default handle writes when no path is
// configured explicitly.
const DefaultFilePath = "logs/dashcam.log"

// Validation failures for SinkConfig.
var (
	ErrEmptyName       = errors.New("logger name is empty")
	ErrNoSinks         = errors.New("neither console nor file output is enabled")
	ErrMissingFilePath = errors.New("file output enabled but file_path is empty")
	ErrBadFileSize     = errors.New("max_file_size must be positive")
	ErrBadFileCount    = errors.New("max_files must be positive")
)

// ConfigError reports an invalid SinkConfig, naming the logger it was for.
type ConfigError struct {
	Name string
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("invalid sink config: %v", e.Err)
	}
	return fmt.Sprintf("invalid sink config for %q: %v", e.Name, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// SinkConfig describes where and how a named handle writes.
// Zero values for MaxFileSize, MaxFiles and Pattern mean the defaults;
// NewSinkConfig fills them in.
type SinkConfig struct {
	// Name keys the handle in the registry. Must be non-empty and is
	// immutable once the handle exists.
	Name string `toml:"name"`

	// Level is the initial severity threshold.
	Level Severity `toml:"-"`

	// EnableConsole writes pattern-formatted lines to stdout.
	EnableConsole bool `toml:"console"`

	// EnableFile writes to a size/count-bounded rotating file at FilePath.
	EnableFile bool `toml:"file"`
	FilePath   string `toml:"file_path"`

	// MaxFileSize bounds the active file in bytes; MaxFiles bounds the
	// total file count (active plus numbered backups).
	MaxFileSize int64 `toml:"max_file_size"`
	MaxFiles    int   `toml:"max_files"`

	// Pattern is the line template. Recognized tokens: %Y %m %d %H %M %S
	// (timestamp parts), %e (milliseconds), %n (logger name), %l (severity
	// name), %v (message), %% (literal percent). Anything else is copied
	// through literally.
	Pattern string `toml:"pattern"`

	// EnableJournal additionally sends entries to the systemd journal when
	// journald is reachable. Does not satisfy the console-or-file invariant.
	EnableJournal bool `toml:"journal"`

	// EnableBuffer additionally records entries in the registry's in-memory
	// ring buffer for recent-entry inspection.
	EnableBuffer bool `toml:"buffer"`
}

// NewSinkConfig returns a console-only config at Info with defaults applied.
func NewSinkConfig(name string) SinkConfig {
	return SinkConfig{
		Name:          name,
		Level:         SeverityInfo,
		EnableConsole: true,
		MaxFileSize:   DefaultMaxFileSize,
		MaxFiles:      DefaultMaxFiles,
		Pattern:       DefaultPattern,
	}
}

// withDefaults fills zero-valued rotation and pattern fields.
func (c SinkConfig) withDefaults() SinkConfig {
	if c.MaxFileSize == 0 {
		c.MaxFileSize = DefaultMaxFileSize
	}
	if c.MaxFiles == 0 {
		c.MaxFiles = DefaultMaxFiles
	}
	if c.Pattern == "" {
		c.Pattern = DefaultPattern
	}
	return c
}

// Validate checks the config without side effects. It runs before sink
// assembly; a nil return means the config can be assembled.
func (c SinkConfig) Validate() error {
	if c.Name == "" {
		return &ConfigError{Err: ErrEmptyName}
	}
	if !c.EnableConsole && !c.EnableFile {
		return &ConfigError{Name: c.Name, Err: ErrNoSinks}
	}
	if c.EnableFile && c.FilePath == "" {
		return &ConfigError{Name: c.Name, Err: ErrMissingFilePath}
	}
	if c.MaxFileSize <= 0 {
		return &ConfigError{Name: c.Name, Err: ErrBadFileSize}
	}
	if c.MaxFiles <= 0 {
		return &ConfigError{Name: c.Name, Err: ErrBadFileCount}
	}
	return nil
}

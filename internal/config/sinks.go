package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/roadrec/dashlog/internal/logging"
)

// SinkFile is the parsed sink definition file:
//
//	[logging]
//	level = "info"
//
//	[[logging.sinks]]
//	name = "capture"
//	level = "debug"
//	console = true
//	file = true
//	file_path = "logs/capture.log"
//	max_file_size = 1048576
//	max_files = 3
type SinkFile struct {
	Logging LoggingSection `toml:"logging"`
}

// LoggingSection holds the default level and the named sink definitions.
type LoggingSection struct {
	Level string    `toml:"level"`
	Sinks []SinkDef `toml:"sinks"`
}

// SinkDef is one named sink definition. Levels are strings in TOML;
// rotation fields left at zero take the package defaults.
type SinkDef struct {
	Name        string `toml:"name"`
	Level       string `toml:"level"`
	Console     bool   `toml:"console"`
	File        bool   `toml:"file"`
	FilePath    string `toml:"file_path"`
	MaxFileSize int64  `toml:"max_file_size"`
	MaxFiles    int    `toml:"max_files"`
	Pattern     string `toml:"pattern"`
	Journal     bool   `toml:"journal"`
	Buffer      bool   `toml:"buffer"`
}

// LoadSinkFile reads and parses the sink definition file.
func LoadSinkFile(path string) (SinkFile, error) {
	var f SinkFile
	data, err := os.ReadFile(path)
	if err != nil {
		return f, fmt.Errorf("reading sink config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &f); err != nil {
		return f, fmt.Errorf("parsing sink config %s: %w", path, err)
	}
	return f, nil
}

// DefaultLevel parses the [logging] level, defaulting to Info.
func (f SinkFile) DefaultLevel() (logging.Severity, error) {
	return logging.ParseSeverity(f.Logging.Level)
}

// SinkConfig converts a definition into the logging package's config.
func (d SinkDef) SinkConfig() (logging.SinkConfig, error) {
	level, err := logging.ParseSeverity(d.Level)
	if err != nil {
		return logging.SinkConfig{}, fmt.Errorf("sink %q: %w", d.Name, err)
	}
	cfg := logging.SinkConfig{
		Name:          d.Name,
		Level:         level,
		EnableConsole: d.Console,
		EnableFile:    d.File,
		FilePath:      d.FilePath,
		MaxFileSize:   d.MaxFileSize,
		MaxFiles:      d.MaxFiles,
		Pattern:       d.Pattern,
		EnableJournal: d.Journal,
		EnableBuffer:  d.Buffer,
	}
	// Rotation fields left out of the TOML take the package defaults.
	if cfg.MaxFileSize == 0 {
		cfg.MaxFileSize = logging.DefaultMaxFileSize
	}
	if cfg.MaxFiles == 0 {
		cfg.MaxFiles = logging.DefaultMaxFiles
	}
	if cfg.Pattern == "" {
		cfg.Pattern = logging.DefaultPattern
	}
	return cfg, nil
}

// Apply registers every defined sink on the registry, or updates the
// level of ones that already exist. A name hit never reassembles sinks;
// only the threshold is mutable at runtime. Returns the first error but
// keeps applying the remaining definitions, so one bad sink does not take
// the others down with it.
func (f SinkFile) Apply(reg *logging.Registry) error {
	var firstErr error
	for _, def := range f.Logging.Sinks {
		cfg, err := def.SinkConfig()
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if h := reg.Get(cfg.Name); h != nil {
			h.SetLevel(cfg.Level)
			continue
		}
		if _, err := reg.CreateOrGet(cfg); err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("sink %q: %w", cfg.Name, err)
			}
		}
	}
	return firstErr
}

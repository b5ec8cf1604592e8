package logging

import (
	"fmt"
	"log/slog"
	"strings"
)

// Severity is the level of a log call or a handle threshold.
// Values are totally ordered; SeverityOff is a sentinel threshold
// that suppresses everything, including Critical.
type Severity int

const (
	SeverityTrace Severity = iota
	SeverityDebug
	SeverityInfo
	SeverityWarning
	SeverityError
	SeverityCritical
	SeverityOff
)

// Custom slog levels for the severities slog doesn't define.
// The stock levels are Debug=-4, Info=0, Warn=4, Error=8.
const (
	levelTrace    = slog.LevelDebug - 4
	levelCritical = slog.LevelError + 4
	levelOff      = slog.LevelError + 8
)

// String returns the severity name as it appears in log output.
func (s Severity) String() string {
	switch s {
	case SeverityTrace:
		return "trace"
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	case SeverityOff:
		return "off"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// Level converts the severity to its slog representation. Handles store
// their threshold in a slog.LevelVar, so all threshold comparisons happen
// in slog's level space.
func (s Severity) Level() slog.Level {
	switch s {
	case SeverityTrace:
		return levelTrace
	case SeverityDebug:
		return slog.LevelDebug
	case SeverityInfo:
		return slog.LevelInfo
	case SeverityWarning:
		return slog.LevelWarn
	case SeverityError:
		return slog.LevelError
	case SeverityCritical:
		return levelCritical
	default:
		return levelOff
	}
}

// SeverityFromLevel converts an slog level back to a Severity.
func SeverityFromLevel(l slog.Level) Severity {
	switch {
	case l <= levelTrace:
		return SeverityTrace
	case l <= slog.LevelDebug:
		return SeverityDebug
	case l <= slog.LevelInfo:
		return SeverityInfo
	case l <= slog.LevelWarn:
		return SeverityWarning
	case l <= slog.LevelError:
		return SeverityError
	case l <= levelCritical:
		return SeverityCritical
	default:
		return SeverityOff
	}
}

// ParseSeverity parses a severity name from config files and flags.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return SeverityTrace, nil
	case "debug":
		return SeverityDebug, nil
	case "info", "":
		return SeverityInfo, nil
	case "warn", "warning":
		return SeverityWarning, nil
	case "error":
		return SeverityError, nil
	case "critical", "crit":
		return SeverityCritical, nil
	case "off":
		return SeverityOff, nil
	default:
		return SeverityInfo, fmt.Errorf("unknown severity %q", s)
	}
}

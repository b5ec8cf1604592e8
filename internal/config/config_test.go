package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testOptions struct {
	Config      string
	LogLevel    string `toml:"logging.level" env:"LOG_LEVEL"`
	MetricsPort string `toml:"telemetry.port" env:"METRICS_PORT"`
	Watch       bool   `toml:"logging.watch" env:"WATCH"`
	Heartbeat   int    `toml:"daemon.heartbeat_seconds" env:"HEARTBEAT"`
}

func TestLoadOptionsFromTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashlog.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[logging]
level = "debug"
watch = true

[telemetry]
port = ":9200"

[daemon]
heartbeat_seconds = 7
`), 0o644))

	opts := testOptions{Config: path, LogLevel: "info"}
	require.NoError(t, LoadOptions(&opts, nil))

	assert.Equal(t, "debug", opts.LogLevel)
	assert.Equal(t, ":9200", opts.MetricsPort)
	assert.True(t, opts.Watch)
	assert.Equal(t, 7, opts.Heartbeat)
}

func TestLoadOptionsEnvOverridesTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashlog.toml")
	require.NoError(t, os.WriteFile(path, []byte("[logging]\nlevel = \"debug\"\n"), 0o644))

	t.Setenv("DASHLOG_LOG_LEVEL", "warning")

	opts := testOptions{Config: path}
	require.NoError(t, LoadOptions(&opts, nil))
	assert.Equal(t, "warning", opts.LogLevel)
}

func TestLoadOptionsMissingFileKeepsDefaults(t *testing.T) {
	opts := testOptions{Config: filepath.Join(t.TempDir(), "nope.toml"), LogLevel: "info"}
	require.NoError(t, LoadOptions(&opts, nil))
	assert.Equal(t, "info", opts.LogLevel)
}

func TestFieldNameToFlag(t *testing.T) {
	assert.Equal(t, "log-level", fieldNameToFlag("LogLevel"))
	assert.Equal(t, "port", fieldNameToFlag("Port"))
}

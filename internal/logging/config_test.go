package logging

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSinkConfigValidate(t *testing.T) {
	valid := NewSinkConfig("cam")
	require.NoError(t, valid.Validate())

	cases := []struct {
		name    string
		mutate  func(*SinkConfig)
		wantErr error
	}{
		{
			name:    "empty name",
			mutate:  func(c *SinkConfig) { c.Name = "" },
			wantErr: ErrEmptyName,
		},
		{
			name:    "no sinks enabled",
			mutate:  func(c *SinkConfig) { c.EnableConsole = false },
			wantErr: ErrNoSinks,
		},
		{
			name: "file without path",
			mutate: func(c *SinkConfig) {
				c.EnableFile = true
				c.FilePath = ""
			},
			wantErr: ErrMissingFilePath,
		},
		{
			name:    "zero file size",
			mutate:  func(c *SinkConfig) { c.MaxFileSize = 0 },
			wantErr: ErrBadFileSize,
		},
		{
			name:    "zero file count",
			mutate:  func(c *SinkConfig) { c.MaxFiles = 0 },
			wantErr: ErrBadFileCount,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := NewSinkConfig("cam")
			tc.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantErr)

			var ce *ConfigError
			assert.True(t, errors.As(err, &ce), "validation errors are ConfigErrors")
		})
	}
}

func TestSinkConfigDefaults(t *testing.T) {
	cfg := SinkConfig{Name: "cam", EnableConsole: true}
	cfg = cfg.withDefaults()

	assert.Equal(t, int64(DefaultMaxFileSize), cfg.MaxFileSize)
	assert.Equal(t, DefaultMaxFiles, cfg.MaxFiles)
	assert.Equal(t, DefaultPattern, cfg.Pattern)
	require.NoError(t, cfg.Validate())
}

func TestJournalDoesNotSatisfySinkInvariant(t *testing.T) {
	cfg := NewSinkConfig("j")
	cfg.EnableConsole = false
	cfg.EnableJournal = true
	assert.ErrorIs(t, cfg.Validate(), ErrNoSinks)
}

package config

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/roadrec/dashlog/internal/logging"
)

func watcherLogger(t *testing.T) *logging.Handle {
	t.Helper()
	reg := logging.NewRegistry()
	require.NoError(t, reg.Initialize(logging.SeverityInfo))
	t.Cleanup(reg.Shutdown)

	cfg := logging.NewSinkConfig("watcher-test")
	cfg.EnableConsole = false
	cfg.EnableFile = true
	cfg.FilePath = filepath.Join(t.TempDir(), "watcher.log")
	h, err := reg.CreateOrGet(cfg)
	require.NoError(t, err)
	return h
}

func TestWatcherNotifiesOnChange(t *testing.T) {
	chdirT(t, t.TempDir())

	path := writeSinkFile(t, sampleSinkFile)
	w := NewWatcher(path, watcherLogger(t), WithDebounce(50*time.Millisecond))
	defer w.Stop()

	reloaded := make(chan SinkFile, 1)
	w.OnReload(func(f SinkFile) {
		select {
		case reloaded <- f:
		default:
		}
	})

	require.NoError(t, w.Start())

	updated := sampleSinkFile + "\n[[logging.sinks]]\nname = \"encoder\"\nconsole = true\n"
	require.NoError(t, os.WriteFile(path, []byte(updated), 0o644))

	select {
	case f := <-reloaded:
		require.Len(t, f.Logging.Sinks, 3)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestWatcherReportsLoadErrors(t *testing.T) {
	chdirT(t, t.TempDir())

	path := writeSinkFile(t, sampleSinkFile)
	errs := make(chan error, 1)
	w := NewWatcher(path, watcherLogger(t),
		WithDebounce(50*time.Millisecond),
		WithErrorHandler(func(err error) {
			select {
			case errs <- err:
			default:
			}
		}),
	)
	defer w.Stop()

	var called atomic.Bool
	w.OnReload(func(SinkFile) { called.Store(true) })

	require.NoError(t, w.Start())
	require.NoError(t, os.WriteFile(path, []byte("[[logging"), 0o644))

	select {
	case <-errs:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for load error")
	}
	require.False(t, called.Load(), "handlers must not run on a broken config")
}

func TestWatcherStartFailsOnMissingFile(t *testing.T) {
	chdirT(t, t.TempDir())
	w := NewWatcher(filepath.Join(t.TempDir(), "nope.toml"), watcherLogger(t))
	require.Error(t, w.Start())
}

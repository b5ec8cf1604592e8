package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/danielgtaylor/huma/v2/humacli"

	"github.com/roadrec/dashlog/cmd"
	"github.com/roadrec/dashlog/internal/config"
	"github.com/roadrec/dashlog/internal/events"
	"github.com/roadrec/dashlog/internal/logging"
	"github.com/roadrec/dashlog/internal/telemetry"
)

// Options for the CLI - flat structure with toml mapping.
type Options struct {
	Config string `help:"Path to configuration file" short:"c" default:"dashlog.toml"`

	// Logging settings
	LogLevel    string `help:"Default log level (trace, debug, info, warning, error, critical, off)" default:"info" toml:"logging.level" env:"LOG_LEVEL"`
	WatchConfig bool   `help:"Apply sink level changes when the config file changes" default:"true" toml:"logging.watch" env:"LOGGING_WATCH"`

	// Telemetry settings
	MetricsEnabled bool   `help:"Serve Prometheus metrics" default:"true" toml:"telemetry.enabled" env:"METRICS_ENABLED"`
	MetricsPort    string `help:"Metrics listen address" default:":9091" toml:"telemetry.port" env:"METRICS_PORT"`

	// Device placeholder settings
	HeartbeatSeconds int `help:"Heartbeat period for the device components" default:"30" toml:"daemon.heartbeat_seconds" env:"HEARTBEAT_SECONDS"`
}

func main() {
	cli := humacli.New(func(hooks humacli.Hooks, opts *Options) {
		if loadErr := config.LoadOptions(opts, nil); loadErr != nil {
			slog.Warn("Failed to load config", "error", loadErr)
		}

		level, err := logging.ParseSeverity(opts.LogLevel)
		if err != nil {
			slog.Warn("Bad log level, using info", "error", err)
		}

		// Telemetry and the event bus observe the registry through hooks.
		metrics := telemetry.New()
		bus := events.New()
		reg := logging.NewRegistry(logging.WithHooks(observers(metrics, bus)))
		logging.SetDefaultRegistry(reg)

		if err := reg.Initialize(level); err != nil {
			slog.Error("Failed to initialize logging", "error", err)
			os.Exit(1)
		}
		logger := reg.Default()

		// Register the sinks defined in the config file, if any.
		if sinkFile, loadErr := config.LoadSinkFile(opts.Config); loadErr == nil {
			if applyErr := sinkFile.Apply(reg); applyErr != nil {
				logger.Warning("some sink definitions failed: %v", applyErr)
			}
		}

		// Rotation and drop diagnostics go to the default handle; drops
		// are reported through slog so a broken sink cannot feed itself.
		bus.Subscribe(func(e events.FileRotatedEvent) {
			logger.Debug("rotated %s (%d backups kept)", e.Path, e.Backups)
		})
		bus.Subscribe(func(e events.WriteDroppedEvent) {
			slog.Warn("log write dropped", "logger", e.Logger, "sink", e.Sink, "error", e.Error)
		})

		var watcher *config.Watcher
		if opts.WatchConfig {
			if _, statErr := os.Stat(opts.Config); statErr == nil {
				watcher = config.NewWatcher(opts.Config, logger)
				watcher.OnReload(func(f config.SinkFile) {
					if applyErr := f.Apply(reg); applyErr != nil {
						logger.Warning("sink config reload: %v", applyErr)
					}
				})
			}
		}

		var metricsServer *http.Server
		if opts.MetricsEnabled {
			mux := http.NewServeMux()
			mux.Handle("/metrics", metrics.Handler())
			metricsServer = &http.Server{Addr: opts.MetricsPort, Handler: mux}
		}

		stop := make(chan struct{})

		hooks.OnStart(func() {
			if watcher != nil {
				if startErr := watcher.Start(); startErr != nil {
					logger.Warning("config watcher failed to start: %v", startErr)
				}
			}
			if metricsServer != nil {
				go func() {
					logger.Info("metrics listening on %s", opts.MetricsPort)
					if serveErr := metricsServer.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
						logger.Error("metrics server: %v", serveErr)
					}
				}()
			}

			// The camera, encoder and storage components are placeholders;
			// they only exercise the logging API the way the real device
			// loops will.
			startHeartbeats(reg, time.Duration(opts.HeartbeatSeconds)*time.Second, stop)

			logger.Info("dashlog node started")
		})

		hooks.OnStop(func() {
			logger.Info("shutting down")
			close(stop)
			if watcher != nil {
				watcher.Stop()
			}
			if metricsServer != nil {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				metricsServer.Shutdown(ctx)
			}
			reg.Shutdown()
		})
	})

	cli.Root().AddCommand(cmd.CreateValidateCmd())
	cli.Root().AddCommand(cmd.CreateExerciseCmd())
	cli.Root().AddCommand(cmd.CreateVersionCmd())

	cli.Run()
}

// observers fans registry hooks out to telemetry and the event bus.
func observers(metrics *telemetry.Metrics, bus *events.Bus) logging.Hooks {
	mh := metrics.Hooks()
	return logging.Hooks{
		OnEmit: func(e logging.Entry) {
			mh.OnEmit(e)
			bus.Publish(events.EntryLoggedEvent{
				Logger:    e.Logger,
				Level:     e.Level.String(),
				Message:   e.Message,
				Timestamp: e.Time,
			})
		},
		OnRotate: func(logger, path string, backups int) {
			mh.OnRotate(logger, path, backups)
			bus.Publish(events.FileRotatedEvent{Logger: logger, Path: path, Backups: backups})
		},
		OnDrop: func(logger, sinkKind string, err error) {
			mh.OnDrop(logger, sinkKind, err)
			bus.Publish(events.WriteDroppedEvent{Logger: logger, Sink: sinkKind, Error: err.Error()})
		},
	}
}

// startHeartbeats runs the placeholder device components until stop is
// closed. Each gets its own named handle, falling back to the default
// when named creation fails.
func startHeartbeats(reg *logging.Registry, period time.Duration, stop <-chan struct{}) {
	for _, name := range []string{"capture", "encoder", "storage"} {
		cfg := logging.NewSinkConfig(name)
		cfg.EnableFile = true
		cfg.FilePath = "logs/" + name + ".log"

		h, err := reg.CreateOrGet(cfg)
		if err != nil {
			reg.Default().Warning("falling back to default logger for %s: %v", name, err)
			h = reg.Default()
		}

		go func(name string, h *logging.Handle) {
			ticker := time.NewTicker(period)
			defer ticker.Stop()
			h.Info("%s component ready (placeholder)", name)
			for {
				select {
				case <-stop:
					return
				case <-ticker.C:
					h.Debug("%s heartbeat", name)
				}
			}
		}(name, h)
	}
}

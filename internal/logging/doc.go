// Package logging is the process-wide registry of named, independently
// configured loggers backing the dashcam node.
//
// # Overview
//
// Each handle owns an assembled sink chain built from a declarative
// SinkConfig:
//   - console sink: pattern-formatted lines on stdout, severity colorized
//     when stdout is a terminal
//   - rotating file sink: size/count-bounded files with numeric backups
//     (dashcam.log, dashcam.1.log, ...)
//   - journal sink: systemd journal, when journald is reachable
//   - buffer sink: shared in-memory ring of recent entries
//
// # Lifecycle
//
// Initialize the registry once at startup, look up handles by name, shut
// down on exit:
//
//	if err := logging.Initialize(logging.SeverityInfo); err != nil {
//		// startup failure: the process has no default logger
//	}
//	defer logging.Shutdown()
//
//	cfg := logging.NewSinkConfig("capture")
//	cfg.Level = logging.SeverityDebug
//	cfg.EnableFile = true
//	cfg.FilePath = "logs/capture.log"
//	capture, err := logging.CreateOrGet(cfg)
//	if err != nil {
//		capture = logging.GetDefault() // named creation is not fatal
//	}
//	capture.Info("capture started on %s", device)
//
// Shutdown flushes every handle before discarding it; everything written
// before the call is durable in its file sink afterwards. The registry
// may be re-initialized after Shutdown.
//
// # Filtering
//
// Calls below a handle's threshold return before formatting their
// arguments, so a suppressed Debug call costs an atomic load and a
// comparison. SeverityOff suppresses everything, including Critical.
// Thresholds are mutable at runtime via SetLevel; the config watcher uses
// this to apply level changes from the sink definition file.
//
// # Failure policy
//
// Invalid configs and environmental assembly failures (unwritable
// directory, permission denied) are returned as errors and never panic.
// Once a sink is live, its write failures are swallowed: counted through
// the registry hooks, never surfaced to the calling code. The only panic
// is the documented programmer error of using CreateOrGet before
// Initialize.
package logging

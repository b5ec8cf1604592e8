package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roadrec/dashlog/internal/config"
	"github.com/roadrec/dashlog/internal/logging"
)

// CreateExerciseCmd creates the exercise command: it stands up a private
// registry from a sink definition file, pushes synthetic traffic through
// every defined sink, and reports what landed on disk. Useful for
// checking rotation settings before deploying a config.
func CreateExerciseCmd() *cobra.Command {
	var configFile string
	var lines int

	cmd := &cobra.Command{
		Use:   "exercise",
		Short: "Emit synthetic log traffic through a sink definition file",
		Run: func(_ *cobra.Command, _ []string) {
			f, err := config.LoadSinkFile(configFile)
			if err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(1)
			}
			level, err := f.DefaultLevel()
			if err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(1)
			}

			reg := logging.NewRegistry()
			if err := reg.Initialize(level); err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(1)
			}
			defer reg.Shutdown()

			if err := f.Apply(reg); err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(1)
			}

			severities := []logging.Severity{
				logging.SeverityTrace,
				logging.SeverityDebug,
				logging.SeverityInfo,
				logging.SeverityWarning,
				logging.SeverityError,
			}
			for _, def := range f.Logging.Sinks {
				h := reg.Get(def.Name)
				if h == nil {
					continue
				}
				for i := 0; i < lines; i++ {
					sev := severities[i%len(severities)]
					switch sev {
					case logging.SeverityTrace:
						h.Trace("synthetic entry %d", i)
					case logging.SeverityDebug:
						h.Debug("synthetic entry %d", i)
					case logging.SeverityInfo:
						h.Info("synthetic entry %d", i)
					case logging.SeverityWarning:
						h.Warning("synthetic entry %d", i)
					default:
						h.Error("synthetic entry %d", i)
					}
				}
				h.Flush()

				if def.File {
					if info, statErr := os.Stat(def.FilePath); statErr == nil {
						fmt.Printf("%s: %d bytes at %s\n", def.Name, info.Size(), def.FilePath)
					}
				}
			}
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "dashlog.toml", "Sink definition file")
	cmd.Flags().IntVarP(&lines, "lines", "n", 100, "Lines to emit per sink")
	return cmd
}

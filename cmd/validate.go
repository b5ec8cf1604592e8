package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roadrec/dashlog/internal/config"
)

// CreateValidateCmd creates the validate command. It checks every sink
// definition in the config file without assembling any sinks, so it is
// safe to run against a live deployment's config.
func CreateValidateCmd() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a sink definition file",
		Long: `Parses the sink definition file and runs configuration validation on ` +
			`every defined sink. Exits non-zero if any definition is invalid.`,
		Run: func(_ *cobra.Command, _ []string) {
			f, err := config.LoadSinkFile(configFile)
			if err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(1)
			}

			if _, err := f.DefaultLevel(); err != nil {
				fmt.Fprintf(os.Stderr, "error: default level: %v\n", err)
				os.Exit(1)
			}

			failed := 0
			for _, def := range f.Logging.Sinks {
				cfg, err := def.SinkConfig()
				if err == nil {
					err = cfg.Validate()
				}
				if err != nil {
					failed++
					fmt.Fprintf(os.Stderr, "invalid: %v\n", err)
					continue
				}
				fmt.Printf("ok: %s (level=%s console=%t file=%t)\n",
					cfg.Name, cfg.Level, cfg.EnableConsole, cfg.EnableFile)
			}

			if failed > 0 {
				fmt.Fprintf(os.Stderr, "%d of %d sink definitions invalid\n", failed, len(f.Logging.Sinks))
				os.Exit(1)
			}
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "dashlog.toml", "Sink definition file to validate")
	return cmd
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roadrec/dashlog/internal/version"
)

// CreateVersionCmd creates the version command.
func CreateVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and build information",
		Run: func(_ *cobra.Command, _ []string) {
			info := version.Get()
			fmt.Printf("dashlog %s (%s, built %s, %s, %s)\n",
				info.Version, info.GitCommit, info.BuildDate, info.GoVersion, info.Platform)
		},
	}
}

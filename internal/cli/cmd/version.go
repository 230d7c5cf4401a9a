package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// BuildInfo carries the ldflags-injected build metadata from main.
type BuildInfo struct {
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
}

var buildInfo BuildInfo

// SetBuildInfo stores build metadata for the version command.
func SetBuildInfo(info BuildInfo) {
	buildInfo = info
	rootCmd.Version = info.Version
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("timeout-override %s\n", buildInfo.Version)
		fmt.Printf("  commit:  %s\n", buildInfo.Commit)
		fmt.Printf("  built:   %s\n", buildInfo.BuildDate)
		fmt.Printf("  go:      %s\n", buildInfo.GoVersion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

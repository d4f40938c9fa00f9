package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"uitest/internal/version"
)

var versionShowFull bool

func init() {
	versionCmd.Flags().BoolVar(&versionShowFull, "full", false, "show every recorded bit of build metadata")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show uitest build fingerprints",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		v := strings.TrimSpace(version.Version)
		if v == "" {
			v = "dev"
		}
		fmt.Fprintf(out, "uitest %s\n", v)
		if versionShowFull {
			fmt.Fprintf(out, "commit: %s\n", valueOrUnknown(version.GitCommit))
			fmt.Fprintf(out, "built:  %s\n", valueOrUnknown(version.BuildDate))
		}
	},
}

func valueOrUnknown(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return "unknown"
	}
	return s
}

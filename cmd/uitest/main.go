package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"uitest/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "uitest",
	Short: "Compiler UI test harness",
	Long:  `uitest invokes a compiler on test files and verifies its diagnostics against source annotations and recorded baseline output`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func useColor(cmd *cobra.Command, f *os.File) bool {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		mode = "auto"
	}
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(f)
	}
}

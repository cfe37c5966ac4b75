package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

// Exit codes
const (
	ExitSuccess      = 0
	ExitUsageError   = 1
	ExitInputError   = 2
	ExitLicenseError = 3
)

// exitCode is set by command handlers to control the process exit code.
var exitCode = ExitSuccess

var (
	flagConfig   string
	flagStable   bool
	flagFormat   string
	flagFile     string
	flagStdin    bool
	flagInterval time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "clipscrub",
	Short: "Sanitize clipboard text before pasting it into AI assistants",
	Long: "Clipscrub replaces e-mails, IPs, UUIDs, JWTs and secret-looking tokens in\n" +
		"your clipboard with placeholders, entirely offline.",
	SilenceUsage: true,
	RunE:         runClean,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print clipscrub version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "clipscrub version %s\n", version)
	},
}

// Run executes the root command and returns an exit code.
func Run() int {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file path (paid)")
	rootCmd.PersistentFlags().BoolVar(&flagStable, "stable", false, "stable numbered placeholders, e.g. <EMAIL_1> (paid)")
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "", "report format: text, json or yaml (json/yaml paid)")

	rootCmd.Flags().StringVar(&flagFile, "file", "", "sanitize a file instead of the clipboard (paid)")
	rootCmd.Flags().BoolVar(&flagStdin, "stdin", false, "sanitize stdin instead of the clipboard (paid)")

	watchCmd.Flags().DurationVar(&flagInterval, "interval", 0, "poll interval, >= 100ms (default 750ms)")

	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(deviceIDCmd)
	rootCmd.AddCommand(licenseCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error
		return ExitUsageError
	}

	return exitCode
}

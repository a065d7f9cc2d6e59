// Package cli provides the httpstub command-line tool for inspecting and
// checking stub files outside a test run.
package cli

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/getmockd/httpstub/pkg/logging"
)

// BuildInfo carries version details set at link time.
type BuildInfo struct {
	Version   string
	Commit    string
	BuildDate string
}

var (
	logLevel  string
	logFormat string

	// log is configured in the root PersistentPreRun and shared by all
	// commands.
	log = logging.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "httpstub",
	Short: "Inspect and check HTTP stub files",
	Long: `httpstub works with the stub files consumed by the httpstub library:
collections of canned HTTP responses keyed by (method, URL).

It validates files, lists the rules they contain, and renders a single
stubbed response against a fixture directory, without touching any
application code.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		// A .env next to the working directory may supply defaults for
		// flags the caller did not set.
		_ = godotenv.Load()

		if !cmd.Flags().Changed("log-level") {
			if v := os.Getenv("HTTPSTUB_LOG_LEVEL"); v != "" {
				logLevel = v
			}
		}
		if !cmd.Flags().Changed("log-format") {
			if v := os.Getenv("HTTPSTUB_LOG_FORMAT"); v != "" {
				logFormat = v
			}
		}

		log = logging.New(logging.Config{
			Level:  logging.ParseLevel(logLevel),
			Format: logging.ParseFormat(logFormat),
		})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format (text, json)")
}

// Execute runs the CLI.
func Execute(info BuildInfo) error {
	rootCmd.Version = info.Version
	rootCmd.SetVersionTemplate(
		"httpstub " + info.Version + " (commit " + info.Commit + ", built " + info.BuildDate + ")\n")
	return rootCmd.Execute()
}

// Logger exposes the configured logger to commands.
func Logger() *slog.Logger {
	return log
}

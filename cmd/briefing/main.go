// Command briefing serves, prints, validates, and publishes the weekly
// US–LATAM policy briefing.
package main

import (
	"log/slog"
	"os"

	"github.com/couchcryptid/latam-briefing-service/internal/observability"
	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "briefing",
	Short:        "Weekly US–LATAM policy briefing",
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard over HTTP",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the briefing, or one country's detail, to the terminal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runShow(cmd.OutOrStdout(), cliLogger(cmd), observability.NewMetrics(), showOpts)
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the briefing dataset's integrity",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runValidate(cmd.OutOrStdout(), cliLogger(cmd), observability.NewMetrics(), validateFile)
	},
}

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish every country view to Kafka once",
	Args:  cobra.NoArgs,
	RunE:  runPublish,
}

var (
	showOpts     showOptions
	validateFile string
)

func init() {
	showCmd.Flags().StringVarP(&showOpts.country, "country", "c", "", "Show this country's detail instead of the full briefing")
	showCmd.Flags().StringVar(&showOpts.style, "style", "dark", "Markdown style: dark, light, or notty")
	showCmd.Flags().IntVar(&showOpts.width, "width", 80, "Word-wrap column")
	validateCmd.Flags().StringVarP(&validateFile, "file", "f", "", "Validate this TOML file instead of the embedded dataset")

	rootCmd.AddCommand(serveCmd, showCmd, validateCmd, publishCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// cliLogger logs to stderr so it never interleaves with command output.
func cliLogger(cmd *cobra.Command) *slog.Logger {
	return observability.NewLogger(cmd.ErrOrStderr(), sharedcfg.EnvOrDefault("LOG_LEVEL", "warn"), "text")
}

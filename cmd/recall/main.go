// Package main provides the recall terminal client: a timed memorize and
// recall sprint played against the recall API.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/phrazzld/recall-sprint/internal/clientconfig"
)

var (
	configFile  string
	apiURL      string
	email       string
	logFile     string
	logLevel    string
	historyPath string
	noHistory   bool

	historyLast int
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "recall",
		Short:         "Word Recall Sprint in the terminal",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPlayCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", clientconfig.DefaultConfigPath(), "path to the TOML config file")
	flags.StringVar(&apiURL, "api-url", clientconfig.DefaultAPIURL, "base URL of the recall API")
	flags.StringVar(&email, "email", "", "email to pre-fill on the welcome screen")
	flags.StringVar(&logFile, "log-file", clientconfig.DefaultLogPath(), "file that receives client logs")
	flags.StringVar(&logLevel, "log-level", clientconfig.DefaultLogLevel, "log level (debug, info, warn, error)")
	flags.StringVar(&historyPath, "history-db", clientconfig.DefaultHistoryPath(), "path to the local run history database")
	flags.BoolVar(&noHistory, "no-history", false, "do not record runs locally")

	rootCmd.AddCommand(newPlayCmd())
	rootCmd.AddCommand(newHistoryCmd())
	return rootCmd
}

func newPlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play a sprint (default)",
		Args:  cobra.NoArgs,
		RunE:  runPlayCmd,
	}
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show locally recorded runs",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().IntVar(&historyLast, "last", 10, "number of runs to list (0 for all)")
	return cmd
}

// resolveSettings merges the config file with explicitly set flags.
func resolveSettings(cmd *cobra.Command) (clientconfig.Settings, error) {
	fileCfg, err := clientconfig.LoadConfig(configFile)
	if err != nil {
		return clientconfig.Settings{}, fmt.Errorf("failed to load config: %w", err)
	}
	settings, err := fileCfg.Resolve()
	if err != nil {
		return clientconfig.Settings{}, fmt.Errorf("invalid config: %w", err)
	}

	applyStringFlag(cmd, "api-url", &settings.APIURL, apiURL)
	applyStringFlag(cmd, "email", &settings.Email, email)
	applyStringFlag(cmd, "log-file", &settings.LogFile, logFile)
	applyStringFlag(cmd, "log-level", &settings.LogLevel, logLevel)
	applyStringFlag(cmd, "history-db", &settings.HistoryPath, historyPath)
	if cmd.Flags().Changed("no-history") {
		settings.HistoryEnabled = !noHistory
	}
	return settings, nil
}

func applyStringFlag(cmd *cobra.Command, name string, target *string, value string) {
	if cmd.Flags().Changed(name) {
		*target = value
	}
}

func logErrf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format, args...)
}

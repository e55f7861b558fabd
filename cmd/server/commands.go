package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/phrazzld/recall-sprint/internal/config"
	"github.com/phrazzld/recall-sprint/internal/platform/postgres"
	"github.com/phrazzld/recall-sprint/internal/service"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			app, err := bootstrap(ctx, configPath)
			if err != nil {
				return err
			}
			defer app.cleanup()

			return app.Run(ctx)
		},
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate <command> [args]",
		Short:     "Run database migrations",
		Long:      "Run the goose migrations embedded in the binary. Commands: " + strings.Join(postgres.MigrationCommands, ", "),
		Args:      cobra.MinimumNArgs(1),
		ValidArgs: postgres.MigrationCommands,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !postgres.IsMigrationCommand(args[0]) {
				return fmt.Errorf("unknown migration command %q (want one of %s)",
					args[0], strings.Join(postgres.MigrationCommands, ", "))
			}

			app, err := bootstrap(cmd.Context(), configPath)
			if err != nil {
				return err
			}
			defer app.cleanup()

			return postgres.Migrate(cmd.Context(), app.db, app.logger, args[0], args[1:]...)
		},
	}
}

func newSeedCmd() *cobra.Command {
	var (
		file  string
		prune bool
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load names into the active pool",
		Long: "Read names, one per line, and mark them active in memory_names. " +
			"Blank lines and lines starting with # are skipped. With --prune, " +
			"active names missing from the input are deactivated.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			names, err := readNames(file, cmd.InOrStdin())
			if err != nil {
				return err
			}

			app, err := bootstrap(cmd.Context(), configPath)
			if err != nil {
				return err
			}
			defer app.cleanup()

			report, err := app.seedService.Seed(cmd.Context(), names, prune)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "submitted %d, activated %d, deactivated %d\n",
				report.Submitted, report.Changed, report.Deactivated)
			return err
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "-", "names file, or - for stdin")
	cmd.Flags().BoolVar(&prune, "prune", false, "deactivate active names absent from the input")
	return cmd
}

func readNames(path string, stdin io.Reader) ([]string, error) {
	if path == "" || path == "-" {
		return service.ParseNameList(stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open names file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()
	return service.ParseNameList(f)
}

// bootstrap loads configuration, sets up logging and connects to the database.
func bootstrap(ctx context.Context, path string) (*application, error) {
	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return newApplication(ctx, cfg)
}

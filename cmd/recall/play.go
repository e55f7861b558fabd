package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/phrazzld/recall-sprint/internal/client"
	"github.com/phrazzld/recall-sprint/internal/clientconfig"
	"github.com/phrazzld/recall-sprint/internal/events"
	"github.com/phrazzld/recall-sprint/internal/history"
	"github.com/phrazzld/recall-sprint/internal/platform/logger"
	"github.com/phrazzld/recall-sprint/internal/quiz"
	"github.com/phrazzld/recall-sprint/internal/tui"
)

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	settings, err := resolveSettings(cmd)
	if err != nil {
		return err
	}

	log, closeLog, err := openLogger(settings)
	if err != nil {
		return err
	}
	defer closeLog()

	api, err := client.New(settings.APIURL,
		client.WithHTTPClient(&http.Client{Timeout: settings.APITimeout}),
		client.WithLogger(log))
	if err != nil {
		return err
	}

	emitter := events.NewInMemoryEmitter(log)
	var summary tui.SummaryFunc
	if settings.HistoryEnabled {
		st, err := history.Open(settings.HistoryPath)
		if err != nil {
			return fmt.Errorf("failed to open history: %w", err)
		}
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logErrf("failed to close history: %v\n", cerr)
			}
		}()
		emitter.Subscribe(events.TypeRunFinished, history.NewRecorder(st, log))
		summary = st.Summary
	}

	bridge := tui.NewBridge()
	controller := quiz.NewController(quiz.DefaultSettings(), api, api,
		quiz.WithLogger(log),
		quiz.WithEmitter(emitter),
		quiz.WithObserver(bridge.Observe))

	model := tui.NewModel(controller, controller.State(),
		tui.WithEmail(settings.Email),
		tui.WithSummary(summary))
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return controller.Run(gctx)
	})
	g.Go(func() error {
		bridge.Run(gctx, program.Send, controller.State)
		return nil
	})

	log.Info("session started", "api_url", settings.APIURL, "history", settings.HistoryEnabled)
	_, runErr := program.Run()
	cancel()
	if err := g.Wait(); err != nil {
		return err
	}
	if runErr != nil {
		return fmt.Errorf("failed to run TUI: %w", runErr)
	}
	return nil
}

// openLogger writes JSON logs to the configured file so they never reach
// the terminal the TUI is drawing on.
func openLogger(settings clientconfig.Settings) (*slog.Logger, func(), error) {
	if settings.LogFile == "" {
		return logger.Discard(), func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(settings.LogFile), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(settings.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	closeFn := func() {
		if cerr := f.Close(); cerr != nil {
			logErrf("failed to close log file: %v\n", cerr)
		}
	}
	return logger.New(f, settings.LogLevel).With("app", "recall"), closeFn, nil
}

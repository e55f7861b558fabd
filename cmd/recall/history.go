package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/phrazzld/recall-sprint/internal/history"
	"github.com/phrazzld/recall-sprint/internal/quiz"
)

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	settings, err := resolveSettings(cmd)
	if err != nil {
		return err
	}

	st, err := history.Open(settings.HistoryPath)
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close history: %v\n", cerr)
		}
	}()

	return printHistory(cmd.Context(), cmd.OutOrStdout(), st, historyLast)
}

type historyReader interface {
	ListRuns(ctx context.Context, limit int) ([]history.Run, error)
	Summary(ctx context.Context) (history.Summary, error)
}

func printHistory(ctx context.Context, out io.Writer, st historyReader, limit int) error {
	summary, err := st.Summary(ctx)
	if err != nil {
		return err
	}
	if summary.Runs == 0 {
		_, err := fmt.Fprintln(out, "No runs recorded yet.")
		return err
	}

	runs, err := st.ListRuns(ctx, limit)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "WHEN\tSCORE\tSTATUS\tEMAIL")
	for _, run := range runs {
		fmt.Fprintf(tw, "%s\t%d / %d\t%s\t%s\n",
			run.CompletedAt.Local().Format(time.DateTime),
			run.Score, presentedOrDefault(run.Presented),
			run.Status,
			run.Email)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	_, err = fmt.Fprintf(out, "\n%d runs  Last %d  Best %d\n", summary.Runs, summary.Last.Score, summary.Best.Score)
	return err
}

func presentedOrDefault(n int) int {
	if n <= 0 {
		return quiz.DefaultDisplayCount
	}
	return n
}

package history

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/recall-sprint/internal/events"
)

// RunWriter is the part of Store the Recorder needs.
type RunWriter interface {
	InsertRun(ctx context.Context, run Run) (int64, error)
}

// Recorder stores every run_finished event it receives.
type Recorder struct {
	runs   RunWriter
	logger *slog.Logger
}

// NewRecorder creates a Recorder writing to runs.
func NewRecorder(runs RunWriter, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{runs: runs, logger: logger.With("component", "history_recorder")}
}

// HandleEvent implements events.Handler.
func (r *Recorder) HandleEvent(ctx context.Context, event *events.Event) error {
	if event.Type != events.TypeRunFinished {
		return nil
	}

	var payload events.RunFinishedPayload
	if err := event.UnmarshalPayload(&payload); err != nil {
		return fmt.Errorf("failed to decode run event: %w", err)
	}

	id, err := r.runs.InsertRun(ctx, Run{
		Email:       payload.Email,
		Score:       payload.Score,
		Status:      payload.Status,
		Presented:   len(payload.Presented),
		Answers:     payload.Answers,
		CompletedAt: event.CreatedAt,
	})
	if err != nil {
		return err
	}

	r.logger.Debug("run recorded", "run_id", id, "score", payload.Score)
	return nil
}

var _ events.Handler = (*Recorder)(nil)

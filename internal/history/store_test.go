package history

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/recall-sprint/internal/events"
	"github.com/phrazzld/recall-sprint/internal/platform/logger"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStoreRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	runs := []Run{
		{Email: "a@example.com", Score: 12, Status: "good", Presented: 20, Answers: []string{"nora", "miles"}, CompletedAt: base},
		{Email: "a@example.com", Score: 17, Status: "better", Presented: 20, Answers: nil, CompletedAt: base.Add(time.Minute)},
		{Email: "a@example.com", Score: 3, Status: "fail", Presented: 20, Answers: []string{"x"}, CompletedAt: base.Add(2 * time.Minute)},
	}
	for _, run := range runs {
		id, err := s.InsertRun(ctx, run)
		require.NoError(t, err)
		assert.Positive(t, id)
	}

	listed, err := s.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, 3, listed[0].Score)
	assert.Equal(t, 12, listed[2].Score)
	assert.Equal(t, []string{"nora", "miles"}, listed[2].Answers)
	assert.Equal(t, []string{}, listed[1].Answers)
	assert.True(t, base.Equal(listed[2].CompletedAt))

	limited, err := s.ListRuns(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	summary, err := s.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Runs)
	require.NotNil(t, summary.Last)
	require.NotNil(t, summary.Best)
	assert.Equal(t, 3, summary.Last.Score)
	assert.Equal(t, 17, summary.Best.Score)
}

func TestSummaryEmpty(t *testing.T) {
	s := openTestStore(t)

	summary, err := s.Summary(context.Background())
	require.NoError(t, err)
	assert.Zero(t, summary.Runs)
	assert.Nil(t, summary.Last)
	assert.Nil(t, summary.Best)

	runs, err := s.ListRuns(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestBestPrefersEarliestTie(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	first, err := s.InsertRun(ctx, Run{Email: "a@example.com", Score: 10, Status: "good", CompletedAt: base})
	require.NoError(t, err)
	_, err = s.InsertRun(ctx, Run{Email: "a@example.com", Score: 10, Status: "good", CompletedAt: base.Add(time.Hour)})
	require.NoError(t, err)

	summary, err := s.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, summary.Best.ID)
}

func TestInsertRunDefaultsTimestamp(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.InsertRun(ctx, Run{Email: "a@example.com", Score: 1, Status: "fail"})
	require.NoError(t, err)

	runs, err := s.ListRuns(ctx, 1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.WithinDuration(t, time.Now(), runs[0].CompletedAt, time.Minute)
}

func TestOpenReopensExistingDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.InsertRun(ctx, Run{Email: "a@example.com", Score: 4, Status: "fail"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	summary, err := s.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Runs)
}

func TestRecorder(t *testing.T) {
	s := openTestStore(t)
	emitter := events.NewInMemoryEmitter(logger.Discard())
	emitter.Subscribe(events.TypeRunFinished, NewRecorder(s, logger.Discard()))

	event, err := events.NewEvent(events.TypeRunFinished, events.RunFinishedPayload{
		Email:     "player@example.com",
		Presented: make([]string, 20),
		Answers:   []string{"nora"},
		Score:     1,
		Status:    "fail",
	})
	require.NoError(t, err)
	require.NoError(t, emitter.Emit(context.Background(), event))

	runs, err := s.ListRuns(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "player@example.com", runs[0].Email)
	assert.Equal(t, 20, runs[0].Presented)
	assert.Equal(t, []string{"nora"}, runs[0].Answers)
}

type failingWriter struct{}

func (failingWriter) InsertRun(context.Context, Run) (int64, error) {
	return 0, errors.New("disk full")
}

func TestRecorderErrors(t *testing.T) {
	r := NewRecorder(failingWriter{}, logger.Discard())

	t.Run("ignores other types", func(t *testing.T) {
		assert.NoError(t, r.HandleEvent(context.Background(), &events.Event{Type: "other"}))
	})

	t.Run("bad payload", func(t *testing.T) {
		err := r.HandleEvent(context.Background(), &events.Event{
			Type:    events.TypeRunFinished,
			Payload: json.RawMessage(`{"score":"high"}`),
		})
		assert.ErrorContains(t, err, "failed to decode run event")
	})

	t.Run("write failure", func(t *testing.T) {
		event, err := events.NewEvent(events.TypeRunFinished, events.RunFinishedPayload{Score: 1})
		require.NoError(t, err)
		assert.EqualError(t, r.HandleEvent(context.Background(), event), "disk full")
	})
}

package quiz

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/recall-sprint/internal/domain"
)

func testNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("Name%02d", i+1)
	}
	return names
}

// memorizing returns a session that has just entered memorize.
func memorizing(t *testing.T) State {
	t.Helper()
	s := NewState(DefaultSettings())
	s, effects := Transition(s, StartRequested{Email: "player@example.com"})
	require.Len(t, effects, 1)
	fetch := effects[0].(FetchNames)
	s, _ = Transition(s, NamesLoaded{Epoch: fetch.Epoch, Names: testNames(25), PoolSize: 40})
	require.Equal(t, StageMemorize, s.Stage)
	return s
}

func recalling(t *testing.T) State {
	t.Helper()
	s, _ := Transition(memorizing(t), SkipRequested{})
	require.Equal(t, StageRecall, s.Stage)
	return s
}

func findEffect[T Effect](effects []Effect) (T, bool) {
	for _, e := range effects {
		if typed, ok := e.(T); ok {
			return typed, true
		}
	}
	var zero T
	return zero, false
}

func TestNewState(t *testing.T) {
	s := NewState(Settings{})

	assert.Equal(t, StageWelcome, s.Stage)
	assert.Equal(t, DefaultSettings(), s.Settings())
	assert.Equal(t, DefaultMemorizeSeconds, s.Remaining)
	assert.Empty(t, s.Presented)
	assert.Nil(t, s.Outcome)
}

func TestStart(t *testing.T) {
	t.Run("invalid email stays in welcome", func(t *testing.T) {
		for _, email := range []string{"", "nope", "a@b", "a b@c.d", "@example.com"} {
			s, effects := Transition(NewState(DefaultSettings()), StartRequested{Email: email})

			assert.Equal(t, StageWelcome, s.Stage, email)
			assert.Empty(t, effects, email)
			assert.False(t, s.Loading, email)
			assert.ErrorIs(t, s.Err, domain.ErrInvalidEmail, email)
			assert.Equal(t, MsgInvalidEmail, Message(s.Err), email)
		}
	})

	t.Run("valid email starts a fetch", func(t *testing.T) {
		s0 := NewState(DefaultSettings())
		s, effects := Transition(s0, StartRequested{Email: "player@example.com"})

		assert.Equal(t, StageWelcome, s.Stage)
		assert.True(t, s.Loading)
		assert.NoError(t, s.Err)
		assert.Equal(t, "player@example.com", s.Email)
		assert.Greater(t, s.Epoch, s0.Epoch)
		assert.Equal(t, []Effect{FetchNames{Epoch: s.Epoch}}, effects)
	})

	t.Run("second start while loading is ignored", func(t *testing.T) {
		s, _ := Transition(NewState(DefaultSettings()), StartRequested{Email: "player@example.com"})
		again, effects := Transition(s, StartRequested{Email: "other@example.com"})

		assert.Empty(t, effects)
		assert.Equal(t, s.Epoch, again.Epoch)
		assert.Equal(t, "player@example.com", again.Email)
	})

	t.Run("start outside welcome is ignored", func(t *testing.T) {
		s := memorizing(t)
		next, effects := Transition(s, StartRequested{Email: "player@example.com"})
		assert.Empty(t, effects)
		assert.Equal(t, s.Epoch, next.Epoch)
	})
}

func TestNamesLoaded(t *testing.T) {
	loading := func() State {
		s, _ := Transition(NewState(DefaultSettings()), StartRequested{Email: "player@example.com"})
		return s
	}

	t.Run("enters memorize and starts countdown", func(t *testing.T) {
		s := loading()
		names := testNames(20)
		next, effects := Transition(s, NamesLoaded{Epoch: s.Epoch, Names: names, PoolSize: 120})

		assert.Equal(t, StageMemorize, next.Stage)
		assert.False(t, next.Loading)
		assert.Equal(t, names, next.Presented)
		assert.Equal(t, 120, next.PoolSize)
		assert.Equal(t, DefaultMemorizeSeconds, next.Remaining)
		assert.InDelta(t, 1.0, next.Progress(), 0.0001)
		assert.Equal(t, []Effect{StartTimer{
			Kind:  TimerCountdown,
			After: time.Second,
			Event: Tick{Epoch: next.Epoch},
		}}, effects)
	})

	t.Run("presented list is a private copy", func(t *testing.T) {
		s := loading()
		names := testNames(20)
		next, _ := Transition(s, NamesLoaded{Epoch: s.Epoch, Names: names})
		names[0] = "Mutated"

		assert.Equal(t, "Name01", next.Presented[0])
		assert.Equal(t, 20, next.PoolSize)
	})

	t.Run("extra names are truncated", func(t *testing.T) {
		s := loading()
		next, _ := Transition(s, NamesLoaded{Epoch: s.Epoch, Names: testNames(30), PoolSize: 30})
		assert.Len(t, next.Presented, DefaultDisplayCount)
	})

	t.Run("short list is a pool error", func(t *testing.T) {
		s := loading()
		next, effects := Transition(s, NamesLoaded{Epoch: s.Epoch, Names: testNames(19), PoolSize: 19})

		assert.Equal(t, StageWelcome, next.Stage)
		assert.Empty(t, effects)
		assert.False(t, next.Loading)
		assert.ErrorIs(t, next.Err, domain.ErrInsufficientPool)
		assert.Equal(t, MsgLoadFailed, Message(next.Err))
	})

	t.Run("stale epoch is ignored", func(t *testing.T) {
		s := loading()
		next, effects := Transition(s, NamesLoaded{Epoch: s.Epoch - 1, Names: testNames(20)})

		assert.Empty(t, effects)
		assert.Equal(t, StageWelcome, next.Stage)
		assert.True(t, next.Loading)
	})

	t.Run("failure returns to welcome and can retry", func(t *testing.T) {
		s := loading()
		boom := errors.New("connection refused")
		next, effects := Transition(s, NamesFailed{Epoch: s.Epoch, Err: boom})

		assert.Empty(t, effects)
		assert.Equal(t, StageWelcome, next.Stage)
		assert.False(t, next.Loading)
		assert.ErrorIs(t, next.Err, boom)

		retry, effects := Transition(next, StartRequested{Email: next.Email})
		assert.True(t, retry.Loading)
		assert.NoError(t, retry.Err)
		assert.Len(t, effects, 1)
	})
}

func TestCountdown(t *testing.T) {
	t.Run("tick decrements and re-arms", func(t *testing.T) {
		s := memorizing(t)
		next, effects := Transition(s, Tick{Epoch: s.Epoch})

		assert.Equal(t, DefaultMemorizeSeconds-1, next.Remaining)
		assert.Equal(t, StageMemorize, next.Stage)
		require.Len(t, effects, 1)
		timer := effects[0].(StartTimer)
		assert.Equal(t, TimerCountdown, timer.Kind)
		assert.Equal(t, Tick{Epoch: next.Epoch}, timer.Event)
	})

	t.Run("countdown reaches recall after the last tick", func(t *testing.T) {
		s := memorizing(t)
		var effects []Effect
		ticks := 0
		for s.Stage == StageMemorize {
			s, effects = Transition(s, Tick{Epoch: s.Epoch})
			ticks++
			require.LessOrEqual(t, ticks, DefaultMemorizeSeconds)
		}

		assert.Equal(t, DefaultMemorizeSeconds, ticks)
		assert.Equal(t, StageRecall, s.Stage)
		assert.Equal(t, []Effect{CancelTimers{}}, effects)
		assert.Zero(t, s.Progress())
	})

	t.Run("skip cancels timers", func(t *testing.T) {
		s := memorizing(t)
		next, effects := Transition(s, SkipRequested{})

		assert.Equal(t, StageRecall, next.Stage)
		assert.Greater(t, next.Epoch, s.Epoch)
		assert.Equal(t, []Effect{CancelTimers{}}, effects)
	})

	t.Run("tick from an old epoch is ignored", func(t *testing.T) {
		s := recalling(t)
		next, effects := Transition(s, Tick{Epoch: s.Epoch - 1})
		assert.Empty(t, effects)
		assert.Equal(t, s, next)
	})

	t.Run("skip outside memorize is ignored", func(t *testing.T) {
		s := NewState(DefaultSettings())
		next, effects := Transition(s, SkipRequested{})
		assert.Empty(t, effects)
		assert.Equal(t, s, next)
	})
}

func TestRecall(t *testing.T) {
	t.Run("changes update the unique count", func(t *testing.T) {
		s := recalling(t)
		s, _ = Transition(s, RecallChanged{Text: "Name01, name01 Name02\nzed"})

		assert.Equal(t, "Name01, name01 Name02\nzed", s.RecallText)
		assert.Equal(t, []string{"name01", "name02", "zed"}, s.ParsedAnswers())
		assert.Equal(t, 3, s.UniqueCount())
	})

	t.Run("empty submission is rejected", func(t *testing.T) {
		s := recalling(t)
		next, effects := Transition(s, RecallSubmitted{Text: " ,, \n "})

		assert.Empty(t, effects)
		assert.Equal(t, StageRecall, next.Stage)
		assert.False(t, next.Calculating)
		assert.ErrorIs(t, next.Err, domain.ErrEmptyRecall)
		assert.ErrorIs(t, next.Err, domain.ErrValidation)
		assert.Equal(t, MsgEmptyRecall, Message(next.Err))
	})

	t.Run("submission starts the scoring pause", func(t *testing.T) {
		s := recalling(t)
		next, effects := Transition(s, RecallSubmitted{Text: "Name01"})

		assert.True(t, next.Calculating)
		assert.True(t, next.Busy())
		assert.Equal(t, StageRecall, next.Stage)
		assert.Nil(t, next.Outcome)
		assert.Equal(t, []Effect{StartTimer{
			Kind:  TimerScoring,
			After: DefaultScoringFloor,
			Event: ScoringElapsed{Epoch: next.Epoch},
		}}, effects)

		ignored, effects := Transition(next, RecallChanged{Text: "other"})
		assert.Empty(t, effects)
		assert.Equal(t, "Name01", ignored.RecallText)

		again, effects := Transition(next, RecallSubmitted{Text: "Name02"})
		assert.Empty(t, effects)
		assert.Equal(t, "Name01", again.RecallText)
	})
}

func TestEnterResult(t *testing.T) {
	s := recalling(t)
	s, _ = Transition(s, RecallSubmitted{Text: "name03 Name01, bogus NAME01"})
	next, effects := Transition(s, ScoringElapsed{Epoch: s.Epoch})

	require.Equal(t, StageResult, next.Stage)
	require.NotNil(t, next.Outcome)
	assert.False(t, next.Calculating)
	assert.True(t, next.Saving)
	assert.Equal(t, 2, next.Outcome.Score)
	assert.Equal(t, domain.StatusFail, next.Outcome.Status)
	assert.Equal(t, []string{"Name03", "Name01"}, next.Outcome.Correct)
	assert.Equal(t, []string{"bogus"}, next.Outcome.Incorrect)
	assert.Len(t, next.Outcome.Missed, 18)

	want := Submission{
		Email:            "player@example.com",
		NamesPresented:   next.Presented,
		AnswersSubmitted: []string{"name03", "name01", "bogus"},
		Score:            2,
		Status:           domain.StatusFail,
	}

	persist, ok := findEffect[PersistResult](effects)
	require.True(t, ok)
	assert.Equal(t, next.Epoch, persist.Epoch)
	if diff := cmp.Diff(want, persist.Payload); diff != "" {
		t.Errorf("persist payload mismatch (-want +got):\n%s", diff)
	}

	finished, ok := findEffect[RunFinished](effects)
	require.True(t, ok)
	assert.Equal(t, want, finished.Payload)

	timer, ok := findEffect[StartTimer](effects)
	require.True(t, ok)
	assert.Equal(t, TimerResult, timer.Kind)
	assert.Equal(t, DefaultResultTimeout, timer.After)
	assert.Equal(t, ResultTimedOut{Epoch: next.Epoch}, timer.Event)

	_, ok = findEffect[CancelTimers](effects)
	assert.True(t, ok)

	t.Run("stale scoring event is ignored", func(t *testing.T) {
		stale, effects := Transition(next, ScoringElapsed{Epoch: s.Epoch})
		assert.Empty(t, effects)
		assert.Equal(t, next, stale)
	})

	t.Run("save success", func(t *testing.T) {
		saved, effects := Transition(next, ResultSaved{Epoch: next.Epoch})
		assert.Empty(t, effects)
		assert.False(t, saved.Saving)
		assert.True(t, saved.Saved)
		assert.NoError(t, saved.PersistErr)
	})

	t.Run("save failure keeps the result", func(t *testing.T) {
		err := fmt.Errorf("%w: 500", domain.ErrPersistence)
		failed, effects := Transition(next, ResultSaveFailed{Epoch: next.Epoch, Err: err})

		assert.Empty(t, effects)
		assert.Equal(t, StageResult, failed.Stage)
		assert.Equal(t, next.Outcome, failed.Outcome)
		assert.False(t, failed.Saving)
		assert.ErrorIs(t, failed.PersistErr, domain.ErrPersistence)
		assert.NoError(t, failed.Err)
		assert.Equal(t, MsgPersistFailed, Message(failed.PersistErr))
	})

	t.Run("timeout resets the session", func(t *testing.T) {
		done, effects := Transition(next, ResultTimedOut{Epoch: next.Epoch})

		assert.Equal(t, []Effect{CancelTimers{}}, effects)
		assert.Equal(t, StageWelcome, done.Stage)
		assert.Empty(t, done.Email)
		assert.Nil(t, done.Outcome)
		assert.Empty(t, done.Presented)
		assert.Greater(t, done.Epoch, next.Epoch)
	})

	t.Run("late save after reset is ignored", func(t *testing.T) {
		done, _ := Transition(next, ResetRequested{})
		late, effects := Transition(done, ResultSaveFailed{Epoch: next.Epoch, Err: domain.ErrPersistence})

		assert.Empty(t, effects)
		assert.Equal(t, done, late)
	})
}

func TestReset(t *testing.T) {
	for _, tc := range []struct {
		name  string
		state func(t *testing.T) State
	}{
		{"welcome", func(*testing.T) State { return NewState(DefaultSettings()) }},
		{"memorize", memorizing},
		{"recall", recalling},
	} {
		t.Run(tc.name, func(t *testing.T) {
			s := tc.state(t)
			next, effects := Transition(s, ResetRequested{})

			assert.Equal(t, []Effect{CancelTimers{}}, effects)
			assert.Equal(t, StageWelcome, next.Stage)
			assert.Equal(t, s.Epoch+1, next.Epoch)
			assert.Empty(t, next.Email)
			assert.Empty(t, next.RecallText)
			assert.NoError(t, next.Err)
			assert.Equal(t, s.Settings(), next.Settings())
		})
	}

	t.Run("fetch completing after reset is ignored", func(t *testing.T) {
		s, effects := Transition(NewState(DefaultSettings()), StartRequested{Email: "player@example.com"})
		fetch := effects[0].(FetchNames)
		s, _ = Transition(s, ResetRequested{})

		next, effects := Transition(s, NamesLoaded{Epoch: fetch.Epoch, Names: testNames(20)})
		assert.Empty(t, effects)
		assert.Equal(t, StageWelcome, next.Stage)
		assert.Empty(t, next.Presented)
	})
}

func TestCopyFor(t *testing.T) {
	settings := DefaultSettings()

	assert.Equal(t, "Word Recall Sprint", CopyFor(StageWelcome, settings).Title)
	assert.Contains(t, CopyFor(StageWelcome, settings).Subtitle, "You will see 20 words.")
	assert.Equal(t, "Memorize 20 Names", CopyFor(StageMemorize, settings).Title)
	assert.Equal(t, "You have 60 seconds. Capture as many as you can.", CopyFor(StageMemorize, settings).Subtitle)
	assert.Equal(t, "Recall Phase", CopyFor(StageRecall, settings).Title)
	assert.Equal(t, "Scoreboard", CopyFor(StageResult, settings).Title)

	settings.DisplayCount = 5
	assert.Equal(t, "Memorize 5 Names", CopyFor(StageMemorize, settings).Title)
}

func TestMessage(t *testing.T) {
	assert.Empty(t, Message(nil))
	assert.Equal(t, MsgLoadFailed, Message(errors.New("dial tcp: refused")))
	assert.Equal(t, MsgLoadFailed, Message(&domain.InsufficientPoolError{Available: 3, Required: 20}))
}

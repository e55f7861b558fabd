package quiz

import (
	"github.com/phrazzld/recall-sprint/internal/domain"
	"github.com/phrazzld/recall-sprint/internal/domain/scoring"
)

// Transition applies ev to s and returns the next state together with the
// effects the caller must execute. It never blocks and never mutates s.
func Transition(s State, ev Event) (State, []Effect) {
	switch e := ev.(type) {
	case StartRequested:
		return start(s, e)
	case NamesLoaded:
		if !s.current(e.Epoch, StageWelcome) || !s.Loading {
			return s, nil
		}
		return namesLoaded(s, e)
	case NamesFailed:
		if !s.current(e.Epoch, StageWelcome) || !s.Loading {
			return s, nil
		}
		s.Loading = false
		s.Err = e.Err
		return s, nil
	case Tick:
		if !s.current(e.Epoch, StageMemorize) {
			return s, nil
		}
		return tick(s)
	case SkipRequested:
		if s.Stage != StageMemorize {
			return s, nil
		}
		return enterRecall(s)
	case RecallChanged:
		if s.Stage != StageRecall || s.Calculating {
			return s, nil
		}
		s.RecallText = e.Text
		return s, nil
	case RecallSubmitted:
		if s.Stage != StageRecall || s.Calculating {
			return s, nil
		}
		return submit(s, e)
	case ScoringElapsed:
		if !s.current(e.Epoch, StageRecall) || !s.Calculating {
			return s, nil
		}
		return enterResult(s)
	case ResultSaved:
		if !s.current(e.Epoch, StageResult) {
			return s, nil
		}
		s.Saving = false
		s.Saved = true
		return s, nil
	case ResultSaveFailed:
		if !s.current(e.Epoch, StageResult) {
			return s, nil
		}
		s.Saving = false
		s.PersistErr = e.Err
		return s, nil
	case ResultTimedOut:
		if !s.current(e.Epoch, StageResult) {
			return s, nil
		}
		return reset(s)
	case ResetRequested:
		return reset(s)
	default:
		return s, nil
	}
}

// current reports whether a completion issued under epoch still applies.
func (s State) current(epoch uint64, stage Stage) bool {
	return s.Epoch == epoch && s.Stage == stage
}

func start(s State, e StartRequested) (State, []Effect) {
	if s.Stage != StageWelcome || s.Loading {
		return s, nil
	}

	s.Email = e.Email
	if err := domain.ValidateEmail(e.Email); err != nil {
		s.Err = err
		return s, nil
	}

	s.Err = nil
	s.PersistErr = nil
	s.Loading = true
	s.Epoch++
	return s, []Effect{FetchNames{Epoch: s.Epoch}}
}

func namesLoaded(s State, e NamesLoaded) (State, []Effect) {
	s.Loading = false

	count := s.settings.DisplayCount
	if len(e.Names) < count {
		s.Err = &domain.InsufficientPoolError{Available: len(e.Names), Required: count}
		return s, nil
	}

	presented := make([]string, count)
	copy(presented, e.Names)

	s.Presented = presented
	s.PoolSize = e.PoolSize
	if s.PoolSize <= 0 {
		s.PoolSize = len(e.Names)
	}
	s.RecallText = ""
	s.Err = nil
	s.Remaining = s.settings.MemorizeSeconds
	s.Stage = StageMemorize
	s.Epoch++
	return s, []Effect{s.nextTick()}
}

func (s State) nextTick() Effect {
	return StartTimer{Kind: TimerCountdown, After: s.settings.TickInterval, Event: Tick{Epoch: s.Epoch}}
}

func tick(s State) (State, []Effect) {
	if s.Remaining <= 1 {
		return enterRecall(s)
	}
	s.Remaining--
	return s, []Effect{s.nextTick()}
}

func enterRecall(s State) (State, []Effect) {
	s.Stage = StageRecall
	s.Remaining = 0
	s.Err = nil
	s.Epoch++
	return s, []Effect{CancelTimers{}}
}

func submit(s State, e RecallSubmitted) (State, []Effect) {
	s.RecallText = e.Text
	if len(s.ParsedAnswers()) == 0 {
		s.Err = domain.NewValidationError("answers", "cannot be empty", domain.ErrEmptyRecall)
		return s, nil
	}

	s.Err = nil
	s.Calculating = true
	return s, []Effect{StartTimer{
		Kind:  TimerScoring,
		After: s.settings.ScoringFloor,
		Event: ScoringElapsed{Epoch: s.Epoch},
	}}
}

func enterResult(s State) (State, []Effect) {
	outcome := scoring.Score(s.RecallText, s.Presented)

	s.Outcome = &outcome
	s.Calculating = false
	s.Err = nil
	s.PersistErr = nil
	s.Saved = false
	s.Stage = StageResult
	s.Epoch++

	payload := Submission{
		Email:            s.Email,
		NamesPresented:   s.Presented,
		AnswersSubmitted: outcome.Parsed,
		Score:            outcome.Score,
		Status:           outcome.Status,
	}

	effects := []Effect{
		CancelTimers{},
		StartTimer{
			Kind:  TimerResult,
			After: s.settings.ResultTimeout,
			Event: ResultTimedOut{Epoch: s.Epoch},
		},
		RunFinished{Payload: payload},
	}
	if s.Email != "" {
		s.Saving = true
		effects = append(effects, PersistResult{Epoch: s.Epoch, Payload: payload})
	}
	return s, effects
}

func reset(s State) (State, []Effect) {
	next := NewState(s.settings)
	next.Epoch = s.Epoch + 1
	return next, []Effect{CancelTimers{}}
}

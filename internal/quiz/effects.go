package quiz

import (
	"time"

	"github.com/phrazzld/recall-sprint/internal/domain"
)

// TimerKind identifies a session timer. At most one timer of each kind is
// pending at a time.
type TimerKind int

// Timer kinds.
const (
	TimerCountdown TimerKind = iota + 1
	TimerScoring
	TimerResult
)

// String returns the log name of the timer kind.
func (k TimerKind) String() string {
	switch k {
	case TimerCountdown:
		return "countdown"
	case TimerScoring:
		return "scoring"
	case TimerResult:
		return "result"
	default:
		return "unknown"
	}
}

// Effect is work Transition asks the Controller to perform.
type Effect interface {
	isEffect()
}

// FetchNames requests a fresh name sample. The completion must carry Epoch.
type FetchNames struct {
	Epoch uint64
}

// StartTimer arms a timer that delivers Event after the given delay,
// replacing any pending timer of the same kind.
type StartTimer struct {
	Kind  TimerKind
	After time.Duration
	Event Event
}

// CancelTimers stops every pending timer.
type CancelTimers struct{}

// PersistResult submits a finished run to the result sink in the background.
type PersistResult struct {
	Epoch   uint64
	Payload Submission
}

// RunFinished announces a scored run to local listeners.
type RunFinished struct {
	Payload Submission
}

func (FetchNames) isEffect()    {}
func (StartTimer) isEffect()    {}
func (CancelTimers) isEffect()  {}
func (PersistResult) isEffect() {}
func (RunFinished) isEffect()   {}

// Submission is the record of a finished run sent to the result sink.
type Submission struct {
	Email            string        `json:"email"`
	NamesPresented   []string      `json:"namesPresented"`
	AnswersSubmitted []string      `json:"answersSubmitted"`
	Score            int           `json:"score"`
	Status           domain.Status `json:"status"`
}

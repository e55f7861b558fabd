package quiz

import (
	"time"

	"github.com/phrazzld/recall-sprint/internal/domain/scoring"
)

// Stage is one of the four session stages.
type Stage string

// Session stages in play order.
const (
	StageWelcome  Stage = "welcome"
	StageMemorize Stage = "memorize"
	StageRecall   Stage = "recall"
	StageResult   Stage = "result"
)

// Default session settings.
const (
	DefaultDisplayCount    = 20
	DefaultTargetCount     = 15
	DefaultMemorizeSeconds = 60
	DefaultTickInterval    = time.Second
	DefaultFetchFloor      = 2500 * time.Millisecond
	DefaultScoringFloor    = 2500 * time.Millisecond
	DefaultResultTimeout   = 10 * time.Second
)

// Settings holds the tunable parameters of a session.
type Settings struct {
	// DisplayCount is the number of names presented per run.
	DisplayCount int
	// TargetCount is shown as the goal while recalling.
	TargetCount int
	// MemorizeSeconds is the countdown length in ticks.
	MemorizeSeconds int
	TickInterval    time.Duration
	// FetchFloor is the minimum time the name fetch appears to take.
	FetchFloor time.Duration
	// ScoringFloor is the pause between submitting and seeing the score.
	ScoringFloor time.Duration
	// ResultTimeout is how long the result stays up before the session resets.
	ResultTimeout time.Duration
}

// DefaultSettings returns the standard session settings.
func DefaultSettings() Settings {
	return Settings{
		DisplayCount:    DefaultDisplayCount,
		TargetCount:     DefaultTargetCount,
		MemorizeSeconds: DefaultMemorizeSeconds,
		TickInterval:    DefaultTickInterval,
		FetchFloor:      DefaultFetchFloor,
		ScoringFloor:    DefaultScoringFloor,
		ResultTimeout:   DefaultResultTimeout,
	}
}

// withDefaults fills zero fields from DefaultSettings.
func (s Settings) withDefaults() Settings {
	d := DefaultSettings()
	if s.DisplayCount <= 0 {
		s.DisplayCount = d.DisplayCount
	}
	if s.TargetCount <= 0 {
		s.TargetCount = d.TargetCount
	}
	if s.MemorizeSeconds <= 0 {
		s.MemorizeSeconds = d.MemorizeSeconds
	}
	if s.TickInterval <= 0 {
		s.TickInterval = d.TickInterval
	}
	if s.FetchFloor < 0 {
		s.FetchFloor = 0
	}
	if s.ScoringFloor < 0 {
		s.ScoringFloor = 0
	}
	if s.ResultTimeout <= 0 {
		s.ResultTimeout = d.ResultTimeout
	}
	return s
}

// State is a snapshot of the session. Snapshots share the Presented and
// Outcome slices with the session; callers must treat them as read-only.
type State struct {
	Stage Stage
	Email string

	// Presented is fixed once memorize begins.
	Presented []string
	PoolSize  int
	Remaining int

	RecallText string
	// Outcome is set on entering result and cleared on reset.
	Outcome *scoring.Outcome

	Epoch uint64

	Loading     bool
	Calculating bool
	Saving      bool
	Saved       bool

	// Err blocks the current stage and is shown inline.
	Err error
	// PersistErr is a non-blocking notice on the result stage.
	PersistErr error

	settings Settings
}

// NewState returns a fresh welcome-stage session using settings. Zero fields
// in settings take their default values.
func NewState(settings Settings) State {
	settings = settings.withDefaults()
	return State{
		Stage:     StageWelcome,
		Remaining: settings.MemorizeSeconds,
		settings:  settings,
	}
}

// Settings returns the parameters the session runs with.
func (s State) Settings() Settings {
	return s.settings
}

// ParsedAnswers returns the deduplicated normalized tokens of RecallText.
func (s State) ParsedAnswers() []string {
	return scoring.ParseAnswers(s.RecallText)
}

// UniqueCount is the number of distinct names typed so far.
func (s State) UniqueCount() int {
	return len(s.ParsedAnswers())
}

// Progress is the fraction of the memorize countdown left, in [0, 1].
func (s State) Progress() float64 {
	if s.Stage != StageMemorize || s.settings.MemorizeSeconds <= 0 {
		return 0
	}
	return float64(s.Remaining) / float64(s.settings.MemorizeSeconds)
}

// Busy reports whether the session is waiting on a fetch or the scoring pause.
func (s State) Busy() bool {
	return s.Loading || s.Calculating
}

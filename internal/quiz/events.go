package quiz

// Event is an input to Transition. User intents carry no epoch; completions of
// asynchronous work carry the epoch they were issued under.
type Event interface {
	isEvent()
}

// StartRequested asks to begin a run with the given email.
type StartRequested struct {
	Email string
}

// NamesLoaded reports a successful name fetch.
type NamesLoaded struct {
	Epoch    uint64
	Names    []string
	PoolSize int
}

// NamesFailed reports a failed name fetch.
type NamesFailed struct {
	Epoch uint64
	Err   error
}

// Tick is one step of the memorize countdown.
type Tick struct {
	Epoch uint64
}

// SkipRequested ends memorize early.
type SkipRequested struct{}

// RecallChanged carries the current contents of the recall input.
type RecallChanged struct {
	Text string
}

// RecallSubmitted submits the recall input for scoring.
type RecallSubmitted struct {
	Text string
}

// ScoringElapsed marks the end of the scoring pause.
type ScoringElapsed struct {
	Epoch uint64
}

// ResultSaved reports that the result sink accepted the run.
type ResultSaved struct {
	Epoch uint64
}

// ResultSaveFailed reports that the result sink rejected the run.
type ResultSaveFailed struct {
	Epoch uint64
	Err   error
}

// ResultTimedOut fires when the result has been shown long enough.
type ResultTimedOut struct {
	Epoch uint64
}

// ResetRequested abandons the session from any stage.
type ResetRequested struct{}

func (StartRequested) isEvent()   {}
func (NamesLoaded) isEvent()      {}
func (NamesFailed) isEvent()      {}
func (Tick) isEvent()             {}
func (SkipRequested) isEvent()    {}
func (RecallChanged) isEvent()    {}
func (RecallSubmitted) isEvent()  {}
func (ScoringElapsed) isEvent()   {}
func (ResultSaved) isEvent()      {}
func (ResultSaveFailed) isEvent() {}
func (ResultTimedOut) isEvent()   {}
func (ResetRequested) isEvent()   {}

package quiz

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/phrazzld/recall-sprint/internal/domain"
	"github.com/phrazzld/recall-sprint/internal/events"
	"github.com/phrazzld/recall-sprint/internal/pacing"
)

// NameSource supplies a fresh sample of names for a run.
type NameSource interface {
	// FetchNames returns the sampled names and the size of the pool they
	// were drawn from.
	FetchNames(ctx context.Context) (names []string, poolSize int, err error)
}

// ResultSink stores finished runs.
type ResultSink interface {
	SubmitResult(ctx context.Context, sub Submission) error
}

// Observer receives a snapshot after every applied event. It runs on the
// controller goroutine and must not block or call Dispatch synchronously.
type Observer func(State)

// Option configures a Controller.
type Option func(*Controller)

// WithObserver registers fn to receive state snapshots.
func WithObserver(fn Observer) Option {
	return func(c *Controller) {
		c.observer = fn
	}
}

// WithLogger sets the controller logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithEmitter publishes a TypeRunFinished event for every scored run.
func WithEmitter(emitter events.Emitter) Option {
	return func(c *Controller) {
		c.emitter = emitter
	}
}

const inboxSize = 16

type pendingTimer struct {
	timer *time.Timer
	stop  chan struct{}
}

type nameBatch struct {
	names    []string
	poolSize int
}

// Controller owns a single session. Only the Run goroutine touches the
// session; everything else talks to it through Dispatch.
type Controller struct {
	names    NameSource
	sink     ResultSink
	emitter  events.Emitter
	observer Observer
	logger   *slog.Logger

	inbox  chan Event
	done   chan struct{}
	timers map[TimerKind]pendingTimer
	wg     sync.WaitGroup

	state State

	mu       sync.RWMutex
	snapshot State
}

// NewController creates a Controller for a session with the given settings.
func NewController(settings Settings, names NameSource, sink ResultSink, opts ...Option) *Controller {
	if names == nil {
		panic("name source cannot be nil")
	}
	if sink == nil {
		panic("result sink cannot be nil")
	}

	c := &Controller{
		names:  names,
		sink:   sink,
		logger: slog.Default(),
		inbox:  make(chan Event, inboxSize),
		done:   make(chan struct{}),
		timers: make(map[TimerKind]pendingTimer),
		state:  NewState(settings),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "quiz_controller")
	c.snapshot = c.state
	return c
}

// Dispatch queues ev for the session. It returns false once Run has exited.
func (c *Controller) Dispatch(ev Event) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.inbox <- ev:
		return true
	case <-c.done:
		return false
	}
}

// State returns the latest published snapshot.
func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot
}

// Run processes events until ctx is cancelled. It stops all timers and waits
// for in-flight helpers before returning. Run must be called at most once.
func (c *Controller) Run(ctx context.Context) error {
	workCtx, cancel := context.WithCancel(ctx)
	defer func() {
		close(c.done)
		c.cancelTimers()
		cancel()
		c.wg.Wait()
	}()

	c.publish()

	for {
		select {
		case <-ctx.Done():
			c.logger.Debug("controller stopped", "reason", ctx.Err())
			return nil
		case ev := <-c.inbox:
			c.apply(workCtx, ev)
		}
	}
}

func (c *Controller) apply(ctx context.Context, ev Event) {
	prev := c.state
	next, effects := Transition(prev, ev)
	c.state = next

	if prev.Stage != next.Stage {
		c.logger.Info("stage changed",
			"from", prev.Stage,
			"to", next.Stage,
			"epoch", next.Epoch)
	}
	if next.Err != nil && next.Err != prev.Err {
		c.logger.Warn("session error", "stage", next.Stage, "error", next.Err)
	}

	for _, effect := range effects {
		c.execute(ctx, effect)
	}

	c.publish()
}

func (c *Controller) publish() {
	c.mu.Lock()
	c.snapshot = c.state
	c.mu.Unlock()

	if c.observer != nil {
		c.observer(c.state)
	}
}

func (c *Controller) execute(ctx context.Context, effect Effect) {
	switch e := effect.(type) {
	case FetchNames:
		c.fetchNames(ctx, e)
	case StartTimer:
		c.startTimer(e)
	case CancelTimers:
		c.cancelTimers()
	case PersistResult:
		c.persist(ctx, e)
	case RunFinished:
		c.announce(ctx, e)
	default:
		c.logger.Error("unknown effect", "effect", fmt.Sprintf("%T", effect))
	}
}

func (c *Controller) fetchNames(ctx context.Context, e FetchNames) {
	floor := c.state.settings.FetchFloor
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		batch, err := pacing.AtLeast(ctx, floor, func(ctx context.Context) (nameBatch, error) {
			names, poolSize, err := c.names.FetchNames(ctx)
			return nameBatch{names: names, poolSize: poolSize}, err
		})
		if err != nil {
			c.logger.Error("failed to fetch names", "error", err, "epoch", e.Epoch)
			c.Dispatch(NamesFailed{Epoch: e.Epoch, Err: err})
			return
		}

		c.logger.Debug("names fetched",
			"count", len(batch.names),
			"pool_size", batch.poolSize,
			"epoch", e.Epoch)
		c.Dispatch(NamesLoaded{Epoch: e.Epoch, Names: batch.names, PoolSize: batch.poolSize})
	}()
}

func (c *Controller) startTimer(e StartTimer) {
	c.cancelTimer(e.Kind)

	t := pendingTimer{timer: time.NewTimer(e.After), stop: make(chan struct{})}
	c.timers[e.Kind] = t

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer t.timer.Stop()
		select {
		case <-t.timer.C:
			c.Dispatch(e.Event)
		case <-t.stop:
		}
	}()
}

func (c *Controller) cancelTimer(kind TimerKind) {
	if t, ok := c.timers[kind]; ok {
		close(t.stop)
		delete(c.timers, kind)
	}
}

func (c *Controller) cancelTimers() {
	for kind := range c.timers {
		c.cancelTimer(kind)
	}
}

func (c *Controller) persist(ctx context.Context, e PersistResult) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		if err := c.sink.SubmitResult(ctx, e.Payload); err != nil {
			if !errors.Is(err, domain.ErrPersistence) {
				err = fmt.Errorf("%w: %w", domain.ErrPersistence, err)
			}
			c.logger.Error("failed to save result", "error", err, "epoch", e.Epoch)
			c.Dispatch(ResultSaveFailed{Epoch: e.Epoch, Err: err})
			return
		}

		c.logger.Debug("result saved", "score", e.Payload.Score, "epoch", e.Epoch)
		c.Dispatch(ResultSaved{Epoch: e.Epoch})
	}()
}

func (c *Controller) announce(ctx context.Context, e RunFinished) {
	if c.emitter == nil {
		return
	}

	event, err := events.NewEvent(events.TypeRunFinished, events.RunFinishedPayload{
		Email:     e.Payload.Email,
		Presented: e.Payload.NamesPresented,
		Answers:   e.Payload.AnswersSubmitted,
		Score:     e.Payload.Score,
		Status:    string(e.Payload.Status),
	})
	if err != nil {
		c.logger.Error("failed to build run event", "error", err)
		return
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		if err := c.emitter.Emit(ctx, event); err != nil {
			c.logger.Warn("run event handler failed", "error", err)
		}
	}()
}

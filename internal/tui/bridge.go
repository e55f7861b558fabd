package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/phrazzld/recall-sprint/internal/quiz"
)

// StateMsg delivers a session snapshot to the model.
type StateMsg struct {
	State quiz.State
}

// Bridge forwards controller snapshots into a Bubble Tea program without
// ever blocking the controller. Bursts of updates collapse into one send of
// the latest snapshot.
type Bridge struct {
	notify chan struct{}
}

// NewBridge creates a Bridge.
func NewBridge() *Bridge {
	return &Bridge{notify: make(chan struct{}, 1)}
}

// Observe is a quiz.Observer that only flags a pending update.
func (b *Bridge) Observe(quiz.State) {
	select {
	case b.notify <- struct{}{}:
	default:
	}
}

// Run sends StateMsg{snapshot()} after each flagged update until ctx ends.
func (b *Bridge) Run(ctx context.Context, send func(tea.Msg), snapshot func() quiz.State) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-b.notify:
			send(StateMsg{State: snapshot()})
		}
	}
}

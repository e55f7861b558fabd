// Package tui provides the Bubble Tea interface for a recall sprint.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/phrazzld/recall-sprint/internal/history"
	"github.com/phrazzld/recall-sprint/internal/quiz"
)

// Dispatcher accepts session events. *quiz.Controller implements it.
type Dispatcher interface {
	Dispatch(ev quiz.Event) bool
}

// SummaryFunc loads the local run history summary.
type SummaryFunc func(ctx context.Context) (history.Summary, error)

type summaryMsg struct {
	summary history.Summary
	err     error
}

const namesPerRow = 4

// Model implements the Bubble Tea recall UI. It renders snapshots received
// as StateMsg and turns key presses into session events.
type Model struct {
	dispatch     Dispatcher
	state        quiz.State
	defaultEmail string
	loadSummary  SummaryFunc

	email  textinput.Model
	recall textarea.Model
	bar    progress.Model
	spin   spinner.Model

	summary    history.Summary
	hasSummary bool

	width  int
	height int
}

// Option configures a Model.
type Option func(*Model)

// WithEmail pre-fills the email field on the welcome stage.
func WithEmail(email string) Option {
	return func(m *Model) {
		m.defaultEmail = email
	}
}

// WithSummary shows last and best scores from fn on the welcome stage.
func WithSummary(fn SummaryFunc) Option {
	return func(m *Model) {
		m.loadSummary = fn
	}
}

// NewModel constructs a recall TUI model starting from initial.
func NewModel(d Dispatcher, initial quiz.State, opts ...Option) *Model {
	m := &Model{dispatch: d, state: initial}
	for _, opt := range opts {
		opt(m)
	}

	ti := textinput.New()
	ti.Placeholder = "you@email.com"
	ti.Prompt = "│ "
	ti.CharLimit = 254
	ti.Width = 40
	ti.SetValue(m.defaultEmail)
	ti.Focus()
	m.email = ti

	ta := textarea.New()
	ta.Placeholder = "E.g. Nora, Miles, Selene, ..."
	ta.ShowLineNumbers = false
	ta.SetWidth(60)
	ta.SetHeight(6)
	m.recall = ta

	m.bar = progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	m.bar.Width = 40

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	m.spin = sp

	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spin.Tick, m.refreshSummary())
}

func (m *Model) refreshSummary() tea.Cmd {
	if m.loadSummary == nil {
		return nil
	}
	load := m.loadSummary
	return func() tea.Msg {
		summary, err := load(context.Background())
		return summaryMsg{summary: summary, err: err}
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil
	case StateMsg:
		return m, m.applyState(msg.State)
	case summaryMsg:
		if msg.err == nil {
			m.summary = msg.summary
			m.hasSummary = true
		}
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) resize() {
	inner := m.width - 8
	if inner < 20 {
		inner = 20
	}
	if inner > 80 {
		inner = 80
	}
	m.email.Width = inner - 2
	m.recall.SetWidth(inner)
	m.bar.Width = inner
}

func (m *Model) applyState(next quiz.State) tea.Cmd {
	prev := m.state
	m.state = next
	if prev.Stage == next.Stage {
		return nil
	}

	switch next.Stage {
	case quiz.StageWelcome:
		m.recall.Reset()
		m.recall.Blur()
		m.email.SetValue(m.defaultEmail)
		m.email.CursorEnd()
		return tea.Batch(m.email.Focus(), m.refreshSummary())
	case quiz.StageMemorize:
		m.email.Blur()
		return nil
	case quiz.StageRecall:
		m.recall.Reset()
		return m.recall.Focus()
	case quiz.StageResult:
		m.recall.Blur()
		return nil
	}
	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		if m.state.Stage != quiz.StageWelcome {
			m.dispatch.Dispatch(quiz.ResetRequested{})
		}
		return m, nil
	}

	switch m.state.Stage {
	case quiz.StageWelcome:
		if msg.Type == tea.KeyEnter {
			if !m.state.Loading {
				m.dispatch.Dispatch(quiz.StartRequested{Email: m.email.Value()})
			}
			return m, nil
		}
		if m.state.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.email, cmd = m.email.Update(msg)
		return m, cmd
	case quiz.StageMemorize:
		if msg.Type == tea.KeyEnter || msg.String() == "s" {
			m.dispatch.Dispatch(quiz.SkipRequested{})
		}
		return m, nil
	case quiz.StageRecall:
		if m.state.Calculating {
			return m, nil
		}
		if msg.Type == tea.KeyCtrlD {
			m.dispatch.Dispatch(quiz.RecallSubmitted{Text: m.recall.Value()})
			return m, nil
		}
		before := m.recall.Value()
		var cmd tea.Cmd
		m.recall, cmd = m.recall.Update(msg)
		if after := m.recall.Value(); after != before {
			m.dispatch.Dispatch(quiz.RecallChanged{Text: after})
		}
		return m, cmd
	case quiz.StageResult:
		if msg.Type == tea.KeyEnter || msg.String() == "r" {
			m.dispatch.Dispatch(quiz.ResetRequested{})
		}
		return m, nil
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	var body string
	switch m.state.Stage {
	case quiz.StageMemorize:
		body = m.viewMemorize()
	case quiz.StageRecall:
		body = m.viewRecall()
	case quiz.StageResult:
		body = m.viewResult()
	default:
		body = m.viewWelcome()
	}

	content := frameStyle.Render(m.header() + "\n\n" + body)
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) header() string {
	heading := quiz.CopyFor(m.state.Stage, m.state.Settings())
	return titleStyle.Render(heading.Title) + "\n" + copyStyle.Render(heading.Subtitle)
}

func (m *Model) viewWelcome() string {
	var b strings.Builder
	b.WriteString(m.email.View())
	b.WriteString("\n\n")
	if m.state.Loading {
		b.WriteString(m.spin.View() + " Loading names...")
	} else {
		b.WriteString(labelStyle.Render("[enter] Start Assessment"))
	}
	if m.state.Err != nil {
		b.WriteString("\n\n" + errorStyle.Render(quiz.Message(m.state.Err)))
	}
	if footer := m.historyFooter(); footer != "" {
		b.WriteString("\n\n" + footer)
	}
	return b.String()
}

func (m *Model) historyFooter() string {
	if !m.hasSummary || m.summary.Runs == 0 || m.summary.Last == nil || m.summary.Best == nil {
		return ""
	}
	total := m.state.Settings().DisplayCount
	return footerStyle.Render(fmt.Sprintf("Last %d / %d  Best %d / %d  Runs %d",
		m.summary.Last.Score, total, m.summary.Best.Score, total, m.summary.Runs))
}

func (m *Model) viewMemorize() string {
	var b strings.Builder
	b.WriteString(m.bar.ViewAs(m.state.Progress()))
	b.WriteString(fmt.Sprintf("  %ds\n", m.state.Remaining))
	b.WriteString(footerStyle.Render(fmt.Sprintf("Drawn from a pool of %d names", m.state.PoolSize)))
	b.WriteString("\n\n")
	b.WriteString(nameGrid(m.state.Presented))
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("[enter] Skip early"))
	return b.String()
}

func nameGrid(names []string) string {
	rows := make([]string, 0, (len(names)+namesPerRow-1)/namesPerRow)
	for i := 0; i < len(names); i += namesPerRow {
		end := i + namesPerRow
		if end > len(names) {
			end = len(names)
		}
		cells := make([]string, 0, namesPerRow)
		for _, name := range names[i:end] {
			cells = append(cells, nameStyle.Render(name))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m *Model) viewRecall() string {
	var b strings.Builder
	b.WriteString(labelStyle.Render("Names you remember"))
	b.WriteString("\n")
	b.WriteString(m.recall.View())
	b.WriteString("\n")
	b.WriteString(footerStyle.Render(fmt.Sprintf("%d unique names typed  Need %d for a perfect score",
		m.state.UniqueCount(), m.state.Settings().TargetCount)))
	b.WriteString("\n\n")
	if m.state.Calculating {
		b.WriteString(m.spin.View() + " Calculating score...")
	} else {
		b.WriteString(labelStyle.Render("[ctrl+d] Submit answers"))
	}
	if m.state.Err != nil {
		b.WriteString("\n\n" + errorStyle.Render(quiz.Message(m.state.Err)))
	}
	return b.String()
}

func (m *Model) viewResult() string {
	outcome := m.state.Outcome
	if outcome == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(labelStyle.Render("Final score"))
	b.WriteString("\n")
	b.WriteString(scoreStyle.Render(fmt.Sprintf("%d / %d", outcome.Score, m.state.Settings().DisplayCount)))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Status: %s\n", strings.ToUpper(string(outcome.Status))))
	b.WriteString(subtitleStyle.Render(outcome.Status.Copy()))
	b.WriteString("\n\n")

	switch {
	case m.state.Saving:
		b.WriteString(m.spin.View() + " Syncing this run\n\n")
	case m.state.PersistErr != nil:
		b.WriteString(noticeStyle.Render(quiz.Message(m.state.PersistErr)) + "\n\n")
	}

	b.WriteString(labelStyle.Render("Word breakdown"))
	b.WriteString("\n")
	b.WriteString(copyStyle.Render("Correct words feed your score. Incorrect submissions are highlighted so you can spot patterns quickly."))
	b.WriteString("\n\n")
	b.WriteString(wordList("Correct", outcome.Correct, "No correct words", correctStyle))
	b.WriteString("\n")
	b.WriteString(wordList("Incorrect", outcome.Incorrect, "No incorrect entries", wrongStyle))
	b.WriteString("\n")
	b.WriteString(wordList("Missed", outcome.Missed, "You recalled every name!", missedStyle))
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("[enter] Play again"))
	return b.String()
}

func wordList(label string, words []string, empty string, style lipgloss.Style) string {
	if len(words) == 0 {
		return fmt.Sprintf("%s: %s", label, footerStyle.Render(empty))
	}
	return fmt.Sprintf("%s: %s", label, style.Render(strings.Join(words, ", ")))
}

package tui

import "github.com/charmbracelet/lipgloss"

// copyWidth is the column at which explanatory copy wraps.
const copyWidth = 72

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D8A57"))
	subtitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	labelStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F0F0F0"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	noticeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	correctStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D8A57"))
	wrongStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	missedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	nameStyle     = lipgloss.NewStyle().Width(16).Foreground(lipgloss.Color("#F0F0F0"))
	scoreStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F0F0F0"))
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	frameStyle    = lipgloss.NewStyle().Padding(1, 2)

	copyStyle = subtitleStyle.Width(copyWidth)
)

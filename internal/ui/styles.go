package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Tokyo Night palette
const (
	colorRed     = "#f7768e"
	colorGreen   = "#9ece6a"
	colorBlue    = "#7aa2f7"
	colorMagenta = "#bb9af7"
	colorWhite   = "#a9b1d6"
	colorGray    = "#565f89"
	colorAmber   = "#e0af68"
)

type promptStyles struct {
	title         lipgloss.Style
	toolName      lipgloss.Style
	argumentKey   lipgloss.Style
	argumentValue lipgloss.Style
	rationale     lipgloss.Style
	warning       lipgloss.Style
	options       lipgloss.Style
	helpText      lipgloss.Style
	container     lipgloss.Style
	success       lipgloss.Style
	failure       lipgloss.Style
	denied        lipgloss.Style
	cancelled     lipgloss.Style
}

func newPromptStyles() *promptStyles {
	return &promptStyles{
		title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorMagenta)).
			Bold(true),
		toolName: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorBlue)).
			Bold(true),
		argumentKey: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorBlue)),
		argumentValue: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorWhite)),
		rationale: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorWhite)).
			Italic(true),
		warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorAmber)).
			Bold(true),
		options: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorGreen)).
			Bold(true),
		helpText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorGray)).
			Italic(true),
		container: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colorGray)).
			Padding(0, 1),
		success:   lipgloss.NewStyle().Foreground(lipgloss.Color(colorGreen)),
		failure:   lipgloss.NewStyle().Foreground(lipgloss.Color(colorRed)),
		denied:    lipgloss.NewStyle().Foreground(lipgloss.Color(colorAmber)),
		cancelled: lipgloss.NewStyle().Foreground(lipgloss.Color(colorGray)),
	}
}

// Status icons
const (
	checkMark = "✓"
	crossMark = "✗"
)

var (
	checkMarkStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorGreen)).Bold(true)
	crossMarkStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorRed)).Bold(true)
)

func CheckMark() string {
	return checkMarkStyle.Render(checkMark)
}

func CrossMark() string {
	return crossMarkStyle.Render(crossMark)
}

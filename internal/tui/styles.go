package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/fentz26/blanktimer/internal/config"
	"github.com/fentz26/blanktimer/internal/countdown"
)

var (
	// Colors
	primaryColor = lipgloss.Color("#7C3AED")
	mutedColor   = lipgloss.Color("#6B7280")
	fgColor      = lipgloss.Color("#F9FAFB")
	errorColor   = lipgloss.Color("#EF4444")
	infoColor    = lipgloss.Color("#3B82F6")

	// Styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#374151")).
			Foreground(fgColor).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(1, 3)

	selectorLabelStyle = lipgloss.NewStyle().
				Foreground(mutedColor)

	selectorStyle = lipgloss.NewStyle().
			Padding(0, 1)

	selectedSelectorStyle = lipgloss.NewStyle().
				Background(primaryColor).
				Foreground(fgColor).
				Bold(true).
				Padding(0, 1)

	clockStyle = lipgloss.NewStyle().Bold(true)

	totalStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Faint(true)

	doneStyle      = lipgloss.NewStyle().Bold(true).Foreground(infoColor)
	cancelledStyle = lipgloss.NewStyle().Bold(true).Foreground(errorColor)

	helpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)
)

// bandColors maps indicator bands to theme colors.
type bandColors map[countdown.Band]lipgloss.Color

func newBandColors(theme config.ThemeConfig) bandColors {
	return bandColors{
		countdown.BandGreen:  lipgloss.Color(theme.Green),
		countdown.BandOrange: lipgloss.Color(theme.Orange),
		countdown.BandRed:    lipgloss.Color(theme.Red),
		countdown.BandBlue:   lipgloss.Color(theme.Blue),
	}
}

// style returns the foreground style for a band. Half-opacity bands are
// drawn faint.
func (c bandColors) style(b countdown.Band) lipgloss.Style {
	s := lipgloss.NewStyle().Foreground(c[b])
	if b.Opacity() < 1 {
		s = s.Faint(true)
	}
	return s
}

package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Styles holds the lipgloss styles for the live estimator screen.
type Styles struct {
	Title    lipgloss.Style
	Pane     lipgloss.Style
	Focused  lipgloss.Style
	Cursor   lipgloss.Style
	Dim      lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Warning  lipgloss.Style
	BarEmpty lipgloss.Style
}

func DefaultStyles() Styles {
	border := lipgloss.RoundedBorder()
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")),
		Pane:     lipgloss.NewStyle().Border(border).BorderForeground(lipgloss.Color("240")).Padding(0, 1),
		Focused:  lipgloss.NewStyle().Border(border).BorderForeground(lipgloss.Color("36")).Padding(0, 1),
		Cursor:   lipgloss.NewStyle().Foreground(lipgloss.Color("36")),
		Dim:      lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Label:    lipgloss.NewStyle().Bold(true),
		Value:    lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
		Warning:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		BarEmpty: lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	}
}

// percentColor blends from red (empty) through yellow to green (full) so the
// remaining bar reads at a glance.
func percentColor(percent float64) lipgloss.Color {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	// 0% -> hue 10 (red), 100% -> hue 120 (green)
	hue := 10 + percent/100*110
	return lipgloss.Color(colorful.Hsv(hue, 0.85, 0.9).Hex())
}

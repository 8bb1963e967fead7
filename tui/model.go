// Package tui is the full-screen live estimator: filter the catalog, pick a
// spool, type the scale reading, and the figures update on every keystroke.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dstockto/spoolscale/catalog"
	"github.com/dstockto/spoolscale/estimator"
	"github.com/dstockto/spoolscale/models"
)

type focusArea int

const (
	focusFilter focusArea = iota
	focusList
	focusWeight
)

const listHeight = 10

// Model is the bubbletea model for the live estimator. There is no hidden
// recomputation graph: every input change funnels through recompute().
type Model struct {
	specs    []models.SpoolSpec
	filtered []models.SpoolSpec
	cursor   int

	filterInput textinput.Model
	weightInput textinput.Model
	focus       focusArea

	// nominalIdx 0 means "use the spec's own nominal weight"; higher values
	// index into nominalSizes.
	nominalIdx   int
	nominalSizes []float64
	includeCore  bool

	est    estimator.Estimator
	result estimator.Result

	width  int
	height int
	styles Styles
}

func New(specs []models.SpoolSpec, est estimator.Estimator, nominalSizes []float64) Model {
	fi := textinput.New()
	fi.Placeholder = "Filter by brand..."
	fi.CharLimit = 40
	fi.Width = 30
	fi.Focus()

	wi := textinput.New()
	wi.Placeholder = "Measured weight (g)"
	wi.CharLimit = 10
	wi.Width = 20

	m := Model{
		specs:        specs,
		filterInput:  fi,
		weightInput:  wi,
		focus:        focusFilter,
		nominalSizes: nominalSizes,
		est:          est,
		styles:       DefaultStyles(),
	}
	m.recompute()
	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Selected returns the spec under the cursor, nil when the filter matches
// nothing.
func (m Model) Selected() *models.SpoolSpec {
	if len(m.filtered) == 0 || m.cursor < 0 || m.cursor >= len(m.filtered) {
		return nil
	}
	return &m.filtered[m.cursor]
}

// Result exposes the current estimate, mainly for tests.
func (m Model) Result() estimator.Result {
	return m.result
}

// IncludeCore exposes the core flag, mainly for tests.
func (m Model) IncludeCore() bool {
	return m.includeCore
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			m.focus = (m.focus + 1) % 3
			m.syncFocus()
			return m, nil
		case "shift+tab":
			m.focus = (m.focus + 2) % 3
			m.syncFocus()
			return m, nil
		case "up":
			if m.cursor > 0 {
				m.cursor--
				m.onSelectionChanged()
			}
			return m, nil
		case "down":
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
				m.onSelectionChanged()
			}
			return m, nil
		case "n":
			if m.focus == focusList {
				m.nominalIdx = (m.nominalIdx + 1) % (len(m.nominalSizes) + 1)
				m.recompute()
				return m, nil
			}
		case "c":
			if m.focus == focusList {
				if sel := m.Selected(); sel != nil && sel.Refillable {
					m.includeCore = !m.includeCore
					m.recompute()
				}
				return m, nil
			}
		case "q":
			if m.focus == focusList {
				return m, tea.Quit
			}
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case focusFilter:
		m.filterInput, cmd = m.filterInput.Update(msg)
		m.recompute()
	case focusWeight:
		m.weightInput, cmd = m.weightInput.Update(msg)
		m.recompute()
	}

	return m, cmd
}

func (m *Model) syncFocus() {
	m.filterInput.Blur()
	m.weightInput.Blur()
	switch m.focus {
	case focusFilter:
		m.filterInput.Focus()
	case focusWeight:
		m.weightInput.Focus()
	}
}

// onSelectionChanged enforces the core-flag reset: moving to a spool that
// isn't refillable drops a stale include-core setting.
func (m *Model) onSelectionChanged() {
	if sel := m.Selected(); sel == nil || !sel.Refillable {
		m.includeCore = false
	}
	m.recompute()
}

// recompute refreshes the filtered list and reruns the estimate. This is the
// single place estimates come from.
func (m *Model) recompute() {
	m.filtered = catalog.Filter(m.specs, m.filterInput.Value())
	if m.cursor >= len(m.filtered) {
		m.cursor = len(m.filtered) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}

	sel := m.Selected()
	if sel == nil || !sel.Refillable {
		m.includeCore = false
	}

	m.result = m.est.Estimate(estimator.Input{
		Spec:            sel,
		NominalOverride: m.nominalOverride(),
		IncludeCore:     m.includeCore,
		MeasuredWeight:  m.weightInput.Value(),
	})
}

// nominalOverride renders the cycled nominal size as the text the estimator
// expects; empty means "use the spec's own nominal".
func (m Model) nominalOverride() string {
	if m.nominalIdx == 0 || m.nominalIdx > len(m.nominalSizes) {
		return ""
	}
	return fmt.Sprintf("%g", m.nominalSizes[m.nominalIdx-1])
}

func (m Model) View() string {
	left := m.viewCatalog()
	right := m.viewEstimate()

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	help := m.styles.Dim.Render("tab focus · ↑/↓ select · n nominal · c core · esc quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Title.Render("spoolscale — live estimator"),
		body,
		help,
	)
}

func (m Model) viewCatalog() string {
	var sb strings.Builder

	sb.WriteString(m.filterInput.View())
	sb.WriteString("\n\n")

	if len(m.filtered) == 0 {
		sb.WriteString(m.styles.Dim.Render("no spools match"))
	}

	// Window the list around the cursor so long catalogs stay readable.
	start := 0
	if m.cursor >= listHeight {
		start = m.cursor - listHeight + 1
	}
	end := start + listHeight
	if end > len(m.filtered) {
		end = len(m.filtered)
	}

	for i := start; i < end; i++ {
		s := m.filtered[i]
		line := s.DisplayName()
		if s.Refillable {
			line += " (refillable)"
		}
		if i == m.cursor {
			sb.WriteString(m.styles.Cursor.Render("▸ " + line))
		} else {
			sb.WriteString("  " + line)
		}
		sb.WriteString("\n")
	}

	pane := m.styles.Pane
	if m.focus == focusFilter || m.focus == focusList {
		pane = m.styles.Focused
	}
	return pane.Width(44).Render(sb.String())
}

func (m Model) viewEstimate() string {
	var sb strings.Builder

	sb.WriteString(m.weightInput.View())
	sb.WriteString("\n\n")

	sel := m.Selected()
	if sel != nil {
		sb.WriteString(m.styles.Label.Render("Spool: "))
		sb.WriteString(sel.DisplayName())
		sb.WriteString("\n")
		if sel.CoreInnerDiameterMm != nil {
			sb.WriteString(m.styles.Dim.Render(fmt.Sprintf("core bore %.0fmm", *sel.CoreInnerDiameterMm)))
			sb.WriteString("\n")
		}
	}

	sb.WriteString(m.styles.Label.Render("Nominal: "))
	if override := m.nominalOverride(); override != "" {
		sb.WriteString(override + "g")
	} else {
		sb.WriteString("spec default")
	}
	sb.WriteString("\n")

	sb.WriteString(m.styles.Label.Render("Core: "))
	switch {
	case sel != nil && sel.Refillable && m.includeCore:
		sb.WriteString(fmt.Sprintf("+%.0fg included", m.est.CoreWeightGrams))
	case sel != nil && sel.Refillable:
		sb.WriteString("not included (press c)")
	default:
		sb.WriteString(m.styles.Dim.Render("n/a"))
	}
	sb.WriteString("\n\n")

	if m.result.RemainingWeight == nil {
		sb.WriteString(m.styles.Dim.Render("Enter a weight above zero to estimate."))
	} else {
		sb.WriteString(m.styles.Label.Render("Remaining: "))
		sb.WriteString(fmt.Sprintf("%.1fg", *m.result.RemainingWeight))
		sb.WriteString("\n")

		sb.WriteString(m.styles.Label.Render("Safe:      "))
		sb.WriteString(fmt.Sprintf("%.1fg", *m.result.SafeWeight))
		sb.WriteString("\n")

		if m.result.RemainingLength != nil {
			sb.WriteString(m.styles.Label.Render("Length:    "))
			sb.WriteString(fmt.Sprintf("~%.1fm", *m.result.RemainingLength))
			sb.WriteString("\n")
		}

		if m.result.RemainingPercent != nil {
			sb.WriteString("\n")
			sb.WriteString(m.renderBar(*m.result.RemainingPercent))
			sb.WriteString(fmt.Sprintf(" %.1f%%", *m.result.RemainingPercent))
			sb.WriteString("\n")
		}
	}

	pane := m.styles.Pane
	if m.focus == focusWeight {
		pane = m.styles.Focused
	}
	return pane.Width(40).Render(sb.String())
}

func (m Model) renderBar(percent float64) string {
	const width = 24
	filled := int(percent / 100 * width)
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	fill := lipgloss.NewStyle().Foreground(percentColor(percent))
	return fill.Render(strings.Repeat("█", filled)) +
		m.styles.BarEmpty.Render(strings.Repeat("░", width-filled))
}

// Run starts the estimator in the alternate screen and blocks until quit.
func Run(specs []models.SpoolSpec, est estimator.Estimator, nominalSizes []float64) error {
	p := tea.NewProgram(New(specs, est, nominalSizes), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

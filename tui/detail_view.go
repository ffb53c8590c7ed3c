package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/leasebook/viz"
)

// DetailTab is the active section of the unit detail view.
type DetailTab int

const (
	TabOverview DetailTab = iota
	TabTimeline
	TabTerms
	TabRent
)

var detailTabTitles = []string{"Overview", "Timeline", "Lease Terms", "Rent Schedule"}

var (
	detailTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("255"))

	detailBodyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			MarginTop(1)
)

func (m Model) renderDetailView() string {
	var s strings.Builder

	s.WriteString(m.renderHeader())
	s.WriteString("\n\n")

	u := m.state.FindUnit(m.selectedID)
	if u == nil {
		s.WriteString(errorStyle.Render(fmt.Sprintf("Unit %s no longer exists", m.selectedID)))
		s.WriteString("\n")
		s.WriteString(helpStyle.Render("Esc: Back"))
		return s.String()
	}

	s.WriteString(detailTitleStyle.Render(fmt.Sprintf("%s  ·  %s unit %s", u.TradingName, u.AssetName, u.UnitNumber)))
	s.WriteString("\n\n")

	var tabs []string
	for i, title := range detailTabTitles {
		if DetailTab(i) == m.detailTab {
			tabs = append(tabs, tabActiveStyle.Render(title))
		} else {
			tabs = append(tabs, tabInactiveStyle.Render(title))
		}
	}
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	s.WriteString("\n")

	var body string
	switch m.detailTab {
	case TabOverview:
		body = viz.Overview(*u)
	case TabTimeline:
		body = viz.Timeline(*u)
	case TabTerms:
		body = viz.Terms(*u)
	case TabRent:
		body = viz.RentTable(*u)
	}
	s.WriteString(detailBodyStyle.Render(body))
	s.WriteString("\n")

	s.WriteString(m.renderDetailHelp())
	return s.String()
}

func (m Model) renderDetailHelp() string {
	help := []string{
		"←/→: Switch tab",
		"Esc: Back",
		"q: Quit",
	}
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := DetailTab(len(detailTabTitles))
	switch msg.String() {
	case "right", "l", "tab":
		m.detailTab = (m.detailTab + 1) % n
	case "left", "h", "shift+tab":
		m.detailTab = (m.detailTab + n - 1) % n
	case "esc", "backspace":
		m.viewMode = ViewUnits
	}
	return m, nil
}

package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/leasebook/portfolio"
	"github.com/harperreed/leasebook/viz"
)

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1).
			Width(18)

	cardValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255"))

	cardLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginTop(1)
)

func card(label, value string) string {
	return cardStyle.Render(cardValueStyle.Render(value) + "\n" + cardLabelStyle.Render(label))
}

func (m Model) renderDashboardView() string {
	stats := portfolio.Dashboard(m.state, m.app.Now())

	var s strings.Builder
	s.WriteString(m.renderHeader())
	s.WriteString("\n\n")

	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		card("Total Assets", fmt.Sprintf("%d", stats.TotalAssets)),
		card("Total GFA (sqft)", viz.FormatArea(stats.TotalGFA)),
		card("Expiring (180d)", fmt.Sprintf("%d", stats.Expiring)),
		card("Vacant Units", fmt.Sprintf("%d", stats.VacantUnits)),
	))
	s.WriteString("\n")

	s.WriteString(sectionStyle.Render("Category Mix"))
	s.WriteString("\n")
	for _, share := range stats.Distribution {
		bar := strings.Repeat("█", share.Percentage/5) + strings.Repeat("░", 20-share.Percentage/5)
		fmt.Fprintf(&s, "  %-7s %s %3d%%\n", share.Category, bar, share.Percentage)
	}

	s.WriteString(sectionStyle.Render("Recent Activity"))
	s.WriteString("\n")
	if len(stats.RecentActivity) == 0 {
		s.WriteString(cardLabelStyle.Render("  No activity yet"))
		s.WriteString("\n")
	}
	for _, log := range stats.RecentActivity {
		s.WriteString("  " + viz.FormatAuditLog(log) + "\n")
	}

	if status := m.renderStatus(); status != "" {
		s.WriteString("\n" + status + "\n")
	}
	s.WriteString(helpStyle.Render("1-3: Switch view • q: Quit"))
	return s.String()
}

func (m Model) handleDashboardKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "tab" {
		m.viewMode = ViewUnits
	}
	return m, nil
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/harperreed/leasebook/models"
	"github.com/harperreed/leasebook/portfolio"
	"github.com/harperreed/leasebook/viz"
)

// visibleUnits applies the search query and asset filter to the cached state.
func (m Model) visibleUnits() []models.Unit {
	return m.filter.Apply(m.state.Units, m.searchInput.Value(), m.assetFilter)
}

// assetOptions lists the asset filter choices, AllAssets first.
func (m Model) assetOptions() []string {
	return append([]string{portfolio.AllAssets}, portfolio.AssetNames(m.state.Units)...)
}

func (m Model) renderUnitsView() string {
	var s strings.Builder

	s.WriteString(m.renderHeader())
	s.WriteString("\n\n")

	s.WriteString(m.searchInput.View())
	s.WriteString("    ")
	s.WriteString(cardLabelStyle.Render("Asset: " + m.assetFilter + "  ·  " + m.unitCountLabel()))
	s.WriteString("\n\n")

	units := m.visibleUnits()
	if len(units) == 0 {
		s.WriteString(cardLabelStyle.Render("No units match."))
	} else {
		s.WriteString(m.renderUnitsTable(units))
	}
	s.WriteString("\n")

	if status := m.renderStatus(); status != "" {
		s.WriteString("\n" + status + "\n")
	}
	s.WriteString(m.renderUnitsHelp())
	return s.String()
}

func (m Model) renderUnitsTable(units []models.Unit) string {
	columns := []table.Column{
		{Title: "Asset", Width: 16},
		{Title: "Unit #", Width: 10},
		{Title: "Trading Name", Width: 24},
		{Title: "Category", Width: 8},
		{Title: "Area", Width: 10},
		{Title: "Status", Width: 12},
		{Title: "RED", Width: 14},
	}

	rows := make([]table.Row, 0, len(units))
	for _, u := range units {
		rows = append(rows, table.Row{
			u.AssetName,
			u.UnitNumber,
			u.TradingName,
			string(u.Category),
			viz.FormatArea(u.Areas.Total),
			string(u.Status),
			u.CommercialTerms.RED,
		})
	}

	height := m.height - 12
	if height < 3 {
		height = 3
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(!m.searchInput.Focused()),
		table.WithHeight(height),
	)

	if m.selectedRow < len(rows) {
		t.SetCursor(m.selectedRow)
	}

	return t.View()
}

func (m Model) renderUnitsHelp() string {
	if m.searchInput.Focused() {
		return helpStyle.Render("Type to search • Enter/Esc: Done")
	}
	help := []string{
		"↑/↓: Navigate",
		"Enter: View details",
		"/: Search",
		"a: Cycle asset",
		"1-3: Switch view",
		"q: Quit",
	}
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleUnitsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searchInput.Focused() {
		switch msg.String() {
		case "enter", "esc":
			m.searchInput.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		m.selectedRow = 0
		return m, cmd
	}

	units := m.visibleUnits()
	switch msg.String() {
	case "up", "k":
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case "down", "j":
		if m.selectedRow < len(units)-1 {
			m.selectedRow++
		}
	case "/":
		m.message = ""
		return m, m.searchInput.Focus()
	case "esc":
		m.searchInput.SetValue("")
		m.assetFilter = portfolio.AllAssets
		m.selectedRow = 0
	case "a":
		m.assetFilter = nextOption(m.assetOptions(), m.assetFilter)
		m.selectedRow = 0
	case "tab":
		m.viewMode = ViewSettings
	case "enter":
		if m.selectedRow < len(units) {
			m.selectedID = units[m.selectedRow].ID
			m.detailTab = TabOverview
			m.viewMode = ViewDetail
		}
	}

	return m, nil
}

func nextOption(options []string, current string) string {
	for i, o := range options {
		if o == current {
			return options[(i+1)%len(options)]
		}
	}
	return options[0]
}

func (m Model) unitCountLabel() string {
	return fmt.Sprintf("%d of %d units", len(m.visibleUnits()), len(m.state.Units))
}

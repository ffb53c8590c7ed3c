// ABOUTME: Terminal User Interface using bubbletea framework
// ABOUTME: Dashboard, unit list, unit detail and settings views over the portfolio
package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/leasebook/app"
	"github.com/harperreed/leasebook/models"
	"github.com/harperreed/leasebook/portfolio"
)

// ViewMode represents the current TUI view
type ViewMode int

const (
	ViewDashboard ViewMode = iota
	ViewUnits
	ViewSettings
	ViewDetail
	ViewConfirmWipe
)

// navTabs are the views reachable from the tab bar, in order.
var navTabs = []struct {
	mode  ViewMode
	title string
}{
	{ViewDashboard, "Dashboard"},
	{ViewUnits, "Units"},
	{ViewSettings, "Settings"},
}

// Model is the main bubbletea model
type Model struct {
	app      *app.App
	viewMode ViewMode

	// Cached snapshot, refreshed after every mutation so the list filter
	// memo sees a stable slice.
	state  models.AppState
	filter *portfolio.Filter

	// Unit list state
	searchInput textinput.Model
	assetFilter string
	selectedRow int

	// Detail view state
	selectedID string
	detailTab  DetailTab

	// Settings state
	importInput textinput.Model
	exportDir   string
	busy        bool

	message string
	err     error

	width  int
	height int
}

// NewModel creates a new TUI model. Exports land in exportDir.
func NewModel(a *app.App, exportDir string) Model {
	search := textinput.New()
	search.Placeholder = "Search trading name, unit or tenant"
	search.Prompt = "/ "
	search.CharLimit = 64

	imp := textinput.New()
	imp.Placeholder = "path/to/lease.pdf"
	imp.Prompt = "File: "

	return Model{
		app:         a,
		viewMode:    ViewDashboard,
		state:       a.State(),
		filter:      &portfolio.Filter{},
		searchInput: search,
		assetFilter: portfolio.AllAssets,
		importInput: imp,
		exportDir:   exportDir,
		width:       100,
		height:      30,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case importDoneMsg:
		return m.handleImportDone(msg), nil
	case exportDoneMsg:
		return m.handleExportDone(msg), nil
	}
	return m, nil
}

func (m Model) View() string {
	switch m.viewMode {
	case ViewDashboard:
		return m.renderDashboardView()
	case ViewUnits:
		return m.renderUnitsView()
	case ViewDetail:
		return m.renderDetailView()
	case ViewSettings:
		return m.renderSettingsView()
	case ViewConfirmWipe:
		return m.renderConfirmWipeView()
	}
	return ""
}

// inputActive reports whether a text field owns the keyboard.
func (m Model) inputActive() bool {
	return m.searchInput.Focused() || m.importInput.Focused()
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if !m.inputActive() {
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "1", "2", "3":
			if m.viewMode != ViewConfirmWipe {
				m.viewMode = navTabs[int(msg.String()[0]-'1')].mode
				m.message = ""
				return m, nil
			}
		}
	}

	switch m.viewMode {
	case ViewDashboard:
		return m.handleDashboardKeys(msg)
	case ViewUnits:
		return m.handleUnitsKeys(msg)
	case ViewDetail:
		return m.handleDetailKeys(msg)
	case ViewSettings:
		return m.handleSettingsKeys(msg)
	case ViewConfirmWipe:
		return m.handleConfirmWipeKeys(msg)
	}

	return m, nil
}

// reload refreshes the cached snapshot after a mutation.
func (m *Model) reload() {
	m.state = m.app.State()
	if m.selectedRow >= len(m.visibleUnits()) {
		m.selectedRow = 0
	}
}

func (m Model) renderHeader() string {
	var rendered []string
	for _, tab := range navTabs {
		active := tab.mode == m.viewMode || (tab.mode == ViewUnits && m.viewMode == ViewDetail) ||
			(tab.mode == ViewSettings && m.viewMode == ViewConfirmWipe)
		if active {
			rendered = append(rendered, tabActiveStyle.Render(tab.title))
		} else {
			rendered = append(rendered, tabInactiveStyle.Render(tab.title))
		}
	}
	return titleStyle.Render("LEASEBOOK") + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) renderStatus() string {
	if m.err != nil {
		return errorStyle.Render("Error: " + m.err.Error())
	}
	if m.message != "" {
		return messageStyle.Render(m.message)
	}
	return ""
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			MarginBottom(1)

	tabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Background(lipgloss.Color("235")).
			Padding(0, 2)

	tabInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginTop(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	messageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Italic(true)
)

// Run starts the full-screen program and blocks until the user quits.
func Run(a *app.App, exportDir string) error {
	p := tea.NewProgram(NewModel(a, exportDir), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

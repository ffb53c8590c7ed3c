// ABOUTME: Settings view with import, export and wipe actions
// ABOUTME: Wipe goes through a confirmation dialog before the portfolio is cleared
package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/leasebook/app"
	"github.com/harperreed/leasebook/models"
)

var (
	confirmBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("9")).
			Padding(1, 2).
			Width(60).
			Align(lipgloss.Center)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	confirmButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("9")).
				Padding(0, 2).
				MarginRight(2)

	cancelButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("8")).
				Padding(0, 2)
)

type importDoneMsg struct {
	entry models.AuditLog
	err   error
}

type exportDoneMsg struct {
	path string
	err  error
}

func importCmd(a *app.App, path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return importDoneMsg{err: fmt.Errorf("failed to open %s: %w", path, err)}
		}
		defer f.Close()

		entry, err := a.Import(context.Background(), filepath.Base(path), f)
		return importDoneMsg{entry: entry, err: err}
	}
}

func exportCmd(a *app.App, dir string) tea.Cmd {
	return func() tea.Msg {
		path, err := a.ExportTo(dir)
		return exportDoneMsg{path: path, err: err}
	}
}

func (m Model) renderSettingsView() string {
	var s strings.Builder

	s.WriteString(m.renderHeader())
	s.WriteString("\n\n")

	s.WriteString(sectionStyle.Render("Import"))
	s.WriteString("\n")
	s.WriteString(m.importInput.View())
	s.WriteString("\n")

	s.WriteString(sectionStyle.Render("Export"))
	s.WriteString("\n")
	s.WriteString(cardLabelStyle.Render(fmt.Sprintf("  %d units to %s", len(m.state.Units), m.exportDir)))
	s.WriteString("\n")

	s.WriteString(sectionStyle.Render("Danger Zone"))
	s.WriteString("\n")
	s.WriteString(cardLabelStyle.Render("  Wipe removes every unit, asset and audit entry"))
	s.WriteString("\n")

	if m.busy {
		s.WriteString("\n" + messageStyle.Render("Working...") + "\n")
	} else if status := m.renderStatus(); status != "" {
		s.WriteString("\n" + status + "\n")
	}

	if m.importInput.Focused() {
		s.WriteString(helpStyle.Render("Enter: Import • Esc: Cancel"))
	} else {
		help := []string{"i: Import file", "e: Export", "w: Wipe", "1-3: Switch view", "q: Quit"}
		s.WriteString(helpStyle.Render(strings.Join(help, " • ")))
	}
	return s.String()
}

func (m Model) handleSettingsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.importInput.Focused() {
		switch msg.String() {
		case "esc":
			m.importInput.Blur()
			m.importInput.SetValue("")
			return m, nil
		case "enter":
			path := strings.TrimSpace(m.importInput.Value())
			m.importInput.Blur()
			if path == "" {
				return m, nil
			}
			m.busy = true
			m.err = nil
			m.message = ""
			return m, importCmd(m.app, path)
		}
		var cmd tea.Cmd
		m.importInput, cmd = m.importInput.Update(msg)
		return m, cmd
	}

	if m.busy {
		return m, nil
	}

	switch msg.String() {
	case "i":
		m.err = nil
		m.message = ""
		return m, m.importInput.Focus()
	case "e":
		m.busy = true
		m.err = nil
		m.message = ""
		return m, exportCmd(m.app, m.exportDir)
	case "w":
		m.viewMode = ViewConfirmWipe
	case "tab":
		m.viewMode = ViewDashboard
	}
	return m, nil
}

func (m Model) handleImportDone(msg importDoneMsg) Model {
	m.busy = false
	if msg.err != nil {
		m.err = msg.err
		return m
	}
	m.importInput.SetValue("")
	m.reload()
	m.message = fmt.Sprintf("%s (%s)", msg.entry.Activity, msg.entry.Status)
	return m
}

func (m Model) handleExportDone(msg exportDoneMsg) Model {
	m.busy = false
	if msg.err != nil {
		m.err = msg.err
		return m
	}
	m.message = "Exported to " + msg.path
	return m
}

func (m Model) renderConfirmWipeView() string {
	title := warningStyle.Render("⚠  WIPE PORTFOLIO  ⚠")
	message := "Are you sure you want to delete all data?"
	info := fmt.Sprintf("\n%d units, %d assets, %d audit entries\n",
		len(m.state.Units), len(m.state.Assets), len(m.state.AuditLogs))
	warning := "\nThis action cannot be undone!"

	buttons := lipgloss.JoinHorizontal(
		lipgloss.Left,
		confirmButtonStyle.Render("Yes, Wipe (y)"),
		cancelButtonStyle.Render("Cancel (n/esc)"),
	)

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		title,
		"",
		message,
		info,
		warning,
		"",
		buttons,
	)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, confirmBoxStyle.Render(content))
}

func (m Model) handleConfirmWipeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		if err := m.app.Wipe(true); err != nil {
			m.err = err
			m.message = ""
		} else {
			m.err = nil
			m.message = "Portfolio wiped"
			m.selectedID = ""
			m.reload()
		}
		m.viewMode = ViewSettings
	case "n", "N", "esc":
		m.viewMode = ViewSettings
	}
	return m, nil
}

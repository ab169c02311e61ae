package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.search.Width = max(10, msg.Width-8)
		return m, nil
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case FeedChangedMsg:
		return m.refresh(), waitForChange(m.ctx, m.feed)
	case ReloadedMsg:
		return m.handleReloaded(msg)
	case PreferencesAppliedMsg:
		return m.handlePreferencesApplied(msg)
	}

	if m.search.Focused() {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.search.Focused() {
		switch msg.String() {
		case "enter", "esc", "tab":
			m.search.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		m.offset = 0
		return m.refresh(), cmd
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "/":
		cmd := m.search.Focus()
		return m, cmd
	case "esc":
		m.search.SetValue("")
		m.offset = 0
		return m.refresh(), nil
	case "tab", "right", "l":
		m.typeIdx = (m.typeIdx + 1) % len(m.selectors)
		m.offset = 0
		return m.refresh(), nil
	case "shift+tab", "left", "h":
		m.typeIdx = (m.typeIdx + len(m.selectors) - 1) % len(m.selectors)
		m.offset = 0
		return m.refresh(), nil
	case "down", "j":
		if m.offset < len(m.items)-1 {
			m.offset++
		}
		return m, nil
	case "up", "k":
		if m.offset > 0 {
			m.offset--
		}
		return m, nil
	case "r":
		if m.busy {
			return m, nil
		}
		m.busy = true
		return m, reload(m.ctx, m.feed)
	case "p":
		if m.busy {
			return m, nil
		}
		m.busy = true
		m.notice = "Applying preferences..."
		m.noticeOK = true
		return m, submitPreferences(m.ctx, m.submitter, m.feed, m.prefs)
	}
	return m, nil
}

// handleReloaded processes a manual reload; failures show through the load status
func (m Model) handleReloaded(ReloadedMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	return m.refresh(), nil
}

// handlePreferencesApplied processes the preference submission result
func (m Model) handlePreferencesApplied(msg PreferencesAppliedMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	if msg.Err != nil {
		m.notice = msg.Err.Error()
		m.noticeOK = false
		return m.refresh(), nil
	}
	m.notice = "Preferences applied"
	if msg.Ack != nil && !msg.Ack.AppliedAt.IsZero() {
		m.notice = fmt.Sprintf("Preferences applied at %s", msg.Ack.AppliedAt.Local().Format("15:04:05"))
	}
	m.noticeOK = true
	return m.refresh(), nil
}

package extract

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/mailpluck/pluck-cli/internal/workflow"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.ForceQuit):
			return m.quit()
		case key.Matches(msg, m.keys.Reset):
			return m.reset()
		}
		if m.focus == focusList {
			return m.handleListKeys(msg)
		}
		return m.handleInputKeys(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-14, 10)
		m.list.SetSize(msg.Width-4, max(msg.Height-12, 3))

	case workflowMsg:
		wasLoading := m.ctrl.State().Loading()
		next := m.ctrl.Update(msg.msg)
		if wasLoading && m.ctrl.State().Status == workflow.StatusSuccess {
			m.list.Select(0)
			m.focusList()
		}
		m.syncList()
		return m, wrap(next)

	case spinner.TickMsg:
		if !m.ctrl.State().Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case openedMsg:
		if msg.err != nil {
			log.Warn().Err(msg.err).Str("target", msg.target).Msg("failed to open")
			m.notice = "Could not open " + msg.target
		} else {
			m.notice = "Opened " + msg.target
		}
		return m, nil
	}

	var cmd tea.Cmd
	if m.focus == focusInput {
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

func (m Model) reset() (tea.Model, tea.Cmd) {
	m.ctrl.Reset()
	m.input.SetValue("")
	m.notice = ""
	m.list.ResetSelected()
	m.syncList()
	cmd := m.focusInput()
	return m, cmd
}

// handleInputKeys handles key events while the URL field has focus
func (m Model) handleInputKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		m.notice = ""
		m.list.ResetSelected()
		cmd := m.submit()
		m.syncList()
		return m, cmd
	case key.Matches(msg, m.keys.Focus):
		if len(m.ctrl.State().Emails) > 0 {
			m.focusList()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.ctrl.SetURL(m.input.Value())
	return m, cmd
}

// handleListKeys handles key events while the result list has focus
func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.ListReset):
		return m.reset()
	case key.Matches(msg, m.keys.Back):
		cmd := m.focusInput()
		return m, cmd
	case key.Matches(msg, m.keys.Copy):
		return m, wrap(m.ctrl.CopyOne(m.list.Index()))
	case key.Matches(msg, m.keys.CopyAll):
		return m, wrap(m.ctrl.CopyAll())
	case key.Matches(msg, m.keys.Mailto):
		if addr, ok := m.selectedEmail(); ok {
			return m, m.composeTo(addr)
		}
		return m, nil
	case key.Matches(msg, m.keys.OpenPage):
		if u := strings.TrimSpace(m.ctrl.State().URL); u != "" {
			return m, m.openPage(u)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

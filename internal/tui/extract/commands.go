package extract

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mailpluck/pluck-cli/internal/workflow"
)

// wrap adapts a controller Cmd to Bubble Tea. A nil result is dropped.
func wrap(cmd workflow.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	return func() tea.Msg {
		msg := cmd()
		if msg == nil {
			return nil
		}
		return workflowMsg{msg: msg}
	}
}

func (m Model) composeTo(address string) tea.Cmd {
	open := m.openMail
	return func() tea.Msg {
		return openedMsg{target: address, err: open(address)}
	}
}

func (m Model) openPage(url string) tea.Cmd {
	open := m.openURL
	return func() tea.Msg {
		return openedMsg{target: url, err: open(url)}
	}
}

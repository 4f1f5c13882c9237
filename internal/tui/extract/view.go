package extract

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mailpluck/pluck-cli/internal/styles"
	"github.com/mailpluck/pluck-cli/internal/workflow"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	st := m.ctrl.State()
	sections := []string{
		styles.HeaderStyle.Render("pluck · email extractor"),
		m.viewInput(),
	}

	if body := m.viewBody(st); body != "" {
		sections = append(sections, body)
	}
	if status := m.viewStatus(st); status != "" {
		sections = append(sections, styles.StatusBarStyle.Render(status))
	}
	sections = append(sections, styles.HelpStyle.Render(m.helpText(st)))

	return styles.AppStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) viewInput() string {
	box := styles.InputStyle
	if m.focus == focusInput {
		box = styles.InputFocusedStyle
	}
	return box.Render(m.input.View())
}

func (m Model) viewBody(st workflow.State) string {
	switch st.Status {
	case workflow.StatusLoading:
		return m.spinner.View() + " Extracting emails..."
	case workflow.StatusError:
		return styles.ErrorBoxStyle.Render(
			styles.ErrorTitleStyle.Render("Error") + "\n" + st.ErrorMessage)
	case workflow.StatusEmpty:
		return styles.WarningBoxStyle.Render(st.ErrorMessage)
	case workflow.StatusSuccess:
		return m.list.View()
	}
	return ""
}

func (m Model) viewStatus(st workflow.State) string {
	var parts []string
	if st.Copied.IsAll() {
		parts = append(parts, styles.CopiedStyle.Render("✓ Copied all!"))
	}
	if m.notice != "" {
		parts = append(parts, m.notice)
	}
	return strings.Join(parts, "  ")
}

func (m Model) helpText(st workflow.State) string {
	if m.focus == focusList {
		return "c: copy • a: copy all • o: compose • p: open page • tab: edit url • r: reset • q: quit"
	}
	help := "enter: extract • ctrl+r: reset • ctrl+c: quit"
	if len(st.Emails) > 0 {
		help = "enter: extract • tab: results • ctrl+r: reset • ctrl+c: quit"
	}
	return help
}

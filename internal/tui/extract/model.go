// Package extract is the interactive email extraction screen.
package extract

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mailpluck/pluck-cli/internal/browser"
	"github.com/mailpluck/pluck-cli/internal/styles"
	"github.com/mailpluck/pluck-cli/internal/workflow"
)

// EmailItem represents an extracted address in the list
type EmailItem struct {
	Address string
	Copied  bool
}

func (e EmailItem) Title() string {
	if e.Copied {
		return e.Address + "  " + styles.CopiedStyle.Render("✓ Copied!")
	}
	return e.Address
}

func (e EmailItem) Description() string { return "" }

func (e EmailItem) FilterValue() string { return e.Address }

// Messages

// workflowMsg carries a controller result through the Bubble Tea loop.
type workflowMsg struct {
	msg workflow.Msg
}

type openedMsg struct {
	target string
	err    error
}

type focus int

const (
	focusInput focus = iota
	focusList
)

// Model is the Bubble Tea model for the extraction TUI.
type Model struct {
	input   textinput.Model
	list    list.Model
	spinner spinner.Model
	focus   focus

	// notice is a one-line status from the last browser action
	notice   string
	quitting bool

	// Layout
	width  int
	height int

	// Submitted by Init when set
	initialURL string

	// Dependencies
	ctrl     *workflow.Controller
	openURL  func(string) error
	openMail func(string) error
	keys     KeyMap
}

// NewModel creates the extraction TUI around ctrl.
// A non-empty initialURL is submitted as soon as the program starts.
func NewModel(ctrl *workflow.Controller, initialURL string) Model {
	ti := textinput.New()
	ti.Placeholder = "https://example.com/contact"
	ti.Prompt = "URL: "
	ti.CharLimit = 2048
	ti.SetValue(initialURL)
	ti.Focus()

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)
	delegate.Styles.NormalTitle = delegate.Styles.NormalTitle.
		Foreground(styles.White).
		BorderForeground(styles.DarkGray)
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(styles.Primary).
		BorderForeground(styles.Primary)

	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Styles.Title = styles.HeaderStyle
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(styles.HeaderStyle.MarginBottom(0)),
	)

	return Model{
		input:      ti,
		list:       l,
		spinner:    sp,
		focus:      focusInput,
		initialURL: initialURL,
		ctrl:       ctrl,
		openURL:    browser.OpenURL,
		openMail:   browser.Mailto,
		keys:       DefaultKeyMap,
	}
}

func (m Model) Init() tea.Cmd {
	if m.initialURL == "" {
		return textinput.Blink
	}
	return tea.Batch(textinput.Blink, m.submit())
}

// State returns the controller's current session state.
func (m Model) State() workflow.State {
	return m.ctrl.State()
}

// submit starts an extraction for the current input, with the spinner running.
func (m Model) submit() tea.Cmd {
	cmd := m.ctrl.Submit(m.input.Value())
	if cmd == nil {
		return nil
	}
	return tea.Batch(wrap(cmd), m.spinner.Tick)
}

// syncList rebuilds the list items from controller state.
func (m *Model) syncList() {
	st := m.ctrl.State()
	items := make([]list.Item, len(st.Emails))
	for i, e := range st.Emails {
		items[i] = EmailItem{Address: e, Copied: st.Copied.Is(i)}
	}
	idx := m.list.Index()
	m.list.SetItems(items)
	if idx < len(items) {
		m.list.Select(idx)
	}
	m.list.Title = resultTitle(len(st.Emails))

	if len(items) == 0 && m.focus == focusList {
		m.focusInput()
	}
}

func (m *Model) focusInput() tea.Cmd {
	m.focus = focusInput
	return m.input.Focus()
}

func (m *Model) focusList() {
	m.focus = focusList
	m.input.Blur()
}

// selectedEmail returns the highlighted address, if any.
func (m Model) selectedEmail() (string, bool) {
	st := m.ctrl.State()
	if i := m.list.Index(); i >= 0 && i < len(st.Emails) {
		return st.Emails[i], true
	}
	return "", false
}

func resultTitle(n int) string {
	if n == 1 {
		return "Found 1 email"
	}
	return fmt.Sprintf("Found %d emails", n)
}

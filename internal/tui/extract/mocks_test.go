package extract

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/mailpluck/pluck-cli/internal/workflow"
)

// MockExtractor implements workflow.Extractor for testing
type MockExtractor struct {
	ExtractFunc func(ctx context.Context, url string) ([]string, error)

	mu    sync.Mutex
	Calls []string
}

func (m *MockExtractor) Extract(ctx context.Context, url string) ([]string, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, url)
	m.mu.Unlock()
	if m.ExtractFunc != nil {
		return m.ExtractFunc(ctx, url)
	}
	return []string{}, nil
}

// MockClipboard implements workflow.Clipboard for testing
type MockClipboard struct {
	Err error

	mu      sync.Mutex
	Written []string
}

func (m *MockClipboard) WriteText(ctx context.Context, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Written = append(m.Written, text)
	return m.Err
}

func returning(emails ...string) *MockExtractor {
	return &MockExtractor{
		ExtractFunc: func(ctx context.Context, url string) ([]string, error) {
			return emails, nil
		},
	}
}

func failing() *MockExtractor {
	return &MockExtractor{
		ExtractFunc: func(ctx context.Context, url string) ([]string, error) {
			return nil, errors.New("boom")
		},
	}
}

// neverFires keeps the copied marker set for the whole test.
func neverFires(time.Duration) <-chan time.Time {
	return make(chan time.Time)
}

// firesNow expires the copied marker immediately.
func firesNow(time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	ch <- time.Now()
	return ch
}

// testModel creates a sized Model around a fresh controller.
func testModel(t *testing.T, ex workflow.Extractor, cb workflow.Clipboard, opts ...workflow.Option) Model {
	t.Helper()
	opts = append([]workflow.Option{
		workflow.WithLogger(zerolog.Nop()),
		workflow.WithTimer(neverFires),
	}, opts...)
	ctrl := workflow.New(ex, cb, opts...)
	t.Cleanup(ctrl.Close)

	m := NewModel(ctrl, "")
	m.openURL = func(string) error { return nil }
	m.openMail = func(string) error { return nil }
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	return updated.(Model)
}

// drain runs cmd and feeds every workflow and browser result back into m.
// Commands that do not finish promptly (timers, spinner frames) are skipped.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		msg, ok := runWithin(c, 20*time.Millisecond)
		if !ok {
			continue
		}
		switch msg := msg.(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case workflowMsg, openedMsg:
			updated, next := m.Update(msg)
			m = updated.(Model)
			queue = append(queue, next)
		}
	}
	return m
}

func runWithin(cmd tea.Cmd, d time.Duration) (tea.Msg, bool) {
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	select {
	case msg := <-done:
		return msg, true
	case <-time.After(d):
		return nil, false
	}
}

// press sends a key and drains the resulting commands.
func press(t *testing.T, m Model, k tea.KeyMsg) Model {
	t.Helper()
	updated, cmd := m.Update(k)
	return drain(t, updated.(Model), cmd)
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyCtrlR = tea.KeyMsg{Type: tea.KeyCtrlR}
	keyCtrlC = tea.KeyMsg{Type: tea.KeyCtrlC}
)

// submitURL types url into the input and presses enter.
func submitURL(t *testing.T, m Model, url string) Model {
	t.Helper()
	m = press(t, m, keyRunes(url))
	return press(t, m, keyEnter)
}

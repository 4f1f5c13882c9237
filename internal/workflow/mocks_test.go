package workflow

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// MockExtractor implements Extractor for testing
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

// MockClipboard implements Clipboard for testing
type MockClipboard struct {
	WriteTextFunc func(ctx context.Context, text string) error
	Written       []string
}

func (m *MockClipboard) WriteText(ctx context.Context, text string) error {
	m.Written = append(m.Written, text)
	if m.WriteTextFunc != nil {
		return m.WriteTextFunc(ctx, text)
	}
	return nil
}

// manualTimer hands out channels that fire only when told to.
// Timers are numbered in the order After is called.
type manualTimer struct {
	durations []time.Duration
	channels  []chan time.Time
	early     map[int]bool
}

func (m *manualTimer) After(d time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	if m.early[len(m.channels)] {
		ch <- time.Now()
	}
	m.durations = append(m.durations, d)
	m.channels = append(m.channels, ch)
	return ch
}

// fire makes the i-th timer elapse, even if it has not been requested yet.
func (m *manualTimer) fire(i int) {
	if i < len(m.channels) {
		m.channels[i] <- time.Now()
		return
	}
	if m.early == nil {
		m.early = make(map[int]bool)
	}
	m.early[i] = true
}

// returning makes an extractor that answers with emails.
func returning(emails ...string) *MockExtractor {
	return &MockExtractor{
		ExtractFunc: func(ctx context.Context, url string) ([]string, error) {
			return emails, nil
		},
	}
}

// testController creates a Controller with a silent logger.
func testController(ex Extractor, cb Clipboard, opts ...Option) *Controller {
	opts = append([]Option{WithLogger(zerolog.Nop())}, opts...)
	return New(ex, cb, opts...)
}

// successController returns a controller already holding emails.
func successController(cb Clipboard, emails ...string) *Controller {
	c := testController(returning(emails...), cb)
	c.Await(c.Submit("https://example.com"))
	return c
}

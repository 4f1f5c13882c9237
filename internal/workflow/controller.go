// Package workflow holds the extraction session state machine.
//
// A Controller owns one State and changes it only through its methods. Work
// that has to wait (the extraction request, clipboard writes, the copied
// marker timer) is handed back to the caller as a Cmd. The caller runs the
// Cmd wherever it likes and passes the resulting Msg to Update, from the same
// goroutine that calls every other Controller method. Bubble Tea's event loop
// is one such caller; synchronous callers use Await.
package workflow

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mailpluck/pluck-cli/internal/extractor"
	"github.com/mailpluck/pluck-cli/internal/urlcheck"
)

// CopiedTimeout is how long a copied marker stays set.
const CopiedTimeout = 2 * time.Second

// Extractor fetches the email addresses found on a page.
type Extractor interface {
	Extract(ctx context.Context, url string) ([]string, error)
}

// Clipboard writes text to the clipboard.
type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}

// Msg is the result of a Cmd, fed back through Controller.Update.
type Msg interface{}

// Cmd is deferred work. It must not touch the Controller.
type Cmd func() Msg

// ExtractedMsg carries the outcome of an extraction request.
type ExtractedMsg struct {
	Gen    uint64
	URL    string
	Emails []string
	Err    error
}

// CopiedMsg carries the outcome of a clipboard write.
type CopiedMsg struct {
	Gen    uint64
	Marker CopiedMarker
	Err    error
}

// CopyExpiredMsg fires when the copied marker timer elapses.
type CopyExpiredMsg struct {
	Gen uint64
}

// Controller drives one extraction session. It is not safe for concurrent use.
type Controller struct {
	state State

	extractor Extractor
	clipboard Clipboard
	logger    *zerolog.Logger

	ctx           context.Context
	copiedTimeout time.Duration
	after         func(time.Duration) <-chan time.Time

	// session is bumped by every new submission and by Reset; results
	// stamped with an older value are stale.
	session       uint64
	cancelRequest context.CancelFunc

	copyGen     uint64
	cancelTimer context.CancelFunc
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger. Defaults to the global zerolog logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) {
		c.logger = &l
	}
}

// WithContext sets the parent context of every request and timer.
func WithContext(ctx context.Context) Option {
	return func(c *Controller) {
		c.ctx = ctx
	}
}

// WithCopiedTimeout overrides CopiedTimeout.
func WithCopiedTimeout(d time.Duration) Option {
	return func(c *Controller) {
		c.copiedTimeout = d
	}
}

// WithTimer replaces time.After for the copied marker timer.
func WithTimer(after func(time.Duration) <-chan time.Time) Option {
	return func(c *Controller) {
		c.after = after
	}
}

// New creates a Controller in the idle state.
func New(ex Extractor, cb Clipboard, opts ...Option) *Controller {
	c := &Controller{
		extractor:     ex,
		clipboard:     cb,
		ctx:           context.Background(),
		copiedTimeout: CopiedTimeout,
		after:         time.After,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a snapshot of the session state.
func (c *Controller) State() State {
	return c.state.clone()
}

// SetURL records the current input text without submitting it.
func (c *Controller) SetURL(input string) {
	c.state.URL = input
}

// Submit validates input and, if it is a URL, starts an extraction.
// It returns nil when no request is needed: the input was rejected, or a
// request is already outstanding.
func (c *Controller) Submit(input string) Cmd {
	if c.state.Loading() {
		c.log().Debug().Str("url", input).Msg("submit ignored while loading")
		return nil
	}

	c.state.URL = input
	target := strings.TrimSpace(input)

	if target == "" {
		c.fail(MsgEnterURL)
		return nil
	}
	if !urlcheck.IsValid(target) {
		c.fail(MsgInvalidURL)
		return nil
	}

	c.clearCopied()
	c.session++
	gen := c.session

	ctx, cancel := context.WithCancel(c.ctx)
	c.cancelRequest = cancel

	c.state.Emails = nil
	c.state.ErrorMessage = ""
	c.state.Status = StatusLoading

	c.log().Info().Str("url", target).Uint64("session", gen).Msg("extracting emails")

	ex := c.extractor
	return func() Msg {
		emails, err := ex.Extract(ctx, target)
		return ExtractedMsg{Gen: gen, URL: target, Emails: emails, Err: err}
	}
}

// Reset returns the session to idle, abandoning any outstanding request.
func (c *Controller) Reset() {
	c.stopRequest()
	c.clearCopied()
	c.session++
	c.state = State{}
}

// CopyOne copies the email at index i. It returns nil if there is no such email.
func (c *Controller) CopyOne(i int) Cmd {
	if i < 0 || i >= len(c.state.Emails) {
		return nil
	}
	return c.copyCmd(c.state.Emails[i], CopiedIndex(i))
}

// CopyAll copies every email, one per line. It returns nil if there are none.
func (c *Controller) CopyAll() Cmd {
	if len(c.state.Emails) == 0 {
		return nil
	}
	return c.copyCmd(strings.Join(c.state.Emails, "\n"), CopiedAll)
}

// Update applies the result of a Cmd and returns any follow-up work.
func (c *Controller) Update(msg Msg) Cmd {
	switch msg := msg.(type) {
	case ExtractedMsg:
		c.handleExtracted(msg)
	case CopiedMsg:
		return c.handleCopied(msg)
	case CopyExpiredMsg:
		if msg.Gen == c.copyGen {
			c.clearCopied()
		}
	}
	return nil
}

// Await runs cmd on the calling goroutine and applies its result. The
// follow-up Cmd, if any, is returned without being run.
func (c *Controller) Await(cmd Cmd) Cmd {
	if cmd == nil {
		return nil
	}
	return c.Update(cmd())
}

// Close cancels any outstanding request and timer.
func (c *Controller) Close() {
	c.stopRequest()
	c.clearCopied()
}

func (c *Controller) handleExtracted(msg ExtractedMsg) {
	if msg.Gen != c.session || !c.state.Loading() {
		c.log().Debug().Str("url", msg.URL).Uint64("session", msg.Gen).Msg("discarding stale extraction result")
		return
	}
	c.stopRequest()

	if msg.Err != nil {
		event := c.log().Error().Err(msg.Err).
			Str("url", msg.URL).
			Str("kind", extractor.KindOf(msg.Err).String())
		var extErr *extractor.Error
		if errors.As(msg.Err, &extErr) {
			event = event.Str("request_id", extErr.RequestID)
			if extErr.StatusCode != 0 {
				event = event.Int("status", extErr.StatusCode)
			}
		}
		event.Msg("extraction failed")
		c.fail(MsgExtractFailed)
		return
	}

	if len(msg.Emails) == 0 {
		c.state.Emails = nil
		c.state.Status = StatusEmpty
		c.state.ErrorMessage = MsgNoEmails
		c.log().Info().Str("url", msg.URL).Msg("no emails found")
		return
	}

	c.state.Emails = append([]string(nil), msg.Emails...)
	c.state.Status = StatusSuccess
	c.state.ErrorMessage = ""
	c.log().Info().Str("url", msg.URL).Int("count", len(msg.Emails)).Msg("emails extracted")
}

func (c *Controller) handleCopied(msg CopiedMsg) Cmd {
	if msg.Err != nil {
		c.log().Warn().Err(msg.Err).Str("marker", msg.Marker.String()).Msg("failed to copy")
		return nil
	}
	if msg.Gen != c.session || len(c.state.Emails) == 0 {
		c.log().Debug().Str("marker", msg.Marker.String()).Msg("discarding stale copy result")
		return nil
	}
	c.state.Copied = msg.Marker
	return c.armCopiedTimer()
}

func (c *Controller) copyCmd(text string, marker CopiedMarker) Cmd {
	gen := c.session
	cb := c.clipboard
	ctx := c.ctx
	return func() Msg {
		err := cb.WriteText(ctx, text)
		return CopiedMsg{Gen: gen, Marker: marker, Err: err}
	}
}

// armCopiedTimer cancels any running marker timer and starts a new one.
func (c *Controller) armCopiedTimer() Cmd {
	if c.cancelTimer != nil {
		c.cancelTimer()
	}
	c.copyGen++
	gen := c.copyGen

	ctx, cancel := context.WithCancel(c.ctx)
	c.cancelTimer = cancel

	after := c.after
	d := c.copiedTimeout
	return func() Msg {
		select {
		case <-after(d):
			return CopyExpiredMsg{Gen: gen}
		case <-ctx.Done():
			return nil
		}
	}
}

func (c *Controller) clearCopied() {
	if c.cancelTimer != nil {
		c.cancelTimer()
		c.cancelTimer = nil
	}
	c.copyGen++
	c.state.Copied = NotCopied
}

func (c *Controller) stopRequest() {
	if c.cancelRequest != nil {
		c.cancelRequest()
		c.cancelRequest = nil
	}
}

func (c *Controller) fail(message string) {
	c.clearCopied()
	c.state.Emails = nil
	c.state.Status = StatusError
	c.state.ErrorMessage = message
}

func (c *Controller) log() *zerolog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return &log.Logger
}

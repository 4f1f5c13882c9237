// Package clipboard writes text to the user's clipboard.
//
// Failures are reported as errors wrapping ErrWriteFailed. Callers are expected
// to log them and carry on: a failed copy is never fatal.
package clipboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
)

// ErrWriteFailed is wrapped by every error returned from a Writer.
var ErrWriteFailed = errors.New("clipboard write failed")

// Backend names accepted by New.
const (
	BackendAuto   = "auto"
	BackendSystem = "system"
	BackendOSC52  = "osc52"
	BackendNone   = "none"
)

// Backends lists the valid backend names.
var Backends = []string{BackendAuto, BackendSystem, BackendOSC52, BackendNone}

// Writer writes a single string to the clipboard.
type Writer interface {
	WriteText(ctx context.Context, text string) error
}

// New returns the Writer for the named backend. out is where OSC 52 sequences
// are written, normally the terminal.
func New(backend string, out io.Writer) (Writer, error) {
	switch strings.ToLower(backend) {
	case "", BackendAuto:
		return Fallback{System{}, &OSC52{Out: out}}, nil
	case BackendSystem:
		return System{}, nil
	case BackendOSC52:
		return &OSC52{Out: out}, nil
	case BackendNone:
		return Disabled{}, nil
	default:
		return nil, fmt.Errorf("unknown clipboard backend %q (valid: %s)", backend, strings.Join(Backends, ", "))
	}
}

// System uses the operating system clipboard (pbcopy, xclip/xsel/wl-copy, or the Windows API).
type System struct{}

func (System) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	if clipboard.Unsupported {
		return fmt.Errorf("%w: no system clipboard utility found", ErrWriteFailed)
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	return nil
}

// OSC52 asks the terminal emulator to set the clipboard with an OSC 52 escape
// sequence. It works over SSH but the terminal may silently ignore it.
type OSC52 struct {
	Out io.Writer
	// Getenv defaults to os.Getenv and is used to detect tmux and screen.
	Getenv func(string) string
}

func (o *OSC52) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	if o.Out == nil {
		return fmt.Errorf("%w: no terminal output", ErrWriteFailed)
	}

	seq := osc52.New(text)
	switch o.multiplexer() {
	case "tmux":
		seq = seq.Tmux()
	case "screen":
		seq = seq.Screen()
	}
	if _, err := seq.WriteTo(o.Out); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	return nil
}

func (o *OSC52) multiplexer() string {
	getenv := o.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	term := getenv("TERM")
	switch {
	case getenv("TMUX") != "" || strings.HasPrefix(term, "tmux"):
		return "tmux"
	case getenv("STY") != "" || strings.HasPrefix(term, "screen"):
		return "screen"
	}
	return ""
}

// Fallback tries each Writer in order and stops at the first success.
type Fallback []Writer

func (f Fallback) WriteText(ctx context.Context, text string) error {
	var errs []error
	for _, w := range f {
		err := w.WriteText(ctx, text)
		if err == nil {
			return nil
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return fmt.Errorf("%w: no clipboard configured", ErrWriteFailed)
	}
	return errors.Join(errs...)
}

// Disabled refuses every write.
type Disabled struct{}

func (Disabled) WriteText(context.Context, string) error {
	return fmt.Errorf("%w: clipboard disabled", ErrWriteFailed)
}

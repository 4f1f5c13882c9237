package extractor

import (
	"errors"
	"fmt"
)

// Kind classifies why an extraction failed.
type Kind int

const (
	KindUnknown Kind = iota
	// KindNetwork covers DNS, connection, timeout and cancellation failures.
	KindNetwork
	// KindHTTP means the service answered with a non-2xx status.
	KindHTTP
	// KindDecode means the body was not the expected JSON document.
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindHTTP:
		return "http"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// Error is returned by Client.Extract for every failure.
type Error struct {
	Kind       Kind
	StatusCode int // set for KindHTTP
	RequestID  string
	Err        error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindHTTP:
		return fmt.Sprintf("extraction service returned HTTP %d", e.StatusCode)
	case KindDecode:
		return fmt.Sprintf("failed to decode extraction response: %v", e.Err)
	default:
		return fmt.Sprintf("extraction request failed: %v", e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of err, or KindUnknown if err did not come from this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

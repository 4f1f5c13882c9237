package workflow

import (
	"fmt"
	"slices"
)

// User-facing messages.
const (
	MsgEnterURL      = "Please enter a URL"
	MsgInvalidURL    = "Please enter a valid URL"
	MsgNoEmails      = "No emails found on this webpage"
	MsgExtractFailed = "Failed to extract emails. Please check the URL and try again."
)

// Status is the coarse phase of a session.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusEmpty
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusEmpty:
		return "empty"
	case StatusError:
		return "error"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// CopiedMarker records which copy action most recently succeeded.
// The zero value means nothing is marked.
type CopiedMarker struct {
	kind  markerKind
	index int
}

type markerKind uint8

const (
	markerNone markerKind = iota
	markerIndex
	markerAll
)

var (
	// NotCopied is the empty marker.
	NotCopied = CopiedMarker{}
	// CopiedAll marks a successful copy of every email.
	CopiedAll = CopiedMarker{kind: markerAll}
)

// CopiedIndex marks a successful copy of the email at index i.
func CopiedIndex(i int) CopiedMarker {
	return CopiedMarker{kind: markerIndex, index: i}
}

// IsNone reports whether nothing is marked.
func (c CopiedMarker) IsNone() bool { return c.kind == markerNone }

// IsAll reports whether the "copy all" action is marked.
func (c CopiedMarker) IsAll() bool { return c.kind == markerAll }

// Index returns the marked email index, if a single email is marked.
func (c CopiedMarker) Index() (int, bool) {
	if c.kind != markerIndex {
		return 0, false
	}
	return c.index, true
}

// Is reports whether the email at index i is marked.
func (c CopiedMarker) Is(i int) bool {
	return c.kind == markerIndex && c.index == i
}

func (c CopiedMarker) String() string {
	switch c.kind {
	case markerIndex:
		return fmt.Sprintf("%d", c.index)
	case markerAll:
		return "all"
	default:
		return "none"
	}
}

// State is the observable state of one extraction session.
//
// Emails is non-empty only in StatusSuccess and ErrorMessage is set only in
// StatusError and StatusEmpty.
type State struct {
	URL          string
	Emails       []string
	Status       Status
	ErrorMessage string
	Copied       CopiedMarker
}

// Loading reports whether an extraction request is outstanding.
func (s State) Loading() bool {
	return s.Status == StatusLoading
}

func (s State) clone() State {
	s.Emails = slices.Clone(s.Emails)
	return s
}

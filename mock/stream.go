package mock

import (
	"io"

	"github.com/fwojciec/trickle"
)

// Interface compliance check.
var _ trickle.Stream = (*Stream)(nil)

// Stream is a test double for trickle.Stream.
// Set the function fields for the methods you need. NextFn panics when nil
// to catch missing setup. CloseFn, StateFn and ContentFn are nil-safe
// (no-op and zero values) because callers commonly defer Close and these
// methods rarely need custom behavior.
type Stream struct {
	NextFn    func() (trickle.Event, error)
	StateFn   func() trickle.StreamState
	ContentFn func() string
	CloseFn   func() error
}

// Next delegates to NextFn.
func (s *Stream) Next() (trickle.Event, error) {
	return s.NextFn()
}

// State delegates to StateFn. Returns StreamStateNew when StateFn is nil.
func (s *Stream) State() trickle.StreamState {
	if s.StateFn == nil {
		return trickle.StreamStateNew
	}
	return s.StateFn()
}

// Content delegates to ContentFn. Returns "" when ContentFn is nil.
func (s *Stream) Content() string {
	if s.ContentFn == nil {
		return ""
	}
	return s.ContentFn()
}

// Close delegates to CloseFn. Returns nil when CloseFn is not set.
func (s *Stream) Close() error {
	if s.CloseFn == nil {
		return nil
	}
	return s.CloseFn()
}

// Events returns a Stream that yields the given events in order and then
// finishes with err, or io.EOF when err is nil.
func Events(err error, events ...trickle.Event) *Stream {
	i := 0
	return &Stream{
		NextFn: func() (trickle.Event, error) {
			if i < len(events) {
				evt := events[i]
				i++
				return evt, nil
			}
			if err != nil {
				return nil, err
			}
			return nil, io.EOF
		},
	}
}

package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/fwojciec/trickle"
	"github.com/fwojciec/trickle/sse"
)

// stream implements [trickle.Stream] over a server-sent event response body.
type stream struct {
	body    io.ReadCloser
	frames  *sse.Reader
	ctx     context.Context
	logger  *slog.Logger
	state   trickle.StreamState
	content strings.Builder
	err     error // terminal error, if any
}

// Interface compliance check.
var _ trickle.Stream = (*stream)(nil)

func newStream(ctx context.Context, body io.ReadCloser, logger *slog.Logger) *stream {
	return &stream{
		body:   body,
		frames: sse.NewReader(body),
		ctx:    ctx,
		logger: logger,
		state:  trickle.StreamStateNew,
	}
}

// Next reads frames until one maps to a text delta or ends the stream.
// Returns io.EOF once the done frame has been seen.
func (s *stream) Next() (trickle.Event, error) {
	switch s.state {
	case trickle.StreamStateComplete:
		return nil, io.EOF
	case trickle.StreamStateError:
		return nil, s.err
	case trickle.StreamStateClosed:
		return nil, fmt.Errorf("api: %w", trickle.ErrStreamClosed)
	}

	for {
		frame, err := s.frames.Next()
		if err != nil {
			s.terminate(err)
			return nil, s.err
		}

		s.state = trickle.StreamStateStreaming

		evt, err := ParseFrame(frame.Data)
		if err != nil {
			s.logger.Warn("dropping frame", "error", err, "data", frame.Data)
			continue
		}

		switch e := evt.(type) {
		case trickle.EventText:
			s.content.WriteString(e.Delta)
			return e, nil
		case trickle.EventDone:
			s.state = trickle.StreamStateComplete
			return nil, io.EOF
		case trickle.EventError:
			s.state = trickle.StreamStateError
			s.err = fmt.Errorf("api: %w", &trickle.ServerError{Message: e.Message})
			return nil, s.err
		}
		// Empty text frame, keep reading.
	}
}

// State returns the current stream state.
func (s *stream) State() trickle.StreamState {
	return s.state
}

// Content returns the text received so far.
func (s *stream) Content() string {
	return s.content.String()
}

// Close closes the underlying HTTP response body.
func (s *stream) Close() error {
	if s.state != trickle.StreamStateComplete && s.state != trickle.StreamStateError {
		s.state = trickle.StreamStateClosed
	}
	return s.body.Close()
}

// terminate records a terminal read error.
func (s *stream) terminate(err error) {
	s.state = trickle.StreamStateError
	switch {
	case s.ctx.Err() != nil:
		s.err = fmt.Errorf("api: %w", s.ctx.Err())
	case errors.Is(err, io.EOF):
		// A well-formed reply ends with a done frame.
		s.err = fmt.Errorf("api: %w", trickle.ErrUnexpectedEOF)
	default:
		s.err = fmt.Errorf("api: %w", err)
	}
}

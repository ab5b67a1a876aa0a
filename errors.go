package trickle

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure modes.
var (
	// ErrValidation indicates a value failed validation.
	ErrValidation = errors.New("validation error")

	// ErrEmptyInput indicates a submission with no non-whitespace text.
	ErrEmptyInput = errors.New("empty input")

	// ErrInFlight indicates a submission while a reply is still streaming.
	ErrInFlight = errors.New("a reply is already streaming")

	// ErrNotStreaming indicates an event addressed to a message that is
	// unknown or already terminal.
	ErrNotStreaming = errors.New("message is not streaming")

	// ErrStreamClosed indicates an operation on a closed stream.
	ErrStreamClosed = errors.New("stream closed")

	// ErrUnexpectedEOF indicates the response body ended before a done frame.
	ErrUnexpectedEOF = errors.New("unexpected end of stream")

	// ErrMalformedFrame indicates a frame payload that carries no event.
	ErrMalformedFrame = errors.New("malformed frame")

	// ErrMissingBody indicates a streaming response without a body.
	ErrMissingBody = errors.New("missing response body")
)

// ServerError is a failure reported by the backend itself: an error frame in
// the stream, or success=false from the synchronous chat endpoint.
type ServerError struct {
	Message string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return "server error"
	}
	return "server error: " + e.Message
}

// HTTPError reports a response with a non-success status code.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

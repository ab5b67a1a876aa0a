package trickle

// StreamState indicates the current state of a Stream.
type StreamState int

const (
	StreamStateNew       StreamState = iota // Before Next() is ever called.
	StreamStateStreaming                    // Mid-stream, receiving deltas.
	StreamStateComplete                     // Done frame received; Next() returns io.EOF.
	StreamStateError                        // Next() returned non-EOF error.
	StreamStateClosed                       // Close() called before terminal state.
)

func (s StreamState) String() string {
	switch s {
	case StreamStateNew:
		return "new"
	case StreamStateStreaming:
		return "streaming"
	case StreamStateComplete:
		return "complete"
	case StreamStateError:
		return "error"
	case StreamStateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Stream uses a pull-based iterator pattern. Cancellation flows through the
// context passed to Backend.Stream().
//
// Next returns the next EventText. Completion and failure are not events on
// this interface:
//   - a done frame makes Next return io.EOF, now and on every later call;
//   - an error frame makes Next return a *ServerError;
//   - transport failures, including a body that ends before a done frame,
//     are returned as errors.
//
// Content returns the text accumulated so far. Close releases the
// underlying response body and must be called on every exit path.
type Stream interface {
	Next() (Event, error)
	State() StreamState
	Content() string
	Close() error
}

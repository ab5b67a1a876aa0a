package trickle

// Event is a sealed interface representing a streaming event.
// The unexported marker method prevents external implementations.
type Event interface {
	event()
}

// EventText carries an incremental text fragment of the reply.
type EventText struct {
	Delta string
}

func (EventText) event() {}

// EventDone signals that the backend finished the reply.
type EventDone struct{}

func (EventDone) event() {}

// EventError carries a failure message reported by the backend.
type EventError struct {
	Message string
}

func (EventError) event() {}

// Interface compliance checks.
var (
	_ Event = EventText{}
	_ Event = EventDone{}
	_ Event = EventError{}
)

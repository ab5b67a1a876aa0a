package trickle

import "time"

// Sender identifies who authored a message.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// MessageState is the lifecycle state of a message.
type MessageState int

const (
	MessagePending   MessageState = iota // Zero value; never stored in a Conversation.
	MessageStreaming                     // Receiving deltas.
	MessageComplete                      // Terminal, reply finished.
	MessageErrored                       // Terminal, content replaced with FailureText.
)

func (s MessageState) String() string {
	switch s {
	case MessagePending:
		return "pending"
	case MessageStreaming:
		return "streaming"
	case MessageComplete:
		return "complete"
	case MessageErrored:
		return "errored"
	default:
		return "unknown"
	}
}

// Message is one entry of a Conversation. ID is stable for the lifetime of
// the message and is the key for in-place content updates.
type Message struct {
	ID        string
	Sender    Sender
	Content   string
	CreatedAt time.Time
	State     MessageState
}

// IsStreaming reports whether the message is still receiving deltas.
func (m Message) IsStreaming() bool { return m.State == MessageStreaming }

// Terminal reports whether the message can no longer change.
func (m Message) Terminal() bool {
	return m.State == MessageComplete || m.State == MessageErrored
}

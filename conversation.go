package trickle

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FailureText replaces the content of a reply that failed mid-stream.
const FailureText = "Sorry, I encountered an error. Please try again."

// Conversation is the ordered transcript of one chat. It is the single owner
// of its messages: they change only through Submit, Apply and Fail. At most
// one message streams at a time.
//
// A Conversation is not safe for concurrent use; callers serialize access
// (the TUI mutates it only from its update loop).
type Conversation struct {
	messages  []Message
	index     map[string]int
	streaming int // index of the streaming message, -1 when idle
	newID     func() string
	now       func() time.Time
	greeting  string
}

// ConversationOption configures a Conversation.
type ConversationOption func(*Conversation)

// WithGreeting seeds the conversation with a complete assistant message.
func WithGreeting(text string) ConversationOption {
	return func(c *Conversation) { c.greeting = text }
}

// WithIDFunc overrides message ID generation. Defaults to random UUIDs.
func WithIDFunc(fn func() string) ConversationOption {
	return func(c *Conversation) { c.newID = fn }
}

// WithClock overrides the clock used for CreatedAt.
func WithClock(fn func() time.Time) ConversationOption {
	return func(c *Conversation) { c.now = fn }
}

// NewConversation creates an empty Conversation.
func NewConversation(opts ...ConversationOption) *Conversation {
	c := &Conversation{
		index:     make(map[string]int),
		streaming: -1,
		newID:     uuid.NewString,
		now:       time.Now,
	}
	for _, o := range opts {
		o(c)
	}
	if c.greeting != "" {
		c.append(SenderAssistant, c.greeting, MessageComplete)
	}
	return c
}

// Exchange identifies the reply opened by a successful Submit.
type Exchange struct {
	Prompt  string // trimmed user text, as sent to the backend
	ReplyID string // ID of the streaming assistant message
}

// Submit appends the user's message and an empty streaming reply. It returns
// ErrEmptyInput for whitespace-only text and ErrInFlight while another reply
// is streaming; in both cases nothing is appended.
func (c *Conversation) Submit(text string) (Exchange, error) {
	prompt := strings.TrimSpace(text)
	if prompt == "" {
		return Exchange{}, ErrEmptyInput
	}
	if c.streaming >= 0 {
		return Exchange{}, ErrInFlight
	}
	c.append(SenderUser, prompt, MessageComplete)
	reply := c.append(SenderAssistant, "", MessageStreaming)
	c.streaming = c.index[reply.ID]
	return Exchange{Prompt: prompt, ReplyID: reply.ID}, nil
}

// Apply merges a stream event into the message with the given ID. Text is
// appended in call order; done completes the message; an error event
// replaces its content with FailureText. Events for unknown or terminal
// messages return ErrNotStreaming and change nothing.
func (c *Conversation) Apply(id string, evt Event) error {
	i, err := c.streamingIndex(id)
	if err != nil {
		return err
	}
	switch e := evt.(type) {
	case EventText:
		c.messages[i].Content += e.Delta
	case EventDone:
		c.finish(i, MessageComplete)
	case EventError:
		c.messages[i].Content = FailureText
		c.finish(i, MessageErrored)
	default:
		return fmt.Errorf("unsupported event %T: %w", evt, ErrValidation)
	}
	return nil
}

// Fail terminates the streaming message after a transport failure.
func (c *Conversation) Fail(id string) error {
	i, err := c.streamingIndex(id)
	if err != nil {
		return err
	}
	c.messages[i].Content = FailureText
	c.finish(i, MessageErrored)
	return nil
}

// Streaming returns the message currently receiving deltas, if any.
func (c *Conversation) Streaming() (Message, bool) {
	if c.streaming < 0 {
		return Message{}, false
	}
	return c.messages[c.streaming], true
}

// Message returns the message with the given ID.
func (c *Conversation) Message(id string) (Message, bool) {
	i, ok := c.index[id]
	if !ok {
		return Message{}, false
	}
	return c.messages[i], true
}

// Messages returns a copy of the transcript in chronological order.
func (c *Conversation) Messages() []Message {
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Len returns the number of messages.
func (c *Conversation) Len() int { return len(c.messages) }

func (c *Conversation) append(sender Sender, content string, state MessageState) Message {
	msg := Message{
		ID:        c.newID(),
		Sender:    sender,
		Content:   content,
		CreatedAt: c.now(),
		State:     state,
	}
	c.index[msg.ID] = len(c.messages)
	c.messages = append(c.messages, msg)
	return msg
}

func (c *Conversation) streamingIndex(id string) (int, error) {
	i, ok := c.index[id]
	if !ok || !c.messages[i].IsStreaming() {
		return -1, fmt.Errorf("message %q: %w", id, ErrNotStreaming)
	}
	return i, nil
}

func (c *Conversation) finish(i int, state MessageState) {
	c.messages[i].State = state
	c.streaming = -1
}

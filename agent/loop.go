// Package agent drives a single exchange between a Conversation and a Backend.
package agent

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/trickle"
)

// Loop opens reply streams on a Backend and drains them.
type Loop struct {
	backend trickle.Backend
	logger  *slog.Logger
}

// Option configures a Loop.
type Option func(*Loop)

// WithLogger sets the logger that records how each stream ended. Defaults to
// a discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(loop *Loop) { loop.logger = l }
}

// New creates a new Loop for the given backend.
func New(backend trickle.Backend, opts ...Option) *Loop {
	l := &Loop{backend: backend, logger: slog.New(slog.DiscardHandler)}
	for _, o := range opts {
		o(l)
	}
	return l
}

// RunOption configures a single Run or Converse invocation.
type RunOption func(*runConfig)

type runConfig struct {
	onEvent  func(trickle.Event)
	onUpdate func(trickle.Message)
}

// WithEventHandler sets a callback that receives each streaming event in
// arrival order. If nil or not set, events are silently discarded.
func WithEventHandler(h func(trickle.Event)) RunOption {
	return func(c *runConfig) {
		c.onEvent = h
	}
}

// WithUpdateHandler sets a callback that receives the reply message after
// every change made by Converse.
func WithUpdateHandler(h func(trickle.Message)) RunOption {
	return func(c *runConfig) {
		c.onUpdate = h
	}
}

// Run opens a reply stream for prompt and forwards each event to the event
// handler. It returns nil once the backend signals done and the stream's
// error otherwise. The stream is closed on every exit path.
func (l *Loop) Run(ctx context.Context, prompt string, opts ...RunOption) error {
	var cfg runConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return l.drain(ctx, prompt, cfg.onEvent)
}

func (l *Loop) drain(ctx context.Context, prompt string, onEvent func(trickle.Event)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	stream, err := l.backend.Stream(ctx, prompt)
	if err != nil {
		return err
	}
	defer stream.Close()
	defer func() {
		l.logger.Debug("stream finished",
			"state", stream.State(),
			"content_bytes", len(stream.Content()))
	}()

	for {
		evt, err := stream.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if onEvent != nil {
			onEvent(evt)
		}
	}
}

// Converse submits text to conv and streams the reply into it on the calling
// goroutine. The returned message is the terminal reply. A submission error
// leaves conv untouched; a stream error marks the reply errored and is
// returned alongside it.
func (l *Loop) Converse(ctx context.Context, conv *trickle.Conversation, text string, opts ...RunOption) (trickle.Message, error) {
	var cfg runConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	ex, err := conv.Submit(text)
	if err != nil {
		return trickle.Message{}, err
	}

	notify := func() {
		if cfg.onUpdate == nil {
			return
		}
		if msg, ok := conv.Message(ex.ReplyID); ok {
			cfg.onUpdate(msg)
		}
	}

	runErr := l.drain(ctx, ex.Prompt, func(evt trickle.Event) {
		if cfg.onEvent != nil {
			cfg.onEvent(evt)
		}
		if conv.Apply(ex.ReplyID, evt) == nil {
			notify()
		}
	})
	if runErr != nil {
		_ = conv.Fail(ex.ReplyID)
	} else {
		_ = conv.Apply(ex.ReplyID, trickle.EventDone{})
	}
	notify()

	msg, _ := conv.Message(ex.ReplyID)
	return msg, runErr
}

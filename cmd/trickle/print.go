package main

import (
	"context"
	"fmt"
	"io"

	"github.com/fwojciec/trickle"
	"github.com/fwojciec/trickle/agent"
	bt "github.com/fwojciec/trickle/bubbletea"
	"github.com/fwojciec/trickle/goldmark"
	"github.com/fwojciec/trickle/markdown"
)

const (
	formatText = "text"
	formatANSI = "ansi"
	formatHTML = "html"
)

// printer writes a single reply to w without the TUI.
type printer struct {
	w      io.Writer
	format string
	render bt.RenderFunc
	width  int
}

func validateFormat(format string) error {
	switch format {
	case formatText, formatANSI, formatHTML:
		return nil
	default:
		return fmt.Errorf("format %q: must be text, ansi or html: %w", format, trickle.ErrValidation)
	}
}

// stream sends prompt and prints the reply. The text format writes deltas as
// they arrive; the other formats render the complete reply once.
func (p printer) stream(ctx context.Context, loop *agent.Loop, prompt string) error {
	if p.format == formatText {
		err := loop.Run(ctx, prompt, agent.WithEventHandler(func(e trickle.Event) {
			if t, ok := e.(trickle.EventText); ok {
				fmt.Fprint(p.w, goldmark.RenderPlain(t.Delta))
			}
		}))
		fmt.Fprintln(p.w)
		return err
	}

	conv := trickle.NewConversation()
	msg, err := loop.Converse(ctx, conv, prompt)
	if err != nil {
		return err
	}
	return p.print(msg.Content)
}

// print renders finished reply content in the printer's format.
func (p printer) print(content string) error {
	view := markdown.Normalize(content, false)
	switch p.format {
	case formatHTML:
		if !view.Markdown {
			_, err := io.WriteString(p.w, goldmark.PlainHTML(view.Text))
			return err
		}
		out, err := goldmark.RenderHTML(view.Text)
		if err != nil {
			return fmt.Errorf("render html: %w", err)
		}
		_, err = io.WriteString(p.w, out)
		return err
	case formatANSI:
		if !view.Markdown {
			_, err := fmt.Fprintln(p.w, goldmark.RenderPlain(view.Text))
			return err
		}
		_, err := fmt.Fprintln(p.w, p.render(view.Text, p.width))
		return err
	default:
		_, err := fmt.Fprintln(p.w, goldmark.RenderPlain(view.Text))
		return err
	}
}

// chatter is the synchronous side of the backend client.
type chatter interface {
	Chat(ctx context.Context, prompt string) (trickle.ChatResponse, error)
	Health(ctx context.Context) (trickle.Health, error)
}

// chat sends prompt to the synchronous endpoint and prints the reply.
func (p printer) chat(ctx context.Context, c chatter, prompt string) error {
	resp, err := c.Chat(ctx, prompt)
	if err != nil {
		return err
	}
	return p.print(resp.Response)
}

// health prints the backend's diagnostic status.
func health(ctx context.Context, w io.Writer, c chatter) error {
	h, err := c.Health(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "status: %s\nagent initialized: %t\nversion: %s\n", h.Status, h.AgentInitialized, h.Version)
	return err
}

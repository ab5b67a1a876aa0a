// Package bubbletea provides a Bubble Tea TUI for chatting with the backend.
package bubbletea

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/trickle"
)

// AgentFunc streams the reply to prompt. The onEvent callback is called for
// each event in arrival order. The function blocks until the reply completes
// or the context is cancelled.
type AgentFunc func(ctx context.Context, prompt string, onEvent func(trickle.Event)) error

// RenderFunc renders markdown source wrapped to width.
type RenderFunc func(source string, width int) string

// Config holds optional Model settings.
type Config struct {
	Theme trickle.Theme
	// Render renders markdown replies. Defaults to the goldmark renderer.
	Render RenderFunc
	// Suggestions are prompts offered by Tab when the input is empty.
	Suggestions []string
	Logger      *slog.Logger
}

// Run creates and runs the Bubble Tea TUI program. It blocks until the program
// exits. The context is used for graceful shutdown: when cancelled, the
// program quits.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	_, err := p.Run()
	return err
}

// StreamEventMsg delivers one event of the reply with the given message ID.
type StreamEventMsg struct {
	ID    string
	Event trickle.Event
}

// AgentDoneMsg signals that the stream for the reply with the given message
// ID has ended.
type AgentDoneMsg struct {
	ID  string
	Err error
}

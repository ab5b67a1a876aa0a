package bubbletea_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/trickle"
	bt "github.com/fwojciec/trickle/bubbletea"
	"github.com/stretchr/testify/require"
)

var suggestions = []string{
	"What services do you offer?",
	"How much does a haircut cost?",
	"Can I book an appointment?",
}

// sequentialIDs returns an ID generator producing m1, m2, ...
func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("m%d", n)
	}
}

// fixedClock returns a clock stuck at 14:05.
func fixedClock() time.Time {
	return time.Date(2026, 3, 1, 14, 5, 0, 0, time.UTC)
}

func newConversation(opts ...trickle.ConversationOption) *trickle.Conversation {
	base := []trickle.ConversationOption{
		trickle.WithIDFunc(sequentialIDs()),
		trickle.WithClock(fixedClock),
	}
	return trickle.NewConversation(append(base, opts...)...)
}

// initModel creates a model and sends a WindowSizeMsg to initialize the viewport.
func initModel(t *testing.T, run bt.AgentFunc) bt.Model {
	t.Helper()
	return initModelWithSize(t, run, 80, 24)
}

// initModelWithSize creates a model with a custom terminal size.
func initModelWithSize(t *testing.T, run bt.AgentFunc, width, height int) bt.Model {
	t.Helper()
	m := bt.New(run, newConversation(), bt.Config{Theme: trickle.DefaultTheme(), Suggestions: suggestions})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: width, Height: height})
	model, ok := updated.(bt.Model)
	require.True(t, ok)
	return model
}

// updateModel sends a message and returns the updated Model.
func updateModel(t *testing.T, m bt.Model, msg tea.Msg) bt.Model {
	t.Helper()
	updated, _ := m.Update(msg)
	model, ok := updated.(bt.Model)
	require.True(t, ok)
	return model
}

// submit types text and presses Enter, returning the model with a reply in flight.
func submit(t *testing.T, m bt.Model, text string) bt.Model {
	t.Helper()
	m.Input.SetValue(text)
	m = updateModel(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.Running())
	return m
}

// nopAgent is a mock agent that does nothing.
func nopAgent(_ context.Context, _ string, _ func(trickle.Event)) error {
	return nil
}

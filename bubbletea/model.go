package bubbletea

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/trickle"
	"github.com/fwojciec/trickle/goldmark"
	"github.com/mattn/go-runewidth"
)

var _ tea.Model = Model{}

// Model is the Bubble Tea model for the chat TUI. The Conversation is the
// source of truth: a reply is in flight exactly while the Conversation has a
// streaming message, and the Model mutates it only from Update.
type Model struct {
	// Input is the text input component. Exported for test access.
	Input textinput.Model
	// Viewport is the scrollable output area. Exported for test access.
	Viewport viewport.Model
	// Spinner animates the typing indicator. Exported for test access.
	Spinner spinner.Model

	run    AgentFunc
	conv   *trickle.Conversation
	render RenderFunc
	styles Styles
	logger *slog.Logger

	suggestions    []string
	nextSuggestion int

	blocks  []MessageBlock
	replies map[string]*AssistantBlock // keyed by message ID

	replyID string
	cancel  context.CancelFunc
	eventCh chan trickle.Event
	doneCh  chan error
	err     error
	ready   bool
}

// New creates a new TUI Model that streams replies with run into conv.
func New(run AgentFunc, conv *trickle.Conversation, cfg Config) Model {
	ti := textinput.New()
	ti.Placeholder = "Type your message..."
	ti.Prompt = ""
	ti.Focus()
	ti.CharLimit = 0

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	render := cfg.Render
	if render == nil {
		theme := cfg.Theme
		render = func(source string, width int) string {
			return goldmark.Render(source, width, theme)
		}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	m := Model{
		Input:       ti,
		Spinner:     sp,
		run:         run,
		conv:        conv,
		render:      render,
		styles:      NewStyles(cfg.Theme),
		logger:      logger,
		suggestions: cfg.Suggestions,
		replies:     make(map[string]*AssistantBlock),
	}
	m.Spinner.Style = m.styles.Accent
	return m.syncBlocks()
}

// Running returns whether a reply is currently streaming.
func (m Model) Running() bool {
	_, ok := m.conv.Streaming()
	return ok
}

// Err returns the last error, if any.
func (m Model) Err() error { return m.err }

// Conversation returns the conversation the model displays.
func (m Model) Conversation() *trickle.Conversation { return m.conv }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m = m.handleWindowSize(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.Running() {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		m.Viewport.SetContent(m.renderContent())
		return m, cmd

	case StreamEventMsg:
		if msg.ID != m.replyID {
			return m, nil
		}
		m = m.applyEvent(msg.ID, msg.Event)
		m.Viewport.SetContent(m.renderContent())
		m.Viewport.GotoBottom()
		if m.eventCh != nil {
			return m, listenForEvent(m.replyID, m.eventCh, m.doneCh)
		}
		return m, nil

	case AgentDoneMsg:
		if msg.ID != m.replyID {
			return m, nil
		}
		m = m.finishReply(msg.ID, msg.Err)
		m.Viewport.SetContent(m.renderContent())
		m.Viewport.GotoBottom()
		cmd := m.Input.Focus()
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)
	}

	// Pass remaining messages to sub-components.
	// Viewport always receives messages for scrolling (keyboard and mouse).
	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	cmds = append(cmds, cmd)

	if !m.Running() {
		m.Input, cmd = m.Input.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder

	// Output area.
	b.WriteString(m.Viewport.View())
	b.WriteString("\n")

	// Status line.
	b.WriteString(m.statusLine())
	b.WriteString("\n")

	// Input area.
	b.WriteString(m.Input.View())

	return b.String()
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) Model {
	inputH := 1
	statusHeight := 1
	borderHeight := 2 // newlines between sections
	vpHeight := max(msg.Height-inputH-statusHeight-borderHeight, 1)

	if !m.ready {
		m.Viewport = viewport.New(msg.Width, vpHeight)
		m.ready = true
	} else {
		m.Viewport.Width = msg.Width
		m.Viewport.Height = vpHeight
	}
	m.Viewport.SetContent(m.renderContent())
	m.Viewport.GotoBottom()

	m.Input.Width = msg.Width
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		if m.Running() {
			if m.cancel != nil {
				m.cancel()
			}
			return m, nil
		}
		return m, tea.Quit

	case tea.KeyEnter:
		if m.Running() {
			return m, nil
		}
		ex, err := m.conv.Submit(m.Input.Value())
		if err != nil {
			return m, nil
		}
		return m.startReply(ex)

	case tea.KeyTab:
		if !m.Running() && m.Input.Value() == "" && len(m.suggestions) > 0 {
			m.Input.SetValue(m.suggestions[m.nextSuggestion])
			m.Input.CursorEnd()
			m.nextSuggestion = (m.nextSuggestion + 1) % len(m.suggestions)
		}
		return m, nil
	}

	// When idle, pass keys to both input (for typing) and viewport
	// (for scrolling). Only forward non-character keys to viewport to avoid
	// conflicts (e.g. 'j'/'k' are viewport scroll AND text characters).
	if !m.Running() {
		var cmd tea.Cmd
		var cmds []tea.Cmd

		if msg.Type != tea.KeyRunes && msg.Type != tea.KeySpace {
			m.Viewport, cmd = m.Viewport.Update(msg)
			cmds = append(cmds, cmd)
		}

		m.Input, cmd = m.Input.Update(msg)
		cmds = append(cmds, cmd)

		return m, tea.Batch(cmds...)
	}

	return m, nil
}

// startReply shows the submitted exchange and starts streaming its reply.
func (m Model) startReply(ex trickle.Exchange) (tea.Model, tea.Cmd) {
	m.Input.SetValue("")
	m.err = nil
	m = m.syncBlocks()
	m.Viewport.SetContent(m.renderContent())
	m.Viewport.GotoBottom()

	ctx, cancel := context.WithCancel(context.Background())
	m.replyID = ex.ReplyID
	m.cancel = cancel
	m.eventCh = make(chan trickle.Event, 256)
	m.doneCh = make(chan error, 1)

	m.Input.Blur()
	m.logger.Debug("reply started", "id", ex.ReplyID)

	return m, tea.Batch(
		startAgent(m.run, ctx, ex.Prompt, m.eventCh, m.doneCh),
		listenForEvent(ex.ReplyID, m.eventCh, m.doneCh),
		m.Spinner.Tick,
	)
}

// applyEvent merges an event into the conversation and refreshes its block.
func (m Model) applyEvent(id string, evt trickle.Event) Model {
	if err := m.conv.Apply(id, evt); err != nil {
		m.logger.Warn("event not applied", "id", id, "error", err)
		return m
	}
	if e, ok := evt.(trickle.EventError); ok {
		m.err = &trickle.ServerError{Message: e.Message}
	}
	return m.refresh(id)
}

// finishReply terminates the reply when its stream ends. A reply already
// terminated by a done or error event is left as it is.
func (m Model) finishReply(id string, err error) Model {
	if m.cancel != nil {
		m.cancel()
	}
	m.cancel = nil
	m.eventCh = nil
	m.doneCh = nil

	if err != nil {
		if m.conv.Fail(id) == nil && !errors.Is(err, context.Canceled) {
			m.err = err
		}
		m.logger.Debug("reply failed", "id", id, "error", err)
	} else {
		_ = m.conv.Apply(id, trickle.EventDone{})
		m.logger.Debug("reply complete", "id", id)
	}
	return m.refresh(id)
}

func (m Model) refresh(id string) Model {
	if b, ok := m.replies[id]; ok {
		if msg, ok := m.conv.Message(id); ok {
			b.SetMessage(msg)
		}
	}
	return m
}

// syncBlocks creates blocks for messages appended since the last call.
func (m Model) syncBlocks() Model {
	msgs := m.conv.Messages()
	for _, msg := range msgs[len(m.blocks):] {
		switch msg.Sender {
		case trickle.SenderUser:
			m.blocks = append(m.blocks, NewUserBlock(msg, m.styles))
		default:
			b := NewAssistantBlock(msg, m.render, m.styles)
			m.blocks = append(m.blocks, b)
			m.replies[msg.ID] = b
		}
	}
	return m
}

func (m Model) renderContent() string {
	if len(m.blocks) == 0 {
		return ""
	}
	var b strings.Builder
	for i, block := range m.blocks {
		if i > 0 {
			b.WriteString(blockSeparator(m.blocks[i-1], block))
		}
		b.WriteString(block.View(m.Viewport.Width))
	}
	if m.Running() {
		b.WriteString("\n")
		b.WriteString(m.Spinner.View())
		b.WriteString(" ")
		b.WriteString(m.styles.Muted.Render("Typing..."))
	}
	return b.String()
}

func (m Model) statusLine() string {
	width := m.Viewport.Width
	if m.err != nil {
		return m.styles.Error.Render(truncate(fmt.Sprintf("Error: %v", m.err), width))
	}
	if m.Running() {
		return m.styles.Muted.Render(truncate("Receiving reply, Ctrl+C to cancel", width))
	}
	status := "Enter to send, Ctrl+C to quit"
	if len(m.suggestions) > 0 && m.Input.Value() == "" {
		status += fmt.Sprintf(", Tab: %q", m.suggestions[m.nextSuggestion])
	}
	return m.styles.Muted.Render(truncate(status, width))
}

// truncate shortens s to fit width terminal cells.
func truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// startAgent runs the agent in a goroutine and signals completion.
func startAgent(run AgentFunc, ctx context.Context, prompt string, eventCh chan<- trickle.Event, doneCh chan<- error) tea.Cmd {
	return func() tea.Msg {
		err := run(ctx, prompt, func(e trickle.Event) {
			select {
			case eventCh <- e:
			case <-ctx.Done():
			}
		})
		close(eventCh)
		doneCh <- err
		return nil
	}
}

// listenForEvent waits for the next event from the channel.
// When the channel closes, it reads the error from doneCh and returns AgentDoneMsg.
func listenForEvent(id string, ch <-chan trickle.Event, doneCh <-chan error) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-ch
		if !ok {
			err := <-doneCh
			return AgentDoneMsg{ID: id, Err: err}
		}
		return StreamEventMsg{ID: id, Event: evt}
	}
}

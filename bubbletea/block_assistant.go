package bubbletea

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/trickle"
	"github.com/fwojciec/trickle/goldmark"
	"github.com/fwojciec/trickle/markdown"
)

var _ MessageBlock = (*AssistantBlock)(nil)

// AssistantBlock renders a reply. While the reply streams, paragraphs
// finalized by a blank line outside any code fence are rendered once per
// width and cached; only the trailing text is repaired and re-rendered on
// each delta. A terminal reply is rendered whole and cached.
type AssistantBlock struct {
	msg    trickle.Message
	render RenderFunc
	styles Styles

	// finalizedRaw is the stable prefix ending at the last blank line, or
	// the whole content once the reply is terminal.
	finalizedRaw     string
	finalizedByWidth map[int]string
}

// NewAssistantBlock creates a block showing msg.
func NewAssistantBlock(msg trickle.Message, render RenderFunc, styles Styles) *AssistantBlock {
	b := &AssistantBlock{
		render:           render,
		styles:           styles,
		finalizedByWidth: make(map[int]string),
	}
	b.SetMessage(msg)
	return b
}

// SetMessage replaces the block's copy of its message after a change.
func (b *AssistantBlock) SetMessage(msg trickle.Message) {
	b.msg = msg
	b.promoteFinalized()
}

// Message returns the block's copy of its message.
func (b *AssistantBlock) Message() trickle.Message { return b.msg }

func (b *AssistantBlock) View(width int) string {
	return header("Assistant", b.styles.Assistant, b.styles.Muted, b.msg.CreatedAt) + "\n" + b.body(width)
}

func (b *AssistantBlock) body(width int) string {
	if b.msg.State == trickle.MessageErrored {
		return lipgloss.NewStyle().Width(width).Render(b.styles.Error.Render(b.msg.Content))
	}
	if !markdown.Detect(b.msg.Content) {
		return lipgloss.NewStyle().Width(width).Render(goldmark.RenderPlain(b.msg.Content))
	}

	finalizedRendered := b.renderFinalized(width)
	trailing := b.trailingRaw()
	// Empty trailing text (content ends exactly at "\n\n") should not be
	// passed to the renderer; some renderers return whitespace for empty
	// input, which would append spurious blank lines.
	if trailing == "" {
		return finalizedRendered
	}
	trailingRendered := b.render(markdown.Repair(trailing), width)
	if strings.TrimSpace(trailingRendered) == "" {
		return finalizedRendered
	}
	switch finalizedRendered {
	case "":
		return trailingRendered
	default:
		// Independently rendered fragments are joined with a single blank
		// line to match full-document output.
		return strings.TrimRight(finalizedRendered, "\n") + "\n\n" + strings.TrimLeft(trailingRendered, "\n")
	}
}

// promoteFinalized scans for the last "\n\n" boundary that doesn't fall inside
// an open fenced code block. Splitting inside a fence would leave a finalized
// fragment with an open fence and a trailing fragment starting mid-block.
func (b *AssistantBlock) promoteFinalized() {
	raw := b.msg.Content
	if b.msg.Terminal() {
		b.setFinalized(raw)
		return
	}
	for end := len(raw); ; {
		idx := strings.LastIndex(raw[:end], "\n\n")
		if idx <= 0 {
			return
		}
		candidate := raw[:idx]
		if !markdown.HasOpenFence(candidate) {
			b.setFinalized(candidate)
			return
		}
		end = idx
	}
}

func (b *AssistantBlock) setFinalized(raw string) {
	if raw != b.finalizedRaw {
		b.finalizedRaw = raw
		clear(b.finalizedByWidth)
	}
}

func (b *AssistantBlock) renderFinalized(width int) string {
	if width <= 0 || b.finalizedRaw == "" {
		return ""
	}
	if cached, ok := b.finalizedByWidth[width]; ok {
		return cached
	}
	rendered := b.render(b.finalizedRaw, width)
	b.finalizedByWidth[width] = rendered
	return rendered
}

func (b *AssistantBlock) trailingRaw() string {
	raw := b.msg.Content
	if b.finalizedRaw == "" {
		return raw
	}
	if raw == b.finalizedRaw {
		return ""
	}
	return strings.TrimPrefix(raw, b.finalizedRaw+"\n\n")
}

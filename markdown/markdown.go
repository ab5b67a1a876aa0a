// Package markdown prepares message content for rendering. It decides
// whether content should be treated as markdown and, while a reply is still
// streaming, closes constructs that the truncated text leaves open so the
// renderer never sees a code fence swallow the rest of the message.
package markdown

// View is the render-ready form of a message's content. It is derived from
// the content and recomputed on every change; the stored content is never
// modified.
type View struct {
	Markdown bool   // Render as markdown; otherwise as preformatted text.
	Text     string // Content, repaired when streaming markdown.
}

// Normalize derives the View for content. Repair applies only to markdown
// that is still streaming; complete content is rendered exactly as stored.
func Normalize(content string, streaming bool) View {
	v := View{Markdown: Detect(content), Text: content}
	if v.Markdown && streaming {
		v.Text = Repair(content)
	}
	return v
}

// Package goldmark renders message text using goldmark for parsing. Render
// produces ANSI-styled terminal output styled with lipgloss and highlighted
// with chroma; RenderHTML produces HTML that is safe to embed in a page.
package goldmark

import (
	"html"

	"github.com/fwojciec/trickle"
)

// Render parses markdown source and returns ANSI-styled terminal output.
// Paragraphs and list items are word-wrapped to width. Code blocks are
// rendered at full width without reflow. Escape sequences and control
// characters in source are removed before parsing.
func Render(source string, width int, theme trickle.Theme) string {
	source = Sanitize(source)
	if source == "" {
		return ""
	}
	if width <= 0 {
		width = 80
	}
	r := newRenderer(theme)
	return r.render([]byte(source), width)
}

// RenderPlain returns non-markdown text for the terminal: sanitized, with
// its whitespace and line breaks kept as they are.
func RenderPlain(text string) string {
	return Sanitize(text)
}

// PlainHTML returns non-markdown text as an escaped preformatted block.
func PlainHTML(text string) string {
	return `<p style="white-space: pre-wrap">` + html.EscapeString(text) + "</p>\n"
}

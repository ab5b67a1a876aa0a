package goldmark

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Sanitize strips ANSI escape sequences and control characters from text
// received from the server, so it cannot move the cursor, retitle the
// terminal or hide output. Tabs and newlines are kept; CRLF becomes LF and
// a lone CR is dropped.
func Sanitize(s string) string {
	s = ansi.Strip(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '\t' || r == '\n' || !isControl(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// isControl reports C0, DEL and C1 control characters.
func isControl(r rune) bool {
	return r <= 0x1F || (r >= 0x7F && r <= 0x9F)
}

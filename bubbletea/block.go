package bubbletea

import (
	"time"

	"github.com/charmbracelet/lipgloss"
)

// MessageBlock is a renderable message in the conversation. View takes a
// width parameter so the root model controls layout and blocks are testable
// in isolation.
type MessageBlock interface {
	View(width int) string
}

// timeFormat is the clock shown next to each sender label.
const timeFormat = "15:04"

// header renders a sender label followed by the message time.
func header(label string, style, muted lipgloss.Style, at time.Time) string {
	if at.IsZero() {
		return style.Render(label)
	}
	return style.Render(label) + " " + muted.Render(at.Format(timeFormat))
}

// blockSeparator returns the spacing between two consecutive blocks. A reply
// sits directly under its prompt; exchanges are separated by a blank line.
func blockSeparator(prev, curr MessageBlock) string {
	_, prevUser := prev.(*UserBlock)
	_, currReply := curr.(*AssistantBlock)
	if prevUser && currReply {
		return "\n"
	}
	return "\n\n"
}

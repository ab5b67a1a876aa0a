package bubbletea

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/trickle"
)

var _ MessageBlock = (*UserBlock)(nil)

// UserBlock renders a message typed by the user.
type UserBlock struct {
	msg    trickle.Message
	styles Styles
}

// NewUserBlock creates a UserBlock.
func NewUserBlock(msg trickle.Message, styles Styles) *UserBlock {
	return &UserBlock{msg: msg, styles: styles}
}

func (b *UserBlock) View(width int) string {
	body := lipgloss.NewStyle().Width(width).PaddingLeft(1).Render(b.msg.Content)
	return header("You", b.styles.UserMsg, b.styles.Muted, b.msg.CreatedAt) + "\n" + body
}

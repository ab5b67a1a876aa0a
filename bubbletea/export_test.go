package bubbletea

import "context"

// BlockSeparator exports blockSeparator for testing.
func BlockSeparator(prev, curr MessageBlock) string {
	return blockSeparator(prev, curr)
}

// RenderContent exports renderContent for testing.
func RenderContent(m Model) string {
	return m.renderContent()
}

// StatusLine exports statusLine for testing.
func StatusLine(m Model) string {
	return m.statusLine()
}

// ReplyID returns the ID of the reply being streamed, if any.
func ReplyID(m Model) string {
	return m.replyID
}

// SetCancel replaces the cancel function of the reply in flight.
func SetCancel(m Model, cancel context.CancelFunc) Model {
	m.cancel = cancel
	return m
}

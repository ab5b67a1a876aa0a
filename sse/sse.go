// Package sse decodes server-sent event bodies into data frames.
//
// Only "data: " lines are surfaced. Event names, comments and the blank
// lines separating events are discarded, so a body of
//
//	data: {"type":"text","content":"hi"}
//
//	data: {"type":"done"}
//
// yields two frames.
package sse

// dataPrefix marks a payload line.
const dataPrefix = "data: "

// Frame is one complete data line, without its prefix or line terminator.
type Frame struct {
	Data string
}

package markdown

import "strings"

// Repair closes what a truncated markdown string leaves open, in order of
// precedence:
//
//  1. an unterminated fenced code block gets a closing fence matching its
//     opener (same indentation, character and length) on a new line;
//  2. otherwise an unterminated single-backtick code span in the trailing
//     paragraph gets one closing backtick, after a space when the text
//     already ends in a longer backtick run the new one would merge into.
//
// Repair is idempotent and returns complete text unchanged.
func Repair(text string) string {
	s := scan(text)
	switch {
	case s.fence != "":
		closing := s.indent + s.fence
		if strings.HasSuffix(text, "\n") {
			return text + closing
		}
		return text + "\n" + closing
	case s.ticks%2 == 1 && !endsInPartialFence(text):
		if trailingBackticks(text) > 1 {
			return text + " `"
		}
		return text + "`"
	default:
		return text
	}
}

// scanState is what remains open at the end of the text.
type scanState struct {
	fence  string // marker of the open fence, "" when none
	indent string // leading whitespace of the open fence
	ticks  int    // lone backticks in the trailing paragraph outside fences
}

func scan(text string) scanState {
	var s scanState
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if s.fence != "" {
			if isClosingFence(line, s.fence) {
				s.fence, s.indent = "", ""
			}
			continue
		}
		if indent, marker, ok := openingFence(line); ok {
			s.fence, s.indent = marker, indent
			s.ticks = 0
			continue
		}
		if strings.TrimSpace(line) == "" {
			// Code spans cannot cross a blank line.
			s.ticks = 0
			continue
		}
		s.ticks += loneBackticks(line, s.ticks%2 == 1)
	}
	return s
}

// openingFence reports whether line opens a fenced code block. Fences in
// list items are indented, so any leading whitespace is accepted.
func openingFence(line string) (indent, marker string, ok bool) {
	rest := strings.TrimLeft(line, " \t")
	if len(rest) < 3 {
		return "", "", false
	}
	c := rest[0]
	if c != '`' && c != '~' {
		return "", "", false
	}
	n := runLength(rest, c)
	if n < 3 {
		return "", "", false
	}
	// A backtick fence's info string cannot contain backticks.
	if c == '`' && strings.IndexByte(rest[n:], '`') >= 0 {
		return "", "", false
	}
	return line[:len(line)-len(rest)], rest[:n], true
}

// isClosingFence reports whether line closes a block opened with marker.
func isClosingFence(line, marker string) bool {
	rest := strings.TrimLeft(line, " \t")
	n := runLength(rest, marker[0])
	if n < len(marker) {
		return false
	}
	return strings.TrimSpace(rest[n:]) == ""
}

// endsInPartialFence reports whether the last line is two backticks, which
// one more backtick would turn into a fence opener.
func endsInPartialFence(text string) bool {
	last := text[strings.LastIndexByte(text, '\n')+1:]
	return strings.TrimLeft(strings.TrimSuffix(last, "\r"), " \t") == "``"
}

// trailingBackticks returns the length of the backtick run ending text.
func trailingBackticks(text string) int {
	n := 0
	for n < len(text) && text[len(text)-1-n] == '`' {
		n++
	}
	return n
}

func runLength(s string, c byte) int {
	n := 0
	for n < len(s) && s[n] == c {
		n++
	}
	return n
}

// loneBackticks counts backtick runs of length one. Longer runs do not
// delimit single-backtick spans. Outside a span a backslash escapes the
// next character; inside one it is literal.
func loneBackticks(line string, inSpan bool) int {
	count := 0
	for i := 0; i < len(line); {
		if line[i] == '\\' && !inSpan && i+1 < len(line) {
			i += 2
			continue
		}
		if line[i] != '`' {
			i++
			continue
		}
		n := runLength(line[i:], '`')
		if n == 1 {
			count++
			inSpan = !inSpan
		}
		i += n
	}
	return count
}

// HasOpenFence reports whether text ends inside a fenced code block.
func HasOpenFence(text string) bool {
	return scan(text).fence != ""
}

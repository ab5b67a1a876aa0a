package markdown

import "regexp"

// patterns is the detection battery. Any match marks content as markdown.
var patterns = []*regexp.Regexp{
	regexp.MustCompile(`(?m)^#{1,6}\s+`),     // ATX headings
	regexp.MustCompile(`\*\*.*?\*\*`),        // bold
	regexp.MustCompile(`\*.*?\*`),            // italic
	regexp.MustCompile("`.*?`"),              // inline code
	regexp.MustCompile("(?s)```.*?```"),      // fenced code
	regexp.MustCompile(`(?m)^\s*[-*+]\s+`),   // unordered list
	regexp.MustCompile(`(?m)^\s*\d+\.\s+`),   // ordered list
	regexp.MustCompile(`\[.*?\]\(.*?\)`),     // link
	regexp.MustCompile(`(?m)^\s*>\s+`),       // blockquote
	regexp.MustCompile(`(?m)^\s*\|.*\|.*\|`), // table row
	regexp.MustCompile(`(?m)^---+\r?$`),      // horizontal rule
}

// Detect reports whether text contains markdown syntax. A single match is
// enough, so plain prose with one *emphasis* or `code` span qualifies.
func Detect(text string) bool {
	for _, p := range patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

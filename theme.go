package trickle

// Theme defines semantic color mappings using ANSI color indices (0-15).
// The user's terminal theme determines the actual RGB values, so the app
// automatically matches any color scheme.
type Theme struct {
	UserMsg   int    // User message accent
	Assistant int    // Assistant message header
	Error     int    // Error messages
	Muted     int    // Status bar, timestamps, placeholders
	Accent    int    // Headings, links
	Quote     int    // Blockquote bar
	CodeStyle string // Chroma style name for fenced code blocks
}

// DefaultTheme returns the default ANSI color mapping.
func DefaultTheme() Theme {
	return Theme{
		UserMsg:   5,
		Assistant: 4,
		Error:     1,
		Muted:     8,
		Accent:    5,
		Quote:     4,
		CodeStyle: "monokai",
	}
}

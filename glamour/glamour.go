// Package glamour renders markdown for the terminal with glamour, as an
// alternative to the goldmark renderer.
package glamour

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"github.com/fwojciec/trickle"
	"github.com/fwojciec/trickle/goldmark"
)

// Styles accepted by New.
const (
	StyleDark  = "dark"
	StyleLight = "light"
	StyleNoTTY = "notty"
	StyleASCII = "ascii"
)

// Renderer renders markdown with glamour. Term renderers are built lazily,
// one per wrap width, and reused. A Renderer is safe for concurrent use.
type Renderer struct {
	style  ansi.StyleConfig
	mu     sync.Mutex
	byWrap map[int]*glamour.TermRenderer
}

// New creates a Renderer for the named style. Fenced code uses the theme's
// chroma style.
func New(style string, theme trickle.Theme) (*Renderer, error) {
	var cfg ansi.StyleConfig
	switch style {
	case "", StyleDark:
		cfg = styles.DarkStyleConfig
	case StyleLight:
		cfg = styles.LightStyleConfig
	case StyleNoTTY:
		cfg = styles.NoTTYStyleConfig
	case StyleASCII:
		cfg = styles.ASCIIStyleConfig
	default:
		return nil, fmt.Errorf("glamour: unknown style %q: %w", style, trickle.ErrValidation)
	}
	if theme.CodeStyle != "" && style != StyleNoTTY && style != StyleASCII {
		cfg.CodeBlock.Theme = theme.CodeStyle
	}
	return &Renderer{style: cfg, byWrap: make(map[int]*glamour.TermRenderer)}, nil
}

// Render renders source wrapped to width. Escape sequences and control
// characters in source are removed first.
func (r *Renderer) Render(source string, width int) (string, error) {
	source = goldmark.Sanitize(source)
	if source == "" {
		return "", nil
	}
	if width <= 0 {
		width = 80
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	tr, ok := r.byWrap[width]
	if !ok {
		var err error
		tr, err = glamour.NewTermRenderer(
			glamour.WithStyles(r.style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return "", fmt.Errorf("glamour: %w", err)
		}
		r.byWrap[width] = tr
	}
	out, err := tr.Render(source)
	if err != nil {
		return "", fmt.Errorf("glamour: %w", err)
	}
	return strings.Trim(out, "\n"), nil
}

package main

import (
	"log/slog"

	"github.com/fwojciec/trickle"
	bt "github.com/fwojciec/trickle/bubbletea"
	"github.com/fwojciec/trickle/glamour"
	"github.com/fwojciec/trickle/goldmark"
)

// newRenderFunc returns the markdown renderer selected by the config.
func newRenderFunc(cfg Config, theme trickle.Theme, logger *slog.Logger) (bt.RenderFunc, error) {
	if cfg.Renderer != rendererGlamour {
		return func(source string, width int) string {
			return goldmark.Render(source, width, theme)
		}, nil
	}
	r, err := glamour.New(cfg.GlamourStyle, theme)
	if err != nil {
		return nil, err
	}
	return func(source string, width int) string {
		out, err := r.Render(source, width)
		if err != nil {
			logger.Warn("glamour render failed, falling back to goldmark", "error", err)
			return goldmark.Render(source, width, theme)
		}
		return out
	}, nil
}

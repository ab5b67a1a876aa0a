// Package mock provides test doubles for trickle interfaces using function fields.
package mock

import (
	"context"

	"github.com/fwojciec/trickle"
)

// Interface compliance check.
var _ trickle.Backend = (*Backend)(nil)

// Backend is a test double for trickle.Backend.
// Set StreamFn before calling Stream.
type Backend struct {
	StreamFn func(ctx context.Context, prompt string) (trickle.Stream, error)
}

// Stream delegates to StreamFn.
func (b *Backend) Stream(ctx context.Context, prompt string) (trickle.Stream, error) {
	return b.StreamFn(ctx, prompt)
}

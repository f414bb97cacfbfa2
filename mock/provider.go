package mock

import (
	"context"

	"vigil"
)

// Interface compliance check.
var _ vigil.Provider = (*Provider)(nil)

// Provider is a test double for vigil.Provider. ChatFn panics when nil
// to catch missing setup.
type Provider struct {
	ChatFn func(ctx context.Context, req vigil.ChatRequest) (vigil.Source, error)
}

// Chat delegates to ChatFn.
func (p *Provider) Chat(ctx context.Context, req vigil.ChatRequest) (vigil.Source, error) {
	return p.ChatFn(ctx, req)
}

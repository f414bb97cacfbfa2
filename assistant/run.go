// Package assistant drives the scan-classify-emit loop over one streamed
// chat response: it drains a Source, classifies every delta, and emits
// one frame per delta in arrival order.
package assistant

import (
	"context"
	"io"

	"vigil"
	"vigil/think"
)

// RunOption configures a single Run invocation.
type RunOption func(*runConfig)

type runConfig struct {
	onFrame func(vigil.Frame)
}

// WithFrameHandler sets a callback that receives each snapshot frame as
// it is emitted. If nil or not set, frames are silently discarded and
// only the final frame is returned.
func WithFrameHandler(h func(vigil.Frame)) RunOption {
	return func(c *runConfig) {
		c.onFrame = h
	}
}

// Run consumes src to completion. The source is closed on every exit
// path: normal completion, transport error, and cancellation.
//
// Each delta is scanned, classified and snapshotted to completion before
// the next delta is awaited, so no partially classified frame is ever
// observable. On normal completion any held-back suffix is flushed as
// content of the active channel and, when that changes the snapshot, a
// final frame is emitted.
//
// On error the classified content accumulated so far is still returned
// alongside the error; cancellation surfaces as the context's error from
// the source and is handled the same way, without emitting a frame.
func Run(ctx context.Context, src vigil.Source, opts ...RunOption) (vigil.Frame, error) {
	var cfg runConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	defer src.Close()

	c := think.New()
	last := c.Frame()
	for {
		if err := ctx.Err(); err != nil {
			return c.Flush(), err
		}

		delta, err := src.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return c.Flush(), err
		}

		last = c.Process(delta)
		if cfg.onFrame != nil {
			cfg.onFrame(last)
		}
	}

	final := c.Flush()
	if final != last && cfg.onFrame != nil {
		cfg.onFrame(final)
	}
	return final, nil
}

// Ask opens a streamed response from the provider and runs the classify
// loop over it. It is the one-call form used by the CLI, the TUI and the
// HTTP chat endpoint.
func Ask(ctx context.Context, provider vigil.Provider, req vigil.ChatRequest, opts ...RunOption) (vigil.Frame, error) {
	src, err := provider.Chat(ctx, req)
	if err != nil {
		return vigil.Frame{}, err
	}
	return Run(ctx, src, opts...)
}

// Package vigil defines the domain types for the vigil bedside monitor:
// the streamed-chat source and frame types consumed by the reasoning
// classifier, and the vital-sign records produced by the acquisition
// pipeline.
package vigil

import "context"

// SourceState indicates the current state of a Source.
type SourceState int

const (
	SourceStateNew       SourceState = iota // Before Next() is ever called.
	SourceStateStreaming                    // Mid-stream, receiving deltas.
	SourceStateComplete                     // Next() returned io.EOF.
	SourceStateError                        // Next() returned non-EOF error.
	SourceStateClosed                       // Close() called before terminal state.
)

// Source is a pull-based iterator over the text deltas of one streamed
// model response. The transport envelope (SSE, NDJSON, SDK iterators) is
// decoded inside the Source; consumers only ever see plain text deltas.
//
// Next() returns the next delta, io.EOF on normal completion, or a
// transport error. Cancellation flows through the context passed to
// Provider.Chat() and surfaces from Next() as the context's error.
// Close() releases the underlying transport resource and is safe to call
// on every exit path, including after a terminal state.
type Source interface {
	Next() (string, error)
	State() SourceState
	Close() error
}

// Provider is a strategy pattern interface for chat backends.
type Provider interface {
	Chat(ctx context.Context, req ChatRequest) (Source, error)
}

package ollama

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"vigil"
)

// source implements [vigil.Source] by decoding NDJSON lines from an HTTP
// response body. The envelope is consumed here; callers only see the
// extracted text deltas.
type source struct {
	body    io.ReadCloser
	scanner *bufio.Scanner
	ctx     context.Context
	logger  *slog.Logger
	state   vigil.SourceState
	err     error // terminal error, if any
}

// Interface compliance check.
var _ vigil.Source = (*source)(nil)

func newSource(ctx context.Context, body io.ReadCloser, logger *slog.Logger) *source {
	scanner := bufio.NewScanner(body)
	// Deltas are tiny, but a single line can carry a large final message.
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	return &source{
		body:    body,
		scanner: scanner,
		ctx:     ctx,
		logger:  logger,
		state:   vigil.SourceStateNew,
	}
}

// Next reads lines until it can return the next non-empty text delta.
// Returns io.EOF when the stream completes normally. Malformed envelope
// lines are logged and skipped, never fatal.
func (s *source) Next() (string, error) {
	switch s.state {
	case vigil.SourceStateComplete:
		return "", io.EOF
	case vigil.SourceStateError:
		return "", s.err
	case vigil.SourceStateClosed:
		return "", vigil.ErrSourceClosed
	}

	for s.scanner.Scan() {
		line := s.scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var chunk apiChatChunk
		if err := json.Unmarshal(line, &chunk); err != nil {
			s.logger.Warn("dropping malformed stream line", "component", "ollama", "error", err)
			continue
		}

		s.state = vigil.SourceStateStreaming

		if chunk.Error != "" {
			s.terminate(fmt.Errorf("ollama: %s", chunk.Error))
			return "", s.err
		}
		if chunk.Done {
			s.state = vigil.SourceStateComplete
			return "", io.EOF
		}
		if chunk.Message.Content == "" {
			// Keep-alive or role-only chunk.
			continue
		}
		return chunk.Message.Content, nil
	}

	if err := s.scanner.Err(); err != nil {
		s.terminate(fmt.Errorf("ollama: %w", err))
		return "", s.err
	}

	// Scanner exhausted without a done chunk: the connection dropped.
	s.terminate(io.EOF)
	return "", s.err
}

// State returns the current source state.
func (s *source) State() vigil.SourceState {
	return s.state
}

// Close closes the underlying HTTP response body.
func (s *source) Close() error {
	if s.state != vigil.SourceStateComplete && s.state != vigil.SourceStateError {
		s.state = vigil.SourceStateClosed
	}
	return s.body.Close()
}

// terminate records a terminal error. Context cancellation takes
// precedence so callers can distinguish a cooperative shutdown from a
// transport failure.
func (s *source) terminate(err error) {
	s.state = vigil.SourceStateError
	if ctxErr := s.ctx.Err(); ctxErr != nil {
		s.err = ctxErr
		return
	}
	if err == io.EOF {
		s.err = fmt.Errorf("ollama: unexpected end of stream")
		return
	}
	s.err = err
}

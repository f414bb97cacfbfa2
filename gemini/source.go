package gemini

import (
	"context"
	"fmt"
	"io"
	"iter"
	"strings"

	"google.golang.org/genai"

	"vigil"
)

// source implements [vigil.Source] by pulling the genai SDK's streaming
// iterator and flattening each response chunk into one text delta.
type source struct {
	pull  func() (*genai.GenerateContentResponse, error, bool)
	stop  func()
	ctx   context.Context
	state vigil.SourceState
	err   error
}

// Interface compliance check.
var _ vigil.Source = (*source)(nil)

func newSource(ctx context.Context, iterFn iter.Seq2[*genai.GenerateContentResponse, error]) *source {
	next, stop := iter.Pull2(iterFn)
	return &source{
		pull:  next,
		stop:  stop,
		ctx:   ctx,
		state: vigil.SourceStateNew,
	}
}

// Next returns the next non-empty text delta, io.EOF on completion.
func (s *source) Next() (string, error) {
	switch s.state {
	case vigil.SourceStateComplete:
		return "", io.EOF
	case vigil.SourceStateError:
		return "", s.err
	case vigil.SourceStateClosed:
		return "", vigil.ErrSourceClosed
	}

	for {
		resp, err, ok := s.pull()
		if !ok {
			s.state = vigil.SourceStateComplete
			return "", io.EOF
		}
		if err != nil {
			s.state = vigil.SourceStateError
			if ctxErr := s.ctx.Err(); ctxErr != nil {
				s.err = ctxErr
			} else {
				s.err = fmt.Errorf("gemini: %w", err)
			}
			return "", s.err
		}

		s.state = vigil.SourceStateStreaming

		if delta := chunkText(resp); delta != "" {
			return delta, nil
		}
	}
}

// State returns the current source state.
func (s *source) State() vigil.SourceState {
	return s.state
}

// Close stops the underlying iterator.
func (s *source) Close() error {
	if s.state != vigil.SourceStateComplete && s.state != vigil.SourceStateError {
		s.state = vigil.SourceStateClosed
	}
	s.stop()
	return nil
}

// chunkText concatenates the answer-text parts of the first candidate.
// Thought parts are Gemini's out-of-band reasoning and are not part of
// the visible stream.
func chunkText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		b.WriteString(part.Text)
	}
	return b.String()
}

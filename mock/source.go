// Package mock provides function-field test doubles for the vigil
// domain interfaces.
package mock

import (
	"io"

	"vigil"
)

// Interface compliance check.
var _ vigil.Source = (*Source)(nil)

// Source is a test double for vigil.Source.
// Set the function fields for the methods you need. NextFn panics when
// nil to catch missing setup. CloseFn and StateFn are nil-safe (no-op
// and zero value) because test code commonly calls defer src.Close()
// and these methods rarely need custom behavior.
type Source struct {
	NextFn  func() (string, error)
	StateFn func() vigil.SourceState
	CloseFn func() error
}

// Next delegates to NextFn.
func (s *Source) Next() (string, error) {
	return s.NextFn()
}

// State delegates to StateFn. Returns SourceStateNew when StateFn is nil.
func (s *Source) State() vigil.SourceState {
	if s.StateFn == nil {
		return vigil.SourceStateNew
	}
	return s.StateFn()
}

// Close delegates to CloseFn. Returns nil when CloseFn is not set.
func (s *Source) Close() error {
	if s.CloseFn == nil {
		return nil
	}
	return s.CloseFn()
}

// DeltaSource returns a Source that yields the given deltas in order,
// then io.EOF. It covers the common arrange step of consumer-loop tests.
func DeltaSource(deltas ...string) *Source {
	i := 0
	return &Source{
		NextFn: func() (string, error) {
			if i >= len(deltas) {
				return "", io.EOF
			}
			d := deltas[i]
			i++
			return d, nil
		},
	}
}

package serial

import (
	"sync"

	"vigil"
)

// ring is a bounded FIFO of raw samples. The oldest sample is dropped
// when the capacity is reached.
type ring struct {
	mu      sync.Mutex
	samples []vigil.VitalSigns
	cap     int
}

func newRing(capacity int) *ring {
	return &ring{cap: capacity}
}

func (r *ring) add(vs vigil.VitalSigns) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.samples) >= r.cap {
		r.samples = r.samples[1:]
	}
	r.samples = append(r.samples, vs)
}

// latest returns up to n samples, newest first.
func (r *ring) latest(n int) []vigil.VitalSigns {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n > len(r.samples) {
		n = len(r.samples)
	}
	out := make([]vigil.VitalSigns, n)
	for i := 0; i < n; i++ {
		out[i] = r.samples[len(r.samples)-1-i]
	}
	return out
}

func (r *ring) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.samples)
}

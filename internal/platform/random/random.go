// Package random provides the injectable randomness used by roster rolls.
package random

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Source picks uniformly in [0, n). Implementations must be safe for
// concurrent use.
type Source interface {
	IntN(n int) int
}

type lockedSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New returns a Source seeded from the wall clock.
func New() Source {
	return NewSeeded(uint64(time.Now().UnixNano()))
}

// NewSeeded returns a deterministic Source; equal seeds yield equal sequences.
func NewSeeded(seed uint64) Source {
	return &lockedSource{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *lockedSource) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n)
}

// Fixed replays the given indexes in order, wrapping around. Indexes are
// reduced modulo n so any value is valid. Intended for tests.
type Fixed struct {
	mu    sync.Mutex
	picks []int
	next  int
}

func NewFixed(picks ...int) *Fixed {
	return &Fixed{picks: append([]int(nil), picks...)}
}

func (f *Fixed) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.picks) == 0 {
		return 0
	}
	v := f.picks[f.next%len(f.picks)]
	f.next++
	if v < 0 {
		v = -v
	}
	return v % n
}

// Package games holds the outcome generators for every game in the
// catalogue. Generators are pure: given a Source, a stake and the player's
// selection they return a models.Outcome and never touch account state.
package games

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"sync"
)

// Source yields uniform draws in [0,1).
type Source interface {
	Float64() float64
}

type lockedSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSource returns a seeded Source that is safe for concurrent use. The
// same seed always produces the same sequence of draws.
func NewSource(seed int64) Source {
	return &lockedSource{
		rng: rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15)),
	}
}

func (s *lockedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

// NewSeed generates a seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// Sequence replays a fixed list of draws, wrapping around when exhausted.
type Sequence struct {
	mu     sync.Mutex
	values []float64
	next   int
}

func NewSequence(values ...float64) *Sequence {
	return &Sequence{values: values}
}

func (s *Sequence) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.next%len(s.values)]
	s.next++
	return clampUnit(v)
}

// Intn maps a draw onto [0,n) as floor(u*n).
func Intn(src Source, n int) int {
	if n <= 1 {
		return 0
	}
	i := int(clampUnit(src.Float64()) * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}

// IntRange returns a value in [lo,hi] inclusive.
func IntRange(src Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + Intn(src, hi-lo+1)
}

func clampUnit(u float64) float64 {
	switch {
	case u < 0:
		return 0
	case u >= 1:
		return 0.9999999999999999
	}
	return u
}

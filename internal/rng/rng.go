// Package rng provides the seeded deterministic random source used by floor
// generation. The same seed string always yields the same sequence, which is
// what makes floors reproducible from a seed.
package rng

const (
	fnvOffset = 2166136261
	fnvPrime  = 16777619
)

// Hash returns the FNV-1a 32-bit hash of s.
func Hash(s string) uint32 {
	h := uint32(fnvOffset)
	for i := 0; i < len(s); i++ {
		h = (h ^ uint32(s[i])) * fnvPrime
	}
	return h
}

// Source is a mulberry32 generator. It is deliberately not math/rand: the
// exact recurrence is part of the floor-seed contract and pinned by tests.
type Source struct {
	state uint32
}

// New returns a Source seeded from the FNV-1a hash of the seed string.
func New(seed string) *Source {
	return &Source{state: Hash(seed)}
}

// NewFromState returns a Source with a raw numeric state.
func NewFromState(state uint32) *Source {
	return &Source{state: state}
}

// Float64 returns the next value in [0, 1).
func (s *Source) Float64() float64 {
	s.state += 0x6D2B79F5
	t := s.state
	t = (t ^ t>>15) * (t | 1)
	t ^= t + (t^t>>7)*(t|61)
	return float64(t^t>>14) / 4294967296
}

// IntRange returns a uniform integer in [a, b] inclusive.
func (s *Source) IntRange(a, b int) int {
	return int(s.Float64()*float64(b-a+1)) + a
}

// Chance reports whether a draw lands under p (p in [0,1]).
func (s *Source) Chance(p float64) bool {
	return s.Float64() < p
}

// Shuffle permutes arr in place using the Fisher-Yates algorithm.
func Shuffle[T any](s *Source, arr []T) {
	for i := len(arr) - 1; i > 0; i-- {
		j := int(s.Float64() * float64(i+1))
		arr[i], arr[j] = arr[j], arr[i]
	}
}

// Clamp limits v to [a, b].
func Clamp(v, a, b float64) float64 {
	if v < a {
		return a
	}
	if v > b {
		return b
	}
	return v
}

package pairing

import "math/rand/v2"

// Source supplies uniformly distributed integers in [0, n).
// *rand.Rand from math/rand/v2 satisfies Source.
type Source interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int {
	return rand.IntN(n)
}

// DefaultSource returns a Source backed by the runtime-seeded global
// generator of math/rand/v2. It is safe for concurrent use.
func DefaultSource() Source {
	return globalSource{}
}

// NewSeededSource returns a reproducible Source for the given seed.
// The returned Source is not safe for concurrent use.
func NewSeededSource(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Shuffle returns a uniformly random permutation of seq.
//
// It runs Fisher-Yates on a copy: for i from the last index down to 1 it
// swaps element i with a uniformly drawn index in [0, i]. The caller's
// slice is never modified. A nil src uses DefaultSource.
func Shuffle[T any](seq []T, src Source) []T {
	if src == nil {
		src = DefaultSource()
	}
	out := make([]T, len(seq))
	copy(out, seq)
	for i := len(out) - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

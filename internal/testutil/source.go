package testutil

// IdentitySource is a pairing.Source whose draws leave Fisher-Yates
// shuffles unchanged: IntN(n) always returns n-1, so every element is
// swapped with itself.
//
// Thread-safety: IdentitySource is stateless and safe for concurrent use.
type IdentitySource struct{}

// IntN returns n-1.
func (IdentitySource) IntN(n int) int {
	return n - 1
}

// RotateSource is a pairing.Source whose draws always pick index 0.
// A Fisher-Yates shuffle driven by it rotates the sequence left by one:
// [a b c d] becomes [b c d a].
type RotateSource struct{}

// IntN returns 0.
func (RotateSource) IntN(int) int {
	return 0
}

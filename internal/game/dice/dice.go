// Package dice provides the randomness abstraction used by pet creation and
// battle resolution.
package dice

// Source is the randomness provider for stat variance and critical-hit rolls.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
	// Float64 returns a uniformly distributed float in [0.0, 1.0).
	Float64() float64
}

// Variance returns a symmetric random offset in [-spread, +spread].
//
// Precondition: src must be non-nil; spread >= 0.
// Postcondition: -spread <= result <= spread. Returns 0 when spread is 0.
func Variance(src Source, spread int) int {
	if spread <= 0 {
		return 0
	}
	return src.Intn(2*spread+1) - spread
}

// Chance reports whether a uniform draw from src falls below p.
//
// Postcondition: Returns false when p <= 0 and true when p >= 1.
func Chance(src Source, p float64) bool {
	return src.Float64() < p
}

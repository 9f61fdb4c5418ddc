// Package seedrand is a deterministic pseudo-random value source used
// for daily puzzle selection. It is a plain linear congruential
// generator evaluated for a single step: the same seed always maps to
// the same value in [0, 1), which is what makes the word-of-the-day
// reproducible across processes and restarts.
package seedrand

// Classic LCG parameters. modulus is a power of two so dividing by it
// spreads the output evenly over [0, 1).
const (
	multiplier = 1103515245
	increment  = 12345
	modulus    = 1 << 31
)

// Normalize maps an arbitrary integer seed into (0, modulus) so that
// zero and negative seeds cannot degenerate the generator.
func Normalize(seed int) int {
	if seed < 0 {
		seed = -seed
	}
	seed %= modulus
	if seed == 0 {
		seed = 1
	}
	return seed
}

// Next returns the value in [0, 1) for seed. Pure and total: every
// integer is a valid seed after normalization.
func Next(seed int) float64 {
	s := Normalize(seed)
	return float64((multiplier*s+increment)%modulus) / float64(modulus)
}

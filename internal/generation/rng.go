package generation

// RNG is a small seeded generator (LCG). The same seed always yields the same
// sequence.
type RNG struct {
	state uint64
}

// NewRNG creates a new RNG with the given seed
func NewRNG(seed uint64) *RNG {
	return &RNG{state: seed}
}

// SeedFor derives a seed from a zone id and its level requirement
func SeedFor(zoneID, levelRequirement int) uint64 {
	seed := uint64(zoneID)<<32 ^ uint64(levelRequirement)
	// splitmix64 finalizer so neighbouring zones diverge immediately
	seed ^= seed >> 30
	seed *= 0xbf58476d1ce4e5b9
	seed ^= seed >> 27
	seed *= 0x94d049bb133111eb
	seed ^= seed >> 31
	return seed
}

// Uint64 returns the next value in the sequence
func (r *RNG) Uint64() uint64 {
	// LCG parameters from Numerical Recipes
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return r.state
}

// Intn returns a value in [0, n)
func (r *RNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	// use the high bits; the low bits of an LCG cycle quickly
	return int((r.Uint64() >> 33) % uint64(n))
}

// Choice picks one item from the list, or "" for an empty list
func (r *RNG) Choice(items []string) string {
	if len(items) == 0 {
		return ""
	}
	return items[r.Intn(len(items))]
}

// Shuffle permutes items in place (Fisher-Yates)
func Shuffle[T any](r *RNG, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}

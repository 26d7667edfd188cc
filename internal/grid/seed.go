package grid

import "math/rand/v2"

// NewRNG creates the deterministic generator used for seeding.
func NewRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), 0))
}

// Seed returns cells scalars drawn from a uniform [0, 1) sample per cell:
// 1.0 when the sample exceeds threshold, 0.0 otherwise.
func Seed(cells int, seed int64, threshold float32) []float32 {
	out := make([]float32, cells)
	FillThreshold(NewRNG(seed), out, threshold)
	return out
}

// FillThreshold fills buf in index order using r.
func FillThreshold(r *rand.Rand, buf []float32, threshold float32) {
	for i := range buf {
		if r.Float32() > threshold {
			buf[i] = 1
			continue
		}
		buf[i] = 0
	}
}

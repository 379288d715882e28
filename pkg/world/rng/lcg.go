package rng

const (
	lcgMultiplier = 0x5deece66d
	lcgAddend     = 0xb
	lcgMask       = (1 << 48) - 1
)

// LCG is the 48-bit linear congruential generator used by the legacy terrain
// noise. Its output sequence matches java.util.Random for the same seed.
type LCG struct {
	state uint64
}

// NewLCG returns an LCG seeded with seed.
func NewLCG(seed uint64) *LCG {
	r := &LCG{}
	r.SetSeed(seed)
	return r
}

// SetSeed scrambles and stores the low 48 bits of seed.
func (r *LCG) SetSeed(seed uint64) {
	r.state = (seed ^ lcgMultiplier) & lcgMask
}

// Next advances the state and returns the top n bits (n <= 32) as a signed
// 32-bit value.
func (r *LCG) Next(n int) int32 {
	r.state = (r.state*lcgMultiplier + lcgAddend) & lcgMask
	return int32(uint32(r.state >> (48 - n)))
}

// NextInt returns a uniform value in [0, n). n must be positive.
func (r *LCG) NextInt(n int32) int32 {
	if n&(-n) == n {
		return int32((int64(n) * int64(r.Next(31))) >> 31)
	}
	for {
		b := r.Next(31)
		v := b % n
		// Reject the partial bucket at the top of the range; the check relies
		// on 32-bit overflow.
		if b-v+(n-1) >= 0 {
			return v
		}
	}
}

// NextLong returns a signed 64-bit value built from two 32-bit outputs.
func (r *LCG) NextLong() int64 {
	hi := int64(r.Next(32))
	lo := int64(r.Next(32))
	return (hi << 32) + lo
}

// NextDouble returns a uniform value in [0, 1) with 53 bits of precision.
func (r *LCG) NextDouble() float64 {
	hi := int64(r.Next(26))
	lo := int64(r.Next(27))
	return float64((hi<<27)+lo) * (1.0 / (1 << 53))
}

// Skip advances the generator n steps without producing output.
func (r *LCG) Skip(n int) {
	for i := 0; i < n; i++ {
		r.state = (r.state*lcgMultiplier + lcgAddend) & lcgMask
	}
}

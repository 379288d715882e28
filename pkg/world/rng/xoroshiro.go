// Package rng holds the two pseudo-random sources the world generator derives
// its noise coefficients from: Xoroshiro128++ for the climate fields and a
// 48-bit linear congruential generator for the legacy surface noise.
package rng

import "math/bits"

// Xoroshiro is a Xoroshiro128++ generator. The zero value is a valid but
// degenerate state; seed it with SetSeed or assign Lo/Hi directly.
type Xoroshiro struct {
	Lo, Hi uint64
}

// NewXoroshiro returns a generator seeded from a 64-bit world seed.
func NewXoroshiro(seed uint64) *Xoroshiro {
	x := &Xoroshiro{}
	x.SetSeed(seed)
	return x
}

// SetSeed expands a 64-bit seed into the 128-bit state with two rounds of
// the SplitMix64 finalizer.
func (x *Xoroshiro) SetSeed(seed uint64) {
	const (
		golden = 0x9e3779b97f4a7c15
		silver = 0x6a09e667f3bcc909
		mixA   = 0xbf58476d1ce4e5b9
		mixB   = 0x94d049bb133111eb
	)
	l := seed ^ silver
	h := l + golden
	l = (l ^ (l >> 30)) * mixA
	h = (h ^ (h >> 30)) * mixA
	l = (l ^ (l >> 27)) * mixB
	h = (h ^ (h >> 27)) * mixB
	x.Lo = l ^ (l >> 31)
	x.Hi = h ^ (h >> 31)
}

// NextLong returns the next 64 bits of output.
func (x *Xoroshiro) NextLong() uint64 {
	l, h := x.Lo, x.Hi
	n := bits.RotateLeft64(l+h, 17) + l
	h ^= l
	x.Lo = bits.RotateLeft64(l, 49) ^ h ^ (h << 21)
	x.Hi = bits.RotateLeft64(h, 28)
	return n
}

// NextInt returns a uniform value in [0, n) using Lemire's rejection method.
// n must be positive.
func (x *Xoroshiro) NextInt(n uint32) int {
	r := (x.NextLong() & 0xffffffff) * uint64(n)
	if uint32(r) < n {
		threshold := (^n + 1) % n
		for uint32(r) < threshold {
			r = (x.NextLong() & 0xffffffff) * uint64(n)
		}
	}
	return int(r >> 32)
}

// NextDouble returns a uniform value in [0, 1) with 53 bits of precision.
func (x *Xoroshiro) NextDouble() float64 {
	return float64(x.NextLong()>>11) * 1.1102230246251565e-16
}

// Positional draws two outputs from x and returns them as a factory for
// salted child generators.
func (x *Xoroshiro) Positional() Positional {
	lo := x.NextLong()
	hi := x.NextLong()
	return Positional{Lo: lo, Hi: hi}
}

// Positional is a frozen 128-bit state from which independent generators are
// derived by xor-ing in a salt. The climate fields use one per parameter and
// one per octave stack.
type Positional struct {
	Lo, Hi uint64
}

// At returns a generator for the given salt pair.
func (p Positional) At(saltLo, saltHi uint64) *Xoroshiro {
	return &Xoroshiro{Lo: p.Lo ^ saltLo, Hi: p.Hi ^ saltHi}
}

// Package noise implements the coherent gradient noise the climate fields are
// built from: a seeded Perlin lattice, octave stacks of it, and the
// double-Perlin combination of two stacks.
package noise

import (
	"math"

	"github.com/OCharnyshevich/heightfield/pkg/world/rng"
)

// Gradient vectors for the 16 hash buckets. Buckets 12-15 repeat four of the
// first twelve so the hash can be masked instead of reduced modulo 12.
var (
	gradX = [16]float64{1, -1, 1, -1, 1, -1, 1, -1, 0, 0, 0, 0, 1, 0, -1, 0}
	gradY = [16]float64{1, 1, -1, -1, 0, 0, 0, 0, 1, -1, 1, -1, 1, -1, 1, -1}
	gradZ = [16]float64{0, 0, 0, 0, 1, 1, -1, -1, 1, 1, -1, -1, 0, 1, 0, -1}
)

// Perlin is one seeded lattice of improved Perlin noise with a random origin
// offset. Output is roughly in [-1, 1].
type Perlin struct {
	perm [257]uint8

	// Origin offset.
	a, b, c float64

	// Amplitude and Lacunarity are the weight and frequency this lattice
	// contributes with inside an Octave stack.
	Amplitude  float64
	Lacunarity float64

	// Cached lattice position for y == 0, the common case for climate
	// fields.
	h2     uint8
	d2, t2 float64
}

// NewPerlin creates a Perlin lattice drawing its offset and permutation from
// xr.
func NewPerlin(xr *rng.Xoroshiro) *Perlin {
	p := &Perlin{
		a:          xr.NextDouble() * 256.0,
		b:          xr.NextDouble() * 256.0,
		c:          xr.NextDouble() * 256.0,
		Amplitude:  1.0,
		Lacunarity: 1.0,
	}

	for i := 0; i < 256; i++ {
		p.perm[i] = uint8(i)
	}
	// Fisher-Yates shuffle, forward order.
	for i := 0; i < 256; i++ {
		j := xr.NextInt(uint32(256-i)) + i
		p.perm[i], p.perm[j] = p.perm[j], p.perm[i]
	}
	p.perm[256] = p.perm[0]

	i2 := math.Floor(p.b)
	p.h2 = uint8(int(i2))
	p.d2 = p.b - i2
	p.t2 = fade(p.d2)
	return p
}

// Sample returns the noise value at (x, y, z).
func (p *Perlin) Sample(x, y, z float64) float64 {
	var h2 uint8
	var d2, t2 float64
	if y == 0 {
		h2, d2, t2 = p.h2, p.d2, p.t2
	} else {
		y += p.b
		i2 := math.Floor(y)
		h2 = uint8(int(i2))
		d2 = y - i2
		t2 = fade(d2)
	}

	x += p.a
	z += p.c
	i1 := math.Floor(x)
	i3 := math.Floor(z)
	d1 := x - i1
	d3 := z - i3
	h1 := uint8(int(i1))
	h3 := uint8(int(i3))
	t1 := fade(d1)
	t3 := fade(d3)

	idx := &p.perm
	a1 := idx[h1] + h2
	b1 := idx[int(h1)+1] + h2
	a2 := idx[a1] + h3
	a3 := idx[int(a1)+1] + h3
	b2 := idx[b1] + h3
	b3 := idx[int(b1)+1] + h3

	l1 := grad(idx[a2], d1, d2, d3)
	l2 := grad(idx[b2], d1-1, d2, d3)
	l3 := grad(idx[a3], d1, d2-1, d3)
	l4 := grad(idx[b3], d1-1, d2-1, d3)
	l5 := grad(idx[int(a2)+1], d1, d2, d3-1)
	l6 := grad(idx[int(b2)+1], d1-1, d2, d3-1)
	l7 := grad(idx[int(a3)+1], d1, d2-1, d3-1)
	l8 := grad(idx[int(b3)+1], d1-1, d2-1, d3-1)

	l1 = lerp(t1, l1, l2)
	l3 = lerp(t1, l3, l4)
	l5 = lerp(t1, l5, l6)
	l7 = lerp(t1, l7, l8)

	l1 = lerp(t2, l1, l3)
	l5 = lerp(t2, l5, l7)

	return lerp(t3, l1, l5)
}

func grad(hash uint8, x, y, z float64) float64 {
	i := hash & 15
	return gradX[i]*x + gradY[i]*y + gradZ[i]*z
}

// fade is the quintic smoothstep 6t^5 - 15t^4 + 10t^3.
func fade(t float64) float64 {
	return t * t * t * (t*(t*6.0-15.0) + 10.0)
}

func lerp(t, a, b float64) float64 {
	return a + t*(b-a)
}

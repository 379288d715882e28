package noise

import (
	"fmt"
	"math"

	"github.com/OCharnyshevich/heightfield/pkg/world/rng"
)

// octaveSalts holds one salt pair per octave index from -12 to 0. Each
// octave of a stack is seeded from the stack's positional state xor-ed with
// the salt of its index, so octaves are independent of the stack length.
var octaveSalts = [13][2]uint64{
	{0xb198de63a8012672, 0x7b84cad43ef7b5a8}, // -12
	{0x0fd787bfbc403ec3, 0x74a4a31ca21b48b8}, // -11
	{0x36d326eed40efeb2, 0x5be9ce18223c636a}, // -10
	{0x082fe255f8be6631, 0x4e96119e22dedc81}, // -9
	{0x0ef68ec68504005e, 0x48b6bf93a2789640}, // -8
	{0xf11268128982754f, 0x257a1d670430b0aa}, // -7
	{0xe51c98ce7d1de664, 0x5f9478a733040c45}, // -6
	{0x6d7b49e7e429850a, 0x2e3063c622a24777}, // -5
	{0xbd90d5377ba1b762, 0xc07317d419a7548d}, // -4
	{0x53d39c6752dac858, 0xbcd1c5a80ab65b3e}, // -3
	{0xb4a24d7a84e7677b, 0x023ff9668e89b5c4}, // -2
	{0xdffa22b534c5f608, 0xb9b67517d3665ca9}, // -1
	{0xd50708086cef4d7c, 0x6e1651ecc7f43309}, // 0
}

// MinOctave and MaxOctaves bound the shapes an Octave stack accepts.
const (
	MinOctave  = -12
	MaxOctaves = 9
)

// Octave is a stack of Perlin lattices at doubling frequencies. Lattices with
// a zero amplitude are skipped at construction.
type Octave struct {
	octaves []*Perlin
}

// NewOctave seeds a stack starting at octave index omin with one amplitude
// per octave. The lowest octave runs at frequency 2^omin.
func NewOctave(xr *rng.Xoroshiro, amplitudes []float64, omin int) (*Octave, error) {
	n := len(amplitudes)
	if omin < MinOctave || omin+n-1 > 0 || n == 0 || n > MaxOctaves {
		return nil, fmt.Errorf("octave shape omin=%d len=%d out of range", omin, n)
	}

	lacunarity := math.Ldexp(1, omin)
	// Persistence normalizes the sum of 2^-i weights: 2^(n-1) / (2^n - 1).
	persistence := math.Ldexp(1, n-1) / (math.Ldexp(1, n) - 1)
	pos := xr.Positional()

	o := &Octave{}
	for i, amp := range amplitudes {
		if amp != 0 {
			salt := octaveSalts[12+omin+i]
			p := NewPerlin(pos.At(salt[0], salt[1]))
			p.Amplitude = amp * persistence
			p.Lacunarity = lacunarity
			o.octaves = append(o.octaves, p)
		}
		lacunarity *= 2.0
		persistence *= 0.5
	}
	return o, nil
}

// Len returns the number of non-empty octaves.
func (o *Octave) Len() int {
	return len(o.octaves)
}

// Sample returns the weighted sum of all octaves at (x, y, z).
func (o *Octave) Sample(x, y, z float64) float64 {
	var v float64
	for _, p := range o.octaves {
		lf := p.Lacunarity
		v += p.Amplitude * p.Sample(wrap(x*lf), wrap(y*lf), wrap(z*lf))
	}
	return v
}

// wrap folds a coordinate into [-2^24, 2^24] so the lattice lookup keeps
// full fractional precision far from the origin.
func wrap(x float64) float64 {
	const period = 33554432.0
	return x - math.Floor(x/period+0.5)*period
}

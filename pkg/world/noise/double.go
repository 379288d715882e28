package noise

import "github.com/OCharnyshevich/heightfield/pkg/world/rng"

// doubleFactor is the frequency ratio between the two stacks of a
// DoublePerlin. It is close to but not exactly 1 so the stacks never share
// lattice points.
const doubleFactor = 337.0 / 331.0

// DoublePerlin sums two independently seeded Octave stacks of the same shape,
// the second sampled at a slightly higher frequency, and rescales the result
// by the number of active octaves.
type DoublePerlin struct {
	a, b      *Octave
	amplitude float64
}

// NewDoublePerlin seeds both stacks from xr, first a then b.
func NewDoublePerlin(xr *rng.Xoroshiro, amplitudes []float64, omin int) (*DoublePerlin, error) {
	a, err := NewOctave(xr, amplitudes, omin)
	if err != nil {
		return nil, err
	}
	b, err := NewOctave(xr, amplitudes, omin)
	if err != nil {
		return nil, err
	}
	return &DoublePerlin{a: a, b: b, amplitude: doubleAmplitude(amplitudes)}, nil
}

// amplitudes by active octave count n, (5/3) * n / (n + 1) written as the
// exact ratios so each entry rounds once.
var doubleAmplitudes = [MaxOctaves + 1]float64{
	0, 5. / 6, 10. / 9, 15. / 12, 20. / 15, 25. / 18, 30. / 21, 35. / 24, 40. / 27, 45. / 30,
}

// doubleAmplitude looks up the rescaling factor for the octaves between the
// first and last non-zero amplitude.
func doubleAmplitude(amplitudes []float64) float64 {
	lo, hi := 0, len(amplitudes)-1
	for hi >= 0 && amplitudes[hi] == 0 {
		hi--
	}
	for lo <= hi && amplitudes[lo] == 0 {
		lo++
	}
	n := hi - lo + 1
	if n <= 0 {
		return 0
	}
	return doubleAmplitudes[n]
}

// Sample returns the field value at (x, y, z).
func (d *DoublePerlin) Sample(x, y, z float64) float64 {
	v := d.a.Sample(x, y, z)
	v += d.b.Sample(x*doubleFactor, y*doubleFactor, z*doubleFactor)
	return v * d.amplitude
}

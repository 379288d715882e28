// Package surface evaluates the octave noise behind the pre-climate terrain
// shape: a 33-sample density column per 1:4 cell.
package surface

import (
	"errors"
	"fmt"
	"math"

	"github.com/aquilax/go-perlin"

	"github.com/OCharnyshevich/heightfield/pkg/world/gen"
	"github.com/OCharnyshevich/heightfield/pkg/world/rng"
)

var (
	ErrNotInitialized       = errors.New("surface noise not initialized")
	ErrUnsupportedDimension = errors.New("surface noise: unsupported dimension")
)

// ColumnLen is the number of vertical samples in a density column.
const ColumnLen = 33

// Noise shape. Octave stacks run from the finest to the coarsest octave,
// each coarser octave at half the frequency and twice the weight.
const (
	limitOctaves = 16
	mainOctaves  = 8
	depthOctaves = 16

	coordScale  = 684.412
	heightScale = 684.412
	mainScaleXZ = 80.0
	mainScaleY  = 160.0
	limitScale  = 512.0
	depthScale  = 200.0
	depthNorm   = 8000.0

	baseSize = 8.5
	stretchY = 12.0

	// Neutral biome used in place of biome blending.
	neutralDepth = 0.125
	neutralScale = 0.05

	// Rows above topSlide fade towards air.
	topSlide = 29

	// latticePeriod is the span after which one go-perlin octave repeats.
	latticePeriod = 256.0
)

// Noise holds the octave stacks for one (dimension, seed) pair.
//
// Noise is read-only after Init and safe for concurrent use. Init must not
// run concurrently with Column.
type Noise struct {
	dim  gen.Dimension
	seed uint64

	minLimit *perlin.Perlin
	maxLimit *perlin.Perlin
	main     *perlin.Perlin
	depth    *perlin.Perlin

	ready bool
}

// New returns an initialized Noise.
func New(dim gen.Dimension, seed uint64) (*Noise, error) {
	n := &Noise{}
	if err := n.Init(dim, seed); err != nil {
		return nil, err
	}
	return n, nil
}

// Init derives all octave stacks from seed. The Nether is not supported.
func (n *Noise) Init(dim gen.Dimension, seed uint64) error {
	n.ready = false
	if dim != gen.Overworld && dim != gen.End {
		return fmt.Errorf("init surface noise: %w: %s", ErrUnsupportedDimension, dim)
	}

	r := rng.NewLCG(seed)
	n.dim, n.seed = dim, seed
	n.minLimit = newStack(r, limitOctaves)
	n.maxLimit = newStack(r, limitOctaves)
	n.main = newStack(r, mainOctaves)
	n.depth = nil
	if dim == gen.Overworld {
		n.depth = newStack(r, depthOctaves)
	}
	n.ready = true
	return nil
}

// newStack draws the stack seed from r. Alpha and beta of one half make
// each octave twice as coarse and twice as heavy as the previous one.
func newStack(r *rng.LCG, octaves int32) *perlin.Perlin {
	return perlin.NewPerlin(0.5, 0.5, octaves, r.NextLong())
}

func (n *Noise) Dimension() gen.Dimension {
	return n.dim
}

func (n *Noise) Seed() uint64 {
	return n.seed
}

// Ready reports whether Init completed successfully.
func (n *Noise) Ready() bool {
	return n.ready
}

// Column writes the density column of 1:4 cell (x, z) into out, which must
// hold ColumnLen values. Positive density is solid.
//
// Overworld columns are fully shaped with a vertical step of 8 blocks. End
// columns hold only the blended limit noise; the caller adds the island
// falloff.
func (n *Noise) Column(x, z int, out []float64) error {
	if !n.ready {
		return ErrNotInitialized
	}
	if len(out) < ColumnLen {
		return fmt.Errorf("column buffer holds %d values, need %d", len(out), ColumnLen)
	}

	fx, fz := float64(x), float64(z)
	if n.dim == gen.End {
		for y := 0; y < ColumnLen; y++ {
			out[y] = n.limit(fx, float64(y), fz)
		}
		return nil
	}

	d0, d9 := n.shape(fx, fz)
	for y := 0; y < ColumnLen; y++ {
		d1 := (float64(y) - d0) * stretchY * 128.0 / 256.0 / d9
		if d1 < 0 {
			d1 *= 4.0
		}
		v := n.limit(fx, float64(y), fz) - d1
		if y > topSlide {
			t := float64(y-topSlide) / 3.0
			v = v*(1.0-t) + -10.0*t
		}
		out[y] = v
	}
	return nil
}

// limit blends the lower and upper limit noise by the main noise.
func (n *Noise) limit(x, y, z float64) float64 {
	lx := wrap(x*coordScale, limitOctaves)
	ly := wrap(y*heightScale, limitOctaves)
	lz := wrap(z*coordScale, limitOctaves)
	lo := n.minLimit.Noise3D(lx, ly, lz) / limitScale
	hi := n.maxLimit.Noise3D(lx, ly, lz) / limitScale

	mx := wrap(x*coordScale/mainScaleXZ, mainOctaves)
	my := wrap(y*heightScale/mainScaleY, mainOctaves)
	mz := wrap(z*coordScale/mainScaleXZ, mainOctaves)
	t := (n.main.Noise3D(mx, my, mz)/10.0 + 1.0) / 2.0
	switch {
	case t < 0:
		return lo
	case t > 1:
		return hi
	default:
		return lo + (hi-lo)*t
	}
}

// wrap folds v into [0, span), where span is one lattice period at the
// coarsest octave of the stack and so a whole number of periods at every
// octave. go-perlin truncates lattice coordinates toward zero and reads
// negative z as 2D noise, so coordinates must stay non-negative.
func wrap(v float64, octaves int) float64 {
	span := math.Ldexp(latticePeriod, octaves-1)
	return v - math.Floor(v/span)*span
}

// shape returns the base height (in column rows) and vertical stretch of a
// cell from the depth noise.
func (n *Noise) shape(x, z float64) (base, stretch float64) {
	depth := (neutralDepth*4.0 - 1.0) / 8.0
	stretch = neutralScale*0.9 + 0.1

	d := n.depth.Noise2D(wrap(x*depthScale, depthOctaves), wrap(z*depthScale, depthOctaves)) / depthNorm
	if d < 0 {
		d = -d * 0.3
	}
	d = d*3.0 - 2.0
	if d < 0 {
		d /= 2.0
		if d < -1 {
			d = -1
		}
		d /= 1.4
		d /= 2.0
	} else {
		if d > 1 {
			d = 1
		}
		d /= 8.0
	}

	depth += d * 0.2
	depth = depth * baseSize / 8.0
	return baseSize + depth*4.0, stretch
}

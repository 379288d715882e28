package climate

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/OCharnyshevich/heightfield/pkg/world/noise"
	"github.com/OCharnyshevich/heightfield/pkg/world/rng"
)

// State holds the six climate noise fields of a 1.18+ overworld and the depth
// spline evaluated over them.
//
// A State is configured in two steps: Setup fixes the layout, ApplySeed
// seeds the fields. After ApplySeed the State is read-only and safe for
// concurrent use.
type State struct {
	large  bool
	depth  *Spline
	fields [NumParams]*noise.DoublePerlin
	seeded bool
}

// Setup prepares the layout for normal or large biome worlds and discards
// any previous seeding.
func (s *State) Setup(large bool) {
	s.large = large
	if s.depth == nil {
		s.depth = NewDepthSpline()
	}
	s.fields = [NumParams]*noise.DoublePerlin{}
	s.seeded = false
}

// ApplySeed seeds every field from the world seed.
func (s *State) ApplySeed(seed uint64) error {
	if s.depth == nil {
		s.depth = NewDepthSpline()
	}

	pos := rng.NewXoroshiro(seed).Positional()
	for p := Shift; p < NumParams; p++ {
		sh := shapeOf(p, s.large)
		dp, err := noise.NewDoublePerlin(pos.At(sh.salt[0], sh.salt[1]), sh.amplitudes, sh.omin)
		if err != nil {
			s.seeded = false
			return fmt.Errorf("seed %s field: %w", p, err)
		}
		s.fields[p] = dp
	}
	s.seeded = true
	return nil
}

// Large reports whether the State uses the large biome layout.
func (s *State) Large() bool {
	return s.large
}

// Seeded reports whether ApplySeed has completed.
func (s *State) Seeded() bool {
	return s.seeded
}

// Sample returns the raw value of field p at (x, y, z), in quarter-block
// coordinates. The State must be seeded.
func (s *State) Sample(p Param, x, y, z float64) float64 {
	return s.fields[p].Sample(x, y, z)
}

// Spline evaluates the depth spline at np = {c, e, pv, w}.
func (s *State) Spline(np mgl32.Vec4) float32 {
	return s.depth.Eval(np)
}

package gen

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/ojrac/opensimplex-go"

	"github.com/OCharnyshevich/heightfield/pkg/world/rng"
)

const (
	// endSkip is the number of LCG draws consumed by the End terrain
	// octaves before the island noise is seeded.
	endSkip = 17292
	// endIslandRange is how many island cells around a position are tested.
	endIslandRange = 12
	// endIslandThreshold selects island cells from the simplex field.
	endIslandThreshold = -0.9
)

func newEndNoise(seed uint64) opensimplex.Noise {
	r := rng.NewLCG(seed)
	r.Skip(endSkip)
	return opensimplex.New(r.NextLong())
}

// EndHeight returns the island density of the End at cell (x, z) on the 1:8
// grid, in [-100, 80]. The main island sits at the origin; outer islands
// exist only beyond 64 island cells (1024 blocks) from it.
func (g *Generator) EndHeight(x, z int) float32 {
	hx, hz := x/2, z/2
	ox, oz := x%2, z%2

	h := 100 - float32(math.Sqrt(float64(x*x+z*z)))*8
	h = clampEnd(h)
	if g.end == nil {
		return h
	}

	for j := -endIslandRange; j <= endIslandRange; j++ {
		for i := -endIslandRange; i <= endIslandRange; i++ {
			rx := int64(hx + i)
			rz := int64(hz + j)
			if rx*rx+rz*rz <= 4096 {
				continue
			}
			if g.end.Eval2(float64(rx), float64(rz)) >= endIslandThreshold {
				continue
			}
			elev := float32((abs64(rx)*3439+abs64(rz)*147)%13 + 9)
			dx := float32(ox - i*2)
			dz := float32(oz - j*2)
			n := clampEnd(100 - float32(math.Sqrt(float64(dx*dx+dz*dz)))*elev)
			h = max(h, n)
		}
	}
	return h
}

func clampEnd(h float32) float32 {
	return mgl32.Clamp(h, -100, 80)
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

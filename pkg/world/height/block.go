package height

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/OCharnyshevich/heightfield/pkg/world/climate"
	"github.com/OCharnyshevich/heightfield/pkg/world/gen"
)

// MapBlockHeight fills y with the terrain height of every block in the
// w x h region at block coordinates (x, z), row-major.
//
// Only Overworld generators at 1.18 or later are supported; anything else
// yields ErrUnsupported regardless of the region.
func MapBlockHeight(y []float32, g *gen.Generator, x, z, w, h int) error {
	if g == nil || !g.Ready() {
		return fmt.Errorf("block height: %w", gen.ErrNotInitialized)
	}
	if g.Dimension() != gen.Overworld || g.Version() < gen.V1_18 {
		return fmt.Errorf("block height: %w: %s %s", ErrUnsupported, g.Dimension(), g.Version())
	}
	c, err := g.Climate()
	if err != nil {
		return fmt.Errorf("block height: %w", err)
	}
	return SampleBlockHeights(y, c, x, z, w, h)
}

// SampleBlockHeights runs the block sampler against any climate
// implementation. The climate fields live on the 1:4 grid but are
// continuous, so they are read at the unrounded quarter coordinate of each
// block.
func SampleBlockHeights(y []float32, c Climate, x, z, w, h int) error {
	if err := checkRegion(w, h, y, nil); err != nil {
		return err
	}

	for j := 0; j < h; j++ {
		for i := 0; i < w; i++ {
			y[j*w+i] = blockHeight(c, x+i, z+j)
		}
	}
	return nil
}

func blockHeight(c Climate, bx, bz int) float32 {
	qx := float64(bx) / 4.0
	qz := float64(bz) / 4.0

	// The second shift sample permutes its axes.
	px := qx + c.Sample(climate.Shift, qx, 0, qz)*4.0
	pz := qz + c.Sample(climate.Shift, qz, qx, 0)*4.0

	cont := float32(c.Sample(climate.Continentalness, px, 0, pz))
	eros := float32(c.Sample(climate.Erosion, px, 0, pz))
	weird := float32(c.Sample(climate.Weirdness, px, 0, pz))

	np := mgl32.Vec4{cont, eros, peaksAndValleys(weird), weird}
	off := c.Spline(np)

	d := depthBase + float64(off) + float64(depthBias)
	return float32(10000.0 * d / 76.0)
}

package height

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/OCharnyshevich/heightfield/pkg/world/climate"
	"github.com/OCharnyshevich/heightfield/pkg/world/gen"
	"github.com/OCharnyshevich/heightfield/pkg/world/surface"
)

// Vertical step of one density column row, in blocks.
const (
	overworldRow = 8.0
	endRow       = 4.0
)

// End column slides.
const (
	endTopRow       = 14
	endTopFade      = 64.0
	endTopTarget    = -3000.0
	endBottomRows   = 8
	endBottomTarget = -30.0
	endIslandBias   = 8.0
)

// MapApproxHeight fills y with one height per 1:4 cell of the w x h region
// at quarter coordinates (x, z), row-major. When ids is non-nil it receives
// the Surface class of each cell.
//
// Overworld 1.18+ reads the generator's climate and may be given a nil sn.
// Overworld 1.0 to 1.17 and End 1.9+ read the surface noise column, which
// must have been initialized for the generator's dimension and seed.
// Other configurations yield ErrUnsupported.
func MapApproxHeight(y []float32, ids []int, g *gen.Generator, sn *surface.Noise, x, z, w, h int) error {
	if g == nil || !g.Ready() {
		return fmt.Errorf("approx height: %w", gen.ErrNotInitialized)
	}

	switch v, dim := g.Version(), g.Dimension(); {
	case dim == gen.Overworld && v >= gen.V1_18:
		c, err := g.Climate()
		if err != nil {
			return fmt.Errorf("approx height: %w", err)
		}
		if err := checkRegion(w, h, y, ids); err != nil {
			return err
		}
		approxClimate(y, ids, c, x, z, w, h)
		return nil

	case dim == gen.Overworld && v >= gen.V1_0:
		if err := checkSurface(g, sn); err != nil {
			return err
		}
		if err := checkRegion(w, h, y, ids); err != nil {
			return err
		}
		return approxLegacy(y, ids, sn, x, z, w, h)

	case dim == gen.End && v >= gen.V1_9:
		if err := checkSurface(g, sn); err != nil {
			return err
		}
		if err := checkRegion(w, h, y, ids); err != nil {
			return err
		}
		return approxEnd(y, ids, g, sn, x, z, w, h)
	}
	return fmt.Errorf("approx height: %w: %s %s", ErrUnsupported, g.Dimension(), g.Version())
}

func checkSurface(g *gen.Generator, sn *surface.Noise) error {
	if sn == nil || !sn.Ready() {
		return fmt.Errorf("approx height: %w", surface.ErrNotInitialized)
	}
	if sn.Dimension() != g.Dimension() || sn.Seed() != g.Seed() {
		return fmt.Errorf("approx height: %w: noise %s/%d, generator %s/%d",
			ErrMismatch, sn.Dimension(), sn.Seed(), g.Dimension(), g.Seed())
	}
	return nil
}

// approxClimate evaluates the depth at each 1:4 cell and truncates it to
// the grid resolution of the terrain solver.
func approxClimate(y []float32, ids []int, c Climate, x, z, w, h int) {
	for j := 0; j < h; j++ {
		for i := 0; i < w; i++ {
			qx := float64(x + i)
			qz := float64(z + j)
			px := qx + c.Sample(climate.Shift, qx, 0, qz)*4.0
			pz := qz + c.Sample(climate.Shift, qz, qx, 0)*4.0

			cont := float32(c.Sample(climate.Continentalness, px, 0, pz))
			eros := float32(c.Sample(climate.Erosion, px, 0, pz))
			weird := float32(c.Sample(climate.Weirdness, px, 0, pz))

			np := mgl32.Vec4{cont, eros, peaksAndValleys(weird), weird}
			off := float64(c.Spline(np)) + float64(depthBias)
			d := float32(depthBase + off)
			hv := float32(float64(int64(10000*d)) / 76.0)

			k := j*w + i
			y[k] = hv
			if ids != nil {
				ids[k] = int(classifyClimate(cont, hv))
			}
		}
	}
}

func approxLegacy(y []float32, ids []int, sn *surface.Noise, x, z, w, h int) error {
	col := make([]float64, surface.ColumnLen)
	for j := 0; j < h; j++ {
		for i := 0; i < w; i++ {
			if err := sn.Column(x+i, z+j, col); err != nil {
				return fmt.Errorf("approx height: %w", err)
			}
			hv, _ := topCrossing(col, overworldRow)

			k := j*w + i
			y[k] = hv
			if ids != nil {
				ids[k] = int(classifyHeight(hv))
			}
		}
	}
	return nil
}

func approxEnd(y []float32, ids []int, g *gen.Generator, sn *surface.Noise, x, z, w, h int) error {
	col := make([]float64, surface.ColumnLen)
	for j := 0; j < h; j++ {
		for i := 0; i < w; i++ {
			if err := sn.Column(x+i, z+j, col); err != nil {
				return fmt.Errorf("approx height: %w", err)
			}
			island := float64(g.EndHeight((x+i)>>1, (z+j)>>1))
			shapeEnd(col, island)
			hv, solid := topCrossing(col, endRow)

			k := j*w + i
			if !solid {
				hv = 0
			}
			y[k] = hv
			if ids != nil {
				if solid {
					ids[k] = int(classifyLand(hv))
				} else {
					ids[k] = int(Void)
				}
			}
		}
	}
	return nil
}

// shapeEnd adds the island falloff to a raw End column and fades the top
// and bottom rows to air.
func shapeEnd(col []float64, island float64) {
	for yi := range col {
		v := col[yi] - endIslandBias + island
		if yi > endTopRow {
			t := mgl64.Clamp(float64(yi-endTopRow)/endTopFade, 0, 1)
			v = v*(1-t) + endTopTarget*t
		}
		if yi < endBottomRows {
			t := float64(endBottomRows-yi) / float64(endBottomRows-1)
			v = v*(1-t) + endBottomTarget*t
		}
		col[yi] = v
	}
}

// topCrossing returns the height of the highest solid-to-air transition in
// a density column, interpolated between rows. solid is false when no row
// is solid.
func topCrossing(col []float64, row float64) (h float32, solid bool) {
	top := len(col) - 1
	for yi := top; yi >= 0; yi-- {
		if col[yi] <= 0 {
			continue
		}
		if yi == top {
			return float32(float64(yi) * row), true
		}
		frac := col[yi] / (col[yi] - col[yi+1])
		return float32((float64(yi) + frac) * row), true
	}
	return 0, false
}

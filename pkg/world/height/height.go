// Package height samples terrain height fields from an initialized
// generator. Heights share one output scale across samplers, roughly the
// world y of the surface, so block and approximate maps can be compared.
package height

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/OCharnyshevich/heightfield/pkg/world/climate"
)

var (
	ErrUnsupported = errors.New("unsupported dimension or version")
	ErrBufferSize  = errors.New("output buffer too small")
	ErrRegion      = errors.New("invalid region")
	ErrMismatch    = errors.New("surface noise does not match generator")
)

// Climate is the noise and spline capability the block sampler reads.
// *climate.State implements it.
type Climate interface {
	Sample(p climate.Param, x, y, z float64) float64
	Spline(np mgl32.Vec4) float32
}

var _ Climate = (*climate.State)(nil)

// Depth conversion constants.
const (
	// depthBase is 1 - 83/160 with the quotient rounded to double first.
	depthBase = 1.0 - float64(83.0/160.0)
	// depthBias is added after the spline, at single precision.
	depthBias float32 = 0.015
)

// Surface is a coarse class of the terrain at a cell. It is not a biome.
type Surface int

const (
	DeepOcean Surface = iota
	Ocean
	Coast
	Land
	Highland
	Peak
	Void
)

var surfaceNames = [...]string{
	DeepOcean: "deep_ocean",
	Ocean:     "ocean",
	Coast:     "coast",
	Land:      "land",
	Highland:  "highland",
	Peak:      "peak",
	Void:      "void",
}

func (s Surface) String() string {
	if s < 0 || int(s) >= len(surfaceNames) {
		return fmt.Sprintf("Surface(%d)", int(s))
	}
	return surfaceNames[s]
}

// Height class boundaries on the output scale, and continentalness
// boundaries of the water classes.
const (
	deepOceanTop = 40
	oceanTop     = 58
	coastTop     = 66
	landTop      = 100
	highlandTop  = 140

	continentDeep  = -0.455
	continentSea   = -0.19
	continentCoast = -0.11
)

// classifyHeight derives a surface class from height alone.
func classifyHeight(h float32) Surface {
	switch {
	case h < deepOceanTop:
		return DeepOcean
	case h < oceanTop:
		return Ocean
	case h < coastTop:
		return Coast
	}
	return classifyLand(h)
}

func classifyLand(h float32) Surface {
	switch {
	case h < landTop:
		return Land
	case h < highlandTop:
		return Highland
	}
	return Peak
}

// classifyClimate uses continentalness for water and height for land.
func classifyClimate(c, h float32) Surface {
	switch {
	case c < continentDeep:
		return DeepOcean
	case c < continentSea:
		return Ocean
	case c < continentCoast:
		return Coast
	}
	return classifyLand(h)
}

// checkRegion validates the region size against the output buffers. A nil
// ids slice is not checked.
func checkRegion(w, h int, y []float32, ids []int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrRegion, w, h)
	}
	n := w * h
	if n/w != h {
		return fmt.Errorf("%w: %dx%d overflows", ErrRegion, w, h)
	}
	if len(y) < n {
		return fmt.Errorf("%w: heights hold %d, need %d", ErrBufferSize, len(y), n)
	}
	if ids != nil && len(ids) < n {
		return fmt.Errorf("%w: ids hold %d, need %d", ErrBufferSize, len(ids), n)
	}
	return nil
}

// peaksAndValleys folds weirdness into the ridge signal.
func peaksAndValleys(w float32) float32 {
	return -3.0 * (abs32(abs32(w)-0.6666667) - 0.33333334)
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

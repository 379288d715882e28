package heightmap

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"golang.org/x/image/draw"

	"github.com/OCharnyshevich/heightfield/pkg/world/gen"
	"github.com/OCharnyshevich/heightfield/pkg/world/height"
)

// Map is a rendered height field with the world it was sampled from.
type Map struct {
	ID        uuid.UUID
	Region    Region
	Version   gen.Version
	Dimension gen.Dimension
	Flags     gen.Flags
	Seed      uint64

	// Heights holds Width*Height samples, row-major.
	Heights []float32
	// IDs holds the surface class per sample for approx maps.
	IDs []int

	Min, Max float32
}

func newMap(reg Region, g *gen.Generator) *Map {
	n := reg.Width * reg.Height
	m := &Map{
		ID:        uuid.New(),
		Region:    reg,
		Version:   g.Version(),
		Dimension: g.Dimension(),
		Flags:     g.Flags(),
		Seed:      g.Seed(),
		Heights:   make([]float32, n),
	}
	if reg.Mode == ModeApprox {
		m.IDs = make([]int, n)
	}
	return m
}

// At returns the height of sample (i, j) of the map.
func (m *Map) At(i, j int) float32 {
	return m.Heights[j*m.Region.Width+i]
}

// Surface returns the surface class of sample (i, j), or false for block maps.
func (m *Map) Surface(i, j int) (height.Surface, bool) {
	if m.IDs == nil {
		return 0, false
	}
	return height.Surface(m.IDs[j*m.Region.Width+i]), true
}

// blit copies the part of tile t that overlaps the map. Tiles never overlap
// each other, so concurrent blits write disjoint samples.
func (m *Map) blit(pos TilePos, t *Tile) {
	reg := m.Region
	ox, oz := pos.X<<tileShift, pos.Z<<tileShift
	for tj := 0; tj < TileSize; tj++ {
		row := oz + tj - reg.Z
		if row < 0 || row >= reg.Height {
			continue
		}
		for ti := 0; ti < TileSize; ti++ {
			col := ox + ti - reg.X
			if col < 0 || col >= reg.Width {
				continue
			}
			k := row*reg.Width + col
			m.Heights[k] = t.Heights[tj*TileSize+ti]
			if m.IDs != nil && t.IDs != nil {
				m.IDs[k] = t.IDs[tj*TileSize+ti]
			}
		}
	}
}

// UpdateRange recomputes Min and Max over the finite samples.
func (m *Map) UpdateRange() {
	lo, hi := float32(math.Inf(1)), float32(math.Inf(-1))
	for _, v := range m.Heights {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			continue
		}
		lo = min(lo, v)
		hi = max(hi, v)
	}
	if lo > hi {
		lo, hi = 0, 0
	}
	m.Min, m.Max = lo, hi
}

// Image renders the map as grayscale, black at Min and white at Max.
func (m *Map) Image() *image.Gray {
	w, h := m.Region.Width, m.Region.Height
	img := image.NewGray(image.Rect(0, 0, w, h))
	span := m.Max - m.Min
	for j := 0; j < h; j++ {
		for i := 0; i < w; i++ {
			v := m.At(i, j)
			var g uint8
			switch {
			case v != v:
				g = 0
			case span <= 0:
				g = 128
			default:
				t := (v - m.Min) / span
				g = uint8(mgl32.Clamp(t, 0, 1)*254 + 0.5)
			}
			img.SetGray(i, j, color.Gray{Y: g})
		}
	}
	return img
}

// BlockImage renders the map at one pixel per block. Approx maps are
// scaled up by their cell size so they line up with block maps of the same
// area.
func (m *Map) BlockImage() *image.Gray {
	src := m.Image()
	scale := m.Region.Mode.Scale()
	if scale == 1 {
		return src
	}
	b := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

// Diff summarizes the absolute height difference between two maps.
type Diff struct {
	Samples int
	Max     float64
	Mean    float64
}

var ErrNoOverlap = errors.New("maps do not overlap")

// Compare checks an approx map against a block map of the same world. Each
// approx cell is compared with the block at its corner.
func Compare(block, approx *Map) (Diff, error) {
	if block.Region.Mode != ModeBlock || approx.Region.Mode != ModeApprox {
		return Diff{}, fmt.Errorf("compare: want block and approx maps, got %s and %s",
			block.Region.Mode, approx.Region.Mode)
	}
	if block.Seed != approx.Seed || block.Version != approx.Version || block.Dimension != approx.Dimension {
		return Diff{}, errors.New("compare: maps come from different worlds")
	}

	var d Diff
	var sum float64
	br, ar := block.Region, approx.Region
	for j := 0; j < ar.Height; j++ {
		bz := (ar.Z+j)*4 - br.Z
		if bz < 0 || bz >= br.Height {
			continue
		}
		for i := 0; i < ar.Width; i++ {
			bx := (ar.X+i)*4 - br.X
			if bx < 0 || bx >= br.Width {
				continue
			}
			diff := math.Abs(float64(approx.At(i, j)) - float64(block.At(bx, bz)))
			sum += diff
			d.Max = max(d.Max, diff)
			d.Samples++
		}
	}
	if d.Samples == 0 {
		return Diff{}, ErrNoOverlap
	}
	d.Mean = sum / float64(d.Samples)
	return d, nil
}

package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/google/uuid"

	"github.com/OCharnyshevich/heightfield/internal/heightmap"
	"github.com/OCharnyshevich/heightfield/pkg/world/gen"
)

// MapData is the serializable representation of a rendered map.
type MapData struct {
	ID        string     `json:"id"`
	Version   string     `json:"version"`
	Dimension string     `json:"dimension"`
	Flags     string     `json:"flags"`
	Seed      uint64     `json:"seed"`
	Region    RegionData `json:"region"`
	Min       float32    `json:"min"`
	Max       float32    `json:"max"`
	Heights   Heights    `json:"heights"`
	IDs       []int      `json:"ids,omitempty"`
}

// RegionData holds the sampled rectangle of a map.
type RegionData struct {
	Mode   string `json:"mode"`
	X      int    `json:"x"`
	Z      int    `json:"z"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Heights encodes non-finite samples as null, which JSON numbers cannot
// represent. null decodes to NaN.
type Heights []float32

func (h Heights) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, v := range h {
		if i > 0 {
			buf.WriteByte(',')
		}
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			buf.WriteString("null")
			continue
		}
		buf.WriteString(strconv.FormatFloat(f, 'g', -1, 32))
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

func (h *Heights) UnmarshalJSON(data []byte) error {
	var raw []*float32
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Heights, len(raw))
	for i, p := range raw {
		if p == nil {
			out[i] = float32(math.NaN())
			continue
		}
		out[i] = *p
	}
	*h = out
	return nil
}

// MapDataFromMap converts a rendered map to its serializable form.
func MapDataFromMap(m *heightmap.Map) *MapData {
	return &MapData{
		ID:        m.ID.String(),
		Version:   m.Version.String(),
		Dimension: m.Dimension.String(),
		Flags:     m.Flags.String(),
		Seed:      m.Seed,
		Region: RegionData{
			Mode:   m.Region.Mode.String(),
			X:      m.Region.X,
			Z:      m.Region.Z,
			Width:  m.Region.Width,
			Height: m.Region.Height,
		},
		Min:     m.Min,
		Max:     m.Max,
		Heights: Heights(m.Heights),
		IDs:     m.IDs,
	}
}

// Map converts the stored form back to a map.
func (d *MapData) Map() (*heightmap.Map, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("map id: %w", err)
	}
	v, err := gen.ParseVersion(d.Version)
	if err != nil {
		return nil, err
	}
	dim, err := gen.ParseDimension(d.Dimension)
	if err != nil {
		return nil, err
	}
	flags, err := gen.ParseFlags(d.Flags)
	if err != nil {
		return nil, err
	}
	mode, err := heightmap.ParseMode(d.Region.Mode)
	if err != nil {
		return nil, err
	}
	reg := heightmap.Region{
		X: d.Region.X, Z: d.Region.Z,
		Width: d.Region.Width, Height: d.Region.Height,
		Mode: mode,
	}
	if err := reg.Validate(); err != nil {
		return nil, err
	}
	if len(d.Heights) != reg.Width*reg.Height {
		return nil, fmt.Errorf("map holds %d heights, region needs %d", len(d.Heights), reg.Width*reg.Height)
	}
	switch {
	case mode == heightmap.ModeBlock && len(d.IDs) != 0:
		return nil, fmt.Errorf("block map carries %d ids", len(d.IDs))
	case mode == heightmap.ModeApprox && len(d.IDs) != reg.Width*reg.Height:
		return nil, fmt.Errorf("map holds %d ids, region needs %d", len(d.IDs), reg.Width*reg.Height)
	}
	return &heightmap.Map{
		ID:        id,
		Region:    reg,
		Version:   v,
		Dimension: dim,
		Flags:     flags,
		Seed:      d.Seed,
		Heights:   []float32(d.Heights),
		IDs:       d.IDs,
		Min:       d.Min,
		Max:       d.Max,
	}, nil
}

package gen

import (
	"errors"
	"fmt"

	"github.com/ojrac/opensimplex-go"

	"github.com/OCharnyshevich/heightfield/pkg/world/climate"
)

var (
	ErrNotInitialized   = errors.New("generator not initialized")
	ErrUnknownVersion   = errors.New("unknown version")
	ErrUnknownDimension = errors.New("unknown dimension")
	ErrNoClimate        = errors.New("no climate state for this configuration")
)

// Generator holds the seed-derived terrain state for one world configuration.
//
// The zero value is not ready; call Init (or use New). After Init the
// Generator is read-only and may be shared by concurrent samplers. Init
// itself must not run concurrently with any reader of the same Generator.
type Generator struct {
	version Version
	flags   Flags
	dim     Dimension
	seed    uint64

	climate *climate.State
	end     opensimplex.Noise
	ready   bool
}

// New returns an initialized Generator.
func New(v Version, flags Flags, dim Dimension, seed uint64) (*Generator, error) {
	g := &Generator{}
	if err := g.Init(v, flags, dim, seed); err != nil {
		return nil, err
	}
	return g, nil
}

// Init configures g for the given world and derives all noise state from
// seed. Prior state is discarded. On error g is left not ready.
func (g *Generator) Init(v Version, flags Flags, dim Dimension, seed uint64) error {
	g.ready = false
	if !v.Valid() {
		return fmt.Errorf("init generator: %w: %d", ErrUnknownVersion, int(v))
	}
	if !dim.Valid() {
		return fmt.Errorf("init generator: %w: %d", ErrUnknownDimension, int(dim))
	}

	g.version, g.flags, g.dim, g.seed = v, flags, dim, seed
	g.setup()
	if err := g.applySeed(); err != nil {
		return fmt.Errorf("init generator: %w", err)
	}
	g.ready = true
	return nil
}

// setup shapes the seed-independent state for the configured world.
func (g *Generator) setup() {
	g.end = nil
	if g.dim == Overworld && g.version >= V1_18 {
		if g.climate == nil {
			g.climate = &climate.State{}
		}
		g.climate.Setup(g.flags.Has(LargeBiomes))
	} else {
		g.climate = nil
	}
}

// applySeed fills the shaped state with seed-derived coefficients.
func (g *Generator) applySeed() error {
	if g.climate != nil {
		if err := g.climate.ApplySeed(g.seed); err != nil {
			return err
		}
	}
	if g.dim == End && g.version >= V1_9 {
		g.end = newEndNoise(g.seed)
	}
	return nil
}

// Ready reports whether Init completed successfully.
func (g *Generator) Ready() bool {
	return g.ready
}

func (g *Generator) Version() Version {
	return g.version
}

func (g *Generator) Flags() Flags {
	return g.flags
}

func (g *Generator) Dimension() Dimension {
	return g.dim
}

func (g *Generator) Seed() uint64 {
	return g.seed
}

// Climate returns the climate state of an Overworld generator at 1.18 or
// later.
func (g *Generator) Climate() (*climate.State, error) {
	if !g.ready {
		return nil, ErrNotInitialized
	}
	if g.climate == nil {
		return nil, fmt.Errorf("%w: %s %s", ErrNoClimate, g.dim, g.version)
	}
	return g.climate, nil
}

// HasEndIslands reports whether g carries End island noise.
func (g *Generator) HasEndIslands() bool {
	return g.ready && g.end != nil
}

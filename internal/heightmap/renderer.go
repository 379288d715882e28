package heightmap

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/OCharnyshevich/heightfield/pkg/world/gen"
	"github.com/OCharnyshevich/heightfield/pkg/world/height"
	"github.com/OCharnyshevich/heightfield/pkg/world/surface"
)

const (
	tileShift = 4
	// TileSize is the edge length of a cached tile, in samples.
	TileSize = 1 << tileShift
)

// TilePos identifies a tile by mode and tile coordinates.
type TilePos struct {
	Mode Mode
	X, Z int
}

// Tile holds the samples of one TileSize x TileSize square, row-major.
// IDs is nil for block tiles.
type Tile struct {
	Heights [TileSize * TileSize]float32
	IDs     []int
}

// Renderer renders regions from one generator, caching every tile it
// samples. A Renderer is safe for concurrent use.
type Renderer struct {
	gen     *gen.Generator
	sn      *surface.Noise
	workers int
	log     *slog.Logger

	mu    sync.RWMutex
	tiles map[TilePos]*Tile
}

// NewRenderer creates a Renderer. sn may be nil when only block maps or
// 1.18+ Overworld approx maps are rendered. workers bounds the number of
// tiles sampled at once; values below 1 mean one.
func NewRenderer(g *gen.Generator, sn *surface.Noise, workers int, log *slog.Logger) *Renderer {
	if workers < 1 {
		workers = 1
	}
	return &Renderer{
		gen:     g,
		sn:      sn,
		workers: workers,
		log:     log,
		tiles:   make(map[TilePos]*Tile),
	}
}

// Tile returns the tile at pos, sampling and caching it if needed.
func (r *Renderer) Tile(pos TilePos) (*Tile, error) {
	r.mu.RLock()
	if t, ok := r.tiles[pos]; ok {
		r.mu.RUnlock()
		return t, nil
	}
	r.mu.RUnlock()

	t, err := r.sample(pos)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	// Double-check after acquiring write lock.
	if existing, ok := r.tiles[pos]; ok {
		r.mu.Unlock()
		return existing, nil
	}
	r.tiles[pos] = t
	r.mu.Unlock()
	return t, nil
}

func (r *Renderer) sample(pos TilePos) (*Tile, error) {
	t := &Tile{}
	x, z := pos.X<<tileShift, pos.Z<<tileShift

	var err error
	switch pos.Mode {
	case ModeBlock:
		err = height.MapBlockHeight(t.Heights[:], r.gen, x, z, TileSize, TileSize)
	case ModeApprox:
		t.IDs = make([]int, TileSize*TileSize)
		err = height.MapApproxHeight(t.Heights[:], t.IDs, r.gen, r.sn, x, z, TileSize, TileSize)
	default:
		err = fmt.Errorf("unknown mode %d", int(pos.Mode))
	}
	if err != nil {
		return nil, fmt.Errorf("sample tile %s (%d, %d): %w", pos.Mode, pos.X, pos.Z, err)
	}
	return t, nil
}

// CachedTiles returns the number of tiles held in the cache.
func (r *Renderer) CachedTiles() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tiles)
}

// Render samples every tile overlapping reg concurrently and assembles the
// map. Cancelling ctx stops scheduling new tiles.
func (r *Renderer) Render(ctx context.Context, reg Region) (*Map, error) {
	if err := reg.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	m := newMap(reg, r.gen)
	tx0, tz0, tx1, tz1 := reg.tiles()

	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(r.workers)
	for tz := tz0; tz <= tz1 && gctx.Err() == nil; tz++ {
		for tx := tx0; tx <= tx1 && gctx.Err() == nil; tx++ {
			pos := TilePos{Mode: reg.Mode, X: tx, Z: tz}
			eg.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				t, err := r.Tile(pos)
				if err != nil {
					return err
				}
				m.blit(pos, t)
				return nil
			})
		}
	}
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("render %s: %w", reg, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("render %s: %w", reg, err)
	}

	m.UpdateRange()
	r.log.Info("rendered region",
		"id", m.ID,
		"region", reg.String(),
		"tiles", (tx1-tx0+1)*(tz1-tz0+1),
		"cached", r.CachedTiles(),
		"min", m.Min,
		"max", m.Max,
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	return m, nil
}

package heightmap

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/OCharnyshevich/heightfield/pkg/world/gen"
	"github.com/OCharnyshevich/heightfield/pkg/world/height"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRenderer(t *testing.T, seed uint64) (*Renderer, *gen.Generator) {
	t.Helper()
	g, err := gen.New(gen.V1_20, 0, gen.Overworld, seed)
	if err != nil {
		t.Fatalf("gen.New: %v", err)
	}
	return NewRenderer(g, nil, 4, testLogger()), g
}

func TestRenderMatchesSampler(t *testing.T) {
	r, g := newTestRenderer(t, 404)

	reg := Region{X: -5, Z: 7, Width: 20, Height: 18, Mode: ModeBlock}
	m, err := r.Render(context.Background(), reg)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	want := make([]float32, reg.Width*reg.Height)
	if err := height.MapBlockHeight(want, g, reg.X, reg.Z, reg.Width, reg.Height); err != nil {
		t.Fatalf("MapBlockHeight: %v", err)
	}
	for i := range want {
		if m.Heights[i] != want[i] {
			t.Fatalf("sample %d = %v, want %v", i, m.Heights[i], want[i])
		}
	}
	if m.IDs != nil {
		t.Error("block map should carry no ids")
	}
	if m.Seed != 404 || m.Version != gen.V1_20 || m.Dimension != gen.Overworld {
		t.Errorf("map metadata = %d %s %s", m.Seed, m.Version, m.Dimension)
	}
}

func TestRenderApproxIDs(t *testing.T) {
	r, g := newTestRenderer(t, 8)

	reg := Region{X: 30, Z: -30, Width: 17, Height: 5, Mode: ModeApprox}
	m, err := r.Render(context.Background(), reg)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	n := reg.Width * reg.Height
	wantY := make([]float32, n)
	wantIDs := make([]int, n)
	if err := height.MapApproxHeight(wantY, wantIDs, g, nil, reg.X, reg.Z, reg.Width, reg.Height); err != nil {
		t.Fatalf("MapApproxHeight: %v", err)
	}
	for i := 0; i < n; i++ {
		if m.Heights[i] != wantY[i] || m.IDs[i] != wantIDs[i] {
			t.Fatalf("sample %d = (%v, %d), want (%v, %d)", i, m.Heights[i], m.IDs[i], wantY[i], wantIDs[i])
		}
	}
	if s, ok := m.Surface(0, 0); !ok || int(s) != wantIDs[0] {
		t.Errorf("Surface(0, 0) = %s, %v", s, ok)
	}
}

func TestRenderCachesTiles(t *testing.T) {
	r, _ := newTestRenderer(t, 1)

	reg := Region{X: 0, Z: 0, Width: 32, Height: 32, Mode: ModeBlock}
	if _, err := r.Render(context.Background(), reg); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := r.CachedTiles(); got != 4 {
		t.Fatalf("CachedTiles() = %d, want 4", got)
	}
	// A sub-region reuses the cached tiles.
	if _, err := r.Render(context.Background(), Region{X: 3, Z: 3, Width: 10, Height: 10}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := r.CachedTiles(); got != 4 {
		t.Errorf("CachedTiles() = %d after cached render, want 4", got)
	}

	a, _ := r.Tile(TilePos{Mode: ModeBlock, X: 1, Z: 1})
	b, _ := r.Tile(TilePos{Mode: ModeBlock, X: 1, Z: 1})
	if a != b {
		t.Error("Tile should return the cached tile")
	}
}

func TestRenderCancelled(t *testing.T) {
	r, _ := newTestRenderer(t, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Render(ctx, Region{Width: 64, Height: 64, Mode: ModeBlock})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Render error = %v, want context.Canceled", err)
	}
}

func TestRenderInvalidRegion(t *testing.T) {
	r, _ := newTestRenderer(t, 1)
	if _, err := r.Render(context.Background(), Region{Width: 0, Height: 4}); err == nil {
		t.Error("expected error for empty region")
	}
}

func TestRenderUnsupported(t *testing.T) {
	g, err := gen.New(gen.V1_20, 0, gen.Nether, 1)
	if err != nil {
		t.Fatalf("gen.New: %v", err)
	}
	r := NewRenderer(g, nil, 2, testLogger())
	_, err = r.Render(context.Background(), Region{Width: 4, Height: 4, Mode: ModeBlock})
	if !errors.Is(err, height.ErrUnsupported) {
		t.Errorf("Render error = %v, want ErrUnsupported", err)
	}
	if r.CachedTiles() != 0 {
		t.Error("failed tiles must not be cached")
	}
}

func TestCompare(t *testing.T) {
	r, _ := newTestRenderer(t, 2718)
	ctx := context.Background()

	block, err := r.Render(ctx, Region{X: 0, Z: 0, Width: 64, Height: 64, Mode: ModeBlock})
	if err != nil {
		t.Fatalf("Render block: %v", err)
	}
	approx, err := r.Render(ctx, Region{X: 0, Z: 0, Width: 16, Height: 16, Mode: ModeApprox})
	if err != nil {
		t.Fatalf("Render approx: %v", err)
	}

	d, err := Compare(block, approx)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if d.Samples != 256 {
		t.Errorf("Samples = %d, want 256", d.Samples)
	}
	if d.Max > 0.05 {
		t.Errorf("Max diff = %v, want <= 0.05", d.Max)
	}

	if _, err := Compare(approx, block); err == nil {
		t.Error("Compare with swapped maps should fail")
	}

	far, err := r.Render(ctx, Region{X: 1000, Z: 1000, Width: 2, Height: 2, Mode: ModeApprox})
	if err != nil {
		t.Fatalf("Render far: %v", err)
	}
	if _, err := Compare(block, far); !errors.Is(err, ErrNoOverlap) {
		t.Errorf("Compare error = %v, want ErrNoOverlap", err)
	}
}

func TestImages(t *testing.T) {
	r, _ := newTestRenderer(t, 5)
	ctx := context.Background()

	approx, err := r.Render(ctx, Region{Width: 8, Height: 6, Mode: ModeApprox})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	img := approx.Image()
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 6 {
		t.Errorf("Image bounds = %v, want 8x6", b)
	}
	up := approx.BlockImage()
	if b := up.Bounds(); b.Dx() != 32 || b.Dy() != 24 {
		t.Errorf("BlockImage bounds = %v, want 32x24", b)
	}

	lo, hi := uint8(255), uint8(0)
	for _, p := range img.Pix {
		lo = min(lo, p)
		hi = max(hi, p)
	}
	if approx.Max > approx.Min && (lo != 0 || hi != 254) {
		t.Errorf("gray range = [%d, %d], want [0, 254]", lo, hi)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"block", ModeBlock},
		{"", ModeBlock},
		{"APPROX", ModeApprox},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseMode(%q) = %s, %v; want %s", tt.in, got, err, tt.want)
		}
	}
	if _, err := ParseMode("exact"); err == nil {
		t.Error("ParseMode(exact) should fail")
	}
}

func TestRegionTiles(t *testing.T) {
	tx0, tz0, tx1, tz1 := Region{X: -1, Z: 15, Width: 2, Height: 2}.tiles()
	if tx0 != -1 || tz0 != 0 || tx1 != 0 || tz1 != 1 {
		t.Errorf("tiles() = (%d, %d, %d, %d), want (-1, 0, 0, 1)", tx0, tz0, tx1, tz1)
	}
}

func TestUpdateRangeSkipsNonFinite(t *testing.T) {
	m := &Map{
		Region:  Region{Width: 4, Height: 1, Mode: ModeBlock},
		Heights: []float32{float32(math.Inf(1)), 5, float32(math.NaN()), float32(math.Inf(-1))},
	}
	m.UpdateRange()
	if m.Min != 5 || m.Max != 5 {
		t.Errorf("range = [%v, %v], want [5, 5]", m.Min, m.Max)
	}

	m.Heights = []float32{float32(math.Inf(1)), float32(math.NaN())}
	m.Region.Width = 2
	m.UpdateRange()
	if m.Min != 0 || m.Max != 0 {
		t.Errorf("range of no finite samples = [%v, %v], want [0, 0]", m.Min, m.Max)
	}
}

package surface

import (
	"errors"
	"math"
	"testing"

	"github.com/OCharnyshevich/heightfield/pkg/world/gen"
)

func TestInitRejectsNether(t *testing.T) {
	var n Noise
	if err := n.Init(gen.Nether, 1); !errors.Is(err, ErrUnsupportedDimension) {
		t.Errorf("Init(nether) error = %v, want ErrUnsupportedDimension", err)
	}
	if n.Ready() {
		t.Error("noise ready after failed Init")
	}
}

func TestColumnRequiresInit(t *testing.T) {
	var n Noise
	out := make([]float64, ColumnLen)
	if err := n.Column(0, 0, out); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Column error = %v, want ErrNotInitialized", err)
	}
}

func TestColumnShortBuffer(t *testing.T) {
	n, err := New(gen.Overworld, 1)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := n.Column(0, 0, make([]float64, ColumnLen-1)); err == nil {
		t.Error("expected error for short buffer")
	}
}

func TestAccessors(t *testing.T) {
	n, err := New(gen.End, 77)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if n.Dimension() != gen.End || n.Seed() != 77 {
		t.Errorf("got (%s, %d), want (end, 77)", n.Dimension(), n.Seed())
	}
}

func TestOverworldColumnShape(t *testing.T) {
	n, err := New(gen.Overworld, 8675309)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	out := make([]float64, ColumnLen)
	for i := 0; i < 10; i++ {
		if err := n.Column(i*37, -i*53, out); err != nil {
			t.Fatalf("Column: %v", err)
		}
		if out[0] <= 0 {
			t.Errorf("cell %d: bottom density = %f, want solid", i, out[0])
		}
		if out[ColumnLen-1] != -10 {
			t.Errorf("cell %d: top density = %f, want -10", i, out[ColumnLen-1])
		}
	}
}

func TestColumnDeterministic(t *testing.T) {
	for _, dim := range []gen.Dimension{gen.Overworld, gen.End} {
		a, _ := New(dim, 31337)
		b, _ := New(dim, 31337)
		oa := make([]float64, ColumnLen)
		ob := make([]float64, ColumnLen)
		for i := 0; i < 10; i++ {
			if err := a.Column(i*11, i*-7, oa); err != nil {
				t.Fatalf("Column: %v", err)
			}
			if err := b.Column(i*11, i*-7, ob); err != nil {
				t.Fatalf("Column: %v", err)
			}
			for y := range oa {
				if oa[y] != ob[y] {
					t.Fatalf("%s column (%d) differs at y=%d: %f vs %f", dim, i, y, oa[y], ob[y])
				}
			}
		}
	}
}

func TestSeedsDiffer(t *testing.T) {
	a, _ := New(gen.Overworld, 1)
	b, _ := New(gen.Overworld, 2)
	oa := make([]float64, ColumnLen)
	ob := make([]float64, ColumnLen)
	_ = a.Column(10, 10, oa)
	_ = b.Column(10, 10, ob)
	for y := range oa {
		if oa[y] != ob[y] {
			return
		}
	}
	t.Error("different seeds should produce different columns")
}

func TestReinitSwitchesDimension(t *testing.T) {
	n, err := New(gen.Overworld, 5)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := n.Init(gen.End, 5); err != nil {
		t.Fatalf("Init: %v", err)
	}
	fresh, _ := New(gen.End, 5)

	o1 := make([]float64, ColumnLen)
	o2 := make([]float64, ColumnLen)
	_ = n.Column(3, 4, o1)
	_ = fresh.Column(3, 4, o2)
	for y := range o1 {
		if o1[y] != o2[y] {
			t.Fatalf("re-initialized noise differs from fresh at y=%d", y)
		}
	}
}

func TestLimitContinuous(t *testing.T) {
	n, err := New(gen.End, 42)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	const eps = 1e-8

	// Finest lattice boundaries on both sides of the origin and past the
	// int32 range of the lattice coordinate.
	for _, k := range []float64{4000, -4000, -4097, -100000, -2e6, 2737648000, -2737648000} {
		x := k / coordScale
		for _, z := range []float64{3.25, -3.25} {
			a := n.limit(x-eps, 1.5, z)
			b := n.limit(x+eps, 1.5, z)
			if math.Abs(a-b) > 1e-4 {
				t.Errorf("limit jumps by %g across x = %g (z = %g)", math.Abs(a-b), x, z)
			}
		}
	}

	// Crossing z = 0 must not switch to a different noise.
	for _, x := range []float64{-7.3, 0.6, 12.9} {
		a := n.limit(x, 2.5, -eps)
		b := n.limit(x, 2.5, eps)
		if math.Abs(a-b) > 1e-4 {
			t.Errorf("limit jumps by %g across z = 0 at x = %g", math.Abs(a-b), x)
		}
	}
}

func TestWrapPeriodic(t *testing.T) {
	span := math.Ldexp(latticePeriod, limitOctaves-1)
	for _, v := range []float64{-1e9, -span, -0.5, 0, 12.75, span + 3} {
		w := wrap(v, limitOctaves)
		if w < 0 || w > span {
			t.Errorf("wrap(%g) = %g, out of [0, %g]", v, w, span)
		}
		if d := (v - w) / span; d != math.Floor(d) {
			t.Errorf("wrap(%g) moved by %g spans, want a whole number", v, d)
		}
	}
}

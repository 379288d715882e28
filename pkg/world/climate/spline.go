package climate

import "github.com/go-gl/mathgl/mgl32"

// Coord selects which component of the climate vector a spline node is keyed
// on. The order matches the vector layout {c, e, pv, w}.
type Coord int

const (
	CoordContinentalness Coord = iota
	CoordErosion
	CoordRidges
	CoordWeirdness
)

// maxKnots bounds the branching of one spline node.
const maxKnots = 11

// Spline is a piecewise cubic Hermite function of one climate coordinate
// whose knot values are themselves splines. A node without knots is a
// constant leaf.
type Spline struct {
	coord Coord
	locs  []float32
	ders  []float32
	vals  []*Spline
	fixed float32
}

// Fixed returns a constant leaf.
func Fixed(v float32) *Spline {
	return &Spline{fixed: v}
}

// NewSpline returns an empty node keyed on coord. Add knots with AddKnot in
// increasing location order.
func NewSpline(coord Coord) *Spline {
	return &Spline{coord: coord}
}

// AddKnot appends a knot at loc with value v and derivative der.
func (s *Spline) AddKnot(loc float32, v *Spline, der float32) *Spline {
	if len(s.locs) >= maxKnots {
		panic("climate: too many spline knots")
	}
	s.locs = append(s.locs, loc)
	s.vals = append(s.vals, v)
	s.ders = append(s.ders, der)
	return s
}

// Leaf reports whether s is a constant.
func (s *Spline) Leaf() bool {
	return len(s.locs) == 0
}

// Eval evaluates the spline for the climate vector np. Outside the first and
// last knot the spline continues linearly along the knot's derivative.
func (s *Spline) Eval(np mgl32.Vec4) float32 {
	if s.Leaf() {
		return s.fixed
	}

	f := np[s.coord]
	i := 0
	for i < len(s.locs) && s.locs[i] < f {
		i++
	}
	if i == 0 || i == len(s.locs) {
		if i > 0 {
			i--
		}
		v := s.vals[i].Eval(np)
		return v + s.ders[i]*(f-s.locs[i])
	}

	g, h := s.locs[i-1], s.locs[i]
	k := (f - g) / (h - g)
	l, m := s.ders[i-1], s.ders[i]
	n := s.vals[i-1].Eval(np)
	o := s.vals[i].Eval(np)
	p := l*(h-g) - (o - n)
	q := -m*(h-g) + (o - n)
	return lerp32(k, n, o) + k*(1.0-k)*lerp32(k, p, q)
}

func lerp32(t, a, b float32) float32 {
	return a + t*(b-a)
}

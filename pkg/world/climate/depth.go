package climate

// The depth spline maps {continentalness, erosion, ridges, weirdness} to a
// terrain offset. It is a continentalness spline over four land splines,
// each an erosion spline over ridge splines.

// offsetAt is the mountain offset for a given ridge value at continentalness
// c, floored at the ocean shelf for very negative ridges.
func offsetAt(ridge, c float32) float32 {
	f0 := 1.0 - (1.0-c)*0.5
	f1 := 0.5 * (1.0 - c)
	f2 := (ridge + 1.17) * 0.46082947
	off := f2*f0 - f1
	if ridge < -0.7 {
		return max(off, -0.2222)
	}
	return max(off, 0)
}

// ridgeSpline shapes mountain peaks along the ridge coordinate. plateau
// lifts the valley floor for the inland land splines.
func ridgeSpline(c float32, plateau bool) *Spline {
	sp := NewSpline(CoordRidges)

	lo := offsetAt(-1.0, c)
	hi := offsetAt(1.0, c)
	// Ridge value at which the offset leaves zero.
	f0 := 1.0 - (1.0-c)*0.5
	f1 := 0.5 * (1.0 - c)
	knee := f1/(0.46082947*f0) - 1.17

	if -0.65 < knee && knee < 1.0 {
		u := offsetAt(-0.65, c)
		p := offsetAt(-0.75, c)
		q := (p - lo) * 4.0
		r := offsetAt(knee, c)
		s := (hi - r) / (1.0 - knee)

		sp.AddKnot(-1.0, Fixed(lo), q)
		sp.AddKnot(-0.75, Fixed(p), 0)
		sp.AddKnot(-0.65, Fixed(u), 0)
		sp.AddKnot(knee-0.01, Fixed(r), 0)
		sp.AddKnot(knee, Fixed(r), s)
		sp.AddKnot(1.0, Fixed(hi), s)
		return sp
	}

	u := (hi - lo) * 0.5
	if plateau {
		sp.AddKnot(-1.0, Fixed(max(lo, 0.2)), 0)
		sp.AddKnot(0.0, Fixed(lerp32(0.5, lo, hi)), u)
	} else {
		sp.AddKnot(-1.0, Fixed(lo), u)
	}
	sp.AddKnot(1.0, Fixed(hi), u)
	return sp
}

// flatSpline is a ridge spline through five fixed heights with derivatives
// limited by minSlope.
func flatSpline(f, g, h, i, j, minSlope float32) *Spline {
	sp := NewSpline(CoordRidges)

	l := max(0.5*(g-f), minSlope)
	m := 5.0 * (h - g)

	sp.AddKnot(-1.0, Fixed(f), l)
	sp.AddKnot(-0.4, Fixed(g), min(l, m))
	sp.AddKnot(0.0, Fixed(h), m)
	sp.AddKnot(0.4, Fixed(i), 2.0*(i-h))
	sp.AddKnot(1.0, Fixed(j), 0.7*(j-i))
	return sp
}

// landSpline is the erosion spline for one continentalness band. swamp adds
// the low-lying shelf used at high erosion inland.
func landSpline(f, g, h, i, j, k float32, swamp bool) *Spline {
	sp1 := ridgeSpline(lerp32(i, 0.6, 1.5), swamp)
	sp2 := ridgeSpline(lerp32(i, 0.6, 1.0), swamp)
	sp3 := ridgeSpline(i, swamp)
	ih := 0.5 * i
	sp4 := flatSpline(f-0.15, ih, ih, ih, i*0.6, 0.5)
	sp5 := flatSpline(f, j*i, g*i, ih, i*0.6, 0.5)
	sp6 := flatSpline(f, j, j, g, h, 0.5)
	sp7 := flatSpline(f, j, j, g, h, 0.5)

	sp8 := NewSpline(CoordRidges)
	sp8.AddKnot(-1.0, Fixed(f), 0)
	sp8.AddKnot(-0.4, sp6, 0)
	sp8.AddKnot(0.0, Fixed(h+0.07), 0)

	sp9 := flatSpline(-0.02, k, k, g, h, 0)

	sp := NewSpline(CoordErosion)
	sp.AddKnot(-0.85, sp1, 0)
	sp.AddKnot(-0.7, sp2, 0)
	sp.AddKnot(-0.4, sp3, 0)
	sp.AddKnot(-0.35, sp4, 0)
	sp.AddKnot(-0.1, sp5, 0)
	sp.AddKnot(0.2, sp6, 0)
	if swamp {
		sp.AddKnot(0.4, sp7, 0)
		sp.AddKnot(0.45, sp8, 0)
		sp.AddKnot(0.55, sp8, 0)
		sp.AddKnot(0.58, sp7, 0)
	}
	sp.AddKnot(0.7, sp9, 0)
	return sp
}

// NewDepthSpline builds the terrain offset spline.
func NewDepthSpline() *Spline {
	coast := landSpline(-0.15, 0.00, 0.0, 0.1, 0.00, -0.03, false)
	near := landSpline(-0.10, 0.03, 0.1, 0.1, 0.01, -0.03, false)
	mid := landSpline(-0.10, 0.03, 0.1, 0.7, 0.01, -0.03, true)
	far := landSpline(-0.05, 0.03, 0.1, 1.0, 0.01, 0.01, true)

	sp := NewSpline(CoordContinentalness)
	sp.AddKnot(-1.10, Fixed(0.044), 0)
	sp.AddKnot(-1.02, Fixed(-0.2222), 0)
	sp.AddKnot(-0.51, Fixed(-0.2222), 0)
	sp.AddKnot(-0.44, Fixed(-0.12), 0)
	sp.AddKnot(-0.18, Fixed(-0.12), 0)
	sp.AddKnot(-0.16, coast, 0)
	sp.AddKnot(-0.15, coast, 0)
	sp.AddKnot(-0.10, near, 0)
	sp.AddKnot(0.25, mid, 0)
	sp.AddKnot(1.00, far, 0)
	return sp
}

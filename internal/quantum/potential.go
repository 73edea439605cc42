package quantum

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// gaussianDivisor rescales the gaussian bump to a height comparable with the
// particle energy. It only gives that height for sigma = 0.05.
const gaussianDivisor = 8.0

// Profile is a potential sampled at every grid point.
type Profile []float64

// Scale returns a copy of the profile multiplied by f.
func (p Profile) Scale(f float64) Profile {
	out := make(Profile, len(p))
	copy(out, p)
	floats.Scale(f, out)
	return out
}

// Max returns the largest value of the profile, or 0 when empty.
func (p Profile) Max() float64 {
	if len(p) == 0 {
		return 0
	}
	return floats.Max(p)
}

// window returns the half-open index range [mid-n, mid+n) clamped to the grid.
func (g Grid) window(n int) (lo, hi int) {
	mid := g.N / 2
	lo, hi = mid-n, mid+n
	if lo < 0 {
		lo = 0
	}
	if hi > g.N {
		hi = g.N
	}
	if lo > hi {
		lo = hi
	}
	return lo, hi
}

// StepPotential is 0 up to and including index N/2 and v0 after it.
func StepPotential(g Grid, v0 float64) Profile {
	v := make(Profile, g.N)
	mid := g.N / 2
	for i := mid + 1; i < g.N; i++ {
		v[i] = v0
	}
	return v
}

// BarrierPotential is v0 on a window around the midpoint and 0 elsewhere.
// The half width in points is floor(width / (dx/2)).
func BarrierPotential(g Grid, v0, width float64) Profile {
	v := make(Profile, g.N)
	lo, hi := g.window(int(width / (g.Dx / 2)))
	for i := lo; i < hi; i++ {
		v[i] = v0
	}
	return v
}

// WellPotential is 0 on a window around the midpoint and v0 elsewhere.
// The half width in points is floor(width / dx / 2); note this is not the
// barrier formula.
func WellPotential(g Grid, v0, width float64) Profile {
	v := make(Profile, g.N)
	lo, hi := g.window(int(width / g.Dx / 2))
	for i := 0; i < lo; i++ {
		v[i] = v0
	}
	for i := hi; i < g.N; i++ {
		v[i] = v0
	}
	return v
}

// GaussianPotential is a gaussian bump of standard deviation sigma centred at x0,
// cut to zero beyond 6·sigma on either side of the grid midpoint.
func GaussianPotential(g Grid, x0, sigma float64) Profile {
	v := make(Profile, g.N)
	a := 1.0 / (math.Sqrt(2*math.Pi) * sigma)
	for i := range v {
		d := float64(i)*g.Dx - x0
		v[i] = a * math.Exp(-d*d/(2*sigma*sigma)) / gaussianDivisor
	}

	lo, hi := g.window(int(6 * sigma / g.Dx))
	for i := 0; i < lo; i++ {
		v[i] = 0
	}
	for i := hi; i < g.N; i++ {
		v[i] = 0
	}
	return v
}

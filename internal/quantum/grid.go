package quantum

import (
	"math"
	"math/cmplx"
)

// Grid holds the spatial and temporal discretization of the domain [0, L].
// Dt is tied to Dx (Dt = 2·Dx²), which makes Alpha = 2·Dx²/Dt exactly 1.
type Grid struct {
	N     int
	L     float64
	Dx    float64
	Dt    float64
	Alpha float64
}

// NewGrid derives the discretization constants for n points over length l.
func NewGrid(n int, l float64) (Grid, error) {
	if n < 2 {
		return Grid{}, &ParameterError{Name: "N", Value: float64(n), Reason: "need at least 2 points"}
	}
	if !(l > 0) || math.IsInf(l, 0) {
		return Grid{}, &ParameterError{Name: "L", Value: l, Reason: "length must be positive and finite"}
	}
	dx := l / float64(n-1)
	dt := 2 * dx * dx
	if !(dt > 0) || math.IsInf(dt, 0) || 2*dx*dx/dt != 1 {
		return Grid{}, &ParameterError{Name: "L", Value: l, Reason: "time step 2·dx² is not representable"}
	}
	return Grid{
		N:     n,
		L:     l,
		Dx:    dx,
		Dt:    dt,
		Alpha: 1,
	}, nil
}

// maxStepRatio bounds t/dt so that the running sum elapsed += dt still
// grows at every step.
const maxStepRatio = 1 << 52

// CheckTime rejects target times the stepping loop cannot reach: negative,
// NaN, infinite, or so large relative to dt that adding dt no longer changes
// the elapsed time.
func (g Grid) CheckTime(t float64) error {
	if math.IsNaN(t) || t < 0 {
		return &ParameterError{Name: "t", Value: t, Reason: "target time must be non-negative"}
	}
	if math.IsInf(t, 0) || t/g.Dt > maxStepRatio {
		return &ParameterError{Name: "t", Value: t, Reason: "target time must be finite and within 2^52 steps"}
	}
	return nil
}

// Coordinates returns x_i = i·dx, with the last point pinned to L.
func (g Grid) Coordinates() []float64 {
	x := make([]float64, g.N)
	for i := 1; i < g.N-1; i++ {
		x[i] = float64(i) * g.Dx
	}
	x[g.N-1] = g.L
	return x
}

// StepsFor returns how many dt steps the propagation loop takes to reach t.
// The count is produced by the same accumulation the loop uses, so it matches
// ceil(t/dt) up to floating rounding of the running sum: an exact multiple
// k·dt can take k+1 steps. Targets CheckTime rejects give 0.
func (g Grid) StepsFor(t float64) int {
	if g.CheckTime(t) != nil {
		return 0
	}
	steps := 0
	for elapsed := 0.0; elapsed < t; elapsed += g.Dt {
		steps++
	}
	return steps
}

// ElapsedFor returns the time actually reached after StepsFor(t) steps.
// Targets CheckTime rejects give 0.
func (g Grid) ElapsedFor(t float64) float64 {
	if g.CheckTime(t) != nil {
		return 0
	}
	elapsed := 0.0
	for elapsed < t {
		elapsed += g.Dt
	}
	return elapsed
}

// Psi0 builds the initial Gaussian wave packet centred at x0 with wavenumber k0
// and width sigma0. Both endpoints are zero; the packet is not normalized.
func (g Grid) Psi0(x0, k0, sigma0 float64) ([]float64, WaveFunction) {
	x := g.Coordinates()
	psi := make(WaveFunction, g.N)
	for i := 1; i < g.N-1; i++ {
		d := x[i] - x0
		psi[i] = cmplx.Exp(complex(0, k0*x[i])) * complex(math.Exp(-d*d/(2*sigma0*sigma0)), 0)
	}
	return x, psi
}

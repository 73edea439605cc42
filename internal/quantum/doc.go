// Package quantum provides the Crank-Nicolson engine for the one-dimensional
// time-dependent Schrödinger equation on a uniform grid.
//
// The package is organised leaves first:
//
//   - [Grid]: discretization constants derived from the point count and length
//   - [Profile]: a discretized potential (step, barrier, well, gaussian bump)
//   - [WaveFunction]: complex amplitudes with Dirichlet endpoints
//   - [Propagator]: tridiagonal solver advancing a wave function in fixed dt steps
//
// # Example
//
//	g, _ := quantum.NewGrid(2000, 1.0)
//	p := quantum.NewPropagator(g, quantum.WithEnergyScale(e))
//	_ = p.Initialize(quantum.BarrierPotential(g, 1.0, 0.02))
//	x, psi0 := g.Psi0(0.3, k0, 0.04)
//	psi, _ := p.Update(psi0, 0.3*period)
//
// # Thread Safety
//
// A Propagator owns a scratch buffer that every step overwrites, so a single
// instance must not be updated concurrently. Use [Propagator.Clone] to give each
// goroutine its own scratch buffer over the same read-only coefficients.
package quantum

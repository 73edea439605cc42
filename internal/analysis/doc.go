// Package analysis provides spectral tools for wave functions.
//
//   - [MomentumSpectrum]: |phi(k)|² of a sampled wave function
//   - [DominantWavenumber]: wavenumber carrying the most weight
//   - [MeanWavenumber]: <k> weighted by the momentum density
//
// # Momentum of a packet
//
// A Gaussian packet launched with wavenumber k0 keeps its momentum density
// centred on k0 while it travels freely:
//
//	k := analysis.DominantWavenumber(psi, grid.Dx)
//	// k ≈ k0 up to the resolution 2π/(N·dx)
package analysis

package quantum

import (
	"math/cmplx"

	"gonum.org/v1/gonum/floats"
)

// WaveFunction holds complex amplitudes at every grid point. Elements 0 and
// N-1 are zero.
type WaveFunction []complex128

func (w WaveFunction) Clone() WaveFunction {
	c := make(WaveFunction, len(w))
	copy(c, w)
	return c
}

// Density returns |psi|² at every point.
func (w WaveFunction) Density() []float64 {
	d := make([]float64, len(w))
	for i, v := range w {
		d[i] = real(v)*real(v) + imag(v)*imag(v)
	}
	return d
}

// Norm returns the discrete total probability Σ|psi|².
func (w WaveFunction) Norm() float64 {
	return floats.Sum(w.Density())
}

func (w WaveFunction) Real() []float64 {
	r := make([]float64, len(w))
	for i, v := range w {
		r[i] = real(v)
	}
	return r
}

func (w WaveFunction) Imag() []float64 {
	im := make([]float64, len(w))
	for i, v := range w {
		im[i] = imag(v)
	}
	return im
}

// IsValid reports whether every amplitude is finite.
func (w WaveFunction) IsValid() bool {
	for _, v := range w {
		if cmplx.IsNaN(v) || cmplx.IsInf(v) {
			return false
		}
	}
	return true
}

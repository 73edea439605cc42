package analysis

import (
	"math"
	"math/cmplx"
	"sort"

	"github.com/san-kum/qwave/internal/quantum"
	"gonum.org/v1/gonum/dsp/fourier"
)

// Spectrum is a momentum density sampled at ascending wavenumbers.
type Spectrum struct {
	K       []float64
	Density []float64
}

// MomentumSpectrum returns |phi(k)|² for psi sampled with spacing dx. The
// wavenumbers are k = 2π·f/dx for the discrete frequencies f, sorted in
// ascending order.
func MomentumSpectrum(psi quantum.WaveFunction, dx float64) Spectrum {
	n := len(psi)
	if n == 0 || dx <= 0 {
		return Spectrum{}
	}

	fft := fourier.NewCmplxFFT(n)
	coeff := fft.Coefficients(nil, psi)

	idx := make([]int, n)
	k := make([]float64, n)
	for i := range coeff {
		idx[i] = i
		k[i] = 2 * math.Pi * frequency(i, n) / dx
	}
	sort.Slice(idx, func(a, b int) bool { return k[idx[a]] < k[idx[b]] })

	s := Spectrum{K: make([]float64, n), Density: make([]float64, n)}
	for j, i := range idx {
		s.K[j] = k[i]
		a := cmplx.Abs(coeff[i])
		s.Density[j] = a * a
	}
	return s
}

// frequency is the signed frequency of coefficient i in cycles per sample.
func frequency(i, n int) float64 {
	if i <= (n-1)/2 {
		return float64(i) / float64(n)
	}
	return float64(i-n) / float64(n)
}

// DominantWavenumber is the wavenumber of the largest spectral peak.
func DominantWavenumber(psi quantum.WaveFunction, dx float64) float64 {
	s := MomentumSpectrum(psi, dx)
	best, at := -1.0, 0.0
	for i, d := range s.Density {
		if d > best {
			best, at = d, s.K[i]
		}
	}
	return at
}

// MeanWavenumber is the expectation of k. It is 0 for a zero wave function.
func MeanWavenumber(psi quantum.WaveFunction, dx float64) float64 {
	s := MomentumSpectrum(psi, dx)
	var sum, total float64
	for i, d := range s.Density {
		sum += s.K[i] * d
		total += d
	}
	if total == 0 {
		return 0
	}
	return sum / total
}

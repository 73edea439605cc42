package metrics

import (
	"github.com/san-kum/qwave/internal/analysis"
	"github.com/san-kum/qwave/internal/sim"
)

// MeanWavenumber reports <k> of the last observed frame. A reflected packet
// drives it negative.
type MeanWavenumber struct {
	name  string
	dx    float64
	value float64
}

func NewMeanWavenumber(dx float64) *MeanWavenumber {
	return &MeanWavenumber{name: "mean_k", dx: dx}
}

func (m *MeanWavenumber) Name() string { return m.name }

func (m *MeanWavenumber) Observe(f sim.Frame) {
	m.value = analysis.MeanWavenumber(f.Psi, m.dx)
}

func (m *MeanWavenumber) Value() float64 { return m.value }

func (m *MeanWavenumber) Reset() { m.value = 0 }

package metrics

import (
	"github.com/san-kum/qwave/internal/sim"
	"gonum.org/v1/gonum/floats"
)

// MeanPosition reports <x> of the last observed frame.
type MeanPosition struct {
	name  string
	x     []float64
	value float64
}

func NewMeanPosition(x []float64) *MeanPosition {
	return &MeanPosition{name: "mean_x", x: x}
}

func (m *MeanPosition) Name() string { return m.name }

func (m *MeanPosition) Observe(f sim.Frame) {
	d := f.Psi.Density()
	total := floats.Sum(d)
	if total == 0 || len(d) != len(m.x) {
		return
	}
	m.value = floats.Dot(m.x, d) / total
}

func (m *MeanPosition) Value() float64 { return m.value }

func (m *MeanPosition) Reset() { m.value = 0 }

// Transmission reports the fraction of probability beyond a cut point in the
// last observed frame. With the cut at the grid midpoint this is the
// transmission through a potential centred there.
type Transmission struct {
	name  string
	cut   int
	value float64
}

func NewTransmission(cut int) *Transmission {
	return &Transmission{name: "transmission", cut: cut}
}

func (t *Transmission) Name() string { return t.name }

func (t *Transmission) Observe(f sim.Frame) {
	d := f.Psi.Density()
	total := floats.Sum(d)
	if total == 0 || t.cut >= len(d) {
		return
	}
	t.value = floats.Sum(d[t.cut+1:]) / total
}

func (t *Transmission) Value() float64 { return t.value }

func (t *Transmission) Reset() { t.value = 0 }

// PeakDensity reports the largest |psi|² seen over all frames.
type PeakDensity struct {
	name string
	max  float64
}

func NewPeakDensity() *PeakDensity {
	return &PeakDensity{name: "peak_density"}
}

func (p *PeakDensity) Name() string { return p.name }

func (p *PeakDensity) Observe(f sim.Frame) {
	d := f.Psi.Density()
	if len(d) == 0 {
		return
	}
	if m := floats.Max(d); m > p.max {
		p.max = m
	}
}

func (p *PeakDensity) Value() float64 { return p.max }

func (p *PeakDensity) Reset() { p.max = 0 }

// Defaults returns the metrics recorded for every run on a grid with
// coordinates x.
func Defaults(x []float64) []sim.Metric {
	var dx float64
	if len(x) > 1 {
		dx = x[1] - x[0]
	}
	return []sim.Metric{
		NewNorm(),
		NewNormDrift(),
		NewMeanPosition(x),
		NewTransmission(len(x) / 2),
		NewPeakDensity(),
		NewMeanWavenumber(dx),
	}
}

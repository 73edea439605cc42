package metrics

import (
	"math"

	"github.com/san-kum/qwave/internal/sim"
)

// Norm reports Σ|psi|² of the last observed frame.
type Norm struct {
	name  string
	value float64
}

func NewNorm() *Norm {
	return &Norm{name: "norm"}
}

func (n *Norm) Name() string { return n.name }

func (n *Norm) Observe(f sim.Frame) {
	n.value = f.Psi.Norm()
}

func (n *Norm) Value() float64 { return n.value }

func (n *Norm) Reset() { n.value = 0 }

// NormDrift tracks the largest relative departure of the norm from the first
// observed frame.
type NormDrift struct {
	name     string
	initial  float64
	maxDrift float64
	samples  int
}

func NewNormDrift() *NormDrift {
	return &NormDrift{name: "norm_drift"}
}

func (d *NormDrift) Name() string { return d.name }

func (d *NormDrift) Observe(f sim.Frame) {
	norm := f.Psi.Norm()
	if d.samples == 0 {
		d.initial = norm
	}
	d.samples++

	if d.initial != 0 {
		drift := math.Abs(norm-d.initial) / d.initial
		d.maxDrift = math.Max(d.maxDrift, drift)
	}
}

func (d *NormDrift) Value() float64 { return d.maxDrift }

func (d *NormDrift) Reset() {
	d.initial = 0
	d.maxDrift = 0
	d.samples = 0
}

package metrics

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/san-kum/qwave/internal/quantum"
	"github.com/san-kum/qwave/internal/sim"
)

func frame(values ...complex128) sim.Frame {
	return sim.Frame{Psi: quantum.WaveFunction(values)}
}

func TestNorm(t *testing.T) {
	n := NewNorm()
	n.Observe(frame(0, 1, 1i, 0))
	if n.Value() != 2 {
		t.Errorf("norm = %v, want 2", n.Value())
	}
	n.Reset()
	if n.Value() != 0 {
		t.Error("reset should clear the value")
	}
}

func TestNormDrift(t *testing.T) {
	d := NewNormDrift()
	d.Observe(frame(0, 2, 0))    // 4
	d.Observe(frame(0, 2.1, 0))  // 4.41
	d.Observe(frame(0, 1.95, 0)) // 3.8025

	want := 0.41 / 4
	if math.Abs(d.Value()-want) > 1e-12 {
		t.Errorf("drift = %v, want %v", d.Value(), want)
	}
}

func TestMeanPosition(t *testing.T) {
	m := NewMeanPosition([]float64{0, 1, 2, 3})
	m.Observe(frame(0, 1, 1, 0))
	if m.Value() != 1.5 {
		t.Errorf("mean = %v, want 1.5", m.Value())
	}

	m.Observe(frame(0, 0, 0, 0))
	if m.Value() != 1.5 {
		t.Error("an empty frame should keep the previous value")
	}
}

func TestTransmission(t *testing.T) {
	tr := NewTransmission(2)
	tr.Observe(frame(0, 1, 1, 1, 1i))
	if math.Abs(tr.Value()-0.5) > 1e-12 {
		t.Errorf("transmission = %v, want 0.5", tr.Value())
	}
}

func TestPeakDensity(t *testing.T) {
	p := NewPeakDensity()
	p.Observe(frame(0, 2, 0))
	p.Observe(frame(0, 1, 0))
	if p.Value() != 4 {
		t.Errorf("peak = %v, want 4", p.Value())
	}
}

func TestDefaults(t *testing.T) {
	ms := Defaults(make([]float64, 10))
	names := map[string]bool{}
	for _, m := range ms {
		names[m.Name()] = true
	}
	for _, want := range []string{"norm", "norm_drift", "mean_x", "transmission", "peak_density", "mean_k"} {
		if !names[want] {
			t.Errorf("missing metric %s", want)
		}
	}
}

func TestMeanWavenumber(t *testing.T) {
	psi := make([]complex128, 8)
	for j := range psi {
		psi[j] = cmplx.Exp(complex(0, -2*math.Pi*float64(j)/8))
	}
	m := NewMeanWavenumber(1)
	m.Observe(frame(psi...))
	if math.Abs(m.Value()+math.Pi/4) > 1e-9 {
		t.Errorf("mean k = %v, want %v", m.Value(), -math.Pi/4)
	}
}

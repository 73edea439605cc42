package sim

import "github.com/san-kum/qwave/internal/quantum"

// Frame is the wave function at one requested time. Elapsed is the time the
// propagator actually reached (the first multiple of dt not below Target).
type Frame struct {
	Index   int
	Target  float64
	Elapsed float64
	Steps   int
	Psi     quantum.WaveFunction
}

type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}

type Observer interface {
	OnFrame(f Frame)
}

type Config struct {
	Times       []float64
	Workers     int
	Incremental bool
}

type Result struct {
	Frames  []Frame
	Metrics map[string]float64
}

// FrameTimes returns n evenly spaced times i·period/n for i in [0, n).
func FrameTimes(n int, period float64) []float64 {
	times := make([]float64, n)
	for i := range times {
		times[i] = float64(i) * period / float64(n)
	}
	return times
}

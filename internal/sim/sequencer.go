package sim

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"github.com/rs/zerolog"
	"github.com/san-kum/qwave/internal/quantum"
	"golang.org/x/sync/errgroup"
)

// Sequencer computes wave-function frames at a list of times from one
// initial state.
type Sequencer struct {
	prop      *quantum.Propagator
	log       zerolog.Logger
	metrics   []Metric
	observers []Observer
}

func New(prop *quantum.Propagator, log zerolog.Logger) *Sequencer {
	return &Sequencer{
		prop:      prop,
		log:       log,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Sequencer) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Sequencer) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run computes one frame per entry of cfg.Times. With cfg.Incremental the
// frames are produced by stepping on from the previous frame; otherwise every
// frame is propagated from psi0 on its own, spread over cfg.Workers goroutines.
// Both paths perform the same steps and give identical values.
func (s *Sequencer) Run(ctx context.Context, psi0 quantum.WaveFunction, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	var (
		frames []Frame
		err    error
	)
	if cfg.Incremental {
		frames, err = s.incremental(ctx, psi0, cfg.Times)
	} else {
		frames, err = s.parallel(ctx, psi0, cfg.Times, cfg.Workers)
	}
	if err != nil {
		return nil, err
	}

	result := &Result{
		Frames:  frames,
		Metrics: make(map[string]float64),
	}
	for _, m := range s.metrics {
		m.Reset()
	}
	for _, f := range frames {
		for _, m := range s.metrics {
			m.Observe(f)
		}
		for _, obs := range s.observers {
			obs.OnFrame(f)
		}
	}
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	s.log.Debug().
		Int("frames", len(frames)).
		Bool("incremental", cfg.Incremental).
		Msg("frame sequence complete")
	return result, nil
}

func (s *Sequencer) validateConfig(cfg Config) error {
	if !s.prop.Ready() {
		return quantum.ErrNotInitialized
	}
	if len(cfg.Times) == 0 {
		return fmt.Errorf("%w: no frame times", quantum.ErrInvalidParameter)
	}
	if cfg.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", quantum.ErrInvalidParameter, cfg.Workers)
	}
	g := s.prop.Grid()
	for _, t := range cfg.Times {
		if err := g.CheckTime(t); err != nil {
			return err
		}
	}
	if cfg.Incremental && !sort.Float64sAreSorted(cfg.Times) {
		return fmt.Errorf("%w: incremental frame times must be non-decreasing", quantum.ErrInvalidParameter)
	}
	return nil
}

func (s *Sequencer) incremental(ctx context.Context, psi0 quantum.WaveFunction, times []float64) ([]Frame, error) {
	g := s.prop.Grid()
	frames := make([]Frame, len(times))
	psi := psi0.Clone()
	done := 0

	for i, t := range times {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		steps := g.StepsFor(t)
		if err := s.prop.Advance(psi, steps-done); err != nil {
			return nil, err
		}
		done = steps
		frames[i] = Frame{
			Index:   i,
			Target:  t,
			Elapsed: g.ElapsedFor(t),
			Steps:   steps,
			Psi:     psi.Clone(),
		}
	}
	return frames, nil
}

func (s *Sequencer) parallel(ctx context.Context, psi0 quantum.WaveFunction, times []float64, workers int) ([]Frame, error) {
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(times) {
		workers = len(times)
	}

	frames := make([]Frame, len(times))
	eg, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		prop := s.prop.Clone()
		eg.Go(func() error {
			for i := w; i < len(times); i += workers {
				if err := ctx.Err(); err != nil {
					return err
				}
				ev, err := prop.Evolve(psi0, times[i])
				if err != nil {
					return err
				}
				frames[i] = Frame{
					Index:   i,
					Target:  times[i],
					Elapsed: ev.Elapsed,
					Steps:   ev.Steps,
					Psi:     ev.Psi,
				}
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return frames, nil
}

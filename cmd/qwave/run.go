package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/qwave/internal/analysis"
	"github.com/san-kum/qwave/internal/config"
	"github.com/san-kum/qwave/internal/metrics"
	"github.com/san-kum/qwave/internal/quantum"
	"github.com/san-kum/qwave/internal/render"
	"github.com/san-kum/qwave/internal/sim"
	"github.com/san-kum/qwave/internal/storage"
	"github.com/san-kum/qwave/internal/viz"
	"github.com/spf13/cobra"
)

// problem is everything a run needs once the configuration is resolved.
type problem struct {
	cfg       *config.RunConfig
	particle  config.Particle
	sim       config.Simulation
	grid      quantum.Grid
	x         []float64
	potential quantum.Profile
	prop      *quantum.Propagator
	psi0      quantum.WaveFunction
}

// resolveConfig layers the run configuration: defaults, then --config, then
// the parameter file, then --preset and --potential, then explicit flags.
func resolveConfig(cmd *cobra.Command) (*config.RunConfig, error) {
	flags := cmd.Flags()
	src := config.Sources{
		ConfigFile:     configFile,
		ParamsFile:     paramsFile,
		ParamsRequired: flags.Changed("params"),
		Potential:      potential,
		Preset:         preset,
	}

	// Without a config file every flag default applies; with one, only the
	// flags given on the command line do.
	set := func(name string, apply func(*config.RunConfig)) {
		f := flags.Lookup(name)
		if f != nil && (f.Changed || configFile == "") {
			src.Overrides = append(src.Overrides, apply)
		}
	}
	set("points", func(c *config.RunConfig) { c.Points = points })
	set("time", func(c *config.RunConfig) { c.Time = simTime })
	set("x0", func(c *config.RunConfig) { c.X0 = x0 })
	set("frames", func(c *config.RunConfig) { c.Frames = frames })
	set("workers", func(c *config.RunConfig) { c.Workers = workers })
	set("incremental", func(c *config.RunConfig) { c.Incremental = incremental })
	set("output", func(c *config.RunConfig) { c.Output = output })
	set("snapshot-format", func(c *config.RunConfig) { c.SnapshotFormat = snapFormat })
	set("movie-format", func(c *config.RunConfig) { c.MovieFormat = movieFormat })
	switch cmd.Name() {
	case "snapshot":
		set("format", func(c *config.RunConfig) { c.SnapshotFormat = snapFormat })
	case "movie":
		set("format", func(c *config.RunConfig) { c.MovieFormat = movieFormat })
	}

	return config.Resolve(src)
}

// setup builds the grid, the potential and an initialized propagator.
func setup(cfg *config.RunConfig) (*problem, error) {
	particle := config.DefaultParticle()
	simulation := config.DefaultSimulation(particle)

	g, err := quantum.NewGrid(cfg.Points, simulation.L)
	if err != nil {
		return nil, err
	}
	v, err := cfg.Params.Build(g)
	if err != nil {
		return nil, err
	}

	prop := quantum.NewPropagator(g, quantum.WithEnergyScale(particle.E))
	if err := prop.Initialize(v); err != nil {
		return nil, err
	}
	x, psi0 := g.Psi0(cfg.X0, particle.K0, particle.Sigma0)

	log.Debug().
		Int("points", g.N).
		Float64("dx", g.Dx).
		Float64("dt", g.Dt).
		Str("potential", cfg.Params.Kind()).
		Msg("propagator initialized")

	return &problem{
		cfg:       cfg,
		particle:  particle,
		sim:       simulation,
		grid:      g,
		x:         x,
		potential: v,
		prop:      prop,
		psi0:      psi0,
	}, nil
}

func (p *problem) metadata() storage.RunMetadata {
	return storage.RunMetadata{
		Potential: p.cfg.Params.Kind(),
		Points:    p.grid.N,
		Length:    p.grid.L,
		Dt:        p.grid.Dt,
		Period:    p.sim.T,
		V0:        p.cfg.Params.V0,
		Width:     p.cfg.Params.Width,
		X0:        p.cfg.Params.X0,
		Sigma:     p.cfg.Params.Sigma,
		Particle:  p.cfg.X0,
	}
}

func runDefault(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if strings.ToLower(cfg.Output) == config.OutputMovie {
		return movie(cfg)
	}
	return snapshot(cfg)
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	return snapshot(cfg)
}

func runMovie(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	return movie(cfg)
}

func snapshot(cfg *config.RunConfig) error {
	p, err := setup(cfg)
	if err != nil {
		return err
	}

	start := time.Now()
	ev, err := p.prop.Evolve(p.psi0, cfg.Time*p.sim.T)
	if err != nil {
		return err
	}
	log.Info().
		Int("steps", ev.Steps).
		Float64("elapsed", ev.Elapsed).
		Dur("took", time.Since(start)).
		Msg("snapshot computed")

	path := filepath.Join(outDir, render.SnapshotName(cfg.Params.Kind(), cfg.SnapshotFormat))
	err = render.Snapshot(render.SnapshotData{
		X:         p.x,
		Initial:   p.psi0.Density(),
		Potential: p.potential,
		Evolved:   ev.Psi.Density(),
		Title:     fmt.Sprintf("%s potential, t = %.3f T", cfg.Params.Kind(), ev.Elapsed/p.sim.T),
	}, path)
	if err != nil {
		return err
	}
	fmt.Printf("snapshot: %s\n", path)
	fmt.Printf("steps: %d\n", ev.Steps)
	fmt.Printf("norm: %.6f -> %.6f\n", p.psi0.Norm()*p.grid.Dx, ev.Psi.Norm()*p.grid.Dx)
	fmt.Printf("dominant k: %.2f (k0 = %.2f)\n", analysis.DominantWavenumber(ev.Psi, p.grid.Dx), p.particle.K0)

	if !save {
		return nil
	}
	frames := []sim.Frame{
		{Index: 0, Psi: p.psi0},
		{Index: 1, Target: cfg.Time * p.sim.T, Elapsed: ev.Elapsed, Steps: ev.Steps, Psi: ev.Psi},
	}
	meta := p.metadata()
	meta.Metrics = observe(metrics.Defaults(p.x), frames)
	return storeRun(meta, p.x, frames)
}

func movie(cfg *config.RunConfig) error {
	p, err := setup(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	seq := sim.New(p.prop, log)
	for _, m := range metrics.Defaults(p.x) {
		seq.AddMetric(m)
	}

	fmt.Printf("computing %d frames (%s potential)...\n", cfg.Frames, cfg.Params.Kind())
	start := time.Now()
	res, err := seq.Run(ctx, p.psi0, sim.Config{
		Times:       sim.FrameTimes(cfg.Frames, p.sim.T),
		Workers:     cfg.Workers,
		Incremental: cfg.Incremental,
	})
	if err != nil {
		return err
	}
	log.Info().
		Int("frames", len(res.Frames)).
		Dur("took", time.Since(start)).
		Msg("frames computed")

	format := strings.ToLower(cfg.MovieFormat)
	path := filepath.Join(outDir, fmt.Sprintf("%s_potential.%s", cfg.Params.Kind(), format))
	if format == render.MoviePNG {
		path = filepath.Join(outDir, fmt.Sprintf("%s_potential_frames", cfg.Params.Kind()))
	}

	opts := render.DefaultMovieOptions()
	opts.FPS = fps
	opts.Log = log
	period := p.sim.T
	err = render.Movie(render.MovieData{
		X:         p.x,
		Potential: p.potential,
		Frames:    res.Frames,
		Title: func(f sim.Frame) string {
			return fmt.Sprintf("t = %.3f T", f.Elapsed/period)
		},
	}, path, format, opts)
	if err != nil {
		return err
	}
	fmt.Printf("movie: %s\n", path)

	meta := p.metadata()
	meta.Metrics = res.Metrics
	return storeRun(meta, p.x, res.Frames)
}

func observe(ms []sim.Metric, frames []sim.Frame) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		for _, f := range frames {
			m.Observe(f)
		}
		out[m.Name()] = m.Value()
	}
	return out
}

func storeRun(meta storage.RunMetadata, x []float64, frames []sim.Frame) error {
	st := storage.New(dataDir, log)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(meta, x, frames)
	if err != nil {
		return err
	}

	fmt.Printf("run id: %s\n", runID)
	fmt.Println("\nmetrics:")
	for name, val := range meta.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	p, err := setup(cfg)
	if err != nil {
		return err
	}

	m := viz.NewModel(p.prop, p.psi0, p.potential, p.sim.T, stepsTick, fps, cfg.Params.Kind())
	prog := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := prog.Run(); err != nil {
		return err
	}
	return nil
}

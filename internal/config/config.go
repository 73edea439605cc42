package config

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/san-kum/qwave/internal/quantum"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPoints         = 2000
	MinPoints             = 2000
	DefaultTime           = 0.3
	DefaultX0             = 0.3
	DefaultOutput         = OutputSnapshot
	DefaultSnapshotFormat = "pdf"
	DefaultMovieFormat    = "gif"
	DefaultFrames         = 100
	DefaultParamsFile     = "potential_parameters.txt"

	OutputSnapshot = "snapshot"
	OutputMovie    = "movie"
)

// Potential kinds accepted in a parameter record.
const (
	KindStep     = "step"
	KindBarrier  = "barrier"
	KindWell     = "well"
	KindGaussian = "gaussian"
)

// ErrUnknownPotential is returned when a kind string does not name a generator.
var ErrUnknownPotential = fmt.Errorf("%w: unknown potential kind", quantum.ErrInvalidParameter)

// Particle holds the kinetic constants of the simulated particle in units
// where hbar = 1 and m = 1/2.
type Particle struct {
	K0     float64
	Sigma0 float64
	V      float64
	E      float64
}

// DefaultParticle is a packet of wavelength 0.02 and width 0.04.
func DefaultParticle() Particle {
	k0 := 2 * math.Pi / 0.02
	return Particle{
		K0:     k0,
		Sigma0: 0.04,
		V:      2 * k0,
		E:      k0 * k0,
	}
}

// Simulation holds the domain length and the reference period T = 1/v.
type Simulation struct {
	L float64
	T float64
}

func DefaultSimulation(p Particle) Simulation {
	return Simulation{L: 1.0, T: 1.0 / p.V}
}

// Parameters is the five-field potential record.
type Parameters struct {
	Potential string  `yaml:"potential"`
	V0        float64 `yaml:"v0"`
	Width     float64 `yaml:"width"`
	X0        float64 `yaml:"x0"`
	Sigma     float64 `yaml:"sigma"`
}

func DefaultParameters() Parameters {
	return Parameters{
		Potential: KindBarrier,
		V0:        1.0,
		Width:     0.02,
		X0:        0.5,
		Sigma:     0.05,
	}
}

// Kind returns the normalized potential kind.
func (p Parameters) Kind() string {
	return strings.ToLower(strings.TrimSpace(p.Potential))
}

// Build resolves the potential kind and samples it on g.
func (p Parameters) Build(g quantum.Grid) (quantum.Profile, error) {
	switch p.Kind() {
	case KindStep:
		return quantum.StepPotential(g, p.V0), nil
	case KindBarrier:
		return quantum.BarrierPotential(g, p.V0, p.Width), nil
	case KindWell:
		return quantum.WellPotential(g, p.V0, p.Width), nil
	case KindGaussian:
		return quantum.GaussianPotential(g, p.X0, p.Sigma), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPotential, p.Potential)
	}
}

// Kinds lists the accepted potential kinds.
func Kinds() []string {
	return []string{KindStep, KindBarrier, KindWell, KindGaussian}
}

// LoadParameters reads a parameter record. Files ending in .yaml or .yml are
// YAML; anything else uses the whitespace separated text format
// "kind V0 width x0 sigma", where blank lines and # comments are ignored.
func LoadParameters(path string) (Parameters, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Parameters{}, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		p := DefaultParameters()
		if err := yaml.Unmarshal(data, &p); err != nil {
			return Parameters{}, fmt.Errorf("parse %s: %w", path, err)
		}
		return p, nil
	default:
		return ParseParameters(data)
	}
}

// ParseParameters decodes the text parameter format.
func ParseParameters(data []byte) (Parameters, error) {
	var fields []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields = append(fields, strings.Fields(line)...)
	}
	if err := sc.Err(); err != nil {
		return Parameters{}, err
	}
	if len(fields) != 5 {
		return Parameters{}, fmt.Errorf("%w: expected 5 parameter fields, got %d", quantum.ErrInvalidParameter, len(fields))
	}

	var nums [4]float64
	for i, f := range fields[1:] {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return Parameters{}, fmt.Errorf("%w: field %d: %v", quantum.ErrInvalidParameter, i+2, err)
		}
		nums[i] = v
	}
	return Parameters{
		Potential: fields[0],
		V0:        nums[0],
		Width:     nums[1],
		X0:        nums[2],
		Sigma:     nums[3],
	}, nil
}

// FormatParameters encodes p in the text parameter format.
func FormatParameters(p Parameters) string {
	return fmt.Sprintf("%s %g %g %g %g\n", p.Potential, p.V0, p.Width, p.X0, p.Sigma)
}

// RunConfig collects everything the CLI needs for one run.
type RunConfig struct {
	Points         int        `yaml:"points"`
	Time           float64    `yaml:"time"`
	X0             float64    `yaml:"x0"`
	Output         string     `yaml:"output"`
	SnapshotFormat string     `yaml:"snapshot_format"`
	MovieFormat    string     `yaml:"movie_format"`
	Frames         int        `yaml:"frames"`
	Workers        int        `yaml:"workers"`
	Incremental    bool       `yaml:"incremental"`
	Params         Parameters `yaml:"params"`
}

func DefaultConfig() *RunConfig {
	return &RunConfig{
		Points:         DefaultPoints,
		Time:           DefaultTime,
		X0:             DefaultX0,
		Output:         DefaultOutput,
		SnapshotFormat: DefaultSnapshotFormat,
		MovieFormat:    DefaultMovieFormat,
		Frames:         DefaultFrames,
		Params:         DefaultParameters(),
	}
}

// Validate applies the range checks that belong at the CLI boundary.
func (c *RunConfig) Validate() error {
	var errs []error
	if c.Points < MinPoints {
		errs = append(errs, fmt.Errorf("N must be >= %d (here %d)", MinPoints, c.Points))
	}
	if !(c.Time >= 0 && c.Time < 1) {
		errs = append(errs, fmt.Errorf("time must be in [0.0, 1.0[ (here time = %g)", c.Time))
	}
	if !(c.X0 >= 0 && c.X0 < 1) {
		errs = append(errs, fmt.Errorf("initial particle position must be in [0.0, 1.0[ (here x0 = %g)", c.X0))
	}
	out := strings.ToLower(c.Output)
	if out != OutputSnapshot && out != OutputMovie {
		errs = append(errs, fmt.Errorf("invalid output %q (try %q or %q)", c.Output, OutputSnapshot, OutputMovie))
	}
	if c.Frames < 1 {
		errs = append(errs, fmt.Errorf("frames must be positive (here %d)", c.Frames))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative (here %d)", c.Workers))
	}
	if !isKind(c.Params.Kind()) {
		errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownPotential, c.Params.Potential))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", quantum.ErrInvalidParameter, errors.Join(errs...))
	}
	return nil
}

func isKind(k string) bool {
	for _, known := range Kinds() {
		if k == known {
			return true
		}
	}
	return false
}

func Load(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *RunConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

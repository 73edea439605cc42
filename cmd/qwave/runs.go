package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/san-kum/qwave/internal/config"
	"github.com/san-kum/qwave/internal/render"
	"github.com/san-kum/qwave/internal/storage"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var errNoFrames = errors.New("no data to plot")

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir, log)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	return writeRuns(os.Stdout, runs)
}

// writeRuns prints one row per run. X0 is the potential centre and
// PARTICLE_X0 the packet's starting position.
func writeRuns(out io.Writer, runs []storage.RunMetadata) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPOTENTIAL\tTIME\tN\tFRAMES\tV0\tWIDTH\tX0\tPARTICLE_X0")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%g\t%g\t%g\t%g\n",
			run.ID,
			run.Potential,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Points,
			run.Frames,
			run.V0,
			run.Width,
			run.X0,
			run.Particle,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir, log)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	_, times, densities, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(densities) == 0 {
		return errNoFrames
	}

	idx := frameIdx
	if idx < 0 {
		idx += len(densities)
	}
	if idx < 0 || idx >= len(densities) {
		return fmt.Errorf("frame %d out of range (run has %d frames)", frameIdx, len(densities))
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("potential: %s\n", meta.Potential)
	fmt.Printf("frames: %d\n\n", len(densities))

	caption := fmt.Sprintf("|psi|^2, frame %d", idx)
	if meta.Period > 0 {
		caption = fmt.Sprintf("|psi|^2 at t = %.3f T", times[idx]/meta.Period)
	}
	fmt.Println(render.ASCII(densities[idx], 80, 15, caption))
	fmt.Println()

	if len(meta.Metrics) > 0 {
		fmt.Println("metrics:")
		for name, val := range meta.Metrics {
			fmt.Printf("  %s: %.6f\n", name, val)
		}
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir, log)
	return st.ExportCSV(os.Stdout, args[0])
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir, log)
	return st.ExportJSON(os.Stdout, args[0])
}

func listPresets(cmd *cobra.Command, args []string) error {
	kind := strings.ToLower(args[0])
	presets := config.ListPresets(kind)
	if len(presets) == 0 {
		fmt.Printf("no presets for potential: %s (kinds: %v)\n", args[0], config.Kinds())
		return nil
	}
	fmt.Printf("presets for %s:\n", kind)
	for _, name := range presets {
		p := config.GetPreset(kind, name)
		fmt.Printf("  %-8s %s", name, config.FormatParameters(*p))
	}
	return nil
}

// initParams writes a parameter file; .yaml and .yml paths get YAML, anything
// else the whitespace text format.
func initParams(cmd *cobra.Command, args []string) error {
	path := config.DefaultParamsFile
	if len(args) == 1 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	p := config.DefaultParameters()
	if potential != "" {
		p.Potential = strings.ToLower(potential)
	}
	if preset != "" {
		pp := config.GetPreset(p.Kind(), preset)
		if pp == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(p.Kind()))
		}
		p = *pp
	}
	if !slices.Contains(config.Kinds(), p.Kind()) {
		return fmt.Errorf("%w: %q", config.ErrUnknownPotential, p.Potential)
	}

	var data []byte
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		out, err := yaml.Marshal(p)
		if err != nil {
			return err
		}
		data = out
	default:
		data = []byte(config.FormatParameters(p))
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

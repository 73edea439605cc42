package render

import (
	"fmt"
	"image/color"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	colorInitial   = color.RGBA{R: 220, A: 255}
	colorPotential = color.RGBA{A: 255}
	colorEvolved   = color.RGBA{B: 220, A: 255}
	colorReal      = color.RGBA{R: 220, A: 255}
	colorImag      = color.RGBA{G: 160, A: 255}
)

// SnapshotFormats are the file extensions gonum/plot can write.
var SnapshotFormats = []string{"pdf", "png", "svg", "eps", "jpg", "jpeg", "tif", "tiff"}

// SnapshotData is what the snapshot figure shows.
type SnapshotData struct {
	X         []float64
	Initial   []float64 // |psi(x,0)|²
	Potential []float64
	Evolved   []float64 // |psi(x,t)|²
	Title     string
}

// Snapshot draws d into path; the extension selects the format.
func Snapshot(d SnapshotData, path string) error {
	if err := checkFormat(path); err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = d.Title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "|psi|^2"
	p.Legend.Top = true

	curves := []struct {
		label string
		y     []float64
		c     color.Color
	}{
		{"|psi(x,0)|^2", d.Initial, colorInitial},
		{"V(x)", d.Potential, colorPotential},
		{"|psi(x,t)|^2", d.Evolved, colorEvolved},
	}
	for _, c := range curves {
		if err := addLine(p, d.X, c.y, c.label, c.c); err != nil {
			return err
		}
	}

	return p.Save(12*vg.Inch, 6*vg.Inch, path)
}

// SnapshotName is the output file name for a potential kind and format.
func SnapshotName(kind, format string) string {
	return fmt.Sprintf("%s_potential.%s", kind, strings.ToLower(format))
}

func checkFormat(path string) error {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	for _, f := range SnapshotFormats {
		if ext == f {
			return nil
		}
	}
	return fmt.Errorf("unsupported figure format %q (supported: %s)", ext, strings.Join(SnapshotFormats, ", "))
}

func addLine(p *plot.Plot, x, y []float64, label string, c color.Color) error {
	if len(y) == 0 {
		return nil
	}
	if len(x) != len(y) {
		return fmt.Errorf("%s: %d x values for %d y values", label, len(x), len(y))
	}
	pts := make(plotter.XYs, len(x))
	for i := range x {
		pts[i].X, pts[i].Y = x[i], y[i]
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("%s: %w", label, err)
	}
	line.Color = c
	line.Width = vg.Points(1)
	p.Add(line)
	p.Legend.Add(label, line)
	return nil
}

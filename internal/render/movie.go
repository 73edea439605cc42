package render

import (
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	imgdraw "image/draw"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/san-kum/qwave/internal/sim"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const (
	MovieGIF = "gif"
	MoviePNG = "png"
)

// MovieData holds the frames of an animation and what they are drawn over.
type MovieData struct {
	X         []float64
	Potential []float64
	Frames    []sim.Frame
	Title     func(f sim.Frame) string
}

// MovieOptions controls the size and pacing of the output.
type MovieOptions struct {
	Width  vg.Length
	Height vg.Length
	FPS    int
	Log    zerolog.Logger
}

func DefaultMovieOptions() MovieOptions {
	return MovieOptions{
		Width:  4 * vg.Inch,
		Height: 5 * vg.Inch,
		FPS:    30,
		Log:    zerolog.Nop(),
	}
}

// Movie writes the frames either as an animated GIF at path or as a PNG
// sequence inside the directory path.
func Movie(d MovieData, path, format string, opts MovieOptions) error {
	format = strings.ToLower(format)
	if format != MovieGIF && format != MoviePNG {
		return fmt.Errorf("unsupported movie format %q (supported: %s, %s)", format, MovieGIF, MoviePNG)
	}
	if len(d.Frames) == 0 {
		return fmt.Errorf("no frames to render")
	}
	if opts.FPS <= 0 {
		opts.FPS = 30
	}

	if format == MoviePNG {
		if err := os.MkdirAll(path, 0755); err != nil {
			return err
		}
	}

	anim := &gif.GIF{}
	for i, f := range d.Frames {
		img, err := FrameImage(d, f, opts.Width, opts.Height)
		if err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}

		switch format {
		case MoviePNG:
			if err := writePNG(filepath.Join(path, fmt.Sprintf("frame_%03d.png", i)), img); err != nil {
				return err
			}
		case MovieGIF:
			pal := image.NewPaletted(img.Bounds(), palette.Plan9)
			imgdraw.FloydSteinberg.Draw(pal, img.Bounds(), img, image.Point{})
			anim.Image = append(anim.Image, pal)
			anim.Delay = append(anim.Delay, frameDelay(opts.FPS))
		}
		opts.Log.Debug().Int("frame", i).Float64("t", f.Elapsed).Msg("frame rendered")
	}

	if format == MovieGIF {
		out, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := gif.EncodeAll(out, anim); err != nil {
			out.Close()
			return err
		}
		if err := out.Close(); err != nil {
			return err
		}
	}

	opts.Log.Info().Str("path", path).Int("frames", len(d.Frames)).Msg("movie written")
	return nil
}

// frameDelay is the GIF delay in hundredths of a second, at least 1.
func frameDelay(fps int) int {
	if fps <= 0 {
		fps = 30
	}
	return max(1, (100+fps/2)/fps)
}

// FrameImage draws |psi|², Re psi and Im psi of one frame in three stacked
// panels, each with the potential overlaid.
func FrameImage(d MovieData, f sim.Frame, w, h vg.Length) (image.Image, error) {
	panels := []struct {
		label  string
		y      []float64
		ymin   float64
		ymax   float64
		colour color.Color
	}{
		{"|psi(x,t)|^2", f.Psi.Density(), -0.1, 3.0, colorEvolved},
		{"Re psi(x,t)", f.Psi.Real(), -2.0, 2.0, colorReal},
		{"Im psi(x,t)", f.Psi.Imag(), -2.0, 2.0, colorImag},
	}

	plots := make([][]*plot.Plot, len(panels))
	for i, pn := range panels {
		p := plot.New()
		p.X.Label.Text = "x"
		p.Y.Label.Text = pn.label
		if i == 0 && d.Title != nil {
			p.Title.Text = d.Title(f)
		}
		if err := addLine(p, d.X, pn.y, pn.label, pn.colour); err != nil {
			return nil, err
		}
		if err := addLine(p, d.X, d.Potential, "V(x)", colorPotential); err != nil {
			return nil, err
		}
		if len(d.X) > 0 {
			p.X.Min, p.X.Max = d.X[0], d.X[len(d.X)-1]
		}
		p.Y.Min, p.Y.Max = pn.ymin, pn.ymax
		plots[i] = []*plot.Plot{p}
	}

	c := vgimg.New(w, h)
	dc := draw.New(c)
	tiles := draw.Tiles{Rows: len(panels), Cols: 1, PadY: vg.Millimeter}
	canvases := plot.Align(plots, tiles, dc)
	for i := range plots {
		plots[i][0].Draw(canvases[i][0])
	}
	return c.Image(), nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

package render

import (
	"image/gif"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/qwave/internal/quantum"
	"github.com/san-kum/qwave/internal/sim"
	"gonum.org/v1/plot/vg"
)

func testMovie(t *testing.T) MovieData {
	t.Helper()
	g, err := quantum.NewGrid(101, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	x, psi := g.Psi0(0.3, 20, 0.05)
	return MovieData{
		X:         x,
		Potential: quantum.BarrierPotential(g, 1, 0.02),
		Frames: []sim.Frame{
			{Index: 0, Psi: psi},
			{Index: 1, Elapsed: g.Dt, Psi: psi},
		},
		Title: func(f sim.Frame) string { return "frame" },
	}
}

func TestDownsample(t *testing.T) {
	data := []float64{1, 5, 2, 2, 0, 9}
	got := Downsample(data, 3)
	want := []float64{5, 2, 9}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Downsample = %v, want %v", got, want)
		}
	}
	if len(Downsample(data, 10)) != len(data) {
		t.Error("short input should be returned as is")
	}
}

func TestASCII(t *testing.T) {
	if ASCII(nil, 40, 5, "empty") != "" {
		t.Error("empty data should render nothing")
	}
	out := ASCII([]float64{0, 1, 4, 1, 0}, 40, 5, "density")
	if !strings.Contains(out, "density") {
		t.Errorf("caption missing from %q", out)
	}
}

func TestSnapshot(t *testing.T) {
	d := testMovie(t)
	psi := d.Frames[0].Psi
	path := filepath.Join(t.TempDir(), SnapshotName("Barrier", "PNG"))
	if !strings.HasSuffix(path, "Barrier_potential.png") {
		t.Fatalf("unexpected name %s", path)
	}

	err := Snapshot(SnapshotData{
		X:         d.X,
		Initial:   psi.Density(),
		Potential: d.Potential,
		Evolved:   psi.Density(),
		Title:     "t = 0.3 T",
	}, path)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Errorf("snapshot file missing or empty: %v", err)
	}
}

func TestSnapshot_BadFormat(t *testing.T) {
	err := Snapshot(SnapshotData{}, filepath.Join(t.TempDir(), "out.mp4"))
	if err == nil || !strings.Contains(err.Error(), "unsupported") {
		t.Errorf("expected unsupported format error, got %v", err)
	}
}

func TestMovieGIF(t *testing.T) {
	d := testMovie(t)
	path := filepath.Join(t.TempDir(), "barrier_potential.gif")
	opts := DefaultMovieOptions()
	opts.Width, opts.Height = 2*vg.Inch, 3*vg.Inch

	if err := Movie(d, path, "GIF", opts); err != nil {
		t.Fatalf("movie: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	anim, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(anim.Image) != 2 {
		t.Errorf("expected 2 frames, got %d", len(anim.Image))
	}
}

func TestFrameDelay(t *testing.T) {
	tests := []struct {
		fps  int
		want int
	}{
		{0, 3},
		{10, 10},
		{30, 3},
		{100, 1},
		{120, 1},
		{1000, 1},
	}
	for _, tt := range tests {
		if got := frameDelay(tt.fps); got != tt.want {
			t.Errorf("frameDelay(%d) = %d, want %d", tt.fps, got, tt.want)
		}
	}
}

func TestMovieGIF_HighFrameRate(t *testing.T) {
	d := testMovie(t)
	path := filepath.Join(t.TempDir(), "fast.gif")
	opts := DefaultMovieOptions()
	opts.Width, opts.Height = 2*vg.Inch, 3*vg.Inch
	opts.FPS = 240

	if err := Movie(d, path, MovieGIF, opts); err != nil {
		t.Fatalf("movie: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	anim, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	for i, delay := range anim.Delay {
		if delay < 1 {
			t.Errorf("frame %d has delay %d", i, delay)
		}
	}
}

func TestMoviePNG(t *testing.T) {
	d := testMovie(t)
	dir := filepath.Join(t.TempDir(), "frames")
	opts := DefaultMovieOptions()
	opts.Width, opts.Height = 2*vg.Inch, 3*vg.Inch

	if err := Movie(d, dir, MoviePNG, opts); err != nil {
		t.Fatalf("movie: %v", err)
	}
	for _, name := range []string{"frame_000.png", "frame_001.png"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
}

func TestMovie_Errors(t *testing.T) {
	d := testMovie(t)
	if err := Movie(d, t.TempDir(), "mp4", DefaultMovieOptions()); err == nil {
		t.Error("expected error for mp4")
	}
	d.Frames = nil
	if err := Movie(d, filepath.Join(t.TempDir(), "x.gif"), MovieGIF, DefaultMovieOptions()); err == nil {
		t.Error("expected error for no frames")
	}
}

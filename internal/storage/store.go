package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/san-kum/qwave/internal/sim"
)

const (
	metadataFile = "metadata.json"
	densityFile  = "density.csv"
)

type Store struct {
	baseDir string
	log     zerolog.Logger
}

func New(baseDir string, log zerolog.Logger) *Store {
	return &Store{baseDir: baseDir, log: log}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Potential string             `json:"potential"`
	Timestamp time.Time          `json:"timestamp"`
	Points    int                `json:"points"`
	Length    float64            `json:"length"`
	Dt        float64            `json:"dt"`
	Period    float64            `json:"period"`
	V0        float64            `json:"v0"`
	Width     float64            `json:"width"`
	X0        float64            `json:"x0"`
	Sigma     float64            `json:"sigma"`
	Particle  float64            `json:"particle_x0"`
	Frames    int                `json:"frames"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes the run metadata and one density row per frame. The first row
// of density.csv holds the grid coordinates.
func (s *Store) Save(meta RunMetadata, x []float64, frames []sim.Frame) (string, error) {
	if meta.ID == "" {
		meta.ID = fmt.Sprintf("%s_%s", meta.Potential, uuid.NewString()[:8])
	}
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	meta.Frames = len(frames)

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, densityFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)

	header := make([]string, 0, len(x)+1)
	header = append(header, "time")
	for _, xi := range x {
		header = append(header, strconv.FormatFloat(xi, 'g', -1, 64))
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for _, f := range frames {
		row := make([]string, 0, len(f.Psi)+1)
		row = append(row, strconv.FormatFloat(f.Elapsed, 'g', -1, 64))
		for _, d := range f.Psi.Density() {
			row = append(row, strconv.FormatFloat(d, 'g', 8, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	s.log.Info().Str("run", meta.ID).Int("frames", len(frames)).Msg("run saved")
	return meta.ID, nil
}

// List returns the stored runs, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			s.log.Debug().Err(err).Str("dir", entry.Name()).Msg("skipping run directory")
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadFrames returns the grid coordinates, the frame times and one density
// row per frame.
func (s *Store) LoadFrames(runID string) ([]float64, []float64, [][]float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, densityFile))
	if err != nil {
		return nil, nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, nil, err
	}
	if len(records) == 0 {
		return []float64{}, []float64{}, [][]float64{}, nil
	}

	x, err := parseRow(records[0][1:])
	if err != nil {
		return nil, nil, nil, fmt.Errorf("coordinates: %w", err)
	}

	times := make([]float64, 0, len(records)-1)
	densities := make([][]float64, 0, len(records)-1)
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) == 0 {
			continue
		}

		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("row %d: %w", i, err)
		}
		d, err := parseRow(record[1:])
		if err != nil {
			return nil, nil, nil, fmt.Errorf("row %d: %w", i, err)
		}
		times = append(times, t)
		densities = append(densities, d)
	}

	return x, times, densities, nil
}

func parseRow(fields []string) ([]float64, error) {
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

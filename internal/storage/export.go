package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
)

type ExportData struct {
	Run       RunMetadata `json:"run"`
	X         []float64   `json:"x"`
	Times     []float64   `json:"times"`
	Densities [][]float64 `json:"densities"`
}

// ExportJSON writes a stored run, metadata and frames, as indented JSON.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	x, times, densities, err := s.LoadFrames(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{Run: *meta, X: x, Times: times, Densities: densities})
}

// ExportCSV writes one row per grid point: x followed by the density of every
// frame, with the frame times as the header.
func (s *Store) ExportCSV(w io.Writer, runID string) error {
	x, times, densities, err := s.LoadFrames(runID)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	header := []string{"x"}
	for _, t := range times {
		header = append(header, "t="+strconv.FormatFloat(t, 'g', 6, 64))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for i := range x {
		row := []string{strconv.FormatFloat(x[i], 'f', 6, 64)}
		for _, d := range densities {
			v := 0.0
			if i < len(d) {
				v = d[i]
			}
			row = append(row, strconv.FormatFloat(v, 'g', 8, 64))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/san-kum/qwave/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteRuns(t *testing.T) {
	runs := []storage.RunMetadata{{
		ID:        "gaussian_1234abcd",
		Potential: "gaussian",
		Timestamp: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Points:    2000,
		Frames:    100,
		V0:        1,
		Width:     0.02,
		X0:        0.6,
		Particle:  0.3,
	}}

	var buf bytes.Buffer
	require.NoError(t, writeRuns(&buf, runs))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	header := strings.Fields(lines[0])
	row := strings.Fields(lines[1])
	// The timestamp spans two fields in the row.
	require.Len(t, row, len(header)+1)

	col := func(name string) string {
		for i, h := range header {
			if h == name {
				if i > 2 {
					return row[i+1]
				}
				return row[i]
			}
		}
		t.Fatalf("missing column %s", name)
		return ""
	}
	assert.Equal(t, "0.6", col("X0"))
	assert.Equal(t, "0.3", col("PARTICLE_X0"))
	assert.Equal(t, "gaussian", col("POTENTIAL"))
}

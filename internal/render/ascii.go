package render

import (
	"github.com/guptarohit/asciigraph"
)

// ASCII plots data as a terminal line graph, downsampled to width columns.
func ASCII(data []float64, width, height int, caption string) string {
	if len(data) == 0 {
		return ""
	}
	return asciigraph.Plot(Downsample(data, width),
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.LowerBound(0),
		asciigraph.Caption(caption),
	)
}

// Downsample keeps the maximum of each of n buckets so narrow peaks survive.
func Downsample(data []float64, n int) []float64 {
	if n <= 0 || len(data) <= n {
		return data
	}
	out := make([]float64, n)
	for b := 0; b < n; b++ {
		lo := b * len(data) / n
		hi := (b + 1) * len(data) / n
		m := data[lo]
		for _, v := range data[lo:hi] {
			if v > m {
				m = v
			}
		}
		out[b] = m
	}
	return out
}

package viz

import (
	"math"

	"github.com/guptarohit/asciigraph"
)

// CurvePlot renders a curve as a terminal line plot. NaN horizons (e.g.
// empty divergence bins) are carried forward so the plot stays connected.
func CurvePlot(data []float64, caption string, height, width int) string {
	if len(data) == 0 {
		return ""
	}
	clean := make([]float64, len(data))
	last := 0.0
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			clean[i] = last
			continue
		}
		clean[i] = v
		last = v
	}
	return asciigraph.Plot(clean,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}

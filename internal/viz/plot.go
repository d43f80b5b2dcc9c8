package viz

import (
	"github.com/guptarohit/asciigraph"
)

// PathPlot renders one state component against time as an ASCII graph.
func PathPlot(values []float64, caption string) string {
	return asciigraph.Plot(values,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
}

// ComparePlot overlays several series, one per sample path or per
// component, on shared axes.
func ComparePlot(series [][]float64, caption string) string {
	return asciigraph.PlotMany(series,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
}

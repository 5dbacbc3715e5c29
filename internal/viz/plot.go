package viz

import (
	"math"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/numtrace/internal/numerics"
)

const (
	plotHeight = 12
	plotWidth  = 72
)

// PlotODE draws y over the grid. It returns "" for fewer than two records.
func PlotODE(t *numerics.ODETrace, caption string) string {
	ys := t.Ys()
	if len(ys) < 2 {
		return ""
	}
	return asciigraph.Plot(ys,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(caption),
	)
}

// PlotCompare overlays several y series, one color per series.
func PlotCompare(series [][]float64, caption string) string {
	data := make([][]float64, 0, len(series))
	for _, s := range series {
		if len(s) >= 2 {
			data = append(data, s)
		}
	}
	if len(data) == 0 {
		return ""
	}

	colors := []asciigraph.AnsiColor{asciigraph.Blue, asciigraph.Red, asciigraph.Green, asciigraph.Yellow}
	return asciigraph.PlotMany(data,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.SeriesColors(colors[:min(len(data), len(colors))]...),
		asciigraph.Caption(caption),
	)
}

// PlotRootErrors draws log10 of the Newton step size per iteration, which
// turns quadratic convergence into a steepening line. Zero steps are
// skipped.
func PlotRootErrors(t *numerics.RootTrace) string {
	logs := make([]float64, 0, t.Len())
	for _, e := range t.Errors() {
		if e > 0 {
			logs = append(logs, math.Log10(e))
		}
	}
	if len(logs) < 2 {
		return ""
	}
	return asciigraph.Plot(logs,
		asciigraph.Height(plotHeight/2),
		asciigraph.Caption("log10 |x_next - x| per iteration"),
	)
}

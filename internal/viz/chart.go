package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
)

var chartPalette = []asciigraph.AnsiColor{
	asciigraph.Cyan,
	asciigraph.Yellow,
	asciigraph.Green,
	asciigraph.Red,
	asciigraph.Blue,
	asciigraph.Magenta,
}

// Chart plots one series. Width and height are in terminal cells; zero lets
// asciigraph choose.
func Chart(values []float64, caption string, width, height int) (string, error) {
	if len(values) == 0 {
		return "", fmt.Errorf("chart %q: no data", caption)
	}
	opts := []asciigraph.Option{asciigraph.Caption(caption)}
	if width > 0 {
		opts = append(opts, asciigraph.Width(width))
	}
	if height > 0 {
		opts = append(opts, asciigraph.Height(height))
	}
	return asciigraph.Plot(values, opts...), nil
}

// ChartMany overlays several series with a colour legend. All series are
// plotted against the same vertical scale.
func ChartMany(series [][]float64, names []string, width, height int) (string, error) {
	if len(series) == 0 {
		return "", fmt.Errorf("chart: no series")
	}
	for i, s := range series {
		if len(s) == 0 {
			return "", fmt.Errorf("chart: series %d is empty", i)
		}
	}

	colors := make([]asciigraph.AnsiColor, len(series))
	for i := range colors {
		colors[i] = chartPalette[i%len(chartPalette)]
	}
	opts := []asciigraph.Option{asciigraph.SeriesColors(colors...)}
	if len(names) == len(series) {
		opts = append(opts, asciigraph.SeriesLegends(names...))
	}
	if width > 0 {
		opts = append(opts, asciigraph.Width(width))
	}
	if height > 0 {
		opts = append(opts, asciigraph.Height(height))
	}
	return asciigraph.PlotMany(series, opts...), nil
}

package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"invasion-ca/internal/metrics"
	"invasion-ca/internal/species"
)

// ErrNotEnoughData is returned when a series has fewer than two samples.
var ErrNotEnoughData = errors.New("report: need at least two samples to plot")

var seriesColors = map[species.Species]drawing.Color{
	species.Native:     {R: 46, G: 204, B: 113, A: 255},
	species.Invasive:   {R: 231, G: 76, B: 60, A: 255},
	species.Endangered: {R: 241, G: 196, B: 15, A: 255},
}

// RenderDensityChart draws the species percentage history as a PNG line
// chart.
func RenderDensityChart(w io.Writer, h *metrics.History) error {
	n := h.Series(species.Native).Len()
	if n < 2 {
		return ErrNotEnoughData
	}
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i)
	}

	series := make([]chart.Series, 0, len(species.Living))
	for _, s := range species.Living {
		ys := append([]float64(nil), h.Series(s).Values()...)
		series = append(series, chart.ContinuousSeries{
			Name:    s.String(),
			XValues: xs,
			YValues: ys,
			Style:   chart.Style{StrokeColor: seriesColors[s], StrokeWidth: 2.0},
		})
	}

	graph := chart.Chart{
		Width:  640,
		Height: 320,
		XAxis: chart.XAxis{
			Name:  "sample",
			Style: chart.Style{FontSize: 10.0},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%d", int(v.(float64)))
			},
		},
		YAxis: chart.YAxis{
			Name:  "cover %",
			Style: chart.Style{FontSize: 10.0},
			Range: &chart.ContinuousRange{Min: 0, Max: 100},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("rendering density chart: %w", err)
	}
	return nil
}

// WriteDensityChart renders the chart into path, making parent directories.
func WriteDensityChart(path string, h *metrics.History) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Base(path), err)
	}
	if err := RenderDensityChart(f, h); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

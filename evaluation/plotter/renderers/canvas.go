package renderers

import (
	"image/color"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/mason-leap-lab/gmbcplot/common/stats"
)

const (
	plotWidth  = 8 * vg.Inch
	plotHeight = 6 * vg.Inch
)

var (
	colorRed   = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	colorGreen = color.RGBA{R: 44, G: 160, B: 44, A: 255}
	colorBlue  = color.RGBA{R: 31, G: 119, B: 180, A: 255}
)

// faded returns c with reduced opacity for raw data and histogram fills.
func faded(c color.RGBA) color.RGBA {
	return color.RGBA{R: c.R / 3, G: c.G / 3, B: c.B / 3, A: 85}
}

func newPlot(title string, xLabel string, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Legend.Top = true
	p.Add(plotter.NewGrid())
	return p
}

func addLine(p *plot.Plot, s Series) error {
	if len(s.X) == 0 {
		return nil
	}
	xys := make(plotter.XYs, len(s.X))
	for i := range s.X {
		xys[i].X = s.X[i]
		xys[i].Y = s.Y[i]
	}
	line, err := plotter.NewLine(xys)
	if err != nil {
		return err
	}
	line.Color = s.Color
	line.Width = vg.Points(1.5)
	p.Add(line)
	p.Legend.Add(s.Label, line)
	return nil
}

// addHistogram draws values as a histogram normalized to unit area.
func addHistogram(p *plot.Plot, values []float64, bins int, c color.RGBA) error {
	if len(values) == 0 {
		return nil
	}
	density, err := stats.Histogram(values, bins)
	if err != nil {
		return err
	}
	hist := &plotter.Histogram{
		Bins:      make([]plotter.HistogramBin, len(density)),
		Width:     density[0].Max - density[0].Min,
		FillColor: faded(c),
		LineStyle: plotter.DefaultLineStyle,
	}
	for i, b := range density {
		hist.Bins[i] = plotter.HistogramBin{Min: b.Min, Max: b.Max, Weight: b.Density}
	}
	hist.LineStyle.Color = faded(c)
	p.Add(hist)
	return nil
}

func savePlot(p *plot.Plot, dir string, name string, ext string) (string, error) {
	path := filepath.Join(dir, name+"."+ext)
	if err := p.Save(plotWidth, plotHeight, path); err != nil {
		return "", err
	}
	log.Info("Saved %s", path)
	return path, nil
}

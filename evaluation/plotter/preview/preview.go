package preview

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strings"

	ui "github.com/gizak/termui/v3"
	"github.com/gizak/termui/v3/widgets"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"

	"github.com/mason-leap-lab/gmbcplot/evaluation/plotter/renderers"
)

var (
	ErrNothingToShow = errors.New("no series with at least two points to preview")
)

// Preview shows the curves of a render in the terminal.
type Preview struct {
	*ui.Grid
	Plot   *widgets.Plot
	Legend *widgets.Paragraph
}

// Lines converts series into termui plot data. termui draws every line from
// column 0, so all series are resampled onto one x grid spanning the union of
// their ranges; outside its own range a series holds its edge value. Series
// with fewer than two points cannot be drawn as lines and are left out.
func Lines(series []renderers.Series) ([][]float64, []ui.Color, string) {
	fits := make([]interp.PiecewiseLinear, 0, len(series))
	colors := make([]ui.Color, 0, len(series))
	legend := make([]string, 0, len(series))
	lo, hi := math.Inf(1), math.Inf(-1)
	points := 0
	for _, s := range series {
		if len(s.Y) < 2 {
			continue
		}
		xs := s.X
		if len(xs) != len(s.Y) || !increasing(xs) {
			xs = make([]float64, len(s.Y))
			for i := range xs {
				xs[i] = float64(i)
			}
		}
		var fit interp.PiecewiseLinear
		if err := fit.Fit(xs, s.Y); err != nil {
			continue
		}
		lo, hi = math.Min(lo, xs[0]), math.Max(hi, xs[len(xs)-1])
		if len(xs) > points {
			points = len(xs)
		}

		c := TermColor(s.Color)
		fits = append(fits, fit)
		colors = append(colors, c)
		legend = append(legend, fmt.Sprintf("[%s](fg:%s)", s.Label, colorName(c)))
	}
	if len(fits) == 0 {
		return [][]float64{}, colors, ""
	}

	grid := floats.Span(make([]float64, points), lo, hi)
	data := make([][]float64, len(fits))
	for i, fit := range fits {
		data[i] = make([]float64, len(grid))
		for j, x := range grid {
			data[i][j] = fit.Predict(x)
		}
	}
	return data, colors, strings.Join(legend, "  ")
}

func increasing(xs []float64) bool {
	for i := 1; i < len(xs); i++ {
		if xs[i] <= xs[i-1] {
			return false
		}
	}
	return true
}

// TermColor maps an RGB color to the closest of the terminal's primary colors.
func TermColor(c color.RGBA) ui.Color {
	switch {
	case c.R >= c.G && c.R >= c.B:
		return ui.ColorRed
	case c.G >= c.B:
		return ui.ColorGreen
	default:
		return ui.ColorBlue
	}
}

func colorName(c ui.Color) string {
	switch c {
	case ui.ColorRed:
		return "red"
	case ui.ColorGreen:
		return "green"
	case ui.ColorBlue:
		return "blue"
	default:
		return "white"
	}
}

func NewPreview(title string, series []renderers.Series) (*Preview, error) {
	data, colors, legend := Lines(series)
	if len(data) == 0 {
		return nil, ErrNothingToShow
	}
	if err := ui.Init(); err != nil {
		return nil, err
	}

	preview := &Preview{
		Grid:   ui.NewGrid(),
		Plot:   widgets.NewPlot(),
		Legend: widgets.NewParagraph(),
	}
	preview.Plot.Title = title
	preview.Plot.Data = data
	preview.Plot.LineColors = colors
	preview.Plot.Marker = widgets.MarkerBraille
	preview.Plot.PlotType = widgets.LineChart
	preview.Plot.AxesColor = ui.ColorWhite
	preview.Legend.Title = " q to quit "
	preview.Legend.Text = legend

	// Full screen
	termWidth, termHeight := ui.TerminalDimensions()
	preview.Grid.SetRect(0, 0, termWidth, termHeight)

	// Layout
	preview.Grid.Set(
		ui.NewRow(9.0/10,
			ui.NewCol(1.0/1, preview.Plot),
		),
		ui.NewRow(1.0/10,
			ui.NewCol(1.0/1, preview.Legend),
		),
	)

	return preview, nil
}

func (p *Preview) Update() {
	ui.Render(p)
}

// Start blocks until the preview is dismissed.
func (p *Preview) Start() {
	uiEvents := ui.PollEvents()
	p.Update()
	for e := range uiEvents {
		switch e.ID {
		case "q", "<C-c>":
			return
		case "<Resize>":
			payload := e.Payload.(ui.Resize)
			p.SetRect(0, 0, payload.Width, payload.Height)
			ui.Clear()
			p.Update()
		}
	}
}

func (p *Preview) Close() {
	ui.Close()
}

package renderers

import (
	"errors"
	"image/color"
	"io"

	"github.com/mason-leap-lab/go-utils/logger"

	"github.com/mason-leap-lab/gmbcplot/common/results"
	"github.com/mason-leap-lab/gmbcplot/evaluation/plotter/options"
)

var (
	registry = make(map[string]Renderer)
	log      = &logger.ColorLogger{Color: true, Level: logger.LOG_LEVEL_INFO, Prefix: "Renderer "}

	ErrNoData = errors.New("no result data available")
)

type Renderer interface {
	// Configure configures the renderer with options.
	Configure(opts *options.Options) error

	// Files lists the result files the renderer reads, relative to the results directory.
	Files() []string

	// Load reads the result files through the loader.
	Load(loader *results.Loader) error

	// Render writes plots to dir and returns their paths.
	Render(dir string) ([]string, error)

	// Summarize prints statistics of the loaded data.
	Summarize(w io.Writer)

	// Series returns the curves of the last render for previewing.
	Series() []Series

	// SetRecorder attaches a recorder for series statistics.
	SetRecorder(recorder *Recorder)
}

// Series is one curve of a plot.
type Series struct {
	Label string
	X     []float64
	Y     []float64
	Color color.RGBA
}

func LoadRenderer(name string) (Renderer, bool) {
	renderer, ok := registry[name]
	return renderer, ok
}

type abstractRenderer struct {
	recorder *Recorder
	noColor  bool
}

func (r *abstractRenderer) Configure(opts *options.Options) error {
	r.noColor = opts.NoColor
	return nil
}

func (r *abstractRenderer) Summarize(w io.Writer) {
}

func (r *abstractRenderer) SetRecorder(recorder *Recorder) {
	r.recorder = recorder
}

// indexSeries builds a series whose x values start at offset.
func indexSeries(label string, values []float64, offset int, c color.RGBA) Series {
	xs := make([]float64, len(values))
	for i := range xs {
		xs[i] = float64(offset + i)
	}
	return Series{Label: label, X: xs, Y: values, Color: c}
}

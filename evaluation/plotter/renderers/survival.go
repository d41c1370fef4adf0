package renderers

import (
	"errors"
	"fmt"
	"image/color"
	"io"

	"github.com/mgutz/ansi"

	"github.com/mason-leap-lab/gmbcplot/common/results"
	"github.com/mason-leap-lab/gmbcplot/common/stats"
	"github.com/mason-leap-lab/gmbcplot/evaluation/plotter/options"
)

const (
	ModeSurvival = "survival"

	kdePoints = 200
)

func init() {
	registry[ModeSurvival] = &SurvivalRenderer{}
}

type survivalVariant struct {
	label  string
	title  string
	name   string
	limit  int
	color  color.RGBA
	style  string
	values []float64
	stats  stats.Summary
}

// SurvivalRenderer compares the survival distance distributions of the vanilla
// policy and the two GMBC agents.
type SurvivalRenderer struct {
	abstractRenderer

	locator  *results.Locator
	episodes int64
	bins     int
	ext      string
	variants []*survivalVariant
	series   []Series
}

func (r *SurvivalRenderer) Configure(opts *options.Options) error {
	r.abstractRenderer.Configure(opts)
	r.locator = opts.Locator()
	r.episodes = opts.Episodes
	r.bins = int(opts.Bins)
	r.ext = opts.Ext
	r.series = nil

	profile := opts.Profile
	r.variants = []*survivalVariant{
		{label: profile.VanillaLabel, title: results.SummaryName(profile.VanillaSummary, profile.VanillaLabel), name: r.locator.VanillaSurvival(opts.Episodes), limit: int(opts.VanillaLimit), color: colorRed, style: "red"},
		{label: profile.RandLabel, title: results.SummaryName(profile.RandSummary, profile.RandLabel), name: r.locator.AgentSurvival(opts.RandAgent, opts.Episodes), color: colorGreen, style: "green"},
		{label: profile.NoRandLabel, title: results.SummaryName(profile.NoRandSummary, profile.NoRandLabel), name: r.locator.AgentSurvival(opts.NoRandAgent, opts.Episodes), color: colorBlue, style: "blue"},
	}
	return nil
}

func (r *SurvivalRenderer) Files() []string {
	files := make([]string, len(r.variants))
	for i, v := range r.variants {
		files[i] = v.name
	}
	return files
}

// Load reads column 0 of every survival file. Missing files are skipped.
func (r *SurvivalRenderer) Load(loader *results.Loader) error {
	loaded := 0
	for _, v := range r.variants {
		v.values = nil
		v.stats = stats.Summary{}

		values, err := loader.LoadColumn(r.locator.Path(v.name), 0, v.limit)
		if errors.Is(err, results.ErrNotFound) {
			log.Warn("Skip %s: %v", v.label, err)
			continue
		} else if err != nil {
			return err
		} else if len(values) == 0 {
			log.Warn("Skip %s: %s is empty", v.label, v.name)
			continue
		}

		v.values = values
		v.stats = stats.Summarize(values)
		if err := r.recorder.Record(ModeSurvival, v.label, v.stats, 0); err != nil {
			log.Warn("Failed to record %s: %v", v.label, err)
		}
		loaded++
	}
	if loaded == 0 {
		return fmt.Errorf("%w: none of %v found in %s", ErrNoData, r.Files(), r.locator.Dir)
	}
	return nil
}

func (r *SurvivalRenderer) Render(dir string) ([]string, error) {
	p := newPlot("", "Forward Survived Distance (m)", "Kernel Density Estimate")
	r.series = r.series[:0]
	for _, v := range r.variants {
		if len(v.values) == 0 {
			continue
		}
		if err := addHistogram(p, v.values, r.bins, v.color); err != nil {
			return nil, fmt.Errorf("histogram of %s: %w", v.label, err)
		}

		kde, err := stats.NewKDE(v.values)
		if err != nil {
			return nil, err
		}
		grid, err := kde.Grid(kdePoints)
		if err != nil {
			return nil, err
		}
		series := Series{Label: v.label, X: make([]float64, len(grid)), Y: make([]float64, len(grid)), Color: v.color}
		for i, pt := range grid {
			series.X[i] = pt.X
			series.Y[i] = pt.Y
		}
		if err := addLine(p, series); err != nil {
			return nil, fmt.Errorf("density of %s: %w", v.label, err)
		}
		r.series = append(r.series, series)
	}

	path, err := savePlot(p, dir, fmt.Sprintf("survival_%d", r.episodes), r.ext)
	if err != nil {
		return nil, err
	}
	return []string{path}, nil
}

// Summarize prints the mean and standard deviation of every loaded variant.
func (r *SurvivalRenderer) Summarize(w io.Writer) {
	for _, v := range r.variants {
		if v.stats.N == 0 {
			continue
		}
		line := v.stats.Format(v.title)
		if !r.noColor {
			line = ansi.Color(line, v.style)
		}
		fmt.Fprintln(w, line)
	}
}

func (r *SurvivalRenderer) Series() []Series {
	return r.series
}

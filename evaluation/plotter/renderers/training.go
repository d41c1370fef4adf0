package renderers

import (
	"fmt"
	"image/color"

	"github.com/mason-leap-lab/gmbcplot/common/results"
	"github.com/mason-leap-lab/gmbcplot/common/stats"
	"github.com/mason-leap-lab/gmbcplot/evaluation/plotter/options"
)

const (
	ModeTraining = "training"

	ColumnTotalReward = 0
	ColumnStepReward  = 1
)

func init() {
	registry[ModeTraining] = &TrainingRenderer{}
}

type trainingRun struct {
	label  string
	name   string
	color  color.RGBA
	values []float64
	ma     []float64
}

// TrainingRenderer plots reward per epoch of the randomized and non-randomized
// agents, smoothed by a moving average.
type TrainingRenderer struct {
	abstractRenderer

	locator *results.Locator
	window  int
	column  int
	metric  string
	raw     bool
	seed    int64
	ext     string
	runs    []*trainingRun
	series  []Series
}

func (r *TrainingRenderer) Configure(opts *options.Options) error {
	r.abstractRenderer.Configure(opts)
	r.locator = opts.Locator()
	r.window = int(opts.MovingAverageWindow)
	r.raw = opts.Raw
	r.seed = opts.Seed
	r.ext = opts.Ext
	r.series = nil
	if opts.TotalReward {
		r.column, r.metric = ColumnTotalReward, "Total Reward"
	} else {
		r.column, r.metric = ColumnStepReward, "Reward/dt"
	}

	r.runs = []*trainingRun{
		{label: "Randomized", name: r.locator.RandTraining(opts.Seed), color: colorRed},
		{label: "Non-Randomized", name: r.locator.NoRandTraining(opts.Seed), color: colorGreen},
	}
	return nil
}

func (r *TrainingRenderer) Files() []string {
	files := make([]string, len(r.runs))
	for i, run := range r.runs {
		files[i] = run.name
	}
	return files
}

// Load reads both training files. Unlike survival data, both are required.
func (r *TrainingRenderer) Load(loader *results.Loader) error {
	for _, run := range r.runs {
		values, err := loader.LoadColumn(r.locator.Path(run.name), r.column, 0)
		if err != nil {
			return err
		}

		if len(values) > 0 && stats.MovingAverageLen(len(values), r.window) == 0 {
			log.Warn("Moving average window %d exceeds %d epochs of %s, nothing to smooth", r.window, len(values), run.label)
		}
		ma, err := stats.MovingAverage(values, r.window)
		if err != nil {
			return err
		}
		run.values = values
		run.ma = ma

		if err := r.recorder.Record(ModeTraining, r.label(run, false), stats.Summarize(values), r.window); err != nil {
			log.Warn("Failed to record %s: %v", run.label, err)
		}
	}
	return nil
}

func (r *TrainingRenderer) label(run *trainingRun, ma bool) string {
	if ma {
		return fmt.Sprintf("MA: %s (%s)", run.label, r.metric)
	}
	return fmt.Sprintf("%s (%s)", run.label, r.metric)
}

func (r *TrainingRenderer) Render(dir string) ([]string, error) {
	p := newPlot(fmt.Sprintf("Training Performance: Seed %d", r.seed), "Epoch #", "Reward")
	r.series = r.series[:0]
	if r.raw {
		for _, run := range r.runs {
			r.series = append(r.series, indexSeries(r.label(run, false), run.values, 0, faded(run.color)))
		}
	}
	// A smoothed point sits at the last epoch of its window.
	for _, run := range r.runs {
		r.series = append(r.series, indexSeries(r.label(run, true), run.ma, r.window-1, run.color))
	}

	for _, s := range r.series {
		if err := addLine(p, s); err != nil {
			return nil, fmt.Errorf("line of %s: %w", s.Label, err)
		}
	}

	path, err := savePlot(p, dir, fmt.Sprintf("training_seed%d", r.seed), r.ext)
	if err != nil {
		return nil, err
	}
	return []string{path}, nil
}

func (r *TrainingRenderer) Series() []Series {
	return r.series
}

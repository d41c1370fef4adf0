package renderers

import (
	"io"
	"os"

	"github.com/ScottMansfield/nanolog"
	nanoReader "github.com/ScottMansfield/nanolog/reader"

	"github.com/mason-leap-lab/gmbcplot/common/stats"
)

var (
	// run id, mode, label, samples, mean, std, window
	logSeries nanolog.Handle
)

func init() {
	logSeries = nanolog.AddLogger("%s,%s,%s,%i64,%f64,%f64,%i64")
}

// Recorder writes series statistics of a run as nanolog entries.
type Recorder struct {
	RunID string

	file *os.File
}

func NewRecorder(path string, runID string) (*Recorder, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if err := nanolog.SetWriter(file); err != nil {
		file.Close()
		return nil, err
	}
	return &Recorder{RunID: runID, file: file}, nil
}

// Record logs the summary of one series. A nil recorder records nothing.
func (r *Recorder) Record(mode string, label string, summary stats.Summary, window int) error {
	if r == nil {
		return nil
	}
	return nanolog.Log(logSeries, r.RunID, mode, label, int64(summary.N), summary.Mean, summary.Std, int64(window))
}

func (r *Recorder) Close() error {
	if err := nanolog.Flush(); err != nil {
		r.file.Close()
		return err
	}
	return r.file.Close()
}

// Inflate decodes a record file into comma separated lines.
func Inflate(r io.Reader, w io.Writer) error {
	return nanoReader.New(r, w).Inflate()
}

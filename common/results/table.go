package results

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is wrapped by Loader.Load when a result file does not exist.
	ErrNotFound = errors.New("result file not found")
	// ErrUnsupportedPayload is returned when a decoder meets data it cannot turn into a table.
	ErrUnsupportedPayload = errors.New("unsupported result payload")
	// ErrColumnOutOfRange is returned when a column index exceeds the table width.
	ErrColumnOutOfRange = errors.New("column out of range")
)

// Table is a decoded result file: one row per epoch or episode.
type Table struct {
	Rows [][]float64
}

// NewTableFromRows validates that rows share the same width.
func NewTableFromRows(rows [][]float64) (*Table, error) {
	if len(rows) > 0 {
		width := len(rows[0])
		for i, row := range rows {
			if len(row) != width {
				return nil, fmt.Errorf("%w: row %d has %d columns, expected %d", ErrUnsupportedPayload, i, len(row), width)
			}
		}
	}
	return &Table{Rows: rows}, nil
}

// NewTableFromFlat reshapes a row-major buffer into a table of the given width.
func NewTableFromFlat(data []float64, width int) (*Table, error) {
	if width <= 0 || len(data)%width != 0 {
		return nil, fmt.Errorf("%w: %d values do not fit width %d", ErrUnsupportedPayload, len(data), width)
	}
	rows := make([][]float64, len(data)/width)
	for i := range rows {
		rows[i] = data[i*width : (i+1)*width : (i+1)*width]
	}
	return &Table{Rows: rows}, nil
}

func (t *Table) Len() int {
	return len(t.Rows)
}

func (t *Table) Width() int {
	if len(t.Rows) == 0 {
		return 0
	}
	return len(t.Rows[0])
}

// Column copies column i out of every row.
func (t *Table) Column(i int) ([]float64, error) {
	if i < 0 || (len(t.Rows) > 0 && i >= t.Width()) {
		return nil, fmt.Errorf("%w: column %d of %d", ErrColumnOutOfRange, i, t.Width())
	}
	col := make([]float64, len(t.Rows))
	for r, row := range t.Rows {
		col[r] = row[i]
	}
	return col, nil
}

// Head keeps at most the first n rows. A non-positive n keeps everything.
func (t *Table) Head(n int) *Table {
	if n <= 0 || n >= len(t.Rows) {
		return t
	}
	return &Table{Rows: t.Rows[:n]}
}

package stats

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

var (
	// ErrEmptySample is returned when an estimate needs at least one value.
	ErrEmptySample = errors.New("empty sample")
	// ErrInvalidArgument is returned for bad grid sizes and bin counts.
	ErrInvalidArgument = errors.New("invalid argument")
)

// Summary describes one sample: size, mean and population standard deviation.
type Summary struct {
	N    int
	Mean float64
	Std  float64
}

// Summarize computes the mean and the population (ddof=0) standard deviation.
func Summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}
	return Summary{
		N:    len(values),
		Mean: stat.Mean(values, nil),
		Std:  math.Sqrt(stat.PopVariance(values, nil)),
	}
}

func (s Summary) Format(label string) string {
	return fmt.Sprintf("%s: AVG [%v] | STD [%v]", label, s.Mean, s.Std)
}

package stats

import (
	"errors"
)

var (
	// ErrInvalidWindow is returned when the moving-average window is not positive.
	ErrInvalidWindow = errors.New("moving average window must be positive")
)

// Number covers the sample types a result file may decode to.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// MovingAverage returns the simple moving average of samples over window n.
// Element i of the result is the mean of samples[i:i+n], so the result holds
// len(samples)-n+1 values. A window larger than the sample yields an empty
// result rather than an error.
func MovingAverage[T Number](samples []T, n int) ([]float64, error) {
	if n <= 0 {
		return nil, ErrInvalidWindow
	}
	if n > len(samples) {
		return []float64{}, nil
	}
	if n == 1 {
		ma := make([]float64, len(samples))
		for i, v := range samples {
			ma[i] = float64(v)
		}
		return ma, nil
	}

	// Cumulative sum with a leading zero: cum[k] = sum(samples[:k]).
	cum := make([]float64, len(samples)+1)
	for i, v := range samples {
		cum[i+1] = cum[i] + float64(v)
	}

	ma := make([]float64, len(samples)-n+1)
	window := float64(n)
	for i := range ma {
		ma[i] = (cum[i+n] - cum[i]) / window
	}
	return ma, nil
}

// MovingAverageLen returns the length of MovingAverage(samples, n) for a sample of
// length size, or 0 for an invalid window.
func MovingAverageLen(size int, n int) int {
	if n <= 0 || n > size {
		return 0
	}
	return size - n + 1
}

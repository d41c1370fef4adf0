package stats

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// KDE is a Gaussian kernel density estimate.
type KDE struct {
	samples   []float64
	bandwidth float64
}

// Point is an (x, y) pair of a density curve.
type Point struct {
	X float64
	Y float64
}

// NewKDE builds an estimate using Scott's rule: sigma * n^(-1/5).
func NewKDE(values []float64) (*KDE, error) {
	if len(values) == 0 {
		return nil, ErrEmptySample
	}
	samples := make([]float64, len(values))
	copy(samples, values)
	sort.Float64s(samples)

	bw := 1.0
	if len(samples) > 1 {
		sigma := stat.StdDev(samples, nil)
		if sigma > 0 && !math.IsNaN(sigma) && !math.IsInf(sigma, 0) {
			bw = sigma * math.Pow(float64(len(samples)), -0.2)
		}
	}
	return &KDE{samples: samples, bandwidth: bw}, nil
}

func (k *KDE) Bandwidth() float64 {
	return k.bandwidth
}

// Density evaluates the estimate at x.
func (k *KDE) Density(x float64) float64 {
	var sum float64
	for _, s := range k.samples {
		sum += distuv.UnitNormal.Prob((x - s) / k.bandwidth)
	}
	return sum / (float64(len(k.samples)) * k.bandwidth)
}

// Grid evaluates the estimate at evenly spaced points covering three
// bandwidths beyond the sample range on each side.
func (k *KDE) Grid(points int) ([]Point, error) {
	if points < 2 {
		return nil, fmt.Errorf("%w: kde grid needs at least 2 points, got %d", ErrInvalidArgument, points)
	}
	lo := k.samples[0] - 3*k.bandwidth
	hi := k.samples[len(k.samples)-1] + 3*k.bandwidth
	xs := floats.Span(make([]float64, points), lo, hi)

	out := make([]Point, points)
	for i, x := range xs {
		out[i] = Point{X: x, Y: k.Density(x)}
	}
	return out, nil
}

// Bin is one bar of a histogram covering [Min, Max).
type Bin struct {
	Min     float64
	Max     float64
	Density float64
}

// Center returns the midpoint of the bin.
func (b Bin) Center() float64 {
	return (b.Min + b.Max) / 2
}

// Histogram bins values into equal-width bins normalized to unit area.
func Histogram(values []float64, bins int) ([]Bin, error) {
	if len(values) == 0 {
		return nil, ErrEmptySample
	}
	if bins < 1 {
		return nil, fmt.Errorf("%w: histogram needs at least 1 bin, got %d", ErrInvalidArgument, bins)
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	lo, hi := sorted[0], sorted[len(sorted)-1]
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	dividers := floats.Span(make([]float64, bins+1), lo, hi)
	// stat.Histogram requires the last divider to be strictly above the maximum.
	dividers[bins] = math.Nextafter(hi, math.Inf(1))

	counts := stat.Histogram(nil, dividers, sorted, nil)
	total := float64(len(sorted))
	out := make([]Bin, bins)
	for i, c := range counts {
		out[i] = Bin{
			Min:     dividers[i],
			Max:     dividers[i+1],
			Density: c / (total * (dividers[i+1] - dividers[i])),
		}
	}
	return out, nil
}

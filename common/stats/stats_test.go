package stats_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/mason-leap-lab/gmbcplot/common/stats"
)

var _ = Describe("Summarize", func() {
	It("should use the population standard deviation", func() {
		s := stats.Summarize([]float64{2, 4, 4, 4, 5, 5, 7, 9})
		Expect(s.N).To(Equal(8))
		Expect(s.Mean).To(BeNumerically("~", 5, 1e-12))
		Expect(s.Std).To(BeNumerically("~", 2, 1e-12))
	})

	It("should summarize an empty sample as zero", func() {
		Expect(stats.Summarize(nil)).To(Equal(stats.Summary{}))
	})

	It("should format like the legacy printout", func() {
		s := stats.Summary{N: 2, Mean: 1.5, Std: 0.5}
		Expect(s.Format("Vanilla")).To(Equal("Vanilla: AVG [1.5] | STD [0.5]"))
	})
})

var _ = Describe("KDE", func() {
	It("should reject an empty sample", func() {
		_, err := stats.NewKDE(nil)
		Expect(err).To(Equal(stats.ErrEmptySample))
	})

	It("should fall back to unit bandwidth for a constant sample", func() {
		kde, err := stats.NewKDE([]float64{3, 3, 3})
		Expect(err).To(BeNil())
		Expect(kde.Bandwidth()).To(Equal(1.0))
		Expect(kde.Density(3)).To(BeNumerically("~", 1/math.Sqrt(2*math.Pi), 1e-12))
	})

	It("should integrate to about one", func() {
		kde, err := stats.NewKDE([]float64{-1, 0, 0.5, 1, 2, 2.5, 4})
		Expect(err).To(BeNil())
		grid, err := kde.Grid(2000)
		Expect(err).To(BeNil())
		Expect(grid).To(HaveLen(2000))

		var area float64
		for i := 1; i < len(grid); i++ {
			area += (grid[i].X - grid[i-1].X) * (grid[i].Y + grid[i-1].Y) / 2
		}
		Expect(area).To(BeNumerically("~", 1, 1e-2))
	})

	It("should reject a grid of less than two points", func() {
		kde, _ := stats.NewKDE([]float64{1, 2})
		_, err := kde.Grid(1)
		Expect(errors.Is(err, stats.ErrInvalidArgument)).To(BeTrue())
	})
})

var _ = Describe("Histogram", func() {
	It("should normalize bins to unit area", func() {
		hist, err := stats.Histogram([]float64{0, 1, 1, 2, 3, 3, 3, 4}, 4)
		Expect(err).To(BeNil())
		Expect(hist).To(HaveLen(4))

		var area float64
		for _, b := range hist {
			area += b.Density * (b.Max - b.Min)
		}
		Expect(area).To(BeNumerically("~", 1, 1e-9))
		Expect(hist[0].Min).To(Equal(0.0))
		Expect(hist[0].Center()).To(BeNumerically("~", 0.5, 1e-9))
		Expect(hist[3].Max).To(BeNumerically(">", 4))
	})

	It("should count the maximum in the last bin", func() {
		hist, err := stats.Histogram([]float64{0, 10}, 2)
		Expect(err).To(BeNil())
		Expect(hist[1].Density).To(BeNumerically(">", 0))
	})

	It("should widen the range of a constant sample", func() {
		hist, err := stats.Histogram([]float64{5, 5}, 1)
		Expect(err).To(BeNil())
		Expect(hist[0].Center()).To(BeNumerically("~", 5, 1e-9))
		Expect(hist[0].Density).To(BeNumerically("~", 1, 1e-9))
	})

	It("should reject bad arguments", func() {
		_, err := stats.Histogram(nil, 3)
		Expect(err).To(Equal(stats.ErrEmptySample))
		_, err = stats.Histogram([]float64{1}, 0)
		Expect(errors.Is(err, stats.ErrInvalidArgument)).To(BeTrue())
	})
})

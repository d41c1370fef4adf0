package preview_test

import (
	"image/color"

	ui "github.com/gizak/termui/v3"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/mason-leap-lab/gmbcplot/evaluation/plotter/preview"
	"github.com/mason-leap-lab/gmbcplot/evaluation/plotter/renderers"
)

var _ = Describe("Preview", func() {
	It("should map colors to terminal primaries", func() {
		Expect(preview.TermColor(color.RGBA{R: 214, G: 39, B: 40, A: 255})).To(Equal(ui.ColorRed))
		Expect(preview.TermColor(color.RGBA{R: 44, G: 160, B: 44, A: 255})).To(Equal(ui.ColorGreen))
		Expect(preview.TermColor(color.RGBA{R: 31, G: 119, B: 180, A: 255})).To(Equal(ui.ColorBlue))
	})

	It("should drop series too short to draw", func() {
		series := []renderers.Series{
			{Label: "MA: Randomized", Y: []float64{1, 2, 3}, Color: color.RGBA{R: 200, A: 255}},
			{Label: "MA: Non-Randomized", Y: []float64{1}, Color: color.RGBA{G: 200, A: 255}},
			{Label: "Vanilla", Y: nil, Color: color.RGBA{B: 200, A: 255}},
		}
		data, colors, legend := preview.Lines(series)
		Expect(data).To(Equal([][]float64{{1, 2, 3}}))
		Expect(colors).To(Equal([]ui.Color{ui.ColorRed}))
		Expect(legend).To(Equal("[MA: Randomized](fg:red)"))
	})

	It("should align series by their x values", func() {
		series := []renderers.Series{
			{Label: "Randomized", X: []float64{0, 1, 2, 3, 4}, Y: []float64{0, 1, 2, 3, 4}, Color: color.RGBA{R: 200, A: 255}},
			{Label: "MA: Randomized", X: []float64{2, 3, 4}, Y: []float64{2, 3, 4}, Color: color.RGBA{R: 200, A: 255}},
		}
		data, _, _ := preview.Lines(series)
		Expect(data).To(HaveLen(2))
		Expect(data[0]).To(Equal([]float64{0, 1, 2, 3, 4}))
		Expect(data[1]).To(HaveLen(5))
		// Before its first x the smoothed line holds its first value.
		Expect(data[1]).To(Equal([]float64{2, 2, 2, 3, 4}))
		Expect(data[1][2:]).To(Equal(data[0][2:]))
	})

	It("should resample disjoint ranges onto one grid", func() {
		series := []renderers.Series{
			{Label: "Vanilla", X: []float64{0, 1, 2}, Y: []float64{1, 2, 3}, Color: color.RGBA{R: 200, A: 255}},
			{Label: "GMBC Rand", X: []float64{2, 3, 4}, Y: []float64{5, 6, 7}, Color: color.RGBA{G: 200, A: 255}},
		}
		data, _, _ := preview.Lines(series)
		Expect(data).To(Equal([][]float64{{1, 3, 3}, {5, 5, 7}}))
	})

	It("should refuse to open without drawable series", func() {
		_, err := preview.NewPreview("empty", nil)
		Expect(err).To(Equal(preview.ErrNothingToShow))
	})
})

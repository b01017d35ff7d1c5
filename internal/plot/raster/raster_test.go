package raster

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"

	"chart-render/internal/plot"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRenderer(t *testing.T, scale float64) *Renderer {
	t.Helper()
	r, err := New(Options{Scale: scale})
	require.NoError(t, err)
	return r
}

func baseLayout(showLegend bool) plot.Layout {
	return plot.Layout{
		Title:      "Test",
		XAxis:      plot.Axis{Title: "x"},
		YAxis:      plot.Axis{Title: "y"},
		Template:   plot.TemplateWhite,
		Width:      1200,
		Height:     800,
		Font:       plot.Font{Size: 14},
		ShowLegend: showLegend,
	}
}

func rgbAt(img image.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

func TestDraw_Bar(t *testing.T) {
	fig := plot.NewFigure()
	fig.AddTrace(plot.Trace{
		Kind:   plot.KindBar,
		Name:   "Sales",
		X:      []string{"a", "b"},
		Y:      []float64{10, 20},
		Marker: plot.Marker{Colors: []string{"rgb(255, 0, 0)"}},
	})
	fig.UpdateLayout(baseLayout(false))

	dc, err := newTestRenderer(t, 1).Draw(fig)
	require.NoError(t, err)

	img := dc.Image()
	assert.Equal(t, image.Rect(0, 0, 1200, 800), img.Bounds())
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, rgbAt(img, 5, 5))
	// plot area is x 80..1120, y 100..720; the second bar spans x 652..1068 and reaches y ~130
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, rgbAt(img, 860, 400))
	// the first bar (value 10) stays below mid height
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, rgbAt(img, 340, 250))
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, rgbAt(img, 340, 600))
}

func TestDraw_Pie(t *testing.T) {
	fig := plot.NewFigure()
	fig.AddTrace(plot.Trace{
		Kind:   plot.KindPie,
		Name:   "Share",
		Labels: []string{"left", "right"},
		Values: []float64{1, 1},
	})
	fig.UpdateLayout(baseLayout(false))

	dc, err := newTestRenderer(t, 1).Draw(fig)
	require.NoError(t, err)

	img := dc.Image()
	// pie centered at (600, 410); first slice runs counterclockwise from 12 o'clock
	assert.Equal(t, WhiteTheme.Colorway[0], color.Color(rgbAt(img, 520, 500)))
	assert.Equal(t, WhiteTheme.Colorway[1], color.Color(rgbAt(img, 680, 500)))
}

func TestDraw_LineAndScatterWithLegend(t *testing.T) {
	for _, mode := range []plot.Mode{plot.ModeLinesMarkers, plot.ModeMarkers} {
		fig := plot.NewFigure()
		fig.AddTrace(plot.Trace{
			Kind:   plot.KindScatter,
			Mode:   mode,
			Name:   "one",
			X:      []string{"a", "b", "c"},
			Y:      []float64{1, math.NaN(), 3},
			Marker: plot.Marker{Colors: []string{"blue"}, Size: 10, Line: plot.Line{Color: "black", Width: 1}},
			Line:   plot.Line{Color: "red", Width: 2},
		})
		fig.AddTrace(plot.Trace{
			Kind: plot.KindScatter,
			Mode: mode,
			Name: "two",
			Y:    []float64{-1, 2, 5, 9},
		})
		fig.UpdateLayout(baseLayout(true))

		var buf bytes.Buffer
		require.NoError(t, newTestRenderer(t, 1).Encode(fig, &buf))

		img, err := png.Decode(&buf)
		require.NoError(t, err)
		assert.Equal(t, image.Rect(0, 0, 1200, 800), img.Bounds())
	}
}

func TestDraw_EmptyFigure(t *testing.T) {
	fig := plot.NewFigure()
	fig.UpdateLayout(baseLayout(true))

	dc, err := newTestRenderer(t, 1).Draw(fig)
	require.NoError(t, err)
	assert.Equal(t, 1200, dc.Width())
}

func TestDraw_Scale(t *testing.T) {
	fig := plot.NewFigure()
	fig.AddTrace(plot.Trace{Kind: plot.KindBar, X: []string{"a"}, Y: []float64{1}})
	fig.UpdateLayout(baseLayout(true))

	dc, err := newTestRenderer(t, 2).Draw(fig)
	require.NoError(t, err)
	assert.Equal(t, 2400, dc.Width())
	assert.Equal(t, 1600, dc.Height())
}

func TestDraw_TooSmall(t *testing.T) {
	fig := plot.NewFigure()
	layout := baseLayout(false)
	layout.Width, layout.Height = 100, 100
	fig.UpdateLayout(layout)

	_, err := newTestRenderer(t, 1).Draw(fig)
	assert.Error(t, err)

	_, err = newTestRenderer(t, 1).Draw(nil)
	assert.Error(t, err)
}

func TestLegendEntries(t *testing.T) {
	pies := plot.NewFigure()
	pies.AddTrace(plot.Trace{Kind: plot.KindPie, Labels: []string{"a", "b"}, Values: []float64{1, 2}})
	pies.AddTrace(plot.Trace{Kind: plot.KindPie, Labels: []string{"a", "b", "c"}, Values: []float64{1, 2, 3}})

	entries := legendEntries(pies, WhiteTheme)
	require.Len(t, entries, 3)
	assert.Equal(t, "c", entries[2].Name)
	assert.Equal(t, WhiteTheme.Colorway[2], entries[2].Fill)

	bars := plot.NewFigure()
	bars.AddTrace(plot.Trace{Kind: plot.KindBar, Name: "x", Marker: plot.Marker{Colors: []string{"#000"}}})
	bars.AddTrace(plot.Trace{Kind: plot.KindBar, Name: "y"})
	entries = legendEntries(bars, WhiteTheme)
	require.Len(t, entries, 2)
	assert.Equal(t, color.NRGBA{A: 255}, entries[0].Fill)
	assert.Equal(t, WhiteTheme.Colorway[1], entries[1].Fill)
}

func TestSliceValues(t *testing.T) {
	values, total := sliceValues(plot.Trace{Kind: plot.KindPie, Values: []float64{2, -1, math.NaN(), 3}})
	assert.Equal(t, []float64{2, 0, 0, 3}, values)
	assert.Equal(t, 5.0, total)
}

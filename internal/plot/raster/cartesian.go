package raster

import (
	"image/color"
	"math"
	"strconv"

	"chart-render/internal/plot"
)

const (
	barGap          = 0.2
	maxYTicks       = 8
	tickPad         = 6.0
	defaultMarker   = 6.0
	zeroLineWidth   = 2.0
	gridLineWidth   = 1.0
	axisTitleOffset = 50.0
)

// categories returns the x categories of the figure: the longest X of any trace,
// or indices when no trace has labels.
func categories(traces []plot.Trace) []string {
	var cats []string
	longestY := 0
	for _, t := range traces {
		if t.Kind == plot.KindPie {
			continue
		}
		if len(t.X) > len(cats) {
			cats = t.X
		}
		if len(t.Y) > longestY {
			longestY = len(t.Y)
		}
	}
	if len(cats) > 0 {
		return cats
	}
	cats = make([]string, longestY)
	for i := range cats {
		cats[i] = strconv.Itoa(i)
	}
	return cats
}

// visible returns the values that have a category to sit on.
func visible(t plot.Trace, limit int) []float64 {
	n := len(t.Y)
	if len(t.X) > 0 && len(t.X) < n {
		n = len(t.X)
	}
	if limit < n {
		n = limit
	}
	return t.Y[:n]
}

func (c *canvas) drawCartesian(fig *plot.Figure, area rect) error {
	dc := c.dc
	cats := categories(fig.Traces)

	var (
		all     [][]float64
		bars    []plot.Trace
		scatter []plot.Trace
	)
	for _, t := range fig.Traces {
		switch t.Kind {
		case plot.KindBar:
			bars = append(bars, t)
		case plot.KindScatter:
			scatter = append(scatter, t)
		default:
			continue
		}
		all = append(all, visible(t, len(cats)))
	}
	dr, ok := dataRange(all...)
	yr := autorange(dr, ok, len(bars) > 0)

	yOf := func(v float64) float64 {
		return area.bottom() - yr.fraction(v)*area.H
	}
	band := area.W
	if len(cats) > 0 {
		band = area.W / float64(len(cats))
	}
	xOf := func(i int) float64 {
		return area.X + (float64(i)+0.5)*band
	}

	dc.SetColor(c.theme.Plot)
	dc.DrawRectangle(area.X, area.Y, area.W, area.H)
	dc.Fill()

	if err := c.setFont(c.fontSize); err != nil {
		return err
	}

	// horizontal grid and y tick labels
	tickValues, step := ticks(yr, maxYTicks)
	for _, v := range tickValues {
		y := yOf(v)
		if v == 0 {
			dc.SetColor(c.theme.ZeroLine)
			dc.SetLineWidth(zeroLineWidth)
		} else {
			dc.SetColor(c.theme.Grid)
			dc.SetLineWidth(gridLineWidth)
		}
		dc.DrawLine(area.X, y, area.right(), y)
		dc.Stroke()

		dc.SetColor(c.theme.Text)
		dc.DrawStringAnchored(formatTick(v, step), area.X-tickPad, y, 1, 0.35)
	}

	// x tick labels, thinned so neighbours do not overlap
	if len(cats) > 0 {
		widest := 0.0
		for _, label := range cats {
			w, _ := dc.MeasureString(label)
			widest = math.Max(widest, w)
		}
		every := 1
		if band > 0 {
			every = int(math.Ceil((widest + tickPad) / band))
			if every < 1 {
				every = 1
			}
		}
		dc.SetColor(c.theme.Text)
		for i, label := range cats {
			if i%every != 0 {
				continue
			}
			dc.DrawStringAnchored(label, xOf(i), area.bottom()+tickPad, 0.5, 1)
		}
	}

	dc.DrawRectangle(area.X, area.Y, area.W, area.H)
	dc.Clip()
	c.drawBars(bars, len(cats), band, area, yOf)
	for j, t := range scatter {
		c.drawScatter(t, len(cats), c.theme.colorway(j), xOf, yOf)
	}
	dc.ResetClip()

	return c.drawAxisTitles(fig.Layout, area)
}

func (c *canvas) drawBars(bars []plot.Trace, cats int, band float64, area rect, yOf func(float64) float64) {
	if len(bars) == 0 {
		return
	}
	dc := c.dc
	group := band * (1 - barGap)
	width := group / float64(len(bars))
	base := yOf(0)
	base = math.Max(math.Min(base, area.bottom()), area.Y)

	for j, t := range bars {
		fallback := c.theme.colorway(j)
		for i, v := range visible(t, cats) {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			x := area.X + float64(i)*band + band*barGap/2 + float64(j)*width
			top := yOf(v)
			y, h := math.Min(top, base), math.Abs(base-top)

			dc.SetColor(pick(t.Marker.Colors, i, fallback))
			dc.DrawRectangle(x, y, width, h)
			dc.Fill()

			if t.Marker.Line.Width > 0 {
				dc.SetColor(pick([]string{t.Marker.Line.Color}, 0, fallback))
				dc.SetLineWidth(t.Marker.Line.Width)
				dc.DrawRectangle(x, y, width, h)
				dc.Stroke()
			}
		}
	}
}

func (c *canvas) drawScatter(t plot.Trace, cats int, fallback color.Color, xOf func(int) float64, yOf func(float64) float64) {
	dc := c.dc
	values := visible(t, cats)

	if t.Mode == plot.ModeLinesMarkers && t.Line.Width > 0 {
		dc.SetColor(pick([]string{t.Line.Color}, 0, fallback))
		dc.SetLineWidth(t.Line.Width)
		dc.SetLineJoinRound()
		drawing := false
		for i, v := range values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				drawing = false
				continue
			}
			if !drawing {
				dc.MoveTo(xOf(i), yOf(v))
				drawing = true
			} else {
				dc.LineTo(xOf(i), yOf(v))
			}
		}
		dc.Stroke()
	}

	size := t.Marker.Size
	if size <= 0 {
		size = defaultMarker
	}
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		x, y := xOf(i), yOf(v)
		dc.DrawCircle(x, y, size/2)
		dc.SetColor(pick(t.Marker.Colors, i, fallback))
		if t.Marker.Line.Width > 0 {
			dc.FillPreserve()
			dc.SetColor(pick([]string{t.Marker.Line.Color}, 0, fallback))
			dc.SetLineWidth(t.Marker.Line.Width)
			dc.Stroke()
		} else {
			dc.Fill()
		}
	}
}

func (c *canvas) drawAxisTitles(layout plot.Layout, area rect) error {
	if layout.XAxis.Title == "" && layout.YAxis.Title == "" {
		return nil
	}
	dc := c.dc
	if err := c.setFont(c.fontSize); err != nil {
		return err
	}
	dc.SetColor(c.theme.Text)

	if layout.XAxis.Title != "" {
		dc.DrawStringAnchored(layout.XAxis.Title, area.X+area.W/2, area.bottom()+axisTitleOffset, 0.5, 0.5)
	}
	if layout.YAxis.Title != "" {
		x, y := area.X-axisTitleOffset-10, area.Y+area.H/2
		dc.Push()
		dc.RotateAbout(-math.Pi/2, x, y)
		dc.DrawStringAnchored(layout.YAxis.Title, x, y, 0.5, 0.5)
		dc.Pop()
	}
	return nil
}

package raster

import (
	"fmt"
	"math"

	"chart-render/internal/plot"
)

const (
	pieFill         = 0.9
	pieLabelRadius  = 0.65
	pieLabelMinFrac = 0.03
)

// sliceValues returns the drawable slice sizes; negative and missing values count as 0.
func sliceValues(t plot.Trace) ([]float64, float64) {
	values := make([]float64, len(t.Values))
	total := 0.0
	for i, v := range t.Values {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			continue
		}
		values[i] = v
		total += v
	}
	return values, total
}

// drawPies lays the pie traces out side by side, one column each.
func (c *canvas) drawPies(traces []plot.Trace, area rect) error {
	dc := c.dc
	if err := c.setFont(c.fontSize); err != nil {
		return err
	}

	colW := area.W / float64(len(traces))
	for k, t := range traces {
		values, total := sliceValues(t)
		if total <= 0 {
			continue
		}
		cx := area.X + colW*(float64(k)+0.5)
		cy := area.Y + area.H/2
		radius := math.Min(colW, area.H) / 2 * pieFill

		// counterclockwise from 12 o'clock; screen angles grow clockwise
		start := -math.Pi / 2
		for i, v := range values {
			if v == 0 {
				continue
			}
			frac := v / total
			end := start - frac*2*math.Pi
			fill := c.theme.colorway(i)

			dc.MoveTo(cx, cy)
			dc.DrawArc(cx, cy, radius, start, end)
			dc.ClosePath()
			dc.SetColor(fill)
			dc.FillPreserve()
			dc.SetColor(c.theme.SliceEdge)
			dc.SetLineWidth(1)
			dc.Stroke()

			if frac >= pieLabelMinFrac {
				mid := (start + end) / 2
				lx := cx + math.Cos(mid)*radius*pieLabelRadius
				ly := cy + math.Sin(mid)*radius*pieLabelRadius
				dc.SetColor(textColorOn(fill, c.theme.Text))
				dc.DrawStringAnchored(formatPercent(frac), lx, ly, 0.5, 0.35)
			}
			start = end
		}
	}
	return nil
}

func formatPercent(frac float64) string {
	return fmt.Sprintf("%.1f%%", frac*100)
}

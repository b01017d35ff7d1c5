package raster

import (
	"image/color"
	"math"

	"chart-render/internal/plot"
)

type legendEntry struct {
	Name   string
	Kind   plot.TraceKind
	Mode   plot.Mode
	Fill   color.Color
	Stroke color.Color
	Width  float64
}

// legendEntries lists one entry per cartesian trace, or one per slice label for pies.
func legendEntries(fig *plot.Figure, theme Theme) []legendEntry {
	var entries []legendEntry
	if !fig.Cartesian() {
		seen := make(map[string]bool)
		for _, t := range fig.Traces {
			for i, label := range t.Labels {
				if seen[label] {
					continue
				}
				seen[label] = true
				entries = append(entries, legendEntry{Name: label, Kind: plot.KindPie, Fill: theme.colorway(i)})
			}
		}
		return entries
	}

	bars, scatters := 0, 0
	for _, t := range fig.Traces {
		var fallback color.Color
		switch t.Kind {
		case plot.KindBar:
			fallback = theme.colorway(bars)
			bars++
		case plot.KindScatter:
			fallback = theme.colorway(scatters)
			scatters++
		default:
			continue
		}
		e := legendEntry{
			Name: t.Name,
			Kind: t.Kind,
			Mode: t.Mode,
			Fill: pick(t.Marker.Colors, 0, fallback),
		}
		if t.Mode == plot.ModeLinesMarkers {
			e.Stroke = pick([]string{t.Line.Color}, 0, fallback)
			e.Width = t.Line.Width
		} else {
			e.Stroke = pick([]string{t.Marker.Line.Color}, 0, fallback)
			e.Width = t.Marker.Line.Width
		}
		entries = append(entries, e)
	}
	return entries
}

func (c *canvas) legendRow() float64 {
	return c.fontSize + 10
}

func (c *canvas) legendWidth(entries []legendEntry) (float64, error) {
	if err := c.setFont(c.fontSize); err != nil {
		return 0, err
	}
	widest := 0.0
	for _, e := range entries {
		w, _ := c.dc.MeasureString(e.Name)
		widest = math.Max(widest, w)
	}
	return legendSwatch + 8 + widest + 10, nil
}

func (c *canvas) drawLegend(entries []legendEntry, x, y float64) error {
	dc := c.dc
	if err := c.setFont(c.fontSize); err != nil {
		return err
	}
	row := c.legendRow()

	for i, e := range entries {
		cy := y + row*(float64(i)+0.5)
		if cy > c.height {
			break
		}
		c.drawSwatch(e, x, cy)
		dc.SetColor(c.theme.Text)
		dc.DrawStringAnchored(e.Name, x+legendSwatch+8, cy, 0, 0.35)
	}
	return nil
}

func (c *canvas) drawSwatch(e legendEntry, x, cy float64) {
	dc := c.dc
	switch {
	case e.Kind == plot.KindBar || e.Kind == plot.KindPie:
		h := c.fontSize
		dc.DrawRectangle(x+5, cy-h/2, legendSwatch-10, h)
		dc.SetColor(e.Fill)
		if e.Width > 0 {
			dc.FillPreserve()
			dc.SetColor(e.Stroke)
			dc.SetLineWidth(math.Min(e.Width, 2))
			dc.Stroke()
		} else {
			dc.Fill()
		}
	case e.Mode == plot.ModeLinesMarkers:
		dc.SetColor(e.Stroke)
		dc.SetLineWidth(math.Max(math.Min(e.Width, 4), 1))
		dc.DrawLine(x, cy, x+legendSwatch, cy)
		dc.Stroke()
		dc.DrawCircle(x+legendSwatch/2, cy, defaultMarker/2)
		dc.SetColor(e.Fill)
		dc.Fill()
	default:
		dc.DrawCircle(x+legendSwatch/2, cy, defaultMarker/2+1)
		dc.SetColor(e.Fill)
		if e.Width > 0 {
			dc.FillPreserve()
			dc.SetColor(e.Stroke)
			dc.SetLineWidth(math.Min(e.Width, 2))
			dc.Stroke()
		} else {
			dc.Fill()
		}
	}
}

package raster

// Rasterizer for plot.Figure
// Draws the figure onto a gg.Context following the plotly_white look:
// title, legend column on the right, axes with grid for cartesian traces, side by side pies

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"chart-render/internal/plot"

	"github.com/fogleman/gg"
)

const (
	defaultWidth    = 700
	defaultHeight   = 450
	defaultFontSize = 12.0

	marginLeft   = 80.0
	marginRight  = 80.0
	marginTop    = 100.0
	marginBottom = 80.0

	titleScale = 1.2

	legendGap    = 20.0
	legendSwatch = 30.0
	legendMaxFr  = 0.3
)

type Options struct {
	// Scale multiplies the canvas size, like an export scale factor.
	Scale float64
	Fonts *Fonts
	Theme *Theme
}

type Renderer struct {
	scale float64
	fonts *Fonts
	theme Theme
}

// New creates a Renderer. Zero options give scale 1, the embedded font and the white theme.
func New(opts Options) (*Renderer, error) {
	r := &Renderer{scale: opts.Scale, fonts: opts.Fonts, theme: WhiteTheme}
	if r.scale <= 0 {
		r.scale = 1
	}
	if opts.Theme != nil {
		r.theme = *opts.Theme
	}
	if r.fonts == nil {
		fonts, err := LoadFonts(nil)
		if err != nil {
			return nil, err
		}
		r.fonts = fonts
	}
	return r, nil
}

// rect is an area in layout pixels.
type rect struct {
	X, Y, W, H float64
}

func (r rect) right() float64  { return r.X + r.W }
func (r rect) bottom() float64 { return r.Y + r.H }

// canvas bundles the context with the state shared by the drawing steps.
type canvas struct {
	dc       *gg.Context
	fonts    *Fonts
	theme    Theme
	width    float64
	height   float64
	fontSize float64
}

func (c *canvas) setFont(size float64) error {
	face, err := c.fonts.Face(size)
	if err != nil {
		return err
	}
	c.dc.SetFontFace(face)
	return nil
}

// Draw rasterizes the figure.
func (r *Renderer) Draw(fig *plot.Figure) (*gg.Context, error) {
	if fig == nil {
		return nil, fmt.Errorf("nil figure")
	}
	layout := fig.Layout
	width, height := float64(layout.Width), float64(layout.Height)
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	fontSize := layout.Font.Size
	if fontSize <= 0 {
		fontSize = defaultFontSize
	}

	px := int(math.Round(width * r.scale))
	py := int(math.Round(height * r.scale))
	if px <= 0 || py <= 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", px, py)
	}

	dc := gg.NewContext(px, py)
	dc.Scale(r.scale, r.scale)
	c := &canvas{dc: dc, fonts: r.fonts, theme: r.theme, width: width, height: height, fontSize: fontSize}

	dc.SetColor(r.theme.Paper)
	dc.Clear()

	area := rect{X: marginLeft, Y: marginTop, W: width - marginLeft - marginRight, H: height - marginTop - marginBottom}

	var entries []legendEntry
	if layout.ShowLegend {
		entries = legendEntries(fig, r.theme)
	}
	if len(entries) > 0 {
		legendWidth, err := c.legendWidth(entries)
		if err != nil {
			return nil, err
		}
		shrink := math.Min(legendWidth+legendGap, width*legendMaxFr)
		if area.W-shrink > 0 {
			area.W -= shrink
		}
	}
	if area.W <= 0 || area.H <= 0 {
		return nil, fmt.Errorf("canvas %gx%g too small for the plot margins", width, height)
	}

	if fig.Cartesian() || len(fig.Traces) == 0 {
		if err := c.drawCartesian(fig, area); err != nil {
			return nil, err
		}
	} else {
		if err := c.drawPies(fig.Traces, area); err != nil {
			return nil, err
		}
	}

	if len(entries) > 0 {
		if err := c.drawLegend(entries, area.right()+legendGap, area.Y); err != nil {
			return nil, err
		}
	}

	if layout.Title != "" {
		if err := c.setFont(fontSize * titleScale); err != nil {
			return nil, err
		}
		dc.SetColor(r.theme.Text)
		dc.DrawStringAnchored(layout.Title, width*0.05, marginTop/2, 0, 0.5)
	}

	return dc, nil
}

// Encode draws the figure and writes it as PNG.
func (r *Renderer) Encode(fig *plot.Figure, w io.Writer) error {
	dc, err := r.Draw(fig)
	if err != nil {
		return err
	}
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

// textColorOn picks dark or light text for a fill color.
func textColorOn(fill color.Color, dark color.Color) color.Color {
	r, g, b, _ := fill.RGBA()
	lum := (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 0xffff
	if lum > 0.6 {
		return dark
	}
	return color.White
}

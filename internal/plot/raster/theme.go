package raster

import "image/color"

// Theme holds the colors of a layout template.
type Theme struct {
	Paper     color.Color
	Plot      color.Color
	Grid      color.Color
	ZeroLine  color.Color
	Text      color.Color
	SliceEdge color.Color
	Colorway  []color.Color
}

func hex(s string) color.Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// WhiteTheme mirrors the plotly_white template.
var WhiteTheme = Theme{
	Paper:     color.White,
	Plot:      color.White,
	Grid:      hex("#EBF0F8"),
	ZeroLine:  hex("#EBF0F8"),
	Text:      hex("#2a3f5f"),
	SliceEdge: color.White,
	Colorway: []color.Color{
		hex("#636efa"), hex("#EF553B"), hex("#00cc96"), hex("#ab63fa"), hex("#FFA15A"),
		hex("#19d3f3"), hex("#FF6692"), hex("#B6E880"), hex("#FF97FF"), hex("#FECB52"),
	},
}

func (t Theme) colorway(i int) color.Color {
	return t.Colorway[i%len(t.Colorway)]
}

package raster

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	cases := map[string]color.NRGBA{
		"rgba(54, 162, 235, 0.5)": {R: 54, G: 162, B: 235, A: 128},
		"rgba(54,162,235,1)":      {R: 54, G: 162, B: 235, A: 255},
		"rgb(255, 99, 132)":       {R: 255, G: 99, B: 132, A: 255},
		"rgb(100% 0% 0% / 50%)":   {R: 255, G: 0, B: 0, A: 128},
		"#fff":                    {R: 255, G: 255, B: 255, A: 255},
		"#f008":                   {R: 255, G: 0, B: 0, A: 136},
		"#36A2EB":                 {R: 54, G: 162, B: 235, A: 255},
		"#36a2eb80":               {R: 54, G: 162, B: 235, A: 128},
		"  Red ":                  {R: 255, G: 0, B: 0, A: 255},
		"transparent":             {},
	}
	for input, want := range cases {
		got, err := ParseColor(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}
}

func TestParseColor_Invalid(t *testing.T) {
	for _, input := range []string{"", "#12", "#zzzzzz", "rgb(1, 2)", "rgba(1, 2, 3, x)", "rgb(1, 2, 3", "notacolor"} {
		_, err := ParseColor(input)
		assert.Error(t, err, input)
	}
}

func TestPick(t *testing.T) {
	fallback := color.NRGBA{R: 1, A: 255}

	assert.Equal(t, fallback, pick(nil, 3, fallback))
	assert.Equal(t, fallback, pick([]string{"bogus"}, 0, fallback))
	assert.Equal(t, color.NRGBA{B: 255, A: 255}, pick([]string{"red", "blue"}, 3, fallback))
}

package chart_render

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"chart-render/internal/plot/raster"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRenderer(t *testing.T) (*Renderer, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	rr, err := raster.New(raster.Options{})
	require.NoError(t, err)
	var stdout, stderr bytes.Buffer
	return NewRenderer(rr, &stdout, &stderr), &stdout, &stderr
}

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chart.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRender_Success(t *testing.T) {
	r, stdout, stderr := newTestRenderer(t)
	input := writeInput(t, `{
		"type": "line",
		"data": {"labels": ["Jan", "Feb"], "datasets": [{"label": "Revenue", "data": [100, 150]}]},
		"options": {"plugins": {"title": {"display": true, "text": "Revenue"}}}
	}`)
	output := filepath.Join(t.TempDir(), "nested", "dir", "chart.png")

	fig, err := r.Export(input, output)
	require.NoError(t, err)
	assert.Equal(t, "Revenue", fig.Layout.Title)
	assert.Equal(t, "Successfully rendered chart to: "+output+"\n", stdout.String())
	assert.Empty(t, stderr.String())

	f, err := os.Open(output)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 1200, 800), img.Bounds())
}

func TestRender_ReportsSuccessFlag(t *testing.T) {
	r, stdout, stderr := newTestRenderer(t)
	input := writeInput(t, `{"type": "bar", "data": {"labels": ["Q1", "Q2"], "datasets": [{"data": [5, 7]}]}}`)
	output := filepath.Join(t.TempDir(), "bar.png")

	assert.True(t, r.Render(input, output))
	assert.Equal(t, "Successfully rendered chart to: "+output+"\n", stdout.String())

	assert.False(t, r.Render(filepath.Join(t.TempDir(), "missing.json"), output))
	assert.Contains(t, stderr.String(), "Error: Configuration file not found: ")
}

func TestRenderFile_ReturnsFigure(t *testing.T) {
	r, _, _ := newTestRenderer(t)
	input := writeInput(t, `{"type": "pie", "data": {"labels": ["a", "b"], "datasets": [{"data": [1, 3]}]}, "options": {"plugins": {"title": {"text": "Share"}}}}`)

	fig, err := r.RenderFile(input, filepath.Join(t.TempDir(), "pie.png"))
	require.NoError(t, err)
	assert.Equal(t, "Share", fig.Layout.Title)
	require.Len(t, fig.Traces, 1)
	assert.Equal(t, []float64{1, 3}, fig.Traces[0].Values)
}

func TestRender_MissingInput(t *testing.T) {
	r, stdout, stderr := newTestRenderer(t)
	input := filepath.Join(t.TempDir(), "missing.json")
	output := filepath.Join(t.TempDir(), "out.png")

	_, err := r.Export(input, output)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, stdout.String())
	assert.Equal(t, "Error: Configuration file not found: "+input+"\n", stderr.String())

	_, err = os.Stat(output)
	assert.True(t, os.IsNotExist(err))
}

func TestRender_MalformedInput(t *testing.T) {
	r, _, stderr := newTestRenderer(t)
	input := writeInput(t, `{not valid json`)

	_, err := r.Export(input, filepath.Join(t.TempDir(), "out.png"))
	assert.Contains(t, stderr.String(), "Error: Invalid JSON in configuration file: ")
	assert.Contains(t, stderr.String(), "invalid character")
	assert.ErrorIs(t, err, ErrMalformedInput)
	assert.False(t, errors.Is(err, ErrRenderFailed))
}

func TestRender_NotAnObject(t *testing.T) {
	r, _, stderr := newTestRenderer(t)
	input := writeInput(t, `["bar"]`)

	_, err := r.Export(input, filepath.Join(t.TempDir(), "out.png"))
	assert.ErrorIs(t, err, ErrRenderFailed)
	assert.Contains(t, stderr.String(), "Error rendering chart: ")
}

func TestRender_UnwritableOutput(t *testing.T) {
	r, _, stderr := newTestRenderer(t)
	input := writeInput(t, `{"data": {"labels": ["a"], "datasets": [{"data": [1]}]}}`)

	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	_, err := r.Export(input, filepath.Join(blocker, "out.png"))
	assert.ErrorIs(t, err, ErrRenderFailed)
	assert.Contains(t, stderr.String(), "Error rendering chart: ")

	// the output path itself is a directory
	_, err = r.RenderFile(input, t.TempDir())
	assert.ErrorIs(t, err, ErrRenderFailed)
}

func TestRender_UnknownTypeStillWritesImage(t *testing.T) {
	r, _, _ := newTestRenderer(t)
	input := writeInput(t, `{"type": "doughnut", "data": {"labels": ["a"], "datasets": [{"data": [1]}]}}`)
	output := filepath.Join(t.TempDir(), "empty.png")

	fig, err := r.RenderFile(input, output)
	require.NoError(t, err)
	assert.Empty(t, fig.Traces)

	info, err := os.Stat(output)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestRender_ExtremeValues(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "line far from zero", doc: `{"type": "line", "data": {"labels": ["a", "b"], "datasets": [{"data": [1e16, 1.0000000000000002e16]}]}}`},
		{name: "scatter overflowing span", doc: `{"type": "scatter", "data": {"labels": ["a", "b"], "datasets": [{"data": [-1e308, 1e308]}]}}`},
		{name: "bar at float64 limits", doc: `{"type": "bar", "data": {"labels": ["a", "b"], "datasets": [{"data": [1.7e308, -1.7e308]}]}}`},
		{name: "line without numbers", doc: `{"type": "line", "data": {"labels": ["a", "b"], "datasets": [{"data": [null, "x"]}]}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _, _ := newTestRenderer(t)
			output := filepath.Join(t.TempDir(), "chart.png")

			_, err := r.RenderFile(writeInput(t, tt.doc), output)
			require.NoError(t, err)

			f, err := os.Open(output)
			require.NoError(t, err)
			defer f.Close()
			cfg, err := png.DecodeConfig(f)
			require.NoError(t, err)
			assert.Equal(t, 1200, cfg.Width)
			assert.Equal(t, 800, cfg.Height)
		})
	}
}

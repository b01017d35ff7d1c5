package raster

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func TestLoadFonts_Embedded(t *testing.T) {
	fonts, err := LoadFonts(nil)
	require.NoError(t, err)
	assert.Empty(t, fonts.Path())

	face, err := fonts.Face(14)
	require.NoError(t, err)
	again, err := fonts.Face(14)
	require.NoError(t, err)
	assert.Same(t, face, again)
}

func TestLoadFonts_FirstReadablePath(t *testing.T) {
	dir := t.TempDir()
	broken := filepath.Join(dir, "broken.ttf")
	require.NoError(t, os.WriteFile(broken, []byte("not a font"), 0644))
	good := filepath.Join(dir, "goregular.ttf")
	require.NoError(t, os.WriteFile(good, goregular.TTF, 0644))

	fonts, err := LoadFonts([]string{filepath.Join(dir, "missing.ttf"), broken, good})
	require.NoError(t, err)
	assert.Equal(t, good, fonts.Path())

	_, err = fonts.Face(20)
	assert.NoError(t, err)
}

func TestLoadFonts_FallsBackToEmbedded(t *testing.T) {
	fonts, err := LoadFonts([]string{filepath.Join(t.TempDir(), "missing.ttf")})
	require.NoError(t, err)
	assert.Empty(t, fonts.Path())
}

package raster

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	logging "chart-render/internal/infra/log"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	embeddedOnce sync.Once
	embeddedFont *truetype.Font
	embeddedErr  error
)

func goRegular() (*truetype.Font, error) {
	embeddedOnce.Do(func() {
		embeddedFont, embeddedErr = truetype.Parse(goregular.TTF)
	})
	return embeddedFont, embeddedErr
}

// Fonts hands out font faces by point size.
// A font file from the candidate list is preferred; the embedded Go Regular face is the fallback.
type Fonts struct {
	path  string
	faces map[float64]font.Face
}

// LoadFonts picks the first readable font among paths.
func LoadFonts(paths []string) (*Fonts, error) {
	f := &Fonts{faces: make(map[float64]font.Face)}

	for _, p := range paths {
		expanded := expandPath(p)
		if _, err := os.Stat(expanded); err != nil {
			continue
		}
		face, err := gg.LoadFontFace(expanded, 12)
		if err != nil {
			logging.LogWarn("Font file exists but failed to load",
				zap.String("path", expanded),
				zap.Error(err))
			continue
		}
		f.path = expanded
		f.faces[12] = face
		logging.LogDebug("Loaded font", zap.String("path", expanded))
		return f, nil
	}

	if len(paths) > 0 {
		logging.LogWarn("No configured font could be loaded, using embedded Go Regular",
			zap.Int("paths_checked", len(paths)))
	}
	if _, err := goRegular(); err != nil {
		return nil, fmt.Errorf("failed to parse embedded font: %w", err)
	}
	return f, nil
}

// Face returns a face of the given point size.
func (f *Fonts) Face(size float64) (font.Face, error) {
	if face, ok := f.faces[size]; ok {
		return face, nil
	}

	var (
		face font.Face
		err  error
	)
	if f.path != "" {
		face, err = gg.LoadFontFace(f.path, size)
		if err != nil {
			return nil, fmt.Errorf("failed to load font %s: %w", f.path, err)
		}
	} else {
		ttf, perr := goRegular()
		if perr != nil {
			return nil, fmt.Errorf("failed to parse embedded font: %w", perr)
		}
		face = truetype.NewFace(ttf, &truetype.Options{Size: size, Hinting: font.HintingFull})
	}
	f.faces[size] = face
	return face, nil
}

// Path returns the loaded font file, empty for the embedded font.
func (f *Fonts) Path() string {
	return f.path
}

func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[1:])
		}
	}
	return path
}

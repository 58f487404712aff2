// Package overlay implements the watermark composition engine: font
// management, width-driven font fitting, the paint mask, the regional blur
// pass, and the geometry and drawing of the two text clusters (left info
// cluster and bottom-right watermark cluster).
package overlay

import (
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Weight selects one of the two embedded font weights.
type Weight int

const (
	Regular Weight = iota
	Bold
)

// FontManager provides font.Face instances at arbitrary sizes from the
// embedded Go fonts. The overlay never depends on fonts being installed on
// the host.
type FontManager struct {
	regular *opentype.Font
	bold    *opentype.Font
}

// NewFontManager parses the embedded fonts once; faces are derived per size.
func NewFontManager() (*FontManager, error) {
	reg, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse regular font: %w", err)
	}
	bld, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse bold font: %w", err)
	}
	return &FontManager{regular: reg, bold: bld}, nil
}

// Face returns a font.Face for the given weight and pixel size. On face
// construction failure it falls back to the built-in basic font rather than
// failing the render.
func (m *FontManager) Face(w Weight, size int) font.Face {
	if size < 1 {
		size = 1
	}
	src := m.regular
	if w == Bold {
		src = m.bold
	}
	face, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13
	}
	return face
}

// Builder returns a size->face callback for the fitter.
func (m *FontManager) Builder(w Weight) func(size int) font.Face {
	return func(size int) font.Face { return m.Face(w, size) }
}

// MeasureString returns the advance width of s in pixels for the given face.
func MeasureString(f font.Face, s string) float64 {
	return float64(font.MeasureString(f, s)) / 64.0
}

package overlay

import (
	"image"

	"github.com/fogleman/gg"
)

// strokeAlpha is the opacity of a single brush stroke. Strokes accumulate
// where they overlap; for compositing purposes any painted pixel is treated
// as erased.
const strokeAlpha = 0.95

// MaskBuffer is the off-screen raster that accumulates "erase here" brush
// strokes as soft white circles on a transparent background. Its dimensions
// always equal the working canvas; Resize reallocates and implicitly clears
// so stale strokes never survive a dimension change.
type MaskBuffer struct {
	gc *gg.Context
}

// NewMaskBuffer returns a cleared mask of the given dimensions.
func NewMaskBuffer(w, h int) *MaskBuffer {
	m := &MaskBuffer{}
	m.Resize(w, h)
	return m
}

// Resize reallocates the mask raster. All previous strokes are discarded.
func (m *MaskBuffer) Resize(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	m.gc = gg.NewContext(w, h)
}

// Width returns the mask raster width.
func (m *MaskBuffer) Width() int { return m.gc.Width() }

// Height returns the mask raster height.
func (m *MaskBuffer) Height() int { return m.gc.Height() }

// PaintStroke draws one filled brush circle centered at (x,y) in buffer
// coordinates. Callers converting pointer events must map through
// MapDisplayToBuffer first.
func (m *MaskBuffer) PaintStroke(x, y, diameter float64) {
	m.gc.SetRGBA(1, 1, 1, strokeAlpha)
	m.gc.DrawCircle(x, y, diameter/2)
	m.gc.Fill()
}

// HasContent scans the alpha channel and reports whether any pixel has been
// painted. Render paths use it to skip the blur pass entirely on untouched
// masks.
func (m *MaskBuffer) HasContent() bool {
	img, ok := m.gc.Image().(*image.RGBA)
	if !ok {
		return false
	}
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] > 0 {
			return true
		}
	}
	return false
}

// Clear resets every pixel to fully transparent in one pass.
func (m *MaskBuffer) Clear() {
	m.gc.SetRGBA(0, 0, 0, 0)
	m.gc.Clear()
}

// Image exposes the raw raster for alpha-intersection compositing.
func (m *MaskBuffer) Image() *image.RGBA {
	img, _ := m.gc.Image().(*image.RGBA)
	return img
}

// MapDisplayToBuffer converts a pointer position in display coordinates to
// buffer coordinates, accounting for the displayed element being scaled
// relative to the raster's true pixel dimensions. The mapping is applied
// independently per axis.
func (m *MaskBuffer) MapDisplayToBuffer(pointerX, pointerY, originX, originY, displayW, displayH float64) (float64, float64) {
	if displayW <= 0 || displayH <= 0 {
		return 0, 0
	}
	bx := (pointerX - originX) * float64(m.Width()) / displayW
	by := (pointerY - originY) * float64(m.Height()) / displayH
	return bx, by
}

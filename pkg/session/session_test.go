package session

import (
	"bytes"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/Fepozopo/timemark/pkg/imaging"
	"github.com/Fepozopo/timemark/pkg/overlay"
)

func testFonts(t *testing.T) *overlay.FontManager {
	t.Helper()
	m, err := overlay.NewFontManager()
	if err != nil {
		t.Fatalf("font manager: %v", err)
	}
	return m
}

func gradientImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := img.PixOffset(x, y)
			img.Pix[i+0] = uint8(x * 255 / w)
			img.Pix[i+1] = uint8(y * 255 / h)
			img.Pix[i+2] = uint8((x*x + y*y) % 256)
			img.Pix[i+3] = 255
		}
	}
	return img
}

func TestEmptySessionRejectsOperations(t *testing.T) {
	s := New(testFonts(t))
	if s.State() != StateEmpty {
		t.Fatalf("fresh session state %v", s.State())
	}
	if s.Canvas() != nil || s.Mask() != nil {
		t.Fatalf("fresh session should expose no canvas or mask")
	}
	for name, err := range map[string]error{
		"paint":  s.PaintStroke(10, 10, 20),
		"clear":  s.ClearMask(),
		"render": s.Render(),
		"reset":  s.Reset(),
		"export": s.ExportPNG(&bytes.Buffer{}),
	} {
		if err != ErrNoImage {
			t.Fatalf("%s on empty session: got %v, want ErrNoImage", name, err)
		}
	}
}

func TestImportDecodesAndLoads(t *testing.T) {
	s := New(testFonts(t))
	var buf bytes.Buffer
	if err := png.Encode(&buf, gradientImage(320, 240)); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := s.Import(&buf); err != nil {
		t.Fatalf("import: %v", err)
	}
	if s.State() != StateLoaded {
		t.Fatalf("state %v after import", s.State())
	}
	if s.Canvas().Bounds().Dx() != 320 || s.Canvas().Bounds().Dy() != 240 {
		t.Fatalf("canvas %v", s.Canvas().Bounds())
	}
	if s.Mask().Width() != 320 || s.Mask().Height() != 240 {
		t.Fatalf("mask %dx%d", s.Mask().Width(), s.Mask().Height())
	}
}

func TestImportFailurePreservesState(t *testing.T) {
	s := New(testFonts(t))
	if err := s.ImportImage(gradientImage(100, 80)); err != nil {
		t.Fatalf("import: %v", err)
	}
	before := imaging.CloneNRGBA(s.Canvas())

	err := s.Import(strings.NewReader("this is not an image"))
	if err == nil {
		t.Fatalf("expected decode error")
	}
	if s.State() != StateLoaded {
		t.Fatalf("state %v after failed import", s.State())
	}
	if !imaging.Equal(s.Canvas(), before) {
		t.Fatalf("failed import disturbed the canvas")
	}
}

func TestImportCapsOversizedImages(t *testing.T) {
	s := New(testFonts(t))
	if err := s.ImportImage(gradientImage(3000, 1500)); err != nil {
		t.Fatalf("import: %v", err)
	}
	b := s.Canvas().Bounds()
	if b.Dx() != MaxCanvasDim {
		t.Fatalf("larger dimension %d, want %d", b.Dx(), MaxCanvasDim)
	}
	if b.Dy() != 1250 {
		t.Fatalf("aspect not preserved: height %d, want 1250", b.Dy())
	}
	if s.Mask().Width() != b.Dx() || s.Mask().Height() != b.Dy() {
		t.Fatalf("mask %dx%d does not track canvas %v", s.Mask().Width(), s.Mask().Height(), b)
	}
}

func TestReimportClearsStaleStrokes(t *testing.T) {
	s := New(testFonts(t))
	if err := s.ImportImage(gradientImage(200, 200)); err != nil {
		t.Fatalf("import: %v", err)
	}
	if err := s.PaintStroke(100, 100, 40); err != nil {
		t.Fatalf("paint: %v", err)
	}
	if !s.Mask().HasContent() {
		t.Fatalf("stroke did not register")
	}
	if err := s.ImportImage(gradientImage(300, 150)); err != nil {
		t.Fatalf("reimport: %v", err)
	}
	if s.Mask().HasContent() {
		t.Fatalf("stale strokes survived a reimport")
	}
	if s.Mask().Width() != 300 || s.Mask().Height() != 150 {
		t.Fatalf("mask %dx%d after reimport", s.Mask().Width(), s.Mask().Height())
	}
}

func TestPaintThenClearRestoresCanvasExactly(t *testing.T) {
	s := New(testFonts(t))
	if err := s.ImportImage(gradientImage(240, 180)); err != nil {
		t.Fatalf("import: %v", err)
	}
	pristine := imaging.CloneNRGBA(s.Canvas())

	if err := s.PaintStroke(120, 90, 50); err != nil {
		t.Fatalf("paint: %v", err)
	}
	if imaging.Equal(s.Canvas(), pristine) {
		t.Fatalf("paint stroke should visibly blur the canvas")
	}

	if err := s.ClearMask(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if !imaging.Equal(s.Canvas(), pristine) {
		t.Fatalf("clearing the mask must restore the canvas byte-identically")
	}
}

func TestRenderComposites(t *testing.T) {
	s := New(testFonts(t))
	if err := s.ImportImage(gradientImage(1200, 1600)); err != nil {
		t.Fatalf("import: %v", err)
	}
	s.Fields = overlay.Fields{Time: "05:37", DateISO: "2026-01-05", Weekday: "Thứ Năm"}
	base := imaging.CloneNRGBA(s.Canvas())

	if err := s.Render(); err != nil {
		t.Fatalf("render: %v", err)
	}
	if s.State() != StateComposited {
		t.Fatalf("state %v after render", s.State())
	}
	if imaging.Equal(s.Canvas(), base) {
		t.Fatalf("render produced no visible overlay")
	}
	// pixels well above the overlay band are untouched
	i := s.Canvas().PixOffset(600, 200)
	j := base.PixOffset(600, 200)
	for k := 0; k < 4; k++ {
		if s.Canvas().Pix[i+k] != base.Pix[j+k] {
			t.Fatalf("pixel outside overlay band changed")
		}
	}
}

func TestRenderWithEmptyFieldsFallsBack(t *testing.T) {
	s := New(testFonts(t))
	if err := s.ImportImage(gradientImage(800, 1000)); err != nil {
		t.Fatalf("import: %v", err)
	}
	base := imaging.CloneNRGBA(s.Canvas())
	if err := s.Render(); err != nil {
		t.Fatalf("render: %v", err)
	}
	if imaging.Equal(s.Canvas(), base) {
		t.Fatalf("render with default fields should still draw the overlay")
	}
}

func TestResetRestoresOriginal(t *testing.T) {
	s := New(testFonts(t))
	if err := s.ImportImage(gradientImage(400, 300)); err != nil {
		t.Fatalf("import: %v", err)
	}
	pristine := imaging.CloneNRGBA(s.Canvas())

	if err := s.PaintStroke(200, 150, 60); err != nil {
		t.Fatalf("paint: %v", err)
	}
	if err := s.Render(); err != nil {
		t.Fatalf("render: %v", err)
	}
	if err := s.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if s.State() != StateLoaded {
		t.Fatalf("state %v after reset", s.State())
	}
	if !imaging.Equal(s.Canvas(), pristine) {
		t.Fatalf("reset must restore the imported pixels byte-identically")
	}
	if s.Mask().HasContent() {
		t.Fatalf("reset must clear the mask")
	}
}

func TestExportPNGRoundTrip(t *testing.T) {
	s := New(testFonts(t))
	if err := s.ImportImage(gradientImage(150, 120)); err != nil {
		t.Fatalf("import: %v", err)
	}
	if err := s.Render(); err != nil {
		t.Fatalf("render: %v", err)
	}
	var buf bytes.Buffer
	if err := s.ExportPNG(&buf); err != nil {
		t.Fatalf("export: %v", err)
	}
	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode exported png: %v", err)
	}
	if decoded.Bounds().Dx() != 150 || decoded.Bounds().Dy() != 120 {
		t.Fatalf("exported dimensions %v", decoded.Bounds())
	}
}

func TestStateString(t *testing.T) {
	for st, want := range map[State]string{
		StateEmpty:      "empty",
		StateLoaded:     "loaded",
		StateComposited: "composited",
	} {
		if got := st.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", st, got, want)
		}
	}
}

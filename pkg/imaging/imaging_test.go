package imaging

import (
	"image"
	"image/color"
	"testing"
)

func TestToNRGBAConvertsAndNormalizes(t *testing.T) {
	src := image.NewRGBA(image.Rect(2, 3, 12, 13))
	for y := src.Bounds().Min.Y; y < src.Bounds().Max.Y; y++ {
		for x := src.Bounds().Min.X; x < src.Bounds().Max.X; x++ {
			src.SetRGBA(x, y, color.RGBA{R: 10, G: 20, B: 30, A: 255})
		}
	}

	out := ToNRGBA(src)
	if out.Bounds().Min != (image.Point{}) {
		t.Fatalf("expected zero-origin bounds, got %v", out.Bounds())
	}
	if out.Bounds().Dx() != 10 || out.Bounds().Dy() != 10 {
		t.Fatalf("unexpected dimensions %dx%d", out.Bounds().Dx(), out.Bounds().Dy())
	}
	i := out.PixOffset(5, 5)
	if out.Pix[i] != 10 || out.Pix[i+1] != 20 || out.Pix[i+2] != 30 || out.Pix[i+3] != 255 {
		t.Fatalf("pixel not preserved: %v", out.Pix[i:i+4])
	}
}

func TestToNRGBACopiesNRGBAInput(t *testing.T) {
	src := makeSolidNRGBA(4, 4, color.NRGBA{R: 1, G: 2, B: 3, A: 4})
	got := ToNRGBA(src)
	if !Equal(src, got) {
		t.Fatalf("copy differs from source")
	}
	got.Pix[0] = 99
	if src.Pix[0] == 99 {
		t.Fatalf("expected a copy, got an alias of the input")
	}
}

func TestCloneNRGBAIsIndependent(t *testing.T) {
	src := makeSolidNRGBA(6, 6, color.NRGBA{R: 100, G: 100, B: 100, A: 255})
	dup := CloneNRGBA(src)
	if !Equal(src, dup) {
		t.Fatalf("clone differs from source")
	}
	dup.Pix[0] = 0
	if Equal(src, dup) {
		t.Fatalf("mutating the clone leaked into the source")
	}
}

func TestEqual(t *testing.T) {
	a := makeSolidNRGBA(3, 3, color.NRGBA{R: 9, A: 255})
	b := makeSolidNRGBA(3, 3, color.NRGBA{R: 9, A: 255})
	if !Equal(a, b) {
		t.Fatalf("identical images reported unequal")
	}
	c := makeSolidNRGBA(3, 4, color.NRGBA{R: 9, A: 255})
	if Equal(a, c) {
		t.Fatalf("different dimensions reported equal")
	}
	b.Pix[len(b.Pix)-1] = 0
	if Equal(a, b) {
		t.Fatalf("different bytes reported equal")
	}
}

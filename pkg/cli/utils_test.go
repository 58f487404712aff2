package cli

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func sampleImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 32, 24))
	for y := 0; y < 24; y++ {
		for x := 0; x < 32; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 8), G: uint8(y * 10), B: 50, A: 255})
		}
	}
	return img
}

func TestSaveAndLoadImagePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	if err := SaveImage(path, sampleImage()); err != nil {
		t.Fatalf("save: %v", err)
	}
	img, err := LoadImage(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if img.Bounds().Dx() != 32 || img.Bounds().Dy() != 24 {
		t.Fatalf("round-trip dimensions %v", img.Bounds())
	}
}

func TestSaveImageJPEG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jpg")
	if err := SaveImage(path, sampleImage()); err != nil {
		t.Fatalf("save: %v", err)
	}
	img, err := LoadImage(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if img.Bounds().Dx() != 32 || img.Bounds().Dy() != 24 {
		t.Fatalf("round-trip dimensions %v", img.Bounds())
	}
}

func TestSaveImageUnknownExtensionFallsBackToPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.raw")
	if err := SaveImage(path, sampleImage()); err != nil {
		t.Fatalf("save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(data) < 8 || string(data[1:4]) != "PNG" {
		t.Fatalf("expected PNG signature, got %v", data[:8])
	}
}

func TestLoadImageMissingFile(t *testing.T) {
	if _, err := LoadImage(filepath.Join(t.TempDir(), "nope.png")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestArgOrPrompt(t *testing.T) {
	got := argOrPrompt([]string{"t", "05:37"}, "t 05:37", "t", "unused: ")
	if got != "05:37" {
		t.Fatalf("inline argument: got %q", got)
	}
	got = argOrPrompt([]string{"d", "2026-01-05"}, "d 2026-01-05", "d", "unused: ")
	if got != "2026-01-05" {
		t.Fatalf("inline argument: got %q", got)
	}
}

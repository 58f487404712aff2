package overlay

import "testing"

func TestMaskBufferPaintAndClear(t *testing.T) {
	m := NewMaskBuffer(100, 80)
	if m.Width() != 100 || m.Height() != 80 {
		t.Fatalf("unexpected dimensions %dx%d", m.Width(), m.Height())
	}
	if m.HasContent() {
		t.Fatalf("fresh mask should be empty")
	}

	m.PaintStroke(50, 40, 20)
	if !m.HasContent() {
		t.Fatalf("painted mask should report content")
	}
	img := m.Image()
	if img == nil {
		t.Fatalf("mask image is nil")
	}
	if a := img.Pix[img.PixOffset(50, 40)+3]; a == 0 {
		t.Fatalf("stroke center should be painted")
	}
	if a := img.Pix[img.PixOffset(5, 5)+3]; a != 0 {
		t.Fatalf("far corner should be untouched, alpha %d", a)
	}

	m.Clear()
	if m.HasContent() {
		t.Fatalf("cleared mask should be empty")
	}
}

func TestMaskBufferResizeDiscardsStrokes(t *testing.T) {
	m := NewMaskBuffer(60, 60)
	m.PaintStroke(30, 30, 10)
	m.Resize(90, 45)
	if m.Width() != 90 || m.Height() != 45 {
		t.Fatalf("unexpected dimensions after resize: %dx%d", m.Width(), m.Height())
	}
	if m.HasContent() {
		t.Fatalf("resize must discard old strokes")
	}
}

func TestMaskBufferMinimumSize(t *testing.T) {
	m := NewMaskBuffer(0, -3)
	if m.Width() != 1 || m.Height() != 1 {
		t.Fatalf("degenerate sizes should clamp to 1x1, got %dx%d", m.Width(), m.Height())
	}
}

func TestMapDisplayToBuffer(t *testing.T) {
	m := NewMaskBuffer(1000, 500)
	// displayed at half resolution with a (10,20) screen origin
	bx, by := m.MapDisplayToBuffer(260, 145, 10, 20, 500, 250)
	if bx != 500 || by != 250 {
		t.Fatalf("got (%v,%v), want (500,250)", bx, by)
	}
	// degenerate display extents never divide by zero
	bx, by = m.MapDisplayToBuffer(100, 100, 0, 0, 0, 0)
	if bx != 0 || by != 0 {
		t.Fatalf("degenerate mapping should return origin, got (%v,%v)", bx, by)
	}
}

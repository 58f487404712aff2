package overlay

import (
	"fmt"
	"testing"
)

func TestComputeWatermarkGeometry(t *testing.T) {
	m, err := NewFontManager()
	if err != nil {
		t.Fatalf("font manager: %v", err)
	}
	for _, dim := range [][2]int{{1200, 1600}, {1600, 1200}, {2500, 2500}, {800, 600}} {
		W, H := dim[0], dim[1]
		t.Run(fmt.Sprintf("%dx%d", W, H), func(t *testing.T) {
			wm := ComputeWatermark(m, W, H)
			if wm.BrandSize < 12 || wm.CaptionSize < 10 {
				t.Fatalf("sizes below floors: brand %d caption %d", wm.BrandSize, wm.CaptionSize)
			}
			if wm.CaptionSize >= wm.BrandSize {
				t.Fatalf("caption %d should be smaller than brand %d", wm.CaptionSize, wm.BrandSize)
			}
			if wm.BrandX < 0 || wm.BrandX+wm.BrandWidth > float64(W) {
				t.Fatalf("brand [%f, %f] outside canvas width %d", wm.BrandX, wm.BrandX+wm.BrandWidth, W)
			}
			if wm.AccentW <= 0 || wm.AccentW >= wm.BrandWidth {
				t.Fatalf("accent width %f out of range (brand width %f)", wm.AccentW, wm.BrandWidth)
			}
			if wm.CaptionBaseY <= wm.BrandBaseY {
				t.Fatalf("caption baseline %f should sit below brand baseline %f", wm.CaptionBaseY, wm.BrandBaseY)
			}
			if wm.CaptionBaseY > float64(H) {
				t.Fatalf("caption baseline %f below canvas bottom %d", wm.CaptionBaseY, H)
			}
			if wm.ReservedRight <= 0 || wm.ReservedRight >= float64(W) {
				t.Fatalf("reserved span %f out of range for width %d", wm.ReservedRight, W)
			}
		})
	}
}

func TestLeftClusterAvoidsWatermark(t *testing.T) {
	m, err := NewFontManager()
	if err != nil {
		t.Fatalf("font manager: %v", err)
	}
	for _, dim := range [][2]int{{1200, 1600}, {1600, 1200}, {2000, 1500}, {2500, 2500}, {1080, 1920}} {
		W, H := dim[0], dim[1]
		t.Run(fmt.Sprintf("%dx%d", W, H), func(t *testing.T) {
			wm := ComputeWatermark(m, W, H)
			lc := ComputeLeftCluster(m, W, H, wm.ReservedRight, "05:37", "05/01/2026", "Thứ Năm")

			if lc.MaxRight > float64(W)-wm.ReservedRight+0.5 {
				t.Fatalf("left cluster reaches %f into reserved span (limit %f)",
					lc.MaxRight, float64(W)-wm.ReservedRight)
			}
			if lc.MaxRight > float64(W)*0.60+lc.LeftX+0.5 {
				t.Fatalf("left cluster %f exceeds its 60%% width budget", lc.MaxRight)
			}
		})
	}
}

func TestLeftClusterVerticalOrder(t *testing.T) {
	m, err := NewFontManager()
	if err != nil {
		t.Fatalf("font manager: %v", err)
	}
	W, H := 1200, 1600
	wm := ComputeWatermark(m, W, H)
	lc := ComputeLeftCluster(m, W, H, wm.ReservedRight, "05:37", "05/01/2026", "Thứ Năm")

	if lc.DividerTop >= lc.DividerBottom {
		t.Fatalf("divider top %f not above bottom %f", lc.DividerTop, lc.DividerBottom)
	}
	if lc.DateBaseY >= lc.DowBaseY {
		t.Fatalf("date baseline %f not above weekday baseline %f", lc.DateBaseY, lc.DowBaseY)
	}
	if lc.Addr1BaseY >= lc.Addr2BaseY {
		t.Fatalf("address line 1 baseline %f not above line 2 %f", lc.Addr1BaseY, lc.Addr2BaseY)
	}
	if lc.TimeBaselineY >= lc.Addr1BaseY {
		t.Fatalf("time baseline %f should sit above the address block at %f", lc.TimeBaselineY, lc.Addr1BaseY)
	}
	if lc.Addr2BaseY > float64(H) {
		t.Fatalf("address bottom %f below canvas %d", lc.Addr2BaseY, H)
	}
	if lc.DividerX <= lc.LeftX+lc.TimeWidth {
		t.Fatalf("divider %f should sit right of the time readout ending at %f", lc.DividerX, lc.LeftX+lc.TimeWidth)
	}
	if lc.MetaX <= lc.DividerX {
		t.Fatalf("meta column %f should sit right of the divider %f", lc.MetaX, lc.DividerX)
	}
	if lc.DividerWidth < 2 {
		t.Fatalf("divider width %f below minimum", lc.DividerWidth)
	}
}

func TestLeftClusterScalesWithResolution(t *testing.T) {
	m, err := NewFontManager()
	if err != nil {
		t.Fatalf("font manager: %v", err)
	}
	small := ComputeLeftCluster(m, 800, 600, ComputeWatermark(m, 800, 600).ReservedRight,
		"05:37", "05/01/2026", "Thứ Năm")
	large := ComputeLeftCluster(m, 2400, 1800, ComputeWatermark(m, 2400, 1800).ReservedRight,
		"05:37", "05/01/2026", "Thứ Năm")
	if large.TimeSize <= small.TimeSize {
		t.Fatalf("time size should grow with resolution: %d vs %d", large.TimeSize, small.TimeSize)
	}
	if large.AddrSize < small.AddrSize {
		t.Fatalf("address size should not shrink with resolution: %d vs %d", large.AddrSize, small.AddrSize)
	}
}

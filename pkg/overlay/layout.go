package overlay

import (
	"math"

	"golang.org/x/image/font"
)

// Fixed overlay strings. The brand name renders as two concatenated
// substrings in two colors; the address block is a constant two-liner.
const (
	BrandAccent  = "Time"
	BrandRest    = "mark"
	BrandCaption = "100% Chân thực"

	AddressLine1 = "268B Võ Nguyên Giáp, Bắc Mỹ Phú, Ngũ"
	AddressLine2 = "Hành Sơn, Đà Nẵng 550000"
)

// TimeScaleY is the non-uniform vertical stretch applied to the time string
// (width unscaled) for the tall-narrow numeral look.
const TimeScaleY = 1.50

// Assumed vertical extents of the time glyphs as ratios of the font size,
// used to span the divider against the stretched time string.
const (
	timeAscentRatio  = 0.80
	timeDescentRatio = 0.10
)

// Fields is the user-editable scalar state driving the overlay text. It is
// recomputed into pixels on every render and never cached as pixels.
type Fields struct {
	Time    string // "HH:MM"
	DateISO string // "YYYY-MM-DD"
	Weekday string // one of Weekdays
}

// Resolve applies the fixed fallback policy: empty time or weekday and any
// malformed date are silently replaced, never rendered blank.
func (f Fields) Resolve() (timeVal, dateText, dowText string) {
	timeVal = f.Time
	if timeVal == "" {
		timeVal = FallbackTime
	}
	dateText = FormatDateDDMMYYYY(f.DateISO)
	if dateText == "" {
		dateText = FallbackDate
	}
	dowText = f.Weekday
	if dowText == "" {
		dowText = FallbackWeekday
	}
	return
}

// WatermarkLayout is the computed geometry of the bottom-right brand cluster.
// All positions are in canvas pixels; baselines are alphabetic.
type WatermarkLayout struct {
	BrandSize   int
	CaptionSize int

	BrandX     float64 // left edge of the brand text
	BrandBaseY float64
	BrandWidth float64
	AccentW    float64 // advance of the accent-colored substring

	CaptionCenterX float64
	CaptionBaseY   float64

	ShadowBlur    float64
	ShadowOffsetY float64

	// ReservedRight is the horizontal span (from the right canvas edge,
	// including the cluster's own left padding) the left cluster must not
	// enter. This is the overlap-avoidance contract between the clusters.
	ReservedRight float64
}

// ComputeWatermark lays out the brand + caption cluster for a W x H canvas.
// Every derived size scales with BASE = min(W,H) so the overlay is
// resolution independent.
func ComputeWatermark(m *FontManager, W, H int) WatermarkLayout {
	base := minInt(W, H)
	padR := float64(clampInt(roundi(float64(W)*0.02), 10, 40))
	padB := float64(clampInt(roundi(float64(H)*0.03), 10, 60))

	full := BrandAccent + BrandRest

	wmStart := clampInt(roundi(float64(base)*0.050), 16, 44)
	wmFont := FitFontToWidth(full, m.Builder(Bold), wmStart, 12, math.Round(float64(W)*0.35))
	subFont := clampInt(roundi(float64(wmFont)*0.55), 10, 24)

	brandFace := m.Face(Bold, wmFont)
	wmWidth := MeasureString(brandFace, full)
	accentW := MeasureString(brandFace, BrandAccent)

	startX := float64(W) - padR - wmWidth
	centerX := startX + wmWidth/2
	yBottom := float64(H) - padB

	capFace := m.Face(Bold, subFont)
	yTop := yBottom - math.Round(float64(subFont)*1.15)

	return WatermarkLayout{
		BrandSize:      wmFont,
		CaptionSize:    subFont,
		BrandX:         startX,
		BrandBaseY:     yTop - faceDescent(brandFace),
		BrandWidth:     wmWidth,
		AccentW:        accentW,
		CaptionCenterX: centerX,
		CaptionBaseY:   yBottom - faceDescent(capFace),
		ShadowBlur:     math.Round(float64(base) * 0.004),
		ShadowOffsetY:  math.Round(float64(base) * 0.001),
		ReservedRight:  padR + math.Round(wmWidth) + float64(clampInt(roundi(float64(W)*0.03), 12, 40)),
	}
}

// LeftClusterLayout is the computed geometry of the bottom-left info cluster:
// the stretched time readout, the accent divider, the date/weekday column,
// and the two address lines.
type LeftClusterLayout struct {
	TimeSize int
	MetaSize int
	AddrSize int

	LeftX         float64
	TimeBaselineY float64
	TimeWidth     float64

	DividerX      float64
	DividerTop    float64
	DividerBottom float64
	DividerWidth  float64

	MetaX     float64
	DateBaseY float64
	DowBaseY  float64

	Addr1BaseY float64
	Addr2BaseY float64
	AddrLineH  float64

	ShadowBlur    float64
	ShadowOffsetY float64

	// MaxRight is the rightmost extent any of the cluster's text or divider
	// pixels can reach; it never exceeds W - reservedRight for canvases where
	// the minimum-usable-width floors do not engage.
	MaxRight float64
}

// ComputeLeftCluster lays out the left info cluster, constrained to 60% of
// the canvas width and to the span the watermark did not reserve.
func ComputeLeftCluster(m *FontManager, W, H int, reservedRight float64, timeVal, dateText, dowText string) LeftClusterLayout {
	base := minInt(W, H)

	leftMaxWidth := math.Round(float64(W) * 0.60)
	leftX := float64(clampInt(roundi(float64(W)*0.03), 10, 42))
	bottomPad := float64(clampInt(roundi(float64(H)*0.04), 10, 70))

	rightLimit := math.Min(leftX+leftMaxWidth, float64(W)-reservedRight)
	maxWidth := math.Max(150, rightLimit-leftX)

	shadowBlur := math.Round(float64(base) * 0.004)

	addrStart := clampInt(roundi(float64(base)*0.040), 12, 34)
	addrFont := FitFontToWidth(AddressLine1, m.Builder(Regular), addrStart, 10, maxWidth)

	addrLineH := math.Round(float64(addrFont) * 1.18)
	addrBlockH := addrLineH * 2
	gapMetaToAddr := float64(clampInt(roundi(float64(base)*0.030), 10, 36))

	timeStart := clampInt(roundi(float64(base)*0.085), 28, 82)
	minMetaW := math.Round(maxWidth * 0.34)
	maxTimeW := math.Max(80, maxWidth-minMetaW)
	timeFont := FitFontToWidth(timeVal, m.Builder(Bold), timeStart, 18, maxTimeW)

	metaStart := clampInt(roundi(float64(timeFont)*0.40), 10, 36)

	addrBottomY := float64(H) - bottomPad
	timeBaselineY := addrBottomY - addrBlockH - gapMetaToAddr

	timeFace := m.Face(Bold, timeFont)
	timeW := MeasureString(timeFace, timeVal)

	gapX := float64(clampInt(roundi(float64(base)*0.018), 8, 22))
	lineX := leftX + timeW + gapX

	lineTop := timeBaselineY - math.Round(float64(timeFont)*timeAscentRatio*TimeScaleY)
	lineBottom := timeBaselineY + math.Round(float64(timeFont)*timeDescentRatio*TimeScaleY)

	metaX := lineX + gapX
	metaMaxW := math.Max(80, rightLimit-metaX)
	longer := dateText
	if len(dowText) > len(dateText) {
		longer = dowText
	}
	metaFont := FitFontToWidth(longer, m.Builder(Regular), metaStart, 10, metaMaxW)

	metaPad := math.Round(float64(metaFont) * 0.12)
	dateY := lineTop + float64(metaFont) + metaPad
	dowY := lineBottom - metaPad

	addrFace := m.Face(Regular, addrFont)
	addr2Base := addrBottomY - faceDescent(addrFace)
	metaFace := m.Face(Regular, metaFont)

	dividerW := math.Max(2, math.Round(float64(base)*0.004))

	maxRight := lineX + dividerW
	if r := leftX + math.Max(MeasureString(addrFace, AddressLine1), MeasureString(addrFace, AddressLine2)); r > maxRight {
		maxRight = r
	}
	if r := metaX + math.Max(MeasureString(metaFace, dateText), MeasureString(metaFace, dowText)); r > maxRight {
		maxRight = r
	}

	return LeftClusterLayout{
		TimeSize:      timeFont,
		MetaSize:      metaFont,
		AddrSize:      addrFont,
		LeftX:         leftX,
		TimeBaselineY: timeBaselineY,
		TimeWidth:     timeW,
		DividerX:      lineX,
		DividerTop:    lineTop,
		DividerBottom: lineBottom,
		DividerWidth:  dividerW,
		MetaX:         metaX,
		DateBaseY:     dateY,
		DowBaseY:      dowY,
		Addr1BaseY:    addr2Base - addrLineH,
		Addr2BaseY:    addr2Base,
		AddrLineH:     addrLineH,
		ShadowBlur:    shadowBlur,
		ShadowOffsetY: math.Round(float64(base) * 0.001),
		MaxRight:      maxRight,
	}
}

// faceDescent returns the descent of a face in pixels.
func faceDescent(f font.Face) float64 {
	return float64(f.Metrics().Descent) / 64.0
}

func roundi(v float64) int { return int(math.Round(v)) }

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

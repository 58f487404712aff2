package overlay

import (
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/Fepozopo/timemark/pkg/imaging"
)

var (
	colorWhite   = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	colorAccent  = color.NRGBA{R: 0xF2, G: 0xB6, B: 0x44, A: 0xFF} // #F2B644
	colorCaption = color.NRGBA{R: 0xE6, G: 0xE6, B: 0xE6, A: 0xFF}
)

// DrawOverlay renders the watermark cluster and then the left info cluster
// onto dst, in that order: the watermark reports the horizontal span it
// reserved and the left cluster is constrained by it. Returns the geometry
// both clusters were drawn with.
func DrawOverlay(dst *image.NRGBA, m *FontManager, f Fields) (WatermarkLayout, LeftClusterLayout) {
	b := dst.Bounds()
	w, h := b.Dx(), b.Dy()

	timeVal, dateText, dowText := f.Resolve()

	wm := ComputeWatermark(m, w, h)
	drawWatermark(dst, m, wm)

	lc := ComputeLeftCluster(m, w, h, wm.ReservedRight, timeVal, dateText, dowText)
	drawLeftCluster(dst, m, lc, timeVal, dateText, dowText)

	return wm, lc
}

// layerPair accumulates a cluster's pixels on two transparent full-canvas
// layers: one in the real colors, one in the uniform shadow tint. The shadow
// layer is blurred and offset before both are composited, which gives every
// glyph of the cluster the same soft drop shadow in a single blur pass.
type layerPair struct {
	ink    *gg.Context
	shadow *gg.Context
	tint   color.NRGBA
}

func newLayerPair(w, h int, shadowAlpha float64) *layerPair {
	return &layerPair{
		ink:    gg.NewContext(w, h),
		shadow: gg.NewContext(w, h),
		tint:   color.NRGBA{A: uint8(math.Round(shadowAlpha * 255))},
	}
}

func (p *layerPair) text(face font.Face, s string, x, baseY float64, col color.NRGBA) {
	p.ink.SetFontFace(face)
	p.ink.SetColor(col)
	p.ink.DrawString(s, x, baseY)

	p.shadow.SetFontFace(face)
	p.shadow.SetColor(p.tint)
	p.shadow.DrawString(s, x, baseY)
}

func (p *layerPair) image(colored, shadowed *image.NRGBA, x, y int) {
	p.ink.DrawImage(colored, x, y)
	p.shadow.DrawImage(shadowed, x, y)
}

func (p *layerPair) compositeOnto(dst *image.NRGBA, blur, offsetY float64) {
	sh := imaging.ToNRGBA(p.shadow.Image())
	if blur > 0 {
		// canvas shadowBlur b maps to roughly sigma = b/2
		sh = imaging.GaussianBlur(sh, blur/2)
	}
	imaging.DrawOver(dst, sh, 0, int(math.Round(offsetY)))
	imaging.DrawOver(dst, imaging.ToNRGBA(p.ink.Image()), 0, 0)
}

func drawWatermark(dst *image.NRGBA, m *FontManager, wm WatermarkLayout) {
	b := dst.Bounds()
	p := newLayerPair(b.Dx(), b.Dy(), 0.22)

	capFace := m.Face(Bold, wm.CaptionSize)
	capW := MeasureString(capFace, BrandCaption)
	p.text(capFace, BrandCaption, wm.CaptionCenterX-capW/2, wm.CaptionBaseY, colorCaption)

	brandFace := m.Face(Bold, wm.BrandSize)
	p.text(brandFace, BrandAccent, wm.BrandX, wm.BrandBaseY, colorAccent)
	p.text(brandFace, BrandRest, wm.BrandX+wm.AccentW, wm.BrandBaseY, colorWhite)

	p.compositeOnto(dst, wm.ShadowBlur, wm.ShadowOffsetY)
}

func drawLeftCluster(dst *image.NRGBA, m *FontManager, lc LeftClusterLayout, timeVal, dateText, dowText string) {
	b := dst.Bounds()
	p := newLayerPair(b.Dx(), b.Dy(), 0.25)

	// Time readout, stretched 1.5x vertically. The strip is rendered at the
	// fitted size and resampled taller, which keeps glyph widths untouched.
	timeFace := m.Face(Bold, lc.TimeSize)
	strip, baseline := renderTextStrip(timeFace, timeVal, colorWhite)
	shStrip, _ := renderTextStrip(timeFace, timeVal, p.tint)

	sw := strip.Bounds().Dx()
	sh := int(math.Round(float64(strip.Bounds().Dy()) * TimeScaleY))
	stretched := imaging.ResampleBilinear(strip, sw, sh)
	shStretched := imaging.ResampleBilinear(shStrip, sw, sh)

	scaledBase := math.Round(float64(baseline) * TimeScaleY)
	p.image(stretched, shStretched, int(lc.LeftX)-1, int(lc.TimeBaselineY-scaledBase))

	// Accent divider, drawn sharp (no shadow).
	p.ink.SetColor(colorAccent)
	p.ink.SetLineWidth(lc.DividerWidth)
	p.ink.DrawLine(lc.DividerX, lc.DividerTop, lc.DividerX, lc.DividerBottom)
	p.ink.Stroke()

	metaFace := m.Face(Regular, lc.MetaSize)
	p.text(metaFace, dateText, lc.MetaX, lc.DateBaseY, colorWhite)
	p.text(metaFace, dowText, lc.MetaX, lc.DowBaseY, colorWhite)

	addrFace := m.Face(Regular, lc.AddrSize)
	p.text(addrFace, AddressLine1, lc.LeftX, lc.Addr1BaseY, colorWhite)
	p.text(addrFace, AddressLine2, lc.LeftX, lc.Addr2BaseY, colorWhite)

	p.compositeOnto(dst, lc.ShadowBlur, lc.ShadowOffsetY)
}

// renderTextStrip rasterizes s on a tight transparent strip and returns it
// with the baseline offset inside the strip.
func renderTextStrip(face font.Face, s string, col color.NRGBA) (*image.NRGBA, int) {
	met := face.Metrics()
	asc := met.Ascent.Ceil()
	desc := met.Descent.Ceil()
	w := int(math.Ceil(MeasureString(face, s))) + 2
	h := asc + desc + 2
	gc := gg.NewContext(w, h)
	gc.SetFontFace(face)
	gc.SetColor(col)
	gc.DrawString(s, 1, float64(asc)+1)
	return imaging.ToNRGBA(gc.Image()), asc + 1
}

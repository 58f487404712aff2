package imaging

import "image"

// DrawOver composites src onto dst at offset (xoff,yoff) using the standard
// source-over operator on non-premultiplied values. dst is modified in place
// and returned.
func DrawOver(dst *image.NRGBA, src *image.NRGBA, xoff, yoff int) *image.NRGBA {
	if dst == nil || src == nil {
		return dst
	}
	dstB := dst.Bounds()
	srcB := src.Bounds()

	startX := maxInt(dstB.Min.X, xoff)
	startY := maxInt(dstB.Min.Y, yoff)
	endX := minInt(dstB.Max.X, xoff+srcB.Dx())
	endY := minInt(dstB.Max.Y, yoff+srcB.Dy())

	if startX >= endX || startY >= endY {
		return dst // nothing to do
	}

	for y := startY; y < endY; y++ {
		for x := startX; x < endX; x++ {
			si := src.PixOffset(x-xoff, y-yoff)
			di := dst.PixOffset(x, y)
			sa := float64(src.Pix[si+3]) / 255.0
			if sa == 0 {
				continue
			}
			sr := float64(src.Pix[si+0]) / 255.0
			sg := float64(src.Pix[si+1]) / 255.0
			sb := float64(src.Pix[si+2]) / 255.0

			dr := float64(dst.Pix[di+0]) / 255.0
			dg := float64(dst.Pix[di+1]) / 255.0
			db := float64(dst.Pix[di+2]) / 255.0
			da := float64(dst.Pix[di+3]) / 255.0

			outA := sa + da*(1-sa)
			outR := (1-sa)*dr + sa*sr
			outG := (1-sa)*dg + sa*sg
			outB := (1-sa)*db + sa*sb

			dst.Pix[di+0] = uint8(clampFloatToUint8(outR * 255.0))
			dst.Pix[di+1] = uint8(clampFloatToUint8(outG * 255.0))
			dst.Pix[di+2] = uint8(clampFloatToUint8(outB * 255.0))
			dst.Pix[di+3] = uint8(clampFloatToUint8(outA * 255.0))
		}
	}
	return dst
}

// MaskIntersect multiplies dst's alpha channel by the mask's alpha channel
// (the canvas "destination-in" operator): pixels the mask never touched
// become fully transparent, softly-painted pixels are attenuated. The mask
// must have the same dimensions as dst. RGB values are left untouched since
// dst is non-premultiplied.
func MaskIntersect(dst *image.NRGBA, mask *image.RGBA) *image.NRGBA {
	if dst == nil || mask == nil {
		return dst
	}
	b := dst.Bounds()
	mb := mask.Bounds()
	if b.Dx() != mb.Dx() || b.Dy() != mb.Dy() {
		return dst
	}
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			di := dst.PixOffset(b.Min.X+x, b.Min.Y+y)
			mi := mask.PixOffset(mb.Min.X+x, mb.Min.Y+y)
			ma := uint32(mask.Pix[mi+3])
			dst.Pix[di+3] = uint8(uint32(dst.Pix[di+3]) * ma / 255)
		}
	}
	return dst
}

// small helpers
func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

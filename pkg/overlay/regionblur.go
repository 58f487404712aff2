package overlay

import (
	"image"

	"github.com/Fepozopo/timemark/pkg/imaging"
)

// blurScale is the linear downsample factor of the blur approximation.
const blurScale = 0.15

// RegionalBlur produces a blurred copy of base clipped to the painted mask
// regions: the base is downsampled to blurScale and upsampled back with
// smoothed (bilinear) resampling, then alpha-intersected with the mask so
// every untouched pixel is fully transparent. The caller composites the
// result over the sharp base.
//
// The two-step resample approximates a box blur in O(pixels), cheap enough
// to recompute on every brush stroke. imaging.GaussianBlur can be swapped in
// here without touching callers.
//
// Returns nil when the mask has no content; callers skip compositing then.
func RegionalBlur(base *image.NRGBA, mask *MaskBuffer) *image.NRGBA {
	if base == nil || mask == nil || !mask.HasContent() {
		return nil
	}
	b := base.Bounds()
	w, h := b.Dx(), b.Dy()

	sw := int(float64(w) * blurScale)
	sh := int(float64(h) * blurScale)
	if sw < 1 {
		sw = 1
	}
	if sh < 1 {
		sh = 1
	}

	small := imaging.ResampleBilinear(base, sw, sh)
	blurred := imaging.ResampleBilinear(small, w, h)
	imaging.MaskIntersect(blurred, mask.Image())
	return blurred
}

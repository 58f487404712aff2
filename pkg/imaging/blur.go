package imaging

import (
	"image"
	"math"
	"sync"
)

// gaussianKernel1D generates a 1D Gaussian kernel with given sigma. Returns kernel and half-width radius.
func gaussianKernel1D(sigma float64) ([]float64, int) {
	if sigma <= 0 {
		return []float64{1.0}, 0
	}
	radius := int(math.Ceil(3 * sigma))
	sz := radius*2 + 1
	kern := make([]float64, sz)
	sum := 0.0
	for i := -radius; i <= radius; i++ {
		v := math.Exp(-0.5 * (float64(i) * float64(i)) / (sigma * sigma))
		kern[i+radius] = v
		sum += v
	}
	for i := range kern {
		kern[i] /= sum
	}
	return kern, radius
}

// GaussianBlur applies a separable gaussian blur to src and returns a new
// *image.NRGBA. Used for the soft text drop shadows; the regional blur over
// photo pixels uses the cheaper resample approximation instead.
func GaussianBlur(src *image.NRGBA, sigma float64) *image.NRGBA {
	if src == nil {
		return nil
	}
	kern, radius := gaussianKernel1D(sigma)
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	tmp := image.NewNRGBA(image.Rect(0, 0, w, h))
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))

	// horizontal pass
	var wg sync.WaitGroup
	for y := 0; y < h; y++ {
		wg.Add(1)
		go func(y int) {
			defer wg.Done()
			for x := 0; x < w; x++ {
				sr, sg, sb, sa := 0.0, 0.0, 0.0, 0.0
				for k := -radius; k <= radius; k++ {
					c := samplePixelClamped(src, x+k, y)
					wgt := kern[k+radius]
					sr += float64(c.R) * wgt
					sg += float64(c.G) * wgt
					sb += float64(c.B) * wgt
					sa += float64(c.A) * wgt
				}
				i := tmp.PixOffset(x, y)
				tmp.Pix[i+0] = uint8(clampFloatToUint8(sr))
				tmp.Pix[i+1] = uint8(clampFloatToUint8(sg))
				tmp.Pix[i+2] = uint8(clampFloatToUint8(sb))
				tmp.Pix[i+3] = uint8(clampFloatToUint8(sa))
			}
		}(y)
	}
	wg.Wait()

	// vertical pass
	for x := 0; x < w; x++ {
		wg.Add(1)
		go func(x int) {
			defer wg.Done()
			for y := 0; y < h; y++ {
				sr, sg, sb, sa := 0.0, 0.0, 0.0, 0.0
				for k := -radius; k <= radius; k++ {
					c := samplePixelClamped(tmp, x, y+k)
					wgt := kern[k+radius]
					sr += float64(c.R) * wgt
					sg += float64(c.G) * wgt
					sb += float64(c.B) * wgt
					sa += float64(c.A) * wgt
				}
				i := dst.PixOffset(x, y)
				dst.Pix[i+0] = uint8(clampFloatToUint8(sr))
				dst.Pix[i+1] = uint8(clampFloatToUint8(sg))
				dst.Pix[i+2] = uint8(clampFloatToUint8(sb))
				dst.Pix[i+3] = uint8(clampFloatToUint8(sa))
			}
		}(x)
	}
	wg.Wait()
	return dst
}

package overlay

import "golang.org/x/image/font"

// FitFontToWidth finds the largest integer font size, starting at startSize
// and never going below minSize, whose rendered width of text fits within
// maxWidth pixels. The faceFor callback builds a face for each candidate
// size. Deterministic and side-effect free; every text cluster (time,
// metadata, address lines, watermark, caption) reuses it with its own face
// template. Empty text or a non-positive max width yields minSize.
func FitFontToWidth(text string, faceFor func(size int) font.Face, startSize, minSize int, maxWidth float64) int {
	if text == "" || maxWidth <= 0 {
		return minSize
	}
	for size := startSize; size > minSize; size-- {
		if MeasureString(faceFor(size), text) <= maxWidth {
			return size
		}
	}
	return minSize
}

// Package session owns the editing pipeline for a single photograph: the
// immutable source snapshot, the working canvas, the paint mask, and the
// overlay fields, advanced through an Empty -> Loaded -> Composited state
// machine by import/paint/render/reset operations.
package session

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"

	_ "image/gif"
	_ "image/jpeg"

	"github.com/Fepozopo/timemark/pkg/imaging"
	"github.com/Fepozopo/timemark/pkg/overlay"
)

// MaxCanvasDim caps the working canvas at 2500 px on the larger side so
// every per-stroke repaint stays bounded. Downscaling only; smaller images
// keep their natural size.
const MaxCanvasDim = 2500

// ExportFilename is the canonical download name for composited output.
const ExportFilename = "timemark_export.png"

// State of the pipeline. Paint and render operations require an image.
type State int

const (
	StateEmpty State = iota
	StateLoaded
	StateComposited
)

func (s State) String() string {
	switch s {
	case StateLoaded:
		return "loaded"
	case StateComposited:
		return "composited"
	default:
		return "empty"
	}
}

// ErrNoImage is returned by render/paint/export attempts before an import.
// It is a recoverable prompt-the-user condition, never a fault.
var ErrNoImage = errors.New("no image loaded")

// Session holds all mutable editing state. It is not safe for concurrent
// use; all operations are synchronous units of work driven by one event
// loop, matching the single-threaded resource model of the editor.
type Session struct {
	fonts *overlay.FontManager

	state  State
	source *image.NRGBA // working-size snapshot of the imported image
	canvas *image.NRGBA // visible raster, repainted from source
	mask   *overlay.MaskBuffer

	Fields overlay.Fields
}

// New returns an empty session using the given font manager.
func New(fonts *overlay.FontManager) *Session {
	return &Session{fonts: fonts, state: StateEmpty}
}

// State reports the current pipeline state.
func (s *Session) State() State { return s.state }

// Canvas exposes the current visible raster. Nil while empty.
func (s *Session) Canvas() *image.NRGBA { return s.canvas }

// Mask exposes the paint mask for input mapping. Nil while empty.
func (s *Session) Mask() *overlay.MaskBuffer { return s.mask }

// Import decodes an image from r and loads it. On decode failure the prior
// state, if any, is preserved untouched.
func (s *Session) Import(r io.Reader) error {
	img, _, err := image.Decode(r)
	if err != nil {
		return fmt.Errorf("decode image: %w", err)
	}
	return s.ImportImage(img)
}

// ImportImage loads an already-decoded bitmap (file import or camera
// capture). The working canvas is recomputed (capped at MaxCanvasDim,
// aspect preserved) and the mask is resized and cleared: stale strokes never
// survive a dimension change.
func (s *Session) ImportImage(img image.Image) error {
	if img == nil {
		return fmt.Errorf("decode image: nil source")
	}
	src := imaging.FitWithin(imaging.ToNRGBA(img), MaxCanvasDim)
	s.source = src
	s.canvas = imaging.CloneNRGBA(src)
	if s.mask == nil {
		s.mask = overlay.NewMaskBuffer(src.Bounds().Dx(), src.Bounds().Dy())
	} else {
		s.mask.Resize(src.Bounds().Dx(), src.Bounds().Dy())
	}
	s.state = StateLoaded
	return nil
}

// PaintStroke adds one brush circle (buffer coordinates) and immediately
// repaints the base layer so the blurred region is visible mid-stroke,
// without waiting for an explicit render.
func (s *Session) PaintStroke(x, y, diameter float64) error {
	if s.state == StateEmpty {
		return ErrNoImage
	}
	s.mask.PaintStroke(x, y, diameter)
	s.repaintBase()
	return nil
}

// ClearMask wipes every stroke atomically and repaints the sharp base.
func (s *Session) ClearMask() error {
	if s.state == StateEmpty {
		return ErrNoImage
	}
	s.mask.Clear()
	s.repaintBase()
	return nil
}

// Render repaints the base layer (blur pass included when the mask has
// content) and draws both overlay clusters on top.
func (s *Session) Render() error {
	if s.state == StateEmpty {
		return ErrNoImage
	}
	s.repaintBase()
	overlay.DrawOverlay(s.canvas, s.fonts, s.Fields)
	s.state = StateComposited
	return nil
}

// Reset restores the unmodified source pixels byte-identically and clears
// the mask, returning to the Loaded state.
func (s *Session) Reset() error {
	if s.state == StateEmpty {
		return ErrNoImage
	}
	s.canvas = imaging.CloneNRGBA(s.source)
	s.mask.Clear()
	s.state = StateLoaded
	return nil
}

// ExportPNG writes the current raster as PNG. Callers surface it under
// ExportFilename.
func (s *Session) ExportPNG(w io.Writer) error {
	if s.state == StateEmpty {
		return ErrNoImage
	}
	if err := png.Encode(w, s.canvas); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// repaintBase rebuilds the visible raster from the source snapshot and, only
// when the mask has content, composites the masked blur over it. The
// has-content check runs on every repaint so untouched masks cost nothing.
func (s *Session) repaintBase() {
	s.canvas = imaging.CloneNRGBA(s.source)
	if blurred := overlay.RegionalBlur(s.source, s.mask); blurred != nil {
		imaging.DrawOver(s.canvas, blurred, 0, 0)
	}
}

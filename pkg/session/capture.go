package session

import (
	"context"
	"fmt"
	"image"
	"sync"
)

// Camera is the capability contract of a frame source such as a hardware
// camera. Acquire may fail (permissions, no device, insecure context) and
// must not block other interaction; failures surface as
// *CameraUnavailableError.
type Camera interface {
	Acquire(ctx context.Context) (Stream, error)
}

// Stream is a live, acquired camera stream. Frame snapshots the current
// frame; Close releases the underlying hardware and must be safe to call
// more than once.
type Stream interface {
	Frame() (image.Image, error)
	Close() error
}

// CameraUnavailableError wraps the adapter's failure reason so the UI can
// show it verbatim.
type CameraUnavailableError struct {
	Reason string
	Err    error
}

func (e *CameraUnavailableError) Error() string {
	return fmt.Sprintf("camera unavailable: %s", e.Reason)
}

func (e *CameraUnavailableError) Unwrap() error { return e.Err }

// CameraGuard enforces the stream lifecycle discipline: at most one live
// stream, released on every exit path (close, new capture, re-acquire,
// teardown). It is the only owner of the acquired stream.
type CameraGuard struct {
	cam Camera

	mu     sync.Mutex
	stream Stream
}

// NewCameraGuard wraps a camera capability.
func NewCameraGuard(cam Camera) *CameraGuard {
	return &CameraGuard{cam: cam}
}

// Open acquires a stream, releasing any previous one first.
func (g *CameraGuard) Open(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.releaseLocked()
	st, err := g.cam.Acquire(ctx)
	if err != nil {
		if _, ok := err.(*CameraUnavailableError); ok {
			return err
		}
		return &CameraUnavailableError{Reason: err.Error(), Err: err}
	}
	g.stream = st
	return nil
}

// Capture snapshots the current frame into the session (the pipeline's
// capture transition), then releases the stream. The stream is released even
// when the snapshot or import fails.
func (g *CameraGuard) Capture(s *Session) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.stream == nil {
		return &CameraUnavailableError{Reason: "no active stream"}
	}
	defer g.releaseLocked()
	frame, err := g.stream.Frame()
	if err != nil {
		return fmt.Errorf("capture frame: %w", err)
	}
	return s.ImportImage(frame)
}

// Close releases any live stream. Idempotent.
func (g *CameraGuard) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.releaseLocked()
}

func (g *CameraGuard) releaseLocked() {
	if g.stream != nil {
		_ = g.stream.Close()
		g.stream = nil
	}
}

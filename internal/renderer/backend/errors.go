package backend

import (
	"errors"
	"fmt"

	"github.com/dshills/webterm/internal/web"
)

// Sentinel errors for backend construction.
var (
	// ErrNoWindow indicates no browser window is available.
	ErrNoWindow = errors.New("backend: no window")

	// ErrNoDocument indicates the window has no document.
	ErrNoDocument = web.ErrNoDocument

	// ErrElementNotFound indicates the configured parent element is missing.
	ErrElementNotFound = web.ErrElementNotFound

	// ErrNoCanvasContext indicates the canvas could not provide a 2D context.
	ErrNoCanvasContext = errors.New("backend: canvas has no 2d context")

	// ErrInvalidScale indicates a non-positive display scale.
	ErrInvalidScale = errors.New("backend: scale must be positive")

	// ErrNoPerformance indicates performance measurement was requested but
	// the window exposes no Performance API.
	ErrNoPerformance = errors.New("backend: performance api unavailable")
)

// RendererError wraps a failure reported by an external renderer service.
type RendererError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *RendererError) Error() string {
	return fmt.Sprintf("renderer %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *RendererError) Unwrap() error {
	return e.Err
}

// WrapRenderer wraps err in a RendererError, or returns nil.
func WrapRenderer(op string, err error) error {
	if err == nil {
		return nil
	}
	return &RendererError{Op: op, Err: err}
}

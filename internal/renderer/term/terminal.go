// Package term drives a backend: render functions write whole frames, the
// terminal diffs them against what is displayed and hands only the changes
// to the backend.
package term

import (
	"fmt"
	"log/slog"

	"github.com/dshills/webterm/internal/logging"
	"github.com/dshills/webterm/internal/renderer/backend"
	"github.com/dshills/webterm/internal/renderer/core"
	"github.com/dshills/webterm/internal/renderer/event"
)

// Options configures a Terminal.
type Options struct {
	// MaxFPS limits how often Run draws. Zero draws on every animation frame.
	MaxFPS int

	// Logger receives debug output. Nil discards.
	Logger *slog.Logger
}

// DefaultOptions returns the default terminal options.
func DefaultOptions() Options {
	return Options{MaxFPS: 60}
}

// Terminal owns the screen buffers for one backend.
type Terminal struct {
	backend backend.Backend
	buf     *ScreenBuffer
	opts    Options
	log     *slog.Logger

	frames int
}

// New creates a terminal sized to the backend.
func New(b backend.Backend, opts Options) *Terminal {
	size := b.Size()
	return &Terminal{
		backend: b,
		buf:     NewScreenBuffer(size.Width, size.Height),
		opts:    opts,
		log:     logging.OrDiscard(opts.Logger).With("component", "term"),
	}
}

// Backend returns the backend.
func (t *Terminal) Backend() backend.Backend {
	return t.backend
}

// Size returns the current frame size.
func (t *Terminal) Size() core.Size {
	return t.buf.Size()
}

// Frames returns the number of frames drawn.
func (t *Terminal) Frames() int {
	return t.frames
}

// Resize resizes the buffers, clears the backend and forces the next draw
// to send every cell.
func (t *Terminal) Resize(size core.Size) error {
	t.buf.Resize(size.Width, size.Height)
	t.buf.MarkFullRedraw()
	if err := t.backend.Clear(); err != nil {
		return fmt.Errorf("clear backend: %w", err)
	}
	t.log.Debug("terminal resized", "cols", size.Width, "rows", size.Height)
	return nil
}

// autoresize follows the backend size.
func (t *Terminal) autoresize() error {
	if size := t.backend.Size(); size != t.buf.Size() {
		return t.Resize(size)
	}
	return nil
}

// Draw renders one frame: render writes into a blank frame, the changed
// cells are drawn, the cursor is positioned and the backend is flushed.
// The backend sees every frame, even one without changes, so it can act
// on its own state such as a pending window resize. The displayed buffer
// only advances after a successful flush.
func (t *Terminal) Draw(render func(*Frame)) error {
	if err := t.autoresize(); err != nil {
		return err
	}

	t.buf.Clear()
	f := &Frame{buf: t.buf}
	render(f)

	if err := t.backend.Draw(t.buf.ComputeDiff()); err != nil {
		return fmt.Errorf("draw: %w", err)
	}

	if f.cursor != nil {
		if err := t.backend.SetCursorPosition(*f.cursor); err != nil {
			return fmt.Errorf("set cursor: %w", err)
		}
		if err := t.backend.ShowCursor(); err != nil {
			return fmt.Errorf("show cursor: %w", err)
		}
	} else if err := t.backend.HideCursor(); err != nil {
		return fmt.Errorf("hide cursor: %w", err)
	}

	if err := t.backend.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	t.buf.Sync()
	t.frames++
	return nil
}

// Clear blanks the backend and forces a full redraw.
func (t *Terminal) Clear() error {
	t.buf.MarkFullRedraw()
	if err := t.backend.Clear(); err != nil {
		return fmt.Errorf("clear backend: %w", err)
	}
	return nil
}

// OnKeyEvent registers fn with the backend when it reports key events.
func (t *Terminal) OnKeyEvent(fn func(event.KeyEvent)) error {
	if h, ok := t.backend.(backend.KeyEventHandler); ok {
		return h.OnKeyEvent(fn)
	}
	return nil
}

// OnMouseEvent registers fn with the backend when it reports mouse events.
func (t *Terminal) OnMouseEvent(fn func(event.MouseEvent)) error {
	if h, ok := t.backend.(backend.MouseEventHandler); ok {
		return h.OnMouseEvent(fn)
	}
	return nil
}

// Close releases the backend's browser resources when it holds any.
func (t *Terminal) Close() {
	if c, ok := t.backend.(backend.Closer); ok {
		c.Close()
	}
}

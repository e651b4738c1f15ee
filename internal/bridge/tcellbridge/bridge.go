// Package tcellbridge presents a tcell screen through a web backend.
// Applications draw into a tcell.Screen (usually a SimulationScreen) as
// they would in a native terminal; the bridge copies the screen into each
// frame and injects browser input back into the screen.
package tcellbridge

import (
	"errors"
	"log/slog"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/webterm/internal/logging"
	"github.com/dshills/webterm/internal/renderer/core"
	"github.com/dshills/webterm/internal/renderer/event"
	"github.com/dshills/webterm/internal/renderer/term"
)

// ErrNoInjection is returned by Attach when the screen does not accept
// injected events.
var ErrNoInjection = errors.New("screen does not accept injected events")

// injector is implemented by tcell.SimulationScreen.
type injector interface {
	InjectKey(key tcell.Key, r rune, mod tcell.ModMask)
	InjectMouse(x, y int, buttons tcell.ButtonMask, mod tcell.ModMask)
}

// cursorReporter is implemented by tcell.SimulationScreen.
type cursorReporter interface {
	GetCursor() (x, y int, visible bool)
}

// Bridge mirrors a tcell screen.
type Bridge struct {
	screen tcell.Screen
	log    *slog.Logger
}

// New creates a bridge for an initialized screen.
func New(screen tcell.Screen, log *slog.Logger) *Bridge {
	return &Bridge{
		screen: screen,
		log:    logging.OrDiscard(log).With("component", "tcellbridge"),
	}
}

// Screen returns the mirrored screen.
func (b *Bridge) Screen() tcell.Screen {
	return b.screen
}

// Render copies the screen into f. The screen is first resized to the
// frame so the application lays out for the grid the backend shows.
func (b *Bridge) Render(f *term.Frame) {
	size := f.Size()
	if w, h := b.screen.Size(); w != size.Width || h != size.Height {
		b.screen.SetSize(size.Width, size.Height)
		b.log.Debug("screen resized", "cols", size.Width, "rows", size.Height)
	}

	w, h := b.screen.Size()
	w, h = min(w, size.Width), min(h, size.Height)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			mainc, combc, style, width := b.screen.GetContent(x, y) //nolint:staticcheck // GetContent is the correct API
			f.SetCell(x, y, core.NewStyledCell(symbol(mainc, combc), CellStyle(style)))
			if width == 2 && x+1 < w {
				x++
				f.SetCell(x, y, core.ContinuationCell())
			}
		}
	}

	if c, ok := b.screen.(cursorReporter); ok {
		if x, y, visible := c.GetCursor(); visible && x >= 0 && y >= 0 && x < w && y < h {
			f.SetCursorPosition(core.NewPosition(x, y))
		}
	}
}

func symbol(mainc rune, combc []rune) string {
	if mainc == 0 {
		return " "
	}
	if len(combc) == 0 {
		return string(mainc)
	}
	return string(append([]rune{mainc}, combc...))
}

// Draw renders one frame of the screen through t.
func (b *Bridge) Draw(t *term.Terminal) error {
	return t.Draw(b.Render)
}

// Attach forwards t's key and mouse events into the screen.
func (b *Bridge) Attach(t *term.Terminal) error {
	inj, ok := b.screen.(injector)
	if !ok {
		return ErrNoInjection
	}

	if err := t.OnKeyEvent(func(ev event.KeyEvent) {
		key, r, mod, ok := TcellKey(ev)
		if !ok {
			b.log.Debug("key dropped", "key", ev.String())
			return
		}
		inj.InjectKey(key, r, mod)
	}); err != nil {
		return err
	}

	return t.OnMouseEvent(func(ev event.MouseEvent) {
		switch ev.Kind {
		case event.MouseMoved, event.MouseButtonDown, event.MouseButtonUp:
			inj.InjectMouse(ev.Col, ev.Row, TcellButtons(ev), tcellMod(ev.Ctrl, ev.Alt, ev.Shift))
		}
	})
}

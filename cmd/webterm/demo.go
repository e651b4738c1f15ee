package main

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

const demoURL = "https://github.com/dshills/webterm"

// demo is a small tcell application: it echoes input and quits on q.
type demo struct {
	screen tcell.Screen

	mu    sync.Mutex
	keys  int
	last  string
	mouse string
	done  bool
}

func newDemo(screen tcell.Screen) *demo {
	return &demo{screen: screen, last: "-", mouse: "-"}
}

// handle applies one event and redraws. Returns false once the demo quit.
func (d *demo) handle(ev tcell.Event) bool {
	d.mu.Lock()
	switch ev := ev.(type) {
	case *tcell.EventKey:
		d.keys++
		d.last = ev.Name()
		if ev.Key() == tcell.KeyRune && ev.Rune() == 'q' {
			d.done = true
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		d.mouse = fmt.Sprintf("%d,%d", x, y)
	}
	done := d.done
	d.mu.Unlock()

	d.draw()
	return !done
}

// run handles events until the demo quits or the screen is finalized.
func (d *demo) run() {
	for {
		ev := d.screen.PollEvent()
		if ev == nil || !d.handle(ev) {
			return
		}
	}
}

func (d *demo) draw() {
	d.mu.Lock()
	defer d.mu.Unlock()

	s := d.screen
	s.Clear()
	w, _ := s.Size()

	title := tcell.StyleDefault.Bold(true).Foreground(tcell.ColorAqua)
	dim := tcell.StyleDefault.Dim(true)
	link := tcell.StyleDefault.Underline(true).Foreground(tcell.ColorBlue)

	putString(s, 1, 0, "webterm", title)
	putString(s, 1, 1, "wide: 幅広い文字", tcell.StyleDefault)
	putString(s, 1, 2, fmt.Sprintf("keys: %d  last: %s  mouse: %s", d.keys, d.last, d.mouse), tcell.StyleDefault)
	putString(s, 1, 3, demoURL, link)
	for i := 0; i < 16 && i+1 < w; i++ {
		s.SetContent(i+1, 4, ' ', nil, tcell.StyleDefault.Background(tcell.PaletteColor(i)))
	}
	end := putString(s, 1, 5, "press q to stop", dim)
	if d.done {
		putString(s, 1, 6, "stopped", tcell.StyleDefault.Reverse(true))
		s.HideCursor()
	} else {
		s.ShowCursor(end, 5)
	}
	s.Show()
}

// putString writes str at (x, y) and returns the column after it.
func putString(s tcell.Screen, x, y int, str string, style tcell.Style) int {
	for _, r := range str {
		s.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
	return x
}

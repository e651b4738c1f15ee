package term

import (
	"github.com/dshills/webterm/internal/web"
)

// frameSlack absorbs timestamp jitter between animation frames, in ms.
const frameSlack = 1.0

// Run draws a frame on every animation frame until stopped. A draw error
// goes to onError; returning false stops the loop, true retries on the
// next frame. A nil onError stops on the first error.
//
// The returned function stops the loop after the current frame.
func (t *Terminal) Run(win web.Window, render func(*Frame), onError func(error) bool) (stop func()) {
	stopped := false
	interval := 0.0
	if t.opts.MaxFPS > 0 {
		interval = 1000 / float64(t.opts.MaxFPS)
	}
	last := -interval

	var tick func(ts float64)
	tick = func(ts float64) {
		if stopped {
			return
		}
		// Frames arrive at display rate; skip those inside the interval.
		if interval > 0 && ts-last < interval-frameSlack {
			win.RequestAnimationFrame(tick)
			return
		}
		last = ts

		if err := t.Draw(render); err != nil {
			t.log.Debug("frame failed", "error", err)
			if onError == nil || !onError(err) {
				stopped = true
				return
			}
		}
		win.RequestAnimationFrame(tick)
	}

	win.RequestAnimationFrame(tick)
	return func() { stopped = true }
}

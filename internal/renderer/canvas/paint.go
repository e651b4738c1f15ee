package canvas

import (
	"fmt"

	"github.com/dshills/webterm/internal/renderer/core"
	"github.com/dshills/webterm/internal/renderer/dirty"
)

// paint issues the context calls for every dirty cell. Each pass walks the
// grid once to keep the number of calls across the wasm boundary low.
func (b *Backend) paint(force bool) error {
	if force {
		b.ctx.ClearRect(0, 0, float64(b.width), float64(b.height))
	}
	if err := b.ctx.Translate(Margin, Margin); err != nil {
		return fmt.Errorf("translate: %w", err)
	}

	err := b.drawBackground()
	if err == nil {
		err = b.drawSymbols()
	}
	if err == nil {
		err = b.drawCursor()
	}
	if err == nil && b.opts.DebugColor != "" {
		b.drawDebug()
	}

	if terr := b.ctx.Translate(-Margin, -Margin); err == nil && terr != nil {
		err = fmt.Errorf("translate: %w", terr)
	}
	return err
}

func (b *Backend) colors(c core.Cell) (fg, bg uint32) {
	return c.Style.ResolveColors(core.DefaultForeground, b.opts.Background.RGB(core.DefaultBackground))
}

// drawBackground fills runs of equally colored dirty cells with one
// rectangle each.
func (b *Backend) drawBackground() error {
	b.ctx.Save()
	defer b.ctx.Restore()

	dirty.ForEachRowRegion(b.grid, b.dirty, func(c core.Cell) uint32 {
		_, bg := b.colors(c)
		return bg
	}, func(r dirty.Region) {
		b.ctx.SetFillStyle(core.CSSColor(r.Color))
		b.ctx.FillRect(
			float64(r.Rect.X)*CellWidth,
			float64(r.Rect.Y)*CellHeight,
			float64(r.Rect.Width)*CellWidth,
			float64(r.Rect.Height)*CellHeight,
		)
	})
	return nil
}

// drawSymbols paints the glyph of every dirty non-blank cell.
//
// The fill color is only changed when it differs from the last one used.
// Non-ASCII glyphs (or every glyph with AlwaysClipCells) are clipped to
// their cell; starting a clip resets the context state, so the cached
// color is dropped.
func (b *Backend) drawSymbols() error {
	b.ctx.Save()

	var (
		last    uint32
		hasLast bool
		err     error
	)
	dirty.ForEachDirty(b.grid, b.dirty, func(col, row int, c core.Cell) {
		if err != nil || c.IsBlank() {
			return
		}
		fg, _ := b.colors(c)
		x := float64(col) * CellWidth
		y := float64(row) * CellHeight

		switch {
		case b.opts.AlwaysClipCells || !c.IsASCII():
			b.ctx.Restore()
			b.ctx.Save()
			b.ctx.BeginPath()
			b.ctx.Rect(x, y, CellWidth, CellHeight)
			b.ctx.Clip()
			hasLast = false
			b.ctx.SetFillStyle(core.CSSColor(fg))
		case !hasLast || last != fg:
			b.ctx.Restore()
			b.ctx.Save()
			last, hasLast = fg, true
			b.ctx.SetFillStyle(core.CSSColor(fg))
		}

		if ferr := b.ctx.FillText(c.Symbol, x, y); ferr != nil {
			err = fmt.Errorf("fill text at %d,%d: %w", col, row, ferr)
		}
	})

	b.ctx.Restore()
	return err
}

// drawCursor layers an underscore over an underlined cursor cell.
func (b *Backend) drawCursor() error {
	if b.cursor == nil {
		return nil
	}
	c := b.grid.Ptr(b.cursor.X, b.cursor.Y)
	if c == nil || !c.Style.Attributes.Has(core.AttrUnderline) {
		return nil
	}

	fg, _ := b.colors(*c)
	b.ctx.Save()
	defer b.ctx.Restore()
	b.ctx.SetFillStyle(core.CSSColor(fg))
	if err := b.ctx.FillText("_", float64(b.cursor.X)*CellWidth, float64(b.cursor.Y)*CellHeight); err != nil {
		return fmt.Errorf("draw cursor: %w", err)
	}
	return nil
}

// drawDebug strokes every cell outline.
func (b *Backend) drawDebug() {
	b.ctx.Save()
	defer b.ctx.Restore()

	b.ctx.SetStrokeStyle(b.opts.DebugColor)
	for row := 0; row < b.grid.Height; row++ {
		for col := 0; col < b.grid.Width; col++ {
			b.ctx.StrokeRect(float64(col)*CellWidth, float64(row)*CellHeight, CellWidth, CellHeight)
		}
	}
}

// Package term renders a View onto the real terminal via termbox-go in
// 256-color mode, and translates key events into scroll/pause/resize
// actions.
package term

import (
	tb "github.com/nsf/termbox-go"

	"github.com/inodb/seqview/internal/colorconfig"
)

// Backend implements view.Screen over termbox-go.
type Backend struct {
	palette *colorconfig.Palette
	status  string
}

// NewBackend initializes termbox in 256-color mode. Callers must call
// Close when done.
func NewBackend(palette *colorconfig.Palette) (*Backend, error) {
	if err := tb.Init(); err != nil {
		return nil, err
	}
	tb.SetOutputMode(tb.Output256)
	tb.SetInputMode(tb.InputEsc)
	return &Backend{palette: palette}, nil
}

// Close shuts termbox down.
func (b *Backend) Close() {
	tb.Close()
}

func (b *Backend) attrs(pair int) (tb.Attribute, tb.Attribute) {
	if pair == colorconfig.PairUnknown {
		return tb.ColorDefault, tb.ColorDefault
	}
	if pair == colorconfig.PairHighlight {
		return tb.ColorBlack, tb.Attribute(b.palette.Highlight + 1)
	}
	base := pair &^ 3
	nucleotide := pair & 3
	fg := tb.Attribute(b.palette.NucleotideFG[nucleotide] + 1)
	bgColor := b.palette.BG(base)
	var bg tb.Attribute
	if bgColor < 0 {
		bg = tb.ColorDefault
	} else {
		bg = tb.Attribute(bgColor + 1)
	}
	return fg, bg
}

// SetCell draws ch with the colors pair resolves to.
func (b *Backend) SetCell(x, y int, ch rune, pair int) {
	fg, bg := b.attrs(pair)
	tb.SetCell(x, y+1, ch, fg, bg)
}

// SetPair recolors an already-drawn cell, preserving its glyph.
func (b *Backend) SetPair(x, y, pair int) {
	cells := tb.CellBuffer()
	w, _ := tb.Size()
	idx := (y+1)*w + x
	if idx < 0 || idx >= len(cells) {
		return
	}
	fg, bg := b.attrs(pair)
	tb.SetCell(x, y+1, cells[idx].Ch, fg, bg)
}

// Size returns the usable sequence area: the full terminal minus the
// status line reserved at row 0.
func (b *Backend) Size() (int, int) {
	w, h := tb.Size()
	if h > 0 {
		h--
	}
	return w, h
}

// Scroll shifts the sequence rows (everything below the status line) in
// termbox's back buffer, which has no native scroll-region primitive: a
// positive count moves content up, a negative one down. The rows it exposes
// keep stale content until View.Fill redraws them.
func (b *Backend) Scroll(lines int) {
	cells := tb.CellBuffer()
	w, h := tb.Size()
	for ; lines > 0; lines-- {
		for y := 1; y < h-1; y++ {
			copy(cells[y*w:(y+1)*w], cells[(y+1)*w:(y+2)*w])
		}
	}
	for ; lines < 0; lines++ {
		for y := h - 1; y > 1; y-- {
			copy(cells[y*w:(y+1)*w], cells[(y-1)*w:y*w])
		}
	}
}

// SetStatus records the status line text, drawn on the next Flush.
func (b *Backend) SetStatus(text string) {
	b.status = text
}

// Flush paints the status line and presents the frame.
func (b *Backend) Flush() error {
	for x := 0; x < len(b.status); x++ {
		tb.SetCell(x, 0, rune(b.status[x]), tb.ColorDefault, tb.ColorDefault)
	}
	return tb.Flush()
}

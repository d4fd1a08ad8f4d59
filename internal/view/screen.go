// Package view renders a screen's worth of sequence/title/status content
// from a position cursor, choosing each cell's nucleotide glyph and color
// pair by feature priority, reading-frame phase, and consensus highlights.
package view

import "github.com/inodb/seqview/internal/colorconfig"

// Screen is the abstraction the View draws onto; internal/term implements
// it over termbox-go, and tests implement it over an in-memory grid.
type Screen interface {
	SetCell(x, y int, ch rune, pair int)
	// SetPair recolors an already-drawn cell without changing its glyph,
	// for retinting a consensus match onto cells written before the match
	// was confirmed.
	SetPair(x, y, pair int)
	Size() (w, h int)
	Scroll(lines int)
	SetStatus(text string)
}

// pair base indices re-exported for callers building a Screen.
const (
	PairUnknown   = colorconfig.PairUnknown
	PairHighlight = colorconfig.PairHighlight
)

// Package position implements the view cursor: a tagged-variant position
// that is either inside a chromosome's title banner or at an absolute
// sequence coordinate, and which re-anchors across chromosome boundaries
// using the fixed chromosome traversal order.
package position

import (
	"github.com/inodb/seqview/internal/genome"
	"github.com/inodb/seqview/internal/reader"
)

// ReaderProvider resolves a chromosome name to its (possibly cached)
// Reader; satisfied by *readercache.Cache.
type ReaderProvider interface {
	Get(ch string) (*reader.Reader, error)
}

// Position is one row's cursor: either in-title (TitlePos non-nil, in
// [-10, -1], counting up to the first sequence row) or in-sequence (Pos in
// [1, chromosome size + 1], the +1 being the margin row past the end).
type Position struct {
	Reader   *reader.Reader
	Pos      int64
	TitlePos *int
}

// New creates a sequence-anchored Position at the reader's current pos.
func New(r *reader.Reader) *Position {
	return &Position{Reader: r, Pos: r.Pos()}
}

// Clone returns an independent copy (used to scan ahead while filling a
// screen without disturbing the view's recorded top-of-screen position).
func (p *Position) Clone() *Position {
	cp := *p
	if p.TitlePos != nil {
		t := *p.TitlePos
		cp.TitlePos = &t
	}
	return &cp
}

// IsTitle reports whether the position is within the chromosome banner.
func (p *Position) IsTitle() bool {
	return p.TitlePos != nil
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

// syncReader moves the underlying Reader to match Pos, using the cheapest
// applicable operation: no-op, a single Advance, or a JumpTo.
func (p *Position) syncReader() error {
	switch {
	case p.Pos == p.Reader.Pos():
		return nil
	case p.Pos == p.Reader.Pos()+1:
		return p.Reader.Advance()
	default:
		return p.Reader.JumpTo(max64(p.Pos, 1))
	}
}

// IsMargin reports whether the position is the blank row before a
// chromosome's first base or after its last (i.e. not a real sequence row
// and not a title row).
func (p *Position) IsMargin() (bool, error) {
	if p.Pos < 1 {
		return true, nil
	}
	if err := p.syncReader(); err != nil {
		return false, err
	}
	return p.Reader.EOF, nil
}

// NextCh crosses into the next chromosome: the sequence coordinate rolls
// over relative to the new chromosome's start, and the view lands at the
// top of its title banner.
func (p *Position) NextCh(provider ReaderProvider) error {
	p.Pos -= p.Reader.ChSize
	ch := genome.NextChromosome(p.Reader.Chromosome)
	r, err := provider.Get(ch)
	if err != nil {
		return err
	}
	p.Reader = r
	tp := -10
	p.TitlePos = &tp
	return p.syncReader()
}

// PrevCh crosses into the previous chromosome from its start, landing near
// the end of that chromosome's sequence (one screen row's worth back from
// its last base, so backing up from a chromosome boundary doesn't jump
// straight past the previous chromosome's final line).
func (p *Position) PrevCh(provider ReaderProvider, scrw int) error {
	ch := genome.PrevChromosome(p.Reader.Chromosome)
	r, err := provider.Get(ch)
	if err != nil {
		return err
	}
	p.Pos = r.ChSize + p.Pos
	if p.Pos > r.ChSize {
		p.Pos -= int64(scrw - 1)
	}
	p.Reader = r
	p.TitlePos = nil
	return nil
}

// Advance moves the position forward one row-column step; the underlying
// reader follows it whenever the new position is at or past the
// chromosome's first base, and is left alone before that.
func (p *Position) Advance(provider ReaderProvider) error {
	p.Pos++
	// IsMargin already brings the reader to Pos (one Advance, or JumpTo(1)
	// on entering the sequence), so no further reader step is taken here.
	_, err := p.IsMargin()
	return err
}

// NextLine moves to the start of the following screen row.
func (p *Position) NextLine(provider ReaderProvider, scrw int) error {
	if p.IsTitle() {
		*p.TitlePos++
		if *p.TitlePos == 0 {
			p.TitlePos = nil
		}
		return nil
	}
	if p.Pos+int64(scrw-1) > p.Reader.ChSize && genome.NextChromosome(p.Reader.Chromosome) != "" {
		return p.NextCh(provider)
	}
	p.Pos += int64(scrw - 1)
	return nil
}

// PrevLine moves to the start of the preceding screen row.
func (p *Position) PrevLine(provider ReaderProvider, scrw int) error {
	if p.Pos <= 1 {
		if !p.IsTitle() {
			tp := -1
			p.TitlePos = &tp
			return nil
		}
		if *p.TitlePos == -10 {
			return p.PrevCh(provider, scrw)
		}
		*p.TitlePos--
		return nil
	}
	p.Pos -= int64(scrw - 1)
	return nil
}

// AdvanceLines repeats NextLine n times.
func (p *Position) AdvanceLines(provider ReaderProvider, scrw, n int) error {
	for i := 0; i < n; i++ {
		if err := p.NextLine(provider, scrw); err != nil {
			return err
		}
	}
	return nil
}

// CheckChEnd rolls the position into the next chromosome if it has run
// past the end of the current one (called once per rendered row, after a
// full row has been walked one cell at a time).
func (p *Position) CheckChEnd(provider ReaderProvider, scrw int) error {
	if p.Pos > p.Reader.ChSize && genome.NextChromosome(p.Reader.Chromosome) != "" {
		p.Pos -= int64(scrw - 1)
		return p.NextCh(provider)
	}
	return nil
}

// CanScrollDown reports whether at least one more full row of content
// remains below the current view.
func (p *Position) CanScrollDown(scrw, scrh int) bool {
	return p.Pos+int64(scrw-1)*int64(scrh) <= p.Reader.ChSize || genome.NextChromosome(p.Reader.Chromosome) != ""
}

// CanScrollUp reports whether at least one more row remains above.
func (p *Position) CanScrollUp() bool {
	return !p.IsTitle() || *p.TitlePos > -10 || genome.PrevChromosome(p.Reader.Chromosome) != ""
}

package view

import (
	"fmt"

	"github.com/inodb/seqview/internal/colorconfig"
	"github.com/inodb/seqview/internal/genome"
	"github.com/inodb/seqview/internal/highlight"
	"github.com/inodb/seqview/internal/position"
)

// strandGlyph mirrors the reference program's strand_decode table.
func strandGlyph(s genome.Strand) string {
	switch s {
	case genome.StrandPlus:
		return "+"
	case genome.StrandMinus:
		return "-"
	case genome.StrandNone:
		return "."
	default:
		return "?"
	}
}

// View owns the top-of-screen position and draws rows into a Screen.
type View struct {
	Screen     Screen
	TopPos     *position.Position
	Provider   position.ReaderProvider
	Highlights highlight.Set

	fillx, filly, fillmaxy int
	cdsPhase               *uint8
}

// New creates a View anchored at top.
func New(screen Screen, provider position.ReaderProvider, hls highlight.Set, top *position.Position) *View {
	return &View{Screen: screen, TopPos: top, Provider: provider, Highlights: hls}
}

// matchConsensus and consensus highlighting live in internal/highlight;
// View only needs to know which pattern (if any) fired, and how far back to
// retint cells for it.

// setPrevPairs retints the `number` cells preceding the one currently being
// written, wrapping to the previous row at the left margin. Used once a
// consensus match is confirmed, since the match is only known after the
// last base in the motif has been read.
func (v *View) setPrevPairs(number, pair int) {
	x, y := v.fillx, v.filly
	scrw := v.scrw()
	for n := 0; n < number; n++ {
		x--
		if x < 0 {
			x = scrw - 2
			y--
			if y < 0 {
				break
			}
		}
		v.Screen.SetPair(x, y, pair)
	}
}

// applyHighlight checks every enabled consensus pattern against the
// reader's trailing window, retinting preceding cells on a match, and
// returns the pair for the current cell if one fired.
func (v *View) applyHighlight(r ringReader) (int, bool) {
	matched := false
	pair := 0
	for _, p := range highlight.Builtin {
		if !v.Highlights.Enabled(p.Name) {
			continue
		}
		if p.Matches(r) {
			matched = true
			pair = PairHighlight
			v.setPrevPairs(len(p.Consensus)-1, PairHighlight)
		}
	}
	return pair, matched
}

type ringReader interface {
	RingBase(k int) genome.Nucleotide
}

type featureReader interface {
	ringReader
	CurrentBase() genome.Nucleotide
	CDSPhase() (uint8, error)
}

// nucleotideAndPair chooses the glyph and color pair for the reader's
// current cell, by consensus highlight first, then by dominant active
// feature (gap > CDS > tRNA > rRNA > miRNA > exon-within-gene-or-pseudogene
// > gene-or-pseudogene > none), falling back to plain sequence color.
func (v *View) nucleotideAndPair(r featureReader, features *genome.FeatureSet) (genome.Nucleotide, int, error) {
	nucleotide := r.CurrentBase()

	if pair, ok := v.applyHighlight(r); ok {
		return nucleotide, pair, nil
	}

	switch {
	case features.Has(genome.Gap):
		return genome.NucleotideUnknown, colorconfig.PairUnknown, nil
	case features.Has(genome.CDS):
		if v.cdsPhase == nil {
			phase, err := r.CDSPhase()
			if err != nil {
				return nucleotide, 0, err
			}
			v.cdsPhase = &phase
		}
		var pair int
		if *v.cdsPhase&4 != 0 {
			pair = colorconfig.PairCDS2 + int(nucleotide)
		} else {
			pair = colorconfig.PairCDS + int(nucleotide)
		}
		next := *v.cdsPhase + 1
		if next&3 == 3 {
			next ^= 4
			next &= 4
		}
		v.cdsPhase = &next
		return nucleotide, pair, nil
	case features.Has(genome.TRNA):
		return nucleotide, colorconfig.PairTRNA + int(nucleotide), nil
	case features.Has(genome.RRNA):
		return nucleotide, colorconfig.PairRRNA + int(nucleotide), nil
	case features.Has(genome.MiRNA):
		return nucleotide, colorconfig.PairMiRNA + int(nucleotide), nil
	case features.Has(genome.Exon):
		if features.Has(genome.Gene) {
			return nucleotide, colorconfig.PairUTRGene + int(nucleotide), nil
		}
		if features.Has(genome.Pseudogene) {
			return nucleotide, colorconfig.PairExonPseudo + int(nucleotide), nil
		}
		return nucleotide, colorconfig.PairNone + int(nucleotide), nil
	case features.Has(genome.Gene) || features.Has(genome.Pseudogene):
		return nucleotide, colorconfig.PairIntron + int(nucleotide), nil
	default:
		return nucleotide, colorconfig.PairNone + int(nucleotide), nil
	}
}

// Fill draws h rows starting at screen row y, beginning from the position
// y rows below the view's recorded top position, and writes the status
// line afterward.
func (v *View) Fill(x, y, h int) error {
	v.fillx, v.filly = x, y
	v.fillmaxy = y + h
	v.cdsPhase = nil

	pos := v.TopPos.Clone()
	if err := pos.AdvanceLines(v.Provider, v.scrw(), y); err != nil {
		return err
	}

	for v.filly < v.fillmaxy {
		v.fillx = 0
		if pos.IsTitle() {
			v.printTitleLine(pos.Reader.Chromosome, *pos.TitlePos)
			if err := pos.NextLine(v.Provider, v.scrw()); err != nil {
				return err
			}
		} else {
			scrw := v.scrw()
			for v.fillx < scrw-1 {
				margin, err := pos.IsMargin()
				if err != nil {
					return err
				}
				if margin {
					v.Screen.SetCell(v.fillx, v.filly, ' ', colorconfig.PairUnknown)
				} else {
					n, pair, err := v.nucleotideAndPair(pos.Reader, &pos.Reader.Features)
					if err != nil {
						return err
					}
					v.Screen.SetCell(v.fillx, v.filly, rune(n.Glyph()), pair)
				}
				if err := pos.Advance(v.Provider); err != nil {
					return err
				}
				v.fillx++
			}
			if err := pos.CheckChEnd(v.Provider, scrw); err != nil {
				return err
			}
		}
		v.filly++
	}
	v.printStatus()
	return nil
}

func (v *View) scrw() int {
	w, _ := v.Screen.Size()
	return w
}

func (v *View) scrh() int {
	_, h := v.Screen.Size()
	return h
}

func (v *View) printStatus() {
	status := fmt.Sprintf("%d (%.3f%%)", v.TopPos.Pos, float64(v.TopPos.Pos)*100/float64(v.TopPos.Reader.ChSize))
	if v.TopPos.Reader.CurrentInfo != "" {
		status += fmt.Sprintf(" %s (%s)", v.TopPos.Reader.CurrentInfo, strandGlyph(v.TopPos.Reader.CurrentInfoStrand))
	}
	v.Screen.SetStatus(status)
}

// ScrollDown advances the view by n rows, redrawing only the new bottom
// row each step, and clears the displayed gene name once the view has
// scrolled past where it was set.
func (v *View) ScrollDown(n int) error {
	for n > 0 && v.TopPos.CanScrollDown(v.scrw(), v.scrh()) {
		v.Screen.Scroll(1)
		if err := v.TopPos.NextLine(v.Provider, v.scrw()); err != nil {
			return err
		}
		if err := v.Fill(0, v.scrh()-1, 1); err != nil {
			return err
		}
		n--
	}
	r := v.TopPos.Reader
	if r.CurrentInfo != "" && r.PrevInfoPos != nil && *r.PrevInfoPos < v.TopPos.Pos {
		r.CurrentInfo = ""
	}
	return nil
}

// ScrollUp retreats the view by n rows, redrawing the new top two rows.
func (v *View) ScrollUp(n int) error {
	for n > 0 && v.TopPos.CanScrollUp() {
		v.Screen.Scroll(-1)
		if err := v.TopPos.PrevLine(v.Provider, v.scrw()); err != nil {
			return err
		}
		if err := v.Fill(0, 0, 2); err != nil {
			return err
		}
		n--
	}
	r := v.TopPos.Reader
	bound := v.TopPos.Pos + int64(v.scrw()-1)*int64(v.scrh())
	if r.CurrentInfo != "" && r.PrevInfoPos != nil && *r.PrevInfoPos > bound {
		r.CurrentInfo = ""
	}
	return nil
}

// Resize redraws the whole screen for a new terminal size.
func (v *View) Resize() error {
	return v.Fill(0, 0, v.scrh())
}

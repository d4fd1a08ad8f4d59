// Package colorconfig loads the terminal color palette (nucleotide
// foregrounds, region backgrounds, and the highlight color) from
// config.ini, converting RGB and hex inputs to the nearest xterm 256-color
// index.
package colorconfig

import "github.com/inodb/seqview/internal/genome"

// Pair base indices. Each base gets one pair per nucleotide (offsets 0-3:
// A, C, G, T), so region N's four pairs are [Base, Base+3]; gap cells use
// PairUnknown instead.
const (
	PairUnknown   = 0
	PairHighlight = 1

	PairNone       = 8
	PairExonPseudo = 12
	PairUTRGene    = 16
	PairCDS        = 20
	PairCDS2       = 24
	PairIntron     = 28
	PairTRNA       = 32
	PairRRNA       = 36
	PairMiRNA      = 40
)

// Palette holds the resolved 256-color indices for every region and
// nucleotide, plus the standalone highlight color.
type Palette struct {
	NucleotideFG [5]int // indexed by genome.Nucleotide (A,C,G,T,unknown)
	RegionBG     map[int]int
	Highlight    int
}

// DefaultPalette reproduces the reference program's built-in colors.
func DefaultPalette() *Palette {
	return &Palette{
		NucleotideFG: [5]int{9, 11, 10, 14, 5},
		RegionBG: map[int]int{
			PairNone:       -1,
			PairExonPseudo: 102,
			PairUTRGene:    170,
			PairCDS:        63,
			PairCDS2:       105,
			PairIntron:     232,
			PairTRNA:       106,
			PairRRNA:       65,
			PairMiRNA:      136,
		},
		Highlight: 11,
	}
}

// FG returns the foreground color index for a nucleotide.
func (p *Palette) FG(n genome.Nucleotide) int {
	if int(n) < 0 || int(n) >= len(p.NucleotideFG) {
		return p.NucleotideFG[4]
	}
	return p.NucleotideFG[n]
}

// BG returns the background color index for a pair base, defaulting to -1
// (terminal default) for an unrecognized pair.
func (p *Palette) BG(pairBase int) int {
	if c, ok := p.RegionBG[pairBase]; ok {
		return c
	}
	return -1
}

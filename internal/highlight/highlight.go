// Package highlight implements the consensus-sequence highlighter: a small
// set of IUPAC-coded motifs (CpG dinucleotides, the TATA box) matched
// against a trailing window of recently decoded bases with a bounded
// mismatch tolerance.
package highlight

import "github.com/inodb/seqview/internal/genome"

// Ring is the trailing-window accessor a Pattern needs to match against;
// satisfied by *reader.Reader.
type Ring interface {
	RingBase(k int) genome.Nucleotide
}

// Pattern is one consensus motif: its IUPAC-coded sequence (matched against
// the most recent len(Consensus) bases) and the maximum number of
// mismatches still counted as a match.
type Pattern struct {
	Name        string
	Consensus   string
	MaxMismatch int
}

// Builtin are the two consensus motifs the reference renderer supports.
var Builtin = []Pattern{
	{Name: "cpg", Consensus: "CG", MaxMismatch: 0},
	{Name: "tata", Consensus: "TATAWAWR", MaxMismatch: 1},
}

// Matches reports whether the trailing window ending at the ring's current
// base matches p within its mismatch budget.
func (p Pattern) Matches(ring Ring) bool {
	differences := 0
	n := len(p.Consensus)
	for k := 1; k <= n; k++ {
		base := ring.RingBase(k)
		code := p.Consensus[n-k]
		if !matchConsensus(base, code) {
			differences++
			if differences > p.MaxMismatch {
				return false
			}
		}
	}
	return true
}

// matchConsensus reports whether a decoded nucleotide satisfies an IUPAC
// ambiguity code.
func matchConsensus(n genome.Nucleotide, code byte) bool {
	g := n.Glyph()
	if g == code {
		return true
	}
	switch code {
	case 'N':
		return true
	case 'W':
		return g == 'A' || g == 'T'
	case 'S':
		return g == 'C' || g == 'G'
	case 'R':
		return g == 'A' || g == 'G'
	case 'Y':
		return g == 'C' || g == 'T'
	case 'M':
		return g == 'A' || g == 'C'
	case 'K':
		return g == 'G' || g == 'T'
	case 'B':
		return g == 'C' || g == 'G' || g == 'T'
	case 'D':
		return g == 'A' || g == 'G' || g == 'T'
	case 'H':
		return g == 'A' || g == 'C' || g == 'T'
	case 'V':
		return g == 'A' || g == 'C' || g == 'G'
	}
	return false
}

// Set is the user-selected subset of Builtin patterns to check, by name
// (spec's "hl=NAME,NAME…" CLI option).
type Set map[string]bool

// NewSet builds a Set from the names given on the command line, ignoring
// any name that isn't one of Builtin.
func NewSet(names []string) Set {
	s := make(Set)
	valid := make(map[string]bool, len(Builtin))
	for _, p := range Builtin {
		valid[p.Name] = true
	}
	for _, n := range names {
		if valid[n] {
			s[n] = true
		}
	}
	return s
}

// Enabled reports whether name was requested.
func (s Set) Enabled(name string) bool {
	return s[name]
}

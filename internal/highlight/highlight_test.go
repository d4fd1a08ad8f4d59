package highlight_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/inodb/seqview/internal/genome"
	"github.com/inodb/seqview/internal/highlight"
)

// fakeRing presents a fixed window of bases, most recent last, as a Ring.
type fakeRing []genome.Nucleotide

func (r fakeRing) RingBase(k int) genome.Nucleotide {
	idx := len(r) - k
	if idx < 0 || idx >= len(r) {
		return genome.NucleotideUnknown
	}
	return r[idx]
}

func TestCpGExactMatch(t *testing.T) {
	ring := fakeRing{genome.C, genome.G}
	p := highlight.Builtin[0]
	require.Equal(t, "cpg", p.Name)
	require.True(t, p.Matches(ring))
}

func TestCpGMismatch(t *testing.T) {
	ring := fakeRing{genome.A, genome.G}
	p := highlight.Builtin[0]
	require.False(t, p.Matches(ring))
}

func TestTATABoxWithinMismatchBudget(t *testing.T) {
	// TATAAAAG vs consensus TATAWAWR: every position satisfies the IUPAC
	// code, so this is actually a 0-mismatch match within the 1-mismatch
	// budget.
	seq := []byte("TATAAAAG")
	ring := make(fakeRing, len(seq))
	for i, c := range seq {
		switch c {
		case 'A':
			ring[i] = genome.A
		case 'T':
			ring[i] = genome.T
		case 'G':
			ring[i] = genome.G
		case 'C':
			ring[i] = genome.C
		}
	}
	p := highlight.Builtin[1]
	require.Equal(t, "tata", p.Name)
	require.True(t, p.Matches(ring))
}

func TestTATABoxExceedsTolerance(t *testing.T) {
	seq := []byte("CACAAAAA") // two mismatches against TATAWAWR (positions 1 and 3)
	ring := make(fakeRing, len(seq))
	for i, c := range seq {
		switch c {
		case 'A':
			ring[i] = genome.A
		case 'T':
			ring[i] = genome.T
		case 'G':
			ring[i] = genome.G
		case 'C':
			ring[i] = genome.C
		}
	}
	p := highlight.Builtin[1]
	require.False(t, p.Matches(ring))
}

func TestNewSetIgnoresUnknownNames(t *testing.T) {
	s := highlight.NewSet([]string{"cpg", "bogus"})
	require.True(t, s.Enabled("cpg"))
	require.False(t, s.Enabled("bogus"))
	require.False(t, s.Enabled("tata"))
}

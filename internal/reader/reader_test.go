package reader_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/inodb/seqview/internal/fixture"
	"github.com/inodb/seqview/internal/genome"
	"github.com/inodb/seqview/internal/reader"
)

func open(t *testing.T, dir, ch string, pos int64) *reader.Reader {
	t.Helper()
	r, err := reader.Open(dir, ch, pos, reader.OpenOptions{})
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, r.Close()) })
	return r
}

func TestPlainSequenceNoMetadata(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, fixture.WriteChromosome(dir, "1", "ACGTACGTAC", nil))

	r := open(t, dir, "1", 1)
	require.Equal(t, genome.A, r.CurrentBase())
	require.False(t, r.Features.Has(genome.Gene))

	for i := 0; i < 9; i++ {
		require.NoError(t, r.Advance())
	}
	require.Equal(t, genome.C, r.CurrentBase())
	require.Equal(t, int64(10), r.Pos())
}

func TestGeneSpanningFullSequence(t *testing.T) {
	dir := t.TempDir()
	seq := "ACGTACGTACGTACGT"
	events := []fixture.Event{
		{Position: 1, Kind: 4, Strand: 1, Name: "TESTGENE"},
		{Position: uint32(len(seq) + 1), Kind: 4, IsEnd: true},
	}
	require.NoError(t, fixture.WriteChromosome(dir, "1", seq, events))

	r := open(t, dir, "1", 1)
	require.True(t, r.Features.Has(genome.Gene))
	require.Equal(t, "TESTGENE", r.CurrentInfo)
	require.Equal(t, genome.Strand(1), r.CurrentInfoStrand)

	for i := 0; i < len(seq)-1; i++ {
		require.NoError(t, r.Advance())
		require.True(t, r.Features.Has(genome.Gene), "pos %d", r.Pos())
	}
}

func TestCDSPhaseAlternation(t *testing.T) {
	dir := t.TempDir()
	seq := "ACGTACGTACGTACGTACGTACGT" // 24 bases, 8 codons
	events := []fixture.Event{
		{Position: 1, Kind: 2, Phase: 0},
		{Position: uint32(len(seq) + 1), Kind: 2, IsEnd: true},
	}
	require.NoError(t, fixture.WriteChromosome(dir, "1", seq, events))

	r := open(t, dir, "1", 1)
	var phases []uint8
	for i := 0; i < len(seq); i++ {
		require.True(t, r.Features.Has(genome.CDS))
		phase, err := r.CDSPhase()
		require.NoError(t, err)
		phases = append(phases, phase&3)
		if i < len(seq)-1 {
			require.NoError(t, r.Advance())
		}
	}
	for i, p := range phases {
		require.Equal(t, uint8(i%3), p, "position %d", i+1)
	}
}

func TestJumpToForwardBackwardConsistency(t *testing.T) {
	dir := t.TempDir()
	seq := "ACGTACGTACGTACGTACGTACGTACGTACGT"
	events := []fixture.Event{
		{Position: 3, Kind: 1}, // exon start
		{Position: 3, Kind: 4, Strand: 2, Name: "G1"},
		{Position: 10, Kind: 2, Phase: 1}, // CDS start nested in exon+gene
		{Position: 15, Kind: 2, IsEnd: true},
		{Position: 20, Kind: 1, IsEnd: true}, // exon end
		{Position: 25, Kind: 4, IsEnd: true}, // gene end
	}
	require.NoError(t, fixture.WriteChromosome(dir, "1", seq, events))

	r := open(t, dir, "1", 1)

	// Walk forward to the end, recording the active set at each position.
	type snap struct {
		gene, exon, cds bool
	}
	forward := make(map[int64]snap)
	forward[r.Pos()] = snap{r.Features.Has(genome.Gene), r.Features.Has(genome.Exon), r.Features.Has(genome.CDS)}
	for r.Pos() < int64(len(seq)) {
		require.NoError(t, r.Advance())
		forward[r.Pos()] = snap{r.Features.Has(genome.Gene), r.Features.Has(genome.Exon), r.Features.Has(genome.CDS)}
	}

	// Jump between interior positions and check the feature state matches
	// the forward scan exactly. The jump from 22 back to 12 is nearer the
	// current position than either end, so it exercises the
	// reverse-traversal tag_copy walk.
	for _, p := range []int64{30, 12, 22, 12, 5} {
		require.NoError(t, r.JumpTo(p))
		got := snap{r.Features.Has(genome.Gene), r.Features.Has(genome.Exon), r.Features.Has(genome.CDS)}
		require.Equal(t, forward[p], got, "position %d", p)
	}

	require.NoError(t, r.JumpTo(1))
	require.NoError(t, r.JumpTo(18))
	got := snap{r.Features.Has(genome.Gene), r.Features.Has(genome.Exon), r.Features.Has(genome.CDS)}
	require.Equal(t, forward[18], got)
}

func TestJumpToChromosomeEnd(t *testing.T) {
	dir := t.TempDir()
	seq := "ACGTACGTACGT"
	events := []fixture.Event{
		{Position: 1, Kind: 0}, // gap start
		{Position: 4, Kind: 0, IsEnd: true},
	}
	require.NoError(t, fixture.WriteChromosome(dir, "1", seq, events))

	r := open(t, dir, "1", int64(len(seq)))
	require.Equal(t, int64(len(seq)), r.Pos())
	require.False(t, r.Features.Has(genome.Gap))
}

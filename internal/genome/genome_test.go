package genome_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/inodb/seqview/internal/genome"
)

func TestDecodeBase(t *testing.T) {
	// A=0 C=1 G=2 T=3 packed big-bit-order: byte = 00 01 10 11 = 0x1B
	packed := []byte{0x1B}
	require.Equal(t, genome.A, genome.DecodeBase(packed, 1))
	require.Equal(t, genome.C, genome.DecodeBase(packed, 2))
	require.Equal(t, genome.G, genome.DecodeBase(packed, 3))
	require.Equal(t, genome.T, genome.DecodeBase(packed, 4))
}

func TestChromosomeNavigation(t *testing.T) {
	require.Equal(t, "2", genome.NextChromosome("1"))
	require.Equal(t, "mt", genome.NextChromosome("Y"))
	require.Equal(t, "", genome.NextChromosome("mt"))
	require.Equal(t, "", genome.PrevChromosome("1"))
	require.Equal(t, "22", genome.PrevChromosome("X"))
	require.Equal(t, -1, genome.ChromosomeIndex("bogus"))
}

func TestFeatureSetMultiset(t *testing.T) {
	var fs genome.FeatureSet
	geneStart := genome.Event{Kind: genome.Gene}.Tag()
	exonStart := genome.Event{Kind: genome.Exon}.Tag()
	exonEnd := genome.Event{Kind: genome.Exon, IsEnd: true}.Tag()

	fs.Apply(geneStart)
	fs.Apply(exonStart)
	fs.Apply(exonStart) // nested exon
	require.True(t, fs.Has(genome.Exon))
	require.Equal(t, 2, fs.Count(genome.Exon))

	fs.Apply(exonEnd)
	require.True(t, fs.Has(genome.Exon)) // one nested exon still active
	fs.Apply(exonEnd)
	require.False(t, fs.Has(genome.Exon))
	require.True(t, fs.Has(genome.Gene))

	clone := fs.Clone()
	require.True(t, fs.Equal(&clone))
	clone.Apply(geneStart)
	require.False(t, fs.Equal(&clone))
}

func TestRecordSize(t *testing.T) {
	require.Equal(t, 5, genome.RecordSize(genome.Gap, false, ""))
	require.Equal(t, 5, genome.RecordSize(genome.Exon, true, ""))
	require.Equal(t, 7, genome.RecordSize(genome.CDS, false, ""))
	require.Equal(t, 11, genome.RecordSize(genome.Gene, false, "AB"))
}

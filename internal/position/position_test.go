package position_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/inodb/seqview/internal/fixture"
	"github.com/inodb/seqview/internal/position"
	"github.com/inodb/seqview/internal/reader"
)

// provider opens fixture chromosomes on demand and tracks what it opened so
// tests can close everything afterward.
type provider struct {
	dir     string
	t       *testing.T
	readers map[string]*reader.Reader
}

func newProvider(t *testing.T, dir string) *provider {
	p := &provider{dir: dir, t: t, readers: map[string]*reader.Reader{}}
	t.Cleanup(func() {
		for _, r := range p.readers {
			require.NoError(t, r.Close())
		}
	})
	return p
}

func (p *provider) Get(ch string) (*reader.Reader, error) {
	if r, ok := p.readers[ch]; ok {
		return r, nil
	}
	r, err := reader.Open(p.dir, ch, 1, reader.OpenOptions{})
	if err != nil {
		return nil, err
	}
	p.readers[ch] = r
	return r, nil
}

func setupChromosomes(t *testing.T) string {
	dir := t.TempDir()
	require.NoError(t, fixture.WriteChromosome(dir, "1", "ACGTACGTAC", nil))
	require.NoError(t, fixture.WriteChromosome(dir, "2", "TTTTGGGGCC", nil))
	return dir
}

func TestAdvanceStaysWithinChromosome(t *testing.T) {
	dir := setupChromosomes(t)
	p := newProvider(t, dir)
	r, err := p.Get("1")
	require.NoError(t, err)

	pos := position.New(r)
	require.False(t, pos.IsTitle())
	for i := 0; i < 5; i++ {
		require.NoError(t, pos.Advance(p))
	}
	require.Equal(t, int64(6), pos.Pos)
}

func TestNextLineCrossesChromosomeIntoTitle(t *testing.T) {
	dir := setupChromosomes(t)
	p := newProvider(t, dir)
	r, err := p.Get("1")
	require.NoError(t, err)

	pos := position.New(r)
	pos.Pos = r.ChSize // last row start, one scrw-1 from the end
	require.NoError(t, pos.NextLine(p, 2))
	require.True(t, pos.IsTitle())
	require.Equal(t, "2", pos.Reader.Chromosome)
	require.Equal(t, -10, *pos.TitlePos)
}

func TestPrevLineFromSequenceStartEntersTitle(t *testing.T) {
	dir := setupChromosomes(t)
	p := newProvider(t, dir)
	r, err := p.Get("1")
	require.NoError(t, err)

	pos := position.New(r)
	pos.Pos = 1
	require.NoError(t, pos.PrevLine(p, 5))
	require.True(t, pos.IsTitle())
	require.Equal(t, -1, *pos.TitlePos)
}

func TestTitleCountsUpToSequenceStart(t *testing.T) {
	dir := setupChromosomes(t)
	p := newProvider(t, dir)
	r, err := p.Get("1")
	require.NoError(t, err)

	pos := position.New(r)
	tp := -2
	pos.TitlePos = &tp
	require.NoError(t, pos.NextLine(p, 5))
	require.Equal(t, -1, *pos.TitlePos)
	require.NoError(t, pos.NextLine(p, 5))
	require.False(t, pos.IsTitle())
}

func TestCanScrollBoundaries(t *testing.T) {
	dir := setupChromosomes(t)
	p := newProvider(t, dir)
	r, err := p.Get("1")
	require.NoError(t, err)

	pos := position.New(r)
	require.True(t, pos.CanScrollUp()) // title is reachable above any sequence row
	require.True(t, pos.CanScrollDown(3, 2))

	tp := -10
	pos.TitlePos = &tp
	pos.Pos = 0
	require.False(t, pos.CanScrollUp()) // chromosome "1" has no predecessor
}

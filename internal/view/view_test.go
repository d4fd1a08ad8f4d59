package view_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/inodb/seqview/internal/fixture"
	"github.com/inodb/seqview/internal/highlight"
	"github.com/inodb/seqview/internal/position"
	"github.com/inodb/seqview/internal/reader"
	"github.com/inodb/seqview/internal/view"
)

// memScreen is an in-memory Screen for assertions without a real terminal.
type memScreen struct {
	w, h   int
	cells  map[[2]int]rune
	pairs  map[[2]int]int
	status string
}

func newMemScreen(w, h int) *memScreen {
	return &memScreen{w: w, h: h, cells: map[[2]int]rune{}, pairs: map[[2]int]int{}}
}

func (s *memScreen) SetCell(x, y int, ch rune, pair int) {
	s.cells[[2]int{x, y}] = ch
	s.pairs[[2]int{x, y}] = pair
}
func (s *memScreen) SetPair(x, y, pair int) { s.pairs[[2]int{x, y}] = pair }
func (s *memScreen) Size() (int, int)       { return s.w, s.h }
func (s *memScreen) Scroll(lines int)       {}
func (s *memScreen) SetStatus(text string)  { s.status = text }

type stubProvider struct{ r *reader.Reader }

func (p *stubProvider) Get(ch string) (*reader.Reader, error) { return p.r, nil }

func TestFillPlainSequence(t *testing.T) {
	dir := t.TempDir()
	seq := "ACGTACGT"
	require.NoError(t, fixture.WriteChromosome(dir, "1", seq, nil))
	r, err := reader.Open(dir, "1", 1, reader.OpenOptions{})
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, r.Close()) })

	screen := newMemScreen(5, 4)
	top := position.New(r)
	v := view.New(screen, &stubProvider{r}, highlight.NewSet(nil), top)

	require.NoError(t, v.Fill(0, 0, 1))
	require.Equal(t, 'A', screen.cells[[2]int{0, 0}])
	require.Equal(t, 'C', screen.cells[[2]int{1, 0}])
	require.Equal(t, 'G', screen.cells[[2]int{2, 0}])
	require.Equal(t, 'T', screen.cells[[2]int{3, 0}])
	require.NotEmpty(t, screen.status)
}

func TestFillHighlightsCpG(t *testing.T) {
	dir := t.TempDir()
	seq := "ACGT"
	require.NoError(t, fixture.WriteChromosome(dir, "1", seq, nil))
	r, err := reader.Open(dir, "1", 1, reader.OpenOptions{})
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, r.Close()) })

	screen := newMemScreen(5, 4)
	top := position.New(r)
	v := view.New(screen, &stubProvider{r}, highlight.NewSet([]string{"cpg"}), top)

	require.NoError(t, v.Fill(0, 0, 1))
	// "CG" at columns 1,2 should both be recolored PAIR_HIGHLIGHT; columns
	// 0 and 3 keep their plain pair.
	require.Equal(t, view.PairHighlight, screen.pairs[[2]int{1, 0}])
	require.Equal(t, view.PairHighlight, screen.pairs[[2]int{2, 0}])
	require.NotEqual(t, view.PairHighlight, screen.pairs[[2]int{0, 0}])
}

func TestScrollDownAdvancesTopPos(t *testing.T) {
	dir := t.TempDir()
	seq := "ACGTACGTACGTACGT"
	require.NoError(t, fixture.WriteChromosome(dir, "1", seq, nil))
	r, err := reader.Open(dir, "1", 1, reader.OpenOptions{})
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, r.Close()) })

	screen := newMemScreen(5, 2)
	top := position.New(r)
	v := view.New(screen, &stubProvider{r}, highlight.NewSet(nil), top)
	require.NoError(t, v.Fill(0, 0, screen.h))

	startPos := top.Pos
	require.NoError(t, v.ScrollDown(1))
	require.Greater(t, top.Pos, startPos)
}

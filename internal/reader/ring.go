package reader

import "github.com/inodb/seqview/internal/genome"

// nucleotideRing is a fixed 20-slot ring buffer of the most recently decoded
// nucleotides, used by the consensus-sequence highlighter (spec §4.4). It
// mirrors the Python original's collections.deque(maxlen=20) but in O(1)
// per push without shifting, since a 3-billion-base scan can't afford an
// O(n) shift per advance.
type nucleotideRing struct {
	buf  [20]genome.Nucleotide
	head int // index of the next slot to be written
}

func newNucleotideRing() *nucleotideRing {
	r := &nucleotideRing{}
	for i := range r.buf {
		r.buf[i] = genome.NoBase
	}
	return r
}

func (r *nucleotideRing) push(n genome.Nucleotide) {
	r.buf[r.head] = n
	r.head = (r.head + 1) % len(r.buf)
}

// at returns the nucleotide k positions back from the most recent one: k=1
// is the current (most recently pushed) base, k=2 the one before it, and so
// on, matching the Python deque's negative indexing (deque[-1], deque[-2]…).
func (r *nucleotideRing) at(k int) genome.Nucleotide {
	n := len(r.buf)
	idx := ((r.head-k)%n + n) % n
	return r.buf[idx]
}

func (r *nucleotideRing) reset() {
	for i := range r.buf {
		r.buf[i] = genome.NoBase
	}
	r.head = 0
}

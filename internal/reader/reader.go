// Package reader implements the bidirectional cursor over a chromosome's
// packed sequence (<chr>.bin) and feature-event metadata (<chr>.dat): the
// pair of files described by the genome package's on-disk formats.
package reader

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/multierr"

	"github.com/inodb/seqview/internal/genome"
)

// OpenOptions controls how the initial position argument to Open is
// interpreted.
type OpenOptions struct {
	// PosIsPercent treats pos as a percentage (0-100) of the chromosome's
	// length rather than an absolute 1-based coordinate.
	PosIsPercent bool
	// FromEnd treats pos as a distance back from the end of the
	// chromosome (the CLI's "negative position" convention: -1 means the
	// last base). Only meaningful for the session's starting position.
	FromEnd bool
}

// Reader is a bidirectional cursor over one chromosome. It tracks the
// currently decoded base, the active feature multiset at that base, and the
// gene/CDS annotation in effect, and can move forward, backward, or jump to
// an arbitrary position while keeping all three in sync.
type Reader struct {
	Chromosome string
	ChSize     int64

	pos int64 // 1-based position of the most recently decoded base
	n   int   // 0-3: which 2-bit field of curByte holds that base
	// EOF is set once pos has advanced past ChSize (the one-past-the-end
	// margin position used by the title/margin transition).
	EOF bool

	curByte byte
	bin     *os.File
	meta    *metaCursor

	curFeatPos *int64
	nextPos    *int64
	nextFeat   *uint8

	Features          genome.FeatureSet
	CurrentInfoStrand genome.Strand
	CurrentInfo       string
	PrevInfoPos       *int64

	cdsCache cdsPhaseCache

	ring *nucleotideRing
}

// Open opens the chromosome ch's .bin and .dat files under dataDir and
// positions the reader at pos (clamped to [1, size+1]), with its feature
// state fully caught up to that position. A missing .dat file is not an
// error: the reader degrades to a plain, feature-less sequence.
func Open(dataDir, ch string, pos int64, opts OpenOptions) (*Reader, error) {
	binPath := filepath.Join(dataDir, ch+".bin")
	bf, err := os.Open(binPath)
	if err != nil {
		return nil, err
	}

	var sizeBuf [4]byte
	if _, err := io.ReadFull(bf, sizeBuf[:]); err != nil {
		bf.Close()
		return nil, fmt.Errorf("reader: reading size header of %s: %w", binPath, err)
	}
	chSize := int64(binary.LittleEndian.Uint32(sizeBuf[:]))

	if opts.PosIsPercent {
		pos = (pos * chSize) / 100
	}
	if opts.FromEnd {
		pos = chSize + pos + 1
	}

	metaPath := filepath.Join(dataDir, ch+".dat")
	mf, err := os.Open(metaPath)
	if err != nil {
		if !os.IsNotExist(err) {
			bf.Close()
			return nil, fmt.Errorf("reader: opening %s: %w", metaPath, err)
		}
		mf = nil
	}

	r := &Reader{
		Chromosome: ch,
		ChSize:     chSize,
		bin:        bf,
		meta:       &metaCursor{f: mf},
		ring:       newNucleotideRing(),
	}

	if err := r.jumpToMetaStart(); err != nil {
		r.Close()
		return nil, err
	}

	if pos < 1 {
		pos = 1
	}
	if pos > chSize+1 {
		pos = chSize + 1
	}
	if err := r.JumpTo(pos); err != nil {
		r.Close()
		return nil, err
	}
	return r, nil
}

// Close releases the underlying file handles, combining any errors from
// both with multierr so neither is silently dropped.
func (r *Reader) Close() error {
	var err error
	if r.bin != nil {
		err = multierr.Append(err, r.bin.Close())
	}
	if r.meta != nil && r.meta.f != nil {
		err = multierr.Append(err, r.meta.f.Close())
	}
	return err
}

// Pos is the 1-based position of the most recently decoded base.
func (r *Reader) Pos() int64 { return r.pos }

// CurrentBase decodes the nucleotide at the reader's current position.
func (r *Reader) CurrentBase() genome.Nucleotide {
	b := (r.curByte >> uint(2*(3-r.n))) & 3
	return genome.Nucleotide(b)
}

// RingBase returns the nucleotide k positions back from the current one
// (k=1 is the current base itself), for the consensus-sequence highlighter.
func (r *Reader) RingBase(k int) genome.Nucleotide {
	return r.ring.at(k)
}

func (r *Reader) getByte() error {
	var buf [1]byte
	n, err := r.bin.Read(buf[:])
	if n == 1 {
		r.curByte = buf[0]
		return nil
	}
	if err == io.EOF || err == nil {
		return nil
	}
	return err
}

func (r *Reader) seekPos() error {
	if _, err := r.bin.Seek(4+(r.pos-1)/4, io.SeekStart); err != nil {
		return err
	}
	r.n = int((r.pos - 1) % 4)
	return r.getByte()
}

func (r *Reader) advanceNucleotide() error {
	r.n++
	if r.n&3 == 0 {
		if err := r.getByte(); err != nil {
			return err
		}
		r.n &= 3
	}
	r.ring.push(r.CurrentBase())
	r.pos++
	return nil
}

// Advance moves forward one base, folding in any feature events whose
// position the cursor just reached or passed.
func (r *Reader) Advance() error {
	if err := r.advanceNucleotide(); err != nil {
		return err
	}
	for r.nextPos != nil && r.pos == *r.nextPos {
		if err := r.updateFeatures(); err != nil {
			return err
		}
	}
	if r.pos > r.ChSize {
		r.EOF = true
	}
	return nil
}

// consumePayload reads and discards (or decodes, for Gene) the type-specific
// payload of a just-tagged start event, leaving the metadata cursor
// positioned right after the record's full content.
func (r *Reader) consumePayload(kind genome.FeatureKind) (strand genome.Strand, name string, hasGeneInfo bool, err error) {
	switch kind {
	case genome.Gene:
		if _, ok, e := r.meta.readByte(); e != nil || !ok {
			return 0, "", false, firstRecordErr(e, r.meta, "gene payload marker")
		}
		sb, ok, e := r.meta.readByte()
		if e != nil || !ok {
			return 0, "", false, firstRecordErr(e, r.meta, "gene strand byte")
		}
		strand = genome.Strand(sb)
		var nameBytes []byte
		for {
			b, ok, e := r.meta.readByte()
			if e != nil {
				return 0, "", false, e
			}
			if !ok {
				return 0, "", false, &genome.ErrMalformedRecord{Offset: r.meta.tell(), Reason: "unterminated gene name"}
			}
			if b == 0 {
				break
			}
			nameBytes = append(nameBytes, b)
		}
		if _, ok, e := r.meta.readByte(); e != nil || !ok {
			return 0, "", false, firstRecordErr(e, r.meta, "gene tag_copy trailer")
		}
		return strand, string(nameBytes), true, nil
	case genome.CDS:
		if _, ok, e := r.meta.readByte(); e != nil || !ok {
			return 0, "", false, firstRecordErr(e, r.meta, "CDS phase byte")
		}
		if _, ok, e := r.meta.readByte(); e != nil || !ok {
			return 0, "", false, firstRecordErr(e, r.meta, "CDS tag_copy trailer")
		}
	}
	return 0, "", false, nil
}

func firstRecordErr(e error, m *metaCursor, reason string) error {
	if e != nil {
		return e
	}
	return &genome.ErrMalformedRecord{Offset: m.tell(), Reason: reason}
}

// updateFeatures applies the pending next event, consumes its payload, and
// reads the following event's header, advancing the metadata cursor. It is
// the forward counterpart to updateFeaturesBackwards.
func (r *Reader) updateFeatures() error {
	r.curFeatPos = r.nextPos
	if r.nextFeat == nil {
		return nil
	}
	r.Features.Apply(*r.nextFeat)

	kind, isEnd := genome.DecodeTag(*r.nextFeat)
	if !isEnd {
		strand, name, hasInfo, err := r.consumePayload(kind)
		if err != nil {
			return err
		}
		if hasInfo {
			r.CurrentInfoStrand = strand
			r.CurrentInfo = name
			pos := *r.nextPos
			r.PrevInfoPos = &pos
		}
	}

	v, ok, err := r.meta.readU32()
	if err != nil {
		return err
	}
	if !ok {
		r.nextPos = nil
		r.nextFeat = nil
		return nil
	}
	pos := int64(v)
	b, ok, err := r.meta.readByte()
	if err != nil {
		return err
	}
	if !ok {
		return &genome.ErrMalformedRecord{Offset: r.meta.tell(), Reason: "truncated record header"}
	}
	r.nextPos = &pos
	r.nextFeat = &b
	return nil
}

// ungetFeature seeks the metadata cursor back to the record immediately
// preceding its current position, without any other side effect, and
// reports that record's raw tag byte. It requires the cursor to sit right
// after a tag byte (the steady-state position during both forward and
// backward traversal).
func (r *Reader) ungetFeature() (tag uint8, exists bool, err error) {
	if r.meta.tell() < 10 {
		return 0, false, nil
	}
	r.meta.seekRel(-6)
	b, ok, e := r.meta.readByte()
	if e != nil {
		return 0, false, e
	}
	if !ok {
		return 0, false, &genome.ErrMalformedRecord{Offset: r.meta.tell(), Reason: "unexpected end of metadata while backtracking"}
	}
	tag = b

	switch genome.FeatureKind(tag) {
	case genome.Gene:
		r.meta.seekRel(-3)
		for {
			c, ok, e := r.meta.readByte()
			if e != nil {
				return 0, false, e
			}
			if !ok || c == 0 {
				break
			}
			r.meta.seekRel(-2)
		}
		r.meta.seekRel(-1)
	case genome.CDS:
		r.meta.seekRel(-2)
	}
	return tag, true, nil
}

// updateFeaturesBackwards is the inverse of updateFeatures: it un-applies
// the event the cursor just passed and reads the preceding one, moving the
// metadata cursor backward. It relies on every record's tag_copy trailer to
// find record boundaries without a forward index.
func (r *Reader) updateFeaturesBackwards() error {
	r.nextPos = r.curFeatPos

	var lostFeat uint8
	if r.nextFeat == nil {
		r.meta.seekRel(-1)
		b, ok, err := r.meta.readByte()
		if err != nil {
			return err
		}
		if !ok {
			return &genome.ErrMalformedRecord{Offset: r.meta.tell(), Reason: "metadata truncated at end-of-file boundary"}
		}
		lostFeat = b
	} else {
		tag, exists, err := r.ungetFeature()
		if err != nil {
			return err
		}
		if !exists {
			return &genome.ErrMalformedRecord{Offset: r.meta.tell(), Reason: "no metadata record to backtrack to"}
		}
		lostFeat = tag
	}
	r.Features.Apply(lostFeat ^ genome.EndFlag)

	_, exists, err := r.ungetFeature()
	if err != nil {
		return err
	}
	if exists {
		r.meta.seekRel(-5)
		v, ok, err := r.meta.readU32()
		if err != nil {
			return err
		}
		if !ok {
			return &genome.ErrMalformedRecord{Offset: r.meta.tell(), Reason: "truncated position field while backtracking"}
		}
		pos := int64(v)
		r.curFeatPos = &pos

		b, ok, err := r.meta.readByte()
		if err != nil {
			return err
		}
		if !ok {
			return &genome.ErrMalformedRecord{Offset: r.meta.tell(), Reason: "truncated tag byte while backtracking"}
		}
		r.nextFeat = &b

		kind, isEnd := genome.DecodeTag(b)
		if !isEnd {
			if _, _, _, err := r.consumePayload(kind); err != nil {
				return err
			}
		}
		if _, ok, err := r.meta.readN(5); err != nil {
			return err
		} else if !ok {
			return &genome.ErrMalformedRecord{Offset: r.meta.tell(), Reason: "truncated following record header"}
		}
	} else {
		r.curFeatPos = nil
	}
	r.nextFeat = &lostFeat
	return nil
}

// jumpToMetaStart resets metadata traversal to the beginning of the file,
// clearing all active features.
func (r *Reader) jumpToMetaStart() error {
	r.meta.seekStart()
	r.curFeatPos = nil

	v, ok, err := r.meta.readU32()
	if err != nil {
		return err
	}
	if !ok {
		r.nextPos = nil
		r.nextFeat = nil
	} else {
		pos := int64(v)
		b, ok, err := r.meta.readByte()
		if err != nil {
			return err
		}
		if !ok {
			return &genome.ErrMalformedRecord{Offset: r.meta.tell(), Reason: "truncated initial record"}
		}
		r.nextPos = &pos
		r.nextFeat = &b
	}
	r.pos = 0
	r.Features.Clear()
	return nil
}

// jumpToMetaEnd advances metadata traversal to the end of the file, folding
// in every event along the way, so curFeatPos lands on the last record's
// position and Features holds the fully-applied final state. A full
// forward scan, rather than the reverse byte-arithmetic shortcut the
// original program used here, because that shortcut's correctness depended
// on the second-to-last record never carrying a variable-length payload —
// an assumption not worth encoding into a binary format invariant.
func (r *Reader) jumpToMetaEnd() error {
	if err := r.jumpToMetaStart(); err != nil {
		return err
	}
	for r.nextPos != nil {
		if err := r.updateFeatures(); err != nil {
			return err
		}
	}
	return nil
}

func abs64(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}

// JumpTo moves the reader to absolute position p, updating features and
// refilling the consensus ring buffer along the way. It anchors to
// whichever of the chromosome start, the chromosome end, or the reader's
// current position is nearest to p, then walks the remaining distance.
// Anchoring at the end still replays every metadata event, since
// jumpToMetaEnd scans forward from the start of the file.
func (r *Reader) JumpTo(p int64) error {
	switch {
	case p == 1:
		if err := r.jumpToMetaStart(); err != nil {
			return err
		}
	case p == r.ChSize:
		if err := r.jumpToMetaEnd(); err != nil {
			return err
		}
		// Every event is now applied, including any positioned past p
		// (an end event at ChSize+1); the backward walk below undoes those.
		r.pos = r.ChSize + 1
	case p < abs64(p-r.pos):
		if err := r.JumpTo(1); err != nil {
			return err
		}
	case (r.ChSize - p) < abs64(p-r.pos):
		if err := r.JumpTo(r.ChSize); err != nil {
			return err
		}
	}

	if p > r.pos {
		for r.nextPos != nil && p >= *r.nextPos {
			if err := r.updateFeatures(); err != nil {
				return err
			}
		}
	}
	if p < r.pos {
		for r.curFeatPos != nil && p < *r.curFeatPos {
			if err := r.updateFeaturesBackwards(); err != nil {
				return err
			}
		}
	}

	r.ring.reset()
	if p > 20 {
		r.pos = p - 20
	} else {
		r.pos = 1
	}
	if err := r.seekPos(); err != nil {
		return err
	}
	for r.pos < p {
		if err := r.advanceNucleotide(); err != nil {
			return err
		}
	}
	r.EOF = r.pos > r.ChSize
	return nil
}

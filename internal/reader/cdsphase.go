package reader

import "github.com/inodb/seqview/internal/genome"

// cdsPhaseCache memoizes the most recent CDS phase lookup by the metadata
// cursor offset it was computed at, since CDSPhase is called once per
// rendered cell and re-scanning backward to the enclosing CDS record every
// time would be quadratic over a long exon.
type cdsPhaseCache struct {
	valid      bool
	savedFpos  int64
	startPhase uint8
	startPos   int64
}

// CDSPhase returns the reading-frame tone nibble for the reader's current
// position, valid only while a CDS feature is active (callers check
// Features.Has(genome.CDS) first). Bits 0-1 hold the codon phase (0/1/2);
// bit 2 toggles on every codon (every three bases) so the renderer can alternate two tones
// across adjacent codons. It does not move the reader's position.
func (r *Reader) CDSPhase() (uint8, error) {
	savedFpos := r.meta.tell()

	if r.cdsCache.valid && savedFpos == r.cdsCache.savedFpos {
		return tonePhase(r.cdsCache.startPhase, r.pos-r.cdsCache.startPos), nil
	}

	prevFeat, exists, err := r.ungetFeature()
	for err == nil && exists && genome.FeatureKind(prevFeat) != genome.CDS {
		prevFeat, exists, err = r.ungetFeature()
	}
	if err != nil {
		r.meta.seekAbs(savedFpos)
		return 0, err
	}

	var result uint8
	if exists && genome.FeatureKind(prevFeat) == genome.CDS {
		phaseByte, ok, rerr := r.meta.readByte()
		if rerr != nil {
			r.meta.seekAbs(savedFpos)
			return 0, rerr
		}
		if !ok {
			r.meta.seekAbs(savedFpos)
			return 0, &genome.ErrMalformedRecord{Offset: r.meta.tell(), Reason: "truncated CDS phase byte"}
		}
		startPhase := uint8((3 - int(phaseByte)%3) % 3)

		r.meta.seekRel(-6)
		v, ok, rerr := r.meta.readU32()
		if rerr != nil {
			r.meta.seekAbs(savedFpos)
			return 0, rerr
		}
		if !ok {
			r.meta.seekAbs(savedFpos)
			return 0, &genome.ErrMalformedRecord{Offset: r.meta.tell(), Reason: "truncated CDS start position"}
		}
		startPos := int64(v)

		r.cdsCache = cdsPhaseCache{valid: true, savedFpos: savedFpos, startPhase: startPhase, startPos: startPos}
		result = tonePhase(startPhase, r.pos-startPos)
	}

	r.meta.seekAbs(savedFpos)
	return result, nil
}

// floorDivMod is Euclidean division: m always has the same sign as b (here
// always in [0, b)), matching Python's // and % on possibly-negative
// operands, which the phase arithmetic below depends on.
func floorDivMod(a, b int64) (q, m int64) {
	q = a / b
	m = a % b
	if m != 0 && (m^b) < 0 {
		q--
		m += b
	}
	return q, m
}

func tonePhase(startPhase uint8, relative int64) uint8 {
	q, m := floorDivMod(relative, 3)
	phase := (int64(startPhase) + m) % 3
	tone := q & 1
	return uint8(phase) | uint8((tone&1)<<2)
}

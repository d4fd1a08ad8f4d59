package genome

import "fmt"

// Event is one decoded feature-event record from a <chr>.dat file: a
// position, a tag (kind + start/end flag), and its type-specific payload.
// Events are sorted by Position ascending in the file; events sharing a
// Position are all applied before the cursor advances past it.
type Event struct {
	Position uint32
	Kind     FeatureKind
	IsEnd    bool

	// Gene-start payload.
	GeneStrand Strand
	GeneName   string

	// CDS-start payload.
	CDSPhase uint8
}

// Tag reconstructs the on-disk tag byte for this event.
func (e Event) Tag() uint8 {
	b := uint8(e.Kind) & FeatureMask
	if e.IsEnd {
		b |= EndFlag
	}
	return b
}

// DecodeTag splits a raw tag byte into its kind and end flag.
func DecodeTag(tag uint8) (kind FeatureKind, isEnd bool) {
	return FeatureKind(tag & FeatureMask), tag&EndFlag != 0
}

// ErrMalformedRecord signals a metadata record that could not be parsed
// (missing terminator, truncated payload). The Reader returns it from the
// call that hit the record (Open, Advance, JumpTo, CDSPhase); it has no
// degraded mode that drops the remaining metadata and carries on.
type ErrMalformedRecord struct {
	Offset int64
	Reason string
}

func (e *ErrMalformedRecord) Error() string {
	return fmt.Sprintf("malformed metadata record at offset %d: %s", e.Offset, e.Reason)
}

// RecordSize returns the total on-disk size in bytes of a record with the
// given kind, used by the reverse scanner to know how far back the payload
// extends before the position+tag header. name is only consulted for Gene.
func RecordSize(kind FeatureKind, isEnd bool, name string) int {
	const headerSize = 5 // position:u32 + tag:u8
	if isEnd {
		return headerSize
	}
	switch kind {
	case Gene:
		// NUL + strand + name bytes + NUL + tag_copy
		return headerSize + 1 + 1 + len(name) + 1 + 1
	case CDS:
		// phase + tag_copy
		return headerSize + 1 + 1
	default:
		return headerSize
	}
}

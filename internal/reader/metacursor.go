package reader

import (
	"encoding/binary"
	"io"
	"os"
)

// metaCursor is a logical, seekable read position into a <chr>.dat file.
// It reads via os.File.ReadAt rather than Seek+Read so that the reverse
// scan in update_features_backwards (which walks the offset both forward
// and backward one byte at a time) never has to reconcile Go's single
// Seek-tracked file position with the algorithm's own bookkeeping.
//
// A nil underlying file models a missing metadata file: every read reports
// "no more data" (as if positioned at EOF of an empty file), which is
// exactly the behavior spec §7 requires when <chr>.dat does not exist —
// no active features are ever applied, without a distinct code path.
type metaCursor struct {
	f   *os.File
	off int64
}

func (m *metaCursor) tell() int64 {
	return m.off
}

func (m *metaCursor) seekAbs(pos int64) {
	m.off = pos
}

func (m *metaCursor) seekRel(delta int64) {
	m.off += delta
}

func (m *metaCursor) seekStart() {
	m.off = 0
}

func (m *metaCursor) seekEnd() error {
	if m.f == nil {
		m.off = 0
		return nil
	}
	fi, err := m.f.Stat()
	if err != nil {
		return err
	}
	m.off = fi.Size()
	return nil
}

// readByte reads one byte at the cursor and advances it. ok is false at
// EOF; err is non-nil only for a genuine I/O failure.
func (m *metaCursor) readByte() (b byte, ok bool, err error) {
	if m.f == nil {
		return 0, false, nil
	}
	var buf [1]byte
	n, rerr := m.f.ReadAt(buf[:], m.off)
	if n == 1 {
		m.off++
		return buf[0], true, nil
	}
	if rerr == io.EOF || rerr == nil {
		return 0, false, nil
	}
	return 0, false, rerr
}

// readN reads exactly n bytes at the cursor and advances it by n. ok is
// false on a short read (including clean EOF); err is non-nil only for a
// genuine I/O failure distinct from EOF.
func (m *metaCursor) readN(n int) (buf []byte, ok bool, err error) {
	if m.f == nil {
		return nil, false, nil
	}
	buf = make([]byte, n)
	got, rerr := m.f.ReadAt(buf, m.off)
	if got == n {
		m.off += int64(n)
		return buf, true, nil
	}
	if rerr == io.EOF || rerr == nil {
		return nil, false, nil
	}
	return nil, false, rerr
}

func (m *metaCursor) readU32() (v uint32, ok bool, err error) {
	buf, ok, err := m.readN(4)
	if !ok || err != nil {
		return 0, ok, err
	}
	return binary.LittleEndian.Uint32(buf), true, nil
}

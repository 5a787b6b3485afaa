// Package wire implements the bounds-checked little-endian binary
// cursor shared by the ZRDL builder and ZREV parser.
package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrTruncated is returned by any read that would run past the end of
// the buffer. Callers that need the absolute offset should use
// TruncatedError instead of comparing against this sentinel directly.
var ErrTruncated = errors.New("ZR_TRUNCATED")

// TruncatedError carries the absolute offset at which a read failed,
// plus how many bytes were needed versus available.
type TruncatedError struct {
	Offset int
	Need   int
	Have   int
}

func (e *TruncatedError) Error() string {
	return fmt.Sprintf("ZR_TRUNCATED: at offset %d need %d bytes, have %d", e.Offset, e.Need, e.Have)
}

func (e *TruncatedError) Unwrap() error { return ErrTruncated }

// Reader is a bounds-checked little-endian cursor over a byte slice.
type Reader struct {
	bytes  []byte
	offset int
}

// NewReader creates a Reader positioned at the start of data.
func NewReader(data []byte) *Reader {
	return &Reader{bytes: data}
}

// Offset returns the current cursor position.
func (r *Reader) Offset() int { return r.offset }

// Len returns the total buffer length.
func (r *Reader) Len() int { return len(r.bytes) }

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int { return len(r.bytes) - r.offset }

// Seek repositions the cursor to an absolute offset. It does not bounds
// check against the buffer length; subsequent reads will fail with
// TruncatedError if the new offset is out of range.
func (r *Reader) Seek(offset int) { r.offset = offset }

func (r *Reader) require(n int) error {
	if r.Remaining() < n {
		return &TruncatedError{Offset: r.offset, Need: n, Have: r.Remaining()}
	}
	return nil
}

// U8 reads one unsigned byte.
func (r *Reader) U8() (uint8, error) {
	if err := r.require(1); err != nil {
		return 0, err
	}
	v := r.bytes[r.offset]
	r.offset++
	return v, nil
}

// U16 reads a little-endian uint16.
func (r *Reader) U16() (uint16, error) {
	if err := r.require(2); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint16(r.bytes[r.offset:])
	r.offset += 2
	return v, nil
}

// U32 reads a little-endian uint32.
func (r *Reader) U32() (uint32, error) {
	if err := r.require(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(r.bytes[r.offset:])
	r.offset += 4
	return v, nil
}

// I32 reads a little-endian int32.
func (r *Reader) I32() (int32, error) {
	v, err := r.U32()
	return int32(v), err
}

// Bytes reads n raw bytes.
func (r *Reader) Bytes(n int) ([]byte, error) {
	if err := r.require(n); err != nil {
		return nil, err
	}
	v := r.bytes[r.offset : r.offset+n]
	r.offset += n
	return v, nil
}

// SkipPadding advances the cursor past zero-filled padding bytes up to
// the next 4-byte-aligned offset, without validating that the padding
// is actually zero (callers that must validate padding content do so
// explicitly via Bytes).
func (r *Reader) SkipPadding() error {
	pad := AlignPadding(r.offset)
	if pad == 0 {
		return nil
	}
	_, err := r.Bytes(pad)
	return err
}

// AlignUp rounds n up to the next multiple of 4.
func AlignUp(n int) int {
	return (n + 3) &^ 3
}

// AlignPadding returns the number of padding bytes needed to bring n up
// to 4-byte alignment.
func AlignPadding(n int) int {
	return AlignUp(n) - n
}

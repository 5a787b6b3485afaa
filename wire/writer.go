package wire

import "encoding/binary"

// Writer is a growable little-endian byte buffer that enforces 4-byte
// alignment at section boundaries, zero-filling padding.
type Writer struct {
	buf []byte
}

// NewWriter creates an empty Writer.
func NewWriter() *Writer {
	return &Writer{buf: make([]byte, 0, 256)}
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int { return len(w.buf) }

// Bytes returns the accumulated buffer. The returned slice aliases the
// writer's internal storage and must not be mutated by the caller.
func (w *Writer) Bytes() []byte { return w.buf }

// WriteU8 appends one byte.
func (w *Writer) WriteU8(v uint8) {
	w.buf = append(w.buf, v)
}

// WriteU16 appends a little-endian uint16.
func (w *Writer) WriteU16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// WriteU32 appends a little-endian uint32.
func (w *Writer) WriteU32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// WriteI32 appends a little-endian int32.
func (w *Writer) WriteI32(v int32) {
	w.WriteU32(uint32(v))
}

// WriteBytes appends raw bytes verbatim.
func (w *Writer) WriteBytes(b []byte) {
	w.buf = append(w.buf, b...)
}

// WriteString appends the UTF-8 bytes of s verbatim (no length prefix;
// callers that need one write it separately).
func (w *Writer) WriteString(s string) {
	w.buf = append(w.buf, s...)
}

// AlignTo4 zero-pads the buffer out to the next 4-byte-aligned length.
func (w *Writer) AlignTo4() {
	pad := AlignPadding(len(w.buf))
	for i := 0; i < pad; i++ {
		w.buf = append(w.buf, 0)
	}
}

// PatchU32 overwrites the little-endian uint32 at byte offset at with a
// new value. Used to backpatch section-offset/length fields in a header
// written before the sections that follow it are known.
func (w *Writer) PatchU32(at int, v uint32) {
	binary.LittleEndian.PutUint32(w.buf[at:at+4], v)
}

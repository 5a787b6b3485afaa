package zrdl

import (
	"fmt"

	"github.com/rezi-tui/rezi/wire"
)

// FatalCode names a builder failure that the caller cannot recover
// from within the current frame.
type FatalCode string

const (
	// FatalByteLimit is returned when a built drawlist would exceed its
	// configured byte cap.
	FatalByteLimit FatalCode = "ZRDL_LIMIT"
	// FatalFrozen is returned by any mutating call made after Build.
	FatalFrozen FatalCode = "ZRDL_FROZEN"
	// FatalBadVersion is returned when a v2-only command is emitted
	// against a Version1 builder.
	FatalBadVersion FatalCode = "ZRDL_VERSION"
)

// FatalError reports a programmer error building a drawlist.
type FatalError struct {
	Code FatalCode
	Msg  string
}

func (e *FatalError) Error() string { return fmt.Sprintf("%s: %s", e.Code, e.Msg) }

// Result is the outcome of Builder.Build.
type Result struct {
	OK    bool
	Bytes []byte
	Fatal *FatalError
}

// CursorRequest is the SET_CURSOR (v2) payload: the last call wins
// across an entire build, so the builder only ever tracks one.
type CursorRequest struct {
	X, Y    int32
	Shape   CursorShape
	Visible bool
	Blink   bool
}

// Builder accumulates drawlist commands and interned strings/blobs and
// assembles them into a byte-exact ZRDL buffer.
type Builder struct {
	version Version
	limit   int

	cmds     *wire.Writer
	cmdCount uint32

	strings *stringInterner
	blobs   *blobInterner

	cursor       *CursorRequest
	cursorHidden bool

	frozen bool
}

// NewBuilder creates a Builder for the given wire version with the
// default byte limit.
func NewBuilder(version Version) *Builder {
	strings := newStringInterner()
	return &Builder{
		version: version,
		limit:   DefaultByteLimit,
		cmds:    wire.NewWriter(),
		strings: strings,
		blobs:   newBlobInterner(strings),
	}
}

// WithLimit overrides the byte cap enforced by Build.
func (b *Builder) WithLimit(n int) *Builder {
	b.limit = n
	return b
}

func (b *Builder) checkMutable() {
	if b.frozen {
		panic(&FatalError{Code: FatalFrozen, Msg: "builder mutated after Build"})
	}
}

func (b *Builder) requireV2(what string) {
	if b.version != Version2 {
		panic(&FatalError{Code: FatalBadVersion, Msg: what + " requires ZRDL v2"})
	}
}

// writeCmdHeader appends the 8-byte command prefix (opcode, reserved,
// size) where size is the total command length including this prefix.
func (b *Builder) writeCmdHeader(op Opcode, payloadLen int) {
	b.cmds.WriteU16(uint16(op))
	b.cmds.WriteU16(0)
	b.cmds.WriteU32(uint32(cmdHeaderSize + payloadLen))
	b.cmdCount++
}

// Clear emits a CLEAR command covering the full surface.
func (b *Builder) Clear() *Builder {
	b.checkMutable()
	b.writeCmdHeader(OpClear, 0)
	return b
}

// FillRect emits a FILL_RECT command.
func (b *Builder) FillRect(x, y, w, h int32, style Style) *Builder {
	b.checkMutable()
	b.writeCmdHeader(OpFillRect, 28)
	b.cmds.WriteI32(x)
	b.cmds.WriteI32(y)
	b.cmds.WriteI32(w)
	b.cmds.WriteI32(h)
	b.cmds.WriteU32(style.EncodeAttrs())
	b.cmds.WriteU32(style.fgOr())
	b.cmds.WriteU32(style.bgOr())
	return b
}

// DrawText emits a DRAW_TEXT command, interning text if this is its
// first appearance in the builder.
func (b *Builder) DrawText(x, y int32, text string, style Style) *Builder {
	b.checkMutable()
	idx := b.strings.intern(text)
	b.writeCmdHeader(OpDrawText, 24)
	b.cmds.WriteI32(x)
	b.cmds.WriteI32(y)
	b.cmds.WriteU32(idx)
	b.cmds.WriteU32(style.EncodeAttrs())
	b.cmds.WriteU32(style.fgOr())
	b.cmds.WriteU32(style.bgOr())
	return b
}

// DrawTextRun emits a DRAW_TEXT_RUN command over a sequence of styled
// segments, interning the whole segment list as a single blob.
func (b *Builder) DrawTextRun(x, y int32, segments []TextSegment) *Builder {
	b.checkMutable()
	idx := b.blobs.intern(segments)
	b.writeCmdHeader(OpDrawTextRun, 12)
	b.cmds.WriteI32(x)
	b.cmds.WriteI32(y)
	b.cmds.WriteU32(idx)
	return b
}

// PushClip emits a PUSH_CLIP command.
func (b *Builder) PushClip(x, y, w, h int32) *Builder {
	b.checkMutable()
	b.writeCmdHeader(OpPushClip, 16)
	b.cmds.WriteI32(x)
	b.cmds.WriteI32(y)
	b.cmds.WriteI32(w)
	b.cmds.WriteI32(h)
	return b
}

// PopClip emits a POP_CLIP command.
func (b *Builder) PopClip() *Builder {
	b.checkMutable()
	b.writeCmdHeader(OpPopClip, 0)
	return b
}

// RequestCursor records a cursor placement request; SET_CURSOR is v2
// only, and only the last request in a build is ever emitted.
func (b *Builder) RequestCursor(x, y int32, shape CursorShape, visible, blink bool) *Builder {
	b.checkMutable()
	b.requireV2("SET_CURSOR")
	b.cursor = &CursorRequest{X: x, Y: y, Shape: shape, Visible: visible, Blink: blink}
	b.cursorHidden = false
	return b
}

// HideCursor records a request to hide the cursor, overriding any
// earlier RequestCursor call in this build.
func (b *Builder) HideCursor() *Builder {
	b.checkMutable()
	b.requireV2("SET_CURSOR")
	b.cursor = nil
	b.cursorHidden = true
	return b
}

const cursorPayloadLen = 16 // x,y,shape+flags,reserved

func (b *Builder) emitCursorCommand() {
	if b.cursor == nil && !b.cursorHidden {
		return
	}
	b.writeCmdHeader(OpSetCursor, cursorPayloadLen)
	if b.cursor == nil {
		b.cmds.WriteI32(0)
		b.cmds.WriteI32(0)
		b.cmds.WriteU32(0)
		b.cmds.WriteU32(0)
		return
	}
	flags := uint32(b.cursor.Shape)
	if b.cursor.Visible {
		flags |= 1 << 8
	}
	if b.cursor.Blink {
		flags |= 1 << 9
	}
	b.cmds.WriteI32(b.cursor.X)
	b.cmds.WriteI32(b.cursor.Y)
	b.cmds.WriteU32(flags)
	b.cmds.WriteU32(0)
}

// Build assembles the accumulated commands and interned tables into a
// byte-exact ZRDL buffer. It returns {OK: true} only if the resulting
// size is within the builder's configured limit; otherwise it returns
// {OK: false, Fatal: ZRDL_LIMIT} and leaves the builder usable for
// inspection (but not further mutation).
func (b *Builder) Build() Result {
	b.checkMutable()
	if b.version == Version2 {
		b.emitCursorCommand()
	}
	b.frozen = true

	cmdBytes := b.cmds.Bytes()

	stringSpans, stringPool := b.strings.spans()
	blobSegPool, blobDescs := b.encodeBlobs()

	stringSpansBytes := encodeSpans(stringSpans)
	blobDescBytes := encodeBlobDescs(blobDescs)

	out := wire.NewWriter()
	// Reserve the header; patched once every section's offset/length is
	// known.
	for i := 0; i < headerSize/4; i++ {
		out.WriteU32(0)
	}

	cmdOffset := out.Len()
	out.WriteBytes(cmdBytes)
	out.AlignTo4()

	stringsSpanOffset := out.Len()
	out.WriteBytes(stringSpansBytes)
	out.AlignTo4()

	stringsBytesOffset := out.Len()
	out.WriteBytes(stringPool)
	out.AlignTo4()

	blobsSpanOffset := out.Len()
	out.WriteBytes(blobDescBytes)
	out.AlignTo4()

	blobsBytesOffset := out.Len()
	out.WriteBytes(blobSegPool)
	out.AlignTo4()

	total := out.Len()
	if total > b.limit {
		return Result{OK: false, Fatal: &FatalError{Code: FatalByteLimit, Msg: fmt.Sprintf("drawlist size %d exceeds limit %d", total, b.limit)}}
	}

	out.PatchU32(0, magicAsU32())
	out.PatchU32(4, uint32(b.version))
	out.PatchU32(8, headerSize)
	out.PatchU32(12, uint32(cmdOffset))
	out.PatchU32(16, uint32(len(cmdBytes)))
	out.PatchU32(20, b.cmdCount)
	out.PatchU32(24, uint32(stringsSpanOffset))
	out.PatchU32(28, uint32(b.strings.count()))
	out.PatchU32(32, uint32(stringsBytesOffset))
	out.PatchU32(36, uint32(len(stringPool)))
	out.PatchU32(40, uint32(blobsSpanOffset))
	out.PatchU32(44, uint32(b.blobs.count()))
	out.PatchU32(48, uint32(blobsBytesOffset))
	out.PatchU32(52, uint32(len(blobSegPool)))
	out.PatchU32(56, uint32(total))
	// offsets 60,64,68 are reserved0-2, left zero.

	return Result{OK: true, Bytes: out.Bytes()}
}

// blobSegmentRecordSize is the fixed size of one resolved text-run
// segment record in the blob bytes pool: string_index, length, attrs,
// fg_rgb, bg_rgb, and two reserved u32 fields.
const blobSegmentRecordSize = 28

// blobDesc describes one interned blob within the blob bytes pool.
type blobDesc struct {
	offset             uint32
	length             uint32
	segmentCount       uint32
	firstSegmentOffset uint32
}

// encodeBlobs flattens the blob interner's resolved segment lists into
// a contiguous segment-record pool (28 bytes per segment) plus one
// descriptor per blob giving its byte span and segment count.
func (b *Builder) encodeBlobs() ([]byte, []blobDesc) {
	descs := make([]blobDesc, len(b.blobs.order))
	var pool []byte
	for i, segs := range b.blobs.order {
		start := uint32(len(pool))
		for _, seg := range segs {
			pool = appendU32(pool, seg.stringIndex)
			pool = appendU32(pool, seg.textLen)
			pool = appendU32(pool, seg.style.EncodeAttrs())
			pool = appendU32(pool, seg.style.fgOr())
			pool = appendU32(pool, seg.style.bgOr())
			pool = appendU32(pool, 0)
			pool = appendU32(pool, 0)
		}
		length := uint32(len(pool)) - start
		descs[i] = blobDesc{offset: start, length: length, segmentCount: uint32(len(segs)), firstSegmentOffset: start}
	}
	return pool, descs
}

func encodeSpans(spans []span) []byte {
	out := make([]byte, 0, len(spans)*8)
	for _, s := range spans {
		out = appendU32(out, s.offset)
		out = appendU32(out, s.length)
	}
	return out
}

func encodeBlobDescs(descs []blobDesc) []byte {
	out := make([]byte, 0, len(descs)*16)
	for _, d := range descs {
		out = appendU32(out, d.offset)
		out = appendU32(out, d.length)
		out = appendU32(out, d.segmentCount)
		out = appendU32(out, d.firstSegmentOffset)
	}
	return out
}

// Package zrdl implements the ZRDL v1/v2 binary drawlist builder.
// The drawlist is a byte-exact little-endian
// container: a fixed 72-byte header followed by commands, string spans,
// string bytes, blob descriptors, and blob bytes, each section padded
// to 4-byte alignment.
package zrdl

// Version selects which opcodes a builder may emit.
type Version uint32

const (
	Version1 Version = 1
	Version2 Version = 2
)

const (
	headerSize = 72

	// DefaultByteLimit is the default cap on a built drawlist's total
	// size, in bytes.
	DefaultByteLimit = 16 * 1024 * 1024
)

// magicBytes are the four ASCII bytes "ZRDL" as they appear at header
// offset 0, read back out as the little-endian u32 magic field.
// Writing/comparing the raw bytes directly avoids an easy-to-get-wrong
// manual byte-order constant.
var magicBytes = [4]byte{'Z', 'R', 'D', 'L'}

func magicAsU32() uint32 {
	return uint32(magicBytes[0]) | uint32(magicBytes[1])<<8 | uint32(magicBytes[2])<<16 | uint32(magicBytes[3])<<24
}

// Header mirrors the 18 little-endian u32 fields at header offsets
// 0..72. reserved0-2 are always zero.
type Header struct {
	Magic              uint32
	Version            uint32
	HeaderSize         uint32
	CmdOffset          uint32
	CmdBytes           uint32
	CmdCount           uint32
	StringsSpanOffset  uint32
	StringsCount       uint32
	StringsBytesOffset uint32
	StringsBytesLen    uint32
	BlobsSpanOffset    uint32
	BlobsCount         uint32
	BlobsBytesOffset   uint32
	BlobsBytesLen      uint32
	TotalSize          uint32
}

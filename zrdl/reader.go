package zrdl

import (
	"fmt"

	"github.com/rezi-tui/rezi/wire"
)

// ParseError reports a structurally invalid ZRDL buffer.
type ParseError struct {
	Code string
	Msg  string
}

func (e *ParseError) Error() string { return fmt.Sprintf("%s: %s", e.Code, e.Msg) }

// ReadHeader parses and validates the 72-byte header at the start of
// data, without touching the sections that follow.
func ReadHeader(data []byte) (Header, error) {
	if len(data) < headerSize {
		return Header{}, &ParseError{Code: "ZRDL_TRUNCATED", Msg: "buffer shorter than header"}
	}
	r := wire.NewReader(data)
	fields := make([]uint32, headerSize/4)
	for i := range fields {
		v, err := r.U32()
		if err != nil {
			return Header{}, &ParseError{Code: "ZRDL_TRUNCATED", Msg: "truncated header"}
		}
		fields[i] = v
	}
	if fields[0] != magicAsU32() {
		return Header{}, &ParseError{Code: "ZRDL_BAD_MAGIC", Msg: "magic mismatch"}
	}
	if fields[1] != uint32(Version1) && fields[1] != uint32(Version2) {
		return Header{}, &ParseError{Code: "ZRDL_UNSUPPORTED_VERSION", Msg: "unknown version"}
	}
	h := Header{
		Magic:              fields[0],
		Version:            fields[1],
		HeaderSize:         fields[2],
		CmdOffset:          fields[3],
		CmdBytes:           fields[4],
		CmdCount:           fields[5],
		StringsSpanOffset:  fields[6],
		StringsCount:       fields[7],
		StringsBytesOffset: fields[8],
		StringsBytesLen:    fields[9],
		BlobsSpanOffset:    fields[10],
		BlobsCount:         fields[11],
		BlobsBytesOffset:   fields[12],
		BlobsBytesLen:      fields[13],
		TotalSize:          fields[14],
	}
	if int(h.TotalSize) != len(data) {
		return Header{}, &ParseError{Code: "ZRDL_SIZE_MISMATCH", Msg: "total_size disagrees with buffer length"}
	}
	return h, nil
}

// ReadStrings returns the interned string table described by h.
func ReadStrings(data []byte, h Header) ([]string, error) {
	return readSpanTable(data, h.StringsSpanOffset, h.StringsCount, h.StringsBytesOffset)
}

func readSpanTable(data []byte, spanOffset, count, bytesOffset uint32) ([]string, error) {
	r := wire.NewReader(data)
	r.Seek(int(spanOffset))
	out := make([]string, count)
	for i := uint32(0); i < count; i++ {
		off, err := r.U32()
		if err != nil {
			return nil, &ParseError{Code: "ZRDL_TRUNCATED", Msg: "truncated span table"}
		}
		length, err := r.U32()
		if err != nil {
			return nil, &ParseError{Code: "ZRDL_TRUNCATED", Msg: "truncated span table"}
		}
		start := int(bytesOffset) + int(off)
		end := start + int(length)
		if start < 0 || end > len(data) || end < start {
			return nil, &ParseError{Code: "ZRDL_OUT_OF_BOUNDS", Msg: "string span out of bounds"}
		}
		out[i] = string(data[start:end])
	}
	return out, nil
}

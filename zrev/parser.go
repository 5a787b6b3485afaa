package zrev

import (
	"github.com/rezi-tui/rezi/wire"
)

// Parse decodes a ZREV batch into an ordered event sequence. Parsing is
// all-or-nothing: any validation failure discards the whole batch and
// returns a *ParseError describing the first problem encountered, with
// Offset at the failing record's start, or at the offending header
// field for a header failure.
func Parse(data []byte, limits Limits, unwrapState *TimeUnwrapState) ([]Event, error) {
	if len(data) < headerSize {
		return nil, &ParseError{Code: CodeTruncated, Offset: 0, Detail: "buffer shorter than batch header"}
	}

	r := wire.NewReader(data)
	magic, _ := r.U32()
	if magic != magicAsU32() {
		return nil, &ParseError{Code: CodeBadMagic, Offset: 0, Detail: "magic mismatch"}
	}
	version, _ := r.U32()
	if version != 1 {
		return nil, &ParseError{Code: CodeUnsupportedVersion, Offset: 4, Detail: "unknown version"}
	}
	totalSize, _ := r.U32()
	eventCount, _ := r.U32()
	_, _ = r.U32() // flags
	_, _ = r.U32() // reserved

	if totalSize%4 != 0 {
		return nil, &ParseError{Code: CodeMisaligned, Offset: 8, Detail: "total_size not 4-aligned"}
	}
	if int(totalSize) > len(data) {
		return nil, &ParseError{Code: CodeTruncated, Offset: 8, Detail: "total_size exceeds buffer length"}
	}
	if limits.MaxTotalSize > 0 && int(totalSize) > limits.MaxTotalSize {
		return nil, &ParseError{Code: CodeLimit, Offset: 8, Detail: "total_size exceeds configured limit"}
	}
	if int(eventCount) > limits.MaxEvents {
		return nil, &ParseError{Code: CodeLimit, Offset: 12, Detail: "event_count exceeds configured limit"}
	}

	events := make([]Event, 0, eventCount)
	cursor := headerSize

	for i := uint32(0); i < eventCount; i++ {
		ev, next, err := parseRecord(data, cursor, int(totalSize), limits, unwrapState)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
		cursor = next
	}

	if cursor != int(totalSize) {
		return nil, &ParseError{Code: CodeSizeMismatch, Offset: cursor, Detail: "cursor does not land on total_size after all records"}
	}

	return events, nil
}

func parseRecord(data []byte, cursor, totalSize int, limits Limits, unwrapState *TimeUnwrapState) (Event, int, error) {
	if cursor+recordHdrSize > len(data) || cursor+recordHdrSize > totalSize {
		return Event{}, 0, &ParseError{Code: CodeTruncated, Offset: cursor, Detail: "not enough bytes for record header"}
	}

	r := wire.NewReader(data)
	r.Seek(cursor)
	typ, _ := r.U32()
	size, _ := r.U32()
	timeRaw, _ := r.U32()
	_, _ = r.U32() // flags

	if size < recordHdrSize {
		return Event{}, 0, &ParseError{Code: CodeInvalidRecord, Offset: cursor, Detail: "record size smaller than header"}
	}
	if cursor+int(size) > len(data) || cursor+int(size) > totalSize {
		return Event{}, 0, &ParseError{Code: CodeTruncated, Offset: cursor, Detail: "record body runs past buffer/total_size"}
	}
	if size%4 != 0 {
		return Event{}, 0, &ParseError{Code: CodeMisaligned, Offset: cursor, Detail: "record size not 4-aligned"}
	}

	payload := data[cursor+recordHdrSize : cursor+int(size)]
	timeMs := unwrap(unwrapState, timeRaw)

	ev, err := decodePayload(RecordType(typ), payload, cursor, limits)
	if err != nil {
		return Event{}, 0, err
	}
	ev.TimeMs = timeMs

	return ev, cursor + int(size), nil
}

func decodePayload(typ RecordType, payload []byte, offset int, limits Limits) (Event, error) {
	switch typ {
	case RecordKey:
		if len(payload) != 16 {
			return Event{}, &ParseError{Code: CodeInvalidRecord, Offset: offset, Detail: "KEY payload must be 16 bytes"}
		}
		key := le32(payload, 0)
		mods := le32(payload, 4)
		action := KeyAction(le32(payload, 8))
		if action < KeyDown || action > KeyRepeat {
			return Event{}, &ParseError{Code: CodeInvalidRecord, Offset: offset, Detail: "KEY action out of range"}
		}
		return Event{Kind: KindKey, Key: &KeyEvent{Key: key, Mods: mods, Action: action}}, nil

	case RecordText:
		if len(payload) != 8 {
			return Event{}, &ParseError{Code: CodeInvalidRecord, Offset: offset, Detail: "TEXT payload must be 8 bytes"}
		}
		return Event{Kind: KindText, Text: &TextEvent{Codepoint: rune(le32(payload, 0))}}, nil

	case RecordPaste:
		if len(payload) < 8 {
			return Event{}, &ParseError{Code: CodeInvalidRecord, Offset: offset, Detail: "PASTE payload too short"}
		}
		byteLen := le32(payload, 0)
		if int(byteLen) > limits.MaxPasteBytes {
			return Event{}, &ParseError{Code: CodeLimit, Offset: offset, Detail: "paste byte_len exceeds configured limit"}
		}
		expect := 8 + wire.AlignUp(int(byteLen))
		if len(payload) != expect {
			return Event{}, &ParseError{Code: CodeInvalidRecord, Offset: offset, Detail: "PASTE payload length does not match byte_len"}
		}
		return Event{Kind: KindPaste, Paste: &PasteEvent{Bytes: append([]byte(nil), payload[8:8+byteLen]...)}}, nil

	case RecordMouse:
		if len(payload) != 32 {
			return Event{}, &ParseError{Code: CodeInvalidRecord, Offset: offset, Detail: "MOUSE payload must be 32 bytes"}
		}
		kind := MouseKind(le32(payload, 8))
		if kind < MouseDown || kind > MouseDrag {
			return Event{}, &ParseError{Code: CodeInvalidRecord, Offset: offset, Detail: "MOUSE kind out of range"}
		}
		return Event{Kind: KindMouse, Mouse: &MouseEvent{
			X: int32(le32(payload, 0)), Y: int32(le32(payload, 4)),
			Kind: kind, Mods: le32(payload, 12), Buttons: le32(payload, 16),
			WheelX: int32(le32(payload, 20)), WheelY: int32(le32(payload, 24)),
		}}, nil

	case RecordResize:
		if len(payload) != 16 {
			return Event{}, &ParseError{Code: CodeInvalidRecord, Offset: offset, Detail: "RESIZE payload must be 16 bytes"}
		}
		return Event{Kind: KindResize, Resize: &ResizeEvent{Cols: le32(payload, 0), Rows: le32(payload, 4)}}, nil

	case RecordTick:
		if len(payload) != 16 {
			return Event{}, &ParseError{Code: CodeInvalidRecord, Offset: offset, Detail: "TICK payload must be 16 bytes"}
		}
		return Event{Kind: KindTick, Tick: &TickEvent{DtMs: le32(payload, 0)}}, nil

	case RecordUser:
		if len(payload) < 8 {
			return Event{}, &ParseError{Code: CodeInvalidRecord, Offset: offset, Detail: "USER payload too short"}
		}
		tag := le32(payload, 0)
		byteLen := le32(payload, 4)
		if int(byteLen) > limits.MaxUserPayload {
			return Event{}, &ParseError{Code: CodeLimit, Offset: offset, Detail: "user byte_len exceeds configured limit"}
		}
		expect := 8 + wire.AlignUp(int(byteLen))
		if len(payload) != expect {
			return Event{}, &ParseError{Code: CodeInvalidRecord, Offset: offset, Detail: "USER payload length does not match byte_len"}
		}
		return Event{Kind: KindUser, User: &UserEvent{Tag: tag, Bytes: append([]byte(nil), payload[8:8+byteLen]...)}}, nil

	default:
		return Event{}, &ParseError{Code: CodeInvalidRecord, Offset: offset, Detail: "unknown record type"}
	}
}

func le32(b []byte, at int) uint32 {
	return uint32(b[at]) | uint32(b[at+1])<<8 | uint32(b[at+2])<<16 | uint32(b[at+3])<<24
}

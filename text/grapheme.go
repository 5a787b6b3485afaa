package text

// GCBClassOf classifies a single Unicode scalar value into its Grapheme
// Cluster Break class.
func GCBClassOf(scalar rune) GCBClass {
	s := uint32(scalar)

	// The precomposed Hangul syllable block needs the LV/LVT formula,
	// not a flat range tag: every 28th syllable (starting at the base)
	// is an LV syllable (no trailing consonant), the rest are LVT.
	if s >= hangulSBase && s < hangulSBase+hangulSCount {
		sIndex := s - hangulSBase
		if sIndex%hangulTCount == 0 {
			return GCBLV
		}
		return GCBLVT
	}

	if class, ok := lookupGCBRange(s); ok {
		return class
	}
	return GCBOther
}

// IsExtendedPictographic reports whether scalar carries the
// Extended_Pictographic property (used by GB11).
func IsExtendedPictographic(scalar rune) bool {
	return lookupScalarRange(extendedPictographicTable, uint32(scalar))
}

// IsEmojiPresentation reports whether scalar defaults to emoji
// presentation (double-width emoji glyph).
func IsEmojiPresentation(scalar rune) bool {
	return lookupScalarRange(emojiPresentationTable, uint32(scalar))
}

// IsWide reports whether scalar has East_Asian_Width of Wide or
// Fullwidth.
func IsWide(scalar rune) bool {
	return lookupScalarRange(eastAsianWideTable, uint32(scalar))
}

// replacementChar is returned in place of any scalar that cannot be
// decoded cleanly (e.g. an unpaired UTF-16 surrogate).
const replacementChar rune = 0xFFFD

// decodeAt decodes the scalar beginning at byte offset i in a UTF-8
// string, decoding any malformed byte sequence as U+FFFD. Returns the
// decoded rune and its width in bytes, always >= 1 so callers make
// forward progress even on malformed input.
func decodeAt(s string, i int) (rune, int) {
	if i >= len(s) {
		return 0, 0
	}
	b := s[i]
	switch {
	case b < 0x80:
		return rune(b), 1
	case b&0xE0 == 0xC0 && i+1 < len(s) && s[i+1]&0xC0 == 0x80:
		r := rune(b&0x1F)<<6 | rune(s[i+1]&0x3F)
		return r, 2
	case b&0xF0 == 0xE0 && i+2 < len(s) && s[i+1]&0xC0 == 0x80 && s[i+2]&0xC0 == 0x80:
		r := rune(b&0x0F)<<12 | rune(s[i+1]&0x3F)<<6 | rune(s[i+2]&0x3F)
		if r >= 0xD800 && r <= 0xDFFF {
			return replacementChar, 1
		}
		return r, 3
	case b&0xF8 == 0xF0 && i+3 < len(s) && s[i+1]&0xC0 == 0x80 && s[i+2]&0xC0 == 0x80 && s[i+3]&0xC0 == 0x80:
		r := rune(b&0x07)<<18 | rune(s[i+1]&0x3F)<<12 | rune(s[i+2]&0x3F)<<6 | rune(s[i+3]&0x3F)
		return r, 4
	default:
		return replacementChar, 1
	}
}

// clusterState tracks the "last non-ignored class" lookback state GB9/
// GB9a and GB11 need, plus the running regional-indicator parity for
// GB12/GB13.
type clusterState struct {
	lastExIgnore     GCBClass
	sawExtPictBase   bool // saw Extended_Pictographic (Extend|ZWJ)* so far in this run
	lastWasZWJ       bool // the scalar just consumed was ZWJ (GB11)
	regionalIndCount int
}

// NextClusterEnd returns the byte offset of the first position past the
// end of the grapheme cluster beginning at offset in text, implementing
// GB1-GB13. text is assumed to be valid UTF-8; malformed
// bytes decode as U+FFFD with a forced single-byte advance so the cursor
// always makes progress.
func NextClusterEnd(text string, offset int) int {
	n := len(text)
	if offset >= n {
		return n
	}

	first, w := decodeAt(text, offset)
	if w == 0 {
		return offset + 1
	}
	pos := offset + w

	st := clusterState{lastExIgnore: GCBClassOf(first)}
	if st.lastExIgnore == GCBRegionalIndicator {
		st.regionalIndCount = 1
	}
	if IsExtendedPictographic(first) {
		st.sawExtPictBase = true
	}

	for pos < n {
		cur, w := decodeAt(text, pos)
		if w == 0 {
			break
		}
		curClass := GCBClassOf(cur)

		if shouldBreak(st, first, cur, curClass) {
			break
		}

		// Update lookback state for the *next* iteration.
		switch curClass {
		case GCBExtend, GCBZWJ, GCBSpacingMark:
			// Ignored for lastExIgnore purposes (GB9/9a): the previous
			// non-ignored class is preserved, but sawExtPictBase survives
			// through Extend*ZWJ for GB11.
		default:
			st.lastExIgnore = curClass
			st.sawExtPictBase = IsExtendedPictographic(cur)
		}
		if curClass == GCBRegionalIndicator {
			st.regionalIndCount++
		} else if curClass != GCBExtend && curClass != GCBZWJ {
			st.regionalIndCount = 0
		}
		st.lastWasZWJ = curClass == GCBZWJ

		pos += w
	}

	if pos == offset {
		// Defensive: never fail to advance.
		_, w := decodeAt(text, offset)
		if w == 0 {
			w = 1
		}
		return offset + w
	}
	return pos
}

// shouldBreak implements the × (do not break) / ÷ (break) decision
// between the cluster accumulated so far (summarized in st, with first
// being the cluster's first scalar) and the upcoming scalar cur of
// class curClass. Returns true if a boundary exists before cur.
func shouldBreak(st clusterState, first, cur rune, curClass GCBClass) bool {
	prev := st.lastExIgnore

	// GB3: CR x LF — never break between CR and LF.
	if prev == GCBCR && curClass == GCBLF {
		return false
	}
	// GB4: break after Control/CR/LF (except the GB3 case above).
	if prev == GCBControl || prev == GCBCR || prev == GCBLF {
		return true
	}
	// GB5: break before Control/CR/LF.
	if curClass == GCBControl || curClass == GCBCR || curClass == GCBLF {
		return true
	}
	// GB6: L x (L|V|LV|LVT)
	if prev == GCBL && (curClass == GCBL || curClass == GCBV || curClass == GCBLV || curClass == GCBLVT) {
		return false
	}
	// GB7: (LV|V) x (V|T)
	if (prev == GCBLV || prev == GCBV) && (curClass == GCBV || curClass == GCBT) {
		return false
	}
	// GB8: (LVT|T) x T
	if (prev == GCBLVT || prev == GCBT) && curClass == GCBT {
		return false
	}
	// GB9: x (Extend | ZWJ)
	if curClass == GCBExtend || curClass == GCBZWJ {
		return false
	}
	// GB9a: x SpacingMark
	if curClass == GCBSpacingMark {
		return false
	}
	// GB9b: Prepend x
	if prev == GCBPrepend {
		return false
	}
	// GB11: Extended_Pictographic Extend* ZWJ x Extended_Pictographic
	if st.sawExtPictBase && st.lastWasZWJ && IsExtendedPictographic(cur) {
		return false
	}
	// GB12/GB13: an even number of RIs seen so far means we're starting
	// a fresh pair; an odd count means we're mid-pair and must not break.
	if curClass == GCBRegionalIndicator && prev == GCBRegionalIndicator && st.regionalIndCount%2 == 1 {
		return false
	}
	// GB999: break everywhere else.
	return true
}

// PrevBoundary returns the cluster boundary at or before cursor,
// scanning forward from the start of text.
func PrevBoundary(text string, cursor int) int {
	if cursor <= 0 {
		return 0
	}
	if cursor >= len(text) {
		cursor = len(text)
	}
	pos := 0
	last := 0
	for pos < cursor {
		next := NextClusterEnd(text, pos)
		if next > cursor {
			return last
		}
		last = next
		pos = next
	}
	return last
}

// NextBoundary returns the first cluster boundary after cursor, or
// len(text) once cursor is at or past the end.
func NextBoundary(text string, cursor int) int {
	if cursor <= 0 {
		return NextClusterEnd(text, 0)
	}
	if cursor >= len(text) {
		return len(text)
	}
	// If cursor is already on a boundary, advance past the cluster that
	// starts there; otherwise find the boundary enclosing cursor first.
	pos := 0
	for pos < len(text) {
		next := NextClusterEnd(text, pos)
		if pos == cursor {
			return next
		}
		if next > cursor {
			return next
		}
		pos = next
	}
	return len(text)
}

// NormalizeCursor snaps cursor to the nearest enclosing cluster
// boundary, clamped to [0, len(text)].
func NormalizeCursor(text string, cursor int) int {
	if cursor <= 0 {
		return 0
	}
	if cursor >= len(text) {
		return len(text)
	}
	pos := 0
	for pos < len(text) {
		next := NextClusterEnd(text, pos)
		if cursor <= pos {
			return pos
		}
		if cursor < next {
			// cursor is strictly inside [pos, next): snap to nearer end.
			if cursor-pos <= next-cursor {
				return pos
			}
			return next
		}
		pos = next
	}
	return len(text)
}

// DisplayWidth returns the terminal cell width (0, 1, or 2) of a single
// grapheme cluster: zero for a zero-width cluster (Extend-only/control
// base), two for any scalar in East-Asian Wide or Emoji Presentation,
// otherwise one.
func DisplayWidth(cluster string) int {
	if cluster == "" {
		return 0
	}
	first, w := decodeAt(cluster, 0)
	if w == 0 {
		return 0
	}
	class := GCBClassOf(first)
	if class == GCBExtend || class == GCBControl || class == GCBCR || class == GCBLF {
		return 0
	}
	if IsWide(first) || IsEmojiPresentation(first) {
		return 2
	}
	return 1
}

// StringWidth sums DisplayWidth over every grapheme cluster in text.
func StringWidth(text string) int {
	width := 0
	pos := 0
	for pos < len(text) {
		end := NextClusterEnd(text, pos)
		width += DisplayWidth(text[pos:end])
		pos = end
	}
	return width
}

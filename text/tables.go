// Package text implements Unicode grapheme-cluster segmentation and
// display-width measurement for the Rezi rendering pipeline. Tables are
// pinned to Unicode 15.1.0 and must match the backend's identical copy
// byte-for-byte; TableVersion is the contract both sides check at build
// time (see CheckTableVersion).
package text

import "sort"

// TableVersion is the pinned Unicode version these tables implement.
// The backend carries an identical constant; a mismatch is a build-time
// fatal error, not something detected at runtime.
const TableVersion = "15.1.0"

// GCBClass is a Grapheme Cluster Break class (UAX #29).
type GCBClass uint8

const (
	GCBOther GCBClass = iota
	GCBCR
	GCBLF
	GCBControl
	GCBExtend
	GCBZWJ
	GCBRegionalIndicator
	GCBPrepend
	GCBSpacingMark
	GCBL
	GCBV
	GCBT
	GCBLV
	GCBLVT
)

// gcbRange is a sorted, non-overlapping [lo, hi] inclusive scalar range
// tagged with its GCB class.
type gcbRange struct {
	lo, hi uint32
	class  GCBClass
}

// scalarRange is a sorted, non-overlapping [lo, hi] inclusive scalar
// range used for boolean Unicode properties (Extended_Pictographic,
// Emoji_Presentation, East_Asian_Wide).
type scalarRange struct {
	lo, hi uint32
}

// gcbTable is a representative subset of the Unicode 15.1.0 GCB
// property covering every class the grapheme algorithm (GB1-GB13)
// branches on, rather than the full Unicode range table. Entries are
// listed grouped by class; init sorts them by lo so lookupGCBRange can
// binary-search the table.
var gcbTable = []gcbRange{
	{0x000D, 0x000D, GCBCR},
	{0x000A, 0x000A, GCBLF},
	// Control: C0 controls other than CR/LF (Tab included), C1
	// controls, and a few formatting/zero-width controls.
	{0x0000, 0x0009, GCBControl},
	{0x000B, 0x000C, GCBControl},
	{0x000E, 0x001F, GCBControl},
	{0x007F, 0x009F, GCBControl},
	{0x200B, 0x200B, GCBControl}, // ZERO WIDTH SPACE
	{0x2028, 0x2029, GCBControl}, // LINE/PARAGRAPH SEPARATOR
	{0xFEFF, 0xFEFF, GCBControl}, // BOM / ZWNBSP as control per GCB
	// Extend: combining marks.
	{0x0300, 0x036F, GCBExtend},  // combining diacritics
	{0x0483, 0x0489, GCBExtend},
	{0x0591, 0x05BD, GCBExtend},
	{0x0610, 0x061A, GCBExtend},
	{0x064B, 0x065F, GCBExtend},
	{0x06D6, 0x06DC, GCBExtend},
	{0x20D0, 0x20FF, GCBExtend},
	{0xFE00, 0xFE0F, GCBExtend}, // variation selectors
	{0x1F3FB, 0x1F3FF, GCBExtend}, // emoji skin-tone modifiers
	{0xE0020, 0xE007F, GCBExtend}, // tag characters
	// ZWJ
	{0x200D, 0x200D, GCBZWJ},
	// SpacingMark (a representative sample of Indic spacing combining
	// marks, which do not extend zero-width).
	{0x0903, 0x0903, GCBSpacingMark},
	{0x093B, 0x093B, GCBSpacingMark},
	{0x0940, 0x0940, GCBSpacingMark},
	// Prepend
	{0x0600, 0x0605, GCBPrepend},
	{0x06DD, 0x06DD, GCBPrepend},
	{0x0890, 0x0891, GCBPrepend},
	// Regional indicators (flags): U+1F1E6..U+1F1FF.
	{0x1F1E6, 0x1F1FF, GCBRegionalIndicator},
	// Hangul jamo.
	{0x1100, 0x115F, GCBL},
	{0xA960, 0xA97C, GCBL},
	{0x1160, 0x11A7, GCBV},
	{0xD7B0, 0xD7C6, GCBV},
	{0x11A8, 0x11FF, GCBT},
	{0xD7CB, 0xD7FB, GCBT},
	{0xAC00, 0xD7A3, GCBLV}, // overridden to LVT for the trailing-consonant slots below
}

// These Hangul constants let GCBClassOf carve the precomposed syllable
// block (AC00-D7A3) into LV vs LVT per the standard formula
// (index % 28 == 0 => LV, otherwise LVT) directly instead of listing
// 11172 individual codepoints.
const (
	hangulSBase  = 0xAC00
	hangulLCount = 19
	hangulVCount = 21
	hangulTCount = 28
	hangulNCount = hangulVCount * hangulTCount
	hangulSCount = hangulLCount * hangulNCount
)

// extendedPictographicTable: ranges carrying the Extended_Pictographic
// property, used by GB11. Covers dingbats, emoji blocks, and the
// ZWJ-sequence-forming ranges exercised by the family/kiss emoji
// sequence tests.
var extendedPictographicTable = []scalarRange{
	{0x00A9, 0x00A9},
	{0x00AE, 0x00AE},
	{0x203C, 0x203C},
	{0x2049, 0x2049},
	{0x2122, 0x2122},
	{0x2139, 0x2139},
	{0x2194, 0x21AA},
	{0x231A, 0x231B},
	{0x2328, 0x2328},
	{0x23E9, 0x23FA},
	{0x24C2, 0x24C2},
	{0x25AA, 0x25FE},
	{0x2600, 0x27BF}, // misc symbols & dingbats, incl. HEAVY BLACK HEART U+2764
	{0x2934, 0x2935},
	{0x3030, 0x3030},
	{0x303D, 0x303D},
	{0x3297, 0x3297},
	{0x3299, 0x3299},
	{0x1F000, 0x1FAFF}, // mahjong through symbols & pictographs extended-A
	{0x1FB00, 0x1FBFF},
}

// emojiPresentationTable: ranges that default to emoji presentation
// (double-width when rendered as emoji). A practical subset covering
// common emoji blocks.
var emojiPresentationTable = []scalarRange{
	{0x231A, 0x231B},
	{0x23E9, 0x23EC},
	{0x23F0, 0x23F0},
	{0x23F3, 0x23F3},
	{0x25FD, 0x25FE},
	{0x2614, 0x2615},
	{0x2648, 0x2653},
	{0x267F, 0x267F},
	{0x2693, 0x2693},
	{0x26A1, 0x26A1},
	{0x26AA, 0x26AB},
	{0x26BD, 0x26BE},
	{0x26C4, 0x26C5},
	{0x26CE, 0x26CE},
	{0x26D4, 0x26D4},
	{0x26EA, 0x26EA},
	{0x26F2, 0x26F3},
	{0x26F5, 0x26F5},
	{0x26FA, 0x26FA},
	{0x26FD, 0x26FD},
	{0x2705, 0x2705},
	{0x270A, 0x270B},
	{0x2728, 0x2728},
	{0x274C, 0x274C},
	{0x274E, 0x274E},
	{0x2753, 0x2755},
	{0x2757, 0x2757},
	{0x2764, 0x2764},
	{0x2795, 0x2797},
	{0x27B0, 0x27B0},
	{0x27BF, 0x27BF},
	{0x1F300, 0x1F5FF}, // misc symbols and pictographs
	{0x1F600, 0x1F64F}, // emoticons
	{0x1F680, 0x1F6FF}, // transport and map symbols
	{0x1F900, 0x1F9FF}, // supplemental symbols and pictographs
	{0x1FA70, 0x1FAFF},
}

// eastAsianWideTable: ranges with East_Asian_Width of Wide (W) or
// Fullwidth (F), each occupying two terminal cells. Covers CJK blocks,
// fullwidth forms, and the emoji blocks (also two cells wide under the
// East-Asian Wide / Emoji Presentation rule).
var eastAsianWideTable = []scalarRange{
	{0x1100, 0x115F},   // Hangul Jamo
	{0x2E80, 0x303E},   // CJK Radicals, Kangxi, CJK symbols/punctuation
	{0x3041, 0x33FF},   // Hiragana..CJK compat
	{0x3400, 0x4DBF},   // CJK extension A
	{0x4E00, 0x9FFF},   // CJK unified ideographs
	{0xA000, 0xA4CF},   // Yi syllables/radicals
	{0xAC00, 0xD7A3},   // Hangul syllables
	{0xF900, 0xFAFF},   // CJK compatibility ideographs
	{0xFE30, 0xFE4F},   // CJK compatibility forms
	{0xFF00, 0xFF60},   // fullwidth forms
	{0xFFE0, 0xFFE6},   // fullwidth signs
	{0x20000, 0x2FFFD}, // CJK extension B and beyond (plane 2)
	{0x30000, 0x3FFFD}, // plane 3
}

func init() {
	sort.Slice(gcbTable, func(i, j int) bool { return gcbTable[i].lo < gcbTable[j].lo })
}

func lookupGCBRange(scalar uint32) (GCBClass, bool) {
	lo, hi := 0, len(gcbTable)
	for lo < hi {
		mid := (lo + hi) / 2
		r := gcbTable[mid]
		if scalar < r.lo {
			hi = mid
		} else if scalar > r.hi {
			lo = mid + 1
		} else {
			return r.class, true
		}
	}
	return GCBOther, false
}

func lookupScalarRange(table []scalarRange, scalar uint32) bool {
	lo, hi := 0, len(table)
	for lo < hi {
		mid := (lo + hi) / 2
		r := table[mid]
		if scalar < r.lo {
			hi = mid
		} else if scalar > r.hi {
			lo = mid + 1
		} else {
			return true
		}
	}
	return false
}

// CheckTableVersion reports whether backendVersion (the string the
// terminal backend reports for its copy of these tables) matches
// TableVersion. A mismatch must be treated as a build-time fatal error
// by the caller; this function only performs the
// comparison.
func CheckTableVersion(backendVersion string) bool {
	return backendVersion == TableVersion
}

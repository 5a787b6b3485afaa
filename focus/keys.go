package focus

import "github.com/rezi-tui/rezi/zrev"

// Engine-ABI key codes. These are the values widget routing functions
// compare ParsedKey.Key against; they are independent of the raw scan
// codes a backend may receive before producing a zrev.KeyEvent.
const (
	KeyEscape    uint32 = 1
	KeyEnter     uint32 = 2
	KeyTab       uint32 = 3
	KeyBackspace uint32 = 4
	KeyDelete    uint32 = 11
	KeyHome      uint32 = 12
	KeyEnd       uint32 = 13
	KeyPageUp    uint32 = 14
	KeyPageDown  uint32 = 15
	KeyUp        uint32 = 20
	KeyDown      uint32 = 21
	KeyLeft      uint32 = 22
	KeyRight     uint32 = 23
	KeySpace     uint32 = 32
	KeyF1        uint32 = 100
	KeyF12       uint32 = 111
)

// Modifier bits are zrev's, not redeclared: the wire format and the
// routing layer share one Engine-ABI modifier encoding.
const (
	ModShift = zrev.ModShift
	ModCtrl  = zrev.ModCtrl
	ModAlt   = zrev.ModAlt
	ModMeta  = zrev.ModMeta
)

// ParsedKey is the unit a chord binding sequence and the trie are built
// from: a key code plus the modifier bits held with it.
type ParsedKey struct {
	Key  uint32
	Mods uint32
}

// FromKeyEvent projects a parsed zrev key-down/repeat event into the
// routing layer's key representation.
func FromKeyEvent(e zrev.KeyEvent) ParsedKey {
	return ParsedKey{Key: e.Key, Mods: e.Mods}
}

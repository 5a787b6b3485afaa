package focus

import "github.com/rezi-tui/rezi/text"

// InputState is the local state a single-line text input routes keys
// against. Character insertion arrives through zrev TextEvent, not
// through this package; RouteInput only handles cursor movement,
// deletion, and the Enter/Escape submit/cancel intents. CursorPos is
// a byte offset into Value, always on a grapheme-cluster boundary.
type InputState struct {
	Value     string
	CursorPos int
}

// RouteInput implements cursor movement and deletion for a text input,
// moving and deleting by grapheme cluster (text.PrevBoundary/
// NextBoundary) rather than by rune, so a combining-mark sequence,
// a regional-indicator flag pair, or a ZWJ emoji sequence moves and
// deletes as the one visual unit it renders as. NextSelection carries
// the updated Value as its single element when the text changes, and
// NextScrollTop doubles as the next cursor byte offset, since
// RouteResult has no input-specific fields of its own.
func RouteInput(s InputState, key ParsedKey) RouteResult {
	v := s.Value
	pos := text.NormalizeCursor(v, s.CursorPos)

	switch key.Key {
	case KeyLeft:
		// PrevBoundary returns the boundary at or before its argument, so
		// pos-1 yields the start of the cluster that ends at pos.
		prev := text.PrevBoundary(v, pos-1)
		if prev == pos {
			return notConsumed()
		}
		return RouteResult{NextScrollTop: intPtr(prev), Consumed: true}
	case KeyRight:
		next := text.NextBoundary(v, pos)
		if next == pos {
			return notConsumed()
		}
		return RouteResult{NextScrollTop: intPtr(next), Consumed: true}
	case KeyHome:
		if pos == 0 {
			return notConsumed()
		}
		return RouteResult{NextScrollTop: intPtr(0), Consumed: true}
	case KeyEnd:
		if pos == len(v) {
			return notConsumed()
		}
		return RouteResult{NextScrollTop: intPtr(len(v)), Consumed: true}
	case KeyBackspace:
		if pos == 0 {
			return notConsumed()
		}
		prev := text.PrevBoundary(v, pos-1)
		next := v[:prev] + v[pos:]
		return RouteResult{NextSelection: []string{next}, NextScrollTop: intPtr(prev), Consumed: true}
	case KeyDelete:
		if pos >= len(v) {
			return notConsumed()
		}
		end := text.NextBoundary(v, pos)
		next := v[:pos] + v[end:]
		return RouteResult{NextSelection: []string{next}, NextScrollTop: intPtr(pos), Consumed: true}
	case KeyEnter:
		return RouteResult{Action: "submit", Consumed: true}
	case KeyEscape:
		return RouteResult{Action: "cancel", Consumed: true}
	default:
		return notConsumed()
	}
}

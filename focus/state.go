// Package focus derives the per-frame focus list from a reconciled
// instance tree, routes Tab/Shift+Tab/Escape globally, matches chord
// bindings against a timed key trie, and exposes pure per-widget
// routing functions over parsed ZREV key events.
package focus

import "github.com/rezi-tui/rezi/reconcile"

// State is the application-owned focus state: a DFS-derived focus
// list, the currently committed focused ID, a deferred pending change,
// and a disabled-ness lookup widgets populate per frame.
type State struct {
	FocusList      []string
	FocusedID      string
	PendingFocusID string
	EnabledByID    map[string]bool
}

// BuildFocusList walks inst in DFS order and collects the ID of every
// widget instance whose Props["focusable"] is true, in visitation
// order. A widget with no ID is skipped: it cannot be a focus target.
func BuildFocusList(inst *reconcile.Instance) []string {
	var out []string
	var walk func(n *reconcile.Instance)
	walk = func(n *reconcile.Instance) {
		if n == nil {
			return
		}
		if n.VNode != nil && n.VNode.ID != "" {
			if wp := n.VNode.Widget; wp != nil {
				if focusable, _ := wp.Props["focusable"].(bool); focusable {
					out = append(out, n.VNode.ID)
				}
			}
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(inst)
	return out
}

// FocusGroupID returns the focusGroupId a focusable widget advertised,
// if any; group membership is read by widget-specific routing (e.g.
// radio-style single-selection within a group), not by this package.
func FocusGroupID(inst *reconcile.Instance, id string) string {
	var found string
	var walk func(n *reconcile.Instance)
	walk = func(n *reconcile.Instance) {
		if n == nil || found != "" {
			return
		}
		if n.VNode != nil && n.VNode.ID == id && n.VNode.Widget != nil {
			if g, ok := n.VNode.Widget.Props["focusGroupId"].(string); ok {
				found = g
			}
			return
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(inst)
	return found
}

// RequestPendingFocusChange records id as a deferred focus move: it
// takes effect only once ApplyPendingFocusChange commits it, letting a
// widget request a move mid-frame without tearing the current frame's
// in-flight focus target out from under it.
func RequestPendingFocusChange(state State, id string) State {
	state.PendingFocusID = id
	return state
}

// ApplyPendingFocusChange commits a pending focus request, if any.
func ApplyPendingFocusChange(state State) State {
	if state.PendingFocusID != "" {
		state.FocusedID = state.PendingFocusID
		state.PendingFocusID = ""
	}
	return state
}

func (s State) isEnabled(id string) bool {
	if s.EnabledByID == nil {
		return true
	}
	enabled, known := s.EnabledByID[id]
	return !known || enabled
}

// moveFocus steps delta positions through FocusList from the currently
// focused ID, skipping disabled IDs and wrapping at the ends. If no ID
// is currently focused, it lands on the first (delta>0) or last
// (delta<0) enabled entry.
func moveFocus(state State, delta int) State {
	n := len(state.FocusList)
	if n == 0 {
		return state
	}
	start := -1
	for i, id := range state.FocusList {
		if id == state.FocusedID {
			start = i
			break
		}
	}
	step := 1
	if delta < 0 {
		step = -1
	}
	idx := start
	for range state.FocusList {
		if idx < 0 {
			if step > 0 {
				idx = 0
			} else {
				idx = n - 1
			}
		} else {
			idx = ((idx+step)%n + n) % n
		}
		if state.isEnabled(state.FocusList[idx]) {
			state.FocusedID = state.FocusList[idx]
			return state
		}
	}
	return state
}

// RouteGlobalKey applies Tab/Shift+Tab/Escape handling ahead of any
// widget-specific routing. Tab/Shift+Tab move focus forward/backward,
// skipping disabled IDs and wrapping at the ends; Escape clears focus.
// Reports consumed=false for any other key so callers fall through to
// chord matching and widget routing.
func RouteGlobalKey(state State, key ParsedKey) (State, bool) {
	switch key.Key {
	case KeyTab:
		if key.Mods&ModShift != 0 {
			return moveFocus(state, -1), true
		}
		return moveFocus(state, 1), true
	case KeyEscape:
		state.FocusedID = ""
		state.PendingFocusID = ""
		return state, true
	default:
		return state, false
	}
}

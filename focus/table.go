package focus

// TableState is the local state a table widget routes keys against.
// RowKeys is the current (already sorted/filtered) row order.
type TableState struct {
	RowKeys       []string
	FocusedRowKey string
	Selection     []string
	ScrollTop     int
	ViewportRows  int
	MultiSelect   bool
}

// RouteTable implements row navigation, range/multi selection, and
// activation for a table widget. Shift+Up/Down extends the selection
// from the focused row; Space toggles the focused row's membership
// when MultiSelect is set.
func RouteTable(s TableState, key ParsedKey) RouteResult {
	idx := indexOf(s.RowKeys, s.FocusedRowKey)

	switch key.Key {
	case KeyUp:
		return moveTableFocus(s, idx, -1, key.Mods&ModShift != 0)
	case KeyDown:
		return moveTableFocus(s, idx, 1, key.Mods&ModShift != 0)
	case KeyPageUp:
		return moveTableFocus(s, idx, -pageSize(s.ViewportRows), key.Mods&ModShift != 0)
	case KeyPageDown:
		return moveTableFocus(s, idx, pageSize(s.ViewportRows), key.Mods&ModShift != 0)
	case KeyHome:
		return moveTableFocus(s, idx, -len(s.RowKeys), key.Mods&ModShift != 0)
	case KeyEnd:
		return moveTableFocus(s, idx, len(s.RowKeys), key.Mods&ModShift != 0)
	case KeySpace:
		if s.FocusedRowKey == "" || !s.MultiSelect {
			return notConsumed()
		}
		return RouteResult{NextSelection: toggleSelection(s.Selection, s.FocusedRowKey), Consumed: true}
	case KeyEnter:
		if s.FocusedRowKey == "" {
			return notConsumed()
		}
		return RouteResult{NodeToActivate: strPtr(s.FocusedRowKey), Action: "activate", Consumed: true}
	default:
		return notConsumed()
	}
}

func moveTableFocus(s TableState, idx, delta int, extend bool) RouteResult {
	if len(s.RowKeys) == 0 {
		return notConsumed()
	}
	next := clampIndex(idx+delta, len(s.RowKeys))
	if next < 0 || next == idx {
		return notConsumed()
	}
	nextKey := s.RowKeys[next]
	res := RouteResult{NextFocusedKey: strPtr(nextKey), Consumed: true}
	if extend && s.MultiSelect {
		res.NextSelection = appendUnique(s.Selection, nextKey)
	} else if extend {
		res.NextSelection = []string{nextKey}
	}
	if top := scrollToShow(next, s.ScrollTop, s.ViewportRows); top != s.ScrollTop {
		res.NextScrollTop = intPtr(top)
	}
	return res
}

func toggleSelection(sel []string, key string) []string {
	out := make([]string, 0, len(sel)+1)
	found := false
	for _, s := range sel {
		if s == key {
			found = true
			continue
		}
		out = append(out, s)
	}
	if !found {
		out = append(out, key)
	}
	return out
}

func appendUnique(sel []string, key string) []string {
	for _, s := range sel {
		if s == key {
			return sel
		}
	}
	return append(append([]string{}, sel...), key)
}

package focus

// TreeRow is one row of a tree widget's current visible (i.e. ancestor
// chain all expanded) flattening.
type TreeRow struct {
	Key         string
	ParentKey   string
	HasChildren bool
	Loaded      bool
}

// TreeState is the local state a tree widget routes keys against.
type TreeState struct {
	Rows          []TreeRow
	FocusedKey    string
	Expanded      map[string]bool
	ScrollTop     int
	ViewportRows  int
}

func (s TreeState) row(key string) (TreeRow, bool) {
	for _, r := range s.Rows {
		if r.Key == key {
			return r, true
		}
	}
	return TreeRow{}, false
}

// RouteTree implements keyboard navigation for a tree widget: Up/Down
// move the focused row within the current visible flattening,
// Left/Right collapse/expand or step to the parent/first child, Home/
// End jump to the first/last row, Enter/Space activates the focused
// row, and PageUp/PageDown move by a full viewport.
func RouteTree(s TreeState, key ParsedKey) RouteResult {
	idx := indexOf(rowKeys(s.Rows), s.FocusedKey)

	switch key.Key {
	case KeyUp:
		return moveTreeFocus(s, idx, -1)
	case KeyDown:
		return moveTreeFocus(s, idx, 1)
	case KeyPageUp:
		return moveTreeFocus(s, idx, -pageSize(s.ViewportRows))
	case KeyPageDown:
		return moveTreeFocus(s, idx, pageSize(s.ViewportRows))
	case KeyHome:
		return moveTreeFocus(s, idx, -len(s.Rows))
	case KeyEnd:
		return moveTreeFocus(s, idx, len(s.Rows))
	case KeyRight:
		row, ok := s.row(s.FocusedKey)
		if !ok || !row.HasChildren {
			return notConsumed()
		}
		if !row.Loaded {
			return RouteResult{NodeToLoad: strPtr(row.Key), Consumed: true}
		}
		if s.Expanded[row.Key] {
			return notConsumed()
		}
		return RouteResult{NextExpanded: map[string]bool{row.Key: true}, Consumed: true}
	case KeyLeft:
		row, ok := s.row(s.FocusedKey)
		if !ok {
			return notConsumed()
		}
		if row.HasChildren && s.Expanded[row.Key] {
			return RouteResult{NextExpanded: map[string]bool{row.Key: false}, Consumed: true}
		}
		if row.ParentKey != "" {
			return RouteResult{NextFocusedKey: strPtr(row.ParentKey), Consumed: true}
		}
		return notConsumed()
	case KeyEnter, KeySpace:
		if s.FocusedKey == "" {
			return notConsumed()
		}
		return RouteResult{NodeToActivate: strPtr(s.FocusedKey), Action: "activate", Consumed: true}
	default:
		return notConsumed()
	}
}

func moveTreeFocus(s TreeState, idx, delta int) RouteResult {
	if len(s.Rows) == 0 {
		return notConsumed()
	}
	next := clampIndex(idx+delta, len(s.Rows))
	if next < 0 {
		return notConsumed()
	}
	nextKey := s.Rows[next].Key
	res := RouteResult{NextFocusedKey: strPtr(nextKey), Consumed: true}
	if top := scrollToShow(next, s.ScrollTop, s.ViewportRows); top != s.ScrollTop {
		res.NextScrollTop = intPtr(top)
	}
	return res
}

func rowKeys(rows []TreeRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Key
	}
	return out
}

func pageSize(viewport int) int {
	if viewport <= 0 {
		return 10
	}
	return viewport
}

// scrollToShow returns the scrollTop needed to keep row index within
// [scrollTop, scrollTop+viewport), nudging as little as possible.
func scrollToShow(index, scrollTop, viewport int) int {
	if viewport <= 0 {
		return scrollTop
	}
	if index < scrollTop {
		return index
	}
	if index >= scrollTop+viewport {
		return index - viewport + 1
	}
	return scrollTop
}

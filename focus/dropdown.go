package focus

// DropdownState is the local state a dropdown/select widget routes
// keys against.
type DropdownState struct {
	OptionKeys   []string
	FocusedKey   string
	SelectedKey  string
	Open         bool
}

// RouteDropdown implements open/close and option navigation: Enter or
// Space opens a closed dropdown, or (when open) commits the
// highlighted option and closes it; Up/Down move the highlight while
// open; Escape closes without committing.
func RouteDropdown(s DropdownState, key ParsedKey) RouteResult {
	if !s.Open {
		switch key.Key {
		case KeyEnter, KeySpace, KeyDown:
			return RouteResult{Action: "open", Consumed: true}
		default:
			return notConsumed()
		}
	}

	idx := indexOf(s.OptionKeys, s.FocusedKey)
	switch key.Key {
	case KeyUp:
		return moveDropdownFocus(s, idx, -1)
	case KeyDown:
		return moveDropdownFocus(s, idx, 1)
	case KeyHome:
		return moveDropdownFocus(s, idx, -len(s.OptionKeys))
	case KeyEnd:
		return moveDropdownFocus(s, idx, len(s.OptionKeys))
	case KeyEnter, KeySpace:
		if s.FocusedKey == "" {
			return RouteResult{Action: "close", Consumed: true}
		}
		return RouteResult{NextSelection: []string{s.FocusedKey}, Action: "close", Consumed: true}
	case KeyEscape:
		return RouteResult{Action: "close", Consumed: true}
	default:
		return notConsumed()
	}
}

func moveDropdownFocus(s DropdownState, idx, delta int) RouteResult {
	if len(s.OptionKeys) == 0 {
		return notConsumed()
	}
	next := clampIndex(idx+delta, len(s.OptionKeys))
	if next < 0 {
		return notConsumed()
	}
	return RouteResult{NextFocusedKey: strPtr(s.OptionKeys[next]), Consumed: true}
}

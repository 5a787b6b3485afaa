package focus

// DialogState is the local state a modal dialog routes keys against.
// FocusableKeys is the dialog's own trapped tab order, separate from
// the application-wide FocusList: while a dialog is open, Tab must not
// escape it.
type DialogState struct {
	FocusableKeys []string
	FocusedKey    string
}

// RouteDialog traps Tab/Shift+Tab within the dialog's own focus ring,
// wrapping at the ends, and routes Escape to a dismiss intent.
func RouteDialog(s DialogState, key ParsedKey) RouteResult {
	n := len(s.FocusableKeys)
	switch key.Key {
	case KeyTab:
		if n == 0 {
			return notConsumed()
		}
		idx := indexOf(s.FocusableKeys, s.FocusedKey)
		backward := key.Mods&ModShift != 0
		var next int
		switch {
		case idx < 0 && backward:
			next = n - 1
		case idx < 0:
			next = 0
		case backward:
			next = ((idx-1)%n + n) % n
		default:
			next = (idx + 1) % n
		}
		return RouteResult{NextFocusedKey: strPtr(s.FocusableKeys[next]), Consumed: true}
	case KeyEscape:
		return RouteResult{Action: "dismiss", Consumed: true}
	default:
		return notConsumed()
	}
}

package focus

// RouteResult is the common return shape for every widget-specific
// routing function: each field is populated only when that aspect of
// widget-local state actually changed, and Action names an intent
// (e.g. "activate", "submit", "dismiss") the host layer acts on.
// Consumed reports whether the key should stop here rather than fall
// through to any further handling.
type RouteResult struct {
	NextFocusedKey *string
	NextSelection  []string
	NextExpanded   map[string]bool
	NextScrollTop  *int
	NodeToActivate *string
	NodeToLoad     *string
	Action         string
	Consumed       bool
}

func notConsumed() RouteResult { return RouteResult{Consumed: false} }

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func indexOf(keys []string, key string) int {
	for i, k := range keys {
		if k == key {
			return i
		}
	}
	return -1
}

func clampIndex(i, n int) int {
	if n == 0 {
		return -1
	}
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

package focus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouteDialogTabCyclesWithinTrappedFocus(t *testing.T) {
	s := DialogState{FocusableKeys: []string{"ok", "cancel"}, FocusedKey: "ok"}
	res := RouteDialog(s, ParsedKey{Key: KeyTab})
	require.NotNil(t, res.NextFocusedKey)
	assert.Equal(t, "cancel", *res.NextFocusedKey)

	res = RouteDialog(s, ParsedKey{Key: KeyTab, Mods: ModShift})
	require.NotNil(t, res.NextFocusedKey)
	assert.Equal(t, "cancel", *res.NextFocusedKey, "wraps backward from the first entry")
}

func TestRouteDialogTabWrapsForward(t *testing.T) {
	s := DialogState{FocusableKeys: []string{"ok", "cancel"}, FocusedKey: "cancel"}
	res := RouteDialog(s, ParsedKey{Key: KeyTab})
	require.NotNil(t, res.NextFocusedKey)
	assert.Equal(t, "ok", *res.NextFocusedKey)
}

func TestRouteDialogEscapeDismisses(t *testing.T) {
	s := DialogState{FocusableKeys: []string{"ok"}, FocusedKey: "ok"}
	res := RouteDialog(s, ParsedKey{Key: KeyEscape})
	assert.Equal(t, "dismiss", res.Action)
	assert.True(t, res.Consumed)
}

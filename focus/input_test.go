package focus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouteInputBackspaceRemovesPrecedingRune(t *testing.T) {
	s := InputState{Value: "abc", CursorPos: 2}
	res := RouteInput(s, ParsedKey{Key: KeyBackspace})
	require.NotNil(t, res.NextSelection)
	assert.Equal(t, "ac", res.NextSelection[0])
	require.NotNil(t, res.NextScrollTop)
	assert.Equal(t, 1, *res.NextScrollTop)
}

func TestRouteInputDeleteRemovesFollowingRune(t *testing.T) {
	s := InputState{Value: "abc", CursorPos: 1}
	res := RouteInput(s, ParsedKey{Key: KeyDelete})
	require.NotNil(t, res.NextSelection)
	assert.Equal(t, "ac", res.NextSelection[0])
}

func TestRouteInputBackspaceAtStartIsNotConsumed(t *testing.T) {
	s := InputState{Value: "abc", CursorPos: 0}
	res := RouteInput(s, ParsedKey{Key: KeyBackspace})
	assert.False(t, res.Consumed)
}

func TestRouteInputHomeAndEndJumpCursor(t *testing.T) {
	s := InputState{Value: "abc", CursorPos: 1}
	res := RouteInput(s, ParsedKey{Key: KeyHome})
	require.NotNil(t, res.NextScrollTop)
	assert.Equal(t, 0, *res.NextScrollTop)

	res = RouteInput(s, ParsedKey{Key: KeyEnd})
	require.NotNil(t, res.NextScrollTop)
	assert.Equal(t, 3, *res.NextScrollTop)
}

func TestRouteInputBackspaceRemovesWholeGraphemeCluster(t *testing.T) {
	flag := "\U0001F1EF\U0001F1F5" // regional indicators J+P, one flag cluster
	s := InputState{Value: "a" + flag, CursorPos: len("a" + flag)}
	res := RouteInput(s, ParsedKey{Key: KeyBackspace})
	require.NotNil(t, res.NextSelection)
	assert.Equal(t, "a", res.NextSelection[0], "backspace must remove the whole flag cluster, not one regional indicator")
	require.NotNil(t, res.NextScrollTop)
	assert.Equal(t, 1, *res.NextScrollTop)
}

func TestRouteInputLeftSkipsWholeGraphemeCluster(t *testing.T) {
	flag := "\U0001F1EF\U0001F1F5"
	s := InputState{Value: "a" + flag, CursorPos: len("a" + flag)}
	res := RouteInput(s, ParsedKey{Key: KeyLeft})
	require.NotNil(t, res.NextScrollTop)
	assert.Equal(t, 1, *res.NextScrollTop, "left must land before the whole cluster, not split it")
}

func TestRouteInputEnterSubmitsEscapeCancels(t *testing.T) {
	s := InputState{Value: "abc", CursorPos: 1}
	res := RouteInput(s, ParsedKey{Key: KeyEnter})
	assert.Equal(t, "submit", res.Action)

	res = RouteInput(s, ParsedKey{Key: KeyEscape})
	assert.Equal(t, "cancel", res.Action)
}

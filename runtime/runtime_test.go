package runtime

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezi-tui/rezi/focus"
	"github.com/rezi-tui/rezi/layout"
	"github.com/rezi-tui/rezi/reconcile"
	"github.com/rezi-tui/rezi/vnode"
	"github.com/rezi-tui/rezi/zrev"
)

// fakeBackend is an in-memory Backend double, standing in for a real
// engineCreate/Submit/Poll/Destroy implementation during tests.
type fakeBackend struct {
	mu sync.Mutex

	created    bool
	destroyed  bool
	config     BackendConfig
	drawlists  [][]byte
	batches    chan []byte
	postedTags []uint32
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{batches: make(chan []byte, 16)}
}

func (b *fakeBackend) Create(config BackendConfig) (EngineID, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.created = true
	b.config = config
	return 1, nil
}

func (b *fakeBackend) SubmitDrawlist(id EngineID, bytes []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.drawlists = append(b.drawlists, append([]byte{}, bytes...))
	return nil
}

func (b *fakeBackend) Present(id EngineID) error { return nil }

func (b *fakeBackend) PollEvents(id EngineID) (PolledEvents, error) {
	batch, ok := <-b.batches
	if !ok {
		return PolledEvents{Release: func() {}}, nil
	}
	return PolledEvents{Bytes: batch, Release: func() {}}, nil
}

func (b *fakeBackend) PostUserEvent(id EngineID, tag uint32, payload []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.postedTags = append(b.postedTags, tag)
	return nil
}

func (b *fakeBackend) GetCaps(id EngineID) (Caps, error) { return Caps{}, nil }

func (b *fakeBackend) Destroy(id EngineID) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.destroyed = true
	close(b.batches)
	return nil
}

func simpleRoot(state State) *vnode.Node {
	return vnode.Widget(vnode.WidgetButton, map[string]interface{}{"focusable": true}).WithID("ok")
}

func TestStartRendersFirstFrameAndCreatesEngine(t *testing.T) {
	backend := newFakeBackend()
	rt := New(backend, DefaultOptions())

	err := rt.Start(simpleRoot)
	require.NoError(t, err)
	defer rt.Stop()

	backend.mu.Lock()
	defer backend.mu.Unlock()
	assert.True(t, backend.created)
	assert.Equal(t, int32(80), backend.config.Cols)
	assert.Equal(t, int32(24), backend.config.Rows)
	require.Len(t, backend.drawlists, 1)
}

func TestStartIsIdempotent(t *testing.T) {
	backend := newFakeBackend()
	rt := New(backend, DefaultOptions())

	require.NoError(t, rt.Start(simpleRoot))
	require.NoError(t, rt.Start(simpleRoot))
	defer rt.Stop()

	backend.mu.Lock()
	defer backend.mu.Unlock()
	require.Len(t, backend.drawlists, 1)
}

func TestStopDestroysEngineAndIsIdempotent(t *testing.T) {
	backend := newFakeBackend()
	rt := New(backend, DefaultOptions())
	require.NoError(t, rt.Start(simpleRoot))

	require.NoError(t, rt.Stop())
	require.NoError(t, rt.Stop())

	backend.mu.Lock()
	defer backend.mu.Unlock()
	assert.True(t, backend.destroyed)
}

func TestSetInitialViewportNoopsAfterResizeEvent(t *testing.T) {
	backend := newFakeBackend()
	rt := New(backend, DefaultOptions())

	rt.SetInitialViewport(100, 40)
	assert.Equal(t, int32(100), rt.cols)
	assert.Equal(t, int32(40), rt.rows)

	rt.applyEvents([]zrev.Event{
		{Kind: zrev.KindResize, Resize: &zrev.ResizeEvent{Cols: 120, Rows: 50}},
	})
	assert.True(t, rt.viewportSet)

	rt.SetInitialViewport(10, 10)
	assert.Equal(t, int32(120), rt.cols, "viewport must stay backend-authoritative once a resize event has arrived")
	assert.Equal(t, int32(50), rt.rows)
}

func TestPostUserEventForwardsToBackend(t *testing.T) {
	backend := newFakeBackend()
	rt := New(backend, DefaultOptions())
	require.NoError(t, rt.Start(simpleRoot))
	defer rt.Stop()

	require.NoError(t, rt.PostUserEvent(7, []byte{1, 2, 3}))

	backend.mu.Lock()
	defer backend.mu.Unlock()
	require.Len(t, backend.postedTags, 1)
	assert.Equal(t, uint32(7), backend.postedTags[0])
}

func TestApplyEventsRoutesGlobalKeyBeforeChord(t *testing.T) {
	backend := newFakeBackend()
	fired := false
	opts := DefaultOptions()
	opts.ChordBindings = []focus.Binding{
		{
			Sequence: []focus.ParsedKey{{Key: focus.KeyTab}},
			Priority: 1,
			Handler:  focus.Effect(func() error { fired = true; return nil }),
		},
	}
	rt := New(backend, opts)
	rt.focusState.FocusList = []string{"ok"}

	rt.applyEvents([]zrev.Event{
		{Kind: zrev.KindKey, Key: &zrev.KeyEvent{Key: focus.KeyTab, Action: zrev.KeyDown}},
	})

	assert.Equal(t, "ok", rt.focusState.FocusedID, "Tab must be consumed by global routing")
	assert.False(t, fired, "a chord bound to the same key must never see it once global routing consumes it")
}

func TestApplyEventsSkipsGlobalRoutingAndReachesChordWhenUnconsumed(t *testing.T) {
	backend := newFakeBackend()
	fired := false
	opts := DefaultOptions()
	opts.ChordBindings = []focus.Binding{
		{
			Sequence: []focus.ParsedKey{{Key: focus.KeyF1}},
			Priority: 1,
			Handler:  focus.Effect(func() error { fired = true; return nil }),
		},
	}
	rt := New(backend, opts)

	rt.applyEvents([]zrev.Event{
		{Kind: zrev.KindKey, Key: &zrev.KeyEvent{Key: focus.KeyF1, Action: zrev.KeyDown}},
	})

	assert.True(t, fired)
}

func TestApplyEventsIgnoresKeyUp(t *testing.T) {
	backend := newFakeBackend()
	rt := New(backend, DefaultOptions())
	rt.focusState.FocusList = []string{"ok"}

	rt.applyEvents([]zrev.Event{
		{Kind: zrev.KindKey, Key: &zrev.KeyEvent{Key: focus.KeyTab, Action: zrev.KeyUp}},
	})

	assert.Equal(t, "", rt.focusState.FocusedID)
}

func TestMetricsReflectsRenderedFrames(t *testing.T) {
	backend := newFakeBackend()
	rt := New(backend, DefaultOptions())
	require.NoError(t, rt.Start(simpleRoot))
	defer rt.Stop()

	m := rt.Metrics()
	assert.Equal(t, 1, m.FramesRendered)
	assert.GreaterOrEqual(t, m.AvgFrameTimeMs, 0.0)
}

func TestRingSinkTrimsToHalfCapacity(t *testing.T) {
	sink := NewRingSink(4)
	for i := 0; i < 6; i++ {
		sink.Record(DebugRecord{Kind: DebugError, Message: "x"})
	}
	// The 5th record trims the ring to 2 (half of 4); the 6th makes 3.
	assert.Len(t, sink.Snapshot(), 3)
}

func TestApplyEventsDialogTrapsTabInsideItsOwnRing(t *testing.T) {
	backend := newFakeBackend()
	rt := New(backend, DefaultOptions())

	var captured focus.RouteResult
	dlg := vnode.Widget(vnode.WidgetModal, map[string]interface{}{
		"focusableKeys": []string{"a", "b"},
		"focusedKey":    "a",
		"onRoute":       func(r focus.RouteResult) { captured = r },
	}).WithID("dlg")
	rt.instances = []*reconcile.Instance{{ID: 1, VNode: dlg}}
	rt.focusState.FocusedID = "dlg"

	rt.applyEvents([]zrev.Event{
		{Kind: zrev.KindKey, Key: &zrev.KeyEvent{Key: focus.KeyTab, Action: zrev.KeyDown}},
	})

	require.NotNil(t, captured.NextFocusedKey)
	assert.Equal(t, "b", *captured.NextFocusedKey)
	assert.Equal(t, "dlg", rt.focusState.FocusedID, "a dialog consuming Tab must not also hand it to global routing")
}

func TestApplyEventsRoutesTypedTextIntoFocusedInput(t *testing.T) {
	backend := newFakeBackend()
	rt := New(backend, DefaultOptions())

	var captured focus.RouteResult
	in := vnode.Widget(vnode.WidgetInput, map[string]interface{}{
		"value":     "ac",
		"cursorPos": 1,
		"onRoute":   func(r focus.RouteResult) { captured = r },
	}).WithID("in1")
	rt.instances = []*reconcile.Instance{{ID: 1, VNode: in}}
	rt.focusState.FocusedID = "in1"

	rt.applyEvents([]zrev.Event{
		{Kind: zrev.KindText, Text: &zrev.TextEvent{Codepoint: 'b'}},
	})

	require.NotNil(t, captured.NextSelection)
	assert.Equal(t, "abc", captured.NextSelection[0])
	require.NotNil(t, captured.NextScrollTop)
	assert.Equal(t, 2, *captured.NextScrollTop)
}

func TestApplyEventsHitTestsMouseDownToWidgetAndFocusesIt(t *testing.T) {
	backend := newFakeBackend()
	rt := New(backend, DefaultOptions())

	var captured focus.RouteResult
	btn := vnode.Widget(vnode.WidgetButton, map[string]interface{}{
		"focusable": true,
		"onRoute":   func(r focus.RouteResult) { captured = r },
	}).WithID("btn")
	rt.instances = []*reconcile.Instance{{ID: 1, VNode: btn}}
	rt.lastLayout = &layout.LayoutTree{VNode: btn, Rect: layout.Rect{X: 0, Y: 0, W: 5, H: 1}}

	rt.applyEvents([]zrev.Event{
		{Kind: zrev.KindMouse, Mouse: &zrev.MouseEvent{X: 2, Y: 0, Kind: zrev.MouseDown}},
	})

	assert.Equal(t, "btn", rt.focusState.FocusedID)
	assert.Equal(t, "click", captured.Action)
	require.NotNil(t, captured.NodeToActivate)
	assert.Equal(t, "btn", *captured.NodeToActivate)
}

func TestTakeSnapshotRoundTripsThroughCBOR(t *testing.T) {
	root := vnode.Widget(vnode.WidgetButton, map[string]interface{}{"focusable": true}).WithID("ok")
	state := State{FocusList: []string{"ok"}, FocusedID: "ok"}

	data, err := TakeSnapshot(root, state).Marshal()
	require.NoError(t, err)

	decoded, err := UnmarshalSnapshot(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"ok"}, decoded.Focus.FocusList)
	assert.Equal(t, "ok", decoded.Focus.FocusedID)
	assert.Equal(t, "ok", decoded.Tree["id"])
}

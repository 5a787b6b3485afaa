package render

import (
	"testing"

	"github.com/rezi-tui/rezi/layout"
	"github.com/rezi-tui/rezi/reconcile"
	"github.com/rezi-tui/rezi/vnode"
	"github.com/rezi-tui/rezi/zrdl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wrapInstance(n *vnode.Node) *reconcile.Instance {
	inst := &reconcile.Instance{ID: 1, VNode: n}
	for i, c := range n.Children() {
		inst.Children = append(inst.Children, wrapInstanceID(c, reconcile.InstanceID(i+2)))
	}
	return inst
}

func wrapInstanceID(n *vnode.Node, id reconcile.InstanceID) *reconcile.Instance {
	inst := &reconcile.Instance{ID: id, VNode: n}
	for i, c := range n.Children() {
		inst.Children = append(inst.Children, wrapInstanceID(c, id+reconcile.InstanceID(100*(i+1))))
	}
	return inst
}

func TestRenderTextEmitsOneDrawTextCommand(t *testing.T) {
	n := vnode.Text("hello", vnode.Style{})
	res := layout.Layout(wrapInstance(n), 0, 0, 20, 1, layout.AxisHorizontal, nil)
	require.True(t, res.OK)

	b := zrdl.NewBuilder(zrdl.Version1)
	Render(res.Tree, b, DefaultOptions())
	out := b.Build()
	require.True(t, out.OK)

	h, err := zrdl.ReadHeader(out.Bytes)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), h.CmdCount)
	assert.Equal(t, uint32(1), h.StringsCount)
}

func TestRenderTextWrapsLongLineIntoMultipleDrawCalls(t *testing.T) {
	n := vnode.Text("one two three four", vnode.Style{})
	res := layout.Layout(wrapInstance(n), 0, 0, 7, 5, layout.AxisHorizontal, nil)
	require.True(t, res.OK)

	b := zrdl.NewBuilder(zrdl.Version1)
	Render(res.Tree, b, DefaultOptions())
	out := b.Build()
	require.True(t, out.OK)
	h, err := zrdl.ReadHeader(out.Bytes)
	require.NoError(t, err)
	assert.Greater(t, h.CmdCount, uint32(1), "wrapped text emits one DRAW_TEXT per line")
}

func TestRenderWidgetZeroWidthEmitsNoCommands(t *testing.T) {
	n := vnode.Widget(vnode.WidgetButton, map[string]interface{}{"text": "ok\nmultiline"})
	res := layout.Layout(wrapInstance(n), 0, 0, 0, 3, layout.AxisHorizontal, nil)
	require.True(t, res.OK)
	require.Equal(t, int32(0), res.Tree.Rect.W, "width: 0 must stay a valid zero-width box")

	b := zrdl.NewBuilder(zrdl.Version1)
	Render(res.Tree, b, DefaultOptions())
	out := b.Build()
	require.True(t, out.OK)

	h, err := zrdl.ReadHeader(out.Bytes)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), h.CmdCount, "a zero-width widget must clip its content, not draw it unwrapped")
}

func TestRenderBoxWithBorderEmitsEdgeCommands(t *testing.T) {
	n := vnode.Box(vnode.Text("x", vnode.Style{}), vnode.BoxProps{
		Border: vnode.Border{Kind: vnode.BorderSingle, Top: true, Bottom: true, Left: true, Right: true},
	})
	res := layout.Layout(wrapInstance(n), 0, 0, 5, 5, layout.AxisHorizontal, nil)
	require.True(t, res.OK)

	b := zrdl.NewBuilder(zrdl.Version1)
	Render(res.Tree, b, DefaultOptions())
	out := b.Build()
	require.True(t, out.OK)
	h, err := zrdl.ReadHeader(out.Bytes)
	require.NoError(t, err)
	// top edge + bottom edge + 3 interior rows' left+right + 1 text draw.
	assert.Equal(t, uint32(2+3*2+1), h.CmdCount)
}

func TestRenderScrollBoxPushesClipAndTranslatesChild(t *testing.T) {
	rows := vnode.Column(
		vnode.Text("a", vnode.Style{}), vnode.Text("b", vnode.Style{}), vnode.Text("c", vnode.Style{}),
		vnode.Text("d", vnode.Style{}), vnode.Text("e", vnode.Style{}), vnode.Text("f", vnode.Style{}),
	)
	width, height := 5, 5
	n := vnode.Box(rows, vnode.BoxProps{Width: &width, Height: &height, Overflow: vnode.OverflowScroll})
	res := layout.Layout(wrapInstance(n), 0, 0, 20, 20, layout.AxisHorizontal, nil)
	require.True(t, res.OK)

	b := zrdl.NewBuilder(zrdl.Version1)
	Render(res.Tree, b, DefaultOptions())
	out := b.Build()
	require.True(t, out.OK)
	h, err := zrdl.ReadHeader(out.Bytes)
	require.NoError(t, err)
	// PUSH_CLIP + 5 visible rows (the 6th is clipped below the 5-row
	// viewport) + POP_CLIP.
	assert.Equal(t, uint32(7), h.CmdCount)
}

func TestRenderWidgetCursorRequestIsLastWriterWins(t *testing.T) {
	n := vnode.Row(
		vnode.Box(vnode.Widget(vnode.WidgetInput, map[string]interface{}{
			"cursor": CursorSpec{X: 1, Y: 0, Shape: zrdl.CursorShapeBar, Visible: true},
		}), vnode.BoxProps{Width: intPtr(5)}),
		vnode.Box(vnode.Widget(vnode.WidgetInput, map[string]interface{}{
			"hideCursor": true,
		}), vnode.BoxProps{Width: intPtr(5)}),
	)
	res := layout.Layout(wrapInstance(n), 0, 0, 20, 1, layout.AxisHorizontal, nil)
	require.True(t, res.OK)

	b := zrdl.NewBuilder(zrdl.Version2)
	Render(res.Tree, b, DefaultOptions())
	out := b.Build()
	require.True(t, out.OK)
	h, err := zrdl.ReadHeader(out.Bytes)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), h.CmdCount, "no content drawn, but the hide wins and still emits SET_CURSOR")
}

func TestRenderDividerPicksGlyphByOrientation(t *testing.T) {
	tree := vnode.Row(vnode.Text("a", vnode.Style{}), vnode.Divider(), vnode.Text("b", vnode.Style{}))
	res := layout.Layout(wrapInstance(tree), 0, 0, 10, 3, layout.AxisHorizontal, nil)
	require.True(t, res.OK)

	b := zrdl.NewBuilder(zrdl.Version1)
	Render(res.Tree, b, DefaultOptions())
	out := b.Build()
	require.True(t, out.OK)
	h, err := zrdl.ReadHeader(out.Bytes)
	require.NoError(t, err)
	// "a", divider spans 3 rows (one DRAW_TEXT per row), "b".
	assert.Equal(t, uint32(5), h.CmdCount)
}

func intPtr(n int) *int { return &n }

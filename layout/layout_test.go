package layout

import (
	"testing"

	"github.com/rezi-tui/rezi/reconcile"
	"github.com/rezi-tui/rezi/vnode"
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

func TestLayoutZeroConstraintReturnsAllZeroRect(t *testing.T) {
	n := vnode.Row(vnode.Text("hello", vnode.Style{}))
	res := Layout(wrapInstance(n), 0, 0, 0, 0, AxisHorizontal, nil)
	require.True(t, res.OK)
	require.Nil(t, res.Fatal)
	assert.Equal(t, Rect{}, res.Tree.Rect)
	require.Len(t, res.Tree.Children, 1)
	assert.Equal(t, Rect{}, res.Tree.Children[0].Rect)
}

func TestLayoutNegativeConstraintIsFatal(t *testing.T) {
	n := vnode.Text("x", vnode.Style{})
	res := Layout(wrapInstance(n), 0, 0, -1, 10, AxisHorizontal, nil)
	require.False(t, res.OK)
	require.NotNil(t, res.Fatal)
	assert.Equal(t, FatalInvalidProps, res.Fatal.Code)
}

func TestEveryLeafRectContainedInRoot(t *testing.T) {
	tree := vnode.Column(
		vnode.Text("alpha beta gamma delta", vnode.Style{}),
		vnode.Row(vnode.Spacer(1, 0), vnode.Text("right", vnode.Style{})),
		vnode.Box(vnode.Text("boxed", vnode.Style{}), vnode.BoxProps{
			Border: vnode.Border{Kind: vnode.BorderSingle, Top: true, Bottom: true, Left: true, Right: true},
			Padding: vnode.Uniform(1),
		}),
	)
	res := Layout(wrapInstance(tree), 0, 0, 40, 20, AxisHorizontal, nil)
	require.True(t, res.OK)
	assertContained(t, res.Tree.Rect, res.Tree)
}

func assertContained(t *testing.T, root Rect, node *LayoutTree) {
	t.Helper()
	if node == nil {
		return
	}
	assert.GreaterOrEqual(t, node.Rect.X, root.X)
	assert.GreaterOrEqual(t, node.Rect.Y, root.Y)
	assert.LessOrEqual(t, node.Rect.X+node.Rect.W, root.X+root.W)
	assert.LessOrEqual(t, node.Rect.Y+node.Rect.H, root.Y+root.H)
	for _, c := range node.Children {
		assertContained(t, root, c)
	}
}

func TestRowDistributesFlexSpacerToFillRemainingSpace(t *testing.T) {
	tree := vnode.Row(vnode.Text("ab", vnode.Style{}), vnode.Spacer(1, 0), vnode.Text("cd", vnode.Style{}))
	res := Layout(wrapInstance(tree), 0, 0, 20, 1, AxisHorizontal, nil)
	require.True(t, res.OK)
	require.Len(t, res.Tree.Children, 3)

	left, spacer, right := res.Tree.Children[0], res.Tree.Children[1], res.Tree.Children[2]
	assert.Equal(t, int32(0), left.Rect.X)
	assert.Equal(t, int32(2), left.Rect.W)
	assert.Equal(t, int32(2), spacer.Rect.X)
	assert.Equal(t, int32(16), spacer.Rect.W, "spacer absorbs all remaining width")
	assert.Equal(t, int32(18), right.Rect.X)
	assert.Equal(t, int32(2), right.Rect.W)
}

func TestRowGapInsertedBetweenChildrenOnly(t *testing.T) {
	tree := vnode.Row(vnode.Text("a", vnode.Style{}), vnode.Text("b", vnode.Style{}), vnode.Text("c", vnode.Style{}))
	tree = tree.WithFlexLayout(2, vnode.JustifyStart, vnode.AlignStart)
	res := Layout(wrapInstance(tree), 0, 0, 30, 1, AxisHorizontal, nil)
	require.True(t, res.OK)
	require.Len(t, res.Tree.Children, 3)
	assert.Equal(t, int32(0), res.Tree.Children[0].Rect.X)
	assert.Equal(t, int32(3), res.Tree.Children[1].Rect.X) // 1 (width) + 2 (gap)
	assert.Equal(t, int32(6), res.Tree.Children[2].Rect.X)
}

func TestJustifyCenterWithNoFlexChildren(t *testing.T) {
	tree := vnode.Row(vnode.Text("ab", vnode.Style{}))
	tree = tree.WithFlexLayout(0, vnode.JustifyCenter, vnode.AlignStart)
	res := Layout(wrapInstance(tree), 0, 0, 10, 1, AxisHorizontal, nil)
	require.True(t, res.OK)
	require.Len(t, res.Tree.Children, 1)
	assert.Equal(t, int32(4), res.Tree.Children[0].Rect.X, "(10-2)/2 leading offset")
}

func TestAlignStretchFillsCrossAxis(t *testing.T) {
	tree := vnode.Row(vnode.Text("a", vnode.Style{}))
	tree = tree.WithFlexLayout(0, vnode.JustifyStart, vnode.AlignStretch)
	res := Layout(wrapInstance(tree), 0, 0, 10, 5, AxisHorizontal, nil)
	require.True(t, res.OK)
	assert.Equal(t, int32(5), res.Tree.Children[0].Rect.H)
}

func TestBoxWidthZeroIsValidAndClipsChild(t *testing.T) {
	zero := 0
	tree := vnode.Box(vnode.Text("hidden", vnode.Style{}), vnode.BoxProps{Width: &zero})
	res := Layout(wrapInstance(tree), 0, 0, 40, 5, AxisHorizontal, nil)
	require.True(t, res.OK)
	assert.Equal(t, int32(0), res.Tree.Rect.W)
	require.Len(t, res.Tree.Children, 1)
	assert.Equal(t, int32(0), res.Tree.Children[0].Rect.W)
}

func TestBoxBorderAndPaddingShrinkInnerRect(t *testing.T) {
	tree := vnode.Box(vnode.Text("x", vnode.Style{}), vnode.BoxProps{
		Border:  vnode.Border{Kind: vnode.BorderSingle, Top: true, Bottom: true, Left: true, Right: true},
		Padding: vnode.Uniform(1),
	})
	res := Layout(wrapInstance(tree), 0, 0, 40, 10, AxisHorizontal, nil)
	require.True(t, res.OK)
	require.Len(t, res.Tree.Children, 1)
	child := res.Tree.Children[0]
	assert.Equal(t, int32(2), child.Rect.X) // 1 border + 1 padding
	assert.Equal(t, int32(2), child.Rect.Y)
}

func TestMeasurementCacheHitsOnSameNodeSameConstraints(t *testing.T) {
	n := vnode.Text("hello world", vnode.Style{})
	cache := NewCache()
	a := measure(n, 5, 10, AxisHorizontal, cache)
	b := measure(n, 5, 10, AxisHorizontal, cache)
	assert.Equal(t, a, b)
	assert.Len(t, cache.entries[n], 1, "identical constraint triple must not create a second entry")

	measure(n, 6, 10, AxisHorizontal, cache)
	assert.Len(t, cache.entries[n], 2, "a distinct constraint triple is its own cache entry")
}

func TestHitTestPicksTopmostLayerAtPoint(t *testing.T) {
	tree := vnode.Layers(
		vnode.Box(vnode.Text("back", vnode.Style{}), vnode.BoxProps{}),
		vnode.Box(vnode.Text("front", vnode.Style{}), vnode.BoxProps{}),
	)
	res := Layout(wrapInstance(tree), 0, 0, 10, 10, AxisHorizontal, nil)
	require.True(t, res.OK)
	hit := HitTest(res.Tree, 0, 0)
	require.NotNil(t, hit)
	// The topmost (last-listed) layer's subtree must be preferred.
	assert.Same(t, res.Tree.Children[1].Children[0].VNode, hit.VNode)
}

func TestHitTestRespectsScrollbarGutterClip(t *testing.T) {
	rows := vnode.Column(
		vnode.Text("a", vnode.Style{}), vnode.Text("b", vnode.Style{}), vnode.Text("c", vnode.Style{}),
		vnode.Text("d", vnode.Style{}), vnode.Text("e", vnode.Style{}), vnode.Text("f", vnode.Style{}),
	)
	outer := vnode.Box(rows, vnode.BoxProps{Width: intPtr(5), Height: intPtr(5), Overflow: vnode.OverflowScroll})
	res := Layout(wrapInstance(outer), 0, 0, 40, 40, AxisHorizontal, nil)
	require.True(t, res.OK)
	require.NotNil(t, res.Tree.Meta)
	require.Equal(t, int32(4), res.Tree.Meta.ViewportWidth, "a vertical scrollbar gutter narrows the usable width")

	// x=4 falls inside the box's own 5-wide rect but in the reserved
	// scrollbar gutter column, so it must not hit the content.
	assert.Same(t, res.Tree, HitTest(res.Tree, 4, 0))
	// x=3 is within the gutter-adjusted clip and reaches the content.
	hit := HitTest(res.Tree, 3, 0)
	require.NotNil(t, hit)
	assert.NotSame(t, res.Tree, hit)
}

func intPtr(n int) *int { return &n }

package layout

import (
	"github.com/rezi-tui/rezi/reconcile"
	"github.com/rezi-tui/rezi/vnode"
)

func childAxis(kind vnode.Kind) Axis {
	if kind == vnode.KindRow {
		return AxisHorizontal
	}
	return AxisVertical
}

// measureFlexContainer sums children's natural main-axis sizes (each
// measured with the container's cross-axis bound but an unconstrained
// main axis) plus gaps, and takes the max cross-axis size, per §4.4
// step list for row/column measurement.
func measureFlexContainer(n *vnode.Node, maxW, maxH int32, cache *Cache) Size {
	if n.Flex == nil {
		return Size{}
	}
	isRow := n.Kind == vnode.KindRow
	axis := childAxis(n.Kind)

	var mainSum, crossMax int32
	for _, c := range n.Flex.Children {
		var cw, ch int32
		if isRow {
			cw, ch = unconstrained, maxH
		} else {
			cw, ch = maxW, unconstrained
		}
		sz := measure(c, cw, ch, axis, cache)
		if isRow {
			mainSum += sz.W
			if sz.H > crossMax {
				crossMax = sz.H
			}
		} else {
			mainSum += sz.H
			if sz.W > crossMax {
				crossMax = sz.W
			}
		}
	}
	if len(n.Flex.Children) > 1 {
		mainSum += int32(n.Flex.Gap) * int32(len(n.Flex.Children)-1)
	}
	if isRow {
		return Size{W: boundedMax(mainSum, maxW), H: boundedMax(crossMax, maxH)}
	}
	return Size{W: boundedMax(crossMax, maxW), H: boundedMax(mainSum, maxH)}
}

// arrangeFlexContainer implements the full arrange algorithm: natural
// sizing, flex distribution with min/max and a single redistribution
// pass, justify, cross-axis alignment, and fixed inter-child gap.
func arrangeFlexContainer(inst *reconcile.Instance, tree *LayoutTree, x, y, w, h int32, cache *Cache) {
	n := inst.VNode
	if n.Flex == nil {
		return
	}
	isRow := n.Kind == vnode.KindRow
	axis := childAxis(n.Kind)
	children := inst.Children
	count := len(children)
	if count == 0 {
		return
	}

	mains := make([]int32, count)
	crosses := make([]int32, count)
	flexes := make([]float64, count)
	fixed := make([]bool, count)
	mins := make([]*int32, count)
	maxs := make([]*int32, count)

	mainTotal := w
	crossTotal := h
	if !isRow {
		mainTotal, crossTotal = h, w
	}

	for i, ch := range children {
		var cw, ch32 int32
		if isRow {
			cw, ch32 = unconstrained, crossTotal
		} else {
			cw, ch32 = crossTotal, unconstrained
		}
		sz := measure(ch.VNode, cw, ch32, axis, cache)
		if isRow {
			mains[i], crosses[i] = sz.W, sz.H
		} else {
			mains[i], crosses[i] = sz.H, sz.W
		}
		fixed[i] = true
		if ch.VNode.Kind == vnode.KindSpacer && ch.VNode.Spacer != nil && ch.VNode.Spacer.Flex > 0 {
			flexes[i] = ch.VNode.Spacer.Flex
			fixed[i] = false
			if ch.VNode.Spacer.MinSize != nil {
				v := int32(*ch.VNode.Spacer.MinSize)
				mins[i] = &v
			}
			if ch.VNode.Spacer.MaxSize != nil {
				v := int32(*ch.VNode.Spacer.MaxSize)
				maxs[i] = &v
			}
		}
	}

	gap := int32(n.Flex.Gap)
	gapTotal := int32(0)
	if count > 1 {
		gapTotal = gap * int32(count-1)
	}
	var fixedSum int32
	for i := range mains {
		if fixed[i] {
			fixedSum += mains[i]
		}
	}
	remaining := mainTotal - fixedSum - gapTotal
	if remaining < 0 {
		remaining = 0
	}
	finalMains := distributeWeighted(remaining, flexes, fixed, mains, mins, maxs)

	var used int32
	for i, v := range finalMains {
		used += v
		if i > 0 {
			used += gap
		}
	}
	leading, between := justifyLeadingAndGap(n.Flex.Justify, mainTotal, used, count)

	tree.Children = make([]*LayoutTree, count)
	cursor := leading
	for i, ch := range children {
		mainSize := finalMains[i]
		crossSize := crosses[i]
		if n.Flex.Align == vnode.AlignStretch {
			crossSize = crossTotal
		}
		off := alignOffset(n.Flex.Align, crossTotal, crossSize)
		var cx, cy, cw, chh int32
		if isRow {
			cx, cy, cw, chh = x+cursor, y+off, mainSize, crossSize
		} else {
			cx, cy, cw, chh = x+off, y+cursor, crossSize, mainSize
		}
		tree.Children[i] = arrange(ch, cx, cy, cw, chh, axis, cache)
		cursor += mainSize
		if i < count-1 {
			cursor += gap + between
		}
	}
}

// borderThickness returns the cell cost a border adds along a single
// axis: 1 per enabled side, 0 if Kind is BorderNone.
func borderThickness(b vnode.Border) (w, h int32) {
	if b.Kind == vnode.BorderNone {
		return 0, 0
	}
	if b.Left {
		w++
	}
	if b.Right {
		w++
	}
	if b.Top {
		h++
	}
	if b.Bottom {
		h++
	}
	return w, h
}

func measureBox(n *vnode.Node, maxW, maxH int32, axis Axis, cache *Cache) Size {
	bp := n.Box
	if bp == nil {
		return Size{}
	}
	borderW, borderH := borderThickness(bp.Border)
	padW := int32(bp.Padding.Left + bp.Padding.Right)
	padH := int32(bp.Padding.Top + bp.Padding.Bottom)

	outerW, outerH := maxW, maxH
	if bp.Width != nil {
		outerW = int32(*bp.Width)
	}
	if bp.Height != nil {
		outerH = int32(*bp.Height)
	}

	innerW := clampNonNegative(subUnconstrained(outerW, borderW+padW))
	innerH := clampNonNegative(subUnconstrained(outerH, borderH+padH))
	// overflow:hidden|scroll measures the child at its natural content
	// size (unconstrained) instead of the viewport; without an explicit
	// Width/Height the box still shrink-wraps to that natural size, but
	// with one, arrangeBox's own content-size remeasurement feeds the
	// scroll metadata without this measured value being used for sizing.
	childMeasureW, childMeasureH := innerW, innerH
	if bp.Overflow != vnode.OverflowVisible {
		childMeasureW, childMeasureH = unconstrained, unconstrained
	}
	childSize := measure(bp.Child, childMeasureW, childMeasureH, axis, cache)

	w, h := outerW, outerH
	if bp.Width == nil {
		w = childSize.W + borderW + padW
	}
	if bp.Height == nil {
		h = childSize.H + borderH + padH
	}
	return Size{W: boundedMax(w, maxW), H: boundedMax(h, maxH)}
}

func subUnconstrained(v, delta int32) int32 {
	if v == unconstrained {
		return unconstrained
	}
	return v - delta
}

func arrangeBox(inst *reconcile.Instance, tree *LayoutTree, x, y, w, h int32, axis Axis, cache *Cache) {
	n := inst.VNode
	bp := n.Box
	if bp == nil {
		return
	}
	// An explicit Width/Height always overrides whatever rect the
	// parent allocated, mirroring measureBox's own sizing rule; this
	// matters most when Box has no parent arrange step to apply that
	// sizing for it (the frame root, or a Layers child).
	outerW, outerH := w, h
	if bp.Width != nil {
		outerW = boundedMax(int32(*bp.Width), w)
	}
	if bp.Height != nil {
		outerH = boundedMax(int32(*bp.Height), h)
	}
	tree.Rect = Rect{X: x, Y: y, W: outerW, H: outerH}
	if len(inst.Children) == 0 {
		return
	}

	borderW, borderH := borderThickness(bp.Border)
	var left, top int32
	if bp.Border.Left {
		left = 1
	}
	if bp.Border.Top {
		top = 1
	}
	innerX := x + left + int32(bp.Padding.Left)
	innerY := y + top + int32(bp.Padding.Top)
	innerW := clampNonNegative(outerW - borderW - int32(bp.Padding.Left+bp.Padding.Right))
	innerH := clampNonNegative(outerH - borderH - int32(bp.Padding.Top+bp.Padding.Bottom))

	child := arrange(inst.Children[0], innerX, innerY, innerW, innerH, axis, cache)
	tree.Children = []*LayoutTree{child}

	if bp.Overflow == vnode.OverflowHidden || bp.Overflow == vnode.OverflowScroll {
		// contentSize is measured at the child's natural (unconstrained)
		// size purely for overflow bookkeeping; the arranged rect above
		// stays viewport-fitted so every node's rect remains contained in
		// its ancestors', and the renderer alone is responsible for
		// clipping/translating when it walks a natural-size sub-layout.
		contentSize := measure(inst.Children[0].VNode, unconstrained, unconstrained, axis, cache)
		tree.Meta = computeOverflowMeta(bp, contentSize, innerW, innerH)
	}
}

// computeOverflowMeta derives scroll bookkeeping from the child's
// measured content extent against the box's viewport. A scroll
// container reserves a 1-cell gutter on the axis a scrollbar would
// occupy when that axis actually overflows.
func computeOverflowMeta(bp *vnode.BoxProps, content Size, viewportW, viewportH int32) *OverflowMeta {
	contentW, contentH := content.W, content.H
	vw, vh := viewportW, viewportH
	if bp.Overflow == vnode.OverflowScroll {
		if contentH > vh && vw > 0 {
			vw--
		}
		if contentW > vw && vh > 0 {
			vh--
		}
	}
	meta := &OverflowMeta{
		ContentWidth: contentW, ContentHeight: contentH,
		ViewportWidth: clampNonNegative(vw), ViewportHeight: clampNonNegative(vh),
	}
	meta.ScrollX = clampScroll(0, contentW, meta.ViewportWidth)
	meta.ScrollY = clampScroll(0, contentH, meta.ViewportHeight)
	return meta
}

func clampScroll(v, content, viewport int32) int32 {
	max := content - viewport
	if max < 0 {
		max = 0
	}
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

func measureLayers(n *vnode.Node, maxW, maxH int32, axis Axis, cache *Cache) Size {
	if n.Layers == nil {
		return Size{}
	}
	var w, h int32
	for _, c := range n.Layers.Children {
		sz := measure(c, maxW, maxH, axis, cache)
		if sz.W > w {
			w = sz.W
		}
		if sz.H > h {
			h = sz.H
		}
	}
	return Size{W: boundedMax(w, maxW), H: boundedMax(h, maxH)}
}

func arrangeLayers(inst *reconcile.Instance, tree *LayoutTree, x, y, w, h int32, axis Axis, cache *Cache) {
	tree.Children = make([]*LayoutTree, len(inst.Children))
	for i, ch := range inst.Children {
		tree.Children[i] = arrange(ch, x, y, w, h, axis, cache)
	}
}

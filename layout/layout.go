// Package layout implements the two-phase measure/arrange engine that
// turns a reconciled instance tree into a tree of absolute rects ready
// for the renderer. Both phases are deterministic pure functions of
// (vnode, maxW, maxH, axis); a caller-owned Cache lets repeated
// measurements of the same VNode at the same constraints reuse their
// result across a frame or across frames.
package layout

import (
	"github.com/rezi-tui/rezi/reconcile"
	"github.com/rezi-tui/rezi/vnode"
)

// Axis names which axis is currently the container main axis for a
// measure/arrange call: horizontal inside a row, vertical inside a
// column. It is part of the measurement cache key because a spacer or
// divider's natural size depends on it.
type Axis uint8

const (
	AxisHorizontal Axis = iota
	AxisVertical
)

// unconstrained stands in for "no upper bound" when measuring a flex
// child's natural main-axis size. It is distinct from the real
// constraint value 0, which is a legitimate (if degenerate) bound.
const unconstrained int32 = 1 << 30

// Rect is an absolute, signed-origin axis-aligned rectangle in cells.
type Rect struct {
	X, Y, W, H int32
}

// Size is a measured width/height pair.
type Size struct {
	W, H int32
}

// OverflowMeta carries scroll bookkeeping for a Box with
// overflow: hidden|scroll.
type OverflowMeta struct {
	ScrollX, ScrollY              int32
	ContentWidth, ContentHeight   int32
	ViewportWidth, ViewportHeight int32
}

// LayoutTree is one node of the computed layout, mirroring the
// instance tree it was produced from.
type LayoutTree struct {
	InstanceID reconcile.InstanceID
	VNode      *vnode.Node
	Rect       Rect
	Children   []*LayoutTree
	Meta       *OverflowMeta
}

// FatalCode names a layout failure.
type FatalCode string

// FatalInvalidProps is returned when layout's own preconditions are
// violated (negative constraints).
const FatalInvalidProps FatalCode = "ZRUI_INVALID_PROPS"

// FatalError reports a precondition violation.
type FatalError struct {
	Code   FatalCode
	Detail string
}

func (e *FatalError) Error() string { return string(e.Code) + ": " + e.Detail }

// Result is the outcome of Layout.
type Result struct {
	OK    bool
	Tree  *LayoutTree
	Fatal *FatalError
}

// Layout measures and arranges inst's tree within the rect
// (x, y, maxW, maxH), treating axis as the ambient main axis inst
// itself is being placed along (AxisHorizontal for the frame root).
func Layout(inst *reconcile.Instance, x, y, maxW, maxH int32, axis Axis, cache *Cache) Result {
	if maxW < 0 || maxH < 0 {
		return Result{Fatal: &FatalError{Code: FatalInvalidProps, Detail: "maxW and maxH must be non-negative"}}
	}
	if cache == nil {
		cache = NewCache()
	}
	if maxW == 0 && maxH == 0 {
		return Result{OK: true, Tree: zeroTree(inst)}
	}
	// The root always receives the full given viewport, exactly like a
	// Box or flex child that stretches to fill its assigned space: there
	// is no outer parent here to shrink-wrap the root to its intrinsic
	// size instead.
	measure(inst.VNode, maxW, maxH, axis, cache)
	tree := arrange(inst, x, y, maxW, maxH, axis, cache)
	return Result{OK: true, Tree: tree}
}

// zeroTree builds an all-zero-rect tree shaped like inst, without
// invoking measure on any leaf: the maxW=0,maxH=0 boundary case
// forbids rendering anything, so there is nothing to measure.
func zeroTree(inst *reconcile.Instance) *LayoutTree {
	if inst == nil {
		return nil
	}
	children := make([]*LayoutTree, len(inst.Children))
	for i, c := range inst.Children {
		children[i] = zeroTree(c)
	}
	return &LayoutTree{InstanceID: inst.ID, VNode: inst.VNode, Children: children}
}

// measure is the pure (vnode, maxW, maxH, axis) -> Size function,
// memoized per VNode identity in cache.
func measure(n *vnode.Node, maxW, maxH int32, axis Axis, cache *Cache) Size {
	if n == nil {
		return Size{}
	}
	key := cacheKey{maxW: maxW, maxH: maxH, axis: axis}
	if sz, ok := cache.get(n, key); ok {
		return sz
	}
	var sz Size
	switch n.Kind {
	case vnode.KindText:
		sz = measureText(n, maxW, maxH)
	case vnode.KindSpacer:
		sz = measureSpacer(n, maxW, maxH, axis)
	case vnode.KindDivider:
		sz = measureDivider(maxW, maxH, axis)
	case vnode.KindWidget:
		sz = measureWidget(n, maxW, maxH)
	case vnode.KindRow, vnode.KindColumn:
		sz = measureFlexContainer(n, maxW, maxH, cache)
	case vnode.KindBox:
		sz = measureBox(n, maxW, maxH, axis, cache)
	case vnode.KindLayers:
		sz = measureLayers(n, maxW, maxH, axis, cache)
	}
	cache.put(n, key, sz)
	return sz
}

// arrange assigns inst's subtree the rect (x, y, w, h) and recurses,
// producing absolute rects for every descendant.
func arrange(inst *reconcile.Instance, x, y, w, h int32, axis Axis, cache *Cache) *LayoutTree {
	if inst == nil {
		return nil
	}
	n := inst.VNode
	tree := &LayoutTree{InstanceID: inst.ID, VNode: n, Rect: Rect{X: x, Y: y, W: w, H: h}}

	switch n.Kind {
	case vnode.KindRow, vnode.KindColumn:
		arrangeFlexContainer(inst, tree, x, y, w, h, cache)
	case vnode.KindBox:
		arrangeBox(inst, tree, x, y, w, h, axis, cache)
	case vnode.KindLayers:
		arrangeLayers(inst, tree, x, y, w, h, axis, cache)
	case vnode.KindWidget:
		if n.Widget != nil && n.Widget.Kind == vnode.WidgetSplitPane {
			arrangeSplitPane(n, tree, x, y, w, h, cache)
		}
	}
	return tree
}

func boundedMax(v, max int32) int32 {
	if max == unconstrained {
		if v < 0 {
			return 0
		}
		return v
	}
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

func clampNonNegative(v int32) int32 {
	if v < 0 {
		return 0
	}
	return v
}

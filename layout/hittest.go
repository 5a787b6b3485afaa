package layout

import "github.com/rezi-tui/rezi/vnode"

// HitTest finds the topmost node under point (x, y), walking the
// layout tree in reverse document order (later siblings, which draw
// on top, are tested first) and requiring the point to fall within
// every ancestor's effective clip rect along the way.
func HitTest(tree *LayoutTree, x, y int32) *LayoutTree {
	return hitTest(tree, x, y, nil)
}

func hitTest(node *LayoutTree, x, y int32, clip *Rect) *LayoutTree {
	if node == nil || !containsPoint(node.Rect, x, y) {
		return nil
	}
	if clip != nil && !containsPoint(*clip, x, y) {
		return nil
	}

	childClip := clip
	if node.VNode != nil && node.VNode.Kind == vnode.KindBox && node.VNode.Box != nil {
		if c := effectiveClip(node); c != nil {
			childClip = intersectClip(clip, c)
		}
	}

	for i := len(node.Children) - 1; i >= 0; i-- {
		if hit := hitTest(node.Children[i], x, y, childClip); hit != nil {
			return hit
		}
	}
	return node
}

// effectiveClip returns the clip rect a Box with overflow:hidden or
// overflow:scroll imposes on its descendants: the content rect given
// by its own meta (already gutter-adjusted for a scrollbar).
func effectiveClip(node *LayoutTree) *Rect {
	bp := node.VNode.Box
	if bp.Overflow != vnode.OverflowHidden && bp.Overflow != vnode.OverflowScroll {
		return nil
	}
	if node.Meta == nil {
		r := node.Rect
		return &r
	}
	var left, top int32
	if bp.Border.Left {
		left = 1
	}
	if bp.Border.Top {
		top = 1
	}
	r := Rect{
		X: node.Rect.X + left + int32(bp.Padding.Left),
		Y: node.Rect.Y + top + int32(bp.Padding.Top),
		W: node.Meta.ViewportWidth,
		H: node.Meta.ViewportHeight,
	}
	return &r
}

func intersectClip(a, b *Rect) *Rect {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	x0, y0 := max32(a.X, b.X), max32(a.Y, b.Y)
	x1, y1 := min32(a.X+a.W, b.X+b.W), min32(a.Y+a.H, b.Y+b.H)
	return &Rect{X: x0, Y: y0, W: clampNonNegative(x1 - x0), H: clampNonNegative(y1 - y0)}
}

func containsPoint(r Rect, x, y int32) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

func max32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

func min32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

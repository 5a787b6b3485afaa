// Package render walks a reconciled layout tree and emits the
// corresponding ZRDL drawlist commands.
package render

import (
	"strings"

	"github.com/rezi-tui/rezi/layout"
	"github.com/rezi-tui/rezi/vnode"
	"github.com/rezi-tui/rezi/zrdl"
)

// Options controls render's choice of glyphs.
type Options struct {
	BorderSet BorderSet
}

// DefaultOptions draws borders with the ASCII glyph set.
func DefaultOptions() Options {
	return Options{BorderSet: ASCIIBorders}
}

// Render walks tree and pushes FILL_RECT/DRAW_TEXT/DRAW_TEXT_RUN/
// PUSH_CLIP/POP_CLIP commands onto b, then resolves the frame's
// cursor request (last writer wins; no request hides the cursor).
func Render(tree *layout.LayoutTree, b *zrdl.Builder, opts Options) {
	if tree == nil {
		return
	}
	w := &walker{b: b, opts: opts}
	w.walk(tree, tree.Rect, 0, 0)
	w.cursor.apply(b)
}

type walker struct {
	b      *zrdl.Builder
	opts   Options
	cursor cursorCollector
}

func (w *walker) walk(node *layout.LayoutTree, clip layout.Rect, dx, dy int32) {
	if node == nil {
		return
	}
	rect := translateRect(node.Rect, dx, dy)
	if !intersects(rect, clip) {
		return
	}
	if node.VNode == nil {
		// A bare divider placeholder synthesized by splitPane arrange.
		w.drawDivider(rect)
		return
	}

	switch node.VNode.Kind {
	case vnode.KindText:
		w.renderText(node, rect)
	case vnode.KindDivider:
		w.drawDivider(rect)
	case vnode.KindWidget:
		w.renderWidget(node, rect, clip, dx, dy)
	case vnode.KindBox:
		w.renderBox(node, rect, clip, dx, dy)
	default: // Row, Column, Layers, Spacer
		for _, c := range node.Children {
			w.walk(c, clip, dx, dy)
		}
	}
}

func (w *walker) renderText(node *layout.LayoutTree, rect layout.Rect) {
	tp := node.VNode.Text
	if tp == nil || rect.W <= 0 || rect.H <= 0 {
		return
	}
	style := wireStyle(tp.Style)
	if tp.Style.HasBg {
		w.b.FillRect(rect.X, rect.Y, rect.W, rect.H, style)
	}
	for i, line := range wrapLines(tp.Content, rect.W) {
		if int32(i) >= rect.H {
			break
		}
		w.b.DrawText(rect.X, rect.Y+int32(i), line, style)
	}
}

func (w *walker) drawDivider(rect layout.Rect) {
	if rect.W <= 0 || rect.H <= 0 {
		return
	}
	glyphs := w.opts.BorderSet.glyphsFor(vnode.BorderSingle)
	if rect.W <= rect.H {
		for y := int32(0); y < rect.H; y++ {
			w.b.DrawText(rect.X, rect.Y+y, glyphs.Vertical, zrdl.Style{})
		}
		return
	}
	w.b.DrawText(rect.X, rect.Y, strings.Repeat(glyphs.Horizontal, int(rect.W)), zrdl.Style{})
}

func (w *walker) renderBox(node *layout.LayoutTree, rect layout.Rect, clip layout.Rect, dx, dy int32) {
	bp := node.VNode.Box
	if bp == nil {
		return
	}
	if bp.Border.Kind != vnode.BorderNone {
		w.drawBorder(rect, bp.Border)
	}
	if len(node.Children) == 0 {
		return
	}
	child := node.Children[0]

	if bp.Overflow != vnode.OverflowHidden && bp.Overflow != vnode.OverflowScroll {
		w.walk(child, clip, dx, dy)
		return
	}

	var left, top int32
	if bp.Border.Left {
		left = 1
	}
	if bp.Border.Top {
		top = 1
	}
	viewportW, viewportH := rect.W, rect.H
	if node.Meta != nil {
		viewportW, viewportH = node.Meta.ViewportWidth, node.Meta.ViewportHeight
	}
	contentRect := layout.Rect{
		X: rect.X + left + int32(bp.Padding.Left),
		Y: rect.Y + top + int32(bp.Padding.Top),
		W: viewportW, H: viewportH,
	}
	newClip := intersectRect(clip, contentRect)

	childDx, childDy := dx, dy
	if bp.Overflow == vnode.OverflowScroll && node.Meta != nil {
		childDx -= node.Meta.ScrollX
		childDy -= node.Meta.ScrollY
	}

	w.b.PushClip(newClip.X, newClip.Y, newClip.W, newClip.H)
	w.walk(child, newClip, childDx, childDy)
	w.b.PopClip()
}

func (w *walker) drawBorder(rect layout.Rect, border vnode.Border) {
	if rect.W <= 0 || rect.H <= 0 {
		return
	}
	glyphs := w.opts.BorderSet.glyphsFor(border.Kind)
	x0, y0 := rect.X, rect.Y
	x1 := rect.X + rect.W - 1

	if border.Top {
		line := borderLine(rect.W, border.Left, border.Right, glyphs.TopLeft, glyphs.TopRight, glyphs.Horizontal)
		w.b.DrawText(x0, y0, line, zrdl.Style{})
	}
	if border.Bottom && rect.H > 1 {
		line := borderLine(rect.W, border.Left, border.Right, glyphs.BottomLeft, glyphs.BottomRight, glyphs.Horizontal)
		w.b.DrawText(x0, rect.Y+rect.H-1, line, zrdl.Style{})
	}

	interiorStart := y0
	if border.Top {
		interiorStart++
	}
	interiorEnd := rect.Y + rect.H - 1
	if border.Bottom {
		interiorEnd--
	}
	for y := interiorStart; y <= interiorEnd; y++ {
		if border.Left {
			w.b.DrawText(x0, y, glyphs.Vertical, zrdl.Style{})
		}
		if border.Right && rect.W > 1 {
			w.b.DrawText(x1, y, glyphs.Vertical, zrdl.Style{})
		}
	}
}

// renderWidget draws a built-in widget's generically-understood
// content: an optional background fill and either a plain string or a
// mixed-style text run, both read from conventional Props keys, plus
// any cursor placement request. splitPane is the one widget kind the
// layout engine gives synthesized children to, which this still walks
// after drawing its own content.
func (w *walker) renderWidget(node *layout.LayoutTree, rect layout.Rect, clip layout.Rect, dx, dy int32) {
	wp := node.VNode.Widget
	if wp == nil || rect.W <= 0 || rect.H <= 0 {
		return
	}
	style, hasStyle := wp.Props["style"].(vnode.Style)
	if hasStyle && style.HasBg {
		w.b.FillRect(rect.X, rect.Y, rect.W, rect.H, wireStyle(style))
	}

	if segs, ok := wp.Props["segments"].([]zrdl.TextSegment); ok && len(segs) > 0 {
		w.b.DrawTextRun(rect.X, rect.Y, segs)
	} else if txt, ok := wp.Props["text"].(string); ok {
		wireSt := zrdl.Style{}
		if hasStyle {
			wireSt = wireStyle(style)
		}
		for i, line := range wrapLines(txt, rect.W) {
			if int32(i) >= rect.H {
				break
			}
			w.b.DrawText(rect.X, rect.Y+int32(i), line, wireSt)
		}
	}

	if cs, ok := wp.Props["cursor"].(CursorSpec); ok {
		w.cursor.request(CursorSpec{X: rect.X + cs.X, Y: rect.Y + cs.Y, Shape: cs.Shape, Visible: cs.Visible, Blink: cs.Blink})
	} else if hide, ok := wp.Props["hideCursor"].(bool); ok && hide {
		w.cursor.hide()
	}

	if wp.Kind == vnode.WidgetSplitPane {
		for _, c := range node.Children {
			w.walk(c, clip, dx, dy)
		}
	}
}

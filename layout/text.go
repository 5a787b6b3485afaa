package layout

import (
	"strings"

	"github.com/rezi-tui/rezi/text"
	"github.com/rezi-tui/rezi/vnode"
)

// measureText wraps content at word boundaries within maxW (when
// maxW is a real, finite constraint) and returns the wrapped block's
// bounding size: width is the widest wrapped row, clamped by maxW;
// height is the row count.
func measureText(n *vnode.Node, maxW, maxH int32) Size {
	if n.Text == nil || n.Text.Content == "" {
		return Size{}
	}
	rows := wrapText(n.Text.Content, maxW)
	var w int32
	for _, row := range rows {
		if rw := int32(text.StringWidth(row)); rw > w {
			w = rw
		}
	}
	h := int32(len(rows))
	return Size{W: boundedMax(w, maxW), H: boundedMax(h, maxH)}
}

// wrapText splits content into rows of at most maxW display cells,
// breaking at runs of whitespace. A single word wider than maxW is not
// split further (it overflows its own row) since grapheme clusters are
// the smallest unit this engine may break. maxW == unconstrained (or
// non-positive) disables wrapping: the whole (possibly multi-line)
// string source is still split on explicit newlines only.
func wrapText(content string, maxW int32) []string {
	var rows []string
	for _, line := range strings.Split(content, "\n") {
		if maxW == unconstrained || maxW <= 0 {
			rows = append(rows, line)
			continue
		}
		rows = append(rows, wrapLine(line, int(maxW))...)
	}
	if len(rows) == 0 {
		rows = []string{""}
	}
	return rows
}

func wrapLine(line string, maxW int) []string {
	words := strings.Fields(line)
	if len(words) == 0 {
		return []string{""}
	}
	var rows []string
	cur := words[0]
	curW := text.StringWidth(cur)
	for _, word := range words[1:] {
		wordW := text.StringWidth(word)
		if curW+1+wordW <= maxW {
			cur += " " + word
			curW += 1 + wordW
		} else {
			rows = append(rows, cur)
			cur = word
			curW = wordW
		}
	}
	rows = append(rows, cur)
	return rows
}

// measureSpacer reports the spacer's configured fixed size along the
// ambient main axis; its cross-axis size is always 0 since a spacer
// contributes no cross-axis content.
func measureSpacer(n *vnode.Node, maxW, maxH int32, axis Axis) Size {
	size := 0
	if n.Spacer != nil {
		size = n.Spacer.Size
	}
	if axis == AxisHorizontal {
		return Size{W: boundedMax(int32(size), maxW), H: 0}
	}
	return Size{W: 0, H: boundedMax(int32(size), maxH)}
}

// measureDivider sizes a divider as a 1-cell-thick line spanning the
// cross axis: a row's divider is a vertical rule (1 wide, full
// height); a column's is a horizontal rule (full width, 1 tall).
func measureDivider(maxW, maxH int32, axis Axis) Size {
	if axis == AxisHorizontal {
		h := maxH
		if h == unconstrained {
			h = 0
		}
		return Size{W: 1, H: clampNonNegative(h)}
	}
	w := maxW
	if w == unconstrained {
		w = 0
	}
	return Size{W: clampNonNegative(w), H: 1}
}

// measureWidget gives a built-in widget leaf no opinion of its own
// beyond filling whatever constraint it is offered; widgets manage
// their own internal content and request concrete bounds through their
// own props (e.g. splitPane's panels), not through generic
// measurement.
func measureWidget(n *vnode.Node, maxW, maxH int32) Size {
	w := maxW
	if w == unconstrained {
		w = 0
	}
	h := maxH
	if h == unconstrained {
		h = 0
	}
	return Size{W: clampNonNegative(w), H: clampNonNegative(h)}
}

package render

import "github.com/rezi-tui/rezi/vnode"

// BorderGlyphs names the eight box-drawing characters a border draws
// with: four edges and four corners.
type BorderGlyphs struct {
	Horizontal, Vertical                       string
	TopLeft, TopRight, BottomLeft, BottomRight string
}

// BorderSet maps each border kind to the glyphs it draws with.
type BorderSet map[vnode.BorderKind]BorderGlyphs

// ASCIIBorders is the default glyph set: plain ASCII box-drawing
// characters that render correctly on any terminal, regardless of the
// backend's font or locale.
var ASCIIBorders = BorderSet{
	vnode.BorderSingle: {Horizontal: "-", Vertical: "|", TopLeft: "+", TopRight: "+", BottomLeft: "+", BottomRight: "+"},
	vnode.BorderDouble:  {Horizontal: "=", Vertical: "|", TopLeft: "+", TopRight: "+", BottomLeft: "+", BottomRight: "+"},
	vnode.BorderRounded: {Horizontal: "-", Vertical: "|", TopLeft: "/", TopRight: "\\", BottomLeft: "\\", BottomRight: "/"},
	vnode.BorderBold:    {Horizontal: "=", Vertical: "|", TopLeft: "#", TopRight: "#", BottomLeft: "#", BottomRight: "#"},
}

// UnicodeBorders draws with box-drawing glyphs. It requires the
// backend's font and rendering path to support them identically to
// this module's assumptions; unlike ASCIIBorders it is not the
// default.
var UnicodeBorders = BorderSet{
	vnode.BorderSingle:  {Horizontal: "─", Vertical: "│", TopLeft: "┌", TopRight: "┐", BottomLeft: "└", BottomRight: "┘"},
	vnode.BorderDouble:  {Horizontal: "═", Vertical: "║", TopLeft: "╔", TopRight: "╗", BottomLeft: "╚", BottomRight: "╝"},
	vnode.BorderRounded: {Horizontal: "─", Vertical: "│", TopLeft: "╭", TopRight: "╮", BottomLeft: "╰", BottomRight: "╯"},
	vnode.BorderBold:    {Horizontal: "━", Vertical: "┃", TopLeft: "┏", TopRight: "┓", BottomLeft: "┗", BottomRight: "┛"},
}

func (s BorderSet) glyphsFor(kind vnode.BorderKind) BorderGlyphs {
	if g, ok := s[kind]; ok {
		return g
	}
	return ASCIIBorders[vnode.BorderSingle]
}

// borderLine builds one w-cell-wide edge string: a corner glyph at
// each end the caller asked for, fill glyph everywhere else. Sizes
// too small to fit both corners keep the left one, matching how a
// 1-wide border degenerates in practice.
func borderLine(w int32, left, right bool, leftGlyph, rightGlyph, fill string) string {
	if w <= 0 {
		return ""
	}
	n := int(w)
	cells := make([]string, 0, n)
	if left {
		cells = append(cells, leftGlyph)
	}
	rightCost := 0
	if right {
		rightCost = 1
	}
	for len(cells) < n-rightCost {
		cells = append(cells, fill)
	}
	if right && len(cells) < n {
		cells = append(cells, rightGlyph)
	}
	for len(cells) < n {
		cells = append(cells, fill)
	}
	if len(cells) > n {
		cells = cells[:n]
	}
	out := ""
	for _, c := range cells {
		out += c
	}
	return out
}

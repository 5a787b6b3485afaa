package render

import (
	"github.com/rezi-tui/rezi/vnode"
	"github.com/rezi-tui/rezi/zrdl"
)

// wireStyle converts a VNode-level style into the resolved zrdl.Style
// its paint commands carry.
func wireStyle(s vnode.Style) zrdl.Style {
	var attrs uint32
	if s.Bold {
		attrs |= uint32(zrdl.StyleBold)
	}
	if s.Italic {
		attrs |= uint32(zrdl.StyleItalic)
	}
	if s.Underline {
		attrs |= uint32(zrdl.StyleUnderline)
	}
	if s.Inverse {
		attrs |= uint32(zrdl.StyleInverse)
	}
	if s.Dim {
		attrs |= uint32(zrdl.StyleDim)
	}
	if s.Strikethrough {
		attrs |= uint32(zrdl.StyleStrikethrough)
	}
	if s.Overline {
		attrs |= uint32(zrdl.StyleOverline)
	}
	if s.Blink {
		attrs |= uint32(zrdl.StyleBlink)
	}
	return zrdl.Style{
		Attrs: attrs,
		FgRGB: s.FgRGB, HasFg: s.HasFg,
		BgRGB: s.BgRGB, HasBg: s.HasBg,
	}
}

package render

import "github.com/rezi-tui/rezi/zrdl"

// CursorSpec is the widget-side cursor placement request, read from a
// KindWidget leaf's Props["cursor"] entry.
type CursorSpec struct {
	X, Y    int32
	Shape   zrdl.CursorShape
	Visible bool
	Blink   bool
}

// cursorCollector resolves the last-writer-wins cursor policy across
// an entire drawlist build: every widget visited during the walk may
// call request or hide, and only the final call's outcome is emitted.
type cursorCollector struct {
	spec   *CursorSpec
	hidden bool
}

func (c *cursorCollector) request(s CursorSpec) {
	spec := s
	c.spec = &spec
	c.hidden = false
}

func (c *cursorCollector) hide() {
	c.spec = nil
	c.hidden = true
}

// apply emits the resolved cursor state onto b, a no-op unless some
// widget in the walk called request or hide.
func (c *cursorCollector) apply(b *zrdl.Builder) {
	if c.spec != nil {
		b.RequestCursor(c.spec.X, c.spec.Y, c.spec.Shape, c.spec.Visible, c.spec.Blink)
		return
	}
	if c.hidden {
		b.HideCursor()
	}
}

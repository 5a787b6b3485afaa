package render

import "github.com/rezi-tui/rezi/layout"

func translateRect(r layout.Rect, dx, dy int32) layout.Rect {
	return layout.Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

func intersects(a, b layout.Rect) bool {
	return a.X < b.X+b.W && a.X+a.W > b.X && a.Y < b.Y+b.H && a.Y+a.H > b.Y
}

func intersectRect(a, b layout.Rect) layout.Rect {
	x0, y0 := max32(a.X, b.X), max32(a.Y, b.Y)
	x1, y1 := min32(a.X+a.W, b.X+b.W), min32(a.Y+a.H, b.Y+b.H)
	w, h := x1-x0, y1-y0
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return layout.Rect{X: x0, Y: y0, W: w, H: h}
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

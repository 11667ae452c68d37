package render

// Rect is a rectangular screen region. X/Y are the top-left corner in
// surface coordinates; Width/Height may be zero for an empty region.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Right returns the x coordinate one past the right edge.
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns the y coordinate one past the bottom edge.
func (r Rect) Bottom() int { return r.Y + r.Height }

// Empty returns true if the rect has no area.
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// Contains returns true if the point (x, y) falls inside the rect.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Row returns the rect covering a single row of this rect, counted from
// the top. Rows outside the rect yield an empty rect.
func (r Rect) Row(n int) Rect {
	if n < 0 || n >= r.Height {
		return Rect{}
	}
	return Rect{X: r.X, Y: r.Y + n, Width: r.Width, Height: 1}
}

// Intersect returns the overlap of two rects, which may be empty.
func (r Rect) Intersect(other Rect) Rect {
	x1 := max(r.X, other.X)
	y1 := max(r.Y, other.Y)
	x2 := min(r.Right(), other.Right())
	y2 := min(r.Bottom(), other.Bottom())
	if x2 <= x1 || y2 <= y1 {
		return Rect{}
	}
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// Inset returns the rect shrunk by n cells on every side.
func (r Rect) Inset(n int) Rect {
	out := Rect{X: r.X + n, Y: r.Y + n, Width: r.Width - 2*n, Height: r.Height - 2*n}
	if out.Width < 0 {
		out.Width = 0
	}
	if out.Height < 0 {
		out.Height = 0
	}
	return out
}

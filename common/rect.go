package common

// Rect is an axis-aligned bounding box in whole pixels.
type Rect struct {
	X, Y int
	W, H int
}

// NewRect returns a rect with its top-left corner at (x, y).
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Intersects reports whether r and other overlap. Rects that only share an
// edge do not intersect.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.W &&
		r.X+r.W > other.X &&
		r.Y < other.Y+other.H &&
		r.Y+r.H > other.Y
}

// ContainsPoint reports whether (x, y) lies inside the half-open rect.
func (r Rect) ContainsPoint(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Translate moves the rect in place.
func (r *Rect) Translate(dx, dy int) {
	r.X += dx
	r.Y += dy
}

// Moved returns a copy of r with its top-left corner at (x, y).
func (r Rect) Moved(x, y int) Rect {
	r.X = x
	r.Y = y
	return r
}

// Shifted returns a copy of r offset by (dx, dy).
func (r Rect) Shifted(dx, dy int) Rect {
	r.X += dx
	r.Y += dy
	return r
}

func (r Rect) Right() int   { return r.X + r.W }
func (r Rect) Bottom() int  { return r.Y + r.H }
func (r Rect) CenterX() int { return r.X + r.W/2 }
func (r Rect) CenterY() int { return r.Y + r.H/2 }

package geom

// Rect is an axis-aligned rectangle given by its four edges.
// It is a plain value type: two rects with the same edges are the same rect.
type Rect struct {
	Top    float64
	Left   float64
	Right  float64
	Bottom float64
}

// NewRect builds a Rect from a top-left corner and a size.
func NewRect(left, top, width, height float64) Rect {
	return Rect{
		Top:    top,
		Left:   left,
		Right:  left + width,
		Bottom: top + height,
	}
}

// ViewportRect returns the rect covering a viewport of the given size,
// anchored at the origin.
func ViewportRect(width, height float64) Rect {
	return Rect{Top: 0, Left: 0, Right: width, Bottom: height}
}

// Width returns the horizontal extent of the rect.
func (r Rect) Width() float64 {
	return r.Right - r.Left
}

// Height returns the vertical extent of the rect.
func (r Rect) Height() float64 {
	return r.Bottom - r.Top
}

// Expand grows the rect outward by d on all four sides. A negative d
// shrinks it instead; the result is not clamped, so a large negative d
// can produce an inverted rect that intersects nothing.
func (r Rect) Expand(d float64) Rect {
	return Rect{
		Top:    r.Top - d,
		Left:   r.Left - d,
		Right:  r.Right + d,
		Bottom: r.Bottom + d,
	}
}

// Intersects reports whether area and rect overlap. The comparison uses
// strict inequalities: rects that merely touch along an edge do not
// intersect.
func Intersects(area, rect Rect) bool {
	return rect.Right > area.Left &&
		rect.Left < area.Right &&
		rect.Bottom > area.Top &&
		rect.Top < area.Bottom
}

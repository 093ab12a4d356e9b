package types

import "math"

// Box represents a normalized bounding box with coordinates in [0,1] range
type Box struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Item is a single box drawn over the scanned image together with its
// user-entered metadata
type Item struct {
	Rect   Box               `json:"rect"`
	Fields map[string]string `json:"fields"`
}

// ProgressFunc receives the number of crops written so far and the total.
// Implementations must be safe for whatever goroutine the caller runs the
// export on.
type ProgressFunc func(done, total int)

// Point is a position in scene or viewport coordinates
type Point struct {
	X float64
	Y float64
}

// Size is the pixel size of a viewport
type Size struct {
	Width  int
	Height int
}

// Rect is an axis-aligned rectangle in scene coordinates
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

// Left returns the x coordinate of the left edge
func (r Rect) Left() float64 { return r.X }

// Top returns the y coordinate of the top edge
func (r Rect) Top() float64 { return r.Y }

// Right returns the x coordinate of the right edge
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y coordinate of the bottom edge
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Center returns the center point of the rectangle
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// IsEmpty reports whether the rectangle has no area
func (r Rect) IsEmpty() bool {
	return r.W <= 0 || r.H <= 0
}

// Contains reports whether p lies inside r, edges included
func (r Rect) Contains(p Point) bool {
	if r.IsEmpty() {
		return false
	}
	return p.X >= r.Left() && p.X <= r.Right() && p.Y >= r.Top() && p.Y <= r.Bottom()
}

// Adjust returns r with dx1 and dy1 added to the left and top edges and
// dx2 and dy2 added to the right and bottom edges
func (r Rect) Adjust(dx1, dy1, dx2, dy2 float64) Rect {
	left, top := r.Left()+dx1, r.Top()+dy1
	right, bottom := r.Right()+dx2, r.Bottom()+dy2
	return Rect{X: left, Y: top, W: right - left, H: bottom - top}
}

// Union returns the smallest rectangle containing both r and o. Empty
// rectangles are ignored.
func (r Rect) Union(o Rect) Rect {
	if r.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return r
	}
	left := math.Min(r.Left(), o.Left())
	top := math.Min(r.Top(), o.Top())
	right := math.Max(r.Right(), o.Right())
	bottom := math.Max(r.Bottom(), o.Bottom())
	return Rect{X: left, Y: top, W: right - left, H: bottom - top}
}

// UniteRects returns the union bounding rectangle of rects
func UniteRects(rects []Rect) Rect {
	var u Rect
	for _, r := range rects {
		u = u.Union(r)
	}
	return u
}

// ToRect converts a normalized box to scene coordinates of an image with
// the given pixel size
func (b Box) ToRect(width, height int) Rect {
	fw, fh := float64(width), float64(height)
	return Rect{X: b.X * fw, Y: b.Y * fh, W: b.W * fw, H: b.H * fh}
}

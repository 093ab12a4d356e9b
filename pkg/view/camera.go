package view

import (
	"math"

	"github.com/menta2k/boxcrop/pkg/types"
)

// DefaultPanStep is the distance in viewport pixels an arrow key scrolls
const DefaultPanStep = 20.0

// Camera is a headless Viewport. It keeps a per-axis scale and the scene
// point shown at the center of the viewport. Scrolling is bounded by the
// scene rect the way scroll bars bound a graphics view: an axis on which the
// whole scene fits is centered, otherwise the visible area stays inside the
// scene.
type Camera struct {
	scene   Scene
	size    types.Size
	sx, sy  float64
	center  types.Point
	cursor  types.Point
	PanStep float64
}

// NewCamera creates a Camera at scale 1 centered on the scene
func NewCamera(scene Scene, size types.Size) *Camera {
	c := &Camera{
		scene:   scene,
		size:    size,
		sx:      1,
		sy:      1,
		center:  scene.SceneRect().Center(),
		PanStep: DefaultPanStep,
	}
	c.clamp()
	return c
}

// ScaleFactor returns the current horizontal and vertical scale
func (c *Camera) ScaleFactor() (float64, float64) {
	return c.sx, c.sy
}

// Center returns the scene point at the center of the viewport
func (c *Camera) Center() types.Point {
	return c.center
}

// Size returns the viewport size in pixels
func (c *Camera) Size() types.Size {
	return c.size
}

// VisibleRect returns the scene area currently shown
func (c *Camera) VisibleRect() types.Rect {
	w, h := c.visibleExtent()
	return types.Rect{X: c.center.X - w/2, Y: c.center.Y - h/2, W: w, H: h}
}

// SetCursor moves the pointer to p in viewport coordinates
func (c *Camera) SetCursor(p types.Point) {
	c.cursor = p
}

// CursorPos implements Viewport
func (c *Camera) CursorPos() types.Point {
	return c.cursor
}

// FitInView implements Viewport
func (c *Camera) FitInView(r types.Rect) {
	if r.IsEmpty() || c.size.Width <= 0 || c.size.Height <= 0 {
		return
	}
	s := math.Min(float64(c.size.Width)/r.W, float64(c.size.Height)/r.H)
	c.sx, c.sy = s, s
	c.center = r.Center()
	c.clamp()
}

// Scale implements Viewport. The scene point at the viewport center stays
// in place.
func (c *Camera) Scale(sx, sy float64) {
	if sx <= 0 || sy <= 0 {
		return
	}
	c.sx *= sx
	c.sy *= sy
	c.clamp()
}

// EnsureVisible implements Viewport
func (c *Camera) EnsureVisible(r types.Rect) {
	w, h := c.visibleExtent()
	c.center.X = scrollAxis(c.center.X, w/2, r.Left(), r.Right())
	c.center.Y = scrollAxis(c.center.Y, h/2, r.Top(), r.Bottom())
	c.clamp()
}

// CenterOn implements Viewport
func (c *Camera) CenterOn(p types.Point) {
	c.center = p
	c.clamp()
}

// MapToScene implements Viewport
func (c *Camera) MapToScene(p types.Point) types.Point {
	return types.Point{
		X: c.center.X + (p.X-float64(c.size.Width)/2)/c.sx,
		Y: c.center.Y + (p.Y-float64(c.size.Height)/2)/c.sy,
	}
}

// Resize implements Viewport
func (c *Camera) Resize(size types.Size) {
	c.size = size
	c.clamp()
}

// KeyPress implements Viewport. Arrow keys scroll by PanStep pixels.
func (c *Camera) KeyPress(ev *KeyEvent) {
	dx, dy := 0.0, 0.0
	switch ev.Key {
	case KeyLeft:
		dx = -c.PanStep
	case KeyRight:
		dx = c.PanStep
	case KeyUp:
		dy = -c.PanStep
	case KeyDown:
		dy = c.PanStep
	default:
		return
	}
	ev.Accept()
	c.center.X += dx / c.sx
	c.center.Y += dy / c.sy
	c.clamp()
}

func (c *Camera) visibleExtent() (float64, float64) {
	return float64(c.size.Width) / c.sx, float64(c.size.Height) / c.sy
}

func (c *Camera) clamp() {
	sr := c.scene.SceneRect()
	w, h := c.visibleExtent()
	c.center.X = clampAxis(c.center.X, w/2, sr.Left(), sr.Right())
	c.center.Y = clampAxis(c.center.Y, h/2, sr.Top(), sr.Bottom())
}

func clampAxis(center, half, lo, hi float64) float64 {
	if 2*half >= hi-lo {
		return (lo + hi) / 2
	}
	return math.Max(lo+half, math.Min(center, hi-half))
}

// scrollAxis moves center the least distance that shows [lo, hi]. A range
// wider than the viewport is aligned to its start.
func scrollAxis(center, half, lo, hi float64) float64 {
	switch {
	case hi-lo > 2*half, lo < center-half:
		return lo + half
	case hi > center+half:
		return hi - half
	}
	return center
}

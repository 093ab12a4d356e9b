package view

import "github.com/menta2k/boxcrop/pkg/types"

// BoxScene is an in-memory Scene of rectangular boxes
type BoxScene struct {
	rect     types.Rect
	boxes    []sceneBox
	watchers []func(types.Rect)
}

type sceneBox struct {
	rect     types.Rect
	selected bool
}

// NewBoxScene creates a scene with the given bounds and boxes
func NewBoxScene(rect types.Rect, boxes ...types.Rect) *BoxScene {
	s := &BoxScene{rect: rect}
	for _, b := range boxes {
		s.AddBox(b)
	}
	return s
}

// SceneFromItems builds a scene covering an image of the given pixel size
// with one box per item
func SceneFromItems(items []types.Item, size types.Size) *BoxScene {
	s := NewBoxScene(types.Rect{W: float64(size.Width), H: float64(size.Height)})
	for _, item := range items {
		s.AddBox(item.Rect.ToRect(size.Width, size.Height))
	}
	return s
}

// AddBox appends a box and returns its index
func (s *BoxScene) AddBox(r types.Rect) int {
	s.boxes = append(s.boxes, sceneBox{rect: r})
	return len(s.boxes) - 1
}

// Len returns the number of boxes
func (s *BoxScene) Len() int {
	return len(s.boxes)
}

// Select adds the boxes at the given indices to the selection. Indices out
// of range are ignored.
func (s *BoxScene) Select(indices ...int) {
	for _, i := range indices {
		if i >= 0 && i < len(s.boxes) {
			s.boxes[i].selected = true
		}
	}
}

// ClearSelection deselects every box
func (s *BoxScene) ClearSelection() {
	for i := range s.boxes {
		s.boxes[i].selected = false
	}
}

// SceneRect returns the scene bounds
func (s *BoxScene) SceneRect() types.Rect {
	return s.rect
}

// SelectedRects returns the rectangles of the selected boxes in box order
func (s *BoxScene) SelectedRects() []types.Rect {
	var rects []types.Rect
	for _, b := range s.boxes {
		if b.selected {
			rects = append(rects, b.rect)
		}
	}
	return rects
}

// SetSceneRect changes the scene bounds and notifies watchers
func (s *BoxScene) SetSceneRect(r types.Rect) {
	s.rect = r
	for _, fn := range s.watchers {
		fn(r)
	}
}

// Watch registers fn to be called whenever the scene bounds change
func (s *BoxScene) Watch(fn func(types.Rect)) {
	s.watchers = append(s.watchers, fn)
}

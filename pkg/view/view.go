// Package view implements the zoomable box selection view.
//
// BoxesView holds no geometry of its own. It drives a Viewport, which owns
// the visible transform, and reads from a Scene, which owns the boxes and
// their selection state. Camera and BoxScene are headless implementations
// of both, used by tests and by callers without a windowing toolkit.
package view

import (
	"github.com/charmbracelet/log"

	"github.com/menta2k/boxcrop/pkg/types"
)

const (
	// DefaultZoomFactor is the magnification applied when entering Zoom1
	DefaultZoomFactor = 4.0
	// DefaultSelectionPadding is the scene-unit margin added on every side
	// of the selection when fitting it
	DefaultSelectionPadding = 20.0
)

// Scene is the set of boxes shown by the view
type Scene interface {
	SceneRect() types.Rect
	SelectedRects() []types.Rect
}

// Viewport is the platform primitive that maps scene coordinates to
// viewport pixels
type Viewport interface {
	// FitInView scales and scrolls so r is fully visible, keeping the
	// aspect ratio
	FitInView(r types.Rect)
	Scale(sx, sy float64)
	// EnsureVisible scrolls the minimum needed to bring r into view
	EnsureVisible(r types.Rect)
	CenterOn(p types.Point)
	MapToScene(p types.Point) types.Point
	// CursorPos returns the pointer position in viewport coordinates
	CursorPos() types.Point
	Resize(size types.Size)
	// KeyPress gives the event to the default navigation handling
	KeyPress(ev *KeyEvent)
}

// Key identifies a keyboard key
type Key int

const (
	KeyUnknown Key = iota
	KeyZ
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
)

// ToggleZoomKey advances the zoom cycle
const ToggleZoomKey = KeyZ

// KeyEvent is a key press delivered to the view
type KeyEvent struct {
	Key      Key
	accepted bool
}

// Accept marks the event as consumed
func (e *KeyEvent) Accept() { e.accepted = true }

// Accepted reports whether a handler consumed the event
func (e *KeyEvent) Accepted() bool { return e.accepted }

// ResizeEvent reports a change of the viewport widget size. Toolkits send
// these for many actions that leave the size unchanged.
type ResizeEvent struct {
	OldSize types.Size
	Size    types.Size
}

// Config holds the zoom parameters of a BoxesView
type Config struct {
	ZoomFactor       float64
	SelectionPadding float64
}

// BoxesView cycles a viewport through the zoom presets
type BoxesView struct {
	scene    Scene
	viewport Viewport
	config   Config
	zoom     ZoomLevel
	logger   *log.Logger
}

// New creates a BoxesView with default configuration
func New(scene Scene, viewport Viewport) *BoxesView {
	return NewWithConfig(scene, viewport, Config{
		ZoomFactor:       DefaultZoomFactor,
		SelectionPadding: DefaultSelectionPadding,
	})
}

// NewWithConfig creates a BoxesView with custom configuration. A zoom factor
// that is not positive or a negative padding falls back to the default.
func NewWithConfig(scene Scene, viewport Viewport, config Config) *BoxesView {
	if config.ZoomFactor <= 0 {
		config.ZoomFactor = DefaultZoomFactor
	}
	if config.SelectionPadding < 0 {
		config.SelectionPadding = DefaultSelectionPadding
	}
	return &BoxesView{
		scene:    scene,
		viewport: viewport,
		config:   config,
		zoom:     FitImage,
		logger:   log.Default(),
	}
}

// SetLogger replaces the logger used for debug output
func (v *BoxesView) SetLogger(logger *log.Logger) {
	if logger != nil {
		v.logger = logger
	}
}

// Zoom returns the current zoom level
func (v *BoxesView) Zoom() ZoomLevel {
	return v.zoom
}

// UpdateSceneRect is called when the scene bounds change
func (v *BoxesView) UpdateSceneRect(rect types.Rect) {
	v.logger.Debug("BoxesView.UpdateSceneRect", "rect", rect, "zoom", v.zoom)
	if v.zoom == FitImage {
		v.viewport.FitInView(v.scene.SceneRect())
	}
}

// ResizeEvent handles a viewport resize
func (v *BoxesView) ResizeEvent(ev ResizeEvent) {
	v.logger.Debug("BoxesView.ResizeEvent", "old", ev.OldSize, "new", ev.Size)
	v.viewport.Resize(ev.Size)
	if ev.OldSize != ev.Size && v.zoom == FitImage {
		v.viewport.FitInView(v.scene.SceneRect())
	}
}

// KeyPressEvent consumes the toggle key and passes every other key to the
// viewport
func (v *BoxesView) KeyPressEvent(ev *KeyEvent) {
	if ev.Key == ToggleZoomKey {
		ev.Accept()
		v.ToggleZoom()
		return
	}
	v.viewport.KeyPress(ev)
}

// ToggleZoom advances to the next zoom level
func (v *BoxesView) ToggleZoom() {
	selected := v.scene.SelectedRects()
	factor := v.config.ZoomFactor

	switch {
	case v.zoom == FitImage:
		v.zoom = Zoom1
		if len(selected) > 0 {
			v.viewport.Scale(factor, factor)
			v.viewport.EnsureVisible(types.UniteRects(selected))
		} else {
			// Mapped before scaling, the point under the pointer moves with the transform
			p := v.viewport.MapToScene(v.viewport.CursorPos())
			v.viewport.Scale(factor, factor)
			if v.scene.SceneRect().Contains(p) {
				v.viewport.CenterOn(p)
			}
		}
	case v.zoom == Zoom1 && len(selected) > 0:
		v.zoom = FitSelection
		pad := v.config.SelectionPadding
		r := types.UniteRects(selected).Adjust(-pad, -pad, pad, pad)
		v.viewport.FitInView(r)
	default:
		v.zoom = FitImage
		v.viewport.FitInView(v.scene.SceneRect())
	}

	v.logger.Debug("BoxesView.ToggleZoom", "zoom", v.zoom, "selected", len(selected))
}

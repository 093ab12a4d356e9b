package view

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/menta2k/boxcrop/pkg/types"
)

func TestCameraFitInViewKeepsAspectRatio(t *testing.T) {
	scene := NewBoxScene(types.Rect{W: 1000, H: 500})
	cam := NewCamera(scene, types.Size{Width: 400, Height: 400})

	cam.FitInView(scene.SceneRect())

	sx, sy := cam.ScaleFactor()
	assert.InDelta(t, 0.4, sx, 1e-9)
	assert.Equal(t, sx, sy)
	assert.Equal(t, types.Point{X: 500, Y: 250}, cam.Center())
}

func TestCameraFitInViewIgnoresEmptyRect(t *testing.T) {
	scene := NewBoxScene(types.Rect{W: 100, H: 100})
	cam := NewCamera(scene, types.Size{Width: 100, Height: 100})

	cam.FitInView(types.Rect{X: 10, Y: 10})

	sx, _ := cam.ScaleFactor()
	assert.Equal(t, 1.0, sx)
}

func TestCameraClampsToScene(t *testing.T) {
	scene := NewBoxScene(types.Rect{W: 1000, H: 800})
	cam := NewCamera(scene, types.Size{Width: 100, Height: 100})

	cam.CenterOn(types.Point{X: -500, Y: 5000})

	assert.Equal(t, types.Point{X: 50, Y: 750}, cam.Center())
}

func TestCameraMapToScene(t *testing.T) {
	scene := NewBoxScene(types.Rect{W: 1000, H: 800})
	cam := NewCamera(scene, types.Size{Width: 200, Height: 100})
	cam.Scale(2, 2)
	cam.CenterOn(types.Point{X: 300, Y: 300})

	got := cam.MapToScene(types.Point{X: 0, Y: 100})

	assert.Equal(t, types.Point{X: 250, Y: 325}, got)
}

func TestCameraEnsureVisible(t *testing.T) {
	tests := []struct {
		name string
		rect types.Rect
		want types.Point
	}{
		{"already visible", types.Rect{X: 480, Y: 380, W: 20, H: 20}, types.Point{X: 500, Y: 400}},
		{"left of view", types.Rect{X: 100, Y: 390, W: 10, H: 10}, types.Point{X: 150, Y: 400}},
		{"below view", types.Rect{X: 500, Y: 600, W: 10, H: 20}, types.Point{X: 500, Y: 570}},
		{"wider than view", types.Rect{X: 200, Y: 400, W: 300, H: 10}, types.Point{X: 250, Y: 400}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scene := NewBoxScene(types.Rect{W: 1000, H: 800})
			cam := NewCamera(scene, types.Size{Width: 100, Height: 100})
			cam.CenterOn(types.Point{X: 500, Y: 400})

			cam.EnsureVisible(tt.rect)

			assert.Equal(t, tt.want, cam.Center())
		})
	}
}

func TestCameraKeyPressPans(t *testing.T) {
	scene := NewBoxScene(types.Rect{W: 1000, H: 800})
	cam := NewCamera(scene, types.Size{Width: 100, Height: 100})
	cam.Scale(2, 2)
	cam.CenterOn(types.Point{X: 500, Y: 400})

	right := &KeyEvent{Key: KeyRight}
	cam.KeyPress(right)
	assert.True(t, right.Accepted())
	assert.Equal(t, types.Point{X: 510, Y: 400}, cam.Center())

	other := &KeyEvent{Key: KeyUnknown}
	cam.KeyPress(other)
	assert.False(t, other.Accepted())
	assert.Equal(t, types.Point{X: 510, Y: 400}, cam.Center())
}

func TestSceneFromItems(t *testing.T) {
	items := []types.Item{
		{Rect: types.Box{X: 0.1, Y: 0.1, W: 0.2, H: 0.2}},
		{Rect: types.Box{X: 0.5, Y: 0.5, W: 0.5, H: 0.5}},
	}
	scene := SceneFromItems(items, types.Size{Width: 1000, Height: 500})

	assert.Equal(t, 2, scene.Len())
	assert.Equal(t, types.Rect{W: 1000, H: 500}, scene.SceneRect())
	assert.Empty(t, scene.SelectedRects())

	scene.Select(1, 7)
	assert.Equal(t, []types.Rect{{X: 500, Y: 250, W: 500, H: 250}}, scene.SelectedRects())

	scene.ClearSelection()
	assert.Empty(t, scene.SelectedRects())
}

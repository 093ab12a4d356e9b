package document

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/menta2k/boxcrop/pkg/types"
)

// createTestImage creates a simple test image
func createTestImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{uint8(x), uint8(y), 128, 255})
		}
	}
	return img
}

func writeScan(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "sheet.png")
	require.NoError(t, imaging.Save(createTestImage(200, 100), path))
	return path
}

const sampleDocument = `{
  "inselect version": 4,
  "scanned extension": ".png",
  "items": [
    {"rect": [0.0, 0.0, 0.5, 0.5], "fields": {"catalogNumber": "A1", "Notes": "torn"}},
    {"rect": [0.5, 0.5, 0.25, 0.5], "fields": {"catalogNumber": "A2", "Z": "x"}},
    {"rect": [0.1, 0.1, 0.1, 0.1]}
  ]
}`

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sheet.inselect")
	require.NoError(t, os.WriteFile(path, []byte(sampleDocument), 0o644))

	doc, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3, doc.NItems())
	assert.Equal(t, path, doc.DocumentPath())
	assert.Equal(t, filepath.Join(dir, "sheet.png"), doc.ScannedPath())
	assert.Equal(t, filepath.Join(dir, "sheet_crops"), doc.CropsDir())
	assert.Equal(t, types.Box{X: 0.5, Y: 0.5, W: 0.25, H: 0.5}, doc.Items()[1].Rect)
	assert.NotNil(t, doc.Items()[2].Fields)
	assert.Equal(t, []string{"Notes", "Z", "catalogNumber"}, doc.MetadataFields())
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.inselect"))
	assert.ErrorContains(t, err, "failed to read document")

	bad := filepath.Join(dir, "bad.inselect")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o644))
	_, err = Load(bad)
	assert.ErrorContains(t, err, "failed to parse document")

	noExt := filepath.Join(dir, "noext.inselect")
	require.NoError(t, os.WriteFile(noExt, []byte(`{"items": []}`), 0o644))
	_, err = Load(noExt)
	assert.ErrorContains(t, err, "missing scanned extension")
}

func TestSaveCropsFromImage(t *testing.T) {
	dir := t.TempDir()
	scan := writeScan(t, dir)
	doc := New(filepath.Join(dir, "sheet.inselect"), scan, []types.Item{
		{Rect: types.Box{X: 0, Y: 0, W: 0.5, H: 0.5}},
		{Rect: types.Box{X: 0.5, Y: 0.5, W: 0.25, H: 0.5}},
	})

	targets := []string{filepath.Join(dir, "0001.png"), filepath.Join(dir, "0002.jpg")}
	var calls [][2]int
	err := doc.SaveCropsFromImage(slices.Values(targets), func(done, total int) {
		calls = append(calls, [2]int{done, total})
	})
	require.NoError(t, err)
	assert.Equal(t, [][2]int{{1, 2}, {2, 2}}, calls)

	first, err := imaging.Open(targets[0])
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 100, 50), first.Bounds())

	second, err := imaging.Open(targets[1])
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 50, 50), second.Bounds())
}

func TestSaveCropsTargetMismatch(t *testing.T) {
	dir := t.TempDir()
	scanned := &ScannedImage{Path: writeScan(t, dir)}
	boxes := []types.Box{{W: 0.5, H: 0.5}, {X: 0.5, W: 0.5, H: 0.5}}

	err := scanned.SaveCrops(boxes, slices.Values([]string{filepath.Join(dir, "a.png")}), DefaultCropOptions(), nil)
	assert.ErrorContains(t, err, "got 1 crop targets for 2 boxes")

	three := []string{filepath.Join(dir, "a.png"), filepath.Join(dir, "b.png"), filepath.Join(dir, "c.png")}
	err = scanned.SaveCrops(boxes, slices.Values(three), DefaultCropOptions(), nil)
	assert.ErrorContains(t, err, "more crop targets than boxes")
}

func TestSaveCropsMissingImage(t *testing.T) {
	scanned := &ScannedImage{Path: filepath.Join(t.TempDir(), "missing.png")}
	err := scanned.SaveCrops(nil, slices.Values([]string{}), DefaultCropOptions(), nil)
	assert.Error(t, err)
}

func TestCropToBox(t *testing.T) {
	img := createTestImage(200, 100)

	cropped, err := CropToBox(img, types.Box{X: 0.9, Y: 0.9, W: 0.5, H: 0.5})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 20, 10), cropped.Bounds(), "clamped to the image")

	_, err = CropToBox(img, types.Box{X: 0.5, Y: 0.5})
	assert.ErrorContains(t, err, "empty crop rectangle")
}

func TestScannedImageSize(t *testing.T) {
	scanned := &ScannedImage{Path: writeScan(t, t.TempDir())}
	size, err := scanned.Size()
	require.NoError(t, err)
	assert.Equal(t, types.Size{Width: 200, Height: 100}, size)
}

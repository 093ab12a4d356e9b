package document

import (
	"fmt"
	"image"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"github.com/menta2k/boxcrop/pkg/types"
)

// CropOptions controls how crops are encoded
type CropOptions struct {
	Quality  int
	Lossless bool
}

// DefaultCropOptions returns the options used unless SetCropOptions is called
func DefaultCropOptions() CropOptions {
	return CropOptions{Quality: 90}
}

// ScannedImage is the full-resolution scan boxes are drawn over. The image
// is decoded on first use.
type ScannedImage struct {
	Path string
	img  image.Image
}

// Image returns the decoded image
func (s *ScannedImage) Image() (image.Image, error) {
	if s.img != nil {
		return s.img, nil
	}
	img, err := loadImage(s.Path)
	if err != nil {
		return nil, err
	}
	s.img = img
	return img, nil
}

// Size returns the pixel size of the image
func (s *ScannedImage) Size() (types.Size, error) {
	img, err := s.Image()
	if err != nil {
		return types.Size{}, err
	}
	b := img.Bounds()
	return types.Size{Width: b.Dx(), Height: b.Dy()}, nil
}

// SaveCrops crops boxes[i] to the i-th path of targets. The number of
// targets must match the number of boxes. progress may be nil.
func (s *ScannedImage) SaveCrops(boxes []types.Box, targets iter.Seq[string], opts CropOptions, progress types.ProgressFunc) error {
	img, err := s.Image()
	if err != nil {
		return err
	}

	total := len(boxes)
	done := 0
	for path := range targets {
		if done >= total {
			return fmt.Errorf("more crop targets than boxes (%d)", total)
		}
		cropped, err := CropToBox(img, boxes[done])
		if err != nil {
			return fmt.Errorf("box %d: %w", done+1, err)
		}
		if err := SaveImage(cropped, path, opts); err != nil {
			return fmt.Errorf("failed to save crop %s: %w", path, err)
		}
		done++
		if progress != nil {
			progress(done, total)
		}
	}
	if done != total {
		return fmt.Errorf("got %d crop targets for %d boxes", done, total)
	}
	return nil
}

// CropToBox crops an image to the specified normalized box
func CropToBox(img image.Image, box types.Box) (image.Image, error) {
	bounds := img.Bounds()
	fw, fh := float64(bounds.Dx()), float64(bounds.Dy())

	x0 := bounds.Min.X + int(clamp(box.X, 0, 1)*fw+0.5)
	y0 := bounds.Min.Y + int(clamp(box.Y, 0, 1)*fh+0.5)
	x1 := bounds.Min.X + int(clamp(box.X+box.W, 0, 1)*fw+0.5)
	y1 := bounds.Min.Y + int(clamp(box.Y+box.H, 0, 1)*fh+0.5)

	rect := image.Rect(x0, y0, x1, y1).Intersect(bounds)
	if rect.Empty() {
		return nil, fmt.Errorf("empty crop rectangle")
	}
	return imaging.Crop(img, rect), nil
}

// SaveImage saves an image in the format given by the extension of path
func SaveImage(img image.Image, path string, opts CropOptions) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".webp":
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := webp.Encode(f, img, &webp.Options{Lossless: opts.Lossless, Quality: float32(opts.Quality)}); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	case ".jpg", ".jpeg":
		return imaging.Save(img, path, imaging.JPEGQuality(opts.Quality))
	default:
		return imaging.Save(img, path)
	}
}

// loadImage opens an image through the registered decoders, falling back
// to an explicit WebP decode
func loadImage(path string) (image.Image, error) {
	if img, err := imaging.Open(path); err == nil {
		return img, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scanned image: %w", err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".webp") {
		if img, err := webp.Decode(f); err == nil {
			return img, nil
		}
	}
	return nil, fmt.Errorf("image: unknown format for %s", path)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

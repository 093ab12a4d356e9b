// Package document holds the boxes drawn over one scanned specimen image
// and writes the crops they describe.
package document

import (
	"encoding/json"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/menta2k/boxcrop/pkg/types"
)

// Document is an ordered list of boxes over a scanned image
type Document struct {
	path     string
	scanned  *ScannedImage
	items    []types.Item
	cropsDir string
	options  CropOptions
	logger   *log.Logger
}

// New creates a document stored at path over the image at scannedPath
func New(path, scannedPath string, items []types.Item) *Document {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return &Document{
		path:     path,
		scanned:  &ScannedImage{Path: scannedPath},
		items:    items,
		cropsDir: filepath.Join(filepath.Dir(path), stem+"_crops"),
		options:  DefaultCropOptions(),
		logger:   log.Default(),
	}
}

// file is the on-disk layout read by Load
type file struct {
	ScannedExtension string `json:"scanned extension"`
	Items            []struct {
		Rect   [4]float64        `json:"rect"`
		Fields map[string]string `json:"fields"`
	} `json:"items"`
}

// Load reads a document from a JSON file. The scanned image sits next to
// the document with the same stem.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	var f file
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse document %s: %w", path, err)
	}
	if f.ScannedExtension == "" {
		return nil, fmt.Errorf("document %s: missing scanned extension", path)
	}

	items := make([]types.Item, 0, len(f.Items))
	for _, it := range f.Items {
		fields := it.Fields
		if fields == nil {
			fields = map[string]string{}
		}
		items = append(items, types.Item{
			Rect:   types.Box{X: it.Rect[0], Y: it.Rect[1], W: it.Rect[2], H: it.Rect[3]},
			Fields: fields,
		})
	}

	scanned := strings.TrimSuffix(path, filepath.Ext(path)) + f.ScannedExtension
	return New(path, scanned, items), nil
}

// SetCropOptions sets the encoder options used when writing crops
func (d *Document) SetCropOptions(opts CropOptions) {
	d.options = opts
}

// SetLogger replaces the logger used for debug output
func (d *Document) SetLogger(logger *log.Logger) {
	if logger != nil {
		d.logger = logger
	}
}

// Items returns the boxes in document order
func (d *Document) Items() []types.Item {
	return d.items
}

// NItems returns the number of boxes
func (d *Document) NItems() int {
	return len(d.items)
}

// Scanned returns the scanned image
func (d *Document) Scanned() *ScannedImage {
	return d.scanned
}

// ScannedPath returns the path of the scanned image
func (d *Document) ScannedPath() string {
	return d.scanned.Path
}

// CropsDir returns the directory crops are exported to
func (d *Document) CropsDir() string {
	return d.cropsDir
}

// DocumentPath returns the path of the document file
func (d *Document) DocumentPath() string {
	return d.path
}

// MetadataFields returns the sorted names of every field set on any box
func (d *Document) MetadataFields() []string {
	seen := make(map[string]bool)
	var names []string
	for _, item := range d.items {
		for name := range item.Fields {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	slices.Sort(names)
	return names
}

// SaveCropsFromImage writes one crop of the scanned image per box to the
// paths yielded by targets, in box order
func (d *Document) SaveCropsFromImage(targets iter.Seq[string], progress types.ProgressFunc) error {
	boxes := make([]types.Box, len(d.items))
	for i, item := range d.items {
		boxes[i] = item.Rect
	}
	d.logger.Debug("Saving crops", "scanned", d.scanned.Path, "boxes", len(boxes))
	return d.scanned.SaveCrops(boxes, targets, d.options, progress)
}

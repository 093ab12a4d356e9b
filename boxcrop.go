// Package boxcrop provides box selection and crop export for specimen image
// digitization.
//
// A document is a list of boxes drawn over one scanned image, each carrying
// user-entered metadata. The export writes one cropped image per box and a
// CSV file with one metadata row per crop, both named by a metadata
// template.
//
// Basic usage:
//
//	package main
//
//	import (
//		"log"
//
//		"github.com/menta2k/boxcrop"
//		"github.com/menta2k/boxcrop/pkg/document"
//		"github.com/menta2k/boxcrop/pkg/template"
//	)
//
//	func main() {
//		doc, err := document.Load("sheet.inselect")
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		exporter, err := boxcrop.New(template.Default())
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		result, err := exporter.Export(doc, nil)
//		if err != nil {
//			log.Fatal(err)
//		}
//		log.Printf("crops in %s, metadata in %s", result.CropsDir, result.CSVPath)
//	}
//
// The package consists of these components:
//
//  1. View (pkg/view): zoom cycling over a scene of selectable boxes
//  2. Export (pkg/export): crop directory and CSV sidecar writing
//  3. Document (pkg/document): boxes over a scanned image and crop encoding
//  4. Template (pkg/template) and Validate (pkg/validate): naming and checks
package boxcrop

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/menta2k/boxcrop/pkg/document"
	"github.com/menta2k/boxcrop/pkg/export"
	"github.com/menta2k/boxcrop/pkg/template"
	"github.com/menta2k/boxcrop/pkg/types"
	"github.com/menta2k/boxcrop/pkg/validate"
	"github.com/menta2k/boxcrop/pkg/view"
)

// Version of the boxcrop library
const Version = "1.0.0"

// ErrInvalidDocument is returned by Export when validation finds problems
var ErrInvalidDocument = errors.New("document failed validation")

// Exporter validates a document and exports its crops and metadata
type Exporter struct {
	export *export.DocumentExport
	logger *log.Logger
}

// Result describes the artifacts written by Export
type Result struct {
	CropsDir string
	CSVPath  string
	Problems []validate.Problem
}

// New creates an Exporter for tmpl
func New(tmpl template.Template, opts ...export.Option) (*Exporter, error) {
	e, err := export.New(tmpl, opts...)
	if err != nil {
		return nil, err
	}
	return &Exporter{export: e, logger: log.Default()}, nil
}

// SetLogger replaces the logger used for progress output
func (x *Exporter) SetLogger(logger *log.Logger) {
	if logger != nil {
		x.logger = logger
	}
}

// DocumentExport returns the underlying export
func (x *Exporter) DocumentExport() *export.DocumentExport {
	return x.export
}

// Export validates doc and, when it has no problems, saves its crops and
// writes the CSV next to the document. The problems are returned in Result
// together with ErrInvalidDocument otherwise.
func (x *Exporter) Export(doc export.Document, progress types.ProgressFunc) (Result, error) {
	problems := x.export.ValidationProblems(doc)
	if len(problems) > 0 {
		return Result{Problems: problems}, fmt.Errorf("%w: %d problems", ErrInvalidDocument, len(problems))
	}

	cropsDir, err := x.export.SaveCrops(doc, progress)
	if err != nil {
		return Result{}, fmt.Errorf("failed to save crops: %w", err)
	}
	x.logger.Info("Saved crops", "dir", cropsDir)

	csvPath, err := x.export.ExportCSV(doc, "")
	if err != nil {
		return Result{CropsDir: cropsDir}, fmt.Errorf("failed to export CSV: %w", err)
	}
	x.logger.Info("Exported metadata", "path", csvPath)

	return Result{CropsDir: cropsDir, CSVPath: csvPath}, nil
}

// NewView builds a BoxesView over the boxes of doc, sized to its scanned
// image and shown in a viewport of the given size
func NewView(doc *document.Document, size types.Size, config view.Config) (*view.BoxesView, *view.BoxScene, *view.Camera, error) {
	imgSize, err := doc.Scanned().Size()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to read scanned image: %w", err)
	}

	scene := view.SceneFromItems(doc.Items(), imgSize)
	cam := view.NewCamera(scene, size)
	v := view.NewWithConfig(scene, cam, config)
	scene.Watch(v.UpdateSceneRect)
	v.UpdateSceneRect(scene.SceneRect())

	return v, scene, cam, nil
}

// GetVersion returns the library version
func GetVersion() string {
	return Version
}

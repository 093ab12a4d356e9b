// Package export writes the crops of a document and its CSV metadata
// sidecar.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/menta2k/boxcrop/pkg/template"
	"github.com/menta2k/boxcrop/pkg/types"
	"github.com/menta2k/boxcrop/pkg/validate"
)

// CropNameColumn is the first CSV column
const CropNameColumn = "Cropped_image_name"

// ErrMissingTemplate is returned by New when no template is given
var ErrMissingTemplate = errors.New("missing metadata template")

// Document is what the export reads from a document
type Document interface {
	Items() []types.Item
	ScannedPath() string
	CropsDir() string
	DocumentPath() string
	MetadataFields() []string
	SaveCropsFromImage(targets iter.Seq[string], progress types.ProgressFunc) error
}

// DocumentExport exports documents using one metadata template. It holds
// no per-document state.
type DocumentExport struct {
	template  template.Template
	validator validate.Func
	logger    *log.Logger
}

// Option configures a DocumentExport
type Option func(*DocumentExport)

// WithLogger sets the logger used for debug output
func WithLogger(logger *log.Logger) Option {
	return func(e *DocumentExport) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithValidator replaces validate.Document
func WithValidator(fn validate.Func) Option {
	return func(e *DocumentExport) {
		if fn != nil {
			e.validator = fn
		}
	}
}

// New creates a DocumentExport for tmpl
func New(tmpl template.Template, opts ...Option) (*DocumentExport, error) {
	if tmpl == nil {
		return nil, fmt.Errorf("invalid argument: %w", ErrMissingTemplate)
	}
	e := &DocumentExport{
		template:  tmpl,
		validator: validate.Document,
		logger:    log.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Template returns the metadata template
func (e *DocumentExport) Template() template.Template {
	return e.template
}

// CropFnames yields the crop filename of every item in document order.
// Labels are used as they are: an empty label still yields a filename
// consisting of the suffix alone.
func (e *DocumentExport) CropFnames(doc Document) iter.Seq[string] {
	return func(yield func(string) bool) {
		suffix := e.template.CroppedFileSuffix()
		for i, item := range doc.Items() {
			if !yield(e.template.FormatLabel(i+1, item.Fields) + suffix) {
				return
			}
		}
	}
}

// SaveCrops writes the crops of doc to a temporary directory next to the
// scanned image and then renames it to the crops directory, replacing any
// previous crops. The temporary directory never outlives the call. progress
// may be nil.
func (e *DocumentExport) SaveCrops(doc Document, progress types.ProgressFunc) (dir string, err error) {
	scanned := doc.ScannedPath()
	stem := strings.TrimSuffix(filepath.Base(scanned), filepath.Ext(scanned))

	tempdir, err := os.MkdirTemp(filepath.Dir(scanned), stem+"_temp_crops")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary crops directory: %w", err)
	}
	e.logger.Debug("Saving crops to temp dir", "dir", tempdir)

	renamed := false
	defer func() {
		if renamed {
			return
		}
		if rmErr := os.RemoveAll(tempdir); rmErr != nil {
			err = errors.Join(err, fmt.Errorf("failed to remove temporary crops directory: %w", rmErr))
		}
	}()

	targets := func(yield func(string) bool) {
		for fname := range e.CropFnames(doc) {
			if !yield(filepath.Join(tempdir, fname)) {
				return
			}
		}
	}
	if err := doc.SaveCropsFromImage(targets, progress); err != nil {
		return "", err
	}

	cropsDir, err := filepath.Abs(doc.CropsDir())
	if err != nil {
		return "", err
	}
	// RemoveAll is nil when the directory does not exist
	if err := os.RemoveAll(cropsDir); err != nil {
		return "", fmt.Errorf("failed to remove existing crops directory: %w", err)
	}

	e.logger.Debug("Moving temp crops dir", "from", tempdir, "to", cropsDir)
	if err := os.Rename(tempdir, cropsDir); err != nil {
		return "", fmt.Errorf("failed to move crops into place: %w", err)
	}
	renamed = true

	e.logger.Debug("Saved crops", "count", len(doc.Items()), "dir", cropsDir)
	return cropsDir, nil
}

// CSVPath returns the default CSV path: the document path with a .csv
// extension
func (e *DocumentExport) CSVPath(doc Document) string {
	p := doc.DocumentPath()
	return strings.TrimSuffix(p, filepath.Ext(p)) + ".csv"
}

// Columns returns the template fields followed by the sorted fields that
// are present in doc but not in the template
func (e *DocumentExport) Columns(doc Document) []string {
	fields := slices.Clone(e.template.FieldNames())
	var extra []string
	for _, f := range doc.MetadataFields() {
		if !slices.Contains(fields, f) && !slices.Contains(extra, f) {
			extra = append(extra, f)
		}
	}
	slices.Sort(extra)
	return append(fields, extra...)
}

// ExportCSV writes the metadata of every item to path, or to CSVPath when
// path is empty, and returns the path written. The file is UTF-8 encoded.
func (e *DocumentExport) ExportCSV(doc Document, path string) (written string, err error) {
	if path == "" {
		path = e.CSVPath(doc)
	}
	e.logger.Debug("DocumentExport.ExportCSV", "path", path)

	fields := e.Columns(doc)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			written, err = "", fmt.Errorf("failed to close CSV file: %w", cerr)
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write(append([]string{CropNameColumn}, fields...)); err != nil {
		return "", fmt.Errorf("failed to write CSV header: %w", err)
	}

	items := doc.Items()
	index := 0
	row := make([]string, len(fields)+1)
	for fname := range e.CropFnames(doc) {
		md := e.template.Metadata(index+1, items[index].Fields)
		row[0] = fname
		for i, field := range fields {
			row[i+1] = md[field]
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("failed to write CSV row %d: %w", index+1, err)
		}
		index++
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to write CSV file: %w", err)
	}
	return path, nil
}

// ValidationProblems validates doc against the template and returns every
// problem found
func (e *DocumentExport) ValidationProblems(doc Document) []validate.Problem {
	return e.validator(doc, e.template)
}

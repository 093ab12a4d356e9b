// Package template defines the metadata template consumed by the export and
// a minimal YAML-backed implementation of it.
package template

import (
	"fmt"
	"maps"
	"os"

	"github.com/goccy/go-yaml"
)

// Template names crops and fills metadata records
type Template interface {
	// FormatLabel returns the base filename of the crop at the 1-based index
	FormatLabel(index int, fields map[string]string) string
	// CroppedFileSuffix is appended to every crop filename
	CroppedFileSuffix() string
	// FieldNames returns the canonical ordered CSV columns
	FieldNames() []string
	// Metadata returns the filled-in record of the item at the 1-based index
	Metadata(index int, fields map[string]string) map[string]string
}

// MandatoryFielder is implemented by templates that require some fields to
// be filled in
type MandatoryFielder interface {
	MandatoryFields() []string
}

// Field is one column declared by a Simple template
type Field struct {
	Name      string `yaml:"name"`
	Mandatory bool   `yaml:"mandatory"`
}

// Simple is a template without a label language. The label is the value of
// LabelField when that is set and non-empty, otherwise the zero-padded item
// number.
type Simple struct {
	Name       string  `yaml:"name"`
	Suffix     string  `yaml:"cropped_file_suffix"`
	LabelField string  `yaml:"label_field"`
	Fields     []Field `yaml:"fields"`
}

// Default returns the built-in template
func Default() *Simple {
	return &Simple{
		Name:   "Default",
		Suffix: ".jpg",
		Fields: []Field{
			{Name: "catalogNumber", Mandatory: true},
			{Name: "scientificName"},
			{Name: "recordedBy"},
			{Name: "Notes"},
		},
	}
}

// LoadFromFile loads a template from a YAML file
func LoadFromFile(filename string) (*Simple, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read template file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML template
func Parse(data []byte) (*Simple, error) {
	var t Simple
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Validate checks if the template is usable
func (t *Simple) Validate() error {
	if len(t.Fields) == 0 {
		return fmt.Errorf("template %q has no fields", t.Name)
	}
	if t.Suffix == "" {
		return fmt.Errorf("template %q: cropped_file_suffix cannot be empty", t.Name)
	}
	seen := make(map[string]bool, len(t.Fields))
	for _, f := range t.Fields {
		if f.Name == "" {
			return fmt.Errorf("template %q: field with empty name", t.Name)
		}
		if seen[f.Name] {
			return fmt.Errorf("template %q: duplicate field %q", t.Name, f.Name)
		}
		seen[f.Name] = true
	}
	return nil
}

// FormatLabel implements Template
func (t *Simple) FormatLabel(index int, fields map[string]string) string {
	if t.LabelField != "" {
		if v := fields[t.LabelField]; v != "" {
			return v
		}
	}
	return fmt.Sprintf("%04d", index)
}

// CroppedFileSuffix implements Template
func (t *Simple) CroppedFileSuffix() string {
	return t.Suffix
}

// FieldNames implements Template
func (t *Simple) FieldNames() []string {
	names := make([]string, 0, len(t.Fields))
	for _, f := range t.Fields {
		names = append(names, f.Name)
	}
	return names
}

// Metadata implements Template. The record is a copy of the item fields.
func (t *Simple) Metadata(index int, fields map[string]string) map[string]string {
	md := make(map[string]string, len(fields))
	maps.Copy(md, fields)
	return md
}

// MandatoryFields implements MandatoryFielder
func (t *Simple) MandatoryFields() []string {
	var names []string
	for _, f := range t.Fields {
		if f.Mandatory {
			names = append(names, f.Name)
		}
	}
	return names
}

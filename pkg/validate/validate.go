// Package validate reports problems that would make an export unusable.
package validate

import (
	"fmt"

	"github.com/menta2k/boxcrop/pkg/template"
	"github.com/menta2k/boxcrop/pkg/types"
)

// ItemSource is the part of a document the validator reads
type ItemSource interface {
	Items() []types.Item
}

// Func validates a document against a template
type Func func(doc ItemSource, tmpl template.Template) []Problem

// Problem describes one validation failure. Index is the 1-based item
// number.
type Problem struct {
	Index   int
	Field   string
	Message string
}

func (p Problem) String() string {
	if p.Field != "" {
		return fmt.Sprintf("box %d: %s: %s", p.Index, p.Field, p.Message)
	}
	return fmt.Sprintf("box %d: %s", p.Index, p.Message)
}

// Document checks every item for missing mandatory fields, empty labels and
// labels shared with another item
func Document(doc ItemSource, tmpl template.Template) []Problem {
	var mandatory []string
	if mf, ok := tmpl.(template.MandatoryFielder); ok {
		mandatory = mf.MandatoryFields()
	}

	var problems []Problem
	firstByLabel := make(map[string]int)

	for i, item := range doc.Items() {
		index := i + 1
		for _, name := range mandatory {
			if item.Fields[name] == "" {
				problems = append(problems, Problem{Index: index, Field: name, Message: "missing mandatory field"})
			}
		}

		label := tmpl.FormatLabel(index, item.Fields)
		if label == "" {
			problems = append(problems, Problem{Index: index, Message: "empty label"})
			continue
		}
		if first, seen := firstByLabel[label]; seen {
			problems = append(problems, Problem{
				Index:   index,
				Message: fmt.Sprintf("label %q duplicates box %d", label, first),
			})
			continue
		}
		firstByLabel[label] = index
	}

	return problems
}

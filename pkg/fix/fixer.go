package fix

import (
	"github.com/yaklabco/docscan/pkg/check"
	"github.com/yaklabco/docscan/pkg/document"
)

// Result is the outcome of fixing one document.
type Result struct {
	// Document is the fixed document. It is the input document when nothing changed.
	Document *document.Document

	// Changed reports whether any line was rewritten.
	Changed bool

	// Fixes lists the rewritten lines, as they read before the fix.
	Fixes []check.Violation
}

// Fixer applies an ordered list of transforms to every line of a document.
type Fixer struct {
	transforms []Transform
}

// NewFixer creates a fixer. With no transforms it uses DefaultHeaderTransform.
func NewFixer(transforms ...Transform) *Fixer {
	if len(transforms) == 0 {
		transforms = []Transform{DefaultHeaderTransform()}
	}
	return &Fixer{transforms: transforms}
}

// Transforms returns the transforms in application order.
func (f *Fixer) Transforms() []Transform {
	out := make([]Transform, len(f.transforms))
	copy(out, f.transforms)
	return out
}

// Fix returns the fixed document. The input is never modified.
func (f *Fixer) Fix(doc *document.Document) Result {
	result := Result{Document: doc}

	for index, line := range doc.Lines {
		current := line
		for _, transform := range f.transforms {
			violation, fixed, ok := transform.Apply(current, index)
			if !ok {
				continue
			}
			result.Fixes = append(result.Fixes, violation)
			current = fixed
		}

		if current != line {
			result.Document = result.Document.WithLine(index, current)
			result.Changed = true
		}
	}

	return result
}

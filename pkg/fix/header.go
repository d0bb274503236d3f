// Package fix provides the line transforms of the docscan fixer.
package fix

import (
	"errors"
	"strings"

	"github.com/yaklabco/docscan/pkg/check"
	"github.com/yaklabco/docscan/pkg/document"
)

// Default header markers.
const (
	DefaultMarker      = "#"
	DefaultReplacement = "%"
)

// Configuration errors for header transforms.
var (
	ErrEmptyMarker     = errors.New("header marker must not be empty")
	ErrSameReplacement = errors.New("replacement marker must differ from the header marker")
	ErrMarkerPrefix    = errors.New("header marker and replacement must not be prefixes of each other")
	ErrMarkerNewline   = errors.New("header markers must not contain line breaks")
)

// Transform rewrites a single line. It returns the replacement line and a
// violation describing the change, or ok=false to leave the line alone.
type Transform interface {
	// Kind returns the rule kind reported for changes.
	Kind() check.RuleKind

	// Apply inspects line index with its text (terminator included).
	Apply(line string, index int) (check.Violation, string, bool)
}

// HeaderTransform rewrites the leading heading marker on line 0.
type HeaderTransform struct {
	marker      string
	replacement string
}

// NewHeaderTransform creates a header transform.
// marker and replacement must be non-empty, distinct and single-line, and
// neither may be a prefix of the other so a fixed line never matches again.
func NewHeaderTransform(marker, replacement string) (*HeaderTransform, error) {
	if marker == "" || replacement == "" {
		return nil, ErrEmptyMarker
	}
	if strings.ContainsAny(marker+replacement, "\r\n") {
		return nil, ErrMarkerNewline
	}
	if marker == replacement {
		return nil, ErrSameReplacement
	}
	if strings.HasPrefix(replacement, marker) || strings.HasPrefix(marker, replacement) {
		return nil, ErrMarkerPrefix
	}
	return &HeaderTransform{marker: marker, replacement: replacement}, nil
}

// DefaultHeaderTransform rewrites "#" to "%".
func DefaultHeaderTransform() *HeaderTransform {
	return &HeaderTransform{marker: DefaultMarker, replacement: DefaultReplacement}
}

// Kind implements Transform.
func (h *HeaderTransform) Kind() check.RuleKind {
	return check.HeaderMarker
}

// Marker returns the marker that is rewritten.
func (h *HeaderTransform) Marker() string {
	return h.marker
}

// Replacement returns the marker written in its place.
func (h *HeaderTransform) Replacement() string {
	return h.replacement
}

// Apply implements Transform. Only index 0 is eligible, and only the first
// occurrence of the marker is replaced.
func (h *HeaderTransform) Apply(line string, index int) (check.Violation, string, bool) {
	if index != 0 || !strings.HasPrefix(line, h.marker) {
		return check.Violation{}, line, false
	}

	fixed := strings.Replace(line, h.marker, h.replacement, 1)
	return check.Violation{
		Rule: h.Kind(),
		Line: index,
		Text: document.TrimTerminator(line),
	}, fixed, true
}

// Header applies the default header transform to doc.
func Header(doc *document.Document) (*document.Document, bool) {
	result := NewFixer(DefaultHeaderTransform()).Fix(doc)
	return result.Document, result.Changed
}

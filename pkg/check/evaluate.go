package check

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/yaklabco/docscan/pkg/document"
)

// ErrInvalidEncoding is returned when a line is not valid UTF-8.
var ErrInvalidEncoding = errors.New("invalid UTF-8")

// Report groups the violations of one document by rule.
type Report struct {
	// Path is the document path.
	Path string

	kinds  []RuleKind
	byRule map[RuleKind][]Violation
}

// NewReport creates an empty report with an entry per kind, in order.
func NewReport(path string, kinds []RuleKind) *Report {
	report := &Report{
		Path:   path,
		kinds:  make([]RuleKind, 0, len(kinds)),
		byRule: make(map[RuleKind][]Violation, len(kinds)),
	}
	for _, kind := range kinds {
		if _, ok := report.byRule[kind]; ok {
			continue
		}
		report.kinds = append(report.kinds, kind)
		report.byRule[kind] = []Violation{}
	}
	return report
}

// Add appends a violation. Kinds unknown to the report are appended to its order.
func (r *Report) Add(v Violation) {
	if _, ok := r.byRule[v.Rule]; !ok {
		r.kinds = append(r.kinds, v.Rule)
	}
	r.byRule[v.Rule] = append(r.byRule[v.Rule], v)
}

// Kinds returns the rule kinds in evaluation order.
func (r *Report) Kinds() []RuleKind {
	out := make([]RuleKind, len(r.kinds))
	copy(out, r.kinds)
	return out
}

// Violations returns the violations of one rule in ascending line order.
func (r *Report) Violations(kind RuleKind) []Violation {
	return r.byRule[kind]
}

// Count returns the number of violations of one rule.
func (r *Report) Count(kind RuleKind) int {
	return len(r.byRule[kind])
}

// Total returns the number of violations across all rules.
func (r *Report) Total() int {
	var total int
	for _, violations := range r.byRule {
		total += len(violations)
	}
	return total
}

// Clean reports whether every rule entry is empty.
func (r *Report) Clean() bool {
	return r.Total() == 0
}

// Options parameterizes the built-in rules.
type Options struct {
	// MaxWidth is the line width threshold. 0 means DefaultMaxWidth.
	MaxWidth int

	// WidthMode selects the width measurement. Empty means WidthModeRunes.
	WidthMode WidthMode
}

// DefaultRules returns the built-in rules in evaluation order:
// relative links, broken links, line width.
func DefaultRules(opts Options) []Rule {
	return []Rule{
		NewRelativeLinkRule(),
		NewBrokenLinkRule(),
		NewLineWidthRule(opts.MaxWidth, opts.WidthMode),
	}
}

// Evaluator applies a fixed, ordered list of rules to every line of a document.
type Evaluator struct {
	rules []Rule
}

// NewEvaluator creates an evaluator. With no rules it uses DefaultRules.
func NewEvaluator(rules ...Rule) *Evaluator {
	if len(rules) == 0 {
		rules = DefaultRules(Options{})
	}
	return &Evaluator{rules: rules}
}

// Rules returns the rules in evaluation order.
func (e *Evaluator) Rules() []Rule {
	out := make([]Rule, len(e.rules))
	copy(out, e.rules)
	return out
}

// Kinds returns the rule kinds in evaluation order.
func (e *Evaluator) Kinds() []RuleKind {
	kinds := make([]RuleKind, 0, len(e.rules))
	for _, rule := range e.rules {
		kinds = append(kinds, rule.Kind())
	}
	return kinds
}

// Evaluate runs every rule against every line of doc.
// It fails only when a line is not valid UTF-8.
func (e *Evaluator) Evaluate(doc *document.Document) (*Report, error) {
	report := NewReport(doc.Path, e.Kinds())

	for index := range doc.Lines {
		line := doc.Text(index)
		if !utf8.ValidString(line) {
			return nil, fmt.Errorf("%s: line %d: %w", doc.Path, index, ErrInvalidEncoding)
		}

		for _, rule := range e.rules {
			if violation, ok := rule.Check(line, index, index == 0); ok {
				report.Add(violation)
			}
		}
	}

	return report, nil
}

// Evaluate runs the default rules against doc.
func Evaluate(doc *document.Document) (*Report, error) {
	return NewEvaluator().Evaluate(doc)
}

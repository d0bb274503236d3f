// Package check provides the line rules and the evaluator of the docscan checker.
package check

// RuleKind identifies a rule.
type RuleKind string

// Rule kinds, in the order the checker evaluates them.
const (
	RelativeLink RuleKind = "relative-link"
	BrokenLink   RuleKind = "broken-link"
	LineWidth    RuleKind = "line-width"

	// HeaderMarker is produced by the fixer, never by the checker.
	HeaderMarker RuleKind = "header-marker"
)

// String returns the rule name.
func (k RuleKind) String() string {
	return string(k)
}

// Violation records a rule matching one line.
type Violation struct {
	// Rule is the kind of rule that matched.
	Rule RuleKind

	// Line is the 0-based line index.
	Line int

	// Text is the offending line without its terminator.
	Text string

	// Width is the measured line width. Only set for LineWidth.
	Width int
}

// Rule is a stateless predicate over a single line.
type Rule interface {
	// Kind returns the rule kind.
	Kind() RuleKind

	// Description returns what the rule looks for.
	Description() string

	// Check inspects one line (terminator already removed).
	// index is the 0-based line index and first reports whether it is line 0.
	Check(line string, index int, first bool) (Violation, bool)
}

// BaseRule holds the metadata shared by every rule.
// Embed it and implement Check.
type BaseRule struct {
	kind RuleKind
	desc string
}

// NewBaseRule creates a BaseRule.
func NewBaseRule(kind RuleKind, desc string) BaseRule {
	return BaseRule{kind: kind, desc: desc}
}

// Kind returns the rule kind.
func (r *BaseRule) Kind() RuleKind {
	return r.kind
}

// Description returns what the rule looks for.
func (r *BaseRule) Description() string {
	return r.desc
}

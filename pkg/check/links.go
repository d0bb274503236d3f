package check

import (
	"regexp"
	"strings"
)

// relativeLinkPattern matches an inline link whose target climbs out of the
// document directory.
var relativeLinkPattern = regexp.MustCompile(`\[[^\]]+\]\(\.\./[^)]*\)`)

// brokenLinkPattern matches an inline link opener that runs to end of line
// without a closing paren.
var brokenLinkPattern = regexp.MustCompile(`\[[^\]]+\]\([^)]*$`)

// RelativeLinkRule flags links whose target starts with "../".
type RelativeLinkRule struct {
	BaseRule
}

// NewRelativeLinkRule creates a relative link rule.
func NewRelativeLinkRule() *RelativeLinkRule {
	return &RelativeLinkRule{
		BaseRule: NewBaseRule(RelativeLink,
			"Links should not point outside the document directory with ../"),
	}
}

// Check implements Rule.
func (r *RelativeLinkRule) Check(line string, index int, _ bool) (Violation, bool) {
	if !strings.Contains(line, "](../") || !relativeLinkPattern.MatchString(line) {
		return Violation{}, false
	}
	return Violation{
		Rule: r.Kind(),
		Line: index,
		Text: strings.TrimSpace(line),
	}, true
}

// BrokenLinkRule flags link openers that are never closed on the same line.
type BrokenLinkRule struct {
	BaseRule
}

// NewBrokenLinkRule creates a broken link rule.
func NewBrokenLinkRule() *BrokenLinkRule {
	return &BrokenLinkRule{
		BaseRule: NewBaseRule(BrokenLink,
			"Inline links must close their target with ) on the same line"),
	}
}

// Check implements Rule.
func (r *BrokenLinkRule) Check(line string, index int, _ bool) (Violation, bool) {
	if !strings.Contains(line, "](") || !brokenLinkPattern.MatchString(line) {
		return Violation{}, false
	}
	return Violation{
		Rule: r.Kind(),
		Line: index,
		Text: line,
	}, true
}

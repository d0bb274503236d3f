package check

import (
	"fmt"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// DefaultMaxWidth is the default line width threshold. Lines longer than this
// are flagged; a line of exactly DefaultMaxWidth passes.
const DefaultMaxWidth = 80

// WidthMode selects how a line is measured.
type WidthMode string

const (
	// WidthModeRunes counts decoded characters.
	WidthModeRunes WidthMode = "runes"

	// WidthModeDisplay counts terminal cells, so wide East Asian runes count twice.
	WidthModeDisplay WidthMode = "display"
)

// IsValid reports whether the mode is known.
func (m WidthMode) IsValid() bool {
	switch m {
	case WidthModeRunes, WidthModeDisplay:
		return true
	default:
		return false
	}
}

// ParseWidthMode parses a width mode, defaulting empty input to runes.
func ParseWidthMode(value string) (WidthMode, error) {
	if value == "" {
		return WidthModeRunes, nil
	}
	mode := WidthMode(value)
	if !mode.IsValid() {
		return "", fmt.Errorf("unknown width mode %q; valid modes: runes, display", value)
	}
	return mode, nil
}

// MeasureWidth returns the width of line under mode.
func MeasureWidth(line string, mode WidthMode) int {
	if mode == WidthModeDisplay {
		return runewidth.StringWidth(line)
	}
	return utf8.RuneCountInString(line)
}

// LineWidthRule flags lines wider than a threshold.
type LineWidthRule struct {
	BaseRule
	max  int
	mode WidthMode
}

// NewLineWidthRule creates a line width rule. A non-positive max falls back
// to DefaultMaxWidth and an unknown mode to WidthModeRunes.
func NewLineWidthRule(maxWidth int, mode WidthMode) *LineWidthRule {
	if maxWidth <= 0 {
		maxWidth = DefaultMaxWidth
	}
	if !mode.IsValid() {
		mode = WidthModeRunes
	}
	return &LineWidthRule{
		BaseRule: NewBaseRule(LineWidth,
			fmt.Sprintf("Lines should not be wider than %d characters", maxWidth)),
		max:  maxWidth,
		mode: mode,
	}
}

// Max returns the threshold.
func (r *LineWidthRule) Max() int {
	return r.max
}

// Check implements Rule.
func (r *LineWidthRule) Check(line string, index int, _ bool) (Violation, bool) {
	width := MeasureWidth(line, r.mode)
	if width <= r.max {
		return Violation{}, false
	}
	return Violation{
		Rule:  r.Kind(),
		Line:  index,
		Text:  line,
		Width: width,
	}, true
}

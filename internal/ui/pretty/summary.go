package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/docscan/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatCheckSummaryOneLine formats check statistics as a single line.
// Example: "5 violations in 2 files (line-width 3, broken-link 2), 10 files checked".
func (s *Styles) FormatCheckSummaryOneLine(result *runner.CheckResult) string {
	stats := result.Stats
	checked := s.Dim.Render(fmt.Sprintf(" (%d %s checked)", stats.FilesChecked, plural(stats.FilesChecked, wordFile, wordFiles)))

	var msg string
	if stats.Violations == 0 {
		msg = s.Success.Render("No violations found") + checked
	} else {
		var byRule []string
		for _, kind := range result.Kinds {
			if count := stats.ViolationsByRule[kind]; count > 0 {
				byRule = append(byRule, fmt.Sprintf("%s %d", kind, count))
			}
		}
		msg = s.Failure.Render(fmt.Sprintf("%d %s", stats.Violations, plural(stats.Violations, "violation", "violations"))) +
			fmt.Sprintf(" in %d %s", stats.FilesFailed, plural(stats.FilesFailed, wordFile, wordFiles))
		if len(byRule) > 0 {
			msg += " (" + strings.Join(byRule, ", ") + ")"
		}
		msg += checked
	}

	if stats.FilesErrored > 0 {
		msg += ", " + s.Error.Render(fmt.Sprintf("%d %s could not be read", stats.FilesErrored, plural(stats.FilesErrored, wordFile, wordFiles)))
	}

	return msg + "\n"
}

// FormatCheckSummary formats check statistics as a summary block.
func (s *Styles) FormatCheckSummary(result *runner.CheckResult) string {
	stats := result.Stats

	var builder strings.Builder
	s.writeSummaryTitle(&builder)

	builder.WriteString("  Files checked:     " + s.SummaryValue.Render(strconv.Itoa(stats.FilesChecked)) + "\n")
	if stats.FilesFailed > 0 {
		builder.WriteString("  Files failing:     " + s.Failure.Render(strconv.Itoa(stats.FilesFailed)) + "\n")
	}
	if stats.FilesErrored > 0 {
		builder.WriteString("  Files unreadable:  " + s.Error.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}

	builder.WriteString("\n")
	builder.WriteString("  Total violations:  " + s.SummaryValue.Render(strconv.Itoa(stats.Violations)) + "\n")
	for _, kind := range result.Kinds {
		if count := stats.ViolationsByRule[kind]; count > 0 {
			fmt.Fprintf(&builder, "    %-16s %s\n", string(kind)+":", s.Warning.Render(strconv.Itoa(count)))
		}
	}

	builder.WriteString("\n")
	switch {
	case stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Check completed with unreadable files"))
	case stats.Violations > 0:
		builder.WriteString(s.Warning.Render("Check completed with violations"))
	default:
		builder.WriteString(s.Success.Render("Check passed"))
	}
	builder.WriteString("\n")

	return builder.String()
}

// FormatFixSummaryOneLine formats fix statistics as a single line.
func (s *Styles) FormatFixSummaryOneLine(result *runner.FixResult) string {
	stats := result.Stats

	var msg string
	switch {
	case stats.FilesChanged == 0:
		msg = s.Success.Render("Nothing to fix")
	case result.DryRun:
		msg = s.Warning.Render(fmt.Sprintf("%d %s would be fixed", stats.FilesChanged, plural(stats.FilesChanged, wordFile, wordFiles)))
	default:
		msg = s.Success.Render(fmt.Sprintf("%d %s fixed", stats.FilesModified, plural(stats.FilesModified, wordFile, wordFiles)))
	}
	msg += s.Dim.Render(fmt.Sprintf(" (%d %s processed)", stats.FilesProcessed, plural(stats.FilesProcessed, wordFile, wordFiles)))

	if stats.FilesSkipped > 0 {
		msg += ", " + s.Warning.Render(fmt.Sprintf("%d skipped", stats.FilesSkipped))
	}
	if stats.FilesErrored > 0 {
		msg += ", " + s.Error.Render(fmt.Sprintf("%d failed", stats.FilesErrored))
	}

	return msg + "\n"
}

func (s *Styles) writeSummaryTitle(builder *strings.Builder) {
	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")
}

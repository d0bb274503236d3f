package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/docscan/pkg/fix"
)

// FormatDiff renders a unified diff with colored hunks.
// displayPath replaces the path recorded in the diff.
func (s *Styles) FormatDiff(diff *fix.Diff, displayPath string) string {
	if !diff.HasChanges() {
		return ""
	}

	var builder strings.Builder
	builder.WriteString(s.DiffHeader.Render("diff a/"+displayPath+" b/"+displayPath) + "\n")
	builder.WriteString(s.DiffRemove.Render("--- a/"+displayPath) + "\n")
	builder.WriteString(s.DiffAdd.Render("+++ b/"+displayPath) + "\n")

	for _, hunk := range diff.Hunks {
		header := fmt.Sprintf("@@ -%d,%d +%d,%d @@", hunk.Start, hunk.Count, hunk.Start, hunk.Count)
		builder.WriteString(s.DiffHunk.Render(header) + "\n")

		for _, line := range hunk.Lines {
			switch line.Kind {
			case fix.DiffLineAdd:
				builder.WriteString(s.DiffAdd.Render("+" + line.Content))
			case fix.DiffLineRemove:
				builder.WriteString(s.DiffRemove.Render("-" + line.Content))
			default:
				builder.WriteString(s.DiffContext.Render(" " + line.Content))
			}
			builder.WriteString("\n")
		}
	}

	return builder.String()
}

package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/docscan/internal/ui/pretty"
	"github.com/yaklabco/docscan/pkg/check"
	"github.com/yaklabco/docscan/pkg/document"
	"github.com/yaklabco/docscan/pkg/fix"
	"github.com/yaklabco/docscan/pkg/runner"
)

func checkResult(stats runner.CheckStats) *runner.CheckResult {
	return &runner.CheckResult{
		Kinds: []check.RuleKind{check.RelativeLink, check.BrokenLink, check.LineWidth},
		Stats: stats,
	}
}

func TestFormatCheckSummary_Violations(t *testing.T) {
	styles := pretty.NewStyles(false)

	result := checkResult(runner.CheckStats{
		FilesChecked: 10,
		FilesFailed:  2,
		Violations:   5,
		ViolationsByRule: map[check.RuleKind]int{
			check.LineWidth:  3,
			check.BrokenLink: 2,
		},
	})

	block := styles.FormatCheckSummary(result)
	assert.Contains(t, block, "Summary")
	assert.Contains(t, block, "Files checked:     10")
	assert.Contains(t, block, "Files failing:     2")
	assert.Contains(t, block, "line-width:")
	assert.NotContains(t, block, "relative-link:")
	assert.Contains(t, block, "Check completed with violations")

	line := styles.FormatCheckSummaryOneLine(result)
	assert.Equal(t, "5 violations in 2 files (broken-link 2, line-width 3) (10 files checked)\n", line)
}

func TestFormatCheckSummary_Clean(t *testing.T) {
	styles := pretty.NewStyles(false)

	result := checkResult(runner.CheckStats{FilesChecked: 1, ViolationsByRule: map[check.RuleKind]int{}})

	assert.Contains(t, styles.FormatCheckSummary(result), "Check passed")
	assert.Equal(t, "No violations found (1 file checked)\n", styles.FormatCheckSummaryOneLine(result))
}

func TestFormatCheckSummary_Unreadable(t *testing.T) {
	styles := pretty.NewStyles(false)

	result := checkResult(runner.CheckStats{FilesChecked: 1, FilesErrored: 1, ViolationsByRule: map[check.RuleKind]int{}})

	assert.Contains(t, styles.FormatCheckSummary(result), "Files unreadable:  1")
	assert.Contains(t, styles.FormatCheckSummaryOneLine(result), "1 file could not be read")
}

func TestFormatFixSummaryOneLine(t *testing.T) {
	styles := pretty.NewStyles(false)

	tests := []struct {
		name   string
		result *runner.FixResult
		want   string
	}{
		{
			name:   "nothing to fix",
			result: &runner.FixResult{Stats: runner.FixStats{FilesProcessed: 3}},
			want:   "Nothing to fix (3 files processed)\n",
		},
		{
			name:   "fixed",
			result: &runner.FixResult{Stats: runner.FixStats{FilesProcessed: 3, FilesChanged: 1, FilesModified: 1}},
			want:   "1 file fixed (3 files processed)\n",
		},
		{
			name:   "dry run",
			result: &runner.FixResult{DryRun: true, Stats: runner.FixStats{FilesProcessed: 2, FilesChanged: 2}},
			want:   "2 files would be fixed (2 files processed)\n",
		},
		{
			name: "skipped and failed",
			result: &runner.FixResult{Stats: runner.FixStats{
				FilesProcessed: 2, FilesChanged: 2, FilesModified: 1, FilesSkipped: 1, FilesErrored: 1,
			}},
			want: "1 file fixed (2 files processed), 1 skipped, 1 failed\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, styles.FormatFixSummaryOneLine(tt.result))
		})
	}
}

func TestFormatDiff(t *testing.T) {
	styles := pretty.NewStyles(false)

	before := document.New("/abs/intro.md", []byte("# Title\nbody\n"))
	after, _ := fix.Header(before)

	out := styles.FormatDiff(fix.NewDiff(before, after), "intro.md")
	assert.Equal(t, "diff a/intro.md b/intro.md\n"+
		"--- a/intro.md\n"+
		"+++ b/intro.md\n"+
		"@@ -1,2 +1,2 @@\n"+
		"-# Title\n"+
		"+% Title\n"+
		" body\n", out)

	assert.Empty(t, styles.FormatDiff(nil, "intro.md"))
}

package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/docscan/pkg/check"
	"github.com/yaklabco/docscan/pkg/runner"
)

// jsonSchemaVersion identifies the shape of the JSON output.
const jsonSchemaVersion = "1"

// JSONViolation represents a single violation. Line is 0-based.
type JSONViolation struct {
	Rule  string `json:"rule"`
	Line  int    `json:"line"`
	Text  string `json:"text"`
	Width int    `json:"width,omitempty"`
}

// JSONCheckFile represents a single file's check results.
type JSONCheckFile struct {
	Path       string          `json:"path"`
	Violations []JSONViolation `json:"violations"`
	Error      string          `json:"error,omitempty"`
}

// JSONCheckSummary contains aggregate check statistics.
type JSONCheckSummary struct {
	FilesChecked     int            `json:"filesChecked"`
	FilesPassed      int            `json:"filesPassed"`
	FilesFailed      int            `json:"filesFailed"`
	FilesErrored     int            `json:"filesErrored"`
	Violations       int            `json:"violations"`
	ViolationsByRule map[string]int `json:"violationsByRule"`
}

// JSONCheckOutput is the top-level JSON structure for check results.
type JSONCheckOutput struct {
	Version string           `json:"version"`
	Rules   []string         `json:"rules"`
	Files   []JSONCheckFile  `json:"files"`
	Summary JSONCheckSummary `json:"summary"`
}

// JSONFixFile represents a single file's fix results.
type JSONFixFile struct {
	Path    string          `json:"path"`
	Changed bool            `json:"changed"`
	Written bool            `json:"written"`
	Skipped bool            `json:"skipped,omitempty"`
	Backup  string          `json:"backup,omitempty"`
	Fixes   []JSONViolation `json:"fixes,omitempty"`
	Diff    string          `json:"diff,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// JSONFixSummary contains aggregate fix statistics.
type JSONFixSummary struct {
	FilesProcessed int `json:"filesProcessed"`
	FilesChanged   int `json:"filesChanged"`
	FilesModified  int `json:"filesModified"`
	FilesSkipped   int `json:"filesSkipped"`
	FilesErrored   int `json:"filesErrored"`
	Fixes          int `json:"fixes"`
}

// JSONFixOutput is the top-level JSON structure for fix results.
type JSONFixOutput struct {
	Version string         `json:"version"`
	DryRun  bool           `json:"dryRun"`
	Files   []JSONFixFile  `json:"files"`
	Summary JSONFixSummary `json:"summary"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{opts: opts}
}

// ReportCheck implements Reporter.
func (r *JSONReporter) ReportCheck(_ context.Context, result *runner.CheckResult) (int, error) {
	output := JSONCheckOutput{
		Version: jsonSchemaVersion,
		Rules:   []string{},
		Files:   []JSONCheckFile{},
		Summary: JSONCheckSummary{ViolationsByRule: map[string]int{}},
	}

	if result != nil {
		for _, kind := range result.Kinds {
			output.Rules = append(output.Rules, string(kind))
			output.Summary.ViolationsByRule[string(kind)] = result.Stats.ViolationsByRule[kind]
		}

		for _, file := range result.Files {
			entry := JSONCheckFile{Path: r.opts.displayPath(file.Path), Violations: []JSONViolation{}}
			if file.Error != nil {
				entry.Error = file.Error.Error()
			} else {
				for _, kind := range file.Report.Kinds() {
					entry.Violations = append(entry.Violations, toJSONViolations(file.Report.Violations(kind))...)
				}
			}
			output.Files = append(output.Files, entry)
		}

		stats := result.Stats
		output.Summary.FilesChecked = stats.FilesChecked
		output.Summary.FilesPassed = stats.FilesPassed
		output.Summary.FilesFailed = stats.FilesFailed
		output.Summary.FilesErrored = stats.FilesErrored
		output.Summary.Violations = stats.Violations
	}

	if err := r.encode(output); err != nil {
		return 0, err
	}
	return output.Summary.Violations, nil
}

// ReportFix implements Reporter.
func (r *JSONReporter) ReportFix(_ context.Context, result *runner.FixResult) (int, error) {
	output := JSONFixOutput{
		Version: jsonSchemaVersion,
		Files:   []JSONFixFile{},
	}

	if result != nil {
		output.DryRun = result.DryRun
		for _, file := range result.Files {
			entry := JSONFixFile{
				Path:    r.opts.displayPath(file.Path),
				Changed: file.Changed,
				Written: file.Written,
				Skipped: file.Skipped,
				Fixes:   toJSONViolations(file.Fixes),
			}
			if file.BackupPath != "" {
				entry.Backup = r.opts.displayPath(file.BackupPath)
			}
			if file.Diff.HasChanges() {
				entry.Diff = file.Diff.String()
			}
			if file.Error != nil {
				entry.Error = file.Error.Error()
			}
			output.Files = append(output.Files, entry)
		}

		stats := result.Stats
		output.Summary = JSONFixSummary{
			FilesProcessed: stats.FilesProcessed,
			FilesChanged:   stats.FilesChanged,
			FilesModified:  stats.FilesModified,
			FilesSkipped:   stats.FilesSkipped,
			FilesErrored:   stats.FilesErrored,
			Fixes:          stats.Fixes,
		}
	}

	if err := r.encode(output); err != nil {
		return 0, err
	}
	return output.Summary.FilesChanged, nil
}

func (r *JSONReporter) encode(v any) error {
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)

	encoder := json.NewEncoder(bw)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	return nil
}

func toJSONViolations(violations []check.Violation) []JSONViolation {
	if len(violations) == 0 {
		return nil
	}
	out := make([]JSONViolation, 0, len(violations))
	for _, v := range violations {
		out = append(out, JSONViolation{Rule: string(v.Rule), Line: v.Line, Text: v.Text, Width: v.Width})
	}
	return out
}

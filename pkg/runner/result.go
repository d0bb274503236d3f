package runner

import (
	"github.com/yaklabco/docscan/pkg/check"
	"github.com/yaklabco/docscan/pkg/fix"
)

// CheckOutcome is the result of checking one file.
type CheckOutcome struct {
	// Path is the file path that was checked.
	Path string

	// Report holds the violations. Nil when Error is set.
	Report *check.Report

	// Error is set if the file could not be read or decoded.
	Error error
}

// CheckStats captures aggregate information about a check run.
type CheckStats struct {
	FilesDiscovered int
	FilesChecked    int
	FilesPassed     int
	FilesFailed     int
	FilesErrored    int

	// Violations is the total across all files and rules.
	Violations int

	// ViolationsByRule maps rule kinds to counts.
	ViolationsByRule map[check.RuleKind]int
}

// CheckResult is the overall result of a check run.
type CheckResult struct {
	// Kinds are the evaluated rule kinds in declared order.
	Kinds []check.RuleKind

	// Files are ordered as discovered.
	Files []CheckOutcome

	Stats CheckStats
}

// HasViolations reports whether any violation was found.
func (r *CheckResult) HasViolations() bool {
	return r != nil && r.Stats.Violations > 0
}

// HasErrors reports whether any file could not be checked.
func (r *CheckResult) HasErrors() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

func (r *CheckResult) accumulate(outcome CheckOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil || outcome.Report == nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesChecked++
	if outcome.Report.Clean() {
		r.Stats.FilesPassed++
		return
	}

	r.Stats.FilesFailed++
	for _, kind := range outcome.Report.Kinds() {
		count := outcome.Report.Count(kind)
		r.Stats.Violations += count
		r.Stats.ViolationsByRule[kind] += count
	}
}

// FixOutcome is the result of fixing one file.
type FixOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Changed reports whether a transform rewrote any line.
	Changed bool

	// Written reports whether the new content reached disk.
	Written bool

	// Skipped is set when a change was not written because the file was
	// modified on disk after it was read.
	Skipped bool

	// BackupPath is set when a sidecar backup was created for this file.
	BackupPath string

	// Fixes lists the rewritten lines as they read before the fix.
	Fixes []check.Violation

	// Diff describes the change. Nil when nothing changed.
	Diff *fix.Diff

	// Error is set if the file could not be read or written.
	Error error
}

// FixStats captures aggregate information about a fix run.
type FixStats struct {
	FilesDiscovered int
	FilesProcessed  int
	FilesChanged    int
	FilesModified   int
	FilesSkipped    int
	FilesErrored    int

	// Fixes is the number of rewritten lines.
	Fixes int
}

// FixResult is the overall result of a fix run.
type FixResult struct {
	// Files are ordered as discovered.
	Files []FixOutcome

	// DryRun is set when nothing was written by design.
	DryRun bool

	Stats FixStats
}

// HasErrors reports whether any file could not be fixed.
func (r *FixResult) HasErrors() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

func (r *FixResult) accumulate(outcome FixOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesProcessed++
	if outcome.Changed {
		r.Stats.FilesChanged++
		r.Stats.Fixes += len(outcome.Fixes)
	}
	if outcome.Written {
		r.Stats.FilesModified++
	}
	if outcome.Skipped {
		r.Stats.FilesSkipped++
	}
}

package runner

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/docscan/internal/logging"
	"github.com/yaklabco/docscan/pkg/check"
	"github.com/yaklabco/docscan/pkg/document"
	"github.com/yaklabco/docscan/pkg/fix"
	"github.com/yaklabco/docscan/pkg/fsutil"
)

// ErrModifiedOnDisk is recorded on a skipped fix when the file changed after
// it was read.
var ErrModifiedOnDisk = errors.New("file modified on disk since it was read")

// Checker evaluates files one at a time.
type Checker struct {
	// Evaluator holds the rules applied to every file.
	Evaluator *check.Evaluator
}

// NewChecker creates a Checker. A nil evaluator uses the default rules.
func NewChecker(evaluator *check.Evaluator) *Checker {
	if evaluator == nil {
		evaluator = check.NewEvaluator()
	}
	return &Checker{Evaluator: evaluator}
}

// Run checks files in order. A file that cannot be read or decoded is
// recorded and the run continues. The only error returned is a context
// cancellation, together with the partial result.
func (c *Checker) Run(ctx context.Context, files []string) (*CheckResult, error) {
	logger := logging.FromContext(ctx)

	result := &CheckResult{
		Kinds: c.Evaluator.Kinds(),
		Files: make([]CheckOutcome, 0, len(files)),
		Stats: CheckStats{
			FilesDiscovered:  len(files),
			ViolationsByRule: make(map[check.RuleKind]int),
		},
	}

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("check cancelled: %w", err)
		}

		outcome := CheckOutcome{Path: path}

		doc, err := document.Read(ctx, path)
		if err == nil {
			outcome.Report, err = c.Evaluator.Evaluate(doc)
		}
		if err != nil {
			outcome.Error = err
			logger.Debug("check file failed", logging.FieldFile, path, logging.FieldError, err)
		}

		result.accumulate(outcome)
	}

	return result, nil
}

// Fixer applies transforms to files one at a time and writes the results back.
type Fixer struct {
	// Fixer holds the transforms applied to every file.
	Fixer *fix.Fixer

	// Options controls write-back.
	Options FixOptions
}

// NewFixer creates a Fixer. A nil fixer uses the default header transform.
func NewFixer(fixer *fix.Fixer, opts FixOptions) *Fixer {
	if fixer == nil {
		fixer = fix.NewFixer()
	}
	return &Fixer{Fixer: fixer, Options: opts}
}

// Run fixes files in order. Per-file failures are recorded on the outcome and
// the run continues. The only error returned is a context cancellation,
// together with the partial result.
func (f *Fixer) Run(ctx context.Context, files []string) (*FixResult, error) {
	logger := logging.FromContext(ctx)

	result := &FixResult{
		Files:  make([]FixOutcome, 0, len(files)),
		DryRun: f.Options.DryRun,
		Stats:  FixStats{FilesDiscovered: len(files)},
	}

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("fix cancelled: %w", err)
		}

		result.accumulate(f.fixFile(ctx, logger, path))
	}

	return result, nil
}

func (f *Fixer) fixFile(ctx context.Context, logger *log.Logger, path string) FixOutcome {
	outcome := FixOutcome{Path: path}

	doc, err := document.Read(ctx, path)
	if err != nil {
		outcome.Error = err
		return outcome
	}

	fixed := f.Fixer.Fix(doc)
	if !fixed.Changed {
		return outcome
	}

	outcome.Changed = true
	outcome.Fixes = fixed.Fixes
	outcome.Diff = fix.NewDiff(doc, fixed.Document)

	if f.Options.DryRun {
		return outcome
	}

	modified, err := fsutil.CheckModified(ctx, doc.Info)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	if modified {
		outcome.Skipped = true
		logger.Debug("fix skipped", logging.FieldFile, path, logging.FieldError, ErrModifiedOnDisk)
		return outcome
	}

	if f.Options.Backups {
		created, err := fsutil.CreateBackup(ctx, path)
		if err != nil {
			outcome.Error = err
			return outcome
		}
		if created {
			outcome.BackupPath = fsutil.BackupPath(path)
		}
	}

	if err := f.Options.writer().WriteAll(ctx, path, fixed.Document.Bytes()); err != nil {
		outcome.Error = fmt.Errorf("write %s: %w", path, err)
		return outcome
	}
	outcome.Written = true

	return outcome
}

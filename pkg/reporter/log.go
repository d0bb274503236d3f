package reporter

import (
	"context"

	"github.com/yaklabco/docscan/internal/logging"
	"github.com/yaklabco/docscan/pkg/check"
	"github.com/yaklabco/docscan/pkg/runner"
)

// LogReporter writes results as leveled log entries.
//
// For each checked file and each rule, in rule order, it emits
// "check <rule>: ok" at info level or "check <rule>: error" at warn level with
// the violation count, followed by one debug entry per violation. With
// ShowDiff, fix results add one info entry per diff hunk.
type LogReporter struct {
	opts Options
	sink Sink
}

// NewLogReporter creates a reporter that writes to opts.Sink.
func NewLogReporter(opts Options) *LogReporter {
	return &LogReporter{opts: opts, sink: opts.Sink}
}

// ReportCheck implements Reporter.
func (r *LogReporter) ReportCheck(_ context.Context, result *runner.CheckResult) (int, error) {
	if result == nil {
		return 0, nil
	}

	for _, file := range result.Files {
		path := r.opts.displayPath(file.Path)

		if file.Error != nil {
			r.sink.Error("check failed", logging.FieldFile, path, logging.FieldError, file.Error)
			continue
		}

		for _, kind := range file.Report.Kinds() {
			violations := file.Report.Violations(kind)
			if len(violations) == 0 {
				r.sink.Info("check "+string(kind)+": ok", logging.FieldFile, path)
				continue
			}

			r.sink.Warn("check "+string(kind)+": error",
				logging.FieldFile, path,
				logging.FieldCount, len(violations),
			)
			for _, v := range violations {
				r.sink.Debug("check "+string(kind)+": violation", violationFields(path, v)...)
			}
		}
	}

	return result.Stats.Violations, nil
}

func violationFields(path string, v check.Violation) []interface{} {
	fields := []interface{}{
		logging.FieldFile, path,
		logging.FieldLine, v.Line,
		logging.FieldText, v.Text,
	}
	if v.Rule == check.LineWidth {
		fields = append(fields, logging.FieldWidth, v.Width)
	}
	return fields
}

// ReportFix implements Reporter.
func (r *LogReporter) ReportFix(_ context.Context, result *runner.FixResult) (int, error) {
	if result == nil {
		return 0, nil
	}

	for _, file := range result.Files {
		path := r.opts.displayPath(file.Path)

		switch {
		case file.Error != nil:
			r.sink.Error("fix failed", logging.FieldFile, path, logging.FieldError, file.Error)
		case !file.Changed:
			r.sink.Debug("fix header unchanged", logging.FieldFile, path)
		case file.Skipped:
			r.sink.Warn("fix skipped", logging.FieldFile, path, logging.FieldError, runner.ErrModifiedOnDisk)
		case result.DryRun:
			r.sink.Info("fix header pending", logging.FieldFile, path, logging.FieldDryRun, true)
		default:
			if file.BackupPath != "" {
				r.sink.Debug("backup created", logging.FieldFile, path, logging.FieldBackup, r.opts.displayPath(file.BackupPath))
			}
			r.sink.Info("fix header ok", logging.FieldFile, path)
		}

		for _, v := range file.Fixes {
			r.sink.Debug("fix "+string(v.Rule)+": rewritten", violationFields(path, v)...)
		}

		if r.opts.ShowDiff && file.Error == nil && file.Diff.HasChanges() {
			for _, hunk := range file.Diff.Hunks {
				r.sink.Info("fix diff", logging.FieldFile, path, logging.FieldDiff, hunk.String())
			}
		}
	}

	return result.Stats.FilesChanged, nil
}

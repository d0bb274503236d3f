// Package reporter renders check and fix results.
package reporter

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/docscan/pkg/runner"
)

// ErrNoSink is returned by New when the log format is requested without a sink.
var ErrNoSink = errors.New("log format requires a sink")

// Sink receives leveled log entries with key-value fields.
// *log.Logger from charmbracelet/log satisfies it.
type Sink interface {
	Debug(msg interface{}, keyvals ...interface{})
	Info(msg interface{}, keyvals ...interface{})
	Warn(msg interface{}, keyvals ...interface{})
	Error(msg interface{}, keyvals ...interface{})
}

// Reporter formats and writes run results.
type Reporter interface {
	// ReportCheck writes a check result and returns the number of violations.
	ReportCheck(ctx context.Context, result *runner.CheckResult) (int, error)

	// ReportFix writes a fix result and returns the number of changed files.
	ReportFix(ctx context.Context, result *runner.FixResult) (int, error)
}

// New creates a Reporter for the specified options.
// FormatLog writes to opts.Sink; the other formats render to opts.Writer.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatLog
	}

	switch format {
	case FormatLog:
		if opts.Sink == nil {
			return nil, ErrNoSink
		}
		return NewLogReporter(opts), nil
	case FormatText:
		return NewTextReporter(opts), nil
	case FormatTable:
		return NewTableReporter(opts), nil
	case FormatJSON:
		return NewJSONReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/docscan/internal/ui/pretty"
	"github.com/yaklabco/docscan/pkg/check"
	"github.com/yaklabco/docscan/pkg/runner"
)

// TextReporter formats results as styled terminal output.
// Locations are printed editor-style as path:line with 1-based lines.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// ReportCheck implements Reporter.
func (r *TextReporter) ReportCheck(_ context.Context, result *runner.CheckResult) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		}
		return 0, nil
	}

	for _, file := range result.Files {
		path := r.opts.displayPath(file.Path)

		if file.Error != nil {
			r.writeFileError(path, file.Error)
			continue
		}

		for _, kind := range file.Report.Kinds() {
			for _, v := range file.Report.Violations(kind) {
				r.writeViolation(path, v)
			}
		}
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatCheckSummaryOneLine(result))
	}

	return result.Stats.Violations, nil
}

func (r *TextReporter) writeFileError(path string, err error) {
	fmt.Fprintf(r.bw, "%s: %s\n",
		r.styles.FilePath.Render(path),
		r.styles.Error.Render(fmt.Sprintf("error: %v", err)),
	)
}

func (r *TextReporter) writeViolation(path string, v check.Violation) {
	location := fmt.Sprintf("%s:%d", r.styles.FilePath.Render(path), v.Line+1)

	fmt.Fprintf(r.bw, "  %s  %s  %s\n",
		location,
		r.styles.Message.Render(violationMessage(v)),
		r.styles.RuleID.Render("("+string(v.Rule)+")"),
	)
}

// violationMessage describes a violation in one sentence.
func violationMessage(v check.Violation) string {
	switch v.Rule {
	case check.RelativeLink:
		return "relative link outside the directory: " + v.Text
	case check.BrokenLink:
		return "link is missing its closing parenthesis: " + v.Text
	case check.LineWidth:
		return fmt.Sprintf("line is %d characters wide", v.Width)
	case check.HeaderMarker:
		return "heading marker rewritten: " + v.Text
	default:
		return v.Text
	}
}

// ReportFix implements Reporter.
func (r *TextReporter) ReportFix(_ context.Context, result *runner.FixResult) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to fix."))
		}
		return 0, nil
	}

	for _, file := range result.Files {
		path := r.opts.displayPath(file.Path)

		switch {
		case file.Error != nil:
			r.writeFileError(path, file.Error)
			continue
		case !file.Changed:
			continue
		case file.Skipped:
			fmt.Fprintf(r.bw, "%s: %s\n", r.styles.FilePath.Render(path),
				r.styles.Warning.Render("skipped: "+runner.ErrModifiedOnDisk.Error()))
		case result.DryRun:
			fmt.Fprintf(r.bw, "%s: %s\n", r.styles.FilePath.Render(path), r.styles.Warning.Render("would fix"))
		default:
			fmt.Fprintf(r.bw, "%s: %s\n", r.styles.FilePath.Render(path), r.styles.Success.Render("fixed"))
		}

		if r.opts.ShowDiff {
			fmt.Fprint(r.bw, r.styles.FormatDiff(file.Diff, path))
		}
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatFixSummaryOneLine(result))
	}

	return result.Stats.FilesChanged, nil
}

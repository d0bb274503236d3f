package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/yaklabco/docscan/internal/ui/pretty"
	"github.com/yaklabco/docscan/pkg/runner"
)

// Table layout constants.
const (
	// tableFixedWidth approximates the cells taken by borders and the
	// FILE, LINE and RULE columns.
	tableFixedWidth = 50
	minTextWidth    = 20
)

// TableReporter formats results as a go-pretty table.
// Lines are shown 1-based.
type TableReporter struct {
	opts      Options
	styles    *pretty.Styles
	textWidth int
	bw        *bufio.Writer
}

// NewTableReporter creates a new table reporter.
func NewTableReporter(opts Options) *TableReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)

	return &TableReporter{
		opts:      opts,
		styles:    pretty.NewStyles(colorEnabled),
		textWidth: max(pretty.TerminalWidth(opts.Writer)-tableFixedWidth, minTextWidth),
		bw:        bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

func (r *TableReporter) newWriter() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(r.bw)
	t.SetStyle(table.StyleLight)
	return t
}

// ReportCheck implements Reporter.
func (r *TableReporter) ReportCheck(_ context.Context, result *runner.CheckResult) (_ int, err error) {
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

	if result.Stats.Violations > 0 || result.Stats.FilesErrored > 0 {
		t := r.newWriter()
		t.AppendHeader(table.Row{"File", "Line", "Rule", "Text"})

		for _, file := range result.Files {
			path := r.opts.displayPath(file.Path)

			if file.Error != nil {
				t.AppendRow(table.Row{path, "", "error", pretty.Truncate(file.Error.Error(), r.textWidth)})
				continue
			}

			for _, kind := range file.Report.Kinds() {
				for _, v := range file.Report.Violations(kind) {
					t.AppendRow(table.Row{path, v.Line + 1, string(kind), pretty.Truncate(violationMessage(v), r.textWidth)})
				}
			}
		}

		t.Render()
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatCheckSummary(result))
	}

	return result.Stats.Violations, nil
}

// ReportFix implements Reporter.
func (r *TableReporter) ReportFix(_ context.Context, result *runner.FixResult) (_ int, err error) {
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

	t := r.newWriter()
	t.AppendHeader(table.Row{"File", "Status", "Fixes"})
	for _, file := range result.Files {
		t.AppendRow(table.Row{r.opts.displayPath(file.Path), fixStatus(file, result.DryRun), len(file.Fixes)})
	}
	t.AppendFooter(table.Row{"Total", "", result.Stats.Fixes})
	t.Render()

	if r.opts.ShowDiff {
		for _, file := range result.Files {
			fmt.Fprint(r.bw, r.styles.FormatDiff(file.Diff, r.opts.displayPath(file.Path)))
		}
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatFixSummaryOneLine(result))
	}

	return result.Stats.FilesChanged, nil
}

func fixStatus(file runner.FixOutcome, dryRun bool) string {
	switch {
	case file.Error != nil:
		return "error"
	case !file.Changed:
		return "unchanged"
	case file.Skipped:
		return "skipped"
	case dryRun:
		return "would fix"
	case file.Written:
		return "fixed"
	default:
		return "changed"
	}
}

package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/docscan/pkg/check"
	"github.com/yaklabco/docscan/pkg/document"
	"github.com/yaklabco/docscan/pkg/fix"
	"github.com/yaklabco/docscan/pkg/reporter"
	"github.com/yaklabco/docscan/pkg/runner"
)

// entry is one recorded log call.
type entry struct {
	level   string
	msg     string
	keyvals []interface{}
}

func (e entry) field(key string) interface{} {
	for i := 0; i+1 < len(e.keyvals); i += 2 {
		if e.keyvals[i] == key {
			return e.keyvals[i+1]
		}
	}
	return nil
}

type recordingSink struct {
	entries []entry
}

func (s *recordingSink) record(level string, msg interface{}, keyvals []interface{}) {
	s.entries = append(s.entries, entry{level: level, msg: fmt.Sprint(msg), keyvals: keyvals})
}

func (s *recordingSink) Debug(msg interface{}, keyvals ...interface{}) {
	s.record("debug", msg, keyvals)
}
func (s *recordingSink) Info(msg interface{}, keyvals ...interface{}) { s.record("info", msg, keyvals) }
func (s *recordingSink) Warn(msg interface{}, keyvals ...interface{}) { s.record("warn", msg, keyvals) }
func (s *recordingSink) Error(msg interface{}, keyvals ...interface{}) {
	s.record("error", msg, keyvals)
}

func (s *recordingSink) messages() []string {
	out := make([]string, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e.level+" "+e.msg)
	}
	return out
}

var checkKinds = []check.RuleKind{check.RelativeLink, check.BrokenLink, check.LineWidth}

// sampleCheckResult has one clean file, one file with two violations and
// one unreadable file.
func sampleCheckResult() *runner.CheckResult {
	clean := check.NewReport("/work/src/clean.md", checkKinds)

	dirty := check.NewReport("/work/src/dirty.md", checkKinds)
	dirty.Add(check.Violation{Rule: check.BrokenLink, Line: 2, Text: "see [x](y"})
	dirty.Add(check.Violation{Rule: check.LineWidth, Line: 4, Text: strings.Repeat("a", 95), Width: 95})

	return &runner.CheckResult{
		Kinds: checkKinds,
		Files: []runner.CheckOutcome{
			{Path: "/work/src/clean.md", Report: clean},
			{Path: "/work/src/dirty.md", Report: dirty},
			{Path: "/work/src/bad.md", Error: check.ErrInvalidEncoding},
		},
		Stats: runner.CheckStats{
			FilesDiscovered: 3,
			FilesChecked:    2,
			FilesPassed:     1,
			FilesFailed:     1,
			FilesErrored:    1,
			Violations:      2,
			ViolationsByRule: map[check.RuleKind]int{
				check.BrokenLink: 1,
				check.LineWidth:  1,
			},
		},
	}
}

func sampleFixResult(dryRun bool) *runner.FixResult {
	fixes := []check.Violation{{Rule: check.HeaderMarker, Line: 0, Text: "# Title"}}
	changed := runner.FixOutcome{
		Path:    "/work/a.md",
		Changed: true,
		Written: !dryRun,
		Fixes:   fixes,
	}
	modified := 0
	if !dryRun {
		changed.BackupPath = "/work/a.md.docscan.bak"
		modified = 1
	}

	return &runner.FixResult{
		DryRun: dryRun,
		Files: []runner.FixOutcome{
			changed,
			{Path: "/work/b.md"},
			{Path: "/work/c.md", Changed: true, Skipped: true, Fixes: fixes},
		},
		Stats: runner.FixStats{
			FilesDiscovered: 3,
			FilesProcessed:  3,
			FilesChanged:    2,
			FilesModified:   modified,
			FilesSkipped:    1,
			Fixes:           2,
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{input: "", want: reporter.FormatLog},
		{input: "log", want: reporter.FormatLog},
		{input: "text", want: reporter.FormatText},
		{input: "table", want: reporter.FormatTable},
		{input: "json", want: reporter.FormatJSON},
		{input: "sarif", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := reporter.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.IsValid())
		})
	}

	assert.False(t, reporter.Format("").IsValid())
}

func TestNew(t *testing.T) {
	_, err := reporter.New(reporter.Options{Format: reporter.FormatLog})
	require.ErrorIs(t, err, reporter.ErrNoSink)

	_, err = reporter.New(reporter.Options{Format: "xml"})
	require.Error(t, err)

	rep, err := reporter.New(reporter.Options{Sink: &recordingSink{}})
	require.NoError(t, err)
	assert.IsType(t, &reporter.LogReporter{}, rep)

	for _, format := range []reporter.Format{reporter.FormatText, reporter.FormatTable, reporter.FormatJSON} {
		rep, err := reporter.New(reporter.Options{Format: format, Writer: &bytes.Buffer{}})
		require.NoError(t, err, format)
		assert.NotNil(t, rep)
	}
}

func TestLogReporter_ReportCheck(t *testing.T) {
	sink := &recordingSink{}
	rep := reporter.NewLogReporter(reporter.Options{Sink: sink, WorkingDir: "/work"})

	count, err := rep.ReportCheck(context.Background(), sampleCheckResult())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	assert.Equal(t, []string{
		"info check relative-link: ok",
		"info check broken-link: ok",
		"info check line-width: ok",
		"info check relative-link: ok",
		"warn check broken-link: error",
		"debug check broken-link: violation",
		"warn check line-width: error",
		"debug check line-width: violation",
		"error check failed",
	}, sink.messages())

	warn := sink.entries[4]
	assert.Equal(t, "src/dirty.md", warn.field("file"))
	assert.Equal(t, 1, warn.field("count"))

	broken := sink.entries[5]
	assert.Equal(t, 2, broken.field("line"), "lines are 0-based")
	assert.Equal(t, "see [x](y", broken.field("text"))
	assert.Nil(t, broken.field("width"))

	wide := sink.entries[7]
	assert.Equal(t, 95, wide.field("width"))

	failed := sink.entries[8]
	assert.ErrorIs(t, failed.field("error").(error), check.ErrInvalidEncoding)
}

func TestLogReporter_ReportFix(t *testing.T) {
	t.Run("write", func(t *testing.T) {
		sink := &recordingSink{}
		rep := reporter.NewLogReporter(reporter.Options{Sink: sink, WorkingDir: "/work"})

		count, err := rep.ReportFix(context.Background(), sampleFixResult(false))
		require.NoError(t, err)
		assert.Equal(t, 2, count)

		assert.Equal(t, []string{
			"debug backup created",
			"info fix header ok",
			"debug fix header-marker: rewritten",
			"debug fix header unchanged",
			"warn fix skipped",
			"debug fix header-marker: rewritten",
		}, sink.messages())
		assert.Equal(t, "a.md.docscan.bak", sink.entries[0].field("backup"))
		assert.True(t, errors.Is(sink.entries[4].field("error").(error), runner.ErrModifiedOnDisk))
	})

	t.Run("dry run", func(t *testing.T) {
		sink := &recordingSink{}
		rep := reporter.NewLogReporter(reporter.Options{Sink: sink})

		_, err := rep.ReportFix(context.Background(), sampleFixResult(true))
		require.NoError(t, err)
		assert.Equal(t, "info fix header pending", sink.messages()[0])
		assert.Equal(t, true, sink.entries[0].field("dry_run"))
	})

	t.Run("diff", func(t *testing.T) {
		result := sampleFixResult(true)
		result.Files[0].Diff = fix.NewDiff(
			document.FromLines("/work/a.md", []string{"# Title\n", "body\n"}),
			document.FromLines("/work/a.md", []string{"% Title\n", "body\n"}),
		)

		sink := &recordingSink{}
		rep := reporter.NewLogReporter(reporter.Options{Sink: sink, WorkingDir: "/work", ShowDiff: true})
		_, err := rep.ReportFix(context.Background(), result)
		require.NoError(t, err)

		assert.Equal(t, []string{
			"info fix header pending",
			"debug fix header-marker: rewritten",
			"info fix diff",
			"debug fix header unchanged",
			"warn fix skipped",
			"debug fix header-marker: rewritten",
		}, sink.messages())
		hunk := sink.entries[2]
		assert.Equal(t, "a.md", hunk.field("file"))
		assert.Contains(t, hunk.field("diff"), "-# Title\n+% Title\n")

		quiet := &recordingSink{}
		rep = reporter.NewLogReporter(reporter.Options{Sink: quiet, WorkingDir: "/work"})
		_, err = rep.ReportFix(context.Background(), result)
		require.NoError(t, err)
		assert.NotContains(t, quiet.messages(), "info fix diff")
	})

	t.Run("error", func(t *testing.T) {
		sink := &recordingSink{}
		rep := reporter.NewLogReporter(reporter.Options{Sink: sink})

		result := &runner.FixResult{Files: []runner.FixOutcome{{Path: "x.md", Error: errors.New("boom")}}}
		_, err := rep.ReportFix(context.Background(), result)
		require.NoError(t, err)
		assert.Equal(t, []string{"error fix failed"}, sink.messages())
	})
}

func TestTextReporter_ReportCheck(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{Writer: &buf, Color: "never", WorkingDir: "/work", ShowSummary: true})

	count, err := rep.ReportCheck(context.Background(), sampleCheckResult())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	out := buf.String()
	assert.Contains(t, out, "  src/dirty.md:3  link is missing its closing parenthesis: see [x](y  (broken-link)\n")
	assert.Contains(t, out, "  src/dirty.md:5  line is 95 characters wide  (line-width)\n")
	assert.Contains(t, out, "src/bad.md: error: invalid UTF-8\n")
	assert.NotContains(t, out, "clean.md")
	assert.Contains(t, out, "2 violations")
}

func TestTextReporter_Empty(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{Writer: &buf, Color: "never", ShowSummary: true})

	count, err := rep.ReportCheck(context.Background(), &runner.CheckResult{})
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Equal(t, "No files to check.\n", buf.String())
}

func TestTextReporter_ReportFix(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{Writer: &buf, Color: "never", WorkingDir: "/work"})

	_, err := rep.ReportFix(context.Background(), sampleFixResult(true))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "a.md: would fix\n")
	assert.Contains(t, out, "c.md: skipped: ")
	assert.NotContains(t, out, "b.md")
}

func TestJSONReporter_ReportCheck(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewJSONReporter(reporter.Options{Writer: &buf, WorkingDir: "/work"})

	count, err := rep.ReportCheck(context.Background(), sampleCheckResult())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	var output reporter.JSONCheckOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))

	assert.Equal(t, "1", output.Version)
	assert.Equal(t, []string{"relative-link", "broken-link", "line-width"}, output.Rules)
	require.Len(t, output.Files, 3)
	assert.Equal(t, "src/clean.md", output.Files[0].Path)
	assert.Empty(t, output.Files[0].Violations)
	assert.Equal(t, []reporter.JSONViolation{
		{Rule: "broken-link", Line: 2, Text: "see [x](y"},
		{Rule: "line-width", Line: 4, Text: strings.Repeat("a", 95), Width: 95},
	}, output.Files[1].Violations)
	assert.Equal(t, "invalid UTF-8", output.Files[2].Error)
	assert.Equal(t, 0, output.Summary.ViolationsByRule["relative-link"])
	assert.Equal(t, 1, output.Summary.ViolationsByRule["line-width"])
	assert.Equal(t, 1, output.Summary.FilesErrored)
}

func TestJSONReporter_NilResult(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewJSONReporter(reporter.Options{Writer: &buf})

	_, err := rep.ReportCheck(context.Background(), nil)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"files": []`)
}

func TestJSONReporter_ReportFix(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewJSONReporter(reporter.Options{Writer: &buf, WorkingDir: "/work"})

	count, err := rep.ReportFix(context.Background(), sampleFixResult(false))
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	var output reporter.JSONFixOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))

	assert.False(t, output.DryRun)
	require.Len(t, output.Files, 3)
	assert.True(t, output.Files[0].Written)
	assert.Equal(t, "a.md.docscan.bak", output.Files[0].Backup)
	assert.True(t, output.Files[2].Skipped)
	assert.Equal(t, 2, output.Summary.Fixes)
}

func TestTableReporter(t *testing.T) {
	t.Run("check", func(t *testing.T) {
		var buf bytes.Buffer
		rep := reporter.NewTableReporter(reporter.Options{Writer: &buf, Color: "never", WorkingDir: "/work"})

		count, err := rep.ReportCheck(context.Background(), sampleCheckResult())
		require.NoError(t, err)
		assert.Equal(t, 2, count)

		out := buf.String()
		assert.Contains(t, out, "FILE")
		assert.Contains(t, out, "src/dirty.md")
		assert.Contains(t, out, "broken-link")
		assert.Contains(t, out, "line is 95 characters wide")
		assert.Contains(t, out, "src/bad.md")
	})

	t.Run("fix", func(t *testing.T) {
		var buf bytes.Buffer
		rep := reporter.NewTableReporter(reporter.Options{Writer: &buf, Color: "never", WorkingDir: "/work"})

		_, err := rep.ReportFix(context.Background(), sampleFixResult(false))
		require.NoError(t, err)

		out := buf.String()
		assert.Contains(t, out, "fixed")
		assert.Contains(t, out, "unchanged")
		assert.Contains(t, out, "skipped")
	})
}

package fix

import (
	"fmt"
	"strings"

	"github.com/yaklabco/docscan/pkg/document"
)

// contextLines is the number of unchanged lines shown around a change.
const contextLines = 3

// Diff is a unified diff between a document and its fixed version.
// Transforms rewrite lines in place, so lines are paired by index.
type Diff struct {
	// Path is the file path for the diff header.
	Path string

	// Hunks contains the diff hunks.
	Hunks []DiffHunk
}

// DiffHunk is one "@@" block. Start is 1-based and Count covers both sides.
type DiffHunk struct {
	Start int
	Count int
	Lines []DiffLine
}

// DiffLineKind indicates the type of diff line.
type DiffLineKind int

const (
	// DiffLineContext is an unchanged line.
	DiffLineContext DiffLineKind = iota

	// DiffLineAdd is a line of the fixed document.
	DiffLineAdd

	// DiffLineRemove is a line of the original document.
	DiffLineRemove
)

// DiffLine is a single line in a hunk, without the diff prefix.
type DiffLine struct {
	Kind    DiffLineKind
	Content string
}

// NewDiff compares before and after line by line.
// Returns nil when they are identical or differ in line count.
func NewDiff(before, after *document.Document) *Diff {
	if before == nil || after == nil || before.Len() != after.Len() {
		return nil
	}

	var changed []int
	for index := range before.Lines {
		if before.Lines[index] != after.Lines[index] {
			changed = append(changed, index)
		}
	}
	if len(changed) == 0 {
		return nil
	}

	diff := &Diff{Path: before.Path}

	for i := 0; i < len(changed); {
		// Merge changes whose context windows touch.
		j := i + 1
		for j < len(changed) && changed[j]-changed[j-1] <= contextLines*2 {
			j++
		}

		start := max(changed[i]-contextLines, 0)
		end := min(changed[j-1]+contextLines+1, before.Len())

		hunk := DiffHunk{Start: start + 1, Count: end - start}
		for index := start; index < end; index++ {
			if before.Lines[index] == after.Lines[index] {
				hunk.Lines = append(hunk.Lines, DiffLine{Kind: DiffLineContext, Content: before.Text(index)})
				continue
			}
			hunk.Lines = append(hunk.Lines,
				DiffLine{Kind: DiffLineRemove, Content: before.Text(index)},
				DiffLine{Kind: DiffLineAdd, Content: after.Text(index)},
			)
		}
		diff.Hunks = append(diff.Hunks, hunk)

		i = j
	}

	return diff
}

// HasChanges returns true if the diff contains any changes.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// String returns the diff in unified format.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")

	var builder strings.Builder
	fmt.Fprintf(&builder, "--- a/%s\n", path)
	fmt.Fprintf(&builder, "+++ b/%s\n", path)

	for _, hunk := range d.Hunks {
		builder.WriteString(hunk.String())
	}

	return builder.String()
}

// String returns the hunk with its "@@" header, one line per entry.
func (h DiffHunk) String() string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "@@ -%d,%d +%d,%d @@\n", h.Start, h.Count, h.Start, h.Count)
	for _, line := range h.Lines {
		switch line.Kind {
		case DiffLineContext:
			fmt.Fprintf(&builder, " %s\n", line.Content)
		case DiffLineAdd:
			fmt.Fprintf(&builder, "+%s\n", line.Content)
		case DiffLineRemove:
			fmt.Fprintf(&builder, "-%s\n", line.Content)
		}
	}
	return builder.String()
}

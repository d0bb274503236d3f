// Package document models a markdown file as an ordered sequence of lines.
package document

import (
	"context"
	"strings"

	"github.com/yaklabco/docscan/pkg/fsutil"
)

// Document is a file identified by its path and held as ordered lines.
// Each line keeps its terminator so Bytes reproduces the original content.
type Document struct {
	// Path identifies the file the document was read from.
	Path string

	// Lines are the document lines, terminators included.
	Lines []string

	// Info is the on-disk state captured at read time. Nil for documents
	// built in memory.
	Info *fsutil.FileInfo
}

// New builds a document from in-memory content.
func New(path string, content []byte) *Document {
	return &Document{
		Path:  path,
		Lines: SplitLines(string(content)),
	}
}

// FromLines builds a document from lines that already carry their terminators.
func FromLines(path string, lines []string) *Document {
	out := make([]string, len(lines))
	copy(out, lines)
	return &Document{Path: path, Lines: out}
}

// Read loads the document at path.
func Read(ctx context.Context, path string) (*Document, error) {
	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	doc := New(path, content)
	doc.Info = info
	return doc, nil
}

// SplitLines splits content after every LF. A trailing LF does not produce an
// extra empty line.
func SplitLines(content string) []string {
	if content == "" {
		return []string{}
	}

	lines := strings.SplitAfter(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// Len returns the number of lines.
func (d *Document) Len() int {
	return len(d.Lines)
}

// Text returns line i without its LF or CRLF terminator.
// Returns "" if i is out of range.
func (d *Document) Text(i int) string {
	if i < 0 || i >= len(d.Lines) {
		return ""
	}
	return TrimTerminator(d.Lines[i])
}

// Bytes joins the lines back into file content.
func (d *Document) Bytes() []byte {
	var builder strings.Builder
	for _, line := range d.Lines {
		builder.WriteString(line)
	}
	return []byte(builder.String())
}

// WithLine returns a copy of the document with line i replaced.
// The receiver is left untouched.
func (d *Document) WithLine(i int, line string) *Document {
	clone := &Document{
		Path:  d.Path,
		Lines: make([]string, len(d.Lines)),
		Info:  d.Info,
	}
	copy(clone.Lines, d.Lines)
	if i >= 0 && i < len(clone.Lines) {
		clone.Lines[i] = line
	}
	return clone
}

// TrimTerminator strips a trailing LF or CRLF.
func TrimTerminator(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}

package pretty

import (
	"io"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// DefaultTermWidth is used when terminal width cannot be determined.
const DefaultTermWidth = 100

// TerminalWidth returns the column count of the terminal behind writer,
// or DefaultTermWidth when writer is not a terminal.
func TerminalWidth(writer io.Writer) int {
	if f, ok := writer.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return DefaultTermWidth
}

// Truncate shortens text to at most width terminal cells, marking the cut
// with an ellipsis. A width of 0 or less leaves text unchanged.
func Truncate(text string, width int) string {
	if width <= 0 || runewidth.StringWidth(text) <= width {
		return text
	}
	return runewidth.Truncate(text, width, "…")
}

package pretty_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/docscan/internal/ui/pretty"
)

func TestTerminalWidth_NonTTY(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, pretty.DefaultTermWidth, pretty.TerminalWidth(&buf))
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  string
	}{
		{name: "fits", text: "short", width: 10, want: "short"},
		{name: "exact", text: "12345", width: 5, want: "12345"},
		{name: "cut", text: "1234567890", width: 5, want: "1234…"},
		{name: "wide runes count twice", text: "日本語テキスト", width: 6, want: "日本…"},
		{name: "no limit", text: "anything", width: 0, want: "anything"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pretty.Truncate(tt.text, tt.width))
		})
	}
}

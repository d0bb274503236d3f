package config

import (
	"fmt"
	"strings"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full writes every setting with its default value.
	// If false, a commented minimal template is generated.
	Full bool
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Full {
		return generateFullTemplate()
	}
	return []byte(minimalTemplate()), nil
}

func minimalTemplate() string {
	var b strings.Builder
	b.WriteString(DefaultTemplateHeader())
	b.WriteString("\n\n")
	fmt.Fprintf(&b, `check:
  # Directory scanned when no paths are given
  dir: %s
  # Lines wider than this are reported
  max_width: %d
  # runes or display
  # width_mode: %s

fix:
  # Directory scanned when no paths are given
  dir: %s
  # marker: "%s"
  # replacement: "%s"

# File extensions treated as markdown
# extensions:
#   - .md

# Descend into subdirectories
# recursive: false

# File patterns to ignore (glob patterns)
# ignore:
#   - "drafts/*"

# Keep a .docscan.bak copy of each fixed file
# backups:
#   enabled: false
`, DefaultCheckDir, DefaultMaxWidth, DefaultWidthMode, DefaultFixDir, DefaultMarker, DefaultReplacement)

	return b.String()
}

func generateFullTemplate() ([]byte, error) {
	cfg := NewConfig()
	cfg.Ignore = []string{}

	out, err := cfg.ToYAMLWithHeader(DefaultTemplateHeader())
	if err != nil {
		return nil, fmt.Errorf("render template: %w", err)
	}
	return out, nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# docscan configuration
# See: https://github.com/yaklabco/docscan`
}

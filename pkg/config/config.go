// Package config defines core configuration types for docscan.
// These types are pure data structures; loading and merging live in
// internal/configloader.
package config

// Default values.
const (
	DefaultCheckDir    = "src"
	DefaultFixDir      = "."
	DefaultMaxWidth    = 80
	DefaultWidthMode   = "runes"
	DefaultMarker      = "#"
	DefaultReplacement = "%"
)

// OutputFormat specifies how results are rendered.
type OutputFormat string

const (
	// FormatLog writes results only as log entries (the default).
	FormatLog   OutputFormat = "log"
	FormatText  OutputFormat = "text"
	FormatJSON  OutputFormat = "json"
	FormatTable OutputFormat = "table"
)

// CheckConfig configures the checker.
type CheckConfig struct {
	// Dir is the directory scanned when no paths are given.
	Dir string `yaml:"dir,omitempty"`

	// MaxWidth is the line width threshold. Lines wider than this are flagged.
	MaxWidth int `yaml:"max_width,omitempty"`

	// WidthMode is "runes" (decoded characters) or "display" (terminal cells).
	WidthMode string `yaml:"width_mode,omitempty"`
}

// FixConfig configures the fixer.
type FixConfig struct {
	// Dir is the directory scanned when no paths are given.
	Dir string `yaml:"dir,omitempty"`

	// Marker is the heading marker rewritten on the first line.
	Marker string `yaml:"marker,omitempty"`

	// Replacement is written in place of Marker.
	Replacement string `yaml:"replacement,omitempty"`
}

// BackupsConfig controls sidecar backups when fixing files.
type BackupsConfig struct {
	Enabled *bool `yaml:"enabled,omitempty"`
}

// Config is the root configuration structure.
type Config struct {
	Check CheckConfig `yaml:"check,omitempty"`
	Fix   FixConfig   `yaml:"fix,omitempty"`

	// Extensions are the file extensions considered markdown.
	Extensions []string `yaml:"extensions,omitempty"`

	// Recursive descends into subdirectories during discovery.
	Recursive *bool `yaml:"recursive,omitempty"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `yaml:"ignore,omitempty"`

	Backups BackupsConfig `yaml:"backups,omitempty"`

	// CLI-level options (not persisted to config files).

	// Format selects the output renderer.
	Format OutputFormat `yaml:"-"`

	// DryRun reports fixes without writing them.
	DryRun bool `yaml:"-"`

	// Strict turns violations into a failing exit status.
	Strict bool `yaml:"-"`
}

// NewConfig returns a Config with defaults.
func NewConfig() *Config {
	return &Config{
		Check: CheckConfig{
			Dir:       DefaultCheckDir,
			MaxWidth:  DefaultMaxWidth,
			WidthMode: DefaultWidthMode,
		},
		Fix: FixConfig{
			Dir:         DefaultFixDir,
			Marker:      DefaultMarker,
			Replacement: DefaultReplacement,
		},
		Extensions: []string{".md"},
		Recursive:  Bool(false),
		Backups:    BackupsConfig{Enabled: Bool(false)},
		Format:     FormatLog,
	}
}

// IsRecursive reports whether discovery descends into subdirectories.
func (c *Config) IsRecursive() bool {
	return c != nil && c.Recursive != nil && *c.Recursive
}

// BackupsEnabled reports whether fixed files get a sidecar backup.
func (c *Config) BackupsEnabled() bool {
	return c != nil && c.Backups.Enabled != nil && *c.Backups.Enabled
}

// Bool returns a pointer to v.
func Bool(v bool) *bool {
	return &v
}

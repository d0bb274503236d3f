package configloader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/docscan/pkg/check"
	"github.com/yaklabco/docscan/pkg/config"
	"github.com/yaklabco/docscan/pkg/fix"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "check.max_width").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// knownFormats lists valid output format values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownFormats = map[config.OutputFormat]bool{
	config.FormatLog:   true,
	config.FormatText:  true,
	config.FormatJSON:  true,
	config.FormatTable: true,
}

// Validate checks a configuration for errors and warnings.
// Zero values are treated as unset so partial file configs validate too.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Check.MaxWidth < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "check.max_width",
			Value:   cfg.Check.MaxWidth,
			Message: "max_width must be a positive number of characters",
		})
	}

	if cfg.Check.WidthMode != "" {
		if _, err := check.ParseWidthMode(cfg.Check.WidthMode); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   "check.width_mode",
				Value:   cfg.Check.WidthMode,
				Message: err.Error(),
			})
		}
	}

	if cfg.Fix.Marker != "" && cfg.Fix.Replacement != "" {
		if _, err := fix.NewHeaderTransform(cfg.Fix.Marker, cfg.Fix.Replacement); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   "fix.replacement",
				Value:   cfg.Fix.Replacement,
				Message: err.Error(),
			})
		}
	}

	if cfg.Format != "" && !knownFormats[cfg.Format] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "format",
			Value:   cfg.Format,
			Message: fmt.Sprintf("invalid format %q; must be one of: log, text, json, table", cfg.Format),
		})
	}

	validateExtensions(cfg, result)
	validateIgnorePatterns(cfg, result)

	return result
}

func validateExtensions(cfg *config.Config, result *ValidationResult) {
	if cfg.Extensions != nil && len(cfg.Extensions) == 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "extensions",
			Message: "at least one extension is required",
		})
		return
	}

	for i, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   fmt.Sprintf("extensions[%d]", i),
				Value:   ext,
				Message: fmt.Sprintf("extension %q does not start with '.'; it matches file name suffixes", ext),
			})
		}
	}
}

// validateIgnorePatterns checks that ignore patterns are valid globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		// filepath.Match returns an error only for malformed patterns
		if _, err := filepath.Match(pattern, ""); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("ignore[%d]", i),
				Value:   pattern,
				Message: fmt.Sprintf("invalid glob pattern: %v", err),
			})
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

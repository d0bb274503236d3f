package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/docscan/pkg/config"
)

// envVarPrefix is the prefix for all docscan environment variables.
const envVarPrefix = "DOCSCAN_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field       string
	typ         envFieldType
	description string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"CHECK_DIR":       {field: "check.dir", typ: envTypeString, description: "Directory scanned by check"},
	"MAX_WIDTH":       {field: "check.max_width", typ: envTypeInt, description: "Maximum line width"},
	"WIDTH_MODE":      {field: "check.width_mode", typ: envTypeString, description: "Width mode: runes or display"},
	"FIX_DIR":         {field: "fix.dir", typ: envTypeString, description: "Directory scanned by fix"},
	"MARKER":          {field: "fix.marker", typ: envTypeString, description: "Heading marker rewritten by fix"},
	"REPLACEMENT":     {field: "fix.replacement", typ: envTypeString, description: "Replacement for the heading marker"},
	"EXTENSIONS":      {field: "extensions", typ: envTypeSlice, description: "Comma-separated markdown extensions"},
	"RECURSIVE":       {field: "recursive", typ: envTypeBool, description: "Descend into subdirectories: true or false"},
	"IGNORE":          {field: "ignore", typ: envTypeSlice, description: "Comma-separated list of ignore patterns"},
	"BACKUPS_ENABLED": {field: "backups.enabled", typ: envTypeBool, description: "Keep backups when fixing: true or false"},
	"FORMAT":          {field: "format", typ: envTypeString, description: "Output format: log, text, json, or table"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with DOCSCAN_ (e.g., DOCSCAN_MAX_WIDTH).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for _, envSuffix := range sortedEnvSuffixes() {
		mapping := envMappings[envSuffix]
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

func sortedEnvSuffixes() []string {
	keys := make([]string, 0, len(envMappings))
	for key := range envMappings {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return &ValidationError{
				Field:   mapping.field,
				Value:   value,
				Message: fmt.Sprintf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value),
			}
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return &ValidationError{
				Field:   mapping.field,
				Value:   value,
				Message: fmt.Sprintf("invalid integer for %s: %q", envVar, value),
			}
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "check.dir":
		cfg.Check.Dir = value
	case "check.width_mode":
		cfg.Check.WidthMode = value
	case "fix.dir":
		cfg.Fix.Dir = value
	case "fix.marker":
		cfg.Fix.Marker = value
	case "fix.replacement":
		cfg.Fix.Replacement = value
	case "format":
		cfg.Format = config.OutputFormat(value)
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "recursive":
		cfg.Recursive = config.Bool(value)
	case "backups.enabled":
		cfg.Backups.Enabled = config.Bool(value)
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "check.max_width":
		cfg.Check.MaxWidth = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "extensions":
		cfg.Extensions = value
	case "ignore":
		cfg.Ignore = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		vars[envVarPrefix+suffix] = mapping.description
	}
	return vars
}

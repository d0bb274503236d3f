package configloader

import "github.com/yaklabco/docscan/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Optional booleans: override overwrites base if override is non-nil
//   - Slices: override replaces base entirely if override is non-nil
//   - Nil/unset values in override do not override values in base
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	if override.Check.Dir != "" {
		result.Check.Dir = override.Check.Dir
	}
	if override.Check.MaxWidth != 0 {
		result.Check.MaxWidth = override.Check.MaxWidth
	}
	if override.Check.WidthMode != "" {
		result.Check.WidthMode = override.Check.WidthMode
	}

	if override.Fix.Dir != "" {
		result.Fix.Dir = override.Fix.Dir
	}
	if override.Fix.Marker != "" {
		result.Fix.Marker = override.Fix.Marker
	}
	if override.Fix.Replacement != "" {
		result.Fix.Replacement = override.Fix.Replacement
	}

	if override.Recursive != nil {
		result.Recursive = config.Bool(*override.Recursive)
	}
	if override.Backups.Enabled != nil {
		result.Backups.Enabled = config.Bool(*override.Backups.Enabled)
	}

	if override.Extensions != nil {
		result.Extensions = append([]string(nil), override.Extensions...)
	}
	if override.Ignore != nil {
		result.Ignore = append([]string(nil), override.Ignore...)
	}

	// CLI-only fields. DryRun and Strict can only be switched on.
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.DryRun {
		result.DryRun = true
	}
	if override.Strict {
		result.Strict = true
	}

	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}

// Package configloader resolves the docscan configuration from defaults,
// YAML files, DOCSCAN_* environment variables and command line flags.
package configloader

import (
	"context"
	"fmt"
	"os"

	"github.com/yaklabco/docscan/pkg/config"
)

// LoadOptions selects the sources Load reads.
type LoadOptions struct {
	// WorkingDir starts the project config search. Empty means the
	// process working directory.
	WorkingDir string

	// ExplicitPath is the --config file. It must exist.
	ExplicitPath string

	// Each Ignore switch skips one source.
	IgnoreUserConfig    bool
	IgnoreProjectConfig bool
	IgnoreEnv           bool

	// CLIConfig holds the flags the user set; unset fields are zero.
	CLIConfig *config.Config
}

// LoadResult is the merged configuration and where it came from.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// LoadedFrom lists the merged files, lowest precedence first.
	LoadedFrom []string

	// Layers names the layer of each LoadedFrom entry.
	Layers []Layer

	// Warnings are validation findings that do not stop a run, such as an
	// extension without a leading dot.
	Warnings []string
}

// Load builds the configuration for a docscan run. Each source overrides
// the one before it:
//
//	defaults (check ./src, fix ., .md, width 80, "#" -> "%")
//	user file        $XDG_CONFIG_HOME/docscan/config.yaml
//	project file     .docscan.yml and friends, searched upward to the VCS root
//	explicit file    --config, replaces the project file
//	environment      DOCSCAN_*
//	flags            opts.CLIConfig
//
// Every file is validated on its own so errors name the file, and the merged
// result is validated again.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		if workDir, err = os.Getwd(); err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	files, err := configFiles(ctx, opts, workDir)
	if err != nil {
		return nil, err
	}

	result := &LoadResult{}
	cfg := config.NewConfig()

	for _, file := range files {
		fileCfg, err := loadConfigFile(file.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", file.layer, err)
		}
		cfg = merge(cfg, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, file.path)
		result.Layers = append(result.Layers, file.layer)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	cfg = merge(cfg, opts.CLIConfig)

	validation := Validate(cfg)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg
	return result, nil
}

// loadConfigFile loads a configuration from a YAML file. Validation errors
// raised while parsing carry the file path.
func loadConfigFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	cfg, err := config.FromYAML(content)
	if err != nil {
		return nil, &ValidationError{FilePath: path, Message: err.Error()}
	}

	validation := ValidateWithFile(cfg, path)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}

	return cfg, nil
}

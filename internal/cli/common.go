package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/docscan/internal/configloader"
	"github.com/yaklabco/docscan/internal/logging"
	"github.com/yaklabco/docscan/pkg/config"
	"github.com/yaklabco/docscan/pkg/reporter"
	"github.com/yaklabco/docscan/pkg/runner"
)

// scanFlags are the discovery and output flags shared by check and fix.
type scanFlags struct {
	recursive bool
	ignore    []string
	format    string
}

func addScanFlags(cmd *cobra.Command, flags *scanFlags) {
	cmd.Flags().BoolVarP(&flags.recursive, "recursive", "r", false, "descend into subdirectories")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringVar(&flags.format, "format", "log", "output format: log, text, table, json")
}

// apply copies the flags the user set into cliCfg.
func (f *scanFlags) apply(cmd *cobra.Command, cliCfg *config.Config) {
	if cmd.Flags().Changed("recursive") {
		cliCfg.Recursive = config.Bool(f.recursive)
	}
	if cmd.Flags().Changed("ignore") {
		cliCfg.Ignore = f.ignore
	}
	if cmd.Flags().Changed("format") {
		cliCfg.Format = config.OutputFormat(f.format)
	}
}

// resolveConfig loads the merged configuration for the current directory.
func resolveConfig(cmd *cobra.Command, cliCfg *config.Config) (*config.Config, string, error) {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, "", fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, "", fmt.Errorf("load configuration: %w", err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration",
			logging.FieldConfig, loadResult.LoadedFrom,
			logging.FieldLayers, loadResult.Layers,
		)
	}

	return loadResult.Config, workDir, nil
}

// discoverFiles lists the files a command processes: args when given,
// otherwise the markdown files of dir.
func discoverFiles(cmd *cobra.Command, cfg *config.Config, workDir, dir string, args []string) ([]string, error) {
	ctx := cmd.Context()

	files, err := runner.Discover(ctx, runner.Options{
		Paths:        args,
		Dir:          dir,
		WorkingDir:   workDir,
		Extensions:   cfg.Extensions,
		Recursive:    cfg.IsRecursive(),
		ExcludeGlobs: cfg.Ignore,
	})
	if err != nil {
		return nil, fmt.Errorf("discover files: %w", err)
	}

	logging.FromContext(ctx).Debug("discovered files",
		logging.FieldPaths, args,
		logging.FieldDir, dir,
		logging.FieldFilesDiscovered, len(files),
	)

	return files, nil
}

// newReporter creates the reporter selected by cfg.Format.
func newReporter(cmd *cobra.Command, cfg *config.Config, workDir string, showDiff bool) (reporter.Reporter, error) {
	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return nil, fmt.Errorf("invalid format: %w", err)
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Sink:        logging.FromContext(cmd.Context()),
		Format:      format,
		Color:       colorMode,
		ShowSummary: true,
		ShowDiff:    showDiff,
		WorkingDir:  workDir,
	})
	if err != nil {
		return nil, fmt.Errorf("create reporter: %w", err)
	}
	return rep, nil
}

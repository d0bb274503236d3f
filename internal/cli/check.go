package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/docscan/internal/configloader"
	"github.com/yaklabco/docscan/internal/logging"
	"github.com/yaklabco/docscan/internal/watch"
	"github.com/yaklabco/docscan/pkg/check"
	"github.com/yaklabco/docscan/pkg/config"
	"github.com/yaklabco/docscan/pkg/reporter"
	"github.com/yaklabco/docscan/pkg/runner"
)

type checkFlags struct {
	scanFlags

	maxWidth  int
	widthMode string
	strict    bool
	watch     bool
}

const checkLongDescription = `Check markdown documents for link and line width problems.

Three rules run over every line, in this order:
  relative-link   a link whose target starts with ../
  broken-link     a link opener with no closing parenthesis on the line
  line-width      a line wider than --max-width characters

By default the .md files directly inside ./src are checked. Pass files or
directories to check them instead.

Results are logged to stderr as one ok or error entry per rule and file.
Add --debug to log every violation with its 0-based line number and text,
or use --format text, table or json for a report on stdout.

Violations are reported but do not fail the command unless --strict is set.

Examples:
  docscan check                     # Check ./src
  docscan check docs/ README.md     # Check specific paths
  docscan check -r --max-width 100  # Recurse, allow 100 characters
  docscan check --format table      # Render a table on stdout
  docscan --debug check             # Log each violation's line and text
  docscan check --strict            # Exit 1 when anything is found
  docscan check --watch             # Re-check whenever a document changes`

func newCheckCommand() *cobra.Command {
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Check markdown documents for link and line width problems",
		Long:  checkLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, flags)
		},
	}

	addScanFlags(cmd, &flags.scanFlags)
	cmd.Flags().IntVar(&flags.maxWidth, "max-width", config.DefaultMaxWidth, "maximum line width")
	cmd.Flags().StringVar(&flags.widthMode, "width-mode", config.DefaultWidthMode,
		"how line width is measured: runes, display")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "exit with status 1 when violations are found")
	cmd.Flags().BoolVarP(&flags.watch, "watch", "w", false, "re-run the check whenever a document changes")
	cmd.MarkFlagsMutuallyExclusive("watch", "strict")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string, flags *checkFlags) error {
	ctx := cmd.Context()

	cliCfg := &config.Config{Strict: flags.strict}
	flags.apply(cmd, cliCfg)
	if cmd.Flags().Changed("max-width") {
		if flags.maxWidth <= 0 {
			return &configloader.ValidationError{
				Field:   "check.max_width",
				Value:   flags.maxWidth,
				Message: "--max-width must be a positive number of characters",
			}
		}
		cliCfg.Check.MaxWidth = flags.maxWidth
	}
	if cmd.Flags().Changed("width-mode") {
		cliCfg.Check.WidthMode = flags.widthMode
	}

	cfg, workDir, err := resolveConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	mode, err := check.ParseWidthMode(cfg.Check.WidthMode)
	if err != nil {
		return err
	}
	evaluator := check.NewEvaluator(check.DefaultRules(check.Options{
		MaxWidth:  cfg.Check.MaxWidth,
		WidthMode: mode,
	})...)

	rep, err := newReporter(cmd, cfg, workDir, false)
	if err != nil {
		return err
	}

	runOnce := func(ctx context.Context) error {
		return checkOnce(ctx, cmd, cfg, workDir, args, evaluator, rep)
	}

	if !flags.watch {
		return runOnce(ctx)
	}
	return watchCheck(ctx, cfg, workDir, args, runOnce)
}

// checkOnce discovers, checks and reports one pass over the documents.
func checkOnce(
	ctx context.Context,
	cmd *cobra.Command,
	cfg *config.Config,
	workDir string,
	args []string,
	evaluator *check.Evaluator,
	rep reporter.Reporter,
) error {
	logger := logging.FromContext(ctx)

	files, err := discoverFiles(cmd, cfg, workDir, cfg.Check.Dir, args)
	if err != nil {
		return err
	}

	result, runErr := runner.NewChecker(evaluator).Run(ctx, files)

	if _, err := rep.ReportCheck(ctx, result); err != nil {
		return errors.Join(fmt.Errorf("report results: %w", err), runErr)
	}
	if runErr != nil {
		return runErr
	}

	logger.Debug("check complete",
		logging.FieldFilesProcessed, result.Stats.FilesChecked,
		logging.FieldFilesWithIssues, result.Stats.FilesFailed,
		logging.FieldFilesFailed, result.Stats.FilesErrored,
		logging.FieldViolations, result.Stats.Violations,
	)

	if result.HasErrors() {
		return ErrFilesFailed
	}
	if cfg.Strict && result.HasViolations() {
		return ErrViolationsFound
	}
	return nil
}

// watchCheck runs a check now and again after every change until ctx is done.
// Per-file failures are reported and watching continues.
func watchCheck(
	ctx context.Context,
	cfg *config.Config,
	workDir string,
	args []string,
	runOnce func(context.Context) error,
) error {
	logger := logging.FromContext(ctx)

	dirs, err := watchDirs(workDir, cfg.Check.Dir, args)
	if err != nil {
		return err
	}

	rerun := func(ctx context.Context) error {
		err := runOnce(ctx)
		if err != nil && !IsSilent(err) && ctx.Err() == nil {
			logger.Error("check failed", logging.FieldError, err)
		}
		return nil
	}

	_ = rerun(ctx)

	w := watch.New(watch.Options{
		Dirs:       dirs,
		Recursive:  cfg.IsRecursive(),
		Extensions: cfg.Extensions,
	})
	return w.Run(ctx, rerun)
}

// watchDirs lists the directories holding the documents a check covers.
// Files contribute their parent directory.
func watchDirs(workDir, dir string, args []string) ([]string, error) {
	paths := args
	if len(paths) == 0 {
		paths = []string{dir}
	}

	seen := make(map[string]bool, len(paths))
	dirs := make([]string, 0, len(paths))
	for _, path := range paths {
		if !filepath.IsAbs(path) {
			path = filepath.Join(workDir, path)
		}

		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("watch %s: %w", path, err)
		}
		if !info.IsDir() {
			path = filepath.Dir(path)
		}

		path = filepath.Clean(path)
		if !seen[path] {
			seen[path] = true
			dirs = append(dirs, path)
		}
	}
	return dirs, nil
}

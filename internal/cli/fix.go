package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/docscan/internal/logging"
	"github.com/yaklabco/docscan/pkg/config"
	"github.com/yaklabco/docscan/pkg/fix"
	"github.com/yaklabco/docscan/pkg/runner"
)

type fixFlags struct {
	scanFlags

	dryRun      bool
	diff        bool
	backups     bool
	noBackups   bool
	marker      string
	replacement string
}

const fixLongDescription = `Rewrite the heading marker on the first line of markdown documents.

When the first line of a document contains the marker (default "#"), its
first occurrence is replaced (default "%"). Other lines are never touched.
Changed files are written back atomically; unchanged files are not written.

By default the .md files directly inside the current directory are fixed.
Pass files or directories to fix them instead.

Examples:
  docscan fix                       # Fix ./*.md
  docscan fix --dry-run --diff      # Show what would change
  docscan fix --backups docs/       # Keep a .docscan.bak copy of each file
  docscan fix --marker '##' --replacement '%%'`

func newFixCommand() *cobra.Command {
	flags := &fixFlags{}

	cmd := &cobra.Command{
		Use:   "fix [paths...]",
		Short: "Rewrite the heading marker on the first line of markdown documents",
		Long:  fixLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFix(cmd, args, flags)
		},
	}

	addScanFlags(cmd, &flags.scanFlags)
	cmd.Flags().BoolVarP(&flags.dryRun, "dry-run", "n", false, "report what would change without writing")
	cmd.Flags().BoolVar(&flags.diff, "diff", false, "print a unified diff for each changed file")
	cmd.Flags().BoolVar(&flags.backups, "backups", false, "keep a .docscan.bak copy of each fixed file")
	cmd.Flags().BoolVar(&flags.noBackups, "no-backups", false, "disable backups even if the config enables them")
	cmd.Flags().StringVar(&flags.marker, "marker", config.DefaultMarker, "heading marker to rewrite")
	cmd.Flags().StringVar(&flags.replacement, "replacement", config.DefaultReplacement, "replacement for the marker")
	cmd.MarkFlagsMutuallyExclusive("backups", "no-backups")

	return cmd
}

func runFix(cmd *cobra.Command, args []string, flags *fixFlags) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	cliCfg := &config.Config{DryRun: flags.dryRun}
	flags.apply(cmd, cliCfg)
	if cmd.Flags().Changed("marker") {
		cliCfg.Fix.Marker = flags.marker
	}
	if cmd.Flags().Changed("replacement") {
		cliCfg.Fix.Replacement = flags.replacement
	}
	switch {
	case cmd.Flags().Changed("backups"):
		cliCfg.Backups.Enabled = config.Bool(flags.backups)
	case cmd.Flags().Changed("no-backups"):
		cliCfg.Backups.Enabled = config.Bool(!flags.noBackups)
	}

	cfg, workDir, err := resolveConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	transform, err := fix.NewHeaderTransform(cfg.Fix.Marker, cfg.Fix.Replacement)
	if err != nil {
		return fmt.Errorf("configure header fix: %w", err)
	}

	rep, err := newReporter(cmd, cfg, workDir, flags.diff)
	if err != nil {
		return err
	}

	files, err := discoverFiles(cmd, cfg, workDir, cfg.Fix.Dir, args)
	if err != nil {
		return err
	}

	fixer := runner.NewFixer(fix.NewFixer(transform), runner.FixOptions{
		DryRun:  cfg.DryRun,
		Backups: cfg.BackupsEnabled(),
	})
	result, runErr := fixer.Run(ctx, files)

	if _, err := rep.ReportFix(ctx, result); err != nil {
		return errors.Join(fmt.Errorf("report results: %w", err), runErr)
	}
	if runErr != nil {
		return runErr
	}

	logger.Debug("fix complete",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesModified, result.Stats.FilesModified,
		logging.FieldFilesFailed, result.Stats.FilesErrored,
		logging.FieldDryRun, result.DryRun,
	)

	if result.HasErrors() {
		return ErrFilesFailed
	}
	return nil
}

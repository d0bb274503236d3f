// Package cli provides the Cobra command structure for docscan.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/docscan/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

type rootFlags struct {
	debug      bool
	configPath string
	color      string
	logFormat  string
}

// NewRootCommand creates the root docscan command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "docscan",
		Short: "Check and fix a directory of markdown documents",
		Long: `docscan keeps a directory of markdown documents tidy.

The check command reports relative links that leave the directory, links
missing their closing parenthesis and lines wider than the configured
maximum. The fix command rewrites the heading marker on the first line of
each document and writes the result back atomically.

Results are written as log entries by default; use --format to render them
as text, a table or JSON instead.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateColor(flags.color); err != nil {
				return err
			}

			formatter, err := logging.ParseFormatter(flags.logFormat)
			if err != nil {
				return err
			}

			level := "info"
			if flags.debug {
				level = "debug"
			}

			logger := logging.NewWithWriter(cmd.ErrOrStderr(), level)
			logger.SetFormatter(formatter)
			logging.SetDefault(logger)

			cmd.SetContext(logging.WithLogger(cmd.Context(), logger))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable debug logging, including every violation")
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&flags.color, "color", "auto",
		"colorize output: auto, always, never")
	rootCmd.PersistentFlags().StringVar(&flags.logFormat, "log-format", "text",
		"log entry format: text, json, logfmt")

	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(newFixCommand())
	rootCmd.AddCommand(newRulesCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	NewHelpFormatter(flags.color, os.Stdout).ApplyToCommand(rootCmd)

	return rootCmd
}

// validateColor rejects unknown --color values.
func validateColor(mode string) error {
	switch mode {
	case "auto", "always", "never":
		return nil
	default:
		return fmt.Errorf("invalid color mode %q; must be one of: auto, always, never", mode)
	}
}

package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/docscan/internal/logging"
	"github.com/yaklabco/docscan/pkg/check"
	"github.com/yaklabco/docscan/pkg/fix"
)

const formatJSON = "json"

// ruleInfo describes one rule in the rules listing.
type ruleInfo struct {
	Name        string `json:"name"`
	Command     string `json:"command"`
	Description string `json:"description"`
}

// listRules returns the check rules in evaluation order followed by the fix
// transform.
func listRules() []ruleInfo {
	var infos []ruleInfo
	for _, rule := range check.DefaultRules(check.Options{}) {
		infos = append(infos, ruleInfo{
			Name:        string(rule.Kind()),
			Command:     "check",
			Description: rule.Description(),
		})
	}

	header := fix.DefaultHeaderTransform()
	infos = append(infos, ruleInfo{
		Name:    string(header.Kind()),
		Command: "fix",
		Description: fmt.Sprintf("rewrites the first %q on the first line to %q",
			header.Marker(), header.Replacement()),
	})
	return infos
}

func newRulesCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the check rules and the fix transform",
		Long: `List the rules docscan applies: the three check rules in the order they
are evaluated, and the heading marker transform applied by fix.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rules := listRules()

			if format == formatJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(rules); err != nil {
					return fmt.Errorf("encoding rules: %w", err)
				}
				return nil
			}

			logger := logging.NewWithWriter(cmd.OutOrStdout(), "info")
			for _, rule := range rules {
				logger.Info(rule.Name,
					logging.FieldCommand, rule.Command,
					logging.FieldDescription, rule.Description,
				)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json")

	return cmd
}

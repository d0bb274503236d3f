package cli

import (
	"io"
	"strings"
	"text/template"

	"github.com/spf13/cobra"

	"github.com/yaklabco/docscan/internal/ui/pretty"
)

// minFlagGap is the run of spaces pflag puts between a flag and its usage.
const minFlagGap = 2

// HelpFormatter renders Cobra help and usage with the output styles.
type HelpFormatter struct {
	styles *pretty.Styles
}

// NewHelpFormatter creates a help formatter for the given color mode.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	return &HelpFormatter{styles: pretty.NewStyles(pretty.IsColorEnabled(colorMode, writer))}
}

const usageTemplate = `{{ heading "Usage:" }}
{{- if .Runnable}}
  {{ command .UseLine }}{{end}}
{{- if .HasAvailableSubCommands}}
  {{ command .CommandPath }} [command]{{end}}

{{- if .HasExample}}

{{ heading "Examples:" }}
{{ dim .Example }}
{{- end}}

{{- if .HasAvailableSubCommands}}

{{ heading "Available Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ subcommand (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}
{{- end}}

{{- if .HasAvailableSubCommands}}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

const helpTemplate = `{{with (or .Long .Short)}}{{ trimTrailing . }}

{{end}}` + usageTemplate

func (h *HelpFormatter) funcs() template.FuncMap {
	return template.FuncMap{
		"heading":      h.styles.SummaryTitle.Render,
		"command":      h.styles.Bold.Render,
		"subcommand":   h.styles.Success.Render,
		"dim":          h.styles.Dim.Render,
		"flags":        h.renderFlags,
		"rpad":         rpad,
		"trimTrailing": trimTrailingWhitespace,
	}
}

// renderFlags styles the output of pflag's FlagUsages.
func (h *HelpFormatter) renderFlags(flags interface{ FlagUsages() string }) string {
	usages := strings.TrimSuffix(flags.FlagUsages(), "\n")
	if usages == "" {
		return ""
	}

	lines := strings.Split(usages, "\n")
	for i, line := range lines {
		lines[i] = h.renderFlagLine(line)
	}
	return strings.Join(lines, "\n")
}

// renderFlagLine styles "  -f, --flag type   usage".
func (h *HelpFormatter) renderFlagLine(line string) string {
	trimmed := strings.TrimLeft(line, " ")
	indent := line[:len(line)-len(trimmed)]

	definition, usage, ok := splitFlagLine(trimmed)
	if !ok {
		return line
	}

	tokens := strings.Fields(definition)
	for i, token := range tokens {
		if strings.HasPrefix(token, "-") {
			name := strings.TrimSuffix(token, ",")
			tokens[i] = h.styles.Info.Render(name) + token[len(name):]
		} else {
			tokens[i] = h.styles.Dim.Render(token)
		}
	}

	return indent + strings.Join(tokens, " ") + "   " + usage
}

// splitFlagLine splits a flag line at the first run of minFlagGap spaces.
func splitFlagLine(line string) (string, string, bool) {
	gap := strings.Repeat(" ", minFlagGap)
	idx := strings.Index(line, gap)
	if idx < 0 {
		return line, "", false
	}
	usage := strings.TrimLeft(line[idx:], " ")
	if usage == "" {
		return line, "", false
	}
	return line[:idx], usage, true
}

// ApplyToCommand installs the styled templates on cmd. Subcommands inherit them.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	usage := template.Must(template.New("usage").Funcs(h.funcs()).Parse(usageTemplate))
	help := template.Must(template.New("help").Funcs(h.funcs()).Parse(helpTemplate))

	cmd.SetUsageFunc(func(command *cobra.Command) error {
		return usage.Execute(command.OutOrStderr(), command)
	})

	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		if err := help.Execute(command.OutOrStdout(), command); err != nil {
			command.PrintErrln(err)
		}
	})
}

func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}

func trimTrailingWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}

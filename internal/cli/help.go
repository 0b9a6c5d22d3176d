package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdbooklint/internal/ui/pretty"
)

// HelpFormatter renders Cobra help and usage with the diagnostic palette:
// headings bold, commands and flags in the rule ID colour, types dimmed.
type HelpFormatter struct {
	styles *pretty.Styles
}

// NewHelpFormatter creates a help formatter for writer under colorMode.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	return &HelpFormatter{styles: pretty.NewStyles(pretty.IsColorEnabled(colorMode, writer))}
}

const usageTemplate = `{{ heading "Usage:" }}
  {{if .Runnable}}{{ command .UseLine }}{{end}}
  {{if .HasAvailableSubCommands}}{{ command .CommandPath }} [command]{{end}}

{{- if .HasExample}}

{{ heading "Examples:" }}
{{ dim .Example }}
{{- end}}

{{- if .HasAvailableSubCommands}}

{{ heading "Available Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ command (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
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
		"heading":      h.styles.Bold.Render,
		"command":      h.styles.RuleID.Render,
		"dim":          h.styles.Dim.Render,
		"flags":        h.flagUsages,
		"rpad":         rpad,
		"trimTrailing": trimTrailingWhitespaces,
	}
}

// flagUsages styles pflag's FlagUsages output line by line.
func (h *HelpFormatter) flagUsages(flags interface{ FlagUsages() string }) string {
	usages := strings.TrimSuffix(flags.FlagUsages(), "\n")
	if usages == "" {
		return ""
	}

	lines := strings.Split(usages, "\n")
	for i, line := range lines {
		lines[i] = h.flagLine(line)
	}
	return strings.Join(lines, "\n")
}

// flagLine styles "  -f, --flag type   description". The flag part ends at
// the first run of two or more spaces.
func (h *HelpFormatter) flagLine(line string) string {
	trimmed := strings.TrimLeft(line, " ")
	indent := line[:len(line)-len(trimmed)]

	split := strings.Index(trimmed, "  ")
	if split < 0 {
		return line
	}
	flagPart, desc := trimmed[:split], strings.TrimLeft(trimmed[split:], " ")

	tokens := strings.Fields(flagPart)
	for i, token := range tokens {
		if name, ok := strings.CutSuffix(token, ","); ok && strings.HasPrefix(name, "-") {
			tokens[i] = h.styles.RuleID.Render(name) + ","
		} else if strings.HasPrefix(token, "-") {
			tokens[i] = h.styles.RuleID.Render(token)
		} else {
			tokens[i] = h.styles.Dim.Render(token)
		}
	}

	return indent + strings.Join(tokens, " ") + "   " + desc
}

// ApplyToCommand installs the styled templates on cmd and its subcommands.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	funcs := h.funcs()

	cmd.SetUsageFunc(func(c *cobra.Command) error {
		tmpl, err := template.New("usage").Funcs(funcs).Parse(usageTemplate)
		if err != nil {
			return fmt.Errorf("parse usage template: %w", err)
		}
		return tmpl.Execute(c.OutOrStderr(), c)
	})

	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		tmpl, err := template.New("help").Funcs(funcs).Parse(helpTemplate)
		if err != nil {
			c.PrintErrln(err)
			return
		}
		if err := tmpl.Execute(c.OutOrStdout(), c); err != nil {
			c.PrintErrln(err)
		}
	})
}

func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}

func trimTrailingWhitespaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}

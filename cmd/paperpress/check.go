package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"paperpress"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Lint front-matter, slugs and links",
	Long: `Check every content file against the front-matter schema, flag
duplicate slugs and verify that internal links resolve.

External links are only checked over the network when requested, either
with --external or with lint.externalLinks in site.yaml.

Examples:
  paperpress check             # Schema and internal links
  paperpress check --external  # Also HEAD every external link`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().Bool("external", false, "also check external links over the network")
}

func runCheck(cmd *cobra.Command, args []string) error {
	printer := newPrinter()

	var opts []paperpress.LinterOption
	if external, _ := cmd.Flags().GetBool("external"); external {
		opts = append(opts, paperpress.WithExternalLinks(true))
	}

	findings, err := paperpress.NewLinter(siteCfg, opts...).Run(cmd.Context())
	if err != nil {
		return &CLIError{
			Summary:  "check failed",
			Detail:   err.Error(),
			ExitCode: ExitGeneral,
		}
	}

	if len(findings) == 0 {
		printer.Success("no problems found")
		return nil
	}

	table := NewTable([]string{"SEVERITY", "RULE", "FILE", "MESSAGE"}, false)
	for _, f := range findings {
		table.AddRow([]string{printer.SeverityBadge(f.Severity), f.Rule, f.File, f.Message})
	}
	table.Render()

	if paperpress.HasErrors(findings) {
		return &CLIError{
			Summary:    fmt.Sprintf("%d problems found", len(findings)),
			Suggestion: "Fix the findings above, or tune lint.severity in site.yaml",
			ExitCode:   ExitLintError,
		}
	}
	printer.Warning("%d warnings", len(findings))
	printer.PrintHints("check")
	return nil
}

package main

import (
	"strings"

	"github.com/spf13/cobra"

	"paperpress"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List posts and their status",
	Long: `List every post with its slug, publication date, tags and status.

Examples:
  paperpress list            # Published and scheduled posts
  paperpress list --drafts   # Include drafts`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().Bool("drafts", false, "include draft posts")
}

func runList(cmd *cobra.Command, args []string) error {
	printer := newPrinter()
	drafts, _ := cmd.Flags().GetBool("drafts")

	col, err := loadContent()
	if err != nil {
		return err
	}

	table := NewTable([]string{"TITLE", "SLUG", "PUBLISHED", "TAGS", "STATUS"}, printer.IsQuiet())
	addRow := func(p paperpress.Post, status string) {
		badge := printer.StatusBadge(status)
		if p.Featured {
			badge += " ★"
		}
		table.AddRow([]string{
			p.Title,
			p.Slug,
			p.PubDatetime.In(siteCfg.Location()).Format("2006-01-02"),
			strings.Join(p.Tags, ", "),
			badge,
		})
	}

	for _, p := range col.Posts {
		addRow(p, "published")
	}
	for _, p := range col.Scheduled {
		addRow(p, "scheduled")
	}
	if drafts {
		for _, p := range col.Drafts {
			addRow(p, "draft")
		}
	}
	table.Render()

	hidden := len(col.Drafts)
	if !drafts && hidden > 0 {
		printer.Info("%d drafts hidden; pass --drafts to show them", hidden)
	}
	printer.PrintHints("list")
	return nil
}

// loadContent loads the content directory with the configured defaults.
func loadContent() (*paperpress.Collection, error) {
	store := paperpress.NewStore(contentDir(),
		paperpress.WithDefaultAuthor(siteCfg.Author),
		paperpress.WithScheduledMargin(siteCfg.ScheduledPostMargin),
	)
	col, err := store.Load()
	if err != nil {
		return nil, &CLIError{
			Summary:    "loading content failed",
			Detail:     err.Error(),
			Suggestion: "Run 'paperpress check' for the full list of content problems",
			ExitCode:   ExitGeneral,
		}
	}
	return col, nil
}

package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"paperpress/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show content statistics",
	Long: `Summarize the content directory: post counts, word counts, the
average reading time, tag frequencies and posts per year.

Examples:
  paperpress stats             # Full summary
  paperpress stats --top 5     # Only the five most used tags`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().Int("top", 10, "number of tags to show")
}

func runStats(cmd *cobra.Command, args []string) error {
	printer := newPrinter()
	top, _ := cmd.Flags().GetInt("top")

	col, err := loadContent()
	if err != nil {
		return err
	}
	report := stats.Collect(col, top)

	printer.Header("Overview")
	overview := NewTable([]string{"METRIC", "VALUE"}, printer.IsQuiet())
	overview.AddRow([]string{"Published posts", strconv.Itoa(report.Posts)})
	overview.AddRow([]string{"Drafts", strconv.Itoa(report.Drafts)})
	overview.AddRow([]string{"Scheduled", strconv.Itoa(report.Scheduled)})
	overview.AddRow([]string{"Pages", strconv.Itoa(report.Pages)})
	overview.AddRow([]string{"Total words", strconv.Itoa(report.TotalWords)})
	overview.AddRow([]string{"Words per post", strconv.Itoa(report.AvgWords)})
	overview.AddRow([]string{"Mean reading time", report.ReadingTime})
	overview.Render()

	if len(report.TopTags) > 0 {
		printer.Header("Top tags")
		tags := NewTable([]string{"TAG", "POSTS"}, printer.IsQuiet())
		for _, tc := range report.TopTags {
			tags.AddRow([]string{tc.Tag, strconv.Itoa(tc.Count)})
		}
		tags.Render()
	}

	if len(report.Years) > 0 {
		printer.Header("Posts per year")
		years := NewTable([]string{"YEAR", "POSTS"}, printer.IsQuiet())
		for _, y := range report.Years {
			years.AddRow([]string{strconv.Itoa(y.Year), strconv.Itoa(y.Posts)})
		}
		years.Render()
	}
	return nil
}

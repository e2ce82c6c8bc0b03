package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"paperpress"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Render the site into the output directory",
	Long: `Render every post, page, feed and asset into a static site.

Examples:
  paperpress build                         # Render into dist/
  paperpress build --drafts                # Include draft posts
  paperpress build --clean                 # Start from an empty output dir
  paperpress build --base-url http://localhost:8080   # Preview build`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringP("out", "o", "", "output directory (default from site.yaml)")
	buildCmd.Flags().Bool("drafts", false, "include draft posts")
	buildCmd.Flags().Bool("clean", false, "delete the output directory before building")
	buildCmd.Flags().String("base-url", "", "override the configured website URL")
}

func runBuild(cmd *cobra.Command, args []string) error {
	printer := newPrinter()

	out, _ := cmd.Flags().GetString("out")
	drafts, _ := cmd.Flags().GetBool("drafts")
	clean, _ := cmd.Flags().GetBool("clean")
	baseURL, _ := cmd.Flags().GetString("base-url")

	var opts []paperpress.Option
	if out != "" {
		opts = append(opts, paperpress.WithOutputDir(out))
	}
	if clean {
		opts = append(opts, paperpress.WithClean(true))
	}
	if baseURL != "" {
		opts = append(opts, paperpress.WithBaseURL(baseURL))
	}
	if drafts {
		opts = append(opts, paperpress.WithStoreOptions(paperpress.WithDrafts(true)))
	}

	stats, err := paperpress.New(siteCfg, opts...).Build()
	if err != nil {
		return &CLIError{
			Summary:    "build failed",
			Detail:     err.Error(),
			Suggestion: "Run 'paperpress check' to pinpoint content problems",
			ExitCode:   ExitBuildError,
		}
	}

	target := out
	if target == "" {
		target = siteCfg.OutputDir
	}
	printer.Success("site built into %s in %s", target, stats.Elapsed.Round(time.Millisecond))
	printer.Print("  %d posts, %d pages, %d tags (mean read %s)",
		stats.Posts, stats.Pages, stats.Tags, stats.MeanReadingTime())
	if stats.Drafts > 0 || stats.Scheduled > 0 {
		printer.Print("  skipped: %d drafts, %d scheduled", stats.Drafts, stats.Scheduled)
	}
	printer.Print("  %d files, %s", stats.Files, formatBytes(stats.Bytes))
	printer.PrintHints("build")
	return nil
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

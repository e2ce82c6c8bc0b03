package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"paperpress"
	"paperpress/scaffold"
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Scaffold a site or a post",
}

var newSiteCmd = &cobra.Command{
	Use:   "site <directory>",
	Short: "Scaffold a fresh blog",
	Long: `Create a new blog in the given directory: site.yaml, a sample post,
an about page, the editor chat mode and a README.

Examples:
  paperpress new site myblog
  paperpress new site myblog --author "Jane Doe" --url https://blog.jane.dev`,
	Args: cobra.ExactArgs(1),
	RunE: runNewSite,
}

var newPostCmd = &cobra.Command{
	Use:   "post <title>",
	Short: "Create a draft post",
	Long: `Write content/<slug>.md with the front-matter prefilled. New posts
start as drafts.

Examples:
  paperpress new post "Shipping the v2 pipeline"
  paperpress new post "Quick note" --tags go,tooling`,
	Args: cobra.MinimumNArgs(1),
	RunE: runNewPost,
}

func init() {
	rootCmd.AddCommand(newCmd)
	newCmd.AddCommand(newSiteCmd, newPostCmd)

	newSiteCmd.Flags().String("title", "", "site title (default: the directory name)")
	newSiteCmd.Flags().String("author", "", "author name")
	newSiteCmd.Flags().String("url", "http://localhost:3000", "canonical site URL")
	newSiteCmd.Flags().String("description", "", "site description")

	newPostCmd.Flags().StringSlice("tags", nil, "tags for the post")
	newPostCmd.Flags().String("description", "", "one-line description")
}

func runNewSite(cmd *cobra.Command, args []string) error {
	printer := newPrinter()
	dir := args[0]

	title, _ := cmd.Flags().GetString("title")
	author, _ := cmd.Flags().GetString("author")
	website, _ := cmd.Flags().GetString("url")
	description, _ := cmd.Flags().GetString("description")

	if title == "" {
		title = toTitle(filepath.Base(dir))
	}
	if description == "" {
		description = "A personal blog."
	}

	err := scaffold.Render(dir, scaffold.Site{
		Title:       title,
		Author:      author,
		Website:     website,
		Description: description,
	})
	if err != nil {
		return &CLIError{
			Summary:    "scaffolding failed",
			Detail:     err.Error(),
			Suggestion: "Pick a new or empty directory",
			ExitCode:   ExitGeneral,
		}
	}

	printer.Success("new site in %s", dir)
	printer.Print("")
	printer.Print("Next steps:")
	printer.Print("  cd %s", dir)
	printer.Print("  paperpress build")
	printer.PrintHints("new site")
	return nil
}

func runNewPost(cmd *cobra.Command, args []string) error {
	printer := newPrinter()
	title := strings.Join(args, " ")

	slug := paperpress.Slugify(title)
	if slug == "" {
		return &CLIError{
			Summary:  fmt.Sprintf("cannot derive a slug from %q", title),
			ExitCode: ExitUsageError,
		}
	}

	tags, _ := cmd.Flags().GetStringSlice("tags")
	description, _ := cmd.Flags().GetString("description")

	stub, err := scaffold.PostStub(scaffold.Post{
		Title:       title,
		Description: description,
		Author:      siteCfg.Author,
		Published:   time.Now(),
		Tags:        tags,
	})
	if err != nil {
		return err
	}

	path := filepath.Join(contentDir(), slug+".md")
	if _, err := os.Stat(path); err == nil {
		return &CLIError{
			Summary:    fmt.Sprintf("%s already exists", path),
			Suggestion: "Pick another title, or edit the existing file",
			ExitCode:   ExitUsageError,
		}
	}
	if err := os.MkdirAll(contentDir(), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(path, stub, 0o644); err != nil {
		return err
	}

	printer.Success("created %s", path)
	printer.PrintHints("new post")
	return nil
}

// toTitle converts a hyphenated or lowercase name to a title-case string.
// e.g. "my-blog" -> "My Blog", "myblog" -> "Myblog"
func toTitle(s string) string {
	parts := strings.Split(s, "-")
	for i, p := range parts {
		if len(p) > 0 {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}

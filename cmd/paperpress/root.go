// Package main implements the paperpress CLI.
package main

import (
	"github.com/spf13/cobra"

	"paperpress"
)

var (
	cfgFile string
	verbose bool
	quiet   bool
	noColor bool

	siteCfg paperpress.SiteConfig
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "paperpress",
	Short: "Static blog generator",
	Long: `paperpress renders a directory of markdown posts into a complete
static site: pages, feeds, sitemap, search index and social images.

Example usage:
  paperpress new site myblog   # Scaffold a fresh blog
  paperpress new post "Title"  # Draft a new post
  paperpress build             # Render the site into dist/
  paperpress check             # Lint front-matter and links
  paperpress list              # Show every post and its status`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initRun(cmd)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is site.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose diagnostics on stderr")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// initRun configures logging and loads the site configuration.
func initRun(cmd *cobra.Command) error {
	level := ""
	switch {
	case verbose:
		level = "debug"
	case quiet:
		level = "error"
	}
	paperpress.ConfigureLogging(paperpress.LogConfig{Level: level})

	if configFree(cmd) {
		return nil
	}

	cfg, err := paperpress.LoadConfig(cfgFile)
	if err != nil {
		return &CLIError{
			Summary:    "configuration is invalid",
			Detail:     err.Error(),
			Suggestion: "Fix site.yaml, or pass --config with a valid file",
			ExitCode:   ExitConfigError,
		}
	}
	siteCfg = cfg
	return nil
}

// configFree reports whether cmd runs without a site configuration.
// `new site` runs before any site.yaml exists; version never needs one.
func configFree(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "version", "help", "completion":
		return true
	case "site":
		return cmd.Parent() != nil && cmd.Parent().Name() == "new"
	}
	return false
}

func newPrinter() *Printer {
	mode := ColorAuto
	if noColor {
		mode = ColorNever
	}
	return NewPrinter(PrinterOptions{ColorMode: mode, Quiet: quiet})
}

// contentDir returns the configured content directory.
func contentDir() string {
	if siteCfg.ContentDir != "" {
		return siteCfg.ContentDir
	}
	return "content"
}

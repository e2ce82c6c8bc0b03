package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"paperpress"
)

func setupNewTest(t *testing.T) {
	t.Helper()
	newPostCmd.Flags().Set("description", "")
	quiet = true
}

func TestNewPostWritesStub(t *testing.T) {
	setupNewTest(t)
	dir := setupSite(t)

	rootCmd.SetArgs([]string{"new", "post", "My First Draft", "--tags", "go,tooling"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("new post failed: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "content", "my-first-draft.md"))
	if err != nil {
		t.Fatalf("stub not written: %v", err)
	}
	fm, _, err := paperpress.ParseFrontMatter(raw)
	if err != nil {
		t.Fatalf("stub does not parse:\n%s\n%v", raw, err)
	}
	if fm.Title != "My First Draft" {
		t.Errorf("title = %q", fm.Title)
	}
	if !fm.Draft {
		t.Error("new posts must start as drafts")
	}
	if fm.Author != "Alex Rivera" {
		t.Errorf("author = %q, want the configured author", fm.Author)
	}
	if len(fm.Tags) != 2 {
		t.Errorf("tags = %v", fm.Tags)
	}
	if fm.PubDatetime.IsZero() {
		t.Error("pubDatetime must be prefilled")
	}
}

func TestNewPostRefusesOverwrite(t *testing.T) {
	setupNewTest(t)
	setupSite(t)

	rootCmd.SetArgs([]string{"new", "post", "Same Title"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("first new post failed: %v", err)
	}

	rootCmd.SetArgs([]string{"new", "post", "Same Title"})
	err := rootCmd.Execute()

	var cliErr *CLIError
	if !errors.As(err, &cliErr) || cliErr.ExitCode != ExitUsageError {
		t.Fatalf("got %v, want CLIError with exit code %d", err, ExitUsageError)
	}
}

func TestNewSiteCommand(t *testing.T) {
	setupNewTest(t)
	dir := t.TempDir()
	t.Chdir(dir)

	rootCmd.SetArgs([]string{"new", "site", "my-blog", "--author", "Jane Doe"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("new site failed: %v", err)
	}

	cfg, err := paperpress.LoadConfig(filepath.Join(dir, "my-blog", "site.yaml"))
	if err != nil {
		t.Fatalf("scaffolded config does not load: %v", err)
	}
	if cfg.Title != "My Blog" {
		t.Errorf("title = %q, want it derived from the directory name", cfg.Title)
	}
	if cfg.Author != "Jane Doe" {
		t.Errorf("author = %q", cfg.Author)
	}
}

func TestNewSiteRefusesNonEmptyDir(t *testing.T) {
	setupNewTest(t)
	dir := t.TempDir()
	t.Chdir(dir)
	mustWriteFile(t, filepath.Join(dir, "taken", "file.txt"), "x")

	rootCmd.SetArgs([]string{"new", "site", "taken"})
	if err := rootCmd.Execute(); err == nil {
		t.Fatal("new site into a non-empty directory must fail")
	}
}

func TestToTitle(t *testing.T) {
	cases := map[string]string{
		"my-blog":      "My Blog",
		"myblog":       "Myblog",
		"paper-trails": "Paper Trails",
	}
	for in, want := range cases {
		if got := toTitle(in); got != want {
			t.Errorf("toTitle(%q) = %q, want %q", in, got, want)
		}
	}
}

package main

import (
	"errors"
	"path/filepath"
	"testing"
)

func setupCheckTest(t *testing.T) {
	t.Helper()
	checkCmd.Flags().Set("external", "false")
	quiet = true
}

func TestCheckCommandClean(t *testing.T) {
	setupCheckTest(t)
	setupSite(t)

	rootCmd.SetArgs([]string{"check"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("check on a clean site failed: %v", err)
	}
}

func TestCheckCommandFindings(t *testing.T) {
	setupCheckTest(t)
	dir := setupSite(t)
	mustWriteFile(t, filepath.Join(dir, "content", "no-description.md"), `---
title: No Description
pubDatetime: 2024-06-01T09:00:00Z
---

Missing a description.
`)

	rootCmd.SetArgs([]string{"check"})
	err := rootCmd.Execute()

	var cliErr *CLIError
	if !errors.As(err, &cliErr) || cliErr.ExitCode != ExitLintError {
		t.Fatalf("got %v, want CLIError with exit code %d", err, ExitLintError)
	}
}

func TestCheckCommandBrokenLink(t *testing.T) {
	setupCheckTest(t)
	dir := setupSite(t)
	mustWriteFile(t, filepath.Join(dir, "content", "linker.md"), `---
title: Linker
description: "Links to a page that does not exist."
pubDatetime: 2024-06-02T09:00:00Z
---

This [link](/posts/nowhere/) resolves to nothing.
`)

	rootCmd.SetArgs([]string{"check"})
	err := rootCmd.Execute()

	var cliErr *CLIError
	if !errors.As(err, &cliErr) || cliErr.ExitCode != ExitLintError {
		t.Fatalf("got %v, want CLIError with exit code %d", err, ExitLintError)
	}
}

package paperpress

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func lintConfig(t *testing.T) SiteConfig {
	t.Helper()
	tmp := t.TempDir()
	cfg := testBuildConfig()
	cfg.ContentDir = filepath.Join(tmp, "content")
	cfg.StaticDir = filepath.Join(tmp, "static")
	return cfg
}

func hasFinding(findings []Finding, rule, file string) bool {
	for _, f := range findings {
		if f.Rule == rule && f.File == file {
			return true
		}
	}
	return false
}

func TestLintCleanSite(t *testing.T) {
	cfg := lintConfig(t)
	writeContent(t, cfg.ContentDir, "first-post.md", postDoc("First Post", testNow.AddDate(0, 0, -9), "tags:\n  - go\n")+
		"Read [the second post](/posts/second-post/) or [email me](mailto:alex@example.com).\n\n## Notes\n\nBack to [notes](#notes).\n")
	writeContent(t, cfg.ContentDir, "second-post.md", postDoc("Second Post", testNow.AddDate(0, 0, -3), "tags:\n  - go\n"))
	writeContent(t, cfg.ContentDir, "pages/about.md", `---
title: About
description: Who writes this blog.
---

See [all posts](/posts/).
`)

	findings, err := NewLinter(cfg).Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(findings) != 0 {
		t.Errorf("clean site produced findings: %+v", findings)
	}
}

func TestLintSchemaRules(t *testing.T) {
	cfg := lintConfig(t)
	writeContent(t, cfg.ContentDir, "missing-desc.md", `---
title: No Description
pubDatetime: 2026-01-02T10:00:00Z
---

Body.
`)
	writeContent(t, cfg.ContentDir, "dup-a.md", postDoc("Dup A", testNow.AddDate(0, 0, -2), "slug: duplicate\n"))
	writeContent(t, cfg.ContentDir, "dup-b.md", postDoc("Dup B", testNow.AddDate(0, 0, -1), "slug: duplicate\n"))
	writeContent(t, cfg.ContentDir, "bad-tag.md", postDoc("Bad Tag", testNow.AddDate(0, 0, -1), "tags:\n  - \"---\"\n"))
	writeContent(t, cfg.ContentDir, "no-cover.md", postDoc("No Cover", testNow.AddDate(0, 0, -1), "ogImage: images/gone.png\n"))
	writeContent(t, cfg.ContentDir, "evil.md", postDoc("Evil", testNow.AddDate(0, 0, -1), "")+
		"Do not [click](javascript:alert(1)).\n")
	writeContent(t, cfg.ContentDir, "pages/search.md", `---
title: Search
description: Collides with the search route.
---

Body.
`)

	// Blow past maxDescriptionLength on one post.
	long := strings.Repeat("very ", 40)
	doc := strings.Replace(postDoc("Long Description", testNow.AddDate(0, 0, -1), ""),
		"A description for Long Description.", long, 1)
	writeContent(t, cfg.ContentDir, "long-desc.md", doc)

	findings, err := NewLinter(cfg).Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	checks := []struct{ rule, file string }{
		{RuleFrontMatter, "missing-desc.md"},
		{RuleDuplicateSlug, "dup-b.md"},
		{RuleTagFormat, "bad-tag.md"},
		{RuleDescription, "long-desc.md"},
		{RuleCoverExists, "no-cover.md"},
		{RuleScheme, "evil.md"},
		{RuleReservedSlug, "pages/search.md"},
	}
	for _, c := range checks {
		if !hasFinding(findings, c.rule, c.file) {
			t.Errorf("missing %s finding for %s in %+v", c.rule, c.file, findings)
		}
	}

	for _, f := range findings {
		want := SeverityError
		if f.Rule == RuleDescription {
			want = SeverityWarning
		}
		if f.Severity != want {
			t.Errorf("%s finding has severity %s, want %s", f.Rule, f.Severity, want)
		}
	}
	if !HasErrors(findings) {
		t.Error("HasErrors = false for a broken site")
	}
}

func TestLintBrokenInternalLinks(t *testing.T) {
	cfg := lintConfig(t)
	writeContent(t, cfg.ContentDir, "linker.md", postDoc("Linker", testNow.AddDate(0, 0, -1), "")+
		"This [link](/posts/gone/) is broken, this ![image](/assets/nope.png) too.\n")

	findings, err := NewLinter(cfg).Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(findings) != 2 {
		t.Fatalf("findings = %+v, want exactly the two broken links", findings)
	}
	for _, f := range findings {
		if f.Rule != RuleInternalLinks || f.File != "/posts/linker/" {
			t.Errorf("unexpected finding %+v", f)
		}
	}
}

func TestLintSeverityOverrides(t *testing.T) {
	cfg := lintConfig(t)
	cfg.Lint.Severity = map[string]string{
		RuleScheme:        "warning",
		RuleInternalLinks: "off",
	}
	writeContent(t, cfg.ContentDir, "evil.md", postDoc("Evil", testNow.AddDate(0, 0, -1), "")+
		"A [scripted](javascript:alert(1)) [broken](/posts/gone/) link.\n")

	findings, err := NewLinter(cfg).Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(findings) != 1 {
		t.Fatalf("findings = %+v, want only the downgraded scheme finding", findings)
	}
	if findings[0].Rule != RuleScheme || findings[0].Severity != SeverityWarning {
		t.Errorf("finding = %+v, want %s at warning severity", findings[0], RuleScheme)
	}
	if HasErrors(findings) {
		t.Error("HasErrors = true for warnings only")
	}
}

func TestLintIgnoreGlobs(t *testing.T) {
	cfg := lintConfig(t)
	cfg.Lint.Ignore = []string{"scratch/*"}
	writeContent(t, cfg.ContentDir, "scratch/wip.md", `---
title: WIP
pubDatetime: 2026-01-02T10:00:00Z
draft: true
---

Body.
`)
	writeContent(t, cfg.ContentDir, "good.md", postDoc("Good", testNow.AddDate(0, 0, -1), ""))

	findings, err := NewLinter(cfg).Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	for _, f := range findings {
		if strings.HasPrefix(f.File, "scratch/") {
			t.Errorf("ignored file still reported: %+v", f)
		}
	}
}

func TestLintExternalLinks(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/ok", func(w http.ResponseWriter, r *http.Request) {})
	mux.HandleFunc("/missing", http.NotFound)
	mux.HandleFunc("/head-denied", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusMethodNotAllowed)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	cfg := lintConfig(t)
	writeContent(t, cfg.ContentDir, "links.md", postDoc("Links", testNow.AddDate(0, 0, -1), "")+
		"An [alive]("+srv.URL+"/ok) link, a [dead]("+srv.URL+"/missing) link\n"+
		"and a [head-hating]("+srv.URL+"/head-denied) one.\n")

	l := NewLinter(cfg, WithExternalLinks(true))
	l.throttle.sleep = func(time.Duration) {}

	findings, err := l.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(findings) != 1 {
		t.Fatalf("findings = %+v, want only the dead link", findings)
	}
	f := findings[0]
	if f.Rule != RuleExternalLinks || !strings.Contains(f.Message, "/missing") || !strings.Contains(f.Message, "404") {
		t.Errorf("unexpected finding %+v", f)
	}
	if f.File != "/posts/links/" {
		t.Errorf("finding file = %q, want the referencing page", f.File)
	}
}

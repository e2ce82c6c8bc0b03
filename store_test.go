package paperpress

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var testNow = time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

func testClock() time.Time { return testNow }

func writeContent(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func postDoc(title string, pub time.Time, extra string) string {
	return fmt.Sprintf(`---
title: %s
description: A description for %s.
pubDatetime: %s
%s---

Some body text for %s.
`, title, title, pub.Format(time.RFC3339), extra, title)
}

func TestStoreLoadOrdering(t *testing.T) {
	dir := t.TempDir()
	writeContent(t, dir, "oldest.md", postDoc("Oldest", testNow.AddDate(0, 0, -14), ""))
	writeContent(t, dir, "newest.md", postDoc("Newest", testNow.AddDate(0, 0, -2), ""))
	// Published early but edited after "newest": modDatetime wins.
	writeContent(t, dir, "edited.md", postDoc("Edited", testNow.AddDate(0, 0, -10),
		fmt.Sprintf("modDatetime: %s\n", testNow.AddDate(0, 0, -1).Format(time.RFC3339))))

	col, err := NewStore(dir, WithClock(testClock)).Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(col.Posts) != 3 {
		t.Fatalf("len(Posts) = %d, want 3", len(col.Posts))
	}
	got := []string{col.Posts[0].Title, col.Posts[1].Title, col.Posts[2].Title}
	want := []string{"Edited", "Newest", "Oldest"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Posts[%d].Title = %q, want %q (order %v)", i, got[i], want[i], got)
		}
	}
}

func TestStoreLoadDrafts(t *testing.T) {
	dir := t.TempDir()
	writeContent(t, dir, "live.md", postDoc("Live", testNow.AddDate(0, 0, -1), ""))
	writeContent(t, dir, "wip.md", postDoc("WIP", testNow.AddDate(0, 0, -1), "draft: true\n"))

	col, err := NewStore(dir, WithClock(testClock)).Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(col.Posts) != 1 || col.Posts[0].Title != "Live" {
		t.Errorf("Posts = %v, want only Live", col.Posts)
	}
	if len(col.Drafts) != 1 || col.Drafts[0].Title != "WIP" {
		t.Errorf("Drafts = %v, want only WIP", col.Drafts)
	}

	col, err = NewStore(dir, WithClock(testClock), WithDrafts(true)).Load()
	if err != nil {
		t.Fatalf("Load with drafts returned error: %v", err)
	}
	if len(col.Posts) != 2 {
		t.Errorf("len(Posts) with drafts = %d, want 2", len(col.Posts))
	}
}

func TestStoreLoadScheduled(t *testing.T) {
	dir := t.TempDir()
	writeContent(t, dir, "past.md", postDoc("Past", testNow.Add(-time.Hour), ""))
	writeContent(t, dir, "soon.md", postDoc("Soon", testNow.Add(10*time.Minute), ""))
	writeContent(t, dir, "future.md", postDoc("Future", testNow.Add(20*time.Minute), ""))

	col, err := NewStore(dir, WithClock(testClock), WithScheduledMargin(15*time.Minute)).Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	// "Soon" publishes within the margin, so it is already built.
	if len(col.Posts) != 2 {
		t.Fatalf("len(Posts) = %d, want 2 (%v)", len(col.Posts), col.Posts)
	}
	if len(col.Scheduled) != 1 || col.Scheduled[0].Title != "Future" {
		t.Errorf("Scheduled = %v, want only Future", col.Scheduled)
	}
}

func TestStoreLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	writeContent(t, dir, "Hello World.md", postDoc("Hello", testNow.Add(-time.Hour), ""))

	col, err := NewStore(dir, WithClock(testClock), WithDefaultAuthor("Site Author")).Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(col.Posts) != 1 {
		t.Fatalf("len(Posts) = %d, want 1", len(col.Posts))
	}
	p := col.Posts[0]
	if p.Slug != "hello-world" {
		t.Errorf("Slug = %q, want %q (from file stem)", p.Slug, "hello-world")
	}
	if p.Href != "/posts/hello-world/" {
		t.Errorf("Href = %q", p.Href)
	}
	if p.Author != "Site Author" {
		t.Errorf("Author = %q, want default", p.Author)
	}
	if len(p.Tags) != 1 || p.Tags[0] != "others" {
		t.Errorf("Tags = %v, want [others]", p.Tags)
	}
	if p.Words == 0 || p.Excerpt == "" {
		t.Errorf("Words/Excerpt not derived: %d / %q", p.Words, p.Excerpt)
	}
	if !p.ModDatetime.IsZero() {
		t.Errorf("ModDatetime = %v, want zero", p.ModDatetime)
	}
}

func TestStoreLoadDuplicateSlug(t *testing.T) {
	dir := t.TempDir()
	writeContent(t, dir, "first.md", postDoc("First", testNow.Add(-time.Hour), "slug: same\n"))
	writeContent(t, dir, "second.md", postDoc("Second", testNow.Add(-time.Hour), "slug: same\n"))

	_, err := NewStore(dir, WithClock(testClock)).Load()
	if err == nil {
		t.Fatal("Load expected duplicate slug error")
	}
	for _, want := range []string{"same", "first.md", "second.md"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
}

func TestStoreLoadRequiredFields(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			name:    "missing title",
			doc:     "---\ndescription: d\npubDatetime: 2026-01-01T00:00:00Z\n---\nbody\n",
			wantErr: "title is required",
		},
		{
			name:    "missing description",
			doc:     "---\ntitle: T\npubDatetime: 2026-01-01T00:00:00Z\n---\nbody\n",
			wantErr: "description is required",
		},
		{
			name:    "missing pubDatetime",
			doc:     "---\ntitle: T\ndescription: d\n---\nbody\n",
			wantErr: "pubDatetime is required",
		},
		{
			name:    "modDatetime before pubDatetime",
			doc:     "---\ntitle: T\ndescription: d\npubDatetime: 2026-01-10T00:00:00Z\nmodDatetime: 2026-01-05T00:00:00Z\n---\nbody\n",
			wantErr: "precedes pubDatetime",
		},
		{
			name:    "unknown key",
			doc:     "---\ntitle: T\ndescription: d\npubDatetime: 2026-01-01T00:00:00Z\nfeatured_post: true\n---\nbody\n",
			wantErr: "featured_post",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeContent(t, dir, "bad.md", tt.doc)
			_, err := NewStore(dir, WithClock(testClock)).Load()
			if err == nil {
				t.Fatal("Load expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
			if !strings.Contains(err.Error(), "bad.md") {
				t.Errorf("error %q does not name the file", err)
			}
		})
	}
}

func TestStoreLoadPages(t *testing.T) {
	dir := t.TempDir()
	writeContent(t, dir, "post.md", postDoc("Post", testNow.Add(-time.Hour), ""))
	writeContent(t, dir, filepath.Join("pages", "about.md"),
		"---\ntitle: About\ndescription: Who writes this.\n---\n\nHi.\n")

	col, err := NewStore(dir, WithClock(testClock)).Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(col.Pages) != 1 {
		t.Fatalf("len(Pages) = %d, want 1", len(col.Pages))
	}
	page := col.Pages[0]
	if page.Slug != "about" || page.Href != "/about/" {
		t.Errorf("page Slug/Href = %q/%q", page.Slug, page.Href)
	}
	if len(col.Posts) != 1 {
		t.Errorf("pages must not count as posts, Posts = %v", col.Posts)
	}
}

func TestStoreLoadReservedPageSlug(t *testing.T) {
	dir := t.TempDir()
	writeContent(t, dir, filepath.Join("pages", "tags.md"),
		"---\ntitle: Tags\ndescription: d\n---\nbody\n")

	_, err := NewStore(dir, WithClock(testClock)).Load()
	if err == nil {
		t.Fatal("Load expected reserved slug error")
	}
	if !strings.Contains(err.Error(), "reserved") {
		t.Errorf("error %q does not mention reserved", err)
	}
}

func TestStoreLoadIgnoresHiddenAndUnderscore(t *testing.T) {
	dir := t.TempDir()
	writeContent(t, dir, "visible.md", postDoc("Visible", testNow.Add(-time.Hour), ""))
	writeContent(t, dir, ".draft-notes.md", "not even front-matter")
	writeContent(t, dir, filepath.Join("_ideas", "someday.md"), "free-form notes")
	writeContent(t, dir, "notes.txt", "plain text is skipped")

	col, err := NewStore(dir, WithClock(testClock)).Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(col.Posts) != 1 || col.Posts[0].Title != "Visible" {
		t.Errorf("Posts = %v, want only Visible", col.Posts)
	}
}

func TestStoreTagCounts(t *testing.T) {
	dir := t.TempDir()
	writeContent(t, dir, "a.md", postDoc("A", testNow.Add(-3*time.Hour), "tags: [go, tooling]\n"))
	writeContent(t, dir, "b.md", postDoc("B", testNow.Add(-2*time.Hour), "tags: [go]\n"))
	writeContent(t, dir, "c.md", postDoc("C", testNow.Add(-time.Hour), "tags: [Go, writing]\n"))

	col, err := NewStore(dir, WithClock(testClock)).Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	want := []TagCount{{Tag: "go", Count: 3}, {Tag: "tooling", Count: 1}, {Tag: "writing", Count: 1}}
	if len(col.Tags) != len(want) {
		t.Fatalf("Tags = %v, want %v", col.Tags, want)
	}
	for i := range want {
		if col.Tags[i] != want[i] {
			t.Errorf("Tags[%d] = %v, want %v", i, col.Tags[i], want[i])
		}
	}
}

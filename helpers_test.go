package paperpress

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Hello World", "hello-world"},
		{"  Already-Slugged  ", "already-slugged"},
		{"Go 1.22 Released!", "go-1-22-released"},
		{"CAFÉ au lait", "caf-au-lait"},
		{"tabs\tand\nnewlines", "tabs-and-newlines"},
		{"---", ""},
		{"", ""},
	}
	for _, tt := range tests {
		got := Slugify(tt.input)
		if got != tt.expected {
			t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.expected)
		}
		if again := Slugify(got); again != got {
			t.Errorf("Slugify not idempotent: %q -> %q", got, again)
		}
	}
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base     string
		segments []string
		expected string
	}{
		{"https://blog.example.com", []string{"posts", "my-post"}, "https://blog.example.com/posts/my-post/"},
		{"https://blog.example.com/", []string{"posts", "my-post"}, "https://blog.example.com/posts/my-post/"},
		{"https://blog.example.com/sub", []string{"tags"}, "https://blog.example.com/sub/tags/"},
		{"https://blog.example.com", nil, "https://blog.example.com"},
	}
	for _, tt := range tests {
		got := BuildURL(tt.base, tt.segments...)
		if got != tt.expected {
			t.Errorf("BuildURL(%q, %v) = %q, want %q", tt.base, tt.segments, got, tt.expected)
		}
	}
}

func TestAssetURL(t *testing.T) {
	tests := []struct {
		base     string
		segments []string
		expected string
	}{
		{"https://blog.example.com/", []string{"sitemap.xml"}, "https://blog.example.com/sitemap.xml"},
		{"https://blog.example.com/", []string{"assets", "og", "my-post.svg"}, "https://blog.example.com/assets/og/my-post.svg"},
		{"https://blog.example.com/sub/", []string{"rss.xml"}, "https://blog.example.com/sub/rss.xml"},
	}
	for _, tt := range tests {
		got := AssetURL(tt.base, tt.segments...)
		if got != tt.expected {
			t.Errorf("AssetURL(%q, %v) = %q, want %q", tt.base, tt.segments, got, tt.expected)
		}
	}
}

func TestFilterEmpty(t *testing.T) {
	got := FilterEmpty([]string{"a", "", "  ", "b"})
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("FilterEmpty = %v, want [a b]", got)
	}
}

func TestNormalizeTags(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{"empty defaults", nil, []string{"others"}},
		{"all blank defaults", []string{" ", "--"}, []string{"others"}},
		{"slugified", []string{"Go Modules", "C++"}, []string{"go-modules", "c"}},
		{"dedup keeps first", []string{"Go", "go", "GO"}, []string{"go"}},
		{"order preserved", []string{"zeta", "alpha"}, []string{"zeta", "alpha"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeTags(tt.input)
			if len(got) != len(tt.expected) {
				t.Fatalf("NormalizeTags(%v) = %v, want %v", tt.input, got, tt.expected)
			}
			for i := range tt.expected {
				if got[i] != tt.expected[i] {
					t.Errorf("NormalizeTags(%v)[%d] = %q, want %q", tt.input, i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestRelatedPosts(t *testing.T) {
	current := Post{Slug: "current", Tags: []string{"go", "tooling"}}
	posts := []Post{
		{Slug: "current", Tags: []string{"go"}},
		{Slug: "shares-go", Tags: []string{"go"}},
		{Slug: "shares-tooling", Tags: []string{"tooling", "writing"}},
		{Slug: "unrelated", Tags: []string{"travel"}},
	}

	got := RelatedPosts(current, posts)
	if len(got) != 2 {
		t.Fatalf("RelatedPosts returned %d posts, want 2: %v", len(got), got)
	}
	if got[0].Slug != "shares-go" || got[1].Slug != "shares-tooling" {
		t.Errorf("RelatedPosts = [%s %s]", got[0].Slug, got[1].Slug)
	}
}

func TestWebsiteJsonLD(t *testing.T) {
	cfg := SiteConfig{
		Title:       "Paper Trails",
		Website:     "https://blog.example.com/",
		Description: "Field notes.",
		Author:      "Alex Rivera",
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(WebsiteJsonLD(cfg)), &data); err != nil {
		t.Fatalf("WebsiteJsonLD is not valid JSON: %v", err)
	}
	if data["@type"] != "WebSite" || data["name"] != "Paper Trails" {
		t.Errorf("unexpected JSON-LD: %v", data)
	}
}

func TestBlogPostingJsonLD(t *testing.T) {
	cfg := SiteConfig{Title: "Paper Trails", Website: "https://blog.example.com/"}
	post := Post{
		Slug:        "my-post",
		Title:       "My Post",
		Description: "About things.",
		Author:      "Alex Rivera",
		PubDatetime: time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC),
		Tags:        []string{"go", "tooling"},
	}

	out := BlogPostingJsonLD(post, cfg)
	var data map[string]any
	if err := json.Unmarshal([]byte(out), &data); err != nil {
		t.Fatalf("BlogPostingJsonLD is not valid JSON: %v", err)
	}
	if data["@type"] != "BlogPosting" {
		t.Errorf("@type = %v", data["@type"])
	}
	if data["url"] != "https://blog.example.com/posts/my-post/" {
		t.Errorf("url = %v", data["url"])
	}
	if _, ok := data["dateModified"]; ok {
		t.Error("dateModified should be absent when the post was never edited")
	}
	if !strings.Contains(out, `"keywords":"go, tooling"`) {
		t.Errorf("keywords missing: %s", out)
	}

	post.ModDatetime = post.PubDatetime.AddDate(0, 0, 2)
	out = BlogPostingJsonLD(post, cfg)
	if !strings.Contains(out, "dateModified") {
		t.Errorf("dateModified missing after edit: %s", out)
	}
}

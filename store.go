package paperpress

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"paperpress/markdown"
)

const (
	// DefaultScheduledMargin is how long before its publish time a
	// scheduled post becomes visible to the build.
	DefaultScheduledMargin = 15 * time.Minute

	excerptWords = 40
)

// reservedSlugs are top-level routes owned by the generator. A page slug
// colliding with one would shadow a generated section.
var reservedSlugs = map[string]bool{
	"posts":    true,
	"tags":     true,
	"archives": true,
	"search":   true,
}

// Store reads the content tree from disk: posts at the top of the content
// directory, standalone pages under pages/. Files are parsed once per Load;
// nothing is written back.
type Store struct {
	dir           string
	now           func() time.Time
	includeDrafts bool
	defaultAuthor string
	margin        time.Duration
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithClock overrides the time source used to decide scheduled-post
// visibility. Tests pin this to a fixed instant.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

// WithDrafts includes draft posts and pages in the loaded collection.
func WithDrafts(include bool) StoreOption {
	return func(s *Store) { s.includeDrafts = include }
}

// WithDefaultAuthor sets the author applied to posts whose front-matter
// does not name one.
func WithDefaultAuthor(name string) StoreOption {
	return func(s *Store) { s.defaultAuthor = name }
}

// WithScheduledMargin sets how long before its publish time a future post
// is already considered publishable.
func WithScheduledMargin(d time.Duration) StoreOption {
	return func(s *Store) { s.margin = d }
}

// NewStore returns a Store reading content from dir.
func NewStore(dir string, opts ...StoreOption) *Store {
	s := &Store{
		dir:    dir,
		now:    time.Now,
		margin: DefaultScheduledMargin,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load walks the content tree, parses every markdown file and returns the
// partitioned collection. Duplicate slugs and schema violations abort the
// load; visibility (draft flag, scheduled margin) only partitions.
func (s *Store) Load() (*Collection, error) {
	log := componentLogger("store")

	postFiles, pageFiles, err := s.contentFiles()
	if err != nil {
		return nil, err
	}

	col := &Collection{}
	seenPosts := make(map[string]string, len(postFiles))
	for _, file := range postFiles {
		post, err := s.loadPost(file)
		if err != nil {
			return nil, err
		}
		if prev, ok := seenPosts[post.Slug]; ok {
			return nil, fmt.Errorf("duplicate slug %q: %s and %s", post.Slug, prev, post.File)
		}
		seenPosts[post.Slug] = post.File

		switch {
		case post.Draft && !s.includeDrafts:
			log.Debug().Str("event", "store.skip").Str("file", post.File).Str("reason", "draft").Msg("skipping draft")
			col.Drafts = append(col.Drafts, post)
		case !s.publishable(post.PubDatetime):
			log.Debug().Str("event", "store.skip").Str("file", post.File).Str("reason", "scheduled").Msg("skipping scheduled post")
			col.Scheduled = append(col.Scheduled, post)
		default:
			col.Posts = append(col.Posts, post)
		}
	}

	seenPages := make(map[string]string, len(pageFiles))
	for _, file := range pageFiles {
		page, err := s.loadPage(file)
		if err != nil {
			return nil, err
		}
		if reservedSlugs[page.Slug] {
			return nil, fmt.Errorf("%s: page slug %q is a reserved route", page.File, page.Slug)
		}
		if prev, ok := seenPages[page.Slug]; ok {
			return nil, fmt.Errorf("duplicate page slug %q: %s and %s", page.Slug, prev, page.File)
		}
		seenPages[page.Slug] = page.File
		if page.Draft && !s.includeDrafts {
			log.Debug().Str("event", "store.skip").Str("file", page.File).Str("reason", "draft").Msg("skipping draft page")
			continue
		}
		col.Pages = append(col.Pages, page)
	}

	sortPosts(col.Posts)
	sortPosts(col.Drafts)
	sortPosts(col.Scheduled)
	col.Tags = countTags(col.Posts)

	log.Debug().
		Str("event", "store.loaded").
		Int("posts", len(col.Posts)).
		Int("drafts", len(col.Drafts)).
		Int("scheduled", len(col.Scheduled)).
		Int("pages", len(col.Pages)).
		Msg("content loaded")
	return col, nil
}

// contentFiles walks the content directory once and splits markdown files
// into posts and pages. Dotfiles and underscore-prefixed paths are ignored.
func (s *Store) contentFiles() (posts, pages []string, err error) {
	pagesDir := filepath.Join(s.dir, "pages")
	err = filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if path != s.dir && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		ext := filepath.Ext(name)
		if ext != ".md" && ext != ".mdx" {
			return nil
		}
		if strings.HasPrefix(path, pagesDir+string(filepath.Separator)) {
			pages = append(pages, path)
		} else {
			posts = append(posts, path)
		}
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("walk content dir %s: %w", s.dir, err)
	}
	return posts, pages, nil
}

// loadPost parses a single post file. The linter calls this per file so
// every violation here surfaces as a finding there.
func (s *Store) loadPost(path string) (Post, error) {
	rel := s.rel(path)
	raw, err := os.ReadFile(path)
	if err != nil {
		return Post{}, fmt.Errorf("%s: %w", rel, err)
	}
	fm, body, err := ParseFrontMatter(raw)
	if err != nil {
		return Post{}, fmt.Errorf("%s: %w", rel, err)
	}
	if err := validatePostFrontMatter(fm); err != nil {
		return Post{}, fmt.Errorf("%s: %w", rel, err)
	}

	slug, err := deriveSlug(fm.Slug, path)
	if err != nil {
		return Post{}, fmt.Errorf("%s: %w", rel, err)
	}
	author := fm.Author
	if author == "" {
		author = s.defaultAuthor
	}
	excerpt, words := markdown.Summarize(body, excerptWords)

	post := Post{
		File:         rel,
		Slug:         slug,
		Href:         "/posts/" + slug + "/",
		Title:        fm.Title,
		Description:  fm.Description,
		Author:       author,
		PubDatetime:  fm.PubDatetime,
		Featured:     fm.Featured,
		Draft:        fm.Draft,
		Tags:         NormalizeTags(fm.Tags),
		OGImage:      fm.OGImage,
		CanonicalURL: fm.CanonicalURL,
		Body:         string(body),
		Excerpt:      excerpt,
		Words:        words,
	}
	if fm.ModDatetime != nil {
		post.ModDatetime = *fm.ModDatetime
	}
	return post, nil
}

// loadPage parses a standalone page. Pages share the front-matter schema
// but only title, description, slug and draft are meaningful.
func (s *Store) loadPage(path string) (Page, error) {
	rel := s.rel(path)
	raw, err := os.ReadFile(path)
	if err != nil {
		return Page{}, fmt.Errorf("%s: %w", rel, err)
	}
	fm, body, err := ParseFrontMatter(raw)
	if err != nil {
		return Page{}, fmt.Errorf("%s: %w", rel, err)
	}
	if fm.Title == "" {
		return Page{}, fmt.Errorf("%s: front-matter: title is required", rel)
	}
	if fm.Description == "" {
		return Page{}, fmt.Errorf("%s: front-matter: description is required", rel)
	}
	slug, err := deriveSlug(fm.Slug, path)
	if err != nil {
		return Page{}, fmt.Errorf("%s: %w", rel, err)
	}
	return Page{
		File:        rel,
		Slug:        slug,
		Href:        "/" + slug + "/",
		Title:       fm.Title,
		Description: fm.Description,
		Draft:       fm.Draft,
		Body:        string(body),
	}, nil
}

func validatePostFrontMatter(fm FrontMatter) error {
	if fm.Title == "" {
		return fmt.Errorf("front-matter: title is required")
	}
	if fm.Description == "" {
		return fmt.Errorf("front-matter: description is required")
	}
	if fm.PubDatetime.IsZero() {
		return fmt.Errorf("front-matter: pubDatetime is required")
	}
	if fm.ModDatetime != nil && fm.ModDatetime.Before(fm.PubDatetime) {
		return fmt.Errorf("front-matter: modDatetime %s precedes pubDatetime %s",
			fm.ModDatetime.Format(time.RFC3339), fm.PubDatetime.Format(time.RFC3339))
	}
	return nil
}

// deriveSlug canonicalizes the explicit front-matter slug, or falls back to
// the slugified file stem.
func deriveSlug(explicit, path string) (string, error) {
	source := explicit
	if source == "" {
		base := filepath.Base(path)
		source = strings.TrimSuffix(base, filepath.Ext(base))
	}
	slug := Slugify(source)
	if slug == "" {
		return "", fmt.Errorf("cannot derive a slug from %q", source)
	}
	return slug, nil
}

func (s *Store) publishable(pub time.Time) bool {
	return s.now().After(pub.Add(-s.margin))
}

func (s *Store) rel(path string) string {
	if rel, err := filepath.Rel(s.dir, path); err == nil {
		return filepath.ToSlash(filepath.Join(filepath.Base(s.dir), rel))
	}
	return filepath.ToSlash(path)
}

// sortPosts orders newest first by modDatetime when set, else pubDatetime.
func sortPosts(posts []Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].LastMod().After(posts[j].LastMod())
	})
}

func countTags(posts []Post) []TagCount {
	counts := make(map[string]int)
	for _, p := range posts {
		for _, t := range p.Tags {
			counts[t]++
		}
	}
	tags := make([]TagCount, 0, len(counts))
	for tag, n := range counts {
		tags = append(tags, TagCount{Tag: tag, Count: n})
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Tag < tags[j].Tag })
	return tags
}

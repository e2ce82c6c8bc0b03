package paperpress

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"paperpress/markdown"
)

// Finding severities. "off" only appears in config overrides.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Rule ids, also the keys of the lint.severity config map.
const (
	RuleFrontMatter   = "frontmatter-schema"
	RuleDuplicateSlug = "duplicate-slug"
	RuleReservedSlug  = "reserved-slug"
	RuleTagFormat     = "tag-format"
	RuleDescription   = "description-length"
	RuleCoverExists   = "cover-exists"
	RuleScheme        = "suspicious-scheme"
	RuleInternalLinks = "internal-links"
	RuleExternalLinks = "external-links"
)

// allowedSchemes is the whitelist for markdown link destinations.
var allowedSchemes = map[string]bool{
	"http":   true,
	"https":  true,
	"mailto": true,
	"tel":    true,
}

// Finding is one linter diagnostic. File is the content file for schema
// rules and the page route for link rules.
type Finding struct {
	File     string
	Rule     string
	Severity string
	Message  string
}

// HasErrors reports whether any finding carries error severity.
func HasErrors(findings []Finding) bool {
	for _, f := range findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Linter checks a site's content without touching its output directory.
// Schema rules run on every file including drafts; link rules run on a
// rendered copy of the site in a temp dir.
type Linter struct {
	cfg        SiteConfig
	contentDir string
	staticDir  string
	siteHost   string
	external   bool
	throttle   *hostThrottle
	log        zerolog.Logger
}

// LinterOption adjusts a Linter at construction time.
type LinterOption func(*Linter)

// WithExternalLinks toggles external link checking regardless of the
// config default.
func WithExternalLinks(on bool) LinterOption {
	return func(l *Linter) { l.external = on }
}

// NewLinter creates a Linter for the given site configuration.
func NewLinter(cfg SiteConfig, opts ...LinterOption) *Linter {
	l := &Linter{
		cfg:        cfg,
		contentDir: cfg.ContentDir,
		staticDir:  cfg.StaticDir,
		external:   cfg.Lint.ExternalLinks,
		throttle:   newHostThrottle(externalLinkDelay),
		log:        componentLogger("check"),
	}
	if u, err := url.Parse(cfg.Website); err == nil {
		l.siteHost = u.Host
	}
	if l.contentDir == "" {
		l.contentDir = "content"
	}
	if l.staticDir == "" {
		l.staticDir = "static"
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run executes every enabled rule and returns the findings sorted by
// file, rule and message. Content problems are findings, not errors; the
// error return is for environmental failures like an unreadable
// content directory.
func (l *Linter) Run(ctx context.Context) ([]Finding, error) {
	c := &lintCollector{cfg: l.cfg.Lint}

	if err := l.lintContent(c); err != nil {
		return nil, err
	}
	external := l.lintSite(c)
	if l.external {
		l.lintExternal(ctx, c, external)
	}

	sortFindings(c.findings)
	l.log.Debug().
		Str("event", "check.done").
		Int("findings", len(c.findings)).
		Msg("lint finished")
	return c.findings, nil
}

// lintCollector accumulates findings, applying severity overrides and
// ignore globs.
type lintCollector struct {
	cfg      LintConfig
	findings []Finding
}

func (c *lintCollector) add(file, rule, defaultSeverity, message string) {
	sev := defaultSeverity
	if over, ok := c.cfg.Severity[rule]; ok {
		sev = over
	}
	if sev == "off" || c.ignored(file) {
		return
	}
	c.findings = append(c.findings, Finding{File: file, Rule: rule, Severity: sev, Message: message})
}

func (c *lintCollector) ignored(file string) bool {
	for _, glob := range c.cfg.Ignore {
		if ok, err := path.Match(glob, file); err == nil && ok {
			return true
		}
	}
	return false
}

// lintContent runs the per-file schema rules over every content file.
func (l *Linter) lintContent(c *lintCollector) error {
	s := NewStore(l.contentDir)
	postFiles, pageFiles, err := s.contentFiles()
	if err != nil {
		return fmt.Errorf("walk content: %w", err)
	}

	slugs := make(map[string]string, len(postFiles))
	for _, file := range postFiles {
		l.lintPost(c, file, slugs)
	}
	pageSlugs := make(map[string]string, len(pageFiles))
	for _, file := range pageFiles {
		l.lintPage(c, file, pageSlugs)
	}
	return nil
}

func (l *Linter) lintPost(c *lintCollector, file string, slugs map[string]string) {
	rel := l.rel(file)
	data, err := os.ReadFile(file)
	if err != nil {
		c.add(rel, RuleFrontMatter, SeverityError, err.Error())
		return
	}
	fm, body, err := ParseFrontMatter(data)
	if err != nil {
		c.add(rel, RuleFrontMatter, SeverityError, err.Error())
		return
	}
	if err := validatePostFrontMatter(fm); err != nil {
		c.add(rel, RuleFrontMatter, SeverityError, err.Error())
	}

	if slug, err := deriveSlug(fm.Slug, file); err != nil {
		c.add(rel, RuleFrontMatter, SeverityError, err.Error())
	} else if prev, dup := slugs[slug]; dup {
		c.add(rel, RuleDuplicateSlug, SeverityError, fmt.Sprintf("slug %q already used by %s", slug, prev))
	} else {
		slugs[slug] = rel
	}

	for _, tag := range fm.Tags {
		if Slugify(tag) == "" {
			c.add(rel, RuleTagFormat, SeverityError, fmt.Sprintf("tag %q is empty after normalization", tag))
		}
	}

	l.lintDescription(c, rel, fm.Description)
	l.lintCover(c, rel, file, fm.OGImage)
	l.lintSchemes(c, rel, body)
}

func (l *Linter) lintPage(c *lintCollector, file string, slugs map[string]string) {
	rel := l.rel(file)
	data, err := os.ReadFile(file)
	if err != nil {
		c.add(rel, RuleFrontMatter, SeverityError, err.Error())
		return
	}
	fm, body, err := ParseFrontMatter(data)
	if err != nil {
		c.add(rel, RuleFrontMatter, SeverityError, err.Error())
		return
	}
	if fm.Title == "" {
		c.add(rel, RuleFrontMatter, SeverityError, "front-matter: title is required")
	}
	if fm.Description == "" {
		c.add(rel, RuleFrontMatter, SeverityError, "front-matter: description is required")
	}

	if slug, err := deriveSlug(fm.Slug, file); err != nil {
		c.add(rel, RuleFrontMatter, SeverityError, err.Error())
	} else {
		if reservedSlugs[slug] {
			c.add(rel, RuleReservedSlug, SeverityError, fmt.Sprintf("page slug %q is a reserved route", slug))
		}
		if prev, dup := slugs[slug]; dup {
			c.add(rel, RuleDuplicateSlug, SeverityError, fmt.Sprintf("page slug %q already used by %s", slug, prev))
		} else {
			slugs[slug] = rel
		}
	}

	l.lintDescription(c, rel, fm.Description)
	l.lintSchemes(c, rel, body)
}

func (l *Linter) lintDescription(c *lintCollector, rel, description string) {
	if n := len(description); n > l.cfg.Lint.MaxDescriptionLength {
		c.add(rel, RuleDescription, SeverityWarning,
			fmt.Sprintf("description is %d characters, max %d", n, l.cfg.Lint.MaxDescriptionLength))
	}
}

func (l *Linter) lintCover(c *lintCollector, rel, file, ogImage string) {
	if ogImage == "" || isAbsURL(ogImage) {
		return
	}
	cover := filepath.Join(filepath.Dir(file), filepath.FromSlash(ogImage))
	if _, err := os.Stat(cover); err != nil {
		c.add(rel, RuleCoverExists, SeverityError, fmt.Sprintf("cover image %s not found", ogImage))
	}
}

func (l *Linter) lintSchemes(c *lintCollector, rel string, body []byte) {
	for _, link := range markdown.Links(body) {
		u, err := url.Parse(strings.TrimSpace(link))
		if err != nil {
			c.add(rel, RuleScheme, SeverityError, fmt.Sprintf("unparseable link %q", link))
			continue
		}
		if u.Scheme == "" || allowedSchemes[strings.ToLower(u.Scheme)] {
			continue
		}
		c.add(rel, RuleScheme, SeverityError, fmt.Sprintf("link %q uses scheme %q", link, u.Scheme))
	}
}

// rel returns file relative to the content dir, for findings and globs.
func (l *Linter) rel(file string) string {
	if rel, err := filepath.Rel(l.contentDir, file); err == nil {
		return filepath.ToSlash(rel)
	}
	return filepath.ToSlash(file)
}

func isAbsURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.IsAbs()
}

func sortFindings(findings []Finding) {
	sort.Slice(findings, func(i, j int) bool {
		a, b := findings[i], findings[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Rule != b.Rule {
			return a.Rule < b.Rule
		}
		return a.Message < b.Message
	})
}

package paperpress

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// lintSite renders the site into a temp dir, drafts included, and checks
// that every internal link in the emitted HTML resolves to a built route
// or a copied file. It returns the external URLs seen, mapped to the
// page that referenced them first.
func (l *Linter) lintSite(c *lintCollector) map[string]string {
	tmp, err := os.MkdirTemp("", "paperpress-lint-")
	if err != nil {
		c.add("", RuleInternalLinks, SeverityError, fmt.Sprintf("temp build dir: %v", err))
		return nil
	}
	defer os.RemoveAll(tmp)

	b := New(l.cfg,
		WithContentDir(l.contentDir),
		WithStaticDir(l.staticDir),
		WithOutputDir(tmp),
		WithStoreOptions(WithDrafts(true)),
		WithLogger(l.log),
	)
	if _, err := b.Build(); err != nil {
		// Whatever stopped the render already has schema findings.
		l.log.Debug().Str("event", "check.render").Err(err).Msg("render for link check failed")
		return nil
	}

	routes, err := NewRouteIndexFromDir(tmp)
	if err != nil {
		c.add("", RuleInternalLinks, SeverityError, err.Error())
		return nil
	}

	external := make(map[string]string)
	walkErr := filepath.WalkDir(tmp, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(d.Name(), ".html") {
			return err
		}
		rel, err := filepath.Rel(tmp, p)
		if err != nil {
			return err
		}
		l.lintDocument(c, routes, external, p, docRoute(filepath.ToSlash(rel)))
		return nil
	})
	if walkErr != nil {
		c.add("", RuleInternalLinks, SeverityError, walkErr.Error())
	}
	return external
}

// docRoute converts an emitted file path to the URL it is served at:
// posts/x/index.html becomes /posts/x/, 404.html stays /404.html.
func docRoute(rel string) string {
	route := "/" + rel
	if strings.HasSuffix(route, "/index.html") {
		route = strings.TrimSuffix(route, "index.html")
	}
	return route
}

func (l *Linter) lintDocument(c *lintCollector, routes *RouteIndex, external map[string]string, file, route string) {
	f, err := os.Open(file)
	if err != nil {
		c.add(route, RuleInternalLinks, SeverityError, err.Error())
		return
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		c.add(route, RuleInternalLinks, SeverityError, fmt.Sprintf("parse html: %v", err))
		return
	}

	targets := []struct{ selector, attr string }{
		{"a[href]", "href"},
		{"link[href]", "href"},
		{"img[src]", "src"},
		{"script[src]", "src"},
	}
	for _, t := range targets {
		doc.Find(t.selector).Each(func(_ int, sel *goquery.Selection) {
			raw, _ := sel.Attr(t.attr)
			l.lintLink(c, routes, external, route, raw)
		})
	}
}

func (l *Linter) lintLink(c *lintCollector, routes *RouteIndex, external map[string]string, route, raw string) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.HasPrefix(raw, "#") {
		// Fragments stay on the page and always resolve.
		return
	}
	u, err := url.Parse(raw)
	if err != nil {
		c.add(route, RuleInternalLinks, SeverityError, fmt.Sprintf("unparseable url %q", raw))
		return
	}
	switch u.Scheme {
	case "http", "https":
		// Absolute URLs on the site's own host (canonical links and the
		// like) must resolve like any internal route.
		if u.Host != l.siteHost {
			if _, seen := external[raw]; !seen {
				external[raw] = route
			}
			return
		}
	case "":
		// site-internal, checked below
	default:
		// mailto:, tel: and friends are the scheme rule's business.
		return
	}

	base := path.Dir(route)
	if base != "/" {
		base += "/"
	}
	target := (&url.URL{Path: base}).ResolveReference(u).Path
	if !routes.Resolve(target) {
		c.add(route, RuleInternalLinks, SeverityError, fmt.Sprintf("%s does not resolve", raw))
	}
}

// lintExternal checks the collected external URLs with sequential HEAD
// requests, politely spacing hits per host. 405 responses count as
// alive: the server is there, it just dislikes HEAD.
func (l *Linter) lintExternal(ctx context.Context, c *lintCollector, external map[string]string) {
	if len(external) == 0 {
		return
	}
	urls := make([]string, 0, len(external))
	for u := range external {
		urls = append(urls, u)
	}
	sort.Strings(urls)

	client := &http.Client{Timeout: l.cfg.Lint.ExternalTimeout}
	for _, raw := range urls {
		u, err := url.Parse(raw)
		if err != nil {
			continue
		}
		l.throttle.Wait(u.Host)

		req, err := http.NewRequestWithContext(ctx, http.MethodHead, raw, nil)
		if err != nil {
			c.add(external[raw], RuleExternalLinks, SeverityError, fmt.Sprintf("%s: %v", raw, err))
			continue
		}
		resp, err := client.Do(req)
		if err != nil {
			c.add(external[raw], RuleExternalLinks, SeverityError, fmt.Sprintf("%s: %v", raw, err))
			continue
		}
		resp.Body.Close()
		if resp.StatusCode >= 400 && resp.StatusCode != http.StatusMethodNotAllowed {
			c.add(external[raw], RuleExternalLinks, SeverityError, fmt.Sprintf("%s returned %s", raw, resp.Status))
		}
		l.log.Debug().
			Str("event", "check.external").
			Str("url", raw).
			Int("status", resp.StatusCode).
			Msg("checked external link")
	}
}

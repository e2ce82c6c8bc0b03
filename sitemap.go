package paperpress

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"time"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// renderSitemap lists every canonical route of the site. Post entries carry
// lastmod from modDatetime when the post was edited, else pubDatetime.
func renderSitemap(cfg SiteConfig, col *Collection) ([]byte, error) {
	base := cfg.Website
	urls := []sitemapURL{
		{Loc: BuildURL(base)},
		{Loc: BuildURL(base, "posts")},
		{Loc: BuildURL(base, "tags")},
		{Loc: BuildURL(base, "search")},
	}
	if cfg.ShowArchives {
		urls = append(urls, sitemapURL{Loc: BuildURL(base, "archives")})
	}
	for _, p := range col.Posts {
		urls = append(urls, sitemapURL{
			Loc:     BuildURL(base, "posts", p.Slug),
			LastMod: p.LastMod().Format(time.RFC3339),
		})
	}
	for _, tc := range col.Tags {
		urls = append(urls, sitemapURL{Loc: BuildURL(base, "tags", tc.Tag)})
	}
	for _, page := range col.Pages {
		urls = append(urls, sitemapURL{Loc: BuildURL(base, page.Slug)})
	}

	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(sitemap); err != nil {
		return nil, fmt.Errorf("encode sitemap: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

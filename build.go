package paperpress

import (
	"fmt"
	"html/template"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"paperpress/markdown"
	"paperpress/views"
)

// maxRelatedPosts caps the related-posts section on article pages.
const maxRelatedPosts = 4

// Stats summarizes one build.
type Stats struct {
	Posts     int // visible posts built
	Drafts    int // drafts skipped
	Scheduled int // scheduled posts skipped
	Pages     int
	Tags      int
	Files     int // files written
	Bytes     int64
	Words     int // total words across built posts
	Elapsed   time.Duration
}

// MeanReadingTime returns the average reading time across built posts.
func (s *Stats) MeanReadingTime() string {
	if s.Posts == 0 {
		return markdown.ReadingTime(0)
	}
	return markdown.ReadingTime(s.Words / s.Posts)
}

// Build runs one complete site build: load content, render every page,
// process images, emit feeds and copy static assets. The output
// directory is safe to serve as-is afterwards.
func (b *Builder) Build() (*Stats, error) {
	start := time.Now()

	if err := b.cfg.Validate(); err != nil {
		return nil, err
	}

	b.log.Info().
		Str("event", "build.start").
		Str("content", b.contentDir).
		Str("out", b.outDir).
		Msg("building site")

	if b.clean {
		if err := os.RemoveAll(b.outDir); err != nil {
			return nil, fmt.Errorf("clean %s: %w", b.outDir, err)
		}
	}

	storeOpts := append([]StoreOption{
		WithDefaultAuthor(b.cfg.Author),
		WithScheduledMargin(b.cfg.ScheduledPostMargin),
	}, b.storeOpts...)
	col, err := NewStore(b.contentDir, storeOpts...).Load()
	if err != nil {
		return nil, err
	}

	renderer, err := views.NewRenderer(views.Options{
		Dir:      b.templatesDir,
		Location: b.cfg.Location(),
	})
	if err != nil {
		return nil, err
	}
	w := &siteWriter{dir: b.outDir, renderer: renderer}

	covers, err := b.writeCovers(w, col)
	if err != nil {
		return nil, err
	}
	posts, err := b.postViews(col, covers)
	if err != nil {
		return nil, err
	}
	bySlug := make(map[string]int, len(posts))
	for i, pv := range posts {
		bySlug[pv.Slug] = i
	}
	site := b.siteView(col)

	if err := b.writeHome(w, site, posts); err != nil {
		return nil, err
	}
	if err := b.writePostPages(w, site, col, posts, bySlug); err != nil {
		return nil, err
	}
	if err := b.writeList(w, site, "/posts/", "Posts", posts); err != nil {
		return nil, err
	}
	if err := b.writeTags(w, site, col, posts, bySlug); err != nil {
		return nil, err
	}
	if b.cfg.ShowArchives {
		if err := b.writeArchives(w, site, col, bySlug, posts); err != nil {
			return nil, err
		}
	}
	if err := b.writePages(w, site, col); err != nil {
		return nil, err
	}
	if err := b.writeSearch(w, site, col); err != nil {
		return nil, err
	}
	if err := w.document("404", "404.html", views.NotFoundData{Base: b.base(site, "404 Not Found", "/404.html")}); err != nil {
		return nil, err
	}
	if err := b.writeFeeds(w, col); err != nil {
		return nil, err
	}
	if err := b.copyThemeAssets(w); err != nil {
		return nil, err
	}
	if err := b.copyStatic(w); err != nil {
		return nil, err
	}

	stats := &Stats{
		Posts:     len(col.Posts),
		Drafts:    len(col.Drafts),
		Scheduled: len(col.Scheduled),
		Pages:     len(col.Pages),
		Tags:      len(col.Tags),
		Files:     w.files,
		Bytes:     w.bytes,
		Elapsed:   time.Since(start),
	}
	for _, p := range col.Posts {
		stats.Words += p.Words
	}

	b.log.Info().
		Str("event", "build.done").
		Int("posts", stats.Posts).
		Int("pages", stats.Pages).
		Int("files", stats.Files).
		Int64("bytes", stats.Bytes).
		Dur("elapsed", stats.Elapsed).
		Msg("site built")

	return stats, nil
}

// siteWriter renders and writes build outputs under one root, keeping
// the running file and byte counts for Stats.
type siteWriter struct {
	dir      string
	renderer *views.Renderer
	files    int
	bytes    int64
}

func (w *siteWriter) file(rel string, data []byte) error {
	if err := writeFileAtomic(filepath.Join(w.dir, filepath.FromSlash(rel)), data); err != nil {
		return err
	}
	w.files++
	w.bytes += int64(len(data))
	return nil
}

// document renders a template into a file at rel.
func (w *siteWriter) document(name, rel string, data any) error {
	out, err := w.renderer.Render(name, data)
	if err != nil {
		return fmt.Errorf("render %s: %w", rel, err)
	}
	return w.file(rel, out)
}

// page renders a template at the pretty-URL location for route,
// i.e. route/index.html.
func (w *siteWriter) page(name, route string, data any) error {
	return w.document(name, path.Join(strings.TrimPrefix(route, "/"), "index.html"), data)
}

// siteView assembles the site-wide template data. Standalone pages show
// up as header navigation links, in load order.
func (b *Builder) siteView(col *Collection) views.SiteView {
	sv := views.SiteView{
		Title:            b.cfg.Title,
		Description:      b.cfg.Description,
		Author:           b.cfg.Author,
		BaseURL:          b.cfg.Website,
		Locale:           b.cfg.Locale,
		LightAndDarkMode: b.cfg.LightAndDarkMode,
		ShowArchives:     b.cfg.ShowArchives,
	}
	for _, s := range b.cfg.ActiveSocials() {
		sv.Socials = append(sv.Socials, views.SocialView{Name: s.Name, Href: s.Href, LinkTitle: s.LinkTitle})
	}
	for _, pg := range col.Pages {
		sv.NavPages = append(sv.NavPages, views.LinkView{Label: pg.Title, Href: pg.Href})
	}
	return sv
}

// base assembles the shared template data for a page at route.
func (b *Builder) base(site views.SiteView, title, route string) views.Base {
	return views.Base{
		Site: site,
		Meta: views.PageMeta{
			Title:       title + " | " + b.cfg.Title,
			Description: b.cfg.Description,
			URL:         b.absURL(route),
			OGType:      "website",
			OGImage:     b.siteOGImage(),
		},
	}
}

// absURL resolves a site-relative route against the canonical base URL.
func (b *Builder) absURL(route string) string {
	u, err := url.Parse(b.cfg.Website)
	if err != nil {
		return route
	}
	joined := path.Join(u.Path, route)
	if joined != "/" && strings.HasSuffix(route, "/") {
		joined += "/"
	}
	u.Path = joined
	return u.String()
}

// siteOGImage resolves the configured default preview image to an
// absolute URL. Relative paths are taken from the output root.
func (b *Builder) siteOGImage() string {
	img := b.cfg.OGImage
	if img == "" {
		return ""
	}
	if u, err := url.Parse(img); err == nil && u.IsAbs() {
		return img
	}
	return AssetURL(b.cfg.Website, img)
}

// cover is the pair of image URLs attached to one post: the displayed
// cover (empty when the card is generated) and the og:image URL.
type cover struct {
	url   string
	ogURL string
}

// writeCovers processes every visible post's cover image. Posts without
// one get a generated SVG card so og:image is always populated.
func (b *Builder) writeCovers(w *siteWriter, col *Collection) (map[string]cover, error) {
	covers := make(map[string]cover, len(col.Posts))
	for _, p := range col.Posts {
		c, err := b.coverFor(w, p)
		if err != nil {
			return nil, err
		}
		covers[p.Slug] = c
	}
	return covers, nil
}

func (b *Builder) coverFor(w *siteWriter, p Post) (cover, error) {
	if p.OGImage == "" {
		rel := path.Join("assets", "og", p.Slug+".svg")
		if err := w.file(rel, ogCardSVG(p.Title, b.cfg.Title, p.Author)); err != nil {
			return cover{}, err
		}
		return cover{ogURL: AssetURL(b.cfg.Website, rel)}, nil
	}

	if u, err := url.Parse(p.OGImage); err == nil && u.IsAbs() {
		return cover{url: p.OGImage, ogURL: p.OGImage}, nil
	}

	f, err := os.Open(b.coverSource(p))
	if err != nil {
		return cover{}, fmt.Errorf("%s: cover image: %w", p.File, err)
	}
	defer f.Close()
	data, err := processCover(f)
	if err != nil {
		return cover{}, fmt.Errorf("%s: cover image %s: %w", p.File, p.OGImage, err)
	}
	rel := path.Join("assets", "covers", coverFileName(p.Slug))
	if err := w.file(rel, data); err != nil {
		return cover{}, err
	}
	return cover{url: "/" + rel, ogURL: AssetURL(b.cfg.Website, rel)}, nil
}

// coverSource resolves a relative ogImage path against the post's own file.
func (b *Builder) coverSource(p Post) string {
	post := filepath.Join(filepath.Dir(b.contentDir), filepath.FromSlash(p.File))
	return filepath.Join(filepath.Dir(post), filepath.FromSlash(p.OGImage))
}

// postViews renders every visible post's markdown and assembles the view
// models, in collection order.
func (b *Builder) postViews(col *Collection, covers map[string]cover) ([]views.PostView, error) {
	out := make([]views.PostView, 0, len(col.Posts))
	for _, p := range col.Posts {
		pv, err := b.postView(p, covers[p.Slug])
		if err != nil {
			return nil, err
		}
		out = append(out, pv)
	}
	return out, nil
}

func (b *Builder) postView(p Post, c cover) (views.PostView, error) {
	html, err := markdown.ToHTML(p.Body)
	if err != nil {
		return views.PostView{}, fmt.Errorf("%s: render markdown: %w", p.File, err)
	}
	pv := views.PostView{
		Slug:         p.Slug,
		Href:         p.Href,
		Title:        p.Title,
		Description:  p.Description,
		Author:       p.Author,
		PubDatetime:  p.PubDatetime,
		ModDatetime:  p.ModDatetime,
		Featured:     p.Featured,
		HTML:         template.HTML(html),
		ReadingTime:  markdown.ReadingTime(p.Words),
		CoverURL:     c.url,
		OGImageURL:   c.ogURL,
		CanonicalURL: p.CanonicalURL,
	}
	for _, t := range p.Tags {
		pv.Tags = append(pv.Tags, views.TagView{Name: t, Href: "/tags/" + t + "/"})
	}
	return pv, nil
}

// writeHome renders /: featured posts in their own section, the newest
// non-featured posts below.
func (b *Builder) writeHome(w *siteWriter, site views.SiteView, posts []views.PostView) error {
	data := views.IndexData{
		Base: views.Base{
			Site: site,
			Meta: views.PageMeta{
				Title:       b.cfg.Title,
				Description: b.cfg.Description,
				URL:         b.absURL("/"),
				OGType:      "website",
				OGImage:     b.siteOGImage(),
				JSONLD:      template.JS(WebsiteJsonLD(b.cfg)),
			},
		},
	}
	for _, pv := range posts {
		if pv.Featured {
			data.Featured = append(data.Featured, pv)
			continue
		}
		if len(data.Recent) < b.cfg.PostPerIndex {
			data.Recent = append(data.Recent, pv)
		}
	}
	return w.page("index", "/", data)
}

// writePostPages renders one article page per visible post, with related
// posts and prev/next navigation from the chronological order.
func (b *Builder) writePostPages(w *siteWriter, site views.SiteView, col *Collection, posts []views.PostView, bySlug map[string]int) error {
	for i := range col.Posts {
		p := col.Posts[i]
		pv := posts[i]

		data := views.PostData{
			Base: views.Base{
				Site: site,
				Meta: views.PageMeta{
					Title:       pv.Title + " | " + b.cfg.Title,
					Description: pv.Description,
					URL:         b.absURL(pv.Href),
					OGType:      "article",
					OGImage:     pv.OGImageURL,
					JSONLD:      template.JS(BlogPostingJsonLD(p, b.cfg)),
				},
			},
			Post: pv,
		}
		if pv.CanonicalURL != "" {
			data.Meta.URL = pv.CanonicalURL
		}
		if i+1 < len(posts) {
			data.Prev = &posts[i+1]
		}
		if i > 0 {
			data.Next = &posts[i-1]
		}
		for _, rp := range RelatedPosts(p, col.Posts) {
			if len(data.Related) == maxRelatedPosts {
				break
			}
			data.Related = append(data.Related, posts[bySlug[rp.Slug]])
		}

		if err := w.page("post", pv.Href, data); err != nil {
			return err
		}
	}
	return nil
}

// writeList renders a paginated post list rooted at route: the first
// page at the route itself, later ones under route/page/N/.
func (b *Builder) writeList(w *siteWriter, site views.SiteView, route, heading string, posts []views.PostView) error {
	pages := chunkPosts(posts, b.cfg.PostPerPage)
	for i, chunk := range pages {
		n := i + 1
		data := views.ListData{
			Base:    b.base(site, heading, listRoute(route, n)),
			Heading: heading,
			Posts:   chunk,
			Pager: views.PagerView{
				Current: n,
				Total:   len(pages),
			},
		}
		if n > 1 {
			data.Meta.Title = fmt.Sprintf("%s (page %d) | %s", heading, n, b.cfg.Title)
			data.Pager.PrevHref = listRoute(route, n-1)
		}
		if n < len(pages) {
			data.Pager.NextHref = listRoute(route, n+1)
		}
		if err := w.page("posts", listRoute(route, n), data); err != nil {
			return err
		}
	}
	return nil
}

// listRoute returns the route of page n of a paginated list; page 1 is
// the list root itself.
func listRoute(route string, n int) string {
	if n == 1 {
		return route
	}
	return route + "page/" + strconv.Itoa(n) + "/"
}

// chunkPosts splits posts into pages of at most per entries. An empty
// list still yields one page so the route exists.
func chunkPosts(posts []views.PostView, per int) [][]views.PostView {
	var out [][]views.PostView
	for len(posts) > per {
		out = append(out, posts[:per])
		posts = posts[per:]
	}
	return append(out, posts)
}

// writeTags renders the tag index and a paginated list per tag.
func (b *Builder) writeTags(w *siteWriter, site views.SiteView, col *Collection, posts []views.PostView, bySlug map[string]int) error {
	tags := make([]views.TagView, 0, len(col.Tags))
	for _, tc := range col.Tags {
		tags = append(tags, views.TagView{Name: tc.Tag, Href: "/tags/" + tc.Tag + "/", Count: tc.Count})
	}
	data := views.TagsData{
		Base: b.base(site, "Tags", "/tags/"),
		Tags: tags,
	}
	if err := w.page("tags", "/tags/", data); err != nil {
		return err
	}

	for _, tc := range col.Tags {
		var tagged []views.PostView
		for _, p := range col.ByTag(tc.Tag) {
			tagged = append(tagged, posts[bySlug[p.Slug]])
		}
		if err := b.writeList(w, site, "/tags/"+tc.Tag+"/", "Tag: "+tc.Tag, tagged); err != nil {
			return err
		}
	}
	return nil
}

// writeArchives renders /archives/, posts grouped by publish year.
func (b *Builder) writeArchives(w *siteWriter, site views.SiteView, col *Collection, bySlug map[string]int, posts []views.PostView) error {
	var years []views.YearView
	for _, g := range col.ByYear() {
		yv := views.YearView{Year: g.Year}
		for _, p := range g.Posts {
			yv.Posts = append(yv.Posts, posts[bySlug[p.Slug]])
		}
		years = append(years, yv)
	}
	data := views.ArchivesData{
		Base:  b.base(site, "Archives", "/archives/"),
		Years: years,
	}
	return w.page("archives", "/archives/", data)
}

// writePages renders the standalone pages at /<slug>/.
func (b *Builder) writePages(w *siteWriter, site views.SiteView, col *Collection) error {
	for _, pg := range col.Pages {
		html, err := markdown.ToHTML(pg.Body)
		if err != nil {
			return fmt.Errorf("%s: render markdown: %w", pg.File, err)
		}
		data := views.PageData{
			Base:  b.base(site, pg.Title, pg.Href),
			Title: pg.Title,
			HTML:  template.HTML(html),
		}
		data.Meta.Description = pg.Description
		if err := w.page("page", pg.Href, data); err != nil {
			return err
		}
	}
	return nil
}

// writeSearch renders the search page and the JSON index backing it.
func (b *Builder) writeSearch(w *siteWriter, site views.SiteView, col *Collection) error {
	if err := w.page("search", "/search/", views.SearchData{Base: b.base(site, "Search", "/search/")}); err != nil {
		return err
	}
	idx, err := renderSearchIndex(col.Posts)
	if err != nil {
		return err
	}
	return w.file("search.json", idx)
}

// writeFeeds emits rss.xml, sitemap.xml and robots.txt.
func (b *Builder) writeFeeds(w *siteWriter, col *Collection) error {
	rss, err := renderRSS(b.cfg, col.Posts)
	if err != nil {
		return err
	}
	if err := w.file("rss.xml", rss); err != nil {
		return err
	}

	sm, err := renderSitemap(b.cfg, col)
	if err != nil {
		return err
	}
	if err := w.file("sitemap.xml", sm); err != nil {
		return err
	}

	robots := fmt.Sprintf("User-agent: *\nAllow: /\n\nSitemap: %s\n", AssetURL(b.cfg.Website, "sitemap.xml"))
	return w.file("robots.txt", []byte(robots))
}

// copyThemeAssets copies the theme's own static files (stylesheet,
// favicon) under /assets/. The user's static dir is copied afterwards,
// so user files win on collision.
func (b *Builder) copyThemeAssets(w *siteWriter) error {
	static := w.renderer.Static()
	return fs.WalkDir(static, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(static, p)
		if err != nil {
			return fmt.Errorf("read theme asset %s: %w", p, err)
		}
		return w.file(path.Join("assets", p), data)
	})
}

// copyStatic copies the user's static directory verbatim into the output
// root. A missing directory is fine.
func (b *Builder) copyStatic(w *siteWriter) error {
	info, err := os.Stat(b.staticDir)
	if os.IsNotExist(err) {
		b.log.Debug().Str("event", "build.static").Str("dir", b.staticDir).Msg("no static dir, skipping")
		return nil
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("static dir %s is not a directory", b.staticDir)
	}
	return filepath.WalkDir(b.staticDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(b.staticDir, p)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("read static file %s: %w", p, err)
		}
		return w.file(filepath.ToSlash(rel), data)
	})
}

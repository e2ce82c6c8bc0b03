package views

import (
	"html/template"
	"time"
)

// SiteView is the site-wide data every template receives.
type SiteView struct {
	Title            string
	Description      string
	Author           string
	BaseURL          string // canonical base URL, trailing slash
	Locale           string // html lang attribute
	LightAndDarkMode bool
	ShowArchives     bool
	Socials          []SocialView
	NavPages         []LinkView // standalone pages linked in the header
}

// SocialView is one footer social link.
type SocialView struct {
	Name      string
	Href      string
	LinkTitle string
}

// LinkView is a plain label/href pair.
type LinkView struct {
	Label string
	Href  string
}

// PageMeta carries per-page head metadata: title, canonical URL, OpenGraph
// fields and the JSON-LD payload.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
	OGImage     string // absolute URL of the preview image
	JSONLD      template.JS
}

// Base is embedded by every page's data struct so templates can reach
// .Site and .Meta uniformly.
type Base struct {
	Site SiteView
	Meta PageMeta
}

// PostView is a post prepared for rendering.
type PostView struct {
	Slug         string
	Href         string
	Title        string
	Description  string
	Author       string
	PubDatetime  time.Time
	ModDatetime  time.Time // zero when never edited
	Tags         []TagView
	Featured     bool
	HTML         template.HTML
	ReadingTime  string
	CoverURL     string // processed cover, empty when the post has none
	OGImageURL   string // cover or generated card, always set
	CanonicalURL string
}

// TagView is a tag with its listing link.
type TagView struct {
	Name  string
	Href  string
	Count int
}

// PagerView drives the prev/next controls of paginated lists.
type PagerView struct {
	Current  int
	Total    int
	PrevHref string // empty on the first page
	NextHref string // empty on the last page
}

// YearView groups posts under one year heading on the archives page.
type YearView struct {
	Year  int
	Posts []PostView
}

// IndexData renders the home page.
type IndexData struct {
	Base
	Featured []PostView
	Recent   []PostView
}

// ListData renders a paginated post list; the tag pages reuse it with
// their own heading.
type ListData struct {
	Base
	Heading string
	Posts   []PostView
	Pager   PagerView
}

// PostData renders one article.
type PostData struct {
	Base
	Post    PostView
	Related []PostView
	Prev    *PostView
	Next    *PostView
}

// TagsData renders the tag index.
type TagsData struct {
	Base
	Tags []TagView
}

// ArchivesData renders the per-year archive.
type ArchivesData struct {
	Base
	Years []YearView
}

// PageData renders a standalone page.
type PageData struct {
	Base
	Title string
	HTML  template.HTML
}

// SearchData renders the client-side search page.
type SearchData struct {
	Base
}

// NotFoundData renders 404.html.
type NotFoundData struct {
	Base
}

package paperpress

import (
	"sort"
	"time"
)

// Post is the core content type: one markdown file under the content
// directory, parsed and ready for rendering.
type Post struct {
	File         string // path relative to the content directory
	Slug         string
	Href         string // site-relative URL, e.g. "/posts/hello-world/"
	Title        string
	Description  string
	Author       string
	PubDatetime  time.Time
	ModDatetime  time.Time // zero when the post was never updated
	Featured     bool
	Draft        bool
	Tags         []string // normalized to slug form, deduplicated, order kept
	OGImage      string   // cover image: path relative to the post file, or a URL
	CanonicalURL string
	Body         string // raw markdown below the front-matter
	Excerpt      string // plain-text lead, for feeds and the search index
	Words        int
}

// LastMod returns the timestamp posts are ordered by: the modification
// time when set, the publish time otherwise.
func (p Post) LastMod() time.Time {
	if !p.ModDatetime.IsZero() {
		return p.ModDatetime
	}
	return p.PubDatetime
}

// Page is a standalone page (about, contact, ...) rendered at /<slug>/.
type Page struct {
	File        string
	Slug        string
	Href        string
	Title       string
	Description string
	Draft       bool
	Body        string
}

// TagCount pairs a tag with the number of visible posts carrying it.
type TagCount struct {
	Tag   string
	Count int
}

// YearGroup holds the posts published in one year, newest first.
type YearGroup struct {
	Year  int
	Posts []Post
}

// Collection is the loaded content of a site, partitioned by visibility.
// Posts, Drafts and Scheduled are each sorted by LastMod descending.
type Collection struct {
	Posts     []Post // visible: not draft, publish time reached
	Drafts    []Post
	Scheduled []Post // publish time still outside the scheduled margin
	Pages     []Page
	Tags      []TagCount // from visible posts, sorted alphabetically
}

// Featured returns the visible posts flagged as featured, in order.
func (c *Collection) Featured() []Post {
	var out []Post
	for _, p := range c.Posts {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out
}

// ByTag returns the visible posts carrying the given (normalized) tag.
func (c *Collection) ByTag(tag string) []Post {
	var out []Post
	for _, p := range c.Posts {
		for _, t := range p.Tags {
			if t == tag {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// ByYear groups the visible posts by publish year, newest year first.
func (c *Collection) ByYear() []YearGroup {
	byYear := make(map[int][]Post)
	var years []int
	for _, p := range c.Posts {
		y := p.PubDatetime.Year()
		if _, seen := byYear[y]; !seen {
			years = append(years, y)
		}
		byYear[y] = append(byYear[y], p)
	}
	// Posts arrive sorted by LastMod; archives read better in publish order.
	for y := range byYear {
		posts := byYear[y]
		sort.SliceStable(posts, func(i, j int) bool {
			return posts[i].PubDatetime.After(posts[j].PubDatetime)
		})
		byYear[y] = posts
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	groups := make([]YearGroup, 0, len(years))
	for _, y := range years {
		groups = append(groups, YearGroup{Year: y, Posts: byYear[y]})
	}
	return groups
}

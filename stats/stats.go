// Package stats aggregates content statistics for the stats command and
// build summaries. It works on an already loaded collection and keeps
// no state of its own.
package stats

import (
	"sort"

	"paperpress"
	"paperpress/markdown"
)

// YearCount is the number of posts published in one year.
type YearCount struct {
	Year  int
	Posts int
}

// Report is an aggregated snapshot of a site's content.
type Report struct {
	Posts     int
	Drafts    int
	Scheduled int
	Pages     int

	TotalWords  int
	AvgWords    int
	ReadingTime string // mean reading time across visible posts

	TopTags []paperpress.TagCount // by count descending, capped
	Years   []YearCount           // newest first
}

// Collect summarizes a collection. topTags caps the tag list; zero or
// negative keeps every tag.
func Collect(col *paperpress.Collection, topTags int) Report {
	r := Report{
		Posts:     len(col.Posts),
		Drafts:    len(col.Drafts),
		Scheduled: len(col.Scheduled),
		Pages:     len(col.Pages),
	}

	for _, p := range col.Posts {
		r.TotalWords += p.Words
	}
	if r.Posts > 0 {
		r.AvgWords = r.TotalWords / r.Posts
	}
	r.ReadingTime = markdown.ReadingTime(r.AvgWords)

	tags := append([]paperpress.TagCount(nil), col.Tags...)
	sort.SliceStable(tags, func(i, j int) bool { return tags[i].Count > tags[j].Count })
	if topTags > 0 && len(tags) > topTags {
		tags = tags[:topTags]
	}
	r.TopTags = tags

	for _, g := range col.ByYear() {
		r.Years = append(r.Years, YearCount{Year: g.Year, Posts: len(g.Posts)})
	}
	return r
}

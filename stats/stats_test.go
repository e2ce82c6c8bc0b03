package stats

import (
	"testing"
	"time"

	"paperpress"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 10, 0, 0, 0, time.UTC)
}

func testCollection() *paperpress.Collection {
	return &paperpress.Collection{
		Posts: []paperpress.Post{
			{Slug: "newest", Words: 400, PubDatetime: date(2026, 1, 10), Tags: []string{"go"}},
			{Slug: "middle", Words: 300, PubDatetime: date(2026, 1, 2), Tags: []string{"go", "web"}},
			{Slug: "oldest", Words: 200, PubDatetime: date(2025, 11, 20), Tags: []string{"web"}},
		},
		Drafts:    []paperpress.Post{{Slug: "wip", Words: 50}},
		Scheduled: []paperpress.Post{{Slug: "soon", PubDatetime: date(2026, 3, 1)}},
		Pages:     []paperpress.Page{{Slug: "about"}},
		Tags: []paperpress.TagCount{
			{Tag: "go", Count: 2},
			{Tag: "web", Count: 2},
		},
	}
}

func TestCollect(t *testing.T) {
	r := Collect(testCollection(), 0)

	if r.Posts != 3 || r.Drafts != 1 || r.Scheduled != 1 || r.Pages != 1 {
		t.Errorf("counts = %+v", r)
	}
	if r.TotalWords != 900 {
		t.Errorf("TotalWords = %d, want 900", r.TotalWords)
	}
	if r.AvgWords != 300 {
		t.Errorf("AvgWords = %d, want 300", r.AvgWords)
	}
	if r.ReadingTime != "2 min read" {
		t.Errorf("ReadingTime = %q, want %q", r.ReadingTime, "2 min read")
	}

	if len(r.Years) != 2 || r.Years[0].Year != 2026 || r.Years[0].Posts != 2 || r.Years[1].Year != 2025 {
		t.Errorf("Years = %+v", r.Years)
	}
	if len(r.TopTags) != 2 {
		t.Errorf("TopTags = %+v", r.TopTags)
	}
}

func TestCollectTopTagsCap(t *testing.T) {
	r := Collect(testCollection(), 1)
	if len(r.TopTags) != 1 {
		t.Fatalf("TopTags = %+v, want one entry", r.TopTags)
	}
	// Equal counts keep their input order.
	if r.TopTags[0].Tag != "go" {
		t.Errorf("TopTags[0] = %+v, want go", r.TopTags[0])
	}
}

func TestCollectEmpty(t *testing.T) {
	r := Collect(&paperpress.Collection{}, 5)
	if r.Posts != 0 || r.TotalWords != 0 || r.AvgWords != 0 {
		t.Errorf("empty collection report = %+v", r)
	}
	if r.ReadingTime != "1 min read" {
		t.Errorf("ReadingTime = %q", r.ReadingTime)
	}
	if len(r.TopTags) != 0 || len(r.Years) != 0 {
		t.Errorf("empty collection has aggregates: %+v", r)
	}
}

package paperpress

import (
	"encoding/json"
	"fmt"
	"time"
)

// searchDoc is one entry of the client-side search index at /search.json.
type searchDoc struct {
	Slug        string   `json:"slug"`
	Href        string   `json:"href"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	PubDatetime string   `json:"pubDatetime"`
	Excerpt     string   `json:"excerpt"`
}

// renderSearchIndex serializes the built posts for the search page.
func renderSearchIndex(posts []Post) ([]byte, error) {
	docs := make([]searchDoc, 0, len(posts))
	for _, p := range posts {
		docs = append(docs, searchDoc{
			Slug:        p.Slug,
			Href:        p.Href,
			Title:       p.Title,
			Description: p.Description,
			Tags:        p.Tags,
			PubDatetime: p.PubDatetime.Format(time.RFC3339),
			Excerpt:     p.Excerpt,
		})
	}
	out, err := json.Marshal(docs)
	if err != nil {
		return nil, fmt.Errorf("encode search index: %w", err)
	}
	return out, nil
}

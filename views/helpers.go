package views

import (
	"html/template"
	"time"
)

// funcMap builds the template helpers. Dates render in the site's display
// timezone, so the closure captures the location once.
func funcMap(loc *time.Location) template.FuncMap {
	if loc == nil {
		loc = time.UTC
	}
	return template.FuncMap{
		// formatDate renders a human date, e.g. "Jan 10, 2026".
		"formatDate": func(t time.Time) string {
			return t.In(loc).Format("Jan 2, 2006")
		},
		// isoDate renders a machine date for <time datetime="...">.
		"isoDate": func(t time.Time) string {
			return t.In(loc).Format(time.RFC3339)
		},
		// copyrightYear feeds the footer notice.
		"copyrightYear": func() int {
			return time.Now().In(loc).Year()
		},
	}
}

// Package scaffold renders the embedded starter site used by
// `paperpress new site` and the front-matter stub used by
// `paperpress new post`.
package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"
	"time"
)

// Every file under templates/ is a Go text/template; the .tmpl suffix is
// stripped on render. The all: prefix keeps dot-directories like .github
// in the embed.
//
//go:embed all:templates
var templates embed.FS

//go:embed post.md.tmpl
var postStub string

var funcs = template.FuncMap{
	"quote":   strconv.Quote,
	"rfc3339": func(t time.Time) string { return t.UTC().Format(time.RFC3339) },
}

var postTmpl = template.Must(template.New("post.md.tmpl").Funcs(funcs).Parse(postStub))

// Site carries the values substituted into the starter templates.
type Site struct {
	Title       string
	Author      string
	Website     string
	Description string

	// Now stamps the sample post's pubDatetime. Zero means time.Now.
	Now time.Time
}

// Post carries the values substituted into a new post stub.
type Post struct {
	Title       string
	Description string
	Author      string
	Published   time.Time
	Tags        []string
}

// Render writes the starter site into dir. The directory may already
// exist but must be empty. The gitignore template is renamed to
// .gitignore on the way out; checked in under its real name it would
// apply to this repository instead of the generated one.
func Render(dir string, site Site) error {
	if err := ensureEmpty(dir); err != nil {
		return err
	}
	if site.Now.IsZero() {
		site.Now = time.Now()
	}

	return fs.WalkDir(templates, "templates", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel("templates", path)
		if err != nil {
			return err
		}
		out := filepath.Join(dir, strings.TrimSuffix(rel, ".tmpl"))
		if filepath.Base(out) == "gitignore" {
			out = filepath.Join(filepath.Dir(out), ".gitignore")
		}

		raw, err := templates.ReadFile(path)
		if err != nil {
			return err
		}
		tmpl, err := template.New(filepath.Base(path)).Funcs(funcs).Parse(string(raw))
		if err != nil {
			return fmt.Errorf("scaffold: parse %s: %w", rel, err)
		}

		if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
			return err
		}
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		if err := tmpl.Execute(f, site); err != nil {
			f.Close()
			return fmt.Errorf("scaffold: render %s: %w", rel, err)
		}
		return f.Close()
	})
}

// PostStub renders the front-matter stub for a new post. Stubs start as
// drafts, and an empty description gets a placeholder so the stub still
// passes the schema check.
func PostStub(post Post) ([]byte, error) {
	if post.Description == "" {
		post.Description = "Describe the post in one or two sentences."
	}
	var buf bytes.Buffer
	if err := postTmpl.Execute(&buf, post); err != nil {
		return nil, fmt.Errorf("scaffold: render post stub: %w", err)
	}
	return buf.Bytes(), nil
}

func ensureEmpty(dir string) error {
	entries, err := os.ReadDir(dir)
	switch {
	case os.IsNotExist(err):
		return os.MkdirAll(dir, 0o755)
	case err != nil:
		return fmt.Errorf("scaffold: %w", err)
	case len(entries) > 0:
		return fmt.Errorf("scaffold: directory %q is not empty", dir)
	}
	return nil
}

package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static/*
var staticFS embed.FS

// Options configures a Renderer.
type Options struct {
	// Dir points at a theme override directory holding base.html plus page
	// templates (and optionally a static/ subdirectory). Empty means the
	// embedded theme.
	Dir string

	// Location is the display timezone for dates. Nil means UTC.
	Location *time.Location
}

// Renderer holds the parsed theme. Each page template is paired with the
// base layout and looked up by its file stem ("post", "tags", "404").
type Renderer struct {
	templates map[string]*template.Template
	static    fs.FS
}

// NewRenderer parses the theme templates once.
func NewRenderer(opts Options) (*Renderer, error) {
	r := &Renderer{templates: make(map[string]*template.Template)}
	funcs := funcMap(opts.Location)

	if opts.Dir == "" {
		return r, r.parseEmbedded(funcs)
	}
	return r, r.parseDir(opts.Dir, funcs)
}

func (r *Renderer) parseEmbedded(funcs template.FuncMap) error {
	entries, err := templatesFS.ReadDir("templates")
	if err != nil {
		return fmt.Errorf("read embedded templates: %w", err)
	}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == "base.html" {
			continue
		}
		tmpl, err := template.New("base.html").Funcs(funcs).ParseFS(
			templatesFS, "templates/base.html", "templates/"+name,
		)
		if err != nil {
			return fmt.Errorf("parse template %s: %w", name, err)
		}
		r.templates[stem(name)] = tmpl
	}

	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		return fmt.Errorf("embedded static assets: %w", err)
	}
	r.static = static
	return nil
}

func (r *Renderer) parseDir(dir string, funcs template.FuncMap) error {
	base := filepath.Join(dir, "base.html")
	if _, err := os.Stat(base); err != nil {
		return fmt.Errorf("theme dir %s: %w", dir, err)
	}
	pages, err := filepath.Glob(filepath.Join(dir, "*.html"))
	if err != nil {
		return fmt.Errorf("glob theme dir %s: %w", dir, err)
	}
	for _, page := range pages {
		name := filepath.Base(page)
		if name == "base.html" {
			continue
		}
		tmpl, err := template.New("base.html").Funcs(funcs).ParseFiles(base, page)
		if err != nil {
			return fmt.Errorf("parse template %s: %w", name, err)
		}
		r.templates[stem(name)] = tmpl
	}

	if info, err := os.Stat(filepath.Join(dir, "static")); err == nil && info.IsDir() {
		r.static = os.DirFS(filepath.Join(dir, "static"))
	} else if static, err := fs.Sub(staticFS, "static"); err == nil {
		r.static = static
	}
	return nil
}

// Render executes the named page template within the base layout.
func (r *Renderer) Render(name string, data any) ([]byte, error) {
	tmpl, ok := r.templates[name]
	if !ok {
		return nil, fmt.Errorf("template %q not found", name)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base.html", data); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// Static returns the theme's static assets, copied to /assets/ at build
// time.
func (r *Renderer) Static() fs.FS {
	return r.static
}

func stem(name string) string {
	return name[:len(name)-len(filepath.Ext(name))]
}

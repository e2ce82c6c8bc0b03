package paperpress

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// RouteIndex records every file the build emits, keyed by its
// slash-separated path under the output root ("/posts/my-post/index.html",
// "/rss.xml"). The linter resolves internal links against it.
type RouteIndex struct {
	paths map[string]bool
}

// NewRouteIndex returns an empty index.
func NewRouteIndex() *RouteIndex {
	return &RouteIndex{paths: make(map[string]bool)}
}

// Add records one emitted file. Paths are normalized to a leading slash.
func (r *RouteIndex) Add(path string) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	r.paths[path] = true
}

// Len returns the number of recorded files.
func (r *RouteIndex) Len() int {
	return len(r.paths)
}

// Resolve reports whether a site-internal path maps to an emitted file.
// Directory-style links resolve through their index.html, so "/posts/x/",
// "/posts/x" and "/posts/x/index.html" are equivalent.
func (r *RouteIndex) Resolve(path string) bool {
	if path == "" || path == "/" {
		return r.paths["/index.html"]
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if strings.HasSuffix(path, "/") {
		return r.paths[path+"index.html"]
	}
	if r.paths[path] {
		return true
	}
	return r.paths[path+"/index.html"]
}

// NewRouteIndexFromDir indexes an already-built output tree.
func NewRouteIndexFromDir(dir string) (*RouteIndex, error) {
	idx := NewRouteIndex()
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		idx.Add(filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("index output dir %s: %w", dir, err)
	}
	return idx, nil
}

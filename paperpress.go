// Package paperpress is a static blog generator. It turns a directory of
// markdown posts with YAML front-matter into a complete site: article
// pages, paginated and per-tag lists, per-year archives, RSS, sitemap,
// a client-side search index and social preview images.
//
// Builds are one-shot and single-threaded. The cmd/paperpress CLI wraps
// this package; library users construct a Builder and call Build.
package paperpress

import (
	"github.com/rs/zerolog"
)

// Builder produces one static build of a site.
type Builder struct {
	cfg SiteConfig

	contentDir   string
	staticDir    string
	outDir       string
	templatesDir string
	clean        bool

	storeOpts []StoreOption
	log       zerolog.Logger
}

// Option adjusts a Builder at construction time.
type Option func(*Builder)

// WithContentDir overrides the markdown source directory from the config.
func WithContentDir(dir string) Option {
	return func(b *Builder) { b.contentDir = dir }
}

// WithStaticDir overrides the directory copied verbatim to the output root.
func WithStaticDir(dir string) Option {
	return func(b *Builder) { b.staticDir = dir }
}

// WithOutputDir overrides the build target directory.
func WithOutputDir(dir string) Option {
	return func(b *Builder) { b.outDir = dir }
}

// WithTemplatesDir points the builder at a theme override directory
// instead of the embedded templates.
func WithTemplatesDir(dir string) Option {
	return func(b *Builder) { b.templatesDir = dir }
}

// WithBaseURL overrides the canonical site URL, e.g. for preview builds.
// The override is validated together with the rest of the config.
func WithBaseURL(rawURL string) Option {
	return func(b *Builder) { b.cfg.Website = rawURL }
}

// WithClean removes the output directory before building.
func WithClean(on bool) Option {
	return func(b *Builder) { b.clean = on }
}

// WithLogger replaces the default build logger.
func WithLogger(l zerolog.Logger) Option {
	return func(b *Builder) { b.log = l }
}

// WithStoreOptions forwards options to the content store, e.g.
// WithDrafts(true) to build draft posts.
func WithStoreOptions(opts ...StoreOption) Option {
	return func(b *Builder) { b.storeOpts = append(b.storeOpts, opts...) }
}

// New creates a Builder for the given site configuration. Directories
// default to the config values, which LoadConfig in turn defaults to
// content, static and dist.
func New(cfg SiteConfig, opts ...Option) *Builder {
	b := &Builder{
		cfg:          cfg,
		contentDir:   cfg.ContentDir,
		staticDir:    cfg.StaticDir,
		outDir:       cfg.OutputDir,
		templatesDir: cfg.TemplatesDir,
		log:          componentLogger("build"),
	}
	if b.contentDir == "" {
		b.contentDir = "content"
	}
	if b.staticDir == "" {
		b.staticDir = "static"
	}
	if b.outDir == "" {
		b.outDir = "dist"
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

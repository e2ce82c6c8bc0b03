package paperpress

import (
	"bytes"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// FrontMatter is the YAML metadata block at the top of a content file,
// between two "---" delimiter lines. Decoding is strict: unknown keys are
// an error, so schema typos surface instead of silently vanishing.
type FrontMatter struct {
	Title        string     `yaml:"title"`
	Description  string     `yaml:"description"`
	Author       string     `yaml:"author"`
	PubDatetime  time.Time  `yaml:"pubDatetime"`
	ModDatetime  *time.Time `yaml:"modDatetime"`
	Slug         string     `yaml:"slug"`
	Featured     bool       `yaml:"featured"`
	Draft        bool       `yaml:"draft"`
	Tags         []string   `yaml:"tags"`
	OGImage      string     `yaml:"ogImage"`
	CanonicalURL string     `yaml:"canonicalURL"`
}

var (
	fmOpen  = []byte("---")
	fmClose = []byte("\n---")
)

// ParseFrontMatter splits a content file into its front-matter and body.
// The file must start with a "---" line; the block ends at the next one.
func ParseFrontMatter(data []byte) (FrontMatter, []byte, error) {
	var fm FrontMatter

	rest, ok := bytes.CutPrefix(data, fmOpen)
	if !ok {
		return fm, nil, fmt.Errorf("front-matter: missing opening --- delimiter")
	}
	rest = bytes.TrimPrefix(rest, []byte("\r"))
	rest, ok = bytes.CutPrefix(rest, []byte("\n"))
	if !ok {
		return fm, nil, fmt.Errorf("front-matter: missing opening --- delimiter")
	}

	end := bytes.Index(rest, fmClose)
	if end < 0 {
		return fm, nil, fmt.Errorf("front-matter: missing closing --- delimiter")
	}
	block := rest[:end]
	body := rest[end+len(fmClose):]
	body = bytes.TrimPrefix(body, []byte("\r"))
	body = bytes.TrimPrefix(body, []byte("\n"))

	if len(bytes.TrimSpace(block)) == 0 {
		return fm, body, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(block))
	dec.KnownFields(true)
	if err := dec.Decode(&fm); err != nil {
		return fm, nil, fmt.Errorf("front-matter: %w", err)
	}
	return fm, body, nil
}

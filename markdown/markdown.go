// Package markdown renders post bodies to HTML and derives the plain-text
// views of them (excerpts, word counts, link lists).
package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

// Raw HTML passes through unsanitized: legacy MDX posts carry inline
// HTML fragments that must render as written.
var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Typographer,
		highlighting.NewHighlighting(
			highlighting.WithStyle("monokai"),
		),
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
	goldmark.WithRendererOptions(
		html.WithUnsafe(),
	),
)

// ToHTML converts markdown source to HTML.
func ToHTML(source string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// PlainText strips all markup from the source: the text of every node,
// joined with single spaces.
func PlainText(source []byte) string {
	doc := md.Parser().Parse(text.NewReader(source))
	var sb strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch v := n.(type) {
		case *ast.Text:
			if entering {
				sb.Write(v.Segment.Value(source))
				if v.SoftLineBreak() || v.HardLineBreak() {
					sb.WriteByte(' ')
				}
			}
		case *ast.String:
			if entering {
				sb.Write(v.Value)
			}
		default:
			// Block boundaries become spaces so headings and paragraphs
			// do not run together.
			if !entering && n.Type() == ast.TypeBlock {
				sb.WriteByte(' ')
			}
		}
		return ast.WalkContinue, nil
	})
	return strings.Join(strings.Fields(sb.String()), " ")
}

// Summarize returns a plain-text excerpt of at most maxWords words and the
// total word count of the source.
func Summarize(source []byte, maxWords int) (string, int) {
	words := strings.Fields(PlainText(source))
	total := len(words)
	if total <= maxWords {
		return strings.Join(words, " "), total
	}
	return strings.Join(words[:maxWords], " ") + "…", total
}

const wordsPerMinute = 200

// ReadingMinutes estimates reading time in whole minutes, never below 1.
func ReadingMinutes(words int) int {
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// ReadingTime formats the reading-time estimate, e.g. "4 min read".
func ReadingTime(words int) string {
	return fmt.Sprintf("%d min read", ReadingMinutes(words))
}

// Links returns the destinations of every link, image and autolink in the
// source, in document order.
func Links(source []byte) []string {
	doc := md.Parser().Parse(text.NewReader(source))
	var out []string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := n.(type) {
		case *ast.Link:
			out = append(out, string(v.Destination))
		case *ast.Image:
			out = append(out, string(v.Destination))
		case *ast.AutoLink:
			out = append(out, string(v.URL(source)))
		}
		return ast.WalkContinue, nil
	})
	return out
}

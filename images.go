package paperpress

import (
	"bytes"
	"fmt"
	"html"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"strings"

	"golang.org/x/image/draw"
)

const (
	maxCoverWidth = 1200
	jpegQuality   = 80

	ogWidth  = 1200
	ogHeight = 630
)

// processCover decodes a post's cover image, downscales anything wider than
// maxCoverWidth with CatmullRom, and re-encodes it as JPEG.
func processCover(src io.Reader) ([]byte, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > maxCoverWidth {
		newH := h * maxCoverWidth / w
		dst := image.NewRGBA(image.Rect(0, 0, maxCoverWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// coverFileName names the processed copy of a post's cover under
// /assets/covers/.
func coverFileName(slug string) string {
	return slug + ".jpg"
}

// ogCardSVG renders the 1200x630 social preview card for posts without a
// cover image. Output is deterministic: the same inputs produce the same
// bytes, so rebuilds do not churn the asset.
func ogCardSVG(title, siteTitle, author string) []byte {
	lines := wrapTitle(title, 26, 4)

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		ogWidth, ogHeight, ogWidth, ogHeight)
	b.WriteString(`  <rect width="1200" height="630" fill="#fafafa"/>` + "\n")
	b.WriteString(`  <rect x="38" y="38" width="1124" height="554" fill="none" stroke="#282728" stroke-width="3"/>` + "\n")
	for i, line := range lines {
		fmt.Fprintf(&b,
			`  <text x="84" y="%d" font-family="monospace" font-size="64" font-weight="bold" fill="#282728">%s</text>`+"\n",
			176+i*84, html.EscapeString(line))
	}
	if author != "" {
		fmt.Fprintf(&b,
			`  <text x="84" y="540" font-family="monospace" font-size="36" fill="#282728">by %s</text>`+"\n",
			html.EscapeString(author))
	}
	fmt.Fprintf(&b,
		`  <text x="1116" y="540" text-anchor="end" font-family="monospace" font-size="36" font-weight="bold" fill="#282728">%s</text>`+"\n",
		html.EscapeString(siteTitle))
	b.WriteString("</svg>\n")
	return []byte(b.String())
}

// wrapTitle breaks a title into at most maxLines lines of roughly maxChars
// characters, never splitting words. Overflow past the last line becomes an
// ellipsis.
func wrapTitle(s string, maxChars, maxLines int) []string {
	words := strings.Fields(s)
	var lines []string
	var cur string
	for i, word := range words {
		switch {
		case cur == "":
			cur = word
		case len(cur)+1+len(word) <= maxChars:
			cur += " " + word
		default:
			lines = append(lines, cur)
			cur = word
			if len(lines) == maxLines {
				lines[maxLines-1] += "…"
				return lines
			}
		}
		if i == len(words)-1 {
			lines = append(lines, cur)
		}
	}
	return lines
}

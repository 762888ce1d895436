// Package htmldoc canonicalises HTML content by parsing it into a document
// tree and rendering it back. Two spellings of the same document (attribute
// quoting, implied tags, self-closing syntax) render to the same string, so
// journals that enable it compare pages by document rather than by bytes.
package htmldoc

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// Normalize parses content as an HTML document and renders it back. The
// result always carries the html, head and body elements the parser implies.
func Normalize(content string) (string, error) {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("could not parse HTML: %w", err)
	}

	var b strings.Builder
	b.Grow(len(content))
	if err := html.Render(&b, doc); err != nil {
		return "", fmt.Errorf("could not render HTML: %w", err)
	}

	return b.String(), nil
}

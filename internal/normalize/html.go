// Package normalize strips markup from raw message bodies before
// scoring. Normalization is a pure function of its input.
package normalize

import (
	"strings"

	"golang.org/x/net/html"
)

// HTMLNormalizer converts HTML message bodies to plain text.
type HTMLNormalizer struct{}

// NewHTMLNormalizer creates a normalizer for HTML message bodies.
func NewHTMLNormalizer() *HTMLNormalizer {
	return &HTMLNormalizer{}
}

// Normalize extracts the text content of an HTML fragment, dropping
// script and style bodies and collapsing whitespace. Plain-text input
// passes through with whitespace collapsed.
func (n *HTMLNormalizer) Normalize(raw string) string {
	if raw == "" {
		return ""
	}

	tokenizer := html.NewTokenizer(strings.NewReader(raw))

	var b strings.Builder
	skipDepth := 0

	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return collapseWhitespace(b.String())
		case html.StartTagToken:
			name, _ := tokenizer.TagName()
			if skippedTag(string(name)) {
				skipDepth++
			} else if blockTag(string(name)) {
				b.WriteByte(' ')
			}
		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			if skippedTag(string(name)) && skipDepth > 0 {
				skipDepth--
			}
		case html.TextToken:
			if skipDepth == 0 {
				b.Write(tokenizer.Text())
			}
		}
	}
}

func skippedTag(name string) bool {
	return name == "script" || name == "style"
}

func blockTag(name string) bool {
	switch name {
	case "p", "div", "br", "li", "tr", "td", "h1", "h2", "h3", "h4", "blockquote":
		return true
	}
	return false
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Package preview derives short plain-text excerpts from chapter
// fragments for the table-of-contents tooltips.
package preview

import (
	"net/url"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

// MaxRunes bounds the excerpt length; longer text is cut on a word
// boundary and ellipsized.
const MaxRunes = 200

// previewURL satisfies the readability parser, which resolves relative
// references against the page URL. Fragments have no real URL.
var previewURL, _ = url.Parse("https://localhost/kapitel")

// Excerpt distills a fragment to readable text. Previews are decoration
// only: every failure path yields the empty string or a plain-text
// fallback, never an error.
func Excerpt(fragment string) string {
	if strings.TrimSpace(fragment) == "" {
		return ""
	}

	wrapped := "<html><body>" + fragment + "</body></html>"
	parser := readability.NewParser()
	article, err := parser.Parse(strings.NewReader(wrapped), previewURL)
	if err == nil {
		if text := collapse(article.TextContent); text != "" {
			return truncate(text)
		}
	}
	return truncate(plainText(fragment))
}

// plainText is the fallback for fragments readability rejects (too
// short, no paragraphs): a bare tag-stripping pass.
func plainText(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return ""
	}
	return collapse(doc.Text())
}

// collapse normalizes all whitespace runs to single spaces.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string) string {
	runes := []rune(s)
	if len(runes) <= MaxRunes {
		return s
	}
	cut := MaxRunes
	for cut > 0 && !unicode.IsSpace(runes[cut]) {
		cut--
	}
	if cut == 0 {
		cut = MaxRunes
	}
	return strings.TrimSpace(string(runes[:cut])) + "…"
}

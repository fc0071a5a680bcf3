// Package links post-processes fetched chapter fragments: in-content
// references to other chapters are rewritten to in-page navigation
// targets, and scripts can be stripped for untrusted sources.
package links

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// chapterRef matches a chapter id embedded in a filename-like token,
// e.g. "seite2.1.html" inside an href.
var chapterRef = regexp.MustCompile(`seite(\d+\.\d+)`)

// Options controls the post-processing pass.
type Options struct {
	// StripScripts removes script elements and inline event handlers.
	// Off by default: fragments come from the controlled course source.
	StripScripts bool
}

// Rewrite runs the default pass: chapter links only, no stripping.
func Rewrite(fragment string) string {
	return Process(fragment, Options{})
}

// Process parses the fragment once and applies all enabled rewrites.
// Any href embedding a seite{n}.{n} token is redirected to
// ?kapitel={id}; other links keep their ordinary navigation. Parse
// failures return the fragment unchanged.
func Process(fragment string, opts Options) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		m := chapterRef.FindStringSubmatch(href)
		if m == nil {
			return
		}
		s.SetAttr("href", "?kapitel="+m[1])
		s.SetAttr("data-kapitel", m[1])
	})

	if opts.StripScripts {
		doc.Find("script").Remove()
		doc.Find("*").Each(func(_ int, s *goquery.Selection) {
			attrs := append([]html.Attribute(nil), s.Nodes[0].Attr...)
			for _, attr := range attrs {
				if strings.HasPrefix(strings.ToLower(attr.Key), "on") {
					s.RemoveAttr(attr.Key)
				}
			}
		})
	}

	// goquery parses fragments into a full document; serialize the body
	// back out.
	out, err := doc.Find("body").Html()
	if err != nil {
		return fragment
	}
	return out
}

// ChapterID extracts the referenced chapter id from an href, if any.
func ChapterID(href string) (string, bool) {
	m := chapterRef.FindStringSubmatch(href)
	if m == nil {
		return "", false
	}
	return m[1], true
}

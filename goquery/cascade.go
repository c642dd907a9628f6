// Package goquery implements item extraction on top of goquery.
// Items are located with ordered cascades of CSS selectors: each cascade
// tries its patterns in turn and keeps the matches of the first one that
// finds anything.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Pattern is one structural rule in a Cascade.
type Pattern struct {
	// Selector is a CSS selector matched against the element and its descendants.
	Selector string

	// Attr, if set, is read when a matched element has no text.
	Attr string
}

// Cascade is a priority-ordered list of patterns.
type Cascade []Pattern

// First returns the elements under root matched by the first pattern that
// matches at least one, capped at limit. Results of different patterns are
// never merged. It reports false when no pattern matched.
func (c Cascade) First(root *goquery.Selection, limit int) (*goquery.Selection, bool) {
	for _, p := range c {
		matches := root.Find(p.Selector)
		n := matches.Length()
		if n == 0 {
			continue
		}
		if limit > 0 && n > limit {
			matches = matches.Slice(0, limit)
		}
		return matches, true
	}
	return nil, false
}

// FirstText returns the first non-empty cleaned text found by the cascade
// within el. The element itself is considered before its descendants.
func (c Cascade) FirstText(el *goquery.Selection, clean func(string) string) string {
	for _, p := range c {
		var text string
		selfAndDescendants(el, p.Selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			text = clean(s.Text())
			if text == "" && p.Attr != "" {
				if v, ok := s.Attr(p.Attr); ok {
					text = clean(v)
				}
			}
			return text == ""
		})
		if text != "" {
			return text
		}
	}
	return ""
}

func selfAndDescendants(el *goquery.Selection, selector string) *goquery.Selection {
	return el.Filter(selector).AddSelection(el.Find(selector))
}

// classPattern matches any of tags carrying class.
func classPattern(class string, tags ...string) Pattern {
	parts := make([]string, 0, len(tags))
	for _, tag := range tags {
		parts = append(parts, tag+"."+class)
	}
	return Pattern{Selector: strings.Join(parts, ", ")}
}

// DefaultContainerCascade locates item containers: semantic tags first,
// then known class families, then bare headings with one item per heading.
func DefaultContainerCascade() Cascade {
	return Cascade{
		{Selector: "article"},
		{Selector: "div.post"},
		{Selector: "div.entry"},
		{Selector: "div.blog-post"},
		{Selector: "div.article"},
		{Selector: "div.news-item"},
		{Selector: "li.post"},
		{Selector: "h2"},
		{Selector: "h3"},
	}
}

// DefaultTitleCascade finds an item's title.
func DefaultTitleCascade() Cascade {
	return Cascade{
		{Selector: "h1"},
		{Selector: "h2"},
		{Selector: "h3"},
		{Selector: "h4"},
		{Selector: "a"},
	}
}

// DefaultDateCascade finds an item's free-text date.
func DefaultDateCascade() Cascade {
	c := Cascade{{Selector: "time", Attr: "datetime"}}
	for _, class := range []string{"date", "post-date", "entry-date", "published", "posted-on", "timestamp"} {
		c = append(c, classPattern(class, "span", "div", "p"))
	}
	return c
}

// DefaultExcerptCascade finds an item's excerpt.
func DefaultExcerptCascade() Cascade {
	var c Cascade
	for _, class := range []string{"excerpt", "summary", "entry-summary", "post-excerpt", "entry-content", "content"} {
		c = append(c, classPattern(class, "div"))
	}
	return append(c,
		Pattern{Selector: "p"},
		Pattern{Selector: "span.summary, span.description"},
	)
}

// DefaultNavigationPrefixes lists lower-case title prefixes that mark
// navigation chrome rather than content.
func DefaultNavigationPrefixes() []string {
	return []string{"menu", "navigation", "category", "tag", "tags", "archive", "archives", "search"}
}

// headingSelector is used by heading-scan mode.
const headingSelector = "h2, h3"

// findLink returns the href of the first hyperlink in el (el included).
// Headings without a link of their own borrow the first hyperlink of their
// nearest ancestor that has one.
func findLink(el *goquery.Selection) (string, bool) {
	if href, ok := firstHref(el); ok {
		return href, true
	}
	if !el.Is("h1, h2, h3, h4, h5, h6") {
		return "", false
	}

	var href string
	var found bool
	el.Parents().EachWithBreak(func(_ int, parent *goquery.Selection) bool {
		href, found = firstHref(parent)
		return !found
	})
	return href, found
}

func firstHref(el *goquery.Selection) (string, bool) {
	a := selfAndDescendants(el, "a[href]").First()
	if a.Length() == 0 {
		return "", false
	}
	return a.Attr("href")
}

// ResolveLink turns href into an absolute URL against pageURL. Absolute
// hrefs are kept, protocol-relative ones take the page scheme, and anything
// else is joined onto the page URL with exactly one slash between them.
// An empty href resolves to the page itself.
func ResolveLink(pageURL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return pageURL
	}
	if strings.HasPrefix(href, "//") {
		scheme := "https"
		if base, err := url.Parse(pageURL); err == nil && base.Scheme != "" {
			scheme = base.Scheme
		}
		return scheme + ":" + href
	}
	if u, err := url.Parse(href); err == nil && u.IsAbs() {
		return href
	}
	return strings.TrimSuffix(pageURL, "/") + "/" + strings.TrimPrefix(href, "/")
}

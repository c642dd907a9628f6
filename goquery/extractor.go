package goquery

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/blogwatch"
)

// Extraction defaults.
const (
	DefaultMaxItems     = 5
	DefaultExcerptLimit = 300
)

// Ensure Extractor implements blogwatch.ItemExtractor at compile time.
var _ blogwatch.ItemExtractor = (*Extractor)(nil)

// Extractor finds items on a page with selector cascades. When no container
// yields a usable item it falls back to heading-scan mode, where every h2
// and h3 on the page becomes an item with only a title and link.
type Extractor struct {
	containers Cascade
	titles     Cascade
	dates      Cascade
	excerpts   Cascade

	maxItems     int
	excerptLimit int
	navPrefixes  []string
	normalizer   *blogwatch.Normalizer
	now          func() time.Time
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithMaxItems caps the number of items returned.
// Defaults to DefaultMaxItems (5) if not specified.
func WithMaxItems(n int) Option {
	return func(e *Extractor) {
		e.maxItems = n
	}
}

// WithExcerptLimit sets the excerpt truncation length.
// Defaults to DefaultExcerptLimit (300) if not specified.
func WithExcerptLimit(n int) Option {
	return func(e *Extractor) {
		e.excerptLimit = n
	}
}

// WithExclusions sets the boilerplate phrases dropped from titles and excerpts.
func WithExclusions(set blogwatch.ExclusionSet) Option {
	return func(e *Extractor) {
		e.normalizer = blogwatch.NewNormalizer(set)
	}
}

// WithNavigationPrefixes replaces DefaultNavigationPrefixes.
func WithNavigationPrefixes(prefixes []string) Option {
	return func(e *Extractor) {
		e.navPrefixes = prefixes
	}
}

// WithClock sets the source of ObservedAt timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Extractor) {
		e.now = now
	}
}

// NewExtractor creates a new Extractor using the default cascades.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		containers:   DefaultContainerCascade(),
		titles:       DefaultTitleCascade(),
		dates:        DefaultDateCascade(),
		excerpts:     DefaultExcerptCascade(),
		maxItems:     DefaultMaxItems,
		excerptLimit: DefaultExcerptLimit,
		navPrefixes:  DefaultNavigationPrefixes(),
		normalizer:   blogwatch.NewNormalizer(nil),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract parses html and returns at most maxItems items in page order.
func (e *Extractor) Extract(html string, pageURL string) ([]*blogwatch.Item, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, blogwatch.Errorf(blogwatch.EINVALID, "failed to parse HTML: %v", err)
	}

	observedAt := e.now()

	items := e.fromContainers(doc.Selection, pageURL, observedAt)
	if len(items) == 0 {
		items = e.fromHeadings(doc.Selection, pageURL, observedAt)
	}
	return items, nil
}

func (e *Extractor) fromContainers(root *goquery.Selection, pageURL string, observedAt time.Time) []*blogwatch.Item {
	containers, ok := e.containers.First(root, e.maxItems)
	if !ok {
		return nil
	}

	var items []*blogwatch.Item
	containers.Each(func(_ int, el *goquery.Selection) {
		href, _ := findLink(el)
		item := &blogwatch.Item{
			Title:      e.titles.FirstText(el, e.normalizer.Collapse),
			Date:       e.dates.FirstText(el, e.normalizer.Collapse),
			Excerpt:    blogwatch.Truncate(e.excerpts.FirstText(el, e.normalizer.Clean), e.excerptLimit),
			Link:       ResolveLink(pageURL, href),
			ObservedAt: observedAt,
		}
		if e.usable(item) {
			items = append(items, item)
		}
	})
	return items
}

func (e *Extractor) fromHeadings(root *goquery.Selection, pageURL string, observedAt time.Time) []*blogwatch.Item {
	var items []*blogwatch.Item
	root.Find(headingSelector).EachWithBreak(func(_ int, h *goquery.Selection) bool {
		href, _ := findLink(h)
		item := &blogwatch.Item{
			Title:      e.normalizer.Collapse(h.Text()),
			Link:       ResolveLink(pageURL, href),
			ObservedAt: observedAt,
		}
		if !e.usable(item) {
			return true
		}
		items = append(items, item)
		return e.maxItems <= 0 || len(items) < e.maxItems
	})
	return items
}

// usable rejects invalid items and items whose title contains an exclusion
// phrase or reads like navigation.
func (e *Extractor) usable(item *blogwatch.Item) bool {
	if item.Validate() != nil {
		return false
	}
	if e.normalizer.Exclusions.Match(item.Title) {
		return false
	}
	lower := strings.ToLower(item.Title)
	for _, prefix := range e.navPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return false
		}
	}
	return true
}

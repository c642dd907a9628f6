package mock

import "github.com/fwojciec/blogwatch"

var _ blogwatch.ItemExtractor = (*ItemExtractor)(nil)

// ItemExtractor is a mock implementation of blogwatch.ItemExtractor.
type ItemExtractor struct {
	ExtractFn func(html, pageURL string) ([]*blogwatch.Item, error)
}

func (e *ItemExtractor) Extract(html, pageURL string) ([]*blogwatch.Item, error) {
	return e.ExtractFn(html, pageURL)
}

var _ blogwatch.PageTitler = (*PageTitler)(nil)

// PageTitler is a mock implementation of blogwatch.PageTitler.
type PageTitler struct {
	TitleFn func(html string) (string, error)
}

func (p *PageTitler) Title(html string) (string, error) {
	return p.TitleFn(html)
}

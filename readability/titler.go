package readability

import (
	"strings"

	"github.com/fwojciec/blogwatch"
	"github.com/go-shiori/go-readability"
)

// Ensure Titler implements blogwatch.PageTitler at compile time.
var _ blogwatch.PageTitler = (*Titler)(nil)

// Titler wraps go-readability to read a page's title metadata.
type Titler struct {
	normalizer *blogwatch.Normalizer
}

// NewTitler creates a new Titler.
func NewTitler() *Titler {
	return &Titler{normalizer: blogwatch.NewNormalizer(nil)}
}

// Title returns the page title. Returns ENOTFOUND when the page has none.
func (t *Titler) Title(rawHTML string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", blogwatch.Errorf(blogwatch.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return "", err
	}

	title := t.normalizer.Collapse(article.Title)
	if title == "" {
		return "", blogwatch.Errorf(blogwatch.ENOTFOUND, "page has no title")
	}
	return title, nil
}

// Package htmltomarkdown renders HTML fragments as Markdown for plain-text
// digest bodies.
package htmltomarkdown

import (
	"fmt"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/fwojciec/blogwatch"
)

// Ensure Converter implements blogwatch.Converter at compile time.
var _ blogwatch.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to convert HTML to Markdown.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter. Styling attributes are dropped;
// headings, paragraphs and links survive. Text is not Markdown-escaped, so
// titles and excerpts read exactly as on the page.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithEscapeMode(converter.EscapeModeDisabled),
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms an HTML fragment into trimmed Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", blogwatch.Errorf(blogwatch.EINVALID, "empty HTML input")
	}

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("convert html to markdown: %w", err)
	}

	return strings.TrimSpace(result), nil
}

package blogwatch

import (
	"fmt"
	"html/template"
	"strconv"
	"strings"
)

// DefaultDigestExcerptLimit is the excerpt length used in digests.
const DefaultDigestExcerptLimit = 200

// AnchorPrefix prefixes the 1-based position of an item to form its anchor.
const AnchorPrefix = "item-"

var detailsTmpl = template.Must(template.New("details").Parse(`<div>
{{range .}}<div id="{{.Anchor}}" style="border-top: 1px solid #ddd; padding: 12px 0;">
<h3 style="font-size: 16px; margin: 0 0 4px;">{{.Title}}</h3>
{{if .Date}}<p style="color: #666; font-size: 13px; margin: 0 0 8px;">{{.Date}}</p>
{{end}}{{if .Excerpt}}<p style="margin: 0 0 8px; line-height: 1.5;">{{.Excerpt}}</p>
{{end}}<p style="margin: 0;"><a href="{{.Link}}" style="color: #1a5fb4;">{{.Link}}</a></p>
</div>
{{end}}</div>`))

var digestTmpl = template.Must(template.New("digest").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body style="font-family: -apple-system, 'Segoe UI', sans-serif; color: #222; max-width: 640px; margin: 0 auto; padding: 16px;">
<h1 style="font-size: 20px;">{{.Source.Name}}: {{len .Entries}} new item(s)</h1>
<div style="background: #f5f5f5; border-radius: 4px; padding: 12px 16px; margin-bottom: 16px;">
<h2 style="font-size: 15px; margin: 0 0 8px;">Contents</h2>
<ol style="margin: 0; padding-left: 20px;">
{{range .Entries}}<li><a href="#{{.Anchor}}" style="color: #1a5fb4;">{{.Title}}</a></li>
{{end}}</ol>
</div>
{{.Details}}
<p style="color: #666; font-size: 12px; margin-top: 24px;">Source: <a href="{{.Source.URL}}">{{.Source.URL}}</a></p>
</body>
</html>
`))

type digestEntry struct {
	Anchor  string
	Title   string
	Date    string
	Excerpt string
	Link    string
}

// DigestRenderer renders new items into a text and HTML notification body.
// The text part is the Markdown conversion of the HTML detail block, so both
// parts always carry the same facts.
type DigestRenderer struct {
	Converter    Converter
	ExcerptLimit int
}

// NewDigestRenderer creates a DigestRenderer with the default excerpt limit.
func NewDigestRenderer(conv Converter) *DigestRenderer {
	return &DigestRenderer{
		Converter:    conv,
		ExcerptLimit: DefaultDigestExcerptLimit,
	}
}

// Anchor returns the anchor of the item at 0-based index i.
func Anchor(i int) string {
	return AnchorPrefix + strconv.Itoa(i+1)
}

// DigestSubject returns the subject line for n new items from src.
func DigestSubject(src Source, n int) string {
	return fmt.Sprintf("[%s] %d new item(s)", src.Name, n)
}

// Render builds the digest for items. Callers must not render an empty list.
func (r *DigestRenderer) Render(src Source, items []*Item) (*Digest, error) {
	if len(items) == 0 {
		return nil, Errorf(EINVALID, "no items to render")
	}
	if r.Converter == nil {
		return nil, Errorf(EINTERNAL, "digest renderer has no converter")
	}

	entries := make([]digestEntry, 0, len(items))
	for i, item := range items {
		entries = append(entries, digestEntry{
			Anchor:  Anchor(i),
			Title:   item.Title,
			Date:    item.Date,
			Excerpt: Truncate(item.Excerpt, r.ExcerptLimit),
			Link:    item.Link,
		})
	}

	var details strings.Builder
	if err := detailsTmpl.Execute(&details, entries); err != nil {
		return nil, fmt.Errorf("render digest details: %w", err)
	}

	var body strings.Builder
	err := digestTmpl.Execute(&body, struct {
		Source  Source
		Entries []digestEntry
		Details template.HTML
	}{
		Source:  src,
		Entries: entries,
		Details: template.HTML(details.String()),
	})
	if err != nil {
		return nil, fmt.Errorf("render digest: %w", err)
	}

	markdown, err := r.Converter.Convert(details.String())
	if err != nil {
		return nil, fmt.Errorf("convert digest to text: %w", err)
	}

	text := fmt.Sprintf("%s has %d new item(s).\n\n%s\n\nSource: %s\n",
		src.Name, len(items), strings.TrimSpace(markdown), src.URL)

	return &Digest{
		Subject: DigestSubject(src, len(items)),
		Text:    text,
		HTML:    body.String(),
	}, nil
}

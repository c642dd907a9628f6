package main

import (
	"fmt"

	"github.com/fwojciec/blogwatch"
	"github.com/fwojciec/blogwatch/watch"
)

// Run executes the preview command.
func (c *PreviewCmd) Run(deps *Dependencies) error {
	html, err := deps.Fetcher.Fetch(deps.Ctx, deps.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	items, err := deps.Extractor.Extract(html, deps.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	if len(items) == 0 {
		fmt.Fprintln(deps.Stdout, "No items found.")
		return nil
	}

	if c.Digest {
		src := watch.ResolveSource(deps.SourceName, deps.URL, deps.Titler, html)
		digest, err := blogwatch.NewDigestRenderer(deps.Converter).Render(src, items)
		if err != nil {
			return err
		}
		fmt.Fprintf(deps.Stdout, "Subject: %s\n\n%s", digest.Subject, digest.Text)
		return nil
	}

	for i, item := range items {
		fmt.Fprintf(deps.Stdout, "%d. %s\n", i+1, item.Title)
		if item.Date != "" {
			fmt.Fprintf(deps.Stdout, "   %s\n", item.Date)
		}
		fmt.Fprintf(deps.Stdout, "   %s\n", item.Link)
		if item.Excerpt != "" {
			fmt.Fprintf(deps.Stdout, "   %s\n", blogwatch.Truncate(item.Excerpt, 80))
		}
	}
	return nil
}

// Package watch runs a single check of the watched page: fetch, extract,
// compare with the stored snapshot, announce new items, and store the
// current items as the next snapshot.
package watch

import (
	"context"
	"io"
	"log/slog"
	"net/url"

	"github.com/fwojciec/blogwatch"
	"github.com/google/uuid"
)

// Watcher orchestrates one check of a page. Steps run strictly in order and
// a failing step never aborts the run; it is logged and recorded in the
// Result instead.
type Watcher struct {
	URL string

	// SourceName labels the page in digests. When empty it is read from the
	// page title, falling back to the URL host.
	SourceName string

	Fetcher   blogwatch.Fetcher
	Extractor blogwatch.ItemExtractor
	Snapshots blogwatch.SnapshotStore
	Renderer  *blogwatch.DigestRenderer
	Notifier  blogwatch.Notifier

	// Titler is optional.
	Titler blogwatch.PageTitler

	Logger *slog.Logger

	// KeepSnapshotOnEmpty leaves the stored snapshot untouched when the page
	// yields no items, so an outage does not cause a re-announcement of
	// every item once the page is back. By default the empty set is stored.
	KeepSnapshotOnEmpty bool

	// NewRunID generates run identifiers. Defaults to random UUIDs.
	NewRunID func() string
}

// Result is the outcome of a run.
type Result struct {
	RunID     string
	Source    blogwatch.Source
	Extracted []*blogwatch.Item
	New       []*blogwatch.Item
	Notified  bool
	Saved     bool

	// Errors holds every step failure in the order it occurred.
	Errors []error
}

// Run performs one check. It always returns a Result.
func (w *Watcher) Run(ctx context.Context) *Result {
	res := &Result{RunID: w.runID()}
	logger := w.logger().With("run", res.RunID)

	html, err := w.Fetcher.Fetch(ctx, w.URL)
	if err != nil {
		logger.Error("fetch failed", "url", w.URL, "err", err)
		res.Errors = append(res.Errors, err)
	}

	var current []*blogwatch.Item
	if html != "" {
		current, err = w.Extractor.Extract(html, w.URL)
		if err != nil {
			logger.Error("extract failed", "url", w.URL, "err", err)
			res.Errors = append(res.Errors, err)
			current = nil
		}
	}
	res.Extracted = current
	logger.Info("items extracted", "count", len(current))

	previous, err := w.Snapshots.Load(ctx)
	if err != nil {
		if blogwatch.ErrorCode(err) == blogwatch.ENOTFOUND {
			logger.Info("no previous snapshot")
		} else {
			logger.Warn("snapshot unreadable, treating as empty", "err", err)
			res.Errors = append(res.Errors, err)
		}
		previous = nil
	}

	res.New = blogwatch.NewItems(current, previous)
	res.Source = w.source(html)

	if len(res.New) == 0 {
		logger.Info("no new items")
	} else {
		logger.Info("new items found", "count", len(res.New), "source", res.Source.Name)
		if err := w.announce(ctx, res.Source, res.New); err != nil {
			logger.Error("notification failed", "err", err)
			res.Errors = append(res.Errors, err)
		} else {
			res.Notified = true
		}
	}

	if len(current) == 0 && w.KeepSnapshotOnEmpty {
		logger.Info("nothing extracted, keeping previous snapshot")
		return res
	}

	if current == nil {
		current = []*blogwatch.Item{}
	}
	if err := w.Snapshots.Save(ctx, current); err != nil {
		logger.Error("snapshot save failed", "err", err)
		res.Errors = append(res.Errors, err)
	} else {
		res.Saved = true
	}

	return res
}

func (w *Watcher) announce(ctx context.Context, src blogwatch.Source, items []*blogwatch.Item) error {
	digest, err := w.Renderer.Render(src, items)
	if err != nil {
		return err
	}
	return w.Notifier.Send(ctx, digest)
}

func (w *Watcher) source(html string) blogwatch.Source {
	return ResolveSource(w.SourceName, w.URL, w.Titler, html)
}

// ResolveSource names the page at pageURL. A configured name wins, then the
// page title read by titler (which may be nil), then the host of the URL.
func ResolveSource(name, pageURL string, titler blogwatch.PageTitler, html string) blogwatch.Source {
	src := blogwatch.Source{Name: name, URL: pageURL}
	if src.Name != "" {
		return src
	}

	if titler != nil && html != "" {
		if title, err := titler.Title(html); err == nil && title != "" {
			src.Name = title
			return src
		}
	}

	if u, err := url.Parse(pageURL); err == nil && u.Host != "" {
		src.Name = u.Host
	} else {
		src.Name = pageURL
	}
	return src
}

func (w *Watcher) runID() string {
	if w.NewRunID != nil {
		return w.NewRunID()
	}
	return uuid.NewString()
}

func (w *Watcher) logger() *slog.Logger {
	if w.Logger != nil {
		return w.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

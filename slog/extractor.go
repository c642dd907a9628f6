package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/blogwatch"
)

// Ensure LoggingExtractor implements blogwatch.ItemExtractor.
var _ blogwatch.ItemExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an ItemExtractor with debug logging.
type LoggingExtractor struct {
	next   blogwatch.ItemExtractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next blogwatch.ItemExtractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs each extracted title
// at debug level.
func (e *LoggingExtractor) Extract(html, pageURL string) (items []*blogwatch.Item, err error) {
	defer func(begin time.Time) {
		e.logger.Info("extract",
			"url", pageURL,
			"count", len(items),
			"duration", time.Since(begin),
			"err", err,
		)
		for i, item := range items {
			e.logger.Debug("extracted item", "index", i, "title", item.Title, "link", item.Link)
		}
	}(time.Now())
	return e.next.Extract(html, pageURL)
}

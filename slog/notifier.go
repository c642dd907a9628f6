package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/blogwatch"
)

// Ensure LoggingNotifier implements blogwatch.Notifier.
var _ blogwatch.Notifier = (*LoggingNotifier)(nil)

// LoggingNotifier wraps a Notifier with logging.
type LoggingNotifier struct {
	next   blogwatch.Notifier
	logger *slog.Logger
}

// NewLoggingNotifier creates a new LoggingNotifier.
func NewLoggingNotifier(next blogwatch.Notifier, logger *slog.Logger) *LoggingNotifier {
	return &LoggingNotifier{next: next, logger: logger}
}

// Send delegates to the wrapped notifier and logs the subject.
func (n *LoggingNotifier) Send(ctx context.Context, digest *blogwatch.Digest) (err error) {
	defer func(begin time.Time) {
		n.logger.Info("notify",
			"subject", digest.Subject,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return n.next.Send(ctx, digest)
}

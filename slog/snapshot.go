package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/blogwatch"
)

// Ensure LoggingSnapshotStore implements blogwatch.SnapshotStore.
var _ blogwatch.SnapshotStore = (*LoggingSnapshotStore)(nil)

// LoggingSnapshotStore wraps a SnapshotStore with logging.
type LoggingSnapshotStore struct {
	next   blogwatch.SnapshotStore
	logger *slog.Logger
}

// NewLoggingSnapshotStore creates a new LoggingSnapshotStore.
func NewLoggingSnapshotStore(next blogwatch.SnapshotStore, logger *slog.Logger) *LoggingSnapshotStore {
	return &LoggingSnapshotStore{next: next, logger: logger}
}

// Load delegates to the wrapped store and logs the operation. A missing
// snapshot is expected on the first run and is logged without an error level.
func (s *LoggingSnapshotStore) Load(ctx context.Context) (items []*blogwatch.Item, err error) {
	defer func(begin time.Time) {
		level := slog.LevelInfo
		if err != nil && blogwatch.ErrorCode(err) != blogwatch.ENOTFOUND {
			level = slog.LevelWarn
		}
		s.logger.Log(ctx, level, "snapshot load",
			"count", len(items),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Load(ctx)
}

// Save delegates to the wrapped store and logs the operation.
func (s *LoggingSnapshotStore) Save(ctx context.Context, items []*blogwatch.Item) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("snapshot save",
			"count", len(items),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Save(ctx, items)
}

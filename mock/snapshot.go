package mock

import (
	"context"

	"github.com/fwojciec/blogwatch"
)

var _ blogwatch.SnapshotStore = (*SnapshotStore)(nil)

// SnapshotStore is a mock implementation of blogwatch.SnapshotStore.
type SnapshotStore struct {
	LoadFn func(ctx context.Context) ([]*blogwatch.Item, error)
	SaveFn func(ctx context.Context, items []*blogwatch.Item) error
}

func (s *SnapshotStore) Load(ctx context.Context) ([]*blogwatch.Item, error) {
	return s.LoadFn(ctx)
}

func (s *SnapshotStore) Save(ctx context.Context, items []*blogwatch.Item) error {
	return s.SaveFn(ctx, items)
}

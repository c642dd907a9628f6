package mock

import (
	"context"

	"github.com/fwojciec/blogwatch"
)

var _ blogwatch.Notifier = (*Notifier)(nil)

// Notifier is a mock implementation of blogwatch.Notifier.
type Notifier struct {
	SendFn func(ctx context.Context, d *blogwatch.Digest) error
}

func (n *Notifier) Send(ctx context.Context, d *blogwatch.Digest) error {
	return n.SendFn(ctx, d)
}

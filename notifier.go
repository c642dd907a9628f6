package blogwatch

import "context"

// Digest is a rendered notification for a batch of new items.
// Text and HTML carry the same facts; HTML additionally has a table of contents.
type Digest struct {
	Subject string
	Text    string
	HTML    string
}

// Notifier delivers digests.
type Notifier interface {
	Send(ctx context.Context, digest *Digest) error
}

package blogwatch

import "context"

// Fetcher retrieves the HTML of the watched page.
type Fetcher interface {
	// Fetch performs a single GET of url and returns the body decoded to UTF-8.
	// Transport failures and non-success statuses are returned as errors.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}

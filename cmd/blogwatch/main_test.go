package main_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/blogwatch"
	main "github.com/fwojciec/blogwatch/cmd/blogwatch"
	"github.com/fwojciec/blogwatch/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const blogURL = "https://example.com/blog"

const blogPage = `<!DOCTYPE html>
<html><head><title>Example Blog</title></head>
<body>
<article><h2><a href="/posts/two">Second post</a></h2><span class="date">2024-05-02</span><p>Second body</p></article>
<article><h2><a href="/posts/one">First post</a></h2><span class="date">2024-05-01</span><p>First body</p></article>
</body></html>`

func pageFetcher(html string) *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) {
			return html, nil
		},
		CloseFn: func() error { return nil },
	}
}

func TestMain_Run_Help(t *testing.T) {
	t.Parallel()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := main.NewMain().Run(context.Background(), []string{"--help"}, stdout, stderr)

	require.NoError(t, err)
	helpOutput := stdout.String()
	assert.Contains(t, helpOutput, "check")
	assert.Contains(t, helpOutput, "preview")
	assert.Contains(t, helpOutput, "Usage:")
	assert.Contains(t, helpOutput, "Flags:")
	assert.Contains(t, helpOutput, "BLOG_URL")
}

func TestMain_Run_RequiresURL(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.Fetcher = pageFetcher(blogPage)

	err := m.Run(context.Background(), []string{"preview"}, &bytes.Buffer{}, &bytes.Buffer{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "--url")
}

func TestCmdPreview(t *testing.T) {
	t.Parallel()

	t.Run("lists extracted items", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.Fetcher = pageFetcher(blogPage)
		stdout := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"--url", blogURL, "preview"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		out := stdout.String()
		assert.Contains(t, out, "1. Second post")
		assert.Contains(t, out, "2024-05-02")
		assert.Contains(t, out, "https://example.com/blog/posts/two")
		assert.Contains(t, out, "2. First post")
	})

	t.Run("honours max items", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.Fetcher = pageFetcher(blogPage)
		stdout := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"--url", blogURL, "--max-items", "1", "preview"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "1. Second post")
		assert.NotContains(t, stdout.String(), "First post")
	})

	t.Run("prints the text digest", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.Fetcher = pageFetcher(blogPage)
		stdout := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"--url", blogURL, "--source", "Example", "preview", "--digest"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Subject: [Example] 2 new item(s)")
		assert.Contains(t, stdout.String(), "Second post")
	})

	t.Run("reports pages without items", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.Fetcher = pageFetcher(`<html><body><p>nothing here</p></body></html>`)
		stdout := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"--url", blogURL, "preview"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No items found.")
	})

	t.Run("returns fetch errors", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.Fetcher = &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", errors.New("HTTP 404 for " + url)
			},
			CloseFn: func() error { return nil },
		}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"--url", blogURL, "preview"}, &bytes.Buffer{}, stderr)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "HTTP 404")
	})
}

func TestCmdCheck(t *testing.T) {
	t.Parallel()

	t.Run("announces new items once and stores the snapshot", func(t *testing.T) {
		t.Parallel()

		cacheFile := filepath.Join(t.TempDir(), "last_articles.json")
		var digests []*blogwatch.Digest
		m := main.NewMain()
		m.Fetcher = pageFetcher(blogPage)
		m.Notifier = &mock.Notifier{
			SendFn: func(ctx context.Context, d *blogwatch.Digest) error {
				digests = append(digests, d)
				return nil
			},
		}
		args := []string{"--url", blogURL, "check", "--cache-file", cacheFile}

		stdout := &bytes.Buffer{}
		err := m.Run(context.Background(), args, stdout, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "2 new")

		stdout.Reset()
		err = m.Run(context.Background(), args, stdout, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "0 new")

		require.Len(t, digests, 1)
		assert.Equal(t, "[Example Blog] 2 new item(s)", digests[0].Subject)
		data, err := os.ReadFile(cacheFile)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"title": "Second post"`)
	})

	t.Run("runs check when no command is given", func(t *testing.T) {
		t.Parallel()

		cacheFile := filepath.Join(t.TempDir(), "last_articles.json")
		sent := 0
		m := main.NewMain()
		m.Fetcher = pageFetcher(blogPage)
		m.Notifier = &mock.Notifier{
			SendFn: func(ctx context.Context, d *blogwatch.Digest) error {
				sent++
				return nil
			},
		}

		err := m.Run(context.Background(), []string{"--url", blogURL, "--cache-file", cacheFile}, &bytes.Buffer{}, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Equal(t, 1, sent)
	})

	t.Run("does not fail when a step fails", func(t *testing.T) {
		t.Parallel()

		cacheFile := filepath.Join(t.TempDir(), "last_articles.json")
		m := main.NewMain()
		m.Fetcher = &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", errors.New("connection refused")
			},
			CloseFn: func() error { return nil },
		}
		m.Notifier = &mock.Notifier{}
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"--url", blogURL, "check", "--cache-file", cacheFile}, stdout, stderr)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "errors=1")
		assert.Contains(t, stderr.String(), "connection refused")
		data, err := os.ReadFile(cacheFile)
		require.NoError(t, err)
		assert.Equal(t, "[]\n", string(data))
	})

	t.Run("requires mail credentials without an injected notifier", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.Fetcher = pageFetcher(blogPage)
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"--url", blogURL, "check", "--cache-file", filepath.Join(t.TempDir(), "c.json")}, &bytes.Buffer{}, stderr)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "sender address required")
		assert.Contains(t, stderr.String(), "EMAIL_ADDRESS")
	})

	t.Run("logs service calls with debug", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.Fetcher = pageFetcher(blogPage)
		m.Notifier = &mock.Notifier{
			SendFn: func(ctx context.Context, d *blogwatch.Digest) error { return nil },
		}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"--url", blogURL, "--debug", "check", "--cache-file", filepath.Join(t.TempDir(), "c.json")}, &bytes.Buffer{}, stderr)

		require.NoError(t, err)
		logs := stderr.String()
		assert.Contains(t, logs, "msg=fetch")
		assert.Contains(t, logs, "msg=extract")
		assert.Contains(t, logs, "msg=\"snapshot save\"")
		assert.Contains(t, logs, "msg=notify")
		assert.Contains(t, logs, "title=\"Second post\"")
	})
}

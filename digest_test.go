package blogwatch_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/fwojciec/blogwatch"
	"github.com/fwojciec/blogwatch/htmltomarkdown"
	"github.com/fwojciec/blogwatch/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func passthroughConverter() *mock.Converter {
	return &mock.Converter{
		ConvertFn: func(html string) (string, error) {
			return html, nil
		},
	}
}

func TestDigestRenderer_Render(t *testing.T) {
	t.Parallel()

	src := blogwatch.Source{Name: "Example Blog", URL: "https://example.com/blog/"}

	t.Run("both parts carry every fact", func(t *testing.T) {
		t.Parallel()

		r := blogwatch.NewDigestRenderer(passthroughConverter())
		digest, err := r.Render(src, []*blogwatch.Item{
			{Title: "First Post", Date: "2024-05-01", Excerpt: "An excerpt.", Link: "https://example.com/blog/posts/1"},
			{Title: "Second Post", Link: "https://example.com/blog/posts/2"},
		})

		require.NoError(t, err)
		for _, part := range []string{digest.Text, digest.HTML} {
			assert.Contains(t, part, "Example Blog")
			assert.Contains(t, part, "https://example.com/blog/")
			assert.Contains(t, part, "First Post")
			assert.Contains(t, part, "2024-05-01")
			assert.Contains(t, part, "An excerpt.")
			assert.Contains(t, part, "https://example.com/blog/posts/1")
			assert.Contains(t, part, "Second Post")
			assert.Contains(t, part, "https://example.com/blog/posts/2")
		}
	})

	t.Run("html has table of contents linking to anchored entries", func(t *testing.T) {
		t.Parallel()

		r := blogwatch.NewDigestRenderer(passthroughConverter())
		digest, err := r.Render(src, items("A", "B", "C"))

		require.NoError(t, err)
		for _, anchor := range []string{"item-1", "item-2", "item-3"} {
			assert.Contains(t, digest.HTML, `href="#`+anchor+`"`)
			assert.Contains(t, digest.HTML, `id="`+anchor+`"`)
		}
		assert.Less(t, strings.Index(digest.HTML, `href="#item-1"`), strings.Index(digest.HTML, `id="item-1"`))
	})

	t.Run("text has no table of contents", func(t *testing.T) {
		t.Parallel()

		r := blogwatch.NewDigestRenderer(passthroughConverter())
		digest, err := r.Render(src, items("A"))

		require.NoError(t, err)
		assert.NotContains(t, digest.Text, `href="#item-1"`)
		assert.NotContains(t, digest.Text, "Contents")
	})

	t.Run("subject names source and count", func(t *testing.T) {
		t.Parallel()

		r := blogwatch.NewDigestRenderer(passthroughConverter())
		digest, err := r.Render(src, items("A", "B"))

		require.NoError(t, err)
		assert.Equal(t, "[Example Blog] 2 new item(s)", digest.Subject)
	})

	t.Run("truncates excerpts to the render limit", func(t *testing.T) {
		t.Parallel()

		r := blogwatch.NewDigestRenderer(passthroughConverter())
		long := strings.Repeat("a", 250)
		digest, err := r.Render(src, []*blogwatch.Item{{Title: "Long", Excerpt: long, Link: "https://example.com"}})

		require.NoError(t, err)
		assert.Contains(t, digest.HTML, strings.Repeat("a", 200)+"...")
		assert.NotContains(t, digest.HTML, strings.Repeat("a", 201))
	})

	t.Run("omits date and excerpt when absent", func(t *testing.T) {
		t.Parallel()

		r := blogwatch.NewDigestRenderer(passthroughConverter())
		digest, err := r.Render(src, []*blogwatch.Item{{Title: "Bare", Link: "https://example.com"}})

		require.NoError(t, err)
		assert.NotContains(t, digest.HTML, "color: #666; font-size: 13px")
	})

	t.Run("escapes markup in item fields", func(t *testing.T) {
		t.Parallel()

		r := blogwatch.NewDigestRenderer(passthroughConverter())
		digest, err := r.Render(src, []*blogwatch.Item{{Title: "<script>x</script>", Link: "https://example.com"}})

		require.NoError(t, err)
		assert.NotContains(t, digest.HTML, "<script>")
	})

	t.Run("rejects empty item list", func(t *testing.T) {
		t.Parallel()

		r := blogwatch.NewDigestRenderer(passthroughConverter())
		_, err := r.Render(src, nil)

		require.Error(t, err)
		assert.Equal(t, blogwatch.EINVALID, blogwatch.ErrorCode(err))
	})

	t.Run("returns converter error", func(t *testing.T) {
		t.Parallel()

		r := blogwatch.NewDigestRenderer(&mock.Converter{
			ConvertFn: func(html string) (string, error) {
				return "", errors.New("boom")
			},
		})
		_, err := r.Render(src, items("A"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "boom")
	})
}

func TestDigestRenderer_RenderMarkdownText(t *testing.T) {
	t.Parallel()

	// Given an item whose text contains Markdown syntax characters
	r := blogwatch.NewDigestRenderer(htmltomarkdown.NewConverter())
	src := blogwatch.Source{Name: "Example Blog", URL: "https://example.com/blog"}
	items := []*blogwatch.Item{{
		Title:   "my_post *x* [draft] #1",
		Excerpt: "a_b 1. c *d* [e] #f",
		Link:    "https://example.com/blog/my_post",
	}}

	// When the digest is rendered through the Markdown converter
	d, err := r.Render(src, items)

	// Then the text part carries title and excerpt byte for byte
	require.NoError(t, err)
	assert.Contains(t, d.Text, "my_post *x* [draft] #1")
	assert.Contains(t, d.Text, "a_b 1. c *d* [e] #f")
	assert.Contains(t, d.Text, "https://example.com/blog/my_post")
	assert.NotContains(t, d.Text, `\_`)
	assert.NotContains(t, d.Text, `\*`)
}

func TestAnchor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "item-1", blogwatch.Anchor(0))
	assert.Equal(t, "item-10", blogwatch.Anchor(9))
}

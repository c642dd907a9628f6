package blogwatch

// ItemExtractor turns an HTML document into an ordered list of items.
type ItemExtractor interface {
	// Extract parses html and returns the items found on the page.
	// pageURL is used to resolve relative links and as the default link.
	// A page with no recognisable items yields an empty slice, not an error.
	Extract(html string, pageURL string) ([]*Item, error)
}

// PageTitler reads the human-readable title of a page from its metadata.
type PageTitler interface {
	Title(html string) (string, error)
}

package jursearch

// ExtractResult holds the extracted content from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML.
	// Boilerplate (nav, footer, sidebar, ads) has been removed.
	ContentHTML string

	// Text is the main content as plain text with whitespace normalized.
	Text string
}

// Extractor extracts main content from HTML pages, removing boilerplate.
type Extractor interface {
	// Extract processes raw HTML and returns the main content.
	Extract(html string) (*ExtractResult, error)
}

// TitleExtractor picks a human-readable title out of an HTML page.
type TitleExtractor interface {
	// ExtractTitle always returns a non-empty title, using a placeholder
	// when the page declares none.
	ExtractTitle(html string) string
}

package jursearch

import (
	"context"
	"strings"
	"time"
)

// Link is a hit returned by a web search engine.
type Link struct {
	URL   string
	Title string

	// ModTime is the engine's last-modified stamp, e.g. "20250307T093511".
	ModTime string
}

// LinkSearcher queries a web search engine for result links.
type LinkSearcher interface {
	// SearchLinks returns up to n links for the query.
	SearchLinks(ctx context.Context, query string, n int) ([]Link, error)
}

// WebPage is a scraped web page reduced to readable text.
type WebPage struct {
	URL         string
	Title       string
	Content     string
	PublishedAt *time.Time
}

// PageScraper fetches a web page and extracts its title and text.
type PageScraper interface {
	Scrape(ctx context.Context, url string) (*WebPage, error)
}

// CollapseWhitespace trims s and replaces every run of whitespace with a
// single space.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

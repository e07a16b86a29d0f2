package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/jursearch"
)

// Ensure TitleExtractor implements jursearch.TitleExtractor at compile time.
var _ jursearch.TitleExtractor = (*TitleExtractor)(nil)

// TitleExtractor reads a page title from <title>, then the Open Graph and
// Twitter card metadata.
type TitleExtractor struct{}

// NewTitleExtractor creates a new TitleExtractor.
func NewTitleExtractor() *TitleExtractor {
	return &TitleExtractor{}
}

// ExtractTitle returns the first non-empty title candidate, or
// jursearch.UntitledPlaceholder.
func (e *TitleExtractor) ExtractTitle(rawHTML string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return jursearch.UntitledPlaceholder
	}

	if t := strings.TrimSpace(doc.Find("title").First().Text()); t != "" {
		return t
	}
	for _, sel := range []string{`meta[property="og:title"]`, `meta[name="twitter:title"]`} {
		if content, ok := doc.Find(sel).First().Attr("content"); ok {
			if t := strings.TrimSpace(content); t != "" {
				return t
			}
		}
	}
	return jursearch.UntitledPlaceholder
}

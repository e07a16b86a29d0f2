// Package readability extracts the main text of scraped web pages with
// go-readability. It serves as a second opinion when trafilatura finds no
// content.
package readability

import (
	"strings"

	"github.com/fwojciec/jursearch"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements jursearch.Extractor at compile time.
var _ jursearch.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*jursearch.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, jursearch.Errorf(jursearch.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	return &jursearch.ExtractResult{
		Title:       strings.TrimSpace(article.Title),
		ContentHTML: article.Content,
		Text:        jursearch.CollapseWhitespace(article.TextContent),
	}, nil
}

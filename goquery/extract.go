// Package goquery implements HTML helpers on top of goquery: a noise
// stripping fallback extractor and a page title extractor.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/jursearch"
	"golang.org/x/net/html"
)

// noiseSelector matches elements that never carry article text.
const noiseSelector = "script, style, header, footer, nav, aside"

// Ensure Extractor implements jursearch.Extractor at compile time.
var _ jursearch.Extractor = (*Extractor)(nil)

// Extractor strips page chrome and returns whatever text remains. It is a
// last resort for pages the main-content extractors reject.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract removes noise elements and collects the remaining text.
func (e *Extractor) Extract(rawHTML string) (*jursearch.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, jursearch.Errorf(jursearch.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, jursearch.Errorf(jursearch.EINVALID, "failed to parse HTML: %v", err)
	}

	doc.Find(noiseSelector).Remove()

	root := doc.Find("body")
	if root.Length() == 0 {
		root = doc.Selection
	}
	contentHTML, err := root.Html()
	if err != nil {
		return nil, err
	}

	return &jursearch.ExtractResult{
		Title:       strings.TrimSpace(doc.Find("title").First().Text()),
		ContentHTML: contentHTML,
		Text:        jursearch.CollapseWhitespace(strings.Join(textNodes(root.Nodes), "\n")),
	}, nil
}

// textNodes returns the trimmed, non-empty text nodes under nodes in
// document order.
func textNodes(nodes []*html.Node) []string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range nodes {
		walk(n)
	}
	return parts
}

package mock

import "github.com/fwojciec/jursearch"

var _ jursearch.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of jursearch.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*jursearch.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*jursearch.ExtractResult, error) {
	return e.ExtractFn(html)
}

var _ jursearch.TitleExtractor = (*TitleExtractor)(nil)

// TitleExtractor is a mock implementation of jursearch.TitleExtractor.
type TitleExtractor struct {
	ExtractTitleFn func(html string) string
}

func (e *TitleExtractor) ExtractTitle(html string) string {
	return e.ExtractTitleFn(html)
}

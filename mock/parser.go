package mock

import "github.com/fwojciec/jursearch"

var _ jursearch.DocumentParser = (*DocumentParser)(nil)

// DocumentParser is a mock implementation of jursearch.DocumentParser.
type DocumentParser struct {
	ParseFn func(payload []byte) *jursearch.Extraction
	TitleFn func(payload []byte) (string, error)
}

func (p *DocumentParser) Parse(payload []byte) *jursearch.Extraction {
	return p.ParseFn(payload)
}

func (p *DocumentParser) Title(payload []byte) (string, error) {
	return p.TitleFn(payload)
}

package mock

import "github.com/fwojciec/jursearch"

var _ jursearch.Converter = (*Converter)(nil)

// Converter is a mock implementation of jursearch.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

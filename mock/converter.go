package mock

import "github.com/fwojciec/pageindex"

var _ pageindex.Converter = (*Converter)(nil)

// Converter is a mock implementation of pageindex.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

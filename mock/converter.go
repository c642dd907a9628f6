package mock

import "github.com/fwojciec/blogwatch"

var _ blogwatch.Converter = (*Converter)(nil)

// Converter is a mock implementation of blogwatch.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

// Package catalog supplies the debate formats a session can be run with.
package catalog

import (
	"errors"
	"fmt"

	"github.com/DoyleJ11/debate-timer-backend/internal/engine"
)

var ErrDuplicateFormat = errors.New("duplicate format name")

// Catalog is read-only once built.
type Catalog struct {
	names   []string
	formats map[string]engine.Format
}

// New keeps the formats in the order given.
func New(formats ...engine.Format) (*Catalog, error) {
	c := &Catalog{formats: make(map[string]engine.Format, len(formats))}
	for _, f := range formats {
		if _, ok := c.formats[f.Name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateFormat, f.Name)
		}
		c.names = append(c.names, f.Name)
		c.formats[f.Name] = f
	}
	return c, nil
}

func (c *Catalog) Get(name string) (engine.Format, bool) {
	f, ok := c.formats[name]
	return f, ok
}

func (c *Catalog) Names() []string {
	return append([]string(nil), c.names...)
}

func (c *Catalog) Formats() []engine.Format {
	out := make([]engine.Format, 0, len(c.names))
	for _, name := range c.names {
		out = append(out, c.formats[name])
	}
	return out
}

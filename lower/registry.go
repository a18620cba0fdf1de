package lower

import (
	"strings"

	"github.com/ava12/shapegen/grammar"
	"github.com/ava12/shapegen/model"
)

const docAnnotation = "doc"

// register creates an entry for every declared key; the first key is the start symbol.
func (c *lowerContext) register(e error) error {
	if e != nil {
		return e
	}

	for _, d := range c.src.Decls {
		kind := model.ShapeEntry
		if d.Kind.IsList() {
			kind = model.ListEntry
		}

		entry := c.data.Entry(d.Name)
		if entry == nil {
			entry = &model.Entry{Key: d.Name, Kind: kind}
			c.data.Entries.Set(d.Name, entry)
			c.data.Order = append(c.data.Order, d.Name)
		} else if entry.Kind != kind {
			return kindConflictError(d.Name, d.Pos)
		}

		entry.Decls = append(entry.Decls, d)
		if c.data.Start == "" {
			c.data.Start = d.Name
		}
		c.registerAnnotations(entry, d)
	}

	c.log.Debug("registered keys", "count", len(c.data.Order), "start", c.data.Start)
	return nil
}

func (c *lowerContext) registerAnnotations(entry *model.Entry, d *grammar.Decl) {
	for _, a := range d.Annotations {
		if a.Name != docAnnotation {
			c.log.Warn("ignored annotation", "name", a.Name, "key", d.Name, "line", a.Pos.Line())
			continue
		}

		doc := strings.Join(a.Args, "\n")
		if entry.Doc == "" {
			entry.Doc = doc
		} else {
			entry.Doc += "\n" + doc
		}
	}
}

package lower

import (
	"sort"

	"github.com/ava12/shapegen/model"
)

// name fills display name cache and checks that generated identifiers are unique.
func (c *lowerContext) name(e error) error {
	if e != nil {
		return e
	}

	owners := map[string]string{
		model.ParseFunc:   "parse function",
		model.PrintFunc:   "print function",
		model.VisitorType: "visitor interface",
	}
	claim := func(display, what string) error {
		if prev, has := owners[display]; has {
			return nameConflictError(display, prev, what)
		}
		owners[display] = what
		return nil
	}

	for _, name := range c.data.StructNames() {
		c.cacheName(name)
		if c.data.Elided[name] {
			continue
		}

		display := c.data.DisplayName(name)
		e = claim(display, "shape "+name)
		if e == nil {
			e = claim(model.WalkPrefix+display, "walker of shape "+name)
		}
		if e == nil {
			e = c.nameMembers(c.data.Struct(name))
		}
		if e != nil {
			return e
		}
	}

	for _, name := range c.data.EnumNames() {
		en := c.data.Enum(name)
		display := c.cacheName(name)
		e = claim(display, "sum type "+name)
		if e == nil {
			e = claim(model.WalkPrefix+display, "walker of sum type "+name)
		}
		if e == nil {
			e = claim("print"+display, "print function of sum type "+name)
		}
		if e == nil && !en.Simple {
			e = claim(model.DetachPrefix+display, "detach function of "+name)
		}
		if e != nil {
			return e
		}

		for _, item := range en.Items {
			c.cacheName(item)
			e = claim(c.data.VariantName(name, item), "item "+item+" of "+name)
			if e != nil {
				return e
			}
		}
	}

	for _, name := range c.data.ListNames() {
		display := c.cacheName(name)
		e = claim(display, "list "+name)
		if e == nil {
			e = claim(model.WalkPrefix+display, "walker of list "+name)
		}
		if e == nil {
			e = claim("print"+display, "print function of list "+name)
		}
		if e != nil {
			return e
		}
	}

	for _, key := range c.data.EntryKeys() {
		display := c.cacheName(key)
		e = claim("parse"+display, "parse function of "+key)
		if e == nil && c.data.Entry(key).Kind == model.ListEntry {
			e = claim("item"+display, "item parser of "+key)
		}
		if e != nil {
			return e
		}
	}

	// Every shape gets match and print functions, elided ones and simple enum items included.
	shapes := make([]string, 0, len(c.data.Productions))
	for shape := range c.data.Productions {
		shapes = append(shapes, shape)
	}
	sort.Strings(shapes)
	for _, shape := range shapes {
		display := c.cacheName(shape)
		if e = claim("print"+display, "parse/print function of shape "+shape); e != nil {
			return e
		}
	}

	c.log.Debug("named types", "count", len(owners))
	return nil
}

func (c *lowerContext) cacheName(name string) string {
	display := model.DisplayName(name)
	c.data.Names[name] = display
	return display
}

func (c *lowerContext) nameMembers(s *model.Struct) error {
	owners := map[string]string{model.DetachMethod: "detach method"}
	for _, mn := range s.Members {
		display := c.cacheName(mn)
		if prev, has := owners[display]; has {
			return nameConflictError(display, prev, "member "+mn+" of "+s.Name)
		}
		owners[display] = "member " + mn + " of " + s.Name
	}
	return nil
}

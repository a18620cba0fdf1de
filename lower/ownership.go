package lower

import "github.com/ava12/shapegen/model"

// analyzeOwnership finds types that keep slices of parsed source text.
func (c *lowerContext) analyzeOwnership(e error) error {
	if e != nil {
		return e
	}

	cache := make(map[string]bool)
	check := func(name string) {
		if c.owns(name, make(map[string]bool), cache) {
			c.data.Owned[name] = true
		}
	}

	for _, name := range c.data.StructNames() {
		check(name)
	}
	for _, name := range c.data.EnumNames() {
		check(name)
	}
	for _, name := range c.data.ListNames() {
		check(name)
	}

	c.log.Debug("analyzed ownership", "owned", len(c.data.Owned))
	return nil
}

// owns reports whether a value of named type borrows source text.
// A type already on the current path counts as not borrowing; only results
// that do not depend on such cut-offs are cached.
func (c *lowerContext) owns(name string, path, cache map[string]bool) bool {
	if result, has := cache[name]; has {
		return result
	}
	if path[name] {
		return false
	}

	path[name] = true
	defer delete(path, name)

	result := false
	switch c.data.TypeOf(name) {
	case model.StructType:
		s := c.data.Struct(name)
		for _, mn := range s.Members {
			if c.memberOwns(s.MemberMap[mn], path, cache) {
				result = true
				break
			}
		}

	case model.EnumType:
		for _, item := range c.data.Enum(name).Items {
			if c.owns(item, path, cache) {
				result = true
				break
			}
		}

	case model.ListType:
		result = c.owns(c.data.List(name).Item, path, cache)
	}

	if result || len(path) == 1 {
		cache[name] = result
	}
	return result
}

func (c *lowerContext) memberOwns(m *model.Member, path, cache map[string]bool) bool {
	if m.Negated || m.Kind.BorrowsText() {
		return true
	}

	switch m.Kind {
	case model.ShapePart:
		return c.owns(c.data.TypeName(m.Key), path, cache)
	case model.ListPart:
		return c.owns(m.Key, path, cache)
	}
	return false
}

package lower

import (
	"github.com/emirpasic/gods/sets/linkedhashset"

	"github.com/ava12/shapegen/grammar"
	"github.com/ava12/shapegen/internal/logutil"
	"github.com/ava12/shapegen/model"
)

// resolve merges productions into structs, assigns rule types to declared keys,
// collapses simple enums, and builds the parent graph.
func (c *lowerContext) resolve(e error) error {
	if e != nil {
		return e
	}

	e = c.mergeStructs()
	e = c.resolveTypes(e)
	e = c.collapseSimpleEnums(e)
	e = c.buildParents(e)
	return e
}

func (c *lowerContext) mergeStructs() error {
	for _, key := range c.data.Order {
		entry := c.data.Entry(key)
		for _, r := range entry.Rules {
			pr, isParts := r.(*model.PartsRule)
			if !isParts {
				continue
			}

			s := c.data.Struct(pr.Shape)
			if s == nil {
				s = model.NewStruct(pr.Shape)
				c.data.Structs.Set(pr.Shape, s)
			}
			if s.Doc == "" && pr.Shape == key {
				s.Doc = entry.Doc
			}

			s.Count++
			pr.Index = s.Count
			c.data.Productions[pr.Shape] = append(c.data.Productions[pr.Shape], pr)

			e := mergeMembers(s, pr.Parts, false, pr.Pos)
			if e != nil {
				return e
			}
		}
	}

	c.data.Structs.Scan(func(_ string, s *model.Struct) bool {
		for _, m := range s.MemberMap {
			m.Optional = m.OptionalSeen || m.Count < s.Count
		}
		return true
	})

	c.log.Debug("merged structs", "count", c.data.Structs.Len())
	return nil
}

func mergeMembers(s *model.Struct, parts []model.RulePart, optional bool, pos grammar.Pos) error {
	for i := range parts {
		p := &parts[i]
		opt := optional || p.Optional
		if p.Field == "" {
			if p.IsGroup() && !p.Negated {
				e := mergeMembers(s, p.Group, opt, pos)
				if e != nil {
					return e
				}
			}
			continue
		}

		m := &model.Member{Name: p.Field, Negated: p.Negated, Kind: model.StringPart}
		if !p.IsGroup() {
			m.Key = p.Part.Key
			m.Kind = p.Part.Kind
		}

		existing, added := s.AddMember(m)
		if !added && (existing.Key != m.Key || existing.Kind != m.Kind || existing.Negated != m.Negated) {
			return fieldConflictError(s.Name, m.Name, describeMember(m), describeMember(existing), pos)
		}

		existing.Count++
		if opt {
			existing.OptionalSeen = true
		}
	}
	return nil
}

func describeMember(m *model.Member) string {
	result := m.Kind.String()
	if m.Key != "" {
		result += " " + m.Key
	}
	if m.Negated {
		result = "negated " + result
	}
	return result
}

func (c *lowerContext) resolveTypes(e error) error {
	if e != nil {
		return e
	}

	visiting := make(map[string]bool)
	for _, key := range c.data.Order {
		_, e = c.ruleType(key, c.data.Entry(key).Decls[0].Pos, visiting)
		if e != nil {
			return e
		}
	}

	var conflict error
	c.data.Enums.Scan(func(name string, _ *model.Enum) bool {
		if c.data.Struct(name) != nil {
			conflict = nameConflictError(name, "a shape", "a sum type")
		}
		return conflict == nil
	})
	if conflict != nil {
		return conflict
	}

	c.data.Lists.Scan(func(name string, _ *model.List) bool {
		if c.data.Struct(name) != nil {
			conflict = nameConflictError(name, "a shape", "a list")
		} else if c.data.Enum(name) != nil {
			conflict = nameConflictError(name, "a sum type", "a list")
		}
		return conflict == nil
	})
	if conflict != nil {
		return conflict
	}

	c.log.Debug("resolved types", "enums", c.data.Enums.Len(), "lists", c.data.Lists.Len())
	return nil
}

// ruleType returns rule type of declared key resolving its aliases first.
// List keys resolve to the type of their items.
func (c *lowerContext) ruleType(key string, pos grammar.Pos, visiting map[string]bool) (model.RuleType, error) {
	if rt, has := c.data.RuleTypes[key]; has {
		return rt, nil
	}

	entry := c.data.Entry(key)
	if entry == nil {
		return model.RuleType{}, unresolvedError(key, pos)
	}
	if visiting[key] {
		return model.RuleType{}, aliasCycleError(key, pos)
	}

	visiting[key] = true
	defer delete(visiting, key)

	names := linkedhashset.New()
	for _, r := range entry.Rules {
		switch r := r.(type) {
		case *model.PartsRule:
			names.Add(r.Shape)

		case *model.RefRule:
			target := c.data.Entry(r.Target)
			if target == nil {
				return model.RuleType{}, unresolvedError(r.Target, r.Pos)
			}
			if target.Kind == model.ListEntry {
				names.Add(r.Target)
				continue
			}

			rt, e := c.ruleType(r.Target, r.Pos, visiting)
			if e != nil {
				return rt, e
			}
			names.Add(rt.Name)
		}
	}

	items := make([]string, 0, names.Size())
	for _, v := range names.Values() {
		items = append(items, v.(string))
	}
	if len(items) == 0 {
		return model.RuleType{}, unresolvedError(key, pos)
	}

	var result model.RuleType
	if len(items) == 1 {
		result = model.RuleType{Kind: model.SingleType, Name: items[0]}
	} else {
		name := key
		if entry.Kind == model.ListEntry {
			name = key + "Item"
		}
		if c.data.Enum(name) != nil {
			return model.RuleType{}, nameConflictError(name, "a sum type", "a sum type of "+key)
		}

		en := model.NewEnum(name, items)
		if entry.Kind == model.ShapeEntry {
			en.Doc = entry.Doc
		}
		c.data.Enums.Set(name, en)
		result = model.RuleType{Kind: model.ManyType, Name: name}
	}

	if entry.Kind == model.ListEntry {
		c.data.Lists.Set(key, &model.List{Name: key, Item: result.Name, Separator: entry.Separator, Doc: entry.Doc})
	}

	c.data.RuleTypes[key] = result
	logutil.Trace(c.log, "resolved", "key", key, "type", result.Name, "many", result.Kind == model.ManyType)
	return result, nil
}

func (c *lowerContext) collapseSimpleEnums(e error) error {
	if e != nil {
		return e
	}

	c.data.Structs.Scan(func(name string, s *model.Struct) bool {
		if len(s.Members) == 0 {
			c.data.Elided[name] = true
		}
		return true
	})

	var simple []*model.Enum
	c.data.Enums.Scan(func(name string, en *model.Enum) bool {
		for _, item := range en.Items {
			s := c.data.Struct(item)
			if s == nil || len(s.Members) > 0 {
				return true
			}
		}

		en.Simple = true
		c.data.SimpleEnums[name] = true
		simple = append(simple, en)
		return true
	})

	for _, en := range simple {
		for _, item := range en.Items {
			c.data.Structs.Delete(item)
		}
		c.log.Debug("collapsed simple enum", "name", en.Name, "items", len(en.Items))
	}
	return nil
}

// buildParents adds an edge from every embedded struct or enum to its container.
// Lists, elided structs, and simple enums embed nothing by value.
func (c *lowerContext) buildParents(e error) error {
	if e != nil {
		return e
	}

	c.data.Structs.Scan(func(name string, s *model.Struct) bool {
		for _, mn := range s.Members {
			m := s.MemberMap[mn]
			if m.Negated || m.Kind != model.ShapePart {
				continue
			}

			child := c.data.TypeName(m.Key)
			if c.embedsByValue(child) {
				c.data.Parents.Add(child, model.Edge{Container: name, Member: mn})
			}
		}
		return true
	})

	c.data.Enums.Scan(func(name string, en *model.Enum) bool {
		if en.Simple {
			return true
		}

		for _, item := range en.Items {
			if c.embedsByValue(item) {
				c.data.Parents.Add(item, model.Edge{Container: name, Member: item, InEnum: true})
			}
		}
		return true
	})

	c.log.Debug("built parent graph", "children", len(c.data.Parents))
	return nil
}

func (c *lowerContext) embedsByValue(name string) bool {
	switch c.data.TypeOf(name) {
	case model.StructType, model.EnumType:
		return true
	}
	return false
}

package lower

import (
	"strconv"

	"github.com/ava12/shapegen/grammar"
	"github.com/ava12/shapegen/model"
)

// buildRules converts productions of every declaration into RefRule or PartsRule.
func (c *lowerContext) buildRules(e error) error {
	if e != nil {
		return e
	}

	count := 0
	for _, key := range c.data.Order {
		entry := c.data.Entry(key)
		for _, d := range entry.Decls {
			if d.Kind == grammar.ShapeDecl {
				r, e := c.partsRule(d.Name, d.Tokens, d.Pos)
				if e != nil {
					return e
				}
				entry.Rules = append(entry.Rules, r)
				continue
			}

			for _, alt := range d.Alternatives {
				if alt.Ref {
					entry.Rules = append(entry.Rules, &model.RefRule{Target: alt.Name, Pos: alt.Pos})
					continue
				}

				r, e := c.partsRule(alt.Name, alt.Tokens, alt.Pos)
				if e != nil {
					return e
				}
				entry.Rules = append(entry.Rules, r)
			}
		}
		count += len(entry.Rules)
	}

	c.log.Debug("built rules", "count", count)
	return nil
}

func (c *lowerContext) partsRule(shape string, tokens []grammar.Token, pos grammar.Pos) (*model.PartsRule, error) {
	used := make(map[string]bool)
	e := collectBound(shape, tokens, used)
	if e != nil {
		return nil, e
	}

	parts, e := c.buildParts(tokens, used, false)
	if e != nil {
		return nil, e
	}

	return &model.PartsRule{Shape: shape, Parts: parts, Pos: pos}, nil
}

// collectBound registers explicitly bound field names, negated groups bind nothing inside.
func collectBound(shape string, tokens []grammar.Token, used map[string]bool) error {
	for _, t := range tokens {
		if t.Field != "" {
			if used[t.Field] {
				return duplicateFieldError(shape, t.Field, t.Pos)
			}
			used[t.Field] = true
		}

		if t.Kind == grammar.GroupToken && !t.Negated {
			e := collectBound(shape, t.Group, used)
			if e != nil {
				return e
			}
		}
	}
	return nil
}

func (c *lowerContext) buildParts(tokens []grammar.Token, used map[string]bool, inNegated bool) ([]model.RulePart, error) {
	result := make([]model.RulePart, 0, len(tokens))
	for _, t := range tokens {
		rp := model.RulePart{Optional: t.Optional, Negated: t.Negated}

		if t.Kind == grammar.GroupToken {
			group, e := c.buildParts(t.Group, used, inNegated || t.Negated)
			if e != nil {
				return nil, e
			}
			rp.Group = group
			if !inNegated {
				rp.Field = t.Field
			}
			result = append(result, rp)
			continue
		}

		key := partKey(t)
		rp.Part = c.data.Parts[key]
		if rp.Part == nil {
			return nil, missingEntryError("rules", key)
		}

		switch {
		case inNegated:
		case t.Field != "":
			rp.Field = t.Field
		case !t.Negated && rp.Part.Kind.IsAutoMember():
			rp.Field = autoName(rp.Part.Key, used)
		}
		result = append(result, rp)
	}
	return result, nil
}

// autoName returns key, or key with the lowest numeric suffix starting from 2 that is not used yet.
func autoName(key string, used map[string]bool) string {
	name := key
	for i := 2; used[name]; i++ {
		name = key + strconv.Itoa(i)
	}
	used[name] = true
	return name
}

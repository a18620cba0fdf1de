package lower

import (
	"github.com/ava12/shapegen/grammar"
	"github.com/ava12/shapegen/internal/queue"
	"github.com/ava12/shapegen/model"
)

// checkRecursion rejects left recursion: a production that can reach its own key
// without consuming input makes generated parser recurse forever.
//
// Lists and optional or negated parts may match empty input, so keys after them
// are reached at the same position too. Hooks are assumed to consume input.
func (c *lowerContext) checkRecursion(e error) error {
	if e != nil {
		return e
	}

	keys := c.data.EntryKeys()
	nullable := make(map[string]bool)
	for changed := true; changed; {
		changed = false
		for _, key := range keys {
			if !nullable[key] && c.nullable(key, nullable) {
				nullable[key] = true
				changed = true
			}
		}
	}

	for _, key := range keys {
		for _, r := range c.data.Entry(key).Rules {
			if c.reaches(r, key, nullable) {
				return leftRecursionError(key, rulePos(r))
			}
		}
	}
	return nil
}

// nullable reports whether entry key may match empty input.
func (c *lowerContext) nullable(key string, known map[string]bool) bool {
	entry := c.data.Entry(key)
	if entry.Kind == model.ListEntry {
		return true
	}

	for _, r := range entry.Rules {
		switch r := r.(type) {
		case *model.RefRule:
			if known[r.Target] {
				return true
			}
		case *model.PartsRule:
			if leading(r.Parts, known, func(string) {}) {
				return true
			}
		}
	}
	return false
}

// leading calls visit for every key parts may invoke before consuming input,
// returns true if all parts may match empty input.
func leading(parts []model.RulePart, nullable map[string]bool, visit func(key string)) bool {
	for i := range parts {
		p := &parts[i]
		empty := p.Optional || p.Negated
		switch {
		case p.IsGroup():
			empty = leading(p.Group, nullable, visit) || empty
		case p.Part.Kind == model.ShapePart || p.Part.Kind == model.ListPart:
			visit(p.Part.Key)
			empty = empty || nullable[p.Part.Key]
		}
		if !empty {
			return false
		}
	}
	return true
}

// reaches reports whether rule r leads to target without consuming input.
func (c *lowerContext) reaches(r model.Rule, target string, nullable map[string]bool) bool {
	visited := make(map[string]bool)
	stack := queue.New[string]()
	push := func(key string) {
		if !visited[key] {
			visited[key] = true
			stack.Append(key)
		}
	}

	first := func(r model.Rule) {
		switch r := r.(type) {
		case *model.RefRule:
			push(r.Target)
		case *model.PartsRule:
			leading(r.Parts, nullable, push)
		}
	}

	first(r)
	for !stack.IsEmpty() {
		key, _ := stack.Last()
		if key == target {
			return true
		}

		if entry := c.data.Entry(key); entry != nil {
			for _, r := range entry.Rules {
				first(r)
			}
		}
	}
	return false
}

func rulePos(r model.Rule) grammar.Pos {
	switch r := r.(type) {
	case *model.RefRule:
		return r.Pos
	case *model.PartsRule:
		return r.Pos
	}
	return grammar.Pos{}
}

package lower

import (
	"strconv"

	"github.com/ava12/shapegen/grammar"
	"github.com/ava12/shapegen/internal/logutil"
	"github.com/ava12/shapegen/internal/queue"
	"github.com/ava12/shapegen/model"
)

// classify assigns a TypedPart to every key referenced by tokens and list separators.
func (c *lowerContext) classify(e error) error {
	if e != nil {
		return e
	}

	tokens := queue.New[[]grammar.Token]()
	for _, d := range c.src.Decls {
		tokens.Append(d.Tokens)
		for _, alt := range d.Alternatives {
			tokens.Append(alt.Tokens)
		}
	}

	for !tokens.IsEmpty() {
		ts, _ := tokens.First()
		for _, t := range ts {
			if t.Kind == grammar.GroupToken {
				tokens.Append(t.Group)
				continue
			}

			_, e = c.classifyToken(t)
			if e != nil {
				return e
			}
		}
	}

	for _, key := range c.data.Order {
		e = c.classifySeparator(c.data.Entry(key))
		if e != nil {
			return e
		}
	}

	c.log.Debug("classified keys", "count", len(c.data.Parts))
	return nil
}

// partKey returns the key under which token classification is stored.
func partKey(t grammar.Token) string {
	switch t.Kind {
	case grammar.LiteralToken:
		return strconv.Quote(t.Key)
	case grammar.CallToken:
		return "@" + t.Key
	default:
		return t.Key
	}
}

func (c *lowerContext) classifyToken(t grammar.Token) (*model.TypedPart, error) {
	key := partKey(t)
	if p := c.data.Parts[key]; p != nil {
		return p, nil
	}

	var p *model.TypedPart
	switch t.Kind {
	case grammar.LiteralToken:
		p = literalPart(key, t.Key)

	case grammar.CallToken:
		p = &model.TypedPart{Kind: model.CallPart, Key: key, Text: t.Key}

	default:
		p = c.classifyKey(key)
		if p == nil {
			return nil, unknownTokenError(key, t.Pos)
		}
	}

	c.data.Parts[key] = p
	logutil.Trace(c.log, "classified", "key", key, "kind", p.Kind)
	return p, nil
}

func (c *lowerContext) classifyKey(key string) *model.TypedPart {
	if entry := c.data.Entry(key); entry != nil {
		kind := model.ShapePart
		if entry.Kind == model.ListEntry {
			kind = model.ListPart
		}
		return &model.TypedPart{Kind: kind, Key: key}
	}

	return builtin(key)
}

func (c *lowerContext) classifySeparator(entry *model.Entry) error {
	if entry.Kind != model.ListEntry {
		return nil
	}

	first := entry.Decls[0]
	for _, d := range entry.Decls[1:] {
		if d.Separator != first.Separator {
			return separatorError(entry.Key, "differs from previous declaration", d.Pos)
		}
	}
	if first.Separator == "" {
		return nil
	}

	p, e := c.classifyToken(grammar.Token{Kind: grammar.KeyToken, Key: first.Separator, Pos: first.Pos})
	if e != nil {
		return e
	}

	switch p.Kind {
	case model.CharPart, model.TagPart, model.SpacePart:
		entry.Separator = p
		return nil
	default:
		return separatorError(entry.Key, "must be a literal or whitespace token, got "+p.Kind.String(), first.Pos)
	}
}

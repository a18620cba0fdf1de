package langdef

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ava12/shapegen/grammar"
	"github.com/ava12/shapegen/lexer"
	"github.com/ava12/shapegen/source"
)

const (
	stringTok     = "string"
	nameTok       = "name"
	callTok       = "call"
	annotationTok = "annotation"
	listTok       = "list"
	opTok         = "op"
	wrongTok      = ""
)

const (
	stringTokType = iota + 1
	nameTokType
	callTokType
	annotationTokType
	listTokType
	opTokType
)

const (
	equTok       = "="
	colonTok     = ":"
	commaTok     = ","
	semicolonTok = ";"
	pipeTok      = "|"
	lBraceTok    = "("
	rBraceTok    = ")"
	notTok       = "!"
	optionalTok  = "?"
)

var shapeLexer *lexer.Lexer

func init() {
	tokenTypes := []lexer.TokenType{
		{Type: stringTokType, TypeName: stringTok},
		{Type: nameTokType, TypeName: nameTok},
		{Type: callTokType, TypeName: callTok},
		{Type: annotationTokType, TypeName: annotationTok},
		{Type: listTokType, TypeName: listTok},
		{Type: opTokType, TypeName: opTok},
		{Type: lexer.ErrorTokenType, TypeName: wrongTok},
	}

	re := regexp.MustCompile(
		`^(?:\s+|#[^\n]*|` +
			`("(?:[^\\"\n]|\\.)*"|'(?:[^\\'\n]|\\.)*')|` +
			`([a-zA-Z_][a-zA-Z_0-9]*)|` +
			`(@[a-zA-Z_][a-zA-Z_0-9]*)|` +
			`(%[a-zA-Z_][a-zA-Z_0-9]*)|` +
			`(\[\])|` +
			`([()=|,;:!?])|` +
			`(["'@%\[].{0,10}))`)

	shapeLexer = lexer.New(re, tokenTypes)
}

// ParseString parses grammar description and returns declarations on success.
// Returns nil and *shapegen.Error on error.
func ParseString(name, content string) (*grammar.Source, error) {
	return Parse(source.New(name, []byte(content)))
}

// ParseBytes parses grammar description and returns declarations on success.
// Returns nil and *shapegen.Error on error.
func ParseBytes(name string, content []byte) (*grammar.Source, error) {
	return Parse(source.New(name, content))
}

// Parse parses grammar description and returns declarations on success.
// Returns nil and *shapegen.Error on error.
func Parse(s *source.Source) (*grammar.Source, error) {
	c := &parseContext{cursor: source.NewCursor(s), result: &grammar.Source{Name: s.Name()}}
	e := c.parse()
	if e != nil {
		return nil, e
	}

	if len(c.result.Decls) == 0 {
		return nil, noDeclarationsError(s.Name())
	}

	return c.result, nil
}

type parseContext struct {
	cursor     *source.Cursor
	result     *grammar.Source
	savedToken *lexer.Token
}

func (c *parseContext) parse() error {
	for {
		annotations, e := c.parseAnnotations()
		if e != nil {
			return e
		}

		t, e := c.fetch([]string{nameTok}, len(annotations) > 0, nil)
		if e != nil {
			return e
		}
		if t == nil {
			t, e = c.fetch(nil, false, nil)
			if e != nil {
				return e
			}
			if t.IsEof() {
				return nil
			}
			return unexpectedTokenError(t)
		}

		d := &grammar.Decl{Name: t.Text(), Annotations: annotations, Pos: pos(t)}
		e = c.parseDecl(d)
		if e != nil {
			return e
		}

		c.result.Decls = append(c.result.Decls, d)
	}
}

func pos(t *lexer.Token) grammar.Pos {
	return grammar.NewPos(t.SourceName(), t.Line(), t.Col())
}

func (c *parseContext) put(t *lexer.Token) {
	if c.savedToken != nil {
		panic("cannot put " + t.TypeName() + " token: already put " + c.savedToken.TypeName())
	}

	c.savedToken = t
}

// fetch returns next token if it has one of specified types (or texts).
// Non-matching token is either an error (strict) or saved for the next fetch (nil, nil returned).
// EoF token is returned in non-strict mode only when types are empty.
func (c *parseContext) fetch(types []string, strict bool, e error) (*lexer.Token, error) {
	if e != nil {
		return nil, e
	}

	token := c.savedToken
	if token == nil {
		token, e = shapeLexer.Next(c.cursor)
		if e != nil {
			return nil, e
		}
	} else {
		c.savedToken = nil
	}

	if len(types) == 0 && !strict {
		return token, nil
	}

	for _, typ := range types {
		if token.TypeName() == typ || (token.TypeName() == opTok && token.Text() == typ) {
			return token, nil
		}
	}

	if strict {
		if token.IsEof() {
			return nil, eofError(token)
		}
		return nil, unexpectedTokenError(token)
	}

	c.put(token)
	return nil, nil
}

func (c *parseContext) fetchOne(typ string, strict bool, e error) (*lexer.Token, error) {
	return c.fetch([]string{typ}, strict, e)
}

func (c *parseContext) skipOne(typ string, e error) error {
	_, e = c.fetchOne(typ, true, e)
	return e
}

func (c *parseContext) parseAnnotations() ([]grammar.Annotation, error) {
	var result []grammar.Annotation
	for {
		t, e := c.fetchOne(annotationTok, false, nil)
		if t == nil || e != nil {
			return result, e
		}

		a := grammar.Annotation{Name: t.Text()[1:], Pos: pos(t)}
		t, e = c.fetchOne(lBraceTok, false, nil)
		if e != nil {
			return nil, e
		}
		if t != nil {
			a.Args, e = c.parseAnnotationArgs()
			if e != nil {
				return nil, e
			}
		}

		result = append(result, a)
	}
}

func (c *parseContext) parseAnnotationArgs() ([]string, error) {
	var args []string
	t, e := c.fetchOne(rBraceTok, false, nil)
	if t != nil || e != nil {
		return args, e
	}

	for {
		t, e = c.fetch([]string{stringTok, nameTok}, true, nil)
		if e != nil {
			return nil, e
		}

		arg := t.Text()
		if t.TypeName() == stringTok {
			arg, e = unquote(t)
			if e != nil {
				return nil, e
			}
		}
		args = append(args, arg)

		t, e = c.fetch([]string{commaTok, rBraceTok}, true, nil)
		if e != nil {
			return nil, e
		}
		if t.Text() == rBraceTok {
			return args, nil
		}
	}
}

func (c *parseContext) parseDecl(d *grammar.Decl) error {
	t, e := c.fetch([]string{lBraceTok, equTok, colonTok}, true, nil)
	if e != nil {
		return e
	}

	switch t.Text() {
	case lBraceTok:
		d.Kind = grammar.ShapeDecl
		d.Tokens, e = c.parseTokens(rBraceTok)

	case equTok:
		d.Kind = grammar.AltShapeDecl
		d.Alternatives, e = c.parseAlternatives()

	case colonTok:
		e = c.parseListBody(d)
	}

	return c.skipOne(semicolonTok, e)
}

func (c *parseContext) parseListBody(d *grammar.Decl) error {
	t, e := c.fetch([]string{nameTok, lBraceTok}, true, nil)
	if e != nil {
		return e
	}

	if t.TypeName() == nameTok {
		d.Kind = grammar.ListDecl
		d.Alternatives = []grammar.Alternative{{Name: t.Text(), Ref: true, Pos: pos(t)}}
	} else {
		d.Kind = grammar.AltListDecl
		d.Alternatives, e = c.parseAlternatives()
		e = c.skipOne(rBraceTok, e)
	}

	e = c.skipOne(listTok, e)
	t, e = c.fetchOne(nameTok, false, e)
	if t != nil {
		d.Separator = t.Text()
	}
	return e
}

func (c *parseContext) parseAlternatives() ([]grammar.Alternative, error) {
	var result []grammar.Alternative
	for {
		t, e := c.fetchOne(nameTok, true, nil)
		if e != nil {
			return nil, e
		}

		alt := grammar.Alternative{Name: t.Text(), Ref: true, Pos: pos(t)}
		t, e = c.fetchOne(lBraceTok, false, nil)
		if t != nil {
			alt.Ref = false
			alt.Tokens, e = c.parseTokens(rBraceTok)
		}
		if e != nil {
			return nil, e
		}

		result = append(result, alt)
		t, e = c.fetchOne(pipeTok, false, nil)
		if e != nil {
			return nil, e
		}
		if t == nil {
			return result, nil
		}
	}
}

// parseTokens parses token sequence up to and including closing token.
func (c *parseContext) parseTokens(closing string) ([]grammar.Token, error) {
	result := make([]grammar.Token, 0)
	for {
		t, e := c.fetchOne(closing, false, nil)
		if t != nil || e != nil {
			return result, e
		}

		token, e := c.parseToken()
		if e != nil {
			return nil, e
		}

		result = append(result, token)
	}
}

func (c *parseContext) parseToken() (grammar.Token, error) {
	var result grammar.Token
	heads := []string{nameTok, stringTok, callTok, lBraceTok, notTok}
	t, e := c.fetch(heads, true, nil)
	if e != nil {
		return result, e
	}

	result.Pos = pos(t)
	if t.TypeName() == nameTok {
		colon, e := c.fetchOne(colonTok, false, nil)
		if e != nil {
			return result, e
		}
		if colon != nil {
			result.Field = t.Text()
			t, e = c.fetch(heads, true, nil)
			if e != nil {
				return result, e
			}
		}
	}

	if t.Text() == notTok && t.TypeName() == opTok {
		result.Negated = true
		t, e = c.fetch(heads[:len(heads)-1], true, nil)
		if e != nil {
			return result, e
		}
	}

	switch t.TypeName() {
	case nameTok:
		result.Key = t.Text()
		if result.Field == "" {
			result.Kind = grammar.KeyToken
		} else {
			result.Kind = grammar.NamedToken
		}

	case stringTok:
		result.Kind = grammar.LiteralToken
		result.Key, e = unquote(t)
		if e == nil && result.Key == "" {
			e = emptyLiteralError(t)
		}

	case callTok:
		result.Kind = grammar.CallToken
		result.Key = t.Text()[1:]

	default:
		if result.Field != "" && !result.Negated {
			return result, boundGroupError(t, result.Field)
		}

		result.Kind = grammar.GroupToken
		result.Group, e = c.parseTokens(rBraceTok)
	}
	if e != nil {
		return result, e
	}

	t, e = c.fetchOne(optionalTok, false, nil)
	result.Optional = (t != nil)
	return result, e
}

func unquote(t *lexer.Token) (string, error) {
	text := t.Text()
	if text[0] == '"' {
		s, e := strconv.Unquote(text)
		if e != nil {
			return "", invalidEscapeError(t)
		}
		return s, nil
	}

	body := text[1 : len(text)-1]
	var sb strings.Builder
	for i := 0; i < len(body); i++ {
		if body[i] != '\\' {
			sb.WriteByte(body[i])
			continue
		}

		i++
		if i >= len(body) || (body[i] != '\\' && body[i] != '\'') {
			return "", invalidEscapeError(t)
		}
		sb.WriteByte(body[i])
	}
	return sb.String(), nil
}

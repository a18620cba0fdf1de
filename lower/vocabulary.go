package lower

import "github.com/ava12/shapegen/model"

// SpaceKey is the key of whitespace separator token.
const SpaceKey = "WS"

var punctuation = map[string]string{
	"LPAREN":   "(",
	"RPAREN":   ")",
	"LBRACE":   "{",
	"RBRACE":   "}",
	"LBRACKET": "[",
	"RBRACKET": "]",
	"COMMA":    ",",
	"COLON":    ":",
	"SEMI":     ";",
	"EQ":       "=",
	"LT":       "<",
	"GT":       ">",
	"DCOLON":   "::",
	"DSEMI":    ";;",
	"EQEQ":     "==",
	"LE":       "<=",
	"GE":       ">=",
	"ARROW":    "->",
	"FATARROW": "=>",
	"STAR":     "*",
	"EXCLAIM":  "!",
	"DOT":      ".",
	"QUESTION": "?",
	"QUOTE":    `"`,
	"PLUS":     "+",
	"MINUS":    "-",
	"SLASH":    "/",
	"PIPE":     "|",
}

var terminals = map[string]model.PartKind{
	SpaceKey: model.SpacePart,
	"string": model.StringPart,
	"ident":  model.IdentPart,
	"int":    model.IntPart,
}

// builtin returns built-in token for a key or nil.
func builtin(key string) *model.TypedPart {
	if text, has := punctuation[key]; has {
		return literalPart(key, text)
	}
	if kind, has := terminals[key]; has {
		return &model.TypedPart{Kind: kind, Key: key}
	}
	return nil
}

func literalPart(key, text string) *model.TypedPart {
	kind := model.TagPart
	if len([]rune(text)) == 1 {
		kind = model.CharPart
	}
	return &model.TypedPart{Kind: kind, Key: key, Text: text}
}

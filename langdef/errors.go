package langdef

import (
	"github.com/ava12/shapegen"
	"github.com/ava12/shapegen/lexer"
)

const (
	UnexpectedEofError = shapegen.SyntaxErrors + iota
	UnexpectedTokenError
	InvalidEscapeError
	EmptyLiteralError
	BoundGroupError
	NoDeclarationsError
)

func eofError(token *lexer.Token) *shapegen.Error {
	return shapegen.FormatErrorPos(token, UnexpectedEofError, "unexpected EoF")
}

func unexpectedTokenError(token *lexer.Token) *shapegen.Error {
	return shapegen.FormatErrorPos(token, UnexpectedTokenError, "unexpected %s token %q", token.TypeName(), token.Text())
}

func invalidEscapeError(token *lexer.Token) *shapegen.Error {
	return shapegen.FormatErrorPos(token, InvalidEscapeError, "invalid escape sequence in %s", token.Text())
}

func emptyLiteralError(token *lexer.Token) *shapegen.Error {
	return shapegen.FormatErrorPos(token, EmptyLiteralError, "empty literal")
}

func boundGroupError(token *lexer.Token, field string) *shapegen.Error {
	return shapegen.FormatErrorPos(token, BoundGroupError, "cannot bind field %q to a group that is not negated", field)
}

func noDeclarationsError(name string) *shapegen.Error {
	return shapegen.FormatError(NoDeclarationsError, "no declarations in %s", name)
}

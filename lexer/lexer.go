// Package lexer defines lexical analyzer used to read grammar descriptions.
package lexer

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/ava12/shapegen"
	"github.com/ava12/shapegen/source"
)

const (
	// ErrorTokenType is the type for fake tokens capturing broken lexemes (e.g. unterminated strings).
	// Lexer never returns a token of this type, an error containing token text is returned instead.
	ErrorTokenType = -1

	// ErrorTokenName is the type name for ErrorTokenType.
	ErrorTokenName = "-error-"

	// EofTokenType is the type of the token returned at the end of source.
	EofTokenType = -2

	// EofTokenName is the type name for EofTokenType.
	EofTokenName = "-end-of-file-"
)

// Error codes used by lexer:
const (
	// WrongCharError indicates that lexer cannot fetch any token at current position.
	WrongCharError = shapegen.LexicalErrors + iota

	// BadTokenError indicates that lexer has fetched a token of ErrorTokenType.
	BadTokenError
)

// TokenType describes token type for specific capturing group of regular expression.
type TokenType struct {
	Type     int
	TypeName string
}

// Lexer splits source content into tokens using a regexp.Regexp.
// Each token type maps to its own capturing group; a match with no captured group
// is an insignificant lexeme (whitespace, comment) and is skipped.
// Lexer is immutable and safe for concurrent use with different cursors.
type Lexer struct {
	types []TokenType
	re    *regexp.Regexp
}

// New creates new Lexer.
// Each n-th element of types describes token type for (n+1)-th regexp capturing group.
// A group that has no description is treated as ErrorTokenType.
func New(re *regexp.Regexp, types []TokenType) *Lexer {
	ts := make([]TokenType, len(types))
	copy(ts, types)
	return &Lexer{types: ts, re: re}
}

func wrongCharError(pos source.Pos, content []byte) *shapegen.Error {
	r, _ := utf8.DecodeRune(content)
	return shapegen.FormatErrorPos(pos, WrongCharError, fmt.Sprintf("wrong char %q (u+%x)", r, r))
}

func badTokenError(t *Token) *shapegen.Error {
	return shapegen.FormatErrorPos(t, BadTokenError, "bad token %q", t.Text())
}

// Next fetches token starting at current cursor position and advances the cursor.
// Returns EoF token at the end of source.
// Returns nil token and *shapegen.Error and does not move the cursor on lexical error.
func (l *Lexer) Next(c *source.Cursor) (*Token, error) {
	for {
		content, pos := c.ContentPos()
		if pos >= len(content) {
			return &Token{tokenType: EofTokenType, typeName: EofTokenName, pos: c.SourcePos()}, nil
		}

		tail := content[pos:]
		match := l.re.FindSubmatchIndex(tail)
		if len(match) == 0 || match[0] != 0 || match[1] <= match[0] {
			return nil, wrongCharError(c.SourcePos(), tail)
		}

		for i := 2; i < len(match); i += 2 {
			if match[i] < 0 {
				continue
			}

			tt := TokenType{ErrorTokenType, ErrorTokenName}
			if n := i>>1 - 1; n < len(l.types) {
				tt = l.types[n]
			}
			tok := &Token{
				tokenType: tt.Type,
				typeName:  tt.TypeName,
				text:      string(tail[match[i]:match[i+1]]),
				pos:       source.NewPos(c.Source(), pos+match[i]),
			}
			if tok.tokenType == ErrorTokenType {
				return nil, badTokenError(tok)
			}

			c.Skip(match[1])
			return tok, nil
		}

		c.Skip(match[1])
	}
}

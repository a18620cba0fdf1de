/*
Package shapegen derives a typed syntax tree, a recursive-descent parser, a visitor, and a printer
from a declarative grammar description.

Consists of subpackages:
  - cmd/shapegen: console utility reading a grammar description and writing generated Go files;
  - grammar: declarations of a grammar description as consumed by the lowering passes;
  - langdef: parses grammar description language into grammar.Source;
  - lexer: lexical analyzer used by langdef;
  - source: defines source file with line/column lookup;
  - lower: lowers grammar.Source into a resolved model;
  - model: resolved type model shared by the generators;
  - gen: code generators and artifact writer;
  - rt: runtime used by generated parsers and printers;
  - config: project configuration file.

Typical usage is:

1. Describe grammar shapes, alternatives, and lists in a .shape file.

2. Parse it with langdef and lower the result with lower.Lower.

3. Generate artifacts with gen.Generate and write them with gen.Write,
or simply run shapegen utility.
*/
package shapegen

import (
	"errors"
	"fmt"
)

// Error classes used by subpackages, each class contains up to 99 error codes:
const (
	LowerErrors   = 1   // used by lower
	SyntaxErrors  = 101 // used by langdef
	LexicalErrors = 201 // used by lexer
	GenErrors     = 301 // used by gen
	ConfigErrors  = 401 // used by config
	RuntimeErrors = 501 // used by rt and generated parsers
)

// Error is the error type used by shapegen subpackages.
type Error struct {
	// Code contains non-zero error code.
	Code int

	// Message contains non-empty error message including source name and position information if provided.
	Message string

	// SourceName contains source name that caused this error or empty string.
	SourceName string

	// Line contains line number in source file or 0.
	Line int

	// Col contains column number in source file or 0.
	Col int
}

// SourcePos is used to retrieve source name and position information when constructing an error;
// source.Pos, lexer.Token, and grammar.Pos implement this interface.
type SourcePos interface {
	// SourceName returns source file name or empty string.
	SourceName() string
	// Line returns line number or 0.
	Line() int
	// Col returns column number or 0.
	Col() int
}

// NewError creates new Error structure.
// name, line, and col will be added to error message if provided (non-zero).
func NewError(code int, msg, name string, line, col int) *Error {
	if name != "" && line != 0 && col != 0 {
		msg += fmt.Sprintf(" in %s at line %d col %d", name, line, col)
	}
	return &Error{code, msg, name, line, col}
}

// Error simply returns Error.Message.
func (e *Error) Error() string {
	return e.Message
}

// FormatError creates Error structure with no source and position information.
// params will be added to error message using fmt.Sprintf function.
func FormatError(code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, "", 0, 0)
}

// FormatErrorPos creates Error structure with source and position information.
// pos must not be nil.
// params will be added to error message using fmt.Sprintf function.
func FormatErrorPos(pos SourcePos, code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, pos.SourceName(), pos.Line(), pos.Col())
}

// HasCode reports whether e is (or wraps) an *Error with specified code.
func HasCode(e error, code int) bool {
	var se *Error
	return errors.As(e, &se) && se.Code == code
}

package lower

import (
	"github.com/ava12/shapegen"
	"github.com/ava12/shapegen/grammar"
)

const (
	UnknownTokenError = shapegen.LowerErrors + iota
	UnresolvedError
	AliasCycleError
	MissingEntryError
	DuplicateFieldError
	FieldConflictError
	NameConflictError
	KindConflictError
	SeparatorError
	LeftRecursionError
)

func unknownTokenError(key string, pos grammar.Pos) *shapegen.Error {
	return shapegen.FormatErrorPos(pos, UnknownTokenError, "classify: unknown token %q", key)
}

func unresolvedError(key string, pos grammar.Pos) *shapegen.Error {
	return shapegen.FormatErrorPos(pos, UnresolvedError, "resolve: cannot resolve %q to a declared shape or list", key)
}

func aliasCycleError(key string, pos grammar.Pos) *shapegen.Error {
	return shapegen.FormatErrorPos(pos, AliasCycleError, "resolve: %q is an alias of itself", key)
}

func missingEntryError(phase, key string) *shapegen.Error {
	return shapegen.FormatError(MissingEntryError, "%s: internal error: no entry for %q", phase, key)
}

func duplicateFieldError(shape, field string, pos grammar.Pos) *shapegen.Error {
	return shapegen.FormatErrorPos(pos, DuplicateFieldError, "rules: field %q bound more than once in %q", field, shape)
}

func fieldConflictError(shape, field, key, prev string, pos grammar.Pos) *shapegen.Error {
	return shapegen.FormatErrorPos(pos, FieldConflictError,
		"resolve: field %q of %q is %s here, but %s in previous production", field, shape, key, prev)
}

func nameConflictError(name, first, second string) *shapegen.Error {
	return shapegen.FormatError(NameConflictError, "names: %q denotes both %s and %s", name, first, second)
}

func kindConflictError(key string, pos grammar.Pos) *shapegen.Error {
	return shapegen.FormatErrorPos(pos, KindConflictError, "register: %q is declared both as a shape and as a list", key)
}

func separatorError(key, msg string, pos grammar.Pos) *shapegen.Error {
	return shapegen.FormatErrorPos(pos, SeparatorError, "classify: separator of %q %s", key, msg)
}

func leftRecursionError(key string, pos grammar.Pos) *shapegen.Error {
	return shapegen.FormatErrorPos(pos, LeftRecursionError, "recursion: %q reaches itself without consuming input", key)
}

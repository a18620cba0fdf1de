// Package grammar defines declarations of a parsed grammar description.
// These are the input of lowering passes; langdef produces them from text.
package grammar

// DeclKind tells how a top-level declaration produces its value.
type DeclKind int

const (
	// ShapeDecl is a single shape: Name(tokens...);
	ShapeDecl DeclKind = iota
	// AltShapeDecl is a shape with alternatives: Name = A | B(tokens...);
	AltShapeDecl
	// ListDecl is a list of single item reference: Name: Item[] SEP;
	ListDecl
	// AltListDecl is a list of alternatives: Name: (A | B(tokens...))[] SEP;
	AltListDecl
)

var declKindNames = []string{"shape", "alternatives", "list", "alternative list"}

func (k DeclKind) String() string {
	if k < 0 || int(k) >= len(declKindNames) {
		return "unknown"
	}
	return declKindNames[k]
}

// IsList returns true for list-producing declarations.
func (k DeclKind) IsList() bool {
	return k == ListDecl || k == AltListDecl
}

// TokenKind classifies a token of production sequence.
type TokenKind int

const (
	// KeyToken is a plain key reference: Key
	KeyToken TokenKind = iota
	// NamedToken is a key reference bound to a field: field:Key
	NamedToken
	// LiteralToken is a quoted literal: "text" or 'text'
	LiteralToken
	// CallToken is an external function call: @func
	CallToken
	// GroupToken is a parenthesized token group: (tokens...)
	GroupToken
)

// Pos is a position of a declaration element in grammar description.
// Zero value means "unknown position".
type Pos struct {
	name      string
	line, col int
}

// NewPos creates position in named source.
func NewPos(name string, line, col int) Pos {
	return Pos{name, line, col}
}

func (p Pos) SourceName() string {
	return p.name
}

func (p Pos) Line() int {
	return p.line
}

func (p Pos) Col() int {
	return p.col
}

// Token is an element of production sequence.
type Token struct {
	Kind TokenKind

	// Key contains referenced key for KeyToken and NamedToken,
	// literal text for LiteralToken, function name for CallToken.
	Key string

	// Field contains bound field name or empty string.
	// Any token kind may be bound except a GroupToken that is not negated.
	Field string

	Optional bool
	Negated  bool

	// Group contains nested tokens of GroupToken.
	Group []Token

	Pos Pos
}

// Alternative is a single production of AltShapeDecl or AltListDecl.
type Alternative struct {
	// Name is either referenced identifier (Ref is true) or the name of produced shape.
	Name   string
	Ref    bool
	Tokens []Token
	Pos    Pos
}

// Annotation is a %name or %name("arg", ...) prefix of a declaration.
type Annotation struct {
	Name string
	Args []string
	Pos  Pos
}

// Decl is a top-level declaration.
type Decl struct {
	Name        string
	Kind        DeclKind
	Annotations []Annotation

	// Tokens contains production of ShapeDecl.
	Tokens []Token

	// Alternatives contains productions of AltShapeDecl and AltListDecl.
	// ListDecl has single Ref alternative naming the item.
	Alternatives []Alternative

	// Separator contains separator key of list declarations or empty string.
	Separator string

	Pos Pos
}

// Source is a whole parsed grammar description, declarations are in document order.
type Source struct {
	Name  string
	Decls []*Decl
}

// Annotation returns the first annotation with given name.
func (d *Decl) Annotation(name string) (Annotation, bool) {
	for _, a := range d.Annotations {
		if a.Name == name {
			return a, true
		}
	}
	return Annotation{}, false
}

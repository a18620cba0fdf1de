// Package model defines the resolved type model of a grammar.
// LangData is filled by lowering passes and is read-only afterwards.
package model

import (
	"sort"

	"github.com/tidwall/btree"

	"github.com/ava12/shapegen/grammar"
)

// PartKind is a classification of a grammar key.
type PartKind int

const (
	ShapePart  PartKind = iota // reference to a shape-producing declaration
	ListPart                   // reference to a list-producing declaration
	CharPart                   // single character literal
	TagPart                    // multi-character literal
	IntPart                    // integer literal
	IdentPart                  // free-form identifier
	StringPart                 // quoted string
	CallPart                   // external function call
	SpacePart                  // whitespace separator
)

var partKindNames = []string{"shape", "list", "char", "tag", "int", "ident", "string", "call", "space"}

func (k PartKind) String() string {
	if k < 0 || int(k) >= len(partKindNames) {
		return "unknown"
	}
	return partKindNames[k]
}

// IsAutoMember returns true for kinds stored as fields even when no field name is bound.
func (k PartKind) IsAutoMember() bool {
	switch k {
	case ShapePart, ListPart, IntPart, StringPart, IdentPart:
		return true
	}
	return false
}

// BorrowsText returns true for kinds whose values are slices of parsed source text.
func (k PartKind) BorrowsText() bool {
	switch k {
	case IdentPart, StringPart, CallPart, SpacePart:
		return true
	}
	return false
}

// TypedPart is the classification of a key, fixed for the whole lowering run.
type TypedPart struct {
	Kind PartKind
	Key  string

	// Text contains literal text for CharPart and TagPart, function name for CallPart.
	Text string
}

type RuleTypeKind int

const (
	// SingleType means the value is a single shape (or list, or alias of those).
	SingleType RuleTypeKind = iota
	// ManyType means the value is a sum type over several shapes.
	ManyType
)

// RuleType tells what type the value of a declared key has.
type RuleType struct {
	Kind RuleTypeKind
	Name string
}

// Rule is either *RefRule or *PartsRule.
type Rule interface {
	rule()
}

// RefRule is a production that is a bare alias of another declared key.
type RefRule struct {
	Target string
	Pos    grammar.Pos
}

// PartsRule is a production of a shape as a sequence of parts.
type PartsRule struct {
	Shape string

	// Index is 1-based number of this production among all productions of the same shape.
	Index int

	Parts []RulePart
	Pos   grammar.Pos
}

func (*RefRule) rule()   {}
func (*PartsRule) rule() {}

// RulePart is an element of PartsRule. Part is nil for nested groups.
type RulePart struct {
	Part *TypedPart

	// Field contains member name or empty string if the part stores no data.
	Field string

	Optional bool
	Negated  bool
	Group    []RulePart
}

func (p *RulePart) IsGroup() bool {
	return p.Part == nil
}

// Fields returns member names bound in p and its nested groups in order.
// Parts of negated groups only define where capturing stops and bind no members.
func (p *RulePart) Fields() []string {
	if p.Field != "" {
		return []string{p.Field}
	}
	if !p.IsGroup() || p.Negated {
		return nil
	}

	var result []string
	for i := range p.Group {
		result = append(result, p.Group[i].Fields()...)
	}
	return result
}

type EntryKind int

const (
	ShapeEntry EntryKind = iota
	ListEntry
)

// Entry collects all declarations of a key.
type Entry struct {
	Key   string
	Kind  EntryKind
	Decls []*grammar.Decl

	// Rules contains productions of all declarations in document order.
	Rules []Rule

	// Separator is the separator part of list entries or nil.
	Separator *TypedPart

	Doc string
}

// Member is a field of a shape.
type Member struct {
	// Name is bound or inferred member name, unique within a struct.
	Name string

	// Key is the key of member part.
	Key  string
	Kind PartKind

	Optional bool
	Negated  bool
	Boxed    bool

	// Count is the number of productions containing the member.
	Count int

	// OptionalSeen is set if the member is optional in some production.
	OptionalSeen bool
}

// Struct is a shape, a product type merged from all its productions.
type Struct struct {
	Name      string
	Members   []string
	MemberMap map[string]*Member

	// Count is the number of productions of the shape.
	Count int

	Doc string
}

func NewStruct(name string) *Struct {
	return &Struct{Name: name, MemberMap: make(map[string]*Member)}
}

// Member returns member by name or nil.
func (s *Struct) Member(name string) *Member {
	return s.MemberMap[name]
}

// AddMember registers new member and returns it; existing member is returned as is.
func (s *Struct) AddMember(m *Member) (*Member, bool) {
	if existing := s.MemberMap[m.Name]; existing != nil {
		return existing, false
	}

	s.Members = append(s.Members, m.Name)
	s.MemberMap[m.Name] = m
	return m, true
}

// Enum is a sum type over shapes, enums, or lists contributing to a key.
type Enum struct {
	Name  string
	Items []string

	// Boxed contains items requiring heap indirection.
	Boxed map[string]bool

	// Simple is set if every item is a shape with no members.
	Simple bool

	Doc string
}

func NewEnum(name string, items []string) *Enum {
	return &Enum{Name: name, Items: items, Boxed: make(map[string]bool)}
}

// List is a repetition of items of a single type.
type List struct {
	Name string

	// Item is the type name of list items.
	Item      string
	Separator *TypedPart
	Doc       string
}

// Edge tells that a type is contained in Container as member (or item) Member.
type Edge struct {
	Container string
	Member    string
	InEnum    bool
}

// ParentRefs maps type name to edges of its containers.
type ParentRefs map[string]map[Edge]struct{}

func (p ParentRefs) Add(child string, edge Edge) {
	edges := p[child]
	if edges == nil {
		edges = make(map[Edge]struct{})
		p[child] = edges
	}
	edges[edge] = struct{}{}
}

// Edges returns container edges of child in stable order.
func (p ParentRefs) Edges(child string) []Edge {
	result := make([]Edge, 0, len(p[child]))
	for e := range p[child] {
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if a.Container != b.Container {
			return a.Container < b.Container
		}
		if a.Member != b.Member {
			return a.Member < b.Member
		}
		return !a.InEnum && b.InEnum
	})
	return result
}

// TypeKind tells how a type name is represented.
type TypeKind int

const (
	NoType TypeKind = iota
	StructType
	ElidedType
	EnumType
	SimpleEnumType
	ListType
)

// LangData is the resolved model of a grammar.
type LangData struct {
	// Parts contains classification of every referenced key.
	Parts map[string]*TypedPart

	// Entries contains declared keys, Order keeps them in document order.
	Entries btree.Map[string, *Entry]
	Order   []string

	Structs btree.Map[string, *Struct]
	Enums   btree.Map[string, *Enum]
	Lists   btree.Map[string, *List]

	// Productions contains parts rules of every shape, including shapes
	// dropped from Structs as items of simple enums.
	Productions map[string][]*PartsRule

	RuleTypes map[string]RuleType
	Parents   ParentRefs

	// Names caches display (Go) names of all type and member names.
	Names map[string]string

	// Start is the first declared key.
	Start string

	SimpleEnums map[string]bool

	// Elided contains shapes having no members, represented as presence flags.
	Elided map[string]bool

	// Owned contains types that borrow text from the parsed source.
	Owned map[string]bool
}

func New() *LangData {
	return &LangData{
		Parts:       make(map[string]*TypedPart),
		Productions: make(map[string][]*PartsRule),
		RuleTypes:   make(map[string]RuleType),
		Parents:     make(ParentRefs),
		Names:       make(map[string]string),
		SimpleEnums: make(map[string]bool),
		Elided:      make(map[string]bool),
		Owned:       make(map[string]bool),
	}
}

func (d *LangData) Entry(key string) *Entry {
	e, _ := d.Entries.Get(key)
	return e
}

func (d *LangData) Struct(name string) *Struct {
	s, _ := d.Structs.Get(name)
	return s
}

func (d *LangData) Enum(name string) *Enum {
	e, _ := d.Enums.Get(name)
	return e
}

func (d *LangData) List(name string) *List {
	l, _ := d.Lists.Get(name)
	return l
}

// TypeOf returns representation kind of type name.
// Shapes removed as items of simple enums are reported as ElidedType.
func (d *LangData) TypeOf(name string) TypeKind {
	if d.Elided[name] {
		return ElidedType
	}
	if s := d.Struct(name); s != nil {
		if len(s.Members) == 0 {
			return ElidedType
		}
		return StructType
	}
	if d.SimpleEnums[name] {
		return SimpleEnumType
	}
	if d.Enum(name) != nil {
		return EnumType
	}
	if d.List(name) != nil {
		return ListType
	}
	if _, has := d.Productions[name]; has {
		return ElidedType
	}
	return NoType
}

// TypeName returns type name of a declared key value: a struct or an enum name for
// shape keys, item type name for list keys.
func (d *LangData) TypeName(key string) string {
	return d.RuleTypes[key].Name
}

// PartType returns type name of a shape or list part, empty for other kinds.
func (d *LangData) PartType(p *TypedPart) string {
	switch p.Kind {
	case ShapePart:
		return d.TypeName(p.Key)
	case ListPart:
		return p.Key
	}
	return ""
}

// DisplayName returns Go name for a type or member name.
func (d *LangData) DisplayName(name string) string {
	if n, has := d.Names[name]; has {
		return n
	}
	return DisplayName(name)
}

// StructNames returns names of all structs in lexicographic order.
func (d *LangData) StructNames() []string {
	return keys(&d.Structs)
}

// EnumNames returns names of all enums in lexicographic order.
func (d *LangData) EnumNames() []string {
	return keys(&d.Enums)
}

// ListNames returns names of all lists in lexicographic order.
func (d *LangData) ListNames() []string {
	return keys(&d.Lists)
}

// EntryKeys returns declared keys in lexicographic order.
func (d *LangData) EntryKeys() []string {
	return keys(&d.Entries)
}

func keys[V any](m *btree.Map[string, V]) []string {
	result := make([]string, 0, m.Len())
	m.Scan(func(key string, _ V) bool {
		result = append(result, key)
		return true
	})
	return result
}

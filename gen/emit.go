package gen

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/ava12/shapegen/model"
)

const rtPackage = "github.com/ava12/shapegen/rt"

// repr tells how a value is stored in generated Go code.
type repr int

const (
	valueRepr   repr = iota // plain value, always present
	pointerRepr             // pointer, nil if absent
	ifaceRepr               // interface of an enum, nil if absent
	flagRepr                // bool, false if absent
	sliceRepr               // slice of a list
)

// emitter accumulates a single generated file.
type emitter struct {
	d       *model.LangData
	opts    *Options
	body    bytes.Buffer
	imports map[string]bool
}

func newEmitter(d *model.LangData, opts *Options) *emitter {
	return &emitter{d: d, opts: opts, imports: make(map[string]bool)}
}

// line writes a line of code, params are applied with fmt.Sprintf if present.
func (w *emitter) line(code string, params ...any) {
	if len(params) > 0 {
		code = fmt.Sprintf(code, params...)
	}
	w.body.WriteString(code)
	w.body.WriteByte('\n')
}

func (w *emitter) use(pkg string) {
	w.imports[pkg] = true
}

func (w *emitter) doc(text, fallback string) {
	if text == "" {
		text = fallback
	}
	if text == "" {
		return
	}

	for _, l := range strings.Split(text, "\n") {
		w.line("// " + l)
	}
}

// source returns complete file content: header, imports, and body.
func (w *emitter) source() []byte {
	var buffer bytes.Buffer
	buffer.WriteString(fmt.Sprintf("// Code generated by shapegen from %s. DO NOT EDIT.\n\n", w.opts.Source))
	buffer.WriteString("package " + w.opts.Package + "\n\n")

	if len(w.imports) > 0 {
		pkgs := make([]string, 0, len(w.imports))
		for pkg := range w.imports {
			pkgs = append(pkgs, pkg)
		}
		sort.Strings(pkgs)

		buffer.WriteString("import (\n")
		for _, pkg := range pkgs {
			buffer.WriteString(fmt.Sprintf("\t%q\n", pkg))
		}
		buffer.WriteString(")\n\n")
	}

	buffer.Write(w.body.Bytes())
	return buffer.Bytes()
}

func (w *emitter) name(n string) string {
	return w.d.DisplayName(n)
}

// valueType returns Go type of a value of named type stored by value.
func (w *emitter) valueType(name string) (string, repr) {
	switch w.d.TypeOf(name) {
	case model.ElidedType:
		return "bool", flagRepr
	case model.EnumType:
		return w.name(name), ifaceRepr
	case model.ListType:
		return w.name(name), sliceRepr
	default:
		return w.name(name), valueRepr
	}
}

// entryType returns Go type of the value of declared key.
func (w *emitter) entryType(key string) string {
	if entry := w.d.Entry(key); entry != nil && entry.Kind == model.ListEntry {
		return w.name(key)
	}
	t, _ := w.valueType(w.d.TypeName(key))
	return t
}

// memberTypeName returns type name of shape or list member, empty for other kinds.
func (w *emitter) memberTypeName(m *model.Member) string {
	if m.Negated {
		return ""
	}

	switch m.Kind {
	case model.ShapePart:
		return w.d.TypeName(m.Key)
	case model.ListPart:
		return m.Key
	}
	return ""
}

func optional(t string, opt bool) (string, repr) {
	if opt {
		return "*" + t, pointerRepr
	}
	return t, valueRepr
}

// memberType returns Go type of struct member.
func (w *emitter) memberType(m *model.Member) (string, repr) {
	if m.Negated {
		return optional("string", m.Optional)
	}

	switch m.Kind {
	case model.IntPart:
		return optional("int64", m.Optional)
	case model.CharPart, model.TagPart:
		return "bool", flagRepr
	case model.ShapePart, model.ListPart:
		name := w.memberTypeName(m)
		t, r := w.valueType(name)
		if r == valueRepr && (m.Optional || (m.Boxed && w.d.TypeOf(name) == model.StructType)) {
			return "*" + t, pointerRepr
		}
		return t, r
	default:
		return optional("string", m.Optional)
	}
}

// itemType returns Go type of enum variant payload, ok is false for variants without payload.
func (w *emitter) itemType(en *model.Enum, item string) (t string, r repr, ok bool) {
	t, r = w.valueType(item)
	if r == flagRepr {
		return "", r, false
	}
	if r == valueRepr && en.Boxed[item] && w.d.TypeOf(item) == model.StructType {
		return "*" + t, pointerRepr, true
	}
	return t, r, true
}

// variant returns Go type name of enum variant.
func (w *emitter) variant(enum, item string) string {
	return w.d.VariantName(enum, item)
}

// ruleItem returns the name of enum item or single type produced by a rule.
func (w *emitter) ruleItem(r model.Rule) string {
	switch r := r.(type) {
	case *model.PartsRule:
		return r.Shape
	case *model.RefRule:
		if entry := w.d.Entry(r.Target); entry != nil && entry.Kind == model.ListEntry {
			return r.Target
		}
		return w.d.TypeName(r.Target)
	}
	return ""
}

func presence(expr string, r repr) string {
	switch r {
	case pointerRepr, ifaceRepr:
		return expr + " != nil"
	case flagRepr:
		return expr
	case sliceRepr:
		return "len(" + expr + ") > 0"
	}
	return ""
}

func absence(expr string, r repr) string {
	switch r {
	case pointerRepr, ifaceRepr:
		return expr + " == nil"
	case flagRepr:
		return "!" + expr
	case sliceRepr:
		return "len(" + expr + ") == 0"
	}
	return ""
}

func isText(m *model.Member) bool {
	return m.Negated || m.Kind.BorrowsText()
}

// shapeNames returns names of all shapes having productions in lexicographic order.
func shapeNames(d *model.LangData) []string {
	result := make([]string, 0, len(d.Productions))
	for name := range d.Productions {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

// boundFields returns member names bound by parts and whether each is optional in this production.
func boundFields(parts []model.RulePart, optional bool, result map[string]bool) map[string]bool {
	if result == nil {
		result = make(map[string]bool)
	}
	for i := range parts {
		p := &parts[i]
		opt := optional || p.Optional
		if p.Field != "" {
			result[p.Field] = opt
			continue
		}
		if p.IsGroup() && !p.Negated {
			boundFields(p.Group, opt, result)
		}
	}
	return result
}

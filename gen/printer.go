package gen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ava12/shapegen/model"
)

// printerGen emits pretty printer: a method of printer type per named type.
// A struct with several productions is printed using the first production
// consistent with present members.
type printerGen struct {
	*emitter
}

func generatePrinter(d *model.LangData, opts *Options) []byte {
	g := printerGen{newEmitter(d, opts)}
	g.use(rtPackage)

	g.line("type printer struct {")
	g.line("rt.Printer")
	g.line("}")
	g.line("")

	start := d.Start
	g.line("// %s returns source text of a tree returned by %s.", model.PrintFunc, model.ParseFunc)
	g.line("// Parts that store no data, such as unbound optional literals and hooks, are not printed,")
	g.line("// so the text may differ from the parsed one or fail to parse.")
	g.line("func %s(v %s) string {", model.PrintFunc, g.entryType(start))
	g.line("var p printer")
	name := start
	if entry := d.Entry(start); entry == nil || entry.Kind != model.ListEntry {
		name = d.TypeName(start)
	}
	_, r := g.valueType(name)
	g.value(name, "v", r)
	g.line("return p.String()")
	g.line("}")
	g.line("")

	for _, shape := range shapeNames(d) {
		switch d.TypeOf(shape) {
		case model.StructType:
			g.structPrinter(d.Struct(shape))
		case model.ElidedType:
			g.elidedPrinter(shape)
		}
	}
	for _, name := range d.EnumNames() {
		g.enumPrinter(d.Enum(name))
	}
	for _, name := range d.ListNames() {
		g.listPrinter(d.List(name))
	}

	return g.source()
}

func (g printerGen) printer(name string) string {
	return "print" + g.name(name)
}

// value emits printing of a value of named type.
func (g printerGen) value(name, expr string, r repr) {
	switch g.d.TypeOf(name) {
	case model.StructType:
		if r == pointerRepr {
			g.line("if %s != nil {", expr)
			g.line("p.%s(%s)", g.printer(name), expr)
			g.line("}")
		} else {
			g.line("p.%s(&%s)", g.printer(name), expr)
		}
	case model.ElidedType:
		g.line("if %s {", expr)
		g.line("p.%s()", g.printer(name))
		g.line("}")
	case model.SimpleEnumType:
		if r == pointerRepr {
			g.line("if %s != nil {", expr)
			g.line("p.%s(*%s)", g.printer(name), expr)
			g.line("}")
		} else {
			g.line("p.%s(%s)", g.printer(name), expr)
		}
	case model.EnumType, model.ListType:
		g.line("p.%s(%s)", g.printer(name), expr)
	}
}

// condition returns expression true if members of s match production r, empty if any values match.
func (g printerGen) condition(s *model.Struct, r *model.PartsRule) string {
	bound := boundFields(r.Parts, false, nil)
	var conds []string
	for _, mn := range s.Members {
		_, mr := g.memberType(s.Member(mn))
		expr := "v." + g.name(mn)
		opt, has := bound[mn]
		var c string
		switch {
		case !has:
			c = absence(expr, mr)
		case !opt && mr != sliceRepr:
			c = presence(expr, mr)
		}
		if c != "" {
			conds = append(conds, c)
		}
	}
	return strings.Join(conds, " && ")
}

func (g printerGen) structPrinter(s *model.Struct) {
	g.line("func (p *printer) %s(v *%s) {", g.printer(s.Name), g.name(s.Name))
	rules := g.d.Productions[s.Name]
	if len(rules) == 1 {
		g.parts(rules[0].Parts, s)
	} else {
		g.line("switch {")
		for _, r := range rules {
			cond := g.condition(s, r)
			if cond == "" {
				g.line("default:")
				g.parts(r.Parts, s)
				break
			}

			g.line("case %s:", cond)
			g.parts(r.Parts, s)
		}
		g.line("}")
	}
	g.line("}")
	g.line("")
}

func (g printerGen) elidedPrinter(shape string) {
	g.line("func (p *printer) %s() {", g.printer(shape))
	g.parts(g.d.Productions[shape][0].Parts, nil)
	g.line("}")
	g.line("")
}

func (g printerGen) parts(parts []model.RulePart, s *model.Struct) {
	for i := range parts {
		p := &parts[i]
		switch {
		case p.Field != "" && s != nil:
			g.field(p, s.Member(p.Field))
		case p.Negated:
		case p.IsGroup() && p.Optional:
			g.optionalGroup(p.Group, s)
		case p.IsGroup():
			g.parts(p.Group, s)
		case p.Optional:
		case p.Part.Kind == model.CharPart || p.Part.Kind == model.TagPart:
			g.line("p.Token(%q)", p.Part.Text)
		case p.Part.Kind == model.SpacePart:
			g.line(`p.Space("")`)
		}
	}
}

func (g printerGen) optionalGroup(parts []model.RulePart, s *model.Struct) {
	if s == nil {
		return
	}

	bound := boundFields(parts, true, nil)
	names := make([]string, 0, len(bound))
	for mn := range bound {
		names = append(names, mn)
	}
	sort.Strings(names)

	var conds []string
	for _, mn := range names {
		_, r := g.memberType(s.Member(mn))
		if c := presence("v."+g.name(mn), r); c != "" {
			conds = append(conds, c)
		}
	}
	if len(conds) == 0 {
		return
	}

	g.line("if %s {", strings.Join(conds, " || "))
	g.parts(parts, s)
	g.line("}")
}

func (g printerGen) field(p *model.RulePart, m *model.Member) {
	expr := "v." + g.name(m.Name)
	t, r := g.memberType(m)
	value := expr
	if r == pointerRepr {
		value = "*" + expr
	}

	var call string
	switch {
	case m.Negated:
		call = fmt.Sprintf("p.Text(%s)", value)
	case r == flagRepr && (m.Kind == model.CharPart || m.Kind == model.TagPart):
		g.line("if %s {", expr)
		g.line("p.Token(%q)", p.Part.Text)
		g.line("}")
		return
	case m.Kind == model.ShapePart || m.Kind == model.ListPart:
		g.value(g.memberTypeName(m), expr, r)
		return
	case m.Kind == model.IntPart:
		call = fmt.Sprintf("p.Int(%s)", value)
	case m.Kind == model.SpacePart:
		call = fmt.Sprintf("p.Space(%s)", value)
	case strings.HasSuffix(t, "string"):
		call = fmt.Sprintf("p.Text(%s)", value)
	default:
		return
	}

	if r == pointerRepr {
		g.line("if %s != nil {", expr)
		g.line(call)
		g.line("}")
	} else {
		g.line(call)
	}
}

func (g printerGen) enumPrinter(en *model.Enum) {
	display := g.name(en.Name)
	g.line("func (p *printer) %s(v %s) {", g.printer(en.Name), display)

	if en.Simple {
		g.line("switch v {")
		for _, item := range en.Items {
			g.line("case %s:", g.variant(en.Name, item))
			g.line("p.%s()", g.printer(item))
		}
		g.line("}")
		g.line("}")
		g.line("")
		return
	}

	usesValue := false
	for _, item := range en.Items {
		if _, _, ok := g.itemType(en, item); ok {
			usesValue = true
		}
	}
	if usesValue {
		g.line("switch v := v.(type) {")
	} else {
		g.line("switch v.(type) {")
	}

	for _, item := range en.Items {
		g.line("case *%s:", g.variant(en.Name, item))
		if _, r, ok := g.itemType(en, item); ok {
			g.value(item, "v."+g.name(item), r)
		} else {
			g.line("p.%s()", g.printer(item))
		}
	}
	g.line("}")
	g.line("}")
	g.line("")
}

func (g printerGen) listPrinter(l *model.List) {
	g.line("func (p *printer) %s(v %s) {", g.printer(l.Name), g.name(l.Name))
	if l.Separator == nil {
		g.line("for _, item := range v {")
	} else {
		g.line("for i, item := range v {")
		g.line("if i > 0 {")
		if l.Separator.Kind == model.SpacePart {
			g.line(`p.Space("")`)
		} else {
			g.line("p.Token(%q)", l.Separator.Text)
		}
		g.line("}")
	}

	_, r := g.valueType(l.Item)
	g.value(l.Item, "item", r)
	g.line("}")
	g.line("}")
	g.line("")
}

package gen

import (
	"fmt"

	"github.com/ava12/shapegen/model"
)

// parserGen emits recursive-descent parser: parse functions per declared key,
// item functions per list of alternatives, and match functions per production.
type parserGen struct {
	*emitter
}

// partsCtx tells how parts code reports failure and whether it stores values.
type partsCtx struct {
	fail string
	s    *model.Struct
}

func (c partsCtx) binds() bool {
	return c.s != nil
}

func generateParser(d *model.LangData, opts *Options) []byte {
	g := parserGen{newEmitter(d, opts)}
	g.use(rtPackage)
	g.entry()

	for _, key := range d.EntryKeys() {
		entry := d.Entry(key)
		if entry.Kind == model.ListEntry {
			g.list(entry)
		} else {
			g.alternation("parse"+g.name(key), d.RuleTypes[key], entry.Rules)
		}
	}

	for _, shape := range shapeNames(d) {
		for _, r := range d.Productions[shape] {
			g.matcher(r)
		}
	}

	return g.source()
}

func matchName(d *model.LangData, r *model.PartsRule) string {
	return fmt.Sprintf("match%s_%d", d.DisplayName(r.Shape), r.Index)
}

func (g parserGen) entry() {
	start := g.d.Start
	t := g.entryType(start)
	g.line("// %s parses src as %s. name is used in error messages.", model.ParseFunc, start)
	g.line("func %s(name, src string) (%s, error) {", model.ParseFunc, t)
	g.line("s := rt.NewScanner(name, src)")
	g.line("result, ok := parse%s(s)", g.name(start))
	g.line("if ok && s.End() {")
	g.line("return result, nil")
	g.line("}")
	g.line("")
	g.line("var zero %s", t)
	g.line("return zero, s.Err()")
	g.line("}")
	g.line("")
}

// ruleCall returns expression calling parse function of a rule.
func (g parserGen) ruleCall(r model.Rule) string {
	switch r := r.(type) {
	case *model.PartsRule:
		return matchName(g.d, r) + "(s)"
	case *model.RefRule:
		return "parse" + g.name(r.Target) + "(s)"
	}
	return ""
}

// alternation emits function trying rules in order, the first match wins.
func (g parserGen) alternation(funcName string, rtype model.RuleType, rules []model.Rule) {
	if rtype.Kind == model.SingleType {
		t, _ := g.valueType(rtype.Name)
		g.line("func %s(s *rt.Scanner) (result %s, ok bool) {", funcName, t)
		for _, r := range rules {
			g.line("if v, ok := %s; ok {", g.ruleCall(r))
			g.line("return v, true")
			g.line("}")
		}
		g.line("return result, false")
		g.line("}")
		g.line("")
		return
	}

	en := g.d.Enum(rtype.Name)
	g.line("func %s(s *rt.Scanner) (result %s, ok bool) {", funcName, g.name(rtype.Name))
	for _, r := range rules {
		item := g.ruleItem(r)
		variant := g.variant(en.Name, item)
		_, ir, hasPayload := g.itemType(en, item)

		switch {
		case en.Simple:
			g.line("if _, ok := %s; ok {", g.ruleCall(r))
			g.line("return %s, true", variant)
		case !hasPayload:
			g.line("if _, ok := %s; ok {", g.ruleCall(r))
			g.line("return &%s{}, true", variant)
		case ir == pointerRepr:
			g.line("if v, ok := %s; ok {", g.ruleCall(r))
			g.line("return &%s{%s: &v}, true", variant, g.name(item))
		default:
			g.line("if v, ok := %s; ok {", g.ruleCall(r))
			g.line("return &%s{%s: v}, true", variant, g.name(item))
		}
		g.line("}")
	}
	g.line("return result, false")
	g.line("}")
	g.line("")
}

func (g parserGen) list(entry *model.Entry) {
	l := g.d.List(entry.Key)
	display := g.name(entry.Key)

	item := "item" + display
	if ref, isRef := entry.Rules[0].(*model.RefRule); isRef && len(entry.Rules) == 1 {
		item = "parse" + g.name(ref.Target)
	} else {
		g.alternation(item, g.d.RuleTypes[entry.Key], entry.Rules)
	}

	g.line("func parse%s(s *rt.Scanner) (result %s, ok bool) {", display, display)
	g.line("for {")
	g.line("m := s.Mark()")
	if l.Separator != nil {
		g.line("if len(result) > 0 && !%s {", g.probe(l.Separator))
		g.line("break")
		g.line("}")
	}
	g.line("v, ok := %s(s)", item)
	g.line("if !ok || s.Mark() == m {")
	g.line("s.Reset(m)")
	g.line("break")
	g.line("}")
	g.line("result = append(result, v)")
	g.line("}")
	g.line("return result, true")
	g.line("}")
	g.line("")
}

// probe returns boolean expression matching part without storing its value.
func (g parserGen) probe(p *model.TypedPart) string {
	switch p.Kind {
	case model.CharPart, model.TagPart:
		return fmt.Sprintf("s.Lit(%q)", p.Text)
	default:
		return "rt.Ok(" + g.valueExpr(p) + ")"
	}
}

// valueExpr returns expression matching part and returning its value and success flag.
func (g parserGen) valueExpr(p *model.TypedPart) string {
	switch p.Kind {
	case model.IntPart:
		return "s.Int()"
	case model.IdentPart:
		return "s.Ident()"
	case model.StringPart:
		return "s.Quoted()"
	case model.SpacePart:
		return "s.Space()"
	case model.CallPart:
		return fmt.Sprintf("s.Call(%q, %s)", p.Text, p.Text)
	case model.ShapePart, model.ListPart:
		return "parse" + g.name(p.Key) + "(s)"
	}
	return fmt.Sprintf("s.Lit(%q)", p.Text)
}

func (g parserGen) matcher(r *model.PartsRule) {
	s := g.d.Struct(r.Shape)
	elided := g.d.TypeOf(r.Shape) != model.StructType

	if elided {
		g.line("func %s(s *rt.Scanner) (result bool, ok bool) {", matchName(g.d, r))
	} else {
		g.line("func %s(s *rt.Scanner) (result %s, ok bool) {", matchName(g.d, r), g.name(r.Shape))
	}
	g.line("start := s.Mark()")
	g.line("defer func() {")
	g.line("if !ok {")
	g.line("s.Reset(start)")
	g.line("}")
	g.line("}()")
	g.line("")

	if elided {
		g.parts(r.Parts, partsCtx{fail: "return false, false"})
		g.line("return true, true")
	} else {
		g.parts(r.Parts, partsCtx{fail: "return result, false", s: s})
		g.line("return result, true")
	}
	g.line("}")
	g.line("")
}

func (g parserGen) parts(parts []model.RulePart, ctx partsCtx) {
	for i := range parts {
		p := &parts[i]
		switch {
		case p.Negated:
			g.until(p, ctx)
		case p.IsGroup() && p.Optional:
			g.optionalGroup(p.Group, ctx)
		case p.IsGroup():
			g.parts(p.Group, ctx)
		default:
			g.token(p, ctx)
		}
	}
}

func (g parserGen) field(ctx partsCtx, p *model.RulePart) (string, *model.Member) {
	if !ctx.binds() || p.Field == "" {
		return "", nil
	}
	return "result." + g.name(p.Field), ctx.s.Member(p.Field)
}

// until emits capture of text up to the point where the negated part matches.
func (g parserGen) until(p *model.RulePart, ctx partsCtx) {
	stop := []model.RulePart{*p}
	stop[0].Negated = false
	stop[0].Optional = false
	stop[0].Field = ""
	if p.IsGroup() {
		stop = p.Group
	}

	target, m := g.field(ctx, p)
	r := valueRepr
	if m != nil {
		_, r = g.memberType(m)
	}

	switch {
	case m == nil:
		g.line("s.Until(func(s *rt.Scanner) bool {")
	case r == pointerRepr:
		g.line("if v := s.Until(func(s *rt.Scanner) bool {")
	default:
		g.line("%s = s.Until(func(s *rt.Scanner) bool {", target)
	}

	g.parts(stop, partsCtx{fail: "return false"})
	g.line("return true")

	if m != nil && r == pointerRepr {
		g.line(`}); v != "" {`)
		g.line("%s = &v", target)
		g.line("}")
	} else {
		g.line("})")
	}
}

func (g parserGen) optionalGroup(parts []model.RulePart, ctx partsCtx) {
	g.line("{")
	g.line("m := s.Mark()")
	if ctx.binds() {
		g.line("saved := result")
	}
	g.line("if !func() bool {")
	g.parts(parts, partsCtx{fail: "return false", s: ctx.s})
	g.line("return true")
	g.line("}() {")
	g.line("s.Reset(m)")
	if ctx.binds() {
		g.line("result = saved")
	}
	g.line("}")
	g.line("}")
}

func (g parserGen) token(p *model.RulePart, ctx partsCtx) {
	target, m := g.field(ctx, p)
	kind := p.Part.Kind

	if kind == model.CharPart || kind == model.TagPart {
		lit := g.probe(p.Part)
		switch {
		case m != nil && p.Optional:
			g.line("%s = %s", target, lit)
		case m != nil:
			g.line("if !%s {", lit)
			g.line(ctx.fail)
			g.line("}")
			g.line("%s = true", target)
		case p.Optional:
			g.line(lit)
		default:
			g.line("if !%s {", lit)
			g.line(ctx.fail)
			g.line("}")
		}
		return
	}

	expr := g.valueExpr(p.Part)
	if m == nil {
		if p.Optional {
			g.line(expr)
		} else {
			g.line("if !rt.Ok(%s) {", expr)
			g.line(ctx.fail)
			g.line("}")
		}
		return
	}

	assign := target + " = v"
	if _, r := g.memberType(m); r == pointerRepr {
		assign = target + " = &v"
	}

	g.line("if v, ok := %s; ok {", expr)
	g.line(assign)
	if !p.Optional {
		g.line("} else {")
		g.line(ctx.fail)
	}
	g.line("}")
}

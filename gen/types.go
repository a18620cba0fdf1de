package gen

import "github.com/ava12/shapegen/model"

// typesGen emits type definitions and Detach methods.
type typesGen struct {
	*emitter
}

func generateTypes(d *model.LangData, opts *Options) []byte {
	g := typesGen{newEmitter(d, opts)}

	for _, name := range d.StructNames() {
		if d.TypeOf(name) == model.StructType {
			g.structType(d.Struct(name))
		}
	}

	for _, name := range d.EnumNames() {
		en := d.Enum(name)
		if en.Simple {
			g.simpleEnum(en)
		} else {
			g.enum(en)
		}
	}

	for _, name := range d.ListNames() {
		g.list(d.List(name))
	}

	return g.source()
}

func (g typesGen) structType(s *model.Struct) {
	display := g.name(s.Name)
	g.doc(s.Doc, "")
	g.line("type %s struct {", display)
	for _, mn := range s.Members {
		t, _ := g.memberType(s.Member(mn))
		g.line("%s %s", g.name(mn), t)
	}
	g.line("}")
	g.line("")

	if !g.d.Owned[s.Name] {
		return
	}

	g.line("// Detach replaces text borrowed from parsed source with copies.")
	g.line("func (v *%s) Detach() {", display)
	for _, mn := range s.Members {
		m := s.Member(mn)
		_, r := g.memberType(m)
		expr := "v." + g.name(mn)
		if isText(m) {
			g.use("strings")
			if r == pointerRepr {
				g.line("if %s != nil {", expr)
				g.line("c := strings.Clone(*%s)", expr)
				g.line("%s = &c", expr)
				g.line("}")
			} else {
				g.line("%s = strings.Clone(%s)", expr, expr)
			}
			continue
		}

		if name := g.memberTypeName(m); name != "" && g.d.Owned[name] {
			g.detachValue(name, expr, r)
		}
	}
	g.line("}")
	g.line("")
}

// detachValue emits Detach call for an owned value of named type.
func (g typesGen) detachValue(name, expr string, r repr) {
	switch g.d.TypeOf(name) {
	case model.StructType:
		if r == pointerRepr {
			g.line("if %s != nil {", expr)
			g.line("%s.Detach()", expr)
			g.line("}")
		} else {
			g.line("%s.Detach()", expr)
		}
	case model.EnumType:
		g.line("%s%s(%s)", model.DetachPrefix, g.name(name), expr)
	case model.ListType:
		g.line("%s.Detach()", expr)
	}
}

func (g typesGen) simpleEnum(en *model.Enum) {
	g.use("strconv")
	display := g.name(en.Name)
	g.doc(en.Doc, "")
	g.line("type %s int", display)
	g.line("")
	g.line("const (")
	for i, item := range en.Items {
		if i == 0 {
			g.line("%s %s = iota", g.variant(en.Name, item), display)
		} else {
			g.line(g.variant(en.Name, item))
		}
	}
	g.line(")")
	g.line("")

	g.line("func (v %s) String() string {", display)
	g.line("switch v {")
	for _, item := range en.Items {
		g.line("case %s:", g.variant(en.Name, item))
		g.line("return %q", item)
	}
	g.line("}")
	g.line("return %q + strconv.Itoa(int(v)) + \")\"", display+"(")
	g.line("}")
	g.line("")
}

func (g typesGen) enum(en *model.Enum) {
	display := g.name(en.Name)
	marker := "is" + display

	g.doc(en.Doc, "")
	g.line("type %s interface {", display)
	g.line("%s()", marker)
	g.line("}")
	g.line("")

	for _, item := range en.Items {
		t, _, ok := g.itemType(en, item)
		if ok {
			g.line("type %s struct {", g.variant(en.Name, item))
			g.line("%s %s", g.name(item), t)
			g.line("}")
		} else {
			g.line("type %s struct{}", g.variant(en.Name, item))
		}
		g.line("")
	}

	for _, item := range en.Items {
		g.line("func (*%s) %s() {}", g.variant(en.Name, item), marker)
	}
	g.line("")

	if !g.d.Owned[en.Name] {
		return
	}

	g.line("// %s%s replaces text borrowed from parsed source with copies.", model.DetachPrefix, display)
	g.line("func %s%s(v %s) {", model.DetachPrefix, display, display)
	g.line("switch v := v.(type) {")
	for _, item := range en.Items {
		if !g.d.Owned[item] {
			continue
		}

		_, r, _ := g.itemType(en, item)
		g.line("case *%s:", g.variant(en.Name, item))
		g.detachValue(item, "v."+g.name(item), r)
	}
	g.line("}")
	g.line("}")
	g.line("")
}

func (g typesGen) list(l *model.List) {
	display := g.name(l.Name)
	item, r := g.valueType(l.Item)
	g.doc(l.Doc, "")
	g.line("type %s []%s", display, item)
	g.line("")

	if !g.d.Owned[l.Name] {
		return
	}

	g.line("// Detach replaces text borrowed from parsed source with copies.")
	g.line("func (l %s) Detach() {", display)
	g.line("for i := range l {")
	g.detachValue(l.Item, "l[i]", r)
	g.line("}")
	g.line("}")
	g.line("")
}

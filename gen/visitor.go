package gen

import "github.com/ava12/shapegen/model"

type visitorGen struct {
	*emitter
}

func generateVisitor(d *model.LangData, opts *Options) []byte {
	g := visitorGen{newEmitter(d, opts)}

	g.line("// %s receives tree nodes in depth-first order.", model.VisitorType)
	g.line("// Children of a node are skipped if Enter returns false, Leave is called anyway.")
	g.line("type %s interface {", model.VisitorType)
	g.line("Enter(n any) bool")
	g.line("Leave(n any)")
	g.line("}")
	g.line("")

	for _, name := range d.StructNames() {
		if d.TypeOf(name) == model.StructType {
			g.structWalker(d.Struct(name))
		}
	}
	for _, name := range d.EnumNames() {
		g.enumWalker(d.Enum(name))
	}
	for _, name := range d.ListNames() {
		g.listWalker(d.List(name))
	}

	return g.source()
}

func (g visitorGen) walker(name string) string {
	return model.WalkPrefix + g.name(name)
}

// child emits walk call for a value of named type, nothing for types without walkers.
func (g visitorGen) child(name, expr string, r repr) {
	switch g.d.TypeOf(name) {
	case model.StructType:
		if r == pointerRepr {
			g.line("if %s != nil {", expr)
			g.line("%s(v, %s)", g.walker(name), expr)
			g.line("}")
		} else {
			g.line("%s(v, &%s)", g.walker(name), expr)
		}
	case model.EnumType:
		g.line("if %s != nil {", expr)
		g.line("%s(v, %s)", g.walker(name), expr)
		g.line("}")
	case model.SimpleEnumType:
		if r == pointerRepr {
			g.line("if %s != nil {", expr)
			g.line("%s(v, *%s)", g.walker(name), expr)
			g.line("}")
		} else {
			g.line("%s(v, %s)", g.walker(name), expr)
		}
	case model.ListType:
		g.line("%s(v, %s)", g.walker(name), expr)
	}
}

// walkable reports whether a walker is generated for named type.
func (g visitorGen) walkable(name string) bool {
	switch g.d.TypeOf(name) {
	case model.StructType, model.EnumType, model.SimpleEnumType, model.ListType:
		return true
	}
	return false
}

func (g visitorGen) structWalker(s *model.Struct) {
	display := g.name(s.Name)
	var children []*model.Member
	for _, mn := range s.Members {
		m := s.Member(mn)
		if name := g.memberTypeName(m); name != "" && g.walkable(name) {
			children = append(children, m)
		}
	}

	g.line("func %s(v %s, n *%s) {", g.walker(s.Name), model.VisitorType, display)
	if len(children) == 0 {
		g.line("v.Enter(n)")
	} else {
		g.line("if v.Enter(n) {")
		for _, m := range children {
			_, r := g.memberType(m)
			g.child(g.memberTypeName(m), "n."+g.name(m.Name), r)
		}
		g.line("}")
	}
	g.line("v.Leave(n)")
	g.line("}")
	g.line("")
}

func (g visitorGen) enumWalker(en *model.Enum) {
	display := g.name(en.Name)
	g.line("func %s(v %s, n %s) {", g.walker(en.Name), model.VisitorType, display)
	if en.Simple {
		g.line("v.Enter(n)")
		g.line("v.Leave(n)")
		g.line("}")
		g.line("")
		return
	}

	g.line("switch n := n.(type) {")
	for _, item := range en.Items {
		g.line("case *%s:", g.variant(en.Name, item))
		_, r, ok := g.itemType(en, item)
		if ok {
			g.child(item, "n."+g.name(item), r)
		} else {
			g.line("v.Enter(n)")
			g.line("v.Leave(n)")
		}
	}
	g.line("}")
	g.line("}")
	g.line("")
}

func (g visitorGen) listWalker(l *model.List) {
	display := g.name(l.Name)
	_, r := g.valueType(l.Item)
	g.line("func %s(v %s, n %s) {", g.walker(l.Name), model.VisitorType, display)
	if g.walkable(l.Item) {
		g.line("if v.Enter(n) {")
		g.line("for i := range n {")
		g.child(l.Item, "n[i]", r)
		g.line("}")
		g.line("}")
	} else {
		g.line("v.Enter(n)")
	}
	g.line("v.Leave(n)")
	g.line("}")
	g.line("")
}

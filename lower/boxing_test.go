package lower

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ava12/shapegen/model"
)

// unboxedCycle returns a type reachable from itself through unboxed containment edges or "".
func unboxedCycle(d *model.LangData) string {
	children := make(map[string][]string)
	for child, edges := range d.Parents {
		for edge := range edges {
			var boxed bool
			if edge.InEnum {
				boxed = d.Enum(edge.Container).Boxed[edge.Member]
			} else {
				boxed = d.Struct(edge.Container).Member(edge.Member).Boxed
			}
			if !boxed {
				children[edge.Container] = append(children[edge.Container], child)
			}
		}
	}

	const (
		unseen = iota
		active
		done
	)
	state := make(map[string]int)
	var visit func(name string) string
	visit = func(name string) string {
		switch state[name] {
		case active:
			return name
		case done:
			return ""
		}

		state[name] = active
		for _, child := range children[name] {
			if found := visit(child); found != "" {
				return found
			}
		}
		state[name] = done
		return ""
	}

	for name := range children {
		if found := visit(name); found != "" {
			return found
		}
	}
	return ""
}

func TestDirectRecursion(t *testing.T) {
	d := mustLower(t, "Node(value:int next:Node?);")
	assert.True(t, d.Struct("Node").Member("next").Boxed)
	assert.False(t, d.Struct("Node").Member("value").Boxed)
	assert.Equal(t, "", unboxedCycle(d))
}

func TestEnumRecursion(t *testing.T) {
	d := mustLower(t, `
Expr = Num(int) | Neg(MINUS Expr) | Paren(LPAREN Expr RPAREN);
`)
	en := d.Enum("Expr")
	require.NotNil(t, en)
	assert.True(t, en.Boxed["Neg"])
	assert.True(t, en.Boxed["Paren"])
	assert.False(t, en.Boxed["Num"])
	assert.True(t, d.Struct("Neg").Member("Expr").Boxed)
	assert.True(t, d.Struct("Paren").Member("Expr").Boxed)
	assert.Equal(t, "", unboxedCycle(d))
}

func TestMutualRecursion(t *testing.T) {
	d := mustLower(t, "A(LBRACKET b:B?); B(a:A? c:C); C(int);")
	assert.True(t, d.Struct("A").Member("b").Boxed)
	assert.True(t, d.Struct("B").Member("a").Boxed)
	assert.False(t, d.Struct("B").Member("c").Boxed)
	assert.Equal(t, "", unboxedCycle(d))
}

func TestLongCycle(t *testing.T) {
	d := mustLower(t, `
Stmt = Block(LBRACE body:Stmt RBRACE) | If(cond:Cond then:Stmt) | Skip(SEMI);
Cond(LPAREN value:Value RPAREN);
Value = Lit(int) | Inline(stmt:Stmt);
`)
	assert.Equal(t, "", unboxedCycle(d))
	assert.True(t, d.Struct("Inline").Member("stmt").Boxed)
	assert.False(t, d.Enum("Stmt").Boxed["Skip"])
	assert.False(t, d.Enum("Value").Boxed["Lit"])
}

func TestListBreaksCycle(t *testing.T) {
	d := mustLower(t, "Tree(value:int children:Trees); Trees: Tree[] COMMA;")
	assert.False(t, d.Struct("Tree").Member("children").Boxed)
	assert.Empty(t, d.Parents)
}

func TestNoRecursion(t *testing.T) {
	d := mustLower(t, `
Pair(key:Key value:Value);
Key(ident);
Value = Num(int) | Str(string);
`)
	for _, name := range d.StructNames() {
		s := d.Struct(name)
		for _, mn := range s.Members {
			assert.False(t, s.Member(mn).Boxed, name+"."+mn)
		}
	}
	assert.Empty(t, d.Enum("Value").Boxed)
}

package lower

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOwnership(t *testing.T) {
	d := mustLower(t, `
Pair(w:Word n:Num);
Word(ident);
Num(int);
Nums: Num[] COMMA;
Words: Word[] COMMA;
Flag(value:Bool on:"on"?);
Bool = Yes("yes") | No("no");
Value = Num | Word;
Hook(name:@hook);
Quoted(string);
Spaced(int sep:WS int);
`)
	owned := []string{"Pair", "Word", "Words", "Value", "Hook", "Quoted", "Spaced"}
	free := []string{"Num", "Nums", "Flag", "Bool"}

	for _, name := range owned {
		assert.True(t, d.Owned[name], name)
	}
	for _, name := range free {
		assert.False(t, d.Owned[name], name)
	}
}

func TestOwnershipCycles(t *testing.T) {
	d := mustLower(t, `
Node(value:int next:Node?);
Cell(name:ident next:Cell?);
A(LBRACKET b:B?); B(a:A? text:string?);
Expr = Num(int) | Neg(MINUS Expr) | Var(ident);
Plain = Zero(int) | Inc(PLUS Plain);
`)
	assert.False(t, d.Owned["Node"])
	assert.True(t, d.Owned["Cell"])
	assert.True(t, d.Owned["A"])
	assert.True(t, d.Owned["B"])
	assert.True(t, d.Owned["Expr"])
	assert.True(t, d.Owned["Neg"])
	assert.False(t, d.Owned["Num"])
	assert.False(t, d.Owned["Plain"])
	assert.False(t, d.Owned["Inc"])
}

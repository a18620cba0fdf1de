package lower

import (
	"bytes"
	"io"
	"log/slog"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ava12/shapegen/internal/logutil"
	"github.com/ava12/shapegen/internal/test"
	"github.com/ava12/shapegen/langdef"
	"github.com/ava12/shapegen/model"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func lowerString(t *testing.T, src string) (*model.LangData, error) {
	t.Helper()
	g, e := langdef.ParseString(t.Name(), src)
	require.NoError(t, e)
	return LowerWithLogger(g, quiet)
}

func mustLower(t *testing.T, src string) *model.LangData {
	t.Helper()
	d, e := lowerString(t, src)
	require.NoError(t, e)
	return d
}

func checkErrorCode(t *testing.T, samples []string, code int) {
	t.Helper()
	for index, src := range samples {
		_, e := lowerString(t, src)
		if e == nil {
			t.Fatalf("input #%d: expecting error code %d, got success", index, code)
		}
		test.ExpectErrorCode(t, code, e)
	}
}

func TestUnknownToken(t *testing.T) {
	checkErrorCode(t, []string{
		"A(FOO);",
		"A(x:int (COMMA Bar)?);",
		"L: A[] NOPE; A(int);",
	}, UnknownTokenError)
}

func TestUnresolved(t *testing.T) {
	checkErrorCode(t, []string{
		"A = B;",
		"A = X(int) | Missing;",
		"L: ident[] COMMA;",
	}, UnresolvedError)
}

func TestAliasCycle(t *testing.T) {
	checkErrorCode(t, []string{
		"A = B; B = A;",
		"A = A;",
		"A = B | X(int); B = C; C = A | Y(ident);",
	}, AliasCycleError)
}

func TestDuplicateField(t *testing.T) {
	checkErrorCode(t, []string{
		"A(x:int x:ident);",
		"A(x:int (COMMA x:int)?);",
	}, DuplicateFieldError)
}

func TestFieldConflict(t *testing.T) {
	checkErrorCode(t, []string{
		"A = P(x:int) | P(x:ident);",
		"A = P(x:!SEMI) | P(x:SEMI);",
	}, FieldConflictError)
}

func TestNameConflict(t *testing.T) {
	checkErrorCode(t, []string{
		"my_a(int); MyA(ident);",
		"V = Null(\"null\") | V(int);",
		"A = B(int) | C(ident); L: A[]; AB(int);",
		"Item(int); WalkItem(int);",
		"P(x:int detach:ident);",
		"Visitor(int);",
		"A = B; a = B; B(int);",
		`X(v:V w:W); V = A("x") | B(int); W = a_("y") | C(ident);`,
		`X(v:V w:W); V = A("x") | B("z"); W = a_("y") | C("w");`,
		`Op = Op("+") | Minus("-");`,
	}, NameConflictError)
}

func TestLeftRecursion(t *testing.T) {
	checkErrorCode(t, []string{
		"Expr = Num(int) | Bin(left:Expr PLUS right:Expr);",
		"A(b:B?); B(a:A? c:C); C(int);",
		"A(LPAREN? x:A);",
		"L: Item[]; Item(l:L SEMI);",
		"A = B | X(int); B(x:C); C = A;",
		"A(text:!B SEMI); B(A);",
		"A(items:Items x:A); Items: N[]; N(int);",
	}, LeftRecursionError)

	mustLower(t, "Expr = Num(int) | Neg(MINUS Expr) | Paren(LPAREN Expr RPAREN);")
	mustLower(t, "A(LBRACKET b:B?); B(a:A? c:C); C(int);")
	mustLower(t, "L: Item[]; Item(SEMI l:L);")
}

func TestKindConflict(t *testing.T) {
	checkErrorCode(t, []string{"A(int); A: B[]; B(int);"}, KindConflictError)
}

func TestSeparator(t *testing.T) {
	checkErrorCode(t, []string{
		"L: A[] A; A(int);",
		"L: A[] COMMA; L: A[] SEMI; A(int);",
		"L: A[] int; A(int);",
	}, SeparatorError)

	d := mustLower(t, "L: A[] COMMA; L: A[] COMMA; A(int);")
	require.NotNil(t, d.List("L").Separator)
	assert.Equal(t, ",", d.List("L").Separator.Text)
}

func TestClassification(t *testing.T) {
	d := mustLower(t, `A(LPAREN "::" ";" int ident string WS @hook B RPAREN); B: A[];`)
	expected := map[string]model.TypedPart{
		"LPAREN":            {Kind: model.CharPart, Key: "LPAREN", Text: "("},
		"RPAREN":            {Kind: model.CharPart, Key: "RPAREN", Text: ")"},
		strconv.Quote("::"): {Kind: model.TagPart, Key: `"::"`, Text: "::"},
		strconv.Quote(";"):  {Kind: model.CharPart, Key: `";"`, Text: ";"},
		"int":               {Kind: model.IntPart, Key: "int"},
		"ident":             {Kind: model.IdentPart, Key: "ident"},
		"string":            {Kind: model.StringPart, Key: "string"},
		"WS":                {Kind: model.SpacePart, Key: "WS"},
		"@hook":             {Kind: model.CallPart, Key: "@hook", Text: "hook"},
		"B":                 {Kind: model.ListPart, Key: "B"},
	}

	got := make(map[string]model.TypedPart)
	for key, p := range d.Parts {
		got[key] = *p
	}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Fatalf("parts mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "A", d.Start)
}

func TestOptionality(t *testing.T) {
	d := mustLower(t, `
S = P(a:int b:ident) | P(a:int);
Q(x:int? y:string);
G(int (COMMA ident)?);
R = T(x:int) | T(x:int?);
`)
	p := d.Struct("P")
	require.NotNil(t, p)
	test.ExpectInt(t, 2, p.Count)
	assert.False(t, p.Member("a").Optional)
	assert.True(t, p.Member("b").Optional)

	q := d.Struct("Q")
	assert.True(t, q.Member("x").Optional)
	assert.False(t, q.Member("y").Optional)

	g := d.Struct("G")
	assert.Equal(t, []string{"int", "ident"}, g.Members)
	assert.False(t, g.Member("int").Optional)
	assert.True(t, g.Member("ident").Optional)

	assert.True(t, d.Struct("T").Member("x").Optional)
}

func TestAutoNames(t *testing.T) {
	d := mustLower(t, `
Expr = Num | Add(Num PLUS Num) | Pair(Num Num2:Num);
Num(int);
`)
	assert.Equal(t, []string{"Num", "Num2"}, d.Struct("Add").Members)
	assert.Equal(t, []string{"Num", "Num2"}, d.Struct("Pair").Members)
	assert.Equal(t, []string{"int"}, d.Struct("Num").Members)
}

func TestNegated(t *testing.T) {
	d := mustLower(t, `
Line(!(SEMI)? text:!"\n" rest:!(COMMA SEMI)? !ident);
`)
	s := d.Struct("Line")
	assert.Equal(t, []string{"text", "rest"}, s.Members)

	text := s.Member("text")
	assert.True(t, text.Negated)
	assert.Equal(t, strconv.Quote("\n"), text.Key)
	assert.False(t, text.Optional)

	rest := s.Member("rest")
	assert.True(t, rest.Negated)
	assert.True(t, rest.Optional)
	assert.True(t, d.Owned["Line"])
}

func TestSumTypes(t *testing.T) {
	d := mustLower(t, `
Value = Object | Pair(key:string) | Object | Null("null");
Object(LBRACE RBRACE);
Num = Int(int) | Int(MINUS int);
Alias = Num;
`)
	assert.Equal(t, model.RuleType{Kind: model.ManyType, Name: "Value"}, d.RuleTypes["Value"])
	assert.Equal(t, []string{"Object", "Pair", "Null"}, d.Enum("Value").Items)
	assert.False(t, d.Enum("Value").Simple)

	assert.Equal(t, model.RuleType{Kind: model.SingleType, Name: "Int"}, d.RuleTypes["Num"])
	assert.Equal(t, model.RuleType{Kind: model.SingleType, Name: "Int"}, d.RuleTypes["Alias"])
	assert.Nil(t, d.Enum("Num"))
	test.ExpectInt(t, 2, d.Struct("Int").Count)

	assert.Equal(t, model.ElidedType, d.TypeOf("Object"))
	assert.True(t, d.Elided["Null"])
}

func TestListTypes(t *testing.T) {
	d := mustLower(t, `
Items: (Digit | Word(ident))[] COMMA;
Digit(int);
Digits: Digit[];
Nested: Digits[] SEMI;
`)
	assert.Equal(t, model.RuleType{Kind: model.ManyType, Name: "ItemsItem"}, d.RuleTypes["Items"])
	assert.Equal(t, []string{"Digit", "Word"}, d.Enum("ItemsItem").Items)
	assert.Equal(t, "ItemsItem", d.List("Items").Item)

	assert.Equal(t, "Digit", d.List("Digits").Item)
	assert.Nil(t, d.List("Digits").Separator)
	assert.Equal(t, "Digits", d.List("Nested").Item)
	assert.Equal(t, "SEMI", d.List("Nested").Separator.Key)
}

func TestSimpleEnum(t *testing.T) {
	d := mustLower(t, `
Flag(value:Bool);
Bool = True("true") | False("false");
`)
	assert.True(t, d.SimpleEnums["Bool"])
	assert.True(t, d.Enum("Bool").Simple)
	assert.Nil(t, d.Struct("True"))
	assert.Nil(t, d.Struct("False"))
	assert.True(t, d.Elided["True"])
	assert.Equal(t, model.SimpleEnumType, d.TypeOf("Bool"))
	assert.Equal(t, []string{"Flag"}, d.StructNames())
	assert.Empty(t, d.Parents)
}

func TestDoc(t *testing.T) {
	d := mustLower(t, `
%doc("A digit.") %doc(second, line) %unknown
Digit(int);
%doc("Values.")
Value = Digit | Word(ident);
`)
	assert.Equal(t, "A digit.\nsecond\nline", d.Struct("Digit").Doc)
	assert.Equal(t, "Values.", d.Enum("Value").Doc)
	assert.Equal(t, "", d.Struct("Word").Doc)
}

func TestDigitsExample(t *testing.T) {
	d := mustLower(t, "Digit(int); Digits: Digit[] COMMA;")

	digit := d.Struct("Digit")
	require.NotNil(t, digit)
	assert.Equal(t, []string{"int"}, digit.Members)
	m := digit.Member("int")
	assert.False(t, m.Optional)
	assert.Equal(t, model.IntPart, m.Kind)

	list := d.List("Digits")
	require.NotNil(t, list)
	assert.Equal(t, "Digit", list.Item)
	assert.Equal(t, model.TypedPart{Kind: model.CharPart, Key: "COMMA", Text: ","}, *list.Separator)
	assert.Equal(t, model.RuleType{Kind: model.SingleType, Name: "Digit"}, d.RuleTypes["Digit"])
	assert.Empty(t, d.Owned)
}

func TestDeterminism(t *testing.T) {
	src := `
Expr = Num(int) | Bin(LBRACKET left:Expr op:Op right:Expr RBRACKET) | Paren(LPAREN Expr RPAREN) | Call(name:ident LPAREN args:Args RPAREN);
Op = Plus("+") | Minus("-");
Args: Expr[] COMMA;
`
	first := mustLower(t, src).Summarize()
	for i := 0; i < 5; i++ {
		if diff := cmp.Diff(first, mustLower(t, src).Summarize()); diff != "" {
			t.Fatalf("run #%d differs (-first +got):\n%s", i, diff)
		}
	}
}

func TestTraceGoesToLogger(t *testing.T) {
	var global, local bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(logutil.NewLogger(&global, logutil.LevelTrace))
	defer slog.SetDefault(prev)

	g, e := langdef.ParseString("digits", "Digits: Digit[] COMMA; Digit(int);")
	require.NoError(t, e)
	_, e = LowerWithLogger(g, quiet)
	require.NoError(t, e)
	assert.Empty(t, global.String())

	g, e = langdef.ParseString("digits", "Digits: Digit[] COMMA; Digit(int);")
	require.NoError(t, e)
	_, e = LowerWithLogger(g, logutil.NewLogger(&local, logutil.LevelTrace))
	require.NoError(t, e)
	assert.Contains(t, local.String(), "msg=classified")
	assert.Contains(t, local.String(), "msg=resolved")
	assert.Empty(t, global.String())
}

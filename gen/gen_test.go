package gen

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ava12/shapegen/internal/test"
	"github.com/ava12/shapegen/langdef"
	"github.com/ava12/shapegen/lower"
	"github.com/ava12/shapegen/model"
)

const exprGrammar = `
Expr = Num(int) | Bin(LBRACKET left:Expr op:Op right:Expr RBRACKET) | Paren(LPAREN Expr RPAREN) | Call(name:ident LPAREN args:Args RPAREN);
Op = Plus("+") | Minus("-");
Args: Expr[] COMMA;
`

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func mustLower(t *testing.T, src string) *model.LangData {
	t.Helper()
	g, e := langdef.ParseString(t.Name(), src)
	require.NoError(t, e)
	d, e := lower.LowerWithLogger(g, quiet)
	require.NoError(t, e)
	return d
}

func mustGenerate(t *testing.T, src string) map[string]string {
	t.Helper()
	files, e := Generate(mustLower(t, src), Options{Package: "out", Source: "test.shape"})
	require.NoError(t, e)
	require.Len(t, files, 4)

	result := make(map[string]string, len(files))
	for _, f := range files {
		result[f.Name] = normalize(string(f.Content))
	}
	return result
}

var spaceRe = regexp.MustCompile(`\s+`)

// normalize collapses whitespace so that snippets do not depend on gofmt alignment.
func normalize(src string) string {
	return spaceRe.ReplaceAllString(src, " ")
}

func expectSnippets(t *testing.T, src string, snippets ...string) {
	t.Helper()
	for _, s := range snippets {
		if !strings.Contains(src, normalize(s)) {
			t.Errorf("snippet not found: %s", s)
		}
	}
}

func TestFileNames(t *testing.T) {
	files, e := Generate(mustLower(t, "Digit(int);"), Options{Package: "digits", ParserFile: "parse.go"})
	require.NoError(t, e)
	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, f.Name)
		assert.True(t, strings.HasPrefix(string(f.Content), "// Code generated by shapegen from grammar. DO NOT EDIT."))
	}
	assert.Equal(t, []string{"types.go", "parse.go", "visitor.go", "printer.go"}, names)
}

func TestBadPackage(t *testing.T) {
	d := mustLower(t, "Digit(int);")
	for _, name := range []string{"", "1x", "a-b", "func", "type"} {
		_, e := Generate(d, Options{Package: name})
		test.ExpectErrorCode(t, BadPackageError, e)
	}
	assert.True(t, ValidPackage("out_2"))
}

func TestDigits(t *testing.T) {
	files := mustGenerate(t, "Digits: Digit[] COMMA; Digit(int);")

	expectSnippets(t, files["types.go"],
		"type Digit struct { Int int64 }",
		"type Digits []Digit",
	)
	assert.NotContains(t, files["types.go"], "Detach")

	expectSnippets(t, files["parser.go"],
		"func Parse(name, src string) (Digits, error) {",
		"func parseDigits(s *rt.Scanner) (result Digits, ok bool) {",
		`if len(result) > 0 && !s.Lit(",") { break }`,
		"v, ok := parseDigit(s)",
		"func matchDigit_1(s *rt.Scanner) (result Digit, ok bool) {",
		"if v, ok := s.Int(); ok { result.Int = v } else { return result, false }",
	)

	expectSnippets(t, files["printer.go"],
		"// Parts that store no data, such as unbound optional literals and hooks, are not printed,",
		"func Print(v Digits) string {",
		"p.printDigits(v)",
		`for i, item := range v { if i > 0 { p.Token(",") } p.printDigit(&item) }`,
		"func (p *printer) printDigit(v *Digit) { p.Int(v.Int) }",
	)

	expectSnippets(t, files["visitor.go"],
		"type Visitor interface { Enter(n any) bool Leave(n any) }",
		"func WalkDigits(v Visitor, n Digits) { if v.Enter(n) { for i := range n { WalkDigit(v, &n[i]) } } v.Leave(n) }",
	)
}

func TestSumTypes(t *testing.T) {
	files := mustGenerate(t, exprGrammar)

	expectSnippets(t, files["types.go"],
		"type Expr interface { isExpr() }",
		"type ExprBin struct { Bin *Bin }",
		"type ExprParen struct { Paren *Paren }",
		"func (*ExprNum) isExpr() {}",
		"OpPlus Op = iota",
		`return "Op(" + strconv.Itoa(int(v)) + ")"`,
		"func DetachExpr(v Expr) {",
		"Name = strings.Clone(v.Name)",
	)
	assert.NotContains(t, files["types.go"], "type Plus struct")

	expectSnippets(t, files["parser.go"],
		"if v, ok := matchBin_1(s); ok { return &ExprBin{Bin: &v}, true }",
		"if _, ok := matchPlus_1(s); ok { return OpPlus, true }",
		`if !s.Lit("(") { return result, false }`,
	)

	expectSnippets(t, files["printer.go"],
		"case *ExprBin: if v.Bin != nil { p.printBin(v.Bin) }",
		"case OpMinus: p.printMinus()",
		`func (p *printer) printPlus() { p.Token("+") }`,
	)

	expectSnippets(t, files["visitor.go"],
		"func WalkOp(v Visitor, n Op) { v.Enter(n) v.Leave(n) }",
		"if n.Left != nil { WalkExpr(v, n.Left) } WalkOp(v, n.Op)",
	)
}

func TestOptionalAndNegated(t *testing.T) {
	files := mustGenerate(t, `
Line(key:ident (COLON value:int)? text:!";"? SEMI);
`)

	expectSnippets(t, files["types.go"],
		"type Line struct { Key string Value *int64 Text *string }",
	)

	expectSnippets(t, files["parser.go"],
		"saved := result",
		"if v, ok := s.Int(); ok { result.Value = &v } else { return false }",
		`if v := s.Until(func(s *rt.Scanner) bool { if !s.Lit(";") { return false } return true }); v != "" { result.Text = &v }`,
	)

	expectSnippets(t, files["printer.go"],
		`if v.Value != nil { p.Token(":") if v.Value != nil { p.Int(*v.Value) } }`,
		"if v.Text != nil { p.Text(*v.Text) }",
	)
}

func TestAlternativeProductions(t *testing.T) {
	files := mustGenerate(t, `S = P(a:int b:ident) | P(a:int);`)

	expectSnippets(t, files["printer.go"],
		"switch { case v.B != nil: p.Int(v.A)",
		"case v.B == nil: p.Int(v.A) }",
	)
}

func TestDeterminism(t *testing.T) {
	first := mustGenerate(t, exprGrammar)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, mustGenerate(t, exprGrammar), "run #%d", i)
	}
}

func TestWriteAndDiff(t *testing.T) {
	dir := t.TempDir()
	files := []File{{Name: "a.go", Content: []byte("package a\n")}}

	diff, e := Diff(dir, files)
	require.NoError(t, e)
	assert.Contains(t, diff, "+package a")

	require.NoError(t, Write(dir, files, true))
	_, e = os.Stat(filepath.Join(dir, "a.go"+BackupSuffix))
	assert.True(t, os.IsNotExist(e))

	diff, e = Diff(dir, files)
	require.NoError(t, e)
	assert.Equal(t, "", diff)

	changed := []File{{Name: "a.go", Content: []byte("package b\n")}}
	require.NoError(t, Write(dir, changed, true))
	backup, e := os.ReadFile(filepath.Join(dir, "a.go"+BackupSuffix))
	require.NoError(t, e)
	assert.Equal(t, "package a\n", string(backup))

	diff, e = Diff(dir, files)
	require.NoError(t, e)
	assert.Contains(t, diff, "-package b")
	assert.Contains(t, diff, "+package a")
}

func lowerFile(t *testing.T, name string) *model.LangData {
	t.Helper()
	src, e := os.ReadFile(name)
	require.NoError(t, e)
	g, e := langdef.ParseBytes(filepath.Base(name), src)
	require.NoError(t, e, name)
	d, e := lower.LowerWithLogger(g, quiet)
	require.NoError(t, e, name)
	return d
}

func TestExampleGrammars(t *testing.T) {
	names, e := filepath.Glob(filepath.Join("..", "examples", "*.shape"))
	require.NoError(t, e)
	require.Len(t, names, 4)

	for _, name := range names {
		_, e := Generate(lowerFile(t, name), Options{Package: "example", Source: filepath.Base(name)})
		assert.NoError(t, e, name)
	}
}

func TestDigitsPackageUpToDate(t *testing.T) {
	d := lowerFile(t, filepath.Join("..", "examples", "digits.shape"))
	files, e := Generate(d, Options{Package: "digits", Source: "digits.shape"})
	require.NoError(t, e)

	diff, e := Diff(filepath.Join("..", "examples", "digits"), files)
	require.NoError(t, e)
	assert.Equal(t, "", diff)
}

func TestMiniGrammar(t *testing.T) {
	files, e := Generate(lowerFile(t, filepath.Join("..", "examples", "mini.shape")), Options{Package: "mini"})
	require.NoError(t, e)
	types := normalize(string(files[0].Content))
	parser := normalize(string(files[1].Content))

	expectSnippets(t, types,
		"type If struct { Cond Expr Then Block Otherwise *Block }",
		"type StmtBlock struct { Block Block }",
		"type ExprParen struct { Paren *Paren }",
		"type Comment struct { Text *string }",
	)
	expectSnippets(t, parser,
		`if !s.Lit("let") { return result, false }`,
		"if v, ok := parseBlock(s); ok { return &StmtBlock{Block: v}, true }",
		`if !s.Lit("\n") { return result, false }`,
	)
}

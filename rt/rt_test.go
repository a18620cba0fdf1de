package rt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ava12/shapegen"
	"github.com/ava12/shapegen/internal/test"
)

func TestLit(t *testing.T) {
	s := NewScanner("lit", "  foo(bar) null nullable")
	assert.False(t, s.Lit("bar"))
	test.ExpectInt(t, 0, s.Mark())
	assert.True(t, s.Lit("foo"))
	assert.True(t, s.Lit("("))
	assert.True(t, s.Lit("bar"))
	assert.True(t, s.Lit(")"))
	assert.True(t, s.Lit("null"))
	mark := s.Mark()
	assert.False(t, s.Lit("null"))
	test.ExpectInt(t, mark, s.Mark())
	assert.True(t, s.Lit("nullable"))
	assert.True(t, s.End())
}

func TestLitWhitespace(t *testing.T) {
	s := NewScanner("ws", "a \nb")
	assert.True(t, s.Lit("a"))
	assert.False(t, s.Lit("\n"))
	_, ok := s.Space()
	assert.True(t, ok)
	assert.True(t, s.Lit("b"))
}

func TestTerminals(t *testing.T) {
	s := NewScanner("terms", ` 42 name_1 "a \"q\"" 7x`)
	v, ok := s.Int()
	require.True(t, ok)
	assert.Equal(t, int64(42), v)

	_, ok = s.Int()
	assert.False(t, ok)
	id, ok := s.Ident()
	require.True(t, ok)
	assert.Equal(t, "name_1", id)

	q, ok := s.Quoted()
	require.True(t, ok)
	assert.Equal(t, `"a \"q\""`, q)

	_, ok = s.Int()
	assert.False(t, ok)
	_, ok = s.Ident()
	assert.False(t, ok)
	assert.Equal(t, " 7x", s.Rest())
}

func TestSpace(t *testing.T) {
	s := NewScanner("space", "a  b")
	_, ok := s.Space()
	assert.False(t, ok)
	assert.True(t, s.Lit("a"))
	sp, ok := s.Space()
	assert.True(t, ok)
	assert.Equal(t, "  ", sp)
	assert.Equal(t, "b", s.Rest())
}

func TestUntil(t *testing.T) {
	s := NewScanner("until", "//  comment text  \nnext")
	require.True(t, s.Lit("//"))
	text := s.Until(func(s *Scanner) bool { return s.Lit("\n") })
	assert.Equal(t, "comment text", text)
	assert.True(t, s.Lit("\n"))
	assert.Equal(t, "next", s.Rest())

	s = NewScanner("empty", "//\nnext")
	require.True(t, s.Lit("//"))
	assert.Equal(t, "", s.Until(func(s *Scanner) bool { return s.Lit("\n") }))
	assert.Equal(t, "\nnext", s.Rest())

	s = NewScanner("eof", "abc def")
	assert.Equal(t, "abc def", s.Until(func(s *Scanner) bool { return s.Lit(";") }))
	assert.True(t, s.End())
	assert.Nil(t, s.Err())
}

func TestCall(t *testing.T) {
	upper := func(s *Scanner) (string, bool) {
		rest := s.Rest()
		i := 0
		for i < len(rest) && rest[i] >= 'A' && rest[i] <= 'Z' {
			i++
		}
		if i == 0 {
			return "", false
		}
		s.Reset(s.Mark() + i)
		return rest[:i], true
	}

	s := NewScanner("call", " ABc")
	v, ok := s.Call("upper", upper)
	require.True(t, ok)
	assert.Equal(t, "AB", v)
	_, ok = s.Call("upper", upper)
	assert.False(t, ok)
	assert.Contains(t, s.Err().Error(), "expecting upper")
}

func TestErr(t *testing.T) {
	s := NewScanner("err", "a,\n b c")
	require.True(t, s.Lit("a"))
	require.True(t, s.Lit(","))
	require.True(t, s.Lit("b"))
	assert.False(t, s.Lit(","))
	assert.False(t, s.Lit(";"))
	assert.False(t, s.End())

	e := s.Err()
	test.ExpectErrorCode(t, UnexpectedInputError, e)
	se := e.(*shapegen.Error)
	test.ExpectInt(t, 2, se.Line)
	test.ExpectInt(t, 4, se.Col)
	assert.Contains(t, se.Message, `expecting "," or ";" or end of input`)

	s = NewScanner("eof", "a")
	require.True(t, s.Lit("a"))
	assert.False(t, s.Lit(","))
	test.ExpectErrorCode(t, UnexpectedEofError, s.Err())
}

func TestPrinter(t *testing.T) {
	var p Printer
	p.Int(1)
	p.Token(",")
	p.Int(2)
	p.Token(",")
	p.Int(3)
	assert.Equal(t, "1, 2, 3", p.String())

	p = Printer{}
	p.Text("f")
	p.Token("(")
	p.Text("a")
	p.Token(".")
	p.Text("b")
	p.Token(")")
	p.Token("{")
	p.Token("}")
	p.Token(";")
	p.Space("")
	p.Space("")
	p.Token("x")
	p.Token("\n")
	p.Token("y")
	assert.Equal(t, "f (a.b) {}; x\ny", p.String())
}

func TestOk(t *testing.T) {
	s := NewScanner("ok", "12 x")
	assert.True(t, Ok(s.Int()))
	assert.False(t, Ok(s.Int()))
	assert.True(t, Ok(s.Ident()))
}

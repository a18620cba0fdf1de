// Package rt contains runtime support for generated parsers and printers.
package rt

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ava12/shapegen"
	"github.com/ava12/shapegen/source"
)

const (
	UnexpectedInputError = shapegen.RuntimeErrors + iota
	UnexpectedEofError
)

// Scanner is a text cursor used by generated parsers.
// Matchers skip whitespace before the match and never move the cursor on failure.
// Failed matches at the farthest position are remembered to build syntax error.
type Scanner struct {
	name     string
	src      string
	pos      int
	far      int
	expected []string
	quiet    int
}

func NewScanner(name, src string) *Scanner {
	return &Scanner{name: name, src: src, far: -1}
}

// Mark returns current position.
func (s *Scanner) Mark() int {
	return s.pos
}

// Reset moves cursor to a position returned by Mark.
func (s *Scanner) Reset(mark int) {
	s.pos = mark
}

// Rest returns unparsed text.
func (s *Scanner) Rest() string {
	return s.src[s.pos:]
}

func (s *Scanner) fail(what string) {
	if s.quiet > 0 {
		return
	}

	switch {
	case s.pos > s.far:
		s.far = s.pos
		s.expected = append(s.expected[:0], what)
	case s.pos == s.far:
		for _, e := range s.expected {
			if e == what {
				return
			}
		}
		s.expected = append(s.expected, what)
	}
}

// SkipSpace moves cursor past whitespace.
func (s *Scanner) SkipSpace() {
	s.pos += len(s.src[s.pos:]) - len(strings.TrimLeftFunc(s.src[s.pos:], unicode.IsSpace))
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Lit matches literal text. Whitespace is not skipped if text starts with whitespace.
// Text ending with a word character does not match a prefix of a longer word.
func (s *Scanner) Lit(text string) bool {
	start := s.pos
	if r, _ := utf8.DecodeRuneInString(text); !unicode.IsSpace(r) {
		s.SkipSpace()
	}

	if strings.HasPrefix(s.src[s.pos:], text) {
		last, _ := utf8.DecodeLastRuneInString(text)
		next, _ := utf8.DecodeRuneInString(s.src[s.pos+len(text):])
		if !isWordRune(last) || !isWordRune(next) {
			s.pos += len(text)
			return true
		}
	}

	s.fail(strconv.Quote(text))
	s.pos = start
	return false
}

// Int matches decimal integer.
func (s *Scanner) Int() (int64, bool) {
	start := s.pos
	s.SkipSpace()
	end := s.pos
	for end < len(s.src) && s.src[end] >= '0' && s.src[end] <= '9' {
		end++
	}

	if end > s.pos {
		next, _ := utf8.DecodeRuneInString(s.src[end:])
		v, e := strconv.ParseInt(s.src[s.pos:end], 10, 64)
		if e == nil && !isWordRune(next) {
			s.pos = end
			return v, true
		}
	}

	s.fail("integer")
	s.pos = start
	return 0, false
}

// Ident matches identifier: a letter or underscore followed by letters, digits, and underscores.
func (s *Scanner) Ident() (string, bool) {
	start := s.pos
	s.SkipSpace()
	end := s.pos
	for i, r := range s.src[s.pos:] {
		if !isWordRune(r) || (i == 0 && unicode.IsDigit(r)) {
			break
		}
		end = s.pos + i + utf8.RuneLen(r)
	}

	if end > s.pos {
		result := s.src[s.pos:end]
		s.pos = end
		return result, true
	}

	s.fail("identifier")
	s.pos = start
	return "", false
}

// Quoted matches double-quoted string with backslash escapes and returns it including quotes.
func (s *Scanner) Quoted() (string, bool) {
	start := s.pos
	s.SkipSpace()
	rest := s.src[s.pos:]
	if strings.HasPrefix(rest, `"`) {
		for i := 1; i < len(rest) && rest[i] != '\n'; i++ {
			if rest[i] == '\\' {
				i++
				continue
			}
			if rest[i] == '"' {
				s.pos += i + 1
				return rest[:i+1], true
			}
		}
	}

	s.fail("string")
	s.pos = start
	return "", false
}

// Space matches at least one whitespace character at cursor position.
func (s *Scanner) Space() (string, bool) {
	start := s.pos
	s.SkipSpace()
	if s.pos > start {
		return s.src[start:s.pos], true
	}

	s.fail("whitespace")
	return "", false
}

// Until captures text up to the position where stop matches or up to the end of input.
// Leading whitespace is skipped unless stop matches there, trailing whitespace
// is not included in the result. Cursor is left before the stop match.
// stop must not move the cursor on failure, its failures are not reported.
func (s *Scanner) Until(stop func(*Scanner) bool) string {
	s.quiet++
	defer func() { s.quiet-- }()

	stops := func() bool {
		mark := s.pos
		result := stop(s)
		s.pos = mark
		return result
	}

	for s.pos < len(s.src) && !stops() {
		r, size := utf8.DecodeRuneInString(s.src[s.pos:])
		if !unicode.IsSpace(r) {
			break
		}
		s.pos += size
	}

	start := s.pos
	for s.pos < len(s.src) && !stops() {
		_, size := utf8.DecodeRuneInString(s.src[s.pos:])
		s.pos += size
	}

	return strings.TrimRightFunc(s.src[start:s.pos], unicode.IsSpace)
}

// Call invokes external matcher f with whitespace skipped first.
// f returns matched text.
func (s *Scanner) Call(name string, f func(*Scanner) (string, bool)) (string, bool) {
	start := s.pos
	s.SkipSpace()
	skipped := s.pos
	result, ok := f(s)
	if !ok {
		s.pos = skipped
		s.fail(name)
		s.pos = start
	}
	return result, ok
}

// End matches end of input, trailing whitespace is skipped.
func (s *Scanner) End() bool {
	start := s.pos
	s.SkipSpace()
	if s.pos == len(s.src) {
		return true
	}

	s.fail("end of input")
	s.pos = start
	return false
}

// Err returns syntax error for the farthest failed match or nil if nothing failed.
func (s *Scanner) Err() error {
	if s.far < 0 {
		return nil
	}

	pos := source.NewPos(source.New(s.name, []byte(s.src)), s.far)
	expected := strings.Join(s.expected, " or ")
	if s.far >= len(s.src) {
		return shapegen.FormatErrorPos(pos, UnexpectedEofError, "unexpected end of input, expecting %s", expected)
	}

	found := s.src[s.far:]
	if r := []rune(found); len(r) > 10 {
		found = string(r[:10])
	}
	return shapegen.FormatErrorPos(pos, UnexpectedInputError, "unexpected %q, expecting %s", found, expected)
}

// Ok drops matched value and returns success flag.
func Ok[T any](_ T, ok bool) bool {
	return ok
}

package rt

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	noSpaceBefore = ")]},;:."
	noSpaceAfter  = "([{."
)

// Printer joins tokens with canonical spacing: a single space between tokens,
// none before closing brackets and punctuation, none after opening brackets and dots.
// Zero value is ready to use.
type Printer struct {
	sb strings.Builder
}

func (p *Printer) separate(text string) {
	if p.sb.Len() == 0 || text == "" {
		return
	}

	first, _ := utf8.DecodeRuneInString(text)
	if unicode.IsSpace(first) || strings.ContainsRune(noSpaceBefore, first) {
		return
	}

	last, _ := utf8.DecodeLastRuneInString(p.sb.String())
	if unicode.IsSpace(last) || strings.ContainsRune(noSpaceAfter, last) {
		return
	}

	p.sb.WriteByte(' ')
}

// Token writes literal token.
func (p *Printer) Token(text string) {
	p.separate(text)
	p.sb.WriteString(text)
}

// Text writes captured text: an identifier, a quoted string, or a raw span.
func (p *Printer) Text(text string) {
	p.Token(text)
}

func (p *Printer) Int(v int64) {
	p.Token(strconv.FormatInt(v, 10))
}

// Space writes whitespace text as is, or a single space if text is empty
// and output does not end with whitespace already.
func (p *Printer) Space(text string) {
	if text != "" {
		p.sb.WriteString(text)
		return
	}

	if p.sb.Len() == 0 {
		return
	}
	last, _ := utf8.DecodeLastRuneInString(p.sb.String())
	if !unicode.IsSpace(last) {
		p.sb.WriteByte(' ')
	}
}

// String returns printed text.
func (p *Printer) String() string {
	return p.sb.String()
}

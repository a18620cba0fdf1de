// Package source defines source file with line and column lookup, and a cursor over it.
package source

import (
	"bytes"
	"unicode/utf8"
)

// Source contains named source content and line start offsets.
type Source struct {
	name       string
	content    []byte
	lineStarts []int
}

// New creates new Source. content must not be modified afterwards.
func New(name string, content []byte) *Source {
	s := &Source{name: name, content: content}
	s.lineStarts = make([]int, 1, bytes.Count(content, []byte("\n"))+1)
	for i, c := range content {
		if c == '\n' {
			s.lineStarts = append(s.lineStarts, i+1)
		}
	}
	return s
}

// Name returns source name, usually file name.
func (s *Source) Name() string {
	return s.name
}

// Content returns source content.
func (s *Source) Content() []byte {
	return s.content
}

// Len returns content length in bytes.
func (s *Source) Len() int {
	return len(s.content)
}

// LineCol returns 1-based line and column (in runes) for byte offset pos.
// Offsets outside of content are clamped.
func (s *Source) LineCol(pos int) (line, col int) {
	if pos < 0 {
		pos = 0
	} else if pos > len(s.content) {
		pos = len(s.content)
	}

	left, right := 0, len(s.lineStarts)-1
	for left < right {
		mid := (left + right + 1) >> 1
		if s.lineStarts[mid] <= pos {
			left = mid
		} else {
			right = mid - 1
		}
	}

	return left + 1, utf8.RuneCount(s.content[s.lineStarts[left]:pos]) + 1
}

// Pos is a position in source file.
type Pos struct {
	src            *Source
	pos, line, col int
}

// NewPos creates position for byte offset pos of src.
func NewPos(src *Source, pos int) Pos {
	p := Pos{src: src, pos: pos}
	if src != nil {
		p.line, p.col = src.LineCol(pos)
	}
	return p
}

// Source returns source file or nil.
func (p Pos) Source() *Source {
	return p.src
}

// SourceName returns source name or empty string.
func (p Pos) SourceName() string {
	if p.src == nil {
		return ""
	}
	return p.src.name
}

// Pos returns byte offset.
func (p Pos) Pos() int {
	return p.pos
}

// Line returns line number or 0.
func (p Pos) Line() int {
	return p.line
}

// Col returns column number or 0.
func (p Pos) Col() int {
	return p.col
}

// Cursor tracks reading position in a single source.
type Cursor struct {
	src *Source
	pos int
}

// NewCursor creates cursor at the start of src.
func NewCursor(src *Source) *Cursor {
	return &Cursor{src: src}
}

// Source returns source being read.
func (c *Cursor) Source() *Source {
	return c.src
}

// Pos returns current byte offset.
func (c *Cursor) Pos() int {
	return c.pos
}

// SourcePos returns current position.
func (c *Cursor) SourcePos() Pos {
	return NewPos(c.src, c.pos)
}

// ContentPos returns the whole source content and current offset.
func (c *Cursor) ContentPos() ([]byte, int) {
	return c.src.content, c.pos
}

// Skip advances current position by size bytes, never beyond the end of source.
func (c *Cursor) Skip(size int) {
	if size <= 0 {
		return
	}

	c.pos += size
	if c.pos > c.src.Len() {
		c.pos = c.src.Len()
	}
}

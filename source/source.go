// Package source defines the immutable source buffer used by the parser
// and the position arithmetic used for error reporting.
package source

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// Source holds one script text and a precomputed table of line starts.
type Source struct {
	name       string
	content    string
	lineStarts []int
}

// New creates new Source. name may be empty.
func New(name, content string) *Source {
	lineCnt := strings.Count(content, "\n") + 1
	s := &Source{name: name, content: content, lineStarts: make([]int, 1, lineCnt)}
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			s.lineStarts = append(s.lineStarts, i+1)
		}
	}
	return s
}

func (s *Source) Name() string {
	return s.name
}

func (s *Source) Content() string {
	return s.content
}

func (s *Source) Len() int {
	return len(s.content)
}

// LineCol converts a byte offset to 1-based line and column numbers.
// Column counts runes, not bytes. Offsets outside the content are clamped.
func (s *Source) LineCol(pos int) (line, col int) {
	if pos < 0 {
		pos = 0
	} else if pos > len(s.content) {
		pos = len(s.content)
	}

	lineIndex := sort.Search(len(s.lineStarts), func(i int) bool {
		return s.lineStarts[i] > pos
	}) - 1
	lineStart := s.lineStarts[lineIndex]
	return lineIndex + 1, utf8.RuneCountInString(s.content[lineStart:pos]) + 1
}

// Pos is a resolved position within a Source, used to build errors.
type Pos struct {
	src       *Source
	pos       int
	line, col int
}

// NewPos resolves byte offset pos within s.
func NewPos(s *Source, pos int) Pos {
	line, col := s.LineCol(pos)
	return Pos{s, pos, line, col}
}

func (p Pos) Source() *Source {
	return p.src
}

func (p Pos) Pos() int {
	return p.pos
}

func (p Pos) Line() int {
	return p.line
}

func (p Pos) Col() int {
	return p.col
}

// Excerpt returns the source text from the position to the end of its line.
func (p Pos) Excerpt() string {
	rest := p.src.content[p.pos:]
	if i := strings.IndexByte(rest, '\n'); i >= 0 {
		rest = rest[:i]
	}
	return rest
}

// Package token defines the lexical token model shared by the lexer and
// parser: a columnar TokenList keyed by dense token index, plus the
// line-offset bookkeeping needed to translate a byte offset into a
// 1-based (line, column) pair.
package token

import "sort"

// Token is a single row of a List, materialized as a value for convenient
// handling. The lexer builds Token values and appends them with Push; the
// parser reads them back one at a time through At.
type Token struct {
	Start  uint32
	Length uint16
	Kind   Kind
	Flags  Flags
}

// List is the append-only columnar store of a lexed token stream. Every
// column has exactly one row per token, in lex order; the lexer is the
// sole writer and the parser the sole (read-only) downstream consumer.
type List struct {
	Starts  []uint32
	Lengths []uint16
	Kinds   []Kind
	Flags   []Flags
}

// NewList allocates a List with room for roughly n/4 tokens, the same
// heuristic the lexer's underlying buffer size suggests.
func NewList(sourceLen int) *List {
	capacity := sourceLen/4 + 1
	return &List{
		Starts:  make([]uint32, 0, capacity),
		Lengths: make([]uint16, 0, capacity),
		Kinds:   make([]Kind, 0, capacity),
		Flags:   make([]Flags, 0, capacity),
	}
}

// Push appends a token to the end of the list and returns its index.
func (l *List) Push(t Token) int {
	idx := len(l.Starts)
	l.Starts = append(l.Starts, t.Start)
	l.Lengths = append(l.Lengths, t.Length)
	l.Kinds = append(l.Kinds, t.Kind)
	l.Flags = append(l.Flags, t.Flags)
	return idx
}

// Len returns the number of tokens in the list.
func (l *List) Len() int {
	return len(l.Starts)
}

// At materializes the token at row i as a Token value.
func (l *List) At(i int) Token {
	return Token{
		Start:  l.Starts[i],
		Length: l.Lengths[i],
		Kind:   l.Kinds[i],
		Flags:  l.Flags[i],
	}
}

// Value returns the slice of src covered by the token at row i.
func (l *List) Value(src []byte, i int) string {
	start := l.Starts[i]
	return string(src[start : start+uint32(l.Lengths[i])])
}

// TokenValue returns the slice of src that t was lexed from.
func TokenValue(src []byte, t Token) string {
	return string(src[t.Start : t.Start+uint32(t.Length)])
}

// File names a source unit. LineStarts is an ordered sequence whose first
// entry is always 0 and to which each newline's following byte offset is
// appended; it supports O(log n) line/column lookup via LineCol.
type File struct {
	Name       string
	Source     []byte
	LineStarts []uint32
}

// NewFile wraps src as a named source unit with no line-start index built
// yet; the lexer populates LineStarts as it scans.
func NewFile(name string, src []byte) *File {
	return &File{Name: name, Source: src, LineStarts: []uint32{0}}
}

// LineCol resolves a byte offset to a 1-based (line, column) pair via an
// upper-bound search over LineStarts, mirroring the original lexer's
// get_line_col.
func (f *File) LineCol(offset uint32) (line, col int) {
	line = sort.Search(len(f.LineStarts), func(i int) bool {
		return f.LineStarts[i] > offset
	})
	return line, int(offset-f.LineStarts[line-1]) + 1
}

// TokenLineCol resolves the (line, column) of a token's first byte.
func (f *File) TokenLineCol(t Token) (line, col int) {
	return f.LineCol(t.Start)
}

// Line returns the source text of the given 1-based line number, with no
// trailing newline.
func (f *File) Line(lineNumber int) string {
	if lineNumber < 1 || lineNumber > len(f.LineStarts) {
		return ""
	}
	start := f.LineStarts[lineNumber-1]
	end := uint32(len(f.Source))
	if lineNumber < len(f.LineStarts) {
		end = f.LineStarts[lineNumber] - 1
	}
	for end > start && (f.Source[end-1] == '\n' || f.Source[end-1] == '\r') {
		end--
	}
	return string(f.Source[start:end])
}

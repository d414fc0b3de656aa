// Package lexer turns Yu source bytes into a token.List. The lexer never
// rejects malformed input; every lexical error becomes a flag bit on the
// offending token (see token.Flags), and the resulting stream always ends
// in token.END_OF_FILE.
package lexer

import (
	"github.com/yu-lang/yu/token"
)

// maxSourceLength bounds the lexer's contract: source buffers larger than
// this cannot be addressed by the 32-bit byte offsets used throughout the
// token and IR models.
const maxSourceLength = 1 << 32

// Lexer tokenizes a single source file. It borrows the source bytes and
// exclusively owns the token.List and the file's LineStarts index it
// builds up while scanning.
type Lexer struct {
	file *token.File
	src  []byte
	pos  uint32
}

// New creates a lexer over file's source. file.LineStarts is reset to its
// initial {0} state; the lexer appends to it as it discovers newlines.
func New(file *token.File) *Lexer {
	if len(file.Source) > maxSourceLength {
		panic("lexer: source exceeds 4GiB limit")
	}
	file.LineStarts = file.LineStarts[:0]
	file.LineStarts = append(file.LineStarts, 0)
	return &Lexer{file: file, src: file.Source}
}

// Tokenize scans the entire source and returns the resulting token.List,
// terminated by a single END_OF_FILE token. It always terminates and
// never returns an empty list.
func (l *Lexer) Tokenize() *token.List {
	list := token.NewList(len(l.src))
	for {
		tok := l.next()
		list.Push(tok)
		if tok.Kind == token.END_OF_FILE {
			return list
		}
		l.pos += uint32(tok.Length)
	}
}

func (l *Lexer) next() token.Token {
	unterminatedComment := l.skipWhitespaceAndComments()

	if l.pos >= uint32(len(l.src)) {
		flags := token.Flags(0)
		if unterminatedComment {
			flags |= token.UNTERMINATED_BLOCK_COMMENT
		}
		return token.Token{Start: l.pos, Length: 0, Kind: token.END_OF_FILE, Flags: flags}
	}

	c := l.src[l.pos]
	switch charClasses[c] {
	case classIdentStart:
		return l.lexIdentifier()
	case classDigit:
		return l.lexNumber()
	case classQuote:
		return l.lexString()
	default:
		kind := token.SingleCharKind(c)
		return token.Token{Start: l.pos, Length: 1, Kind: kind}
	}
}

// skipWhitespaceAndComments advances past whitespace, line comments, and
// block comments, recording each newline's following offset into
// l.file.LineStarts. It reports whether the source ended inside an
// unterminated block comment.
func (l *Lexer) skipWhitespaceAndComments() (unterminatedComment bool) {
	n := uint32(len(l.src))
	for l.pos < n {
		c := l.src[l.pos]
		if c == '\n' {
			l.file.LineStarts = append(l.file.LineStarts, l.pos+1)
		}

		switch {
		case charClasses[c] == classWhitespace:
			l.pos++
			continue

		case c == '/' && l.pos+1 < n && l.src[l.pos+1] == '/':
			l.pos += 2
			for l.pos < n && l.src[l.pos] != '\n' {
				l.pos++
			}
			continue

		case c == '/' && l.pos+1 < n && l.src[l.pos+1] == '*':
			l.pos += 2
			closed := false
			for l.pos < n {
				if l.src[l.pos] == '\n' {
					l.file.LineStarts = append(l.file.LineStarts, l.pos+1)
				}
				if l.src[l.pos] == '*' && l.pos+1 < n && l.src[l.pos+1] == '/' {
					l.pos += 2
					closed = true
					break
				}
				l.pos++
			}
			if !closed {
				return true
			}
			continue

		default:
			return false
		}
	}
	return false
}

func (l *Lexer) lexIdentifier() token.Token {
	start := l.pos
	n := uint32(len(l.src))
	var flags token.Flags

	first := l.src[start]
	validStart := first == '_' || first == '@' || isAlpha(first)
	if !validStart {
		flags |= token.INVALID_IDENTIFIER_START
	}

	pos := start
	if first == '@' {
		pos++
	}

	for pos < n {
		c := l.src[pos]
		if isAlnum(c) || c == '_' {
			pos++
			continue
		}
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' || isPunct(c) {
			break
		}
		flags |= token.INVALID_IDENTIFIER_CHAR
		pos++
	}

	length := pos - start
	text := string(l.src[start:pos])

	kind := token.IDENTIFIER
	if k, ok := token.LookupKeyword(text); ok {
		kind = k
	} else if first == '@' {
		kind = token.ANNOTATION
	}

	return token.Token{Start: start, Length: uint16(length), Kind: kind, Flags: flags}
}

func isPunct(c byte) bool {
	return charClasses[c] != classIdentStart && charClasses[c] != classDigit &&
		charClasses[c] != classWhitespace && c != 0
}

func (l *Lexer) lexNumber() token.Token {
	start := l.pos
	n := uint32(len(l.src))
	pos := start
	var flags token.Flags

	for pos < n && isDigit(l.src[pos]) {
		pos++
	}

	isHex, isBin := false, false
	if l.src[start] == '0' && pos < n {
		next := l.src[pos] | 0x20
		if next == 'x' {
			isHex = true
			pos++
		} else if next == 'b' {
			isBin = true
			pos++
		}
	}

	decimalPoints := 0
	for pos < n {
		c := l.src[pos]
		var valid bool
		switch {
		case isHex:
			valid = isHexDigit(c)
		case isBin:
			valid = isBinDigit(c)
		default:
			valid = isDigit(c) || c == '.'
		}
		if !valid {
			break
		}
		if c == '.' {
			decimalPoints++
			if decimalPoints > 1 {
				flags |= token.MULTIPLE_DECIMAL_POINTS
			}
		}
		pos++
	}

	if pos < n && (l.src[pos]|0x20) == 'e' {
		pos++
		if pos < n && (l.src[pos] == '+' || l.src[pos] == '-') {
			pos++
		}
		if pos < n && isDigit(l.src[pos]) {
			for pos < n && isDigit(l.src[pos]) {
				pos++
			}
		} else {
			flags |= token.INVALID_EXPONENT
		}
	}

	return token.Token{Start: start, Length: uint16(pos - start), Kind: token.NUM_LITERAL, Flags: flags}
}

func (l *Lexer) lexString() token.Token {
	start := l.pos
	n := uint32(len(l.src))
	pos := start + 1
	var flags token.Flags
	closed := false

	for pos < n {
		c := l.src[pos]
		if c == '"' {
			pos++
			closed = true
			break
		}
		if c == '\\' {
			if pos+1 >= n {
				pos++
				break
			}
			esc := l.src[pos+1]
			if !validEscapes[esc] {
				flags |= token.INVALID_ESCAPE_SEQUENCE
				pos += 2
				continue
			}
			if esc == 'x' {
				pos += 4 // backslash, 'x', two hex digits
			} else {
				pos += 2
			}
			continue
		}
		pos++
	}

	if !closed {
		flags |= token.UNTERMINATED_STRING
	}

	return token.Token{Start: start, Length: uint16(pos - start), Kind: token.STR_LITERAL, Flags: flags}
}

package lexer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yu-lang/yu/lexer"
	"github.com/yu-lang/yu/token"
)

func tokenize(t *testing.T, src string) (*token.File, *token.List) {
	t.Helper()
	file := token.NewFile("test.yu", []byte(src))
	list := lexer.New(file).Tokenize()
	return file, list
}

func kinds(list *token.List) []token.Kind {
	out := make([]token.Kind, list.Len())
	for i := range out {
		out[i] = list.At(i).Kind
	}
	return out
}

// S1: nested generics must tokenize as two separate GREATER tokens, never
// a fused shift token (spec open question 2).
func TestNestedGenericsEmitTwoGreaterTokens(t *testing.T) {
	_, list := tokenize(t, "Box<List<i32>>")
	ks := kinds(list)
	require.Equal(t, []token.Kind{
		token.IDENTIFIER, token.LESS,
		token.IDENTIFIER, token.LESS,
		token.I32,
		token.GREATER, token.GREATER,
		token.END_OF_FILE,
	}, ks)
}

func TestNumberLiterals(t *testing.T) {
	cases := []struct {
		src   string
		flags token.Flags
	}{
		{"123", 0},
		{"0x1F", 0},
		{"0b101", 0},
		{"3.14", 0},
		{"1.2.3", token.MULTIPLE_DECIMAL_POINTS},
		{"1e10", 0},
		{"1e", token.INVALID_EXPONENT},
		{"1e+", token.INVALID_EXPONENT},
	}
	for _, c := range cases {
		_, list := tokenize(t, c.src)
		require.Equal(t, token.NUM_LITERAL, list.At(0).Kind, c.src)
		require.Equal(t, c.flags, list.At(0).Flags, c.src)
	}
}

// S3: malformed strings must be flagged, never dropped or panicked on.
func TestStringLiteralErrorFlags(t *testing.T) {
	src, _ := tokenize(t, `"ok"`)
	_ = src
	_, list := tokenize(t, `"ok"`)
	require.Equal(t, token.Flags(0), list.At(0).Flags)

	_, list = tokenize(t, `"unterminated`)
	require.True(t, list.At(0).Flags.Has(token.UNTERMINATED_STRING))

	_, list = tokenize(t, `"bad \q escape"`)
	require.True(t, list.At(0).Flags.Has(token.INVALID_ESCAPE_SEQUENCE))
}

func TestIdentifierAndKeyword(t *testing.T) {
	_, list := tokenize(t, "var x function")
	require.Equal(t, []token.Kind{token.VAR, token.IDENTIFIER, token.FUNCTION, token.END_OF_FILE}, kinds(list))
}

func TestAnnotationToken(t *testing.T) {
	_, list := tokenize(t, "@pure")
	require.Equal(t, token.PURE_ANNOT, list.At(0).Kind)
}

func TestLineCommentIsInvisible(t *testing.T) {
	_, list := tokenize(t, "var x // a comment\nvar y")
	require.Equal(t, []token.Kind{token.VAR, token.IDENTIFIER, token.VAR, token.IDENTIFIER, token.END_OF_FILE}, kinds(list))
}

func TestUnterminatedBlockComment(t *testing.T) {
	_, list := tokenize(t, "var x /* never closed")
	last := list.At(list.Len() - 1)
	require.Equal(t, token.END_OF_FILE, last.Kind)
	require.True(t, last.Flags.Has(token.UNTERMINATED_BLOCK_COMMENT))
}

// Universal invariant: the lexer is total — it always reaches EOF and
// never panics on malformed input.
func TestLexerTotality(t *testing.T) {
	inputs := []string{"", "   ", "\n\n\n", "@@@", "\"", "0x", "1.", "/*"}
	for _, in := range inputs {
		require.NotPanics(t, func() {
			tokenize(t, in)
		}, in)
	}
}

// Universal invariant: token [Start, Start+Length) ranges appear in source
// order without overlapping, every byte between two consecutive tokens is
// whitespace, and the END_OF_FILE token sits at the end of the source.
func TestTokenRangesLeaveOnlyWhitespaceBetweenTokens(t *testing.T) {
	src := "var x = 1 + 2 * foo(bar);\n"
	_, list := tokenize(t, src)
	var cursor uint32
	for i := 0; i < list.Len(); i++ {
		tok := list.At(i)
		require.GreaterOrEqual(t, tok.Start, cursor, "token %d overlaps the previous token", i)
		require.Empty(t, strings.TrimSpace(src[cursor:tok.Start]), "token %d is preceded by non-whitespace bytes", i)
		cursor = tok.Start + uint32(tok.Length)
	}
	require.Equal(t, uint32(len(src)), cursor)
}

// Universal invariant: line/column numbers are monotonically
// non-decreasing in lex order.
func TestLineColMonotonic(t *testing.T) {
	file, list := tokenize(t, "var x = 1;\nvar y = 2;\nvar z = 3;")
	prevLine, prevCol := 0, 0
	for i := 0; i < list.Len(); i++ {
		line, col := file.TokenLineCol(list.At(i))
		if line == prevLine {
			require.GreaterOrEqual(t, col, prevCol)
		} else {
			require.Greater(t, line, prevLine)
		}
		prevLine, prevCol = line, col
	}
}

func TestOperatorsAndDelimiters(t *testing.T) {
	_, list := tokenize(t, "(a+b)-c*d/e%f")
	require.Equal(t, []token.Kind{
		token.LEFT_PAREN, token.IDENTIFIER, token.PLUS, token.IDENTIFIER, token.RIGHT_PAREN,
		token.MINUS, token.IDENTIFIER, token.STAR, token.IDENTIFIER, token.SLASH,
		token.IDENTIFIER, token.PERCENT, token.IDENTIFIER, token.END_OF_FILE,
	}, kinds(list))
}

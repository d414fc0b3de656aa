package token_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yu-lang/yu/token"
)

func TestListRoundTrip(t *testing.T) {
	src := []byte("var x = 1;")
	list := token.NewList(len(src))

	list.Push(token.Token{Start: 0, Length: 3, Kind: token.VAR})
	list.Push(token.Token{Start: 4, Length: 1, Kind: token.IDENTIFIER})

	require.Equal(t, 2, list.Len())
	require.Equal(t, "var", list.Value(src, 0))
	require.Equal(t, "x", list.Value(src, 1))
	require.Equal(t, token.VAR, list.At(0).Kind)
}

func TestKindString(t *testing.T) {
	require.Equal(t, "LEFT_PAREN", token.LEFT_PAREN.String())
	require.Equal(t, "NUM_LITERAL", token.NUM_LITERAL.String())
	require.Equal(t, "EOF", token.END_OF_FILE.String())
}

func TestLookupKeywordNewDeleteAreDistinct(t *testing.T) {
	newKind, ok := token.LookupKeyword("new")
	require.True(t, ok)
	deleteKind, ok := token.LookupKeyword("delete")
	require.True(t, ok)
	require.NotEqual(t, newKind, deleteKind, "new and delete must not collide (spec open question 1)")
}

func TestFileLineCol(t *testing.T) {
	f := token.NewFile("test.yu", []byte("var x = 1;\nvar y = 2;\n"))
	f.LineStarts = append(f.LineStarts, 11)

	line, col := f.LineCol(0)
	require.Equal(t, 1, line)
	require.Equal(t, 1, col)

	line, col = f.LineCol(11)
	require.Equal(t, 2, line)
	require.Equal(t, 1, col)

	require.Equal(t, "var x = 1;", f.Line(1))
	require.Equal(t, "var y = 2;", f.Line(2))
}

func TestFlagsString(t *testing.T) {
	require.Equal(t, "NONE", token.Flags(0).String())
	f := token.UNTERMINATED_STRING | token.INVALID_ESCAPE_SEQUENCE
	require.Equal(t, "UNTERMINATED_STRING|INVALID_ESCAPE_SEQUENCE", f.String())
}

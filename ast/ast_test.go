package ast_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yu-lang/yu/ast"
	"github.com/yu-lang/yu/token"
)

func TestExprListAddBinary(t *testing.T) {
	e := ast.NewExprList()
	left := e.AddLiteral(1, 1, token.NUM_LITERAL, "1")
	right := e.AddLiteral(1, 5, token.NUM_LITERAL, "2")
	sum := e.AddBinary(1, 3, left, token.PLUS, right)

	require.Equal(t, ast.ExprBinary, e.Kinds[sum])
	require.Equal(t, left, e.LeftExpr[sum])
	require.Equal(t, right, e.RightExpr[sum])
	require.Equal(t, token.PLUS, e.Operator[sum])
}

func TestExprListAddCallRoundTrip(t *testing.T) {
	e := ast.NewExprList()
	callee := e.AddVariable(1, 1, "foo", 0)
	a1 := e.AddLiteral(1, 5, token.NUM_LITERAL, "1")
	a2 := e.AddLiteral(1, 8, token.NUM_LITERAL, "2")
	call := e.AddCall(1, 1, callee, []uint32{a1, a2})

	require.Equal(t, []uint32{a1, a2}, e.CallArgs(call))
}

func TestStmtListBlockRoundTrip(t *testing.T) {
	s := ast.NewStmtList()
	ret := s.AddReturn(2, 1, 0, false)
	block := s.AddBlock(1, 1, []uint32{ret}, 1)

	require.Equal(t, []uint32{ret}, s.BlockStatements(block))
	require.Equal(t, 1, s.ScopeLevel[block])
}

func TestStmtListSwitchCases(t *testing.T) {
	s := ast.NewStmtList()
	body1 := s.AddBreak(2, 1)
	body2 := s.AddBreak(3, 1)
	sw := s.AddSwitch(1, 1, 0, []uint32{10, 20}, []uint32{body1, body2}, 0, false)

	values, bodies := s.SwitchCases(sw)
	require.Equal(t, []uint32{10, 20}, values)
	require.Equal(t, []uint32{body1, body2}, bodies)
	require.False(t, s.SwitchHasDefault[sw])
}

func TestSymbolListLookupPrefersInnermostScope(t *testing.T) {
	syms := ast.NewSymbolList()
	syms.Add("x", 0, 0, 0)
	inner := syms.Add("x", 0, 1, 0)

	idx, ok := syms.Lookup("x", 1)
	require.True(t, ok)
	require.Equal(t, inner, idx)
}

func TestSymbolListLookupRespectsScopeCeiling(t *testing.T) {
	syms := ast.NewSymbolList()
	outer := syms.Add("x", 0, 0, 0)
	syms.Add("x", 0, 2, 0)

	idx, ok := syms.Lookup("x", 1)
	require.True(t, ok)
	require.Equal(t, outer, idx)
}

func TestTypeListFunctionParams(t *testing.T) {
	types := ast.NewTypeList()
	p1 := types.AddPrimitive("i32")
	p2 := types.AddPrimitive("i32")
	ret := types.AddPrimitive("i32")
	fn := types.AddFunction([]uint32{p1, p2}, ret)

	require.Equal(t, []uint32{p1, p2}, types.FunctionParams(fn))
	require.Equal(t, ret, types.FuncReturnType[fn])
}

func TestASTSetRoot(t *testing.T) {
	a := ast.New()
	decl := a.Statements.AddVarDecl(1, 1, "x", 0, 0, 0, false)
	a.SetRoot([]uint32{decl})

	require.Equal(t, []uint32{decl}, a.Statements.BlockStatements(a.RootStmt))
}

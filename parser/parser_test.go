package parser_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yu-lang/yu/ast"
	"github.com/yu-lang/yu/diag"
	"github.com/yu-lang/yu/lexer"
	"github.com/yu-lang/yu/parser"
	"github.com/yu-lang/yu/token"
)

func parse(t *testing.T, src string) (*ast.AST, *diag.Collector) {
	t.Helper()
	file := token.NewFile("test.yu", []byte(src))
	tokens := lexer.New(file).Tokenize()
	sink := diag.NewCollector()
	tree := parser.New(file, tokens, sink).Parse()
	return tree, sink
}

func TestParseVariableDeclInfersType(t *testing.T) {
	tree, sink := parse(t, `var x = 42;`)
	require.False(t, sink.HasErrors())
	// The declaration is statement 0; the synthetic root block holds it.
	require.Equal(t, []uint32{0}, tree.Statements.BlockStatements(tree.RootStmt))
	require.Equal(t, ast.StmtVarDecl, tree.Statements.Kinds[0])
	require.Equal(t, "x", tree.Statements.VarName[0])

	typeIdx := tree.Statements.VarTypeIndex[0]
	require.Equal(t, "I32", tree.Types.Names[typeIdx])
}

func TestParseVariableDeclInfersStringType(t *testing.T) {
	tree, sink := parse(t, `var s = "hi";`)
	require.False(t, sink.HasErrors())
	typeIdx := tree.Statements.VarTypeIndex[0]
	require.Equal(t, "STRING", tree.Types.Names[typeIdx])
}

func TestParseBinaryExpressionPrecedence(t *testing.T) {
	tree, sink := parse(t, `var x = 1 + 2 * 3;`)
	require.False(t, sink.HasErrors())

	initExpr := tree.Statements.VarInitializer[0]
	require.Equal(t, ast.ExprBinary, tree.Expressions.Kinds[initExpr])
	require.Equal(t, token.PLUS, tree.Expressions.Operator[initExpr])

	right := tree.Expressions.RightExpr[initExpr]
	require.Equal(t, ast.ExprBinary, tree.Expressions.Kinds[right])
	require.Equal(t, token.STAR, tree.Expressions.Operator[right])
}

func TestParseFunctionDecl(t *testing.T) {
	tree, sink := parse(t, `
function add(a: i32, b: i32) -> i32 {
	return a + b;
}
`)
	require.False(t, sink.HasErrors())

	root := tree.Statements.BlockStatements(tree.RootStmt)
	require.Len(t, root, 1)
	fn := root[0]
	require.Equal(t, ast.StmtFunctionDecl, tree.Statements.Kinds[fn])
	require.Equal(t, "add", tree.Statements.FuncName[fn])
	require.Len(t, tree.Statements.FunctionParams(fn), 2)
}

func TestParseNestedGenericType(t *testing.T) {
	tree, sink := parse(t, `var y = 1; var x: Box<List<i32>> = y;`)
	require.False(t, sink.HasErrors())
	typeIdx := tree.Statements.VarTypeIndex[1]
	require.Equal(t, "Box", tree.Types.Names[typeIdx])
}

func TestParseIfElse(t *testing.T) {
	tree, sink := parse(t, `
function f() -> i32 {
	if 1 {
		return 1;
	} else {
		return 0;
	}
}
`)
	require.False(t, sink.HasErrors())
	root := tree.Statements.BlockStatements(tree.RootStmt)
	require.Equal(t, ast.StmtFunctionDecl, tree.Statements.Kinds[root[0]])
}

func TestParseClassDecl(t *testing.T) {
	tree, sink := parse(t, `
class Point {
	public var x = 0;
	public var y = 0;
}
`)
	require.False(t, sink.HasErrors())
	root := tree.Statements.BlockStatements(tree.RootStmt)
	require.Equal(t, ast.StmtClassDecl, tree.Statements.Kinds[root[0]])
	require.Len(t, tree.Statements.ClassMemberStmts(root[0]), 2)
}

func TestParseEnumDecl(t *testing.T) {
	tree, sink := parse(t, `enum Color { Red, Green, Blue };`)
	require.False(t, sink.HasErrors())
	root := tree.Statements.BlockStatements(tree.RootStmt)
	require.Equal(t, ast.StmtEnumDecl, tree.Statements.Kinds[root[0]])
}

func TestParseImportWithAlias(t *testing.T) {
	tree, sink := parse(t, `from collections import List as L;`)
	require.False(t, sink.HasErrors())
	root := tree.Statements.BlockStatements(tree.RootStmt)
	require.Equal(t, ast.StmtImport, tree.Statements.Kinds[root[0]])
	require.Equal(t, "L", tree.Statements.ImportAs[root[0]])
}

func TestParseSwitchWithDefault(t *testing.T) {
	_, sink := parse(t, `
function f(x: i32) -> i32 {
	switch (x) {
	case 1:
		return 1;
	default:
		return 0;
	}
}
`)
	require.False(t, sink.HasErrors())
}

func TestParseTryCatch(t *testing.T) {
	_, sink := parse(t, `
function f() -> i32 {
	try {
		return 1;
	} catch (e) {
		return 0;
	}
}
`)
	require.False(t, sink.HasErrors())
}

// Error protocol: an unresolved symbol reports a diagnostic but parsing
// continues to the end of the file instead of aborting.
func TestUndefinedSymbolReportsButContinues(t *testing.T) {
	tree, sink := parse(t, `
var x = undefined_name;
var y = 2;
`)
	require.True(t, sink.HasErrors())
	root := tree.Statements.BlockStatements(tree.RootStmt)
	require.Len(t, root, 2)
}

func TestParseBitwiseNotAndAddressOfUnary(t *testing.T) {
	tree, sink := parse(t, `var x = 1; var y = ~x; var z = &x;`)
	require.False(t, sink.HasErrors())

	yInit := tree.Statements.VarInitializer[1]
	require.Equal(t, ast.ExprUnary, tree.Expressions.Kinds[yInit])
	require.Equal(t, token.TILDE, tree.Expressions.UnaryOperator[yInit])

	zInit := tree.Statements.VarInitializer[2]
	require.Equal(t, ast.ExprUnary, tree.Expressions.Kinds[zInit])
	require.Equal(t, token.AND, tree.Expressions.UnaryOperator[zInit])
}

func TestParseMemberAndIndexExpressions(t *testing.T) {
	tree, sink := parse(t, `
function f(obj: i32) -> i32 {
	return obj.field[0];
}
`)
	require.False(t, sink.HasErrors())
	root := tree.Statements.BlockStatements(tree.RootStmt)
	fn := root[0]
	body := tree.Statements.FuncBody[fn]
	stmts := tree.Statements.BlockStatements(body)
	retExpr := tree.Statements.ReturnValue[stmts[0]]

	require.Equal(t, ast.ExprIndex, tree.Expressions.Kinds[retExpr])
	memberExpr := tree.Expressions.IndexObject[retExpr]
	require.Equal(t, ast.ExprMember, tree.Expressions.Kinds[memberExpr])
	require.Equal(t, "field", tree.Expressions.MemberName[memberExpr])
}

func TestParseAnnotationAttachesToDeclaration(t *testing.T) {
	tree, sink := parse(t, `
@pure function f() -> i32 {
	return 1;
}
`)
	require.False(t, sink.HasErrors())
	root := tree.Statements.BlockStatements(tree.RootStmt)
	fn := root[0]
	require.Equal(t, ast.StmtFunctionDecl, tree.Statements.Kinds[fn])
	require.NotZero(t, tree.Statements.Annotations[fn]&ast.AnnotPure)
}

func TestParseAsyncFunctionAndAwaitExpression(t *testing.T) {
	tree, sink := parse(t, `
var g = 1;
async function f() -> i32 {
	return await g;
}
`)
	require.False(t, sink.HasErrors())
	root := tree.Statements.BlockStatements(tree.RootStmt)
	fn := root[1]
	require.Equal(t, ast.StmtFunctionDecl, tree.Statements.Kinds[fn])
	require.NotZero(t, tree.Statements.Flags[fn]&ast.StmtIsAsync)

	body := tree.Statements.FuncBody[fn]
	stmts := tree.Statements.BlockStatements(body)
	retExpr := tree.Statements.ReturnValue[stmts[0]]
	require.Equal(t, ast.ExprUnary, tree.Expressions.Kinds[retExpr])
	require.Equal(t, token.AWAIT, tree.Expressions.UnaryOperator[retExpr])
}

func TestSyntaxErrorRecoversAtNextStatement(t *testing.T) {
	tree, sink := parse(t, `
var x = ;
var y = 2;
`)
	require.True(t, sink.HasErrors())
	root := tree.Statements.BlockStatements(tree.RootStmt)
	require.GreaterOrEqual(t, len(root), 1)
	last := root[len(root)-1]
	require.Equal(t, "y", tree.Statements.VarName[last])
}

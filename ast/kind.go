// Package ast holds the columnar abstract syntax tree: expressions and
// statements are stored as struct-of-arrays tables indexed by dense
// uint32 node indices, the same layout the token and IR models use,
// rather than as a tree of heap-allocated node pointers.
package ast

// ExprKind tags the row format of an ExprList entry.
type ExprKind uint8

const (
	ExprLiteral ExprKind = iota
	ExprBinary
	ExprUnary
	ExprGrouping
	ExprVariable
	ExprCall
	ExprAssign
	ExprMember
	ExprIndex
)

// StmtKind tags the row format of a StmtList entry. The original grammar
// covered if/while/for/block/var-decl/return/expression-statement/function;
// class, enum, import, switch, and the async/await/try/catch family are
// additions carried over from the broader Yu language surface that the
// distilled grammar omitted.
type StmtKind uint8

const (
	StmtIf StmtKind = iota
	StmtWhile
	StmtFor
	StmtBlock
	StmtVarDecl
	StmtReturn
	StmtExpression
	StmtFunctionDecl
	StmtClassDecl
	StmtEnumDecl
	StmtImport
	StmtSwitch
	StmtBreak
	StmtContinue
	StmtTry
)

// ExprFlags annotates static properties of an expression node discovered
// during parsing or type checking.
type ExprFlags uint8

const (
	ExprConstant ExprFlags = 1 << iota
	ExprPure
	ExprEvaluated
	ExprHasSideEffects
	ExprVariadic
)

// StmtFlags annotates declaration-level modifiers.
type StmtFlags uint8

const (
	StmtIsConst StmtFlags = 1 << iota
	StmtIsPublic
	StmtIsStatic
	StmtIsAsync
	StmtIsFinal
)

// Visibility is the access modifier on a class member or declaration.
type Visibility uint8

const (
	VisibilityDefault Visibility = iota
	VisibilityPublic
	VisibilityPrivate
	VisibilityProtected
)

// SymbolFlags annotates entries in a SymbolList.
type SymbolFlags uint8

const (
	SymbolIsType SymbolFlags = 1 << iota
	SymbolIsConst
	SymbolIsFunction
	SymbolIsGenericParam
	SymbolIsVariadic
	SymbolHasVariadicGeneric
	SymbolIsEnum
	SymbolIsEnumMember
)

// Annotations is a bitset of the `@`-prefixed declaration annotations
// attached to the statement immediately following them.
type Annotations uint8

const (
	AnnotAlign Annotations = 1 << iota
	AnnotDeprecated
	AnnotPacked
	AnnotNoDiscard
	AnnotVolatile
	AnnotLazy
	AnnotPure
	AnnotTailRec
)

package ast

import "github.com/yu-lang/yu/token"

// ExprList is the columnar store of every expression node in a single
// compilation unit. Row i's meaning is determined by Kinds[i]; only the
// columns relevant to that kind are populated for row i, following the
// original expressions table's layout.
type ExprList struct {
	Kinds   []ExprKind
	Lines   []int
	Columns []int
	Flags   []ExprFlags

	// Populated for ExprBinary and ExprAssign.
	LeftExpr  []uint32
	RightExpr []uint32
	Operator  []token.Kind

	// Populated for ExprUnary.
	Operand       []uint32
	UnaryOperator []token.Kind

	// Populated for ExprGrouping.
	Inner []uint32

	// Populated for ExprLiteral.
	LiteralValue []string
	LiteralKind  []token.Kind

	// Populated for ExprVariable.
	VarName     []string
	SymbolIndex []uint32

	// Populated for ExprCall: the callee expression plus a run of
	// argument expression indices in a single flat slice, sliced by
	// [ArgStart, ArgStart+ArgCount).
	Callee   []uint32
	ArgStart []uint32
	ArgCount []uint32
	Args     []uint32

	// Populated for ExprMember (obj.field).
	MemberObject []uint32
	MemberName   []string

	// Populated for ExprIndex (obj[index]).
	IndexObject []uint32
	IndexExpr   []uint32
}

// NewExprList returns an empty ExprList.
func NewExprList() *ExprList {
	return &ExprList{}
}

// Len returns the number of expression nodes.
func (e *ExprList) Len() int {
	return len(e.Kinds)
}

func (e *ExprList) push(kind ExprKind, line, col int) uint32 {
	idx := uint32(len(e.Kinds))
	e.Kinds = append(e.Kinds, kind)
	e.Lines = append(e.Lines, line)
	e.Columns = append(e.Columns, col)
	e.Flags = append(e.Flags, 0)

	e.LeftExpr = append(e.LeftExpr, 0)
	e.RightExpr = append(e.RightExpr, 0)
	e.Operator = append(e.Operator, 0)
	e.Operand = append(e.Operand, 0)
	e.UnaryOperator = append(e.UnaryOperator, 0)
	e.Inner = append(e.Inner, 0)
	e.LiteralValue = append(e.LiteralValue, "")
	e.LiteralKind = append(e.LiteralKind, 0)
	e.VarName = append(e.VarName, "")
	e.SymbolIndex = append(e.SymbolIndex, 0)
	e.Callee = append(e.Callee, 0)
	e.ArgStart = append(e.ArgStart, 0)
	e.ArgCount = append(e.ArgCount, 0)
	e.MemberObject = append(e.MemberObject, 0)
	e.MemberName = append(e.MemberName, "")
	e.IndexObject = append(e.IndexObject, 0)
	e.IndexExpr = append(e.IndexExpr, 0)

	return idx
}

// AddBinary appends a binary expression node and returns its index.
func (e *ExprList) AddBinary(line, col int, left uint32, op token.Kind, right uint32) uint32 {
	idx := e.push(ExprBinary, line, col)
	e.LeftExpr[idx] = left
	e.Operator[idx] = op
	e.RightExpr[idx] = right
	return idx
}

// AddUnary appends a unary expression node and returns its index.
func (e *ExprList) AddUnary(line, col int, op token.Kind, operand uint32) uint32 {
	idx := e.push(ExprUnary, line, col)
	e.UnaryOperator[idx] = op
	e.Operand[idx] = operand
	return idx
}

// AddGrouping appends a parenthesized expression node.
func (e *ExprList) AddGrouping(line, col int, inner uint32) uint32 {
	idx := e.push(ExprGrouping, line, col)
	e.Inner[idx] = inner
	return idx
}

// AddLiteral appends a literal expression node carrying its raw source
// text and the token kind it was lexed as.
func (e *ExprList) AddLiteral(line, col int, kind token.Kind, value string) uint32 {
	idx := e.push(ExprLiteral, line, col)
	e.LiteralKind[idx] = kind
	e.LiteralValue[idx] = value
	e.Flags[idx] |= ExprConstant | ExprPure
	return idx
}

// AddVariable appends a variable reference expression node, resolved to
// symbolIndex in the enclosing SymbolList.
func (e *ExprList) AddVariable(line, col int, name string, symbolIndex uint32) uint32 {
	idx := e.push(ExprVariable, line, col)
	e.VarName[idx] = name
	e.SymbolIndex[idx] = symbolIndex
	return idx
}

// AddCall appends a function-call expression node over the given callee
// and argument expression indices.
func (e *ExprList) AddCall(line, col int, callee uint32, args []uint32) uint32 {
	idx := e.push(ExprCall, line, col)
	e.Callee[idx] = callee
	e.ArgStart[idx] = uint32(len(e.Args))
	e.ArgCount[idx] = uint32(len(args))
	e.Args = append(e.Args, args...)
	return idx
}

// AddAssign appends an assignment expression node.
func (e *ExprList) AddAssign(line, col int, target uint32, value uint32) uint32 {
	idx := e.push(ExprAssign, line, col)
	e.LeftExpr[idx] = target
	e.RightExpr[idx] = value
	return idx
}

// AddMember appends a member-access expression node (obj.field).
func (e *ExprList) AddMember(line, col int, object uint32, name string) uint32 {
	idx := e.push(ExprMember, line, col)
	e.MemberObject[idx] = object
	e.MemberName[idx] = name
	return idx
}

// AddIndex appends an indexing expression node (obj[index]).
func (e *ExprList) AddIndex(line, col int, object, index uint32) uint32 {
	idx := e.push(ExprIndex, line, col)
	e.IndexObject[idx] = object
	e.IndexExpr[idx] = index
	return idx
}

// CallArgs returns the argument expression indices of the call at idx.
func (e *ExprList) CallArgs(idx uint32) []uint32 {
	start := e.ArgStart[idx]
	count := e.ArgCount[idx]
	return e.Args[start : start+count]
}

package ast

// AST is the complete parsed representation of a compilation unit: its
// expressions, statements, types, and symbols, plus the index of the
// synthetic root block statement that contains every top-level
// declaration.
type AST struct {
	Expressions ExprList
	Statements  StmtList
	Types       TypeList
	Symbols     SymbolList
	RootStmt    uint32
}

// New returns an empty AST with its tables initialized.
func New() *AST {
	return &AST{
		Expressions: *NewExprList(),
		Statements:  *NewStmtList(),
		Types:       *NewTypeList(),
		Symbols:     *NewSymbolList(),
	}
}

// SetRoot records stmts as the top-level statements of the unit, wrapping
// them in a synthetic block at scope 0, and records its index as RootStmt.
func (a *AST) SetRoot(stmts []uint32) {
	a.RootStmt = a.Statements.AddBlock(1, 1, stmts, 0)
}

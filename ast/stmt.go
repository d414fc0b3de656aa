package ast

// StmtList is the columnar store of every statement node in a single
// compilation unit, analogous to ExprList. Row i's meaning is determined
// by Kinds[i].
type StmtList struct {
	Kinds       []StmtKind
	Lines       []int
	Columns     []int
	Flags       []StmtFlags
	Annotations []Annotations

	// Populated for StmtIf.
	Condition []uint32
	Then      []uint32
	Else      []uint32 // 0 with HasElse[i]==false when absent
	HasElse   []bool

	// Populated for StmtWhile and the condition arm of StmtFor.
	LoopCondition []uint32
	LoopBody      []uint32

	// Populated for StmtFor (C-style init;condition;post).
	ForInit []uint32
	ForPost []uint32

	// Populated for StmtBlock: a flat run of statement indices.
	BlockStart  []uint32
	BlockCount  []uint32
	BlockStmts  []uint32
	ScopeLevel  []int

	// Populated for StmtVarDecl.
	VarName        []string
	VarTypeIndex   []uint32
	VarInitializer []uint32
	VarSymbolIndex []uint32

	// Populated for StmtReturn: 0 with HasValue[i]==false when bare.
	ReturnValue []uint32
	HasValue    []bool

	// Populated for StmtFunctionDecl.
	FuncName        []string
	FuncTypeIndex   []uint32
	FuncBody        []uint32
	FuncParamStart  []uint32
	FuncParamCount  []uint32
	FuncParams      []uint32
	FuncVisibility  []Visibility

	// Populated for StmtClassDecl.
	ClassName       []string
	ClassMemberStart []uint32
	ClassMemberCount []uint32
	ClassMembers     []uint32
	ClassVisibility  []Visibility

	// Populated for StmtEnumDecl: a run of member-name/value-expr pairs.
	EnumName        []string
	EnumMemberStart []uint32
	EnumMemberCount []uint32
	EnumMemberNames []string
	EnumMemberValue []uint32 // expr index, or 0 with no initializer

	// Populated for StmtImport.
	ImportPath []string
	ImportFrom []string // non-empty for "from X import Y as Z"
	ImportAs   []string

	// Populated for StmtSwitch: a run of (caseValue, caseBody) pairs;
	// DefaultBody is 0 with HasDefault[i]==false when absent.
	SwitchSubject  []uint32
	SwitchCaseStart []uint32
	SwitchCaseCount []uint32
	SwitchCaseValue []uint32
	SwitchCaseBody  []uint32
	SwitchDefault   []uint32
	SwitchHasDefault []bool

	// Populated for StmtTry.
	TryBody        []uint32
	CatchParamName []string
	CatchBody      []uint32
	HasCatch       []bool
}

// NewStmtList returns an empty StmtList.
func NewStmtList() *StmtList {
	return &StmtList{}
}

// Len returns the number of statement nodes.
func (s *StmtList) Len() int {
	return len(s.Kinds)
}

func (s *StmtList) push(kind StmtKind, line, col int) uint32 {
	idx := uint32(len(s.Kinds))
	s.Kinds = append(s.Kinds, kind)
	s.Lines = append(s.Lines, line)
	s.Columns = append(s.Columns, col)
	s.Flags = append(s.Flags, 0)
	s.Annotations = append(s.Annotations, 0)

	s.Condition = append(s.Condition, 0)
	s.Then = append(s.Then, 0)
	s.Else = append(s.Else, 0)
	s.HasElse = append(s.HasElse, false)
	s.LoopCondition = append(s.LoopCondition, 0)
	s.LoopBody = append(s.LoopBody, 0)
	s.ForInit = append(s.ForInit, 0)
	s.ForPost = append(s.ForPost, 0)
	s.BlockStart = append(s.BlockStart, 0)
	s.BlockCount = append(s.BlockCount, 0)
	s.ScopeLevel = append(s.ScopeLevel, 0)
	s.VarName = append(s.VarName, "")
	s.VarTypeIndex = append(s.VarTypeIndex, 0)
	s.VarInitializer = append(s.VarInitializer, 0)
	s.VarSymbolIndex = append(s.VarSymbolIndex, 0)
	s.ReturnValue = append(s.ReturnValue, 0)
	s.HasValue = append(s.HasValue, false)
	s.FuncName = append(s.FuncName, "")
	s.FuncTypeIndex = append(s.FuncTypeIndex, 0)
	s.FuncBody = append(s.FuncBody, 0)
	s.FuncParamStart = append(s.FuncParamStart, 0)
	s.FuncParamCount = append(s.FuncParamCount, 0)
	s.FuncVisibility = append(s.FuncVisibility, VisibilityDefault)
	s.ClassName = append(s.ClassName, "")
	s.ClassMemberStart = append(s.ClassMemberStart, 0)
	s.ClassMemberCount = append(s.ClassMemberCount, 0)
	s.ClassVisibility = append(s.ClassVisibility, VisibilityDefault)
	s.EnumName = append(s.EnumName, "")
	s.EnumMemberStart = append(s.EnumMemberStart, 0)
	s.EnumMemberCount = append(s.EnumMemberCount, 0)
	s.ImportPath = append(s.ImportPath, "")
	s.ImportFrom = append(s.ImportFrom, "")
	s.ImportAs = append(s.ImportAs, "")
	s.SwitchSubject = append(s.SwitchSubject, 0)
	s.SwitchCaseStart = append(s.SwitchCaseStart, 0)
	s.SwitchCaseCount = append(s.SwitchCaseCount, 0)
	s.SwitchDefault = append(s.SwitchDefault, 0)
	s.SwitchHasDefault = append(s.SwitchHasDefault, false)
	s.TryBody = append(s.TryBody, 0)
	s.CatchParamName = append(s.CatchParamName, "")
	s.CatchBody = append(s.CatchBody, 0)
	s.HasCatch = append(s.HasCatch, false)

	return idx
}

// AddIf appends an if/else statement node. When elseBody has no else
// branch, pass hasElse=false; elseBody is then ignored.
func (s *StmtList) AddIf(line, col int, cond, then, elseBody uint32, hasElse bool) uint32 {
	idx := s.push(StmtIf, line, col)
	s.Condition[idx] = cond
	s.Then[idx] = then
	s.Else[idx] = elseBody
	s.HasElse[idx] = hasElse
	return idx
}

// AddWhile appends a while-loop statement node.
func (s *StmtList) AddWhile(line, col int, cond, body uint32) uint32 {
	idx := s.push(StmtWhile, line, col)
	s.LoopCondition[idx] = cond
	s.LoopBody[idx] = body
	return idx
}

// AddFor appends a C-style for-loop statement node.
func (s *StmtList) AddFor(line, col int, init, cond, post, body uint32) uint32 {
	idx := s.push(StmtFor, line, col)
	s.ForInit[idx] = init
	s.LoopCondition[idx] = cond
	s.ForPost[idx] = post
	s.LoopBody[idx] = body
	return idx
}

// AddBlock appends a block statement node containing the given run of
// statement indices at the given lexical scope depth.
func (s *StmtList) AddBlock(line, col int, stmts []uint32, scopeLevel int) uint32 {
	idx := s.push(StmtBlock, line, col)
	s.BlockStart[idx] = uint32(len(s.BlockStmts))
	s.BlockCount[idx] = uint32(len(stmts))
	s.BlockStmts = append(s.BlockStmts, stmts...)
	s.ScopeLevel[idx] = scopeLevel
	return idx
}

// BlockStatements returns the statement indices belonging to the block at idx.
func (s *StmtList) BlockStatements(idx uint32) []uint32 {
	start := s.BlockStart[idx]
	count := s.BlockCount[idx]
	return s.BlockStmts[start : start+count]
}

// AddVarDecl appends a variable or constant declaration node.
func (s *StmtList) AddVarDecl(line, col int, name string, typeIndex, initializer, symbolIndex uint32, isConst bool) uint32 {
	idx := s.push(StmtVarDecl, line, col)
	s.VarName[idx] = name
	s.VarTypeIndex[idx] = typeIndex
	s.VarInitializer[idx] = initializer
	s.VarSymbolIndex[idx] = symbolIndex
	if isConst {
		s.Flags[idx] |= StmtIsConst
	}
	return idx
}

// AddReturn appends a return statement node. When hasValue is false,
// value is ignored (a bare `return;`).
func (s *StmtList) AddReturn(line, col int, value uint32, hasValue bool) uint32 {
	idx := s.push(StmtReturn, line, col)
	s.ReturnValue[idx] = value
	s.HasValue[idx] = hasValue
	return idx
}

// AddExpressionStmt appends a bare expression statement node, reusing the
// return-value columns to hold the expression index.
func (s *StmtList) AddExpressionStmt(line, col int, expr uint32) uint32 {
	idx := s.push(StmtExpression, line, col)
	s.ReturnValue[idx] = expr
	s.HasValue[idx] = true
	return idx
}

// AddFunction appends a function declaration node.
func (s *StmtList) AddFunction(line, col int, name string, typeIndex, body uint32, params []uint32, vis Visibility) uint32 {
	idx := s.push(StmtFunctionDecl, line, col)
	s.FuncName[idx] = name
	s.FuncTypeIndex[idx] = typeIndex
	s.FuncBody[idx] = body
	s.FuncParamStart[idx] = uint32(len(s.FuncParams))
	s.FuncParamCount[idx] = uint32(len(params))
	s.FuncParams = append(s.FuncParams, params...)
	s.FuncVisibility[idx] = vis
	return idx
}

// FunctionParams returns the parameter symbol indices of the function at idx.
func (s *StmtList) FunctionParams(idx uint32) []uint32 {
	start := s.FuncParamStart[idx]
	count := s.FuncParamCount[idx]
	return s.FuncParams[start : start+count]
}

// AddClass appends a class declaration node over a run of member
// statement indices (fields and methods).
func (s *StmtList) AddClass(line, col int, name string, members []uint32, vis Visibility) uint32 {
	idx := s.push(StmtClassDecl, line, col)
	s.ClassName[idx] = name
	s.ClassMemberStart[idx] = uint32(len(s.ClassMembers))
	s.ClassMemberCount[idx] = uint32(len(members))
	s.ClassMembers = append(s.ClassMembers, members...)
	s.ClassVisibility[idx] = vis
	return idx
}

// ClassMemberStmts returns the member statement indices of the class at idx.
func (s *StmtList) ClassMemberStmts(idx uint32) []uint32 {
	start := s.ClassMemberStart[idx]
	count := s.ClassMemberCount[idx]
	return s.ClassMembers[start : start+count]
}

// AddEnum appends an enum declaration node. memberNames and memberValues
// must be the same length; memberValues[i]==0 means member i has no
// explicit initializer.
func (s *StmtList) AddEnum(line, col int, name string, memberNames []string, memberValues []uint32) uint32 {
	idx := s.push(StmtEnumDecl, line, col)
	s.EnumName[idx] = name
	s.EnumMemberStart[idx] = uint32(len(s.EnumMemberNames))
	s.EnumMemberCount[idx] = uint32(len(memberNames))
	s.EnumMemberNames = append(s.EnumMemberNames, memberNames...)
	s.EnumMemberValue = append(s.EnumMemberValue, memberValues...)
	return idx
}

// AddImport appends an import statement node. from is empty for a plain
// `import path;`; as is empty when no alias was given.
func (s *StmtList) AddImport(line, col int, path, from, as string) uint32 {
	idx := s.push(StmtImport, line, col)
	s.ImportPath[idx] = path
	s.ImportFrom[idx] = from
	s.ImportAs[idx] = as
	return idx
}

// AddSwitch appends a switch statement node. caseValues/caseBodies are
// parallel runs; defaultBody is ignored when hasDefault is false.
func (s *StmtList) AddSwitch(line, col int, subject uint32, caseValues, caseBodies []uint32, defaultBody uint32, hasDefault bool) uint32 {
	idx := s.push(StmtSwitch, line, col)
	s.SwitchSubject[idx] = subject
	s.SwitchCaseStart[idx] = uint32(len(s.SwitchCaseValue))
	s.SwitchCaseCount[idx] = uint32(len(caseValues))
	s.SwitchCaseValue = append(s.SwitchCaseValue, caseValues...)
	s.SwitchCaseBody = append(s.SwitchCaseBody, caseBodies...)
	s.SwitchDefault[idx] = defaultBody
	s.SwitchHasDefault[idx] = hasDefault
	return idx
}

// SwitchCases returns the parallel case-value/case-body slices of the
// switch at idx.
func (s *StmtList) SwitchCases(idx uint32) (values, bodies []uint32) {
	start := s.SwitchCaseStart[idx]
	count := s.SwitchCaseCount[idx]
	return s.SwitchCaseValue[start : start+count], s.SwitchCaseBody[start : start+count]
}

// AddBreak appends a break statement node.
func (s *StmtList) AddBreak(line, col int) uint32 {
	return s.push(StmtBreak, line, col)
}

// AddContinue appends a continue statement node.
func (s *StmtList) AddContinue(line, col int) uint32 {
	return s.push(StmtContinue, line, col)
}

// SetAnnotations attaches a bitset of `@`-prefixed annotations to the
// declaration at idx.
func (s *StmtList) SetAnnotations(idx uint32, ann Annotations) {
	s.Annotations[idx] = ann
}

// AddTry appends a try/catch statement node. When hasCatch is false, the
// catch columns are ignored (a bare `try { ... }`).
func (s *StmtList) AddTry(line, col int, body uint32, catchParam string, catchBody uint32, hasCatch bool) uint32 {
	idx := s.push(StmtTry, line, col)
	s.TryBody[idx] = body
	s.CatchParamName[idx] = catchParam
	s.CatchBody[idx] = catchBody
	s.HasCatch[idx] = hasCatch
	return idx
}

package ast

// TypeList is the columnar store of type expressions: primitive names,
// and function signatures with a flat run of parameter types plus a
// return type, and generic parameter lists attached to a declaration.
type TypeList struct {
	Names []string

	GenericStart []uint32
	GenericCount []uint32
	GenericNames []string

	FuncParamStart []uint32
	FuncParamCount []uint32
	FuncParamTypes []uint32
	FuncReturnType []uint32
}

// NewTypeList returns an empty TypeList.
func NewTypeList() *TypeList {
	return &TypeList{}
}

// Len returns the number of type entries.
func (t *TypeList) Len() int {
	return len(t.Names)
}

func (t *TypeList) push(name string) uint32 {
	idx := uint32(len(t.Names))
	t.Names = append(t.Names, name)
	t.GenericStart = append(t.GenericStart, 0)
	t.GenericCount = append(t.GenericCount, 0)
	t.FuncParamStart = append(t.FuncParamStart, 0)
	t.FuncParamCount = append(t.FuncParamCount, 0)
	t.FuncReturnType = append(t.FuncReturnType, 0)
	return idx
}

// AddPrimitive appends a primitive type reference, e.g. "i32" or "Ptr".
func (t *TypeList) AddPrimitive(name string) uint32 {
	return t.push(name)
}

// AddGeneric appends a named type with the given generic parameter names
// attached (e.g. List<T>'s "List" entry with generics=["T"]).
func (t *TypeList) AddGeneric(name string, generics []string) uint32 {
	idx := t.push(name)
	t.GenericStart[idx] = uint32(len(t.GenericNames))
	t.GenericCount[idx] = uint32(len(generics))
	t.GenericNames = append(t.GenericNames, generics...)
	return idx
}

// AddFunction appends a function type: a run of parameter type indices
// plus a single return type index.
func (t *TypeList) AddFunction(paramTypes []uint32, returnType uint32) uint32 {
	idx := t.push("function")
	t.FuncParamStart[idx] = uint32(len(t.FuncParamTypes))
	t.FuncParamCount[idx] = uint32(len(paramTypes))
	t.FuncParamTypes = append(t.FuncParamTypes, paramTypes...)
	t.FuncReturnType[idx] = returnType
	return idx
}

// FunctionParams returns the parameter type indices of the function type at idx.
func (t *TypeList) FunctionParams(idx uint32) []uint32 {
	start := t.FuncParamStart[idx]
	count := t.FuncParamCount[idx]
	return t.FuncParamTypes[start : start+count]
}

// Generics returns the generic parameter names attached to the type at idx.
func (t *TypeList) Generics(idx uint32) []string {
	start := t.GenericStart[idx]
	count := t.GenericCount[idx]
	return t.GenericNames[start : start+count]
}

// SymbolList is the columnar symbol table built up during parsing: one
// row per declared name, with Scopes[i] recording the lexical scope depth
// it was declared at so lookups can prefer the innermost matching scope.
type SymbolList struct {
	Names []string
	Types []uint32
	Scopes []int
	Flags  []SymbolFlags
}

// NewSymbolList returns an empty SymbolList.
func NewSymbolList() *SymbolList {
	return &SymbolList{}
}

// Len returns the number of symbol entries.
func (s *SymbolList) Len() int {
	return len(s.Names)
}

// Add appends a symbol declared at the given scope depth with the given
// type index and flags, and returns its index.
func (s *SymbolList) Add(name string, typeIndex uint32, scope int, flags SymbolFlags) uint32 {
	idx := uint32(len(s.Names))
	s.Names = append(s.Names, name)
	s.Types = append(s.Types, typeIndex)
	s.Scopes = append(s.Scopes, scope)
	s.Flags = append(s.Flags, flags)
	return idx
}

// Lookup scans backward from the most recently declared symbol, returning
// the first one named name whose scope is at or below maxScope. This
// mirrors ordinary lexical shadowing: the most recent, innermost
// declaration wins.
func (s *SymbolList) Lookup(name string, maxScope int) (idx uint32, ok bool) {
	for i := len(s.Names) - 1; i >= 0; i-- {
		if s.Names[i] == name && s.Scopes[i] <= maxScope {
			return uint32(i), true
		}
	}
	return 0, false
}

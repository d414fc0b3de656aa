// Package ir implements the columnar static single assignment
// intermediate representation, constructed through Builder: instructions, basic blocks, and functions are each stored as
// struct-of-arrays tables indexed by dense uint32 IDs, never as a graph
// of heap-allocated node pointers.
package ir

// Op tags the operation an instruction performs. The ordering groups
// type constructors, memory operations, arithmetic, bitwise and
// comparison operators, conversions, control flow, synchronization, and
// the small set of SSA-only pseudo-ops (phi, undef, unreachable).
type Op uint8

const (
	TypeVoid Op = iota
	TypeBool
	TypeI8
	TypeU8
	TypeI16
	TypeU16
	TypeI32
	TypeU32
	TypeI64
	TypeU64
	TypeF32
	TypeF64
	TypePtr
	TypeStruct

	MemAlloc
	MemLoad
	MemStore
	MemFree

	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpNeg

	OpFAdd
	OpFSub
	OpFMul
	OpFDiv

	OpAnd
	OpOr
	OpXor
	OpNot
	OpShl
	OpShr
	OpSar

	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpFEq
	OpFNe
	OpFLt
	OpFLe
	OpFGt
	OpFGe

	ConvZExt
	ConvSExt
	ConvTrunc
	ConvFPExt
	ConvFPTrunc
	ConvSIToFP
	ConvFPToSI

	FlowJump
	FlowBranch
	FlowReturn
	FlowUnreachable

	BarrierAcquire
	BarrierRelease
	BarrierFull

	IntrinsicTrap
	IntrinsicMemcpy

	SyncAtomicLoad
	SyncAtomicStore
	SyncAtomicCAS

	SSAPhi
	SSAUndef
	SSAUnreachable

	CallDirect
	CallIndirect
	CallTail
)

// MemoryOrder names an atomic memory ordering attached to a synchronization op.
type MemoryOrder uint8

const (
	OrderRelaxed MemoryOrder = iota
	OrderAcquire
	OrderRelease
	OrderAcqRel
	OrderSeqCst
)

// Instructions is the columnar store of every instruction in a compiled
// unit, across all functions and basic blocks. Instruction i belongs to
// basic block BBIndices[i]; its operands are Operands[OperandStart[i] :
// OperandStart[i]+OperandCount[i]].
type Instructions struct {
	Ops          []Op
	Destinations []uint32 // virtual register this instruction defines, meaningful only where HasDest[i] is true
	HasDest      []bool   // whether this instruction defines a destination register
	OperandStart []uint32
	OperandCount []uint32
	Operands     []uint32
	OperandTypes []Op // element type of each instruction's result, not per-operand
	BBIndices    []uint32

	// Memory-op metadata, valid when Ops[i] is one of the Mem* ops.
	MemValueType []Op

	// Conversion metadata, valid when Ops[i] is one of the Conv* ops.
	ConvFromType []Op
	ConvToType   []Op

	// Immediate operand storage: an instruction may carry an immediate
	// value alongside its register operands (e.g. a constant added by a
	// type constructor), recorded here rather than interleaved into
	// Operands so register-only operand scans need no type dispatch.
	ImmediateOps map[uint32]int64
}

func newInstructions() Instructions {
	return Instructions{ImmediateOps: make(map[uint32]int64)}
}

// Len returns the number of instructions recorded.
func (ins *Instructions) Len() int {
	return len(ins.Ops)
}

// OperandsOf returns the operand register/block-index slice of
// instruction i.
func (ins *Instructions) OperandsOf(i uint32) []uint32 {
	start := ins.OperandStart[i]
	count := ins.OperandCount[i]
	return ins.Operands[start : start+count]
}

// BasicBlocks is the columnar store of basic block metadata: each block's
// instruction run, and its predecessor/successor edges in the control
// flow graph.
type BasicBlocks struct {
	InstrStart       []uint32
	InstrCount       []uint32
	SuccessorStart   []uint32
	SuccessorCount   []uint32
	Successors       []uint32
	PredecessorStart []uint32
	PredecessorCount []uint32
	Predecessors     []uint32
	FunctionIndex    []uint32
}

// Len returns the number of basic blocks recorded.
func (bb *BasicBlocks) Len() int {
	return len(bb.InstrStart)
}

// InstructionsOf returns the instruction index range belonging to block i.
func (bb *BasicBlocks) InstructionsOf(i uint32) (start, count uint32) {
	return bb.InstrStart[i], bb.InstrCount[i]
}

// SuccessorsOf returns the successor block indices of block i.
func (bb *BasicBlocks) SuccessorsOf(i uint32) []uint32 {
	start := bb.SuccessorStart[i]
	count := bb.SuccessorCount[i]
	return bb.Successors[start : start+count]
}

// PredecessorsOf returns the predecessor block indices of block i.
func (bb *BasicBlocks) PredecessorsOf(i uint32) []uint32 {
	start := bb.PredecessorStart[i]
	count := bb.PredecessorCount[i]
	return bb.Predecessors[start : start+count]
}

// Functions is the columnar store of function metadata: each function's
// basic-block run, parameter types, and return type.
type Functions struct {
	Names         []string
	BBStart       []uint32
	BBCount       []uint32
	ParamStart    []uint32
	ParamCount    []uint32
	ParamTypes    []Op
	ReturnTypes   []Op
}

// Len returns the number of functions recorded.
func (f *Functions) Len() int {
	return len(f.Names)
}

// BasicBlocksOf returns the basic block index range belonging to function i.
func (f *Functions) BasicBlocksOf(i uint32) (start, count uint32) {
	return f.BBStart[i], f.BBCount[i]
}

// ParamTypesOf returns the parameter types of function i.
func (f *Functions) ParamTypesOf(i uint32) []Op {
	start := f.ParamStart[i]
	count := f.ParamCount[i]
	return f.ParamTypes[start : start+count]
}

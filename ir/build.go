package ir

import (
	"github.com/yu-lang/yu/internal/assert"
)

// Builder incrementally constructs a unit's Instructions, BasicBlocks,
// and Functions tables. It tracks the function and basic block currently
// being appended to so callers don't have to thread indices through
// every call. Once Seal is called the unit is read-only: Dump and the
// analyze package's validators operate only on sealed builders.
type Builder struct {
	sealed bool

	currentFunction uint32
	hasFunction     bool
	currentBB       uint32
	hasBB           bool
	nextReg         uint32

	instructions Instructions
	basicBlocks  BasicBlocks
	functions    Functions

	// bbSuccessors/bbPredecessors accumulate per-block edges as plain
	// slices-of-slices during construction; they're flattened into the
	// columnar Successors/Predecessors arrays at Seal time, since edges
	// are frequently appended out of block-creation order (a jump back to
	// an earlier block adds a predecessor to it after later blocks exist).
	bbSuccessors   [][]uint32
	bbPredecessors [][]uint32
}

// New returns a Builder with room for roughly initialCapacity instructions.
func New(initialCapacity int) *Builder {
	b := &Builder{instructions: newInstructions()}
	if initialCapacity > 0 {
		b.instructions.Ops = make([]Op, 0, initialCapacity)
	}
	return b
}

// IsSealed reports whether Seal has been called.
func (b *Builder) IsSealed() bool {
	return b.sealed
}

func (b *Builder) requireUnsealed(op string) {
	assert.That(!b.sealed, "ir.Builder.%s called on a sealed builder", op)
}

// CreateFunction appends a new function and makes it current. Its first
// basic block is NOT created automatically; callers must call CreateBB.
func (b *Builder) CreateFunction(name string, paramTypes []Op, returnType Op) uint32 {
	b.requireUnsealed("CreateFunction")

	idx := uint32(b.functions.Len())
	b.functions.Names = append(b.functions.Names, name)
	b.functions.BBStart = append(b.functions.BBStart, uint32(b.basicBlocks.Len()))
	b.functions.BBCount = append(b.functions.BBCount, 0)
	b.functions.ParamStart = append(b.functions.ParamStart, uint32(len(b.functions.ParamTypes)))
	b.functions.ParamCount = append(b.functions.ParamCount, uint32(len(paramTypes)))
	b.functions.ParamTypes = append(b.functions.ParamTypes, paramTypes...)
	b.functions.ReturnTypes = append(b.functions.ReturnTypes, returnType)

	b.currentFunction = idx
	b.hasFunction = true
	b.hasBB = false
	// Parameters occupy virtual registers [0, paramCount) of their own
	// function; the first register an instruction can define continues
	// from there.
	b.nextReg = uint32(len(paramTypes))
	return idx
}

// CreateBB appends a new basic block to the current function and makes
// it current. Panics if no function is current.
func (b *Builder) CreateBB() uint32 {
	b.requireUnsealed("CreateBB")
	assert.That(b.hasFunction, "ir.Builder.CreateBB called with no current function")

	idx := uint32(b.basicBlocks.Len())
	b.basicBlocks.InstrStart = append(b.basicBlocks.InstrStart, uint32(b.instructions.Len()))
	b.basicBlocks.InstrCount = append(b.basicBlocks.InstrCount, 0)
	b.basicBlocks.FunctionIndex = append(b.basicBlocks.FunctionIndex, b.currentFunction)
	b.basicBlocks.SuccessorStart = append(b.basicBlocks.SuccessorStart, 0)
	b.basicBlocks.SuccessorCount = append(b.basicBlocks.SuccessorCount, 0)
	b.basicBlocks.PredecessorStart = append(b.basicBlocks.PredecessorStart, 0)
	b.basicBlocks.PredecessorCount = append(b.basicBlocks.PredecessorCount, 0)
	b.bbSuccessors = append(b.bbSuccessors, nil)
	b.bbPredecessors = append(b.bbPredecessors, nil)

	b.functions.BBCount[b.currentFunction]++

	b.currentBB = idx
	b.hasBB = true
	return idx
}

// SetCurrentBB switches the block subsequent AddInstruction calls append
// to, e.g. to fill a block that was created ahead of time. A block's
// instructions form one contiguous run: appending to a block that already
// has instructions after another block has received some panics.
func (b *Builder) SetCurrentBB(bb uint32) {
	b.requireUnsealed("SetCurrentBB")
	assert.That(bb < uint32(b.basicBlocks.Len()), "ir.Builder.SetCurrentBB: block %d out of range", bb)
	b.currentBB = bb
	b.hasBB = true
}

// CurrentBB returns the index of the block currently being appended to.
func (b *Builder) CurrentBB() uint32 {
	assert.That(b.hasBB, "ir.Builder.CurrentBB called with no current block")
	return b.currentBB
}

// nextRegister returns a fresh virtual register number within the
// current function, continuing the numbering space started by its
// parameters (see CreateFunction).
func (b *Builder) nextRegister() uint32 {
	r := b.nextReg
	b.nextReg++
	return r
}

func (b *Builder) appendInstruction(op Op, dest uint32, hasDest bool, operands []uint32, resultType Op) uint32 {
	assert.That(b.hasBB, "ir.Builder: no current basic block")

	idx := uint32(b.instructions.Len())
	b.instructions.Ops = append(b.instructions.Ops, op)
	b.instructions.Destinations = append(b.instructions.Destinations, dest)
	b.instructions.HasDest = append(b.instructions.HasDest, hasDest)
	b.instructions.OperandStart = append(b.instructions.OperandStart, uint32(len(b.instructions.Operands)))
	b.instructions.OperandCount = append(b.instructions.OperandCount, uint32(len(operands)))
	b.instructions.Operands = append(b.instructions.Operands, operands...)
	b.instructions.OperandTypes = append(b.instructions.OperandTypes, resultType)
	b.instructions.BBIndices = append(b.instructions.BBIndices, b.currentBB)
	b.instructions.MemValueType = append(b.instructions.MemValueType, TypeVoid)
	b.instructions.ConvFromType = append(b.instructions.ConvFromType, TypeVoid)
	b.instructions.ConvToType = append(b.instructions.ConvToType, TypeVoid)

	// A block's run starts at its first instruction, not at CreateBB time,
	// so blocks created ahead of being filled still get a correct range.
	if b.basicBlocks.InstrCount[b.currentBB] == 0 {
		b.basicBlocks.InstrStart[b.currentBB] = idx
	}
	assert.That(b.basicBlocks.InstrStart[b.currentBB]+b.basicBlocks.InstrCount[b.currentBB] == idx,
		"ir.Builder: bb%d's instructions must form one contiguous run", b.currentBB)
	b.basicBlocks.InstrCount[b.currentBB]++

	switch op {
	case FlowJump:
		b.addEdge(b.currentBB, operands[0])
	case FlowBranch:
		b.addEdge(b.currentBB, operands[1])
		b.addEdge(b.currentBB, operands[2])
	}

	return idx
}

func (b *Builder) addEdge(from, to uint32) {
	b.bbSuccessors[from] = append(b.bbSuccessors[from], to)
	b.bbPredecessors[to] = append(b.bbPredecessors[to], from)
}

// AddInstruction appends a general-purpose instruction (arithmetic,
// bitwise, comparison, memory-independent control flow, phi, or call)
// producing a fresh virtual register, and returns that register.
func (b *Builder) AddInstruction(op Op, operands []uint32, resultType Op) uint32 {
	b.requireUnsealed("AddInstruction")
	dest := b.nextRegister()
	hasDest := !isVoidOp(op)
	if !hasDest {
		dest = 0
	}
	b.appendInstruction(op, dest, hasDest, operands, resultType)
	return dest
}

func isVoidOp(op Op) bool {
	switch op {
	case FlowJump, FlowBranch, FlowReturn, FlowUnreachable, MemStore, MemFree:
		return true
	default:
		return false
	}
}

// AddConversion appends a CONV_* instruction converting operands[0] from
// fromType to toType, and returns its destination register.
func (b *Builder) AddConversion(op Op, operands []uint32, fromType, toType Op) uint32 {
	b.requireUnsealed("AddConversion")
	dest := b.nextRegister()
	idx := b.appendInstruction(op, dest, true, operands, toType)
	b.instructions.ConvFromType[idx] = fromType
	b.instructions.ConvToType[idx] = toType
	return dest
}

// AddMemoryOp appends a MEM_* instruction (alloc/load/store/free) over
// the given value type, e.g. the pointee type for MEM_LOAD/MEM_STORE. It
// returns the destination register, or 0 for the void MEM_STORE/MEM_FREE
// ops (check HasDest on the returned instruction to distinguish that from
// a real register 0).
func (b *Builder) AddMemoryOp(op Op, operands []uint32, valueType Op) uint32 {
	b.requireUnsealed("AddMemoryOp")
	dest := b.nextRegister()
	hasDest := !isVoidOp(op)
	if !hasDest {
		dest = 0
	}
	idx := b.appendInstruction(op, dest, hasDest, operands, valueType)
	b.instructions.MemValueType[idx] = valueType
	return dest
}

// SetImmediate attaches an immediate constant value to the instruction
// that defines register dest, for type-constructor instructions whose
// value is compiled in rather than computed from operands.
func (b *Builder) SetImmediate(dest uint32, value int64) {
	b.requireUnsealed("SetImmediate")
	b.instructions.ImmediateOps[dest] = value
}

// Seal finalizes the unit: it flattens the accumulated per-block
// successor/predecessor edge lists into the columnar Successors and
// Predecessors arrays and marks the builder read-only. Calling any
// mutating method after Seal panics.
func (b *Builder) Seal() {
	assert.That(!b.sealed, "ir.Builder.Seal called twice")

	for i := range b.bbSuccessors {
		b.basicBlocks.SuccessorStart[i] = uint32(len(b.basicBlocks.Successors))
		b.basicBlocks.SuccessorCount[i] = uint32(len(b.bbSuccessors[i]))
		b.basicBlocks.Successors = append(b.basicBlocks.Successors, b.bbSuccessors[i]...)

		b.basicBlocks.PredecessorStart[i] = uint32(len(b.basicBlocks.Predecessors))
		b.basicBlocks.PredecessorCount[i] = uint32(len(b.bbPredecessors[i]))
		b.basicBlocks.Predecessors = append(b.basicBlocks.Predecessors, b.bbPredecessors[i]...)
	}

	b.sealed = true
}

// Instructions returns the sealed unit's instruction table.
func (b *Builder) Instructions() *Instructions {
	return &b.instructions
}

// BasicBlocks returns the sealed unit's basic block table.
func (b *Builder) BasicBlocks() *BasicBlocks {
	return &b.basicBlocks
}

// Functions returns the sealed unit's function table.
func (b *Builder) Functions() *Functions {
	return &b.functions
}

// Immediate returns the immediate value attached to register dest and
// whether one was set.
func (b *Builder) Immediate(dest uint32) (int64, bool) {
	v, ok := b.instructions.ImmediateOps[dest]
	return v, ok
}

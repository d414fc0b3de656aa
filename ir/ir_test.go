package ir_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yu-lang/yu/ir"
)

// S6: a simple arithmetic function, `function add(a, b) -> i32 { return
// a + b; }`, lowers to one basic block computing a single add and
// returning it.
func TestBuildArithmeticFunction(t *testing.T) {
	b := ir.New(16)
	b.CreateFunction("add", []ir.Op{ir.TypeI32, ir.TypeI32}, ir.TypeI32)
	b.CreateBB()

	sum := b.AddInstruction(ir.OpAdd, []uint32{0, 1}, ir.TypeI32)
	b.AddInstruction(ir.FlowReturn, []uint32{sum}, ir.TypeVoid)
	b.Seal()

	require.True(t, b.IsSealed())
	require.Equal(t, 1, b.Functions().Len())
	require.Equal(t, 1, b.BasicBlocks().Len())
	require.Equal(t, 2, b.Instructions().Len())
	require.Equal(t, uint32(2), sum)

	dump := b.Dump()
	require.Contains(t, dump, "func add(%p0: i32, %p1: i32) -> i32:")
	require.Contains(t, dump, "bb0:")
	require.Contains(t, dump, "%2 = add %0, %1")
	require.Contains(t, dump, "ret %2")
}

// S7: a branch to two blocks that merge via a phi node.
func TestBuildBranchWithPhi(t *testing.T) {
	b := ir.New(16)
	b.CreateFunction("f", []ir.Op{ir.TypeBool}, ir.TypeI32)
	entry := b.CreateBB()

	thenBB := b.CreateBB()
	elseBB := b.CreateBB()
	mergeBB := b.CreateBB()

	b.SetCurrentBB(entry)
	b.AddInstruction(ir.FlowBranch, []uint32{0, thenBB, elseBB}, ir.TypeVoid)

	b.SetCurrentBB(thenBB)
	one := b.AddInstruction(ir.OpAdd, []uint32{0, 0}, ir.TypeI32)
	b.AddInstruction(ir.FlowJump, []uint32{mergeBB}, ir.TypeVoid)

	b.SetCurrentBB(elseBB)
	zero := b.AddInstruction(ir.OpSub, []uint32{0, 0}, ir.TypeI32)
	b.AddInstruction(ir.FlowJump, []uint32{mergeBB}, ir.TypeVoid)

	b.SetCurrentBB(mergeBB)
	phi := b.AddInstruction(ir.SSAPhi, []uint32{one, thenBB, zero, elseBB}, ir.TypeI32)
	b.AddInstruction(ir.FlowReturn, []uint32{phi}, ir.TypeVoid)
	b.Seal()

	require.Equal(t, []uint32{thenBB, elseBB}, b.BasicBlocks().SuccessorsOf(entry))
	require.Equal(t, []uint32{entry}, b.BasicBlocks().PredecessorsOf(thenBB))
	require.ElementsMatch(t, []uint32{thenBB, elseBB}, b.BasicBlocks().PredecessorsOf(mergeBB))

	dump := b.Dump()
	require.Contains(t, dump, "phi")
}

func TestSealPreventsFurtherMutation(t *testing.T) {
	b := ir.New(4)
	b.CreateFunction("f", nil, ir.TypeVoid)
	b.CreateBB()
	b.AddInstruction(ir.FlowReturn, nil, ir.TypeVoid)
	b.Seal()

	require.Panics(t, func() {
		b.CreateBB()
	})
}

func TestImmediateOperand(t *testing.T) {
	b := ir.New(4)
	b.CreateFunction("f", nil, ir.TypeI32)
	b.CreateBB()
	dest := b.AddInstruction(ir.OpAdd, []uint32{0, 0}, ir.TypeI32)
	b.SetImmediate(dest, 42)
	b.Seal()

	v, ok := b.Immediate(dest)
	require.True(t, ok)
	require.Equal(t, int64(42), v)
}

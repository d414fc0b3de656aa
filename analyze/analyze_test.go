package analyze_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yu-lang/yu/analyze"
	"github.com/yu-lang/yu/ir"
)

func buildArithmetic() *ir.Builder {
	b := ir.New(16)
	b.CreateFunction("add", []ir.Op{ir.TypeI32, ir.TypeI32}, ir.TypeI32)
	b.CreateBB()
	sum := b.AddInstruction(ir.OpAdd, []uint32{0, 1}, ir.TypeI32)
	b.AddInstruction(ir.FlowReturn, []uint32{sum}, ir.TypeVoid)
	b.Seal()
	return b
}

func buildBranchWithPhi() (*ir.Builder, uint32, uint32, uint32, uint32) {
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

	return b, entry, thenBB, elseBB, mergeBB
}

func TestValidateSSAAcceptsSingleDefinition(t *testing.T) {
	b := ir.New(8)
	b.CreateFunction("f", nil, ir.TypeVoid)
	b.CreateBB()
	b.AddInstruction(ir.OpAdd, []uint32{0, 0}, ir.TypeI32)
	b.Seal()

	a := analyze.New(b)
	errs := a.ValidateSSA()
	require.Empty(t, errs)
}

func TestValidateSSAAcceptsWellFormedPhi(t *testing.T) {
	b, _, _, _, _ := buildBranchWithPhi()
	a := analyze.New(b)
	errs := a.ValidateSSA()
	require.Empty(t, errs)
}

func TestValidateSSARejectsPhiFromNonPredecessor(t *testing.T) {
	b := ir.New(16)
	b.CreateFunction("f", []ir.Op{ir.TypeBool}, ir.TypeI32)
	entry := b.CreateBB()
	other := b.CreateBB()
	merge := b.CreateBB()

	b.SetCurrentBB(entry)
	b.AddInstruction(ir.FlowJump, []uint32{merge}, ir.TypeVoid)

	b.SetCurrentBB(other)
	b.AddInstruction(ir.FlowReturn, nil, ir.TypeVoid)

	b.SetCurrentBB(merge)
	b.AddInstruction(ir.SSAPhi, []uint32{1, other}, ir.TypeI32)
	b.AddInstruction(ir.FlowReturn, []uint32{1}, ir.TypeVoid)
	b.Seal()

	a := analyze.New(b)
	errs := a.ValidateSSA()
	require.NotEmpty(t, errs)
}

func TestValidateTypeArithmeticFunction(t *testing.T) {
	b := buildArithmetic()
	a := analyze.New(b)
	errs := a.ValidateType()
	require.Empty(t, errs)
}

func TestValidateTypeRejectsNonBoolBranchCondition(t *testing.T) {
	b := ir.New(16)
	b.CreateFunction("f", []ir.Op{ir.TypeI32}, ir.TypeVoid)
	entry := b.CreateBB()
	a := b.CreateBB()
	c := b.CreateBB()
	_ = a
	_ = c

	b.SetCurrentBB(entry)
	b.AddInstruction(ir.FlowBranch, []uint32{0, a, c}, ir.TypeVoid)
	b.SetCurrentBB(a)
	b.AddInstruction(ir.FlowReturn, nil, ir.TypeVoid)
	b.SetCurrentBB(c)
	b.AddInstruction(ir.FlowReturn, nil, ir.TypeVoid)
	b.Seal()

	an := analyze.New(b)
	errs := an.ValidateType()
	require.NotEmpty(t, errs)
}

func TestValidateControlFlowAcceptsWellFormedGraph(t *testing.T) {
	b, _, _, _, _ := buildBranchWithPhi()
	a := analyze.New(b)
	errs := a.ValidateControlFlow()
	require.Empty(t, errs)
}

func TestValidateControlFlowDetectsUnreachableBlock(t *testing.T) {
	b := ir.New(16)
	b.CreateFunction("f", nil, ir.TypeVoid)
	entry := b.CreateBB()
	unreachable := b.CreateBB()
	_ = unreachable

	b.SetCurrentBB(entry)
	b.AddInstruction(ir.FlowReturn, nil, ir.TypeVoid)

	b.SetCurrentBB(unreachable)
	b.AddInstruction(ir.FlowReturn, nil, ir.TypeVoid)
	b.Seal()

	a := analyze.New(b)
	errs := a.ValidateControlFlow()
	require.NotEmpty(t, errs)
}

func TestValidateControlFlowDetectsMissingTerminator(t *testing.T) {
	b := ir.New(16)
	b.CreateFunction("f", nil, ir.TypeVoid)
	b.CreateBB()
	b.AddInstruction(ir.OpAdd, []uint32{0, 0}, ir.TypeI32)
	b.Seal()

	a := analyze.New(b)
	errs := a.ValidateControlFlow()
	require.NotEmpty(t, errs)
}

func TestAnalyzeDominatorDiamond(t *testing.T) {
	b, entry, thenBB, elseBB, mergeBB := buildBranchWithPhi()
	a := analyze.New(b)
	dom := a.AnalyzeDominator()

	require.Equal(t, entry, dom.IdomIndices[thenBB])
	require.Equal(t, entry, dom.IdomIndices[elseBB])
	require.Equal(t, entry, dom.IdomIndices[mergeBB])
	require.Contains(t, dom.DominatorsOf(mergeBB), entry)
}

func TestAnalyzeLivenessPhiOperandsLiveAcrossPredecessors(t *testing.T) {
	b, entry, thenBB, elseBB, _ := buildBranchWithPhi()
	a := analyze.New(b)
	liveness := a.AnalyzeLiveness()

	require.NotEmpty(t, liveness.LiveOutOf(thenBB))
	require.NotEmpty(t, liveness.LiveOutOf(elseBB))
	require.NotNil(t, liveness.LiveInOf(entry))
}

func TestAnalyzeLoopFindsBackEdge(t *testing.T) {
	b := ir.New(16)
	b.CreateFunction("f", nil, ir.TypeVoid)
	entry := b.CreateBB()
	header := b.CreateBB()
	body := b.CreateBB()
	exit := b.CreateBB()

	b.SetCurrentBB(entry)
	b.AddInstruction(ir.FlowJump, []uint32{header}, ir.TypeVoid)

	b.SetCurrentBB(header)
	b.AddInstruction(ir.FlowBranch, []uint32{1, body, exit}, ir.TypeVoid)

	b.SetCurrentBB(body)
	b.AddInstruction(ir.FlowJump, []uint32{header}, ir.TypeVoid)

	b.SetCurrentBB(exit)
	b.AddInstruction(ir.FlowReturn, nil, ir.TypeVoid)
	b.Seal()

	a := analyze.New(b)
	dom := a.AnalyzeDominator()
	loops := a.AnalyzeLoop(dom)

	require.Len(t, loops.HeaderIndices, 1)
	require.Equal(t, header, loops.HeaderIndices[0])
	require.ElementsMatch(t, []uint32{header, body}, loops.BlocksOf(0))
	require.Equal(t, 1, loops.LoopDepths[body])
}

func TestBuildDefUseChainsAttributesPhiUsesToPredecessor(t *testing.T) {
	b, _, thenBB, elseBB, _ := buildBranchWithPhi()
	a := analyze.New(b)
	defUse := a.BuildDefUseChains()

	one := uint32(2) // destination register of the first add in thenBB
	blocks := defUse.UseBlock[one]
	require.Contains(t, blocks, thenBB)
	_ = elseBB
}

// Package analyze implements the IR analyzer: a set of validation
// predicates (validate_ssa, validate_type, validate_control_flow) and
// dataflow analyses (dominance, liveness, natural loops, def-use chains)
// over a sealed ir.Builder. Analyzer never mutates the unit it wraps.
package analyze

import (
	"fmt"

	"github.com/yu-lang/yu/internal/assert"
	"github.com/yu-lang/yu/ir"
)

// Analyzer computes dataflow facts and validates invariants over a
// sealed IR unit. Construct one per unit to analyze; it holds no state
// beyond the builder it wraps, and every analysis is recomputed per call.
type Analyzer struct {
	builder *ir.Builder
}

// New wraps a sealed builder for analysis. Panics if the builder has not
// been sealed, since unsealed units may still have dangling or
// incomplete successor/predecessor edges.
func New(b *ir.Builder) *Analyzer {
	assert.That(b.IsSealed(), "analyze.New requires a sealed ir.Builder")
	return &Analyzer{builder: b}
}

func (a *Analyzer) typeSize(op ir.Op) int {
	switch op {
	case ir.TypeBool, ir.TypeI8, ir.TypeU8:
		return 1
	case ir.TypeI16, ir.TypeU16:
		return 2
	case ir.TypeI32, ir.TypeU32, ir.TypeF32:
		return 4
	case ir.TypeI64, ir.TypeU64, ir.TypeF64, ir.TypePtr:
		return 8
	default:
		return 0
	}
}

func isIntegerType(op ir.Op) bool {
	switch op {
	case ir.TypeBool, ir.TypeI8, ir.TypeU8, ir.TypeI16, ir.TypeU16,
		ir.TypeI32, ir.TypeU32, ir.TypeI64, ir.TypeU64:
		return true
	default:
		return false
	}
}

func isFloatType(op ir.Op) bool {
	return op == ir.TypeF32 || op == ir.TypeF64
}

func isPointerType(op ir.Op) bool {
	return op == ir.TypePtr
}

// ValidationError describes a single invariant violation found by one of
// the validate_* predicates, anchored to the offending instruction.
type ValidationError struct {
	Instruction uint32
	Message     string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("instruction %d: %s", e.Instruction, e.Message)
}

func errAt(i uint32, format string, args ...any) ValidationError {
	return ValidationError{Instruction: i, Message: fmt.Sprintf(format, args...)}
}

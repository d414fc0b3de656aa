package ir

import (
	"fmt"
	"strings"
)

var typeNames = map[Op]string{
	TypeVoid: "void", TypeBool: "bool", TypeI8: "i8", TypeU8: "u8",
	TypeI16: "i16", TypeU16: "u16", TypeI32: "i32", TypeU32: "u32",
	TypeI64: "i64", TypeU64: "u64", TypeF32: "f32", TypeF64: "f64",
	TypePtr: "ptr", TypeStruct: "struct",
}

func typeName(op Op) string {
	if n, ok := typeNames[op]; ok {
		return n
	}
	return "?"
}

var opNames = map[Op]string{
	OpAdd: "add", OpSub: "sub", OpMul: "mul", OpDiv: "div", OpMod: "mod", OpNeg: "neg",
	OpFAdd: "fadd", OpFSub: "fsub", OpFMul: "fmul", OpFDiv: "fdiv",
	OpAnd: "and", OpOr: "or", OpXor: "xor", OpNot: "not", OpShl: "shl", OpShr: "shr", OpSar: "sar",
	OpEq: "eq", OpNe: "ne", OpLt: "lt", OpLe: "le", OpGt: "gt", OpGe: "ge",
	OpFEq: "feq", OpFNe: "fne", OpFLt: "flt", OpFLe: "fle", OpFGt: "fgt", OpFGe: "fge",
	CallDirect: "call", CallIndirect: "icall", CallTail: "tailcall",
}

// Dump renders the sealed unit as a human-readable text listing, one
// function per `func` block and one `bb<n>:` label per basic block,
// matching the reference IR dump format.
func (b *Builder) Dump() string {
	var out strings.Builder
	for fi := 0; fi < b.functions.Len(); fi++ {
		b.dumpFunction(&out, uint32(fi))
	}
	return out.String()
}

func (b *Builder) dumpFunction(out *strings.Builder, fi uint32) {
	params := b.functions.ParamTypesOf(fi)
	var paramStrs []string
	for i, pt := range params {
		paramStrs = append(paramStrs, fmt.Sprintf("%%p%d: %s", i, typeName(pt)))
	}
	fmt.Fprintf(out, "func %s(%s) -> %s:\n", b.functions.Names[fi],
		strings.Join(paramStrs, ", "), typeName(b.functions.ReturnTypes[fi]))

	start, count := b.functions.BasicBlocksOf(fi)
	for bbi := start; bbi < start+count; bbi++ {
		b.dumpBB(out, bbi)
	}
}

func (b *Builder) dumpBB(out *strings.Builder, bbi uint32) {
	fmt.Fprintf(out, "bb%d:\n", bbi)
	start, count := b.basicBlocks.InstructionsOf(bbi)
	for i := start; i < start+count; i++ {
		out.WriteString("  ")
		out.WriteString(b.dumpInstruction(i))
		out.WriteString("\n")
	}
}

func (b *Builder) dumpInstruction(i uint32) string {
	op := b.instructions.Ops[i]
	dest := b.instructions.Destinations[i]
	operands := b.instructions.OperandsOf(i)

	switch op {
	case FlowBranch:
		return fmt.Sprintf("br %%%d, bb%d, bb%d", operands[0], operands[1], operands[2])
	case FlowJump:
		return fmt.Sprintf("jump bb%d", operands[0])
	case FlowReturn:
		if len(operands) == 0 {
			return "ret"
		}
		return fmt.Sprintf("ret %%%d", operands[0])
	case FlowUnreachable:
		return "unreachable"
	case SSAPhi:
		var parts []string
		for j := 0; j+1 < len(operands); j += 2 {
			parts = append(parts, fmt.Sprintf("[%%%d, bb%d]", operands[j], operands[j+1]))
		}
		return fmt.Sprintf("%%%d = phi %s %s", dest, typeName(b.instructions.OperandTypes[i]), strings.Join(parts, ", "))
	case MemStore:
		return fmt.Sprintf("store %%%d, %%%d", operands[0], operands[1])
	case MemLoad:
		return fmt.Sprintf("%%%d = load %%%d", dest, operands[0])
	case MemAlloc:
		return fmt.Sprintf("%%%d = alloc %s", dest, typeName(b.instructions.MemValueType[i]))
	case MemFree:
		return fmt.Sprintf("free %%%d", operands[0])
	case ConvZExt, ConvSExt, ConvTrunc, ConvFPExt, ConvFPTrunc, ConvSIToFP, ConvFPToSI:
		return fmt.Sprintf("%%%d = %s %s %%%d to %s", dest, convName(op),
			typeName(b.instructions.ConvFromType[i]), operands[0], typeName(b.instructions.ConvToType[i]))
	default:
		if name, ok := opNames[op]; ok {
			var parts []string
			for _, o := range operands {
				parts = append(parts, fmt.Sprintf("%%%d", o))
			}
			return fmt.Sprintf("%%%d = %s %s", dest, name, strings.Join(parts, ", "))
		}
		var parts []string
		for _, o := range operands {
			parts = append(parts, fmt.Sprintf("%%%d", o))
		}
		return fmt.Sprintf("%%%d = op%d %s", dest, op, strings.Join(parts, ", "))
	}
}

func convName(op Op) string {
	switch op {
	case ConvZExt:
		return "zext"
	case ConvSExt:
		return "sext"
	case ConvTrunc:
		return "trunc"
	case ConvFPExt:
		return "fpext"
	case ConvFPTrunc:
		return "fptrunc"
	case ConvSIToFP:
		return "sitofp"
	case ConvFPToSI:
		return "fptosi"
	default:
		return "conv"
	}
}

package analyze

import "github.com/yu-lang/yu/ir"

// ValidateSSA checks that every virtual register is defined at most once
// across the whole unit (the single-assignment property) and that every
// phi's predecessor-block operands are predecessors of the block the phi
// lives in.
func (a *Analyzer) ValidateSSA() []ValidationError {
	ins := a.builder.Instructions()
	bbs := a.builder.BasicBlocks()
	var errs []ValidationError

	// Virtual registers are numbered per function (parameters seed
	// [0, paramCount) of their own function), so redefinition is tracked
	// per (function, register) rather than by register number alone.
	type regKey struct {
		fn  uint32
		reg uint32
	}
	defined := make(map[regKey]uint32) // (function, register) -> defining instruction
	for i := 0; i < ins.Len(); i++ {
		if !ins.HasDest[i] {
			continue
		}
		dest := ins.Destinations[i]
		fn := bbs.FunctionIndex[ins.BBIndices[i]]
		key := regKey{fn, dest}
		if prior, ok := defined[key]; ok {
			errs = append(errs, errAt(uint32(i), "register %%%d redefined (first defined at instruction %d)", dest, prior))
			continue
		}
		defined[key] = uint32(i)
	}

	for i := 0; i < ins.Len(); i++ {
		if ins.Ops[i] != ir.SSAPhi {
			continue
		}
		bb := ins.BBIndices[i]
		preds := make(map[uint32]bool)
		for _, p := range bbs.PredecessorsOf(bb) {
			preds[p] = true
		}
		operands := ins.OperandsOf(uint32(i))
		if len(operands)%2 != 0 || len(operands) < 2 {
			errs = append(errs, errAt(uint32(i), "phi must have an even number of operands, at least 2, got %d", len(operands)))
			continue
		}
		for j := 1; j < len(operands); j += 2 {
			predBlock := operands[j]
			if !preds[predBlock] {
				errs = append(errs, errAt(uint32(i), "phi references block %d which is not a predecessor of bb%d", predBlock, bb))
			}
		}
	}

	return errs
}

// ValidateType checks that every instruction's operand types are
// consistent with its op, tracking each register's result type as it is
// defined so later instructions can check against it.
func (a *Analyzer) ValidateType() []ValidationError {
	ins := a.builder.Instructions()
	fns := a.builder.Functions()
	regType := make(map[uint32]ir.Op)

	// Parameters are virtual registers 0..paramCount-1 of their function,
	// defined before the function's first instruction; seed their types
	// so the first use inside the body resolves correctly.
	for fi := 0; fi < fns.Len(); fi++ {
		for reg, t := range fns.ParamTypesOf(uint32(fi)) {
			regType[uint32(reg)] = t
		}
	}

	var errs []ValidationError
	check := func(cond bool, i uint32, format string, args ...any) {
		if !cond {
			errs = append(errs, errAt(i, format, args...))
		}
	}

	for i := 0; i < ins.Len(); i++ {
		op := ins.Ops[i]
		operands := ins.OperandsOf(uint32(i))
		dest := ins.Destinations[i]

		switch op {
		case ir.OpAdd, ir.OpSub, ir.OpMul, ir.OpDiv, ir.OpMod:
			check(len(operands) == 2, uint32(i), "%v requires 2 operands, got %d", op, len(operands))
			if len(operands) == 2 {
				t0, t1 := regType[operands[0]], regType[operands[1]]
				check(isIntegerType(t0) && isIntegerType(t1), uint32(i), "%v requires integer operands", op)
				regType[dest] = wider(t0, t1, a)
			}

		case ir.OpFAdd, ir.OpFSub, ir.OpFMul, ir.OpFDiv:
			check(len(operands) == 2, uint32(i), "%v requires 2 operands, got %d", op, len(operands))
			if len(operands) == 2 {
				t0, t1 := regType[operands[0]], regType[operands[1]]
				check(isFloatType(t0) && isFloatType(t1), uint32(i), "%v requires float operands", op)
				regType[dest] = wider(t0, t1, a)
			}

		case ir.OpAnd, ir.OpOr, ir.OpXor:
			check(len(operands) == 2, uint32(i), "%v requires 2 operands, got %d", op, len(operands))
			if len(operands) == 2 {
				check(isIntegerType(regType[operands[0]]) && isIntegerType(regType[operands[1]]), uint32(i), "%v requires integer operands", op)
				regType[dest] = regType[operands[0]]
			}

		case ir.OpNot, ir.OpNeg:
			check(len(operands) == 1, uint32(i), "%v requires 1 operand, got %d", op, len(operands))
			if len(operands) == 1 {
				check(isIntegerType(regType[operands[0]]), uint32(i), "%v requires an integer operand", op)
				regType[dest] = regType[operands[0]]
			}

		case ir.FlowBranch:
			check(len(operands) == 3, uint32(i), "branch requires 3 operands, got %d", len(operands))
			if len(operands) == 3 {
				check(regType[operands[0]] == ir.TypeBool, uint32(i), "branch condition must be bool")
			}

		case ir.FlowJump:
			check(len(operands) == 1, uint32(i), "jump requires 1 operand, got %d", len(operands))

		case ir.FlowReturn:
			returnType := a.currentReturnType(uint32(i))
			if returnType == ir.TypeVoid {
				check(len(operands) == 0, uint32(i), "return in void function takes no value")
			} else {
				check(len(operands) == 1, uint32(i), "return requires a value of type %v", returnType)
				if len(operands) == 1 {
					check(regType[operands[0]] == returnType, uint32(i), "return value type mismatch: expected %v, got %v", returnType, regType[operands[0]])
				}
			}

		case ir.SSAPhi:
			check(len(operands) >= 2 && len(operands)%2 == 0, uint32(i), "phi requires an even number of operands >= 2")
			if len(operands) >= 2 {
				want := regType[operands[0]]
				for j := 0; j < len(operands); j += 2 {
					check(regType[operands[j]] == want, uint32(i), "phi operand type mismatch")
					check(isIntegerType(regType[operands[j+1]]) || regType[operands[j+1]] == 0, uint32(i), "phi predecessor-block operand must be a block index")
				}
				regType[dest] = want
			}

		case ir.MemLoad:
			check(len(operands) == 1, uint32(i), "load requires 1 operand, got %d", len(operands))
			if len(operands) == 1 {
				check(isPointerType(regType[operands[0]]), uint32(i), "load requires a pointer operand")
				regType[dest] = ins.MemValueType[i]
			}

		case ir.MemStore:
			check(len(operands) == 2, uint32(i), "store requires 2 operands, got %d", len(operands))
			if len(operands) == 2 {
				check(isPointerType(regType[operands[0]]), uint32(i), "store target must be a pointer")
			}

		case ir.MemAlloc:
			regType[dest] = ir.TypePtr

		case ir.ConvSExt, ir.ConvZExt:
			check(len(operands) == 1, uint32(i), "%v requires 1 operand, got %d", op, len(operands))
			if len(operands) == 1 {
				check(isIntegerType(regType[operands[0]]), uint32(i), "%v requires an integer operand", op)
				check(a.typeSize(ins.ConvToType[i]) > a.typeSize(ins.ConvFromType[i]), uint32(i), "%v destination must be strictly wider than source", op)
				regType[dest] = ins.ConvToType[i]
			}

		case ir.ConvTrunc:
			check(len(operands) == 1, uint32(i), "trunc requires 1 operand, got %d", len(operands))
			if len(operands) == 1 {
				check(isIntegerType(regType[operands[0]]), uint32(i), "trunc requires an integer operand")
				check(a.typeSize(ins.ConvToType[i]) < a.typeSize(ins.ConvFromType[i]), uint32(i), "trunc destination must be strictly narrower than source")
				regType[dest] = ins.ConvToType[i]
			}

		default:
			if ins.HasDest[i] {
				regType[dest] = ins.OperandTypes[i]
			}
		}
	}

	return errs
}

func wider(a, b ir.Op, an *Analyzer) ir.Op {
	if an.typeSize(a) >= an.typeSize(b) {
		return a
	}
	return b
}

// currentReturnType finds the return type of the function owning
// instruction i.
func (a *Analyzer) currentReturnType(i uint32) ir.Op {
	ins := a.builder.Instructions()
	bb := ins.BBIndices[i]
	fn := a.builder.BasicBlocks().FunctionIndex[bb]
	return a.builder.Functions().ReturnTypes[fn]
}

// ValidateControlFlow checks that every function's entry block has no
// predecessors, every block is reachable from the entry via a single
// forward breadth-first search (not the quadratic nested-worklist scan
// that the original validator used), and every block with no successors
// ends in a return or unreachable instruction.
func (a *Analyzer) ValidateControlFlow() []ValidationError {
	var errs []ValidationError
	bbs := a.builder.BasicBlocks()
	ins := a.builder.Instructions()
	fns := a.builder.Functions()

	for fi := 0; fi < fns.Len(); fi++ {
		start, count := fns.BasicBlocksOf(uint32(fi))
		if count == 0 {
			continue
		}
		entry := start

		if len(bbs.PredecessorsOf(entry)) != 0 {
			errs = append(errs, errAt(entry, "entry block bb%d must have no predecessors", entry))
		}

		reachable := a.reachableFrom(entry)
		for bb := start; bb < start+count; bb++ {
			if !reachable[bb] {
				errs = append(errs, errAt(bb, "bb%d is unreachable from the function entry", bb))
				continue
			}

			if len(bbs.SuccessorsOf(bb)) == 0 {
				instrStart, instrCount := bbs.InstructionsOf(bb)
				if instrCount == 0 {
					errs = append(errs, errAt(bb, "bb%d has no successors and no terminator", bb))
					continue
				}
				last := ins.Ops[instrStart+instrCount-1]
				if last != ir.FlowReturn && last != ir.FlowUnreachable {
					errs = append(errs, errAt(bb, "bb%d's only exit must end in return or unreachable", bb))
				}
			}
		}
	}

	return errs
}

// reachableFrom runs a single breadth-first search from entry over the
// block successor graph, visiting each block exactly once. The original
// analyzer nested a worklist loop inside a reachability loop, making this
// quadratic to exponential on large graphs; this is the single linear
// pass that was always intended.
func (a *Analyzer) reachableFrom(entry uint32) map[uint32]bool {
	bbs := a.builder.BasicBlocks()
	visited := map[uint32]bool{entry: true}
	queue := []uint32{entry}

	for len(queue) > 0 {
		bb := queue[0]
		queue = queue[1:]
		for _, succ := range bbs.SuccessorsOf(bb) {
			if !visited[succ] {
				visited[succ] = true
				queue = append(queue, succ)
			}
		}
	}

	return visited
}

package analyze

import "github.com/yu-lang/yu/ir"

// DefUseInfo records, for every virtual register, the instruction that
// defines it and every instruction that uses it. A phi's use of a value
// is attributed to the predecessor block that value flows in from,
// rather than to the phi's own block, since that is where the value must
// actually be live.
type DefUseInfo struct {
	Def      map[uint32]uint32   // register -> defining instruction
	DefBlock map[uint32]uint32   // register -> defining block
	Uses     map[uint32][]uint32 // register -> using instructions
	UseBlock map[uint32][]uint32 // register -> blocks each use is attributed to
}

// BuildDefUseChains walks every instruction once, recording definitions
// and attributing each operand use to the block it is live in.
func (a *Analyzer) BuildDefUseChains() *DefUseInfo {
	ins := a.builder.Instructions()
	info := &DefUseInfo{
		Def:      make(map[uint32]uint32),
		DefBlock: make(map[uint32]uint32),
		Uses:     make(map[uint32][]uint32),
		UseBlock: make(map[uint32][]uint32),
	}

	for i := 0; i < ins.Len(); i++ {
		idx := uint32(i)
		bb := ins.BBIndices[i]
		if ins.HasDest[i] {
			dest := ins.Destinations[i]
			info.Def[dest] = idx
			info.DefBlock[dest] = bb
		}

		if ins.Ops[i] == ir.SSAPhi {
			operands := ins.OperandsOf(idx)
			for j := 0; j+1 < len(operands); j += 2 {
				reg := operands[j]
				predBlock := operands[j+1]
				info.Uses[reg] = append(info.Uses[reg], idx)
				info.UseBlock[reg] = append(info.UseBlock[reg], predBlock)
			}
			continue
		}

		for _, reg := range ins.OperandsOf(idx) {
			info.Uses[reg] = append(info.Uses[reg], idx)
			info.UseBlock[reg] = append(info.UseBlock[reg], bb)
		}
	}

	return info
}

// UndefinedUses reports registers that are used but never defined by any
// instruction in the unit (excluding function parameters, which the
// caller is expected to check against separately since they have no
// defining instruction).
func (d *DefUseInfo) UndefinedUses(isParameter func(reg uint32) bool) []uint32 {
	var out []uint32
	for reg := range d.Uses {
		if _, ok := d.Def[reg]; ok {
			continue
		}
		if isParameter != nil && isParameter(reg) {
			continue
		}
		out = append(out, reg)
	}
	return out
}

package analyze

import "github.com/yu-lang/yu/ir"

// DominatorInfo records, for every basic block, its immediate dominator
// and the full chain of blocks that dominate it (including itself).
type DominatorInfo struct {
	IdomIndices      []uint32 // idom of block i; block i itself for the entry
	DominatorStarts  []uint32
	DominatorCounts  []uint32
	Dominators       []uint32
}

// DominatorsOf returns the blocks that dominate bb, including bb itself.
func (d *DominatorInfo) DominatorsOf(bb uint32) []uint32 {
	start := d.DominatorStarts[bb]
	count := d.DominatorCounts[bb]
	return d.Dominators[start : start+count]
}

// AnalyzeDominator computes the immediate-dominator tree of every
// function using the iterative Cooper-Harvey-Kennedy algorithm over a
// reverse postorder block numbering. This is the dataflow-fixpoint
// algorithm the analyzer is required to use in place of the classical
// Lengauer-Tarjan construction: simpler to implement correctly and fast
// enough for the block counts a single function produces.
func (a *Analyzer) AnalyzeDominator() *DominatorInfo {
	bbs := a.builder.BasicBlocks()
	fns := a.builder.Functions()
	n := bbs.Len()

	info := &DominatorInfo{
		IdomIndices:     make([]uint32, n),
		DominatorStarts: make([]uint32, n),
		DominatorCounts: make([]uint32, n),
	}
	for i := range info.IdomIndices {
		info.IdomIndices[i] = noIdom
	}

	for fi := 0; fi < fns.Len(); fi++ {
		start, count := fns.BasicBlocksOf(uint32(fi))
		if count == 0 {
			continue
		}
		a.computeDominatorsForFunction(bbs, start, count, info)
	}

	for bb := 0; bb < n; bb++ {
		chain := a.dominatorChain(info, uint32(bb))
		info.DominatorStarts[bb] = uint32(len(info.Dominators))
		info.DominatorCounts[bb] = uint32(len(chain))
		info.Dominators = append(info.Dominators, chain...)
	}

	return info
}

const noIdom = ^uint32(0)

func (a *Analyzer) dominatorChain(info *DominatorInfo, bb uint32) []uint32 {
	var chain []uint32
	for b := bb; ; {
		chain = append(chain, b)
		idom := info.IdomIndices[b]
		if idom == noIdom || idom == b {
			break
		}
		b = idom
	}
	return chain
}

// computeDominatorsForFunction runs the Cooper-Harvey-Kennedy fixpoint
// over one function's blocks, identified by reverse postorder index.
func (a *Analyzer) computeDominatorsForFunction(bbs *ir.BasicBlocks, start, count uint32, info *DominatorInfo) {
	entry := start
	order := a.reversePostorder(bbs, entry, start, count)

	rpoNumber := make(map[uint32]int, len(order))
	for i, bb := range order {
		rpoNumber[bb] = i
	}

	idom := make(map[int]int) // rpo index -> idom rpo index
	idom[rpoNumber[entry]] = rpoNumber[entry]

	changed := true
	for changed {
		changed = false
		for _, bb := range order {
			bi := rpoNumber[bb]
			if bb == entry {
				continue
			}
			preds := bbs.PredecessorsOf(bb)

			newIdom := -1
			for _, p := range preds {
				pi, ok := rpoNumber[p]
				if !ok {
					continue
				}
				if _, processed := idom[pi]; !processed {
					continue
				}
				if newIdom == -1 {
					newIdom = pi
					continue
				}
				newIdom = intersect(idom, newIdom, pi)
			}
			if newIdom == -1 {
				continue
			}
			if cur, ok := idom[bi]; !ok || cur != newIdom {
				idom[bi] = newIdom
				changed = true
			}
		}
	}

	for bb, bi := range rpoNumber {
		if idomRpo, ok := idom[bi]; ok {
			info.IdomIndices[bb] = order[idomRpo]
		}
	}
	info.IdomIndices[entry] = entry
}

func intersect(idom map[int]int, a, b int) int {
	for a != b {
		for a > b {
			a = idom[a]
		}
		for b > a {
			b = idom[b]
		}
	}
	return a
}

// reversePostorder walks the successor graph depth-first from entry and
// returns block indices in reverse postorder, restricted to the blocks
// belonging to [start, start+count).
func (a *Analyzer) reversePostorder(bbs *ir.BasicBlocks, entry, start, count uint32) []uint32 {
	visited := make(map[uint32]bool)
	var post []uint32

	var visit func(bb uint32)
	visit = func(bb uint32) {
		if visited[bb] || bb < start || bb >= start+count {
			return
		}
		visited[bb] = true
		for _, succ := range bbs.SuccessorsOf(bb) {
			visit(succ)
		}
		post = append(post, bb)
	}
	visit(entry)

	for i, j := 0, len(post)-1; i < j; i, j = i+1, j-1 {
		post[i], post[j] = post[j], post[i]
	}
	return post
}

// LivenessInfo records which registers are live at the entry/exit of each
// block.
type LivenessInfo struct {
	LiveInStart  []uint32
	LiveInCount  []uint32
	LiveIn       []uint32
	LiveOutStart []uint32
	LiveOutCount []uint32
	LiveOut      []uint32
}

// LiveInOf returns the registers live at the entry of block bb.
func (l *LivenessInfo) LiveInOf(bb uint32) []uint32 {
	start := l.LiveInStart[bb]
	count := l.LiveInCount[bb]
	return l.LiveIn[start : start+count]
}

// LiveOutOf returns the registers live at the exit of block bb.
func (l *LivenessInfo) LiveOutOf(bb uint32) []uint32 {
	start := l.LiveOutStart[bb]
	count := l.LiveOutCount[bb]
	return l.LiveOut[start : start+count]
}

// AnalyzeLiveness computes per-block live-in/live-out register sets via
// the standard backward dataflow fixpoint: liveOut[b] = union of
// liveIn[s] over successors s; liveIn[b] = use[b] union (liveOut[b] minus
// def[b]).
func (a *Analyzer) AnalyzeLiveness() *LivenessInfo {
	bbs := a.builder.BasicBlocks()
	ins := a.builder.Instructions()
	n := bbs.Len()

	useSets := make([]map[uint32]bool, n)
	defSets := make([]map[uint32]bool, n)
	for bb := 0; bb < n; bb++ {
		useSets[bb] = map[uint32]bool{}
		defSets[bb] = map[uint32]bool{}
		start, count := bbs.InstructionsOf(uint32(bb))
		for i := start; i < start+count; i++ {
			for _, op := range ins.OperandsOf(i) {
				if !defSets[bb][op] {
					useSets[bb][op] = true
				}
			}
			if ins.HasDest[i] {
				defSets[bb][ins.Destinations[i]] = true
			}
		}
	}

	liveIn := make([]map[uint32]bool, n)
	liveOut := make([]map[uint32]bool, n)
	for bb := 0; bb < n; bb++ {
		liveIn[bb] = map[uint32]bool{}
		liveOut[bb] = map[uint32]bool{}
	}

	changed := true
	for changed {
		changed = false
		for bb := n - 1; bb >= 0; bb-- {
			newOut := map[uint32]bool{}
			for _, succ := range bbs.SuccessorsOf(uint32(bb)) {
				for reg := range liveIn[succ] {
					newOut[reg] = true
				}
			}
			newIn := map[uint32]bool{}
			for reg := range useSets[bb] {
				newIn[reg] = true
			}
			for reg := range newOut {
				if !defSets[bb][reg] {
					newIn[reg] = true
				}
			}
			if !setsEqual(newIn, liveIn[bb]) || !setsEqual(newOut, liveOut[bb]) {
				liveIn[bb] = newIn
				liveOut[bb] = newOut
				changed = true
			}
		}
	}

	info := &LivenessInfo{
		LiveInStart:  make([]uint32, n),
		LiveInCount:  make([]uint32, n),
		LiveOutStart: make([]uint32, n),
		LiveOutCount: make([]uint32, n),
	}
	for bb := 0; bb < n; bb++ {
		info.LiveInStart[bb] = uint32(len(info.LiveIn))
		for reg := range liveIn[bb] {
			info.LiveIn = append(info.LiveIn, reg)
		}
		info.LiveInCount[bb] = uint32(len(info.LiveIn)) - info.LiveInStart[bb]

		info.LiveOutStart[bb] = uint32(len(info.LiveOut))
		for reg := range liveOut[bb] {
			info.LiveOut = append(info.LiveOut, reg)
		}
		info.LiveOutCount[bb] = uint32(len(info.LiveOut)) - info.LiveOutStart[bb]
	}
	return info
}

func setsEqual(a, b map[uint32]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}

// LoopInfo records the set of natural loops found in the control flow
// graph: one entry per loop header, with the blocks it contains and its
// nesting depth.
type LoopInfo struct {
	HeaderIndices []uint32
	LoopDepths    []int // indexed by block, 0 if not in any loop
	BlockStarts   []uint32
	BlockCounts   []uint32
	Blocks        []uint32
}

// BlocksOf returns the blocks belonging to the loop at loop-info index i.
func (l *LoopInfo) BlocksOf(i int) []uint32 {
	start := l.BlockStarts[i]
	count := l.BlockCounts[i]
	return l.Blocks[start : start+count]
}

// AnalyzeLoop finds natural loops via back edges: an edge (tail, header)
// is a back edge when header dominates tail. Each back edge's natural
// loop is the set of blocks that can reach tail without passing through
// header, found by a reverse walk from tail seeded at header.
func (a *Analyzer) AnalyzeLoop(dom *DominatorInfo) *LoopInfo {
	bbs := a.builder.BasicBlocks()
	n := bbs.Len()

	info := &LoopInfo{LoopDepths: make([]int, n)}

	for bb := 0; bb < n; bb++ {
		for _, succ := range bbs.SuccessorsOf(uint32(bb)) {
			if !dominates(dom, succ, uint32(bb)) {
				continue
			}
			header := succ
			tail := uint32(bb)
			members := natureLoopBody(bbs, header, tail)

			idx := len(info.HeaderIndices)
			info.HeaderIndices = append(info.HeaderIndices, header)
			info.BlockStarts = append(info.BlockStarts, uint32(len(info.Blocks)))
			info.BlockCounts = append(info.BlockCounts, uint32(len(members)))
			info.Blocks = append(info.Blocks, members...)
			_ = idx

			for _, m := range members {
				info.LoopDepths[m]++
			}
		}
	}

	return info
}

func dominates(dom *DominatorInfo, d, bb uint32) bool {
	for _, x := range dom.DominatorsOf(bb) {
		if x == d {
			return true
		}
	}
	return false
}

func natureLoopBody(bbs *ir.BasicBlocks, header, tail uint32) []uint32 {
	members := map[uint32]bool{header: true, tail: true}
	stack := []uint32{tail}
	for len(stack) > 0 {
		bb := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, p := range bbs.PredecessorsOf(bb) {
			if !members[p] {
				members[p] = true
				stack = append(stack, p)
			}
		}
	}
	out := make([]uint32, 0, len(members))
	for m := range members {
		out = append(out, m)
	}
	return out
}

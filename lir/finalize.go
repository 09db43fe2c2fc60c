package lir

// Finalize converts the function's control flow graph into the flat
// instruction vector consumed by an interpreter or code generator.  Two
// passes run once generation is complete: unreachable blocks are pruned, then
// the surviving blocks are flattened in order with symbolic jump targets
// rewritten to absolute instruction indices.  After Finalize, the graph is
// retained only for diagnostics.
func (fn *Function) Finalize() {
	fn.Graph.Prune()
	fn.flatten()
}

// Prune removes every block not reachable from the entry block by successor
// edges, rewriting the block vector wholesale.  Surviving blocks keep their
// relative order; block ids and edge sets are remapped to the new indices.
func (g *Graph) Prune() {
	reached := make([]bool, len(g.Blocks))

	// Depth-first traversal over successor edges from the entry block.
	stack := []int{g.EntryID}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if reached[id] {
			continue
		}
		reached[id] = true

		stack = append(stack, g.Block(id).Succs...)
	}

	// Compute the new id of each surviving block, preserving relative order.
	remap := make([]int, len(g.Blocks))
	var survivors []*BasicBlock
	for id, b := range g.Blocks {
		if reached[id] {
			remap[id] = len(survivors)
			survivors = append(survivors, b)
		} else {
			remap[id] = -1
		}
	}

	// Rewrite ids, edges, and jump targets in the surviving blocks.  A jump
	// always targets a successor, and every successor of a reachable block is
	// itself reachable, so the remapping is total over what remains.
	for _, b := range survivors {
		b.ID = remap[b.ID]

		succs := b.Succs[:0]
		for _, s := range b.Succs {
			if remap[s] >= 0 {
				succs = append(succs, remap[s])
			}
		}
		b.Succs = succs

		preds := b.Preds[:0]
		for _, p := range b.Preds {
			if remap[p] >= 0 {
				preds = append(preds, remap[p])
			}
		}
		b.Preds = preds

		for i := range b.Instrs {
			inst := &b.Instrs[i]
			if inst.Op == OpJump || inst.Op == OpJumpIfFalse {
				inst.Imm = uint32(remap[int(inst.Imm)])
			}
		}
	}

	g.Blocks = survivors
	g.EntryID = remap[g.EntryID]
	if g.ExitID >= 0 {
		g.ExitID = remap[g.ExitID]
	}
}

// flatten re-emits all block instructions in block order into the function's
// flat instruction vector.  Each block's starting offset is the prefix sum of
// the instruction counts before it; jump immediates are rewritten from block
// ids to those absolute offsets.
func (fn *Function) flatten() {
	g := fn.Graph

	offsets := make([]uint32, len(g.Blocks))
	var total uint32
	for i, b := range g.Blocks {
		offsets[i] = total
		total += uint32(len(b.Instrs))
	}

	out := make([]Instruction, 0, total)
	for _, b := range g.Blocks {
		for _, inst := range b.Instrs {
			if inst.Op == OpJump || inst.Op == OpJumpIfFalse {
				inst.Imm = offsets[int(inst.Imm)]
			}
			out = append(out, inst)
		}
	}

	fn.Instructions = out
}

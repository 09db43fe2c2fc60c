package lir

import "fmt"

// Validate checks the structural invariants of a control flow graph before
// flattening: at most one terminator per block and in last position, jump
// targets agreeing with recorded successor edges, successor counts, and
// successor/predecessor symmetry.  It is a testing and debugging aid: it is
// not invoked on the generation path, and a non-empty result indicates a
// generator bug rather than a user-facing error.
func Validate(g *Graph) []error {
	var errs []error

	for _, b := range g.Blocks {
		errs = append(errs, validateBlock(g, b)...)
	}

	if g.EntryID < 0 || g.EntryID >= len(g.Blocks) {
		errs = append(errs, fmt.Errorf("entry block id %d out of range", g.EntryID))
	}

	return errs
}

func validateBlock(g *Graph, b *BasicBlock) []error {
	var errs []error

	// Exactly one terminator, in last position.
	for i, inst := range b.Instrs {
		if inst.Op.IsTerminator() && i != len(b.Instrs)-1 {
			errs = append(errs, fmt.Errorf("block %d: terminator %s at position %d is not last", b.ID, inst.Op, i))
		}
	}

	// Dangling edge ids.
	for _, s := range b.Succs {
		if s < 0 || s >= len(g.Blocks) {
			errs = append(errs, fmt.Errorf("block %d: dangling successor id %d", b.ID, s))
		}
	}
	for _, p := range b.Preds {
		if p < 0 || p >= len(g.Blocks) {
			errs = append(errs, fmt.Errorf("block %d: dangling predecessor id %d", b.ID, p))
		}
	}

	// Successor/predecessor symmetry.
	for _, s := range b.Succs {
		if s >= 0 && s < len(g.Blocks) && !containsID(g.Blocks[s].Preds, b.ID) {
			errs = append(errs, fmt.Errorf("block %d: successor %d does not list it as a predecessor", b.ID, s))
		}
	}

	// Jump targets must agree with the successor set.
	term := b.Terminator()
	switch {
	case term == nil:
		if len(b.Succs) > 2 {
			errs = append(errs, fmt.Errorf("block %d: %d successors without a terminator", b.ID, len(b.Succs)))
		}
	case term.Op == OpJump:
		if len(b.Succs) != 1 {
			errs = append(errs, fmt.Errorf("block %d: unconditional jump with %d successors", b.ID, len(b.Succs)))
		}
		if !containsID(b.Succs, int(term.Imm)) {
			errs = append(errs, fmt.Errorf("block %d: jump target %d not in successor set %v", b.ID, term.Imm, b.Succs))
		}
	case term.Op == OpJumpIfFalse:
		if len(b.Succs) != 2 {
			errs = append(errs, fmt.Errorf("block %d: conditional jump with %d successors", b.ID, len(b.Succs)))
		}
		if !containsID(b.Succs, int(term.Imm)) {
			errs = append(errs, fmt.Errorf("block %d: conditional jump target %d not in successor set %v", b.ID, term.Imm, b.Succs))
		}
	case term.Op == OpReturn:
		if len(b.Succs) != 0 {
			errs = append(errs, fmt.Errorf("block %d: return with %d successors", b.ID, len(b.Succs)))
		}
	}

	return errs
}

func containsID(ids []int, id int) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

package lir

import "testing"

func TestPruneDropsUnreachable(t *testing.T) {
	fn := NewFunction("f", 0)
	g := fn.Graph

	entry := g.Entry()
	dead := g.NewBlock("dead")
	tail := g.NewBlock("tail")

	entry.Append(Instruction{Op: OpJump, Imm: uint32(tail.ID)})
	g.AddEdge(entry.ID, tail.ID)

	dead.Append(Instruction{Op: OpNop})
	dead.Append(Instruction{Op: OpReturn})

	tail.Append(Instruction{Op: OpReturn})

	g.Prune()

	if len(g.Blocks) != 2 {
		t.Fatalf("surviving blocks = %d, want 2", len(g.Blocks))
	}
	if g.Blocks[0] != entry || g.Blocks[1] != tail {
		t.Fatal("surviving blocks are not the reachable ones in original order")
	}
	if tail.ID != 1 {
		t.Errorf("tail id = %d, want 1 after remap", tail.ID)
	}
	if entry.Succs[0] != 1 {
		t.Errorf("entry succs = %v, want [1]", entry.Succs)
	}
	if entry.Instrs[0].Imm != 1 {
		t.Errorf("jump imm = %d, want remapped block id 1", entry.Instrs[0].Imm)
	}
	if g.EntryID != 0 {
		t.Errorf("entry id = %d, want 0", g.EntryID)
	}
}

func TestPrunePreservesRelativeOrder(t *testing.T) {
	fn := NewFunction("f", 0)
	g := fn.Graph

	entry := g.Entry()
	deadA := g.NewBlock("deadA")
	mid := g.NewBlock("mid")
	deadB := g.NewBlock("deadB")
	last := g.NewBlock("last")

	entry.Append(Instruction{Op: OpJump, Imm: uint32(mid.ID)})
	g.AddEdge(entry.ID, mid.ID)
	mid.Append(Instruction{Op: OpJump, Imm: uint32(last.ID)})
	g.AddEdge(mid.ID, last.ID)
	last.Append(Instruction{Op: OpReturn})

	_ = deadA
	_ = deadB

	g.Prune()

	want := []string{"entry", "mid", "last"}
	if len(g.Blocks) != len(want) {
		t.Fatalf("surviving blocks = %d, want %d", len(g.Blocks), len(want))
	}
	for i, b := range g.Blocks {
		if b.Label != want[i] {
			t.Errorf("block %d label = %q, want %q", i, b.Label, want[i])
		}
		if b.ID != i {
			t.Errorf("block %q id = %d, want %d", b.Label, b.ID, i)
		}
	}
}

func TestPruneUnreachableExit(t *testing.T) {
	fn := NewFunction("f", 0)
	g := fn.Graph

	entry := g.Entry()
	entry.Append(Instruction{Op: OpReturn})

	orphan := g.NewBlock("orphan")
	orphan.Append(Instruction{Op: OpReturn})
	orphan.IsExit = true
	g.ExitID = orphan.ID

	g.Prune()

	if len(g.Blocks) != 1 {
		t.Fatalf("surviving blocks = %d, want 1", len(g.Blocks))
	}
	if g.ExitID != -1 {
		t.Errorf("exit id = %d, want -1 for a pruned exit", g.ExitID)
	}
}

func TestFlattenRewritesJumpTargets(t *testing.T) {
	fn := NewFunction("f", 0)
	g := fn.Graph

	entry := g.Entry()
	body := g.NewBlock("body")
	exit := g.NewBlock("exit")

	entry.Append(Instruction{Op: OpLoadConst, Type: Bool, Dst: 0, Const: BoolConst(true)})
	entry.Append(Instruction{Op: OpJumpIfFalse, A: 0, Imm: uint32(exit.ID)})
	g.AddEdge(entry.ID, body.ID)
	g.AddEdge(entry.ID, exit.ID)

	body.Append(Instruction{Op: OpNop})
	body.Append(Instruction{Op: OpNop})
	body.Append(Instruction{Op: OpJump, Imm: uint32(exit.ID)})
	g.AddEdge(body.ID, exit.ID)

	exit.Append(Instruction{Op: OpReturn})

	fn.Finalize()

	if len(fn.Instructions) != 6 {
		t.Fatalf("instructions = %d, want 6", len(fn.Instructions))
	}

	// Block starting offsets: entry 0, body 2, exit 5.  Every jump immediate
	// must land exactly on the first instruction of its target block.
	if got := fn.Instructions[1].Imm; got != 5 {
		t.Errorf("conditional jump imm = %d, want 5", got)
	}
	if got := fn.Instructions[4].Imm; got != 5 {
		t.Errorf("jump imm = %d, want 5", got)
	}
	if fn.Instructions[5].Op != OpReturn {
		t.Errorf("inst[5].op = %s, want return", fn.Instructions[5].Op)
	}

	// All rewritten targets are valid indices.
	for i, inst := range fn.Instructions {
		if inst.Op == OpJump || inst.Op == OpJumpIfFalse {
			if int(inst.Imm) >= len(fn.Instructions) {
				t.Errorf("inst[%d]: jump target %d out of range", i, inst.Imm)
			}
		}
	}
}

func TestFinalizeSingleTerminatorPerBlock(t *testing.T) {
	fn := NewFunction("f", 0)
	g := fn.Graph

	entry := g.Entry()
	entry.Append(Instruction{Op: OpReturn})

	// Anything appended past the terminator is dead and dropped.
	entry.Append(Instruction{Op: OpNop})
	entry.Append(Instruction{Op: OpReturn})

	fn.Finalize()

	if len(fn.Instructions) != 1 {
		t.Fatalf("instructions = %d, want 1", len(fn.Instructions))
	}

	terms := 0
	for _, inst := range fn.Instructions {
		if inst.Op.IsTerminator() {
			terms++
		}
	}
	if terms != 1 {
		t.Errorf("terminators = %d, want 1", terms)
	}
}

package lir

import "fmt"

// BasicBlock is a maximal straight-line instruction sequence within a control
// flow graph.  Blocks are addressed by their index in the owning graph's
// block vector.
type BasicBlock struct {
	// ID is the block's index in the owning graph.
	ID int

	// Label is an optional descriptive label (eg. "while.header").
	Label string

	// Instrs is the ordered list of instructions in the block.
	Instrs []Instruction

	// Succs and Preds are the ids of the block's successor and predecessor
	// blocks.
	Succs []int
	Preds []int

	// IsEntry and IsExit mark the graph's entry and exit blocks.
	IsEntry bool
	IsExit  bool

	// Terminated is true once the block ends in a terminator instruction or
	// has been closed early (eg. by break or continue).  Instructions
	// appended to a terminated block are dropped: they are unreachable.
	Terminated bool
}

// Append adds an instruction to the end of the block.  Appending to a
// terminated block silently drops the instruction, matching normal dead code
// semantics after a terminator.  Appending a terminator marks the block
// terminated.
func (b *BasicBlock) Append(inst Instruction) {
	if b.Terminated {
		return
	}

	b.Instrs = append(b.Instrs, inst)

	if inst.Op.IsTerminator() {
		b.Terminated = true
	}
}

// MarkTerminated closes the block early without emitting an instruction.
// Break and continue use this to suppress dead code lowered after them into
// the same block.
func (b *BasicBlock) MarkTerminated() {
	b.Terminated = true
}

// Terminator returns the block's terminator instruction, or nil if the block
// does not end in one.
func (b *BasicBlock) Terminator() *Instruction {
	if len(b.Instrs) == 0 {
		return nil
	}

	last := &b.Instrs[len(b.Instrs)-1]
	if last.Op.IsTerminator() {
		return last
	}

	return nil
}

// -----------------------------------------------------------------------------

// Graph is a control flow graph under construction: an append-only vector of
// basic blocks addressed by index, plus entry and exit block ids.  Blocks are
// never physically removed except by Prune, which rewrites the vector
// wholesale once generation is complete.
type Graph struct {
	Blocks []*BasicBlock

	EntryID int
	ExitID  int
}

// NewGraph creates a new graph containing only an entry block.
func NewGraph() *Graph {
	g := &Graph{ExitID: -1}

	entry := g.NewBlock("entry")
	entry.IsEntry = true

	return g
}

// NewBlock appends a new empty block to the graph and returns it.
func (g *Graph) NewBlock(label string) *BasicBlock {
	b := &BasicBlock{ID: len(g.Blocks), Label: label}
	g.Blocks = append(g.Blocks, b)
	return b
}

// Block returns the block with the given id.  An out-of-range id is an
// internal invariant violation and panics.
func (g *Graph) Block(id int) *BasicBlock {
	if id < 0 || id >= len(g.Blocks) {
		panic(fmt.Sprintf("lir: no basic block with id %d", id))
	}

	return g.Blocks[id]
}

// AddEdge records a control flow edge between two blocks.  Duplicate edges
// are ignored.  Referencing a nonexistent block is an internal invariant
// violation and panics: it indicates a generator bug, not bad input.
func (g *Graph) AddEdge(from, to int) {
	src, dst := g.Block(from), g.Block(to)

	for _, s := range src.Succs {
		if s == to {
			return
		}
	}

	src.Succs = append(src.Succs, to)
	dst.Preds = append(dst.Preds, from)
}

// Entry returns the graph's entry block.
func (g *Graph) Entry() *BasicBlock {
	return g.Block(g.EntryID)
}

package generate

import (
	"lumen/ast"
	"lumen/lir"
)

// condValue lowers a branch or loop condition.  A condition register that is
// not already Bool is coerced with a `!= 0` comparison against a freshly
// loaded zero constant before it is used as a branch condition.
func (g *Generator) condValue(cond ast.Expr) lir.Reg {
	reg := g.emitExpr(cond)
	ct := g.fn.RegisterType(reg)
	if ct == lir.Bool {
		return reg
	}

	var zeroConst *lir.Constant
	if ct == lir.F64 {
		zeroConst = lir.FloatConst(0)
	} else {
		zeroConst = lir.IntConst(0)
	}

	zero := g.allocateRegister()
	g.fn.SetRegisterType(zero, zeroConst.Type)
	g.emit(lir.Instruction{Op: lir.OpLoadConst, Type: zeroConst.Type, Dst: zero, Const: zeroConst})

	dst := g.allocateRegister()
	g.fn.SetRegisterType(dst, lir.Bool)
	g.emit(lir.Instruction{Op: lir.OpCmpNEQ, Type: lir.Bool, Dst: dst, A: reg, B: zero, Loc: g.loc(cond.Span())})

	return dst
}

// closeBlockInto ends the current block with a jump to the given block unless
// it already has a terminator (eg. it ended early via break or return inside
// a nested construct).  Control never falls through between blocks: every
// continuing block ends in an explicit jump.
func (g *Generator) closeBlockInto(target *lir.BasicBlock) {
	if g.current.Terminated {
		return
	}

	g.emit(lir.Instruction{Op: lir.OpJump, Imm: uint32(target.ID)})
	g.fn.Graph.AddEdge(g.current.ID, target.ID)
}

// emitIfStmt lowers an if statement into dedicated then/else/end blocks with
// explicitly wired edges.  The conditional jump's false target is the else
// block (or the end block when there is no else); its not-taken path falls
// through into the then block, which is created immediately after the block
// holding the test.
func (g *Generator) emitIfStmt(is *ast.IfStmt) {
	g.startBranchBlock("if.cond")

	condBlk := g.current
	cond := g.condValue(is.Cond)

	thenBlk := g.newBlock("if.then")

	var elseBlk *lir.BasicBlock
	if is.Else != nil {
		elseBlk = g.newBlock("if.else")
	}

	endBlk := g.newBlock("if.end")

	falseTarget := endBlk
	if elseBlk != nil {
		falseTarget = elseBlk
	}

	condBlk.Append(lir.Instruction{Op: lir.OpJumpIfFalse, A: cond, Imm: uint32(falseTarget.ID), Loc: g.loc(is.Span())})
	g.fn.Graph.AddEdge(condBlk.ID, thenBlk.ID)
	g.fn.Graph.AddEdge(condBlk.ID, falseTarget.ID)

	g.current = thenBlk
	g.emitStmt(is.Then)
	g.closeBlockInto(endBlk)

	if elseBlk != nil {
		g.current = elseBlk
		g.emitStmt(is.Else)
		g.closeBlockInto(endBlk)
	}

	g.current = endBlk
}

// emitWhileStmt lowers a while loop into header/body/exit blocks.  The
// condition is re-evaluated in the header on every iteration; break targets
// the exit block and continue targets the header.
func (g *Generator) emitWhileStmt(ws *ast.WhileStmt) {
	header := g.newBlock("while.header")
	g.closeBlockInto(header)
	g.current = header

	cond := g.condValue(ws.Cond)

	body := g.newBlock("while.body")
	exit := g.newBlock("while.exit")

	header.Append(lir.Instruction{Op: lir.OpJumpIfFalse, A: cond, Imm: uint32(exit.ID), Loc: g.loc(ws.Span())})
	g.fn.Graph.AddEdge(header.ID, body.ID)
	g.fn.Graph.AddEdge(header.ID, exit.ID)

	g.loops = append(g.loops, loopContext{continueID: header.ID, breakID: exit.ID})

	g.current = body
	g.emitStmt(ws.Body)
	g.closeBlockInto(header)

	g.loops = g.loops[:len(g.loops)-1]
	g.current = exit
}

// emitForStmt lowers a C-style for loop into header/body/step/exit blocks.
// The init statement runs once before the header; continue targets the step
// block so the step always runs.
func (g *Generator) emitForStmt(fs *ast.ForStmt) {
	g.enterScope()

	if fs.Init != nil {
		g.emitStmt(fs.Init)
	}

	header := g.newBlock("for.header")
	g.closeBlockInto(header)
	g.current = header

	var cond lir.Reg
	if fs.Cond != nil {
		cond = g.condValue(fs.Cond)
	}

	body := g.newBlock("for.body")
	step := g.newBlock("for.step")
	exit := g.newBlock("for.exit")

	if fs.Cond != nil {
		header.Append(lir.Instruction{Op: lir.OpJumpIfFalse, A: cond, Imm: uint32(exit.ID), Loc: g.loc(fs.Span())})
		g.fn.Graph.AddEdge(header.ID, body.ID)
		g.fn.Graph.AddEdge(header.ID, exit.ID)
	} else {
		header.Append(lir.Instruction{Op: lir.OpJump, Imm: uint32(body.ID)})
		g.fn.Graph.AddEdge(header.ID, body.ID)
	}

	g.loops = append(g.loops, loopContext{continueID: step.ID, breakID: exit.ID})

	g.current = body
	g.emitStmt(fs.Body)
	g.closeBlockInto(step)

	g.current = step
	if fs.Step != nil {
		g.emitStmt(fs.Step)
	}
	g.closeBlockInto(header)

	g.loops = g.loops[:len(g.loops)-1]
	g.current = exit
	g.exitScope()
}

// emitIterStmt lowers sequence iteration with a real index protocol: the
// sequence's length is taken once, an index register counts up from zero, and
// the loop variable is rebound to the indexed element each iteration.
func (g *Generator) emitIterStmt(is *ast.IterStmt) {
	g.enterScope()

	seq := g.emitExpr(is.Seq)

	length := g.allocateRegister()
	g.fn.SetRegisterType(length, lir.I64)
	g.emit(lir.Instruction{Op: lir.OpListLen, Type: lir.I64, Dst: length, A: seq, Loc: g.loc(is.Span())})

	idx := g.allocateRegister()
	g.fn.SetRegisterType(idx, lir.I64)
	g.emit(lir.Instruction{Op: lir.OpLoadConst, Type: lir.I64, Dst: idx, Const: lir.IntConst(0)})

	one := g.allocateRegister()
	g.fn.SetRegisterType(one, lir.I64)
	g.emit(lir.Instruction{Op: lir.OpLoadConst, Type: lir.I64, Dst: one, Const: lir.IntConst(1)})

	header := g.newBlock("iter.header")
	g.closeBlockInto(header)
	g.current = header

	cond := g.allocateRegister()
	g.fn.SetRegisterType(cond, lir.Bool)
	g.emit(lir.Instruction{Op: lir.OpCmpLT, Type: lir.Bool, Dst: cond, A: idx, B: length})

	body := g.newBlock("iter.body")
	step := g.newBlock("iter.step")
	exit := g.newBlock("iter.exit")

	header.Append(lir.Instruction{Op: lir.OpJumpIfFalse, A: cond, Imm: uint32(exit.ID), Loc: g.loc(is.Span())})
	g.fn.Graph.AddEdge(header.ID, body.ID)
	g.fn.Graph.AddEdge(header.ID, exit.ID)

	g.loops = append(g.loops, loopContext{continueID: step.ID, breakID: exit.ID})

	g.current = body
	elem := g.allocateRegister()
	g.fn.SetRegisterType(elem, lir.Ptr)
	g.emit(lir.Instruction{Op: lir.OpListIndex, Type: lir.Ptr, Dst: elem, A: seq, B: idx})
	g.bindVariable(is.VarName, elem)

	g.emitStmt(is.Body)
	g.closeBlockInto(step)

	g.current = step
	g.emit(lir.Instruction{Op: lir.OpAdd, Type: lir.I64, Dst: idx, A: idx, B: one})
	g.closeBlockInto(header)

	g.loops = g.loops[:len(g.loops)-1]
	g.current = exit
	g.exitScope()
}

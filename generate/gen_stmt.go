package generate

import (
	"lumen/ast"
	"lumen/lir"
	"lumen/report"
)

// emitStmt lowers a single statement into the current block.  Unsupported
// constructs report a structured diagnostic and lower to nothing so that the
// rest of the program still produces a valid, if meaningless, IR.
func (g *Generator) emitStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		g.emitExpr(s.E)
	case *ast.PrintStmt:
		g.emitPrintStmt(s)
	case *ast.VarDecl:
		g.emitVarDecl(s)
	case *ast.BlockStmt:
		g.enterScope()
		for _, inner := range s.Stmts {
			g.emitStmt(inner)
		}
		g.exitScope()
	case *ast.IfStmt:
		g.emitIfStmt(s)
	case *ast.WhileStmt:
		g.emitWhileStmt(s)
	case *ast.ForStmt:
		g.emitForStmt(s)
	case *ast.IterStmt:
		g.emitIterStmt(s)
	case *ast.BreakStmt:
		g.emitLoopJump(s.Span(), "break", true)
	case *ast.ContinueStmt:
		g.emitLoopJump(s.Span(), "continue", false)
	case *ast.ReturnStmt:
		g.emitReturnStmt(s)
	case *ast.FuncDecl:
		g.errorf(s.Span(), report.DiagUnsupported, "nested function declarations are not yet supported")
	case *ast.ImportStmt:
		g.errorf(s.Span(), report.DiagUnsupported, "import statements are not yet supported")
	case *ast.MatchStmt:
		g.errorf(s.Span(), report.DiagUnsupported, "match statements are not yet supported")
	case *ast.ContractStmt:
		g.errorf(s.Span(), report.DiagUnsupported, "contract statements are not yet supported")
	case *ast.ComptimeStmt:
		g.errorf(s.Span(), report.DiagUnsupported, "comptime statements are not yet supported")
	case *ast.ParallelStmt:
		g.errorf(s.Span(), report.DiagUnsupported, "parallel statements are not yet supported")
	case *ast.ConcurrentStmt:
		g.errorf(s.Span(), report.DiagUnsupported, "concurrent statements are not yet supported")
	case *ast.TaskStmt:
		g.errorf(s.Span(), report.DiagUnsupported, "task statements are not yet supported")
	case *ast.WorkerStmt:
		g.errorf(s.Span(), report.DiagUnsupported, "worker statements are not yet supported")
	case *ast.UnsafeStmt:
		g.errorf(s.Span(), report.DiagUnsupported, "unsafe statements are not yet supported")
	default:
		g.errorf(stmt.Span(), report.DiagUnsupported, "unknown statement kind")
	}
}

// emitPrintStmt lowers a print statement to the typed output form matching
// each argument's ABI type.
func (g *Generator) emitPrintStmt(ps *ast.PrintStmt) {
	for _, arg := range ps.Args {
		reg := g.emitExpr(arg)

		var op lir.Opcode
		switch g.fn.RegisterType(reg) {
		case lir.I32, lir.I64:
			op = lir.OpPrintInt
		case lir.F64:
			op = lir.OpPrintFloat
		case lir.Bool:
			op = lir.OpPrintBool
		default:
			op = lir.OpPrintString
		}

		g.emit(lir.Instruction{Op: op, A: reg, Loc: g.loc(ps.Span())})
	}
}

// emitVarDecl lowers a variable declaration.  The variable binds directly to
// the initializer's register; a declaration without an initializer binds to a
// fresh register loaded with nil.
func (g *Generator) emitVarDecl(vd *ast.VarDecl) {
	var reg lir.Reg

	if vd.Init != nil {
		reg = g.emitExpr(vd.Init)
	} else {
		reg = g.allocateRegister()
		g.fn.SetRegisterType(reg, lir.Ptr)
		g.emit(lir.Instruction{
			Op:    lir.OpLoadConst,
			Type:  lir.Ptr,
			Dst:   reg,
			Const: lir.NilConst(),
			Loc:   g.loc(vd.Span()),
		})
	}

	g.bindVariable(vd.Name, reg)
	g.fn.Debug.RegDefs[reg] = g.loc(vd.Span())
}

// emitReturnStmt lowers a return statement, terminating the current block.
func (g *Generator) emitReturnStmt(rs *ast.ReturnStmt) {
	if rs.Value != nil {
		reg := g.emitExpr(rs.Value)
		g.emit(lir.Instruction{Op: lir.OpReturn, A: reg, B: 1, Loc: g.loc(rs.Span())})
		return
	}

	g.emit(lir.Instruction{Op: lir.OpReturn, Loc: g.loc(rs.Span())})
}

// emitLoopJump lowers break and continue against the innermost active loop
// context.  The jump terminates the current block: anything lowered into it
// afterwards is dead and dropped.
func (g *Generator) emitLoopJump(span *report.TextSpan, keyword string, isBreak bool) {
	if len(g.loops) == 0 {
		g.errorf(span, report.DiagUnsupported, "`%s` used outside of a loop", keyword)
		return
	}

	// Already-dead code: the jump would be dropped, so the edge must not be
	// recorded either.
	if g.current.Terminated {
		return
	}

	ctx := g.loops[len(g.loops)-1]
	target := ctx.continueID
	if isBreak {
		target = ctx.breakID
	}

	g.emit(lir.Instruction{Op: lir.OpJump, Imm: uint32(target), Loc: g.loc(span)})
	g.fn.Graph.AddEdge(g.current.ID, target)
	g.current.MarkTerminated()
}

package generate

import (
	"lumen/ast"
	"lumen/lir"
	"lumen/mem"
	"lumen/report"
)

// funcInfo is the signature information collected for a declared function
// before any bodies are lowered, so that calls may be emitted regardless of
// declaration order.
type funcInfo struct {
	// index is the function's position in the generated function list; it is
	// the immediate operand of call instructions targeting it.
	index uint32

	paramCount uint32
	returnType lir.Type

	decl *ast.FuncDecl
}

// loopContext stores the jump targets of the innermost active loop.
type loopContext struct {
	// continueID is the block id a continue statement jumps to.
	continueID int

	// breakID is the block id a break statement jumps to.
	breakID int
}

// Generator lowers a syntax tree into register-based LIR functions.  A fresh
// generator is used per compilation unit: generation is single-threaded and
// all of its state below is generator-local.
type Generator struct {
	// file is the source file name used for instruction locations.
	file string

	// fn is the function currently being built.
	fn *lir.Function

	// current is the basic block instructions are appended to.
	current *lir.BasicBlock

	// scopes is the stack of lexical scopes used to resolve variables.
	scopes []*scopeFrame

	// loops is the stack of enclosing loop contexts.
	loops []loopContext

	// nextReg is the monotonic register counter for the current function.
	nextReg lir.Reg

	// funcs maps declared function names to their collected signatures.
	funcs map[string]*funcInfo

	// diags accumulates all lowering diagnostics for the unit.
	diags []*report.Diagnostic

	// mgr hands out the scratch regions owned by scope frames.
	mgr *mem.Manager
}

// NewGenerator creates a new generator for a compilation unit in the given
// source file.
func NewGenerator(file string) *Generator {
	return &Generator{
		file:  file,
		funcs: make(map[string]*funcInfo),
		mgr:   mem.NewManager(),
	}
}

// Generate lowers a whole program.  Top-level statements become a synthetic
// `main` function; each declared function is lowered separately.  The
// returned function list is ordered by function index: main first, then the
// declared functions in declaration order.
//
// The diagnostic list is a first-class result: generation never fails, but a
// result accompanied by any diagnostics must not be handed to a code
// generator.
func Generate(program *ast.Program) ([]*lir.Function, []*report.Diagnostic) {
	g := NewGenerator(program.File)

	// Pass 0: collect the signatures of all declared functions so calls can
	// be lowered before their callees' bodies.
	var decls []*ast.FuncDecl
	var topLevel []ast.Stmt
	for _, stmt := range program.Statements {
		if fd, ok := stmt.(*ast.FuncDecl); ok {
			g.collectSignature(fd)
			decls = append(decls, fd)
		} else {
			topLevel = append(topLevel, stmt)
		}
	}

	// Pass 1: lower the synthetic main, then each declared function.
	fns := []*lir.Function{g.genFunction("main", nil, topLevel)}
	for _, fd := range decls {
		var body []ast.Stmt
		if fd.Body != nil {
			body = fd.Body.Stmts
		}

		fns = append(fns, g.genFunction(fd.Name, fd.Params, body))
	}

	return fns, g.diags
}

// GenerateFunction lowers a single function declaration in isolation.  The
// declaration is function 0 in the resulting numbering: there is no synthetic
// main, so recursive calls carry index 0.
func GenerateFunction(file string, fd *ast.FuncDecl) (*lir.Function, []*report.Diagnostic) {
	g := NewGenerator(file)
	g.collectSignature(fd)
	g.funcs[fd.Name].index = 0

	var body []ast.Stmt
	if fd.Body != nil {
		body = fd.Body.Stmts
	}

	return g.genFunction(fd.Name, fd.Params, body), g.diags
}

// HasErrors returns whether any diagnostics have been recorded so far.
func (g *Generator) HasErrors() bool {
	return len(g.diags) > 0
}

// -----------------------------------------------------------------------------

// collectSignature records a declared function's signature.  Declared
// functions are numbered from 1: index 0 is reserved for the synthetic main.
func (g *Generator) collectSignature(fd *ast.FuncDecl) {
	retType := lir.Ptr
	if fd.ReturnType != "" {
		retType = g.abiType(fd.ReturnType, fd.Span())
	}

	g.funcs[fd.Name] = &funcInfo{
		index:      uint32(len(g.funcs) + 1),
		paramCount: uint32(len(fd.Params)),
		returnType: retType,
		decl:       fd,
	}
}

// genFunction lowers one function body (or the top-level program) into a
// finalized function.  Parameters occupy registers 0..n-1.
func (g *Generator) genFunction(name string, params []ast.Param, body []ast.Stmt) *lir.Function {
	g.fn = lir.NewFunction(name, uint32(len(params)))
	g.current = g.fn.Graph.Entry()
	g.loops = nil
	g.nextReg = lir.Reg(len(params))

	g.enterScope()

	for i, param := range params {
		reg := lir.Reg(i)
		g.bindVariable(param.Name, reg)

		if param.TypeName != "" {
			g.fn.SetRegisterType(reg, g.abiType(param.TypeName, nil))
		}
	}

	for _, stmt := range body {
		g.emitStmt(stmt)
	}

	g.exitScope()

	// Add the implicit void return and mark the exit block.
	if !g.current.Terminated {
		g.emit(lir.Instruction{Op: lir.OpReturn})
	}
	g.current.IsExit = true
	g.fn.Graph.ExitID = g.current.ID

	g.fn.RegisterCount = g.nextReg
	g.fn.Finalize()

	fn := g.fn
	g.fn = nil
	g.current = nil
	return fn
}

// -----------------------------------------------------------------------------

// allocateRegister returns the next unused virtual register.  It never fails:
// the register space is unbounded.
func (g *Generator) allocateRegister() lir.Reg {
	reg := g.nextReg
	g.nextReg++
	return reg
}

// emit appends an instruction to the current block.  If the block has already
// been terminated, the instruction is unreachable and dropped.
func (g *Generator) emit(inst lir.Instruction) {
	g.current.Append(inst)
}

// newBlock appends a fresh block to the current function's graph.
func (g *Generator) newBlock(label string) *lir.BasicBlock {
	return g.fn.Graph.NewBlock(label)
}

// startBranchBlock guarantees that the current block is the newest block in
// the graph before a conditional branch is lowered.  The not-taken path of a
// conditional jump falls through to the next block in block order, so the
// branch's fall-through block must be created immediately after the block
// holding the jump.  If older blocks would intervene, the branch moves to a
// fresh block first.
func (g *Generator) startBranchBlock(label string) {
	if !g.current.Terminated && g.current.ID == len(g.fn.Graph.Blocks)-1 {
		return
	}

	// A terminated current block means the branch itself is dead code: it is
	// still lowered, into blocks that pruning will discard.
	next := g.newBlock(label)
	if !g.current.Terminated {
		g.emit(lir.Instruction{Op: lir.OpJump, Imm: uint32(next.ID)})
		g.fn.Graph.AddEdge(g.current.ID, next.ID)
	}
	g.current = next
}

// -----------------------------------------------------------------------------

// abiType maps a source type annotation to its ABI representation.
func (g *Generator) abiType(name string, span *report.TextSpan) lir.Type {
	switch name {
	case "i32":
		return lir.I32
	case "i64", "int":
		return lir.I64
	case "f64", "float":
		return lir.F64
	case "bool":
		return lir.Bool
	case "string", "str", "list":
		return lir.Ptr
	default:
		g.errorf(span, report.DiagUnsupported, "unknown type annotation: `%s`", name)
		return lir.Void
	}
}

// loc converts a node span into an instruction source location.
func (g *Generator) loc(span *report.TextSpan) lir.SourceLoc {
	if span == nil {
		return lir.SourceLoc{File: g.file}
	}

	return lir.SourceLoc{File: g.file, Line: span.StartLine + 1, Col: span.StartCol + 1}
}

// errorf records a lowering diagnostic.  All lowering failures are non-fatal:
// the generator substitutes a degenerate value and continues so that one pass
// can report every error in the program.
func (g *Generator) errorf(span *report.TextSpan, kind int, msg string, args ...interface{}) {
	switch kind {
	case report.DiagUnresolved:
		g.diags = append(g.diags, report.Unresolvedf(span, msg, args...))
	default:
		g.diags = append(g.diags, report.Unsupportedf(span, msg, args...))
	}
}

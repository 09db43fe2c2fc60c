package generate

import (
	"strconv"

	"lumen/ast"
	"lumen/lir"
	"lumen/report"
)

// emitExpr lowers an expression and returns the register holding its value.
// The register's ABI type is always recorded before the instruction writing
// it is emitted: emission consults the type map when sizing destinations.
// Lowering never fails: an erroneous expression reports a diagnostic and
// lowers to register 0.
func (g *Generator) emitExpr(expr ast.Expr) lir.Reg {
	switch e := expr.(type) {
	case *ast.Literal:
		return g.emitLiteral(e)
	case *ast.VarRef:
		return g.emitVarRef(e)
	case *ast.InterpolatedString:
		return g.emitInterpolatedString(e)
	case *ast.Binary:
		return g.emitBinary(e)
	case *ast.Unary:
		return g.emitUnary(e)
	case *ast.Call:
		return g.emitCall(e)
	case *ast.Assign:
		return g.emitAssign(e)
	case *ast.Grouping:
		return g.emitExpr(e.Inner)
	case *ast.ListLit:
		return g.emitListLit(e)
	case *ast.Index:
		g.errorf(e.Span(), report.DiagUnsupported, "index expressions are not yet supported")
		return 0
	case *ast.Member:
		g.errorf(e.Span(), report.DiagUnsupported, "member expressions are not yet supported")
		return 0
	default:
		g.errorf(expr.Span(), report.DiagUnsupported, "unknown expression kind")
		return 0
	}
}

// emitLiteral lowers a literal to a constant load.  Numeric-looking text is
// parsed as an integer or float (float when the text contains `.`, `e`, or
// `E`); a failed numeric parse falls back to a string constant.
func (g *Generator) emitLiteral(lit *ast.Literal) lir.Reg {
	var c *lir.Constant

	switch lit.Kind {
	case ast.LitBool:
		c = lir.BoolConst(lit.Bool)
	case ast.LitNil:
		c = lir.NilConst()
	default:
		c = g.classifyTextLiteral(lit.Value)
	}

	dst := g.allocateRegister()
	g.fn.SetRegisterType(dst, c.Type)
	g.fn.Debug.RegDefs[dst] = g.loc(lit.Span())

	g.emit(lir.Instruction{
		Op:    lir.OpLoadConst,
		Type:  c.Type,
		Dst:   dst,
		Const: c,
		Loc:   g.loc(lit.Span()),
	})

	return dst
}

// classifyTextLiteral parses a text literal into a typed constant.
func (g *Generator) classifyTextLiteral(text string) *lir.Constant {
	if !isNumericLiteral(text) {
		return lir.StrConst(text)
	}

	if isFloatLiteral(text) {
		if f, err := strconv.ParseFloat(text, 64); err == nil {
			return lir.FloatConst(f)
		}
	} else if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return lir.IntConst(n)
	}

	return lir.StrConst(text)
}

// emitVarRef resolves a variable reference to its register.
func (g *Generator) emitVarRef(ref *ast.VarRef) lir.Reg {
	reg := g.resolveVariable(ref.Name)
	if reg == lir.RegNone {
		g.errorf(ref.Span(), report.DiagUnresolved, "undefined variable: `%s`", ref.Name)
		return 0
	}

	return reg
}

// emitInterpolatedString lowers string interpolation via the string builder
// protocol: create a builder, append each literal fragment as a string
// constant and each embedded expression through a to-string conversion, then
// finish the builder into a single string register.  Empty interpolation
// short-circuits to a constant empty string with no builder at all.
func (g *Generator) emitInterpolatedString(is *ast.InterpolatedString) lir.Reg {
	if len(is.Parts) == 0 {
		dst := g.allocateRegister()
		g.fn.SetRegisterType(dst, lir.Ptr)
		g.emit(lir.Instruction{
			Op:    lir.OpLoadConst,
			Type:  lir.Ptr,
			Dst:   dst,
			Const: lir.StrConst(""),
			Loc:   g.loc(is.Span()),
		})
		return dst
	}

	builder := g.allocateRegister()
	g.fn.SetRegisterType(builder, lir.Ptr)
	g.emit(lir.Instruction{Op: lir.OpSBCreate, Type: lir.Ptr, Dst: builder, Loc: g.loc(is.Span())})

	for _, part := range is.Parts {
		var piece lir.Reg

		if part.Expr != nil {
			val := g.emitExpr(part.Expr)

			piece = g.allocateRegister()
			g.fn.SetRegisterType(piece, lir.Ptr)
			g.emit(lir.Instruction{Op: lir.OpToString, Type: lir.Ptr, Dst: piece, A: val, Loc: g.loc(part.Expr.Span())})
		} else {
			piece = g.allocateRegister()
			g.fn.SetRegisterType(piece, lir.Ptr)
			g.emit(lir.Instruction{
				Op:    lir.OpLoadConst,
				Type:  lir.Ptr,
				Dst:   piece,
				Const: lir.StrConst(part.Text),
				Loc:   g.loc(is.Span()),
			})
		}

		g.emit(lir.Instruction{Op: lir.OpSBAppend, A: builder, B: piece})
	}

	dst := g.allocateRegister()
	g.fn.SetRegisterType(dst, lir.Ptr)
	g.emit(lir.Instruction{Op: lir.OpSBFinish, Type: lir.Ptr, Dst: dst, A: builder, Loc: g.loc(is.Span())})

	return dst
}

// emitBinary lowers a binary operator application.  String-vs-numeric
// disambiguation for `+` happens here rather than in the type table: two
// non-numeric string literals are folded into a single constant at compile
// time, and an operand pair in which either side is string-typed is lowered
// as concatenation.
func (g *Generator) emitBinary(bin *ast.Binary) lir.Reg {
	if bin.Op == ast.OpAdd {
		if llit, lok := isStringLiteral(bin.Lhs); lok {
			if rlit, rok := isStringLiteral(bin.Rhs); rok {
				return g.foldStringConcat(bin, llit, rlit)
			}
		}
	}

	lhs := g.emitExpr(bin.Lhs)
	rhs := g.emitExpr(bin.Rhs)
	lt, rt := g.fn.RegisterType(lhs), g.fn.RegisterType(rhs)

	if bin.Op == ast.OpAdd && (lt == lir.Ptr || rt == lir.Ptr) {
		return g.emitConcat(bin, lhs, rhs, lt, rt)
	}

	op, ok := binaryOpcode(bin.Op)
	if !ok {
		g.errorf(bin.Span(), report.DiagUnsupported, "unknown binary operator: `%s`", ast.OperNames[bin.Op])
		return 0
	}

	resultType := binaryResultType(bin.Op, lt, rt)

	dst := g.allocateRegister()
	g.fn.SetRegisterType(dst, resultType)
	g.fn.Debug.RegDefs[dst] = g.loc(bin.Span())

	g.emit(lir.Instruction{Op: op, Type: resultType, Dst: dst, A: lhs, B: rhs, Loc: g.loc(bin.Span())})
	return dst
}

// foldStringConcat concatenates two string literals at compile time, emitting
// a single constant load and no runtime instruction.  The fold is assembled
// in the innermost scope's scratch region.
func (g *Generator) foldStringConcat(bin *ast.Binary, lhs, rhs *ast.Literal) lir.Reg {
	buf := g.currentRegion().AcquireBuffer()
	buf.WriteString(lhs.Value)
	buf.WriteString(rhs.Value)

	dst := g.allocateRegister()
	g.fn.SetRegisterType(dst, lir.Ptr)

	g.emit(lir.Instruction{
		Op:    lir.OpLoadConst,
		Type:  lir.Ptr,
		Dst:   dst,
		Const: lir.StrConst(buf.String()),
		Loc:   g.loc(bin.Span()),
	})

	return dst
}

// emitConcat lowers `+` over at least one string operand as concatenation.  A
// non-string side is first run through a to-string conversion.
func (g *Generator) emitConcat(bin *ast.Binary, lhs, rhs lir.Reg, lt, rt lir.Type) lir.Reg {
	if lt != lir.Ptr {
		lhs = g.emitToString(lhs, bin.Lhs.Span())
	}
	if rt != lir.Ptr {
		rhs = g.emitToString(rhs, bin.Rhs.Span())
	}

	dst := g.allocateRegister()
	g.fn.SetRegisterType(dst, lir.Ptr)

	g.emit(lir.Instruction{Op: lir.OpConcat, Type: lir.Ptr, Dst: dst, A: lhs, B: rhs, Loc: g.loc(bin.Span())})
	return dst
}

// emitToString converts a register to its string representation.
func (g *Generator) emitToString(src lir.Reg, span *report.TextSpan) lir.Reg {
	dst := g.allocateRegister()
	g.fn.SetRegisterType(dst, lir.Ptr)

	g.emit(lir.Instruction{Op: lir.OpToString, Type: lir.Ptr, Dst: dst, A: src, Loc: g.loc(span)})
	return dst
}

// emitUnary lowers a unary operator application.
func (g *Generator) emitUnary(un *ast.Unary) lir.Reg {
	operand := g.emitExpr(un.Operand)
	ot := g.fn.RegisterType(operand)

	switch un.Op {
	case ast.OpPos:
		// Unary plus is the identity.
		return operand

	case ast.OpNeg:
		resultType := unaryResultType(un.Op, ot)

		dst := g.allocateRegister()
		g.fn.SetRegisterType(dst, resultType)
		g.emit(lir.Instruction{Op: lir.OpNeg, Type: resultType, Dst: dst, A: operand, Loc: g.loc(un.Span())})
		return dst

	case ast.OpNot:
		dst := g.allocateRegister()
		g.fn.SetRegisterType(dst, lir.Bool)
		g.emit(lir.Instruction{Op: lir.OpNot, Type: lir.Bool, Dst: dst, A: operand, Loc: g.loc(un.Span())})
		return dst

	case ast.OpCompl:
		// Bitwise complement is xor against all-ones.
		ones := g.allocateRegister()
		g.fn.SetRegisterType(ones, lir.I64)
		g.emit(lir.Instruction{Op: lir.OpLoadConst, Type: lir.I64, Dst: ones, Const: lir.IntConst(-1)})

		dst := g.allocateRegister()
		g.fn.SetRegisterType(dst, lir.I64)
		g.emit(lir.Instruction{Op: lir.OpXor, Type: lir.I64, Dst: dst, A: operand, B: ones, Loc: g.loc(un.Span())})
		return dst

	default:
		g.errorf(un.Span(), report.DiagUnsupported, "unknown unary operator: `%s`", ast.OperNames[un.Op])
		return 0
	}
}

// emitCall lowers a call to a named function.  Arguments are lowered, then
// moved into freshly allocated consecutive registers so the callee's
// arguments form one contiguous window.
func (g *Generator) emitCall(call *ast.Call) lir.Reg {
	fi, ok := g.funcs[call.Name]
	if !ok {
		g.errorf(call.Span(), report.DiagUnresolved, "undefined function: `%s`", call.Name)
		return 0
	}

	if uint32(len(call.Args)) != fi.paramCount {
		g.errorf(call.Span(), report.DiagUnresolved,
			"function `%s` expects %d arguments but was called with %d", call.Name, fi.paramCount, len(call.Args))
		return 0
	}

	argRegs := make([]lir.Reg, len(call.Args))
	for i, arg := range call.Args {
		argRegs[i] = g.emitExpr(arg)
	}

	var first lir.Reg
	for i, src := range argRegs {
		dst := g.allocateRegister()
		if i == 0 {
			first = dst
		}

		t := g.fn.RegisterType(src)
		g.fn.SetRegisterType(dst, t)
		g.emit(lir.Instruction{Op: lir.OpMov, Type: t, Dst: dst, A: src})
	}

	dst := g.allocateRegister()
	g.fn.SetRegisterType(dst, fi.returnType)

	g.emit(lir.Instruction{
		Op:   lir.OpCall,
		Type: fi.returnType,
		Dst:  dst,
		A:    first,
		B:    uint32(len(call.Args)),
		Imm:  fi.index,
		Loc:  g.loc(call.Span()),
	})

	return dst
}

// emitAssign lowers an assignment expression.  Assignment to a plain name
// reuses the variable's register if it is bound and allocates one otherwise;
// the source's ABI type is recorded onto the destination before the move is
// emitted.  Member and index assignment are not yet lowered.
func (g *Generator) emitAssign(asn *ast.Assign) lir.Reg {
	if asn.Target != nil {
		g.errorf(asn.Span(), report.DiagUnsupported, "member/index assignment is not yet supported")
		return 0
	}

	val := g.emitExpr(asn.Value)
	vt := g.fn.RegisterType(val)

	dst := g.resolveVariable(asn.Name)
	if dst == lir.RegNone {
		dst = g.allocateRegister()
	}

	g.fn.SetRegisterType(dst, vt)
	g.fn.Debug.RegDefs[dst] = g.loc(asn.Span())
	g.updateVariableBinding(asn.Name, dst)

	g.emit(lir.Instruction{Op: lir.OpMov, Type: vt, Dst: dst, A: val, Loc: g.loc(asn.Span())})
	return dst
}

// emitListLit lowers a list literal: create an empty list, then append each
// element in order.
func (g *Generator) emitListLit(ll *ast.ListLit) lir.Reg {
	dst := g.allocateRegister()
	g.fn.SetRegisterType(dst, lir.Ptr)
	g.emit(lir.Instruction{Op: lir.OpListCreate, Type: lir.Ptr, Dst: dst, Loc: g.loc(ll.Span())})

	for _, elem := range ll.Elems {
		reg := g.emitExpr(elem)
		g.emit(lir.Instruction{Op: lir.OpListAppend, A: dst, B: reg})
	}

	return dst
}

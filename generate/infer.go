package generate

import (
	"strings"

	"lumen/ast"
	"lumen/lir"
)

// binaryResultType derives the ABI result type of a binary operation from its
// operand types.  The first matching rule wins: comparisons and logical
// operators always yield Bool, xor yields I64, and arithmetic promotes to F64
// when either operand is F64, stays I32 when either operand is I32, and
// defaults to I64 otherwise.
func binaryResultType(op int, lt, rt lir.Type) lir.Type {
	switch op {
	case ast.OpEq, ast.OpNeq, ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe:
		return lir.Bool
	case ast.OpAnd, ast.OpOr:
		return lir.Bool
	case ast.OpXor:
		return lir.I64
	default:
		if lt == lir.F64 || rt == lir.F64 {
			return lir.F64
		}
		if lt == lir.I32 || rt == lir.I32 {
			return lir.I32
		}
		return lir.I64
	}
}

// unaryResultType derives the ABI result type of a unary operation.
func unaryResultType(op int, t lir.Type) lir.Type {
	switch op {
	case ast.OpNot:
		return lir.Bool
	case ast.OpCompl:
		return lir.I64
	default:
		// Negation and unary plus preserve the operand's type.
		return t
	}
}

// binaryOpcode maps an AST binary operator to its LIR op code.
func binaryOpcode(op int) (lir.Opcode, bool) {
	switch op {
	case ast.OpAdd:
		return lir.OpAdd, true
	case ast.OpSub:
		return lir.OpSub, true
	case ast.OpMul:
		return lir.OpMul, true
	case ast.OpDiv:
		return lir.OpDiv, true
	case ast.OpMod:
		return lir.OpMod, true
	case ast.OpEq:
		return lir.OpCmpEQ, true
	case ast.OpNeq:
		return lir.OpCmpNEQ, true
	case ast.OpLt:
		return lir.OpCmpLT, true
	case ast.OpLe:
		return lir.OpCmpLE, true
	case ast.OpGt:
		return lir.OpCmpGT, true
	case ast.OpGe:
		return lir.OpCmpGE, true
	case ast.OpAnd:
		return lir.OpAnd, true
	case ast.OpOr:
		return lir.OpOr, true
	case ast.OpXor:
		return lir.OpXor, true
	default:
		return 0, false
	}
}

// -----------------------------------------------------------------------------

// isNumericLiteral classifies a literal's source text: it is numeric if its
// first character is a digit, `+`, `-`, or `.`; any other text is a string
// literal.
func isNumericLiteral(s string) bool {
	if s == "" {
		return false
	}

	c := s[0]
	return c >= '0' && c <= '9' || c == '+' || c == '-' || c == '.'
}

// isFloatLiteral reports whether a numeric literal spells a floating-point
// number.
func isFloatLiteral(s string) bool {
	return strings.ContainsAny(s, ".eE")
}

// isStringLiteral reports whether an expression is a literal whose text is
// not numeric: the operand classification used to resolve `+` between
// strings at lowering time.
func isStringLiteral(e ast.Expr) (*ast.Literal, bool) {
	lit, ok := e.(*ast.Literal)
	if ok && lit.Kind == ast.LitText && !isNumericLiteral(lit.Value) {
		return lit, true
	}

	return nil, false
}

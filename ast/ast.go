package ast

import "lumen/report"

// The abstract interface for all AST nodes.
type Node interface {
	// The text span of the AST node.
	Span() *report.TextSpan
}

// Expr is the interface implemented by all expression nodes.  The exprNode
// marker keeps the set of expressions closed so lowering can match over it
// exhaustively.
type Expr interface {
	Node
	exprNode()
}

// Stmt is the interface implemented by all statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

// -----------------------------------------------------------------------------

// A utility base struct for all AST nodes.
type ASTBase struct {
	// The span over which the AST node occurs.
	span *report.TextSpan
}

// NewASTBaseOn creates a new AST base with the given span.
func NewASTBaseOn(span *report.TextSpan) ASTBase {
	return ASTBase{span: span}
}

// NewASTBaseOver creates a new AST base spanning over two spans.
func NewASTBaseOver(start, end *report.TextSpan) ASTBase {
	return ASTBase{span: report.NewSpanOver(start, end)}
}

func (ab ASTBase) Span() *report.TextSpan {
	return ab.span
}

// ExprBase is the base struct for all expression nodes.
type ExprBase struct {
	ASTBase
}

func (ExprBase) exprNode() {}

// StmtBase is the base struct for all statement nodes.
type StmtBase struct {
	ASTBase
}

func (StmtBase) stmtNode() {}

// -----------------------------------------------------------------------------

// Program is a whole parsed compilation unit: the ordered list of its
// top-level statements.
type Program struct {
	// The name of the source file the program was parsed from.
	File string

	// The top-level statements in source order.
	Statements []Stmt
}

// -----------------------------------------------------------------------------

// Enumeration of operator kinds used by binary and unary expressions.
const (
	OpAdd = iota
	OpSub
	OpMul
	OpDiv
	OpMod

	OpEq
	OpNeq
	OpLt
	OpLe
	OpGt
	OpGe

	OpAnd
	OpOr
	OpXor

	OpNeg   // unary `-`
	OpPos   // unary `+`
	OpNot   // unary `!`
	OpCompl // unary `~`
)

// OperNames maps operator kinds to their source spellings for use in error
// messages.
var OperNames = map[int]string{
	OpAdd:   "+",
	OpSub:   "-",
	OpMul:   "*",
	OpDiv:   "/",
	OpMod:   "%",
	OpEq:    "==",
	OpNeq:   "!=",
	OpLt:    "<",
	OpLe:    "<=",
	OpGt:    ">",
	OpGe:    ">=",
	OpAnd:   "and",
	OpOr:    "or",
	OpXor:   "^",
	OpNeg:   "-",
	OpPos:   "+",
	OpNot:   "!",
	OpCompl: "~",
}

package ast

// Enumeration of literal kinds.
const (
	LitText = iota // A quoted literal: may still spell a number, see lowering.
	LitBool        // A boolean literal.
	LitNil         // The nil literal.
)

// Literal represents a literal expression.  The scanner does not classify
// numbers: a numeric literal arrives as its source text in Value and is
// parsed during lowering.
type Literal struct {
	ExprBase

	// The kind of the literal.  Must be one of the enumerated literal kinds.
	Kind int

	// The literal's source text with any quotes removed.  Meaningful only for
	// LitText literals.
	Value string

	// The boolean value of a LitBool literal.
	Bool bool
}

// VarRef represents a reference to a variable by name.
type VarRef struct {
	ExprBase

	Name string
}

// InterpPart is a single piece of an interpolated string: either a literal
// text fragment or an embedded expression.  Exactly one of the two fields is
// meaningful: Expr when non-nil, Text otherwise.
type InterpPart struct {
	Text string
	Expr Expr
}

// InterpolatedString represents a string literal with embedded expressions.
type InterpolatedString struct {
	ExprBase

	Parts []InterpPart
}

// Binary represents a binary operator application.
type Binary struct {
	ExprBase

	// The operator kind.  Must be one of the enumerated binary operators.
	Op int

	Lhs, Rhs Expr
}

// Unary represents a unary operator application.
type Unary struct {
	ExprBase

	// The operator kind.  Must be one of the enumerated unary operators.
	Op int

	Operand Expr
}

// Call represents a call to a named function.
type Call struct {
	ExprBase

	Name string
	Args []Expr
}

// Assign represents an assignment expression.  For a plain variable
// assignment, Name is set and Target is nil.  For member or index assignment,
// Target holds the assigned-to expression and Name is empty.
type Assign struct {
	ExprBase

	Name   string
	Target Expr
	Value  Expr
}

// Grouping represents a parenthesized expression.
type Grouping struct {
	ExprBase

	Inner Expr
}

// ListLit represents a list literal.
type ListLit struct {
	ExprBase

	Elems []Expr
}

// Index represents an index expression such as `xs[i]`.
type Index struct {
	ExprBase

	Object Expr
	Key    Expr
}

// Member represents a member-access expression such as `obj.field`.
type Member struct {
	ExprBase

	Object Expr
	Name   string
}

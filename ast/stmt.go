package ast

// ExprStmt represents an expression used as a statement.
type ExprStmt struct {
	StmtBase

	E Expr
}

// PrintStmt represents a print statement.
type PrintStmt struct {
	StmtBase

	Args []Expr
}

// VarDecl represents a variable declaration with an optional initializer.
type VarDecl struct {
	StmtBase

	Name string
	Init Expr
}

// BlockStmt represents a braced block of statements.
type BlockStmt struct {
	StmtBase

	Stmts []Stmt
}

// -----------------------------------------------------------------------------

// IfStmt represents an if statement with an optional else branch.
type IfStmt struct {
	StmtBase

	Cond Expr
	Then Stmt

	// The else branch: nil if absent.  May itself be an IfStmt (`else if`).
	Else Stmt
}

// WhileStmt represents a while loop.
type WhileStmt struct {
	StmtBase

	Cond Expr
	Body Stmt
}

// ForStmt represents a C-style for loop.  Init, Cond, and Step may each be
// nil.
type ForStmt struct {
	StmtBase

	Init Stmt
	Cond Expr
	Step Stmt
	Body Stmt
}

// IterStmt represents iteration over a sequence: `iter x in xs { ... }`.
type IterStmt struct {
	StmtBase

	VarName string
	Seq     Expr
	Body    Stmt
}

// BreakStmt represents a break statement.
type BreakStmt struct {
	StmtBase
}

// ContinueStmt represents a continue statement.
type ContinueStmt struct {
	StmtBase
}

// ReturnStmt represents a return statement with an optional value.
type ReturnStmt struct {
	StmtBase

	Value Expr
}

// -----------------------------------------------------------------------------

// Param is a single function parameter: its name and an optional type
// annotation spelled as in source (`i32`, `i64`, `f64`, `bool`, `string`).
// An empty TypeName leaves the parameter's register untyped.
type Param struct {
	Name     string
	TypeName string
}

// FuncDecl represents a function declaration.
type FuncDecl struct {
	StmtBase

	Name       string
	Params     []Param
	ReturnType string
	Body       *BlockStmt
}

// ImportStmt represents a module import.
type ImportStmt struct {
	StmtBase

	Path string
}

// MatchStmt represents a pattern-match statement.
type MatchStmt struct {
	StmtBase

	Subject Expr
}

// ContractStmt represents a contract block.
type ContractStmt struct {
	StmtBase

	Body *BlockStmt
}

// ComptimeStmt represents a compile-time evaluated block.
type ComptimeStmt struct {
	StmtBase

	Body *BlockStmt
}

// ParallelStmt represents a parallel execution block.
type ParallelStmt struct {
	StmtBase

	Body *BlockStmt
}

// ConcurrentStmt represents a concurrent execution block.
type ConcurrentStmt struct {
	StmtBase

	Body *BlockStmt
}

// TaskStmt represents a task declaration.
type TaskStmt struct {
	StmtBase

	Name string
	Body *BlockStmt
}

// WorkerStmt represents a worker declaration.
type WorkerStmt struct {
	StmtBase

	Name string
	Body *BlockStmt
}

// UnsafeStmt represents an unsafe block.
type UnsafeStmt struct {
	StmtBase

	Body *BlockStmt
}

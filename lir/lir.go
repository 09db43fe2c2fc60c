package lir

import (
	"fmt"
	"strconv"
)

// Reg is a virtual register index within one function's register space.
// Registers are unbounded, allocated monotonically, and never reused within a
// single lowering pass.
type Reg = uint32

// RegNone is the sentinel returned when resolving a name that is not bound in
// any active scope.
const RegNone Reg = ^Reg(0)

// -----------------------------------------------------------------------------

// Type describes the physical representation a register holds at the ABI
// level.  It is deliberately much coarser than the language's type system:
// strings, lists, closures, and objects all collapse to Ptr here.
type Type uint8

// Enumeration of ABI types.  Void is the zero value: a register that is never
// a destination stays Void.
const (
	Void Type = iota
	I32
	I64
	F64
	Bool
	Ptr
)

var typeNames = [...]string{
	"void",
	"i32",
	"i64",
	"f64",
	"bool",
	"ptr",
}

func (t Type) String() string {
	return typeNames[t]
}

// -----------------------------------------------------------------------------

// Opcode is the operation code of an instruction.
type Opcode uint8

// Enumeration of instruction op codes.
const (
	// Data movement
	OpMov       Opcode = iota // Dst = A
	OpLoadConst               // Dst = Const

	// Arithmetic
	OpAdd // Dst = A + B
	OpSub // Dst = A - B
	OpMul // Dst = A * B
	OpDiv // Dst = A / B
	OpMod // Dst = A % B
	OpNeg // Dst = -A

	// Bitwise and logical
	OpAnd // Dst = A & B
	OpOr  // Dst = A | B
	OpXor // Dst = A ^ B
	OpNot // Dst = !A

	// Comparison: always produce Bool
	OpCmpEQ
	OpCmpNEQ
	OpCmpLT
	OpCmpLE
	OpCmpGT
	OpCmpGE

	// Control flow
	OpJump        // jump to Imm (block id before flattening, offset after)
	OpJumpIfFalse // jump to Imm if A is false
	OpCall        // Dst = call function Imm with B args starting at register A
	OpReturn      // return A if B != 0, else return void

	// Typed output
	OpPrintInt
	OpPrintFloat
	OpPrintBool
	OpPrintString

	OpNop

	// Memory
	OpLoad  // Dst = mem[A + Imm]
	OpStore // mem[A + Imm] = B

	// Type operations
	OpCast     // Dst = A converted to the instruction's result type
	OpToString // Dst = string representation of A

	// Strings
	OpConcat   // Dst = A ++ B
	OpSBCreate // Dst = new string builder
	OpSBAppend // append B to builder A
	OpSBFinish // Dst = finished string of builder A

	// Error handling values
	OpConstructError
	OpConstructOk

	// Atomics
	OpAtomicLoad
	OpAtomicStore
	OpAtomicFetchAdd

	// Cooperative concurrency
	OpAwait
	OpAsyncCall

	// Lists
	OpListCreate // Dst = new list
	OpListAppend // append B to list A
	OpListIndex  // Dst = A[B]
	OpListLen    // Dst = len(A)

	// Objects
	OpNewObject
	OpGetField
	OpSetField

	// Modules
	OpImportModule
	OpExportSymbol
)

// opNames maps op codes to their displayable mnemonics.
var opNames = [...]string{
	"mov",
	"loadconst",

	"add",
	"sub",
	"mul",
	"div",
	"mod",
	"neg",

	"and",
	"or",
	"xor",
	"not",

	"cmpeq",
	"cmpneq",
	"cmplt",
	"cmple",
	"cmpgt",
	"cmpge",

	"jump",
	"jumpiffalse",
	"call",
	"return",

	"printint",
	"printfloat",
	"printbool",
	"printstring",

	"nop",

	"load",
	"store",

	"cast",
	"tostring",

	"concat",
	"sbcreate",
	"sbappend",
	"sbfinish",

	"constructerror",
	"constructok",

	"atomicload",
	"atomicstore",
	"atomicfetchadd",

	"await",
	"asynccall",

	"listcreate",
	"listappend",
	"listindex",
	"listlen",

	"newobject",
	"getfield",
	"setfield",

	"importmodule",
	"exportsymbol",
}

func (op Opcode) String() string {
	return opNames[op]
}

// IsTerminator returns whether the op code terminates a basic block.  A
// terminator must be the last instruction of its containing block.
func (op Opcode) IsTerminator() bool {
	switch op {
	case OpJump, OpJumpIfFalse, OpReturn:
		return true
	default:
		return false
	}
}

// -----------------------------------------------------------------------------

// Constant represents a literal constant value loaded by OpLoadConst.  The
// Type tag selects which payload field is meaningful.
type Constant struct {
	Type Type

	IntVal   int64
	FloatVal float64
	BoolVal  bool
	StrVal   string

	// Nil marks the nil constant, which has no payload.
	Nil bool
}

// IntConst creates a new I64 integer constant.
func IntConst(v int64) *Constant {
	return &Constant{Type: I64, IntVal: v}
}

// FloatConst creates a new F64 floating-point constant.
func FloatConst(v float64) *Constant {
	return &Constant{Type: F64, FloatVal: v}
}

// BoolConst creates a new boolean constant.
func BoolConst(v bool) *Constant {
	return &Constant{Type: Bool, BoolVal: v}
}

// StrConst creates a new string constant.
func StrConst(v string) *Constant {
	return &Constant{Type: Ptr, StrVal: v}
}

// NilConst creates the nil constant.
func NilConst() *Constant {
	return &Constant{Type: Ptr, Nil: true}
}

func (c *Constant) Repr() string {
	switch {
	case c.Nil:
		return "nil"
	case c.Type == Bool:
		return strconv.FormatBool(c.BoolVal)
	case c.Type == F64:
		return strconv.FormatFloat(c.FloatVal, 'g', -1, 64)
	case c.Type == Ptr:
		return strconv.Quote(c.StrVal)
	default:
		return strconv.FormatInt(c.IntVal, 10)
	}
}

// -----------------------------------------------------------------------------

// SourceLoc is a source location attached to an instruction or register
// definition for debugging.
type SourceLoc struct {
	File      string
	Line, Col int
}

func (loc SourceLoc) String() string {
	if loc.Col > 0 {
		return fmt.Sprintf("%s:%d:%d", loc.File, loc.Line, loc.Col)
	}
	return fmt.Sprintf("%s:%d", loc.File, loc.Line)
}

// DebugInfo carries per-function debug metadata accumulated during lowering.
type DebugInfo struct {
	// VarNames maps a register to the source variable bound to it.
	VarNames map[Reg]string

	// RegDefs maps a register to the location of its defining instruction.
	RegDefs map[Reg]SourceLoc
}

// NewDebugInfo creates an empty debug info record.
func NewDebugInfo() DebugInfo {
	return DebugInfo{
		VarNames: make(map[Reg]string),
		RegDefs:  make(map[Reg]SourceLoc),
	}
}

// -----------------------------------------------------------------------------

// Instruction represents a single typed register instruction.  Exactly one of
// Const or the A/B/Imm operand triple is meaningful depending on the op code.
type Instruction struct {
	// Op must be one of the enumerated instruction op codes.
	Op Opcode

	// Type is the ABI type the instruction yields into Dst.  It determines
	// what machine form a backend selects: eg. an `add` over I64 and an `add`
	// over F64 generate different machine instructions.
	Type Type

	// Dst is the destination register.
	Dst Reg

	// A and B are the source register operands.
	A, B Reg

	// Imm is the immediate operand.  For OpJump and OpJumpIfFalse it holds a
	// basic block id during generation and an absolute instruction index
	// after flattening.  For OpCall it holds the callee's function index.
	Imm uint32

	// Const is the constant payload of an OpLoadConst.
	Const *Constant

	// Loc is the source location the instruction was lowered from.
	Loc SourceLoc

	// Comment is an optional free-form note displayed by the disassembler.
	Comment string
}

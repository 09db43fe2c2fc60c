package lir

import (
	"fmt"
	"strings"
)

// String returns the disassembled form of a single instruction.
func (inst *Instruction) String() string {
	sb := strings.Builder{}

	sb.WriteString(inst.Op.String())

	if inst.Type != Void {
		sb.WriteRune(' ')
		sb.WriteString(inst.Type.String())
	}

	switch inst.Op {
	case OpLoadConst:
		fmt.Fprintf(&sb, " r%d, %s", inst.Dst, inst.Const.Repr())
	case OpJump:
		fmt.Fprintf(&sb, " @%d", inst.Imm)
	case OpJumpIfFalse:
		fmt.Fprintf(&sb, " r%d, @%d", inst.A, inst.Imm)
	case OpCall:
		fmt.Fprintf(&sb, " r%d, f%d(r%d..%d)", inst.Dst, inst.Imm, inst.A, uint32(inst.A)+inst.B)
	case OpReturn:
		if inst.B != 0 {
			fmt.Fprintf(&sb, " r%d", inst.A)
		}
	case OpMov, OpNeg, OpNot, OpCast, OpToString, OpSBFinish, OpListLen:
		fmt.Fprintf(&sb, " r%d, r%d", inst.Dst, inst.A)
	case OpPrintInt, OpPrintFloat, OpPrintBool, OpPrintString:
		fmt.Fprintf(&sb, " r%d", inst.A)
	case OpSBCreate, OpListCreate:
		fmt.Fprintf(&sb, " r%d", inst.Dst)
	case OpSBAppend, OpListAppend:
		fmt.Fprintf(&sb, " r%d, r%d", inst.A, inst.B)
	case OpNop:
		// no operands
	default:
		fmt.Fprintf(&sb, " r%d, r%d, r%d", inst.Dst, inst.A, inst.B)
	}

	if inst.Comment != "" {
		sb.WriteString("  ; ")
		sb.WriteString(inst.Comment)
	}

	return sb.String()
}

// Disassemble returns the textual representation of a finalized function: its
// signature line followed by one indexed instruction per line.
func (fn *Function) Disassemble() string {
	sb := strings.Builder{}

	fmt.Fprintf(&sb, "func $%s(params: %d, regs: %d)\n", fn.Name, fn.ParamCount, fn.RegisterCount)

	for i := range fn.Instructions {
		fmt.Fprintf(&sb, "  %4d: %s\n", i, fn.Instructions[i].String())
	}

	return sb.String()
}

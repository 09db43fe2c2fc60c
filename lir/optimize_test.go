package lir

import (
	"strings"
	"testing"
)

func TestPeepholeSelfMove(t *testing.T) {
	fn := NewFunction("f", 0)
	fn.Flags = OptFlags{Peephole: true}
	fn.Instructions = []Instruction{
		{Op: OpMov, Type: I64, Dst: 1, A: 1},
		{Op: OpMov, Type: I64, Dst: 2, A: 1},
		{Op: OpReturn},
	}

	if !NewOptimizer(fn).Optimize() {
		t.Fatal("expected the self-move to be rewritten")
	}

	if fn.Instructions[0].Op != OpNop {
		t.Errorf("inst[0].op = %s, want nop", fn.Instructions[0].Op)
	}
	if fn.Instructions[1].Op != OpMov {
		t.Errorf("inst[1].op = %s, want mov left intact", fn.Instructions[1].Op)
	}

	// Passes are offset-preserving: nothing may be added or removed.
	if len(fn.Instructions) != 3 {
		t.Errorf("instructions = %d, want 3", len(fn.Instructions))
	}

	// A second run has nothing left to do.
	if NewOptimizer(fn).Optimize() {
		t.Error("second run reported changes")
	}
}

func TestOptimizeDisabledByFlags(t *testing.T) {
	fn := NewFunction("f", 0)
	fn.Instructions = []Instruction{
		{Op: OpMov, Type: I64, Dst: 1, A: 1},
		{Op: OpReturn},
	}

	if NewOptimizer(fn).Optimize() {
		t.Fatal("no passes enabled, nothing should change")
	}
	if fn.Instructions[0].Op != OpMov {
		t.Errorf("inst[0].op = %s, want mov untouched", fn.Instructions[0].Op)
	}
}

func TestDisassemble(t *testing.T) {
	fn := NewFunction("main", 0)
	fn.RegisterCount = 2
	fn.Instructions = []Instruction{
		{Op: OpLoadConst, Type: I64, Dst: 0, Const: IntConst(7)},
		{Op: OpPrintInt, A: 0},
		{Op: OpReturn},
	}

	out := fn.Disassemble()

	if !strings.Contains(out, "func $main(params: 0, regs: 2)") {
		t.Errorf("missing header in:\n%s", out)
	}
	for _, want := range []string{"loadconst", "printint", "return"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

package lir

// OptFlags selects which optimization passes run over a finalized function.
// All passes default to off.
type OptFlags struct {
	Peephole  bool `toml:"peephole"`
	ConstFold bool `toml:"const-fold"`
	DeadCode  bool `toml:"dead-code"`
}

// Optimizer applies offset-preserving rewrites to a finalized function.
// Because jump immediates are absolute instruction indices, a pass must never
// add or remove instructions: it may only rewrite them in place (eg. to Nop).
type Optimizer struct {
	fn *Function
}

// NewOptimizer creates an optimizer for the given finalized function.
func NewOptimizer(fn *Function) *Optimizer {
	return &Optimizer{fn: fn}
}

// Optimize runs all enabled passes and reports whether any instruction
// changed.
func (o *Optimizer) Optimize() bool {
	changed := false

	if o.fn.Flags.Peephole {
		changed = o.peephole() || changed
	}
	if o.fn.Flags.ConstFold {
		changed = o.constantFolding() || changed
	}
	if o.fn.Flags.DeadCode {
		changed = o.deadCodeElimination() || changed
	}

	return changed
}

// peephole rewrites locally redundant instructions.  Currently it only
// collapses self-moves to Nop.
func (o *Optimizer) peephole() bool {
	changed := false

	for i := range o.fn.Instructions {
		inst := &o.fn.Instructions[i]
		if inst.Op == OpMov && inst.Dst == inst.A {
			inst.Op = OpNop
			inst.Type = Void
			changed = true
		}
	}

	return changed
}

// TODO: fold chains of LoadConst feeding a single arithmetic instruction.
func (o *Optimizer) constantFolding() bool {
	return false
}

// TODO: mark pure instructions whose destinations are never read as Nop.
func (o *Optimizer) deadCodeElimination() bool {
	return false
}

package lir

// Function is the unit of lowered code handed to an interpreter or native
// code generator.  During generation it owns a control flow graph; after
// finalization it exposes a flat instruction vector in which jump targets are
// absolute instruction indices.  The graph is kept only for diagnostics once
// flattening succeeds.
type Function struct {
	Name string

	// ParamCount is the number of parameters.  Parameters occupy registers
	// 0..ParamCount-1.
	ParamCount uint32

	// Instructions is the finalized flat instruction vector.  The index of an
	// instruction is its linear program counter.  Empty until Finalize runs.
	Instructions []Instruction

	// RegisterCount is the total number of virtual registers allocated while
	// lowering the function.
	RegisterCount uint32

	// RegTypes maps each register that was ever a destination to its ABI
	// type.  Registers never observed as a destination are absent and read as
	// Void.
	RegTypes map[Reg]Type

	// Debug carries variable names and definition locations per register.
	Debug DebugInfo

	// Graph is the function's control flow graph during construction.
	Graph *Graph

	// Flags selects which optimization passes may run over the finalized
	// instruction vector.
	Flags OptFlags
}

// NewFunction creates a new empty function with a fresh control flow graph.
func NewFunction(name string, paramCount uint32) *Function {
	return &Function{
		Name:       name,
		ParamCount: paramCount,
		RegTypes:   make(map[Reg]Type),
		Debug:      NewDebugInfo(),
		Graph:      NewGraph(),
	}
}

// SetRegisterType records the ABI type of a destination register.  The last
// writer wins.
func (fn *Function) SetRegisterType(reg Reg, t Type) {
	fn.RegTypes[reg] = t
}

// RegisterType returns the recorded ABI type of a register.  A register that
// was never a destination reads as Void.
func (fn *Function) RegisterType(reg Reg) Type {
	return fn.RegTypes[reg]
}

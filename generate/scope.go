package generate

import (
	"lumen/lir"
	"lumen/mem"
)

// scopeFrame is one lexical scope: its variable bindings and the scratch
// memory region it owns.  The region is created on scope entry and released
// on exit, bounding the lifetime of any generator-internal scratch work done
// while the scope is active.
type scopeFrame struct {
	vars   map[string]lir.Reg
	region *mem.Region
}

// enterScope pushes a new lexical scope onto the scope stack.
func (g *Generator) enterScope() {
	g.scopes = append(g.scopes, &scopeFrame{
		vars:   make(map[string]lir.Reg),
		region: g.mgr.NewRegion(),
	})
}

// exitScope pops the innermost scope and releases its region.  Scratch
// buffers acquired from the region must not be retained past this point;
// registers bound in the scope are function-lifetime and survive.
func (g *Generator) exitScope() {
	top := g.scopes[len(g.scopes)-1]
	top.region.Release()

	g.scopes = g.scopes[:len(g.scopes)-1]
}

// currentRegion returns the innermost scope's scratch region.
func (g *Generator) currentRegion() *mem.Region {
	return g.scopes[len(g.scopes)-1].region
}

// bindVariable creates or overwrites a binding in the innermost scope and
// records the variable's name for debug info.
func (g *Generator) bindVariable(name string, reg lir.Reg) {
	g.scopes[len(g.scopes)-1].vars[name] = reg
	g.fn.Debug.VarNames[reg] = name
}

// resolveVariable searches the scope stack innermost to outermost for a
// binding.  It returns lir.RegNone when the name is unbound: reporting that
// as an error is the caller's responsibility.
func (g *Generator) resolveVariable(name string) lir.Reg {
	for i := len(g.scopes) - 1; i >= 0; i-- {
		if reg, ok := g.scopes[i].vars[name]; ok {
			return reg
		}
	}

	return lir.RegNone
}

// updateVariableBinding rebinds an existing variable in whichever scope
// currently holds it, falling back to a new binding in the innermost scope if
// the name is unbound.  This is how assignment updates a variable's register
// without shadowing it.
func (g *Generator) updateVariableBinding(name string, reg lir.Reg) {
	for i := len(g.scopes) - 1; i >= 0; i-- {
		if _, ok := g.scopes[i].vars[name]; ok {
			g.scopes[i].vars[name] = reg
			g.fn.Debug.VarNames[reg] = name
			return
		}
	}

	g.bindVariable(name, reg)
}

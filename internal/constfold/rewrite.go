package constfold

import (
	"ember/internal/ir"
)

// eraseTriviallyDead deletes root if it has no remaining uses and no side
// effects, then walks its operands transitively: dropping a consumer may
// leave producers unused. An explicit stack bounds the depth on adversarial
// dependency chains.
func (fl *folder) eraseTriviallyDead(root ir.ID) {
	stack := []ir.ID{root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !fl.f.Alive(id) {
			continue
		}
		in := fl.f.Instr(id)
		if in.NumUses() > 0 || in.HasSideEffects() {
			continue
		}
		operands := in.Operands()
		fl.f.Remove(id)
		stack = append(stack, operands...)
	}
}

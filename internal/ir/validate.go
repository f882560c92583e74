package ir

import (
	"errors"
	"fmt"
	"slices"
)

// Validate checks module invariants.
// Returns error if any invariant is violated.
func Validate(m *Module) error {
	if m == nil {
		return nil
	}
	var errs []error
	for _, f := range m.Funcs {
		if f == nil {
			continue
		}
		if err := ValidateFunc(f); err != nil {
			errs = append(errs, fmt.Errorf("function %s: %w", f.Name, err))
		}
	}
	return errors.Join(errs...)
}

// ValidateFunc checks one function's graph invariants.
func ValidateFunc(f *Func) error {
	if f == nil {
		return nil
	}

	var errs []error

	if err := validateBlocksTerminated(f); err != nil {
		errs = append(errs, err)
	}
	if err := validateBlockTargets(f); err != nil {
		errs = append(errs, err)
	}
	if err := validateOperands(f); err != nil {
		errs = append(errs, err)
	}
	if err := validateUseSymmetry(f); err != nil {
		errs = append(errs, err)
	}
	if err := validateShapes(f); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// validateBlocksTerminated checks that every block ends with a terminator.
func validateBlocksTerminated(f *Func) error {
	var errs []error
	for i := range f.Blocks {
		if f.Blocks[i].Term.Kind == TermNone {
			errs = append(errs, fmt.Errorf("bb%d: unterminated block", i))
		}
	}
	return errors.Join(errs...)
}

// validateBlockTargets checks that goto targets and ret values exist.
func validateBlockTargets(f *Func) error {
	var errs []error
	for i := range f.Blocks {
		t := &f.Blocks[i].Term
		switch t.Kind {
		case TermGoto:
			if int(t.Goto.Target) >= len(f.Blocks) {
				errs = append(errs, fmt.Errorf("bb%d: goto target bb%d out of range", i, t.Goto.Target))
			}
		case TermRet:
			if t.Ret.HasValue && !f.Alive(t.Ret.Value) {
				errs = append(errs, fmt.Errorf("bb%d: ret of dead value %%%d", i, t.Ret.Value))
			}
		}
	}
	return errors.Join(errs...)
}

// validateOperands checks that every operand references a live instruction
// and that same-block operands are defined before their consumer.
func validateOperands(f *Func) error {
	var errs []error
	f.ForEachInstr(func(in *Instr) {
		for slot, op := range in.Operands() {
			if !f.Alive(op) {
				errs = append(errs, fmt.Errorf("%%%d slot %d: operand %%%d is dead", in.ID(), slot, op))
				continue
			}
			def := f.Instr(op)
			if def.Block() == in.Block() {
				bb := &f.Blocks[in.Block()]
				if slices.Index(bb.Instrs, op) > slices.Index(bb.Instrs, in.ID()) {
					errs = append(errs, fmt.Errorf("%%%d: operand %%%d defined after use", in.ID(), op))
				}
			}
		}
	})
	return errors.Join(errs...)
}

// validateUseSymmetry checks that use-edge lists mirror operand lists.
func validateUseSymmetry(f *Func) error {
	var errs []error
	type edge struct {
		producer ID
		use      Use
	}
	var wantEdges []edge
	f.ForEachInstr(func(in *Instr) {
		for slot, op := range in.Operands() {
			wantEdges = append(wantEdges, edge{producer: op, use: Use{Kind: UseOperand, User: in.ID(), Slot: slot}})
		}
	})
	for i := range f.Blocks {
		t := &f.Blocks[i].Term
		if t.Kind == TermRet && t.Ret.HasValue {
			wantEdges = append(wantEdges, edge{producer: t.Ret.Value, use: Use{Kind: UseTerm, Block: f.Blocks[i].ID}})
		}
	}

	counted := make(map[ID]int)
	for _, e := range wantEdges {
		if !f.Alive(e.producer) {
			continue
		}
		counted[e.producer]++
		if !slices.Contains(f.Instr(e.producer).Uses(), e.use) {
			errs = append(errs, fmt.Errorf("%%%d: missing use edge %+v", e.producer, e.use))
		}
	}
	f.ForEachInstr(func(in *Instr) {
		if in.NumUses() != counted[in.ID()] {
			errs = append(errs, fmt.Errorf("%%%d: %d use edges recorded, %d operands reference it",
				in.ID(), in.NumUses(), counted[in.ID()]))
		}
	})
	return errors.Join(errs...)
}

// validateShapes checks per-kind structural invariants: extract indices in
// range, builtin arities, per-family operand and result type rules.
func validateShapes(f *Func) error {
	var errs []error
	f.ForEachInstr(func(in *Instr) {
		switch in.Kind {
		case KindTupleExtract, KindStructExtract:
			agg := f.Instr(in.Extract.Agg)
			if !agg.Type.IsAggregate() {
				errs = append(errs, fmt.Errorf("%%%d: extract from non-aggregate %s", in.ID(), agg.Type))
				break
			}
			if in.Extract.Index < 0 || in.Extract.Index >= len(agg.Type.Elems) {
				errs = append(errs, fmt.Errorf("%%%d: extract index %d out of range for %s",
					in.ID(), in.Extract.Index, agg.Type))
			}
		case KindBuiltin:
			info := in.Builtin.Op.Info()
			if len(in.Builtin.Args) != info.NumArgs {
				errs = append(errs, fmt.Errorf("%%%d: %s takes %d args, has %d",
					in.ID(), in.Builtin.Op, info.NumArgs, len(in.Builtin.Args)))
				break
			}
			errs = append(errs, validateBuiltinShape(f, in)...)
		}
	})
	return errors.Join(errs...)
}

// validateBuiltinShape checks the family-specific operand and result width
// rules. These must hold before folding: the fold rules treat anything here
// as an internal invariant, so violations reachable from input have to be
// rejected at this boundary rather than panic mid-pass.
func validateBuiltinShape(f *Func, in *Instr) []error {
	for _, arg := range in.Builtin.Args {
		// Dead operands are reported by the operand check; the types of
		// tombstoned slots are meaningless.
		if !f.Alive(arg) {
			return nil
		}
	}
	argType := func(i int) Type { return f.Instr(in.Builtin.Args[i]).Type }

	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%%%d: %s", in.ID(), fmt.Sprintf(format, args...)))
	}

	op := in.Builtin.Op
	switch op.Info().Family {
	case FamilyArithOver:
		t := in.Type
		if t.Kind != TypeTuple || len(t.Elems) != 2 ||
			t.Elems[0].Kind != TypeInt || !t.Elems[1].Equal(Bool) {
			fail("%s must produce (iN, i1), has %s", op, t)
			break
		}
		lhs, rhs := argType(0), argType(1)
		if lhs.Kind != TypeInt || rhs.Kind != TypeInt {
			fail("%s needs integer operands, has %s and %s", op, lhs, rhs)
			break
		}
		if lhs.Width != rhs.Width || lhs.Width != t.Elems[0].Width {
			fail("%s operand width mismatch: %s, %s -> %s", op, lhs, rhs, t.Elems[0])
		}
		if !argType(2).Equal(Bool) {
			fail("%s report flag must be i1, has %s", op, argType(2))
		}

	case FamilyResize:
		from, to := argType(0), in.Type
		if from.Kind != TypeInt || to.Kind != TypeInt {
			fail("%s needs an integer operand and result, has %s -> %s", op, from, to)
			break
		}
		if op == OpTrunc && to.Width > from.Width {
			fail("trunc %s -> %s widens", from, to)
		}
		if (op == OpZExt || op == OpSExt) && to.Width < from.Width {
			fail("%s %s -> %s narrows", op, from, to)
		}

	case FamilyDivision:
		num, denom := argType(0), argType(1)
		if num.Kind != TypeInt || denom.Kind != TypeInt || in.Type.Kind != TypeInt {
			fail("%s needs integer operands and result, has %s, %s -> %s", op, num, denom, in.Type)
			break
		}
		if num.Width != denom.Width || num.Width != in.Type.Width {
			fail("%s operand width mismatch: %s, %s -> %s", op, num, denom, in.Type)
		}

	case FamilyCheckedTrunc:
		from, to := argType(0), in.Type
		if from.Kind != TypeInt || to.Kind != TypeInt {
			fail("%s needs an integer operand and result, has %s -> %s", op, from, to)
			break
		}
		if to.Width > from.Width {
			fail("%s %s -> %s widens", op, from, to)
		}

	case FamilyIntToFloat:
		if argType(0).Kind != TypeInt || in.Type.Kind != TypeFloat {
			fail("%s needs an integer operand and a float result, has %s -> %s",
				op, argType(0), in.Type)
		}
	}
	return errs
}

package constfold

import (
	"ember/internal/diag"
	"ember/internal/ir"
)

// Options configures a fold run.
type Options struct {
	// Reporter receives fold diagnostics. Nil discards them.
	Reporter diag.Reporter
	// Types is the optional provenance lookup used to name user-visible
	// types in diagnostics. Folding never depends on it.
	Types TypeLookup
}

func (o Options) reporter() diag.Reporter {
	if o.Reporter == nil {
		return diag.NopReporter{}
	}
	return o.Reporter
}

// Run folds every function of the module in order and returns the total
// number of folded instructions.
func Run(m *ir.Module, opts Options) int {
	total := 0
	for _, f := range m.Funcs {
		if f == nil {
			continue
		}
		total += Fold(f, opts)
	}
	return total
}

// Fold drives one function to a fixed point and returns the number of
// folded instructions. The graph must satisfy ir.ValidateFunc: the fold
// rules rely on its shape checks and panic on violations.
func Fold(f *ir.Func, opts Options) int {
	fl := &folder{
		f:        f,
		reporter: opts.reporter(),
		types:    opts.Types,
		work:     newWorklist(f.NumSlots()),
	}
	return fl.run()
}

type folder struct {
	f        *ir.Func
	reporter diag.Reporter
	types    TypeLookup
	work     *worklist
	folded   int
}

func (fl *folder) run() int {
	// Seed with every instruction that has at least one use; a result
	// nobody consumes cannot propagate.
	fl.f.ForEachInstr(func(in *ir.Instr) {
		if in.NumUses() > 0 {
			fl.work.push(in.ID())
		}
	})

	for !fl.work.empty() {
		id := fl.work.pop()
		if !fl.f.Alive(id) {
			continue
		}
		in := fl.f.Instr(id)
		// State may have changed since insertion.
		if in.NumUses() == 0 {
			continue
		}
		// The verdict of a diagnosed instruction is final: the literal
		// operands the check consumed cannot change. Do not report the
		// site again on a later visit or a later run.
		if in.Diagnosed() {
			continue
		}

		out := fl.foldInstr(in)
		if out.status == diagnosed {
			in.MarkDiagnosed()
		}
		if out.status != folded {
			continue
		}
		// Synthesizing replacement literals may have grown the arena.
		in = fl.f.Instr(id)

		// The consumers may be constant-foldable now. A consumer that is an
		// aggregate constructor indirectly enables its own consumers (the
		// extraction instructions reading the aggregate), so those are
		// enqueued one extra hop out.
		for _, u := range in.Uses() {
			if u.Kind != ir.UseOperand {
				continue
			}
			fl.work.push(u.User)
			user := fl.f.Instr(u.User)
			if user.Kind == ir.KindTuple || user.Kind == ir.KindStruct {
				for _, uu := range user.Uses() {
					if uu.Kind == ir.UseOperand {
						fl.work.push(uu.User)
					}
				}
			}
		}

		fl.f.ReplaceAllUses(id, out.value)
		fl.eraseTriviallyDead(id)
		fl.folded++
	}
	return fl.folded
}

// foldStatus is the three-way outcome of a fold attempt.
type foldStatus uint8

const (
	// folded: the instruction's value is now available as a literal.
	folded foldStatus = iota
	// notFoldable: required operands are not literals, or the variant is
	// outside the catalog. No progress, no diagnostic.
	notFoldable
	// diagnosed: a static check failed; a diagnostic was emitted and the
	// instruction survives unfolded, marked so it is not reported again.
	diagnosed
)

type outcome struct {
	status foldStatus
	value  ir.ID
}

func foldedTo(v ir.ID) outcome { return outcome{status: folded, value: v} }

var (
	skip     = outcome{status: notFoldable}
	reported = outcome{status: diagnosed}
)

// foldInstr dispatches on the opcode family.
func (fl *folder) foldInstr(in *ir.Instr) outcome {
	switch in.Kind {
	case ir.KindBuiltin:
		switch in.Builtin.Op.Info().Family {
		case ir.FamilyArithOver:
			return fl.foldArithOver(in)
		case ir.FamilyResize:
			return fl.foldResize(in)
		case ir.FamilyDivision:
			return fl.foldDivision(in)
		case ir.FamilyCheckedTrunc:
			return fl.foldCheckedTrunc(in)
		case ir.FamilyIntToFloat:
			return fl.foldIntToFloat(in)
		default:
			return skip
		}
	case ir.KindTupleExtract, ir.KindStructExtract:
		return fl.foldExtract(in)
	default:
		return skip
	}
}

// intOperand returns the operand's literal integer value if it is one.
func (fl *folder) intOperand(id ir.ID) (*ir.Instr, bool) {
	in := fl.f.Instr(id)
	if in.Kind != ir.KindIntLit {
		return nil, false
	}
	return in, true
}

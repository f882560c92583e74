package constfold

import (
	"fmt"

	"ember/internal/apint"
	"ember/internal/diag"
	"ember/internal/ir"
)

// foldIntToFloat folds checked integer-to-float conversion: round to
// nearest, ties to even, into the destination semantics. Exceeding the
// destination exponent range is a hard error and the instruction survives.
func (fl *folder) foldIntToFloat(in *ir.Instr) outcome {
	v, ok := fl.intOperand(in.Builtin.Args[0])
	if !ok {
		return skip
	}
	sem, ok := apint.SemanticsForWidth(in.Type.Width)
	if !ok {
		return skip
	}

	res, overflow := sem.FromInt(v.IntLit.Value)
	if overflow {
		destName, ok := fl.inferResultType(in.Src)
		if !ok {
			destName = in.Type.String()
		}
		msg := fmt.Sprintf("integer literal overflows when stored into '%s'", destName)
		fl.reporter.Report(diag.FoldIntToFloatOverflow, diag.SevError, in.Src, msg, nil)
		return reported
	}

	return foldedTo(fl.f.InsertFloatLitBefore(in.ID(), res, in.Type.Width, in.Src))
}

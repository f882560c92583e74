package constfold

import (
	"fmt"

	"ember/internal/apint"
	"ember/internal/diag"
	"ember/internal/ir"
)

// foldDivision folds the division and remainder variants. The denominator
// is examined first: a literal zero denominator is a hard error regardless
// of the numerator, and the instruction survives. Signed division that
// overflows (minimum representable value / -1) is likewise diagnosed and
// left unfolded. The unsigned exact variant has no overflow semantics in
// the catalog and is deliberately never folded.
func (fl *folder) foldDivision(in *ir.Instr) outcome {
	denomIn, ok := fl.intOperand(in.Builtin.Args[1])
	if !ok {
		return skip
	}
	denom := denomIn.IntLit.Value

	if denom.IsZero() {
		fl.reporter.Report(diag.FoldDivisionByZero, diag.SevError, in.Src, "division by zero", nil)
		return reported
	}

	numIn, ok := fl.intOperand(in.Builtin.Args[0])
	if !ok {
		return skip
	}
	num := numIn.IntLit.Value
	info := in.Builtin.Op.Info()

	var res apint.Int
	switch in.Builtin.Op {
	case ir.OpSDiv, ir.OpExactSDiv:
		var overflow bool
		res, overflow = num.SDivOv(denom)
		if overflow {
			msg := fmt.Sprintf("division '%s %s %s' results in an overflow",
				num.String(true), info.Operator, denom.String(true))
			fl.reporter.Report(diag.FoldDivisionOverflow, diag.SevError, in.Src, msg, nil)
			return reported
		}
	case ir.OpUDiv:
		res = num.UDiv(denom)
	case ir.OpSRem:
		res = num.SRem(denom)
	case ir.OpURem:
		res = num.URem(denom)
	default:
		// udiv_exact: no overflow check defined for it, deliberately
		// unsupported rather than an error.
		return skip
	}

	return foldedTo(fl.f.InsertIntLitBefore(in.ID(), res, in.Src))
}

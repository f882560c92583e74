package constfold

import (
	"fmt"

	"ember/internal/apint"
	"ember/internal/diag"
	"ember/internal/ir"
)

// foldCheckedTrunc folds checked literal narrowing. The value is truncated
// to the destination width and re-widened per the op's signedness; a
// mismatch with the original is overflow. Overflow is a hard error unless
// the provenance is synthetic, in which case it is downgraded to a warning.
// Either way the instruction is left unfolded.
func (fl *folder) foldCheckedTrunc(in *ir.Instr) outcome {
	v, ok := fl.intOperand(in.Builtin.Args[0])
	if !ok {
		return skip
	}
	src := v.IntLit.Value
	srcWidth := src.Width()
	destWidth := in.Type.Width
	signed := in.Builtin.Op.Info().Signed

	truncated := src.Trunc(destWidth)
	var widened apint.Int
	if signed {
		widened = truncated.SExt(srcWidth)
	} else {
		widened = truncated.ZExt(srcWidth)
	}

	if !widened.Eq(src) {
		destName, ok := fl.inferResultType(in.Src)
		if !ok {
			destName = in.Type.String()
		}
		msg := fmt.Sprintf("integer literal overflows when stored into '%s'", destName)
		sev := diag.SevError
		if in.Src.Synthetic() {
			sev = diag.SevWarning
		}
		fl.reporter.Report(diag.FoldLiteralOverflow, sev, in.Src, msg, nil)
		return reported
	}

	return foldedTo(fl.f.InsertIntLitBefore(in.ID(), truncated, in.Src))
}

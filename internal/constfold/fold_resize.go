package constfold

import (
	"fmt"

	"ember/internal/apint"
	"ember/internal/ir"
)

// foldResize folds trunc/zext/sext. The destination width is the statically
// known result type; no overflow is possible by construction, so these
// always fold once the operand is a literal.
func (fl *folder) foldResize(in *ir.Instr) outcome {
	v, ok := fl.intOperand(in.Builtin.Args[0])
	if !ok {
		return skip
	}

	destWidth := in.Type.Width
	var res apint.Int
	switch in.Builtin.Op {
	case ir.OpTrunc:
		res = v.IntLit.Value.Trunc(destWidth)
	case ir.OpZExt:
		res = v.IntLit.Value.ZExt(destWidth)
	case ir.OpSExt:
		res = v.IntLit.Value.SExt(destWidth)
	default:
		panic(fmt.Sprintf("constfold: %s is not a resize op", in.Builtin.Op))
	}

	return foldedTo(fl.f.InsertIntLitBefore(in.ID(), res, in.Src))
}

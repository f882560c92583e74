package constfold

import (
	"fmt"

	"ember/internal/apint"
	"ember/internal/diag"
	"ember/internal/ir"
)

// foldArithOver folds the six *_over arithmetic builtins. The result is
// always the (wrapped value, overflow flag) pair, independent of overflow;
// a diagnostic fires only when overflow occurred and the report flag is a
// literal true.
func (fl *folder) foldArithOver(in *ir.Instr) outcome {
	lhs, ok := fl.intOperand(in.Builtin.Args[0])
	if !ok {
		return skip
	}
	rhs, ok := fl.intOperand(in.Builtin.Args[1])
	if !ok {
		return skip
	}
	report := false
	if flag, ok := fl.intOperand(in.Builtin.Args[2]); ok {
		report = flag.IntLit.Value.IsTrue()
	}

	info := in.Builtin.Op.Info()
	id, src := in.ID(), in.Src
	a, b := lhs.IntLit.Value, rhs.IntLit.Value

	var res apint.Int
	var overflow bool
	switch in.Builtin.Op {
	case ir.OpSAddOver, ir.OpUAddOver:
		res, overflow = a.AddOv(b, info.Signed)
	case ir.OpSSubOver, ir.OpUSubOver:
		res, overflow = a.SubOv(b, info.Signed)
	case ir.OpSMulOver, ir.OpUMulOver:
		res, overflow = a.MulOv(b, info.Signed)
	default:
		panic(fmt.Sprintf("constfold: %s is not an overflow arithmetic op", in.Builtin.Op))
	}

	if overflow && report {
		lhsStr := a.String(info.Signed)
		rhsStr := b.String(info.Signed)
		var msg string
		if name, ok := fl.inferBinaryType(in.Src); ok {
			msg = fmt.Sprintf("arithmetic operation '%s %s %s' (on type '%s') results in an overflow",
				lhsStr, info.Operator, rhsStr, name)
		} else {
			msg = fmt.Sprintf("arithmetic operation '%s %s %s' (on %s %d-bit integer type) results in an overflow",
				lhsStr, info.Operator, rhsStr, signedness(info.Signed), a.Width())
		}
		fl.reporter.Report(diag.FoldArithmeticOverflow, diag.SevError, src, msg, nil)
	}

	resLit := fl.f.InsertIntLitBefore(id, res, src)
	ovLit := fl.f.InsertIntLitBefore(id, apint.Bool(overflow), src)
	pair := fl.f.InsertTupleBefore(id, []ir.ID{resLit, ovLit}, src)
	return foldedTo(pair)
}

func signedness(signed bool) string {
	if signed {
		return "signed"
	}
	return "unsigned"
}

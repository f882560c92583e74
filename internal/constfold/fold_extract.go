package constfold

import (
	"ember/internal/ir"
)

// foldExtract folds a field/element read whose operand is a literal
// aggregate constructor of the matching shape. The replacement is the
// already-materialized constituent value at the requested index: pure
// structural indirection, no computation and no new instruction.
func (fl *folder) foldExtract(in *ir.Instr) outcome {
	agg := fl.f.Instr(in.Extract.Agg)
	switch {
	case in.Kind == ir.KindTupleExtract && agg.Kind == ir.KindTuple:
		return foldedTo(agg.Tuple.Elems[in.Extract.Index])
	case in.Kind == ir.KindStructExtract && agg.Kind == ir.KindStruct:
		return foldedTo(agg.Struct.Fields[in.Extract.Index])
	}
	return skip
}

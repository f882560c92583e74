package ir

import (
	"fmt"
	"math/big"

	"ember/internal/apint"
	"ember/internal/source"
)

// Construction helpers. Result types are derived from operands where the
// shape determines them; builtins state their result type explicitly since
// the destination width is static metadata, not computable from operands.

// AppendIntLit adds an integer literal.
func (f *Func) AppendIntLit(b BlockID, v apint.Int, src source.Span) ID {
	return f.Append(b, Instr{
		Kind:   KindIntLit,
		Type:   MakeInt(v.Width()),
		Src:    src,
		IntLit: IntLitInstr{Value: v},
	})
}

// AppendFloatLit adds a float literal of the given width.
func (f *Func) AppendFloatLit(b BlockID, v *big.Float, width uint32, src source.Span) ID {
	return f.Append(b, Instr{
		Kind:     KindFloatLit,
		Type:     MakeFloat(width),
		Src:      src,
		FloatLit: FloatLitInstr{Value: v},
	})
}

// AppendTuple adds a tuple construction over the element values.
func (f *Func) AppendTuple(b BlockID, elems []ID, src source.Span) ID {
	return f.Append(b, Instr{
		Kind:  KindTuple,
		Type:  f.aggType(TypeTuple, "", elems),
		Src:   src,
		Tuple: TupleInstr{Elems: elems},
	})
}

// AppendStruct adds a struct construction over the field values.
func (f *Func) AppendStruct(b BlockID, name string, fields []ID, src source.Span) ID {
	return f.Append(b, Instr{
		Kind:   KindStruct,
		Type:   f.aggType(TypeStruct, name, fields),
		Src:    src,
		Struct: StructInstr{Fields: fields},
	})
}

func (f *Func) aggType(kind TypeKind, name string, elems []ID) Type {
	ts := make([]Type, len(elems))
	for i, e := range elems {
		ts[i] = f.Instr(e).Type
	}
	return Type{Kind: kind, Name: name, Elems: ts}
}

// AppendTupleExtract adds a tuple element read.
func (f *Func) AppendTupleExtract(b BlockID, agg ID, index int, src source.Span) ID {
	return f.appendExtract(b, KindTupleExtract, agg, index, src)
}

// AppendStructExtract adds a struct field read.
func (f *Func) AppendStructExtract(b BlockID, agg ID, index int, src source.Span) ID {
	return f.appendExtract(b, KindStructExtract, agg, index, src)
}

func (f *Func) appendExtract(b BlockID, kind Kind, agg ID, index int, src source.Span) ID {
	aggType := f.Instr(agg).Type
	if index < 0 || index >= len(aggType.Elems) {
		panic(fmt.Sprintf("ir: extract index %d out of range for %s", index, aggType))
	}
	return f.Append(b, Instr{
		Kind:    kind,
		Type:    aggType.Elems[index],
		Src:     src,
		Extract: ExtractInstr{Agg: agg, Index: index},
	})
}

// AppendBuiltin adds a builtin application with an explicit result type.
func (f *Func) AppendBuiltin(b BlockID, op Op, result Type, args []ID, src source.Span) ID {
	if got, want := len(args), op.Info().NumArgs; got != want {
		panic(fmt.Sprintf("ir: %s takes %d args, got %d", op, want, got))
	}
	return f.Append(b, Instr{
		Kind:    KindBuiltin,
		Type:    result,
		Src:     src,
		Builtin: BuiltinInstr{Op: op, Args: args},
	})
}

// AppendCall adds an opaque call.
func (f *Func) AppendCall(b BlockID, name string, result Type, args []ID, src source.Span) ID {
	return f.Append(b, Instr{
		Kind: KindCall,
		Type: result,
		Src:  src,
		Call: CallInstr{Name: name, Args: args},
	})
}

// InsertIntLitBefore synthesizes an integer literal right before pos.
func (f *Func) InsertIntLitBefore(pos ID, v apint.Int, src source.Span) ID {
	return f.InsertBefore(pos, Instr{
		Kind:   KindIntLit,
		Type:   MakeInt(v.Width()),
		Src:    src,
		IntLit: IntLitInstr{Value: v},
	})
}

// InsertFloatLitBefore synthesizes a float literal right before pos.
func (f *Func) InsertFloatLitBefore(pos ID, v *big.Float, width uint32, src source.Span) ID {
	return f.InsertBefore(pos, Instr{
		Kind:     KindFloatLit,
		Type:     MakeFloat(width),
		Src:      src,
		FloatLit: FloatLitInstr{Value: v},
	})
}

// InsertTupleBefore synthesizes a tuple construction right before pos.
func (f *Func) InsertTupleBefore(pos ID, elems []ID, src source.Span) ID {
	return f.InsertBefore(pos, Instr{
		Kind:  KindTuple,
		Type:  f.aggType(TypeTuple, "", elems),
		Src:   src,
		Tuple: TupleInstr{Elems: elems},
	})
}

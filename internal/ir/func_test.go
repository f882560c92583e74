package ir_test

import (
	"math/big"
	"strings"
	"testing"

	"ember/internal/apint"
	"ember/internal/ir"
	"ember/internal/source"
)

func span(start, end uint32) source.Span {
	return source.Span{File: 1, Start: start, End: end}
}

func TestUseEdgeMaintenance(t *testing.T) {
	f := ir.NewFunc("uses")
	a := f.AppendIntLit(f.Entry, apint.FromInt64(2, 8), span(0, 1))
	b := f.AppendIntLit(f.Entry, apint.FromInt64(3, 8), span(2, 3))
	div := f.AppendBuiltin(f.Entry, ir.OpUDiv, ir.MakeInt(8), []ir.ID{a, b}, span(4, 9))
	f.SetRet(f.Entry, div)

	if got := f.Instr(a).NumUses(); got != 1 {
		t.Errorf("a has %d uses, want 1", got)
	}
	if got := f.Instr(div).NumUses(); got != 1 {
		t.Errorf("div has %d uses, want 1 (ret)", got)
	}
	if err := ir.ValidateFunc(f); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestReplaceAllUsesRewiresTerm(t *testing.T) {
	f := ir.NewFunc("replace")
	a := f.AppendIntLit(f.Entry, apint.FromInt64(1, 8), span(0, 1))
	b := f.AppendIntLit(f.Entry, apint.FromInt64(2, 8), span(2, 3))
	sum := f.AppendBuiltin(f.Entry, ir.OpUDiv, ir.MakeInt(8), []ir.ID{a, b}, span(4, 9))
	use := f.AppendCall(f.Entry, "sink", ir.Void, []ir.ID{sum}, span(10, 14))
	f.SetRet(f.Entry, sum)
	_ = use

	repl := f.InsertIntLitBefore(sum, apint.FromInt64(0, 8), span(4, 9))
	f.ReplaceAllUses(sum, repl)

	if got := f.Instr(sum).NumUses(); got != 0 {
		t.Errorf("old value still has %d uses", got)
	}
	if got := f.Instr(repl).NumUses(); got != 2 {
		t.Errorf("replacement has %d uses, want 2 (call + ret)", got)
	}
	if v := f.Blocks[f.Entry].Term.Ret.Value; v != repl {
		t.Errorf("ret still references %%%d", v)
	}

	f.Remove(sum)
	if err := ir.ValidateFunc(f); err != nil {
		t.Fatalf("validate after rewrite: %v", err)
	}
}

func TestRemoveRequiresZeroUses(t *testing.T) {
	f := ir.NewFunc("remove")
	a := f.AppendIntLit(f.Entry, apint.FromInt64(1, 8), span(0, 1))
	f.AppendCall(f.Entry, "sink", ir.Void, []ir.ID{a}, span(2, 6))
	f.SetRetVoid(f.Entry)

	defer func() {
		if recover() == nil {
			t.Error("expected panic removing a used instruction")
		}
	}()
	f.Remove(a)
}

func TestInsertBeforePreservesOrder(t *testing.T) {
	f := ir.NewFunc("insert")
	a := f.AppendIntLit(f.Entry, apint.FromInt64(1, 8), span(0, 1))
	b := f.AppendCall(f.Entry, "sink", ir.Void, []ir.ID{a}, span(2, 6))
	f.SetRetVoid(f.Entry)

	mid := f.InsertIntLitBefore(b, apint.FromInt64(9, 8), span(2, 6))

	want := []ir.ID{a, mid, b}
	got := f.Blocks[f.Entry].Instrs
	if len(got) != len(want) {
		t.Fatalf("block has %d instrs, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("slot %d: %%%d, want %%%d", i, got[i], want[i])
		}
	}
	if err := ir.ValidateFunc(f); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestAggregateTypesDerived(t *testing.T) {
	f := ir.NewFunc("agg")
	a := f.AppendIntLit(f.Entry, apint.FromInt64(1, 8), span(0, 1))
	fl := f.AppendBuiltin(f.Entry, ir.OpZExt, ir.MakeInt(16), []ir.ID{a}, span(2, 3))
	tp := f.AppendTuple(f.Entry, []ir.ID{a, fl}, span(4, 5))
	ex := f.AppendTupleExtract(f.Entry, tp, 1, span(6, 7))
	f.SetRet(f.Entry, ex)

	if got := f.Instr(tp).Type.String(); got != "(i8, i16)" {
		t.Errorf("tuple type = %s", got)
	}
	if got := f.Instr(ex).Type.String(); got != "i16" {
		t.Errorf("extract type = %s", got)
	}
	if err := ir.ValidateFunc(f); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestValidateCatchesArityAndShape(t *testing.T) {
	f := ir.NewFunc("bad")
	a := f.AppendIntLit(f.Entry, apint.FromInt64(1, 8), span(0, 1))
	b := f.AppendIntLit(f.Entry, apint.FromInt64(1, 1), span(2, 3))
	// Overflow builtin with a non-pair result type.
	f.AppendBuiltin(f.Entry, ir.OpUAddOver, ir.MakeInt(8), []ir.ID{a, a, b}, span(4, 9))
	f.SetRetVoid(f.Entry)

	err := ir.ValidateFunc(f)
	if err == nil {
		t.Fatal("expected shape violation")
	}
	if !strings.Contains(err.Error(), "must produce (iN, i1)") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidateCatchesOperandWidthMismatch(t *testing.T) {
	f := ir.NewFunc("bad")
	a := f.AppendIntLit(f.Entry, apint.FromInt64(1, 8), span(0, 1))
	b := f.AppendIntLit(f.Entry, apint.FromInt64(1, 16), span(2, 3))
	flag := f.AppendIntLit(f.Entry, apint.Bool(true), span(4, 5))
	add := f.AppendBuiltin(f.Entry, ir.OpUAddOver,
		ir.MakeTuple(ir.MakeInt(8), ir.Bool), []ir.ID{a, b, flag}, span(0, 5))
	f.SetRet(f.Entry, add)

	err := ir.ValidateFunc(f)
	if err == nil {
		t.Fatal("expected width mismatch to be rejected")
	}
	if !strings.Contains(err.Error(), "operand width mismatch") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidateCatchesBadResizeDirection(t *testing.T) {
	tests := []struct {
		op   ir.Op
		from uint32
		to   uint32
		want string
	}{
		{ir.OpTrunc, 8, 16, "widens"},
		{ir.OpZExt, 16, 8, "narrows"},
		{ir.OpSExt, 16, 8, "narrows"},
		{ir.OpSTruncOver, 8, 16, "widens"},
	}
	for _, tt := range tests {
		f := ir.NewFunc("bad")
		a := f.AppendIntLit(f.Entry, apint.FromInt64(1, tt.from), span(0, 1))
		r := f.AppendBuiltin(f.Entry, tt.op, ir.MakeInt(tt.to), []ir.ID{a}, span(2, 3))
		f.SetRet(f.Entry, r)

		err := ir.ValidateFunc(f)
		if err == nil {
			t.Errorf("%s i%d -> i%d: expected error", tt.op, tt.from, tt.to)
			continue
		}
		if !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%s i%d -> i%d: error %v, want %q", tt.op, tt.from, tt.to, err, tt.want)
		}
	}
}

func TestValidateCatchesNonIntegerOperands(t *testing.T) {
	f := ir.NewFunc("bad")
	num := f.AppendIntLit(f.Entry, apint.FromInt64(1, 32), span(0, 1))
	denom := f.AppendFloatLit(f.Entry, big.NewFloat(2), 32, span(2, 3))
	div := f.AppendBuiltin(f.Entry, ir.OpSDiv, ir.MakeInt(32), []ir.ID{num, denom}, span(0, 3))
	f.SetRet(f.Entry, div)

	err := ir.ValidateFunc(f)
	if err == nil {
		t.Fatal("expected float denominator to be rejected")
	}
	if !strings.Contains(err.Error(), "integer operands") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestDumpFunc(t *testing.T) {
	f := ir.NewFunc("main")
	a := f.AppendIntLit(f.Entry, apint.FromInt64(255, 8), span(0, 3))
	b := f.AppendIntLit(f.Entry, apint.FromInt64(1, 8), span(4, 5))
	rep := f.AppendIntLit(f.Entry, apint.Bool(true), span(0, 5))
	add := f.AppendBuiltin(f.Entry, ir.OpUAddOver,
		ir.MakeTuple(ir.MakeInt(8), ir.Bool), []ir.ID{a, b, rep}, span(0, 5))
	f.SetRet(f.Entry, add)

	var sb strings.Builder
	if err := ir.DumpFunc(&sb, f); err != nil {
		t.Fatal(err)
	}
	out := sb.String()
	for _, want := range []string{
		"fn main:",
		"%0 = int 255 : i8",
		"%3 = uadd_over %0, %1, %2 : (i8, i1)",
		"ret %3",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("dump missing %q:\n%s", want, out)
		}
	}
}

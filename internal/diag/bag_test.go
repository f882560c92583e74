package diag

import (
	"testing"

	"ember/internal/source"
)

func TestBagLimit(t *testing.T) {
	b := NewBag(2)
	sp := source.Span{File: 1, Start: 0, End: 1}
	if !b.Add(NewError(FoldDivisionByZero, sp, "division by zero")) {
		t.Fatal("first add must succeed")
	}
	if !b.Add(NewError(FoldDivisionByZero, sp, "division by zero")) {
		t.Fatal("second add must succeed")
	}
	if b.Add(NewError(FoldDivisionByZero, sp, "division by zero")) {
		t.Fatal("third add must hit the limit")
	}
	if b.Len() != 2 {
		t.Errorf("len = %d, want 2", b.Len())
	}
}

func TestBagSortByPosition(t *testing.T) {
	b := NewBag(10)
	b.Add(NewError(FoldDivisionByZero, source.Span{File: 1, Start: 40, End: 41}, "late"))
	b.Add(NewWarning(FoldLiteralOverflow, source.Span{File: 1, Start: 5, End: 6}, "early"))
	b.Add(NewError(FoldArithmeticOverflow, source.Span{File: 1, Start: 5, End: 6}, "early error"))
	b.Sort()

	items := b.Items()
	if items[0].Message != "early error" {
		t.Errorf("items[0] = %q, want error before warning at same span", items[0].Message)
	}
	if items[1].Message != "early" {
		t.Errorf("items[1] = %q", items[1].Message)
	}
	if items[2].Message != "late" {
		t.Errorf("items[2] = %q", items[2].Message)
	}
}

func TestBagDedup(t *testing.T) {
	b := NewBag(10)
	sp := source.Span{File: 1, Start: 3, End: 9}
	b.Add(NewError(FoldDivisionByZero, sp, "division by zero"))
	b.Add(NewError(FoldDivisionByZero, sp, "division by zero"))
	b.Add(NewError(FoldDivisionOverflow, sp, "overflow"))
	b.Dedup()
	if b.Len() != 2 {
		t.Errorf("len = %d after dedup, want 2", b.Len())
	}
}

func TestBagMergeGrowsCap(t *testing.T) {
	a := NewBag(1)
	a.Add(NewError(FoldDivisionByZero, source.Span{File: 1}, "x"))
	b := NewBag(2)
	b.Add(NewError(FoldDivisionByZero, source.Span{File: 2}, "y"))
	b.Add(NewError(FoldDivisionByZero, source.Span{File: 3}, "z"))
	a.Merge(b)
	if a.Len() != 3 {
		t.Errorf("len = %d after merge, want 3", a.Len())
	}
}

func TestCodeID(t *testing.T) {
	if got := FoldDivisionByZero.ID(); got != "FLD2001" {
		t.Errorf("ID = %q", got)
	}
	if got := TxtUnknownOp.ID(); got != "TXT1005" {
		t.Errorf("ID = %q", got)
	}
}

package driver_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ember/internal/diag"
	"ember/internal/driver"
)

const foldInput = `fn main:
  bb0:
    %0 = int 255 : i8
    %1 = int 1 : i8
    %2 = int 1 : i1
    %3 = uadd_over %0, %1, %2 : (i8, i1)
    %4 = tuple_extract %3, 0 : i8
    ret %4
`

const divZeroInput = `fn main:
  bb0:
    %0 = int 5 : i32
    %1 = int 0 : i32
    %2 = sdiv %0, %1 : i32
    ret %2
`

func TestFoldText(t *testing.T) {
	res, err := driver.FoldText(context.Background(), "main.eir", []byte(foldInput), driver.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Folded != 2 {
		t.Errorf("folded = %d, want 2", res.Folded)
	}
	if !strings.Contains(res.Dump, "ret %") {
		t.Errorf("dump lost the return:\n%s", res.Dump)
	}
	if got := res.Bag.Len(); got != 1 {
		t.Fatalf("got %d diagnostics, want 1", got)
	}
	if res.Bag.Items()[0].Code != diag.FoldArithmeticOverflow {
		t.Errorf("code = %s", res.Bag.Items()[0].Code.ID())
	}
}

func TestFoldRejectsWidthMismatchedBuiltin(t *testing.T) {
	const input = `fn main:
  bb0:
    %0 = int 1 : i8
    %1 = int 1 : i16
    %2 = int 1 : i1
    %3 = uadd_over %0, %1, %2 : (i8, i1)
    ret %3
`
	_, err := driver.FoldText(context.Background(), "bad.eir", []byte(input), driver.Options{})
	if err == nil {
		t.Fatal("width-mismatched program must be rejected before folding")
	}
	if !strings.Contains(err.Error(), "invalid IR") {
		t.Errorf("error = %v, want the validation wrapper", err)
	}
	if !strings.Contains(err.Error(), "width mismatch") {
		t.Errorf("error = %v, want the shape detail", err)
	}
}

func TestFoldFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.eir")
	if err := os.WriteFile(path, []byte(divZeroInput), 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := driver.FoldFile(context.Background(), path, driver.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Bag.HasErrors() {
		t.Fatal("division by zero not reported")
	}
	d := res.Bag.Items()[0]
	if d.Code != diag.FoldDivisionByZero {
		t.Errorf("code = %s", d.Code.ID())
	}
	if d.Primary.Synthetic() {
		t.Error("diagnostic lost its source span")
	}
}

func TestFoldParseErrorStopsPipeline(t *testing.T) {
	res, err := driver.FoldText(context.Background(), "bad.eir", []byte("fn f:\n  bb0:\n    nonsense\n    ret\n"), driver.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Folded != 0 {
		t.Errorf("folded = %d on unparsable input", res.Folded)
	}
	if !res.Bag.HasErrors() {
		t.Error("parse error not reported")
	}
}

func TestFoldCacheRoundTrip(t *testing.T) {
	cache, err := driver.OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	opts := driver.Options{Cache: cache}

	first, err := driver.FoldText(context.Background(), "main.eir", []byte(divZeroInput), opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheHit {
		t.Fatal("first run must not hit the cache")
	}

	second, err := driver.FoldText(context.Background(), "main.eir", []byte(divZeroInput), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheHit {
		t.Fatal("second run must hit the cache")
	}
	if second.Dump != first.Dump {
		t.Error("cached dump differs")
	}
	if second.Folded != first.Folded {
		t.Errorf("cached folded = %d, want %d", second.Folded, first.Folded)
	}
	if second.Bag.Len() != first.Bag.Len() {
		t.Fatalf("cached diagnostics = %d, want %d", second.Bag.Len(), first.Bag.Len())
	}
	a, b := first.Bag.Items()[0], second.Bag.Items()[0]
	if a.Code != b.Code || a.Message != b.Message || a.Primary != b.Primary {
		t.Errorf("cached diagnostic differs: %+v vs %+v", a, b)
	}

	// Изменённый вход не должен попадать в старую запись.
	third, err := driver.FoldText(context.Background(), "main.eir", []byte(foldInput), opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheHit {
		t.Error("different content must miss the cache")
	}
}

func TestFoldTimings(t *testing.T) {
	res, err := driver.FoldText(context.Background(), "main.eir", []byte(foldInput), driver.Options{Timings: true})
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, d := range res.Bag.Items() {
		if d.Code == diag.ObsTimings {
			found = true
			if len(d.Notes) != 1 || !strings.Contains(d.Notes[0].Msg, "\"phases\"") {
				t.Errorf("timing payload malformed: %+v", d.Notes)
			}
		}
	}
	if !found {
		t.Error("missing timings diagnostic")
	}
}

func TestFoldParallelMatchesSequential(t *testing.T) {
	var sb strings.Builder
	for n := 0; n < 6; n++ {
		sb.WriteString(divZeroInput)
	}
	input := []byte(sb.String())

	seq, err := driver.FoldText(context.Background(), "many.eir", input, driver.Options{Jobs: 1})
	if err != nil {
		t.Fatal(err)
	}
	par, err := driver.FoldText(context.Background(), "many.eir", input, driver.Options{Jobs: 4})
	if err != nil {
		t.Fatal(err)
	}
	if seq.Bag.Len() != par.Bag.Len() {
		t.Fatalf("parallel lost diagnostics: %d vs %d", par.Bag.Len(), seq.Bag.Len())
	}
	for i := range seq.Bag.Items() {
		a, b := seq.Bag.Items()[i], par.Bag.Items()[i]
		if a.Primary != b.Primary || a.Code != b.Code {
			t.Errorf("diagnostic %d differs: %+v vs %+v", i, a, b)
		}
	}
}

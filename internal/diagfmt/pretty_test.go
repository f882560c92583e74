package diagfmt_test

import (
	"encoding/json"
	"strings"
	"testing"

	"ember/internal/diag"
	"ember/internal/diagfmt"
	"ember/internal/source"
)

func testBag(t *testing.T) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.AddVirtual("demo.eir", []byte("    %2 = sdiv %0, %1 : i32\n    ret %2\n"))

	bag := diag.NewBag(8)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.FoldDivisionByZero,
		Message:  "division by zero",
		Primary:  source.Span{File: file, Start: 9, End: 22},
	})
	return bag, fs
}

func TestPrettyPlain(t *testing.T) {
	bag, fs := testBag(t)

	var sb strings.Builder
	diagfmt.Pretty(&sb, bag, fs, diagfmt.PrettyOpts{
		PathMode:    diagfmt.PathModeBasename,
		ShowPreview: true,
	})
	out := sb.String()

	if !strings.Contains(out, "demo.eir:1:10: ERROR FLD2001: division by zero") {
		t.Errorf("missing header line:\n%s", out)
	}
	if !strings.Contains(out, "    %2 = sdiv %0, %1 : i32") {
		t.Errorf("missing source preview:\n%s", out)
	}
	// Подчёркивание начинается под девятым байтом строки: два байта
	// отступа вывода плюс девять байт исходной строки, длина спана 13.
	caret := "\n" + strings.Repeat(" ", 2+9) + "^" + strings.Repeat("~", 12) + "\n"
	if !strings.Contains(out, caret) {
		t.Errorf("caret misaligned:\n%s", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("escape codes leaked into plain output")
	}
}

func TestPrettyColor(t *testing.T) {
	bag, fs := testBag(t)

	var sb strings.Builder
	diagfmt.Pretty(&sb, bag, fs, diagfmt.PrettyOpts{Color: true})
	if !strings.Contains(sb.String(), "\x1b[") {
		t.Error("expected escape codes in colored output")
	}
}

func TestPrettySyntheticSpanHasNoLocation(t *testing.T) {
	fs := source.NewFileSet()
	bag := diag.NewBag(8)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevWarning,
		Code:     diag.FoldLiteralOverflow,
		Message:  "integer literal overflows when stored into 'i8'",
	})

	var sb strings.Builder
	diagfmt.Pretty(&sb, bag, fs, diagfmt.PrettyOpts{ShowPreview: true})
	out := sb.String()

	if !strings.HasPrefix(out, "WARNING FLD2004: ") {
		t.Errorf("unexpected prefix: %q", out)
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("synthetic diagnostic must be a single line:\n%s", out)
	}
}

func TestPrettyMaxTruncates(t *testing.T) {
	fs := source.NewFileSet()
	bag := diag.NewBag(8)
	for n := 0; n < 5; n++ {
		bag.Add(diag.Diagnostic{
			Severity: diag.SevError,
			Code:     diag.FoldDivisionByZero,
			Message:  "division by zero",
		})
	}

	var sb strings.Builder
	diagfmt.Pretty(&sb, bag, fs, diagfmt.PrettyOpts{Max: 2})
	out := sb.String()

	if got := strings.Count(out, "division by zero"); got != 2 {
		t.Errorf("printed %d diagnostics, want 2", got)
	}
	if !strings.Contains(out, "and 3 more diagnostics") {
		t.Errorf("missing truncation marker:\n%s", out)
	}
}

func TestJSONOutput(t *testing.T) {
	bag, fs := testBag(t)
	bag.Items()[0].Notes = []diag.Note{{Msg: "numerator is opaque"}}

	var sb strings.Builder
	err := diagfmt.JSON(&sb, bag, fs, diagfmt.JSONOpts{
		IncludePositions: true,
		PathMode:         diagfmt.PathModeBasename,
		IncludeNotes:     true,
	})
	if err != nil {
		t.Fatal(err)
	}

	var out diagfmt.DiagnosticsOutput
	if err := json.Unmarshal([]byte(sb.String()), &out); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("count = %d", out.Count)
	}
	d := out.Diagnostics[0]
	if d.Severity != "ERROR" || d.Code != "FLD2001" {
		t.Errorf("diagnostic = %+v", d)
	}
	if d.Location.File != "demo.eir" || d.Location.StartLine != 1 || d.Location.StartCol != 10 {
		t.Errorf("location = %+v", d.Location)
	}
	if len(d.Notes) != 1 || d.Notes[0].Message != "numerator is opaque" {
		t.Errorf("notes = %+v", d.Notes)
	}
}

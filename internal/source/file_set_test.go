package source

import (
	"testing"
)

func TestFileSetReservesSentinel(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.eir", []byte("fn main {\n}\n"))
	if id == 0 {
		t.Fatalf("expected first real FileID to be non-zero")
	}
	if fs.Get(0) != nil {
		t.Errorf("FileID 0 must resolve to nil")
	}
	if f := fs.Get(id); f == nil || f.Path != "test.eir" {
		t.Errorf("unexpected file for id %d: %+v", id, f)
	}
}

func TestResolveLineCol(t *testing.T) {
	fs := NewFileSet()
	content := []byte("line one\nline two\nline three\n")
	id := fs.AddVirtual("t.eir", content)

	tests := []struct {
		off  uint32
		line uint32
		col  uint32
	}{
		{0, 1, 1},
		{7, 1, 8},
		{9, 2, 1},
		{18, 3, 1},
		{20, 3, 3},
	}
	for _, tt := range tests {
		start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
		if start.Line != tt.line || start.Col != tt.col {
			t.Errorf("offset %d: got %d:%d, want %d:%d", tt.off, start.Line, start.Col, tt.line, tt.col)
		}
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("t.eir", []byte("alpha\nbeta\ngamma"))
	f := fs.Get(id)

	if got := f.GetLine(1); got != "alpha" {
		t.Errorf("line 1: got %q", got)
	}
	if got := f.GetLine(2); got != "beta" {
		t.Errorf("line 2: got %q", got)
	}
	if got := f.GetLine(3); got != "gamma" {
		t.Errorf("line 3: got %q", got)
	}
	if got := f.GetLine(4); got != "" {
		t.Errorf("line 4: got %q, want empty", got)
	}
}

func TestNormalizeCRLF(t *testing.T) {
	fs := NewFileSet()
	id := fs.Add("crlf.eir", []byte("a\r\nb"), 0)
	_ = id
	out, changed := normalizeCRLF([]byte("a\r\nb\rc"))
	if !changed {
		t.Fatal("expected change")
	}
	if string(out) != "a\nb\rc" {
		t.Errorf("got %q", out)
	}
}

func TestSpanSynthetic(t *testing.T) {
	var zero Span
	if !zero.Synthetic() {
		t.Error("zero span must be synthetic")
	}
	real := Span{File: 1, Start: 0, End: 0}
	if real.Synthetic() {
		t.Error("span in file 1 must not be synthetic")
	}
}

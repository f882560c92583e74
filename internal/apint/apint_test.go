package apint

import (
	"math/big"
	"testing"
)

func TestSignedUnsignedViews(t *testing.T) {
	tests := []struct {
		v        int64
		width    uint32
		signed   string
		unsigned string
	}{
		{-1, 8, "-1", "255"},
		{127, 8, "127", "127"},
		{-128, 8, "-128", "128"},
		{200, 8, "-56", "200"},
		{0, 1, "0", "0"},
		{1, 1, "-1", "1"},
	}
	for _, tt := range tests {
		x := FromInt64(tt.v, tt.width)
		if got := x.String(true); got != tt.signed {
			t.Errorf("FromInt64(%d, %d) signed = %s, want %s", tt.v, tt.width, got, tt.signed)
		}
		if got := x.String(false); got != tt.unsigned {
			t.Errorf("FromInt64(%d, %d) unsigned = %s, want %s", tt.v, tt.width, got, tt.unsigned)
		}
	}
}

func TestAddOv(t *testing.T) {
	tests := []struct {
		a, b     int64
		width    uint32
		signed   bool
		want     int64
		overflow bool
	}{
		{255, 1, 8, false, 0, true},
		{254, 1, 8, false, 255, false},
		{127, 1, 8, true, -128, true},
		{-128, -1, 8, true, 127, true},
		{100, 27, 8, true, 127, false},
	}
	for _, tt := range tests {
		x, y := FromInt64(tt.a, tt.width), FromInt64(tt.b, tt.width)
		res, ov := x.AddOv(y, tt.signed)
		if ov != tt.overflow {
			t.Errorf("%d+%d w=%d signed=%v: overflow=%v, want %v", tt.a, tt.b, tt.width, tt.signed, ov, tt.overflow)
		}
		if !res.Eq(FromInt64(tt.want, tt.width)) {
			t.Errorf("%d+%d w=%d: got %s, want %d", tt.a, tt.b, tt.width, res.String(tt.signed), tt.want)
		}
	}
}

func TestSubMulOv(t *testing.T) {
	x, y := FromInt64(0, 8), FromInt64(1, 8)
	res, ov := x.SubOv(y, false)
	if !ov || res.String(false) != "255" {
		t.Errorf("0-1 unsigned: got %s ov=%v", res.String(false), ov)
	}

	res, ov = FromInt64(-128, 8).MulOv(FromInt64(-1, 8), true)
	if !ov {
		t.Error("-128 * -1 signed i8 must overflow")
	}
	if !res.Eq(FromInt64(-128, 8)) {
		t.Errorf("-128 * -1 wrapped = %s", res.String(true))
	}

	res, ov = FromInt64(16, 16).MulOv(FromInt64(16, 16), false)
	if ov || res.String(false) != "256" {
		t.Errorf("16*16 u16: got %s ov=%v", res.String(false), ov)
	}
}

func TestSDivOv(t *testing.T) {
	res, ov := FromInt64(-128, 8).SDivOv(FromInt64(-1, 8))
	if !ov {
		t.Error("-128 / -1 must overflow in i8")
	}
	_ = res

	res, ov = FromInt64(7, 8).SDivOv(FromInt64(-2, 8))
	if ov {
		t.Error("7 / -2 must not overflow")
	}
	if res.String(true) != "-3" {
		t.Errorf("7 / -2 = %s, want -3 (truncation toward zero)", res.String(true))
	}
}

func TestRemainders(t *testing.T) {
	if got := FromInt64(-7, 8).SRem(FromInt64(2, 8)).String(true); got != "-1" {
		t.Errorf("-7 srem 2 = %s, want -1", got)
	}
	if got := FromInt64(7, 8).URem(FromInt64(3, 8)).String(false); got != "1" {
		t.Errorf("7 urem 3 = %s, want 1", got)
	}
	if got := FromInt64(250, 8).UDiv(FromInt64(10, 8)).String(false); got != "25" {
		t.Errorf("250 udiv 10 = %s, want 25", got)
	}
}

func TestResize(t *testing.T) {
	// strunc semantics: trunc then re-extend must round-trip.
	v := FromInt64(100, 16)
	tr := v.Trunc(8)
	if !tr.SExt(16).Eq(v) {
		t.Error("100:i16 must round-trip through i8 with sext")
	}

	v = FromInt64(200, 16)
	tr = v.Trunc(8)
	if tr.SExt(16).Eq(v) {
		t.Error("200:i16 must not round-trip through signed i8")
	}
	if !tr.ZExt(16).Eq(v) {
		t.Error("200:i16 must round-trip through unsigned i8")
	}

	if got := FromInt64(-1, 8).ZExt(16).String(false); got != "255" {
		t.Errorf("zext(-1:i8) = %s, want 255", got)
	}
	if got := FromInt64(-1, 8).SExt(16).String(true); got != "-1" {
		t.Errorf("sext(-1:i8) = %s, want -1", got)
	}
}

func TestWidthMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on width mismatch")
		}
	}()
	FromInt64(1, 8).AddOv(FromInt64(1, 16), false)
}

func TestFloatFromInt(t *testing.T) {
	f, ov := Binary32.FromInt(FromInt64(1, 64))
	if ov {
		t.Fatal("1 must fit f32")
	}
	if v, _ := f.Float32(); v != 1.0 {
		t.Errorf("got %v", v)
	}

	// 2^128 overflows binary32's exponent range.
	huge := New(new(big.Int).Lsh(big.NewInt(1), 128), 256)
	if _, ov := Binary32.FromInt(huge); !ov {
		t.Error("2^128 must overflow f32")
	}
	if _, ov := Binary64.FromInt(huge); ov {
		t.Error("2^128 must fit f64")
	}

	// Round-to-nearest-even: 2^24+1 is not representable in 24-bit mantissa.
	v := FromInt64((1<<24)+1, 64)
	f, ov = Binary32.FromInt(v)
	if ov {
		t.Fatal("2^24+1 must not overflow f32")
	}
	got, _ := f.Float32()
	if got != float32(1<<24) {
		t.Errorf("2^24+1 rounded to %v, want %v", got, float32(1<<24))
	}
}

func TestFloatNegative(t *testing.T) {
	f, ov := Binary64.FromInt(FromInt64(-3, 8))
	if ov {
		t.Fatal("-3 must fit f64")
	}
	if v, _ := f.Float64(); v != -3.0 {
		t.Errorf("got %v", v)
	}
}

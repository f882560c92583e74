// Package apint implements fixed-width two's-complement integers on top of
// math/big, plus conversion into IEEE binary float destinations.
//
// Values are computed exactly and then checked against the target bit width,
// which is what lets the fold pass detect overflow statically instead of
// reproducing machine wrap-around semantics.
package apint

import (
	"fmt"
	"math/big"
)

// Int is an integer with an explicit bit width. bits always holds the
// canonical unsigned representation: 0 <= bits < 2^width.
type Int struct {
	bits  *big.Int
	width uint32
}

// New builds an Int from an arbitrary big.Int, reducing it into the width's
// unsigned range. Negative inputs are interpreted as two's complement.
func New(v *big.Int, width uint32) Int {
	if width == 0 {
		panic("apint: zero width")
	}
	bits := new(big.Int).Set(v)
	mod := modulus(width)
	bits.Mod(bits, mod)
	if bits.Sign() < 0 {
		bits.Add(bits, mod)
	}
	return Int{bits: bits, width: width}
}

// FromInt64 builds an Int from a signed machine integer.
func FromInt64(v int64, width uint32) Int {
	return New(big.NewInt(v), width)
}

// FromUint64 builds an Int from an unsigned machine integer.
func FromUint64(v uint64, width uint32) Int {
	return New(new(big.Int).SetUint64(v), width)
}

// Bool builds a 1-bit Int, the representation of overflow flags.
func Bool(v bool) Int {
	if v {
		return FromUint64(1, 1)
	}
	return FromUint64(0, 1)
}

func modulus(width uint32) *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), uint(width))
}

// Width returns the bit width.
func (x Int) Width() uint32 { return x.width }

// Unsigned returns a copy of the raw bit pattern as a non-negative integer.
func (x Int) Unsigned() *big.Int {
	return new(big.Int).Set(x.bits)
}

// Signed returns the two's-complement interpretation of the bit pattern.
func (x Int) Signed() *big.Int {
	half := new(big.Int).Lsh(big.NewInt(1), uint(x.width-1))
	if x.bits.Cmp(half) < 0 {
		return new(big.Int).Set(x.bits)
	}
	return new(big.Int).Sub(x.bits, modulus(x.width))
}

// IsZero reports whether all bits are clear.
func (x Int) IsZero() bool { return x.bits.Sign() == 0 }

// IsTrue reports a non-zero 1-bit value. Used for literal report flags.
func (x Int) IsTrue() bool { return !x.IsZero() }

// Eq reports bit-pattern equality. Widths must match.
func (x Int) Eq(y Int) bool {
	x.mustMatch(y)
	return x.bits.Cmp(y.bits) == 0
}

// String renders the value in decimal per the signedness convention the
// surrounding diagnostic uses.
func (x Int) String(signed bool) string {
	if signed {
		return x.Signed().String()
	}
	return x.bits.String()
}

func (x Int) mustMatch(y Int) {
	if x.width != y.width {
		panic(fmt.Sprintf("apint: width mismatch %d vs %d", x.width, y.width))
	}
}

// inRange reports whether the exact value v fits the width under the given
// signedness.
func inRange(v *big.Int, width uint32, signed bool) bool {
	if signed {
		half := new(big.Int).Lsh(big.NewInt(1), uint(width-1))
		min := new(big.Int).Neg(half)
		return v.Cmp(min) >= 0 && v.Cmp(half) < 0
	}
	return v.Sign() >= 0 && v.Cmp(modulus(width)) < 0
}

func (x Int) binOv(y Int, signed bool, op func(z, a, b *big.Int) *big.Int) (Int, bool) {
	x.mustMatch(y)
	var a, b *big.Int
	if signed {
		a, b = x.Signed(), y.Signed()
	} else {
		a, b = x.Unsigned(), y.Unsigned()
	}
	exact := op(new(big.Int), a, b)
	return New(exact, x.width), !inRange(exact, x.width, signed)
}

// AddOv computes x+y exactly, wraps into the width, and reports overflow.
func (x Int) AddOv(y Int, signed bool) (Int, bool) {
	return x.binOv(y, signed, (*big.Int).Add)
}

// SubOv computes x-y exactly, wraps into the width, and reports overflow.
func (x Int) SubOv(y Int, signed bool) (Int, bool) {
	return x.binOv(y, signed, (*big.Int).Sub)
}

// MulOv computes x*y exactly, wraps into the width, and reports overflow.
func (x Int) MulOv(y Int, signed bool) (Int, bool) {
	return x.binOv(y, signed, (*big.Int).Mul)
}

// SDivOv computes the signed quotient, truncated toward zero. Overflow is
// possible only for MinValue / -1. Division by zero must be excluded by the
// caller.
func (x Int) SDivOv(y Int) (Int, bool) {
	x.mustMatch(y)
	if y.IsZero() {
		panic("apint: signed division by zero")
	}
	q := new(big.Int).Quo(x.Signed(), y.Signed())
	return New(q, x.width), !inRange(q, x.width, true)
}

// UDiv computes the unsigned quotient. Never overflows.
func (x Int) UDiv(y Int) Int {
	x.mustMatch(y)
	if y.IsZero() {
		panic("apint: unsigned division by zero")
	}
	return New(new(big.Int).Quo(x.Unsigned(), y.Unsigned()), x.width)
}

// SRem computes the signed remainder with the sign of the dividend.
func (x Int) SRem(y Int) Int {
	x.mustMatch(y)
	if y.IsZero() {
		panic("apint: signed remainder by zero")
	}
	return New(new(big.Int).Rem(x.Signed(), y.Signed()), x.width)
}

// URem computes the unsigned remainder.
func (x Int) URem(y Int) Int {
	x.mustMatch(y)
	if y.IsZero() {
		panic("apint: unsigned remainder by zero")
	}
	return New(new(big.Int).Rem(x.Unsigned(), y.Unsigned()), x.width)
}

// Trunc keeps the low w bits.
func (x Int) Trunc(w uint32) Int {
	if w > x.width {
		panic(fmt.Sprintf("apint: trunc %d -> %d widens", x.width, w))
	}
	return New(x.bits, w)
}

// ZExt widens the value with zero bits.
func (x Int) ZExt(w uint32) Int {
	if w < x.width {
		panic(fmt.Sprintf("apint: zext %d -> %d narrows", x.width, w))
	}
	return New(x.bits, w)
}

// SExt widens the value replicating the sign bit.
func (x Int) SExt(w uint32) Int {
	if w < x.width {
		panic(fmt.Sprintf("apint: sext %d -> %d narrows", x.width, w))
	}
	return New(x.Signed(), w)
}

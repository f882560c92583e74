package apint

import (
	"math/big"
)

// FloatSemantics describes an IEEE binary float destination: mantissa
// precision in bits and the exclusive exponent bound (finite values satisfy
// |v| < 2^MaxExp after rounding).
type FloatSemantics struct {
	Prec   uint
	MaxExp int
	Name   string
}

var (
	// Binary32 is IEEE-754 single precision.
	Binary32 = FloatSemantics{Prec: 24, MaxExp: 128, Name: "f32"}
	// Binary64 is IEEE-754 double precision.
	Binary64 = FloatSemantics{Prec: 53, MaxExp: 1024, Name: "f64"}
)

// SemanticsForWidth maps a float bit width onto its semantics.
func SemanticsForWidth(width uint32) (FloatSemantics, bool) {
	switch width {
	case 32:
		return Binary32, true
	case 64:
		return Binary64, true
	}
	return FloatSemantics{}, false
}

// FromInt converts the signed interpretation of x into the destination
// semantics using round-to-nearest-ties-to-even. The second result reports
// overflow: the rounded magnitude fell outside the finite exponent range.
func (s FloatSemantics) FromInt(x Int) (*big.Float, bool) {
	f := new(big.Float).SetPrec(s.Prec).SetMode(big.ToNearestEven)
	f.SetInt(x.Signed())
	if f.Sign() == 0 {
		return f, false
	}
	// MantExp normalizes the mantissa into [0.5, 1); a finite destination
	// value therefore has exponent <= MaxExp.
	if f.MantExp(nil) > s.MaxExp {
		return f, true
	}
	return f, false
}

// NewFloat returns a zero float carrying the destination precision and
// rounding mode. Useful for parsing literals into a specific semantics.
func (s FloatSemantics) NewFloat() *big.Float {
	return new(big.Float).SetPrec(s.Prec).SetMode(big.ToNearestEven)
}

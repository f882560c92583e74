package ir

import "fmt"

// Op enumerates the builtin operations known to the fold catalog.
type Op uint8

const (
	// OpSAddOver is signed add with overflow: (lhs, rhs, report) -> (result, flag).
	OpSAddOver Op = iota
	OpUAddOver
	OpSSubOver
	OpUSubOver
	OpSMulOver
	OpUMulOver
	// OpTrunc resizes an integer down to the result width.
	OpTrunc
	// OpZExt widens an integer with zero bits.
	OpZExt
	// OpSExt widens an integer replicating the sign bit.
	OpSExt
	// OpSDiv is signed division (num, denom).
	OpSDiv
	OpUDiv
	OpSRem
	OpURem
	// OpExactSDiv is signed division that asserts exact divisibility.
	OpExactSDiv
	// OpExactUDiv is the unsigned exact variant. The fold catalog defines no
	// overflow semantics for it, so it is never folded.
	OpExactUDiv
	// OpSTruncOver is checked signed narrowing of an integer literal.
	OpSTruncOver
	OpUTruncOver
	// OpIntToFPOver converts a signed integer into the result float type,
	// diagnosing exponent-range overflow.
	OpIntToFPOver

	numOps
)

// Family groups ops by fold rule.
type Family uint8

const (
	// FamilyArithOver covers the six *_over arithmetic builtins.
	FamilyArithOver Family = iota
	// FamilyResize covers trunc/zext/sext, which always fold.
	FamilyResize
	// FamilyDivision covers division and remainder variants.
	FamilyDivision
	// FamilyCheckedTrunc covers checked literal narrowing.
	FamilyCheckedTrunc
	// FamilyIntToFloat covers checked integer-to-float conversion.
	FamilyIntToFloat
)

// OpInfo is the static per-op descriptor.
type OpInfo struct {
	Name     string // textual mnemonic
	Family   Family
	Signed   bool   // signedness convention for operands/diagnostics
	Operator string // operator token for diagnostics
	NumArgs  int
}

var opInfos = [numOps]OpInfo{
	OpSAddOver:    {Name: "sadd_over", Family: FamilyArithOver, Signed: true, Operator: "+", NumArgs: 3},
	OpUAddOver:    {Name: "uadd_over", Family: FamilyArithOver, Operator: "+", NumArgs: 3},
	OpSSubOver:    {Name: "ssub_over", Family: FamilyArithOver, Signed: true, Operator: "-", NumArgs: 3},
	OpUSubOver:    {Name: "usub_over", Family: FamilyArithOver, Operator: "-", NumArgs: 3},
	OpSMulOver:    {Name: "smul_over", Family: FamilyArithOver, Signed: true, Operator: "*", NumArgs: 3},
	OpUMulOver:    {Name: "umul_over", Family: FamilyArithOver, Operator: "*", NumArgs: 3},
	OpTrunc:       {Name: "trunc", Family: FamilyResize, NumArgs: 1},
	OpZExt:        {Name: "zext", Family: FamilyResize, NumArgs: 1},
	OpSExt:        {Name: "sext", Family: FamilyResize, Signed: true, NumArgs: 1},
	OpSDiv:        {Name: "sdiv", Family: FamilyDivision, Signed: true, Operator: "/", NumArgs: 2},
	OpUDiv:        {Name: "udiv", Family: FamilyDivision, Operator: "/", NumArgs: 2},
	OpSRem:        {Name: "srem", Family: FamilyDivision, Signed: true, Operator: "%", NumArgs: 2},
	OpURem:        {Name: "urem", Family: FamilyDivision, Operator: "%", NumArgs: 2},
	OpExactSDiv:   {Name: "sdiv_exact", Family: FamilyDivision, Signed: true, Operator: "/", NumArgs: 2},
	OpExactUDiv:   {Name: "udiv_exact", Family: FamilyDivision, Operator: "/", NumArgs: 2},
	OpSTruncOver:  {Name: "strunc_over", Family: FamilyCheckedTrunc, Signed: true, NumArgs: 1},
	OpUTruncOver:  {Name: "utrunc_over", Family: FamilyCheckedTrunc, NumArgs: 1},
	OpIntToFPOver: {Name: "inttofp_over", Family: FamilyIntToFloat, Signed: true, NumArgs: 1},
}

var opByName = func() map[string]Op {
	m := make(map[string]Op, numOps)
	for op := Op(0); op < numOps; op++ {
		m[opInfos[op].Name] = op
	}
	return m
}()

// Info returns the static descriptor for the op.
func (o Op) Info() OpInfo {
	if o >= numOps {
		panic(fmt.Sprintf("ir: invalid op %d", o))
	}
	return opInfos[o]
}

func (o Op) String() string {
	if o >= numOps {
		return fmt.Sprintf("Op(%d)", uint8(o))
	}
	return opInfos[o].Name
}

// OpByName resolves a textual mnemonic.
func OpByName(name string) (Op, bool) {
	op, ok := opByName[name]
	return op, ok
}

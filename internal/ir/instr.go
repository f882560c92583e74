package ir

import (
	"math/big"

	"ember/internal/apint"
	"ember/internal/source"
)

// ID identifies an instruction, and its single result, within a Func arena.
// IDs are stable across mutation: deletion tombstones the slot, it is never
// reused.
type ID uint32

// None is the absent-instruction sentinel.
const None ID = ^ID(0)

// Kind enumerates instruction kinds.
type Kind uint8

const (
	// KindIntLit introduces a compile-time integer literal.
	KindIntLit Kind = iota
	// KindFloatLit introduces a compile-time float literal.
	KindFloatLit
	// KindTuple constructs a tuple from element values.
	KindTuple
	// KindStruct constructs a struct from field values.
	KindStruct
	// KindTupleExtract reads one tuple element.
	KindTupleExtract
	// KindStructExtract reads one struct field.
	KindStructExtract
	// KindBuiltin applies one of the Op builtins.
	KindBuiltin
	// KindCall is an opaque, side-effecting call. Never folded or deleted.
	KindCall
)

func (k Kind) String() string {
	switch k {
	case KindIntLit:
		return "int"
	case KindFloatLit:
		return "float"
	case KindTuple:
		return "tuple"
	case KindStruct:
		return "struct"
	case KindTupleExtract:
		return "tuple_extract"
	case KindStructExtract:
		return "struct_extract"
	case KindBuiltin:
		return "builtin"
	case KindCall:
		return "call"
	default:
		return "unknown"
	}
}

// Instr is an instruction graph node: one opcode, at most one result, an
// ordered operand list, and a back-reference list of uses maintained by the
// owning Func.
type Instr struct {
	Kind Kind
	Type Type        // result type; Void for void calls
	Src  source.Span // provenance, diagnostics only

	IntLit   IntLitInstr
	FloatLit FloatLitInstr
	Tuple    TupleInstr
	Struct   StructInstr
	Extract  ExtractInstr
	Builtin  BuiltinInstr
	Call     CallInstr

	// bookkeeping, owned by Func
	id        ID
	block     BlockID
	uses      []Use
	dead      bool
	diagnosed bool
}

// IntLitInstr introduces an integer literal.
type IntLitInstr struct {
	Value apint.Int
}

// FloatLitInstr introduces a float literal.
type FloatLitInstr struct {
	Value *big.Float
}

// TupleInstr constructs a tuple.
type TupleInstr struct {
	Elems []ID
}

// StructInstr constructs a struct.
type StructInstr struct {
	Fields []ID
}

// ExtractInstr reads one constituent of an aggregate.
type ExtractInstr struct {
	Agg   ID
	Index int
}

// BuiltinInstr applies a builtin op to its arguments.
type BuiltinInstr struct {
	Op   Op
	Args []ID
}

// CallInstr is an opaque call, kept only so dead-code elimination has a
// side-effect boundary to stop at.
type CallInstr struct {
	Name string
	Args []ID
}

// ID returns the instruction's arena slot.
func (in *Instr) ID() ID { return in.id }

// Block returns the owning basic block.
func (in *Instr) Block() BlockID { return in.block }

// Alive reports whether the instruction is still in the graph.
func (in *Instr) Alive() bool { return !in.dead }

// Diagnosed reports whether a static-check diagnostic was already issued
// for this instruction.
func (in *Instr) Diagnosed() bool { return in.diagnosed }

// MarkDiagnosed records that a static-check diagnostic was issued, so a
// repeated pass over the same graph does not report the site again.
func (in *Instr) MarkDiagnosed() { in.diagnosed = true }

// Uses returns the live use-edge list. Callers must not retain the slice
// across graph mutation.
func (in *Instr) Uses() []Use { return in.uses }

// NumUses returns the number of use edges pointing at the result.
func (in *Instr) NumUses() int { return len(in.uses) }

// IsLiteral reports whether the instruction is a literal or an aggregate
// construction, the producers of constant values.
func (in *Instr) IsLiteral() bool {
	switch in.Kind {
	case KindIntLit, KindFloatLit, KindTuple, KindStruct:
		return true
	}
	return false
}

// HasSideEffects reports whether deleting the instruction would change
// observable behavior. Such instructions survive DCE even at zero uses.
func (in *Instr) HasSideEffects() bool {
	return in.Kind == KindCall
}

// Operands returns the operand IDs in slot order. The result is a fresh
// slice; use SetOperand to mutate.
func (in *Instr) Operands() []ID {
	switch in.Kind {
	case KindIntLit, KindFloatLit:
		return nil
	case KindTuple:
		return append([]ID(nil), in.Tuple.Elems...)
	case KindStruct:
		return append([]ID(nil), in.Struct.Fields...)
	case KindTupleExtract, KindStructExtract:
		return []ID{in.Extract.Agg}
	case KindBuiltin:
		return append([]ID(nil), in.Builtin.Args...)
	case KindCall:
		return append([]ID(nil), in.Call.Args...)
	default:
		panic("ir: unknown instruction kind")
	}
}

// SetOperand rewires one operand slot. Use-edge bookkeeping is the caller's
// responsibility (Func.ReplaceAllUses goes through here).
func (in *Instr) SetOperand(slot int, v ID) {
	switch in.Kind {
	case KindTuple:
		in.Tuple.Elems[slot] = v
	case KindStruct:
		in.Struct.Fields[slot] = v
	case KindTupleExtract, KindStructExtract:
		if slot != 0 {
			panic("ir: extract has a single operand")
		}
		in.Extract.Agg = v
	case KindBuiltin:
		in.Builtin.Args[slot] = v
	case KindCall:
		in.Call.Args[slot] = v
	default:
		panic("ir: instruction has no operands")
	}
}

// UseKind distinguishes where a use edge lives.
type UseKind uint8

const (
	// UseOperand is an operand slot of a consumer instruction.
	UseOperand UseKind = iota
	// UseTerm is a block terminator operand (ret value).
	UseTerm
)

// Use is a back-reference from a producer's result to one consumer slot.
type Use struct {
	Kind  UseKind
	User  ID      // consuming instruction, for UseOperand
	Slot  int     // operand slot, for UseOperand
	Block BlockID // owning block, for UseTerm
}

package ir

import (
	"fmt"
	"strings"
)

// TypeKind enumerates the result type shapes the fold pass cares about.
type TypeKind uint8

const (
	// TypeVoid marks instructions without a usable result (void calls).
	TypeVoid TypeKind = iota
	// TypeInt is a fixed-width integer. Signedness is not part of the type;
	// it comes from the operation's metadata.
	TypeInt
	// TypeFloat is an IEEE binary float (width 32 or 64).
	TypeFloat
	// TypeTuple is an ordered aggregate of constituent types.
	TypeTuple
	// TypeStruct is a named aggregate of constituent types.
	TypeStruct
)

// Type is a compact structural descriptor for an instruction result.
type Type struct {
	Kind  TypeKind
	Width uint32 // for Int/Float
	Elems []Type // for Tuple/Struct
	Name  string // for Struct
}

// MakeInt describes an integer of the given bit width.
func MakeInt(width uint32) Type {
	return Type{Kind: TypeInt, Width: width}
}

// MakeFloat describes a float of the given bit width (32 or 64).
func MakeFloat(width uint32) Type {
	return Type{Kind: TypeFloat, Width: width}
}

// MakeTuple describes a tuple of the element types.
func MakeTuple(elems ...Type) Type {
	return Type{Kind: TypeTuple, Elems: elems}
}

// MakeStruct describes a named struct with the field types.
func MakeStruct(name string, fields ...Type) Type {
	return Type{Kind: TypeStruct, Name: name, Elems: fields}
}

// Void is the absent result type.
var Void = Type{Kind: TypeVoid}

// Bool is the 1-bit integer used for overflow flags.
var Bool = MakeInt(1)

// IsAggregate reports whether the type carries constituents.
func (t Type) IsAggregate() bool {
	return t.Kind == TypeTuple || t.Kind == TypeStruct
}

// Equal reports structural type equality.
func (t Type) Equal(o Type) bool {
	if t.Kind != o.Kind || t.Width != o.Width || t.Name != o.Name {
		return false
	}
	if len(t.Elems) != len(o.Elems) {
		return false
	}
	for i := range t.Elems {
		if !t.Elems[i].Equal(o.Elems[i]) {
			return false
		}
	}
	return true
}

func (t Type) String() string {
	switch t.Kind {
	case TypeVoid:
		return "void"
	case TypeInt:
		return fmt.Sprintf("i%d", t.Width)
	case TypeFloat:
		return fmt.Sprintf("f%d", t.Width)
	case TypeTuple:
		parts := make([]string, len(t.Elems))
		for i, e := range t.Elems {
			parts[i] = e.String()
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case TypeStruct:
		if t.Name != "" {
			return t.Name
		}
		parts := make([]string, len(t.Elems))
		for i, e := range t.Elems {
			parts[i] = e.String()
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return fmt.Sprintf("Type(%d)", t.Kind)
	}
}

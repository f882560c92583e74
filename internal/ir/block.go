package ir

// BlockID identifies a basic block within a Func.
type BlockID uint32

// Block is an ordered list of instruction IDs plus a terminator.
type Block struct {
	ID     BlockID
	Instrs []ID
	Term   Terminator
}

// Terminated reports whether the block has a terminator.
func (b *Block) Terminated() bool {
	if b == nil {
		return true
	}
	return b.Term.Kind != TermNone
}

// TermKind enumerates terminator kinds.
type TermKind uint8

const (
	TermNone TermKind = iota
	// TermRet returns from the function, optionally with a value.
	TermRet
	// TermGoto jumps to another block.
	TermGoto
)

// Terminator is a tagged variant over terminator kinds.
type Terminator struct {
	Kind TermKind
	Ret  RetTerm
	Goto GotoTerm
}

// RetTerm returns from the function.
type RetTerm struct {
	HasValue bool
	Value    ID
}

// GotoTerm jumps to Target.
type GotoTerm struct {
	Target BlockID
}

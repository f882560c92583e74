package ir

import (
	"fmt"
	"slices"

	"fortio.org/safecast"

	"ember/internal/source"
)

// Func owns an instruction arena and the block layout over it. All graph
// mutation goes through Func so that use-edge lists stay consistent:
// instructions are addressed by stable IDs, never by aliasing pointers.
type Func struct {
	Name   string
	Src    source.Span
	Blocks []Block
	Entry  BlockID

	instrs []Instr
}

// NewFunc creates an empty function with a single entry block.
func NewFunc(name string) *Func {
	f := &Func{Name: name}
	f.Entry = f.NewBlock()
	return f
}

// NewBlock appends an empty block and returns its ID.
func (f *Func) NewBlock() BlockID {
	lenBlocks, err := safecast.Conv[uint32](len(f.Blocks))
	if err != nil {
		panic(fmt.Errorf("len blocks overflow: %w", err))
	}
	id := BlockID(lenBlocks)
	f.Blocks = append(f.Blocks, Block{ID: id})
	return id
}

// NumSlots returns the arena size, including tombstoned slots.
func (f *Func) NumSlots() int { return len(f.instrs) }

// Instr returns the instruction at the given slot. The pointer stays valid
// until the next Append/InsertBefore.
func (f *Func) Instr(id ID) *Instr {
	if int(id) >= len(f.instrs) {
		panic(fmt.Sprintf("ir: instruction %d out of range", id))
	}
	return &f.instrs[id]
}

// Alive reports whether the slot still holds a live instruction.
func (f *Func) Alive(id ID) bool {
	return int(id) < len(f.instrs) && !f.instrs[id].dead
}

// Append adds an instruction at the end of block b.
func (f *Func) Append(b BlockID, in Instr) ID {
	return f.insert(b, len(f.Blocks[b].Instrs), in)
}

// InsertBefore adds an instruction immediately before pos, in pos's block.
// Since pos dominates its uses, so does the inserted instruction.
func (f *Func) InsertBefore(pos ID, in Instr) ID {
	p := f.Instr(pos)
	if p.dead {
		panic(fmt.Sprintf("ir: insert before dead instruction %d", pos))
	}
	bb := &f.Blocks[p.block]
	at := slices.Index(bb.Instrs, pos)
	if at < 0 {
		panic(fmt.Sprintf("ir: instruction %d missing from its block", pos))
	}
	return f.insert(p.block, at, in)
}

func (f *Func) insert(b BlockID, at int, in Instr) ID {
	lenInstrs, err := safecast.Conv[uint32](len(f.instrs))
	if err != nil {
		panic(fmt.Errorf("len instrs overflow: %w", err))
	}
	id := ID(lenInstrs)
	in.id = id
	in.block = b
	in.uses = nil
	in.dead = false
	f.instrs = append(f.instrs, in)

	bb := &f.Blocks[b]
	bb.Instrs = slices.Insert(bb.Instrs, at, id)

	for slot, op := range f.instrs[id].Operands() {
		f.addUse(op, Use{Kind: UseOperand, User: id, Slot: slot})
	}
	return id
}

// SetRet terminates block b with a value return, registering the use edge.
func (f *Func) SetRet(b BlockID, value ID) {
	f.clearTermUse(b)
	f.Blocks[b].Term = Terminator{Kind: TermRet, Ret: RetTerm{HasValue: true, Value: value}}
	f.addUse(value, Use{Kind: UseTerm, Block: b})
}

// SetRetVoid terminates block b with a plain return.
func (f *Func) SetRetVoid(b BlockID) {
	f.clearTermUse(b)
	f.Blocks[b].Term = Terminator{Kind: TermRet}
}

// SetGoto terminates block b with a jump.
func (f *Func) SetGoto(b BlockID, target BlockID) {
	f.clearTermUse(b)
	f.Blocks[b].Term = Terminator{Kind: TermGoto, Goto: GotoTerm{Target: target}}
}

func (f *Func) clearTermUse(b BlockID) {
	t := &f.Blocks[b].Term
	if t.Kind == TermRet && t.Ret.HasValue {
		f.removeUse(t.Ret.Value, Use{Kind: UseTerm, Block: b})
	}
}

func (f *Func) addUse(producer ID, u Use) {
	in := f.Instr(producer)
	if in.dead {
		panic(fmt.Sprintf("ir: new use of dead instruction %d", producer))
	}
	in.uses = append(in.uses, u)
}

func (f *Func) removeUse(producer ID, u Use) {
	in := f.Instr(producer)
	at := slices.Index(in.uses, u)
	if at < 0 {
		panic(fmt.Sprintf("ir: use edge of %d not found", producer))
	}
	in.uses = slices.Delete(in.uses, at, at+1)
}

// ReplaceAllUses retargets every use edge of old to point at with. Both
// operand slots and terminator operands are rewritten.
func (f *Func) ReplaceAllUses(old, with ID) {
	if old == with {
		return
	}
	oldIn := f.Instr(old)
	uses := oldIn.uses
	oldIn.uses = nil
	for _, u := range uses {
		switch u.Kind {
		case UseOperand:
			f.Instr(u.User).SetOperand(u.Slot, with)
		case UseTerm:
			t := &f.Blocks[u.Block].Term
			if t.Kind != TermRet || !t.Ret.HasValue || t.Ret.Value != old {
				panic(fmt.Sprintf("ir: stale terminator use of %d", old))
			}
			t.Ret.Value = with
		}
		f.addUse(with, u)
	}
}

// Remove deletes a zero-use instruction from the graph: operand use edges
// are dropped, the block slot is vacated, and the arena slot is tombstoned.
func (f *Func) Remove(id ID) {
	in := f.Instr(id)
	if in.dead {
		panic(fmt.Sprintf("ir: double removal of %d", id))
	}
	if len(in.uses) != 0 {
		panic(fmt.Sprintf("ir: removing %d with %d remaining uses", id, len(in.uses)))
	}
	for slot, op := range in.Operands() {
		f.removeUse(op, Use{Kind: UseOperand, User: id, Slot: slot})
	}
	bb := &f.Blocks[in.block]
	at := slices.Index(bb.Instrs, id)
	if at < 0 {
		panic(fmt.Sprintf("ir: instruction %d missing from its block", id))
	}
	bb.Instrs = slices.Delete(bb.Instrs, at, at+1)
	in.dead = true
	in.uses = nil
}

// ForEachInstr visits live instructions in program order: blocks in layout
// order, instructions in block order.
func (f *Func) ForEachInstr(visit func(*Instr)) {
	for bi := range f.Blocks {
		for _, id := range f.Blocks[bi].Instrs {
			visit(&f.instrs[id])
		}
	}
}

// NumLive counts live instructions.
func (f *Func) NumLive() int {
	n := 0
	for i := range f.instrs {
		if !f.instrs[i].dead {
			n++
		}
	}
	return n
}

package ir

import (
	"fmt"
	"io"
	"strings"
)

// DumpOptions configures IR module dumping.
type DumpOptions struct{}

// DumpModule writes a deterministic human-readable representation of the
// module. Used by the CLI and by golden tests.
func DumpModule(w io.Writer, m *Module, _ DumpOptions) error {
	if w == nil || m == nil {
		return nil
	}
	fmt.Fprintf(w, "funcs=%d\n", len(m.Funcs))
	for _, f := range m.Funcs {
		if f == nil {
			continue
		}
		if err := DumpFunc(w, f); err != nil {
			return err
		}
	}
	return nil
}

// DumpFunc writes one function.
func DumpFunc(w io.Writer, f *Func) error {
	if w == nil || f == nil {
		return nil
	}
	fmt.Fprintf(w, "\nfn %s:\n", f.Name)
	for bi := range f.Blocks {
		bb := &f.Blocks[bi]
		fmt.Fprintf(w, "  bb%d:\n", bb.ID)
		for _, id := range bb.Instrs {
			fmt.Fprintf(w, "    %s\n", formatInstr(f, id))
		}
		fmt.Fprintf(w, "    %s\n", formatTerm(&bb.Term))
	}
	return nil
}

func formatInstr(f *Func, id ID) string {
	in := f.Instr(id)
	var body string
	switch in.Kind {
	case KindIntLit:
		body = fmt.Sprintf("int %s", in.IntLit.Value.String(false))
	case KindFloatLit:
		body = fmt.Sprintf("float %s", in.FloatLit.Value.Text('g', -1))
	case KindTuple:
		body = fmt.Sprintf("tuple %s", formatValues(in.Tuple.Elems))
	case KindStruct:
		body = fmt.Sprintf("struct %s", formatValues(in.Struct.Fields))
	case KindTupleExtract:
		body = fmt.Sprintf("tuple_extract %%%d, %d", in.Extract.Agg, in.Extract.Index)
	case KindStructExtract:
		body = fmt.Sprintf("struct_extract %%%d, %d", in.Extract.Agg, in.Extract.Index)
	case KindBuiltin:
		body = fmt.Sprintf("%s %s", in.Builtin.Op, formatValues(in.Builtin.Args))
	case KindCall:
		body = fmt.Sprintf("call %s(%s)", in.Call.Name, strings.TrimPrefix(formatValues(in.Call.Args), " "))
	default:
		body = "???"
	}
	return fmt.Sprintf("%%%d = %s : %s", id, body, in.Type)
}

func formatValues(ids []ID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%%%d", id)
	}
	return strings.Join(parts, ", ")
}

func formatTerm(t *Terminator) string {
	switch t.Kind {
	case TermRet:
		if t.Ret.HasValue {
			return fmt.Sprintf("ret %%%d", t.Ret.Value)
		}
		return "ret"
	case TermGoto:
		return fmt.Sprintf("goto bb%d", t.Goto.Target)
	default:
		return "<unterminated>"
	}
}

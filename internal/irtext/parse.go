package irtext

import (
	"bytes"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"fortio.org/safecast"

	"ember/internal/apint"
	"ember/internal/diag"
	"ember/internal/ir"
	"ember/internal/source"
)

// ParseModule parses the textual IR in content, which must already be
// registered in a FileSet under file so diagnostics carry real spans.
// Returns the module and whether parsing produced no errors; a partial
// module is still returned on failure.
func ParseModule(file source.FileID, content []byte, reporter diag.Reporter) (*ir.Module, bool) {
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	p := &parser{
		file:     file,
		reporter: reporter,
		m:        &ir.Module{},
	}
	p.run(content)
	return p.m, !p.errored
}

type parser struct {
	file     source.FileID
	reporter diag.Reporter
	errored  bool

	m *ir.Module

	// состояние текущей функции
	f        *ir.Func
	cur      ir.BlockID
	curOpen  bool // заголовок блока встречен, терминатора ещё нет
	headers  uint32
	values   map[uint32]ir.ID
	lastSpan source.Span
}

func (p *parser) report(code diag.Code, sp source.Span, format string, args ...any) {
	p.errored = true
	p.reporter.Report(code, diag.SevError, sp, fmt.Sprintf(format, args...), nil)
}

func (p *parser) run(content []byte) {
	offset := uint32(0)
	for len(content) > 0 {
		line := content
		if nl := bytes.IndexByte(content, '\n'); nl >= 0 {
			line = content[:nl]
			content = content[nl+1:]
		} else {
			content = nil
		}
		p.line(string(line), offset)
		lineLen, err := safecast.Conv[uint32](len(line))
		if err != nil {
			panic(fmt.Errorf("line length overflow: %w", err))
		}
		offset += lineLen + 1
	}
	p.finishFunc()
}

func (p *parser) line(raw string, offset uint32) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "funcs=") {
		return
	}
	lead, err := safecast.Conv[uint32](len(raw) - len(strings.TrimLeft(raw, " \t")))
	if err != nil {
		panic(fmt.Errorf("indent overflow: %w", err))
	}
	width, err := safecast.Conv[uint32](len(trimmed))
	if err != nil {
		panic(fmt.Errorf("line width overflow: %w", err))
	}
	sp := source.Span{File: p.file, Start: offset + lead, End: offset + lead + width}
	p.lastSpan = sp

	switch {
	case strings.HasPrefix(trimmed, "fn ") && strings.HasSuffix(trimmed, ":"):
		p.finishFunc()
		name := strings.TrimSpace(trimmed[3 : len(trimmed)-1])
		p.f = ir.NewFunc(name)
		p.f.Src = sp
		p.cur = p.f.Entry
		p.curOpen = false
		p.headers = 0
		p.values = make(map[uint32]ir.ID)

	case p.f == nil:
		p.report(diag.TxtUnexpectedLine, sp, "expected 'fn name:' before %q", trimmed)

	case strings.HasPrefix(trimmed, "bb") && strings.HasSuffix(trimmed, ":"):
		p.blockHeader(trimmed, sp)

	case trimmed == "ret" || strings.HasPrefix(trimmed, "ret ") || strings.HasPrefix(trimmed, "goto "):
		p.terminator(trimmed, sp)

	case strings.HasPrefix(trimmed, "%"):
		p.instruction(trimmed, sp)

	default:
		p.report(diag.TxtUnexpectedLine, sp, "cannot parse line %q", trimmed)
	}
}

func (p *parser) finishFunc() {
	if p.f == nil {
		return
	}
	if p.curOpen {
		p.report(diag.TxtUnterminatedFunc, p.lastSpan, "function '%s' ends inside block bb%d", p.f.Name, p.cur)
	}
	p.m.Funcs = append(p.m.Funcs, p.f)
	p.f = nil
}

func (p *parser) blockHeader(trimmed string, sp source.Span) {
	n, ok := parseUint(trimmed[2 : len(trimmed)-1])
	if !ok {
		p.report(diag.TxtUnexpectedLine, sp, "malformed block label %q", trimmed)
		return
	}
	if p.curOpen {
		p.report(diag.TxtMissingTerm, sp, "block bb%d has no terminator", p.cur)
	}
	if n != p.headers {
		p.report(diag.TxtDuplicateBlock, sp, "block label bb%d out of order, expected bb%d", n, p.headers)
		return
	}
	p.cur = p.ensureBlock(n)
	p.curOpen = true
	p.headers++
}

// ensureBlock создаёт блоки вплоть до индекса n. Переходы вперёд по
// текстовому порядку допускаются, поэтому блок может появиться раньше
// своего заголовка.
func (p *parser) ensureBlock(n uint32) ir.BlockID {
	for len(p.f.Blocks) <= int(n) {
		p.f.NewBlock()
	}
	return ir.BlockID(n)
}

func (p *parser) terminator(trimmed string, sp source.Span) {
	if !p.curOpen {
		p.report(diag.TxtUnexpectedLine, sp, "terminator outside of a block")
		return
	}
	switch {
	case trimmed == "ret":
		p.f.SetRetVoid(p.cur)
	case strings.HasPrefix(trimmed, "ret "):
		v, ok := p.resolve(strings.TrimSpace(trimmed[4:]), sp)
		if !ok {
			return
		}
		p.f.SetRet(p.cur, v)
	default: // goto bbN
		target := strings.TrimSpace(strings.TrimPrefix(trimmed, "goto "))
		n, ok := parseUint(strings.TrimPrefix(target, "bb"))
		if !ok || !strings.HasPrefix(target, "bb") {
			p.report(diag.TxtBadOperand, sp, "malformed goto target %q", target)
			return
		}
		p.f.SetGoto(p.cur, p.ensureBlock(n))
	}
	p.curOpen = false
}

func (p *parser) instruction(trimmed string, sp source.Span) {
	if !p.curOpen {
		p.report(diag.TxtUnexpectedLine, sp, "instruction outside of a block")
		return
	}
	eq := strings.Index(trimmed, " = ")
	if eq < 0 {
		p.report(diag.TxtUnexpectedLine, sp, "instruction without '=': %q", trimmed)
		return
	}
	name, ok := parseUint(strings.TrimPrefix(strings.TrimSpace(trimmed[:eq]), "%"))
	if !ok {
		p.report(diag.TxtBadOperand, sp, "malformed value name %q", trimmed[:eq])
		return
	}
	if _, dup := p.values[name]; dup {
		p.report(diag.TxtDuplicateValue, sp, "value %%%d defined twice", name)
		return
	}

	rest := trimmed[eq+3:]
	colon := strings.LastIndex(rest, " : ")
	if colon < 0 {
		p.report(diag.TxtBadType, sp, "instruction without result type: %q", trimmed)
		return
	}
	body := strings.TrimSpace(rest[:colon])
	typeText := strings.TrimSpace(rest[colon+3:])

	op, args, found := strings.Cut(body, " ")
	if !found {
		args = ""
	}

	id, ok := p.buildInstr(op, args, typeText, sp)
	if !ok {
		return
	}
	p.values[name] = id
}

func (p *parser) buildInstr(op, args, typeText string, sp source.Span) (ir.ID, bool) {
	switch op {
	case "int":
		return p.intLit(args, typeText, sp)
	case "float":
		return p.floatLit(args, typeText, sp)
	case "tuple":
		elems, ok := p.resolveList(args, sp)
		if !ok {
			return ir.None, false
		}
		return p.f.AppendTuple(p.cur, elems, sp), true
	case "struct":
		fields, ok := p.resolveList(args, sp)
		if !ok {
			return ir.None, false
		}
		return p.f.AppendStruct(p.cur, structName(typeText), fields, sp), true
	case "tuple_extract", "struct_extract":
		return p.extract(op, args, sp)
	case "call":
		return p.call(args, typeText, sp)
	default:
		return p.builtin(op, args, typeText, sp)
	}
}

func (p *parser) intLit(args, typeText string, sp source.Span) (ir.ID, bool) {
	t, ok := p.parseType(typeText, sp)
	if !ok {
		return ir.None, false
	}
	if t.Kind != ir.TypeInt || t.Width == 0 {
		p.report(diag.TxtBadType, sp, "integer literal needs an iN type, got %q", typeText)
		return ir.None, false
	}
	v, ok := new(big.Int).SetString(args, 10)
	if !ok {
		p.report(diag.TxtBadLiteral, sp, "malformed integer literal %q", args)
		return ir.None, false
	}
	return p.f.AppendIntLit(p.cur, apint.New(v, t.Width), sp), true
}

func (p *parser) floatLit(args, typeText string, sp source.Span) (ir.ID, bool) {
	t, ok := p.parseType(typeText, sp)
	if !ok {
		return ir.None, false
	}
	if t.Kind != ir.TypeFloat {
		p.report(diag.TxtBadType, sp, "float literal needs an fN type, got %q", typeText)
		return ir.None, false
	}
	sem, ok := apint.SemanticsForWidth(t.Width)
	if !ok {
		p.report(diag.TxtBadType, sp, "unsupported float width %d", t.Width)
		return ir.None, false
	}
	v, _, err := big.ParseFloat(args, 10, sem.Prec, big.ToNearestEven)
	if err != nil {
		p.report(diag.TxtBadLiteral, sp, "malformed float literal %q: %v", args, err)
		return ir.None, false
	}
	return p.f.AppendFloatLit(p.cur, v, t.Width, sp), true
}

func (p *parser) extract(op, args string, sp source.Span) (ir.ID, bool) {
	aggText, idxText, found := strings.Cut(args, ",")
	if !found {
		p.report(diag.TxtBadOperand, sp, "%s needs an aggregate and an index", op)
		return ir.None, false
	}
	agg, ok := p.resolve(strings.TrimSpace(aggText), sp)
	if !ok {
		return ir.None, false
	}
	idx, err := strconv.Atoi(strings.TrimSpace(idxText))
	if err != nil {
		p.report(diag.TxtBadOperand, sp, "malformed extract index %q", idxText)
		return ir.None, false
	}
	aggType := p.f.Instr(agg).Type
	if idx < 0 || idx >= len(aggType.Elems) {
		p.report(diag.TxtBadExtractIndex, sp, "index %d out of range for %s", idx, aggType)
		return ir.None, false
	}
	if op == "tuple_extract" {
		return p.f.AppendTupleExtract(p.cur, agg, idx, sp), true
	}
	return p.f.AppendStructExtract(p.cur, agg, idx, sp), true
}

func (p *parser) call(args, typeText string, sp source.Span) (ir.ID, bool) {
	open := strings.Index(args, "(")
	if open < 0 || !strings.HasSuffix(args, ")") {
		p.report(diag.TxtBadOperand, sp, "malformed call %q", args)
		return ir.None, false
	}
	name := strings.TrimSpace(args[:open])
	inner := strings.TrimSpace(args[open+1 : len(args)-1])
	var callArgs []ir.ID
	if inner != "" {
		var ok bool
		callArgs, ok = p.resolveList(inner, sp)
		if !ok {
			return ir.None, false
		}
	}
	t, ok := p.parseType(typeText, sp)
	if !ok {
		return ir.None, false
	}
	return p.f.AppendCall(p.cur, name, t, callArgs, sp), true
}

func (p *parser) builtin(op, args, typeText string, sp source.Span) (ir.ID, bool) {
	o, ok := ir.OpByName(op)
	if !ok {
		p.report(diag.TxtUnknownOp, sp, "unknown operation %q", op)
		return ir.None, false
	}
	operands, ok := p.resolveList(args, sp)
	if !ok {
		return ir.None, false
	}
	if got, want := len(operands), o.Info().NumArgs; got != want {
		p.report(diag.TxtBadOperand, sp, "%s takes %d operands, got %d", op, want, got)
		return ir.None, false
	}
	t, ok := p.parseType(typeText, sp)
	if !ok {
		return ir.None, false
	}
	return p.f.AppendBuiltin(p.cur, o, t, operands, sp), true
}

func (p *parser) resolve(token string, sp source.Span) (ir.ID, bool) {
	n, ok := parseUint(strings.TrimPrefix(token, "%"))
	if !ok || !strings.HasPrefix(token, "%") {
		p.report(diag.TxtBadOperand, sp, "malformed operand %q", token)
		return ir.None, false
	}
	id, ok := p.values[n]
	if !ok {
		p.report(diag.TxtUndefinedValue, sp, "use of undefined value %%%d", n)
		return ir.None, false
	}
	return id, true
}

func (p *parser) resolveList(args string, sp source.Span) ([]ir.ID, bool) {
	if strings.TrimSpace(args) == "" {
		return nil, true
	}
	parts := strings.Split(args, ",")
	out := make([]ir.ID, 0, len(parts))
	for _, part := range parts {
		id, ok := p.resolve(strings.TrimSpace(part), sp)
		if !ok {
			return nil, false
		}
		out = append(out, id)
	}
	return out, true
}

// parseType разбирает печатную форму типа: void, iN, fN, кортеж "(a, b)"
// и именованную структуру. Состав полей структуры восстанавливается из
// операндов конструктора, поэтому здесь достаточно имени.
func (p *parser) parseType(s string, sp source.Span) (ir.Type, bool) {
	s = strings.TrimSpace(s)
	switch {
	case s == "void":
		return ir.Void, true
	case len(s) > 1 && (s[0] == 'i' || s[0] == 'f') && isDigits(s[1:]):
		width, ok := parseUint(s[1:])
		if !ok || width == 0 {
			p.report(diag.TxtBadType, sp, "malformed type %q", s)
			return ir.Type{}, false
		}
		if s[0] == 'i' {
			return ir.MakeInt(width), true
		}
		return ir.MakeFloat(width), true
	case strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")"):
		elems, ok := p.parseTypeList(s[1:len(s)-1], sp)
		if !ok {
			return ir.Type{}, false
		}
		return ir.MakeTuple(elems...), true
	case strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}"):
		fields, ok := p.parseTypeList(s[1:len(s)-1], sp)
		if !ok {
			return ir.Type{}, false
		}
		return ir.MakeStruct("", fields...), true
	case s != "" && !strings.ContainsAny(s, "(){}%,"):
		return ir.Type{Kind: ir.TypeStruct, Name: s}, true
	default:
		p.report(diag.TxtBadType, sp, "malformed type %q", s)
		return ir.Type{}, false
	}
}

func (p *parser) parseTypeList(s string, sp source.Span) ([]ir.Type, bool) {
	var out []ir.Type
	depth := 0
	start := 0
	flush := func(end int) bool {
		part := strings.TrimSpace(s[start:end])
		if part == "" {
			return true
		}
		t, ok := p.parseType(part, sp)
		if !ok {
			return false
		}
		out = append(out, t)
		return true
	}
	for i, r := range s {
		switch r {
		case '(', '{':
			depth++
		case ')', '}':
			depth--
		case ',':
			if depth == 0 {
				if !flush(i) {
					return nil, false
				}
				start = i + 1
			}
		}
	}
	if !flush(len(s)) {
		return nil, false
	}
	return out, true
}

func structName(typeText string) string {
	typeText = strings.TrimSpace(typeText)
	if strings.HasPrefix(typeText, "{") {
		return ""
	}
	return typeText
}

func parseUint(s string) (uint32, bool) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(v), true
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}

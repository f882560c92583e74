package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// Текстовый формат IR (зарезервируем)
	TxtInfo             Code = 1000
	TxtUnexpectedLine   Code = 1001
	TxtBadOperand       Code = 1002
	TxtBadLiteral       Code = 1003
	TxtBadType          Code = 1004
	TxtUnknownOp        Code = 1005
	TxtUndefinedValue   Code = 1006
	TxtDuplicateValue   Code = 1007
	TxtDuplicateBlock   Code = 1008
	TxtMissingTerm      Code = 1009
	TxtBadExtractIndex  Code = 1010
	TxtUnterminatedFunc Code = 1011

	// Константная свёртка / статические переполнения
	FoldInfo                Code = 2000
	FoldDivisionByZero      Code = 2001
	FoldDivisionOverflow    Code = 2002
	FoldArithmeticOverflow  Code = 2003
	FoldLiteralOverflow     Code = 2004
	FoldIntToFloatOverflow  Code = 2005

	// Ошибки I/O
	IOLoadFileError Code = 4001

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:            "Unknown error",
		TxtInfo:                "IR text information",
		TxtUnexpectedLine:      "Unexpected line",
		TxtBadOperand:          "Malformed operand",
		TxtBadLiteral:          "Malformed literal",
		TxtBadType:             "Malformed type",
		TxtUnknownOp:           "Unknown operation",
		TxtUndefinedValue:      "Use of undefined value",
		TxtDuplicateValue:      "Duplicate value name",
		TxtDuplicateBlock:      "Duplicate block label",
		TxtMissingTerm:         "Missing block terminator",
		TxtBadExtractIndex:     "Extract index out of range",
		TxtUnterminatedFunc:    "Unterminated function body",
		FoldInfo:               "Constant folding information",
		FoldDivisionByZero:     "Division by zero",
		FoldDivisionOverflow:   "Division overflow",
		FoldArithmeticOverflow: "Arithmetic operation overflow",
		FoldLiteralOverflow:    "Integer literal overflow",
		FoldIntToFloatOverflow: "Integer to float conversion overflow",
		IOLoadFileError:        "I/O load file error",
		ObsInfo:                "Observability information",
		ObsTimings:             "Pipeline timings",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("TXT%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("FLD%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

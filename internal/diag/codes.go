package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Структурные: номера строк, кавычки, скобки, ключевые слова
	StrMissingLineNumber    Code = 1001
	StrLineRange            Code = 1002
	StrDuplicateLine        Code = 1003
	StrUnmatchedQuotes      Code = 1004
	StrUnexpectedCloseParen Code = 1005
	StrUnclosedParen        Code = 1006
	StrUnknownToken         Code = 1007

	// Управляющие конструкции
	CtlIfWithoutThen   Code = 2001
	CtlNextWithoutFor  Code = 2002
	CtlNextMismatch    Code = 2003
	CtlUnclosedFor     Code = 2004
	CtlJumpNoTarget    Code = 2005
	CtlJumpBadTarget   Code = 2006
	CtlJumpMissingLine Code = 2007
	CtlOnWithoutJump   Code = 2008
	CtlOnNoTargets     Code = 2009
	CtlOnSelectorRange Code = 2010
	CtlMissingReturn   Code = 2011
	CtlStrayReturn     Code = 2012

	// Выражения
	ExpTypeMismatch    Code = 3001
	ExpOperandType     Code = 3002
	ExpArity           Code = 3003
	ExpInvalidVariable Code = 3004
	ExpUnexpectedToken Code = 3005
	ExpUnrecognized    Code = 3006
	ExpEmpty           Code = 3007
	ExpMissingParen    Code = 3008
	ExpAssignMismatch  Code = 3009

	// Поток управления
	FlwUnreachable Code = 4001

	// Кодировщик PRG
	PrgAutoNumber      Code = 5001
	PrgLineClamped     Code = 5002
	PrgAddressOverflow Code = 5003
	PrgCharReplaced    Code = 5004

	// Ввод-вывод
	IOLoadFileError Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode: "Unknown error",

	StrMissingLineNumber:    "Missing or invalid line number",
	StrLineRange:            "Line number out of range",
	StrDuplicateLine:        "Duplicate line number",
	StrUnmatchedQuotes:      "Unmatched quotes",
	StrUnexpectedCloseParen: "Closing parenthesis without opening",
	StrUnclosedParen:        "Unclosed parenthesis",
	StrUnknownToken:         "Unknown token",

	CtlIfWithoutThen:   "IF without THEN",
	CtlNextWithoutFor:  "NEXT without FOR",
	CtlNextMismatch:    "NEXT variable mismatch",
	CtlUnclosedFor:     "Unclosed FOR loop",
	CtlJumpNoTarget:    "Jump without target",
	CtlJumpBadTarget:   "Jump target is not a line number",
	CtlJumpMissingLine: "Jump target line does not exist",
	CtlOnWithoutJump:   "ON without GOTO/GOSUB",
	CtlOnNoTargets:     "ON without targets",
	CtlOnSelectorRange: "ON selector exceeds target list",
	CtlMissingReturn:   "Missing RETURN for subroutine",
	CtlStrayReturn:     "RETURN without GOSUB",

	ExpTypeMismatch:    "Type mismatch",
	ExpOperandType:     "Non-numeric operand",
	ExpArity:           "Wrong number of arguments",
	ExpInvalidVariable: "Invalid variable name",
	ExpUnexpectedToken: "Unexpected token after expression",
	ExpUnrecognized:    "Unrecognized token in expression",
	ExpEmpty:           "Empty expression",
	ExpMissingParen:    "Missing closing parenthesis",
	ExpAssignMismatch:  "Assignment type mismatch",

	FlwUnreachable: "Unreachable line",

	PrgAutoNumber:      "Line auto-numbered",
	PrgLineClamped:     "Line number clamped",
	PrgAddressOverflow: "Load address overflow",
	PrgCharReplaced:    "Character replaced",

	IOLoadFileError: "Failed to load file",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("STR%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("CTL%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("EXP%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("FLW%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRG%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Форма скрипта
	SynInfo           Code = 2000
	SynUnexpectedForm Code = 2001
	SynBadLiteral     Code = 2002
	SynUnclosedParen  Code = 2003
	SynUnclosedString Code = 2004
	SynUnknownOp      Code = 2005

	// Семантика
	SemaInfo                Code = 3000
	SemaDuplicateSymbol     Code = 3001
	SemaUndefinedSymbol     Code = 3002
	SemaTypeMismatch        Code = 3003
	SemaInvalidOperandClass Code = 3004
	SemaNotCallable         Code = 3005
	SemaTableLaidOut        Code = 3006
	SemaBadListMember       Code = 3007

	// Раскладка памяти
	LayoutInfo     Code = 4000
	LayoutOverflow Code = 4001
	LayoutNoTable  Code = 4002

	// I/O
	IOLoadFileError Code = 5001

	// Проект
	ProjInfo      Code = 6000
	ProjBadConfig Code = 6001
	ProjBadTarget Code = 6002
)

var (
	codeDescription = map[Code]string{
		UnknownCode:             "Unknown error",
		SynInfo:                 "Script information",
		SynUnexpectedForm:       "Unexpected form",
		SynBadLiteral:           "Malformed literal",
		SynUnclosedParen:        "Unclosed parenthesis",
		SynUnclosedString:       "Unclosed string or char literal",
		SynUnknownOp:            "Unknown operator",
		SemaInfo:                "Semantic information",
		SemaDuplicateSymbol:     "Duplicate symbol",
		SemaUndefinedSymbol:     "Undefined symbol",
		SemaTypeMismatch:        "Type mismatch",
		SemaInvalidOperandClass: "Invalid operand class",
		SemaNotCallable:         "Symbol is not callable",
		SemaTableLaidOut:        "Symbol table already laid out",
		SemaBadListMember:       "List member type mismatch",
		LayoutInfo:              "Layout information",
		LayoutOverflow:          "Location overflow",
		LayoutNoTable:           "No symbol table",
		IOLoadFileError:         "I/O load file error",
		ProjInfo:                "Project information",
		ProjBadConfig:           "Invalid project manifest",
		ProjBadTarget:           "Unknown target",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("LAY%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("PRJ%04d", ic)
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

package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexUnterminatedAttr         Code = 1005

	// Declaration syntax
	SynInfo              Code = 2000
	SynExpectEnum        Code = 2001
	SynExpectIdentifier  Code = 2002
	SynExpectLBrace      Code = 2003
	SynExpectRBrace      Code = 2004
	SynUnexpectedToken   Code = 2005
	SynExpectColon       Code = 2006
	SynExpectType        Code = 2007
	SynDuplicateField    Code = 2008
	SynUnclosedDelimiter Code = 2009
	SynDuplicateVariant  Code = 2010
	SynTrailingTokens    Code = 2011

	// Directives
	DirInfo         Code = 3000
	DirMissing      Code = 3001
	DirExpectString Code = 3002
	DirMalformed    Code = 3003
	DirDocConflict  Code = 3004

	// Templates
	TplUnmatchedBrace    Code = 3100
	TplUnknownField      Code = 3101
	TplIndexOutOfRange   Code = 3102
	TplMixedPlaceholders Code = 3103
	TplBadPlaceholder    Code = 3104

	// I/O
	IOLoadFileError Code = 4001
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Bad number",
	LexUnterminatedAttr:         "Unterminated attribute",
	SynInfo:                     "Syntax information",
	SynExpectEnum:               "Expected an enum declaration",
	SynExpectIdentifier:         "Expected identifier",
	SynExpectLBrace:             "Expected '{' for enum body",
	SynExpectRBrace:             "Expected '}' after enum body",
	SynUnexpectedToken:          "Unexpected token",
	SynExpectColon:              "Expected ':' after field name",
	SynExpectType:               "Expected type",
	SynDuplicateField:           "Duplicate field name",
	SynUnclosedDelimiter:        "Unclosed delimiter",
	SynDuplicateVariant:         "Duplicate variant name",
	SynTrailingTokens:           "Trailing tokens after declaration",
	DirInfo:                     "Directive information",
	DirMissing:                  "Variant has no display directive",
	DirExpectString:             "Expected string literal",
	DirMalformed:                "Malformed display directive",
	DirDocConflict:              "Variant already has a doc comment",
	TplUnmatchedBrace:           "Unmatched brace in template",
	TplUnknownField:             "Unknown field in template",
	TplIndexOutOfRange:          "Positional placeholder out of range",
	TplMixedPlaceholders:        "Mixed implicit and explicit positional placeholders",
	TplBadPlaceholder:           "Malformed placeholder",
	IOLoadFileError:             "Failed to load file",
}

// ID returns a stable string identifier like "DIR3001".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 3100:
		return fmt.Sprintf("DIR%04d", ic)
	case ic >= 3100 && ic < 4000:
		return fmt.Sprintf("TPL%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
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

// Package token defines the closed set of lexical categories the lexer
// produces for the language: identifiers, literals of each primitive type,
// keywords, operators, comments, and end-of-input.
package token

import "fmt"

// Kind identifies a lexical category. The set is closed; no caller can
// register a new kind at runtime.
type Kind int

const (
	Invalid Kind = iota
	EOF
	Comment

	Identifier
	IntegerLiteral
	FloatLiteral
	CharacterLiteral
	StringLiteral
	BooleanLiteral

	KeywordInt
	KeywordFloat
	KeywordChar
	KeywordBool
	KeywordString
	KeywordIf
	KeywordElse
	KeywordWhile
	KeywordRead
	KeywordWrite

	OpAssign
	OpPlus
	OpMinus
	OpStar
	OpSlash
	OpSlashSlash
	OpPercent
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpLParen
	OpRParen
	OpLBrace
	OpRBrace
	OpLBracket
	OpRBracket
	OpSemicolon
	OpComma
)

var names = map[Kind]string{
	Invalid:          "invalid",
	EOF:              "<eof>",
	Comment:          "comment",
	Identifier:       "identifier",
	IntegerLiteral:   "integer_literal",
	FloatLiteral:     "float_literal",
	CharacterLiteral: "character_literal",
	StringLiteral:    "string_literal",
	BooleanLiteral:   "boolean_literal",
	KeywordInt:       "int",
	KeywordFloat:     "float",
	KeywordChar:      "character",
	KeywordBool:      "boolean",
	KeywordString:    "string",
	KeywordIf:        "if",
	KeywordElse:      "else",
	KeywordWhile:     "while",
	KeywordRead:      "read",
	KeywordWrite:     "write",
	OpAssign:         "=",
	OpPlus:           "+",
	OpMinus:          "-",
	OpStar:           "*",
	OpSlash:          "/",
	OpSlashSlash:     "//",
	OpPercent:        "%",
	OpEq:             "==",
	OpNe:             "!=",
	OpLt:             "<",
	OpLe:             "<=",
	OpGt:             ">",
	OpGe:             ">=",
	OpLParen:         "(",
	OpRParen:         ")",
	OpLBrace:         "{",
	OpRBrace:         "}",
	OpLBracket:       "[",
	OpRBracket:       "]",
	OpSemicolon:      ";",
	OpComma:          ",",
}

// Keywords maps a reserved word spelling to its keyword kind.
var Keywords = map[string]Kind{
	"int":    KeywordInt,
	"float":  KeywordFloat,
	"char":   KeywordChar,
	"bool":   KeywordBool,
	"string": KeywordString,
	"if":     KeywordIf,
	"else":   KeywordElse,
	"while":  KeywordWhile,
	"read":   KeywordRead,
	"write":  KeywordWrite,
	"True":   BooleanLiteral,
	"False":  BooleanLiteral,
}

func (k Kind) String() string {
	if n, ok := names[k]; ok {
		return n
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Token is a single lexeme produced by the lexer, carrying its category,
// its raw text, and its source position.
type Token struct {
	Kind   Kind
	Lexeme string
	Row    int
	Col    int
}

func (t Token) String() string {
	return fmt.Sprintf("%v:%v: %v %q", t.Row+1, t.Col+1, t.Kind, t.Lexeme)
}

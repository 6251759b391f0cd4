// Package lexer is the external token source the driver consumes. It
// scans the fixed token set of internal/token directly, rather than
// interpreting a generated DFA, because the token set is
// closed and small (see DESIGN.md, "Dropped teacher dependency:
// github.com/nihei9/maleeni"). The scan loop is a single forward pass of
// peek/advance calls with row/col tracking over raw bytes; it never
// backtracks.
package lexer

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/Relz/LL-Parser-Library/internal/compiler"
	"github.com/Relz/LL-Parser-Library/internal/token"
)

// Source is the interface the driver consumes: next() returns a token or
// signals end of input. It is non-restartable and finite.
type Source interface {
	Next() (token.Token, error)
}

type position struct {
	ptr int
	row int
	col int
}

// Lexer is the default Source implementation.
type Lexer struct {
	src          []byte
	state        position
	lastAccepted position
}

// New returns a new Lexer reading all of src into memory up front, the same
// way driver/lexer.NewLexer does.
func New(src io.Reader) (*Lexer, error) {
	b, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}
	return &Lexer{src: b}, nil
}

// Next returns the next token, skipping nothing: comment tokens are
// returned like any other token, since it's the driver's job to recognize
// and skip comments, not the lexer's.
func (l *Lexer) Next() (token.Token, error) {
	l.skipWhitespace()

	row, col := l.state.row, l.state.col
	r, ok := l.peek()
	if !ok {
		return token.Token{Kind: token.EOF, Row: row, Col: col}, nil
	}

	switch {
	case r == '#':
		return l.scanLineComment(row, col), nil
	case isIdentStart(r):
		return l.scanIdentifierOrKeyword(row, col), nil
	case isDigit(r):
		return l.scanNumber(row, col)
	case r == '"':
		return l.scanString(row, col)
	case r == '\'':
		return l.scanChar(row, col)
	default:
		return l.scanOperator(row, col)
	}
}

func (l *Lexer) skipWhitespace() {
	for {
		r, ok := l.peek()
		if !ok || !isSpace(r) {
			return
		}
		l.advance()
	}
}

func (l *Lexer) scanLineComment(row, col int) token.Token {
	var b strings.Builder
	for {
		r, ok := l.peek()
		if !ok || r == '\n' {
			break
		}
		b.WriteRune(r)
		l.advance()
	}
	return token.Token{Kind: token.Comment, Lexeme: b.String(), Row: row, Col: col}
}

func (l *Lexer) scanIdentifierOrKeyword(row, col int) token.Token {
	var b strings.Builder
	for {
		r, ok := l.peek()
		if !ok || !isIdentCont(r) {
			break
		}
		b.WriteRune(r)
		l.advance()
	}
	lexeme := b.String()
	if kind, ok := token.Keywords[lexeme]; ok {
		return token.Token{Kind: kind, Lexeme: lexeme, Row: row, Col: col}
	}
	return token.Token{Kind: token.Identifier, Lexeme: lexeme, Row: row, Col: col}
}

func (l *Lexer) scanNumber(row, col int) (token.Token, error) {
	var b strings.Builder
	isFloat := false
	for {
		r, ok := l.peek()
		if !ok {
			break
		}
		if r == '.' && !isFloat && isDigit(l.peekAt(1)) {
			isFloat = true
			b.WriteRune(r)
			l.advance()
			continue
		}
		if !isDigit(r) {
			break
		}
		b.WriteRune(r)
		l.advance()
	}
	kind := token.IntegerLiteral
	if isFloat {
		kind = token.FloatLiteral
	}
	return token.Token{Kind: kind, Lexeme: b.String(), Row: row, Col: col}, nil
}

func (l *Lexer) scanString(row, col int) (token.Token, error) {
	l.advance() // opening quote
	var b strings.Builder
	b.WriteByte('"')
	for {
		r, ok := l.peek()
		if !ok {
			return token.Token{}, fmt.Errorf("%v:%v: unterminated string literal", row+1, col+1)
		}
		if r == '"' {
			b.WriteByte('"')
			l.advance()
			break
		}
		if r == '\\' {
			b.WriteRune(r)
			l.advance()
			if esc, ok := l.peek(); ok {
				b.WriteRune(esc)
				l.advance()
			}
			continue
		}
		b.WriteRune(r)
		l.advance()
	}
	return token.Token{Kind: token.StringLiteral, Lexeme: b.String(), Row: row, Col: col}, nil
}

func (l *Lexer) scanChar(row, col int) (token.Token, error) {
	l.advance() // opening quote
	var b strings.Builder
	b.WriteByte('\'')
	r, ok := l.peek()
	if !ok {
		return token.Token{}, fmt.Errorf("%v:%v: unterminated character literal", row+1, col+1)
	}
	if r == '\\' {
		b.WriteRune(r)
		l.advance()
		if esc, ok := l.peek(); ok {
			b.WriteRune(esc)
			l.advance()
		}
	} else {
		b.WriteRune(r)
		l.advance()
	}
	closing, ok := l.peek()
	if !ok || closing != '\'' {
		return token.Token{}, fmt.Errorf("%v:%v: unterminated character literal", row+1, col+1)
	}
	b.WriteByte('\'')
	l.advance()
	return token.Token{Kind: token.CharacterLiteral, Lexeme: b.String(), Row: row, Col: col}, nil
}

type opRule struct {
	text string
	kind token.Kind
}

// Longest-match-first; two-byte operators are listed before their
// one-byte prefixes.
var opRules = []opRule{
	{"//", token.OpSlashSlash},
	{"==", token.OpEq},
	{"!=", token.OpNe},
	{"<=", token.OpLe},
	{">=", token.OpGe},
	{"=", token.OpAssign},
	{"+", token.OpPlus},
	{"-", token.OpMinus},
	{"*", token.OpStar},
	{"/", token.OpSlash},
	{"%", token.OpPercent},
	{"<", token.OpLt},
	{">", token.OpGt},
	{"(", token.OpLParen},
	{")", token.OpRParen},
	{"{", token.OpLBrace},
	{"}", token.OpRBrace},
	{"[", token.OpLBracket},
	{"]", token.OpRBracket},
	{";", token.OpSemicolon},
	{",", token.OpComma},
}

func (l *Lexer) scanOperator(row, col int) (token.Token, error) {
	rest := l.src[l.state.ptr:]
	for _, rule := range opRules {
		if strings.HasPrefix(string(rest), rule.text) {
			for range rule.text {
				l.advance()
			}
			return token.Token{Kind: rule.kind, Lexeme: rule.text, Row: row, Col: col}, nil
		}
	}
	r, _ := l.peek()
	return token.Token{}, fmt.Errorf("%v:%v: unexpected character %q", row+1, col+1, r)
}

func (l *Lexer) peek() (rune, bool) {
	return l.peekAtOffset(l.state.ptr)
}

func (l *Lexer) peekAt(n int) rune {
	ptr := l.state.ptr
	for i := 0; i < n; i++ {
		_, size := utf8.DecodeRune(l.src[ptr:])
		if size == 0 {
			return 0
		}
		ptr += size
	}
	r, _ := l.peekAtOffset(ptr)
	return r
}

func (l *Lexer) peekAtOffset(ptr int) (rune, bool) {
	if ptr >= len(l.src) {
		return 0, false
	}
	r, _ := utf8.DecodeRune(l.src[ptr:])
	return r, true
}

func (l *Lexer) advance() {
	r, size := utf8.DecodeRune(l.src[l.state.ptr:])
	l.state.ptr += size
	if r == '\n' {
		l.state.row++
		l.state.col = 0
	} else {
		l.state.col++
	}
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || isUnicodeIdentLetter(r)
}

func isIdentCont(r rune) bool {
	return isIdentStart(r) || isDigit(r)
}

// isUnicodeIdentLetter reports whether r falls within the Unicode "Letter"
// general category, beyond the plain ASCII range isIdentStart already
// covers. Blocks are expressed as contiguous UTF-8 byte ranges (see
// internal/compiler.IdentifierBlocks) rather than code-point ranges, so the
// comparison operates directly on r's UTF-8 encoding.
func isUnicodeIdentLetter(r rune) bool {
	if r < 0x80 {
		return false
	}
	blocks, err := compiler.IdentifierBlocks()
	if err != nil {
		return false
	}
	enc := make([]byte, utf8.UTFMax)
	n := utf8.EncodeRune(enc, r)
	enc = enc[:n]
	for _, b := range blocks {
		if len(enc) != len(b.From) {
			continue
		}
		if bytes.Compare(enc, b.From) >= 0 && bytes.Compare(enc, b.To) <= 0 {
			return true
		}
	}
	return false
}

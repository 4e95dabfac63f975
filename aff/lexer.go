package aff

import "fmt"

type tokenType int

const (
	tokenEOF tokenType = iota
	tokenIdent
	tokenNumber
	tokenLParen
	tokenRParen
	tokenLBracket
	tokenRBracket
	tokenLBrace
	tokenRBrace
	tokenComma
	tokenSemi
	tokenIllegal
)

func (t tokenType) String() string {
	switch t {
	case tokenEOF:
		return "end of input"
	case tokenIdent:
		return "identifier"
	case tokenNumber:
		return "number"
	case tokenLParen:
		return "'('"
	case tokenRParen:
		return "')'"
	case tokenLBracket:
		return "'['"
	case tokenRBracket:
		return "']'"
	case tokenLBrace:
		return "'{'"
	case tokenRBrace:
		return "'}'"
	case tokenComma:
		return "','"
	case tokenSemi:
		return "';'"
	}
	return "illegal token"
}

type token struct {
	typ  tokenType
	lit  string
	line int
	col  int
}

func (t token) String() string {
	return fmt.Sprintf("token{%v, %q, %d:%d}", t.typ, t.lit, t.line, t.col)
}

// lexer walks the command section of an aff file byte by byte,
// tracking line and column for error reporting.
type lexer struct {
	input   string
	pos     int
	readPos int
	ch      byte
	line    int
	col     int
}

// newLexer starts a lexer whose first byte sits on startLine of the
// original file, so positions survive the header being stripped.
func newLexer(input string, startLine int) *lexer {
	l := &lexer{input: input, line: startLine}
	l.readChar()
	return l
}

func (l *lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.col = 0
	}
	if l.readPos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
	l.col++
}

func (l *lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

func (l *lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

func (l *lexer) nextToken() token {
	l.skipWhitespace()

	tok := token{line: l.line, col: l.col}

	switch l.ch {
	case 0:
		tok.typ = tokenEOF
	case '(':
		tok.typ, tok.lit = tokenLParen, "("
		l.readChar()
	case ')':
		tok.typ, tok.lit = tokenRParen, ")"
		l.readChar()
	case '[':
		tok.typ, tok.lit = tokenLBracket, "["
		l.readChar()
	case ']':
		tok.typ, tok.lit = tokenRBracket, "]"
		l.readChar()
	case '{':
		tok.typ, tok.lit = tokenLBrace, "{"
		l.readChar()
	case '}':
		tok.typ, tok.lit = tokenRBrace, "}"
		l.readChar()
	case ',':
		tok.typ, tok.lit = tokenComma, ","
		l.readChar()
	case ';':
		tok.typ, tok.lit = tokenSemi, ";"
		l.readChar()
	case '-':
		if isDigit(l.peekChar()) {
			l.readChar()
			tok.typ, tok.lit = tokenNumber, "-"+l.readNumber()
		} else {
			tok.typ, tok.lit = tokenIllegal, string(l.ch)
			l.readChar()
		}
	default:
		if isDigit(l.ch) {
			tok.typ, tok.lit = tokenNumber, l.readNumber()
		} else if isIdentStart(l.ch) {
			tok.typ, tok.lit = tokenIdent, l.readIdent()
		} else {
			tok.typ, tok.lit = tokenIllegal, string(l.ch)
			l.readChar()
		}
	}

	return tok
}

func (l *lexer) readNumber() string {
	start := l.pos
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	return l.input[start:l.pos]
}

func (l *lexer) readIdent() string {
	start := l.pos
	for isIdentChar(l.ch) {
		l.readChar()
	}
	return l.input[start:l.pos]
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch == '_'
}

func isIdentChar(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}

package tac

import (
	"unicode/utf8"
)

type lexer struct {
	input string

	offset int
	width  int

	line   int
	column int

	ch  rune
	eof bool

	warnings []error
}

func newLexer(input string) *lexer {
	l := &lexer{input: input, line: 1, column: 0}
	l.readRune()
	return l
}

func (l *lexer) readRune() {
	if l.offset >= len(l.input) {
		l.width = 0
		l.ch = 0
		l.eof = true
		return
	}

	r, w := utf8.DecodeRuneInString(l.input[l.offset:])
	l.width = w
	l.offset += w

	if r == '\n' {
		l.line++
		l.column = 0
	} else {
		l.column++
	}

	l.ch = r
}

func (l *lexer) peekRune() rune {
	if l.offset >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.offset:])
	return r
}

// NextToken returns the next classified token. Unrecognized characters are
// recorded as lexical warnings and skipped.
func (l *lexer) NextToken() Token {
	for {
		tok, ok := l.scan()
		if ok {
			return tok
		}
	}
}

// Warnings returns the lexical errors collected so far.
func (l *lexer) Warnings() []error {
	return l.warnings
}

func (l *lexer) scan() (Token, bool) {
	l.skipWhitespace()

	tok := Token{Pos: Position{Line: l.line, Column: l.column}}

	if l.eof {
		tok.Type = tokenEOF
		return tok, true
	}

	switch l.ch {
	case '+':
		tok = l.makeToken(tokenPlus, "+")
	case '-':
		tok = l.makeToken(tokenMinus, "-")
	case '*':
		tok = l.makeToken(tokenAsterisk, "*")
	case '/':
		tok = l.makeToken(tokenSlash, "/")
	case '(':
		tok = l.makeToken(tokenLParen, "(")
	case ')':
		tok = l.makeToken(tokenRParen, ")")
	case '{':
		tok = l.makeToken(tokenLBrace, "{")
	case '}':
		tok = l.makeToken(tokenRBrace, "}")
	case ':':
		tok = l.makeToken(tokenColon, ":")
	case '!':
		if l.peekRune() != '=' {
			l.illegal()
			return Token{}, false
		}
		tok = l.makeToken(tokenNotEQ, "!=")
		l.readRune()
	case '=':
		if l.peekRune() == '=' {
			tok = l.makeToken(tokenEQ, "==")
			l.readRune()
		} else {
			tok = l.makeToken(tokenAssign, "=")
		}
	case '>':
		if l.peekRune() == '=' {
			tok = l.makeToken(tokenGTE, ">=")
			l.readRune()
		} else {
			tok = l.makeToken(tokenGT, ">")
		}
	case '<':
		if l.peekRune() == '=' {
			tok = l.makeToken(tokenLTE, "<=")
			l.readRune()
		} else {
			tok = l.makeToken(tokenLT, "<")
		}
	default:
		switch {
		case isIdentifierStart(l.ch):
			literal := l.readWhile(isIdentifierRune)
			tok.Type = lookupIdent(literal)
			tok.Literal = literal
			return tok, true
		case isDigit(l.ch):
			tok.Type = tokenNumber
			tok.Literal = l.readWhile(isDigit)
			return tok, true
		default:
			l.illegal()
			return Token{}, false
		}
	}

	l.readRune()
	return tok, true
}

func (l *lexer) illegal() {
	l.warnings = append(l.warnings, &LexicalError{
		Pos:  Position{Line: l.line, Column: l.column},
		Char: l.ch,
	})
	l.readRune()
}

func (l *lexer) currentOffset() int {
	return l.offset - l.width
}

func (l *lexer) makeToken(tt TokenType, literal string) Token {
	return Token{Type: tt, Literal: literal, Pos: Position{Line: l.line, Column: l.column}}
}

func (l *lexer) skipWhitespace() {
	for {
		switch l.ch {
		case ' ', '\t', '\r', '\n':
			l.readRune()
		default:
			return
		}
	}
}

func (l *lexer) readWhile(accept func(rune) bool) string {
	start := l.currentOffset()
	for accept(l.peekRune()) {
		l.readRune()
	}
	literal := l.input[start:l.offset]
	l.readRune()
	return literal
}

func isIdentifierStart(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
}

func isIdentifierRune(r rune) bool {
	return isIdentifierStart(r) || isDigit(r)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func lookupIdent(ident string) TokenType {
	if tt, ok := keywords[ident]; ok {
		return tt
	}
	return tokenIdent
}

// IsIdentifier reports whether s lexes as a single non-keyword identifier.
func IsIdentifier(s string) bool {
	if s == "" || !isIdentifierStart(rune(s[0])) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isIdentifierRune(rune(s[i])) {
			return false
		}
	}
	_, reserved := keywords[s]
	return !reserved
}

// Tokenize scans source to completion. The returned slice always ends with
// an EOF token; the error slice holds lexical warnings.
func Tokenize(source string) ([]Token, []error) {
	l := newLexer(source)
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == tokenEOF {
			return tokens, l.Warnings()
		}
	}
}

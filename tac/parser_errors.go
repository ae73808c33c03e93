package tac

import (
	"fmt"
	"strings"
)

func (p *parser) errorExpected(tok Token, expected string) {
	p.addSyntaxError(tok.Pos, fmt.Sprintf("expected %s, got %s", expected, tokenLabel(tok.Type)))
}

// addSyntaxError keeps only the first error; the parser unwinds after it.
func (p *parser) addSyntaxError(pos Position, msg string) {
	if p.err != nil {
		return
	}
	p.err = &SyntaxError{Pos: pos, Msg: msg, source: p.source}
}

func tokenLabel(tt TokenType) string {
	switch tt {
	case tokenIllegal:
		return "invalid token"
	case tokenEOF:
		return "end of input"
	case tokenIdent:
		return "identifier"
	case tokenNumber:
		return "number"
	case tokenIf, tokenElif, tokenElse, tokenWhile, tokenFor, tokenIn, tokenRange:
		return fmt.Sprintf("'%s'", strings.ToLower(string(tt)))
	case "":
		return "unknown token"
	default:
		return fmt.Sprintf("%q", string(tt))
	}
}

package tac

import (
	"errors"
	"testing"
)

func TestTokenizeOperatorsAndKeywords(t *testing.T) {
	source := "for i in range(3): { x = x >= 10 != y == z <= w < v > u }\nelif iffy else while"
	tokens, warnings := Tokenize(source)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}

	want := []TokenType{
		tokenFor, tokenIdent, tokenIn, tokenRange, tokenLParen, tokenNumber, tokenRParen, tokenColon,
		tokenLBrace, tokenIdent, tokenAssign, tokenIdent, tokenGTE, tokenNumber, tokenNotEQ, tokenIdent,
		tokenEQ, tokenIdent, tokenLTE, tokenIdent, tokenLT, tokenIdent, tokenGT, tokenIdent, tokenRBrace,
		tokenElif, tokenIdent, tokenElse, tokenWhile, tokenEOF,
	}
	if len(tokens) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(tokens), tokens)
	}
	for i, tt := range want {
		if tokens[i].Type != tt {
			t.Fatalf("token %d: expected %s, got %s (%q)", i, tt, tokens[i].Type, tokens[i].Literal)
		}
	}
	if tokens[26].Literal != "iffy" {
		t.Fatalf("expected identifier iffy, got %q", tokens[26].Literal)
	}
}

func TestTokenizeTracksLinesAndColumns(t *testing.T) {
	tokens, _ := Tokenize("x = 1\n  y = 22")
	y := tokens[3]
	if y.Literal != "y" || y.Pos.Line != 2 || y.Pos.Column != 3 {
		t.Fatalf("unexpected position for y: %+v", y)
	}
	num := tokens[5]
	if num.Literal != "22" || num.Pos.Column != 7 {
		t.Fatalf("unexpected number token: %+v", num)
	}
}

func TestTokenizeSkipsIllegalCharacters(t *testing.T) {
	tokens, warnings := Tokenize("x = 1 $ 2 ! y")
	if len(warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %v", warnings)
	}
	var lexErr *LexicalError
	if !errors.As(warnings[0], &lexErr) {
		t.Fatalf("expected LexicalError, got %T", warnings[0])
	}
	if lexErr.Char != '$' || lexErr.Pos.Column != 7 {
		t.Fatalf("unexpected lexical error: %+v", lexErr)
	}

	var literals []string
	for _, tok := range tokens {
		literals = append(literals, tok.Literal)
	}
	got := len(literals)
	if got != 6 || literals[3] != "2" || literals[4] != "y" {
		t.Fatalf("unexpected tokens after skipping: %q", literals)
	}
}

func TestTokenSliceSynthesizesEOF(t *testing.T) {
	src := NewTokenSlice([]Token{{Type: tokenIdent, Literal: "x", Pos: Position{Line: 4, Column: 2}}})
	if tok := src.NextToken(); tok.Literal != "x" {
		t.Fatalf("unexpected first token %+v", tok)
	}
	for i := 0; i < 3; i++ {
		tok := src.NextToken()
		if tok.Type != tokenEOF {
			t.Fatalf("expected EOF, got %+v", tok)
		}
		if tok.Pos.Line != 4 {
			t.Fatalf("expected EOF to carry last position, got %+v", tok.Pos)
		}
	}
}

func TestIsIdentifier(t *testing.T) {
	cases := map[string]bool{
		"x":     true,
		"_tmp9": true,
		"9x":    false,
		"":      false,
		"while": false,
		"a-b":   false,
	}
	for input, want := range cases {
		if got := IsIdentifier(input); got != want {
			t.Fatalf("IsIdentifier(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestTokenizeTreatsNULAsIllegalCharacter(t *testing.T) {
	tokens, warnings := Tokenize("x = 1\x00\ny = 2")
	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning, got %v", warnings)
	}
	var lexErr *LexicalError
	if !errors.As(warnings[0], &lexErr) {
		t.Fatalf("expected LexicalError, got %T", warnings[0])
	}
	if lexErr.Char != 0 || lexErr.Pos.Line != 1 || lexErr.Pos.Column != 6 {
		t.Fatalf("unexpected lexical error: %+v", lexErr)
	}
	if len(tokens) != 7 {
		t.Fatalf("expected scanning to continue past NUL, got %v", tokens)
	}
	if y := tokens[3]; y.Literal != "y" || y.Pos.Line != 2 {
		t.Fatalf("unexpected token after NUL: %+v", y)
	}
}

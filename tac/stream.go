package tac

// TokenSource yields tokens one at a time. Once exhausted it keeps returning
// an EOF token.
type TokenSource interface {
	NextToken() Token
}

type tokenSlice struct {
	tokens []Token
	next   int
	last   Position
}

// NewTokenSlice wraps a pre-built token sequence as a TokenSource. A
// trailing EOF token is synthesized if the slice does not end with one.
func NewTokenSlice(tokens []Token) TokenSource {
	return &tokenSlice{tokens: append([]Token(nil), tokens...)}
}

func (s *tokenSlice) NextToken() Token {
	if s.next >= len(s.tokens) {
		return Token{Type: tokenEOF, Pos: s.last}
	}
	tok := s.tokens[s.next]
	s.next++
	s.last = tok.Pos
	if tok.Type == tokenEOF {
		s.next = len(s.tokens)
	}
	return tok
}

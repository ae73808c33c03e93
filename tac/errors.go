package tac

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSourceTooLarge is returned when the input exceeds Config.MaxSourceBytes.
var ErrSourceTooLarge = errors.New("source exceeds size limit")

// SyntaxError reports a token sequence that does not match the grammar.
// Parsing stops at the first one.
type SyntaxError struct {
	Pos    Position
	Msg    string
	source string
}

func (e *SyntaxError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "syntax error at %d:%d: %s", e.Pos.Line, e.Pos.Column, e.Msg)
	if frame := codeFrame(e.source, e.Pos); frame != "" {
		b.WriteString("\n")
		b.WriteString(frame)
	}
	return b.String()
}

// InternalError reports a parse tree the generator cannot lower.
type InternalError struct {
	Msg string
}

func (e *InternalError) Error() string {
	return "internal error: " + e.Msg
}

// LexicalError reports a character the tokenizer skipped.
type LexicalError struct {
	Pos  Position
	Char rune
}

func (e *LexicalError) Error() string {
	return fmt.Sprintf("illegal character %q at %d:%d", e.Char, e.Pos.Line, e.Pos.Column)
}

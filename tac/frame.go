package tac

import (
	"fmt"
	"strings"
)

// codeFrame renders the offending source line with a caret under the column.
// The preceding line is included when there is one so that errors reported
// at the start of a line still show what led up to them.
func codeFrame(source string, pos Position) string {
	lines := strings.Split(source, "\n")
	if source == "" || pos.Line < 1 || pos.Line > len(lines) {
		return ""
	}

	text := lines[pos.Line-1]
	column := min(max(pos.Column, 1), len([]rune(text))+1)
	width := len(fmt.Sprint(pos.Line))

	var b strings.Builder
	fmt.Fprintf(&b, "  --> line %d, column %d", pos.Line, column)
	if pos.Line > 1 {
		fmt.Fprintf(&b, "\n %*d | %s", width, pos.Line-1, lines[pos.Line-2])
	}
	fmt.Fprintf(&b, "\n %*d | %s", width, pos.Line, text)
	fmt.Fprintf(&b, "\n %*s | %s^", width, "", strings.Repeat(" ", column-1))
	return b.String()
}

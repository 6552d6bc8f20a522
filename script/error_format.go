package script

import (
	"fmt"
	"strconv"
	"strings"
)

// formatCodeFrame renders the offending line (and the one before it, when
// there is one) with a caret under the column.
func formatCodeFrame(source string, pos Position) string {
	if source == "" || pos.Line <= 0 {
		return ""
	}

	lines := strings.Split(source, "\n")
	if pos.Line > len(lines) {
		return ""
	}

	lineText := lines[pos.Line-1]
	column := min(max(pos.Column, 1), len(lineText)+1)

	gutter := len(strconv.Itoa(pos.Line))
	var b strings.Builder
	fmt.Fprintf(&b, "  --> line %d, column %d", pos.Line, column)
	if pos.Line > 1 {
		fmt.Fprintf(&b, "\n %*d | %s", gutter, pos.Line-1, lines[pos.Line-2])
	}
	fmt.Fprintf(&b, "\n %*d | %s", gutter, pos.Line, lineText)
	fmt.Fprintf(&b, "\n %s | %s^", strings.Repeat(" ", gutter), strings.Repeat(" ", column-1))
	return b.String()
}

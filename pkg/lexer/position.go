package lexer

import "fmt"

// Position locates a token in the source text. Line and Column are 1-based.
type Position struct {
	Line   int
	Column int
	Offset int
}

func (p Position) String() string {
	return fmt.Sprintf("Line: %d, Column %d", p.Line, p.Column)
}

// SameLine reports whether p and o start on the same source line
func (p Position) SameLine(o Position) bool {
	return p.Line == o.Line
}

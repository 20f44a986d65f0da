package ir

import "fmt"

// FindOperation scans code backward, starting at the statement right before
// position before, and returns the nearest Operation whose code is opCode
// together with its position in code.
//
// A Conditional is searched from the last statement of its body. When the
// match lies inside the body, the returned position is that of the
// Conditional in code, never a position inside the body, so a caller that
// resumes strictly before it skips the whole region. A definition found in a
// branch is therefore reported exactly like an unconditional one.
//
// before ranges over [0, len(code)]; larger values panic.
func FindOperation(code Block, before int, opCode OperationCode) (*Operation, int, bool) {
	code.mustBound(before)

	for pos := before - 1; pos >= 0; pos-- {
		switch node := code[pos].(type) {
		case *Operation:
			if node.Code == opCode {
				return node, pos, true
			}
		case *Conditional:
			if found, _, ok := FindOperation(node.Code, len(node.Code), opCode); ok {
				return found, pos, true
			}
		}
	}
	return nil, -1, false
}

// StatementCount returns the number of statements in b, counting the
// bodies of nested conditionals.
func (b Block) StatementCount() int {
	n := 0
	for _, node := range b {
		n++
		if cond, ok := node.(*Conditional); ok {
			n += cond.Code.StatementCount()
		}
	}
	return n
}

func (b Block) mustBound(before int) {
	if before > len(b) {
		panic(fmt.Sprintf("ir: search bound %d past end of %d-statement block", before, len(b)))
	}
}

package compiler

import "fmt"

// Error is a compile-time diagnostic: a source line and a message, in the
// same "line: message" shape the original prints directly to stdout
// (spec §7), with the offending line's own text echoed underneath as a
// supplemental enrichment (SPEC_FULL.md §3.1) -- not something the
// original's parse errors do themselves, but text the lexer already has
// on hand at the point any error fires. The compiler stops at the first
// one -- c4 does not attempt error recovery.
type Error struct {
	Line   int
	Msg    string
	Source []byte
}

func (e *Error) Error() string {
	if len(e.Source) == 0 {
		return fmt.Sprintf("%d: %s", e.Line, e.Msg)
	}
	return fmt.Sprintf("%d: %s\n%s", e.Line, e.Msg, e.Source)
}

func (c *Compiler) errorf(format string, args ...interface{}) error {
	return &Error{
		Line:   c.lex.Line,
		Msg:    fmt.Sprintf(format, args...),
		Source: append([]byte(nil), c.lex.LineText()...),
	}
}

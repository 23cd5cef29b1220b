package predicate

import "fmt"

// ParseError indicates that a condition text does not match the supported
// grammar. Pos is the zero-based byte offset of the offending input.
type ParseError struct {
	Pos     int
	Message string
}

// Error returns the error message.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at offset %d: %s", e.Pos, e.Message)
}

func parseErrorf(pos int, format string, args ...any) *ParseError {
	return &ParseError{Pos: pos, Message: fmt.Sprintf(format, args...)}
}

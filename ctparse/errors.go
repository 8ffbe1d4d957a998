package ctparse

import "fmt"

// ParseError reports a log line that is not valid JSON. The whole analysis
// stops at the first one.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("JSON parse error on line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

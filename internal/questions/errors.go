package questions

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates the question bank document does not exist.
var ErrNotFound = errors.New("question bank not found")

// ParseError indicates the question bank document exists but is malformed:
// invalid JSON, a schema violation, or a question whose correct answers are
// not among its options.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse question bank %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

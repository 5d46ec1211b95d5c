package serialization

import (
	"errors"
	"fmt"
)

// ErrMalformedModel is wrapped by every *ParseError.
var ErrMalformedModel = errors.New("malformed model")

// ParseError provides the location of a malformed model line.
type ParseError struct {
	Line    int    // 1-based line number; the last line read for premature EOF
	Details string // What is wrong at that line
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%v: line %d: %s", ErrMalformedModel, e.Line, e.Details)
}

// Unwrap makes errors.Is(err, ErrMalformedModel) hold.
func (e *ParseError) Unwrap() error {
	return ErrMalformedModel
}

func parseErrorf(line int, format string, args ...any) error {
	return &ParseError{Line: line, Details: fmt.Sprintf(format, args...)}
}

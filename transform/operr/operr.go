// Package operr defines the typed errors returned by every text operation.
//
// Errors carry a Kind (the taxonomy callers switch on), the operation id that
// produced them, a user-facing message and, where it makes sense, the position of
// the offending input.
package operr

import (
	"errors"
	"fmt"
)

// Kind classifies an operation failure
type Kind string

const (
	// InvalidInputFormat indicates number, date, JSON or XML input that does not parse
	InvalidInputFormat Kind = "INVALID_INPUT_FORMAT"
	// CodecError indicates malformed encoded input on decode
	CodecError Kind = "CODEC_ERROR"
	// UnsupportedOperation indicates an operation that cannot be performed on the input
	UnsupportedOperation Kind = "UNSUPPORTED_OPERATION"
	// ConfigurationError indicates contradictory or out-of-range options
	ConfigurationError Kind = "CONFIGURATION_ERROR"
)

// Position locates a failure inside the input. Offset is a zero-based byte
// offset; Line and Column are one-based and zero when unknown.
type Position struct {
	Offset int `json:"offset"`
	Line   int `json:"line,omitempty"`
	Column int `json:"column,omitempty"`
}

// String renders the position for messages
func (p Position) String() string {
	if p.Line > 0 {
		return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
	}
	return fmt.Sprintf("offset %d", p.Offset)
}

// Error is the error value returned by operations
type Error struct {
	Kind    Kind      `json:"kind"`
	Op      string    `json:"operation,omitempty"`
	Message string    `json:"message"`
	Pos     *Position `json:"position,omitempty"`
	Err     error     `json:"-"`
}

// Error returns the user-facing message. It is meant to be shown as-is.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind, so that
// errors.Is(err, &operr.Error{Kind: operr.CodecError}) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Op == "" || t.Op == e.Op)
}

// WithPosition attaches a position and returns the same error
func (e *Error) WithPosition(pos Position) *Error {
	e.Pos = &pos
	return e
}

// WithOp sets the operation id if it is not set yet
func (e *Error) WithOp(op string) *Error {
	if e.Op == "" {
		e.Op = op
	}
	return e
}

// New creates an error of the given kind
func New(kind Kind, op, message string) *Error {
	return &Error{Kind: kind, Op: op, Message: message}
}

// Newf creates an error of the given kind with a formatted message
func Newf(kind Kind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an error of the given kind around a cause
func Wrap(kind Kind, op, message string, cause error) *Error {
	return &Error{Kind: kind, Op: op, Message: message, Err: cause}
}

// Invalid is shorthand for an InvalidInputFormat error
func Invalid(op, format string, args ...any) *Error {
	return Newf(InvalidInputFormat, op, format, args...)
}

// Codec is shorthand for a CodecError
func Codec(op, format string, args ...any) *Error {
	return Newf(CodecError, op, format, args...)
}

// Unsupported is shorthand for an UnsupportedOperation error
func Unsupported(op, format string, args ...any) *Error {
	return Newf(UnsupportedOperation, op, format, args...)
}

// Config is shorthand for a ConfigurationError
func Config(op, format string, args ...any) *Error {
	return Newf(ConfigurationError, op, format, args...)
}

// As extracts an *Error from err
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf returns the kind of err, or the empty kind for foreign errors
func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.Kind
	}
	return ""
}

// PositionAt computes line and column for a byte offset in input
func PositionAt(input string, offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(input) {
		offset = len(input)
	}
	line, col := 1, 1
	for _, r := range input[:offset] {
		if r == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return Position{Offset: offset, Line: line, Column: col}
}

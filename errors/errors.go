// Package errors defines the error type shared by all dsl subpackages.
package errors

import (
	"fmt"
	"strings"
)

// Error classes used by subpackages, each class contains up to 99 error codes:
const (
	ScanErrors    = 1   // used by scan
	SyntaxErrors  = 101 // used by parser
	ConfigErrors  = 201 // used by decl and eval scope lookups
	EvalErrors    = 301 // used by eval
	DialectErrors = 401 // used by dialect
)

// Error is the error type used by dsl subpackages.
// A parse error is a single header line:
//
//	At (line, column) : "<first line of offending excerpt>" : <message>
//
// An evaluation error passing through several operation or macro frames
// carries one header per frame, outermost first, one frame per line.
type Error struct {
	// Code contains non-zero error code.
	Code int

	// Message contains error message without position information.
	Message string

	// Line and Col contain 1-based source position, or 0 if unknown.
	Line, Col int

	// Excerpt contains the source slice the failed node was parsed from.
	Excerpt string

	// Cause contains the wrapped error for decorated evaluation errors.
	Cause error
}

// SourcePos is used to retrieve position information when constructing an error.
type SourcePos interface {
	// Line returns line number or 0.
	Line() int
	// Col returns column number or 0.
	Col() int
	// Excerpt returns the source slice being processed, may be empty.
	Excerpt() string
}

// New creates new Error structure.
func New(code int, msg string, line, col int, excerpt string) *Error {
	return &Error{Code: code, Message: msg, Line: line, Col: col, Excerpt: excerpt}
}

// Format creates Error structure with no position information.
// params will be added to error message using fmt.Sprintf function.
func Format(code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return New(code, msg, 0, 0, "")
}

// FormatPos creates Error structure with position information.
// pos must not be nil.
// params will be added to error message using fmt.Sprintf function.
func FormatPos(pos SourcePos, code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return New(code, msg, pos.Line(), pos.Col(), pos.Excerpt())
}

// Wrap decorates e with position information taken from pos, adding one
// trace frame. The original error is available through Unwrap.
// Code is inherited when e is an *Error, otherwise set to code.
func Wrap(pos SourcePos, code int, e error) *Error {
	res := &Error{Code: code, Line: pos.Line(), Col: pos.Col(), Excerpt: pos.Excerpt(), Cause: e}
	if ee, is := e.(*Error); is {
		res.Code = ee.Code
	}
	return res
}

func (e *Error) header() string {
	if e.Line == 0 && e.Col == 0 {
		return e.Message
	}

	line := e.Excerpt
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	res := fmt.Sprintf("At (%d, %d) : %q :", e.Line, e.Col, line)
	if e.Message != "" {
		res += " " + e.Message
	}
	return res
}

// Error renders the full trace, one frame per line, outermost first.
// A wrapped *Error starts a new line with its own header; any other wrapped
// error is rendered on the same line as the innermost header.
func (e *Error) Error() string {
	if e.Cause == nil {
		return e.header()
	}

	if _, is := e.Cause.(*Error); is {
		return e.header() + "\n" + e.Cause.Error()
	}
	return e.header() + " " + e.Cause.Error()
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error {
	return e.Cause
}

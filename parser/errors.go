package parser

import (
	err "github.com/ava12/dsl/errors"
	"github.com/ava12/dsl/source"
)

// Error codes used by parser:
const (
	// ErrUnexpectedEoi indicates that the source ended in the middle of a
	// syntactic unit.
	ErrUnexpectedEoi = err.SyntaxErrors + iota

	// ErrUnexpectedChar indicates a character that cannot start or continue
	// the expected syntactic unit.
	ErrUnexpectedChar

	// ErrUnknownOperator indicates an operator token with no declaration.
	ErrUnknownOperator

	// ErrUnknownMacro indicates a macro invocation with no declaration.
	ErrUnknownMacro

	// ErrArity indicates an operand or argument count outside the declared
	// arity range.
	ErrArity

	// ErrUnterminatedString indicates a string literal with no closing quote.
	ErrUnterminatedString

	// ErrMixedPack indicates an infix pack using more than one operator.
	ErrMixedPack

	// ErrBadPack indicates an empty infix pack or one with no operator.
	ErrBadPack

	// ErrBindTarget indicates macro-binding sugar not followed by a macro body.
	ErrBindTarget

	// ErrUnknownLimb indicates a limb name not declared for the macro.
	ErrUnknownLimb

	// ErrDuplicateLimb indicates a limb given twice in one invocation.
	ErrDuplicateLimb

	// ErrTooDeep indicates that nesting exceeded the parser recursion limit.
	ErrTooDeep
)

func unexpectedEoiError(pos source.Pos, expected string) *err.Error {
	return err.FormatPos(pos, ErrUnexpectedEoi, "unexpected end of input, expecting %s", expected)
}

func unexpectedCharError(pos source.Pos, expected string) *err.Error {
	return err.FormatPos(pos, ErrUnexpectedChar, "unexpected character, expecting %s", expected)
}

func unknownOperatorError(pos source.Pos, name string) *err.Error {
	return err.FormatPos(pos, ErrUnknownOperator, "unknown operator %s", name)
}

func unknownMacroError(pos source.Pos, name string) *err.Error {
	return err.FormatPos(pos, ErrUnknownMacro, "unknown macro %s", name)
}

func arityError(pos source.Pos, name, expected string, got int) *err.Error {
	return err.FormatPos(pos, ErrArity, "wrong number of operands for %s: expecting %s, got %d", name, expected, got)
}

func unterminatedStringError(pos source.Pos) *err.Error {
	return err.FormatPos(pos, ErrUnterminatedString, "unterminated string literal")
}

func mixedPackError(pos source.Pos, want, got string) *err.Error {
	return err.FormatPos(pos, ErrMixedPack, "only a single type of operator allowed in a pack: have %s, got %s", want, got)
}

func badPackError(pos source.Pos, msg string) *err.Error {
	return err.FormatPos(pos, ErrBadPack, msg)
}

func bindTargetError(pos source.Pos) *err.Error {
	return err.FormatPos(pos, ErrBindTarget, "operator expected: binding requires a macro body")
}

func unknownLimbError(pos source.Pos, macro, limb string) *err.Error {
	return err.FormatPos(pos, ErrUnknownLimb, "macro %s has no limb named %s", macro, limb)
}

func duplicateLimbError(pos source.Pos, limb string) *err.Error {
	return err.FormatPos(pos, ErrDuplicateLimb, "can't declare %s twice", limb)
}

func tooDeepError(pos source.Pos) *err.Error {
	return err.FormatPos(pos, ErrTooDeep, "nesting is too deep")
}

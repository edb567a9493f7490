/*
Package dsl is a toolkit for building small embedded scripting languages.

The engine carries no built-in semantics: the host supplies operator and
macro declarations, a literal conversion, and reducers, and gets back one
value per compiled script. Consists of subpackages:

  - cmd/dslgen: console utility converting a YAML dialect description to a Go
    source file containing declaration structures;
  - source: source buffer and position arithmetic;
  - scan: character classifier and whitespace/comment flusher;
  - decl: operator and macro declarations and the registry built from them;
  - ast: the syntax tree produced by the parser;
  - parser: character-level recursive-descent and precedence-climbing parser;
  - eval: scoped tree-walking evaluator invoking host reducers;
  - errors: the error type shared by subpackages;
  - dialect: YAML dialect descriptions.

Typical usage is:

1. Declare operators as ordered precedence groups (earlier groups bind
tighter) and macros with their arity ranges and limb names, either in Go or
in a YAML dialect file.

2. Define reducers: a function per operator folding evaluated operands, a
function per macro working on unevaluated trees, a lift function turning raw
literals into host values, and a script reducer for the whole program.

3. Create a Compiler and feed it source texts. Every compile is independent;
the same compiler may be reused for any number of scripts.

The surface grammar is fixed: semicolon-separated statements, nestable
[[ comments ]], numbers, "strings with {interpolation}", names, symbolic and
#hash operators, macro invocations with bodies and limbs, [packs] for
supplying unusual operand counts, and call/index sugar. All meaning behind
those forms comes from the host.
*/
package dsl

import (
	err "github.com/ava12/dsl/errors"
)

// Error code used by the compiler façade:
const (
	// ErrNotLegalHere indicates a declared operator or macro that was
	// reached through the default guard scope, i.e. one the script reducer
	// never bound to an implementation.
	ErrNotLegalHere = err.ConfigErrors + 50
)

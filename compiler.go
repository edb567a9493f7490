package dsl

import (
	"github.com/ava12/dsl/ast"
	"github.com/ava12/dsl/decl"
	err "github.com/ava12/dsl/errors"
	"github.com/ava12/dsl/eval"
	"github.com/ava12/dsl/parser"
	"github.com/ava12/dsl/source"
)

// Convenience aliases so that simple hosts only need the root package for
// declarations.
type (
	Arity    = decl.Arity
	Operator = decl.Operator
	Macro    = decl.Macro
)

// Compiler compiles script texts into host values of type V. It is built
// once from declarations and reducer plumbing and may be reused for any
// number of independent compiles.
type Compiler[V any] struct {
	reg    *decl.Registry
	parser *parser.Parser
	ev     *eval.Evaluator[V]
	script eval.Macro[V]
	base   eval.Scope[V]
}

// New creates a Compiler.
//
// operators is an ordered sequence of precedence groups, earlier groups
// binding tighter. macros declares the macro vocabulary. lift converts raw
// literal excerpts into host values. script is the reducer invoked for the
// whole program: it receives the top-level statements as an unevaluated
// body, with empty arguments and limbs.
//
// The initial scope binds every declared operator and macro to a guard
// reducer failing with ErrNotLegalHere, so a declared symbol the script
// reducer leaves unbound fails clearly instead of silently.
func New[V any](operators [][]decl.Operator, macros []decl.Macro, lift eval.Lift[V], script eval.Macro[V]) *Compiler[V] {
	reg := decl.NewRegistry(operators, macros)
	ops := make(map[string]eval.Operator[V])
	for _, name := range reg.OperatorNames() {
		ops[name] = guardOperator[V](name)
	}
	ms := make(map[string]eval.Macro[V])
	for _, name := range reg.MacroNames() {
		ms[name] = guardMacro[V](name)
	}

	return &Compiler[V]{
		reg:    reg,
		parser: parser.New(reg),
		ev:     eval.New(lift),
		script: script,
		base:   eval.NewScope(ops, ms),
	}
}

func guardOperator[V any](name string) eval.Operator[V] {
	return func([]V) (res V, e error) {
		return res, err.Format(ErrNotLegalHere, "operator %s is not legal here", name)
	}
}

func guardMacro[V any](name string) eval.Macro[V] {
	return func(*eval.Call[V]) (res V, e error) {
		return res, err.Format(ErrNotLegalHere, "macro %q is not legal here", name)
	}
}

// Registry returns the immutable declaration registry of the compiler.
func (c *Compiler[V]) Registry() *decl.Registry {
	return c.reg
}

// Parse parses text into its top-level statement sequence without
// evaluating anything.
func (c *Compiler[V]) Parse(text string) ([]ast.Node, error) {
	return c.parser.Parse(source.New("", text))
}

// Compile parses the whole text and invokes the script reducer with the
// statement sequence as body. Any syntax, configuration, or reducer failure
// aborts the compile; there are no partial results.
func (c *Compiler[V]) Compile(text string) (res V, e error) {
	stmts, e := c.Parse(text)
	if e != nil {
		return res, e
	}

	call := eval.NewCall(c.ev, c.base, decl.SilentMacro, []ast.Node{}, stmts, map[string][]ast.Node{})
	return c.script(call)
}

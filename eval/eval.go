// Package eval implements the scoped tree-walking evaluator. The tree is
// read-only: all evaluation state lives in the scope passed down the call
// tree, so one tree may be evaluated repeatedly under different reducer
// tables. Every frame an error unwinds through contributes one location
// header to the resulting trace.
package eval

import (
	"github.com/ava12/dsl/ast"
	err "github.com/ava12/dsl/errors"
)

// Error codes used by eval:
const (
	// ErrNoOperator indicates an operator with no reducer in the current scope.
	ErrNoOperator = err.ConfigErrors + iota

	// ErrNoMacro indicates a macro with no reducer in the current scope.
	ErrNoMacro
)

const (
	// ErrReduce is the code given to trace frames wrapping a host error.
	ErrReduce = err.EvalErrors + iota
)

// Lift converts a raw literal excerpt into a host value.
type Lift[V any] func(literal string) (V, error)

// Operator reduces already-evaluated operands to one value.
type Operator[V any] func(args []V) (V, error)

// Macro reduces a macro invocation. It receives the unevaluated argument,
// body, and limb trees through the call context and decides itself which
// parts to evaluate, in what order, how many times, and under what scope.
type Macro[V any] func(c *Call[V]) (V, error)

// Scope is a pair of immutable name-to-reducer tables. Scopes are combined
// by override: the derived scope is a fresh view and the parent is never
// changed.
type Scope[V any] struct {
	operators map[string]Operator[V]
	macros    map[string]Macro[V]
}

// NewScope creates a scope from reducer tables. The maps are copied.
func NewScope[V any](operators map[string]Operator[V], macros map[string]Macro[V]) Scope[V] {
	return Scope[V]{copyMap(operators), copyMap(macros)}
}

func copyMap[T any](src map[string]T) map[string]T {
	res := make(map[string]T, len(src))
	for k, v := range src {
		res[k] = v
	}
	return res
}

// Operator returns the reducer bound to an operator name.
func (s Scope[V]) Operator(name string) (Operator[V], bool) {
	red, has := s.operators[name]
	return red, has
}

// Macro returns the reducer bound to a macro name.
func (s Scope[V]) Macro(name string) (Macro[V], bool) {
	red, has := s.macros[name]
	return red, has
}

// Operators returns a copy of the operator table.
func (s Scope[V]) Operators() map[string]Operator[V] {
	return copyMap(s.operators)
}

// Macros returns a copy of the macro table.
func (s Scope[V]) Macros() map[string]Macro[V] {
	return copyMap(s.macros)
}

// Override derives a new scope with entries from operators and macros
// replacing same-named inherited ones. Either table may be nil.
func (s Scope[V]) Override(operators map[string]Operator[V], macros map[string]Macro[V]) Scope[V] {
	if len(operators) == 0 && len(macros) == 0 {
		return s
	}

	res := Scope[V]{s.operators, s.macros}
	if len(operators) > 0 {
		res.operators = copyMap(s.operators)
		for k, v := range operators {
			res.operators[k] = v
		}
	}
	if len(macros) > 0 {
		res.macros = copyMap(s.macros)
		for k, v := range macros {
			res.macros[k] = v
		}
	}
	return res
}

// Evaluator evaluates syntax trees into host values of type V.
// Evaluator itself is immutable and may be shared.
type Evaluator[V any] struct {
	lift Lift[V]
}

// New creates new Evaluator using the host literal conversion.
func New[V any](lift Lift[V]) *Evaluator[V] {
	return &Evaluator[V]{lift}
}

// Eval evaluates one node under the given scope. Each node is visited at
// most once, synchronously. Operation operands are evaluated left to right
// in the current scope before the operator's reducer runs; macro reducers
// receive their trees unevaluated.
func (ev *Evaluator[V]) Eval(n ast.Node, sc Scope[V]) (res V, e error) {
	switch node := n.(type) {
	case *ast.Literal:
		res, e = ev.lift(node.Value)
		if e != nil {
			e = err.Wrap(node.Meta(), ErrReduce, e)
		}

	case *ast.Operation:
		red, has := sc.Operator(node.Operator)
		if !has {
			return res, err.FormatPos(node.Meta(), ErrNoOperator, "no reducer for operator %s", node.Operator)
		}

		args := make([]V, len(node.Operands))
		for i, operand := range node.Operands {
			args[i], e = ev.Eval(operand, sc)
			if e != nil {
				return res, err.Wrap(node.Meta(), ErrReduce, e)
			}
		}

		res, e = red(args)
		if e != nil {
			e = err.Wrap(node.Meta(), ErrReduce, e)
		}

	case *ast.Macro:
		red, has := sc.Macro(node.Name)
		if !has {
			return res, err.FormatPos(node.Meta(), ErrNoMacro, "no reducer for macro %q", node.Name)
		}

		res, e = red(NewCall(ev, sc, node.Name, node.Args, node.Body, node.Limbs))
		if e != nil {
			e = err.Wrap(node.Meta(), ErrReduce, e)
		}
	}
	return
}

// Call is the context a macro reducer works with: the invocation trees and
// an entry point back into the evaluator carrying the ambient scope.
type Call[V any] struct {
	// Name contains the macro name, empty for the silent macro.
	Name string

	// Args, Body, and Limbs hold the unevaluated invocation trees. Every
	// declared limb is present, absent ones map to an empty sequence.
	Args  []ast.Node
	Body  []ast.Node
	Limbs map[string][]ast.Node

	ev    *Evaluator[V]
	scope Scope[V]
}

// NewCall creates a macro call context. It is used by the evaluator and by
// the compiler façade for the top-level script invocation.
func NewCall[V any](ev *Evaluator[V], sc Scope[V], name string, args, body []ast.Node, limbs map[string][]ast.Node) *Call[V] {
	return &Call[V]{name, args, body, limbs, ev, sc}
}

// Eval evaluates a node under the ambient scope of the invocation.
func (c *Call[V]) Eval(n ast.Node) (V, error) {
	return c.ev.Eval(n, c.scope)
}

// EvalWith evaluates a node under the ambient scope with local overrides.
// The overrides are visible only during this evaluation and to its nested
// calls; the ambient scope itself is not changed.
func (c *Call[V]) EvalWith(n ast.Node, operators map[string]Operator[V], macros map[string]Macro[V]) (V, error) {
	return c.ev.Eval(n, c.scope.Override(operators, macros))
}

// Operators returns a copy of the ambient operator table.
func (c *Call[V]) Operators() map[string]Operator[V] {
	return c.scope.Operators()
}

// Macros returns a copy of the ambient macro table.
func (c *Call[V]) Macros() map[string]Macro[V] {
	return c.scope.Macros()
}

// Package ast defines the syntax tree produced by the parser. Trees are
// built bottom-up, carry no evaluation state, and are never modified after
// construction, so one tree may be evaluated any number of times under
// different scopes.
package ast

import (
	"github.com/ava12/dsl/source"
)

// Meta ties a node to the source slice it was parsed from. The excerpt is
// verbatim and includes any whitespace and comments between the first and
// the last character of the node.
type Meta struct {
	src      *source.Source
	pos, end int
}

// NewMeta creates metadata for the [pos, end) slice of src.
func NewMeta(src *source.Source, pos, end int) Meta {
	return Meta{src, pos, end}
}

// Source returns the source the node belongs to.
func (m Meta) Source() *source.Source {
	return m.src
}

// Offset returns the byte offset of the first character of the node.
func (m Meta) Offset() int {
	return m.pos
}

// Excerpt returns the exact source slice the node was parsed from.
func (m Meta) Excerpt() string {
	return m.src.Content()[m.pos:m.end]
}

// Line returns the 1-based line number of the node start.
func (m Meta) Line() int {
	line, _ := m.src.LineCol(m.pos)
	return line
}

// Col returns the 1-based column number of the node start.
func (m Meta) Col() int {
	_, col := m.src.LineCol(m.pos)
	return col
}

// Node is the closed union of syntax tree nodes: *Literal, *Operation, and
// *Macro.
type Node interface {
	Meta() Meta
	node()
}

// Literal is a raw source excerpt with no further structure: the text of a
// number, a string chunk, a name, or a binding target.
type Literal struct {
	meta Meta

	// Value contains the raw text.
	Value string
}

func NewLiteral(meta Meta, value string) *Literal {
	return &Literal{meta, value}
}

func (n *Literal) Meta() Meta {
	return n.meta
}

func (n *Literal) node() {}

// Operation applies a named operator to ordered operands. Operand count is
// validated against the declaration registry when the node is built.
type Operation struct {
	meta Meta

	// Operator contains the declared operator name, e.g. "+" or "#call".
	Operator string

	// Operands contains the operand nodes in source order.
	Operands []Node
}

func NewOperation(meta Meta, operator string, operands []Node) *Operation {
	return &Operation{meta, operator, operands}
}

func (n *Operation) Meta() Meta {
	return n.meta
}

func (n *Operation) node() {}

// Macro is a macro invocation. Args, Body, and Limbs hold unevaluated
// statement sequences; the macro's reducer decides what to evaluate and how.
// Every limb name declared for the macro is present in Limbs, mapped to an
// empty sequence when the source omitted the limb.
type Macro struct {
	meta Meta

	// Name contains the declared macro name, empty for the silent macro.
	Name string

	// Args contains the head argument expressions.
	Args []Node

	// Body contains the main body statements.
	Body []Node

	// Limbs maps every declared limb name to its statements.
	Limbs map[string][]Node
}

func NewMacro(meta Meta, name string, args, body []Node, limbs map[string][]Node) *Macro {
	return &Macro{meta, name, args, body, limbs}
}

func (n *Macro) Meta() Meta {
	return n.meta
}

func (n *Macro) node() {}

// Package decl defines operator and macro declarations and the registry the
// parser validates names, arities, and precedence against.
package decl

import (
	"fmt"
)

// Unbounded marks an arity range with no upper limit.
const Unbounded = -1

// Arity is an inclusive range of legal operand or argument counts.
// Max may be Unbounded.
type Arity struct {
	Min, Max int
}

// Exactly returns the arity range [n, n].
func Exactly(n int) Arity {
	return Arity{n, n}
}

// Between returns the arity range [min, max].
func Between(min, max int) Arity {
	return Arity{min, max}
}

// AtLeast returns the arity range [min, Unbounded].
func AtLeast(min int) Arity {
	return Arity{min, Unbounded}
}

// Contains tells whether n falls within the range.
func (a Arity) Contains(n int) bool {
	return n >= a.Min && (a.Max == Unbounded || n <= a.Max)
}

func (a Arity) String() string {
	switch {
	case a.Max == Unbounded:
		return fmt.Sprintf("%d or more", a.Min)
	case a.Max == a.Min:
		return fmt.Sprintf("%d", a.Min)
	default:
		return fmt.Sprintf("%d to %d", a.Min, a.Max)
	}
}

// Operator declares one operator name within a precedence group.
type Operator struct {
	Name  string
	Arity Arity
}

// Macro declares one macro: legal argument counts and the names of the
// optional limb blocks that may follow its body.
type Macro struct {
	Name  string
	Arity Arity
	Limbs []string
}

// OperatorDecl is a registered operator. Rank orders precedence: a larger
// rank binds tighter. Only relative order is meaningful.
type OperatorDecl struct {
	Name  string
	Arity Arity
	Rank  int
}

// MacroDecl is a registered macro with its limb name set.
type MacroDecl struct {
	Name  string
	Arity Arity
	Limbs map[string]bool
}

// HasLimb tells whether name is a declared limb of the macro.
func (m MacroDecl) HasLimb(name string) bool {
	return m.Limbs[name]
}

// Names of the operations the parser emits on its own. They are registered
// implicitly and a host declaration of the same name replaces the implicit
// one (including its rank, for Call and Index).
const (
	Number = "#number"
	String = "#string"
	Name   = "#name"
	Bind   = "#bind"
	Call   = "#call"
	Index  = "#index"
)

// SilentMacro is the reserved name of the anonymous { ... } block.
const SilentMacro = ""

// Registry maps operator and macro names to their declarations. It is built
// once per compiler and never changes afterwards. Operator and macro names
// are separate namespaces; within a namespace the last declaration of a name
// wins.
type Registry struct {
	operators map[string]OperatorDecl
	macros    map[string]MacroDecl
	topRank   int
}

// NewRegistry builds a registry from ordered precedence groups and macro
// declarations. Operators of the same group share a rank; earlier groups
// bind tighter. Call and index bind tighter than any declared group unless
// the host declares #call or #index explicitly.
func NewRegistry(groups [][]Operator, macros []Macro) *Registry {
	top := len(groups) + 1
	r := &Registry{
		operators: make(map[string]OperatorDecl, len(groups)*2+6),
		macros:    make(map[string]MacroDecl, len(macros)+1),
		topRank:   top,
	}

	for _, b := range []OperatorDecl{
		{Number, Exactly(1), top},
		{Name, Exactly(1), top},
		{Bind, Exactly(2), top},
		{String, AtLeast(1), top},
		{Call, AtLeast(1), top},
		{Index, AtLeast(1), top},
	} {
		r.operators[b.Name] = b
	}

	for i, group := range groups {
		rank := len(groups) - i
		for _, op := range group {
			r.operators[op.Name] = OperatorDecl{op.Name, op.Arity, rank}
		}
	}

	r.macros[SilentMacro] = MacroDecl{SilentMacro, Exactly(0), map[string]bool{}}
	for _, m := range macros {
		limbs := make(map[string]bool, len(m.Limbs))
		for _, l := range m.Limbs {
			limbs[l] = true
		}
		r.macros[m.Name] = MacroDecl{m.Name, m.Arity, limbs}
	}

	return r
}

// Operator returns the declaration for an operator name.
func (r *Registry) Operator(name string) (OperatorDecl, bool) {
	d, has := r.operators[name]
	return d, has
}

// Macro returns the declaration for a macro name.
func (r *Registry) Macro(name string) (MacroDecl, bool) {
	d, has := r.macros[name]
	return d, has
}

// TopRank returns a rank tighter than every declared group, used for call
// and index operations.
func (r *Registry) TopRank() int {
	return r.topRank
}

// OperatorNames returns the names of all registered operators, including the
// implicit ones, in no particular order.
func (r *Registry) OperatorNames() []string {
	res := make([]string, 0, len(r.operators))
	for name := range r.operators {
		res = append(res, name)
	}
	return res
}

// MacroNames returns the names of all registered macros in no particular order.
func (r *Registry) MacroNames() []string {
	res := make([]string, 0, len(r.macros))
	for name := range r.macros {
		res = append(res, name)
	}
	return res
}

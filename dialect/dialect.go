// Package dialect reads DSL dialect descriptions: the operator precedence
// groups and the macro vocabulary of a language, declared in YAML instead of
// Go. The loaded declarations feed dsl.New or decl.NewRegistry directly;
// reducers still have to be written in Go.
//
// A dialect file looks like:
//
//	name: calc
//	operators:
//	  - ops:
//	      - {name: "**", arity: 2}
//	  - ops:
//	      - {name: "*", arity: 2}
//	      - {name: "/", arity: 2}
//	  - ops:
//	      - {name: "+", arity: [1, 2]}
//	      - {name: "-", arity: [1, 2]}
//	macros:
//	  - name: with
//	    arity: 1
//	    limbs: [else]
//
// Operator groups are ordered tightest first. An arity is either an exact
// count or a [min, max] pair; max -1 means unbounded.
package dialect

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ava12/dsl/decl"
	err "github.com/ava12/dsl/errors"
)

// Error codes used by dialect:
const (
	// ErrBadFile indicates unreadable or non-YAML input.
	ErrBadFile = err.DialectErrors + iota

	// ErrBadArity indicates an arity that is neither an integer nor a
	// [min, max] pair.
	ErrBadArity

	// ErrNoName indicates an operator or macro entry without a name.
	ErrNoName

	// ErrEmptyGroup indicates a precedence group with no operators.
	ErrEmptyGroup
)

// Dialect is a loaded dialect description.
type Dialect struct {
	// Name contains the dialect name, may be empty.
	Name string

	// Operators contains the precedence groups, tightest first.
	Operators [][]decl.Operator

	// Macros contains the macro declarations.
	Macros []decl.Macro
}

type arity struct {
	a decl.Arity
}

func (a *arity) UnmarshalYAML(node *yaml.Node) error {
	var exact int
	if node.Decode(&exact) == nil {
		a.a = decl.Exactly(exact)
		return nil
	}

	var pair []int
	if node.Decode(&pair) == nil && len(pair) == 2 {
		a.a = decl.Between(pair[0], pair[1])
		if pair[1] < 0 {
			a.a = decl.AtLeast(pair[0])
		}
		return nil
	}

	return err.Format(ErrBadArity, "line %d: arity must be an integer or a [min, max] pair", node.Line)
}

type opDef struct {
	Name  string `yaml:"name"`
	Arity arity  `yaml:"arity"`
}

type groupDef struct {
	Ops []opDef `yaml:"ops"`
}

type macroDef struct {
	Name  string   `yaml:"name"`
	Arity arity    `yaml:"arity"`
	Limbs []string `yaml:"limbs"`
}

type fileDef struct {
	Name      string     `yaml:"name"`
	Operators []groupDef `yaml:"operators"`
	Macros    []macroDef `yaml:"macros"`
}

// Parse reads a dialect description from YAML text.
func Parse(content []byte) (*Dialect, error) {
	var f fileDef
	e := yaml.Unmarshal(content, &f)
	if ee, is := e.(*err.Error); is {
		return nil, ee
	}
	if e != nil {
		return nil, err.Format(ErrBadFile, "cannot parse dialect: %s", e)
	}

	res := &Dialect{Name: f.Name}
	for i, g := range f.Operators {
		if len(g.Ops) == 0 {
			return nil, err.Format(ErrEmptyGroup, "operator group %d is empty", i+1)
		}

		group := make([]decl.Operator, 0, len(g.Ops))
		for _, op := range g.Ops {
			if op.Name == "" {
				return nil, err.Format(ErrNoName, "operator without a name in group %d", i+1)
			}

			group = append(group, decl.Operator{Name: op.Name, Arity: op.Arity.a})
		}
		res.Operators = append(res.Operators, group)
	}

	for _, m := range f.Macros {
		if m.Name == "" {
			return nil, err.Format(ErrNoName, "macro without a name")
		}

		res.Macros = append(res.Macros, decl.Macro{Name: m.Name, Arity: m.Arity.a, Limbs: m.Limbs})
	}

	return res, nil
}

// Load reads a dialect description from a file.
func Load(name string) (*Dialect, error) {
	content, e := os.ReadFile(name)
	if e != nil {
		return nil, err.Format(ErrBadFile, "cannot read dialect: %s", e)
	}

	return Parse(content)
}

// Registry builds a declaration registry from the dialect.
func (d *Dialect) Registry() *decl.Registry {
	return decl.NewRegistry(d.Operators, d.Macros)
}

package main

import (
	"testing"

	"github.com/ava12/dsl/decl"
	"github.com/ava12/dsl/dialect"
	"github.com/ava12/dsl/internal/test"
)

func TestMakeGo(t *testing.T) {
	d := &dialect.Dialect{
		Name: "calc",
		Operators: [][]decl.Operator{
			{{Name: "*", Arity: decl.Exactly(2)}},
			{{Name: "+", Arity: decl.Between(1, 2)}, {Name: "&", Arity: decl.AtLeast(0)}},
		},
		Macros: []decl.Macro{
			{Name: "with", Arity: decl.Exactly(1)},
			{Name: "task", Arity: decl.Exactly(0), Limbs: []string{"note", "done"}},
		},
	}

	expected := `// Code generated by dslgen. DO NOT EDIT.

package internal

import "github.com/ava12/dsl/decl"

var calcOperators = [][]decl.Operator{
	{
		{Name: "*", Arity: decl.Exactly(2)},
	},
	{
		{Name: "+", Arity: decl.Between(1, 2)},
		{Name: "&", Arity: decl.AtLeast(0)},
	},
}

var calcMacros = []decl.Macro{
	{Name: "with", Arity: decl.Exactly(1)},
	{Name: "task", Arity: decl.Exactly(0), Limbs: []string{"note", "done"}},
}
`

	test.ExpectString(t, expected, string(makeGo("internal", "calc", d)))
}

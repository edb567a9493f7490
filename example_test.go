package dsl_test

import (
	"fmt"

	"github.com/ava12/dsl"
	"github.com/ava12/dsl/decl"
	"github.com/ava12/dsl/eval"
)

// A tiny greeting language: names, string interpolation, and a greet macro
// that runs its body once per argument with name bound to that argument.
func Example() {
	operators := [][]dsl.Operator{}
	macros := []dsl.Macro{
		{Name: "greet", Arity: decl.AtLeast(1)},
	}

	lift := func(text string) (any, error) {
		return text, nil
	}

	concat := func(args []any) (any, error) {
		res := ""
		for _, a := range args {
			res += fmt.Sprint(a)
		}
		return res, nil
	}

	greet := func(c *eval.Call[any]) (any, error) {
		lines := []string{}
		for _, arg := range c.Args {
			name, e := c.Eval(arg)
			if e != nil {
				return nil, e
			}

			names := map[string]eval.Operator[any]{
				decl.Name: func([]any) (any, error) { return name, nil },
			}
			for _, stmt := range c.Body {
				v, e := c.EvalWith(stmt, names, nil)
				if e != nil {
					return nil, e
				}
				lines = append(lines, v.(string))
			}
		}
		return lines, nil
	}

	script := func(c *eval.Call[any]) (any, error) {
		table := map[string]eval.Operator[any]{decl.String: concat}
		ms := map[string]eval.Macro[any]{"greet": greet}
		var res any
		var e error
		for _, stmt := range c.Body {
			res, e = c.EvalWith(stmt, table, ms)
			if e != nil {
				return nil, e
			}
		}
		return res, nil
	}

	compiler := dsl.New(operators, macros, lift, script)
	v, e := compiler.Compile(`greet ("Alice"; "Bob") { "Hello, {name}!" }`)
	if e != nil {
		fmt.Println(e)
		return
	}

	for _, line := range v.([]string) {
		fmt.Println(line)
	}

	// Output:
	// Hello, Alice!
	// Hello, Bob!
}

package eval

import (
	"strconv"
	"strings"
	"testing"

	"github.com/ava12/dsl/ast"
	"github.com/ava12/dsl/decl"
	err "github.com/ava12/dsl/errors"
	"github.com/ava12/dsl/internal/test"
	"github.com/ava12/dsl/parser"
	"github.com/ava12/dsl/source"
)

type value = any

func testRegistry() *decl.Registry {
	return decl.NewRegistry([][]decl.Operator{
		{{Name: "*", Arity: decl.Exactly(2)}},
		{{Name: "+", Arity: decl.Between(1, 2)}, {Name: "-", Arity: decl.Between(1, 2)}},
	}, []decl.Macro{
		{Name: "with", Arity: decl.Exactly(1)},
		{Name: "task", Arity: decl.Exactly(0), Limbs: []string{"note", "done"}},
	})
}

func parse(t *testing.T, text string) []ast.Node {
	stmts, e := parser.New(testRegistry()).Parse(source.New("", text))
	test.ExpectNoError(t, e)
	return stmts
}

func lift(text string) (value, error) {
	f, e := strconv.ParseFloat(text, 64)
	if e == nil {
		return f, nil
	}

	return text, nil
}

func num(args []value) (value, error) {
	return args[0], nil
}

func arith(name string) Operator[value] {
	return func(args []value) (value, error) {
		x := args[0].(float64)
		if len(args) == 1 {
			if name == "-" {
				x = -x
			}
			return x, nil
		}

		y := args[1].(float64)
		switch name {
		case "+":
			x += y
		case "-":
			x -= y
		case "*":
			x *= y
		}
		return x, nil
	}
}

func numScope() Scope[value] {
	return NewScope(map[string]Operator[value]{
		decl.Number: num,
		"+":         arith("+"),
		"-":         arith("-"),
		"*":         arith("*"),
	}, nil)
}

func TestOperations(t *testing.T) {
	ev := New(lift)
	sc := numScope()

	samples := []struct {
		src string
		res float64
	}{
		{"42", 42},
		{"1+2*3", 7},
		{"-(1+2)", -3},
		{"1-2-3", -4},
	}

	for _, s := range samples {
		v, e := ev.Eval(parse(t, s.src)[0], sc)
		test.ExpectNoError(t, e)
		test.Expect(t, v == s.res, s.res, v)
	}
}

func TestMissingReducers(t *testing.T) {
	ev := New(lift)
	sc := NewScope[value](map[string]Operator[value]{decl.Number: num}, nil)

	_, e := ev.Eval(parse(t, "1+2")[0], sc)
	test.ExpectErrorCode(t, ErrNoOperator, e)

	_, e = ev.Eval(parse(t, "with (1) { 2 }")[0], sc)
	test.ExpectErrorCode(t, ErrNoMacro, e)
}

func TestMacroCall(t *testing.T) {
	ev := New(lift)
	var got *Call[value]
	sc := numScope().Override(nil, map[string]Macro[value]{
		"task": func(c *Call[value]) (value, error) {
			got = c
			return nil, nil
		},
	})

	_, e := ev.Eval(parse(t, "task { 1; 2 } note { 3 }")[0], sc)
	test.ExpectNoError(t, e)

	test.ExpectString(t, "task", got.Name)
	test.ExpectInt(t, 0, len(got.Args))
	test.ExpectInt(t, 2, len(got.Body))
	test.ExpectInt(t, 1, len(got.Limbs["note"]))
	done, has := got.Limbs["done"]
	test.Assert(t, has && len(done) == 0, "omitted limb must be present and empty, got %v, %v", done, has)

	v, e := got.Eval(got.Limbs["note"][0])
	test.ExpectNoError(t, e)
	test.Expect(t, v == 3.0, 3.0, v)
}

func TestOverrideVisibility(t *testing.T) {
	ev := New(lift)
	with := func(c *Call[value]) (value, error) {
		bound, e := c.Eval(c.Args[0])
		if e != nil {
			return nil, e
		}

		var res value
		names := map[string]Operator[value]{
			decl.Name: func([]value) (value, error) { return bound, nil },
		}
		for _, stmt := range c.Body {
			res, e = c.EvalWith(stmt, names, nil)
			if e != nil {
				return nil, e
			}
		}
		return res, nil
	}
	sc := numScope().Override(nil, map[string]Macro[value]{"with": with})

	stmts := parse(t, "with (4) { value + 1 }; value")

	v, e := ev.Eval(stmts[0], sc)
	test.ExpectNoError(t, e)
	test.Expect(t, v == 5.0, 5.0, v)

	// the override must not leak to the sibling statement
	_, e = ev.Eval(stmts[1], sc)
	test.ExpectErrorCode(t, ErrNoOperator, e)
}

func TestNestedScopes(t *testing.T) {
	ev := New(lift)
	with := func(c *Call[value]) (value, error) {
		bound, e := c.Eval(c.Args[0])
		if e != nil {
			return nil, e
		}

		names := map[string]Operator[value]{
			decl.Name: func([]value) (value, error) { return bound, nil },
		}
		var res value
		for _, stmt := range c.Body {
			res, e = c.EvalWith(stmt, names, nil)
			if e != nil {
				return nil, e
			}
		}
		return res, nil
	}
	sc := numScope().Override(nil, map[string]Macro[value]{"with": with})

	// the inner binding shadows the outer one inside its body only
	v, e := ev.Eval(parse(t, "with (1) { value + with (10) { value }; value }")[0], sc)
	test.ExpectNoError(t, e)
	test.Expect(t, v == 1.0, 1.0, v)
}

func TestErrorTrace(t *testing.T) {
	ev := New(lift)
	boom := func([]value) (value, error) {
		return nil, err.Format(err.EvalErrors+99, "boom")
	}
	sc := numScope().Override(map[string]Operator[value]{"+": boom}, nil)

	_, e := ev.Eval(parse(t, "-(1+2)")[0], sc)
	test.Assert(t, e != nil, "expecting an error")
	test.ExpectErrorCode(t, err.EvalErrors+99, e)

	lines := strings.Split(e.Error(), "\n")
	test.ExpectInt(t, 3, len(lines))
	test.ExpectString(t, `At (1, 1) : "-(1+2)" :`, lines[0])
	test.ExpectString(t, `At (1, 3) : "1+2" :`, lines[1])
	test.ExpectString(t, "boom", lines[2])
}

func TestForeignErrorTrace(t *testing.T) {
	ev := New(lift)
	boom := func([]value) (value, error) {
		return nil, strconv.ErrRange
	}
	sc := numScope().Override(map[string]Operator[value]{"+": boom}, nil)

	_, e := ev.Eval(parse(t, "1+2")[0], sc)
	test.ExpectErrorCode(t, ErrReduce, e)
	test.ExpectString(t, `At (1, 1) : "1+2" : `+strconv.ErrRange.Error(), e.Error())
}

func TestScopeImmutability(t *testing.T) {
	base := numScope()
	derived := base.Override(map[string]Operator[value]{"+": nil, "?": nil}, nil)

	red, has := base.Operator("+")
	test.Assert(t, has && red != nil, "parent scope must not see overrides")
	_, has = base.Operator("?")
	test.Assert(t, !has, "parent scope must not see added names")

	red, _ = derived.Operator("+")
	test.Assert(t, red == nil, "derived scope must see the override")

	ops := base.Operators()
	delete(ops, "+")
	_, has = base.Operator("+")
	test.Assert(t, has, "table copies must be detached from the scope")
}

func TestLiftError(t *testing.T) {
	ev := New(func(text string) (value, error) {
		return nil, err.Format(err.EvalErrors+98, "bad literal %q", text)
	})

	_, e := ev.Eval(parse(t, "7")[0], numScope())
	test.ExpectErrorCode(t, err.EvalErrors+98, e)
	ee := e.(*err.Error)
	test.Assert(t, ee.Line == 1 && ee.Col == 1, "expecting position (1, 1), got (%d, %d)", ee.Line, ee.Col)
}

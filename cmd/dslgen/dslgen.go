/*
dslgen is a console utility working with YAML dialect descriptions.

	dslgen gen [-o <name>] [-p <name>] [-v <name>] [-w] <dialect.yaml>
	dslgen dump -g <dialect.yaml> <script>

gen translates a dialect description into a Go source file declaring the
operator groups and macros, ready to pass to dsl.New. -w keeps dslgen
running and regenerates the output whenever the dialect file changes.

dump parses a script with the given dialect and prints its syntax tree, one
statement per line. Useful for checking precedence and macro declarations
before writing any reducers.
*/
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fsnotify/fsnotify"

	"github.com/ava12/dsl/ast"
	"github.com/ava12/dsl/decl"
	"github.com/ava12/dsl/dialect"
	"github.com/ava12/dsl/parser"
	"github.com/ava12/dsl/source"
)

type genCmd struct {
	Out   string `short:"o" help:"Output file name, default is the input name with a .go suffix."`
	Pkg   string `short:"p" help:"Go package name, default is the directory name of the output file."`
	Var   string `short:"v" help:"Generated variable name prefix, default is the dialect name."`
	Watch bool   `short:"w" help:"Keep running and regenerate whenever the dialect file changes."`
	File  string `arg:"" type:"existingfile" help:"Dialect description file."`
}

type dumpCmd struct {
	Dialect string `short:"g" required:"" type:"existingfile" help:"Dialect description file."`
	Script  string `arg:"" type:"existingfile" help:"Script to parse."`
}

var cli struct {
	Gen  genCmd  `cmd:"" help:"Generate Go declaration source from a dialect file."`
	Dump dumpCmd `cmd:"" help:"Parse a script with a dialect and print its syntax tree."`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("dslgen"),
		kong.Description("dialect description utility"),
		kong.UsageOnError(),
	)
	ctx.FatalIfErrorf(ctx.Run())
}

func (c *genCmd) Run() error {
	if c.Out == "" {
		ext := filepath.Ext(c.File)
		c.Out = c.File[:len(c.File)-len(ext)] + ".go"
	}
	if c.Pkg == "" {
		abs, e := filepath.Abs(c.Out)
		if e != nil {
			return e
		}
		c.Pkg = filepath.Base(filepath.Dir(abs))
	}

	e := c.generate()
	if e != nil || !c.Watch {
		return e
	}

	return c.watch()
}

func (c *genCmd) generate() error {
	d, e := dialect.Load(c.File)
	if e != nil {
		return e
	}

	prefix := c.Var
	if prefix == "" {
		prefix = d.Name
	}
	if prefix == "" {
		prefix = "dialect"
	}

	return os.WriteFile(c.Out, makeGo(c.Pkg, prefix, d), 0o666)
}

// watch regenerates the output on every change of the dialect file. The
// directory is watched rather than the file itself, so that editors that
// replace the file on save do not break the watch.
func (c *genCmd) watch() error {
	w, e := fsnotify.NewWatcher()
	if e != nil {
		return e
	}
	defer w.Close()

	e = w.Add(filepath.Dir(c.File))
	if e != nil {
		return e
	}

	base := filepath.Base(c.File)
	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != base || !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}

			e = c.generate()
			if e == nil {
				fmt.Fprintf(os.Stderr, "dslgen: regenerated %s\n", c.Out)
			} else {
				fmt.Fprintf(os.Stderr, "dslgen: %s\n", e)
			}

		case e, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return e
		}
	}
}

func makeGo(pkg, prefix string, d *dialect.Dialect) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "// Code generated by dslgen. DO NOT EDIT.\n\npackage %s\n\n", pkg)
	b.WriteString("import \"github.com/ava12/dsl/decl\"\n\n")

	fmt.Fprintf(&b, "var %sOperators = [][]decl.Operator{\n", prefix)
	for _, group := range d.Operators {
		b.WriteString("\t{\n")
		for _, op := range group {
			fmt.Fprintf(&b, "\t\t{Name: %q, Arity: %s},\n", op.Name, arityGo(op.Arity))
		}
		b.WriteString("\t},\n")
	}
	b.WriteString("}\n\n")

	fmt.Fprintf(&b, "var %sMacros = []decl.Macro{\n", prefix)
	for _, m := range d.Macros {
		fmt.Fprintf(&b, "\t{Name: %q, Arity: %s", m.Name, arityGo(m.Arity))
		if len(m.Limbs) > 0 {
			b.WriteString(", Limbs: []string{")
			for i, l := range m.Limbs {
				if i > 0 {
					b.WriteString(", ")
				}
				fmt.Fprintf(&b, "%q", l)
			}
			b.WriteString("}")
		}
		b.WriteString("},\n")
	}
	b.WriteString("}\n")

	return []byte(b.String())
}

func arityGo(a decl.Arity) string {
	switch {
	case a.Max == decl.Unbounded:
		return fmt.Sprintf("decl.AtLeast(%d)", a.Min)
	case a.Min == a.Max:
		return fmt.Sprintf("decl.Exactly(%d)", a.Min)
	default:
		return fmt.Sprintf("decl.Between(%d, %d)", a.Min, a.Max)
	}
}

func (c *dumpCmd) Run() error {
	d, e := dialect.Load(c.Dialect)
	if e != nil {
		return e
	}

	content, e := os.ReadFile(c.Script)
	if e != nil {
		return e
	}

	stmts, e := parser.New(d.Registry()).Parse(source.New(c.Script, string(content)))
	if e != nil {
		return e
	}

	for _, stmt := range stmts {
		fmt.Println(ast.Dump(stmt))
	}
	return nil
}

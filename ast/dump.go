package ast

import (
	"sort"
	"strconv"
	"strings"
)

// Dump renders a node as a single line of nested s-expressions, e.g.
// (+ (#number "1") (#number "2")). The output is stable and meant for tests,
// debugging, and the dslgen dump mode.
func Dump(n Node) string {
	var b strings.Builder
	dump(&b, n)
	return b.String()
}

// DumpSeq renders a statement sequence, statements joined with "; ".
func DumpSeq(nodes []Node) string {
	var b strings.Builder
	dumpSeq(&b, nodes)
	return b.String()
}

func dumpSeq(b *strings.Builder, nodes []Node) {
	for i, n := range nodes {
		if i > 0 {
			b.WriteString("; ")
		}
		dump(b, n)
	}
}

func dump(b *strings.Builder, n Node) {
	switch node := n.(type) {
	case *Literal:
		b.WriteString(strconv.Quote(node.Value))

	case *Operation:
		b.WriteByte('(')
		b.WriteString(node.Operator)
		for _, op := range node.Operands {
			b.WriteByte(' ')
			dump(b, op)
		}
		b.WriteByte(')')

	case *Macro:
		b.WriteString("(macro ")
		b.WriteString(strconv.Quote(node.Name))
		b.WriteString(" [")
		dumpSeq(b, node.Args)
		b.WriteString("] [")
		dumpSeq(b, node.Body)
		b.WriteByte(']')

		limbs := make([]string, 0, len(node.Limbs))
		for name := range node.Limbs {
			limbs = append(limbs, name)
		}
		sort.Strings(limbs)
		for _, name := range limbs {
			b.WriteByte(' ')
			b.WriteString(name)
			b.WriteString(":[")
			dumpSeq(b, node.Limbs[name])
			b.WriteByte(']')
		}
		b.WriteByte(')')
	}
}

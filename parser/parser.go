// Package parser implements the character-level recursive-descent parser:
// literals, interpolated strings, macro invocations with limbs, bracket
// packs, and a precedence-climbing expression grammar driven by the
// declaration registry. The parser validates operator and macro names,
// arities, and limb names while building the tree; evaluation never sees an
// invalid node.
package parser

import (
	"unicode/utf8"

	"github.com/ava12/dsl/ast"
	"github.com/ava12/dsl/decl"
	"github.com/ava12/dsl/scan"
	"github.com/ava12/dsl/source"
)

// maxDepth bounds expression nesting so that adversarial input fails with
// ErrTooDeep instead of exhausting the native stack.
const maxDepth = 256

// Parser parses scripts against one declaration registry. Parser itself is
// immutable and may be shared; every Parse call uses its own state.
type Parser struct {
	reg *decl.Registry
}

// New creates new Parser for the given registry.
func New(reg *decl.Registry) *Parser {
	return &Parser{reg}
}

// Parse parses a whole source into its top-level statement sequence.
// The first error aborts parsing, there is no recovery.
func (p *Parser) Parse(src *source.Source) ([]ast.Node, error) {
	pc := &parseContext{reg: p.reg, src: src, text: src.Content()}
	stmts, e := pc.parseStatements(0)
	if e != nil {
		return nil, e
	}

	if !scan.IsEnd(pc.text, pc.pos) {
		return nil, unexpectedCharError(pc.at(pc.pos), "';' or end of input")
	}
	return stmts, nil
}

type parseContext struct {
	reg   *decl.Registry
	src   *source.Source
	text  string
	pos   int
	end   int // position right after the last consumed token
	depth int
}

// take consumes size bytes of token text and records the new excerpt end.
// Flushed whitespace and comments advance pos without touching end, so node
// metadata never includes trailing insignificant characters.
func (pc *parseContext) take(size int) {
	pc.pos += size
	pc.end = pc.pos
}

func (pc *parseContext) flush() error {
	pos, e := scan.Flush(pc.src, pc.pos)
	pc.pos = pos
	return e
}

func (pc *parseContext) at(pos int) source.Pos {
	return source.NewPos(pc.src, pos)
}

func (pc *parseContext) meta(start int) ast.Meta {
	return ast.NewMeta(pc.src, start, pc.end)
}

func (pc *parseContext) peek() byte {
	if scan.IsEnd(pc.text, pc.pos) {
		return 0
	}

	return pc.text[pc.pos]
}

// operation builds an Operation node, validating the operator name and the
// operand count. at is the position reported on failure.
func (pc *parseContext) operation(start, at int, name string, operands []ast.Node) (ast.Node, error) {
	d, has := pc.reg.Operator(name)
	if !has {
		return nil, unknownOperatorError(pc.at(at), name)
	}
	if !d.Arity.Contains(len(operands)) {
		return nil, arityError(pc.at(at), name, d.Arity.String(), len(operands))
	}
	return ast.NewOperation(pc.meta(start), name, operands), nil
}

// parseStatements parses a semicolon-separated expression sequence up to the
// term byte (0 meaning end of input). The terminator is not consumed. The
// sequence may be empty, and the last separator is optional.
func (pc *parseContext) parseStatements(term byte) ([]ast.Node, error) {
	res := []ast.Node{}
	e := pc.flush()
	if e != nil {
		return nil, e
	}

	for {
		if term == 0 && scan.IsEnd(pc.text, pc.pos) || term != 0 && pc.peek() == term {
			return res, nil
		}

		n, e := pc.parseExpr(0)
		if e != nil {
			return nil, e
		}

		res = append(res, n)
		e = pc.flush()
		if e != nil {
			return nil, e
		}

		if term == 0 && scan.IsEnd(pc.text, pc.pos) || term != 0 && pc.peek() == term {
			return res, nil
		}

		if pc.peek() != ';' {
			if scan.IsEnd(pc.text, pc.pos) {
				return nil, unexpectedEoiError(pc.at(pc.pos), "';' or '"+string(term)+"'")
			}
			return nil, unexpectedCharError(pc.at(pc.pos), "';'")
		}

		pc.take(1)
		e = pc.flush()
		if e != nil {
			return nil, e
		}
	}
}

// parseExpr parses one expression by precedence climbing: it takes a single
// operand and keeps folding in operators that bind tighter than minRank.
// Call and index groups are treated as operators using the rank declared for
// #call and #index. Same-rank operators associate to the left because the
// right-hand side is parsed only up to, not including, the operator's own
// rank.
func (pc *parseContext) parseExpr(minRank int) (ast.Node, error) {
	pc.depth++
	defer func() { pc.depth-- }()
	if pc.depth > maxDepth {
		return nil, tooDeepError(pc.at(pc.pos))
	}

	e := pc.flush()
	if e != nil {
		return nil, e
	}

	start := pc.pos
	left, e := pc.parseOperand()
	if e != nil {
		return nil, e
	}

	for {
		e = pc.flush()
		if e != nil {
			return nil, e
		}

		var name string
		var size int
		switch {
		case pc.peek() == '(':
			name = decl.Call
		case pc.peek() == '[':
			name = decl.Index
		case scan.IsOperatorStart(pc.text, pc.pos):
			name, size = pc.peekOperator()
		default:
			return left, nil
		}

		d, has := pc.reg.Operator(name)
		if !has {
			return nil, unknownOperatorError(pc.at(pc.pos), name)
		}
		if d.Rank <= minRank {
			return left, nil
		}

		opAt := pc.pos
		if name == decl.Call || name == decl.Index {
			open, close := byte('('), byte(')')
			if name == decl.Index {
				open, close = '[', ']'
			}
			args, e := pc.parseGroup(open, close)
			if e != nil {
				return nil, e
			}

			left, e = pc.operation(start, opAt, name, append([]ast.Node{left}, args...))
			if e != nil {
				return nil, e
			}
			continue
		}

		pc.take(size)
		right, e := pc.parseExpr(d.Rank)
		if e != nil {
			return nil, e
		}

		left, e = pc.operation(start, opAt, name, []ast.Node{left, right})
		if e != nil {
			return nil, e
		}
	}
}

// parseOperand parses a literal, a name or macro form, a parenthesized
// expression, a bracket pack, or a unary operator application. The position
// is already flushed.
func (pc *parseContext) parseOperand() (ast.Node, error) {
	start := pc.pos
	switch {
	case scan.IsEnd(pc.text, pc.pos):
		return nil, unexpectedEoiError(pc.at(pc.pos), "operand")

	case scan.IsDigit(pc.text, pc.pos):
		return pc.parseNumber()

	case pc.peek() == '"':
		return pc.parseString()

	case scan.IsLetter(pc.text, pc.pos):
		return pc.parseNameOrMacro()

	case pc.peek() == '(':
		pc.take(1)
		n, e := pc.parseExpr(0)
		if e == nil {
			e = pc.flush()
		}
		if e == nil {
			e = pc.expect(')', "')'")
		}
		return n, e

	case pc.peek() == '{':
		return pc.parseMacroTail(start, decl.SilentMacro, nil, nil)

	case pc.peek() == '[':
		return pc.parsePack()

	case scan.IsOperatorStart(pc.text, pc.pos):
		name, size := pc.peekOperator()
		d, has := pc.reg.Operator(name)
		if !has {
			return nil, unknownOperatorError(pc.at(pc.pos), name)
		}

		pc.take(size)
		right, e := pc.parseExpr(d.Rank)
		if e != nil {
			return nil, e
		}
		return pc.operation(start, start, name, []ast.Node{right})

	default:
		return nil, unexpectedCharError(pc.at(pc.pos), "operand")
	}
}

// parsePostfix folds call and index groups following an operand, left to
// right. Used where the full climbing loop does not apply, i.e. for pack
// operands.
func (pc *parseContext) parsePostfix(start int, left ast.Node) (ast.Node, error) {
	for {
		e := pc.flush()
		if e != nil {
			return nil, e
		}

		var name string
		var open, close byte
		switch pc.peek() {
		case '(':
			name, open, close = decl.Call, '(', ')'
		case '[':
			name, open, close = decl.Index, '[', ']'
		default:
			return left, nil
		}

		opAt := pc.pos
		args, e := pc.parseGroup(open, close)
		if e != nil {
			return nil, e
		}

		left, e = pc.operation(start, opAt, name, append([]ast.Node{left}, args...))
		if e != nil {
			return nil, e
		}
	}
}

func (pc *parseContext) expect(c byte, what string) error {
	if scan.IsEnd(pc.text, pc.pos) {
		return unexpectedEoiError(pc.at(pc.pos), what)
	}
	if pc.text[pc.pos] != c {
		return unexpectedCharError(pc.at(pc.pos), what)
	}

	pc.take(1)
	return nil
}

// peekOperator returns the operator name at the current position and its
// byte length, without consuming it: either # followed by letters, or a
// maximal run of symbolic operator runes.
func (pc *parseContext) peekOperator() (string, int) {
	pos := pc.pos
	if pc.text[pos] == '#' {
		pos++
		for scan.IsLetter(pc.text, pos) && pc.text[pos] != '_' {
			_, size := utf8.DecodeRuneInString(pc.text[pos:])
			pos += size
		}
	} else {
		for scan.IsOperatorChar(pc.text, pos) {
			_, size := utf8.DecodeRuneInString(pc.text[pos:])
			pos += size
		}
	}
	return pc.text[pc.pos:pos], pos - pc.pos
}

// scanIdent consumes an identifier: a letter or underscore followed by
// letters, underscores, and digits.
func (pc *parseContext) scanIdent() string {
	start := pc.pos
	for scan.IsLetter(pc.text, pc.pos) || scan.IsDigit(pc.text, pc.pos) {
		_, size := utf8.DecodeRuneInString(pc.text[pc.pos:])
		pc.take(size)
	}
	return pc.text[start:pc.pos]
}

// parseNumber parses digits with an optional fraction. The raw text becomes
// the single literal operand of a #number operation.
func (pc *parseContext) parseNumber() (ast.Node, error) {
	start := pc.pos
	for scan.IsDigit(pc.text, pc.pos) {
		pc.take(1)
	}
	if pc.peek() == '.' && scan.IsDigit(pc.text, pc.pos+1) {
		pc.take(1)
		for scan.IsDigit(pc.text, pc.pos) {
			pc.take(1)
		}
	}

	lit := ast.NewLiteral(pc.meta(start), pc.text[start:pc.pos])
	return pc.operation(start, start, decl.Number, []ast.Node{lit})
}

// parseString parses a "..." literal with {expr} interpolation. The #string
// operands strictly alternate literal chunk, expression, literal chunk, and
// both the first and the last operand are chunks, so the operand count is
// always odd. There is no escape mechanism: a quote always terminates the
// string and a brace always opens an expression.
func (pc *parseContext) parseString() (ast.Node, error) {
	start := pc.pos
	pc.take(1)
	operands := []ast.Node{}
	chunkStart := pc.pos
	for {
		if scan.IsEnd(pc.text, pc.pos) {
			return nil, unterminatedStringError(pc.at(start))
		}

		c := pc.text[pc.pos]
		if c != '"' && c != '{' {
			pc.take(1)
			continue
		}

		chunk := pc.text[chunkStart:pc.pos]
		operands = append(operands, ast.NewLiteral(ast.NewMeta(pc.src, chunkStart, pc.pos), chunk))
		pc.take(1)
		if c == '"' {
			return pc.operation(start, start, decl.String, operands)
		}

		expr, e := pc.parseExpr(0)
		if e == nil {
			e = pc.flush()
		}
		if e == nil {
			e = pc.expect('}', "'}'")
		}
		if e != nil {
			return nil, e
		}

		operands = append(operands, expr)
		chunkStart = pc.pos
	}
}

// parseGroup parses a delimited, semicolon-separated sequence, consuming
// both delimiters.
func (pc *parseContext) parseGroup(open, close byte) ([]ast.Node, error) {
	pc.take(1)
	res, e := pc.parseStatements(close)
	if e != nil {
		return nil, e
	}

	e = pc.expect(close, "'"+string(close)+"'")
	if e != nil {
		return nil, e
	}
	return res, nil
}

// parseNameOrMacro parses constructs that start with an identifier: a bare
// name, a call with arguments, a macro invocation, or the macro-binding
// sugar.
func (pc *parseContext) parseNameOrMacro() (ast.Node, error) {
	start := pc.pos
	name := pc.scanIdent()
	nameEnd := pc.pos
	e := pc.flush()
	if e != nil {
		return nil, e
	}

	var bound *ast.Literal
	if scan.IsLetter(pc.text, pc.pos) {
		boundAt := pc.pos
		boundName := pc.scanIdent()
		bound = ast.NewLiteral(ast.NewMeta(pc.src, boundAt, pc.pos), boundName)
		e = pc.flush()
		if e != nil {
			return nil, e
		}
	}

	var args []ast.Node
	if pc.peek() == '(' {
		args, e = pc.parseGroup('(', ')')
		if e == nil {
			e = pc.flush()
		}
		if e != nil {
			return nil, e
		}
	}

	if pc.peek() == '{' {
		return pc.parseMacroTail(start, name, bound, args)
	}

	if bound != nil {
		return nil, bindTargetError(pc.at(pc.pos))
	}

	lit := ast.NewLiteral(ast.NewMeta(pc.src, start, nameEnd), name)
	nameNode, e := pc.operation(start, start, decl.Name, []ast.Node{lit})
	if e != nil || args == nil {
		return nameNode, e
	}

	return pc.operation(start, start, decl.Call, append([]ast.Node{nameNode}, args...))
}

// parseMacroTail parses the body and limbs of a macro invocation whose head
// (name, optional binding target, optional arguments) is already consumed
// and whose next character is {. The macro name and the argument count are
// validated against the registry, every declared limb missing from the
// source is defaulted to an empty sequence, and binding sugar wraps the
// result into a #bind operation.
func (pc *parseContext) parseMacroTail(start int, name string, bound *ast.Literal, args []ast.Node) (ast.Node, error) {
	d, has := pc.reg.Macro(name)
	if !has {
		return nil, unknownMacroError(pc.at(start), name)
	}
	if !d.Arity.Contains(len(args)) {
		return nil, arityError(pc.at(start), "macro "+name, d.Arity.String(), len(args))
	}

	body, e := pc.parseGroup('{', '}')
	if e != nil {
		return nil, e
	}

	limbs := make(map[string][]ast.Node, len(d.Limbs))
	for {
		e = pc.flush()
		if e != nil {
			return nil, e
		}
		if !scan.IsLetter(pc.text, pc.pos) {
			break
		}

		limbAt := pc.pos
		limb := pc.scanIdent()
		if !d.HasLimb(limb) {
			return nil, unknownLimbError(pc.at(limbAt), name, limb)
		}
		if _, dup := limbs[limb]; dup {
			return nil, duplicateLimbError(pc.at(limbAt), limb)
		}

		e = pc.flush()
		if e != nil {
			return nil, e
		}
		if pc.peek() != '{' {
			return nil, unexpectedCharError(pc.at(pc.pos), "'{'")
		}

		limbs[limb], e = pc.parseGroup('{', '}')
		if e != nil {
			return nil, e
		}
	}

	for limb := range d.Limbs {
		if _, has := limbs[limb]; !has {
			limbs[limb] = []ast.Node{}
		}
	}

	if args == nil {
		args = []ast.Node{}
	}
	macro := ast.NewMacro(pc.meta(start), name, args, body, limbs)
	if bound == nil {
		return macro, nil
	}

	return pc.operation(start, start, decl.Bind, []ast.Node{bound, macro})
}

// parsePack parses a bracket pack. An operator right after the opening
// bracket selects the prefix form, where one operator is applied to a
// semicolon-separated operand sequence (possibly empty). Otherwise the infix
// form alternates operands with occurrences of one single operator, with an
// optional dangling operator before the closing bracket.
func (pc *parseContext) parsePack() (ast.Node, error) {
	start := pc.pos
	pc.take(1)
	e := pc.flush()
	if e != nil {
		return nil, e
	}

	if scan.IsOperatorStart(pc.text, pc.pos) {
		opAt := pc.pos
		name, size := pc.peekOperator()
		pc.take(size)
		operands, e := pc.parseStatements(']')
		if e == nil {
			e = pc.expect(']', "']'")
		}
		if e != nil {
			return nil, e
		}
		return pc.operation(start, opAt, name, operands)
	}

	if pc.peek() == ']' {
		return nil, badPackError(pc.at(start), "empty pack")
	}

	name := ""
	opAt := start
	operands := []ast.Node{}
	for {
		opStart := pc.pos
		n, e := pc.parseOperand()
		if e != nil {
			return nil, e
		}

		n, e = pc.parsePostfix(opStart, n)
		if e != nil {
			return nil, e
		}

		operands = append(operands, n)
		e = pc.flush()
		if e != nil {
			return nil, e
		}

		if pc.peek() == ']' {
			break
		}
		if !scan.IsOperatorStart(pc.text, pc.pos) {
			return nil, unexpectedCharError(pc.at(pc.pos), "operator or ']'")
		}

		cur, size := pc.peekOperator()
		if name == "" {
			name = cur
			opAt = pc.pos
			if _, has := pc.reg.Operator(cur); !has {
				return nil, unknownOperatorError(pc.at(pc.pos), cur)
			}
		} else if cur != name {
			return nil, mixedPackError(pc.at(pc.pos), name, cur)
		}

		pc.take(size)
		e = pc.flush()
		if e != nil {
			return nil, e
		}

		// dangling operator right before the bracket is suffix-unary shorthand
		if pc.peek() == ']' {
			break
		}
	}

	pc.take(1)
	if name == "" {
		return nil, badPackError(pc.at(start), "pack needs an operator")
	}
	return pc.operation(start, opAt, name, operands)
}

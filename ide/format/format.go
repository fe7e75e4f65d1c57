// Package format renders a parsed Expr back into canonical formula
// text: normalized operator spacing, minimal parenthesization (only
// where precedence would otherwise change meaning). Comments are not
// kept, and string literals are re-quoted from their decoded value.
// Running it twice is a no-op.
package format

import (
	"strings"

	"github.com/joverzhang/formulang/compiler/parser"
)

// Expr renders e as canonical formula text, with no trailing newline —
// used recursively and by tests that compare bare expression text.
func Expr(e parser.Expr) string {
	return fmtExpr(e)
}

// Format renders e terminated by a single "\n", the contract the
// public façade and CLI `format` command rely on.
func Format(e parser.Expr) string {
	return Expr(e) + "\n"
}

// prec mirrors the parser's nine precedence levels, used only to
// decide where parentheses are structurally required.
func prec(e parser.Expr) int {
	switch n := e.(type) {
	case *parser.Ternary:
		return 1
	case *parser.Binary:
		switch n.Op {
		case parser.OpOr:
			return 2
		case parser.OpAnd:
			return 3
		case parser.OpEq, parser.OpNe, parser.OpLt, parser.OpLe, parser.OpGt, parser.OpGe:
			return 4
		case parser.OpAdd, parser.OpSub:
			return 5
		case parser.OpMul, parser.OpDiv, parser.OpMod:
			return 6
		case parser.OpPow:
			return 8
		}
		return 9
	case *parser.Unary:
		return 7
	default: // Literal, Ident, Call, Postfix, List
		return 9
	}
}

func fmtExpr(e parser.Expr) string {
	switch n := e.(type) {
	case *parser.Literal:
		return fmtLiteral(n)
	case *parser.Ident:
		return n.Name
	case *parser.Unary:
		return fmtUnary(n)
	case *parser.Binary:
		return fmtBinary(n)
	case *parser.Ternary:
		return fmtTernary(n)
	case *parser.Call:
		return fmtCall(n.Callee, n.Args)
	case *parser.Postfix:
		return fmtPostfix(n)
	case *parser.List:
		return fmtList(n)
	case *parser.ErrorExpr:
		return ""
	default:
		return ""
	}
}

// fmtChild renders e in an operand position of an operator with
// precedence myPrec, adding parentheses only when omitting them would
// change how the text reparses: a strictly lower-precedence child
// always needs them; an equal-precedence child needs them only on the
// side where reassociating would change meaning (the right side of a
// left-associative operator, the left side of a right-associative one).
func fmtChild(e parser.Expr, myPrec int, isRight, leftAssoc bool) string {
	cp := prec(e)
	needParens := cp < myPrec ||
		(isRight && leftAssoc && cp == myPrec) ||
		(!isRight && !leftAssoc && cp == myPrec)
	s := fmtExpr(e)
	if needParens {
		return "(" + s + ")"
	}
	return s
}

func opText(op parser.BinOp) string {
	switch op {
	case parser.OpOr:
		return "||"
	case parser.OpAnd:
		return "&&"
	case parser.OpEq:
		return "=="
	case parser.OpNe:
		return "!="
	case parser.OpLt:
		return "<"
	case parser.OpLe:
		return "<="
	case parser.OpGt:
		return ">"
	case parser.OpGe:
		return ">="
	case parser.OpAdd:
		return "+"
	case parser.OpSub:
		return "-"
	case parser.OpMul:
		return "*"
	case parser.OpDiv:
		return "/"
	case parser.OpMod:
		return "%"
	case parser.OpPow:
		return "^"
	default:
		return "?"
	}
}

func fmtBinary(n *parser.Binary) string {
	myPrec := prec(n)
	leftAssoc := n.Op != parser.OpPow
	left := fmtChild(n.Left, myPrec, false, leftAssoc)
	right := fmtChild(n.Right, myPrec, true, leftAssoc)
	return left + " " + opText(n.Op) + " " + right
}

// fmtUnary preserves the source's choice of spelling ("!" vs "not") so
// formatting never silently rewrites one into the other.
func fmtUnary(n *parser.Unary) string {
	operand := fmtChild(n.X, 7, false, true)
	if n.Op == parser.UnNeg {
		return "-" + operand
	}
	if n.UseWord {
		return "not " + operand
	}
	return "!" + operand
}

// fmtTernary needs no parentheses around its then/else branches: both
// are parsed greedily by recursing back into the full expression
// grammar, so they round-trip without help. The condition does need
// parentheses if it is itself a ternary, which the parser produces from
// a parenthesized ternary in condition position.
func fmtTernary(n *parser.Ternary) string {
	cond := fmtExpr(n.Cond)
	if prec(n.Cond) <= 1 {
		cond = "(" + cond + ")"
	}
	then := fmtExpr(n.Then)
	els := fmtExpr(n.Else)
	return cond + " ? " + then + " : " + els
}

func fmtArgs(args []parser.Expr) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = fmtExpr(a)
	}
	return strings.Join(parts, ", ")
}

func fmtCall(name string, args []parser.Expr) string {
	return name + "(" + fmtArgs(args) + ")"
}

func fmtPostfix(n *parser.Postfix) string {
	recv := fmtExpr(n.Receiver)
	if prec(n.Receiver) < 9 {
		recv = "(" + recv + ")"
	}
	return recv + "." + n.Method + "(" + fmtArgs(n.Args) + ")"
}

func fmtList(n *parser.List) string {
	return "[" + fmtArgs(n.Items) + "]"
}

func fmtLiteral(n *parser.Literal) string {
	switch n.Kind {
	case parser.LitBool:
		if n.Bool {
			return "true"
		}
		return "false"
	case parser.LitNumber:
		return n.Text
	default:
		return quoteString(n.Str)
	}
}

func quoteString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

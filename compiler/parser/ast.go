// Package parser turns a formula lexer.Token stream into an Expr tree,
// recovering from common mistakes (a missing closing delimiter, a
// missing or trailing comma, a mismatched delimiter) instead of
// aborting at the first error.
package parser

import "github.com/joverzhang/formulang/span"

// NodeId is a dense, monotonically increasing identifier assigned to
// every Expr as it is built, in parse order. Nothing downstream needs
// to hash nodes to look them up by identity.
type NodeId int

// Expr is one node of the formula's abstract syntax tree. Each concrete
// type below corresponds to one of the language's syntactic forms;
// callers normally type-switch on the concrete type rather than adding
// behavior to the interface.
type Expr interface {
	ID() NodeId
	Span() span.Span
	exprNode()
}

type baseExpr struct {
	id NodeId
	sp span.Span
}

func (b baseExpr) ID() NodeId      { return b.id }
func (b baseExpr) Span() span.Span { return b.sp }
func (baseExpr) exprNode()         {}

// LitKind distinguishes the three literal forms.
type LitKind int

const (
	LitBool LitKind = iota
	LitNumber
	LitString
)

// Literal is a boolean, number, or string constant.
type Literal struct {
	baseExpr
	Kind LitKind
	Text string // exact source text, e.g. "3.14" or the raw quoted string
	Bool bool
	Str  string // decoded value, only meaningful when Kind == LitString
}

// Ident is a bare name reference (a variable the surrounding context
// resolves, not a function call).
type Ident struct {
	baseExpr
	Name string
}

// UnOp identifies a prefix unary operator.
type UnOp int

const (
	UnNot UnOp = iota // '!' or 'not'
	UnNeg             // '-'
)

// Unary is a prefix operator applied to one operand.
type Unary struct {
	baseExpr
	Op      UnOp
	UseWord bool // true if the source spelled it "not" rather than "!"
	OpSpan  span.Span
	X       Expr
}

// BinOp identifies an infix binary operator.
type BinOp int

const (
	OpOr BinOp = iota
	OpAnd
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow
)

// Binary is an infix binary expression.
type Binary struct {
	baseExpr
	Op          BinOp
	OpSpan      span.Span
	Left, Right Expr
}

// Ternary is the right-associative `cond ? then : else` form.
type Ternary struct {
	baseExpr
	Cond, Then, Else Expr
}

// Call is a direct function call, `name(args...)`.
type Call struct {
	baseExpr
	Callee     string
	CalleeSpan span.Span
	Args       []Expr
}

// List is a `[item, item, ...]` list literal.
type List struct {
	baseExpr
	Items []Expr
}

// Postfix is a method-style call on a receiver, `receiver.method(args)`.
type Postfix struct {
	baseExpr
	Receiver   Expr
	Method     string
	MethodSpan span.Span
	Args       []Expr
}

// ErrorExpr stands in for a syntactic position where no valid
// expression could be parsed. It lets the parser always return a
// complete tree even when recovery could not produce anything
// meaningful at that position.
type ErrorExpr struct {
	baseExpr
}

func withSpan(e Expr, sp span.Span) Expr {
	switch n := e.(type) {
	case *Literal:
		c := *n
		c.sp = sp
		return &c
	case *Ident:
		c := *n
		c.sp = sp
		return &c
	case *Unary:
		c := *n
		c.sp = sp
		return &c
	case *Binary:
		c := *n
		c.sp = sp
		return &c
	case *Ternary:
		c := *n
		c.sp = sp
		return &c
	case *Call:
		c := *n
		c.sp = sp
		return &c
	case *List:
		c := *n
		c.sp = sp
		return &c
	case *Postfix:
		c := *n
		c.sp = sp
		return &c
	case *ErrorExpr:
		c := *n
		c.sp = sp
		return &c
	default:
		return e
	}
}

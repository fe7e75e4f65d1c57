package semantic

import (
	"fmt"

	"github.com/joverzhang/formulang/compiler/parser"
	"github.com/joverzhang/formulang/errors"
	"github.com/joverzhang/formulang/span"
)

// AnalyzeExpr walks a parsed Expr tree, assigning every node an
// inferred Ty and collecting diagnostics for every type mismatch or
// unresolved name it finds along the way. It never stops at the first
// problem: every subtree is still visited and typed (falling back to
// Unknown wherever a node couldn't be resolved), so callers always get
// a best-effort type for the whole expression.
func AnalyzeExpr(e parser.Expr, ctx Context) (Ty, []errors.Diagnostic) {
	var diags []errors.Diagnostic
	ty := analyze(e, ctx, &diags)
	return ty, diags
}

func diag(msg string, sp span.Span) errors.Diagnostic {
	return errors.Diagnostic{Message: msg, Span: sp}
}

func analyze(e parser.Expr, ctx Context, diags *[]errors.Diagnostic) Ty {
	switch n := e.(type) {
	case *parser.Literal:
		switch n.Kind {
		case parser.LitBool:
			return Boolean
		case parser.LitNumber:
			return Number
		default:
			return String
		}

	case *parser.Ident:
		return Unknown

	case *parser.List:
		var tys []Ty
		anyUnknown := false
		for _, item := range n.Items {
			t := analyze(item, ctx, diags)
			tys = append(tys, t)
			if t.Kind == TyUnknown {
				anyUnknown = true
			}
		}
		if anyUnknown {
			return ListOf(Unknown)
		}
		return ListOf(NormalizeUnion(tys))

	case *parser.Unary:
		xTy := analyze(n.X, ctx, diags)
		switch n.Op {
		case parser.UnNot:
			if xTy.Kind != TyUnknown && xTy.Kind != TyBoolean {
				*diags = append(*diags, diag(fmt.Sprintf("operator '!' requires a boolean operand, found %s", xTy), n.X.Span()))
			}
			return Boolean
		default: // UnNeg
			if xTy.Kind != TyUnknown && xTy.Kind != TyNumber {
				*diags = append(*diags, diag(fmt.Sprintf("unary '-' requires a number operand, found %s", xTy), n.X.Span()))
			}
			return Number
		}

	case *parser.Binary:
		return analyzeBinary(n, ctx, diags)

	case *parser.Ternary:
		condTy := analyze(n.Cond, ctx, diags)
		if condTy.Kind != TyUnknown && condTy.Kind != TyBoolean {
			*diags = append(*diags, diag(fmt.Sprintf("ternary condition must be boolean, found %s", condTy), n.Cond.Span()))
		}
		thenTy := analyze(n.Then, ctx, diags)
		elseTy := analyze(n.Else, ctx, diags)
		return NormalizeUnion([]Ty{thenTy, elseTy})

	case *parser.Call:
		if n.Callee == "prop" {
			return analyzeProp(n, ctx, diags)
		}
		args := analyzeArgs(n.Args, ctx, diags)
		return resolveCall(n.Callee, n.CalleeSpan, n.Span(), args, ctx, diags)

	case *parser.Postfix:
		recvTy := analyze(n.Receiver, ctx, diags)
		rest := analyzeArgs(n.Args, ctx, diags)
		args := append([]argInfo{{ty: recvTy, sp: n.Receiver.Span()}}, rest...)
		return resolveCall(n.Method, n.MethodSpan, n.Span(), args, ctx, diags)

	case *parser.ErrorExpr:
		return Unknown

	default:
		return Unknown
	}
}

type argInfo struct {
	ty Ty
	sp span.Span
}

func analyzeArgs(exprs []parser.Expr, ctx Context, diags *[]errors.Diagnostic) []argInfo {
	out := make([]argInfo, len(exprs))
	for i, e := range exprs {
		out[i] = argInfo{ty: analyze(e, ctx, diags), sp: e.Span()}
	}
	return out
}

var binaryOps = map[parser.BinOp]struct {
	needs    TyKind
	produces Ty
}{
	parser.OpAdd: {TyNumber, Number},
	parser.OpSub: {TyNumber, Number},
	parser.OpMul: {TyNumber, Number},
	parser.OpDiv: {TyNumber, Number},
	parser.OpMod: {TyNumber, Number},
	parser.OpPow: {TyNumber, Number},
	parser.OpAnd: {TyBoolean, Boolean},
	parser.OpOr:  {TyBoolean, Boolean},
}

func analyzeBinary(n *parser.Binary, ctx Context, diags *[]errors.Diagnostic) Ty {
	leftTy := analyze(n.Left, ctx, diags)
	rightTy := analyze(n.Right, ctx, diags)

	switch n.Op {
	case parser.OpEq, parser.OpNe:
		return Boolean
	case parser.OpLt, parser.OpLe, parser.OpGt, parser.OpGe:
		if leftTy.Kind != TyUnknown && leftTy.Kind != TyNumber {
			*diags = append(*diags, diag(fmt.Sprintf("comparison requires a number operand, found %s", leftTy), n.Left.Span()))
		}
		if rightTy.Kind != TyUnknown && rightTy.Kind != TyNumber {
			*diags = append(*diags, diag(fmt.Sprintf("comparison requires a number operand, found %s", rightTy), n.Right.Span()))
		}
		return Boolean
	default:
		rule := binaryOps[n.Op]
		if leftTy.Kind != TyUnknown && leftTy.Kind != rule.needs {
			*diags = append(*diags, diag(fmt.Sprintf("operator requires a %s operand, found %s", Ty{Kind: rule.needs}, leftTy), n.Left.Span()))
		}
		if rightTy.Kind != TyUnknown && rightTy.Kind != rule.needs {
			*diags = append(*diags, diag(fmt.Sprintf("operator requires a %s operand, found %s", Ty{Kind: rule.needs}, rightTy), n.Right.Span()))
		}
		return rule.produces
	}
}

// analyzeProp hardwires `prop(name)`, the one context-sensitive name
// resolver: it needs the literal string argument's AST node (not just
// its type) to validate that it really is a string literal, and looks
// the name up against Context.Properties directly rather than through
// the general function catalog.
func analyzeProp(call *parser.Call, ctx Context, diags *[]errors.Diagnostic) Ty {
	if len(call.Args) != 1 {
		*diags = append(*diags, diag("prop() expects exactly 1 argument", call.Span()))
		return Unknown
	}
	arg := call.Args[0]
	lit, ok := arg.(*parser.Literal)
	if !ok || lit.Kind != parser.LitString {
		*diags = append(*diags, diag("prop() expects a string literal argument", arg.Span()))
		return Unknown
	}
	if prop, ok := ctx.findProperty(lit.Str); ok {
		return prop.Ty
	}
	*diags = append(*diags, diag(fmt.Sprintf("Unknown property: %s", lit.Str), arg.Span()))
	return Unknown
}

func resolveCall(name string, calleeSpan, callSpan span.Span, args []argInfo, ctx Context, diags *[]errors.Diagnostic) Ty {
	sig, ok := ctx.findFunction(name)
	if !ok {
		*diags = append(*diags, diag(fmt.Sprintf("unknown function: %s", name), calleeSpan))
		return Unknown
	}

	kind, repeatCount, arity := sig.Shape.Classify(len(args))
	switch kind {
	case MatchArityExact:
		*diags = append(*diags, diag(fmt.Sprintf("%s() expects exactly %s", name, pluralArgs(arity)), callSpan))
		return Unknown
	case MatchArityAtLeast:
		*diags = append(*diags, diag(fmt.Sprintf("%s() expects at least %s", name, pluralArgs(arity)), callSpan))
		return Unknown
	case MatchInvalidShape:
		*diags = append(*diags, diag(fmt.Sprintf("%s() has an invalid argument shape", name), callSpan))
		return Unknown
	}

	params := sig.Shape.Expand(repeatCount)
	repeatStart := len(sig.Shape.Head)
	repeatEnd := repeatStart + len(sig.Shape.Repeat)*repeatCount

	a := newAssignment(sig)
	for i, arg := range args {
		ps := params[i]
		msg, ok := unifyTy(ps.Ty, arg.ty, name, ps.Name, a)
		if ok {
			continue
		}
		inRepeat := i >= repeatStart && i < repeatEnd
		if inRepeat && isConcrete(ps.Ty) {
			msg = fmt.Sprintf("%s() expects %s arguments", name, ps.Ty.String())
		}
		*diags = append(*diags, diag(msg, arg.sp))
	}

	return substitute(sig.Return, a)
}

func isConcrete(t Ty) bool {
	switch t.Kind {
	case TyGeneric, TyUnion, TyList:
		return false
	default:
		return true
	}
}

package parser

import (
	"fmt"

	"github.com/joverzhang/formulang/compiler/lexer"
	"github.com/joverzhang/formulang/errors"
	"github.com/joverzhang/formulang/span"
)

// parseExpr is the entry point for a full expression, lowest precedence
// first: ternary, then ||, &&, comparisons, +/-, */÷/%, unary, ^, then
// postfix/call/primary.
func (p *Parser) parseExpr() Expr {
	return p.parseTernary()
}

// parseTernary: `cond ? then : else`, right-associative.
func (p *Parser) parseTernary() Expr {
	cond := p.parseOr()
	if !p.check(lexer.Question) {
		return cond
	}
	p.advance()
	then := p.parseExpr()
	p.consume(lexer.Colon, "':'")
	els := p.parseTernary()
	return &Ternary{
		baseExpr: baseExpr{id: p.id(), sp: cond.Span().To(els.Span())},
		Cond:     cond, Then: then, Else: els,
	}
}

func (p *Parser) consume(k lexer.Kind, wantText string) (lexer.Token, bool) {
	if p.check(k) {
		return p.advance(), true
	}
	bad := p.peek()
	p.emit(errors.New(errors.ParseCode("unexpected-token"), fmt.Sprintf("expected %s", wantText), span.At(bad.Span.Start)))
	return bad, false
}

func (p *Parser) parseOr() Expr {
	left := p.parseAnd()
	for p.check(lexer.PipePipe) {
		opTok := p.advance()
		right := p.parseAnd()
		left = &Binary{
			baseExpr: baseExpr{id: p.id(), sp: left.Span().To(right.Span())},
			Op:       OpOr, OpSpan: opTok.Span, Left: left, Right: right,
		}
	}
	return left
}

func (p *Parser) parseAnd() Expr {
	left := p.parseComparison()
	for p.check(lexer.AmpAmp) {
		opTok := p.advance()
		right := p.parseComparison()
		left = &Binary{
			baseExpr: baseExpr{id: p.id(), sp: left.Span().To(right.Span())},
			Op:       OpAnd, OpSpan: opTok.Span, Left: left, Right: right,
		}
	}
	return left
}

func comparisonOp(k lexer.Kind) (BinOp, bool) {
	switch k {
	case lexer.EqEq:
		return OpEq, true
	case lexer.BangEq:
		return OpNe, true
	case lexer.Lt:
		return OpLt, true
	case lexer.LtEq:
		return OpLe, true
	case lexer.Gt:
		return OpGt, true
	case lexer.GtEq:
		return OpGe, true
	default:
		return 0, false
	}
}

// parseComparison implements non-chainable comparisons: `a < b < c` is
// still parsed into a complete (if nonsensical) tree so recovery keeps
// going, but every comparison past the first on this level is flagged.
func (p *Parser) parseComparison() Expr {
	left := p.parseAdditive()
	chainCount := 0
	for {
		op, ok := comparisonOp(p.peek().Kind)
		if !ok {
			return left
		}
		opTok := p.advance()
		right := p.parseAdditive()
		if chainCount > 0 {
			p.emit(errors.New(errors.ParseCode("chained-comparison"), "chained comparisons are not supported", opTok.Span))
		}
		left = &Binary{
			baseExpr: baseExpr{id: p.id(), sp: left.Span().To(right.Span())},
			Op:       op, OpSpan: opTok.Span, Left: left, Right: right,
		}
		chainCount++
	}
}

func (p *Parser) parseAdditive() Expr {
	left := p.parseFactor()
	for p.check(lexer.Plus) || p.check(lexer.Minus) {
		opTok := p.advance()
		op := OpAdd
		if opTok.Kind == lexer.Minus {
			op = OpSub
		}
		right := p.parseFactor()
		left = &Binary{
			baseExpr: baseExpr{id: p.id(), sp: left.Span().To(right.Span())},
			Op:       op, OpSpan: opTok.Span, Left: left, Right: right,
		}
	}
	return left
}

func (p *Parser) parseFactor() Expr {
	left := p.parseUnary()
	for p.check(lexer.Star) || p.check(lexer.Slash) || p.check(lexer.Percent) {
		opTok := p.advance()
		var op BinOp
		switch opTok.Kind {
		case lexer.Star:
			op = OpMul
		case lexer.Slash:
			op = OpDiv
		default:
			op = OpMod
		}
		right := p.parseUnary()
		left = &Binary{
			baseExpr: baseExpr{id: p.id(), sp: left.Span().To(right.Span())},
			Op:       op, OpSpan: opTok.Span, Left: left, Right: right,
		}
	}
	return left
}

// parseUnary binds looser than '^' but allows chaining (`!!a`, `not not
// a`, `--a`) by recursing on itself before falling through to parsePow.
func (p *Parser) parseUnary() Expr {
	switch p.peek().Kind {
	case lexer.Bang, lexer.Not:
		opTok := p.advance()
		x := p.parseUnary()
		return &Unary{
			baseExpr: baseExpr{id: p.id(), sp: opTok.Span.To(x.Span())},
			Op:       UnNot, UseWord: opTok.Kind == lexer.Not, OpSpan: opTok.Span, X: x,
		}
	case lexer.Minus:
		opTok := p.advance()
		x := p.parseUnary()
		return &Unary{
			baseExpr: baseExpr{id: p.id(), sp: opTok.Span.To(x.Span())},
			Op:       UnNeg, OpSpan: opTok.Span, X: x,
		}
	default:
		return p.parsePow()
	}
}

// parsePow: `^` binds tighter than unary and is right-associative, so
// `-2^2` parses as `-(2^2)` and `2^3^4` parses as `2^(3^4)`.
func (p *Parser) parsePow() Expr {
	left := p.parsePostfix()
	if !p.check(lexer.Caret) {
		return left
	}
	opTok := p.advance()
	right := p.parseExponentOperand()
	return &Binary{
		baseExpr: baseExpr{id: p.id(), sp: left.Span().To(right.Span())},
		Op:       OpPow, OpSpan: opTok.Span, Left: left, Right: right,
	}
}

func (p *Parser) parseExponentOperand() Expr {
	switch p.peek().Kind {
	case lexer.Bang, lexer.Not:
		opTok := p.advance()
		x := p.parseExponentOperand()
		return &Unary{
			baseExpr: baseExpr{id: p.id(), sp: opTok.Span.To(x.Span())},
			Op:       UnNot, UseWord: opTok.Kind == lexer.Not, OpSpan: opTok.Span, X: x,
		}
	case lexer.Minus:
		opTok := p.advance()
		x := p.parseExponentOperand()
		return &Unary{
			baseExpr: baseExpr{id: p.id(), sp: opTok.Span.To(x.Span())},
			Op:       UnNeg, OpSpan: opTok.Span, X: x,
		}
	default:
		return p.parsePow()
	}
}

func (p *Parser) parsePostfix() Expr {
	e := p.parsePrimary()
	for p.check(lexer.Dot) {
		p.advance()
		nameTok, ok := p.consume(lexer.Ident, "a method name")
		if !ok {
			break
		}
		if !p.check(lexer.LParen) {
			bad := p.peek()
			p.emit(errors.New(errors.ParseCode("unexpected-token"), "expected '('", span.At(bad.Span.Start)))
			break
		}
		p.advance()
		args, closeSpan := p.parseDelimitedList(lexer.RParen, ")")
		e = &Postfix{
			baseExpr:   baseExpr{id: p.id(), sp: e.Span().To(closeSpan)},
			Receiver:   e,
			Method:     nameTok.Text,
			MethodSpan: nameTok.Span,
			Args:       args,
		}
	}
	return e
}

func (p *Parser) parsePrimary() Expr {
	tok := p.peek()
	switch tok.Kind {
	case lexer.Number:
		p.advance()
		return &Literal{baseExpr: baseExpr{id: p.id(), sp: tok.Span}, Kind: LitNumber, Text: tok.Text}
	case lexer.String:
		p.advance()
		return &Literal{baseExpr: baseExpr{id: p.id(), sp: tok.Span}, Kind: LitString, Text: tok.Text, Str: tok.Value}
	case lexer.True:
		p.advance()
		return &Literal{baseExpr: baseExpr{id: p.id(), sp: tok.Span}, Kind: LitBool, Bool: true}
	case lexer.False:
		p.advance()
		return &Literal{baseExpr: baseExpr{id: p.id(), sp: tok.Span}, Kind: LitBool, Bool: false}
	case lexer.Ident:
		p.advance()
		if p.check(lexer.LParen) {
			p.advance()
			args, closeSpan := p.parseDelimitedList(lexer.RParen, ")")
			return &Call{
				baseExpr:   baseExpr{id: p.id(), sp: tok.Span.To(closeSpan)},
				Callee:     tok.Text, CalleeSpan: tok.Span, Args: args,
			}
		}
		return &Ident{baseExpr: baseExpr{id: p.id(), sp: tok.Span}, Name: tok.Text}
	case lexer.LParen:
		p.advance()
		inner := p.parseExpr()
		closeSpan := p.expectCloseDelim(lexer.RParen, ")")
		return withSpan(inner, tok.Span.To(closeSpan))
	case lexer.LBracket:
		p.advance()
		items, closeSpan := p.parseDelimitedList(lexer.RBracket, "]")
		return &List{baseExpr: baseExpr{id: p.id(), sp: tok.Span.To(closeSpan)}, Items: items}
	case lexer.Error:
		// The lexer already reported this via lexer.Diagnostics; don't
		// pile a second, less specific "expected an expression" on top.
		p.advance()
		return &ErrorExpr{baseExpr: baseExpr{id: p.id(), sp: tok.Span}}
	default:
		p.emit(errors.New(errors.ParseCode("unexpected-token"), "expected an expression", tok.Span))
		if tok.Kind != lexer.Eof {
			p.advance()
		}
		return &ErrorExpr{baseExpr: baseExpr{id: p.id(), sp: span.At(tok.Span.Start)}}
	}
}

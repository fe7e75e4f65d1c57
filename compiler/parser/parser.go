package parser

import (
	"fmt"

	"github.com/joverzhang/formulang/compiler/lexer"
	"github.com/joverzhang/formulang/errors"
	"github.com/joverzhang/formulang/span"
)

// Parser is a hand-written recursive-descent/precedence-climbing parser
// over a lexer.Token stream. It never returns early on error: every
// recognized mistake is recorded as a diagnostic (sometimes carrying a
// quick fix) and parsing continues, so a single Parse call always
// yields a complete Expr tree plus whatever diagnostics it collected.
type Parser struct {
	tokens []lexer.Token
	pos    int
	nextID NodeId
	diags  []errors.Diagnostic
}

// Parse lexes are assumed to have already happened; Parse consumes a
// full token stream (trivia included, Eof-terminated) and returns the
// parsed top-level expression along with every diagnostic collected
// while parsing it.
func Parse(tokens []lexer.Token) (Expr, []errors.Diagnostic) {
	p := &Parser{tokens: tokens}
	expr := p.parseExpr()
	if !p.isAtEnd() {
		tok := p.peek()
		p.diags = append(p.diags, errors.New(errors.ParseCode("trailing-tokens"), "expected EOF", tok.Span))
		for !p.isAtEnd() {
			p.advanceRaw()
		}
	}
	return expr, p.diags
}

func (p *Parser) id() NodeId {
	id := p.nextID
	p.nextID++
	return id
}

// skipTrivia advances pos past any comment/newline tokens.
func (p *Parser) skipTrivia() {
	for p.pos < len(p.tokens) && p.tokens[p.pos].Kind.IsTrivia() {
		p.pos++
	}
}

func (p *Parser) peek() lexer.Token {
	p.skipTrivia()
	return p.tokens[p.pos]
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Kind == lexer.Eof
}

func (p *Parser) check(k lexer.Kind) bool {
	return p.peek().Kind == k
}

// advance returns the current significant token and moves past it.
func (p *Parser) advance() lexer.Token {
	t := p.peek()
	if t.Kind != lexer.Eof {
		p.pos++
	}
	return t
}

// advanceRaw consumes the current raw slot (trivia or not) without
// first skipping trivia; used by trailing-token recovery so it also
// walks past leftover trivia instead of spinning on it forever.
func (p *Parser) advanceRaw() {
	if p.pos < len(p.tokens) && p.tokens[p.pos].Kind != lexer.Eof {
		p.pos++
		return
	}
	if p.pos < len(p.tokens) {
		p.pos++
	}
}

func (p *Parser) eofSpan() span.Span {
	last := p.tokens[len(p.tokens)-1]
	return last.Span
}

func (p *Parser) emit(d errors.Diagnostic) {
	p.diags = append(p.diags, d)
}

func isClosingDelim(k lexer.Kind) bool {
	return k.IsClosingDelimiter()
}

func looksLikeExprStart(k lexer.Kind) bool {
	switch k {
	case lexer.Number, lexer.String, lexer.True, lexer.False, lexer.Ident,
		lexer.LParen, lexer.LBracket, lexer.Bang, lexer.Not, lexer.Minus, lexer.Error:
		return true
	default:
		return false
	}
}

// expectCloseDelim consumes the expected closing delimiter, or
// synthesizes a diagnostic + quick fix for the three ways it can be
// missing: EOF before it arrived, a different (mismatched) closing
// delimiter in its place, or something else entirely unexpected.
func (p *Parser) expectCloseDelim(want lexer.Kind, wantText string) span.Span {
	if p.isAtEnd() {
		at := span.At(p.eofSpan().Start)
		p.emit(errors.New(errors.ParseCode("missing-delim"), fmt.Sprintf("expected '%s'", wantText), at).
			WithQuickFix(fmt.Sprintf("Insert '%s'", wantText), wantText))
		return at
	}
	if p.check(want) {
		return p.advance().Span
	}
	if isClosingDelim(p.peek().Kind) {
		bad := p.advance()
		p.emit(errors.New(errors.ParseCode("mismatched-delim"),
			fmt.Sprintf("expected '%s', found mismatched delimiter", wantText), bad.Span).
			WithQuickFix(fmt.Sprintf("Replace with '%s'", wantText), wantText))
		return bad.Span
	}
	bad := p.peek()
	p.emit(errors.New(errors.ParseCode("unexpected-token"), fmt.Sprintf("expected '%s'", wantText), bad.Span))
	return span.At(bad.Span.Start)
}

// parseDelimitedList parses a comma-separated list of expressions up to
// the closing delimiter want, recovering from a missing comma between
// two expressions and from a single trailing comma before the close.
func (p *Parser) parseDelimitedList(want lexer.Kind, wantText string) ([]Expr, span.Span) {
	var items []Expr
	for {
		if p.isAtEnd() {
			return items, p.expectCloseDelim(want, wantText)
		}
		if p.check(want) {
			return items, p.advance().Span
		}

		items = append(items, p.parseExpr())

		if p.isAtEnd() {
			return items, p.expectCloseDelim(want, wantText)
		}
		if p.check(want) {
			return items, p.advance().Span
		}
		if p.check(lexer.Comma) {
			comma := p.advance()
			if p.check(want) {
				p.emit(errors.New(errors.ParseCode("trailing-comma"), "trailing comma is not allowed", comma.Span).
					WithQuickFix("Remove trailing comma", ""))
				return items, p.advance().Span
			}
			continue
		}
		if isClosingDelim(p.peek().Kind) {
			bad := p.advance()
			p.emit(errors.New(errors.ParseCode("mismatched-delim"),
				fmt.Sprintf("expected '%s', found mismatched delimiter", wantText), bad.Span).
				WithQuickFix(fmt.Sprintf("Replace with '%s'", wantText), wantText))
			return items, bad.Span
		}
		if looksLikeExprStart(p.peek().Kind) {
			boundary := span.At(p.peek().Span.Start)
			p.emit(errors.New(errors.ParseCode("missing-comma"), "expected ',' between arguments", boundary).
				WithQuickFix("Insert ','", ","))
			continue
		}
		bad := p.advance()
		p.emit(errors.New(errors.ParseCode("unexpected-token"), "unexpected token", bad.Span))
		return items, span.At(bad.Span.End)
	}
}

package parser_test

import (
	"testing"

	"github.com/joverzhang/formulang/compiler/lexer"
	"github.com/joverzhang/formulang/compiler/parser"
	"github.com/joverzhang/formulang/span"
	"github.com/stretchr/testify/assert"
)

func TestTokensInSpanBasic(t *testing.T) {
	toks := lexer.ScanTokens("(a+b)")

	lo, hi := parser.TokensInSpan(toks, span.New(1, 4))
	assert.Equal(t, 1, lo)
	assert.Equal(t, 4, hi)

	lo, hi = parser.TokensInSpan(toks, span.New(2, 3))
	assert.Equal(t, 2, lo)
	assert.Equal(t, 3, hi)
}

func TestTokensInSpanExcludesEofAndIncludesTrivia(t *testing.T) {
	toks := lexer.ScanTokens("a # c\n+b")

	lo, hi := parser.TokensInSpan(toks, span.New(0, uint32(len("a # c\n+b"))))
	assert.Equal(t, 0, lo)
	assert.Equal(t, len(toks)-1, hi) // excludes the trailing Eof
}

func TestTokensInSpanEmptyQueryIsInsertionIndex(t *testing.T) {
	toks := lexer.ScanTokens("(a+b)")
	lo, hi := parser.TokensInSpan(toks, span.At(2))
	assert.Equal(t, 2, lo)
	assert.Equal(t, 2, hi)
}

func TestTokensInSpanOutOfBounds(t *testing.T) {
	toks := lexer.ScanTokens("(a+b)")
	end := len(toks)
	lo, hi := parser.TokensInSpan(toks, span.New(100, 101))
	assert.Equal(t, end, lo)
	assert.Equal(t, end, hi)
}

func TestPrevNextNonTrivia(t *testing.T) {
	// "a\n+ b": a(0), Newline(1), +(2), b(3), Eof(4). The intervening
	// whitespace before '+' and before 'b' is discarded outright (not a
	// token at all), so the newline is the only trivia to skip over here.
	toks := lexer.ScanTokens("a\n+ b")
	q := parser.NewTokenQuery(toks)

	idx, ok := q.NextNonTrivia(0)
	assert.True(t, ok)
	assert.Equal(t, 0, idx)

	idx, ok = q.NextNonTrivia(1) // newline -> '+'
	assert.True(t, ok)
	assert.Equal(t, 2, idx)

	idx, ok = q.PrevNonTrivia(2) // '+' -> 'a'
	assert.True(t, ok)
	assert.Equal(t, 0, idx)

	_, ok = q.PrevNonTrivia(0)
	assert.False(t, ok)
}

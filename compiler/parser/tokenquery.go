package parser

import (
	"github.com/joverzhang/formulang/compiler/lexer"
	"github.com/joverzhang/formulang/span"
)

// TokenQuery answers positional questions against a full token stream
// (including trivia), used by the formatter and the completion engine
// to look at what surrounds a position without re-lexing.
type TokenQuery struct {
	Tokens []lexer.Token
}

// NewTokenQuery wraps a token slice. The last token is assumed to be Eof.
func NewTokenQuery(tokens []lexer.Token) *TokenQuery {
	return &TokenQuery{Tokens: tokens}
}

// NextNonTrivia returns the index of the first significant token at or
// after i, skipping comment/newline tokens.
func (q *TokenQuery) NextNonTrivia(i int) (int, bool) {
	for j := i; j < len(q.Tokens); j++ {
		if q.Tokens[j].IsSignificant() {
			return j, true
		}
	}
	return 0, false
}

// PrevNonTrivia returns the index of the first significant token
// strictly before i, skipping trivia.
func (q *TokenQuery) PrevNonTrivia(i int) (int, bool) {
	for j := i - 1; j >= 0; j-- {
		if q.Tokens[j].IsSignificant() {
			return j, true
		}
	}
	return 0, false
}

// TokensInSpan returns the half-open index range [lo, hi) of tokens
// (excluding the trailing Eof) whose span intersects sp.
//
// An empty query span (sp.Start == sp.End) returns an empty range at
// the insertion index: the first token whose span starts at or after
// sp.Start. A query span that intersects nothing returns an empty
// range positioned at len(tokens) (the sentinel one past the array,
// Eof included in that count, matching an out-of-bounds query).
func TokensInSpan(tokens []lexer.Token, sp span.Span) (lo, hi int) {
	n := len(tokens)
	significant := n - 1
	if significant < 0 {
		significant = 0
	}

	if sp.Start == sp.End {
		idx := significant
		for i := 0; i < significant; i++ {
			if tokens[i].Span.Start >= sp.Start {
				idx = i
				break
			}
		}
		return idx, idx
	}

	lo, hi = -1, -1
	for i := 0; i < significant; i++ {
		t := tokens[i].Span
		if t.Start < sp.End && t.End > sp.Start {
			if lo == -1 {
				lo = i
			}
			hi = i + 1
		}
	}
	if lo == -1 {
		return n, n
	}
	return lo, hi
}

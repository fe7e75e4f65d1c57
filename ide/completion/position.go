// Package completion implements cursor-position classification, fuzzy
// candidate matching/ranking, and signature-help label rendering for
// the formula language. It works directly off the token stream (not
// line-text prefixes), since spans here are byte-precise and
// trivia-aware.
package completion

import (
	"github.com/joverzhang/formulang/compiler/lexer"
	"github.com/joverzhang/formulang/compiler/parser"
	"github.com/joverzhang/formulang/semantic"
	"github.com/joverzhang/formulang/span"
)

// PositionKind classifies what syntactic role the cursor sits in.
type PositionKind int

const (
	// PosTopLevel: the cursor is not immediately after a '.' and not
	// inside any enclosing call's argument list — an identifier,
	// keyword, or fresh expression is expected here.
	PosTopLevel PositionKind = iota
	// PosCallArg: the cursor sits inside the argument list of an
	// enclosing function call.
	PosCallArg
	// PosAfterDot: the cursor immediately follows a '.', i.e. a postfix
	// method name is expected.
	PosAfterDot
)

// Position is the result of classifying one cursor offset.
type Position struct {
	Kind         PositionKind
	CallName     string
	CallNameSpan span.Span
	ArgIndex     int // comma count at depth 0 before the cursor, only for PosCallArg
	OpenParenIdx int
	// IsPostfix is true when the enclosing call is `recv.method(...)`
	// rather than a direct `name(...)` call — only meaningful alongside
	// PosCallArg.
	IsPostfix bool
	// ReceiverIdx is the token index of the last token of the receiver
	// expression immediately before the '.', or -1 if there is none —
	// only meaningful alongside PosAfterDot.
	ReceiverIdx int
}

// Classify walks tokens backward from cursor to decide what the user
// is completing: a method name right after '.', an argument inside an
// enclosing call (tracked via paren/bracket depth and depth-0 comma
// counting), or a fresh top-level expression.
func Classify(tokens []lexer.Token, cursor uint32) Position {
	q := parser.NewTokenQuery(tokens)
	idx, _ := parser.TokensInSpan(tokens, span.At(cursor))

	if ok, dotIdx := isAfterDot(tokens, q, idx, cursor); ok {
		receiverIdx := -1
		if r, ok2 := q.PrevNonTrivia(dotIdx); ok2 {
			receiverIdx = r
		}
		return Position{Kind: PosAfterDot, ReceiverIdx: receiverIdx}
	}

	depth := 0
	for j := idx - 1; j >= 0; j-- {
		switch tokens[j].Kind {
		case lexer.RParen, lexer.RBracket:
			depth++
		case lexer.LParen:
			if depth > 0 {
				depth--
				continue
			}
			if prevIdx, ok := q.PrevNonTrivia(j); ok && tokens[prevIdx].Kind == lexer.Ident {
				isPostfix := false
				if dotIdx, ok2 := q.PrevNonTrivia(prevIdx); ok2 && tokens[dotIdx].Kind == lexer.Dot {
					isPostfix = true
				}
				return Position{
					Kind:         PosCallArg,
					CallName:     tokens[prevIdx].Text,
					CallNameSpan: tokens[prevIdx].Span,
					ArgIndex:     countCommasAtDepth0(tokens, j, idx),
					OpenParenIdx: j,
					IsPostfix:    isPostfix,
				}
			}
			return Position{Kind: PosTopLevel}
		case lexer.LBracket:
			if depth > 0 {
				depth--
				continue
			}
			return Position{Kind: PosTopLevel}
		}
	}
	return Position{Kind: PosTopLevel}
}

// isAfterDot reports whether the cursor sits right after a '.', either
// with nothing typed yet or mid-typing the method name itself, and if
// so the index of that '.' token.
func isAfterDot(tokens []lexer.Token, q *parser.TokenQuery, idx int, cursor uint32) (bool, int) {
	prevIdx, ok := q.PrevNonTrivia(idx)
	if !ok {
		return false, 0
	}
	if tokens[prevIdx].Kind == lexer.Dot {
		return true, prevIdx
	}
	if tokens[prevIdx].Kind == lexer.Ident && tokens[prevIdx].Span.End == cursor {
		if prev2, ok2 := q.PrevNonTrivia(prevIdx); ok2 && tokens[prev2].Kind == lexer.Dot {
			return true, prev2
		}
	}
	return false, 0
}

// ReceiverTy makes a best-effort guess at the type of the receiver
// expression immediately before a '.', from just its last token: an
// identifier matching a declared property resolves to that property's
// type, a literal resolves to its literal type, and anything else (the
// closing token of a parenthesized sub-expression or call) is treated
// as Unknown so it never excludes a postfix method from the candidate
// list.
func ReceiverTy(tokens []lexer.Token, receiverIdx int, ctx semantic.Context) semantic.Ty {
	if receiverIdx < 0 || receiverIdx >= len(tokens) {
		return semantic.Unknown
	}
	t := tokens[receiverIdx]
	switch t.Kind {
	case lexer.True, lexer.False:
		return semantic.Boolean
	case lexer.Number:
		return semantic.Number
	case lexer.String:
		return semantic.String
	case lexer.Ident:
		for _, p := range ctx.Properties {
			if p.Name == t.Text {
				return p.Ty
			}
		}
	}
	return semantic.Unknown
}

func countCommasAtDepth0(tokens []lexer.Token, openIdx, cursorIdx int) int {
	depth := 0
	count := 0
	for j := openIdx + 1; j < cursorIdx; j++ {
		switch tokens[j].Kind {
		case lexer.LParen, lexer.LBracket:
			depth++
		case lexer.RParen, lexer.RBracket:
			depth--
		case lexer.Comma:
			if depth == 0 {
				count++
			}
		}
	}
	return count
}

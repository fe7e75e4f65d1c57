package lexer

import (
	"fmt"

	"github.com/joverzhang/formulang/span"
)

// Kind identifies a token's lexical category. Trivia kinds (Comment,
// BlockComment, Newline) stay in the token stream rather than being
// filtered out, so the formatter and completion engine can walk them.
// Whitespace other than '\n' is insignificant even as trivia and is
// discarded entirely during lexing, never reaching the token stream.
type Kind int

const (
	Eof Kind = iota
	Error

	Number
	String
	True
	False
	Ident

	Plus
	Minus
	Star
	Slash
	Percent
	Caret

	Bang
	EqEq
	BangEq
	Lt
	LtEq
	Gt
	GtEq
	AmpAmp
	PipePipe

	Not

	Question
	Colon
	Dot
	Comma
	LParen
	RParen
	LBracket
	RBracket

	Comment
	BlockComment
	Newline
)

var kindNames = map[Kind]string{
	Eof:          "EOF",
	Error:        "error",
	Number:       "number",
	String:       "string",
	True:         "true",
	False:        "false",
	Ident:        "identifier",
	Plus:         "'+'",
	Minus:        "'-'",
	Star:         "'*'",
	Slash:        "'/'",
	Percent:      "'%'",
	Caret:        "'^'",
	Bang:         "'!'",
	EqEq:         "'=='",
	BangEq:       "'!='",
	Lt:           "'<'",
	LtEq:         "'<='",
	Gt:           "'>'",
	GtEq:         "'>='",
	AmpAmp:       "'&&'",
	PipePipe:     "'||'",
	Not:          "'not'",
	Question:     "'?'",
	Colon:        "':'",
	Dot:          "'.'",
	Comma:        "','",
	LParen:       "'('",
	RParen:       "')'",
	LBracket:     "'['",
	RBracket:     "']'",
	Comment:      "comment",
	BlockComment: "block comment",
	Newline:      "newline",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsTrivia reports whether the token carries no grammatical meaning by
// itself (comments, newlines).
func (k Kind) IsTrivia() bool {
	switch k {
	case Comment, BlockComment, Newline:
		return true
	default:
		return false
	}
}

// IsClosingDelimiter reports whether the token kind closes a bracketed
// construct, used by the parser's delimiter-mismatch recovery.
func (k Kind) IsClosingDelimiter() bool {
	return k == RParen || k == RBracket
}

// Token is one lexical unit: a kind, its exact source text, its byte
// span, and (for strings) the decoded literal value.
type Token struct {
	Kind  Kind
	Text  string
	Span  span.Span
	Value string // decoded string literal value; unused otherwise
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%s", t.Kind, t.Text, t.Span)
}

// IsSignificant reports whether the token participates in grammar: every
// non-trivia kind, including the terminal Eof.
func (t Token) IsSignificant() bool {
	return !t.Kind.IsTrivia()
}

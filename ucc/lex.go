package ucc

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/jcorbin/goucc/internal/runeio"
)

// TokenKind classifies a Token.
type TokenKind int

const (
	TokenWord       TokenKind = iota // any other run of graphic runes
	TokenQuoteOpen                   // [
	TokenQuoteClose                  // ]
	TokenGroupOpen                   // (
	TokenGroupClose                  // )
	TokenDefOpen                     // {
	TokenDefClose                    // }

	tokenKindMax
)

var tokenKindNames = [tokenKindMax]string{
	"word",
	"quote-open",
	"quote-close",
	"group-open",
	"group-close",
	"def-open",
	"def-close",
}

func (kind TokenKind) String() string {
	if kind >= 0 && kind < tokenKindMax {
		return tokenKindNames[kind]
	}
	return fmt.Sprintf("TokenKind(%d)", int(kind))
}

// delimiters maps each delimiter rune to its token kind.
var delimiters = map[rune]TokenKind{
	'[': TokenQuoteOpen,
	']': TokenQuoteClose,
	'(': TokenGroupOpen,
	')': TokenGroupClose,
	'{': TokenDefOpen,
	'}': TokenDefClose,
}

// closerOf maps each opening kind to the kind that closes it.
var closerOf = map[TokenKind]TokenKind{
	TokenQuoteOpen: TokenQuoteClose,
	TokenGroupOpen: TokenGroupClose,
	TokenDefOpen:   TokenDefClose,
}

var delimiterText = map[TokenKind]string{
	TokenQuoteOpen:  "[",
	TokenQuoteClose: "]",
	TokenGroupOpen:  "(",
	TokenGroupClose: ")",
	TokenDefOpen:    "{",
	TokenDefClose:   "}",
}

// Pos locates a token within its source text.
type Pos struct {
	Offset int // byte offset
	Line   int // 1-based
	Col    int // 1-based, counted in runes
}

func (pos Pos) String() string { return fmt.Sprintf("%v:%v", pos.Line, pos.Col) }

// Token is one lexical unit.
type Token struct {
	Kind TokenKind
	Text string
	Pos  Pos
}

func (tok Token) String() string { return fmt.Sprintf("%v %v %q", tok.Pos, tok.Kind, tok.Text) }

// LexError reports text that cannot be tokenized.
type LexError struct {
	Pos    Pos
	Reason string
}

func (err *LexError) Error() string { return fmt.Sprintf("lex error @%v: %v", err.Pos, err.Reason) }

// Tokenize splits text into tokens in source order.
//
// Whitespace separates tokens, each delimiter rune is a token of its own, and
// every other maximal run of graphic runes is a word. Closing delimiters that
// do not match the innermost open delimiter are rejected here; opening
// delimiters left unclosed are left for Build to report.
func Tokenize(text string) ([]Token, error) {
	var (
		lex  lexer
		toks []Token
		open []Token
	)
	lex.init(text)
	for {
		tok, err := lex.next()
		if err != nil {
			return nil, err
		}
		if tok == nil {
			return toks, nil
		}
		switch tok.Kind {
		case TokenQuoteOpen, TokenGroupOpen, TokenDefOpen:
			open = append(open, *tok)
		case TokenQuoteClose, TokenGroupClose, TokenDefClose:
			i := len(open) - 1
			if i < 0 {
				return nil, &LexError{tok.Pos, fmt.Sprintf("unmatched %q", tok.Text)}
			}
			if want := closerOf[open[i].Kind]; want != tok.Kind {
				return nil, &LexError{tok.Pos, fmt.Sprintf(
					"mismatched %q, expected %q to close %q @%v",
					tok.Text, delimiterText[want], open[i].Text, open[i].Pos)}
			}
			open = open[:i]
		}
		toks = append(toks, *tok)
	}
}

type lexer struct {
	text string
	pos  Pos
}

func (lex *lexer) init(text string) {
	lex.text = text
	lex.pos = Pos{Offset: 0, Line: 1, Col: 1}
}

func (lex *lexer) peek() (rune, int) {
	if lex.pos.Offset >= len(lex.text) {
		return -1, 0
	}
	return utf8.DecodeRuneInString(lex.text[lex.pos.Offset:])
}

func (lex *lexer) advance(r rune, n int) {
	lex.pos.Offset += n
	if r == '\n' {
		lex.pos.Line++
		lex.pos.Col = 1
	} else {
		lex.pos.Col++
	}
}

// next scans the next token, returning nil at the end of text.
func (lex *lexer) next() (*Token, error) {
	r, n := lex.peek()
	for n > 0 && unicode.IsSpace(r) {
		lex.advance(r, n)
		r, n = lex.peek()
	}
	if n == 0 {
		return nil, nil
	}

	start := lex.pos
	if kind, isDelim := delimiters[r]; isDelim {
		lex.advance(r, n)
		return &Token{kind, lex.text[start.Offset:lex.pos.Offset], start}, nil
	}

	for n > 0 && !unicode.IsSpace(r) {
		if _, isDelim := delimiters[r]; isDelim {
			break
		}
		if err := lex.check(r, n); err != nil {
			return nil, err
		}
		lex.advance(r, n)
		r, n = lex.peek()
	}
	return &Token{TokenWord, lex.text[start.Offset:lex.pos.Offset], start}, nil
}

func (lex *lexer) check(r rune, n int) error {
	if r == utf8.RuneError && n == 1 {
		return &LexError{lex.pos, fmt.Sprintf("invalid UTF-8 byte %#02x", lex.text[lex.pos.Offset])}
	}
	if unicode.IsGraphic(r) {
		return nil
	}
	if runeio.ControlName(r) != "" {
		return &LexError{lex.pos, "unexpected control character " + runeio.Describe(r)}
	}
	return &LexError{lex.pos, "unexpected character " + runeio.Describe(r)}
}

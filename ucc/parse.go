package ucc

import (
	"errors"
	"fmt"
)

// ParseErrorKind classifies a ParseError.
type ParseErrorKind int

const (
	UnmatchedOpen       ParseErrorKind = iota // an opening delimiter is never closed
	UnmatchedClose                            // a closing delimiter has nothing to close
	MisplacedDefinition                       // a definition where only terms may appear
	MalformedDefinition                       // a definition not of the form {fn NAME = BODY}
)

var parseErrorKindNames = [...]string{
	"unmatched open",
	"unmatched close",
	"misplaced definition",
	"malformed definition",
}

func (kind ParseErrorKind) String() string {
	if kind >= 0 && int(kind) < len(parseErrorKindNames) {
		return parseErrorKindNames[kind]
	}
	return fmt.Sprintf("ParseErrorKind(%d)", int(kind))
}

// ParseError reports a token sequence that does not form terms.
type ParseError struct {
	Kind   ParseErrorKind
	Pos    Pos
	Detail string
}

func (err *ParseError) Error() string {
	if err.Detail != "" {
		return fmt.Sprintf("parse error @%v: %v: %v", err.Pos, err.Kind, err.Detail)
	}
	return fmt.Sprintf("parse error @%v: %v", err.Pos, err.Kind)
}

// Build converts a flat token sequence into terms, collecting the contents of
// each quotation into a nested Quote and flattening groups in place.
// Definitions are not terms; use them only at the top level of session input.
func Build(toks []Token) (Program, error) {
	p := parser{toks: toks}
	prog, err := p.terms()
	if err == nil && p.more() {
		err = p.unexpected()
	}
	return prog, err
}

// Parse tokenizes and builds text.
func Parse(text string) (Program, error) {
	toks, err := Tokenize(text)
	if err != nil {
		return nil, err
	}
	return Build(toks)
}

// Incomplete reports whether text fails to parse only because some opening
// delimiter has not been closed yet; a shell may then read more input before
// starting an evaluation.
//
// Of the commands, only :trace takes a program, which is incomplete under
// the same rule.
func Incomplete(text string) bool {
	if isCommand(text) {
		name, arg := splitCommand(text)
		if name != ":trace" || isCommand(arg) {
			return false
		}
		_, err := Parse(arg)
		return unclosed(err)
	}
	toks, err := Tokenize(text)
	if err == nil {
		_, err = parseItems(toks)
	}
	return unclosed(err)
}

func unclosed(err error) bool {
	var perr *ParseError
	return errors.As(err, &perr) && perr.Kind == UnmatchedOpen
}

// Definition binds a name to a body.
type Definition struct {
	Name string
	Body Program
}

func (def Definition) String() string { return fmt.Sprintf("{fn %v = %v}", def.Name, def.Body) }

// item is one top level element of session input: either an expression to
// evaluate or a definition to install.
type item struct {
	def  *Definition
	expr Program
}

// parseItems builds session input, splitting it around definitions.
// Adjacent terms form a single expression; empty expressions are dropped.
func parseItems(toks []Token) ([]item, error) {
	p := parser{toks: toks}
	var items []item
	for p.more() {
		if p.peek().Kind == TokenDefOpen {
			def, err := p.definition()
			if err != nil {
				return nil, err
			}
			items = append(items, item{def: def})
			continue
		}
		expr, err := p.terms()
		if err != nil {
			return nil, err
		}
		if p.more() && p.peek().Kind != TokenDefOpen {
			return nil, p.unexpected()
		}
		if len(expr) > 0 {
			items = append(items, item{expr: expr})
		}
	}
	return items, nil
}

type parser struct {
	toks []Token
	i    int
}

func (p *parser) more() bool  { return p.i < len(p.toks) }
func (p *parser) peek() Token { return p.toks[p.i] }

func (p *parser) take() Token {
	tok := p.toks[p.i]
	p.i++
	return tok
}

func (p *parser) unexpected() error {
	tok := p.peek()
	switch tok.Kind {
	case TokenQuoteClose, TokenGroupClose, TokenDefClose:
		return &ParseError{UnmatchedClose, tok.Pos, fmt.Sprintf("%q", tok.Text)}
	case TokenDefOpen:
		return &ParseError{MisplacedDefinition, tok.Pos, "definitions are only allowed at the top level"}
	}
	return &ParseError{MalformedDefinition, tok.Pos, fmt.Sprintf("unexpected %v %q", tok.Kind, tok.Text)}
}

// terms collects terms until a closing delimiter, a definition, or the end of
// tokens; the stopping token is left unconsumed.
func (p *parser) terms() (Program, error) {
	var prog Program
	for p.more() {
		switch tok := p.peek(); tok.Kind {
		case TokenWord:
			p.take()
			prog = append(prog, Word(tok.Text))

		case TokenQuoteOpen:
			p.take()
			body, err := p.closed(tok, TokenQuoteClose)
			if err != nil {
				return nil, err
			}
			prog = append(prog, Quote(body))

		case TokenGroupOpen:
			p.take()
			body, err := p.closed(tok, TokenGroupClose)
			if err != nil {
				return nil, err
			}
			prog = append(prog, body...)

		default:
			return prog, nil
		}
	}
	return prog, nil
}

// closed collects terms up to and including the closing delimiter for open.
func (p *parser) closed(open Token, closer TokenKind) (Program, error) {
	body, err := p.terms()
	if err != nil {
		return nil, err
	}
	if !p.more() {
		return nil, &ParseError{UnmatchedOpen, open.Pos, fmt.Sprintf("%q never closed", open.Text)}
	}
	if p.peek().Kind != closer {
		return nil, p.unexpected()
	}
	p.take()
	if body == nil {
		body = Program{}
	}
	return body, nil
}

// definition parses {fn NAME = BODY}.
func (p *parser) definition() (*Definition, error) {
	open := p.take()
	malformed := func(pos Pos, detail string) error {
		return &ParseError{MalformedDefinition, pos, detail}
	}
	header := func(what string) (Token, error) {
		if !p.more() {
			return Token{}, &ParseError{UnmatchedOpen, open.Pos, fmt.Sprintf("%q never closed", open.Text)}
		}
		tok := p.peek()
		if tok.Kind != TokenWord {
			return tok, malformed(tok.Pos, fmt.Sprintf("expected %v, got %q", what, tok.Text))
		}
		return p.take(), nil
	}

	kw, err := header(`"fn"`)
	if err != nil {
		return nil, err
	}
	if kw.Text != "fn" {
		return nil, malformed(kw.Pos, fmt.Sprintf(`expected "fn", got %q`, kw.Text))
	}
	name, err := header("a name")
	if err != nil {
		return nil, err
	}
	if isIntrinsic(name.Text) {
		return nil, malformed(name.Pos, fmt.Sprintf("cannot redefine intrinsic %v", name.Text))
	}
	eq, err := header(`"="`)
	if err != nil {
		return nil, err
	}
	if eq.Text != "=" {
		return nil, malformed(eq.Pos, fmt.Sprintf(`expected "=", got %q`, eq.Text))
	}

	body, err := p.terms()
	if err != nil {
		return nil, err
	}
	if !p.more() {
		return nil, &ParseError{UnmatchedOpen, open.Pos, fmt.Sprintf("%q never closed", open.Text)}
	}
	if tok := p.peek(); tok.Kind != TokenDefClose {
		if tok.Kind == TokenDefOpen {
			return nil, &ParseError{MisplacedDefinition, tok.Pos, "definitions cannot nest"}
		}
		return nil, p.unexpected()
	}
	p.take()
	return &Definition{Name: name.Text, Body: body}, nil
}

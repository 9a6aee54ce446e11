package ucc

import "strings"

// Term is one element of a program: either a Word or a Quote.
type Term interface {
	isTerm()
	String() string
	buildString(sb *strings.Builder)
}

// Word names an intrinsic combinator or a definition.
type Word string

// Quote is a quotation: a program held as data. Quotes are never mutated
// once built; reductions that need a different quotation build a new one.
type Quote []Term

// Program is an ordered sequence of terms.
type Program []Term

// Stack holds the values of a configuration, bottom first. Every value in
// the calculus is a quotation.
type Stack []Quote

func (Word) isTerm()  {}
func (Quote) isTerm() {}

func (w Word) String() string { return string(w) }

func (q Quote) String() string {
	var sb strings.Builder
	q.buildString(&sb)
	return sb.String()
}

func (p Program) String() string {
	var sb strings.Builder
	p.buildString(&sb)
	return sb.String()
}

func (s Stack) String() string {
	var sb strings.Builder
	sb.WriteRune('⟨')
	for i, v := range s {
		if i > 0 {
			sb.WriteByte(' ')
		}
		v.buildString(&sb)
	}
	sb.WriteRune('⟩')
	return sb.String()
}

func (w Word) buildString(sb *strings.Builder) { sb.WriteString(string(w)) }

func (q Quote) buildString(sb *strings.Builder) {
	sb.WriteByte('[')
	Program(q).buildString(sb)
	sb.WriteByte(']')
}

func (p Program) buildString(sb *strings.Builder) {
	for i, t := range p {
		if i > 0 {
			sb.WriteByte(' ')
		}
		t.buildString(sb)
	}
}

// Equal reports whether two terms are structurally identical.
func Equal(a, b Term) bool {
	switch a := a.(type) {
	case Word:
		b, ok := b.(Word)
		return ok && a == b
	case Quote:
		b, ok := b.(Quote)
		return ok && Program(a).Equal(Program(b))
	}
	return false
}

// Equal reports whether two programs hold structurally identical terms.
func (p Program) Equal(other Program) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if !Equal(p[i], other[i]) {
			return false
		}
	}
	return true
}

// Equal reports whether two stacks hold structurally identical values.
func (s Stack) Equal(other Stack) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if !Program(s[i]).Equal(Program(other[i])) {
			return false
		}
	}
	return true
}

// Clone returns a copy of the stack that may be pushed and popped without
// affecting s. The values themselves are shared, since quotes are immutable.
func (s Stack) Clone() Stack {
	if s == nil {
		return nil
	}
	return append(make(Stack, 0, len(s)), s...)
}

// key returns a map key that identifies a program's content; distinct
// programs always render differently since words never contain delimiters
// or whitespace.
func (p Program) key() string { return p.String() }

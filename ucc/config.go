package ucc

import "strings"

// Configuration is the complete evaluator state: the stack, and the program
// remainder still to be reduced.
//
// The remainder is kept as a stack of continuation frames, innermost last,
// so that splicing a quotation's body in front of it neither copies nor
// mutates any shared terms. Copying a Configuration by value aliases its
// frames; use Clone to take a snapshot.
type Configuration struct {
	Stack Stack

	cont []Program // never holds an empty frame
}

// NewConfiguration returns a configuration that will reduce prog against
// stack.
func NewConfiguration(stack Stack, prog Program) Configuration {
	cfg := Configuration{Stack: stack}
	cfg.splice(prog)
	return cfg
}

// Halted reports whether the remainder is empty.
func (cfg Configuration) Halted() bool { return len(cfg.cont) == 0 }

// Depth returns the number of continuation frames.
func (cfg Configuration) Depth() int { return len(cfg.cont) }

// Remainder returns the program still to be reduced, in order.
func (cfg Configuration) Remainder() Program {
	n := 0
	for _, frame := range cfg.cont {
		n += len(frame)
	}
	if n == 0 {
		return nil
	}
	prog := make(Program, 0, n)
	for i := len(cfg.cont) - 1; i >= 0; i-- {
		prog = append(prog, cfg.cont[i]...)
	}
	return prog
}

// Clone returns an independent snapshot of cfg.
func (cfg Configuration) Clone() Configuration {
	var dup Configuration
	dup.Stack = cfg.Stack.Clone()
	if len(cfg.cont) > 0 {
		dup.cont = append(make([]Program, 0, len(cfg.cont)), cfg.cont...)
	}
	return dup
}

// Equal reports whether two configurations have the same stack and the same
// remainder, regardless of how their frames are split.
func (cfg Configuration) Equal(other Configuration) bool {
	return cfg.Stack.Equal(other.Stack) && cfg.Remainder().Equal(other.Remainder())
}

// String renders the configuration as "⟨stack⟩ remainder".
func (cfg Configuration) String() string {
	var sb strings.Builder
	sb.WriteString(cfg.Stack.String())
	sb.WriteByte(' ')
	cfg.Remainder().buildString(&sb)
	return sb.String()
}

func (cfg *Configuration) peek() (Term, bool) {
	if i := len(cfg.cont) - 1; i >= 0 {
		return cfg.cont[i][0], true
	}
	return nil, false
}

// advance drops the term returned by peek; an exhausted frame is popped
// right away so a body spliced in tail position does not deepen the
// continuation.
func (cfg *Configuration) advance() {
	i := len(cfg.cont) - 1
	if frame := cfg.cont[i]; len(frame) > 1 {
		cfg.cont[i] = frame[1:]
	} else {
		cfg.cont[i] = nil
		cfg.cont = cfg.cont[:i]
	}
}

func (cfg *Configuration) splice(prog Program) {
	if len(prog) > 0 {
		cfg.cont = append(cfg.cont, prog)
	}
}

func (cfg *Configuration) push(vs ...Quote) {
	cfg.Stack = append(cfg.Stack, vs...)
}

func (cfg *Configuration) pop() Quote {
	i := len(cfg.Stack) - 1
	v := cfg.Stack[i]
	cfg.Stack[i] = nil
	cfg.Stack = cfg.Stack[:i]
	return v
}

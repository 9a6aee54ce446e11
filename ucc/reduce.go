package ucc

import (
	"errors"
	"fmt"
)

// ErrTerminated is returned by Reducer.Step when the remainder is empty; it
// is not a failure, the stack is the final result.
var ErrTerminated = errors.New("terminated")

// ReduceErrorKind classifies a ReduceError.
type ReduceErrorKind int

const (
	UnknownWord    ReduceErrorKind = iota // a word bound to neither an intrinsic nor a definition
	StackUnderflow                        // an intrinsic fired with too few values
)

// ReduceError reports a reduction that cannot fire.
type ReduceError struct {
	Kind ReduceErrorKind
	Word string
	Have int // values on the stack, for StackUnderflow
	Need int // values the intrinsic takes, for StackUnderflow
}

func (err *ReduceError) Error() string {
	switch err.Kind {
	case UnknownWord:
		return fmt.Sprintf("unknown word %q", err.Word)
	case StackUnderflow:
		return fmt.Sprintf("stack underflow: %v needs %v values, have %v", err.Word, err.Need, err.Have)
	}
	return fmt.Sprintf("reduce error %d on %q", int(err.Kind), err.Word)
}

// Reducer implements the one step rewrite relation of the calculus.
type Reducer struct {
	logging

	// Defs resolves words that are not intrinsics; may be nil.
	Defs Definitions
}

// Step performs exactly one reduction on the first term of cfg's remainder:
// a quotation is pushed, an intrinsic fires, a defined word is replaced by its
// body. It returns ErrTerminated if the remainder is empty, and a
// *ReduceError if the first term cannot fire; in either case cfg is left as
// it was. Output from print goes to out.
func (rd *Reducer) Step(cfg *Configuration, out Sink) error {
	t, ok := cfg.peek()
	if !ok {
		return ErrTerminated
	}

	switch t := t.(type) {
	case Quote:
		cfg.advance()
		cfg.push(t)
		return nil

	case Word:
		name := string(t)
		if code, isIntrinsic := intrinsicCodes[name]; isIntrinsic {
			need := intrinsicArity[code]
			if have := len(cfg.Stack); have < need {
				return &ReduceError{Kind: StackUnderflow, Word: name, Have: have, Need: need}
			}
			cfg.advance()
			rd.logf(">", "%v", name)
			if out == nil {
				out = discard{}
			}
			return intrinsicTable[code](cfg, out)
		}
		if rd.Defs != nil {
			if body, defined := rd.Defs.Lookup(name); defined {
				cfg.advance()
				cfg.splice(body)
				rd.logf(">", "%v = %v", name, body)
				return nil
			}
		}
		return &ReduceError{Kind: UnknownWord, Word: name}
	}

	return fmt.Errorf("invalid term %T", t)
}

//// Intrinsics
//
// The stack is shown bottom to top; arity is checked before an intrinsic
// fires, so none of them can see a short stack.

// Name      Function
// swap      [a] [b] -> [b] [a]
func swap(cfg *Configuration, _ Sink) error {
	b, a := cfg.pop(), cfg.pop()
	cfg.push(b, a)
	return nil
}

// Name      Function
// clone     [a] -> [a] [a]
func clone(cfg *Configuration, _ Sink) error {
	a := cfg.pop()
	cfg.push(a, a)
	return nil
}

// Name      Function
// drop      [a] ->
func drop(cfg *Configuration, _ Sink) error {
	cfg.pop()
	return nil
}

// Name      Function
// quote     [a] -> [[a]]
func quote(cfg *Configuration, _ Sink) error {
	a := cfg.pop()
	cfg.push(Quote{a})
	return nil
}

// Name      Function
// compose   [a] [b] -> [a b]
func compose(cfg *Configuration, _ Sink) error {
	b, a := cfg.pop(), cfg.pop()
	ab := make(Quote, 0, len(a)+len(b))
	ab = append(ab, a...)
	ab = append(ab, b...)
	cfg.push(ab)
	return nil
}

// Name      Function
// apply     [a] ->        and a is reduced next
func apply(cfg *Configuration, _ Sink) error {
	a := cfg.pop()
	cfg.splice(Program(a))
	return nil
}

// Name      Function
// print     [a] ->        writing "[a]\n" to the output
func printTop(cfg *Configuration, out Sink) error {
	a := cfg.pop()
	if _, err := out.WriteString(a.String() + "\n"); err != nil {
		return fmt.Errorf("output failed: %w", err)
	}
	return nil
}

const (
	intrSwap = iota
	intrClone
	intrDrop
	intrQuote
	intrCompose
	intrApply
	intrPrint

	intrMax
)

var intrinsicTable = [intrMax]func(cfg *Configuration, out Sink) error{
	intrSwap:    swap,
	intrClone:   clone,
	intrDrop:    drop,
	intrQuote:   quote,
	intrCompose: compose,
	intrApply:   apply,
	intrPrint:   printTop,
}

var intrinsicNames = [intrMax]string{
	intrSwap:    "swap",
	intrClone:   "clone",
	intrDrop:    "drop",
	intrQuote:   "quote",
	intrCompose: "compose",
	intrApply:   "apply",
	intrPrint:   "print",
}

var intrinsicArity = [intrMax]int{
	intrSwap:    2,
	intrClone:   1,
	intrDrop:    1,
	intrQuote:   1,
	intrCompose: 2,
	intrApply:   1,
	intrPrint:   1,
}

var intrinsicCodes = func() map[string]int {
	codes := make(map[string]int, intrMax)
	for code, name := range intrinsicNames {
		codes[name] = code
	}
	return codes
}()

func isIntrinsic(name string) bool {
	_, is := intrinsicCodes[name]
	return is
}

// Intrinsics returns the names of the built-in combinators.
func Intrinsics() []string {
	return append([]string(nil), intrinsicNames[:]...)
}

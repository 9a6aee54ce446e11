package ucc

import (
	"fmt"
	"strings"
	"unicode"
)

// Help lists the input forms a session understands.
const Help = `Commands available:

   <expr>                   evaluate <expr>
   {fn <sym> = <expr>}      define <sym> as <expr>
   :trace <expr>            trace the evaluation of <expr>
   :show <sym>              show the definition of <sym>
   :list                    list the defined symbols
   :drop                    drop the current value stack
   :clear                   clear all definitions
   :reset                   reset the interpreter
   :dump                    dump the interpreter state
   :help                    display this list of commands
`

// CommandError reports a command that cannot run.
type CommandError struct {
	Command string
	Reason  string
}

func (err *CommandError) Error() string { return fmt.Sprintf("%v: %v", err.Command, err.Reason) }

func isCommand(text string) bool {
	return strings.HasPrefix(strings.TrimLeftFunc(text, unicode.IsSpace), ":")
}

// splitCommand separates a command's name from its argument text.
func splitCommand(text string) (name, arg string) {
	text = strings.TrimSpace(text)
	name = text
	if i := strings.IndexFunc(text, unicode.IsSpace); i >= 0 {
		name, arg = text[:i], strings.TrimSpace(text[i:])
	}
	return name, arg
}

// command runs a ":name args..." input; every command but :trace completes
// here, leaving the session done.
func (sess *Session) command(text string, out Sink) {
	name, arg := splitCommand(text)

	noArgs := func() bool {
		if arg != "" {
			sess.fail(out, &CommandError{name, "takes no arguments"})
			return false
		}
		return true
	}

	switch name {
	case ":help":
		if noArgs() {
			sess.write(out, Help)
		}

	case ":trace":
		sess.trace(arg, out)

	case ":show":
		if arg == "" || strings.IndexFunc(arg, unicode.IsSpace) >= 0 {
			sess.fail(out, &CommandError{name, "usage: :show <sym>"})
		} else if body, defined := sess.defs.Lookup(arg); defined {
			sess.write(out, Definition{arg, body}.String()+"\n")
		} else {
			sess.write(out, "Not defined.\n")
		}

	case ":list":
		if noArgs() {
			sess.write(out, strings.Join(sess.defs.Names(), " ")+"\n")
		}

	case ":drop":
		if noArgs() {
			sess.stack = nil
			sess.write(out, "Values dropped.\n")
		}

	case ":clear":
		if noArgs() {
			sess.defs = NewDictionary()
			sess.reducer.Defs = sess.defs
			sess.write(out, "Definitions cleared.\n")
		}

	case ":reset":
		if noArgs() {
			sess.reset()
			sess.write(out, "Reset.\n")
		}

	case ":dump":
		if noArgs() {
			var sb strings.Builder
			sess.Dump(&sb)
			sess.write(out, sb.String())
		}

	default:
		sess.fail(out, &CommandError{name, "unknown command"})
	}
}

// trace starts a stepped evaluation that shows every intermediate
// configuration.
func (sess *Session) trace(text string, out Sink) {
	prog, err := Parse(text)
	if err != nil {
		sess.fail(out, err)
		return
	}
	cfg := NewConfiguration(sess.stack.Clone(), prog)
	if sess.write(out, cfg.String()+"\n") != nil || cfg.Halted() {
		return
	}
	sess.begin(modeTrace, []item{{expr: prog}})
	sess.run.fresh = false
}

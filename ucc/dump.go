package ucc

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
)

// Dump writes a human readable description of the session state to w: the
// committed stack and, for an evaluation in progress, its live stack,
// continuation frames, and pending definitions, followed by the dictionary.
func (sess *Session) Dump(w io.Writer) {
	sessionDumper{sess: sess, out: w}.dump()
}

type sessionDumper struct {
	sess *Session
	out  io.Writer

	addrWidth int
}

func (dump sessionDumper) dump() {
	fmt.Fprintf(dump.out, "# Session Dump\n")
	fmt.Fprintf(dump.out, "  done: %v\n", dump.sess.Done())
	if err := dump.sess.err; err != nil {
		fmt.Fprintf(dump.out, "  err: %v\n", err)
	}
	dump.dumpStack("# Stack", dump.sess.stack)
	if run := dump.sess.run; run != nil {
		dump.dumpRun(run)
	}
	dump.dumpDict("# Dictionary", dump.sess.defs)
}

// dumpStack lists values top first, each with its depth.
func (dump *sessionDumper) dumpStack(title string, stack Stack) {
	fmt.Fprintf(dump.out, "%v (%v values)\n", title, len(stack))
	dump.width(len(stack))
	var buf lineBuffer
	for i := len(stack) - 1; i >= 0; i-- {
		fmt.Fprintf(&buf, "  @%*v %v", dump.addrWidth, len(stack)-1-i, stack[i])
		buf.WriteTo(dump.out)
	}
}

func (dump *sessionDumper) dumpRun(run *evaluation) {
	mode := "eval"
	if run.mode == modeTrace {
		mode = "trace"
	}
	fmt.Fprintf(dump.out, "# Evaluation (%v, %v items left)\n", mode, len(run.items))
	dump.dumpStack("# Live Stack", run.cfg.Stack)

	var buf lineBuffer
	fmt.Fprintf(dump.out, "# Continuation (%v frames)\n", run.cfg.Depth())
	dump.width(run.cfg.Depth())
	for i, k := len(run.cfg.cont)-1, 0; i >= 0; i, k = i-1, k+1 {
		fmt.Fprintf(&buf, "  @%*v %v", dump.addrWidth, k, run.cfg.cont[i])
		buf.WriteTo(dump.out)
	}

	for _, it := range run.items[1:] {
		if it.def != nil {
			fmt.Fprintf(&buf, "  then %v", it.def)
		} else {
			fmt.Fprintf(&buf, "  then %v", it.expr)
		}
		buf.WriteTo(dump.out)
	}

	if len(run.defs.order) > 0 {
		fmt.Fprintf(dump.out, "# Pending Definitions\n")
		for _, name := range run.defs.order {
			fmt.Fprintf(&buf, "  + %v", Definition{name, run.defs.defs[name]})
			buf.WriteTo(dump.out)
		}
	}
}

func (dump *sessionDumper) dumpDict(title string, defs *Dictionary) {
	if defs == nil {
		fmt.Fprintf(dump.out, "%v (empty)\n", title)
		return
	}
	names := defs.Names()
	fmt.Fprintf(dump.out, "%v (%v words)\n", title, len(names))
	var buf lineBuffer
	for _, name := range names {
		body, _ := defs.Lookup(name)
		fmt.Fprintf(&buf, "  %v = %v", name, body)
		buf.WriteTo(dump.out)
	}
}

func (dump *sessionDumper) width(n int) {
	if w := len(strconv.Itoa(n)); w > dump.addrWidth {
		dump.addrWidth = w
	}
}

// lineBuffer accumulates one line of dump output at a time.
type lineBuffer struct{ bytes.Buffer }

// WriteTo terminates the buffered line, writes it, and resets the buffer.
func (buf *lineBuffer) WriteTo(w io.Writer) (int64, error) {
	if b := buf.Bytes(); len(b) == 0 || b[len(b)-1] != '\n' {
		buf.WriteByte('\n')
	}
	return buf.Buffer.WriteTo(w)
}

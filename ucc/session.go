package ucc

import (
	"errors"
	"fmt"

	"github.com/jcorbin/goucc/internal/panicerr"
)

// Session is a stateful interpreter that evaluates one input at a time,
// cooperatively: Start begins an evaluation, and each Step call performs a
// bounded amount of work, writing any output to the given sink.
//
// The value stack and dictionary persist from one evaluation to the next.
// They are committed only when an evaluation finishes, whether by
// terminating or by failing to reduce; an evaluation abandoned by a
// subsequent Start leaves both as they were.
//
// A Session is not safe for concurrent use; distinct sessions share nothing
// mutable and may run in parallel.
type Session struct {
	logging
	reducer Reducer
	prelude bool
	extra   []Definition

	defs  *Dictionary
	stack Stack

	run *evaluation
	err error
}

type evalMode uint8

const (
	modeEval evalMode = iota
	modeTrace
)

// evaluation is the in-flight state of one Start.
type evaluation struct {
	mode  evalMode
	items []item      // remaining definitions and expressions, current first
	defs  *Dictionary // child layer over the session dictionary
	cfg   Configuration
	fresh bool // the current expression has not been shown yet
}

// New creates a session holding the prelude, unless WithoutPrelude is given.
func New(opts ...Option) *Session {
	var sess Session
	sess.apply(opts...)
	sess.reset()
	return &sess
}

func (sess *Session) reset() {
	sess.defs = NewDictionary()
	sess.reducer.Defs = sess.defs
	sess.stack = nil
	if sess.prelude {
		for _, def := range prelude {
			sess.defs.Define(def.Name, def.Body)
		}
	}
	for _, def := range sess.extra {
		sess.defs.Define(def.Name, def.Body)
	}
	sess.logf("#", "reset %v definitions", sess.defs.Len())
}

// Start begins evaluating text, abandoning any evaluation still in progress.
//
// The text may be a command (":help" etc.), or any sequence of definitions
// and expressions. Commands other than :trace, and input that fails to lex
// or parse, complete within Start itself; their output or diagnostic is
// written to out and the session is done.
func (sess *Session) Start(text string, out Sink) {
	if out == nil {
		out = discard{}
	}
	if sess.defs == nil {
		sess.reset()
	}
	if sess.run != nil {
		sess.logf("#", "abandon %v", sess.run.cfg)
		sess.abandon()
	}
	sess.err = nil
	sess.logf("#", "start %q", text)

	if isCommand(text) {
		sess.command(text, out)
		return
	}

	toks, err := Tokenize(text)
	var items []item
	if err == nil {
		items, err = parseItems(toks)
	}
	if err != nil {
		sess.fail(out, err)
		return
	}
	if len(items) > 0 {
		sess.begin(modeEval, items)
	}
}

// Step performs one unit of the current evaluation: a single reduction, or
// binding a single definition. It does nothing once the session is done.
//
// Output from a step is written to out; if writing fails, the evaluation is
// abandoned and Err returns the write error. A panic within the step is
// likewise recovered and reported by Err.
func (sess *Session) Step(out Sink) {
	run := sess.run
	if run == nil {
		return
	}
	if out == nil {
		out = discard{}
	}
	if err := panicerr.Catch("ucc step", func() error {
		return sess.step(run, out)
	}); err != nil {
		sess.logf("!", "%+v", err)
		sess.err = err
		sess.abandon()
		// the sink may be what failed; a diagnostic is best effort
		panicerr.Catch("ucc diagnostic", func() error {
			_, werr := out.WriteString(err.Error() + "\n")
			return werr
		})
	}
}

// Done reports whether the session has no evaluation in progress.
func (sess *Session) Done() bool { return sess.run == nil }

// Interp runs text to completion; it never returns if the evaluation
// diverges.
func (sess *Session) Interp(text string, out Sink) {
	sess.Start(text, out)
	for !sess.Done() {
		sess.Step(out)
	}
}

// Err returns the error that ended the most recent evaluation, if any: a
// lex, parse, reduction, or command error, or a failure to write output.
func (sess *Session) Err() error { return sess.err }

// Stack returns a copy of the committed value stack.
func (sess *Session) Stack() Stack { return sess.stack.Clone() }

// Lookup returns the committed definition of name.
func (sess *Session) Lookup(name string) (Program, bool) {
	if sess.defs == nil {
		return nil, false
	}
	return sess.defs.Lookup(name)
}

// Configuration returns a snapshot of the configuration being reduced, if an
// evaluation is in progress.
func (sess *Session) Configuration() (Configuration, bool) {
	if sess.run == nil {
		return Configuration{}, false
	}
	return sess.run.cfg.Clone(), true
}

func (sess *Session) begin(mode evalMode, items []item) {
	run := &evaluation{
		mode:  mode,
		items: items,
		defs:  sess.defs.Child(),
	}
	run.cfg.Stack = sess.stack.Clone()
	sess.run = run
	sess.reducer.Defs = run.defs
	run.next()
}

// next positions run at its current item.
func (run *evaluation) next() {
	if len(run.items) > 0 && run.items[0].def == nil {
		run.cfg = NewConfiguration(run.cfg.Stack, run.items[0].expr)
		run.fresh = true
	}
}

func (sess *Session) step(run *evaluation, out Sink) error {
	if run.mode == modeTrace {
		return sess.traceStep(run, out)
	}

	if def := run.items[0].def; def != nil {
		format := "Defined `%v`.\n"
		if run.defs.Define(def.Name, def.Body) {
			format = "Redefined `%v`.\n"
		}
		sess.logf("=", "%v", def)
		if err := sess.write(out, fmt.Sprintf(format, def.Name)); err != nil {
			return err
		}
		sess.advance(run)
		return nil
	}

	if run.fresh {
		run.fresh = false
		if err := sess.write(out, run.cfg.String()+"\n"); err != nil {
			return err
		}
	}

	var rerr *ReduceError
	switch err := sess.reducer.Step(&run.cfg, out); {
	case err == nil:
		if run.defs.Compress(run.cfg.Stack) {
			sess.logf("=", "%v", run.cfg.Stack)
		}
		return nil

	case errors.Is(err, ErrTerminated):
		if err := sess.write(out, "⇓ "+run.cfg.String()+"\n"); err != nil {
			return err
		}
		sess.advance(run)
		return nil

	case errors.As(err, &rerr):
		if err := sess.write(out, "⇓ "+run.cfg.String()+"\n"); err != nil {
			return err
		}
		return sess.stuck(run, rerr, out)

	default:
		return err
	}
}

func (sess *Session) traceStep(run *evaluation, out Sink) error {
	var rerr *ReduceError
	switch err := sess.reducer.Step(&run.cfg, out); {
	case err == nil:
		if err := sess.write(out, "⟶ "+run.cfg.String()+"\n"); err != nil {
			return err
		}
		if run.defs.Compress(run.cfg.Stack) {
			return sess.write(out, "= "+run.cfg.String()+"\n")
		}
		return nil

	case errors.Is(err, ErrTerminated):
		sess.finish(run)
		return nil

	case errors.As(err, &rerr):
		return sess.stuck(run, rerr, out)

	default:
		return err
	}
}

// stuck ends run on an irreducible term, keeping what it had done so far.
func (sess *Session) stuck(run *evaluation, err *ReduceError, out Sink) error {
	sess.logf("!", "%v", err)
	sess.err = err
	sess.finish(run)
	return sess.write(out, err.Error()+"\n")
}

// advance moves run past its current item, finishing it after the last.
func (sess *Session) advance(run *evaluation) {
	run.items = run.items[1:]
	if len(run.items) == 0 {
		sess.finish(run)
		return
	}
	run.next()
}

// finish commits run's stack and definitions.
func (sess *Session) finish(run *evaluation) {
	run.defs.Commit()
	sess.stack = run.cfg.Stack
	sess.reducer.Defs = sess.defs
	sess.run = nil
	sess.logf("#", "done %v", sess.stack)
}

func (sess *Session) abandon() {
	sess.reducer.Defs = sess.defs
	sess.run = nil
}

// fail ends input that could not be started, reporting err to out.
func (sess *Session) fail(out Sink, err error) {
	sess.logf("!", "%v", err)
	sess.err = err
	sess.write(out, err.Error()+"\n")
}

// write sends s to out; a failure is recorded as the session error, since a
// sink that cannot be written ends the evaluation that wrote to it.
func (sess *Session) write(out Sink, s string) error {
	if _, err := out.WriteString(s); err != nil {
		err = fmt.Errorf("output failed: %w", err)
		sess.err = err
		return err
	}
	return nil
}

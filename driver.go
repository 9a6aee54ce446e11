package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jcorbin/goucc/internal/fileinput"
	"github.com/jcorbin/goucc/internal/flushio"
	"github.com/jcorbin/goucc/internal/logio"
	"github.com/jcorbin/goucc/internal/runeio"
	"github.com/jcorbin/goucc/ucc"
)

// driver runs a session's evaluations to completion, within limits.
type driver struct {
	sess *ucc.Session
	out  flushio.WriteFlusher
	log  *logio.Logger

	timeout  time.Duration
	maxSteps int
	dump     bool
}

// checkEvery is how many steps may run between checks of the context; the
// output is flushed at the same interval.
const checkEvery = 1024

type stepLimitError int

func (lim stepLimitError) Error() string {
	return fmt.Sprintf("step limit of %v exceeded", int(lim))
}

// eval runs input to completion, returning an error only if the evaluation
// had to be interrupted, by context or step limit, or if output failed.
// Errors reported by the session itself are written to the output as part of
// its transcript; see ucc.Session.Err.
func (d *driver) eval(ctx context.Context, input string) error {
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	sink := ansiSink{d.out}
	d.sess.Start(input, sink)
	for steps := 0; !d.sess.Done(); steps++ {
		if d.maxSteps > 0 && steps >= d.maxSteps {
			return d.interrupt(stepLimitError(d.maxSteps))
		}
		if steps%checkEvery == checkEvery-1 {
			if err := ctx.Err(); err != nil {
				return d.interrupt(err)
			}
			if err := d.out.Flush(); err != nil {
				return err
			}
		}
		d.sess.Step(sink)
	}
	return d.out.Flush()
}

// interrupt abandons the evaluation in progress, leaving the session as it
// was before the evaluation started.
func (d *driver) interrupt(err error) error {
	if d.dump {
		d.sess.Dump(d.out)
	}
	d.sess.Start("", nil)
	fmt.Fprintf(d.out, "Interrupted: %v\n", err)
	if ferr := d.out.Flush(); ferr != nil {
		return ferr
	}
	return err
}

// runFiles loads each named file in order, evaluating it line by line, with
// lines that leave a delimiter open continued by the following lines.
func (d *driver) runFiles(ctx context.Context, names []string) error {
	var in fileinput.Input
	for _, name := range names {
		f, err := os.Open(name)
		if err != nil {
			return err
		}
		defer f.Close()
		in.Queue = append(in.Queue, f)
	}
	return d.runInput(ctx, &in)
}

func (d *driver) runInput(ctx context.Context, in *fileinput.Input) error {
	var (
		pending strings.Builder
		start   fileinput.Location
	)
	run := func() error {
		src := pending.String()
		pending.Reset()
		if strings.TrimSpace(src) == "" {
			return nil
		}
		if err := d.eval(ctx, src); err != nil {
			return fmt.Errorf("%v: %w", start, err)
		}
		if err := d.sess.Err(); err != nil {
			d.log.Errorf("%v: %v", start, err)
		}
		return nil
	}

	for {
		loc, line, err := in.ReadLine()
		if err == io.EOF {
			// let the session report whatever was left open
			return run()
		} else if err != nil {
			return err
		}
		if pending.Len() == 0 {
			start = loc
		} else {
			pending.WriteByte('\n')
		}
		pending.WriteString(line)
		if ucc.Incomplete(pending.String()) {
			continue
		}
		if err := run(); err != nil {
			return err
		}
	}
}

// ansiSink adapts session output to a terminal, writing C1 controls in their
// 7-bit form.
type ansiSink struct{ w io.Writer }

func (sink ansiSink) WriteString(s string) (int, error) {
	return runeio.WriteANSIString(sink.w, s)
}

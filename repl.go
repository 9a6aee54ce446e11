package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"strings"

	"github.com/peterh/liner"

	"github.com/jcorbin/goucc/ucc"
)

const (
	banner = "Untyped Concatenative Calculus Interpreter\n" +
		"Type \":help\" to see the available commands.\n"

	promptMain = ">>> "
	promptCont = "... "
)

// repl reads and evaluates input until end of input; an interrupt while
// evaluating abandons just that evaluation.
func (d *driver) repl(ctx context.Context, historyFile string) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if historyFile != "" {
		if f, err := os.Open(historyFile); err == nil {
			d.log.ErrorIf(readHistory(ln, f))
		} else if !errors.Is(err, fs.ErrNotExist) {
			d.log.ErrorIf(err)
		}
		defer func() {
			if f, err := os.Create(historyFile); err != nil {
				d.log.ErrorIf(err)
			} else {
				_, err = ln.WriteHistory(f)
				d.log.ErrorIf(err)
				d.log.ErrorIf(f.Close())
			}
		}()
	}

	fmt.Fprint(d.out, banner)
	if err := d.out.Flush(); err != nil {
		return err
	}

	for {
		input, err := readInput(ln)
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(d.out)
			return d.out.Flush()
		} else if errors.Is(err, liner.ErrPromptAborted) {
			continue
		} else if err != nil {
			return err
		}
		if strings.TrimSpace(input) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(input, "\n", " "))

		evalCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
		err = d.eval(evalCtx, input)
		stop()
		if err != nil && !isInterrupt(err) {
			return err
		}
	}
}

// readHistory loads history from f, closing it.
func readHistory(ln interface {
	ReadHistory(r io.Reader) (int, error)
}, f io.ReadCloser) error {
	_, err := ln.ReadHistory(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("reading history: %w", err)
	}
	return nil
}

// readInput prompts for a line, continuing to prompt while the input so far
// leaves some delimiter open.
func readInput(ln *liner.State) (string, error) {
	var sb strings.Builder
	prompt := promptMain
	for {
		line, err := ln.Prompt(prompt)
		if err != nil {
			if sb.Len() > 0 && errors.Is(err, io.EOF) {
				return sb.String(), nil
			}
			return "", err
		}
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(line)
		if !ucc.Incomplete(sb.String()) {
			return sb.String(), nil
		}
		prompt = promptCont
	}
}

func isInterrupt(err error) bool {
	var lim stepLimitError
	return errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.As(err, &lim)
}

package main

import (
	"context"
	"flag"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/jcorbin/goucc/internal/flushio"
	"github.com/jcorbin/goucc/internal/logio"
	"github.com/jcorbin/goucc/ucc"
)

func main() {
	ctx := context.Background()

	var log logio.Logger
	log.SetOutput(nopCloser{os.Stderr})
	defer func() { os.Exit(log.ExitCode()) }()

	var (
		trace       bool
		timeout     time.Duration
		maxSteps    int
		noPrelude   bool
		teeFile     string
		batch       bool
		interactive bool
		dump        bool
		historyFile string
	)
	flag.BoolVar(&trace, "trace", false, "enable trace logging of every reduction")
	flag.DurationVar(&timeout, "timeout", 0, "specify a time limit for each evaluation")
	flag.IntVar(&maxSteps, "max-steps", 0, "specify a step limit for each evaluation")
	flag.BoolVar(&noPrelude, "no-prelude", false, "start without the prelude definitions")
	flag.StringVar(&teeFile, "tee", "", "also write output to the given file")
	flag.BoolVar(&batch, "batch", false, "run each file argument in its own session, concurrently")
	flag.BoolVar(&interactive, "i", false, "start an interactive session after loading files")
	flag.BoolVar(&dump, "dump", false, "dump session state when an evaluation is interrupted")
	flag.StringVar(&historyFile, "history", defaultHistory(), "interactive history file")
	flag.Parse()

	newDriver := func(out io.Writer) *driver {
		var opts []ucc.Option
		if trace {
			opts = append(opts, ucc.WithLogf(log.Leveledf("TRACE")))
		}
		if noPrelude {
			opts = append(opts, ucc.WithoutPrelude())
		}
		return &driver{
			sess:     ucc.New(opts...),
			out:      flushio.NewWriteFlusher(out),
			log:      &log,
			timeout:  timeout,
			maxSteps: maxSteps,
			dump:     dump,
		}
	}

	if batch {
		var out logio.Logger
		out.SetOutput(nopCloser{os.Stdout})
		log.ErrorIf(runBatch(ctx, flag.Args(), newDriver, &out))
		out.Close()
		return
	}

	var out io.Writer = os.Stdout
	if teeFile != "" {
		f, err := os.Create(teeFile)
		if err != nil {
			log.Errorf("%v", err)
			return
		}
		defer func() { log.ErrorIf(f.Close()) }()
		out = flushio.WriteFlushers(
			flushio.NewWriteFlusher(os.Stdout),
			flushio.NewWriteFlusher(f))
	}
	d := newDriver(out)
	defer func() { log.ErrorIf(d.out.Flush()) }()

	if args := flag.Args(); len(args) > 0 {
		if err := d.runFiles(ctx, args); err != nil {
			log.Errorf("%v", err)
			return
		}
		if !interactive {
			return
		}
	}
	log.ErrorIf(d.repl(ctx, historyFile))
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func defaultHistory() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".ucc_history")
}

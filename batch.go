package main

import (
	"context"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/jcorbin/goucc/internal/logio"
	"github.com/jcorbin/goucc/internal/panicerr"
)

// runBatch runs each named file in a session of its own, all concurrently,
// writing each file's transcript to out with every line labeled by the file
// name. The first file to be interrupted cancels the rest.
func runBatch(
	ctx context.Context,
	names []string,
	newDriver func(out io.Writer) *driver,
	out *logio.Logger,
) error {
	eg, ctx := errgroup.WithContext(ctx)
	for _, name := range names {
		name := name
		eg.Go(func() error {
			return panicerr.Recover(name, func() error {
				lw := &logio.Writer{Logf: out.Leveledf(name)}
				defer lw.Close()
				d := newDriver(lw)
				defer d.out.Flush()
				return d.runFiles(ctx, []string{name})
			})
		})
	}
	return eg.Wait()
}

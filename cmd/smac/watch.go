package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/orizon-lang/smac/internal/cli"
	"github.com/orizon-lang/smac/internal/watch"
)

const watchDebounce = 100 * time.Millisecond

func runWatch(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	fs.SetOutput(stderr)
	opts, finish := bindFlags(fs, stderr)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if err := cli.ValidateArgs(fs.Args(), 1, commands[1].Usage); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	if err := finish(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	p, err := opts.loadProfile()
	if err != nil {
		opts.logger.Error("%v", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	path := fs.Arg(0)
	color := cli.IsTerminal(stderr)
	err = watch.File(ctx, path, watchDebounce, func(name string) error {
		source, err := readFile(name)
		if err != nil {
			// The file may be mid-replace; wait for the next event.
			opts.logger.Warn("%v", err)
			return nil
		}
		r := lexSource(p, name, source)
		fmt.Fprintf(stdout, "== %s (%d tokens)\n", r.name, len(r.tokens))
		if err := printTokens(stdout, opts, r, false); err != nil {
			return err
		}
		if r.err != nil {
			fmt.Fprint(stderr, cli.FormatDiagnostic(r.err, r.source, color))
		}
		return nil
	})
	if err != nil {
		opts.logger.Error("%v", err)
		return 1
	}
	return 0
}

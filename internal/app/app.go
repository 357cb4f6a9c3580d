// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"fachunk/internal/cli"
	"fachunk/internal/cmdutil"
	"fachunk/internal/output"
	"fachunk/internal/pipeline"
	"fachunk/internal/sanitize"
	"fachunk/internal/version"
)

const name = "fachunk"

// flush writes buffered stdout and maps the outcome to an exit code,
// treating a closed pipe as success.
func flush(outw *bufio.Writer, stderr io.Writer, code int) int {
	if e := outw.Flush(); output.IsBrokenPipe(e) {
		return 0
	} else if e != nil {
		_, _ = fmt.Fprintln(stderr, e)
		return 3
	}
	return code
}

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)

	fs := cli.NewFlagSet(name)
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		argv = []string{"-h"}
	}

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		switch {
		case errors.Is(err, flag.ErrHelp):
			fs.SetOutput(outw)
			fs.Usage()
			return flush(outw, stderr, 0)
		case errors.Is(err, cli.ErrExamples):
			cli.PrintExamples(outw, name)
			return flush(outw, stderr, 0)
		}
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		_, _ = fmt.Fprintf(stderr, "run '%s -h' for usage\n", name)
		return 2
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "%s version %s\n", name, version.Version)
		return flush(outw, stderr, 0)
	}

	cfg := pipeline.Config{
		Strategy:    opts.Strategy,
		ChunkSize:   opts.ChunkSize,
		DataType:    opts.DataType,
		OutRoot:     opts.OutDir,
		IndexSuffix: opts.IndexSuffix,
		BuildIndex:  opts.BuildIndex,
		Threads:     opts.Threads,
		LineWidth:   opts.LineWidth,
		Sanitizer:   opts.Sanitizer,
	}
	if !opts.Sanitize && opts.Origin != sanitize.OriginOther {
		cmdutil.Warnf(stderr, opts.Quiet, "--origin %s has no effect without --sanitize", opts.Origin)
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	var runErr error
	if opts.Report == output.FormatJSONL {
		inCh, writeErr := output.StartJSONL(stdout)
		_, runErr = cmdutil.RunInputs(ctx, cfg, opts.Inputs, stderr, opts.Quiet, func(r pipeline.Result) error {
			select {
			case inCh <- r:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
		close(inCh)
		if werr := <-writeErr; werr != nil {
			_, _ = fmt.Fprintln(stderr, werr)
			return 3
		}
	} else {
		var results []pipeline.Result
		_, runErr = cmdutil.RunInputs(ctx, cfg, opts.Inputs, stderr, opts.Quiet, func(r pipeline.Result) error {
			results = append(results, r)
			return nil
		})
		if werr := output.Write(opts.Report, outw, results, opts.Header); output.IsBrokenPipe(werr) {
			return 0
		} else if werr != nil {
			_, _ = fmt.Fprintln(stderr, werr)
			return 3
		}
	}
	if code := flush(outw, stderr, 0); code != 0 {
		return code
	}

	if runErr != nil {
		if errors.Is(runErr, context.Canceled) {
			return 130
		}
		_, _ = fmt.Fprintf(stderr, "error: %v\n", runErr)
		return 3
	}
	return 0
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

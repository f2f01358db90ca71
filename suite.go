package contention

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/zeromicro/go-zero/core/errorx"
)

// Console is where suites print. Results and correctness violations go to
// Out; I/O failures and incomplete runs go to Err.
type Console struct {
	Out io.Writer
	Err io.Writer
}

// StdConsole prints to standard output and standard error.
func StdConsole() Console {
	return Console{Out: os.Stdout, Err: os.Stderr}
}

// RunCounterSuite runs the given strategies, or all of them when none are
// given, printing each outcome as it completes. A run that ends with the
// wrong value is reported as a violation and the suite carries on; only
// incomplete runs are returned as errors.
func RunCounterSuite(ctx context.Context, cfg CounterConfig, con Console, strategies ...Strategy) ([]CounterResult, error) {
	h, err := NewCounterHarness(cfg)
	if err != nil {
		return nil, err
	}
	if len(strategies) == 0 {
		strategies = Strategies()
	}

	var (
		results []CounterResult
		errs    errorx.BatchError
	)
	for _, s := range strategies {
		fmt.Fprintf(con.Out, "Running %s:\n", s.Title())
		res, err := h.Run(ctx, s)
		if err != nil {
			fmt.Fprintf(con.Err, "INCOMPLETE: %s: %v\n", s, err)
			fmt.Fprintln(con.Out)
			errs.Add(err)
			continue
		}
		results = append(results, res)

		fmt.Fprintf(con.Out, "Expected: %d\n", res.Expected)
		fmt.Fprintf(con.Out, "Actual: %d\n", res.Actual)
		fmt.Fprintf(con.Out, "Duration: %dms\n", res.Duration.Milliseconds())
		if !res.OK() {
			fmt.Fprintf(con.Out, "VIOLATION: %s lost %d of %d increments\n", s, res.Lost(), res.Expected)
		}
		fmt.Fprintln(con.Out)
	}
	return results, errs.Err()
}

// RunFileSuite deletes the result file, then runs the given write
// strategies, or all of them when none are given, one after another against
// it. After each run the file is inspected for that strategy's lines.
func RunFileSuite(ctx context.Context, cfg FileConfig, con Console, strategies ...WriteStrategy) ([]FileResult, error) {
	h, err := NewFileWriteHarness(cfg)
	if err != nil {
		return nil, err
	}
	if len(strategies) == 0 {
		strategies = WriteStrategies()
	}
	if err := os.Remove(cfg.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(con.Err, "IO FAILURE: removing %s: %v\n", cfg.Path, err)
		return nil, err
	}

	var (
		results []FileResult
		errs    errorx.BatchError
	)
	for _, s := range strategies {
		fmt.Fprintf(con.Out, "Starting %s writer demo...\n", s.Title())
		res, err := h.Run(ctx, s)
		if err != nil {
			if errors.Is(err, ErrIncomplete) {
				fmt.Fprintf(con.Err, "INCOMPLETE: %s: %v\n", s, err)
			} else {
				fmt.Fprintf(con.Err, "IO FAILURE: %s: %v\n", s, err)
			}
			fmt.Fprintln(con.Out)
			errs.Add(err)
			continue
		}
		results = append(results, res)

		fmt.Fprintf(con.Out, "Wrote %d lines in %dms\n", res.Expected-int(res.Failed), res.Duration.Milliseconds())
		if res.Failed > 0 {
			fmt.Fprintf(con.Err, "IO FAILURE: %s: %d of %d writes failed\n", s, res.Failed, res.Expected)
		}
		rep, err := Inspect(cfg.Path)
		switch {
		case errors.Is(err, os.ErrNotExist) && res.Expected == 0:
		case err != nil:
			fmt.Fprintf(con.Err, "IO FAILURE: inspecting %s: %v\n", cfg.Path, err)
		default:
			if err := rep.Check(s.String(), res.Workers, res.WritesPerWorker); err != nil {
				fmt.Fprintf(con.Out, "VIOLATION: %v\n", err)
			}
		}
		fmt.Fprintln(con.Out)
	}

	fmt.Fprintf(con.Out, "All demos completed. Check %s for results.\n", cfg.Path)
	return results, errs.Err()
}

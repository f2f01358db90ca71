package contention

import (
	"context"
	"fmt"
	"time"

	"github.com/zeromicro/go-zero/core/errorx"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/threading"
	"github.com/zeromicro/go-zero/core/timex"
)

// CounterResult is the observed outcome of one counter run.
type CounterResult struct {
	Strategy   Strategy      `json:"strategy"`
	Workers    int           `json:"workers"`
	Iterations int           `json:"iterations"`
	Expected   int64         `json:"expected"`
	Actual     int64         `json:"actual"`
	Duration   time.Duration `json:"duration"`
}

// OK reports if the final value matched the expected value.
func (r CounterResult) OK() bool { return r.Actual == r.Expected }

// Lost returns the number of increments that did not land.
func (r CounterResult) Lost() int64 { return r.Expected - r.Actual }

// CounterHarness runs workers against a shared Counter one strategy at a time.
// It owns the Counter; workers only ever see the strategy's increment.
type CounterHarness struct {
	cfg     CounterConfig
	counter Counter
	// straggler holds the workers of a run that was abandoned by its wait.
	// The next run waits for them before touching the counter.
	straggler *threading.RoutineGroup
}

// NewCounterHarness validates the config and returns a harness for it.
func NewCounterHarness(cfg CounterConfig) (*CounterHarness, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &CounterHarness{cfg: cfg}, nil
}

// Run resets the counter, starts the configured workers running the strategy,
// and waits for all of them. A wait cut short by ctx or the configured
// timeout returns ErrIncomplete; a wrong final value is not an error.
//
// Run must not be called concurrently with itself.
func (h *CounterHarness) Run(ctx context.Context, s Strategy) (CounterResult, error) {
	inc, err := h.counter.Incrementer(s)
	if err != nil {
		return CounterResult{}, err
	}
	if err := ctx.Err(); err != nil {
		return CounterResult{}, fmt.Errorf("%w: %v", ErrIncomplete, err)
	}

	ctx, cancel := withTimeout(ctx, h.cfg.Timeout)
	defer cancel()

	if h.straggler != nil {
		if err := await(ctx, "workers of an abandoned run", h.straggler.Wait); err != nil {
			return CounterResult{}, err
		}
		h.straggler = nil
	}

	iterations := h.cfg.Iterations
	h.counter.Reset()

	group := threading.NewRoutineGroup()
	start := timex.Now()
	for i := 0; i < h.cfg.Workers; i++ {
		group.Run(func() {
			for j := 0; j < iterations; j++ {
				inc()
			}
		})
	}
	if err := await(ctx, s.String()+" workers", group.Wait); err != nil {
		logx.Errorf("counter run %s: %v", s, err)
		h.straggler = group
		return CounterResult{}, err
	}
	elapsed := timex.Since(start)

	return CounterResult{
		Strategy:   s,
		Workers:    h.cfg.Workers,
		Iterations: iterations,
		Expected:   int64(h.cfg.Workers) * int64(iterations),
		Actual:     h.counter.Value(s),
		Duration:   elapsed,
	}, nil
}

// RunAll runs every strategy in suite order, one after another. It keeps
// going after an incomplete run and returns the results it has along with
// every error, batched.
func (h *CounterHarness) RunAll(ctx context.Context) ([]CounterResult, error) {
	var (
		results []CounterResult
		errs    errorx.BatchError
	)
	for _, s := range Strategies() {
		res, err := h.Run(ctx, s)
		if err != nil {
			errs.Add(fmt.Errorf("%v: %w", s, err))
			continue
		}
		results = append(results, res)
	}
	return results, errs.Err()
}

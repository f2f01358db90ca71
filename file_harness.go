package contention

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/zeromicro/go-zero/core/errorx"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/syncx"
	"github.com/zeromicro/go-zero/core/threading"
	"github.com/zeromicro/go-zero/core/timex"
	"golang.org/x/sync/errgroup"
)

// FileResult is the outcome of one file write run. The file itself is left
// in place for Inspect.
type FileResult struct {
	Strategy        WriteStrategy `json:"strategy"`
	Path            string        `json:"path"`
	Workers         int           `json:"workers"`
	WritesPerWorker int           `json:"writes_per_worker"`
	Expected        int           `json:"expected"`
	Failed          int64         `json:"failed"`
	Duration        time.Duration `json:"duration"`
}

// drainer is implemented by writers whose WriteLine completes before the
// line is durable.
type drainer interface {
	Shutdown(ctx context.Context) error
}

// FileWriteHarness runs a pool of workers appending lines to one file
// through a shared writer, one strategy at a time.
type FileWriteHarness struct {
	cfg FileConfig
	// straggler is closed once an abandoned run has fully torn down. The
	// next run waits on it so two strategies never write at the same time.
	straggler *syncx.DoneChan
}

// NewFileWriteHarness validates the config and returns a harness for it.
func NewFileWriteHarness(cfg FileConfig) (*FileWriteHarness, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &FileWriteHarness{cfg: cfg}, nil
}

// Run starts the configured workers, each writing its lines through a fresh
// writer for the strategy, and waits for true completion: every worker
// joined, the queue drained, and the handle closed. A failed write is logged
// and counted without stopping any worker. A wait cut short by ctx or the
// configured timeout returns ErrIncomplete.
//
// Run must not be called concurrently with itself.
func (h *FileWriteHarness) Run(ctx context.Context, s WriteStrategy) (FileResult, error) {
	if !s.Valid() {
		return FileResult{}, fmt.Errorf("%w: %v", ErrUnknownStrategy, s)
	}
	if err := ctx.Err(); err != nil {
		return FileResult{}, fmt.Errorf("%w: %v", ErrIncomplete, err)
	}

	ctx, cancel := withTimeout(ctx, h.cfg.Timeout)
	defer cancel()

	if h.straggler != nil {
		done := h.straggler.Done()
		if err := await(ctx, "teardown of an abandoned run", func() { <-done }); err != nil {
			return FileResult{}, err
		}
		h.straggler = nil
	}

	w, err := NewWriter(s, h.cfg.Path, h.cfg.QueueSize)
	if err != nil {
		logx.Errorf("%s writer: %v", s, err)
		return FileResult{}, err
	}

	var (
		group  errgroup.Group
		failed atomic.Int64
		tag    = s.String()
		writes = h.cfg.WritesPerWorker
	)

	start := timex.Now()
	for i := 0; i < h.cfg.Workers; i++ {
		group.Go(func() error {
			for j := 0; j < writes; j++ {
				if err := w.WriteLine(Payload(tag, i, j)); err != nil {
					failed.Add(1)
					logx.Errorw("write failed",
						logx.Field("strategy", tag),
						logx.Field("worker", i),
						logx.Field("write", j),
						logx.Field("error", err.Error()))
				}
			}
			return nil
		})
	}

	join := func() { _ = group.Wait() }
	if err := await(ctx, tag+" workers", join); err != nil {
		h.abandon(join, w)
		logx.Errorf("file run %s: %v", s, err)
		return FileResult{}, err
	}
	if err := teardown(ctx, w); err != nil {
		h.abandon(join, w)
		logx.Errorf("file run %s: %v", s, err)
		return FileResult{}, err
	}
	elapsed := timex.Since(start)

	if q, ok := w.(*QueueWriter); ok {
		failed.Add(q.Failed())
	}

	return FileResult{
		Strategy:        s,
		Path:            h.cfg.Path,
		Workers:         h.cfg.Workers,
		WritesPerWorker: writes,
		Expected:        h.cfg.Workers * writes,
		Failed:          failed.Load(),
		Duration:        elapsed,
	}, nil
}

// RunAll runs every write strategy in suite order against the same file. It
// keeps going after a failed run and returns the results it has along with
// every error, batched.
func (h *FileWriteHarness) RunAll(ctx context.Context) ([]FileResult, error) {
	var (
		results []FileResult
		errs    errorx.BatchError
	)
	for _, s := range WriteStrategies() {
		res, err := h.Run(ctx, s)
		if err != nil {
			errs.Add(fmt.Errorf("%v: %w", s, err))
			continue
		}
		results = append(results, res)
	}
	return results, errs.Err()
}

// teardown drains a queued writer or closes any other writer.
func teardown(ctx context.Context, w LineWriter) error {
	if d, ok := w.(drainer); ok {
		return d.Shutdown(ctx)
	}
	return w.Close()
}

// abandon finishes an interrupted run in the background and records it as
// the straggler the next run waits for.
func (h *FileWriteHarness) abandon(join func(), w LineWriter) {
	tail := syncx.NewDoneChan()
	threading.GoSafe(func() {
		defer tail.Close()
		join()
		if err := teardown(context.Background(), w); err != nil {
			logx.Errorf("teardown of abandoned run: %v", err)
		}
	})
	h.straggler = tail
}

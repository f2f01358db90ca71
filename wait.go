package contention

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrIncomplete is returned when a harness stops waiting before its workers,
// or the teardown that follows them, have finished. Results gathered up to
// that point must not be trusted.
var ErrIncomplete = errors.New("run incomplete")

// withTimeout derives a context bounded by d, or an unbounded one when d is
// zero.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

// await runs wait in its own goroutine and blocks until it returns or ctx is
// done. The goroutine is left to finish on its own in the latter case.
func await(ctx context.Context, what string, wait func()) error {
	done := make(chan struct{})
	go func() {
		defer close(done)
		wait()
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		select {
		case <-done:
			return nil
		default:
		}
		return fmt.Errorf("%w: waiting for %s: %v", ErrIncomplete, what, context.Cause(ctx))
	}
}

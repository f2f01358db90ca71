package contention

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/syncx"
	"github.com/zeromicro/go-zero/core/threading"
)

var errWritePanicked = errors.New("write panicked")

// QueueWriter hands lines to exactly one consumer goroutine which appends
// them in the order the enqueues completed. WriteLine returns once the line
// is enqueued, so a nil error does not mean the line is on disk: only a
// completed Shutdown guarantees that.
//
// A failed append is logged and counted, and the consumer moves on to the
// next line.
type QueueWriter struct {
	path   string
	lines  chan string
	gate   gate
	done   *syncx.DoneChan
	failed atomic.Int64
	write  func(path, payload string) error
}

// NewQueueWriter starts the consumer for path. size is the number of lines
// that may wait in the queue before WriteLine blocks.
func NewQueueWriter(path string, size int) *QueueWriter {
	return newQueueWriter(path, size, appendLine)
}

func newQueueWriter(path string, size int, write func(path, payload string) error) *QueueWriter {
	w := &QueueWriter{
		path:  path,
		lines: make(chan string, size),
		done:  syncx.NewDoneChan(),
		write: write,
	}
	threading.GoSafe(w.consume)
	return w
}

// WriteLine enqueues payload. It fails with ErrClosed once Shutdown started.
func (w *QueueWriter) WriteLine(payload string) error {
	if !w.gate.Enter() {
		return ErrClosed
	}
	defer w.gate.Leave()

	w.lines <- payload
	return nil
}

// Shutdown stops admitting lines, then waits for the consumer to append
// everything already enqueued and exit. If ctx ends first it returns
// ErrIncomplete and the consumer keeps draining in the background. It is
// safe to call more than once.
func (w *QueueWriter) Shutdown(ctx context.Context) error {
	return await(ctx, "queue drain", func() {
		if w.gate.Close() {
			close(w.lines)
		}
		<-w.done.Done()
	})
}

// Close is Shutdown without a deadline.
func (w *QueueWriter) Close() error {
	return w.Shutdown(context.Background())
}

// Failed returns the number of lines the consumer could not append.
func (w *QueueWriter) Failed() int64 {
	return w.failed.Load()
}

// Pending returns the number of lines waiting for the consumer.
func (w *QueueWriter) Pending() int {
	return len(w.lines)
}

func (w *QueueWriter) consume() {
	defer w.done.Close()
	for payload := range w.lines {
		w.process(payload)
	}
}

// process appends one line. A panic in the append is recovered here so it
// only costs this line.
func (w *QueueWriter) process(payload string) {
	err := errWritePanicked
	threading.RunSafe(func() {
		err = w.write(w.path, payload)
	})
	if err == nil {
		return
	}

	w.failed.Add(1)
	logx.Errorw("write failed",
		logx.Field("strategy", Queue.String()),
		logx.Field("path", w.path),
		logx.Field("payload", payload),
		logx.Field("error", err.Error()))
}

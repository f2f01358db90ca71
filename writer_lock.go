package contention

import (
	"errors"
	"fmt"

	"github.com/zeromicro/go-zero/core/syncx"
)

// LockWriter serializes appends with an explicit lock object. The lock is
// only ever taken through Guard, which releases it on every exit path,
// including a panic inside the write.
type LockWriter struct {
	path   string
	lock   syncx.Barrier
	closed bool
}

// NewLockWriter returns a LockWriter appending to path.
func NewLockWriter(path string) *LockWriter {
	return &LockWriter{path: path}
}

// WriteLine appends payload as one line.
func (w *LockWriter) WriteLine(payload string) (err error) {
	w.lock.Guard(func() {
		if w.closed {
			err = ErrClosed
			return
		}
		err = appendLine(w.path, payload)
	})
	if err != nil && !errors.Is(err, ErrClosed) {
		return fmt.Errorf("lock append to %s: %w", w.path, err)
	}
	return err
}

// Close refuses later writes. It waits for a write in progress to finish.
func (w *LockWriter) Close() error {
	w.lock.Guard(func() {
		w.closed = true
	})
	return nil
}

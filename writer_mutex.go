package contention

import (
	"fmt"
	"sync"
)

// MutexWriter serializes appends with a mutex. Every call opens and closes
// the file on its own.
type MutexWriter struct {
	path   string
	mu     sync.Mutex
	closed bool
}

// NewMutexWriter returns a MutexWriter appending to path.
func NewMutexWriter(path string) *MutexWriter {
	return &MutexWriter{path: path}
}

// WriteLine appends payload as one line.
func (w *MutexWriter) WriteLine(payload string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrClosed
	}
	if err := appendLine(w.path, payload); err != nil {
		return fmt.Errorf("mutex append to %s: %w", w.path, err)
	}
	return nil
}

// Close refuses later writes. There is no handle to release.
func (w *MutexWriter) Close() error {
	w.mu.Lock()
	w.closed = true
	w.mu.Unlock()
	return nil
}

package contention

import (
	"fmt"
	"os"
	"sync"
)

// ChannelWriter keeps one append-mode handle open for its whole lifetime and
// writes each line through it with a single write call, serialized by a
// mutex. Close must be called to release the handle.
type ChannelWriter struct {
	path   string
	mu     sync.Mutex
	fh     *os.File
	closed bool
}

// NewChannelWriter opens path for appending, creating it if needed.
func NewChannelWriter(path string) (*ChannelWriter, error) {
	fh, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &ChannelWriter{path: path, fh: fh}, nil
}

// WriteLine writes payload and the line ending as one buffer. Errors from
// the handle are returned to the caller; after Close it returns ErrClosed.
func (w *ChannelWriter) WriteLine(payload string) error {
	buf := make([]byte, 0, len(payload)+len(lineEnding))
	buf = append(buf, payload...)
	buf = append(buf, lineEnding...)

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrClosed
	}
	if _, err := w.fh.Write(buf); err != nil {
		return fmt.Errorf("channel write to %s: %w", w.path, err)
	}
	return nil
}

// Close closes the handle. Later calls are no-ops.
func (w *ChannelWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	if err := w.fh.Close(); err != nil {
		return fmt.Errorf("close %s: %w", w.path, err)
	}
	return nil
}

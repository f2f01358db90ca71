package contention

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"
)

// ErrClosed is returned by WriteLine once a writer has been closed. It wraps
// os.ErrClosed.
var ErrClosed = fmt.Errorf("writer closed: %w", os.ErrClosed)

// LineWriter appends whole lines to a shared file. WriteLine is safe for
// concurrent use and never interleaves two payloads. Close releases the
// writer's resources; for a queued writer it also waits for pending lines.
type LineWriter interface {
	WriteLine(payload string) error
	Close() error
}

// NewWriter returns the LineWriter for the strategy appending to path.
// queueSize is only used by the Queue strategy.
func NewWriter(s WriteStrategy, path string, queueSize int) (LineWriter, error) {
	switch s {
	case Mutex:
		return NewMutexWriter(path), nil
	case Lock:
		return NewLockWriter(path), nil
	case Queue:
		return NewQueueWriter(path, queueSize), nil
	case Channel:
		return NewChannelWriter(path)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownStrategy, s)
	}
}

// Payload formats the line a worker writes: "[TAG] Thread-<worker> write <n>".
func Payload(tag string, worker, write int) string {
	buf := make([]byte, 0, len(tag)+32)
	buf = append(buf, '[')
	buf = append(buf, tag...)
	buf = append(buf, "] Thread-"...)
	buf = strconv.AppendInt(buf, int64(worker), 10)
	buf = append(buf, " write "...)
	buf = strconv.AppendInt(buf, int64(write), 10)
	return string(buf)
}

// bufPool holds the buffered writers used for per-call appends.
var bufPool = sync.Pool{New: func() interface{} { return bufio.NewWriterSize(nil, 512) }}

// appendLine opens path in append mode, writes payload and the line ending
// through a buffered writer, flushes and closes. The caller serializes calls.
func appendLine(path, payload string) (err error) {
	fh, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, fh.Close()) }()

	bw, _ := bufPool.Get().(*bufio.Writer)
	bw.Reset(fh)
	defer func() {
		bw.Reset(nil)
		bufPool.Put(bw)
	}()

	if _, err := bw.WriteString(payload); err != nil {
		return err
	}
	if _, err := bw.WriteString(lineEnding); err != nil {
		return err
	}
	return bw.Flush()
}

package contention

import (
	"errors"
	"fmt"
	"time"

	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/core/logx"
)

// ErrInvalidConfig is returned when a harness is given counts it cannot run.
var ErrInvalidConfig = errors.New("invalid config")

// CounterConfig configures a CounterHarness.
type CounterConfig struct {
	// Workers is the number of concurrent incrementing goroutines.
	Workers int `json:",default=2"`
	// Iterations is the number of increments each worker performs.
	Iterations int `json:",default=1000000"`
	// Timeout bounds the wait for workers. Zero waits until they finish.
	Timeout time.Duration `json:",optional"`
}

// DefaultCounterConfig returns a CounterConfig with every default filled in.
func DefaultCounterConfig() CounterConfig {
	var c CounterConfig
	logx.Must(conf.FillDefault(&c))
	return c
}

func (c CounterConfig) validate() error {
	switch {
	case c.Workers < 1:
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalidConfig, c.Workers)
	case c.Iterations < 0:
		return fmt.Errorf("%w: iterations must not be negative, got %d", ErrInvalidConfig, c.Iterations)
	case c.Timeout < 0:
		return fmt.Errorf("%w: negative timeout %v", ErrInvalidConfig, c.Timeout)
	}
	return nil
}

// FileConfig configures a FileWriteHarness.
type FileConfig struct {
	// Path is the result file every strategy appends to.
	Path string `json:",default=thread_safe_demo.txt"`
	// Workers is the number of concurrent writing goroutines.
	Workers int `json:",default=5"`
	// WritesPerWorker is the number of lines each worker writes.
	WritesPerWorker int `json:",default=10"`
	// QueueSize is the capacity of the Queue strategy's buffer. WriteLine on
	// that strategy only blocks once this many lines are waiting.
	QueueSize int `json:",default=1024"`
	// Timeout bounds the wait for workers and teardown. Zero waits until
	// they finish.
	Timeout time.Duration `json:",optional"`
}

// DefaultFileConfig returns a FileConfig with every default filled in.
func DefaultFileConfig() FileConfig {
	var c FileConfig
	logx.Must(conf.FillDefault(&c))
	return c
}

func (c FileConfig) validate() error {
	switch {
	case c.Path == "":
		return fmt.Errorf("%w: empty path", ErrInvalidConfig)
	case c.Workers < 1:
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalidConfig, c.Workers)
	case c.WritesPerWorker < 0:
		return fmt.Errorf("%w: writes per worker must not be negative, got %d", ErrInvalidConfig, c.WritesPerWorker)
	case c.QueueSize < 0:
		return fmt.Errorf("%w: negative queue size %d", ErrInvalidConfig, c.QueueSize)
	case c.Timeout < 0:
		return fmt.Errorf("%w: negative timeout %v", ErrInvalidConfig, c.Timeout)
	}
	return nil
}
